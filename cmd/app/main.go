package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/shopspring/decimal"

	"webtrade_go/internal/app"
	"webtrade_go/internal/domain"
	"webtrade_go/internal/infra/signer"
)

type globalOptions struct {
	Config string `short:"c" long:"config" env:"WEBTRADE_CONFIG" default:"configs/config.yaml" description:"path to config file"`
}

var opts globalOptions

// OrderOptions are shared by the sign and submit commands
type OrderOptions struct {
	Symbol string `long:"symbol" required:"true" description:"ticker, e.g. VPB"`
	Side   string `long:"side" choice:"buy" choice:"sell" default:"buy" description:"order side"`
	Type   string `long:"type" default:"01" description:"order type code (01 limit, 02 market, 03 ATO, 04 ATC)"`
	Price  string `long:"price" default:"0" description:"unit price"`
	Qty    int64  `long:"qty" required:"true" description:"quantity in shares"`
}

func (o *OrderOptions) toOrder(b *app.Bootstrap) (domain.StockOrder, error) {
	price, err := decimal.NewFromString(o.Price)
	if err != nil {
		return domain.StockOrder{}, fmt.Errorf("invalid price %q: %w", o.Price, err)
	}
	side := domain.SideBuy
	if o.Side == "sell" {
		side = domain.SideSell
	}
	return domain.StockOrder{
		AccountNo:    b.Config.Account.AccountNo,
		SubAccountNo: b.Config.Account.SubAccountNo,
		Symbol:       strings.ToUpper(o.Symbol),
		Side:         side,
		Type:         o.Type,
		Price:        price,
		Quantity:     o.Qty,
		OddLot:       o.Qty%domain.BoardLot != 0,
	}, nil
}

type resolveCommand struct{}

// Execute resolves coordinates given as arguments, e.g. `resolve A3 C5 G7`
func (c *resolveCommand) Execute(args []string) error {
	b, err := loadBootstrap()
	if err != nil {
		return err
	}
	coords := strings.Fields(strings.Join(args, " "))
	answers, err := b.Config.MatrixTable().Resolve(coords)
	if err != nil {
		return err
	}
	for i, c := range coords {
		fmt.Printf("%s\t%s\n", c, answers[i])
	}
	return nil
}

type signCommand struct {
	OrderOptions
	RequestID string `long:"uuid" description:"request identifier (generated when empty)"`
}

// Execute prints the signature for an order without sending it
func (c *signCommand) Execute(_ []string) error {
	b, err := loadBootstrap()
	if err != nil {
		return err
	}
	if err := b.InitSigner(); err != nil {
		return err
	}
	order, err := c.toOrder(b)
	if err != nil {
		return err
	}

	requestID := c.RequestID
	if requestID == "" {
		requestID = domain.NewRequestID()
	}
	sign, err := b.Signer.SignValues(order.SignatureValues(requestID))
	if err != nil {
		return err
	}
	fmt.Printf("%s=%s\n%s=%s\n", signer.FieldRequestID, requestID, "sign", sign)
	return nil
}

type submitCommand struct {
	OrderOptions
}

// Execute logs in, answers the OTP challenge and places the order
func (c *submitCommand) Execute(_ []string) error {
	return withService(func(ctx context.Context, b *app.Bootstrap) error {
		order, err := c.toOrder(b)
		if err != nil {
			return err
		}
		sub, err := b.Orders.Submit(ctx, order)
		if err != nil {
			return err
		}
		fmt.Printf("submitted uuid=%s order_no=%s\n", sub.RequestID, sub.OrderNo)
		return nil
	})
}

type cancelCommand struct {
	Args struct {
		RequestID string `positional-arg-name:"uuid" required:"true"`
	} `positional-args:"true"`
}

// Execute cancels a journaled order by request ID
func (c *cancelCommand) Execute(_ []string) error {
	return withService(func(ctx context.Context, b *app.Bootstrap) error {
		if err := b.Orders.Cancel(ctx, c.Args.RequestID); err != nil {
			return err
		}
		fmt.Printf("canceled uuid=%s\n", c.Args.RequestID)
		return nil
	})
}

type historyCommand struct {
	Symbol string `long:"symbol" description:"filter by symbol"`
}

// Execute lists journaled submissions
func (c *historyCommand) Execute(_ []string) error {
	b, err := loadBootstrap()
	if err != nil {
		return err
	}
	if err := b.Initialize(); err != nil {
		return err
	}
	defer b.Close()

	subs, err := b.Orders.History(strings.ToUpper(c.Symbol))
	if err != nil {
		return err
	}
	for _, s := range subs {
		fmt.Printf("%s\t%s\t%s\t%s\t%d@%s\t%s\t%s\n",
			s.CreatedAt.Format("2006-01-02 15:04:05"), s.RequestID, s.Symbol, s.Side, s.Quantity, s.Price, s.Status, s.OrderNo)
	}
	return nil
}

func loadBootstrap() (*app.Bootstrap, error) {
	b := app.NewBootstrap()
	if err := b.LoadConfig(opts.Config); err != nil {
		return nil, err
	}
	return b, nil
}

// withService runs fn with an authenticated order service and a signal-aware context
func withService(fn func(ctx context.Context, b *app.Bootstrap) error) error {
	b, err := loadBootstrap()
	if err != nil {
		return err
	}
	if err := b.Initialize(); err != nil {
		return err
	}
	defer b.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	acct := b.Config.Account
	if _, err := b.Orders.Authenticate(ctx, acct.Username, acct.Password); err != nil {
		return err
	}
	slog.InfoContext(ctx, "✅ Authenticated", slog.String("user", acct.Username))

	return fn(ctx, b)
}

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.AddCommand("resolve", "resolve OTP matrix coordinates", "Prints the matrix character for each coordinate argument.", &resolveCommand{})
	parser.AddCommand("sign", "sign an order", "Prints the request ID and signature for an order without sending it.", &signCommand{})
	parser.AddCommand("submit", "submit an order", "Logs in, answers the OTP challenge and places a signed order.", &submitCommand{})
	parser.AddCommand("cancel", "cancel an order", "Cancels a previously submitted order by request ID.", &cancelCommand{})
	parser.AddCommand("history", "list submissions", "Lists journaled order submissions.", &historyCommand{})

	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}
