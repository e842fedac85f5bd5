package app

import (
	"fmt"
	"log/slog"

	"webtrade_go/internal/infra"
	"webtrade_go/internal/infra/signer"
	"webtrade_go/internal/infra/storage"
	"webtrade_go/internal/infra/webtrading"
	"webtrade_go/internal/service"
)

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	Config  *infra.Config
	Signer  *signer.Signer
	Storage *storage.Storage
	Client  *webtrading.Client
	Orders  *service.OrderService
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// LoadConfig loads configuration and installs the logger.
// Offline commands (resolve, sign) need nothing more.
func (b *Bootstrap) LoadConfig(path string) error {
	cfg, err := infra.LoadConfig(path)
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	slog.SetDefault(infra.NewLogger(cfg))
	return nil
}

// InitSigner builds the order signer from the configured private key
func (b *Bootstrap) InitSigner() error {
	s, err := signer.NewSigner(b.Config.Account.PrivateKey)
	if err != nil {
		return fmt.Errorf("order signer: %w", err)
	}
	b.Signer = s
	return nil
}

// Initialize performs full initialization for live runs (signer, DB, API client)
func (b *Bootstrap) Initialize() error {
	slog.Info("🚀 Bootstrapping WebTrade...")

	if err := b.InitSigner(); err != nil {
		return err
	}

	store, err := storage.NewStorage(b.Config.Storage.Path)
	if err != nil {
		return err
	}
	b.Storage = store
	slog.Info("✅ Journal initialized")

	b.Client = webtrading.NewClient(b.Config)
	b.Orders = service.NewOrderService(
		b.Config.MatrixTable(),
		b.Signer,
		b.Client,
		b.Storage,
		infra.GlobalMetrics,
		b.Config.OTP.MinChallenges,
	)
	slog.Info("✅ Order service ready", slog.String("base_url", b.Config.API.BaseURL))
	return nil
}

// Close releases resources opened by Initialize
func (b *Bootstrap) Close() {
	if b.Storage != nil {
		if err := b.Storage.Close(); err != nil {
			slog.Warn("Failed to close journal", slog.Any("error", err))
		}
	}
}
