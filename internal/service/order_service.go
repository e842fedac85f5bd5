package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"webtrade_go/internal/domain"
	"webtrade_go/internal/infra"
	"webtrade_go/internal/infra/signer"
	"webtrade_go/internal/otp"
)

// OrderService drives the web-trading login and order flows
type OrderService struct {
	table         *otp.MatrixTable
	signer        *signer.Signer
	gateway       domain.TradingGateway
	repo          domain.SubmissionRepository
	metrics       *infra.Metrics
	minChallenges int
	logger        *slog.Logger
}

// NewOrderService creates a new OrderService instance.
// minChallenges <= 0 falls back to otp.DefaultChallengeSize.
func NewOrderService(table *otp.MatrixTable, s *signer.Signer, gw domain.TradingGateway, repo domain.SubmissionRepository, metrics *infra.Metrics, minChallenges int) *OrderService {
	if minChallenges <= 0 {
		minChallenges = otp.DefaultChallengeSize
	}
	return &OrderService{
		table:         table,
		signer:        s,
		gateway:       gw,
		repo:          repo,
		metrics:       metrics,
		minChallenges: minChallenges,
		logger:        slog.Default().With("module", "order_service"),
	}
}

// Authenticate logs in and answers the matrix challenge when the server asks for one
func (s *OrderService) Authenticate(ctx context.Context, username, password string) (*domain.Session, error) {
	sess, err := s.gateway.Login(ctx, username, password)
	if err != nil {
		s.metrics.RecordError()
		return nil, fmt.Errorf("login: %w", err)
	}
	if !sess.OtpNeeded {
		return sess, nil
	}

	coords, answers, err := s.table.Answer(sess.Challenge, s.minChallenges)
	if err != nil {
		s.metrics.RecordOtp(false)
		s.recordAttempt(username, otp.ExtractCoordinates(sess.Challenge), false, err)
		return nil, fmt.Errorf("otp challenge: %w", err)
	}

	if err := s.gateway.VerifyOTP(ctx, coords, answers); err != nil {
		s.metrics.RecordOtp(false)
		s.recordAttempt(username, coords, false, err)
		return nil, fmt.Errorf("verify otp: %w", err)
	}

	s.metrics.RecordOtp(true)
	s.recordAttempt(username, coords, true, nil)
	sess.OtpNeeded = false
	s.logger.Info("OTP accepted", "user", username, "coordinates", strings.Join(coords, " "))
	return sess, nil
}

// Submit validates, signs, journals and sends an order
func (s *OrderService) Submit(ctx context.Context, order domain.StockOrder) (*domain.OrderSubmission, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}

	requestID := domain.NewRequestID()
	sign, err := s.signer.SignValues(order.SignatureValues(requestID))
	if err != nil {
		s.metrics.RecordError()
		return nil, err
	}
	s.metrics.RecordSigned()

	sub := &domain.OrderSubmission{
		RequestID:    requestID,
		AccountNo:    order.AccountNo,
		SubAccountNo: order.SubAccountNo,
		Symbol:       order.Symbol,
		Side:         order.Side,
		OrderType:    order.Type,
		Price:        order.PriceString(),
		Quantity:     order.Quantity,
		OddLot:       order.OddLot,
		Signature:    sign,
		Status:       domain.OrderStatusSubmitted,
	}

	start := time.Now()
	orderNo, err := s.gateway.PlaceOrder(ctx, &domain.SignedOrder{Order: order, RequestID: requestID, Signature: sign})
	s.metrics.RecordSubmission(err == nil, time.Since(start).Nanoseconds())
	if err != nil {
		sub.Status = domain.OrderStatusRejected
		sub.ErrorMsg = err.Error()
	} else {
		sub.OrderNo = orderNo
	}

	if saveErr := s.repo.SaveSubmission(sub); saveErr != nil {
		s.logger.Error("Failed to journal submission", slog.String("uuid", requestID), slog.Any("error", saveErr))
	}

	if err != nil {
		s.metrics.RecordError()
		return sub, fmt.Errorf("place order %s: %w", requestID, err)
	}

	s.logger.Info("Order submitted", "uuid", requestID, "symbol", order.Symbol, "order_no", orderNo)
	return sub, nil
}

// Cancel cancels a previously submitted order by its request ID
func (s *OrderService) Cancel(ctx context.Context, requestID string) error {
	sub, err := s.repo.GetSubmission(requestID)
	if err != nil {
		return err
	}
	if sub.Status != domain.OrderStatusSubmitted || sub.OrderNo == "" {
		return fmt.Errorf("%w: %s is %s", domain.ErrInvalidOrder, requestID, sub.Status)
	}

	if err := s.gateway.CancelOrder(ctx, sub.AccountNo, sub.OrderNo); err != nil {
		s.metrics.RecordError()
		return fmt.Errorf("cancel order %s: %w", sub.OrderNo, err)
	}
	s.metrics.RecordCanceled()

	return s.repo.MarkCanceled(requestID)
}

// History returns journaled submissions for symbol (all when empty)
func (s *OrderService) History(symbol string) ([]domain.OrderSubmission, error) {
	return s.repo.ListSubmissions(symbol)
}

func (s *OrderService) recordAttempt(username string, coords []string, accepted bool, cause error) {
	attempt := &domain.OtpAttempt{
		Username:    username,
		Coordinates: strings.Join(coords, " "),
		Accepted:    accepted,
	}
	if cause != nil {
		attempt.ErrorMsg = cause.Error()
		s.logger.Warn("OTP attempt failed", "user", username, "error", cause.Error())
	}
	if err := s.repo.RecordOtpAttempt(attempt); err != nil {
		s.logger.Error("Failed to journal OTP attempt", slog.Any("error", err))
	}
}
