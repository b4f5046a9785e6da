package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/finance_tracker/internal/events"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/SscSPs/finance_tracker/internal/utils/currency"
)

// BaseService provides common functionality for all services
type BaseService struct {
	clock     func() time.Time
	publisher events.Publisher
	converter *currency.Converter
	formatter *currency.Formatter
}

// ServiceOption is a functional option shared by every service constructor.
type ServiceOption func(*BaseService)

// WithClock replaces time.Now, mainly for tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.clock = clock
	}
}

// WithPublisher sets where domain events go.
func WithPublisher(p events.Publisher) ServiceOption {
	return func(s *BaseService) {
		s.publisher = p
	}
}

// WithHomeCurrency selects the currency multi-currency views convert into.
func WithHomeCurrency(code string) ServiceOption {
	return func(s *BaseService) {
		s.converter = currency.NewConverter(code)
	}
}

// WithLocale selects the locale amounts are formatted in.
func WithLocale(locale string) ServiceOption {
	return func(s *BaseService) {
		s.formatter = currency.NewFormatter(locale)
	}
}

func newBaseService(opts []ServiceOption) BaseService {
	base := BaseService{
		clock:     time.Now,
		publisher: events.Nop{},
		converter: currency.NewConverter(currency.DefaultHomeCurrency),
		formatter: currency.NewFormatter("en-IN"),
	}
	for _, opt := range opts {
		opt(&base)
	}
	return base
}

// Now returns the service clock's current time.
func (s *BaseService) Now() time.Time {
	return s.clock()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Publish sends a domain event. A failed publish is logged and never fails the request
// that produced it.
func (s *BaseService) Publish(ctx context.Context, eventType, userID string, payload any) {
	event, err := events.New(eventType, userID, payload, s.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to build event", slog.String("type", eventType))
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to publish event", slog.String("type", eventType), slog.String("event_id", event.ID))
	}
}
