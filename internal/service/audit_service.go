package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/identity-service/internal/events"
)

// AuditStream is the Redis stream receiving auth events.
const AuditStream = "auth:events"

// DefaultStreamTimeout bounds each stream append so an unreachable Redis cannot stall a login.
const DefaultStreamTimeout = 500 * time.Millisecond

// StreamAppender appends entries to an external event stream.
type StreamAppender interface {
	Enabled() bool
	AppendStream(ctx context.Context, stream string, values map[string]any) error
}

// AuditService records authentication events.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	stream     StreamAppender
	metrics    AuthRecorder
	timeout    time.Duration
}

// AuthRecorder counts auth outcomes.
type AuthRecorder interface {
	RecordAuthEvent(eventType string)
}

// NewAuditService creates the service. stream and metrics may be nil.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, stream StreamAppender, metrics AuthRecorder) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger,
		stream:     stream,
		metrics:    metrics,
		timeout:    DefaultStreamTimeout,
	}
}

// WithStreamTimeout overrides the per-append deadline.
func (a *AuditService) WithStreamTimeout(d time.Duration) *AuditService {
	if d > 0 {
		a.timeout = d
	}
	return a
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserRegistered, a.handleUserRegistered)
	a.dispatcher.Subscribe(events.EventUserLoggedIn, a.handleUserLoggedIn)
	a.dispatcher.Subscribe(events.EventLoginFailed, a.handleLoginFailed)
}

func (a *AuditService) handleUserRegistered(ctx context.Context, event events.Event) error {
	a.logger.Info("UserRegistered", zap.String("user_id", event.UserID), zap.String("login_code", event.LoginCode))
	return a.record(ctx, event)
}

func (a *AuditService) handleUserLoggedIn(ctx context.Context, event events.Event) error {
	a.logger.Info("UserLoggedIn", zap.String("user_id", event.UserID))
	return a.record(ctx, event)
}

func (a *AuditService) handleLoginFailed(ctx context.Context, event events.Event) error {
	a.logger.Info("LoginFailed", zap.String("login_code", event.LoginCode))
	return a.record(ctx, event)
}

func (a *AuditService) record(ctx context.Context, event events.Event) error {
	if a.metrics != nil {
		a.metrics.RecordAuthEvent(string(event.Type))
	}
	if a.stream == nil || !a.stream.Enabled() {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	return a.stream.AppendStream(ctx, AuditStream, map[string]any{
		"id":         event.ID,
		"type":       string(event.Type),
		"user_id":    event.UserID,
		"login_code": event.LoginCode,
		"timestamp":  event.Timestamp.Format(time.RFC3339Nano),
	})
}
