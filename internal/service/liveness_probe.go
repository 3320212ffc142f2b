package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/spec-kit/identity-service/internal/domain"
	"github.com/spec-kit/identity-service/internal/persistence"
	"github.com/spec-kit/identity-service/pkg/util/errorutil"
)

// RawQueryExecutor runs a single parameterless statement against the store.
type RawQueryExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ProbeRecorder counts probe outcomes.
type ProbeRecorder interface {
	RecordProbe(status string, code string)
}

// LivenessProbe checks data store connectivity and reports it as a HealthRecord.
type LivenessProbe struct {
	db         RawQueryExecutor
	production bool
	timeout    time.Duration
	logger     *zap.Logger
	metrics    ProbeRecorder
	now        func() time.Time
}

// LivenessOptions configures a LivenessProbe.
type LivenessOptions struct {
	Production bool
	Timeout    time.Duration
	Logger     *zap.Logger
	Metrics    ProbeRecorder
}

// NewLivenessProbe builds a probe over db.
func NewLivenessProbe(db RawQueryExecutor, opts LivenessOptions) *LivenessProbe {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 3 * time.Second
	}
	return &LivenessProbe{
		db:         db,
		production: opts.Production,
		timeout:    opts.Timeout,
		logger:     opts.Logger,
		metrics:    opts.Metrics,
		now:        time.Now,
	}
}

// Probe runs the round trip. It never fails: every error becomes a degraded record.
func (p *LivenessProbe) Probe(ctx context.Context) (record domain.HealthRecord) {
	defer func() {
		if r := recover(); r != nil {
			record = p.degraded(panicError{value: r})
		}
		if p.metrics != nil {
			p.metrics.RecordProbe(string(record.Status), record.ErrorCode)
		}
	}()

	if p.db == nil {
		return p.degraded(errProbeUnconfigured)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if _, err := p.db.Exec(ctx, persistence.AliveQuery); err != nil {
		return p.degraded(err)
	}

	return domain.HealthRecord{
		Status:    domain.HealthStatusOK,
		DB:        domain.DBStateConnected,
		Timestamp: p.now().UTC(),
	}
}

func (p *LivenessProbe) degraded(err error) domain.HealthRecord {
	failure := persistence.ClassifyError(err)
	message := errorutil.SafeMessage(err)

	record := domain.HealthRecord{
		Status:    domain.HealthStatusDegraded,
		DB:        domain.DBStateDisconnected,
		Timestamp: p.now().UTC(),
		ErrorCode: failure.Code,
		ErrorHint: failure.Hint,
	}
	if p.production {
		record.DBErrorMessage = message
	} else {
		record.Error = message
	}

	p.logger.Warn("liveness probe degraded",
		zap.String("error_code", failure.Code),
		zap.String("error_hint", failure.Hint),
		zap.String("error", message),
	)
	return record
}

type probeError string

func (e probeError) Error() string { return string(e) }

const errProbeUnconfigured = probeError("no data store configured")

type panicError struct {
	value any
}

func (e panicError) Error() string { return "probe panicked" }
