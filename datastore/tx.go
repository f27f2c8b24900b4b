package datastore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/neogan74/entitystore/engine"
	"github.com/neogan74/entitystore/internal/logger"
	"github.com/neogan74/entitystore/internal/metrics"
	"github.com/neogan74/entitystore/telemetry"
)

// transaction is the standard unit-of-work built by the default supplier.
type transaction struct {
	id            string
	session       engine.Session
	scrollEnabled bool
	scrollMode    engine.ScrollMode
	log           logger.Logger
	started       time.Time
	finalized     bool
}

// NewTransaction is the default TransactionSupplier. It begins an engine
// transaction on the session and wraps it in the standard unit-of-work.
func NewTransaction(session engine.Session, scrollEnabled bool, scrollMode engine.ScrollMode) (Transaction, error) {
	if err := session.Begin(); err != nil {
		metrics.RecordTransactionOp("begin", err)
		return nil, err
	}

	id := uuid.NewString()
	metrics.RecordTransactionOp("begin", nil)
	metrics.TransactionsInFlight.Inc()

	t := &transaction{
		id:            id,
		session:       session,
		scrollEnabled: scrollEnabled,
		scrollMode:    scrollMode,
		log:           logger.GetDefault().WithTransaction(id),
		started:       time.Now(),
	}
	t.log.Debug("Transaction begun",
		logger.Bool("scroll_enabled", scrollEnabled),
		logger.String("scroll_mode", scrollMode.String()))
	return t, nil
}

func (t *transaction) Save(_ context.Context, obj any) error {
	err := t.session.Persist(obj)
	metrics.RecordTransactionOp("save", err)
	return err
}

func (t *transaction) Delete(_ context.Context, obj any) error {
	err := t.session.Remove(obj)
	metrics.RecordTransactionOp("delete", err)
	return err
}

func (t *transaction) Load(_ context.Context, entity, id string) (any, error) {
	obj, err := t.session.Load(entity, id)
	metrics.RecordTransactionOp("load", err)
	return obj, err
}

func (t *transaction) LoadAll(ctx context.Context, entity string) (engine.Cursor, error) {
	_, span := telemetry.StartSpan(ctx, "entitystore.LoadAll",
		trace.WithAttributes(
			attribute.String("entity", entity),
			attribute.Bool("scroll_enabled", t.scrollEnabled),
			attribute.String("scroll_mode", t.scrollMode.String()),
		))
	defer span.End()

	if !t.scrollEnabled {
		objs, err := t.session.All(entity)
		metrics.RecordTransactionOp("load_all", err)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		return newSliceCursor(objs), nil
	}

	cursor, err := t.session.Scroll(entity, t.scrollMode)
	metrics.RecordTransactionOp("load_all", err)
	if err != nil {
		span.RecordError(err)
	}
	return cursor, err
}

func (t *transaction) Commit(ctx context.Context) error {
	if t.finalized {
		return ErrTxFinalized
	}
	_, span := telemetry.StartSpan(ctx, "entitystore.Commit",
		trace.WithAttributes(attribute.String("tx_id", t.id)))
	defer span.End()

	err := t.session.Commit()
	t.finalize("commit", err)
	if err != nil {
		span.RecordError(err)
	}
	return err
}

func (t *transaction) Rollback(ctx context.Context) error {
	if t.finalized {
		return ErrTxFinalized
	}
	_, span := telemetry.StartSpan(ctx, "entitystore.Rollback",
		trace.WithAttributes(attribute.String("tx_id", t.id)))
	defer span.End()

	err := t.session.Rollback()
	t.finalize("rollback", err)
	if err != nil {
		span.RecordError(err)
	}
	return err
}

func (t *transaction) Close() error {
	if t.finalized {
		return nil
	}
	t.log.Warn("Transaction closed without commit or rollback, rolling back")
	err := t.session.Rollback()
	t.finalize("rollback", err)
	return err
}

// finalize records metrics and marks the unit-of-work done. Engine errors
// still finalize: the underlying transaction is gone either way.
func (t *transaction) finalize(operation string, err error) {
	t.finalized = true
	metrics.RecordTransactionOp(operation, err)
	metrics.TransactionsInFlight.Dec()
	metrics.TransactionDuration.Observe(time.Since(t.started).Seconds())

	if err != nil {
		t.log.Error("Transaction finalization failed",
			logger.String("operation", operation), logger.Error(err))
		return
	}
	t.log.Debug("Transaction finalized",
		logger.String("operation", operation),
		logger.Duration("elapsed", time.Since(t.started)))
}
