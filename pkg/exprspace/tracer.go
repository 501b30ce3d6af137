package exprspace

import (
	"time"

	"go.uber.org/zap"
)

// Tracer adapts the teacher's goroutine-based ContextMonitor into a
// synchronous operation counter suitable for the single-threaded
// cooperative scheduling model spec.md §5 mandates for the interpreter
// core: no background goroutine watches for cancellation here, since
// InterpretStep never blocks and has no context to cancel. What survives
// from ContextMonitor/ContextMetrics is the shape of the bookkeeping:
// per-operation-kind counts and cumulative timings, reported through the
// session's logger instead of a raw *log.Logger.
type Tracer struct {
	log     *zap.Logger
	metrics map[string]*tracerMetric
}

type tracerMetric struct {
	count    int64
	total    time.Duration
	lastTook time.Duration
}

// NewTracer returns a Tracer that logs through log (zap.NewNop() disables
// it).
func NewTracer(log *zap.Logger) *Tracer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracer{log: log, metrics: make(map[string]*tracerMetric)}
}

// OperationTracker tracks a single named operation's duration, mirroring
// the teacher's OperationTracker but completed synchronously by its
// caller rather than via a deferred goroutine callback.
type OperationTracker struct {
	tracer *Tracer
	name   string
	start  time.Time
}

// Start begins timing an operation named name.
func (t *Tracer) Start(name string) *OperationTracker {
	t.log.Debug("tracer.start", zap.String("operation", name))
	return &OperationTracker{tracer: t, name: name, start: time.Now()}
}

// Complete records the operation's elapsed time against its tracer.
func (ot *OperationTracker) Complete() {
	took := time.Since(ot.start)
	m, ok := ot.tracer.metrics[ot.name]
	if !ok {
		m = &tracerMetric{}
		ot.tracer.metrics[ot.name] = m
	}
	m.count++
	m.total += took
	m.lastTook = took
	ot.tracer.log.Debug("tracer.complete",
		zap.String("operation", ot.name),
		zap.Duration("took", took),
		zap.Int64("count", m.count),
	)
}

// Count reports how many times an operation named name has completed.
func (t *Tracer) Count(name string) int64 {
	m, ok := t.metrics[name]
	if !ok {
		return 0
	}
	return m.count
}

// AverageDuration reports the mean completion time for operation name,
// or zero if it has never completed.
func (t *Tracer) AverageDuration(name string) time.Duration {
	m, ok := t.metrics[name]
	if !ok || m.count == 0 {
		return 0
	}
	return m.total / time.Duration(m.count)
}
