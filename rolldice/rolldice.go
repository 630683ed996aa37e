package rolldice

import (
	"context"

	"github.com/rlindsey28/chat-dice/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

const name = "rolldice"

var (
	tracer = otel.Tracer(name)
)

type Metrics struct {
	RollCount metric.Int64Counter
	DiceCount metric.Int64Histogram
}

func (m *Metrics) InitMetrics() {
	log := logger.Get()
	meter := otel.Meter(name)

	var err error
	m.RollCount, err = meter.Int64Counter("dice.rolls",
		metric.WithDescription("The number of successful rolls"),
		metric.WithUnit("{roll}"))
	if err != nil {
		log.Error("failed to create counter", zap.Error(err))
		m.RollCount = noop.Int64Counter{}
	}
	m.DiceCount, err = meter.Int64Histogram("dice.count",
		metric.WithDescription("The number of dice thrown per roll"),
		metric.WithUnit("{die}"))
	if err != nil {
		log.Error("failed to create histogram", zap.Error(err))
		m.DiceCount = noop.Int64Histogram{}
	}
}

// Roller runs the whole notation pipeline: parse, validate, roll, format.
type Roller struct {
	Engine  *Engine
	Metrics Metrics
}

// NewRoller returns a Roller drawing from src, or DefaultSource if src is nil.
func NewRoller(src Source) *Roller {
	r := &Roller{Engine: NewEngine(src)}
	r.Metrics.InitMetrics()
	return r
}

// Roll turns raw notation typed by user into the line to broadcast.
// Errors are either *NotationSyntaxError or *RangeError.
func (r *Roller) Roll(ctx context.Context, user, input string) (string, error) {
	ctx, span := tracer.Start(ctx, "roll")
	defer span.End()
	log := logger.FromCtx(ctx)

	notation, err := Parse(input)
	if err != nil {
		log.Debug("invalid notation", zap.String("input", input))
		span.SetStatus(otelcodes.Error, "invalid notation")
		span.RecordError(err)
		return "", err
	}
	spec, err := Validate(notation)
	if err != nil {
		log.Debug("notation out of range", zap.Stringer("notation", notation), zap.Error(err))
		span.SetStatus(otelcodes.Error, "notation out of range")
		span.RecordError(err)
		return "", err
	}

	result := r.Engine.Roll(spec)
	sides := metric.WithAttributes(attribute.Int("dice.sides", spec.sides))
	r.Metrics.RollCount.Add(ctx, 1, sides)
	r.Metrics.DiceCount.Record(ctx, int64(spec.count), sides)

	span.SetAttributes(
		attribute.String("dice.notation", spec.String()),
		attribute.Int("dice.total", result.FinalTotal),
	)
	log.Info("rolled", zap.Stringer("spec", spec), zap.Ints("rolls", result.Rolls), zap.Int("total", result.FinalTotal))
	span.SetStatus(otelcodes.Ok, "success")
	return Format(user, spec, result), nil
}
