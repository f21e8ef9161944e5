package radicals

import (
	"log/slog"
)

// Option is an option used when creating an Engine.
type Option interface {
	engineOption(*Engine)
}

type (
	loggeropt struct{ l *slog.Logger }
	approxopt float64
)

func (o loggeropt) engineOption(e *Engine) {
	e.log = o.l
}

func (o approxopt) engineOption(e *Engine) {
	e.approx = true
	e.prec = float64(o)
}

// WithLogger sets the logger the engine writes debug records to. A nil logger
// means slog.Default.
func WithLogger(l *slog.Logger) Option {
	return loggeropt{l}
}

// WithApproxPrecision makes the engine try to recognize results whose exact
// form is absent or rational as radicals anyway, using ConvertToRadical with the
// given precision. Such results are reported in Result.Approx, never in
// Result.Radical.
func WithApproxPrecision(precision float64) Option {
	return approxopt(precision)
}
