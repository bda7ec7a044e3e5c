package resolve

import (
	"context"
	"log/slog"
)

// strategy is one discrete attempt to obtain a field's value from a specific
// source. run returns ok=false for a clean miss; an error (transport,
// status, decode) is logged and treated exactly the same way.
type strategy[T any] struct {
	name string
	run  func(ctx context.Context) (T, bool, error)
}

// firstSuccess tries strategies in order and returns the first usable
// result plus the name of the strategy that produced it. Failures never
// propagate; an exhausted chain reports ok=false.
func firstSuccess[T any](ctx context.Context, log *slog.Logger, field string, strategies []strategy[T]) (T, string, bool) {
	var zero T
	for _, s := range strategies {
		v, ok, err := s.run(ctx)
		if err != nil {
			log.Debug("strategy failed", "field", field, "strategy", s.name, "error", err)
			continue
		}
		if !ok {
			log.Debug("strategy empty", "field", field, "strategy", s.name)
			continue
		}
		return v, s.name, true
	}
	return zero, "", false
}
