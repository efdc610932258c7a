package tool

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/soyeahso/gh-manager/internal/logging"
)

// Dispatcher executes tool call requests against a registry and normalizes
// every outcome into a Result envelope. A bad call never terminates the
// process; only configuration failure at startup is fatal.
type Dispatcher struct {
	reg *Registry
	log *logging.Logger
}

// NewDispatcher creates a dispatcher over the given registry.
func NewDispatcher(reg *Registry, log *logging.Logger) *Dispatcher {
	return &Dispatcher{reg: reg, log: log.Sub("dispatch")}
}

// Dispatch resolves the tool, binds arguments, invokes the handler, and
// wraps the outcome. Handler errors and panics are converted to Failure
// results carrying rendered text; no typed fault reaches the transport.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Result {
	callID := uuid.NewString()
	start := time.Now()

	desc, err := d.reg.Resolve(req.Name)
	if err != nil {
		d.log.Warn().Str("call_id", callID).Str("tool", req.Name).Msg("unresolved tool")
		return Failure(err.Error())
	}

	args, err := Bind(desc, req.Arguments)
	if err != nil {
		d.log.Warn().Str("call_id", callID).Str("tool", req.Name).Err(err).Msg("argument binding failed")
		return Failure(err.Error())
	}

	res := d.invoke(ctx, desc, args, callID)

	d.log.Info().
		Str("call_id", callID).
		Str("tool", req.Name).
		Dur("duration", time.Since(start)).
		Bool("error", res.IsError).
		Msg("tool call completed")
	return res
}

// invoke runs the handler with panic containment.
func (d *Dispatcher) invoke(ctx context.Context, desc *Descriptor, args Args, callID string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Str("call_id", callID).Str("tool", desc.Name).Any("panic", r).Msg("handler panicked")
			res = Failure(fmt.Sprintf("Error: internal failure in %s: %v", desc.Name, r))
		}
	}()

	text, err := desc.Handler(ctx, args)
	if err != nil {
		return Failure("Error: " + err.Error())
	}
	return Success(text)
}
