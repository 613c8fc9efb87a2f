package redipy

import (
	"context"
	"time"

	"github.com/JosuaKrause/redipy/internal/dispatch"
	"github.com/JosuaKrause/redipy/internal/engine"
	"github.com/JosuaKrause/redipy/internal/luarun"
	"github.com/JosuaKrause/redipy/internal/rval"
	"github.com/JosuaKrause/redipy/redipymetrics"
)

// Dispatcher is C7's thin command-routing interface (spec.md §4.6):
// one method, one Command, one Result — localDispatcher and
// backend/rediswire's Dispatcher both satisfy it so Client,
// Pipeline and ExecFunc are backend-agnostic. Aliased from
// internal/dispatch for the same import-cycle reason as Command.
type Dispatcher = dispatch.Dispatcher

// localDispatcher routes directly to an in-process engine.Engine via
// internal/luarun's command table — the same real-Redis-convention
// dispatch the Lua differential harness uses, reused here so the two
// callers of "run one real Redis command against an Engine" never
// drift apart. Grounded on the teacher's handler_ops.go calling
// storage.Operations directly, one function per command.
type localDispatcher struct {
	e *engine.Engine
}

func newLocalDispatcher() *localDispatcher { return &localDispatcher{e: engine.New()} }

// newLocalDispatcherFor wraps an already-constructed engine.Engine, used
// when the same engine must also back a script Interp (Client.local).
func newLocalDispatcherFor(e *engine.Engine) *localDispatcher { return &localDispatcher{e: e} }

func (d *localDispatcher) Do(ctx context.Context, cmd Command) (rval.Value, error) {
	start := time.Now()
	v, err := luarun.Dispatch(d.e, cmd.Name, assembleArgs(cmd))
	redipymetrics.RecordCommand(cmd.Name, time.Since(start), err != nil)
	return v, err
}

// prefixDispatcher prepends a namespace prefix to every key of every
// Command before forwarding to inner, leaving Args untouched — the
// decorator shape grounded on the teacher's cache.CachedStore wrapping
// storage.Backend, here wrapping Dispatcher instead.
type prefixDispatcher struct {
	inner  Dispatcher
	prefix string
}

func newPrefixDispatcher(inner Dispatcher, prefix string) Dispatcher {
	if prefix == "" {
		return inner
	}
	return &prefixDispatcher{inner: inner, prefix: prefix}
}

func (d *prefixDispatcher) Do(ctx context.Context, cmd Command) (rval.Value, error) {
	prefixed := make([]string, len(cmd.Keys))
	for i, k := range cmd.Keys {
		prefixed[i] = d.prefix + k
	}
	return d.inner.Do(ctx, Command{Name: cmd.Name, Keys: prefixed, Args: cmd.Args})
}

var (
	_ Dispatcher = (*localDispatcher)(nil)
	_ Dispatcher = (*prefixDispatcher)(nil)
)
