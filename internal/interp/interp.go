// Package interp implements the IR interpreter (SPEC_FULL.md C5): it
// executes a compiled ir.Script directly against an engine.Engine,
// dispatching Call nodes through the same closed per-kind tables the
// Lua emitter's op policy is built from, grounded on the teacher's
// single-switch Handler.Handle dispatch style (internal/handler/handler.go)
// but realized as map-based tables per SPEC_FULL.md §4.1.
package interp

import (
	"github.com/JosuaKrause/redipy/internal/engine"
	"github.com/JosuaKrause/redipy/internal/ir"
	"github.com/JosuaKrause/redipy/internal/rval"
	"github.com/JosuaKrause/redipy/rerr"
)

// PluginOp is a registry-scoped plugin implementation for Kind == KindPlugin
// call nodes. Name/arity are enforced by the builder at registration time
// (package script); the interpreter only ever invokes what it is given.
type PluginOp func(args []rval.Value) (rval.Value, error)

// Interp runs scripts against one engine. It is not safe for concurrent
// Run calls against the same engine mutating state (the engine itself
// serializes via its own mutex, but a Run's locals/frame are not shared,
// so concurrent Run calls against the same engine are safe; concurrent
// mutation and observation within one Run are not, per §5).
type Interp struct {
	Engine  *engine.Engine
	Plugins map[string]PluginOp
}

// New creates an interpreter bound to engine e.
func New(e *engine.Engine) *Interp {
	return &Interp{Engine: e}
}

// Run executes script with the given key and argument bindings (already
// resolved to their declared order — ExecFunc, package script, binds by
// name before calling Run) and returns its collapsed result value.
func (in *Interp) Run(script *ir.Script, keys []string, args []rval.Value) (rval.Value, error) {
	if len(keys) != len(script.Keys) {
		return rval.Null(), rerr.ArityError("script keys")
	}
	if len(args) != len(script.Args) {
		return rval.Null(), rerr.ArityError("script args")
	}

	fr := &frame{keys: keys, args: args, locals: make([]rval.Value, len(script.Locals))}
	for i, decl := range script.Locals {
		if decl.Init == nil {
			fr.locals[i] = rval.Null()
			continue
		}
		v, err := in.eval(fr, decl.Init)
		if err != nil {
			return rval.Null(), wrapScriptError(err)
		}
		fr.locals[i] = v
	}

	sig, retVal, err := in.execBlock(script.Body, fr)
	if err != nil {
		return rval.Null(), wrapScriptError(err)
	}
	if sig == sigReturn {
		return rval.CollapseOuter(retVal), nil
	}

	if script.ReturnExpr == nil {
		return rval.Null(), nil
	}
	v, err := in.eval(fr, script.ReturnExpr)
	if err != nil {
		return rval.Null(), wrapScriptError(err)
	}
	return rval.CollapseOuter(v), nil
}

// wrapScriptError normalizes any error raised during execution into the
// ScriptError kind per spec.md §7, unless it already carries a more
// specific kind (e.g. a TypeMismatch bubbled straight up from the engine
// keeps its own kind so callers can still distinguish it with errors.Is).
func wrapScriptError(err error) error {
	if _, ok := rerr.KindOf(err); ok {
		return err
	}
	return rerr.Wrap(rerr.KindScriptError, err.Error(), err)
}

type frame struct {
	keys   []string
	args   []rval.Value
	locals []rval.Value
}

type signal int

const (
	sigNone signal = iota
	sigBreak
	sigContinue
	sigReturn
)
