package interp

import (
	"github.com/JosuaKrause/redipy/internal/engine"
	"github.com/JosuaKrause/redipy/internal/rval"
)

// helperOp is an emitter/interpreter-internal operation with no direct
// Redis command counterpart (Kind == KindHelper) — on the interpreter
// side these still reach the engine, since the split from redisOps
// exists to give the Lua emitter somewhere to hang a helper function,
// not because the interpreter itself needs different plumbing.
type helperOp func(e *engine.Engine, args []rval.Value) (rval.Value, error)

var helperOps = map[string]helperOp{
	// lpop_count/rpop_count are the list-returning count variant of
	// LPOP/RPOP, as opposed to redisOps' scalar "lpop"/"rpop".
	"lpop_count": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		vs, err := e.LPop(args[0].Str, toNum(args[1]).Int)
		if err != nil {
			return rval.Null(), err
		}
		return rval.StrList(vs), nil
	},
	"rpop_count": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		vs, err := e.RPop(args[0].Str, toNum(args[1]).Int)
		if err != nil {
			return rval.Null(), err
		}
		return rval.StrList(vs), nil
	},
	// spop_count is SPOP's count-variant list form.
	"spop_count": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		vs, err := e.SPop(args[0].Str, toNum(args[1]).Int)
		if err != nil {
			return rval.Null(), err
		}
		return rval.StrList(vs), nil
	},
	// srandmember_count is SRANDMEMBER's count-variant list form
	// (negative count allows repeats).
	"srandmember_count": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		vs, err := e.SRandMember(args[0].Str, toNum(args[1]).Int)
		if err != nil {
			return rval.Null(), err
		}
		return rval.StrList(vs), nil
	},
	// zpopmin_count/zpopmax_count are ZPOPMIN/ZPOPMAX's count-variant
	// list form, flattened [member, score, ...].
	"zpopmin_count": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		ms, err := e.ZPopMin(args[0].Str, toNum(args[1]).Int)
		if err != nil {
			return rval.Null(), err
		}
		return flatZMembers(engine.ToZMembers(ms), true), nil
	},
	"zpopmax_count": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		ms, err := e.ZPopMax(args[0].Str, toNum(args[1]).Int)
		if err != nil {
			return rval.Null(), err
		}
		return flatZMembers(engine.ToZMembers(ms), true), nil
	},
}
