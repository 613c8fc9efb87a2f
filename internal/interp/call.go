package interp

import (
	"github.com/JosuaKrause/redipy/internal/ir"
	"github.com/JosuaKrause/redipy/internal/rval"
	"github.com/JosuaKrause/redipy/rerr"
)

func (in *Interp) evalCall(fr *frame, n ir.CallExpr) (rval.Value, error) {
	args := make([]rval.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := in.eval(fr, a)
		if err != nil {
			return rval.Null(), err
		}
		args[i] = v
	}

	switch n.Kind {
	case ir.KindRedis:
		op, ok := redisOps[n.Name]
		if !ok {
			return rval.Null(), rerr.New(rerr.KindNotImplemented, "unknown redis op: "+n.Name)
		}
		return op(in.Engine, args)
	case ir.KindGeneral:
		op, ok := generalOps[n.Name]
		if !ok {
			return rval.Null(), rerr.New(rerr.KindNotImplemented, "unknown general op: "+n.Name)
		}
		return op(args)
	case ir.KindHelper:
		op, ok := helperOps[n.Name]
		if !ok {
			return rval.Null(), rerr.New(rerr.KindNotImplemented, "unknown helper op: "+n.Name)
		}
		return op(in.Engine, args)
	case ir.KindPlugin:
		op, ok := in.Plugins[n.Name]
		if !ok {
			return rval.Null(), rerr.New(rerr.KindNotImplemented, "unknown plugin op: "+n.Name)
		}
		return op(args)
	}
	return rval.Null(), rerr.New(rerr.KindParseError, "unknown call kind")
}
