package interp

import "github.com/JosuaKrause/redipy/internal/rval"

// generalOp is a host-neutral operation with no engine dependency
// (Kind == KindGeneral), e.g. Lua's own tonumber/tostring/type.
type generalOp func(args []rval.Value) (rval.Value, error)

var generalOps = map[string]generalOp{
	"tonumber": func(args []rval.Value) (rval.Value, error) {
		return toNum(args[0]), nil
	},
	"tostring": func(args []rval.Value) (rval.Value, error) {
		return rval.Str(args[0].RedisString()), nil
	},
	"type": func(args []rval.Value) (rval.Value, error) {
		switch args[0].Kind {
		case rval.KNull:
			return rval.Str("nil"), nil
		case rval.KStr:
			return rval.Str("string"), nil
		case rval.KInt, rval.KFloat:
			return rval.Str("number"), nil
		case rval.KBool:
			return rval.Str("boolean"), nil
		default:
			return rval.Str("table"), nil
		}
	},
}
