package interp

import (
	"strconv"

	"github.com/JosuaKrause/redipy/internal/ir"
	"github.com/JosuaKrause/redipy/internal/rval"
	"github.com/JosuaKrause/redipy/rerr"
)

func (in *Interp) eval(fr *frame, e ir.Expr) (rval.Value, error) {
	switch n := e.(type) {
	case ir.Lit:
		return n.Value, nil
	case ir.Local:
		return fr.locals[n.ID], nil
	case ir.KeyRef:
		return rval.Str(fr.keys[n.ID]), nil
	case ir.ArgRef:
		return fr.args[n.ID], nil
	case ir.BinOpExpr:
		return in.evalBinOp(fr, n)
	case ir.UnOpExpr:
		return in.evalUnOp(fr, n)
	case ir.CompareExpr:
		return in.evalCompare(fr, n)
	case ir.LogicalExpr:
		return in.evalLogical(fr, n)
	case ir.IndexExpr:
		return in.evalIndex(fr, n)
	case ir.ConcatExpr:
		return in.evalConcat(fr, n)
	case ir.ToNum:
		v, err := in.eval(fr, n.Expr)
		if err != nil {
			return rval.Null(), err
		}
		return toNum(v), nil
	case ir.ToIntStr:
		v, err := in.eval(fr, n.Expr)
		if err != nil {
			return rval.Null(), err
		}
		return rval.Str(toIntStr(v)), nil
	case ir.ToStr:
		v, err := in.eval(fr, n.Expr)
		if err != nil {
			return rval.Null(), err
		}
		return rval.Str(v.RedisString()), nil
	case ir.CallExpr:
		return in.evalCall(fr, n)
	case ir.CondExpr:
		cond, err := in.eval(fr, n.If)
		if err != nil {
			return rval.Null(), err
		}
		if cond.Truthy() {
			return in.eval(fr, n.Then)
		}
		return in.eval(fr, n.Else)
	}
	panic("interp: unhandled expression node")
}

// toNum coerces v to Int or Float, Null if it cannot be interpreted as a
// number (§4.1's ToNum node).
func toNum(v rval.Value) rval.Value {
	switch v.Kind {
	case rval.KInt, rval.KFloat:
		return v
	case rval.KBool:
		if v.Bool {
			return rval.Int(1)
		}
		return rval.Int(0)
	case rval.KStr:
		if n, err := strconv.ParseInt(v.Str, 10, 64); err == nil {
			return rval.Int(n)
		}
		if f, err := strconv.ParseFloat(v.Str, 64); err == nil {
			return rval.Float(f)
		}
	}
	return rval.Null()
}

// toIntStr coerces v to the string form of its truncated integer value,
// empty string if v is not numeric (§4.1's ToIntStr node, used where the
// emitter needs an integer-looking ARGV-bound string).
func toIntStr(v rval.Value) string {
	switch n := toNum(v); n.Kind {
	case rval.KInt:
		return strconv.FormatInt(n.Int, 10)
	case rval.KFloat:
		return strconv.FormatInt(int64(n.Float), 10)
	default:
		return ""
	}
}

func asFloat(v rval.Value) (float64, bool) {
	switch n := toNum(v); n.Kind {
	case rval.KInt:
		return float64(n.Int), true
	case rval.KFloat:
		return n.Float, true
	default:
		return 0, false
	}
}

func bothInt(a, b rval.Value) (int64, int64, bool) {
	if a.Kind != rval.KInt && toNum(a).Kind != rval.KInt {
		return 0, 0, false
	}
	if b.Kind != rval.KInt && toNum(b).Kind != rval.KInt {
		return 0, 0, false
	}
	na, nb := toNum(a), toNum(b)
	if na.Kind != rval.KInt || nb.Kind != rval.KInt {
		return 0, 0, false
	}
	return na.Int, nb.Int, true
}

func (in *Interp) evalBinOp(fr *frame, n ir.BinOpExpr) (rval.Value, error) {
	l, err := in.eval(fr, n.Left)
	if err != nil {
		return rval.Null(), err
	}
	r, err := in.eval(fr, n.Right)
	if err != nil {
		return rval.Null(), err
	}

	if n.Op == ir.Div {
		lf, lok := asFloat(l)
		rf, rok := asFloat(r)
		if !lok || !rok {
			return rval.Null(), rerr.New(rerr.KindScriptError, "arithmetic on non-numeric value")
		}
		if rf == 0 {
			return rval.Null(), rerr.New(rerr.KindScriptError, "division by zero")
		}
		return rval.Float(lf / rf), nil
	}

	if li, ri, ok := bothInt(l, r); ok {
		switch n.Op {
		case ir.Add:
			return rval.Int(li + ri), nil
		case ir.Sub:
			return rval.Int(li - ri), nil
		case ir.Mul:
			return rval.Int(li * ri), nil
		case ir.Mod:
			if ri == 0 {
				return rval.Null(), rerr.New(rerr.KindScriptError, "division by zero")
			}
			return rval.Int(li % ri), nil
		}
	}

	lf, lok := asFloat(l)
	rf, rok := asFloat(r)
	if !lok || !rok {
		return rval.Null(), rerr.New(rerr.KindScriptError, "arithmetic on non-numeric value")
	}
	switch n.Op {
	case ir.Add:
		return rval.Float(lf + rf), nil
	case ir.Sub:
		return rval.Float(lf - rf), nil
	case ir.Mul:
		return rval.Float(lf * rf), nil
	case ir.Mod:
		if rf == 0 {
			return rval.Null(), rerr.New(rerr.KindScriptError, "division by zero")
		}
		return rval.Float(float64(int64(lf) % int64(rf))), nil
	}
	return rval.Null(), rerr.New(rerr.KindScriptError, "unknown binary operator")
}

func (in *Interp) evalUnOp(fr *frame, n ir.UnOpExpr) (rval.Value, error) {
	v, err := in.eval(fr, n.Expr)
	if err != nil {
		return rval.Null(), err
	}
	switch n.Op {
	case ir.Not:
		return rval.Bool(!v.Truthy()), nil
	case ir.Neg:
		num := toNum(v)
		switch num.Kind {
		case rval.KInt:
			return rval.Int(-num.Int), nil
		case rval.KFloat:
			return rval.Float(-num.Float), nil
		}
		return rval.Null(), rerr.New(rerr.KindScriptError, "negation of non-numeric value")
	}
	return rval.Null(), rerr.New(rerr.KindScriptError, "unknown unary operator")
}

// evalCompare implements Eq/Ne structurally, and Lt/Le/Gt/Ge with
// string→number coercion on mixed operand kinds (§4.1).
func (in *Interp) evalCompare(fr *frame, n ir.CompareExpr) (rval.Value, error) {
	l, err := in.eval(fr, n.Left)
	if err != nil {
		return rval.Null(), err
	}
	r, err := in.eval(fr, n.Right)
	if err != nil {
		return rval.Null(), err
	}

	if n.Op == ir.Eq || n.Op == ir.Ne {
		eq := valuesEqual(l, r)
		if n.Op == ir.Ne {
			eq = !eq
		}
		return rval.Bool(eq), nil
	}

	lf, lok := asFloat(l)
	rf, rok := asFloat(r)
	if lok && rok {
		switch n.Op {
		case ir.Lt:
			return rval.Bool(lf < rf), nil
		case ir.Le:
			return rval.Bool(lf <= rf), nil
		case ir.Gt:
			return rval.Bool(lf > rf), nil
		case ir.Ge:
			return rval.Bool(lf >= rf), nil
		}
	}
	ls, rs := l.RedisString(), r.RedisString()
	switch n.Op {
	case ir.Lt:
		return rval.Bool(ls < rs), nil
	case ir.Le:
		return rval.Bool(ls <= rs), nil
	case ir.Gt:
		return rval.Bool(ls > rs), nil
	case ir.Ge:
		return rval.Bool(ls >= rs), nil
	}
	return rval.Null(), rerr.New(rerr.KindScriptError, "unknown comparison operator")
}

func valuesEqual(a, b rval.Value) bool {
	if a.Kind == rval.KNull || b.Kind == rval.KNull {
		return a.Kind == b.Kind
	}
	aNum := a.Kind == rval.KInt || a.Kind == rval.KFloat
	bNum := b.Kind == rval.KInt || b.Kind == rval.KFloat
	if aNum && bNum {
		af, _ := asFloat(a)
		bf, _ := asFloat(b)
		return af == bf
	}
	if a.Kind != b.Kind {
		return false
	}
	return a.RedisString() == b.RedisString()
}

// evalLogical short-circuits left to right, returning the deciding
// operand's own value rather than a boolean (§4.1).
func (in *Interp) evalLogical(fr *frame, n ir.LogicalExpr) (rval.Value, error) {
	var last rval.Value = rval.Null()
	for _, op := range n.Operands {
		v, err := in.eval(fr, op)
		if err != nil {
			return rval.Null(), err
		}
		last = v
		if n.Op == ir.And && !v.Truthy() {
			return v, nil
		}
		if n.Op == ir.Or && v.Truthy() {
			return v, nil
		}
	}
	return last, nil
}

// evalIndex indexes a List 0-based, negative from the end, Null if out
// of range or the target is not a List (§4.1).
func (in *Interp) evalIndex(fr *frame, n ir.IndexExpr) (rval.Value, error) {
	target, err := in.eval(fr, n.Target)
	if err != nil {
		return rval.Null(), err
	}
	at, err := in.eval(fr, n.At)
	if err != nil {
		return rval.Null(), err
	}
	if target.Kind != rval.KList {
		return rval.Null(), nil
	}
	idx := toNum(at)
	if idx.Kind != rval.KInt {
		return rval.Null(), nil
	}
	i := idx.Int
	if i < 0 {
		i += int64(len(target.List))
	}
	if i < 0 || i >= int64(len(target.List)) {
		return rval.Null(), nil
	}
	return target.List[i], nil
}

func (in *Interp) evalConcat(fr *frame, n ir.ConcatExpr) (rval.Value, error) {
	var b []byte
	for _, part := range n.Parts {
		v, err := in.eval(fr, part)
		if err != nil {
			return rval.Null(), err
		}
		b = append(b, v.RedisString()...)
	}
	return rval.Str(string(b)), nil
}
