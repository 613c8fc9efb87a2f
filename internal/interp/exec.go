package interp

import (
	"github.com/JosuaKrause/redipy/internal/ir"
	"github.com/JosuaKrause/redipy/internal/rval"
)

// execBlock runs every statement in b in order, stopping early on the
// first Break/Continue/Return signal or error and propagating it to the
// caller (the enclosing While or the Script's top level).
func (in *Interp) execBlock(b *ir.Block, fr *frame) (signal, rval.Value, error) {
	for _, s := range b.Stmts {
		sig, v, err := in.execStmt(s, fr)
		if err != nil || sig != sigNone {
			return sig, v, err
		}
	}
	return sigNone, rval.Null(), nil
}

func (in *Interp) execStmt(s ir.Stmt, fr *frame) (signal, rval.Value, error) {
	switch st := s.(type) {
	case *ir.AssignStmt:
		v, err := in.eval(fr, st.Expr)
		if err != nil {
			return sigNone, rval.Null(), err
		}
		fr.locals[st.Target.ID] = v
		return sigNone, rval.Null(), nil

	case *ir.ExprStmt:
		if _, err := in.eval(fr, st.Expr); err != nil {
			return sigNone, rval.Null(), err
		}
		return sigNone, rval.Null(), nil

	case *ir.IfStmt:
		cond, err := in.eval(fr, st.Cond)
		if err != nil {
			return sigNone, rval.Null(), err
		}
		if cond.Truthy() {
			return in.execBlock(st.Then, fr)
		}
		return in.execBlock(st.Else, fr)

	case *ir.WhileStmt:
		for {
			cond, err := in.eval(fr, st.Cond)
			if err != nil {
				return sigNone, rval.Null(), err
			}
			if !cond.Truthy() {
				return sigNone, rval.Null(), nil
			}
			sig, v, err := in.execBlock(st.Body, fr)
			if err != nil {
				return sigNone, rval.Null(), err
			}
			switch sig {
			case sigBreak:
				return sigNone, rval.Null(), nil
			case sigReturn:
				return sigReturn, v, nil
			}
			// sigNone or sigContinue: fall through to re-check Cond.
		}

	case *ir.BreakStmt:
		return sigBreak, rval.Null(), nil

	case *ir.ContinueStmt:
		return sigContinue, rval.Null(), nil

	case *ir.ReturnStmt:
		v, err := in.eval(fr, st.Expr)
		if err != nil {
			return sigNone, rval.Null(), err
		}
		return sigReturn, v, nil
	}
	panic("interp: unhandled statement node")
}
