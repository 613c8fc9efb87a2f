package ir

import (
	"testing"

	"github.com/JosuaKrause/redipy/internal/rval"
)

func TestBlockAppendChaining(t *testing.T) {
	b := &Block{}
	b.Append(&ExprStmt{Expr: Lit{Value: rval.Int(1)}}).
		Append(&BreakStmt{})
	if len(b.Stmts) != 2 {
		t.Fatalf("len(Stmts) = %d, want 2", len(b.Stmts))
	}
	if _, ok := b.Stmts[1].(*BreakStmt); !ok {
		t.Errorf("Stmts[1] = %T, want *BreakStmt", b.Stmts[1])
	}
}

func TestCallKindString(t *testing.T) {
	cases := map[CallKind]string{
		KindRedis:   "redis",
		KindGeneral: "general",
		KindHelper:  "helper",
		KindPlugin:  "plugin",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", k, got, want)
		}
	}
}

func TestExprNodesAreDistinctTypes(t *testing.T) {
	// A Call node should round-trip through the Expr interface without
	// losing its concrete identity, confirming the tagged union is
	// closed-but-distinguishable as ir.Kind expects.
	var e Expr = CallExpr{Kind: KindRedis, Name: "get", Args: []Expr{KeyRef{ID: 0}}}
	call, ok := e.(CallExpr)
	if !ok {
		t.Fatalf("type assertion to CallExpr failed")
	}
	if call.Name != "get" || call.Kind != KindRedis {
		t.Errorf("unexpected CallExpr contents: %#v", call)
	}
}
