package luarun

import (
	"testing"

	"github.com/JosuaKrause/redipy/internal/engine"
	"github.com/JosuaKrause/redipy/internal/interp"
	"github.com/JosuaKrause/redipy/internal/luaemit"
	"github.com/JosuaKrause/redipy/internal/rval"
	"github.com/JosuaKrause/redipy/internal/script"
)

// TestDifferentialIncrCounter builds one script with the symbolic
// builder and asserts the interpreter and the emitted-Lua path (run
// through this package's gopher-lua harness) agree on the result —
// the actual purpose of this package.
func TestDifferentialIncrCounter(t *testing.T) {
	c := script.New()
	key := c.Key("counter")
	str := script.String(key)
	c.Root().Do(str.IncrBy(script.Int(5)))
	c.SetReturnValue(str.Get())
	built := c.Build()

	interpResult, err := interp.New(engine.New()).Run(built, []string{"counter"}, nil)
	if err != nil {
		t.Fatalf("interp run: %v", err)
	}

	em := luaemit.New()
	emitted, err := em.Emit(built)
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	argv, err := rval.EncodeWire(rval.Value{Kind: rval.KList})
	if err != nil {
		t.Fatalf("encode argv: %v", err)
	}
	luaResult, err := New(engine.New(), []string{"counter"}, []string{string(argv)}).Run(emitted.Source)
	if err != nil {
		t.Fatalf("lua run: %v", err)
	}

	if interpResult.Kind != luaResult.Kind || interpResult.Str != luaResult.Str {
		t.Fatalf("interp=%#v lua=%#v disagree", interpResult, luaResult)
	}
}

// TestDifferentialZAddRange exercises the helperFuncOps path (zadd,
// zrange) where the builder's fixed positional contract diverges from
// real Redis's own optional-token calling convention.
func TestDifferentialZAddRange(t *testing.T) {
	c := script.New()
	key := c.Key("z")
	z := script.ZSet(key)
	c.Root().Do(z.Add([]script.Expr{script.Str("a"), script.Int(1), script.Str("b"), script.Int(2)}))
	c.SetReturnValue(z.Range(script.Int(0), script.Int(-1), script.Bool(false), script.Bool(false)))
	built := c.Build()

	interpResult, err := interp.New(engine.New()).Run(built, []string{"z"}, nil)
	if err != nil {
		t.Fatalf("interp run: %v", err)
	}

	em := luaemit.New()
	emitted, err := em.Emit(built)
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	argv, _ := rval.EncodeWire(rval.Value{Kind: rval.KList})
	luaResult, err := New(engine.New(), []string{"z"}, []string{string(argv)}).Run(emitted.Source)
	if err != nil {
		t.Fatalf("lua run: %v", err)
	}

	if interpResult.Kind != rval.KList || luaResult.Kind != rval.KList {
		t.Fatalf("expected lists, interp=%#v lua=%#v", interpResult, luaResult)
	}
	if len(interpResult.List) != len(luaResult.List) {
		t.Fatalf("length mismatch: interp=%d lua=%d", len(interpResult.List), len(luaResult.List))
	}
	for i := range interpResult.List {
		if interpResult.List[i].Str != luaResult.List[i].Str {
			t.Fatalf("element %d mismatch: interp=%#v lua=%#v", i, interpResult.List[i], luaResult.List[i])
		}
	}
}
