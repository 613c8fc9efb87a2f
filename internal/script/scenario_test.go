package script

import (
	"testing"

	"github.com/JosuaKrause/redipy/internal/engine"
	"github.com/JosuaKrause/redipy/internal/interp"
	"github.com/JosuaKrause/redipy/internal/rval"
)

// filterListScript partitions the list at key "inp" into "left" (values
// less than arg "cmp") and "right" (everything else), draining "inp" in
// the process. Exercises While, If, Assign and FnContext.Local together.
func filterListScript() *FnContext {
	fc := New()
	inp := fc.Key("inp")
	left := fc.Key("left")
	right := fc.Key("right")
	cmp := fc.Arg("cmp")

	inpList := List(inp)
	item := fc.Local("item", nil)

	w := fc.Root().While(Gt(inpList.LLen(), Int(0)))
	w.Assign(item, inpList.LPop())
	then, els := w.If(Lt(item, cmp))
	then.Do(List(left).RPush(item))
	els.Do(List(right).RPush(item))
	return fc
}

func TestInterpFilterListScenario(t *testing.T) {
	e := engine.New()
	if _, err := e.RPush("mylist", []string{"1", "3", "2", "4"}); err != nil {
		t.Fatalf("seed RPush: %v", err)
	}

	r := NewRegistry()
	f := r.Register(filterListScript())
	in := interp.New(e)

	_, err := f.Call(in,
		map[string]string{"inp": "mylist", "left": "small", "right": "big"},
		map[string]rval.Value{"cmp": rval.Int(3)})
	if err != nil {
		t.Fatalf("call: %v", err)
	}

	assertRange := func(key string, want []string) {
		t.Helper()
		got, err := e.LRange(key, 0, -1)
		if err != nil {
			t.Fatalf("LRange %s: %v", key, err)
		}
		if len(got) != len(want) {
			t.Fatalf("LRange %s: got %v, want %v", key, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("LRange %s: got %v, want %v", key, got, want)
			}
		}
	}
	assertRange("mylist", nil)
	assertRange("small", []string{"1", "2"})
	assertRange("big", []string{"3", "4"})
}

// cascadingGetScript walks a stack of hash "frames" named
// <prefix><idx>, innermost (highest index) first, returning the first
// frame's value for arg "name" or Null if none has it. Exercises
// While/If/Break together with Concat/ToStr key construction.
func cascadingGetScript() *FnContext {
	fc := New()
	prefix := fc.Key("frame_prefix")
	name := fc.Arg("name")
	depth := fc.Arg("depth")

	idx := fc.Local("idx", Sub(depth, Int(1)))
	result := fc.Local("result", NullLit())

	w := fc.Root().While(Ge(idx, Int(0)))
	frameKey := Concat(prefix, ToStr(idx))
	h := Hash(frameKey)
	then, els := w.If(h.Exists(name))
	then.Assign(result, h.Get(name))
	then.Break()
	els.Assign(idx, Sub(idx, Int(1)))

	fc.SetReturnValue(result)
	return fc
}

func TestInterpCascadingGetScenario(t *testing.T) {
	e := engine.New()
	if _, err := e.HSet("frame0", map[string]string{"a": "1"}); err != nil {
		t.Fatalf("seed frame0: %v", err)
	}
	if _, err := e.HSet("frame1", map[string]string{"b": "2"}); err != nil {
		t.Fatalf("seed frame1: %v", err)
	}

	r := NewRegistry()
	f := r.Register(cascadingGetScript())
	in := interp.New(e)

	call := func(name string) rval.Value {
		t.Helper()
		v, err := f.Call(in,
			map[string]string{"frame_prefix": "frame"},
			map[string]rval.Value{"name": rval.Str(name), "depth": rval.Int(2)})
		if err != nil {
			t.Fatalf("call(%q): %v", name, err)
		}
		return v
	}

	if v := call("a"); v.Kind != rval.KStr || v.Str != "1" {
		t.Fatalf("get_cascading(a): got %+v, want \"1\"", v)
	}
	if v := call("b"); v.Kind != rval.KStr || v.Str != "2" {
		t.Fatalf("get_cascading(b): got %+v, want \"2\"", v)
	}
	if v := call("c"); !v.IsNull() {
		t.Fatalf("get_cascading(c): got %+v, want Null", v)
	}
}

// TestInterpExprNodeCoverage exercises IndexExpr, CondExpr and
// LogicalExpr together, the three eval.go paths the two named scenarios
// above don't reach on their own.
func TestInterpExprNodeCoverage(t *testing.T) {
	fc := New()
	key := fc.Key("k")
	fc.Root().Do(List(key).RPush(Str("a"), Str("b"), Str("c")))

	second := Index(List(key).LRange(Int(0), Int(-1)), Int(1))
	isB := Cond(Eq(second, Str("b")), Str("yes"), Str("no"))
	fc.SetReturnValue(Or(Bool(false), isB))

	r := NewRegistry()
	f := r.Register(fc)
	in := interp.New(engine.New())

	v, err := f.Call(in, map[string]string{"k": "lst"}, nil)
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if v.Kind != rval.KStr || v.Str != "yes" {
		t.Fatalf("got %+v, want \"yes\"", v)
	}
}

// TestInterpWhileContinueSkipsRestOfBody checks that Continue resumes the
// loop condition check instead of falling through to the rest of the
// body, the one exec.go signal the two scenarios above don't trigger.
func TestInterpWhileContinueSkipsRestOfBody(t *testing.T) {
	fc := New()
	n := fc.Arg("n")
	i := fc.Local("i", Int(0))
	sum := fc.Local("sum", Int(0))

	w := fc.Root().While(Lt(i, n))
	w.Assign(i, Add(i, Int(1)))
	then, _ := w.If(Eq(Mod(i, Int(2)), Int(0)))
	then.Continue()
	w.Assign(sum, Add(sum, i))
	fc.SetReturnValue(sum)

	r := NewRegistry()
	f := r.Register(fc)
	in := interp.New(engine.New())

	v, err := f.Call(in, nil, map[string]rval.Value{"n": rval.Int(5)})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	// odd i in [1,5]: 1 + 3 + 5 = 9
	if v.Kind != rval.KInt || v.Int != 9 {
		t.Fatalf("got %+v, want 9", v)
	}
}
