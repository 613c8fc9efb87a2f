package script

import (
	"testing"

	"github.com/JosuaKrause/redipy/internal/engine"
	"github.com/JosuaKrause/redipy/internal/interp"
	"github.com/JosuaKrause/redipy/internal/rval"
)

func counterScript() *FnContext {
	fc := New()
	key := fc.Key("counter")
	arg := fc.Arg("delta")
	counter := String(key)
	fc.SetReturnValue(counter.IncrBy(arg))
	return fc
}

func TestRegistryRegisterCachesByContentHash(t *testing.T) {
	r := NewRegistry()
	a := r.Register(counterScript())
	b := r.Register(counterScript())
	if a != b {
		t.Fatalf("expected identical FnContext shapes to share one ExecFunc, got distinct hashes %q vs %q", a.Hash(), b.Hash())
	}
}

func TestRegistryRegisterDistinguishesDifferentScripts(t *testing.T) {
	r := NewRegistry()
	a := r.Register(counterScript())

	other := New()
	other.SetReturnValue(Int(1))
	b := r.Register(other)

	if a.Hash() == b.Hash() {
		t.Fatalf("expected distinct scripts to hash differently, both got %q", a.Hash())
	}
}

func TestRegistryGetExistsFlush(t *testing.T) {
	r := NewRegistry()
	f := r.Register(counterScript())

	got, ok := r.Get(f.Hash())
	if !ok || got != f {
		t.Fatalf("Get: got %+v ok=%v", got, ok)
	}

	exists := r.Exists([]string{f.Hash(), "deadbeef"})
	if !exists[0] || exists[1] {
		t.Fatalf("Exists: got %v", exists)
	}

	r.Flush()
	if _, ok := r.Get(f.Hash()); ok {
		t.Fatal("expected Flush to clear the registry")
	}
}

func TestExecFuncNames(t *testing.T) {
	r := NewRegistry()
	f := r.Register(counterScript())
	keys, args := f.Names()
	if len(keys) != 1 || keys[0] != "counter" {
		t.Fatalf("keys: got %v", keys)
	}
	if len(args) != 1 || args[0] != "delta" {
		t.Fatalf("args: got %v", args)
	}
}

func TestExecFuncCallMissingBindingErrors(t *testing.T) {
	r := NewRegistry()
	f := r.Register(counterScript())
	in := interp.New(engine.New())

	if _, err := f.Call(in, nil, map[string]rval.Value{"delta": rval.Int(1)}); err == nil {
		t.Fatal("expected error for missing key binding")
	}
	if _, err := f.Call(in, map[string]string{"counter": "c"}, nil); err == nil {
		t.Fatal("expected error for missing arg binding")
	}
}

func TestExecFuncCallRunsAgainstInterp(t *testing.T) {
	r := NewRegistry()
	f := r.Register(counterScript())
	in := interp.New(engine.New())

	v, err := f.Call(in, map[string]string{"counter": "c"}, map[string]rval.Value{"delta": rval.Int(4)})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if v.Int != 4 {
		t.Fatalf("got %+v", v)
	}

	v, err = f.Call(in, map[string]string{"counter": "c"}, map[string]rval.Value{"delta": rval.Int(6)})
	if err != nil {
		t.Fatalf("call 2: %v", err)
	}
	if v.Int != 10 {
		t.Fatalf("got %+v", v)
	}
}

func TestRegistryLoadAll(t *testing.T) {
	r := NewRegistry()
	fns, err := r.LoadAll([]*FnContext{counterScript(), counterScript()})
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(fns) != 2 || fns[0].Hash() != fns[1].Hash() {
		t.Fatalf("got %+v", fns)
	}
}
