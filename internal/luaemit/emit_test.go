package luaemit

import (
	"strings"
	"testing"

	"github.com/JosuaKrause/redipy/internal/ir"
	"github.com/JosuaKrause/redipy/internal/script"
)

func counterScript() *script.FnContext {
	fc := script.New()
	key := fc.Key("counter")
	arg := fc.Arg("delta")
	counter := script.String(key)
	fc.SetReturnValue(counter.IncrBy(arg))
	return fc
}

func TestEmitProducesKeysArgvAndRedisCall(t *testing.T) {
	em := New()
	out, err := em.Emit(counterScript().Build())
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(out.Source, "KEYS[1]") {
		t.Fatalf("expected KEYS[1] reference, got:\n%s", out.Source)
	}
	if !strings.Contains(out.Source, "redis.call(\"incrby\"") {
		t.Fatalf("expected redis.call(\"incrby\" ...), got:\n%s", out.Source)
	}
	if !strings.Contains(out.Source, "cjson.decode(ARGV[1])") {
		t.Fatalf("expected ARGV decoding preamble, got:\n%s", out.Source)
	}
}

func TestEmitHashIsDeterministicAndContentAddressed(t *testing.T) {
	em := New()
	a, err := em.Emit(counterScript().Build())
	if err != nil {
		t.Fatalf("Emit a: %v", err)
	}
	b, err := em.Emit(counterScript().Build())
	if err != nil {
		t.Fatalf("Emit b: %v", err)
	}
	if a.Hash != b.Hash {
		t.Fatalf("expected identical source to hash identically, got %q vs %q", a.Hash, b.Hash)
	}
	if a.Source != b.Source {
		t.Fatalf("expected identical source text")
	}

	other := script.New()
	other.SetReturnValue(script.Int(1))
	c, err := em.Emit(other.Build())
	if err != nil {
		t.Fatalf("Emit c: %v", err)
	}
	if c.Hash == a.Hash {
		t.Fatalf("expected different scripts to hash differently")
	}
}

func TestRegisterPatchRewritesCallBeforeEmission(t *testing.T) {
	em := New()
	fc := script.New()
	fc.RegisterPlugin(script.PluginDef{Name: "myplugin", MinArgs: 0})
	fc.SetReturnValue(fc.Plugin("myplugin"))

	patched := false
	em.RegisterPatch("myplugin", func(c ir.CallExpr) ir.CallExpr {
		patched = true
		c.Kind = ir.KindRedis
		c.Name = "ping"
		return c
	})

	out, err := em.Emit(fc.Build())
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !patched {
		t.Fatal("expected patch function to run")
	}
	if !strings.Contains(out.Source, "redis.call(\"ping\")") {
		t.Fatalf("expected patched call in output, got:\n%s", out.Source)
	}
}
