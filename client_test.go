package redipy

import (
	"context"
	"testing"

	"github.com/JosuaKrause/redipy/internal/rval"
	"github.com/JosuaKrause/redipy/internal/script"
)

func newMemoryClient(t *testing.T) *Client {
	t.Helper()
	c, err := NewClient(Config{Backend: "memory"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestClientSetGet(t *testing.T) {
	c := newMemoryClient(t)
	ctx := context.Background()

	if _, _, err := c.Get(ctx, "missing"); err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "missing"); ok {
		t.Fatal("expected miss")
	}

	if _, _, err := c.Set(ctx, "k", "v", SetOptions{}); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := c.Get(ctx, "k")
	if err != nil || !ok || v != "v" {
		t.Fatalf("get after set: v=%q ok=%v err=%v", v, ok, err)
	}
}

func TestClientSetNX(t *testing.T) {
	c := newMemoryClient(t)
	ctx := context.Background()

	ok, err := c.SetNX(ctx, "k", "first")
	if err != nil || !ok {
		t.Fatalf("first setnx: ok=%v err=%v", ok, err)
	}
	ok, err = c.SetNX(ctx, "k", "second")
	if err != nil || ok {
		t.Fatalf("second setnx should fail: ok=%v err=%v", ok, err)
	}
	v, _, _ := c.Get(ctx, "k")
	if v != "first" {
		t.Fatalf("value changed: %q", v)
	}
}

func TestClientHash(t *testing.T) {
	c := newMemoryClient(t)
	ctx := context.Background()

	if _, err := c.HSet(ctx, "h", map[string]string{"a": "1", "b": "2"}); err != nil {
		t.Fatalf("hset: %v", err)
	}
	m, err := c.HGetAll(ctx, "h")
	if err != nil {
		t.Fatalf("hgetall: %v", err)
	}
	if m["a"] != "1" || m["b"] != "2" {
		t.Fatalf("got %+v", m)
	}
}

func TestClientZSet(t *testing.T) {
	c := newMemoryClient(t)
	ctx := context.Background()

	if _, err := c.ZAdd(ctx, "z", map[string]float64{"x": 1, "y": 2}); err != nil {
		t.Fatalf("zadd: %v", err)
	}
	members, err := c.ZRange(ctx, "z", 0, -1, false, false)
	if err != nil {
		t.Fatalf("zrange: %v", err)
	}
	if len(members) != 2 || members[0] != "x" || members[1] != "y" {
		t.Fatalf("got %v", members)
	}
}

func TestClientPrefixIsolatesKeys(t *testing.T) {
	ctx := context.Background()
	a, err := NewClient(Config{Backend: "memory", Prefix: "a:"})
	if err != nil {
		t.Fatalf("NewClient a: %v", err)
	}
	if _, _, err := a.Set(ctx, "shared", "value-from-a", SetOptions{}); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := a.Get(ctx, "shared")
	if err != nil || !ok || v != "value-from-a" {
		t.Fatalf("got v=%q ok=%v err=%v", v, ok, err)
	}
	// The wrapped dispatcher sees only the namespaced key, never the
	// bare one.
	inner := a.d.(*prefixDispatcher).inner
	raw, err := inner.Do(ctx, Command{Name: "GET", Keys: []string{"a:shared"}})
	if err != nil || raw.Kind != rval.KStr || raw.Str != "value-from-a" {
		t.Fatalf("prefixed key: got %#v err=%v", raw, err)
	}
	bare, err := inner.Do(ctx, Command{Name: "GET", Keys: []string{"shared"}})
	if err != nil || bare.Kind != rval.KNull {
		t.Fatalf("bare key should be absent: got %#v err=%v", bare, err)
	}
}

func TestClientPipelineOrdersResults(t *testing.T) {
	c := newMemoryClient(t)
	ctx := context.Background()

	p := c.Pipeline()
	p.Queue("SET", []string{"k1"}, []string{"v1"})
	p.Queue("SET", []string{"k2"}, []string{"v2"})
	p.Queue("GET", []string{"k1"}, nil)
	p.Queue("GET", []string{"k2"}, nil)
	results := p.Execute(ctx)

	if len(results) != 4 {
		t.Fatalf("got %d results", len(results))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Fatalf("result %d: %v", i, r.Err)
		}
	}
	if results[2].Value.Str != "v1" || results[3].Value.Str != "v2" {
		t.Fatalf("got %+v", results)
	}
}

func TestClientRegisterScriptRunsLocally(t *testing.T) {
	c := newMemoryClient(t)
	ctx := context.Background()

	fc := script.New()
	key := fc.Key("counter")
	arg := fc.Arg("delta")
	counter := script.String(key)
	fc.SetReturnValue(counter.IncrBy(arg))

	s, err := c.RegisterScript(fc)
	if err != nil {
		t.Fatalf("RegisterScript: %v", err)
	}

	result, err := s.Call(ctx, map[string]string{"counter": "mycounter"}, map[string]rval.Value{
		"delta": rval.Int(5),
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if result.Int != 5 {
		t.Fatalf("got %+v", result)
	}

	result, err = s.Call(ctx, map[string]string{"counter": "mycounter"}, map[string]rval.Value{
		"delta": rval.Int(3),
	})
	if err != nil {
		t.Fatalf("Call 2: %v", err)
	}
	if result.Int != 8 {
		t.Fatalf("got %+v", result)
	}
}
