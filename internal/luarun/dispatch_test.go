package luarun

import (
	"testing"

	"github.com/JosuaKrause/redipy/internal/engine"
	"github.com/JosuaKrause/redipy/internal/rval"
)

func TestDispatchSetGet(t *testing.T) {
	e := engine.New()
	if _, err := Dispatch(e, "set", []string{"k", "v"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, err := Dispatch(e, "get", []string{"k"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v.Kind != rval.KStr || v.Str != "v" {
		t.Fatalf("got %#v", v)
	}
}

func TestDispatchGetMissingIsNull(t *testing.T) {
	e := engine.New()
	v, err := Dispatch(e, "get", []string{"missing"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v.Kind != rval.KNull {
		t.Fatalf("expected null, got %#v", v)
	}
}

func TestDispatchSetNXTokens(t *testing.T) {
	e := engine.New()
	if _, err := Dispatch(e, "set", []string{"k", "v1"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, err := Dispatch(e, "set", []string{"k", "v2", "NX"})
	if err != nil {
		t.Fatalf("set nx: %v", err)
	}
	if v.Kind != rval.KNull {
		t.Fatalf("NX set on existing key should report null, got %#v", v)
	}
	got, _ := Dispatch(e, "get", []string{"k"})
	if got.Str != "v1" {
		t.Fatalf("expected value unchanged, got %#v", got)
	}
}

func TestDispatchZAddAndRange(t *testing.T) {
	e := engine.New()
	if _, err := Dispatch(e, "zadd", []string{"z", "1", "a", "2", "b"}); err != nil {
		t.Fatalf("zadd: %v", err)
	}
	v, err := Dispatch(e, "zrange", []string{"z", "0", "-1", "WITHSCORES"})
	if err != nil {
		t.Fatalf("zrange: %v", err)
	}
	if v.Kind != rval.KList || len(v.List) != 4 {
		t.Fatalf("expected 4-element flattened list, got %#v", v)
	}
	if v.List[0].Str != "a" || v.List[1].Float != 1 {
		t.Fatalf("unexpected order/values: %#v", v.List)
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	e := engine.New()
	if _, err := Dispatch(e, "nosuchcmd", nil); err == nil {
		t.Fatalf("expected error for unknown command")
	}
}

func TestDispatchHGetAll(t *testing.T) {
	e := engine.New()
	if _, err := Dispatch(e, "hset", []string{"h", "f1", "v1", "f2", "v2"}); err != nil {
		t.Fatalf("hset: %v", err)
	}
	v, err := Dispatch(e, "hgetall", []string{"h"})
	if err != nil {
		t.Fatalf("hgetall: %v", err)
	}
	if v.Kind != rval.KList || len(v.List) != 4 {
		t.Fatalf("expected flattened field/value list, got %#v", v)
	}
}
