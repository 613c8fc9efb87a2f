package rediswire

import (
	"errors"
	"testing"

	"github.com/JosuaKrause/redipy/internal/rval"
	"github.com/JosuaKrause/redipy/rerr"
)

func TestFromGoRedisScalars(t *testing.T) {
	if v := fromGoRedis(int64(42)); v.Kind != rval.KInt || v.Int != 42 {
		t.Fatalf("int64: got %+v", v)
	}
	if v := fromGoRedis("hello"); v.Kind != rval.KStr || v.Str != "hello" {
		t.Fatalf("string: got %+v", v)
	}
	if v := fromGoRedis(nil); !v.IsNull() {
		t.Fatalf("nil: got %+v", v)
	}
}

func TestFromGoRedisList(t *testing.T) {
	v := fromGoRedis([]interface{}{"a", int64(1), nil})
	if v.Kind != rval.KList || len(v.List) != 3 {
		t.Fatalf("got %+v", v)
	}
	if v.List[0].Str != "a" || v.List[1].Int != 1 || !v.List[2].IsNull() {
		t.Fatalf("elements: got %+v", v.List)
	}
}

func TestWireErrorClassification(t *testing.T) {
	cases := []struct {
		msg  string
		kind rerr.Kind
	}{
		{"WRONGTYPE Operation against a key holding the wrong kind of value", rerr.KindTypeMismatch},
		{"NOSCRIPT No matching script", rerr.KindNotFound},
		{"ERR wrong number of arguments for 'get' command", rerr.KindArityError},
		{"ERR something else", rerr.KindScriptError},
		{"connection refused", rerr.KindConnectionError},
	}
	for _, tc := range cases {
		err := wireError(errors.New(tc.msg))
		kind, ok := rerr.KindOf(err)
		if !ok || kind != tc.kind {
			t.Errorf("%q: got kind %v ok=%v, want %v", tc.msg, kind, ok, tc.kind)
		}
	}
}

func TestIsNoScriptChecksKindNotString(t *testing.T) {
	err := wireError(errors.New("NOSCRIPT No matching script"))
	if !IsNoScript(err) {
		t.Fatalf("expected IsNoScript true, got error %v", err)
	}
	other := wireError(errors.New("ERR something else"))
	if IsNoScript(other) {
		t.Fatalf("expected IsNoScript false for %v", other)
	}
}

func TestScriptResultDecodesWireJSON(t *testing.T) {
	v, err := scriptResult(`{"a":1,"b":[true,null]}`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != rval.KMap {
		t.Fatalf("got %+v", v)
	}
	if v.Map["a"].Int != 1 {
		t.Fatalf("a: got %+v", v.Map["a"])
	}
}

func TestScriptResultRejectsNonString(t *testing.T) {
	if _, err := scriptResult(int64(5), nil); err == nil {
		t.Fatal("expected error for non-string script reply")
	}
}
