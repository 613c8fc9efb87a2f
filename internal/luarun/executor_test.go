package luarun

import (
	"testing"

	"github.com/JosuaKrause/redipy/internal/engine"
	"github.com/JosuaKrause/redipy/internal/rval"
)

func TestExecutorRunsSetGet(t *testing.T) {
	e := engine.New()
	ex := New(e, []string{"k"}, []string{"v"})
	v, err := ex.Run(`
redis.call("set", KEYS[1], ARGV[1])
return cjson.encode(redis.call("get", KEYS[1]))
`)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if v.Kind != rval.KStr || v.Str != "v" {
		t.Fatalf("got %#v", v)
	}
}

// A raw redis.call GET miss reaches Lua as false, as on a real Redis
// server; the emitter's __nf wrapper is what turns it into null.
func TestExecutorMissingGetIsFalse(t *testing.T) {
	e := engine.New()
	ex := New(e, []string{"missing"}, nil)
	v, err := ex.Run(`return cjson.encode(redis.call("get", KEYS[1]))`)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if v.Kind != rval.KBool || v.Bool {
		t.Fatalf("expected false for missing key, got %#v", v)
	}
}

func TestExecutorBlocksScriptingCommands(t *testing.T) {
	e := engine.New()
	ex := New(e, nil, nil)
	_, err := ex.Run(`return cjson.encode(redis.call("eval", "return 1", "0"))`)
	if err == nil {
		t.Fatalf("expected redis.call(eval) to be rejected from within a script")
	}
}

func TestExecutorPCallReturnsErrorTable(t *testing.T) {
	e := engine.New()
	ex := New(e, nil, nil)
	v, err := ex.Run(`
local ok = redis.pcall("eval", "return 1", "0")
if type(ok) == "table" and ok.err then
  return cjson.encode("caught")
end
return cjson.encode("missed")
`)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if v.Str != "caught" {
		t.Fatalf("expected pcall to surface an error table, got %#v", v)
	}
}

func TestExecutorZAddAndZRange(t *testing.T) {
	e := engine.New()
	ex := New(e, []string{"z"}, nil)
	v, err := ex.Run(`
redis.call("zadd", KEYS[1], "1", "a", "2", "b")
return cjson.encode(redis.call("zrange", KEYS[1], "0", "-1"))
`)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if v.Kind != rval.KList || len(v.List) != 2 {
		t.Fatalf("got %#v", v)
	}
}
