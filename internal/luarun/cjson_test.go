package luarun

import (
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func TestCJSONRoundTrip(t *testing.T) {
	L := lua.NewState()
	defer L.Close()
	registerCJSON(L)

	script := `
local decoded = cjson.decode('{"a":1,"b":[1,2,3],"c":null}')
return cjson.encode(decoded.b)
`
	if err := L.DoString(script); err != nil {
		t.Fatalf("run: %v", err)
	}
	result := L.Get(-1)
	L.Pop(1)
	s, ok := result.(lua.LString)
	if !ok {
		t.Fatalf("expected string result, got %T", result)
	}
	if string(s) != "[1,2,3]" {
		t.Fatalf("got %q", s)
	}
}

func TestCJSONNullSentinel(t *testing.T) {
	L := lua.NewState()
	defer L.Close()
	registerCJSON(L)

	script := `
local decoded = cjson.decode('{"c":null}')
if decoded.c == cjson.null then
  return cjson.encode("is-null")
end
return cjson.encode("not-null")
`
	if err := L.DoString(script); err != nil {
		t.Fatalf("run: %v", err)
	}
	result := L.Get(-1)
	L.Pop(1)
	if string(result.(lua.LString)) != `"is-null"` {
		t.Fatalf("got %v", result)
	}
}
