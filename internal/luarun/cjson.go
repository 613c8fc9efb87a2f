package luarun

import (
	"encoding/json"
	"sort"

	lua "github.com/yuin/gopher-lua"
)

// cjsonNull is the harness's stand-in for a real Redis server's
// cjson.null userdata sentinel (gopher-lua ships no cjson library at
// all, so this package supplies one — see registerCJSON). Using a
// single *lua.LUserData value for both Decode's nulls and the emitted
// script's own cjson.null literal lets __truthy/__nf/__tostr (in
// luaemit's helper library) compare against it with plain Lua `==`
// regardless of which path produced the null.
var cjsonNull = &lua.LUserData{}

// registerCJSON installs a native-Go cjson global on L, the local
// harness's substitute for the cjson library a real Redis server's Lua
// environment always has built in. This mirrors the teacher's own
// pattern of exposing host functionality into Lua as plain Go
// functions (redis.call, redis.sha1hex in internal/handler/lua.go)
// rather than pulling in a separate third-party cjson implementation.
func registerCJSON(L *lua.LState) {
	t := L.NewTable()
	L.SetField(t, "null", cjsonNull)
	L.SetField(t, "encode", L.NewFunction(cjsonEncode))
	L.SetField(t, "decode", L.NewFunction(cjsonDecode))
	L.SetGlobal("cjson", t)
}

func cjsonEncode(L *lua.LState) int {
	v := L.CheckAny(1)
	data, err := json.Marshal(luaToAny(v))
	if err != nil {
		L.RaiseError("cjson encode error: %v", err)
		return 0
	}
	L.Push(lua.LString(data))
	return 1
}

func cjsonDecode(L *lua.LState) int {
	s := L.CheckString(1)
	var raw any
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		L.RaiseError("cjson decode error: %v", err)
		return 0
	}
	L.Push(anyToLua(L, raw))
	return 1
}

// luaToAny converts a Lua value to a plain Go value encoding/json can
// marshal. A table with only positive, contiguous integer keys starting
// at 1 is treated as an array; anything else (string keys, or empty) is
// treated as an object, matching real cjson's own array-detection rule.
func luaToAny(v lua.LValue) any {
	switch x := v.(type) {
	case *lua.LUserData:
		if x == cjsonNull {
			return nil
		}
		return nil
	case lua.LBool:
		return bool(x)
	case lua.LNumber:
		return float64(x)
	case lua.LString:
		return string(x)
	case *lua.LTable:
		n := x.Len()
		isArray := n > 0
		if isArray {
			x.ForEach(func(k, _ lua.LValue) {
				if kn, ok := k.(lua.LNumber); !ok || float64(int(kn)) != float64(kn) || int(kn) < 1 || int(kn) > n {
					isArray = false
				}
			})
		}
		if isArray {
			out := make([]any, n)
			for i := 1; i <= n; i++ {
				out[i-1] = luaToAny(x.RawGetInt(i))
			}
			return out
		}
		out := make(map[string]any)
		x.ForEach(func(k, v lua.LValue) { out[k.String()] = luaToAny(v) })
		return out
	default:
		return nil
	}
}

// anyToLua is luaToAny's inverse, used by cjson.decode.
func anyToLua(L *lua.LState, raw any) lua.LValue {
	switch x := raw.(type) {
	case nil:
		return cjsonNull
	case bool:
		return lua.LBool(x)
	case float64:
		return lua.LNumber(x)
	case string:
		return lua.LString(x)
	case []any:
		t := L.NewTable()
		for i, item := range x {
			L.RawSetInt(t, i+1, anyToLua(L, item))
		}
		return t
	case map[string]any:
		t := L.NewTable()
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			L.SetField(t, k, anyToLua(L, x[k]))
		}
		return t
	default:
		return cjsonNull
	}
}
