package luarun

import (
	"strconv"

	"github.com/JosuaKrause/redipy/internal/rval"
	lua "github.com/yuin/gopher-lua"
)

// valueToLua converts an engine/dispatch result into the shape a real
// Redis server's RESP-to-Lua conversion would produce (mirrors the
// teacher's respToLua in internal/handler/lua.go): RESP has no
// dedicated null or boolean type, so Null becomes Lua false and Bool
// becomes the integer reply 0/1, exactly as real Redis's Lua bridge
// does for redis.call's return value.
func valueToLua(L *lua.LState, v rval.Value) lua.LValue {
	switch v.Kind {
	case rval.KNull:
		return lua.LFalse
	case rval.KBool:
		if v.Bool {
			return lua.LNumber(1)
		}
		return lua.LNumber(0)
	case rval.KStr:
		return lua.LString(v.Str)
	case rval.KInt:
		return lua.LNumber(v.Int)
	case rval.KFloat:
		return lua.LNumber(v.Float)
	case rval.KList:
		t := L.NewTable()
		for i, item := range v.List {
			L.RawSetInt(t, i+1, valueToLua(L, item))
		}
		return t
	case rval.KMap:
		t := L.NewTable()
		i := 1
		for _, k := range rval.SortedKeys(v.Map) {
			L.RawSetInt(t, i, lua.LString(k))
			L.RawSetInt(t, i+1, valueToLua(L, v.Map[k]))
			i += 2
		}
		return t
	default:
		return lua.LFalse
	}
}

// luaArgToString converts a Lua value passed as a redis.call/pcall
// argument down to the string every real Redis command argument
// actually is on the wire.
func luaArgToString(v lua.LValue) string {
	switch x := v.(type) {
	case lua.LString:
		return string(x)
	case lua.LNumber:
		f := float64(x)
		if f == float64(int64(f)) {
			return strconv.FormatInt(int64(f), 10)
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	case lua.LBool:
		if bool(x) {
			return "1"
		}
		return "0"
	default:
		return v.String()
	}
}

// errorReplyTable builds the {err = msg} table real Redis's
// redis.error_reply and a failed redis.call both raise/return, per
// luaToResp's mirror-image handling in the teacher.
func errorReplyTable(L *lua.LState, msg string) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "err", lua.LString(msg))
	return t
}

func statusReplyTable(L *lua.LState, msg string) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "ok", lua.LString(msg))
	return t
}
