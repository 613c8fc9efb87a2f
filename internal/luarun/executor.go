// Package luarun is the gopher-lua differential-test harness
// (SPEC_FULL.md C6/C8): it runs the same Lua source luaemit produces
// for a real Redis server, against the in-process engine.Engine,
// letting tests assert the emitted script and the interpreter agree on
// every case. Grounded directly on the teacher's luaExecutor
// (internal/handler/lua.go), retyped from storage.Operations/resp.Value
// to engine.Engine/rval.Value and with a native cjson shim added since
// gopher-lua (unlike a real Redis server's embedded Lua) ships none.
package luarun

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/JosuaKrause/redipy/internal/engine"
	"github.com/JosuaKrause/redipy/internal/rval"
	"github.com/JosuaKrause/redipy/rerr"
	lua "github.com/yuin/gopher-lua"
)

// Executor runs one Lua script against e with the given KEYS/ARGV,
// mirroring newLuaExecutor/luaExecutor.Execute.
type Executor struct {
	e    *engine.Engine
	keys []string
	argv []string
}

// New creates an Executor bound to e, keys and argv.
func New(e *engine.Engine, keys, argv []string) *Executor {
	return &Executor{e: e, keys: keys, argv: argv}
}

// Run executes source (Lua text produced by internal/luaemit) and
// decodes its final cjson-encoded return value.
func (ex *Executor) Run(source string) (rval.Value, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: false})
	defer L.Close()

	registerCJSON(L)

	redisTable := L.NewTable()
	L.SetField(redisTable, "call", L.NewFunction(ex.redisCall))
	L.SetField(redisTable, "pcall", L.NewFunction(ex.redisPCall))
	L.SetField(redisTable, "error_reply", L.NewFunction(ex.redisErrorReply))
	L.SetField(redisTable, "status_reply", L.NewFunction(ex.redisStatusReply))
	L.SetField(redisTable, "log", L.NewFunction(ex.redisLog))
	L.SetField(redisTable, "sha1hex", L.NewFunction(ex.redisSha1Hex))
	L.SetGlobal("redis", redisTable)

	keysTable := L.NewTable()
	for i, k := range ex.keys {
		L.RawSetInt(keysTable, i+1, lua.LString(k))
	}
	L.SetGlobal("KEYS", keysTable)

	argvTable := L.NewTable()
	for i, a := range ex.argv {
		L.RawSetInt(argvTable, i+1, lua.LString(a))
	}
	L.SetGlobal("ARGV", argvTable)

	if err := L.DoString(source); err != nil {
		return rval.Null(), rerr.New(rerr.KindScriptError, fmt.Sprintf("error running script: %v", err))
	}

	result := L.Get(-1)
	L.Pop(1)

	s, ok := result.(lua.LString)
	if !ok {
		return rval.Null(), rerr.New(rerr.KindScriptError, "script did not return a JSON string")
	}
	return rval.DecodeWire([]byte(s))
}

func (ex *Executor) redisCall(L *lua.LState) int {
	v, err := ex.executeRedisCommand(L)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(valueToLua(L, v))
	return 1
}

func (ex *Executor) redisPCall(L *lua.LState) int {
	v, err := ex.executeRedisCommand(L)
	if err != nil {
		L.Push(errorReplyTable(L, err.Error()))
		return 1
	}
	L.Push(valueToLua(L, v))
	return 1
}

func (ex *Executor) redisErrorReply(L *lua.LState) int {
	L.Push(errorReplyTable(L, L.CheckString(1)))
	return 1
}

func (ex *Executor) redisStatusReply(L *lua.LState) int {
	L.Push(statusReplyTable(L, L.CheckString(1)))
	return 1
}

func (ex *Executor) redisLog(L *lua.LState) int { return 0 }

func (ex *Executor) redisSha1Hex(L *lua.LState) int {
	s := L.CheckString(1)
	L.Push(lua.LString(sha1Hex(s)))
	return 1
}

// executeRedisCommand blocks the same command classes the teacher
// blocks from within a script (pub/sub, transactions, nested
// scripting) and otherwise dispatches through the engine command table.
func (ex *Executor) executeRedisCommand(L *lua.LState) (rval.Value, error) {
	nargs := L.GetTop()
	if nargs == 0 {
		return rval.Null(), rerr.New(rerr.KindArityError, "please specify at least one argument for redis.call()")
	}
	cmdName := strings.ToUpper(L.CheckString(1))
	args := make([]string, nargs-1)
	for i := 2; i <= nargs; i++ {
		args[i-2] = luaArgToString(L.Get(i))
	}
	switch cmdName {
	case "SUBSCRIBE", "PSUBSCRIBE", "UNSUBSCRIBE", "PUNSUBSCRIBE", "PUBLISH",
		"MULTI", "EXEC", "DISCARD", "WATCH", "UNWATCH",
		"EVAL", "EVALSHA", "SCRIPT":
		return rval.Null(), rerr.New(rerr.KindNotImplemented, "this command is not allowed from a script")
	}
	return Dispatch(ex.e, cmdName, args)
}

func sha1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
