package redipy

import (
	"context"

	"github.com/JosuaKrause/redipy/backend/rediswire"
	"github.com/JosuaKrause/redipy/internal/luaemit"
	"github.com/JosuaKrause/redipy/internal/rval"
	"github.com/JosuaKrause/redipy/internal/script"
	"github.com/JosuaKrause/redipy/rerr"
	"golang.org/x/sync/singleflight"
)

var emitter = luaemit.New()

// singleflightGroup collapses concurrently-invoked re-EVAL calls for the
// same script hash into one EVAL round trip on the external backend
// (SPEC_FULL.md §5): the NOSCRIPT race only ever needs the script body
// sent once, not once per waiting goroutine.
var singleflightGroup singleflight.Group

// Script is the callable handle spec.md §4.7 returns from
// register_script: register_script(fn_ctx) → callable(keys, args).
type Script struct {
	c    *Client
	exec *script.ExecFunc
	emit *luaemit.Emitted
}

// RegisterScript freezes c's symbolic IR, validates it, and — on the
// redis backend — pre-emits its Lua realization, mirroring C8's
// "register_script is pure" contract (spec.md §4.7): no engine or
// network access happens here.
func (cl *Client) RegisterScript(c *script.FnContext) (*Script, error) {
	exec := cl.registry.Register(c)
	s := &Script{c: cl, exec: exec}
	if cl.wire != nil {
		emitted, err := emitter.Emit(exec.Script())
		if err != nil {
			return nil, rerr.Wrap(rerr.KindParseError, "emitting script", err)
		}
		s.emit = emitted
	}
	return s, nil
}

// Call binds keys and args by name and runs the script: directly
// against the interpreter on the memory backend, or via EVALSHA (EVAL
// fallback on NOSCRIPT) on the redis backend — spec.md §4.7's
// "marshals args to JSON for the external path, runs either the
// interpreter or EVALSHA".
func (s *Script) Call(ctx context.Context, keys map[string]string, args map[string]rval.Value) (rval.Value, error) {
	if s.c.local != nil {
		prefixed := make(map[string]string, len(keys))
		for k, v := range keys {
			prefixed[k] = s.c.prefix + v
		}
		return s.exec.Call(s.c.local, prefixed, args)
	}
	return s.callRemote(ctx, keys, args)
}

func (s *Script) callRemote(ctx context.Context, keys map[string]string, args map[string]rval.Value) (rval.Value, error) {
	orderedKeys, orderedArgs, err := s.bindOrder(keys, args)
	if err != nil {
		return rval.Null(), err
	}
	prefixedKeys := make([]string, len(orderedKeys))
	for i, k := range orderedKeys {
		prefixedKeys[i] = s.c.prefix + k
	}
	argvJSON, err := rval.EncodeWire(rval.Value{Kind: rval.KList, List: orderedArgs})
	if err != nil {
		return rval.Null(), rerr.Wrap(rerr.KindParseError, "encoding script args", err)
	}

	v, err, _ := singleflightGroup.Do(s.emit.Hash, func() (interface{}, error) {
		res, evalErr := s.c.wire.EvalSha(ctx, s.emit.Hash, prefixedKeys, string(argvJSON))
		if evalErr != nil && rediswire.IsNoScript(evalErr) {
			res, evalErr = s.c.wire.Eval(ctx, s.emit.Source, prefixedKeys, string(argvJSON))
		}
		return res, evalErr
	})
	if err != nil {
		return rval.Null(), err
	}
	return v.(rval.Value), nil
}

// bindOrder resolves keys/args maps to the script's declared order,
// the same name→position binding ExecFunc.Call performs locally —
// duplicated here because the remote path marshals to JSON instead of
// calling ExecFunc.Call directly.
func (s *Script) bindOrder(keys map[string]string, args map[string]rval.Value) ([]string, []rval.Value, error) {
	keyNames, argNames := s.exec.Names()
	orderedKeys := make([]string, len(keyNames))
	for i, name := range keyNames {
		v, ok := keys[name]
		if !ok {
			return nil, nil, rerr.New(rerr.KindScriptError, "missing key: "+name)
		}
		orderedKeys[i] = v
	}
	orderedArgs := make([]rval.Value, len(argNames))
	for i, name := range argNames {
		v, ok := args[name]
		if !ok {
			return nil, nil, rerr.New(rerr.KindScriptError, "missing arg: "+name)
		}
		orderedArgs[i] = v
	}
	return orderedKeys, orderedArgs, nil
}
