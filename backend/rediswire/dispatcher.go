// Package rediswire is the external backend adapter (SPEC_FULL.md C7):
// it wraps a *redis.Client (go-redis/v9) and implements the same
// Dispatcher shape internal/dispatch describes, so redipy.Client can
// drive either a live Redis server or the in-process engine through one
// interface. Grounded on the teacher's own integration-test harness,
// the only place in the teacher repo that plays the *client* role this
// package needs — tests/integration_test.go builds a *redis.Client and
// issues commands with the same generic client.Do(ctx, args...) call
// this dispatcher uses internally.
package rediswire

import (
	"context"
	"strings"
	"time"

	"github.com/JosuaKrause/redipy/internal/dispatch"
	"github.com/JosuaKrause/redipy/internal/rval"
	"github.com/JosuaKrause/redipy/redipymetrics"
	"github.com/JosuaKrause/redipy/rerr"
	"github.com/redis/go-redis/v9"
)

// Dispatcher drives a live Redis server through go-redis's generic
// command interface. It holds no script cache of its own — that lives
// in package script's Registry; EvalSha/Eval below are plain wire
// round trips used by the script-execution path (C8), not by Do.
type Dispatcher struct {
	client *redis.Client
}

// New wraps an already-configured *redis.Client.
func New(client *redis.Client) *Dispatcher { return &Dispatcher{client: client} }

// Do issues cmd as a real Redis command over the wire.
func (d *Dispatcher) Do(ctx context.Context, cmd dispatch.Command) (rval.Value, error) {
	start := time.Now()
	args := dispatch.AssembleArgs(cmd)
	wireArgs := make([]interface{}, 0, len(args)+1)
	wireArgs = append(wireArgs, cmd.Name)
	for _, a := range args {
		wireArgs = append(wireArgs, a)
	}
	res, err := d.client.Do(ctx, wireArgs...).Result()
	v, err := toValue(res, err)
	redipymetrics.RecordCommand(cmd.Name, time.Since(start), err != nil)
	return v, err
}

// EvalSha issues EVALSHA, returning a NotFound rerr on NOSCRIPT so the
// script-execution path (package redipy's Script, scriptexec.go) knows
// to fall back to Eval per spec.md §6. The reply is the script's
// cjson.encode'd return value (SPEC_FULL.md §4.5's return
// canonicalization), decoded here via the same untagged wire codec the
// emitted Lua's cjson.decode(ARGV[1]) argument framing mirrors.
func (d *Dispatcher) EvalSha(ctx context.Context, sha string, keys []string, argv ...string) (rval.Value, error) {
	wireArgv := make([]interface{}, len(argv))
	for i, a := range argv {
		wireArgv[i] = a
	}
	res, err := d.client.EvalSha(ctx, sha, keys, wireArgv...).Result()
	return scriptResult(res, err)
}

// Eval issues EVAL with the full script source, used on EvalSha's
// NOSCRIPT fallback and to seed the server's script cache for next time.
func (d *Dispatcher) Eval(ctx context.Context, source string, keys []string, argv ...string) (rval.Value, error) {
	wireArgv := make([]interface{}, len(argv))
	for i, a := range argv {
		wireArgv[i] = a
	}
	res, err := d.client.Eval(ctx, source, keys, wireArgv...).Result()
	return scriptResult(res, err)
}

// scriptResult decodes an EVAL/EVALSHA reply as the JSON text a
// redipy script always returns, rather than treating it as a plain
// RESP scalar the way Do's toValue does for ordinary commands.
func scriptResult(res interface{}, err error) (rval.Value, error) {
	if err != nil {
		if err == redis.Nil {
			return rval.Null(), nil
		}
		return rval.Null(), wireError(err)
	}
	s, ok := res.(string)
	if !ok {
		return rval.Null(), rerr.New(rerr.KindScriptError, "script did not return a JSON string")
	}
	v, decErr := rval.DecodeWire([]byte(s))
	if decErr != nil {
		return rval.Null(), rerr.Wrap(rerr.KindParseError, "decoding script result", decErr)
	}
	return v, nil
}

// IsNoScript reports whether err is the NOSCRIPT error wireError
// produces, the signal to retry with Eval (spec.md §7's NotFound kind,
// "handled by automatic re-EVAL, not surfaced"). Checked by Kind, not by
// string prefix, since by the time a caller sees err it is already a
// wrapped *rerr.Error whose Error() text no longer starts with the raw
// go-redis message.
func IsNoScript(err error) bool {
	kind, ok := rerr.KindOf(err)
	return ok && kind == rerr.KindNotFound
}

// toValue converts a go-redis generic Do result (whose dynamic
// type already mirrors RESP: int64, string, []interface{}, nil) into
// rval.Value, and normalizes go-redis's error into the rerr.Kind
// taxonomy by pattern-matching its leading token — the boundary
// normalization spec.md §7 requires, grounded on the teacher's own
// "ERR "/"WRONGTYPE "-prefixed string-sentinel convention
// (internal/resp/resp.go's ErrWrongType/ErrWrongArgs).
func toValue(res interface{}, err error) (rval.Value, error) {
	if err != nil {
		if err == redis.Nil {
			return rval.Null(), nil
		}
		return rval.Null(), wireError(err)
	}
	return fromGoRedis(res), nil
}

func fromGoRedis(res interface{}) rval.Value {
	switch x := res.(type) {
	case nil:
		return rval.Null()
	case int64:
		return rval.Int(x)
	case float64:
		return rval.Float(x)
	case string:
		return rval.Str(x)
	case []interface{}:
		out := make([]rval.Value, len(x))
		for i, item := range x {
			out[i] = fromGoRedis(item)
		}
		return rval.Value{Kind: rval.KList, List: out}
	default:
		return rval.Null()
	}
}

func wireError(err error) error {
	msg := err.Error()
	switch {
	case strings.HasPrefix(msg, "WRONGTYPE"):
		return rerr.New(rerr.KindTypeMismatch, msg)
	case strings.HasPrefix(msg, "NOSCRIPT"):
		return rerr.New(rerr.KindNotFound, msg)
	case strings.Contains(msg, "wrong number of arguments"):
		return rerr.New(rerr.KindArityError, msg)
	case strings.HasPrefix(msg, "ERR"):
		return rerr.New(rerr.KindScriptError, msg)
	default:
		return rerr.New(rerr.KindConnectionError, msg)
	}
}
