package interp

import (
	"time"

	"github.com/JosuaKrause/redipy/internal/engine"
	"github.com/JosuaKrause/redipy/internal/rval"
)

// redisOp is a Kind==KindRedis call implementation. Every op here has a
// fixed, positional argument contract agreed with the builder (package
// script) and the Lua emitter (package luaemit) — the three never infer
// argument shape from anything but position, matching §4.1's "no
// reflection, no dynamic dispatch" stance applied to the call boundary
// itself. The contract for each op is documented at its map entry.
type redisOp func(e *engine.Engine, args []rval.Value) (rval.Value, error)

func argStr(args []rval.Value, i int) string { return args[i].RedisString() }

func argInt(args []rval.Value, i int) int64 {
	switch args[i].Kind {
	case rval.KInt:
		return args[i].Int
	case rval.KFloat:
		return int64(args[i].Float)
	default:
		return toNum(args[i]).Int
	}
}

func argFloat(args []rval.Value, i int) float64 {
	f, _ := asFloat(args[i])
	return f
}

func argBool(args []rval.Value, i int) bool { return args[i].Truthy() }

func strOrNull(s string, ok bool) rval.Value {
	if !ok {
		return rval.Null()
	}
	return rval.Str(s)
}

func floatOrNull(f float64, ok bool) rval.Value {
	if !ok {
		return rval.Null()
	}
	return rval.Float(f)
}

func intOrNull(n int64, ok bool) rval.Value {
	if !ok {
		return rval.Null()
	}
	return rval.Int(n)
}

// flatZMembers flattens scored members into the flat [member, score,
// member, score, ...] shape Redis's own WITHSCORES replies use, with
// members as Str and scores as Float.
func flatZMembers(ms []engine.ZMember, withScores bool) rval.Value {
	if !withScores {
		out := make([]rval.Value, len(ms))
		for i, m := range ms {
			out[i] = rval.Str(m.Member)
		}
		return rval.Value{Kind: rval.KList, List: out}
	}
	out := make([]rval.Value, 0, len(ms)*2)
	for _, m := range ms {
		out = append(out, rval.Str(m.Member), rval.Float(m.Score))
	}
	return rval.Value{Kind: rval.KList, List: out}
}

func strSlice(args []rval.Value, from int) []string {
	out := make([]string, 0, len(args)-from)
	for _, a := range args[from:] {
		out = append(out, a.RedisString())
	}
	return out
}

var redisOps = map[string]redisOp{
	// ---- key commands ----
	// del(key1, key2, ...) -> Int
	"del": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		return rval.Int(e.Del(strSlice(args, 0))), nil
	},
	// exists(key1, key2, ...) -> Int
	"exists": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		return rval.Int(e.Exists(strSlice(args, 0))), nil
	},
	// type(key) -> Str
	"type": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		return rval.Str(e.Type(argStr(args, 0)).String()), nil
	},
	// keys(pattern) -> List<Str>
	"keys": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		return rval.StrList(e.Keys(argStr(args, 0))), nil
	},
	// scan(cursor, pattern, count, typeFilter) -> List[Str(nextCursor), List<Str>]
	"scan": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		cursor, err := engine.ParseCursor(argStr(args, 0))
		if err != nil {
			return rval.Null(), err
		}
		var tf engine.KeyType
		switch argStr(args, 3) {
		case "string":
			tf = engine.TypeString
		case "list":
			tf = engine.TypeList
		case "hash":
			tf = engine.TypeHash
		case "set":
			tf = engine.TypeSet
		case "zset":
			tf = engine.TypeZSet
		default:
			tf = engine.TypeNone
		}
		next, keys := e.Scan(cursor, argStr(args, 1), argInt(args, 2), tf)
		return rval.List(rval.Str(engine.CursorString(next)), rval.StrList(keys)), nil
	},
	// expire(key, seconds) -> Bool
	"expire": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		return rval.Bool(e.Expire(argStr(args, 0), secondsDuration(argInt(args, 1)))), nil
	},
	// pexpire(key, millis) -> Bool
	"pexpire": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		return rval.Bool(e.Expire(argStr(args, 0), millisDuration(argInt(args, 1)))), nil
	},
	// expireat(key, unixSeconds) -> Bool
	"expireat": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		return rval.Bool(e.ExpireAt(argStr(args, 0), unixSeconds(argInt(args, 1)))), nil
	},
	// pexpireat(key, unixMillis) -> Bool
	"pexpireat": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		return rval.Bool(e.ExpireAt(argStr(args, 0), unixMillis(argInt(args, 1)))), nil
	},
	// persist(key) -> Bool
	"persist": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		return rval.Bool(e.Persist(argStr(args, 0))), nil
	},
	// ttl(key) -> Int
	"ttl": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		return rval.Int(e.TTL(argStr(args, 0))), nil
	},
	// pttl(key) -> Int
	"pttl": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		return rval.Int(e.PTTL(argStr(args, 0))), nil
	},
	// rename(oldKey, newKey) -> Bool
	"rename": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		return rval.Bool(e.Rename(argStr(args, 0), argStr(args, 1))), nil
	},
	// flushall([async]) -> Str("OK"); the async keyword, if present, is
	// accepted and ignored (SPEC_FULL.md §4.3 open-question resolution).
	"flushall": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		e.FlushAll()
		return rval.Str("OK"), nil
	},
	// dbsize() -> Int
	"dbsize": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		return rval.Int(e.DBSize()), nil
	},

	// ---- string commands ----
	// get(key) -> Str|Null
	"get": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		v, ok, err := e.Get(argStr(args, 0))
		if err != nil {
			return rval.Null(), err
		}
		return strOrNull(v, ok), nil
	},
	// set(key, value, nx, xx, keepttl, get, ttlMillis) -> depends on
	// `get`: Str(prev)|Null when get is true, else Bool(ok).
	"set": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		flags := engine.SetFlags{
			NX:      argBool(args, 2),
			XX:      argBool(args, 3),
			KeepTTL: argBool(args, 4),
			Get:     argBool(args, 5),
			TTL:     millisDuration(argInt(args, 6)),
		}
		ok, prev, prevOK, err := e.Set(argStr(args, 0), argStr(args, 1), flags)
		if err != nil {
			return rval.Null(), err
		}
		if flags.Get {
			return strOrNull(prev, prevOK), nil
		}
		return rval.Bool(ok), nil
	},
	// setnx(key, value) -> Bool
	"setnx": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		ok, err := e.SetNX(argStr(args, 0), argStr(args, 1))
		return rval.Bool(ok), err
	},
	// mget(key1, key2, ...) -> List<Str|Null>
	"mget": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		vals, found := e.MGetFound(strSlice(args, 0))
		out := make([]rval.Value, len(vals))
		for i := range vals {
			out[i] = strOrNull(vals[i], found[i])
		}
		return rval.Value{Kind: rval.KList, List: out}, nil
	},
	// mset(key1, val1, key2, val2, ...) -> Str("OK")
	"mset": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		pairs := make(map[string]string, len(args)/2)
		for i := 0; i+1 < len(args); i += 2 {
			pairs[argStr(args, i)] = argStr(args, i+1)
		}
		e.MSet(pairs)
		return rval.Str("OK"), nil
	},
	// incrby(key, delta) -> Int
	"incrby": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		n, err := e.Incr(argStr(args, 0), argInt(args, 1))
		if err != nil {
			return rval.Null(), err
		}
		return rval.Int(n), nil
	},
	// incrbyfloat(key, delta) -> Float
	"incrbyfloat": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		f, err := e.IncrByFloat(argStr(args, 0), argFloat(args, 1))
		if err != nil {
			return rval.Null(), err
		}
		return rval.Float(f), nil
	},
	// append(key, value) -> Int
	"append": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		n, err := e.Append(argStr(args, 0), argStr(args, 1))
		if err != nil {
			return rval.Null(), err
		}
		return rval.Int(n), nil
	},
	// strlen(key) -> Int
	"strlen": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		n, err := e.Strlen(argStr(args, 0))
		if err != nil {
			return rval.Null(), err
		}
		return rval.Int(n), nil
	},
	// getrange(key, start, end) -> Str
	"getrange": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		s, err := e.GetRange(argStr(args, 0), argInt(args, 1), argInt(args, 2))
		if err != nil {
			return rval.Null(), err
		}
		return rval.Str(s), nil
	},
	// setrange(key, offset, value) -> Int
	"setrange": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		n, err := e.SetRange(argStr(args, 0), argInt(args, 1), argStr(args, 2))
		if err != nil {
			return rval.Null(), err
		}
		return rval.Int(n), nil
	},

	// ---- list commands ----
	// lpush(key, v1, v2, ...) -> Int
	"lpush": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		n, err := e.LPush(argStr(args, 0), strSlice(args, 1))
		if err != nil {
			return rval.Null(), err
		}
		return rval.Int(n), nil
	},
	// rpush(key, v1, v2, ...) -> Int
	"rpush": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		n, err := e.RPush(argStr(args, 0), strSlice(args, 1))
		if err != nil {
			return rval.Null(), err
		}
		return rval.Int(n), nil
	},
	// lpop(key) -> Str|Null, scalar form (count-variant is the
	// "lpop_count" helper op).
	"lpop": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		v, ok, err := e.LPopOne(argStr(args, 0))
		if err != nil {
			return rval.Null(), err
		}
		return strOrNull(v, ok), nil
	},
	// rpop(key) -> Str|Null, scalar form.
	"rpop": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		v, ok, err := e.RPopOne(argStr(args, 0))
		if err != nil {
			return rval.Null(), err
		}
		return strOrNull(v, ok), nil
	},
	// llen(key) -> Int
	"llen": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		n, err := e.LLen(argStr(args, 0))
		if err != nil {
			return rval.Null(), err
		}
		return rval.Int(n), nil
	},
	// lrange(key, start, stop) -> List<Str>
	"lrange": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		vs, err := e.LRange(argStr(args, 0), argInt(args, 1), argInt(args, 2))
		if err != nil {
			return rval.Null(), err
		}
		return rval.StrList(vs), nil
	},
	// lindex(key, index) -> Str|Null
	"lindex": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		v, ok, err := e.LIndex(argStr(args, 0), argInt(args, 1))
		if err != nil {
			return rval.Null(), err
		}
		return strOrNull(v, ok), nil
	},

	// ---- hash commands ----
	// hget(key, field) -> Str|Null
	"hget": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		v, ok, err := e.HGet(argStr(args, 0), argStr(args, 1))
		if err != nil {
			return rval.Null(), err
		}
		return strOrNull(v, ok), nil
	},
	// hset(key, field1, value1, field2, value2, ...) -> Int created
	"hset": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		fields := make(map[string]string, (len(args)-1)/2)
		for i := 1; i+1 < len(args); i += 2 {
			fields[argStr(args, i)] = argStr(args, i+1)
		}
		n, err := e.HSet(argStr(args, 0), fields)
		if err != nil {
			return rval.Null(), err
		}
		return rval.Int(n), nil
	},
	// hsetnx(key, field, value) -> Bool
	"hsetnx": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		ok, err := e.HSetNX(argStr(args, 0), argStr(args, 1), argStr(args, 2))
		if err != nil {
			return rval.Null(), err
		}
		return rval.Bool(ok), nil
	},
	// hdel(key, field1, field2, ...) -> Int
	"hdel": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		n, err := e.HDel(argStr(args, 0), strSlice(args, 1))
		if err != nil {
			return rval.Null(), err
		}
		return rval.Int(n), nil
	},
	// hgetall(key) -> Map<Str,Str>
	"hgetall": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		h, err := e.HGetAll(argStr(args, 0))
		if err != nil {
			return rval.Null(), err
		}
		out := make(map[string]rval.Value, len(h))
		for k, v := range h {
			out[k] = rval.Str(v)
		}
		return rval.Map(out), nil
	},
	// hmget(key, field1, field2, ...) -> List<Str|Null>
	"hmget": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		vals, found, err := e.HMGet(argStr(args, 0), strSlice(args, 1))
		if err != nil {
			return rval.Null(), err
		}
		out := make([]rval.Value, len(vals))
		for i := range vals {
			out[i] = strOrNull(vals[i], found[i])
		}
		return rval.Value{Kind: rval.KList, List: out}, nil
	},
	// hexists(key, field) -> Bool
	"hexists": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		ok, err := e.HExists(argStr(args, 0), argStr(args, 1))
		if err != nil {
			return rval.Null(), err
		}
		return rval.Bool(ok), nil
	},
	// hkeys(key) -> List<Str>
	"hkeys": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		ks, err := e.HKeys(argStr(args, 0))
		if err != nil {
			return rval.Null(), err
		}
		return rval.StrList(ks), nil
	},
	// hvals(key) -> List<Str>
	"hvals": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		vs, err := e.HVals(argStr(args, 0))
		if err != nil {
			return rval.Null(), err
		}
		return rval.StrList(vs), nil
	},
	// hlen(key) -> Int
	"hlen": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		n, err := e.HLen(argStr(args, 0))
		if err != nil {
			return rval.Null(), err
		}
		return rval.Int(n), nil
	},
	// hincrby(key, field, delta) -> Int
	"hincrby": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		n, err := e.HIncrBy(argStr(args, 0), argStr(args, 1), argInt(args, 2))
		if err != nil {
			return rval.Null(), err
		}
		return rval.Int(n), nil
	},
	// hincrbyfloat(key, field, delta) -> Float
	"hincrbyfloat": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		f, err := e.HIncrByFloat(argStr(args, 0), argStr(args, 1), argFloat(args, 2))
		if err != nil {
			return rval.Null(), err
		}
		return rval.Float(f), nil
	},
	// hrandfield(key, count) -> List<Str>
	"hrandfield": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		fs, err := e.HRandField(argStr(args, 0), argInt(args, 1))
		if err != nil {
			return rval.Null(), err
		}
		return rval.StrList(fs), nil
	},

	// ---- set commands ----
	// sadd(key, m1, m2, ...) -> Int
	"sadd": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		n, err := e.SAdd(argStr(args, 0), strSlice(args, 1))
		if err != nil {
			return rval.Null(), err
		}
		return rval.Int(n), nil
	},
	// srem(key, m1, m2, ...) -> Int
	"srem": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		n, err := e.SRem(argStr(args, 0), strSlice(args, 1))
		if err != nil {
			return rval.Null(), err
		}
		return rval.Int(n), nil
	},
	// smembers(key) -> List<Str>
	"smembers": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		ms, err := e.SMembers(argStr(args, 0))
		if err != nil {
			return rval.Null(), err
		}
		return rval.StrList(ms), nil
	},
	// sismember(key, member) -> Bool
	"sismember": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		ok, err := e.SIsMember(argStr(args, 0), argStr(args, 1))
		if err != nil {
			return rval.Null(), err
		}
		return rval.Bool(ok), nil
	},
	// scard(key) -> Int
	"scard": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		n, err := e.SCard(argStr(args, 0))
		if err != nil {
			return rval.Null(), err
		}
		return rval.Int(n), nil
	},
	// spop(key) -> Str|Null, scalar form (count-variant is the
	// "spop_count" helper op).
	"spop": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		v, ok, err := e.SPopOne(argStr(args, 0))
		if err != nil {
			return rval.Null(), err
		}
		return strOrNull(v, ok), nil
	},
	// srandmember(key) -> Str|Null, scalar form (count-variant is the
	// "srandmember_count" helper op).
	"srandmember": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		ms, err := e.SRandMember(argStr(args, 0), 1)
		if err != nil {
			return rval.Null(), err
		}
		if len(ms) == 0 {
			return rval.Null(), nil
		}
		return rval.Str(ms[0]), nil
	},
	// sdiff(key1, key2, ...) -> List<Str>
	"sdiff": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		ms, err := e.SDiff(strSlice(args, 0))
		if err != nil {
			return rval.Null(), err
		}
		return rval.StrList(ms), nil
	},
	// sinter(key1, key2, ...) -> List<Str>
	"sinter": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		ms, err := e.SInter(strSlice(args, 0))
		if err != nil {
			return rval.Null(), err
		}
		return rval.StrList(ms), nil
	},
	// sunion(key1, key2, ...) -> List<Str>
	"sunion": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		ms, err := e.SUnion(strSlice(args, 0))
		if err != nil {
			return rval.Null(), err
		}
		return rval.StrList(ms), nil
	},

	// ---- sorted-set commands ----
	// zadd(key, nx, xx, gt, lt, ch, member1, score1, member2, score2, ...) -> Int
	"zadd": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		flags := engine.ZAddFlags{
			NX: argBool(args, 1), XX: argBool(args, 2),
			GT: argBool(args, 3), LT: argBool(args, 4), CH: argBool(args, 5),
		}
		if err := flags.Validate(); err != nil {
			return rval.Null(), err
		}
		pairs := make(map[string]float64, (len(args)-6)/2)
		for i := 6; i+1 < len(args); i += 2 {
			pairs[argStr(args, i)] = argFloat(args, i+1)
		}
		n, err := e.ZAdd(argStr(args, 0), pairs, flags)
		if err != nil {
			return rval.Null(), err
		}
		return rval.Int(n), nil
	},
	// zrem(key, m1, m2, ...) -> Int
	"zrem": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		n, err := e.ZRem(argStr(args, 0), strSlice(args, 1))
		if err != nil {
			return rval.Null(), err
		}
		return rval.Int(n), nil
	},
	// zcard(key) -> Int
	"zcard": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		n, err := e.ZCard(argStr(args, 0))
		if err != nil {
			return rval.Null(), err
		}
		return rval.Int(n), nil
	},
	// zscore(key, member) -> Float|Null
	"zscore": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		f, ok, err := e.ZScore(argStr(args, 0), argStr(args, 1))
		if err != nil {
			return rval.Null(), err
		}
		return floatOrNull(f, ok), nil
	},
	// zincrby(key, delta, member) -> Float
	"zincrby": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		f, err := e.ZIncrBy(argStr(args, 0), argStr(args, 2), argFloat(args, 1))
		if err != nil {
			return rval.Null(), err
		}
		return rval.Float(f), nil
	},
	// zrange(key, start, stop, rev, withscores) -> List (flat [m,s,...] if withscores)
	"zrange": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		ms, err := e.ZRange(argStr(args, 0), argInt(args, 1), argInt(args, 2), argBool(args, 3))
		if err != nil {
			return rval.Null(), err
		}
		return flatZMembers(engine.ToZMembers(ms), argBool(args, 4)), nil
	},
	// zrangebyscore(key, min, max, rev, withscores, offset, count) -> List
	"zrangebyscore": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		ms, err := e.ZRangeByScore(argStr(args, 0), argFloat(args, 1), argFloat(args, 2),
			argBool(args, 3), argInt(args, 5), argInt(args, 6))
		if err != nil {
			return rval.Null(), err
		}
		return flatZMembers(engine.ToZMembers(ms), argBool(args, 4)), nil
	},
	// zcount(key, min, max) -> Int
	"zcount": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		n, err := e.ZCount(argStr(args, 0), argFloat(args, 1), argFloat(args, 2))
		if err != nil {
			return rval.Null(), err
		}
		return rval.Int(n), nil
	},
	// zrank(key, member, rev) -> Int|Null
	"zrank": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		n, ok, err := e.ZRank(argStr(args, 0), argStr(args, 1), argBool(args, 2))
		if err != nil {
			return rval.Null(), err
		}
		return intOrNull(n, ok), nil
	},
	// zpopmin(key) -> List[Str,Float]|Null, scalar form (count-variant is
	// the "zpopmin_count" helper op) — "zpopmin on empty is Null" (§4.4).
	"zpopmin": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		ms, err := e.ZPopMin(argStr(args, 0), 1)
		if err != nil {
			return rval.Null(), err
		}
		if len(ms) == 0 {
			return rval.Null(), nil
		}
		m := engine.ToZMembers(ms)[0]
		return rval.List(rval.Str(m.Member), rval.Float(m.Score)), nil
	},
	// zpopmax(key) -> List[Str,Float]|Null, scalar form.
	"zpopmax": func(e *engine.Engine, args []rval.Value) (rval.Value, error) {
		ms, err := e.ZPopMax(argStr(args, 0), 1)
		if err != nil {
			return rval.Null(), err
		}
		if len(ms) == 0 {
			return rval.Null(), nil
		}
		m := engine.ToZMembers(ms)[0]
		return rval.List(rval.Str(m.Member), rval.Float(m.Score)), nil
	},
}

// secondsDuration, millisDuration, unixSeconds and unixMillis convert
// the IR's plain-integer time arguments into the time package types
// engine.Engine's TTL API expects.
func secondsDuration(s int64) time.Duration { return time.Duration(s) * time.Second }
func millisDuration(ms int64) time.Duration { return time.Duration(ms) * time.Millisecond }
func unixSeconds(s int64) time.Time         { return time.Unix(s, 0) }
func unixMillis(ms int64) time.Time         { return time.UnixMilli(ms) }
