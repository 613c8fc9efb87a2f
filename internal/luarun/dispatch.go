package luarun

import (
	"strconv"
	"strings"
	"time"

	"github.com/JosuaKrause/redipy/internal/engine"
	"github.com/JosuaKrause/redipy/internal/rval"
	"github.com/JosuaKrause/redipy/rerr"
)

// commandFunc realizes one real Redis command's actual calling
// convention (optional tokens, variadic trailers) against an
// engine.Engine, the way internal/handler/handler_ops.go's *Op
// functions realize it against storage.Operations — retyped here from
// []resp.Value to plain []string (RESP bulk strings and Lua redis.call
// arguments are both just strings) and rval.Value instead of resp.Value.
type commandFunc func(e *engine.Engine, args []string) (rval.Value, error)

func wrongArgs(cmd string) (rval.Value, error) { return rval.Null(), rerr.ArityError(cmd) }

func flatten(ms []engine.ZMember, withScores bool) rval.Value {
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

// commands is the command table the harness's redis.call/pcall
// implementation dispatches through, grounded directly on
// handler_ops.go's per-command option parsing (setOp's EX/PX/NX/XX/
// KEEPTTL/GET loop, zaddOp's NX/XX/GT/LT/CH prefix scan, scanOp's
// MATCH/COUNT/TYPE suffix scan) but realized against engine.Engine.
var commands = map[string]commandFunc{
	"get": func(e *engine.Engine, a []string) (rval.Value, error) {
		if len(a) != 1 {
			return wrongArgs("get")
		}
		v, ok, err := e.Get(a[0])
		if err != nil {
			return rval.Null(), err
		}
		if !ok {
			return rval.Null(), nil
		}
		return rval.Str(v), nil
	},
	"set": func(e *engine.Engine, a []string) (rval.Value, error) {
		if len(a) < 2 {
			return wrongArgs("set")
		}
		flags := engine.SetFlags{}
		for i := 2; i < len(a); i++ {
			switch strings.ToUpper(a[i]) {
			case "NX":
				flags.NX = true
			case "XX":
				flags.XX = true
			case "GET":
				flags.Get = true
			case "KEEPTTL":
				flags.KeepTTL = true
			case "PX":
				i++
				ms, _ := strconv.ParseInt(a[i], 10, 64)
				flags.TTL = time.Duration(ms) * time.Millisecond
			case "EX":
				i++
				s, _ := strconv.ParseInt(a[i], 10, 64)
				flags.TTL = time.Duration(s) * time.Second
			}
		}
		ok, prev, prevOK, err := e.Set(a[0], a[1], flags)
		if err != nil {
			return rval.Null(), err
		}
		if flags.Get {
			if !prevOK {
				return rval.Null(), nil
			}
			return rval.Str(prev), nil
		}
		if !ok {
			return rval.Null(), nil
		}
		return rval.Str("OK"), nil
	},
	"setnx": func(e *engine.Engine, a []string) (rval.Value, error) {
		ok, err := e.SetNX(a[0], a[1])
		return rval.Bool(ok), err
	},
	"mget": func(e *engine.Engine, a []string) (rval.Value, error) {
		vs, found := e.MGetFound(a)
		out := make([]rval.Value, len(vs))
		for i := range vs {
			if !found[i] {
				out[i] = rval.Null()
				continue
			}
			out[i] = rval.Str(vs[i])
		}
		return rval.Value{Kind: rval.KList, List: out}, nil
	},
	"mset": func(e *engine.Engine, a []string) (rval.Value, error) {
		if len(a)%2 != 0 {
			return wrongArgs("mset")
		}
		pairs := make(map[string]string, len(a)/2)
		for i := 0; i+1 < len(a); i += 2 {
			pairs[a[i]] = a[i+1]
		}
		e.MSet(pairs)
		return rval.Str("OK"), nil
	},
	"incrby": func(e *engine.Engine, a []string) (rval.Value, error) {
		d, _ := strconv.ParseInt(a[1], 10, 64)
		n, err := e.Incr(a[0], d)
		return rval.Int(n), err
	},
	"incrbyfloat": func(e *engine.Engine, a []string) (rval.Value, error) {
		d, _ := strconv.ParseFloat(a[1], 64)
		f, err := e.IncrByFloat(a[0], d)
		return rval.Float(f), err
	},
	"append": func(e *engine.Engine, a []string) (rval.Value, error) {
		n, err := e.Append(a[0], a[1])
		return rval.Int(n), err
	},
	"strlen": func(e *engine.Engine, a []string) (rval.Value, error) {
		n, err := e.Strlen(a[0])
		return rval.Int(n), err
	},
	"getrange": func(e *engine.Engine, a []string) (rval.Value, error) {
		start, _ := strconv.ParseInt(a[1], 10, 64)
		end, _ := strconv.ParseInt(a[2], 10, 64)
		s, err := e.GetRange(a[0], start, end)
		return rval.Str(s), err
	},
	"setrange": func(e *engine.Engine, a []string) (rval.Value, error) {
		off, _ := strconv.ParseInt(a[1], 10, 64)
		n, err := e.SetRange(a[0], off, a[2])
		return rval.Int(n), err
	},

	"del": func(e *engine.Engine, a []string) (rval.Value, error) { return rval.Int(e.Del(a)), nil },
	"exists": func(e *engine.Engine, a []string) (rval.Value, error) {
		return rval.Int(e.Exists(a)), nil
	},
	"type": func(e *engine.Engine, a []string) (rval.Value, error) {
		return rval.Str(e.Type(a[0]).String()), nil
	},
	"keys": func(e *engine.Engine, a []string) (rval.Value, error) {
		return rval.StrList(e.Keys(a[0])), nil
	},
	"scan": func(e *engine.Engine, a []string) (rval.Value, error) {
		cursor, _ := strconv.ParseInt(a[0], 10, 64)
		var pattern string = "*"
		var count int64 = 10
		var typeFilter engine.KeyType = engine.TypeNone
		for i := 1; i < len(a); i++ {
			switch strings.ToUpper(a[i]) {
			case "MATCH":
				i++
				pattern = a[i]
			case "COUNT":
				i++
				count, _ = strconv.ParseInt(a[i], 10, 64)
			case "TYPE":
				i++
				typeFilter = parseKeyType(a[i])
			}
		}
		next, keys := e.Scan(cursor, pattern, count, typeFilter)
		return rval.Value{Kind: rval.KList, List: []rval.Value{
			rval.Str(strconv.FormatInt(next, 10)), rval.StrList(keys),
		}}, nil
	},
	"expire": func(e *engine.Engine, a []string) (rval.Value, error) {
		s, _ := strconv.ParseInt(a[1], 10, 64)
		return rval.Bool(e.Expire(a[0], time.Duration(s)*time.Second)), nil
	},
	"pexpire": func(e *engine.Engine, a []string) (rval.Value, error) {
		ms, _ := strconv.ParseInt(a[1], 10, 64)
		return rval.Bool(e.Expire(a[0], time.Duration(ms)*time.Millisecond)), nil
	},
	"expireat": func(e *engine.Engine, a []string) (rval.Value, error) {
		ts, _ := strconv.ParseInt(a[1], 10, 64)
		return rval.Bool(e.ExpireAt(a[0], time.Unix(ts, 0))), nil
	},
	"pexpireat": func(e *engine.Engine, a []string) (rval.Value, error) {
		ts, _ := strconv.ParseInt(a[1], 10, 64)
		return rval.Bool(e.ExpireAt(a[0], time.UnixMilli(ts))), nil
	},
	"persist": func(e *engine.Engine, a []string) (rval.Value, error) {
		return rval.Bool(e.Persist(a[0])), nil
	},
	"ttl": func(e *engine.Engine, a []string) (rval.Value, error) { return rval.Int(e.TTL(a[0])), nil },
	"pttl": func(e *engine.Engine, a []string) (rval.Value, error) {
		return rval.Int(e.PTTL(a[0])), nil
	},
	"rename": func(e *engine.Engine, a []string) (rval.Value, error) {
		return rval.Bool(e.Rename(a[0], a[1])), nil
	},
	"flushall": func(e *engine.Engine, a []string) (rval.Value, error) {
		e.FlushAll()
		return rval.Str("OK"), nil
	},
	"dbsize": func(e *engine.Engine, a []string) (rval.Value, error) {
		return rval.Int(e.DBSize()), nil
	},

	"lpush": func(e *engine.Engine, a []string) (rval.Value, error) {
		n, err := e.LPush(a[0], a[1:])
		return rval.Int(n), err
	},
	"rpush": func(e *engine.Engine, a []string) (rval.Value, error) {
		n, err := e.RPush(a[0], a[1:])
		return rval.Int(n), err
	},
	"lpop": func(e *engine.Engine, a []string) (rval.Value, error) {
		count := int64(1)
		if len(a) > 1 {
			count, _ = strconv.ParseInt(a[1], 10, 64)
		}
		vs, err := e.LPop(a[0], count)
		if err != nil {
			return rval.Null(), err
		}
		if len(a) == 1 {
			if len(vs) == 0 {
				return rval.Null(), nil
			}
			return rval.Str(vs[0]), nil
		}
		return rval.StrList(vs), nil
	},
	"rpop": func(e *engine.Engine, a []string) (rval.Value, error) {
		count := int64(1)
		if len(a) > 1 {
			count, _ = strconv.ParseInt(a[1], 10, 64)
		}
		vs, err := e.RPop(a[0], count)
		if err != nil {
			return rval.Null(), err
		}
		if len(a) == 1 {
			if len(vs) == 0 {
				return rval.Null(), nil
			}
			return rval.Str(vs[0]), nil
		}
		return rval.StrList(vs), nil
	},
	"llen": func(e *engine.Engine, a []string) (rval.Value, error) {
		n, err := e.LLen(a[0])
		return rval.Int(n), err
	},
	"lrange": func(e *engine.Engine, a []string) (rval.Value, error) {
		start, _ := strconv.ParseInt(a[1], 10, 64)
		stop, _ := strconv.ParseInt(a[2], 10, 64)
		vs, err := e.LRange(a[0], start, stop)
		return rval.StrList(vs), err
	},
	"lindex": func(e *engine.Engine, a []string) (rval.Value, error) {
		idx, _ := strconv.ParseInt(a[1], 10, 64)
		v, ok, err := e.LIndex(a[0], idx)
		if err != nil {
			return rval.Null(), err
		}
		if !ok {
			return rval.Null(), nil
		}
		return rval.Str(v), nil
	},

	"hget": func(e *engine.Engine, a []string) (rval.Value, error) {
		v, ok, err := e.HGet(a[0], a[1])
		if err != nil {
			return rval.Null(), err
		}
		if !ok {
			return rval.Null(), nil
		}
		return rval.Str(v), nil
	},
	"hset": func(e *engine.Engine, a []string) (rval.Value, error) {
		if len(a) < 3 || len(a)%2 != 1 {
			return wrongArgs("hset")
		}
		fields := make(map[string]string, (len(a)-1)/2)
		for i := 1; i+1 < len(a); i += 2 {
			fields[a[i]] = a[i+1]
		}
		n, err := e.HSet(a[0], fields)
		return rval.Int(n), err
	},
	"hsetnx": func(e *engine.Engine, a []string) (rval.Value, error) {
		ok, err := e.HSetNX(a[0], a[1], a[2])
		return rval.Bool(ok), err
	},
	"hdel": func(e *engine.Engine, a []string) (rval.Value, error) {
		n, err := e.HDel(a[0], a[1:])
		return rval.Int(n), err
	},
	"hgetall": func(e *engine.Engine, a []string) (rval.Value, error) {
		h, err := e.HGetAll(a[0])
		if err != nil {
			return rval.Null(), err
		}
		out := make([]rval.Value, 0, len(h)*2)
		for _, k := range rval.SortedKeys(toValueMap(h)) {
			out = append(out, rval.Str(k), rval.Str(h[k]))
		}
		return rval.Value{Kind: rval.KList, List: out}, nil
	},
	"hmget": func(e *engine.Engine, a []string) (rval.Value, error) {
		vs, found, err := e.HMGet(a[0], a[1:])
		if err != nil {
			return rval.Null(), err
		}
		out := make([]rval.Value, len(vs))
		for i := range vs {
			if !found[i] {
				out[i] = rval.Null()
				continue
			}
			out[i] = rval.Str(vs[i])
		}
		return rval.Value{Kind: rval.KList, List: out}, nil
	},
	"hexists": func(e *engine.Engine, a []string) (rval.Value, error) {
		ok, err := e.HExists(a[0], a[1])
		return rval.Bool(ok), err
	},
	"hkeys": func(e *engine.Engine, a []string) (rval.Value, error) {
		ks, err := e.HKeys(a[0])
		return rval.StrList(ks), err
	},
	"hvals": func(e *engine.Engine, a []string) (rval.Value, error) {
		vs, err := e.HVals(a[0])
		return rval.StrList(vs), err
	},
	"hlen": func(e *engine.Engine, a []string) (rval.Value, error) {
		n, err := e.HLen(a[0])
		return rval.Int(n), err
	},
	"hincrby": func(e *engine.Engine, a []string) (rval.Value, error) {
		d, _ := strconv.ParseInt(a[2], 10, 64)
		n, err := e.HIncrBy(a[0], a[1], d)
		return rval.Int(n), err
	},
	"hincrbyfloat": func(e *engine.Engine, a []string) (rval.Value, error) {
		d, _ := strconv.ParseFloat(a[2], 64)
		f, err := e.HIncrByFloat(a[0], a[1], d)
		return rval.Float(f), err
	},
	"hrandfield": func(e *engine.Engine, a []string) (rval.Value, error) {
		count := int64(1)
		if len(a) > 1 {
			count, _ = strconv.ParseInt(a[1], 10, 64)
		}
		fs, err := e.HRandField(a[0], count)
		return rval.StrList(fs), err
	},

	"sadd": func(e *engine.Engine, a []string) (rval.Value, error) {
		n, err := e.SAdd(a[0], a[1:])
		return rval.Int(n), err
	},
	"srem": func(e *engine.Engine, a []string) (rval.Value, error) {
		n, err := e.SRem(a[0], a[1:])
		return rval.Int(n), err
	},
	"smembers": func(e *engine.Engine, a []string) (rval.Value, error) {
		ms, err := e.SMembers(a[0])
		return rval.StrList(ms), err
	},
	"sismember": func(e *engine.Engine, a []string) (rval.Value, error) {
		ok, err := e.SIsMember(a[0], a[1])
		return rval.Bool(ok), err
	},
	"scard": func(e *engine.Engine, a []string) (rval.Value, error) {
		n, err := e.SCard(a[0])
		return rval.Int(n), err
	},
	"spop": func(e *engine.Engine, a []string) (rval.Value, error) {
		count := int64(1)
		if len(a) > 1 {
			count, _ = strconv.ParseInt(a[1], 10, 64)
		}
		ms, err := e.SPop(a[0], count)
		if err != nil {
			return rval.Null(), err
		}
		if len(a) == 1 {
			if len(ms) == 0 {
				return rval.Null(), nil
			}
			return rval.Str(ms[0]), nil
		}
		return rval.StrList(ms), nil
	},
	"srandmember": func(e *engine.Engine, a []string) (rval.Value, error) {
		count := int64(1)
		if len(a) > 1 {
			count, _ = strconv.ParseInt(a[1], 10, 64)
		}
		ms, err := e.SRandMember(a[0], count)
		if err != nil {
			return rval.Null(), err
		}
		if len(a) == 1 {
			if len(ms) == 0 {
				return rval.Null(), nil
			}
			return rval.Str(ms[0]), nil
		}
		return rval.StrList(ms), nil
	},
	"sdiff": func(e *engine.Engine, a []string) (rval.Value, error) {
		ms, err := e.SDiff(a)
		return rval.StrList(ms), err
	},
	"sinter": func(e *engine.Engine, a []string) (rval.Value, error) {
		ms, err := e.SInter(a)
		return rval.StrList(ms), err
	},
	"sunion": func(e *engine.Engine, a []string) (rval.Value, error) {
		ms, err := e.SUnion(a)
		return rval.StrList(ms), err
	},

	"zadd": func(e *engine.Engine, a []string) (rval.Value, error) {
		i := 1
		var flags engine.ZAddFlags
	loop:
		for i < len(a) {
			switch strings.ToUpper(a[i]) {
			case "NX":
				flags.NX = true
				i++
			case "XX":
				flags.XX = true
				i++
			case "GT":
				flags.GT = true
				i++
			case "LT":
				flags.LT = true
				i++
			case "CH":
				flags.CH = true
				i++
			default:
				break loop
			}
		}
		if err := flags.Validate(); err != nil {
			return rval.Null(), err
		}
		rest := a[i:]
		if len(rest) == 0 || len(rest)%2 != 0 {
			return wrongArgs("zadd")
		}
		pairs := make(map[string]float64, len(rest)/2)
		for j := 0; j+1 < len(rest); j += 2 {
			score, _ := strconv.ParseFloat(rest[j], 64)
			pairs[rest[j+1]] = score
		}
		n, err := e.ZAdd(a[0], pairs, flags)
		return rval.Int(n), err
	},
	"zrem": func(e *engine.Engine, a []string) (rval.Value, error) {
		n, err := e.ZRem(a[0], a[1:])
		return rval.Int(n), err
	},
	"zcard": func(e *engine.Engine, a []string) (rval.Value, error) {
		n, err := e.ZCard(a[0])
		return rval.Int(n), err
	},
	"zscore": func(e *engine.Engine, a []string) (rval.Value, error) {
		f, ok, err := e.ZScore(a[0], a[1])
		if err != nil {
			return rval.Null(), err
		}
		if !ok {
			return rval.Null(), nil
		}
		return rval.Float(f), nil
	},
	"zincrby": func(e *engine.Engine, a []string) (rval.Value, error) {
		d, _ := strconv.ParseFloat(a[1], 64)
		f, err := e.ZIncrBy(a[0], a[2], d)
		return rval.Float(f), err
	},
	"zrange": func(e *engine.Engine, a []string) (rval.Value, error) {
		start, _ := strconv.ParseInt(a[1], 10, 64)
		stop, _ := strconv.ParseInt(a[2], 10, 64)
		var rev, withScores bool
		for _, tok := range a[3:] {
			switch strings.ToUpper(tok) {
			case "REV":
				rev = true
			case "WITHSCORES":
				withScores = true
			}
		}
		ms, err := e.ZRange(a[0], start, stop, rev)
		if err != nil {
			return rval.Null(), err
		}
		return flatten(engine.ToZMembers(ms), withScores), nil
	},
	"zrangebyscore": func(e *engine.Engine, a []string) (rval.Value, error) {
		return zRangeByScoreLike(e, a, false)
	},
	"zrevrangebyscore": func(e *engine.Engine, a []string) (rval.Value, error) {
		return zRangeByScoreLike(e, a, true)
	},
	"zcount": func(e *engine.Engine, a []string) (rval.Value, error) {
		min, _ := strconv.ParseFloat(a[1], 64)
		max, _ := strconv.ParseFloat(a[2], 64)
		n, err := e.ZCount(a[0], min, max)
		return rval.Int(n), err
	},
	"zrank": func(e *engine.Engine, a []string) (rval.Value, error) {
		n, ok, err := e.ZRank(a[0], a[1], false)
		if err != nil {
			return rval.Null(), err
		}
		if !ok {
			return rval.Null(), nil
		}
		return rval.Int(n), nil
	},
	"zrevrank": func(e *engine.Engine, a []string) (rval.Value, error) {
		n, ok, err := e.ZRank(a[0], a[1], true)
		if err != nil {
			return rval.Null(), err
		}
		if !ok {
			return rval.Null(), nil
		}
		return rval.Int(n), nil
	},
	"zpopmin": func(e *engine.Engine, a []string) (rval.Value, error) {
		count := int64(1)
		if len(a) > 1 {
			count, _ = strconv.ParseInt(a[1], 10, 64)
		}
		ms, err := e.ZPopMin(a[0], count)
		if err != nil {
			return rval.Null(), err
		}
		return flatten(engine.ToZMembers(ms), true), nil
	},
	"zpopmax": func(e *engine.Engine, a []string) (rval.Value, error) {
		count := int64(1)
		if len(a) > 1 {
			count, _ = strconv.ParseInt(a[1], 10, 64)
		}
		ms, err := e.ZPopMax(a[0], count)
		if err != nil {
			return rval.Null(), err
		}
		return flatten(engine.ToZMembers(ms), true), nil
	},
}

func zRangeByScoreLike(e *engine.Engine, a []string, rev bool) (rval.Value, error) {
	min, _ := strconv.ParseFloat(a[1], 64)
	max, _ := strconv.ParseFloat(a[2], 64)
	var withScores bool
	offset, count := int64(0), int64(-1)
	for i := 3; i < len(a); i++ {
		switch strings.ToUpper(a[i]) {
		case "WITHSCORES":
			withScores = true
		case "LIMIT":
			offset, _ = strconv.ParseInt(a[i+1], 10, 64)
			count, _ = strconv.ParseInt(a[i+2], 10, 64)
			i += 2
		}
	}
	lo, hi := min, max
	if rev {
		lo, hi = max, min
	}
	ms, err := e.ZRangeByScore(a[0], lo, hi, rev, offset, count)
	if err != nil {
		return rval.Null(), err
	}
	return flatten(engine.ToZMembers(ms), withScores), nil
}

func parseKeyType(s string) engine.KeyType {
	switch s {
	case "string":
		return engine.TypeString
	case "list":
		return engine.TypeList
	case "hash":
		return engine.TypeHash
	case "set":
		return engine.TypeSet
	case "zset":
		return engine.TypeZSet
	default:
		return engine.TypeNone
	}
}

func toValueMap(h map[string]string) map[string]rval.Value {
	out := make(map[string]rval.Value, len(h))
	for k, v := range h {
		out[k] = rval.Str(v)
	}
	return out
}

// Dispatch runs one command by name against e, the harness's
// redis.call/pcall entry point.
func Dispatch(e *engine.Engine, name string, args []string) (rval.Value, error) {
	fn, ok := commands[strings.ToLower(name)]
	if !ok {
		return rval.Null(), rerr.New(rerr.KindNotImplemented, "unknown command: "+name)
	}
	return fn(e, args)
}
