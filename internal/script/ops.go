package script

import "github.com/JosuaKrause/redipy/internal/ir"

// opSig is one call-table entry: the minimum argument count and whether
// extra (variadic) arguments are accepted. Every Call node the builder
// produces is checked against this table before the node is ever
// returned — "every Call resolves to a known op at compile time" (§2).
type opSig struct {
	min      int
	variadic bool
}

// opTable is the closed per-kind dispatch table the builder validates
// against, mirrored by interp's redisOps/generalOps/helperOps maps and
// by luaemit's per-command policy table — all three read from the same
// argument contract, documented at each redisOps entry
// (internal/interp/ops_redis.go).
var opTable = map[ir.CallKind]map[string]opSig{
	ir.KindRedis: {
		"del": {1, true}, "exists": {1, true}, "type": {1, false},
		"keys": {1, false}, "scan": {4, false},
		"expire": {2, false}, "pexpire": {2, false},
		"expireat": {2, false}, "pexpireat": {2, false},
		"persist": {1, false}, "ttl": {1, false}, "pttl": {1, false},
		"rename": {2, false}, "flushall": {0, true}, "dbsize": {0, false},

		"get": {1, false}, "set": {7, false}, "setnx": {2, false},
		"mget": {1, true}, "mset": {2, true},
		"incrby": {2, false}, "incrbyfloat": {2, false},
		"append": {2, false}, "strlen": {1, false},
		"getrange": {3, false}, "setrange": {3, false},

		"lpush": {2, true}, "rpush": {2, true},
		"lpop": {1, false}, "rpop": {1, false},
		"llen": {1, false}, "lrange": {3, false}, "lindex": {2, false},

		"hget": {2, false}, "hset": {3, true}, "hsetnx": {3, false},
		"hdel": {2, true}, "hgetall": {1, false}, "hmget": {2, true},
		"hexists": {2, false}, "hkeys": {1, false}, "hvals": {1, false},
		"hlen": {1, false}, "hincrby": {3, false}, "hincrbyfloat": {3, false},
		"hrandfield": {2, false},

		"sadd": {2, true}, "srem": {2, true}, "smembers": {1, false},
		"sismember": {2, false}, "scard": {1, false},
		"spop": {1, false}, "srandmember": {1, false},
		"sdiff": {1, true}, "sinter": {1, true}, "sunion": {1, true},

		"zadd": {6, true}, "zrem": {2, true}, "zcard": {1, false},
		"zscore": {2, false}, "zincrby": {3, false},
		"zrange": {5, false}, "zrangebyscore": {7, false},
		"zcount": {3, false}, "zrank": {3, false},
		"zpopmin": {1, false}, "zpopmax": {1, false},
	},
	ir.KindGeneral: {
		"tonumber": {1, false}, "tostring": {1, false}, "type": {1, false},
	},
	ir.KindHelper: {
		"lpop_count": {2, false}, "rpop_count": {2, false},
		"spop_count": {2, false}, "srandmember_count": {2, false},
		"zpopmin_count": {2, false}, "zpopmax_count": {2, false},
	},
}

// call builds a validated CallExpr, panicking at build time if name is
// unknown for kind or the supplied arity doesn't match opTable's entry.
func call(kind ir.CallKind, name string, args []Expr) Expr {
	tbl, ok := opTable[kind]
	if !ok {
		panic("script: unknown call kind")
	}
	sig, ok := tbl[name]
	if !ok {
		panic("script: unknown op " + kind.String() + ":" + name)
	}
	checkArity(kind.String()+":"+name, len(args), sig.min, sig.variadic)
	return ir.CallExpr{Kind: kind, Name: name, Args: args}
}

func redisCall(name string, args ...Expr) Expr { return call(ir.KindRedis, name, args) }
func helperCall(name string, args ...Expr) Expr { return call(ir.KindHelper, name, args) }
