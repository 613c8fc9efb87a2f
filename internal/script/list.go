package script

// RedisList is the typed wrapper for the list commands (§4.2).
type RedisList struct{ Key Expr }

func List(key Expr) RedisList { return RedisList{Key: key} }

func (l RedisList) LPush(values ...Expr) Expr {
	return redisCall("lpush", append([]Expr{l.Key}, values...)...)
}
func (l RedisList) RPush(values ...Expr) Expr {
	return redisCall("rpush", append([]Expr{l.Key}, values...)...)
}

// LPop is the scalar form: Str or Null, never false (§4.4).
func (l RedisList) LPop() Expr { return redisCall("lpop", l.Key) }

// RPop is LPop's tail counterpart.
func (l RedisList) RPop() Expr { return redisCall("rpop", l.Key) }

// LPopCount is the list-returning count variant (§4.3).
func (l RedisList) LPopCount(count Expr) Expr { return helperCall("lpop_count", l.Key, count) }
func (l RedisList) RPopCount(count Expr) Expr { return helperCall("rpop_count", l.Key, count) }

func (l RedisList) LLen() Expr                 { return redisCall("llen", l.Key) }
func (l RedisList) LRange(start, stop Expr) Expr { return redisCall("lrange", l.Key, start, stop) }
func (l RedisList) LIndex(index Expr) Expr     { return redisCall("lindex", l.Key, index) }
