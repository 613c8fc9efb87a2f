package script

// RedisSet is the typed wrapper for the set commands (§4.2).
type RedisSet struct{ Key Expr }

func Set(key Expr) RedisSet { return RedisSet{Key: key} }

func (s RedisSet) Add(members ...Expr) Expr {
	return redisCall("sadd", append([]Expr{s.Key}, members...)...)
}
func (s RedisSet) Rem(members ...Expr) Expr {
	return redisCall("srem", append([]Expr{s.Key}, members...)...)
}
func (s RedisSet) Members() Expr            { return redisCall("smembers", s.Key) }
func (s RedisSet) IsMember(member Expr) Expr { return redisCall("sismember", s.Key, member) }
func (s RedisSet) Card() Expr                { return redisCall("scard", s.Key) }

// Pop is the scalar form: Str or Null, never false (§4.4).
func (s RedisSet) Pop() Expr { return redisCall("spop", s.Key) }

// PopCount is the list-returning count variant (§4.3).
func (s RedisSet) PopCount(count Expr) Expr { return helperCall("spop_count", s.Key, count) }

// RandMember is the scalar form.
func (s RedisSet) RandMember() Expr { return redisCall("srandmember", s.Key) }

// RandMemberCount is the list-returning count variant.
func (s RedisSet) RandMemberCount(count Expr) Expr {
	return helperCall("srandmember_count", s.Key, count)
}

// Diff, Inter and Union are package functions rather than RedisSet
// methods and take the full key list, first operand first, since these
// commands act across multiple sets, not on a single bound key (§4.2).
func Diff(keys ...Expr) Expr  { return redisCall("sdiff", keys...) }
func Inter(keys ...Expr) Expr { return redisCall("sinter", keys...) }
func Union(keys ...Expr) Expr { return redisCall("sunion", keys...) }
