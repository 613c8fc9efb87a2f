package script

// RedisZSet is the typed wrapper for the sorted-set commands (§4.2).
type RedisZSet struct{ Key Expr }

func ZSet(key Expr) RedisZSet { return RedisZSet{Key: key} }

// ZAddOption configures RedisZSet.Add's mode flags, mirroring
// RedisString's SetOption pattern (§4.3).
type ZAddOption func(*zaddOpts)

type zaddOpts struct {
	nx, xx, gt, lt, ch bool
}

func ZNX() ZAddOption { return func(o *zaddOpts) { o.nx = true } }
func ZXX() ZAddOption { return func(o *zaddOpts) { o.xx = true } }
func ZGT() ZAddOption { return func(o *zaddOpts) { o.gt = true } }
func ZLT() ZAddOption { return func(o *zaddOpts) { o.lt = true } }
func ZCH() ZAddOption { return func(o *zaddOpts) { o.ch = true } }

// Add takes alternating member/score expressions, following zadd(key,
// nx, xx, gt, lt, ch, member1, score1, ...)'s fixed argument order.
func (z RedisZSet) Add(memberScorePairs []Expr, opts ...ZAddOption) Expr {
	var o zaddOpts
	for _, opt := range opts {
		opt(&o)
	}
	args := append([]Expr{z.Key, Bool(o.nx), Bool(o.xx), Bool(o.gt), Bool(o.lt), Bool(o.ch)},
		memberScorePairs...)
	return redisCall("zadd", args...)
}

func (z RedisZSet) Rem(members ...Expr) Expr {
	return redisCall("zrem", append([]Expr{z.Key}, members...)...)
}
func (z RedisZSet) Card() Expr               { return redisCall("zcard", z.Key) }
func (z RedisZSet) Score(member Expr) Expr   { return redisCall("zscore", z.Key, member) }

// IncrBy follows zincrby(key, delta, member)'s argument order.
func (z RedisZSet) IncrBy(delta, member Expr) Expr {
	return redisCall("zincrby", z.Key, delta, member)
}

// Range returns List<Str> (members only) or the flat [member,score,...]
// form when withScores is true (§4.4).
func (z RedisZSet) Range(start, stop, rev, withScores Expr) Expr {
	return redisCall("zrange", z.Key, start, stop, rev, withScores)
}
func (z RedisZSet) RangeByScore(min, max, rev, withScores, offset, count Expr) Expr {
	return redisCall("zrangebyscore", z.Key, min, max, rev, withScores, offset, count)
}
func (z RedisZSet) Count(min, max Expr) Expr { return redisCall("zcount", z.Key, min, max) }
func (z RedisZSet) Rank(member, rev Expr) Expr {
	return redisCall("zrank", z.Key, member, rev)
}

// PopMin is the scalar form: List[Str,Float] or Null (§4.4).
func (z RedisZSet) PopMin() Expr { return redisCall("zpopmin", z.Key) }
func (z RedisZSet) PopMax() Expr { return redisCall("zpopmax", z.Key) }

// PopMinCount and PopMaxCount are the list-returning count variants.
func (z RedisZSet) PopMinCount(count Expr) Expr { return helperCall("zpopmin_count", z.Key, count) }
func (z RedisZSet) PopMaxCount(count Expr) Expr { return helperCall("zpopmax_count", z.Key, count) }
