package script

// RedisHash is the typed wrapper for the hash commands (§4.2).
type RedisHash struct{ Key Expr }

func Hash(key Expr) RedisHash { return RedisHash{Key: key} }

func (h RedisHash) Get(field Expr) Expr { return redisCall("hget", h.Key, field) }

// Set takes alternating field/value expressions (§4.2's
// "RedisHash.hset(map) -> Call('redis','hset',[key,k1,v1,...])").
func (h RedisHash) Set(fieldValuePairs ...Expr) Expr {
	return redisCall("hset", append([]Expr{h.Key}, fieldValuePairs...)...)
}
func (h RedisHash) SetNX(field, value Expr) Expr { return redisCall("hsetnx", h.Key, field, value) }
func (h RedisHash) Del(fields ...Expr) Expr {
	return redisCall("hdel", append([]Expr{h.Key}, fields...)...)
}
func (h RedisHash) GetAll() Expr { return redisCall("hgetall", h.Key) }
func (h RedisHash) MGet(fields ...Expr) Expr {
	return redisCall("hmget", append([]Expr{h.Key}, fields...)...)
}
func (h RedisHash) Exists(field Expr) Expr { return redisCall("hexists", h.Key, field) }
func (h RedisHash) Keys() Expr             { return redisCall("hkeys", h.Key) }
func (h RedisHash) Vals() Expr             { return redisCall("hvals", h.Key) }
func (h RedisHash) Len() Expr              { return redisCall("hlen", h.Key) }
func (h RedisHash) IncrBy(field, delta Expr) Expr {
	return redisCall("hincrby", h.Key, field, delta)
}
func (h RedisHash) IncrByFloat(field, delta Expr) Expr {
	return redisCall("hincrbyfloat", h.Key, field, delta)
}
func (h RedisHash) RandField(count Expr) Expr { return redisCall("hrandfield", h.Key, count) }
