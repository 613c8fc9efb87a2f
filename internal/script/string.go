package script

// RedisString is the typed wrapper for the string commands (§4.2), bound
// to a key expression (typically a KeyRef returned by FnContext.Key, but
// any Expr evaluating to a key name works).
type RedisString struct{ Key Expr }

func String(key Expr) RedisString { return RedisString{Key: key} }

func (s RedisString) Get() Expr { return redisCall("get", s.Key) }

// SetOption configures RedisString.Set's mode flags (§4.3).
type SetOption func(*setOpts)

type setOpts struct {
	nx, xx, keepTTL, get bool
	ttlMillis            int64
}

func NX() SetOption      { return func(o *setOpts) { o.nx = true } }
func XX() SetOption      { return func(o *setOpts) { o.xx = true } }
func KeepTTL() SetOption { return func(o *setOpts) { o.keepTTL = true } }
func WithGet() SetOption { return func(o *setOpts) { o.get = true } }

// WithTTLMillis sets an explicit expiry in milliseconds for this SET.
func WithTTLMillis(ms int64) SetOption {
	return func(o *setOpts) { o.ttlMillis = ms }
}

// Set stores value at s.Key. With WithGet(), the call evaluates to the
// previous value (or Null); otherwise to a Bool indicating whether the
// write happened (§4.3).
func (s RedisString) Set(value Expr, opts ...SetOption) Expr {
	var o setOpts
	for _, opt := range opts {
		opt(&o)
	}
	return redisCall("set", s.Key, value,
		Bool(o.nx), Bool(o.xx), Bool(o.keepTTL), Bool(o.get), Int(o.ttlMillis))
}

func (s RedisString) SetNX(value Expr) Expr { return redisCall("setnx", s.Key, value) }

func MGet(keys ...Expr) Expr { return redisCall("mget", keys...) }

// MSet takes alternating key/value expressions.
func MSet(pairs ...Expr) Expr { return redisCall("mset", pairs...) }

func (s RedisString) IncrBy(delta Expr) Expr      { return redisCall("incrby", s.Key, delta) }
func (s RedisString) IncrByFloat(delta Expr) Expr { return redisCall("incrbyfloat", s.Key, delta) }
func (s RedisString) Append(value Expr) Expr      { return redisCall("append", s.Key, value) }
func (s RedisString) Strlen() Expr                { return redisCall("strlen", s.Key) }
func (s RedisString) GetRange(start, end Expr) Expr {
	return redisCall("getrange", s.Key, start, end)
}
func (s RedisString) SetRange(offset, value Expr) Expr {
	return redisCall("setrange", s.Key, offset, value)
}
