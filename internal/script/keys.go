package script

// Key-space operations (§4.3's "key ops") — these take raw key
// expressions directly rather than going through a typed wrapper, since
// they act across or independent of any one container's type.

func Del(keys ...Expr) Expr    { return redisCall("del", keys...) }
func Exists(keys ...Expr) Expr { return redisCall("exists", keys...) }
func TypeOf(key Expr) Expr     { return redisCall("type", key) }
func KeysMatching(pattern Expr) Expr { return redisCall("keys", pattern) }

// Scan returns List[Str(nextCursor), List<Str>(keys)]; typeFilter is one
// of "string"/"list"/"hash"/"set"/"zset" or "" for no filter (§4.3).
func Scan(cursor, pattern, count, typeFilter Expr) Expr {
	return redisCall("scan", cursor, pattern, count, typeFilter)
}

func Expire(key, seconds Expr) Expr     { return redisCall("expire", key, seconds) }
func PExpire(key, millis Expr) Expr     { return redisCall("pexpire", key, millis) }
func ExpireAt(key, unixSecs Expr) Expr  { return redisCall("expireat", key, unixSecs) }
func PExpireAt(key, unixMillis Expr) Expr { return redisCall("pexpireat", key, unixMillis) }
func Persist(key Expr) Expr             { return redisCall("persist", key) }
func TTLOf(key Expr) Expr               { return redisCall("ttl", key) }
func PTTLOf(key Expr) Expr              { return redisCall("pttl", key) }
func Rename(oldKey, newKey Expr) Expr   { return redisCall("rename", oldKey, newKey) }

// FlushAll's ASYNC/SYNC open question (§4.3) is resolved as always
// synchronous; async, if passed, is accepted and ignored.
func FlushAll() Expr { return redisCall("flushall") }
func DBSize() Expr   { return redisCall("dbsize") }
