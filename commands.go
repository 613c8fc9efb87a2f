package redipy

import (
	"context"
	"strconv"
)

// Commands implemented mirror spec.md §4.3's minimum command surface.
// Every method builds exactly one Command and routes through Client.do,
// bypassing the IR/interpreter/emitter entirely (direct commands bypass
// C2/C3/C5/C6, per spec.md §2's data-flow note) — the same convention
// internal/luarun.Dispatch realizes for the Lua differential harness,
// here reused for both backends via Dispatcher.

// --- strings ---

func (c *Client) Get(ctx context.Context, key string) (string, bool, error) {
	r, err := c.do(ctx, "GET", []string{key}, nil)
	if err != nil {
		return "", false, err
	}
	s, ok := r.Str()
	return s, ok, nil
}

// SetOptions carries SET's mode flags (spec.md §4.3's "NX/XX/KEEPTTL").
type SetOptions struct {
	NX      bool
	XX      bool
	Get     bool
	KeepTTL bool
	EX      int64 // seconds; 0 means unset
	PX      int64 // milliseconds; 0 means unset
}

func (c *Client) Set(ctx context.Context, key, value string, opts SetOptions) (string, bool, error) {
	args := []string{value}
	if opts.NX {
		args = append(args, "NX")
	}
	if opts.XX {
		args = append(args, "XX")
	}
	if opts.Get {
		args = append(args, "GET")
	}
	if opts.KeepTTL {
		args = append(args, "KEEPTTL")
	}
	if opts.EX > 0 {
		args = append(args, "EX", strconv.FormatInt(opts.EX, 10))
	}
	if opts.PX > 0 {
		args = append(args, "PX", strconv.FormatInt(opts.PX, 10))
	}
	r, err := c.do(ctx, "SET", []string{key}, args)
	if err != nil {
		return "", false, err
	}
	return r.Str()
}

func (c *Client) SetNX(ctx context.Context, key, value string) (bool, error) {
	r, err := c.do(ctx, "SETNX", []string{key}, []string{value})
	return r.Bool(), err
}

func (c *Client) MGet(ctx context.Context, keys ...string) ([]string, error) {
	r, err := c.do(ctx, "MGET", keys, nil)
	return r.StrList(), err
}

func (c *Client) MSet(ctx context.Context, pairs map[string]string) error {
	keys := make([]string, 0, len(pairs))
	vals := make([]string, 0, len(pairs))
	for k, v := range pairs {
		keys = append(keys, k)
		vals = append(vals, v)
	}
	_, err := c.do(ctx, "MSET", keys, vals)
	return err
}

func (c *Client) IncrBy(ctx context.Context, key string, delta int64) (int64, error) {
	r, err := c.do(ctx, "INCRBY", []string{key}, []string{strconv.FormatInt(delta, 10)})
	return r.Int(), err
}

func (c *Client) IncrByFloat(ctx context.Context, key string, delta float64) (float64, error) {
	r, err := c.do(ctx, "INCRBYFLOAT", []string{key}, []string{strconv.FormatFloat(delta, 'f', -1, 64)})
	return r.Float(), err
}

func (c *Client) Append(ctx context.Context, key, value string) (int64, error) {
	r, err := c.do(ctx, "APPEND", []string{key}, []string{value})
	return r.Int(), err
}

func (c *Client) StrLen(ctx context.Context, key string) (int64, error) {
	r, err := c.do(ctx, "STRLEN", []string{key}, nil)
	return r.Int(), err
}

func (c *Client) GetRange(ctx context.Context, key string, start, end int64) (string, error) {
	r, err := c.do(ctx, "GETRANGE", []string{key}, []string{
		strconv.FormatInt(start, 10), strconv.FormatInt(end, 10),
	})
	s, _ := r.Str()
	return s, err
}

func (c *Client) SetRange(ctx context.Context, key string, offset int64, value string) (int64, error) {
	r, err := c.do(ctx, "SETRANGE", []string{key}, []string{strconv.FormatInt(offset, 10), value})
	return r.Int(), err
}

// --- keys ---

func (c *Client) Del(ctx context.Context, keys ...string) (int64, error) {
	r, err := c.do(ctx, "DEL", keys, nil)
	return r.Int(), err
}

func (c *Client) Exists(ctx context.Context, keys ...string) (int64, error) {
	r, err := c.do(ctx, "EXISTS", keys, nil)
	return r.Int(), err
}

func (c *Client) Type(ctx context.Context, key string) (string, error) {
	r, err := c.do(ctx, "TYPE", []string{key}, nil)
	s, _ := r.Str()
	return s, err
}

func (c *Client) Keys(ctx context.Context, pattern string) ([]string, error) {
	r, err := c.do(ctx, "KEYS", nil, []string{pattern})
	return r.StrList(), err
}

func (c *Client) Expire(ctx context.Context, key string, seconds int64) (bool, error) {
	r, err := c.do(ctx, "EXPIRE", []string{key}, []string{strconv.FormatInt(seconds, 10)})
	return r.Bool(), err
}

func (c *Client) PExpire(ctx context.Context, key string, millis int64) (bool, error) {
	r, err := c.do(ctx, "PEXPIRE", []string{key}, []string{strconv.FormatInt(millis, 10)})
	return r.Bool(), err
}

func (c *Client) ExpireAt(ctx context.Context, key string, unixSeconds int64) (bool, error) {
	r, err := c.do(ctx, "EXPIREAT", []string{key}, []string{strconv.FormatInt(unixSeconds, 10)})
	return r.Bool(), err
}

func (c *Client) PExpireAt(ctx context.Context, key string, unixMillis int64) (bool, error) {
	r, err := c.do(ctx, "PEXPIREAT", []string{key}, []string{strconv.FormatInt(unixMillis, 10)})
	return r.Bool(), err
}

func (c *Client) Persist(ctx context.Context, key string) (bool, error) {
	r, err := c.do(ctx, "PERSIST", []string{key}, nil)
	return r.Bool(), err
}

func (c *Client) TTL(ctx context.Context, key string) (int64, error) {
	r, err := c.do(ctx, "TTL", []string{key}, nil)
	return r.Int(), err
}

func (c *Client) PTTL(ctx context.Context, key string) (int64, error) {
	r, err := c.do(ctx, "PTTL", []string{key}, nil)
	return r.Int(), err
}

func (c *Client) Rename(ctx context.Context, oldKey, newKey string) error {
	_, err := c.do(ctx, "RENAME", []string{oldKey, newKey}, nil)
	return err
}

func (c *Client) FlushAll(ctx context.Context) error {
	_, err := c.do(ctx, "FLUSHALL", nil, nil)
	return err
}

func (c *Client) DBSize(ctx context.Context) (int64, error) {
	r, err := c.do(ctx, "DBSIZE", nil, nil)
	return r.Int(), err
}

// --- lists ---

func (c *Client) LPush(ctx context.Context, key string, values ...string) (int64, error) {
	r, err := c.do(ctx, "LPUSH", []string{key}, values)
	return r.Int(), err
}

func (c *Client) RPush(ctx context.Context, key string, values ...string) (int64, error) {
	r, err := c.do(ctx, "RPUSH", []string{key}, values)
	return r.Int(), err
}

// LPop pops one element when count < 0 (scalar-or-null per spec.md
// §4.3); with count >= 0 it pops up to count elements as a list.
func (c *Client) LPop(ctx context.Context, key string, count int64) ([]string, string, bool, error) {
	args := []string{}
	if count >= 0 {
		args = append(args, strconv.FormatInt(count, 10))
	}
	r, err := c.do(ctx, "LPOP", []string{key}, args)
	if err != nil {
		return nil, "", false, err
	}
	if count >= 0 {
		return r.StrList(), "", false, nil
	}
	s, ok := r.Str()
	return nil, s, ok, nil
}

func (c *Client) RPop(ctx context.Context, key string, count int64) ([]string, string, bool, error) {
	args := []string{}
	if count >= 0 {
		args = append(args, strconv.FormatInt(count, 10))
	}
	r, err := c.do(ctx, "RPOP", []string{key}, args)
	if err != nil {
		return nil, "", false, err
	}
	if count >= 0 {
		return r.StrList(), "", false, nil
	}
	s, ok := r.Str()
	return nil, s, ok, nil
}

func (c *Client) LLen(ctx context.Context, key string) (int64, error) {
	r, err := c.do(ctx, "LLEN", []string{key}, nil)
	return r.Int(), err
}

func (c *Client) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	r, err := c.do(ctx, "LRANGE", []string{key}, []string{
		strconv.FormatInt(start, 10), strconv.FormatInt(stop, 10),
	})
	return r.StrList(), err
}

func (c *Client) LIndex(ctx context.Context, key string, index int64) (string, bool, error) {
	r, err := c.do(ctx, "LINDEX", []string{key}, []string{strconv.FormatInt(index, 10)})
	if err != nil {
		return "", false, err
	}
	s, ok := r.Str()
	return s, ok, nil
}

// --- hashes ---

func (c *Client) HGet(ctx context.Context, key, field string) (string, bool, error) {
	r, err := c.do(ctx, "HGET", []string{key}, []string{field})
	if err != nil {
		return "", false, err
	}
	s, ok := r.Str()
	return s, ok, nil
}

func (c *Client) HSet(ctx context.Context, key string, fields map[string]string) (int64, error) {
	args := make([]string, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	r, err := c.do(ctx, "HSET", []string{key}, args)
	return r.Int(), err
}

func (c *Client) HSetNX(ctx context.Context, key, field, value string) (bool, error) {
	r, err := c.do(ctx, "HSETNX", []string{key}, []string{field, value})
	return r.Bool(), err
}

func (c *Client) HDel(ctx context.Context, key string, fields ...string) (int64, error) {
	r, err := c.do(ctx, "HDEL", []string{key}, fields)
	return r.Int(), err
}

func (c *Client) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	r, err := c.do(ctx, "HGETALL", []string{key}, nil)
	return r.StrMap(), err
}

func (c *Client) HMGet(ctx context.Context, key string, fields ...string) ([]string, error) {
	r, err := c.do(ctx, "HMGET", []string{key}, fields)
	return r.StrList(), err
}

func (c *Client) HExists(ctx context.Context, key, field string) (bool, error) {
	r, err := c.do(ctx, "HEXISTS", []string{key}, []string{field})
	return r.Bool(), err
}

func (c *Client) HKeys(ctx context.Context, key string) ([]string, error) {
	r, err := c.do(ctx, "HKEYS", []string{key}, nil)
	return r.StrList(), err
}

func (c *Client) HVals(ctx context.Context, key string) ([]string, error) {
	r, err := c.do(ctx, "HVALS", []string{key}, nil)
	return r.StrList(), err
}

func (c *Client) HLen(ctx context.Context, key string) (int64, error) {
	r, err := c.do(ctx, "HLEN", []string{key}, nil)
	return r.Int(), err
}

func (c *Client) HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error) {
	r, err := c.do(ctx, "HINCRBY", []string{key}, []string{field, strconv.FormatInt(delta, 10)})
	return r.Int(), err
}

func (c *Client) HIncrByFloat(ctx context.Context, key, field string, delta float64) (float64, error) {
	r, err := c.do(ctx, "HINCRBYFLOAT", []string{key}, []string{field, strconv.FormatFloat(delta, 'f', -1, 64)})
	return r.Float(), err
}

// --- sets ---

func (c *Client) SAdd(ctx context.Context, key string, members ...string) (int64, error) {
	r, err := c.do(ctx, "SADD", []string{key}, members)
	return r.Int(), err
}

func (c *Client) SRem(ctx context.Context, key string, members ...string) (int64, error) {
	r, err := c.do(ctx, "SREM", []string{key}, members)
	return r.Int(), err
}

func (c *Client) SMembers(ctx context.Context, key string) ([]string, error) {
	r, err := c.do(ctx, "SMEMBERS", []string{key}, nil)
	return r.StrList(), err
}

func (c *Client) SIsMember(ctx context.Context, key, member string) (bool, error) {
	r, err := c.do(ctx, "SISMEMBER", []string{key}, []string{member})
	return r.Bool(), err
}

func (c *Client) SCard(ctx context.Context, key string) (int64, error) {
	r, err := c.do(ctx, "SCARD", []string{key}, nil)
	return r.Int(), err
}

// SPop pops one member when count < 0 (scalar-or-null, matching LPop's
// convention); with count >= 0 it pops up to count members as a list.
func (c *Client) SPop(ctx context.Context, key string, count int64) ([]string, string, bool, error) {
	args := []string{}
	if count >= 0 {
		args = append(args, strconv.FormatInt(count, 10))
	}
	r, err := c.do(ctx, "SPOP", []string{key}, args)
	if err != nil {
		return nil, "", false, err
	}
	if count >= 0 {
		return r.StrList(), "", false, nil
	}
	s, ok := r.Str()
	return nil, s, ok, nil
}

func (c *Client) SRandMember(ctx context.Context, key string, count int64) ([]string, error) {
	r, err := c.do(ctx, "SRANDMEMBER", []string{key}, []string{strconv.FormatInt(count, 10)})
	return r.StrList(), err
}

func (c *Client) SDiff(ctx context.Context, keys ...string) ([]string, error) {
	r, err := c.do(ctx, "SDIFF", keys, nil)
	return r.StrList(), err
}

func (c *Client) SInter(ctx context.Context, keys ...string) ([]string, error) {
	r, err := c.do(ctx, "SINTER", keys, nil)
	return r.StrList(), err
}

func (c *Client) SUnion(ctx context.Context, keys ...string) ([]string, error) {
	r, err := c.do(ctx, "SUNION", keys, nil)
	return r.StrList(), err
}

// --- sorted sets ---

func (c *Client) ZAdd(ctx context.Context, key string, members map[string]float64) (int64, error) {
	args := make([]string, 0, len(members)*2)
	for member, score := range members {
		args = append(args, strconv.FormatFloat(score, 'f', -1, 64), member)
	}
	r, err := c.do(ctx, "ZADD", []string{key}, args)
	return r.Int(), err
}

func (c *Client) ZRem(ctx context.Context, key string, members ...string) (int64, error) {
	r, err := c.do(ctx, "ZREM", []string{key}, members)
	return r.Int(), err
}

func (c *Client) ZCard(ctx context.Context, key string) (int64, error) {
	r, err := c.do(ctx, "ZCARD", []string{key}, nil)
	return r.Int(), err
}

func (c *Client) ZScore(ctx context.Context, key, member string) (float64, bool, error) {
	r, err := c.do(ctx, "ZSCORE", []string{key}, []string{member})
	if err != nil {
		return 0, false, err
	}
	return r.Float(), !r.Raw().IsNull(), nil
}

func (c *Client) ZIncrBy(ctx context.Context, key, member string, delta float64) (float64, error) {
	r, err := c.do(ctx, "ZINCRBY", []string{key}, []string{strconv.FormatFloat(delta, 'f', -1, 64), member})
	return r.Float(), err
}

// ZRange returns members, optionally interleaved with scores when
// withScores is set (spec.md §4.3's ZRANGE surface).
func (c *Client) ZRange(ctx context.Context, key string, start, stop int64, rev, withScores bool) ([]string, error) {
	args := []string{strconv.FormatInt(start, 10), strconv.FormatInt(stop, 10)}
	if rev {
		args = append(args, "REV")
	}
	if withScores {
		args = append(args, "WITHSCORES")
	}
	r, err := c.do(ctx, "ZRANGE", []string{key}, args)
	return r.StrList(), err
}

func (c *Client) ZRangeByScore(ctx context.Context, key string, min, max float64) ([]string, error) {
	r, err := c.do(ctx, "ZRANGEBYSCORE", []string{key}, []string{
		strconv.FormatFloat(min, 'f', -1, 64), strconv.FormatFloat(max, 'f', -1, 64),
	})
	return r.StrList(), err
}

func (c *Client) ZCount(ctx context.Context, key string, min, max float64) (int64, error) {
	r, err := c.do(ctx, "ZCOUNT", []string{key}, []string{
		strconv.FormatFloat(min, 'f', -1, 64), strconv.FormatFloat(max, 'f', -1, 64),
	})
	return r.Int(), err
}

func (c *Client) ZRank(ctx context.Context, key, member string) (int64, bool, error) {
	r, err := c.do(ctx, "ZRANK", []string{key}, []string{member})
	if err != nil {
		return 0, false, err
	}
	return r.Int(), !r.Raw().IsNull(), nil
}

func (c *Client) ZPopMin(ctx context.Context, key string, count int64) ([]string, error) {
	r, err := c.do(ctx, "ZPOPMIN", []string{key}, []string{strconv.FormatInt(count, 10)})
	return r.StrList(), err
}

func (c *Client) ZPopMax(ctx context.Context, key string, count int64) ([]string, error) {
	r, err := c.do(ctx, "ZPOPMAX", []string{key}, []string{strconv.FormatInt(count, 10)})
	return r.StrList(), err
}
