package engine

import (
	"sort"

	"github.com/JosuaKrause/redipy/rerr"
)

// ZAddFlags captures ZADD's NX/XX/GT/LT/CH flag grammar, ported from
// the teacher's zaddOp pairwise-exclusivity checks.
type ZAddFlags struct {
	NX, XX, GT, LT, CH bool
}

// Validate enforces the mutual-exclusivity rules real Redis (and the
// teacher's handler_ops.go zaddOp) applies before looking at any
// score/member pair.
func (f ZAddFlags) Validate() error {
	if f.NX && f.XX {
		return rerr.New(rerr.KindScriptError, "XX and NX options at the same time are not compatible")
	}
	if f.GT && f.LT {
		return rerr.New(rerr.KindScriptError, "GT and LT options at the same time are not compatible")
	}
	if (f.GT || f.LT) && f.NX {
		return rerr.New(rerr.KindScriptError, "GT/LT and NX options at the same time are not compatible")
	}
	return nil
}

// ZAdd adds or updates members with flags.Validate()'s grammar already
// checked by the caller. Returns the number of newly-added members
// (or, with flags.CH, the number changed — added or re-scored).
func (e *Engine) ZAdd(key string, pairs map[string]float64, flags ZAddFlags) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.isExpired(key)
	if err := e.checkType(key, TypeZSet); err != nil {
		return 0, err
	}
	z, ok := e.zsets[key]
	if !ok {
		z = make(map[string]float64, len(pairs))
		e.zsets[key] = z
	}

	var added, changed int64
	for member, score := range pairs {
		old, existed := z[member]
		if flags.NX && existed {
			continue
		}
		if flags.XX && !existed {
			continue
		}
		if flags.GT && existed && score <= old {
			continue
		}
		if flags.LT && existed && score >= old {
			continue
		}
		if !existed {
			added++
			changed++
		} else if old != score {
			changed++
		}
		z[member] = score
	}
	e.keyTypes[key] = TypeZSet
	if flags.CH {
		return changed, nil
	}
	return added, nil
}

// ZRem removes members from key's sorted set, returning how many
// actually existed.
func (e *Engine) ZRem(key string, members []string) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isExpired(key) {
		return 0, nil
	}
	if err := e.checkType(key, TypeZSet); err != nil {
		return 0, err
	}
	z := e.zsets[key]
	var n int64
	for _, m := range members {
		if _, ok := z[m]; ok {
			delete(z, m)
			n++
		}
	}
	e.dropIfEmptyLocked(key, TypeZSet)
	return n, nil
}

// ZCard returns the number of members in key's sorted set, 0 if absent.
func (e *Engine) ZCard(key string) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isExpired(key) {
		return 0, nil
	}
	if err := e.checkType(key, TypeZSet); err != nil {
		return 0, err
	}
	return int64(len(e.zsets[key])), nil
}

// ZScore returns member's score; ok is false if member or key is absent.
func (e *Engine) ZScore(key, member string) (float64, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isExpired(key) {
		return 0, false, nil
	}
	if err := e.checkType(key, TypeZSet); err != nil {
		return 0, false, err
	}
	s, ok := e.zsets[key][member]
	return s, ok, nil
}

// ZIncrBy adds delta to member's score (creating the member with score
// delta if absent), returning the resulting score.
func (e *Engine) ZIncrBy(key, member string, delta float64) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.isExpired(key)
	if err := e.checkType(key, TypeZSet); err != nil {
		return 0, err
	}
	z, ok := e.zsets[key]
	if !ok {
		z = make(map[string]float64)
		e.zsets[key] = z
	}
	z[member] += delta
	e.keyTypes[key] = TypeZSet
	return z[member], nil
}

// sortedMembers returns key's members ordered by score ascending,
// ties broken by member lexicographic order (§4.3's ZADD tie-break
// rule, applied uniformly to every ordered zset read).
func (e *Engine) sortedMembers(key string) []zmember {
	z := e.zsets[key]
	out := make([]zmember, 0, len(z))
	for m, s := range z {
		out = append(out, zmember{member: m, score: s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].score != out[j].score {
			return out[i].score < out[j].score
		}
		return out[i].member < out[j].member
	})
	return out
}

// ZRange returns members between start and stop (0-based rank,
// negative from the end), ascending by default or descending if rev is
// set, optionally paired with their scores.
func (e *Engine) ZRange(key string, start, stop int64, rev bool) ([]zmember, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isExpired(key) {
		return nil, nil
	}
	if err := e.checkType(key, TypeZSet); err != nil {
		return nil, err
	}
	members := e.sortedMembers(key)
	if rev {
		for i, j := 0, len(members)-1; i < j; i, j = i+1, j-1 {
			members[i], members[j] = members[j], members[i]
		}
	}
	n := int64(len(members))
	start, stop = clampRange(start, stop, n)
	if start > stop || n == 0 {
		return nil, nil
	}
	return append([]zmember(nil), members[start:stop+1]...), nil
}

// ZRangeByScore returns members whose score falls in [min,max]
// (inclusive by default — callers implementing exclusive bounds filter
// the boundary themselves before calling, matching the emitter/
// interpreter's shared helper for parsing score bound syntax),
// optionally reversed, offset/limited.
func (e *Engine) ZRangeByScore(key string, min, max float64, rev bool, offset, count int64) ([]zmember, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isExpired(key) {
		return nil, nil
	}
	if err := e.checkType(key, TypeZSet); err != nil {
		return nil, err
	}
	members := e.sortedMembers(key)
	var filtered []zmember
	for _, m := range members {
		if m.score >= min && m.score <= max {
			filtered = append(filtered, m)
		}
	}
	if rev {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}
	if offset > 0 {
		if offset >= int64(len(filtered)) {
			return nil, nil
		}
		filtered = filtered[offset:]
	}
	if count >= 0 && count < int64(len(filtered)) {
		filtered = filtered[:count]
	}
	return filtered, nil
}

// ZCount returns how many members fall in [min,max].
func (e *Engine) ZCount(key string, min, max float64) (int64, error) {
	members, err := e.ZRangeByScore(key, min, max, false, 0, -1)
	if err != nil {
		return 0, err
	}
	return int64(len(members)), nil
}

// ZRank returns member's 0-based rank by ascending score (descending if
// rev is set); ok is false if member or key is absent.
func (e *Engine) ZRank(key, member string, rev bool) (int64, bool, error) {
	e.mu.Lock()
	_, present := e.zsets[key][member]
	e.mu.Unlock()
	if !present {
		return 0, false, nil
	}
	members, err := e.ZRange(key, 0, -1, rev)
	if err != nil {
		return 0, false, err
	}
	for i, m := range members {
		if m.member == member {
			return int64(i), true, nil
		}
	}
	return 0, false, nil
}

// ZPopMin removes and returns up to count members with the lowest
// scores (ties broken lexicographically), empty if the key is absent.
func (e *Engine) ZPopMin(key string, count int64) ([]zmember, error) {
	return e.zPop(key, count, false)
}

// ZPopMax is ZPopMin's highest-score counterpart.
func (e *Engine) ZPopMax(key string, count int64) ([]zmember, error) {
	return e.zPop(key, count, true)
}

func (e *Engine) zPop(key string, count int64, max bool) ([]zmember, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isExpired(key) {
		return nil, nil
	}
	if err := e.checkType(key, TypeZSet); err != nil {
		return nil, err
	}
	members := e.sortedMembers(key)
	if max {
		for i, j := 0, len(members)-1; i < j; i, j = i+1, j-1 {
			members[i], members[j] = members[j], members[i]
		}
	}
	if count > int64(len(members)) {
		count = int64(len(members))
	}
	if count <= 0 {
		return nil, nil
	}
	popped := members[:count]
	z := e.zsets[key]
	for _, m := range popped {
		delete(z, m.member)
	}
	e.dropIfEmptyLocked(key, TypeZSet)
	return popped, nil
}

// ZMember is the exported view of a scored member, used by callers
// outside this package.
type ZMember struct {
	Member string
	Score  float64
}

// ToZMembers converts a []zmember slice to the exported ZMember shape.
func ToZMembers(in []zmember) []ZMember {
	out := make([]ZMember, len(in))
	for i, m := range in {
		out[i] = ZMember{Member: m.member, Score: m.score}
	}
	return out
}
