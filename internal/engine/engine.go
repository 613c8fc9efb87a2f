// Package engine implements the in-memory data engine (SPEC_FULL.md
// C4): a single-threaded-semantics state machine holding keys and their
// typed values plus a TTL table, exposing the full command surface used
// by both the direct client and the IR interpreter. It is grounded on
// the teacher's storage.MockStore (internal/storage/mock.go): one map
// per container kind, one sync.RWMutex, the same isExpired/deleteKey
// eviction pattern.
package engine

import (
	"sort"
	"sync"
	"time"

	"github.com/JosuaKrause/redipy/rerr"
)

// KeyType identifies the Redis-visible type of a stored key.
type KeyType int

const (
	TypeNone KeyType = iota
	TypeString
	TypeList
	TypeHash
	TypeSet
	TypeZSet
)

func (t KeyType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeList:
		return "list"
	case TypeHash:
		return "hash"
	case TypeSet:
		return "set"
	case TypeZSet:
		return "zset"
	default:
		return "none"
	}
}

// zmember is one member of a sorted set: a string with a float64 score.
type zmember struct {
	member string
	score  float64
}

// Engine is the in-memory Redis-like state machine (C4). The zero value
// is not usable; construct with New.
type Engine struct {
	mu sync.RWMutex

	strings map[string]string
	lists   map[string][]string
	hashes  map[string]map[string]string
	sets    map[string]map[string]struct{}
	zsets   map[string]map[string]float64

	keyTypes  map[string]KeyType
	expiresAt map[string]time.Time
}

// New creates an empty in-memory engine.
func New() *Engine {
	return &Engine{
		strings:   make(map[string]string),
		lists:     make(map[string][]string),
		hashes:    make(map[string]map[string]string),
		sets:      make(map[string]map[string]struct{}),
		zsets:     make(map[string]map[string]float64),
		keyTypes:  make(map[string]KeyType),
		expiresAt: make(map[string]time.Time),
	}
}

// isExpired reports, and opportunistically applies, TTL expiry for key.
// Callers must hold mu for writing, since an expired key is deleted
// here via deleteKeyLocked.
func (e *Engine) isExpired(key string) bool {
	exp, ok := e.expiresAt[key]
	if !ok {
		return false
	}
	if time.Now().Before(exp) {
		return false
	}
	e.deleteKeyLocked(key)
	return true
}

// deleteKeyLocked removes key from every container and from the expiry
// table. Invariant (ii): an expiry entry never outlives its key.
func (e *Engine) deleteKeyLocked(key string) {
	delete(e.strings, key)
	delete(e.lists, key)
	delete(e.hashes, key)
	delete(e.sets, key)
	delete(e.zsets, key)
	delete(e.keyTypes, key)
	delete(e.expiresAt, key)
}

// dropIfEmptyLocked deletes key if its container value has become
// empty, enforcing invariant (i): no container type is stored empty.
func (e *Engine) dropIfEmptyLocked(key string, t KeyType) {
	switch t {
	case TypeList:
		if len(e.lists[key]) == 0 {
			e.deleteKeyLocked(key)
		}
	case TypeHash:
		if len(e.hashes[key]) == 0 {
			e.deleteKeyLocked(key)
		}
	case TypeSet:
		if len(e.sets[key]) == 0 {
			e.deleteKeyLocked(key)
		}
	case TypeZSet:
		if len(e.zsets[key]) == 0 {
			e.deleteKeyLocked(key)
		}
	}
}

// checkType returns a TypeMismatch error if key exists with a type
// other than want. Does not itself check expiry; callers call
// isExpired first.
func (e *Engine) checkType(key string, want KeyType) error {
	if t, ok := e.keyTypes[key]; ok && t != want {
		return rerr.TypeMismatch()
	}
	return nil
}

// ============== Key commands ==============

// Del removes the listed keys, returning the count actually removed.
func (e *Engine) Del(keys []string) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	var n int64
	for _, k := range keys {
		if e.isExpired(k) {
			continue
		}
		if _, ok := e.keyTypes[k]; ok {
			e.deleteKeyLocked(k)
			n++
		}
	}
	return n
}

// Exists counts how many of the listed keys are currently alive,
// counting duplicates in the input once each.
func (e *Engine) Exists(keys []string) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	var n int64
	for _, k := range keys {
		if e.isExpired(k) {
			continue
		}
		if _, ok := e.keyTypes[k]; ok {
			n++
		}
	}
	return n
}

// Type reports the Redis-visible type of key, or TypeNone if absent.
func (e *Engine) Type(key string) KeyType {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isExpired(key) {
		return TypeNone
	}
	return e.keyTypes[key]
}

// Expire sets key's TTL. Negative or zero ttl deletes the key
// immediately. Setting TTL on an absent key returns false, not an
// error (§4.3).
func (e *Engine) Expire(key string, ttl time.Duration) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isExpired(key) {
		return false
	}
	if _, ok := e.keyTypes[key]; !ok {
		return false
	}
	if ttl <= 0 {
		e.deleteKeyLocked(key)
		return true
	}
	e.expiresAt[key] = time.Now().Add(ttl)
	return true
}

// ExpireAt sets key's absolute expiry time. A time at or before now
// deletes the key immediately, same as Expire with a non-positive TTL.
func (e *Engine) ExpireAt(key string, at time.Time) bool {
	return e.Expire(key, time.Until(at))
}

// Persist removes key's TTL, if any, returning whether a TTL was
// actually cleared.
func (e *Engine) Persist(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isExpired(key) {
		return false
	}
	if _, ok := e.keyTypes[key]; !ok {
		return false
	}
	if _, ok := e.expiresAt[key]; !ok {
		return false
	}
	delete(e.expiresAt, key)
	return true
}

// TTL returns the remaining time to live for key in whole seconds: -1
// if the key has no expiry, -2 if the key doesn't exist.
func (e *Engine) TTL(key string) int64 {
	ms := e.PTTL(key)
	if ms < 0 {
		return ms
	}
	secs := ms / 1000
	if ms%1000 != 0 {
		secs++ // round up, matching Redis's ceil-to-second TTL semantics
	}
	return secs
}

// PTTL returns the remaining time to live for key in milliseconds: -1
// if the key has no expiry, -2 if the key doesn't exist.
func (e *Engine) PTTL(key string) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isExpired(key) {
		return -2
	}
	if _, ok := e.keyTypes[key]; !ok {
		return -2
	}
	exp, ok := e.expiresAt[key]
	if !ok {
		return -1
	}
	remaining := time.Until(exp)
	if remaining < 0 {
		return 0
	}
	return remaining.Milliseconds()
}

// Rename moves oldKey's value (and TTL) to newKey, overwriting any
// value already at newKey. Returns TypeMismatch-shaped NotFound error
// semantics via a bool: false if oldKey doesn't exist.
func (e *Engine) Rename(oldKey, newKey string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isExpired(oldKey) {
		return false
	}
	t, ok := e.keyTypes[oldKey]
	if !ok {
		return false
	}
	e.isExpired(newKey)
	exp, hadExp := e.expiresAt[oldKey]
	e.deleteKeyLocked(newKey)
	switch t {
	case TypeString:
		e.strings[newKey] = e.strings[oldKey]
	case TypeList:
		e.lists[newKey] = e.lists[oldKey]
	case TypeHash:
		e.hashes[newKey] = e.hashes[oldKey]
	case TypeSet:
		e.sets[newKey] = e.sets[oldKey]
	case TypeZSet:
		e.zsets[newKey] = e.zsets[oldKey]
	}
	e.keyTypes[newKey] = t
	if hadExp {
		e.expiresAt[newKey] = exp
	}
	delete(e.strings, oldKey)
	delete(e.lists, oldKey)
	delete(e.hashes, oldKey)
	delete(e.sets, oldKey)
	delete(e.zsets, oldKey)
	delete(e.keyTypes, oldKey)
	delete(e.expiresAt, oldKey)
	return true
}

// Keys returns every currently-alive key matching a Redis glob pattern
// ("*", "?", "[...]"), in sorted order for deterministic iteration.
func (e *Engine) Keys(pattern string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	re := globToRegexp(pattern)
	var out []string
	for k := range e.keyTypes {
		if e.isExpired(k) {
			continue
		}
		if re.MatchString(k) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// FlushAll removes every key. Always synchronous (SPEC_FULL.md §4.3
// resolves the ASYNC/SYNC open question this way); the async flag, if
// passed by a caller, is accepted and ignored.
func (e *Engine) FlushAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.strings = make(map[string]string)
	e.lists = make(map[string][]string)
	e.hashes = make(map[string]map[string]string)
	e.sets = make(map[string]map[string]struct{})
	e.zsets = make(map[string]map[string]float64)
	e.keyTypes = make(map[string]KeyType)
	e.expiresAt = make(map[string]time.Time)
}

// DBSize reports the number of currently-alive keys.
func (e *Engine) DBSize() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	var n int64
	for k := range e.keyTypes {
		if !e.isExpired(k) {
			n++
		}
	}
	return n
}
