package engine

import (
	"strconv"
	"time"

	"github.com/JosuaKrause/redipy/rerr"
)

// Get returns key's string value; ok is false if key is absent (the
// interpreter surfaces this as Null, never as false — §4.4).
func (e *Engine) Get(key string) (string, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isExpired(key) {
		return "", false, nil
	}
	if err := e.checkType(key, TypeString); err != nil {
		return "", false, err
	}
	v, ok := e.strings[key]
	return v, ok, nil
}

// SetFlags captures SET's mode flags (§4.3): NX/XX mutually exclusive
// preconditions, KEEPTTL to preserve an existing expiry, and GET to
// additionally return the previous value.
type SetFlags struct {
	NX      bool
	XX      bool
	KeepTTL bool
	Get     bool
	TTL     time.Duration // zero means "no explicit TTL in this call"
}

// Set stores value at key honoring flags. ok reports whether the write
// happened (always true unless NX/XX preconditions failed). prev is
// the previous value when flags.Get is set.
func (e *Engine) Set(key, value string, flags SetFlags) (ok bool, prev string, prevOK bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.isExpired(key)
	if terr := e.checkType(key, TypeString); terr != nil && (flags.NX || flags.XX || flags.Get || flags.KeepTTL) {
		// A GET/NX/XX/KEEPTTL SET against a wrong-type key is still a
		// type error in real Redis; a plain SET overwrites regardless.
		return false, "", false, terr
	}
	_, exists := e.strings[key]
	if flags.Get {
		prev, prevOK = e.strings[key], exists
	}
	if flags.NX && exists {
		return false, prev, prevOK, nil
	}
	if flags.XX && !exists {
		return false, prev, prevOK, nil
	}

	var keepExp time.Time
	keepExpOK := false
	if flags.KeepTTL {
		keepExp, keepExpOK = e.expiresAt[key]
	}

	e.deleteKeyLocked(key)
	e.strings[key] = value
	e.keyTypes[key] = TypeString
	if flags.TTL > 0 {
		e.expiresAt[key] = time.Now().Add(flags.TTL)
	} else if keepExpOK {
		e.expiresAt[key] = keepExp
	}
	return true, prev, prevOK, nil
}

// SetNX sets key only if it does not already exist.
func (e *Engine) SetNX(key, value string) (bool, error) {
	ok, _, _, err := e.Set(key, value, SetFlags{NX: true})
	return ok, err
}

// MGetFound returns, for each key, its string value and whether it
// should be treated as present (vs. Null) — a wrong-type key reads as
// absent, matching real Redis's MGET behavior of never erroring.
func (e *Engine) MGetFound(keys []string) ([]string, []bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	vals := make([]string, len(keys))
	found := make([]bool, len(keys))
	for i, k := range keys {
		if e.isExpired(k) {
			continue
		}
		if t, ok := e.keyTypes[k]; ok && t == TypeString {
			vals[i] = e.strings[k]
			found[i] = true
		}
	}
	return vals, found
}

// MSet sets multiple string keys atomically relative to readers.
func (e *Engine) MSet(pairs map[string]string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for k, v := range pairs {
		e.deleteKeyLocked(k)
		e.strings[k] = v
		e.keyTypes[k] = TypeString
	}
}

// Incr adds delta to key's integer value (creating it as "0" first if
// absent), erroring if the stored value isn't a base-10 integer (§4.3).
func (e *Engine) Incr(key string, delta int64) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.isExpired(key)
	if err := e.checkType(key, TypeString); err != nil {
		return 0, err
	}
	var cur int64
	if v, ok := e.strings[key]; ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, rerr.New(rerr.KindScriptError, "value is not an integer or out of range")
		}
		cur = n
	}
	result := cur + delta
	e.strings[key] = strconv.FormatInt(result, 10)
	e.keyTypes[key] = TypeString
	return result, nil
}

// IncrByFloat adds delta to key's float value, same creation/type
// rules as Incr.
func (e *Engine) IncrByFloat(key string, delta float64) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.isExpired(key)
	if err := e.checkType(key, TypeString); err != nil {
		return 0, err
	}
	var cur float64
	if v, ok := e.strings[key]; ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, rerr.New(rerr.KindScriptError, "value is not a valid float")
		}
		cur = f
	}
	result := cur + delta
	e.strings[key] = strconv.FormatFloat(result, 'f', -1, 64)
	e.keyTypes[key] = TypeString
	return result, nil
}

// Append appends value to key's string (creating it if absent),
// returning the resulting length.
func (e *Engine) Append(key, value string) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.isExpired(key)
	if err := e.checkType(key, TypeString); err != nil {
		return 0, err
	}
	e.strings[key] += value
	e.keyTypes[key] = TypeString
	return int64(len(e.strings[key])), nil
}

// Strlen returns the length of key's string value, 0 if absent.
func (e *Engine) Strlen(key string) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isExpired(key) {
		return 0, nil
	}
	if err := e.checkType(key, TypeString); err != nil {
		return 0, err
	}
	return int64(len(e.strings[key])), nil
}

// GetRange returns the substring of key's value between start and end
// (inclusive, negative indices count from the end), clamped to bounds.
func (e *Engine) GetRange(key string, start, end int64) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isExpired(key) {
		return "", nil
	}
	if err := e.checkType(key, TypeString); err != nil {
		return "", err
	}
	v := e.strings[key]
	n := int64(len(v))
	if n == 0 {
		return "", nil
	}
	if start < 0 {
		start += n
	}
	if end < 0 {
		end += n
	}
	if start < 0 {
		start = 0
	}
	if end >= n {
		end = n - 1
	}
	if start > end || start >= n {
		return "", nil
	}
	return v[start : end+1], nil
}

// SetRange overwrites key's value starting at offset with value,
// zero-padding if the existing value is shorter than offset.
func (e *Engine) SetRange(key string, offset int64, value string) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.isExpired(key)
	if err := e.checkType(key, TypeString); err != nil {
		return 0, err
	}
	existing := []byte(e.strings[key])
	end := int(offset) + len(value)
	if len(existing) < end {
		grown := make([]byte, end)
		copy(grown, existing)
		existing = grown
	}
	copy(existing[offset:], value)
	e.strings[key] = string(existing)
	e.keyTypes[key] = TypeString
	return int64(len(e.strings[key])), nil
}
