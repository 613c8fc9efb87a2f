package engine

// LPush prepends values (in argument order, so the last value ends up
// at index 0) and returns the new length.
func (e *Engine) LPush(key string, values []string) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.isExpired(key)
	if err := e.checkType(key, TypeList); err != nil {
		return 0, err
	}
	l := e.lists[key]
	for _, v := range values {
		l = append([]string{v}, l...)
	}
	e.lists[key] = l
	e.keyTypes[key] = TypeList
	return int64(len(l)), nil
}

// RPush appends values and returns the new length.
func (e *Engine) RPush(key string, values []string) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.isExpired(key)
	if err := e.checkType(key, TypeList); err != nil {
		return 0, err
	}
	e.lists[key] = append(e.lists[key], values...)
	e.keyTypes[key] = TypeList
	return int64(len(e.lists[key])), nil
}

// LPop removes and returns the first count elements (count==1 by
// convention when the caller wants scalar semantics — see LPopOne).
// Empty or absent keys yield an empty slice, never an error.
func (e *Engine) LPop(key string, count int64) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isExpired(key) {
		return nil, nil
	}
	if err := e.checkType(key, TypeList); err != nil {
		return nil, err
	}
	l := e.lists[key]
	if count > int64(len(l)) {
		count = int64(len(l))
	}
	if count <= 0 {
		return nil, nil
	}
	out := append([]string(nil), l[:count]...)
	e.lists[key] = l[count:]
	e.dropIfEmptyLocked(key, TypeList)
	return out, nil
}

// RPop removes and returns the last count elements, in pop order
// (nearest-the-end first).
func (e *Engine) RPop(key string, count int64) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isExpired(key) {
		return nil, nil
	}
	if err := e.checkType(key, TypeList); err != nil {
		return nil, err
	}
	l := e.lists[key]
	if count > int64(len(l)) {
		count = int64(len(l))
	}
	if count <= 0 {
		return nil, nil
	}
	n := int64(len(l))
	tail := l[n-count:]
	out := make([]string, count)
	for i := range tail {
		out[i] = tail[len(tail)-1-i]
	}
	e.lists[key] = l[:n-count]
	e.dropIfEmptyLocked(key, TypeList)
	return out, nil
}

// LPopOne is the count=nil scalar form: pops at most one element,
// reporting whether there was one to pop. Never returns false by
// raising an error on an empty list — the interpreter surfaces this as
// Null, never false (§4.4).
func (e *Engine) LPopOne(key string) (string, bool, error) {
	vs, err := e.LPop(key, 1)
	if err != nil || len(vs) == 0 {
		return "", false, err
	}
	return vs[0], true, nil
}

// RPopOne is LPopOne's RPOP counterpart.
func (e *Engine) RPopOne(key string) (string, bool, error) {
	vs, err := e.RPop(key, 1)
	if err != nil || len(vs) == 0 {
		return "", false, err
	}
	return vs[0], true, nil
}

// LLen returns the length of key's list, 0 if absent.
func (e *Engine) LLen(key string) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isExpired(key) {
		return 0, nil
	}
	if err := e.checkType(key, TypeList); err != nil {
		return 0, err
	}
	return int64(len(e.lists[key])), nil
}

// LRange returns the elements between start and stop inclusive,
// 0-based, negative indices counting from the end, clamped to bounds.
func (e *Engine) LRange(key string, start, stop int64) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isExpired(key) {
		return nil, nil
	}
	if err := e.checkType(key, TypeList); err != nil {
		return nil, err
	}
	l := e.lists[key]
	n := int64(len(l))
	start, stop = clampRange(start, stop, n)
	if start > stop || n == 0 {
		return []string{}, nil
	}
	return append([]string(nil), l[start:stop+1]...), nil
}

// LIndex returns the element at index (0-based, negative from the
// end); ok is false if out of range or the key is absent (§4.1 Index).
func (e *Engine) LIndex(key string, index int64) (string, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isExpired(key) {
		return "", false, nil
	}
	if err := e.checkType(key, TypeList); err != nil {
		return "", false, err
	}
	l := e.lists[key]
	n := int64(len(l))
	if index < 0 {
		index += n
	}
	if index < 0 || index >= n {
		return "", false, nil
	}
	return l[index], true, nil
}

// clampRange normalizes a Redis-style [start,stop] range against
// length n: negative indices count from the end, start is raised to at
// least 0 and stop is capped at n-1 (a stop still negative after adding
// n becomes -1). start is not capped, so callers treat start > stop as
// an empty range.
func clampRange(start, stop, n int64) (int64, int64) {
	if start < 0 {
		start += n
		if start < 0 {
			start = 0
		}
	}
	if stop < 0 {
		stop += n
		if stop < 0 {
			stop = -1
		}
	}
	if stop >= n {
		stop = n - 1
	}
	return start, stop
}
