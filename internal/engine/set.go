package engine

import "sort"

// SAdd adds members to key's set, returning how many were newly added.
func (e *Engine) SAdd(key string, members []string) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.isExpired(key)
	if err := e.checkType(key, TypeSet); err != nil {
		return 0, err
	}
	s, ok := e.sets[key]
	if !ok {
		s = make(map[string]struct{}, len(members))
		e.sets[key] = s
	}
	var added int64
	for _, m := range members {
		if _, exists := s[m]; !exists {
			s[m] = struct{}{}
			added++
		}
	}
	e.keyTypes[key] = TypeSet
	return added, nil
}

// SRem removes members from key's set, returning how many actually
// existed.
func (e *Engine) SRem(key string, members []string) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isExpired(key) {
		return 0, nil
	}
	if err := e.checkType(key, TypeSet); err != nil {
		return 0, err
	}
	s := e.sets[key]
	var n int64
	for _, m := range members {
		if _, ok := s[m]; ok {
			delete(s, m)
			n++
		}
	}
	e.dropIfEmptyLocked(key, TypeSet)
	return n, nil
}

// SMembers returns key's members in sorted order.
func (e *Engine) SMembers(key string) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isExpired(key) {
		return nil, nil
	}
	if err := e.checkType(key, TypeSet); err != nil {
		return nil, err
	}
	s := e.sets[key]
	out := make([]string, 0, len(s))
	for m := range s {
		out = append(out, m)
	}
	sort.Strings(out)
	return out, nil
}

// SIsMember reports whether member is in key's set.
func (e *Engine) SIsMember(key, member string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isExpired(key) {
		return false, nil
	}
	if err := e.checkType(key, TypeSet); err != nil {
		return false, err
	}
	_, ok := e.sets[key][member]
	return ok, nil
}

// SCard returns the number of members in key's set, 0 if absent.
func (e *Engine) SCard(key string) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isExpired(key) {
		return 0, nil
	}
	if err := e.checkType(key, TypeSet); err != nil {
		return 0, err
	}
	return int64(len(e.sets[key])), nil
}

// SPop removes and returns up to count members (default 1, via
// SPopOne), chosen arbitrarily (Go map iteration order).
func (e *Engine) SPop(key string, count int64) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isExpired(key) {
		return nil, nil
	}
	if err := e.checkType(key, TypeSet); err != nil {
		return nil, err
	}
	s := e.sets[key]
	if count > int64(len(s)) {
		count = int64(len(s))
	}
	if count <= 0 {
		return nil, nil
	}
	out := make([]string, 0, count)
	for m := range s {
		if int64(len(out)) >= count {
			break
		}
		out = append(out, m)
		delete(s, m)
	}
	e.dropIfEmptyLocked(key, TypeSet)
	return out, nil
}

// SPopOne is SPop's count=1 scalar form.
func (e *Engine) SPopOne(key string) (string, bool, error) {
	vs, err := e.SPop(key, 1)
	if err != nil || len(vs) == 0 {
		return "", false, err
	}
	return vs[0], true, nil
}

// SRandMember returns members without removing them. The selection is
// not random: a positive count returns the first count members of the
// sorted SMembers list, and a negative count returns exactly -count
// members by cycling through that sorted list (repeating members when
// -count exceeds the set's size).
func (e *Engine) SRandMember(key string, count int64) ([]string, error) {
	members, err := e.SMembers(key)
	if err != nil || len(members) == 0 {
		return nil, err
	}
	if count < 0 {
		out := make([]string, -count)
		for i := range out {
			out[i] = members[i%len(members)]
		}
		return out, nil
	}
	if count > int64(len(members)) {
		count = int64(len(members))
	}
	return members[:count], nil
}

// SDiff returns members of the first key's set not present in any of
// the others.
func (e *Engine) SDiff(keys []string) ([]string, error) {
	return e.setAlgebra(keys, diffOp)
}

// SInter returns members present in every listed key's set.
func (e *Engine) SInter(keys []string) ([]string, error) {
	return e.setAlgebra(keys, interOp)
}

// SUnion returns the union of every listed key's set.
func (e *Engine) SUnion(keys []string) ([]string, error) {
	return e.setAlgebra(keys, unionOp)
}

type setOp int

const (
	diffOp setOp = iota
	interOp
	unionOp
)

func (e *Engine) setAlgebra(keys []string, op setOp) ([]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	sets := make([]map[string]struct{}, len(keys))
	for i, k := range keys {
		members, err := e.SMembers(k)
		if err != nil {
			return nil, err
		}
		m := make(map[string]struct{}, len(members))
		for _, v := range members {
			m[v] = struct{}{}
		}
		sets[i] = m
	}

	var out []string
	switch op {
	case diffOp:
		for m := range sets[0] {
			inOthers := false
			for _, s := range sets[1:] {
				if _, ok := s[m]; ok {
					inOthers = true
					break
				}
			}
			if !inOthers {
				out = append(out, m)
			}
		}
	case interOp:
		for m := range sets[0] {
			inAll := true
			for _, s := range sets[1:] {
				if _, ok := s[m]; !ok {
					inAll = false
					break
				}
			}
			if inAll {
				out = append(out, m)
			}
		}
	case unionOp:
		seen := map[string]struct{}{}
		for _, s := range sets {
			for m := range s {
				seen[m] = struct{}{}
			}
		}
		for m := range seen {
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out, nil
}
