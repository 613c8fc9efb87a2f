package redipy

import "github.com/JosuaKrause/redipy/internal/rval"

// resultValue wraps one Dispatcher.Do reply, giving each typed command
// method a small set of shape-specific accessors instead of switching
// on rval.Kind itself. Mirrors the Python client's "scalar vs list
// return disambiguated by argument shape" rule from spec.md §6: the
// command method, not the reply, decides which accessor to call.
type resultValue struct {
	v rval.Value
}

func (r resultValue) Raw() rval.Value { return r.v }

// Str returns the reply as a string plus whether it was non-null.
func (r resultValue) Str() (string, bool) {
	if r.v.IsNull() {
		return "", false
	}
	return r.v.RedisString(), true
}

func (r resultValue) Int() int64 {
	switch r.v.Kind {
	case rval.KInt:
		return r.v.Int
	case rval.KFloat:
		return int64(r.v.Float)
	default:
		return 0
	}
}

func (r resultValue) Float() float64 {
	switch r.v.Kind {
	case rval.KFloat:
		return r.v.Float
	case rval.KInt:
		return float64(r.v.Int)
	default:
		return 0
	}
}

func (r resultValue) Bool() bool { return r.v.Truthy() }

// StrList flattens a List reply to plain strings.
func (r resultValue) StrList() []string {
	if r.v.Kind != rval.KList {
		return nil
	}
	out := make([]string, len(r.v.List))
	for i, item := range r.v.List {
		out[i] = item.RedisString()
	}
	return out
}

// StrMap reads back an alternating member/value List reply (HGETALL's
// shape on the wire) as a Go map.
func (r resultValue) StrMap() map[string]string {
	if r.v.Kind != rval.KList {
		return nil
	}
	m := make(map[string]string, len(r.v.List)/2)
	for i := 0; i+1 < len(r.v.List); i += 2 {
		m[r.v.List[i].RedisString()] = r.v.List[i+1].RedisString()
	}
	return m
}
