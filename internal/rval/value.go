// Package rval defines the canonical script value that crosses the
// boundary between host code and a redipy script, on both the
// interpreter and the Lua emitter paths.
package rval

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Kind tags which alternative of the Value union is populated.
type Kind int

const (
	KNull Kind = iota
	KStr
	KInt
	KFloat
	KBool
	KList
	KMap
)

// Value is the tagged union that crosses the script/host boundary.
// Only the field matching Kind is meaningful.
type Value struct {
	Kind  Kind
	Str   string
	Int   int64
	Float float64
	Bool  bool
	List  []Value
	Map   map[string]Value
}

func Null() Value           { return Value{Kind: KNull} }
func Str(s string) Value    { return Value{Kind: KStr, Str: s} }
func Int(n int64) Value     { return Value{Kind: KInt, Int: n} }
func Float(f float64) Value { return Value{Kind: KFloat, Float: f} }
func Bool(b bool) Value     { return Value{Kind: KBool, Bool: b} }
func List(vs ...Value) Value {
	return Value{Kind: KList, List: vs}
}
func Map(m map[string]Value) Value {
	return Value{Kind: KMap, Map: m}
}

// StrList builds a List of Str values, a common shape for command replies.
func StrList(ss []string) Value {
	vs := make([]Value, len(ss))
	for i, s := range ss {
		vs[i] = Str(s)
	}
	return Value{Kind: KList, List: vs}
}

// IsNull reports whether v is the Null alternative.
func (v Value) IsNull() bool { return v.Kind == KNull }

// Truthy implements the host's truthiness rule (§4.1): Null, empty
// string, and numeric zero are falsy; everything else, including an
// empty list or map, is truthy.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KNull:
		return false
	case KStr:
		return v.Str != ""
	case KInt:
		return v.Int != 0
	case KFloat:
		return v.Float != 0
	case KBool:
		return v.Bool
	default:
		return true
	}
}

// RedisString renders v using Redis-style conversion: integral floats
// never carry a trailing ".0", matching Concat's stringification rule.
func (v Value) RedisString() string {
	switch v.Kind {
	case KNull:
		return ""
	case KStr:
		return v.Str
	case KInt:
		return strconv.FormatInt(v.Int, 10)
	case KFloat:
		if v.Float == float64(int64(v.Float)) {
			return strconv.FormatInt(int64(v.Float), 10)
		}
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	case KBool:
		if v.Bool {
			return "1"
		}
		return "0"
	case KList, KMap:
		return fmt.Sprintf("%v", v)
	}
	return ""
}

// CollapseOuter applies the JSON boundary rule (§3): an empty List or
// empty Map collapses to Null, but only at the outermost return — nested
// empties are left alone because Lua cannot represent them differently
// either.
func CollapseOuter(v Value) Value {
	switch v.Kind {
	case KList:
		if len(v.List) == 0 {
			return Null()
		}
	case KMap:
		if len(v.Map) == 0 {
			return Null()
		}
	}
	return v
}

// wireValue is the JSON-on-the-wire shape: a tag plus one populated
// field, so Int and Float never collide on re-entry the way a single
// untagged JSON number would.
type wireValue struct {
	T string          `json:"t"`
	S string          `json:"s,omitempty"`
	I int64           `json:"i,omitempty"`
	F float64         `json:"f,omitempty"`
	B bool            `json:"b,omitempty"`
	L []wireValue     `json:"l,omitempty"`
	M map[string]wireValue `json:"m,omitempty"`
}

func toWire(v Value) wireValue {
	switch v.Kind {
	case KNull:
		return wireValue{T: "null"}
	case KStr:
		return wireValue{T: "str", S: v.Str}
	case KInt:
		return wireValue{T: "int", I: v.Int}
	case KFloat:
		return wireValue{T: "float", F: v.Float}
	case KBool:
		return wireValue{T: "bool", B: v.Bool}
	case KList:
		l := make([]wireValue, len(v.List))
		for i, item := range v.List {
			l[i] = toWire(item)
		}
		return wireValue{T: "list", L: l}
	case KMap:
		m := make(map[string]wireValue, len(v.Map))
		for k, item := range v.Map {
			m[k] = toWire(item)
		}
		return wireValue{T: "map", M: m}
	}
	return wireValue{T: "null"}
}

func fromWire(w wireValue) Value {
	switch w.T {
	case "str":
		return Str(w.S)
	case "int":
		return Int(w.I)
	case "float":
		return Float(w.F)
	case "bool":
		return Bool(w.B)
	case "list":
		vs := make([]Value, len(w.L))
		for i, item := range w.L {
			vs[i] = fromWire(item)
		}
		return Value{Kind: KList, List: vs}
	case "map":
		m := make(map[string]Value, len(w.M))
		for k, item := range w.M {
			m[k] = fromWire(item)
		}
		return Value{Kind: KMap, Map: m}
	default:
		return Null()
	}
}

// Encode marshals v to strict JSON for the argument-framing boundary
// (SPEC_FULL.md §4.5): no trailing commas (encoding/json never emits
// them), with Int and Float kept apart because toWire writes them to
// distinct tagged forms before ever reaching json.Marshal.
func Encode(v Value) ([]byte, error) {
	return json.Marshal(toWire(v))
}

// Decode is the inverse of Encode.
func Decode(data []byte) (Value, error) {
	var w wireValue
	if err := json.Unmarshal(data, &w); err != nil {
		return Value{}, err
	}
	return fromWire(w), nil
}

// SortedKeys returns a Map's keys in a stable, deterministic order —
// used wherever a Map is projected to a List (HGETALL-shaped returns)
// so repeated runs produce identical output for equal input.
func SortedKeys(m map[string]Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (v Value) String() string {
	switch v.Kind {
	case KNull:
		return "<null>"
	case KList:
		return fmt.Sprintf("list(%d)", len(v.List))
	case KMap:
		return fmt.Sprintf("map(%d)", len(v.Map))
	default:
		return v.RedisString()
	}
}
