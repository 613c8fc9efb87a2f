package rval

import "testing"

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Null(), false},
		{Str(""), false},
		{Str("0"), true}, // non-empty string, even "0", is truthy
		{Int(0), false},
		{Int(1), true},
		{Float(0), false},
		{Float(0.1), true},
		{Bool(false), false},
		{Bool(true), true},
		{List(), true},
		{Map(nil), true},
	}
	for _, c := range cases {
		if got := c.v.Truthy(); got != c.want {
			t.Errorf("Truthy(%#v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestRedisStringNoTrailingZero(t *testing.T) {
	if got := Float(3.0).RedisString(); got != "3" {
		t.Errorf("Float(3.0).RedisString() = %q, want %q", got, "3")
	}
	if got := Float(3.5).RedisString(); got != "3.5" {
		t.Errorf("Float(3.5).RedisString() = %q, want %q", got, "3.5")
	}
	if got := Int(3).RedisString(); got != "3" {
		t.Errorf("Int(3).RedisString() = %q, want %q", got, "3")
	}
}

func TestCollapseOuterEmpty(t *testing.T) {
	if got := CollapseOuter(List()); !got.IsNull() {
		t.Errorf("CollapseOuter(empty list) = %#v, want Null", got)
	}
	if got := CollapseOuter(Map(map[string]Value{})); !got.IsNull() {
		t.Errorf("CollapseOuter(empty map) = %#v, want Null", got)
	}
	nonEmpty := List(Int(1))
	if got := CollapseOuter(nonEmpty); got.IsNull() {
		t.Errorf("CollapseOuter(non-empty list) collapsed to Null")
	}
}

func TestCollapseOuterNestedNotCollapsed(t *testing.T) {
	// Nested empties are left alone; only the outermost return collapses.
	v := List(List(), Map(map[string]Value{}))
	got := CollapseOuter(v)
	if got.Kind != KList || len(got.List) != 2 {
		t.Fatalf("CollapseOuter mutated nested structure: %#v", got)
	}
	if got.List[0].Kind != KList || got.List[1].Kind != KMap {
		t.Errorf("nested empties were collapsed: %#v", got.List)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	cases := []Value{
		Null(),
		Str("hello"),
		Int(-42),
		Float(3.5),
		Bool(true),
		List(Int(1), Str("a"), Bool(false)),
		Map(map[string]Value{"a": Int(1), "b": Str("x")}),
	}
	for _, v := range cases {
		data, err := Encode(v)
		if err != nil {
			t.Fatalf("Encode(%#v): %v", v, err)
		}
		got, err := Decode(data)
		if err != nil {
			t.Fatalf("Decode(%s): %v", data, err)
		}
		if !deepEqual(got, v) {
			t.Errorf("round trip mismatch: got %#v, want %#v", got, v)
		}
	}
}

func TestJSONRoundTripIntNotFloat(t *testing.T) {
	data, err := Encode(Int(-7))
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != KInt {
		t.Errorf("negative whole number decoded as Kind=%v, want KInt", got.Kind)
	}
}

func deepEqual(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KStr:
		return a.Str == b.Str
	case KInt:
		return a.Int == b.Int
	case KFloat:
		return a.Float == b.Float
	case KBool:
		return a.Bool == b.Bool
	case KList:
		if len(a.List) != len(b.List) {
			return false
		}
		for i := range a.List {
			if !deepEqual(a.List[i], b.List[i]) {
				return false
			}
		}
		return true
	case KMap:
		if len(a.Map) != len(b.Map) {
			return false
		}
		for k, av := range a.Map {
			bv, ok := b.Map[k]
			if !ok || !deepEqual(av, bv) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
