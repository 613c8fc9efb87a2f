package rval

import (
	"encoding/json"
	"strconv"
	"strings"
)

// EncodeWire renders v as plain JSON for the Lua argument-framing and
// script-return boundary (SPEC_FULL.md §4.5, spec.md §6): unlike
// Encode/Decode's tagged wireValue envelope, there is no tag here — Int
// and Float are told apart purely by whether the JSON number literal
// carries a decimal point, matching what a real EVALSHA caller and
// cjson.encode/decode on the Lua side actually produce on the wire.
func EncodeWire(v Value) ([]byte, error) {
	var b strings.Builder
	if err := writeWire(&b, v); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

func writeWire(b *strings.Builder, v Value) error {
	switch v.Kind {
	case KNull:
		b.WriteString("null")
	case KStr:
		enc, err := json.Marshal(v.Str)
		if err != nil {
			return err
		}
		b.Write(enc)
	case KInt:
		b.WriteString(strconv.FormatInt(v.Int, 10))
	case KFloat:
		s := strconv.FormatFloat(v.Float, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		b.WriteString(s)
	case KBool:
		if v.Bool {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case KList:
		b.WriteByte('[')
		for i, item := range v.List {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeWire(b, item); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case KMap:
		b.WriteByte('{')
		for i, k := range SortedKeys(v.Map) {
			if i > 0 {
				b.WriteByte(',')
			}
			kenc, err := json.Marshal(k)
			if err != nil {
				return err
			}
			b.Write(kenc)
			b.WriteByte(':')
			if err := writeWire(b, v.Map[k]); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	}
	return nil
}

// DecodeWire is EncodeWire's inverse: a JSON number literal containing
// '.' or an exponent decodes to Float; otherwise Int (spec.md §6).
func DecodeWire(data []byte) (Value, error) {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, err
	}
	return fromRaw(raw), nil
}

func fromRaw(raw any) Value {
	switch x := raw.(type) {
	case nil:
		return Null()
	case string:
		return Str(x)
	case bool:
		return Bool(x)
	case json.Number:
		s := x.String()
		if strings.ContainsAny(s, ".eE") {
			f, _ := x.Float64()
			return Float(f)
		}
		i, err := x.Int64()
		if err != nil {
			f, _ := x.Float64()
			return Float(f)
		}
		return Int(i)
	case []any:
		vs := make([]Value, len(x))
		for i, item := range x {
			vs[i] = fromRaw(item)
		}
		return Value{Kind: KList, List: vs}
	case map[string]any:
		m := make(map[string]Value, len(x))
		for k, item := range x {
			m[k] = fromRaw(item)
		}
		return Value{Kind: KMap, Map: m}
	default:
		return Null()
	}
}
