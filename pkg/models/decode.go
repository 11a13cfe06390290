package models

import (
	"bytes"
	"encoding/json"
	"math"
	"time"
)

// decodeMap parses a JSON object into an untyped key-value structure, keeping
// numbers as json.Number so integer and floating fields stay distinguishable.
func decodeMap(data []byte) (map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	return raw, nil
}

// fields is a sticky-error reader over an untyped record. The first field that
// is missing or has a mismatched type latches a DecodeError; subsequent reads
// return zero values.
type fields struct {
	record string
	raw    map[string]interface{}
	err    *DecodeError
}

func newFields(record string, raw map[string]interface{}) *fields {
	f := &fields{record: record, raw: raw}
	if raw == nil {
		f.fail("", "expected object")
	}

	return f
}

func (f *fields) fail(field, reason string) {
	if f.err == nil {
		f.err = &DecodeError{Record: f.record, Field: field, Reason: reason}
	}
}

func (f *fields) lookup(key string) (interface{}, bool) {
	if f.err != nil {
		return nil, false
	}

	v, ok := f.raw[key]
	if !ok || v == nil {
		return nil, false
	}

	return v, true
}

func (f *fields) str(key string) string {
	v, ok := f.lookup(key)
	if !ok {
		f.fail(key, "missing required string")
		return ""
	}

	s, ok := v.(string)
	if !ok {
		f.fail(key, "expected string")
		return ""
	}

	return s
}

func (f *fields) optStr(key string) *string {
	v, ok := f.lookup(key)
	if !ok {
		return nil
	}

	s, ok := v.(string)
	if !ok {
		f.fail(key, "expected string or null")
		return nil
	}

	return &s
}

func (f *fields) boolean(key string) bool {
	v, ok := f.lookup(key)
	if !ok {
		f.fail(key, "missing required boolean")
		return false
	}

	b, ok := v.(bool)
	if !ok {
		f.fail(key, "expected boolean")
		return false
	}

	return b
}

// booleanOr reads an optional boolean with an explicit default.
func (f *fields) booleanOr(key string, def bool) bool {
	v, ok := f.lookup(key)
	if !ok {
		return def
	}

	b, ok := v.(bool)
	if !ok {
		f.fail(key, "expected boolean")
		return def
	}

	return b
}

func (f *fields) optBool(key string) *bool {
	v, ok := f.lookup(key)
	if !ok {
		return nil
	}

	b, ok := v.(bool)
	if !ok {
		f.fail(key, "expected boolean or null")
		return nil
	}

	return &b
}

// asInt converts an untyped numeric value, rejecting booleans and fractional
// values outright.
func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}

		return int(i), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}

		return int(n), true
	default:
		return 0, false
	}
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		fl, err := n.Float64()
		if err != nil {
			return 0, false
		}

		return fl, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func (f *fields) integer(key string) int {
	v, ok := f.lookup(key)
	if !ok {
		f.fail(key, "missing required integer")
		return 0
	}

	i, ok := asInt(v)
	if !ok {
		f.fail(key, "expected integer")
		return 0
	}

	return i
}

func (f *fields) optInt(key string) *int {
	v, ok := f.lookup(key)
	if !ok {
		return nil
	}

	i, ok := asInt(v)
	if !ok {
		f.fail(key, "expected integer or null")
		return nil
	}

	return &i
}

func (f *fields) float(key string) float64 {
	v, ok := f.lookup(key)
	if !ok {
		f.fail(key, "missing required number")
		return 0
	}

	fl, ok := asFloat(v)
	if !ok {
		f.fail(key, "expected number")
		return 0
	}

	return fl
}

func (f *fields) optFloat(key string) *float64 {
	v, ok := f.lookup(key)
	if !ok {
		return nil
	}

	fl, ok := asFloat(v)
	if !ok {
		f.fail(key, "expected number or null")
		return nil
	}

	return &fl
}

func (f *fields) timestamp(key string) time.Time {
	v, ok := f.lookup(key)
	if !ok {
		f.fail(key, "missing required timestamp")
		return time.Time{}
	}

	s, ok := v.(string)
	if !ok {
		f.fail(key, "expected ISO-8601 timestamp")
		return time.Time{}
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		f.fail(key, "invalid timestamp: "+err.Error())
		return time.Time{}
	}

	return t.UTC()
}

func (f *fields) optTimestamp(key string) *time.Time {
	v, ok := f.lookup(key)
	if !ok {
		return nil
	}

	s, ok := v.(string)
	if !ok {
		f.fail(key, "expected ISO-8601 timestamp or null")
		return nil
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		f.fail(key, "invalid timestamp: "+err.Error())
		return nil
	}

	u := t.UTC()

	return &u
}

func (f *fields) strings(key string) []string {
	v, ok := f.lookup(key)
	if !ok {
		return nil
	}

	if typed, ok := v.([]string); ok {
		return typed
	}

	list, ok := v.([]interface{})
	if !ok {
		f.fail(key, "expected string list")
		return nil
	}

	out := make([]string, 0, len(list))

	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			f.fail(key, "expected string list")
			return nil
		}

		out = append(out, s)
	}

	return out
}

func (f *fields) integers(key string) []int {
	v, ok := f.lookup(key)
	if !ok {
		return nil
	}

	if typed, ok := v.([]int); ok {
		return typed
	}

	list, ok := v.([]interface{})
	if !ok {
		f.fail(key, "expected integer list")
		return nil
	}

	out := make([]int, 0, len(list))

	for _, item := range list {
		i, ok := asInt(item)
		if !ok {
			f.fail(key, "expected integer list")
			return nil
		}

		out = append(out, i)
	}

	return out
}

func (f *fields) object(key string) map[string]interface{} {
	v, ok := f.lookup(key)
	if !ok {
		f.fail(key, "missing required object")
		return nil
	}

	m, ok := v.(map[string]interface{})
	if !ok {
		f.fail(key, "expected object")
		return nil
	}

	return m
}

func (f *fields) optObject(key string) map[string]interface{} {
	v, ok := f.lookup(key)
	if !ok {
		return nil
	}

	m, ok := v.(map[string]interface{})
	if !ok {
		f.fail(key, "expected object or null")
		return nil
	}

	return m
}

// encodeTime serializes a timestamp in the canonical ISO-8601 form used on the
// wire (UTC, RFC 3339 with nanoseconds when present).
func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func encodeOptTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}

	return encodeTime(*t)
}

func encodeOptStr(s *string) interface{} {
	if s == nil {
		return nil
	}

	return *s
}

func encodeOptBool(b *bool) interface{} {
	if b == nil {
		return nil
	}

	return *b
}

func encodeOptInt(i *int) interface{} {
	if i == nil {
		return nil
	}

	return *i
}

func encodeOptFloat(fl *float64) interface{} {
	if fl == nil {
		return nil
	}

	return *fl
}
