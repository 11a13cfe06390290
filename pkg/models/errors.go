package models

import "fmt"

// DecodeError reports a malformed record payload. Field names the offending
// key inside the record.
type DecodeError struct {
	Record string
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("decode %s: %s", e.Record, e.Reason)
	}

	return fmt.Sprintf("decode %s: field %q: %s", e.Record, e.Field, e.Reason)
}
