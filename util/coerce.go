// Package util contains any functions used across the application that don't match
// any other package
package util

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Clients report sizes and durations straight out of the media service's
// upload response, which means the same field shows up as a JSON number,
// a numeric string, or not at all depending on how far transcoding got.
// These coercions define the single defaulting policy for all of them so a
// half-finished upload never blocks the metadata from being saved.

// ByteSize turns a client supplied value into a decimal byte count kept as
// a string. Anything unparseable or negative comes back as "0".
func ByteSize(v any) string {
	switch n := v.(type) {
	case nil:
		return "0"
	case string:
		// Validated as digits rather than parsed. Byte counts past
		// uint64 range still have to round trip untouched
		s := strings.TrimSpace(n)
		if !isDigits(s) {
			return "0"
		}
		return s
	case json.Number:
		if i, err := n.Int64(); err == nil && i >= 0 {
			return n.String()
		}
		return "0"
	case float64:
		if n < 0 {
			return "0"
		}
		return strconv.FormatUint(uint64(n), 10)
	default:
		return "0"
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Seconds turns a client supplied value into a duration in seconds,
// defaulting to 0 when absent or unparseable.
func Seconds(v any) float64 {
	switch n := v.(type) {
	case float64:
		if n < 0 {
			return 0
		}
		return n
	case json.Number:
		f, err := n.Float64()
		if err != nil || f < 0 {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || f < 0 {
			return 0
		}
		return f
	default:
		return 0
	}
}
