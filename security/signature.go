// Package security holds the cryptographic helpers used by the API
package security

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// SignUploadParams produces the signature the media service expects on a
// direct client upload: parameters serialized as k=v pairs in key order,
// joined with &, with the API secret appended, digested with SHA-1.
//
// The parameters are taken exactly as the client declared them. The media
// service re-validates them against this signature, so the only thing
// proven here is that the holder of the secret authorized this exact set.
func SignUploadParams(params map[string]any, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if encodeValue(params[k]) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+encodeValue(params[k]))
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}

// encodeValue flattens a declared parameter value the way the media
// service does before signing: arrays become comma separated lists,
// everything else its plain string form. Nil and empty values encode to
// "" and are skipped by the caller.
func encodeValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			parts = append(parts, encodeValue(e))
		}
		return strings.Join(parts, ",")
	case float64:
		// JSON numbers decode to float64. Whole values must not grow
		// a trailing .000000, the media service signs them bare
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case bool:
		return fmt.Sprintf("%t", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
