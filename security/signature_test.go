package security

import (
	"crypto/sha1"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sha1hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestSignUploadParams_CanonicalEncoding(t *testing.T) {
	params := map[string]any{
		"timestamp": float64(1315060510),
		"public_id": "dog_video",
		"folder":    "pets",
	}

	// Keys sorted, k=v joined by &, secret appended, SHA-1 of the lot
	want := sha1hex("folder=pets&public_id=dog_video&timestamp=1315060510" + "secret")
	assert.Equal(t, want, SignUploadParams(params, "secret"))
}

func TestSignUploadParams_Deterministic(t *testing.T) {
	params := map[string]any{"timestamp": float64(99), "public_id": "x"}

	first := SignUploadParams(params, "secret")
	assert.Equal(t, first, SignUploadParams(params, "secret"))

	assert.NotEqual(t, first, SignUploadParams(map[string]any{"timestamp": float64(99), "public_id": "y"}, "secret"))
	assert.NotEqual(t, first, SignUploadParams(params, "other-secret"))
}

func TestSignUploadParams_ArraysFlattenCommaSeparated(t *testing.T) {
	params := map[string]any{
		"tags":      []any{"pets", "dogs"},
		"timestamp": float64(1),
	}

	want := sha1hex("tags=pets,dogs&timestamp=1" + "s")
	assert.Equal(t, want, SignUploadParams(params, "s"))
}

func TestSignUploadParams_SkipsEmptyValues(t *testing.T) {
	withEmpty := map[string]any{
		"timestamp": float64(1),
		"folder":    "",
		"notify":    nil,
	}
	without := map[string]any{"timestamp": float64(1)}

	assert.Equal(t, SignUploadParams(without, "s"), SignUploadParams(withEmpty, "s"))
}

func TestSignUploadParams_NumbersSignBare(t *testing.T) {
	// JSON decoding hands every number over as float64. Whole values
	// must sign as integers, fractional ones keep their fraction
	assert.Equal(t,
		sha1hex("chunk=6000000&duration=12.5"+"s"),
		SignUploadParams(map[string]any{"chunk": float64(6000000), "duration": float64(12.5)}, "s"))
}
