package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompressedSize(t *testing.T) {
	tests := []struct {
		name         string
		variants     []AssetVariant
		originalSize string
		want         string
	}{
		{"reported variant wins", []AssetVariant{{Bytes: 250}}, "1000", "250"},
		{"first concrete variant wins", []AssetVariant{{Bytes: 0}, {Bytes: 300}}, "1000", "300"},
		{"no variants falls back to original", nil, "1000", "1000"},
		{"pending transcode falls back to original", []AssetVariant{{Bytes: 0}}, "1000", "1000"},
		{"fallback of an unknown original is still a value", nil, "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompressedSize(tt.variants, tt.originalSize))
		})
	}
}
