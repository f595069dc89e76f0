package service

import "strconv"

// AssetVariant is one post-processing rendition the media service
// produced for an asset, as reported in its upload response.
type AssetVariant struct {
	Bytes int64 `json:"bytes"`
}

// CompressedSize picks the byte count to record as the processed size of
// an asset. The first variant with a concrete byte count wins. When
// transcoding hasn't reported one yet the declared original size stands
// in as a neutral placeholder, to be corrected by a later reconciliation
// pass outside this service.
func CompressedSize(variants []AssetVariant, originalSize string) string {
	for _, v := range variants {
		if v.Bytes > 0 {
			return strconv.FormatInt(v.Bytes, 10)
		}
	}

	return originalSize
}
