// Package validators contains validators found throughout the application
// that have been abstracted away from the main code
package validators

import "errors"

var (
	ErrNoParams      = errors.New("no paramsToSign provided")
	ErrAssetIDEmpty  = errors.New("publicId is required")
	ErrParamReserved = errors.New("paramsToSign must not contain a signature")
)

// UploadParamsValidator checks the structural shape of the parameter
// mapping a client wants signed. Values aren't validated, the media
// service re-checks them against the signature anyway.
func UploadParamsValidator(params map[string]any) error {
	if len(params) == 0 {
		return ErrNoParams
	}

	// Signing a client supplied signature would let one signed request
	// mint another
	if _, ok := params["signature"]; ok {
		return ErrParamReserved
	}

	return nil
}

// AssetIDValidator checks the one field a video record can't exist
// without. Everything else is defaulted, this is not.
func AssetIDValidator(publicID string) error {
	if publicID == "" {
		return ErrAssetIDEmpty
	}

	return nil
}
