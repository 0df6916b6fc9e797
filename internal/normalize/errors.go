package normalize

import "codeberg.org/mutker/sysprobe/internal/errors"

const (
	ErrVendorRegistry = errors.ErrVendorRegistry
	ErrUnknownVendor  = errors.ErrorCode("normalize_unknown_vendor")
	ErrInvalidID      = errors.ErrorCode("normalize_invalid_vendor_id")
)
