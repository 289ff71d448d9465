package blobid

import "errors"

// Decode error kinds. Each is distinct and recoverable only by rejecting the
// input, except InvalidCraftTarget, which signals a programmer error at the
// call site rather than a malformed wire value.
var (
	// ErrInvalidBase64 means the id string was not valid unpadded base64url.
	ErrInvalidBase64 = errors.New("blobid: invalid base64 string")
	// ErrTruncatedInput means fewer bytes were available than the layout for
	// the declared version requires.
	ErrTruncatedInput = errors.New("blobid: truncated input")
	// ErrUnknownVersion means the version field was not one of V1..V5.
	ErrUnknownVersion = errors.New("blobid: unknown version")
	// ErrUnknownPartition means the Directory could not resolve the
	// partition bytes embedded in the identifier.
	ErrUnknownPartition = errors.New("blobid: unknown partition")
	// ErrBadUUIDLength means the uuid length prefix was negative (as signed
	// 32-bit) or did not match the remaining bytes on the string entry point.
	ErrBadUUIDLength = errors.New("blobid: bad uuid length")
	// ErrBadUTF8 means the uuid bytes were not valid UTF-8.
	ErrBadUTF8 = errors.New("blobid: uuid is not valid utf-8")
	// ErrInvalidCraftTarget means Craft was called with a target version
	// below V3, which has no BlobType field to mark CRAFTED.
	ErrInvalidCraftTarget = errors.New("blobid: invalid craft target version")
)
