package blobid

import (
	"encoding/base64"
	"fmt"
)

// fast prefix offsets, valid for V2..V5 only (V1 has no header byte).
const (
	offsetVersion  = 0
	offsetHeader   = 2 // reserved byte (V2) or flags byte (V3..V5)
	offsetDC       = 3
	offsetAccount  = 4
	offsetContain  = 6
	prefixLenV2Up  = 8 // bytes needed to read dc/account/container
	prefixLenV1Min = 2 // bytes needed to read just the version
)

func decodePrefix(idString string, need int) ([]byte, Version, error) {
	b, err := base64.RawURLEncoding.DecodeString(idString)
	if err != nil {
		return nil, 0, fmt.Errorf("blobid: decoding base64 string: %w", ErrInvalidBase64)
	}
	if len(b) < prefixLenV1Min {
		return nil, 0, fmt.Errorf("blobid: %w", ErrTruncatedInput)
	}
	version := Version(uint16(b[0])<<8 | uint16(b[1]))
	if !version.valid() {
		return nil, 0, fmt.Errorf("blobid: version %d: %w", version, ErrUnknownVersion)
	}
	if len(b) < need {
		return nil, version, fmt.Errorf("blobid: %w", ErrTruncatedInput)
	}
	return b, version, nil
}

// VersionOf reads only the two-byte version prefix of a base64url-encoded
// identifier string, without resolving its partition.
func VersionOf(idString string) (Version, error) {
	_, version, err := decodePrefix(idString, prefixLenV1Min)
	return version, err
}

// IsEncryptedFast reports the is_encrypted bit directly from the string
// form. It is false for V1/V2/V3 regardless of the wire bit; for V4/V5 it
// reads the flags byte.
func IsEncryptedFast(idString string) (bool, error) {
	_, version, err := decodePrefix(idString, prefixLenV1Min)
	if err != nil {
		return false, err
	}
	if version < V4 {
		return false, nil
	}
	b, _, err := decodePrefix(idString, offsetHeader+1)
	if err != nil {
		return false, err
	}
	_, isEncrypted, _ := unpackFlags(b[offsetHeader])
	return isEncrypted, nil
}

// IsCraftedFast reports whether the identifier's type is CRAFTED, directly
// from the string form. It is false below V3.
func IsCraftedFast(idString string) (bool, error) {
	_, version, err := decodePrefix(idString, prefixLenV1Min)
	if err != nil {
		return false, err
	}
	if version < V3 {
		return false, nil
	}
	b, _, err := decodePrefix(idString, offsetHeader+1)
	if err != nil {
		return false, err
	}
	typ, _, _ := unpackFlags(b[offsetHeader])
	return typ == Crafted, nil
}

// AccountAndContainer reads the account and container fields directly from
// the string form. V1 has no such fields and returns the sentinel unknown
// values.
func AccountAndContainer(idString string) (account, container int16, err error) {
	_, version, err := decodePrefix(idString, prefixLenV1Min)
	if err != nil {
		return 0, 0, err
	}
	if version == V1 {
		return UnknownAccountID, UnknownContainerID, nil
	}
	b, _, err := decodePrefix(idString, prefixLenV2Up)
	if err != nil {
		return 0, 0, err
	}
	account = int16(uint16(b[offsetAccount])<<8 | uint16(b[offsetAccount+1]))
	container = int16(uint16(b[offsetContain])<<8 | uint16(b[offsetContain+1]))
	return account, container, nil
}
