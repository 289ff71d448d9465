package blobid

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	satori "github.com/satori/go.uuid"
)

// maxUUIDLength bounds the allocation decodeFrom performs for the uuid
// field. The length prefix is attacker/corruption-controlled wire input;
// without this bound a crafted few-byte payload with a length field near
// the uint32 maximum would force a multi-GiB allocation before io.ReadFull
// ever got a chance to fail with a truncated-input error.
const maxUUIDLength = 1 << 20

// Logger receives debug-level decode-failure diagnostics when non-nil. It
// is nil by default, so the package has no logging side effects unless a
// caller opts in.
var Logger *logrus.Logger

func logDecodeFailure(err error) {
	if Logger == nil || err == nil {
		return
	}
	Logger.WithError(err).Debug("blobid: decode failed")
}

// ParseBytes decodes a wire-format byte slice, the stream entry point. It
// tolerates arbitrary bytes remaining after the declared uuid length;
// callers that need strict whole-buffer consumption should use ParseString
// instead.
func ParseBytes(b []byte, dir Directory) (*ID, error) {
	id, err := decodeFrom(bytes.NewReader(b), dir)
	if err != nil {
		logDecodeFailure(err)
		return nil, err
	}
	return id, nil
}

// ParseString decodes the canonical base64url (RFC 4648 §5, unpadded)
// string form. Unlike ParseBytes, trailing bytes beyond the declared uuid
// length are rejected.
func ParseString(s string, dir Directory) (*ID, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		err = fmt.Errorf("blobid: decoding base64 string: %w", ErrInvalidBase64)
		logDecodeFailure(err)
		return nil, err
	}
	return parseStrict(b, dir)
}

// ParseHexString decodes the legacy hex-encoded alternative form. It exists
// purely to satisfy legacy entry points; new code should call ParseString.
func ParseHexString(s string, dir Directory) (*ID, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		err = fmt.Errorf("blobid: decoding hex string: %w", ErrInvalidBase64)
		logDecodeFailure(err)
		return nil, err
	}
	return parseStrict(b, dir)
}

func parseStrict(b []byte, dir Directory) (*ID, error) {
	r := bytes.NewReader(b)
	id, err := decodeFrom(r, dir)
	if err != nil {
		logDecodeFailure(err)
		return nil, err
	}
	if r.Len() != 0 {
		err := fmt.Errorf("blobid: %d trailing bytes after uuid: %w", r.Len(), ErrBadUUIDLength)
		logDecodeFailure(err)
		return nil, err
	}
	return id, nil
}

func decodeFrom(r io.Reader, dir Directory) (*ID, error) {
	var verRaw uint16
	if err := readBigEndian(r, &verRaw); err != nil {
		return nil, fmt.Errorf("blobid: reading version: %w", ErrTruncatedInput)
	}
	version := Version(verRaw)
	if !version.valid() {
		return nil, fmt.Errorf("blobid: version %d: %w", verRaw, ErrUnknownVersion)
	}

	id := &ID{
		version:      version,
		typ:          Native,
		datacenterID: UnknownDatacenterID,
		accountID:    UnknownAccountID,
		containerID:  UnknownContainerID,
	}

	switch version {
	case V1:
		// no header byte
	case V2:
		var reserved uint8
		if err := readBigEndian(r, &reserved); err != nil {
			return nil, fmt.Errorf("blobid: reading reserved byte: %w", ErrTruncatedInput)
		}
	case V3, V4, V5:
		var flags uint8
		if err := readBigEndian(r, &flags); err != nil {
			return nil, fmt.Errorf("blobid: reading flags byte: %w", ErrTruncatedInput)
		}
		typ, isEncrypted, dataType := unpackFlags(flags)
		id.typ = typ
		if version >= V4 {
			id.isEncrypted = isEncrypted
		}
		if version == V5 {
			id.hasDataType = true
			id.dataType = dataType
		}
	}

	if version >= V2 {
		if err := readBigEndian(r, &id.datacenterID); err != nil {
			return nil, fmt.Errorf("blobid: reading datacenter id: %w", ErrTruncatedInput)
		}
		if err := readBigEndian(r, &id.accountID); err != nil {
			return nil, fmt.Errorf("blobid: reading account id: %w", ErrTruncatedInput)
		}
		if err := readBigEndian(r, &id.containerID); err != nil {
			return nil, fmt.Errorf("blobid: reading container id: %w", ErrTruncatedInput)
		}
	}

	partition, err := dir.ReadPartition(r)
	if err != nil {
		if errors.Is(err, ErrUnknownPartition) || errors.Is(err, ErrTruncatedInput) {
			return nil, err
		}
		return nil, fmt.Errorf("blobid: reading partition: %w", err)
	}
	id.partition = partition

	var uuidLen uint32
	if err := readBigEndian(r, &uuidLen); err != nil {
		return nil, fmt.Errorf("blobid: reading uuid length: %w", ErrTruncatedInput)
	}
	if int32(uuidLen) < 0 {
		return nil, fmt.Errorf("blobid: uuid length %d is negative: %w", int32(uuidLen), ErrBadUUIDLength)
	}
	if uuidLen > maxUUIDLength {
		return nil, fmt.Errorf("blobid: uuid length %d exceeds maximum %d: %w", uuidLen, maxUUIDLength, ErrBadUUIDLength)
	}

	uuidBytes := make([]byte, uuidLen)
	if _, err := io.ReadFull(r, uuidBytes); err != nil {
		return nil, fmt.Errorf("blobid: reading %d uuid bytes: %w", uuidLen, ErrTruncatedInput)
	}
	if !utf8.Valid(uuidBytes) {
		return nil, fmt.Errorf("blobid: uuid: %w", ErrBadUTF8)
	}
	id.uuidStr = string(uuidBytes)

	if Logger != nil {
		if _, err := satori.FromString(id.uuidStr); err == nil {
			Logger.WithField("uuid", id.uuidStr).Debug("blobid: decoded well-formed uuid")
		}
	}

	return id, nil
}

func readBigEndian(r io.Reader, v interface{}) error {
	return binary.Read(r, binary.BigEndian, v)
}
