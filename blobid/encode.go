package blobid

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
)

// Bytes returns the fixed big-endian wire encoding of id. Encoding never
// fails: id was either constructed by New/Craft (already normalised) or
// produced by a successful Parse.
func (id *ID) Bytes() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.BigEndian, uint16(id.version))

	switch id.version {
	case V1:
		// no header byte
	case V2:
		buf.WriteByte(0x00)
	case V3, V4, V5:
		hasDataType := id.version == V5 && id.hasDataType
		buf.WriteByte(packFlags(id.typ, id.isEncrypted, hasDataType, id.dataType))
	}

	if id.version >= V2 {
		binary.Write(buf, binary.BigEndian, id.datacenterID)
		binary.Write(buf, binary.BigEndian, id.accountID)
		binary.Write(buf, binary.BigEndian, id.containerID)
	}

	buf.Write(id.partition.Bytes())

	uuidBytes := []byte(id.uuidStr)
	binary.Write(buf, binary.BigEndian, uint32(len(uuidBytes)))
	buf.Write(uuidBytes)

	return buf.Bytes()
}

// String returns the canonical base64url (RFC 4648 §5, unpadded) form.
// This is the only form new code should produce; HexString exists solely
// for legacy decode-compatible output.
func (id *ID) String() string {
	return base64.RawURLEncoding.EncodeToString(id.Bytes())
}

// HexString returns the legacy hex-encoded alternative form. Prefer
// String for anything new; this exists because the legacy subsystem that
// reads hex-encoded identifiers must have been produced by something.
func (id *ID) HexString() string {
	return hex.EncodeToString(id.Bytes())
}
