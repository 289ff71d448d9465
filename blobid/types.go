package blobid

import "fmt"

// Version is the on-disk version of a BlobId. New versions are added to the
// end of the wire format; old versions remain decodable forever.
type Version uint16

const (
	// V1 is the original format: version, partition, uuid. No routing
	// metadata, no type, never encrypted.
	V1 Version = 1
	// V2 adds datacenter, account and container, plus a reserved byte
	// in the position V3 later uses for the type/flags byte.
	V2 Version = 2
	// V3 turns the reserved byte into a flags byte carrying BlobType.
	V3 Version = 3
	// V4 adds the is_encrypted bit to the flags byte.
	V4 Version = 4
	// V5 adds a DataType to the flags byte, on top of V4.
	V5 Version = 5
)

func (v Version) String() string {
	switch v {
	case V1:
		return "V1"
	case V2:
		return "V2"
	case V3:
		return "V3"
	case V4:
		return "V4"
	case V5:
		return "V5"
	default:
		return fmt.Sprintf("V%d(unknown)", uint16(v))
	}
}

func (v Version) valid() bool {
	switch v {
	case V1, V2, V3, V4, V5:
		return true
	default:
		return false
	}
}

// BlobType describes the provenance of an identifier: freshly generated by
// the system, or derived from another identifier via Craft.
type BlobType uint8

const (
	// Native identifiers are generated fresh for a new blob.
	Native BlobType = 0
	// Crafted identifiers are derived from another identifier with a new
	// account/container binding.
	Crafted BlobType = 1
)

func (t BlobType) String() string {
	if t == Crafted {
		return "CRAFTED"
	}
	return "NATIVE"
}

// DataType classifies the payload a V5 identifier names.
type DataType uint8

const (
	// DataChunk is the canonical default DataType.
	DataChunk DataType = 0
	Metadata  DataType = 1
	Simple    DataType = 2
)

func (d DataType) String() string {
	switch d {
	case DataChunk:
		return "DATACHUNK"
	case Metadata:
		return "METADATA"
	case Simple:
		return "SIMPLE"
	default:
		return fmt.Sprintf("DataType(%d)", uint8(d))
	}
}

// Sentinel values used by V1 (and, for datacenter, any version that predates
// the field) in place of a real field value.
const (
	UnknownDatacenterID int8  = -1
	UnknownAccountID    int16 = -1
	UnknownContainerID  int16 = -1
)
