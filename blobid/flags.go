package blobid

import "github.com/bits-and-blooms/bitset"

// Bit layout of the V3..V5 flags byte. Compatibility with historical wire
// traffic depends on these exact positions, so the packing goes
// through an explicit bitset.BitSet rather than ad-hoc shifts.
const (
	flagBitCrafted     uint = 0
	flagBitEncrypted   uint = 1
	flagBitDataTypeLo  uint = 2
	flagBitDataTypeHi  uint = 3
	flagByteWidth           = 4
)

func packFlags(typ BlobType, isEncrypted bool, hasDataType bool, dataType DataType) byte {
	bs := bitset.New(flagByteWidth)
	if typ == Crafted {
		bs.Set(flagBitCrafted)
	}
	if isEncrypted {
		bs.Set(flagBitEncrypted)
	}
	if hasDataType {
		d := uint8(dataType)
		if d&0x1 != 0 {
			bs.Set(flagBitDataTypeLo)
		}
		if d&0x2 != 0 {
			bs.Set(flagBitDataTypeHi)
		}
	}
	var b byte
	for i := uint(0); i < flagByteWidth; i++ {
		if bs.Test(i) {
			b |= 1 << i
		}
	}
	return b
}

func unpackFlags(b byte) (typ BlobType, isEncrypted bool, dataType DataType) {
	bs := bitset.New(flagByteWidth)
	for i := uint(0); i < flagByteWidth; i++ {
		if b&(1<<i) != 0 {
			bs.Set(i)
		}
	}
	if bs.Test(flagBitCrafted) {
		typ = Crafted
	} else {
		typ = Native
	}
	isEncrypted = bs.Test(flagBitEncrypted)
	var d uint8
	if bs.Test(flagBitDataTypeLo) {
		d |= 0x1
	}
	if bs.Test(flagBitDataTypeHi) {
		d |= 0x2
	}
	dataType = DataType(d)
	return typ, isEncrypted, dataType
}
