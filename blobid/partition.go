package blobid

import "io"

// PartitionID is an opaque, self-describing partition identifier. The codec
// never inspects its payload; it only asks for its wire bytes and compares
// two instances for ordering. Concrete implementations live with the cluster
// map (see the sibling partition package for a reference implementation),
// not here.
type PartitionID interface {
	// Bytes returns the self-describing wire serialization of the
	// partition identifier. Re-reading these bytes with a Directory must
	// always succeed; writing a partition never fails.
	Bytes() []byte
	// Compare returns <0, 0, >0 the way bytes.Compare does, ordering this
	// partition identifier against another.
	Compare(other PartitionID) int
	// String returns a short human-readable form, for logging.
	String() string
}

// Directory resolves partition identifiers from the wire bytes embedded in
// a BlobId. It is the codec's only collaborator: the codec delegates all
// partition parsing to it and never peeks inside partition bytes itself.
type Directory interface {
	// ReadPartition consumes a self-describing partition identifier from r
	// and resolves it. It must consume exactly the bytes belonging to the
	// partition identifier and leave the stream positioned immediately
	// after them, regardless of whether resolution succeeds.
	ReadPartition(r io.Reader) (PartitionID, error)
}
