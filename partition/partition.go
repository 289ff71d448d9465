// Package partition provides a concrete, in-memory implementation of the
// blobid.Directory collaborator: an opaque, self-describing partition
// identifier and the directory that resolves one from the byte prefix of a
// blob identifier.
package partition

import (
	"bytes"
	"fmt"
	"io"

	"github.com/clustermap/blobcore/blobid"
)

// ID is a datacenter-scoped partition number plus a replication-state
// byte, serialized self-describingly as [len:u8][payload...] so the codec
// can re-read it without ever inspecting the payload.
type ID struct {
	Number           int64
	ReplicationState byte
}

// Bytes returns the self-describing wire serialization. Encoding never
// fails (blobid.PartitionID contract).
func (p ID) Bytes() []byte {
	var payload bytes.Buffer
	var numBuf [8]byte
	putUint64(numBuf[:], uint64(p.Number))
	payload.Write(numBuf[:])
	payload.WriteByte(p.ReplicationState)

	out := make([]byte, 0, 1+payload.Len())
	out = append(out, byte(payload.Len()))
	out = append(out, payload.Bytes()...)
	return out
}

// Compare orders two partition identifiers by number, then replication
// state, matching bytes.Compare semantics on ties.
func (p ID) Compare(other blobid.PartitionID) int {
	o, ok := other.(ID)
	if !ok {
		return bytes.Compare(p.Bytes(), other.Bytes())
	}
	if p.Number != o.Number {
		if p.Number < o.Number {
			return -1
		}
		return 1
	}
	if p.ReplicationState != o.ReplicationState {
		if p.ReplicationState < o.ReplicationState {
			return -1
		}
		return 1
	}
	return 0
}

// String returns a short human-readable form for logging.
func (p ID) String() string {
	return fmt.Sprintf("partition(%d/%d)", p.Number, p.ReplicationState)
}

func (p ID) key() string {
	return string(p.Bytes())
}

func putUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (56 - 8*i))
	}
}

func getUint64(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(b[i])
	}
	return v
}

// readPartitionBytes consumes the self-describing [len:u8][payload] framing
// from r and returns the payload, without interpreting it.
func readPartitionBytes(r io.Reader) ([]byte, error) {
	var lenByte [1]byte
	if _, err := io.ReadFull(r, lenByte[:]); err != nil {
		return nil, fmt.Errorf("partition: reading length prefix: %w", blobid.ErrTruncatedInput)
	}
	payload := make([]byte, lenByte[0])
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("partition: reading %d payload bytes: %w", lenByte[0], blobid.ErrTruncatedInput)
	}
	return payload, nil
}

// decodeID parses a partition payload (sans the length prefix) into an ID.
func decodeID(payload []byte) (ID, error) {
	if len(payload) != 9 {
		return ID{}, fmt.Errorf("partition: payload length %d, want 9: %w", len(payload), blobid.ErrTruncatedInput)
	}
	return ID{
		Number:           int64(getUint64(payload[:8])),
		ReplicationState: payload[8],
	}, nil
}
