package partition

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
)

// Snapshot writes an xz-compressed, point-in-time export of every partition
// currently registered in d to w. This bootstraps a new cluster-map replica
// from an existing directory; it is not HealthPolicy state persistence
// (out of scope) and not cross-peer coordination (also out of scope) — just
// a bulk transfer of the directory's own table.
func (d *MapDirectory) Snapshot(w io.Writer) error {
	xw, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("partition: opening xz writer: %w", err)
	}

	ids := d.All()
	var count [4]byte
	binary.BigEndian.PutUint32(count[:], uint32(len(ids)))
	if _, err := xw.Write(count[:]); err != nil {
		return fmt.Errorf("partition: writing snapshot count: %w", err)
	}
	for _, id := range ids {
		if _, err := xw.Write(id.Bytes()); err != nil {
			return fmt.Errorf("partition: writing snapshot entry: %w", err)
		}
	}
	return xw.Close()
}

// Restore replaces d's table with the contents of an xz-compressed snapshot
// produced by Snapshot. The existing table is swapped out only after the
// whole snapshot has been read; on error d is left unchanged.
func (d *MapDirectory) Restore(r io.Reader) error {
	xr, err := xz.NewReader(r)
	if err != nil {
		return fmt.Errorf("partition: opening xz reader: %w", err)
	}

	var count [4]byte
	if _, err := io.ReadFull(xr, count[:]); err != nil {
		return fmt.Errorf("partition: reading snapshot count: %w", err)
	}
	n := binary.BigEndian.Uint32(count[:])

	table := make(map[string]ID, n)
	for i := uint32(0); i < n; i++ {
		payload, err := readPartitionBytes(xr)
		if err != nil {
			return fmt.Errorf("partition: reading snapshot entry %d: %w", i, err)
		}
		id, err := decodeID(payload)
		if err != nil {
			return fmt.Errorf("partition: decoding snapshot entry %d: %w", i, err)
		}
		table[id.key()] = id
	}

	d.mu.Lock()
	d.table = table
	d.mu.Unlock()
	return nil
}
