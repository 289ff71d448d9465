package partition

import (
	"fmt"
	"io"
	"sync"

	"github.com/clustermap/blobcore/blobid"
)

// MapDirectory is an in-memory, mutex-guarded Directory, sufficient for
// tests and for embedding a single-process cluster map. Lookups are keyed
// by the partition's own wire bytes, mirroring how the codec itself only
// ever sees those bytes.
type MapDirectory struct {
	mu    sync.RWMutex
	table map[string]ID
}

// NewMapDirectory returns an empty directory.
func NewMapDirectory() *MapDirectory {
	return &MapDirectory{table: make(map[string]ID)}
}

// Put registers id so it can later be resolved by ReadPartition.
func (d *MapDirectory) Put(id ID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.table[id.key()] = id
}

// Remove unregisters id, if present.
func (d *MapDirectory) Remove(id ID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.table, id.key())
}

// ReadPartition implements blobid.Directory: it consumes the self-describing
// partition bytes from r and resolves them against the table.
func (d *MapDirectory) ReadPartition(r io.Reader) (blobid.PartitionID, error) {
	payload, err := readPartitionBytes(r)
	if err != nil {
		return nil, err
	}
	id, err := decodeID(payload)
	if err != nil {
		return nil, err
	}

	d.mu.RLock()
	resolved, ok := d.table[id.key()]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("partition: %s not registered: %w", id, blobid.ErrUnknownPartition)
	}
	return resolved, nil
}

// Len returns the number of partitions currently registered.
func (d *MapDirectory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.table)
}

// All returns a snapshot slice of every registered partition, in no
// particular order.
func (d *MapDirectory) All() []ID {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]ID, 0, len(d.table))
	for _, id := range d.table {
		out = append(out, id)
	}
	return out
}
