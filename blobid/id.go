package blobid

import "github.com/google/uuid"

// ID is an immutable, self-describing blob identifier. Construct one with
// New (fresh, NATIVE) or one of the Parse* functions (from wire bytes), or
// derive one with Craft. An ID is never mutated after construction.
type ID struct {
	version      Version
	typ          BlobType
	datacenterID int8
	accountID    int16
	containerID  int16
	partition    PartitionID
	isEncrypted  bool
	hasDataType  bool
	dataType     DataType
	uuidStr      string
}

// Option configures an optional field of a freshly constructed ID. Fields
// the target version does not carry are silently normalised away by New:
// V1/V2 ignore type, is_encrypted and data_type entirely.
type Option func(*ID)

// WithDatacenterID sets the identifier's datacenter. Ignored below V2.
func WithDatacenterID(id int8) Option {
	return func(i *ID) { i.datacenterID = id }
}

// WithAccountID sets the identifier's account. Ignored below V2.
func WithAccountID(id int16) Option {
	return func(i *ID) { i.accountID = id }
}

// WithContainerID sets the identifier's container. Ignored below V2.
func WithContainerID(id int16) Option {
	return func(i *ID) { i.containerID = id }
}

// WithEncrypted marks the identifier encrypted. Ignored below V4.
func WithEncrypted(encrypted bool) Option {
	return func(i *ID) { i.isEncrypted = encrypted }
}

// WithDataType sets the identifier's data type. Ignored below V5.
func WithDataType(dt DataType) Option {
	return func(i *ID) {
		i.hasDataType = true
		i.dataType = dt
	}
}

// WithUUID overrides the generated uuid string. Without this option, New
// generates a fresh RFC 4122 uuid. The uuid field is a plain length-prefixed
// string on the wire; it need not itself be a parseable UUID.
func WithUUID(id string) Option {
	return func(i *ID) { i.uuidStr = id }
}

// WithCraftedType marks the identifier CRAFTED instead of NATIVE. Ignored
// below V3. Craft does not use this option; it builds its result directly.
func WithCraftedType() Option {
	return func(i *ID) { i.typ = Crafted }
}

// New constructs a fresh NATIVE identifier at the given version, bound to
// partition. A uuid is generated via github.com/google/uuid unless WithUUID
// overrides it.
func New(version Version, partition PartitionID, opts ...Option) (*ID, error) {
	if !version.valid() {
		return nil, ErrUnknownVersion
	}
	id := &ID{
		version:      version,
		typ:          Native,
		datacenterID: UnknownDatacenterID,
		accountID:    UnknownAccountID,
		containerID:  UnknownContainerID,
		partition:    partition,
	}
	for _, opt := range opts {
		opt(id)
	}
	if id.uuidStr == "" {
		id.uuidStr = uuid.New().String()
	}
	id.normalize()
	return id, nil
}

// normalize clears fields the identifier's version does not carry, so two
// IDs built with different irrelevant options at the same version still
// encode identically.
func (id *ID) normalize() {
	if id.version < V2 {
		id.datacenterID = UnknownDatacenterID
		id.accountID = UnknownAccountID
		id.containerID = UnknownContainerID
	}
	if id.version < V3 {
		id.typ = Native
	}
	if id.version < V4 {
		id.isEncrypted = false
	}
	if id.version == V3 {
		// V3 may carry the encrypted bit on the wire but it is always
		// exposed as false.
		id.isEncrypted = false
	}
	if id.version < V5 {
		id.hasDataType = false
		id.dataType = DataChunk
	} else {
		id.hasDataType = true
	}
}

// Version returns the identifier's wire version.
func (id *ID) Version() Version { return id.version }

// Type returns NATIVE or CRAFTED. Always NATIVE below V3.
func (id *ID) Type() BlobType { return id.typ }

// DatacenterID returns the datacenter, or UnknownDatacenterID for V1.
func (id *ID) DatacenterID() int8 { return id.datacenterID }

// AccountID returns the account, or UnknownAccountID for V1.
func (id *ID) AccountID() int16 { return id.accountID }

// ContainerID returns the container, or UnknownContainerID for V1.
func (id *ID) ContainerID() int16 { return id.containerID }

// Partition returns the resolved partition identifier.
func (id *ID) Partition() PartitionID { return id.partition }

// IsEncrypted reports the is_encrypted bit. Always false below V4.
func (id *ID) IsEncrypted() bool { return id.isEncrypted }

// DataType returns the data type and whether the version carries one at
// all (only V5 does).
func (id *ID) DataType() (DataType, bool) { return id.dataType, id.hasDataType }

// UUID returns the identifier's uuid field verbatim, exactly as stored or
// decoded. It is a plain string, not necessarily parseable as an RFC 4122
// UUID (legacy wire payloads are not guaranteed to be one).
func (id *ID) UUID() string { return id.uuidStr }
