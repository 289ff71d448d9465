package blobid

import "fmt"

// Craft derives a new identifier at targetVersion from input, rebinding it
// to newAccount/newContainer and marking it CRAFTED. Datacenter, partition,
// uuid, is_encrypted and data_type (when present on both ends) carry over
// unchanged from input. Craft fails with ErrInvalidCraftTarget if
// targetVersion has no type field to mark CRAFTED with (below V3), and with
// ErrUnknownVersion if targetVersion is not a known version.
func Craft(input *ID, targetVersion Version, newAccount, newContainer int16) (*ID, error) {
	if targetVersion < V3 {
		return nil, fmt.Errorf("blobid: craft target %s: %w", targetVersion, ErrInvalidCraftTarget)
	}
	if !targetVersion.valid() {
		return nil, ErrUnknownVersion
	}

	dataType, inputHasDataType := input.DataType()
	if !inputHasDataType {
		dataType = DataChunk
	}

	out := &ID{
		version:      targetVersion,
		typ:          Crafted,
		datacenterID: input.datacenterID,
		accountID:    newAccount,
		containerID:  newContainer,
		partition:    input.partition,
		isEncrypted:  input.isEncrypted,
		hasDataType:  targetVersion == V5,
		dataType:     dataType,
		uuidStr:      input.uuidStr,
	}
	out.normalize()
	return out, nil
}
