package blobid

import (
	"strings"

	satori "github.com/satori/go.uuid"
)

func versionRank(v Version) int {
	switch v {
	case V1:
		return 1
	case V2:
		return 2
	default: // V3, V4, V5
		return 3
	}
}

// Compare orders a against b: V1 < V2 < V3, with V3/V4/V5 ranking equal to
// each other and falling back to uuid lexicographic order among themselves;
// within V1 and V2 it falls back to (partition, uuid).
func Compare(a, b *ID) int {
	if ra, rb := versionRank(a.version), versionRank(b.version); ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	if a.version == V1 || a.version == V2 {
		if c := a.partition.Compare(b.partition); c != 0 {
			return c
		}
	}
	return compareUUID(a.uuidStr, b.uuidStr)
}

// Equal reports whether a and b compare equal.
func Equal(a, b *ID) bool {
	return Compare(a, b) == 0
}

// compareUUID attempts to compare the two uuid strings as canonical RFC
// 4122 UUIDs when both parse as one, so wire variance in case or hyphenation
// doesn't affect ordering; otherwise it falls back to plain string
// comparison, since the uuid field is not guaranteed to be a parseable UUID.
func compareUUID(a, b string) int {
	ua, errA := satori.FromString(a)
	ub, errB := satori.FromString(b)
	if errA == nil && errB == nil {
		return strings.Compare(ua.String(), ub.String())
	}
	return strings.Compare(a, b)
}

// IsAccountContainerMatch reports whether id is bound to exactly this
// account and container. V1 identifiers have no such binding and always
// match.
func (id *ID) IsAccountContainerMatch(account, container int16) bool {
	if id.version == V1 {
		return true
	}
	return id.accountID == account && id.containerID == container
}
