package kinship

import (
	"fmt"
	"strconv"

	"github.com/agentstation/fiwdb/pkg/errors"
)

// FID identifies a family: "F" followed by zero-padded digits, e.g. F0001.
type FID string

// ParseFID validates s and returns it as a FID.
func ParseFID(s string) (FID, error) {
	if len(s) < 2 || s[0] != 'F' {
		return "", errors.NewValidationError("fid", s, "must be F followed by digits")
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return "", errors.NewValidationError("fid", s, "must be F followed by digits")
		}
	}
	return FID(s), nil
}

// FIDFromNumber renders n in the dataset's F%04d form.
func FIDFromNumber(n int) FID {
	return FID(fmt.Sprintf("F%04d", n))
}

// Number returns the integer value of the digits after the leading F.
// Malformed ids sort first (0).
func (f FID) Number() uint64 {
	if len(f) < 2 {
		return 0
	}
	n, err := strconv.ParseUint(string(f[1:]), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func (f FID) String() string {
	return string(f)
}

// MID identifies a member within a family. MIDs start at 1; matrix index
// 0 is MID 1.
type MID int

// MIDFromIndex converts a 0-based matrix index to a MID.
func MIDFromIndex(i int) MID {
	return MID(i + 1)
}

// Index converts m back to a 0-based matrix index.
func (m MID) Index() int {
	return int(m) - 1
}

// Dir is the member's subdirectory name inside its family directory.
func (m MID) Dir() string {
	return "MID" + strconv.Itoa(int(m))
}

// Path renders "FID/MIDn", the form used in pair tables.
func Path(fid FID, m MID) string {
	return string(fid) + "/" + m.Dir()
}
