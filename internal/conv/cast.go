package conv

import (
	"fmt"
	"math"
)

// IntToUint16 converts int to uint16 safely.
//
// Used to validate node entry counts (header.count is a u16) before they are
// written into a page header.
func IntToUint16(v int) (uint16, error) {
	if v < 0 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint16 (negative)", v)
	}
	if v > math.MaxUint16 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint16 (too large)", v)
	}
	return uint16(v), nil
}
