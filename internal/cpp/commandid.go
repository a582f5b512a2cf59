package cpp

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCommandID parses the textual form of a 16-bit command id.
// Surrounding whitespace is trimmed; a case-insensitive "0x" prefix
// selects hexadecimal, anything else is decimal. Both forms must fit
// in 0..65535.
func ParseCommandID(text string) (uint16, error) {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return 0, fmt.Errorf("empty command id")
	}

	base := 10
	digits := clean
	if len(clean) >= 2 && (clean[0] == '0') && (clean[1] == 'x' || clean[1] == 'X') {
		base = 16
		digits = clean[2:]
	}

	v, err := strconv.ParseUint(digits, base, 16)
	if err != nil {
		return 0, fmt.Errorf("command id %q: %w", text, err)
	}
	return uint16(v), nil
}

// FormatCommandID renders a command id the way the generated trait
// spells it: zero-padded 4-digit uppercase hex with a 0x prefix.
func FormatCommandID(id uint16) string {
	return fmt.Sprintf("0x%04X", id)
}
