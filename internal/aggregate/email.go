package aggregate

import (
	"regexp"
	"strings"
)

// Letters are matched by Unicode class so accented local parts stay whole
var emailPattern = regexp.MustCompile(`[\p{L}\p{N}_.-]+@[\p{L}\p{N}_.-]+\.[\p{L}\p{N}_]+`)

// ExtractEmail returns the first email-like substring of bio. Bios without
// both '@' and '.' are not searched.
func ExtractEmail(bio string) string {
	if !strings.Contains(bio, "@") || !strings.Contains(bio, ".") {
		return ""
	}
	return emailPattern.FindString(bio)
}
