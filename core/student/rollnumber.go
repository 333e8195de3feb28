package student

import (
	"fmt"
	"strconv"
	"strings"
)

const rollNumberPrefix = "ST"

// ParseRollNumber returns the numeric suffix of a roll number like "ST007".
func ParseRollNumber(id string) (int, bool) {
	if !strings.HasPrefix(id, rollNumberPrefix) {
		return 0, false
	}
	digits := id[len(rollNumberPrefix):]
	if digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

func FormatRollNumber(n int) string {
	return fmt.Sprintf("%s%03d", rollNumberPrefix, n)
}

// NextRollNumber allocates the roll number following the highest existing one.
// An empty directory starts at ST001. Ids that are not roll numbers are ignored.
func NextRollNumber(students []Student) string {
	var max int
	for _, s := range students {
		if n, ok := ParseRollNumber(s.ID); ok && n > max {
			max = n
		}
	}
	return FormatRollNumber(max + 1)
}
