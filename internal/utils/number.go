package utils

import (
	"strconv"
	"strings"
)

func Clamp(n, min, max int) int {
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

// ParseIntPrefix reads the leading base-10 integer of s the way a browser's
// parseInt does: surrounding space is ignored and trailing junk is dropped.
// ok is false when s does not start with a number.
func ParseIntPrefix(s string) (n int, ok bool) {
	s = strings.TrimSpace(s)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Out of int range: saturate, callers clamp anyway.
		if s[0] == '-' {
			return -int(^uint(0) >> 1), true
		}
		return int(^uint(0) >> 1), true
	}
	return n, true
}
