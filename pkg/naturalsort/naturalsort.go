package naturalsort

import "strings"

// Compare orders two file names the way a person expects: the names are
// split into alternating literal and digit-run segments, digit runs compare
// numerically and literal parts compare case-insensitively. The first
// segment pair that differs decides. "clip 2" sorts before "clip 10" while
// "intro" still sorts before "outro".
func Compare(a, b string) int {
	ia, ib := 0, 0
	for ia < len(a) && ib < len(b) {
		segA, numA := nextSegment(a, &ia)
		segB, numB := nextSegment(b, &ib)

		var c int
		if numA && numB {
			c = compareDigits(segA, segB)
		} else {
			c = strings.Compare(strings.ToLower(segA), strings.ToLower(segB))
		}
		if c != 0 {
			return c
		}
	}

	// one name is a prefix of the other - the shorter one sorts first
	switch {
	case ia < len(a):
		return 1
	case ib < len(b):
		return -1
	default:
		return 0
	}
}

// Less is a convenience wrapper for sort predicates
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// nextSegment pulls the next run of digits or non-digits starting at *i
func nextSegment(s string, i *int) (string, bool) {
	start := *i
	digits := isDigit(s[start])
	for *i < len(s) && isDigit(s[*i]) == digits {
		*i++
	}
	return s[start:*i], digits
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// compareDigits compares two digit runs by numeric value. Leading zeros
// are trimmed first so the runs can be arbitrarily long.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
