package music

import (
	"strconv"
	"strings"
)

type rangeKind int

const (
	rangeFull rangeKind = iota
	rangePartial
	rangeUnsatisfiable
)

// parseRange resolves a Range header against a blob of the given size.
// Headers that do not parse as a single bytes range are ignored and the
// full content is served.
func parseRange(header string, size int64) (start, length int64, kind rangeKind) {
	full := func() (int64, int64, rangeKind) { return 0, size, rangeFull }

	header = strings.TrimSpace(header)
	if header == "" {
		return full()
	}
	unit, set, ok := strings.Cut(header, "=")
	if !ok || !strings.EqualFold(strings.TrimSpace(unit), "bytes") || strings.Contains(set, ",") {
		return full()
	}
	first, last, ok := strings.Cut(strings.TrimSpace(set), "-")
	if !ok {
		return full()
	}
	first, last = strings.TrimSpace(first), strings.TrimSpace(last)

	if first == "" {
		n, ok := parseDigits(last)
		if !ok {
			return full()
		}
		if n == 0 || size == 0 {
			return 0, 0, rangeUnsatisfiable
		}
		if n > size {
			n = size
		}
		return size - n, n, rangePartial
	}

	s, ok := parseDigits(first)
	if !ok {
		return full()
	}
	end := size - 1
	if last != "" {
		e, ok := parseDigits(last)
		if !ok || e < s {
			return full()
		}
		end = e
	}
	if s >= size {
		return 0, 0, rangeUnsatisfiable
	}
	if end > size-1 {
		end = size - 1
	}
	return s, end - s + 1, rangePartial
}

// parseDigits accepts unsigned decimal integers only.
func parseDigits(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
