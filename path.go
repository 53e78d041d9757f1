package refined

import (
	"strconv"
	"strings"
)

// EscapeSegment escapes a field name for use in a JSON Pointer (RFC 6901).
func EscapeSegment(name string) string {
	return strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
}

// IndexSegment returns the pointer segment for an array index.
func IndexSegment(i int) string { return strconv.Itoa(i) }

// Rebase nests pointer p under segment. An empty or root pointer becomes
// "/segment".
func Rebase(segment, p string) string {
	if p == "" || p == "/" {
		return "/" + segment
	}
	return "/" + segment + p
}

// Pointer joins already-escaped segments into a JSON Pointer.
func Pointer(segments ...string) string {
	if len(segments) == 0 {
		return "/"
	}
	return "/" + strings.Join(segments, "/")
}
