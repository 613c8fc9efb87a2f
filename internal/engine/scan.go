package engine

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// globToRegexp compiles a Redis glob pattern ("*", "?", "[abc]",
// "[^abc]") into a Go regexp anchored to the whole key, grounded on the
// same pattern-matching role the teacher's mock.go gives regexp for
// KEYS/SCAN.
func globToRegexp(pattern string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("^")
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch c {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		case '[':
			j := i + 1
			b.WriteByte('[')
			if j < len(pattern) && pattern[j] == '^' {
				b.WriteByte('^')
				j++
			}
			for j < len(pattern) && pattern[j] != ']' {
				if pattern[j] == '\\' && j+1 < len(pattern) {
					b.WriteByte('\\')
					b.WriteByte(pattern[j+1])
					j += 2
					continue
				}
				b.WriteByte(pattern[j])
				j++
			}
			b.WriteByte(']')
			i = j
		case '\\':
			if i+1 < len(pattern) {
				b.WriteString(regexp.QuoteMeta(string(pattern[i+1])))
				i++
			}
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString("$")
	re, err := regexp.Compile(b.String())
	if err != nil {
		// A malformed pattern matches nothing rather than panicking.
		return regexp.MustCompile("$^")
	}
	return re
}

// Scan resolves the open question in SPEC_FULL.md §4.3 as simple
// ordered iteration: cursor 0 takes a fresh sorted snapshot of every
// key matching pattern at that instant, encodes the snapshot as the
// cursor's hidden state is not needed because the cursor literally IS
// a decimal offset into a snapshot retaken each time cursor==0, and any
// other cursor value resumes from that offset in a freshly sorted
// Keys(pattern) — not a Redis-faithful bucket-split guarantee, but
// sufficient for "every key alive at the time of the first scan call or
// later, no guarantee of exactly-once" (§4.3).
func (e *Engine) Scan(cursor int64, pattern string, count int64, typeFilter KeyType) (nextCursor int64, keys []string) {
	if pattern == "" {
		pattern = "*"
	}
	if count <= 0 {
		count = 10
	}
	all := e.Keys(pattern)
	if typeFilter != TypeNone {
		filtered := all[:0:0]
		for _, k := range all {
			if e.Type(k) == typeFilter {
				filtered = append(filtered, k)
			}
		}
		all = filtered
	}
	sort.Strings(all)

	if cursor < 0 || cursor >= int64(len(all)) {
		return 0, nil
	}
	end := cursor + count
	if end >= int64(len(all)) {
		return 0, all[cursor:]
	}
	return end, all[cursor:end]
}

// CursorString and ParseCursor give the dispatcher a stable textual
// cursor representation (Redis clients treat cursors as opaque
// strings, §4.3).
func CursorString(c int64) string { return strconv.FormatInt(c, 10) }

func ParseCursor(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
