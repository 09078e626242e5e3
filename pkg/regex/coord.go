package regex

import (
	"sort"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// The matcher bridges three coordinate spaces: the caller's UTF-16 code-unit
// indices, PCRE2's UTF-8 byte offsets, and, under CanonEq, the code-unit
// indices of the subject's NFD form.

// byteMap records, for a span of UTF-16 code units encoded to UTF-8, the byte
// offset of every code-unit boundary. The offsets array is non-decreasing;
// the boundary inside a surrogate pair shares the pair's start offset so that
// a reverse lookup lands on the pair start.
type byteMap struct {
	buf     []byte
	offsets []int
}

func encodeUnits(units []uint16) byteMap {
	m := byteMap{
		buf:     make([]byte, 0, len(units)+len(units)/2),
		offsets: make([]int, len(units)+1),
	}
	for i := 0; i < len(units); {
		r := rune(units[i])
		width := 1
		if utf16.IsSurrogate(r) {
			if i+1 < len(units) {
				if dec := utf16.DecodeRune(r, rune(units[i+1])); dec != utf8.RuneError {
					r = dec
					width = 2
				} else {
					r = utf8.RuneError
				}
			} else {
				r = utf8.RuneError
			}
		}
		m.offsets[i] = len(m.buf)
		if width == 2 {
			m.offsets[i+1] = len(m.buf)
		}
		m.buf = utf8.AppendRune(m.buf, r)
		i += width
	}
	m.offsets[len(units)] = len(m.buf)
	return m
}

// byteOf returns the UTF-8 byte offset of code-unit boundary i.
func (m *byteMap) byteOf(i int) int { return m.offsets[i] }

// unitOf maps a UTF-8 byte offset back to the least code-unit index whose
// byte offset equals it.
func (m *byteMap) unitOf(b int) int {
	return sort.SearchInts(m.offsets, b)
}

// canonMap relates a subject's code-unit indices to those of its NFD form.
// All PCRE2 work under CanonEq runs over the NFD form; match offsets are
// mapped back through this table so that callers always see original
// coordinates and group text in the original form.
type canonMap struct {
	nfd []uint16 // the NFD form, UTF-16 code units
	l   []int    // l[k] = NFD code-unit length of the original k-unit prefix
}

// newCanonMap decomposes s segment by segment. Segments start at
// normalization boundaries, so prefix lengths computed inside a segment
// compose exactly with the running total.
func newCanonMap(s string) *canonMap {
	c := &canonMap{l: make([]int, utf16Len(s)+1)}

	var it norm.Iter
	it.InitString(norm.NFD, s)
	cu := 0
	nfdLen := 0
	for !it.Done() {
		start := it.Pos()
		seg := it.Next()
		input := s[start:it.Pos()]

		// A segment that is already NFD maps its interior boundaries one to
		// one; otherwise each code-point prefix is normalized on its own,
		// which is exact because the segment starts at a boundary.
		identity := string(seg) == input
		run := 0
		for q := 0; q < len(input); {
			r, size := utf8.DecodeRuneInString(input[q:])
			if identity {
				c.l[cu] = nfdLen + run
				run += utf16.RuneLen(r)
			} else {
				c.l[cu] = nfdLen + utf16Len(norm.NFD.String(input[:q]))
			}
			if utf16.RuneLen(r) == 2 {
				c.l[cu+1] = c.l[cu]
				cu++
			}
			cu++
			q += size
		}

		for _, r := range string(seg) {
			c.nfd = utf16.AppendRune(c.nfd, r)
		}
		nfdLen = len(c.nfd)
	}
	c.l[cu] = nfdLen
	return c
}

// toNFD maps an original code-unit boundary to its NFD boundary.
func (c *canonMap) toNFD(k int) int { return c.l[k] }

// startFromNFD maps an NFD start index to the smallest original index whose
// NFD expansion covers it.
func (c *canonMap) startFromNFD(j int) int {
	upper := sort.Search(len(c.l), func(i int) bool { return c.l[i] > j })
	k := upper - 1
	if k < 0 {
		return 0
	}
	for k > 0 && c.l[k-1] == c.l[k] {
		k--
	}
	return k
}

// endFromNFD maps an NFD end index to the smallest original index whose NFD
// prefix reaches it.
func (c *canonMap) endFromNFD(j int) int {
	return sort.SearchInts(c.l, j)
}

// utf16Len returns the UTF-16 code-unit length of s.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// stringToUnits converts s to UTF-16 code units.
func stringToUnits(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// unitsToString converts UTF-16 code units back to a string.
func unitsToString(units []uint16) string {
	return string(utf16.Decode(units))
}
