package regex

import "strings"

// Region bounds are synthesized on top of PCRE2, which has no region concept
// of its own. For most operations it is enough to slice the subject and set
// NOTBOL/NOTEOL; the one combination that needs more is transparent bounds
// with anchoring bounds, where the full subject is visible to lookarounds yet
// '^' and '$' must still refer to the region. That case rewrites the pattern:
// top-level '^' becomes '\G' (anchored at the attempt offset) and top-level
// '$' is dropped, with "match must end at the region end" enforced by the
// matcher afterwards.

// anchorScan is the shared pattern scanner. It tracks backslash escapes and
// character classes, counting POSIX [[:...:]] nesting; it does not descend
// into groups because '^' and '$' mean the same at any depth.
type anchorScan struct {
	caret  bool // unescaped top-level '^'
	dollar bool // unescaped top-level '$'
	bigZ   bool // \Z (end before final newline)
	smallZ bool // \z (absolute end)
}

func scanAnchors(pattern string, rewrite *strings.Builder) anchorScan {
	var s anchorScan
	classDepth := 0
	for i := 0; i < len(pattern); i++ {
		ch := pattern[i]
		switch {
		case ch == '\\':
			if i+1 < len(pattern) {
				switch pattern[i+1] {
				case 'Z':
					s.bigZ = true
				case 'z':
					s.smallZ = true
				}
				if rewrite != nil {
					rewrite.WriteByte(ch)
					rewrite.WriteByte(pattern[i+1])
				}
				i++
			} else if rewrite != nil {
				rewrite.WriteByte(ch)
			}
		case ch == '[' && classDepth == 0:
			classDepth++
			if rewrite != nil {
				rewrite.WriteByte(ch)
			}
		case ch == '[' && classDepth > 0:
			// Inside a class '[' is literal unless it opens a POSIX item.
			if i+1 < len(pattern) && (pattern[i+1] == ':' || pattern[i+1] == '.' || pattern[i+1] == '=') {
				classDepth++
			}
			if rewrite != nil {
				rewrite.WriteByte(ch)
			}
		case ch == ']' && classDepth > 0:
			classDepth--
			if rewrite != nil {
				rewrite.WriteByte(ch)
			}
		case ch == '^' && classDepth == 0:
			s.caret = true
			if rewrite != nil {
				rewrite.WriteString(`\G`)
			}
		case ch == '$' && classDepth == 0:
			s.dollar = true
		default:
			if rewrite != nil {
				rewrite.WriteByte(ch)
			}
		}
	}
	return s
}

// rewriteAnchors returns the pattern with top-level '^' replaced by '\G' and
// top-level '$' removed, plus whether either anchor was present.
func rewriteAnchors(pattern string) (rewritten string, caret, dollar bool) {
	var b strings.Builder
	b.Grow(len(pattern) + 8)
	s := scanAnchors(pattern, &b)
	return b.String(), s.caret, s.dollar
}

// hasTopLevelAnchors reports whether the pattern contains an unescaped '^'
// or '$' outside character classes.
func hasTopLevelAnchors(pattern string) bool {
	s := scanAnchors(pattern, nil)
	return s.caret || s.dollar
}

// tailCouldRequireEnd reports whether a match ending at the subject end could
// be invalidated by additional input: true when the pattern carries a '$' or
// '\Z' anchor, false when its only end anchor is the absolute '\z'.
func tailCouldRequireEnd(pattern string) bool {
	s := scanAnchors(pattern, nil)
	if s.smallZ {
		return false
	}
	return s.dollar || s.bigZ
}
