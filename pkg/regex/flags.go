package regex

import (
	pcre2 "github.com/alexey-pelykh/go-pcre2"
)

// Flags adjust how a pattern is compiled. Values match the host library so
// that flag masks serialize identically.
type Flags int

const (
	// UnixLines makes '.', '^' and '$' recognize only '\n' as a line
	// terminator.
	UnixLines Flags = 0x01
	// CaseInsensitive enables case-insensitive matching.
	CaseInsensitive Flags = 0x02
	// Comments permits whitespace and '#' comments in the pattern.
	Comments Flags = 0x04
	// Multiline makes '^' and '$' match at line boundaries.
	Multiline Flags = 0x08
	// Literal treats the whole pattern as a literal string.
	Literal Flags = 0x10
	// DotAll makes '.' match line terminators too.
	DotAll Flags = 0x20
	// UnicodeCase is accepted for compatibility. UTF mode always applies
	// Unicode case folding, so this flag changes nothing; see the package
	// documentation for the divergence note.
	UnicodeCase Flags = 0x40
	// CanonEq matches canonically equivalent sequences: both the pattern and
	// the subject are decomposed to NFD before matching.
	CanonEq Flags = 0x80
	// UnicodeCharacterClass gives \w, \d, \s and friends their Unicode
	// definitions.
	UnicodeCharacterClass Flags = 0x100
)

const allFlags = UnixLines | CaseInsensitive | Comments | Multiline | Literal |
	DotAll | UnicodeCase | CanonEq | UnicodeCharacterClass

// compileOptions maps the host flags to PCRE2 compile options. CanonEq and
// UnicodeCase have no PCRE2 counterpart: the former selects the NFD path, the
// latter is implied by UTF mode.
func (f Flags) compileOptions() uint32 {
	opts := pcre2.UTF
	if f&CaseInsensitive != 0 {
		opts |= pcre2.CASELESS
	}
	if f&Multiline != 0 {
		opts |= pcre2.MULTILINE
	}
	if f&DotAll != 0 {
		opts |= pcre2.DOTALL
	}
	if f&Comments != 0 {
		opts |= pcre2.EXTENDED
	}
	if f&UnicodeCharacterClass != 0 {
		opts |= pcre2.UCP
	}
	if f&Literal != 0 {
		opts |= pcre2.LITERAL
	}
	return opts
}

// newline returns the PCRE2 newline convention for the flags. The host
// recognizes the full Unicode line-terminator set unless UnixLines narrows it
// to '\n'.
func (f Flags) newline() uint32 {
	if f&UnixLines != 0 {
		return pcre2.NEWLINE_LF
	}
	return pcre2.NEWLINE_ANY
}
