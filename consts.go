package pcre2

// Compile options (pcre2.h, 8-bit library).
const (
	ANCHORED          uint32 = 0x80000000
	NO_UTF_CHECK      uint32 = 0x40000000
	ENDANCHORED       uint32 = 0x20000000
	ALLOW_EMPTY_CLASS uint32 = 0x00000001
	ALT_BSUX          uint32 = 0x00000002
	AUTO_CALLOUT      uint32 = 0x00000004
	CASELESS          uint32 = 0x00000008
	DOLLAR_ENDONLY    uint32 = 0x00000010
	DOTALL            uint32 = 0x00000020
	DUPNAMES          uint32 = 0x00000040
	EXTENDED          uint32 = 0x00000080
	FIRSTLINE         uint32 = 0x00000100
	MULTILINE         uint32 = 0x00000400
	NEVER_UCP         uint32 = 0x00000800
	NEVER_UTF         uint32 = 0x00001000
	NO_AUTO_CAPTURE   uint32 = 0x00002000
	NO_AUTO_POSSESS   uint32 = 0x00004000
	NO_START_OPTIMIZE uint32 = 0x00010000
	UCP               uint32 = 0x00020000
	UNGREEDY          uint32 = 0x00040000
	UTF               uint32 = 0x00080000
	LITERAL           uint32 = 0x02000000
	MATCH_INVALID_UTF uint32 = 0x04000000
)

// Match options.
const (
	NOTBOL           uint32 = 0x00000001
	NOTEOL           uint32 = 0x00000002
	NOTEMPTY         uint32 = 0x00000004
	NOTEMPTY_ATSTART uint32 = 0x00000008
	PARTIAL_SOFT     uint32 = 0x00000010
	PARTIAL_HARD     uint32 = 0x00000020
	NO_JIT           uint32 = 0x00002000
)

// JIT compile options.
const (
	JIT_COMPLETE uint32 = 0x00000001
)

// Newline conventions, set through a compile context.
const (
	NEWLINE_CR      uint32 = 1
	NEWLINE_LF      uint32 = 2
	NEWLINE_CRLF    uint32 = 3
	NEWLINE_ANY     uint32 = 4
	NEWLINE_ANYCRLF uint32 = 5
	NEWLINE_NUL     uint32 = 6
)

// Request codes for pcre2_pattern_info.
const (
	INFO_ALLOPTIONS    uint32 = 0
	INFO_CAPTURECOUNT  uint32 = 4
	INFO_MATCHLIMIT    uint32 = 14
	INFO_NAMECOUNT     uint32 = 17
	INFO_NAMEENTRYSIZE uint32 = 18
	INFO_NAMETABLE     uint32 = 19
	INFO_NEWLINE       uint32 = 20
	INFO_SIZE          uint32 = 22
)

// Match-time and info error codes.
const (
	ERROR_NOMATCH        int32 = -1
	ERROR_PARTIAL        int32 = -2
	ERROR_BADOPTION      int32 = -34
	ERROR_JIT_BADOPTION  int32 = -45
	ERROR_JIT_STACKLIMIT int32 = -46
	ERROR_MATCHLIMIT     int32 = -47
	ERROR_NOMEMORY       int32 = -48
	ERROR_NULL           int32 = -51
	ERROR_DEPTHLIMIT     int32 = -53
	ERROR_HEAPLIMIT      int32 = -63
)

// Unset marks a capture group that took no part in the match.
const Unset uint64 = ^uint64(0)
