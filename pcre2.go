// Package pcre2 provides bindings to the 8-bit PCRE2 library, loaded at
// runtime through purego. The package exposes the small slice of the PCRE2
// API that the pkg/regex facade consumes: pattern compilation, single-shot
// matching, match data and match/compile contexts, and pattern introspection.
//
// All subjects and patterns are byte slices holding UTF-8 text; offsets on
// this boundary are UTF-8 byte offsets, exactly as PCRE2 reports them.
package pcre2

import (
	"fmt"
	"runtime"
	"strconv"
	"unsafe"

	"github.com/ebitengine/purego"
)

func init() {
	var libPath string

	switch runtime.GOOS {
	case "darwin":
		libPath = "libpcre2-8.dylib"
	case "linux", "freebsd":
		libPath = "libpcre2-8.so"
	case "windows":
		libPath = "pcre2-8.dll"
	default:
		panic(fmt.Errorf("GOOS=%s is not supported", runtime.GOOS))
	}

	lib, err := openLibrary(libPath)
	if err != nil {
		panic(fmt.Errorf("failed to load %s: %w", libPath, err))
	}

	// Register the functions by their PCRE2 symbol names.
	// (For the 8-bit versions, the symbols are suffixed with "_8".)
	funcs := [][2]any{
		{&pcre2_compile, "pcre2_compile_8"},
		{&pcre2_code_free, "pcre2_code_free_8"},
		{&pcre2_jit_compile, "pcre2_jit_compile_8"},
		{&pcre2_pattern_info, "pcre2_pattern_info_8"},
		{&pcre2_match, "pcre2_match_8"},
		{&pcre2_match_data_create_from_pattern, "pcre2_match_data_create_from_pattern_8"},
		{&pcre2_match_data_free, "pcre2_match_data_free_8"},
		{&pcre2_get_ovector_pointer, "pcre2_get_ovector_pointer_8"},
		{&pcre2_get_ovector_count, "pcre2_get_ovector_count_8"},
		{&pcre2_match_context_create, "pcre2_match_context_create_8"},
		{&pcre2_match_context_free, "pcre2_match_context_free_8"},
		{&pcre2_set_match_limit, "pcre2_set_match_limit_8"},
		{&pcre2_set_depth_limit, "pcre2_set_depth_limit_8"},
		{&pcre2_set_heap_limit, "pcre2_set_heap_limit_8"},
		{&pcre2_compile_context_create, "pcre2_compile_context_create_8"},
		{&pcre2_compile_context_free, "pcre2_compile_context_free_8"},
		{&pcre2_set_newline, "pcre2_set_newline_8"},
		{&pcre2_get_error_message, "pcre2_get_error_message_8"},
	}

	for _, f := range funcs {
		purego.RegisterLibFunc(f[0], lib, f[1].(string))
	}
}

// CompileError holds details about a pattern compilation failure. Offset is
// the UTF-8 byte position in the pattern at which the error was detected.
type CompileError struct {
	Pattern string
	Message string
	Offset  int
}

func (e *CompileError) Error() string {
	return e.Pattern + " (" + strconv.Itoa(e.Offset) + "): " + e.Message
}

// ErrorMessage resolves a PCRE2 error code to its textual message.
func ErrorMessage(code int32) string {
	buf := make([]byte, 256)
	n := pcre2_get_error_message(code, bytesPtr(buf), uint64(len(buf)))
	if n < 0 {
		return "PCRE2 error " + strconv.Itoa(int(code))
	}
	return string(buf[:n])
}

// Code is an immutable compiled pattern. It is safe to share a Code across
// goroutines; each goroutine needs its own MatchData.
type Code struct {
	ptr uintptr
}

// Compile compiles pattern with the given options. ctx may be nil.
// On failure the returned error is a *CompileError.
func Compile(pattern []byte, options uint32, ctx *CompileContext) (*Code, error) {
	var errcode int32
	var errOffset uint64

	var ctxPtr uintptr
	if ctx != nil {
		ctxPtr = ctx.ptr
	}

	code := pcre2_compile(bytesPtr(pattern), uint64(len(pattern)), options, &errcode, &errOffset, ctxPtr)
	if code == 0 {
		return nil, &CompileError{
			Pattern: string(pattern),
			Message: ErrorMessage(errcode),
			Offset:  int(errOffset),
		}
	}

	return &Code{ptr: code}, nil
}

// Close frees the compiled pattern.
func (c *Code) Close() {
	if c.ptr != 0 {
		pcre2_code_free(c.ptr)
		c.ptr = 0
	}
}

// JITCompile requests JIT compilation of the pattern. Options of zero mean
// JIT_COMPLETE. A library built without JIT support reports ERROR_JIT_BADOPTION;
// that is not an error for callers, matching falls back to the interpreter.
func (c *Code) JITCompile(options uint32) error {
	if options == 0 {
		options = JIT_COMPLETE
	}
	rc := pcre2_jit_compile(c.ptr, options)
	if rc != 0 && rc != ERROR_JIT_BADOPTION {
		return fmt.Errorf("pcre2_jit_compile: %s", ErrorMessage(rc))
	}
	return nil
}

func (c *Code) info32(what uint32) uint32 {
	var out uint32
	if rc := pcre2_pattern_info(c.ptr, what, uintptr(ptr(&out))); rc != 0 {
		panic("pcre2_pattern_info: " + ErrorMessage(rc))
	}
	return out
}

// CaptureCount returns the number of capturing subpatterns.
func (c *Code) CaptureCount() int {
	return int(c.info32(INFO_CAPTURECOUNT))
}

// NameTable returns the mapping from capture group names to group numbers.
// Each entry in the PCRE2 table is a 2-byte big-endian group number followed
// by the NUL-terminated name, padded to the fixed entry size.
func (c *Code) NameTable() map[string]int {
	count := int(c.info32(INFO_NAMECOUNT))
	if count == 0 {
		return nil
	}
	entrySize := int(c.info32(INFO_NAMEENTRYSIZE))

	var tablePtr uintptr
	if rc := pcre2_pattern_info(c.ptr, INFO_NAMETABLE, uintptr(ptr(&tablePtr))); rc != 0 {
		panic("pcre2_pattern_info: " + ErrorMessage(rc))
	}

	data := unsafe.Slice((*byte)(ptr(tablePtr)), count*entrySize)
	names := make(map[string]int, count)
	for i := 0; i < len(data); i += entrySize {
		n := (int(data[i]) << 8) | int(data[i+1])
		name := data[i+2 : i+entrySize]
		for j, b := range name {
			if b == 0 {
				name = name[:j]
				break
			}
		}
		names[string(name)] = n
	}
	return names
}

// Match runs a single pcre2_match call against subject starting at the given
// byte offset and returns the raw PCRE2 return code: the number of captured
// pairs on success (0 means the ovector was too small), or a negative error
// code such as ERROR_NOMATCH.
func (c *Code) Match(subject []byte, start int, options uint32, md *MatchData, mc *MatchContext) int32 {
	var mcPtr uintptr
	if mc != nil {
		mcPtr = mc.ptr
	}
	return pcre2_match(c.ptr, bytesPtr(subject), uint64(len(subject)), uint64(start), options, md.ptr, mcPtr)
}

// MatchData holds PCRE2 match results. It is sized from the pattern it was
// created for and may be reused across calls on the same goroutine.
type MatchData struct {
	ptr uintptr
}

// NewMatchData allocates a match data block sized to the pattern's ovector.
func NewMatchData(code *Code) *MatchData {
	return &MatchData{ptr: pcre2_match_data_create_from_pattern(code.ptr, 0)}
}

// Close frees the match data block.
func (d *MatchData) Close() {
	if d.ptr != 0 {
		pcre2_match_data_free(d.ptr)
		d.ptr = 0
	}
}

// OvectorCount returns the number of start/end pairs the block can hold.
func (d *MatchData) OvectorCount() int {
	return int(pcre2_get_ovector_count(d.ptr))
}

// Ovector copies the first pairs start/end offset pairs out of the block.
// Offsets are UTF-8 byte offsets; unset groups hold Unset in both slots.
func (d *MatchData) Ovector(pairs int) []uint64 {
	base := pcre2_get_ovector_pointer(d.ptr)
	if base == nil {
		return nil
	}
	raw := unsafe.Slice(base, 2*pairs)
	out := make([]uint64, 2*pairs)
	copy(out, raw)
	return out
}

// MatchContext carries per-matcher resource limits.
type MatchContext struct {
	ptr uintptr
}

// NewMatchContext allocates a match context with library defaults.
func NewMatchContext() *MatchContext {
	return &MatchContext{ptr: pcre2_match_context_create(0)}
}

// Close frees the match context.
func (m *MatchContext) Close() {
	if m.ptr != 0 {
		pcre2_match_context_free(m.ptr)
		m.ptr = 0
	}
}

// SetMatchLimit bounds the number of internal matching steps.
func (m *MatchContext) SetMatchLimit(v uint32) { pcre2_set_match_limit(m.ptr, v) }

// SetDepthLimit bounds the backtracking depth. Interpreter only.
func (m *MatchContext) SetDepthLimit(v uint32) { pcre2_set_depth_limit(m.ptr, v) }

// SetHeapLimit bounds match-time heap usage, in kibibytes. Interpreter only.
func (m *MatchContext) SetHeapLimit(v uint32) { pcre2_set_heap_limit(m.ptr, v) }

// CompileContext carries pattern compilation settings.
type CompileContext struct {
	ptr uintptr
}

// NewCompileContext allocates a compile context with library defaults.
func NewCompileContext() *CompileContext {
	return &CompileContext{ptr: pcre2_compile_context_create(0)}
}

// Close frees the compile context.
func (c *CompileContext) Close() {
	if c.ptr != 0 {
		pcre2_compile_context_free(c.ptr)
		c.ptr = 0
	}
}

// SetNewline selects the newline convention (NEWLINE_* constants).
func (c *CompileContext) SetNewline(v uint32) { pcre2_set_newline(c.ptr, v) }
