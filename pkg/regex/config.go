package regex

import (
	"os"
	"strconv"
)

// Process-wide configuration, read from the environment at pattern
// compilation and matcher construction. Per-pattern builder values override.
const (
	// envJIT disables JIT compilation when set to a false value. JIT must be
	// off for depth and heap limits to be enforced.
	envJIT = "PCRE2_REGEX_JIT"
	// envMatchLimit bounds the number of internal matching steps.
	envMatchLimit = "PCRE2_REGEX_MATCH_LIMIT"
	// envDepthLimit bounds the backtracking depth (interpreter only).
	envDepthLimit = "PCRE2_REGEX_DEPTH_LIMIT"
	// envHeapLimit bounds match-time heap usage in KiB (interpreter only).
	envHeapLimit = "PCRE2_REGEX_HEAP_LIMIT"
)

type settings struct {
	jit        bool
	matchLimit int64 // -1 when unset
	depthLimit int64
	heapLimit  int64
}

func loadSettings() settings {
	s := settings{
		jit:        true,
		matchLimit: envLimit(envMatchLimit),
		depthLimit: envLimit(envDepthLimit),
		heapLimit:  envLimit(envHeapLimit),
	}
	if v := os.Getenv(envJIT); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.jit = b
		}
	}
	return s
}

func envLimit(name string) int64 {
	v := os.Getenv(name)
	if v == "" {
		return -1
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return -1
	}
	return int64(n)
}
