package regex

import (
	pcre2 "github.com/alexey-pelykh/go-pcre2"
)

// executor performs single-shot PCRE2 invocations for one matcher. It owns
// the match context carrying the configured limits and reuses match data
// blocks per code to amortize allocation.
type executor struct {
	mctx  *pcre2.MatchContext
	noJIT bool
	data  map[*pcre2.Code]*pcre2.MatchData
}

func newExecutor(mctx *pcre2.MatchContext, noJIT bool) *executor {
	return &executor{
		mctx:  mctx,
		noJIT: noJIT,
		data:  make(map[*pcre2.Code]*pcre2.MatchData),
	}
}

func (e *executor) close() {
	for _, md := range e.data {
		md.Close()
	}
	e.data = nil
	if e.mctx != nil {
		e.mctx.Close()
		e.mctx = nil
	}
}

// execResult is one invocation's outcome. Offsets in ovector are UTF-8 bytes
// relative to the subject slice handed to PCRE2; ovector is nil when the
// match failed. Partial failures feed the hitEnd latch.
type execResult struct {
	ovector []uint64
	partial bool
}

// run invokes PCRE2 once. PARTIAL_SOFT is always set so that a failure which
// ran off the end of the subject is distinguishable from a plain no-match.
func (e *executor) run(code *pcre2.Code, subject []byte, startByte int, options uint32, pairs int) (execResult, error) {
	md, ok := e.data[code]
	if !ok {
		md = pcre2.NewMatchData(code)
		e.data[code] = md
	}

	options |= pcre2.PARTIAL_SOFT
	if e.noJIT {
		options |= pcre2.NO_JIT
	}

	rc := code.Match(subject, startByte, options, md, e.mctx)
	switch {
	case rc == pcre2.ERROR_NOMATCH:
		return execResult{}, nil
	case rc == pcre2.ERROR_PARTIAL:
		return execResult{partial: true}, nil
	case rc == pcre2.ERROR_MATCHLIMIT, rc == pcre2.ERROR_DEPTHLIMIT, rc == pcre2.ERROR_HEAPLIMIT:
		return execResult{}, &LimitExceededError{Code: rc}
	case rc < 0:
		return execResult{}, ErrMatch.New(pcre2.ErrorMessage(rc))
	}
	return execResult{ovector: md.Ovector(pairs)}, nil
}
