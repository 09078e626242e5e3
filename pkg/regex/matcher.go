package regex

import (
	"fmt"
	"iter"
	"runtime"
	"unicode/utf16"

	pcre2 "github.com/alexey-pelykh/go-pcre2"
)

// Matcher performs match operations on a subject by interpreting a Pattern.
// A matcher belongs to a single goroutine at a time; obtain one per
// goroutine from [Pattern.Matcher].
//
// The matcher keeps a region, the bound flags, the last match, and the
// hitEnd/requireEnd latches. The latches survive Reset, reproducing the host
// library's behavior; every match operation overwrites them.
type Matcher struct {
	pat     *Pattern
	subject string
	units   []uint16  // subject as UTF-16 code units
	canon   *canonMap // non-nil under CanonEq
	text    []uint16  // effective search text: canon.nfd or units

	rStart, rEnd int  // region, host code units
	anchoring    bool // '^'/'$' match at region boundaries (default true)
	transparent  bool // lookarounds see beyond the region (default false)

	last      []int // host-coordinate ovector pairs; nil when no current match
	appendPos int

	hitEnd     bool
	requireEnd bool

	exec *executor
}

func newMatcher(p *Pattern, input string) *Matcher {
	m := &Matcher{pat: p, anchoring: true}
	m.configureLimits()
	m.setSubject(input)
	runtime.SetFinalizer(m, (*Matcher).Close)
	return m
}

// Close releases the matcher's native resources (match context and match
// data). A finalizer releases them if Close is never called.
func (m *Matcher) Close() {
	if m.exec != nil {
		m.exec.close()
		m.exec = nil
	}
	runtime.SetFinalizer(m, nil)
}

func (m *Matcher) configureLimits() {
	cfg := loadSettings()
	ml, dl, hl := m.pat.matchLimit, m.pat.depthLimit, m.pat.heapLimit
	if ml < 0 {
		ml = cfg.matchLimit
	}
	if dl < 0 {
		dl = cfg.depthLimit
	}
	if hl < 0 {
		hl = cfg.heapLimit
	}

	mctx := pcre2.NewMatchContext()
	if ml >= 0 {
		mctx.SetMatchLimit(uint32(ml))
	}
	if dl >= 0 {
		mctx.SetDepthLimit(uint32(dl))
	}
	if hl >= 0 {
		mctx.SetHeapLimit(uint32(hl))
	}
	m.exec = newExecutor(mctx, !cfg.jit || dl >= 0 || hl >= 0)
}

func (m *Matcher) setSubject(s string) {
	m.subject = s
	m.units = stringToUnits(s)
	if m.pat.flags&CanonEq != 0 {
		m.canon = newCanonMap(s)
		m.text = m.canon.nfd
	} else {
		m.canon = nil
		m.text = m.units
	}
	m.rStart, m.rEnd = 0, len(m.units)
	m.last = nil
	m.appendPos = 0
}

// toEff maps a host code-unit boundary into the effective search text.
func (m *Matcher) toEff(k int) int {
	if m.canon != nil {
		return m.canon.toNFD(k)
	}
	return k
}

func (m *Matcher) startFromEff(j int) int {
	if m.canon != nil {
		return m.canon.startFromNFD(j)
	}
	return j
}

func (m *Matcher) endFromEff(j int) int {
	if m.canon != nil {
		return m.canon.endFromNFD(j)
	}
	return j
}

// advanceUnit returns the next host position after k: one code unit, or two
// when k starts a surrogate pair.
func (m *Matcher) advanceUnit(k int) int {
	if k+1 < len(m.units) &&
		utf16.IsSurrogate(rune(m.units[k])) && m.units[k] < 0xDC00 &&
		utf16.IsSurrogate(rune(m.units[k+1])) && m.units[k+1] >= 0xDC00 {
		return k + 2
	}
	return k + 1
}

// attempt runs code over the effective slice [lo,hi) starting at effective
// unit at, translating any match back to host coordinates.
func (m *Matcher) attempt(code *pcre2.Code, lo, hi, at int, options uint32) ([]int, bool, error) {
	bm := encodeUnits(m.text[lo:hi])
	res, err := m.exec.run(code, bm.buf, bm.byteOf(at-lo), options, m.pat.groupCount+1)
	if err != nil {
		return nil, false, err
	}
	if res.ovector == nil {
		return nil, res.partial, nil
	}
	ovec := make([]int, len(res.ovector))
	for i := 0; i < len(res.ovector); i += 2 {
		if res.ovector[i] == pcre2.Unset {
			ovec[i], ovec[i+1] = -1, -1
			continue
		}
		ovec[i] = m.startFromEff(lo + bm.unitOf(int(res.ovector[i])))
		ovec[i+1] = m.endFromEff(lo + bm.unitOf(int(res.ovector[i+1])))
	}
	return ovec, false, nil
}

// boundOptions returns the NOTBOL/NOTEOL bits. With anchoring bounds on the
// slice boundaries are the anchors, so no bits are needed; with them off,
// '^'/'$' must only match at the true subject boundaries.
func (m *Matcher) boundOptions() uint32 {
	if m.anchoring {
		return 0
	}
	var opts uint32
	if m.rStart > 0 {
		opts |= pcre2.NOTBOL
	}
	if m.rEnd < len(m.units) {
		opts |= pcre2.NOTEOL
	}
	return opts
}

// setResult installs the outcome of a match operation and updates the
// latches. searchedToEnd reports whether a failed search ran to the subject
// end.
func (m *Matcher) setResult(ovec []int, partial, searchedToEnd bool) {
	m.last = ovec
	m.hitEnd = partial ||
		(ovec == nil && searchedToEnd) ||
		(ovec != nil && ovec[1] >= len(m.units))
	m.requireEnd = ovec != nil && m.pat.requireEndTail && ovec[1] == len(m.units)
}

// Matches attempts to match the entire region against the pattern.
func (m *Matcher) Matches() (bool, error) {
	code, err := m.pat.matches()
	if err != nil {
		return false, err
	}
	effStart, effEnd := m.toEff(m.rStart), m.toEff(m.rEnd)
	lo := effStart
	if m.transparent {
		// The left side stays visible to lookbehinds; the slice still ends
		// at the region so ENDANCHORED enforces "consume exactly the region".
		lo = 0
	}
	ovec, partial, err := m.attempt(code, lo, effEnd, effStart, m.boundOptions())
	if err != nil {
		return false, err
	}
	m.setResult(ovec, partial, false)
	return ovec != nil, nil
}

// LookingAt attempts to match the pattern at the start of the region,
// without requiring the whole region to be consumed.
func (m *Matcher) LookingAt() (bool, error) {
	code, err := m.pat.lookingAt()
	if err != nil {
		return false, err
	}
	effStart, effEnd := m.toEff(m.rStart), m.toEff(m.rEnd)

	if m.transparent {
		ovec, partial, err := m.attempt(code, 0, len(m.text), effStart, m.boundOptions())
		if err != nil {
			return false, err
		}
		if ovec != nil && ovec[1] > m.rEnd {
			// The match ran past the region: retry against the truncated view.
			tovec, tpartial, terr := m.attempt(code, 0, effEnd, effStart, m.boundOptions())
			if terr != nil {
				return false, terr
			}
			ovec, partial = tovec, partial || tpartial
		}
		m.setResult(ovec, partial, false)
		return ovec != nil, nil
	}

	ovec, partial, err := m.attempt(code, effStart, effEnd, effStart, m.boundOptions())
	if err != nil {
		return false, err
	}
	m.setResult(ovec, partial, false)
	return ovec != nil, nil
}

// Find attempts to find the next subsequence of the region that matches the
// pattern, resuming after the previous match.
func (m *Matcher) Find() (bool, error) {
	resume := m.rStart
	lastEnd := -1
	if m.last != nil {
		resume = m.last[1]
		lastEnd = m.last[1]
		if resume < m.rStart {
			resume = m.rStart
		}
	}
	return m.findFrom(resume, lastEnd)
}

// FindAt is Find resuming from the given host offset, which must lie within
// the region.
func (m *Matcher) FindAt(offset int) (bool, error) {
	if offset < m.rStart || offset > m.rEnd {
		return false, ErrIndexOutOfBounds.New(offset)
	}
	m.last = nil
	return m.findFrom(offset, -1)
}

func (m *Matcher) findFrom(resume, lastEnd int) (bool, error) {
	sawPartial := false
	searchedToEnd := m.transparent || m.rEnd == len(m.units)
	for resume <= m.rEnd {
		ovec, partial, err := m.searchAt(resume)
		if err != nil {
			return false, err
		}
		sawPartial = sawPartial || partial
		if ovec == nil {
			break
		}
		if ovec[0] == ovec[1] && ovec[0] == lastEnd {
			// Zero-width match where the previous one ended: advance by one
			// unit (one code point on a surrogate boundary) and retry.
			resume = m.advanceUnit(resume)
			continue
		}
		m.setResult(ovec, sawPartial, searchedToEnd)
		return true, nil
	}
	m.setResult(nil, sawPartial, searchedToEnd)
	return false, nil
}

// searchAt finds the leftmost match starting at or after the host position
// start, honoring the region, the bound flags, and transparency.
func (m *Matcher) searchAt(start int) ([]int, bool, error) {
	effStart, effEnd := m.toEff(start), m.toEff(m.rEnd)
	sawPartial := false

	if m.transparent && m.anchoring {
		// Anchors must refer to the region while lookarounds see the whole
		// subject. The rewrite code ('^'→'\G', '$' dropped) is pinned to one
		// position per call, so walk the candidate positions; a '$' pattern
		// additionally requires the match to end at the region end.
		code, err := m.pat.anchor()
		if err != nil {
			return nil, false, err
		}
		if code != nil {
			for at := start; at <= m.rEnd; at = m.advanceUnit(at) {
				ovec, partial, err := m.attempt(code, 0, len(m.text), m.toEff(at), 0)
				if err != nil {
					return nil, false, err
				}
				sawPartial = sawPartial || partial
				if ovec != nil && (!m.pat.rewriteDollar || ovec[1] == m.rEnd) {
					return ovec, sawPartial, nil
				}
			}
			// No region-conforming anchored match; fall through to the plain
			// pattern, which handles anchor-free alternates.
		}
	}

	if !m.transparent {
		ovec, partial, err := m.attempt(m.pat.find(), m.toEff(m.rStart), effEnd, effStart, m.boundOptions())
		if err != nil {
			return nil, false, err
		}
		return ovec, sawPartial || partial, nil
	}

	// Transparent bounds: search the full subject and constrain matches to
	// the region afterwards.
	opts := m.boundOptions()
	for at := start; at <= m.rEnd; at = m.advanceUnit(at) {
		ovec, partial, err := m.attempt(m.pat.find(), 0, len(m.text), m.toEff(at), opts)
		if err != nil {
			return nil, false, err
		}
		sawPartial = sawPartial || partial
		if ovec == nil || ovec[0] > m.rEnd {
			return nil, sawPartial, nil
		}
		if ovec[1] <= m.rEnd {
			return ovec, sawPartial, nil
		}
		// The match runs past the region end: retry against the truncated
		// view, then advance one unit.
		tovec, tpartial, terr := m.attempt(m.pat.find(), 0, effEnd, m.toEff(at), opts)
		if terr != nil {
			return nil, false, terr
		}
		sawPartial = sawPartial || tpartial
		if tovec != nil && tovec[0] <= m.rEnd {
			return tovec, sawPartial, nil
		}
	}
	return nil, sawPartial, nil
}

func (m *Matcher) groupIndex(group []int) (int, error) {
	g := 0
	if len(group) > 0 {
		g = group[0]
	}
	if m.last == nil {
		return 0, ErrNoMatch.New()
	}
	if g < 0 || g > m.pat.groupCount {
		return 0, ErrGroupIndex.New(g)
	}
	return g, nil
}

func (m *Matcher) namedIndex(name string) (int, error) {
	n, ok := m.pat.groups[name]
	if !ok {
		return 0, ErrNoSuchGroup.New(name)
	}
	return n, nil
}

// Start returns the start index of the previous match, or of the given
// capture group. An unset group reports -1 with a nil error.
func (m *Matcher) Start(group ...int) (int, error) {
	g, err := m.groupIndex(group)
	if err != nil {
		return -1, err
	}
	return m.last[2*g], nil
}

// End returns the end index of the previous match, or of the given capture
// group. An unset group reports -1 with a nil error.
func (m *Matcher) End(group ...int) (int, error) {
	g, err := m.groupIndex(group)
	if err != nil {
		return -1, err
	}
	return m.last[2*g+1], nil
}

// Group returns the text matched by the previous match, or by the given
// capture group. An unset group reports "" with a nil error. The text is
// always in the subject's original form, even under CanonEq.
func (m *Matcher) Group(group ...int) (string, error) {
	g, err := m.groupIndex(group)
	if err != nil {
		return "", err
	}
	s, e := m.last[2*g], m.last[2*g+1]
	if s < 0 {
		return "", nil
	}
	return unitsToString(m.units[s:e]), nil
}

// StartNamed returns the start index of the named capture group.
func (m *Matcher) StartNamed(name string) (int, error) {
	n, err := m.namedIndex(name)
	if err != nil {
		return -1, err
	}
	return m.Start(n)
}

// EndNamed returns the end index of the named capture group.
func (m *Matcher) EndNamed(name string) (int, error) {
	n, err := m.namedIndex(name)
	if err != nil {
		return -1, err
	}
	return m.End(n)
}

// GroupNamed returns the text matched by the named capture group.
func (m *Matcher) GroupNamed(name string) (string, error) {
	n, err := m.namedIndex(name)
	if err != nil {
		return "", err
	}
	return m.Group(n)
}

// GroupCount returns the number of capturing groups in the matcher's pattern.
func (m *Matcher) GroupCount() int { return m.pat.groupCount }

// NamedGroups returns the pattern's name→group-number mapping.
func (m *Matcher) NamedGroups() map[string]int { return m.pat.NamedGroups() }

// Pattern returns the pattern interpreted by this matcher.
func (m *Matcher) Pattern() *Pattern { return m.pat }

// Reset clears the match state and restores the region to the whole subject.
// The bound flags and the hitEnd/requireEnd latches are preserved.
func (m *Matcher) Reset() *Matcher {
	m.last = nil
	m.appendPos = 0
	m.rStart, m.rEnd = 0, len(m.units)
	if m.pat.flags&CanonEq != 0 {
		m.canon = newCanonMap(m.subject)
		m.text = m.canon.nfd
	}
	return m
}

// ResetText resets the matcher with a new subject.
func (m *Matcher) ResetText(input string) *Matcher {
	m.setSubject(input)
	return m
}

// Region restricts searches to the half-open range [start, end) of the
// subject, clearing the match state. The bound flags are preserved.
func (m *Matcher) Region(start, end int) error {
	if start < 0 || start > len(m.units) {
		return ErrIndexOutOfBounds.New(start)
	}
	if end < 0 || end > len(m.units) {
		return ErrIndexOutOfBounds.New(end)
	}
	if start > end {
		return ErrIndexOutOfBounds.New(end)
	}
	m.Reset()
	m.rStart, m.rEnd = start, end
	return nil
}

// RegionStart returns the region's start index.
func (m *Matcher) RegionStart() int { return m.rStart }

// RegionEnd returns the region's end index.
func (m *Matcher) RegionEnd() int { return m.rEnd }

// UsePattern switches the matcher to a new pattern, resetting the match
// state and reconfiguring the resource limits. The subject is retained.
func (m *Matcher) UsePattern(p *Pattern) error {
	if p == nil {
		return ErrInvalidArgument.New("pattern must not be nil")
	}
	m.pat = p
	m.exec.close()
	m.configureLimits()
	m.setSubject(m.subject)
	return nil
}

// HasAnchoringBounds reports whether '^' and '$' match at the region
// boundaries (the default).
func (m *Matcher) HasAnchoringBounds() bool { return m.anchoring }

// UseAnchoringBounds toggles anchoring bounds.
func (m *Matcher) UseAnchoringBounds(b bool) *Matcher {
	m.anchoring = b
	return m
}

// HasTransparentBounds reports whether lookarounds and \b see the subject
// beyond the region (off by default).
func (m *Matcher) HasTransparentBounds() bool { return m.transparent }

// UseTransparentBounds toggles transparent bounds.
func (m *Matcher) UseTransparentBounds(b bool) *Matcher {
	m.transparent = b
	return m
}

// HitEnd reports whether the last match operation consumed input up to the
// subject end. The latch survives Reset.
func (m *Matcher) HitEnd() bool { return m.hitEnd }

// RequireEnd reports whether additional input could have turned the last
// successful match into a failure. The latch survives Reset.
func (m *Matcher) RequireEnd() bool { return m.requireEnd }

// ToMatchResult captures the current match state as an immutable snapshot,
// decoupled from further matcher mutation.
func (m *Matcher) ToMatchResult() *MatchResult {
	r := &MatchResult{
		subject:    m.subject,
		units:      m.units,
		groupCount: m.pat.groupCount,
		groups:     m.pat.groups,
	}
	if m.last != nil {
		r.ovec = make([]int, len(m.last))
		copy(r.ovec, m.last)
	}
	return r
}

// Results returns the remaining matches as a lazy, single-use sequence of
// snapshots. Iterating advances the matcher; a limit error ends the sequence
// after being yielded.
func (m *Matcher) Results() iter.Seq2[*MatchResult, error] {
	return func(yield func(*MatchResult, error) bool) {
		for {
			ok, err := m.Find()
			if err != nil {
				yield(nil, err)
				return
			}
			if !ok {
				return
			}
			if !yield(m.ToMatchResult(), nil) {
				return
			}
		}
	}
}

// String describes the matcher state.
func (m *Matcher) String() string {
	last := "null"
	if m.last != nil {
		last = fmt.Sprintf("[%d, %d]", m.last[0], m.last[1])
	}
	return fmt.Sprintf("Matcher[pattern=%s region=%d,%d lastMatchIndices=%s]",
		m.pat.expr, m.rStart, m.rEnd, last)
}
