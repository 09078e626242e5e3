// Package regex exposes a compile-once, search-many Pattern/Matcher surface
// on top of the PCRE2 engine. A [Pattern] is an immutable compiled regular
// expression, safe to share across goroutines; a [Matcher] carries the
// per-search state (subject, region, last match) and belongs to a single
// goroutine at a time.
//
// All indices on this API are UTF-16 code-unit indices into the subject.
// Surrogate pairs therefore count as two units, matching the host coordinate
// model the facade reproduces.
//
// Known divergence: UTF mode always enables Unicode case folding, so
// [UnicodeCase] is a no-op. A case-insensitive match of U+212A (Kelvin sign)
// against "k" succeeds even without the flag.
package regex

import (
	"fmt"
	"iter"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	pcre2 "github.com/alexey-pelykh/go-pcre2"
	"golang.org/x/text/unicode/norm"
)

// Pattern is an immutable compiled regular expression.
type Pattern struct {
	expr  string
	flags Flags

	// Per-pattern resource limits; -1 means "use the process configuration".
	matchLimit int64
	depthLimit int64
	heapLimit  int64

	// source is the text actually handed to PCRE2: the NFD form of expr when
	// CanonEq is set, expr itself otherwise.
	source string

	groupCount     int
	groups         map[string]int
	requireEndTail bool

	// Anchoring-bounds rewrite, precomputed from source (empty when the
	// pattern has no top-level anchors or is literal).
	rewritten     string
	rewriteDollar bool

	// findCode is compiled eagerly so that pattern errors surface at
	// construction. The variants cannot fail afterwards: they compile the
	// same source with added anchoring options.
	findCode      *pcre2.Code
	mu            sync.Mutex
	matchesCode   atomic.Pointer[pcre2.Code]
	lookingAtCode atomic.Pointer[pcre2.Code]
	anchorCode    atomic.Pointer[pcre2.Code]
}

// Compile compiles expr with no flags.
func Compile(expr string) (*Pattern, error) {
	return CompileFlags(expr, 0)
}

// CompileFlags compiles expr with the given flags.
func CompileFlags(expr string, flags Flags) (*Pattern, error) {
	if flags&^allFlags != 0 {
		return nil, ErrInvalidArgument.New(fmt.Sprintf("unknown flag bits 0x%x", int(flags&^allFlags)))
	}

	p := &Pattern{
		expr:       expr,
		flags:      flags,
		matchLimit: -1,
		depthLimit: -1,
		heapLimit:  -1,
		source:     expr,
	}
	if flags&CanonEq != 0 {
		p.source = norm.NFD.String(expr)
	}
	if flags&Literal == 0 {
		p.requireEndTail = tailCouldRequireEnd(p.source)
		if hasTopLevelAnchors(p.source) {
			p.rewritten, _, p.rewriteDollar = rewriteAnchors(p.source)
		}
	}

	code, err := p.compileVariant(0)
	if err != nil {
		return nil, err
	}
	p.findCode = code
	p.groupCount = code.CaptureCount()
	p.groups = code.NameTable()

	runtime.SetFinalizer(p, (*Pattern).Close)
	return p, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string) *Pattern {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// MustCompileFlags is like CompileFlags but panics on error.
func MustCompileFlags(expr string, flags Flags) *Pattern {
	p, err := CompileFlags(expr, flags)
	if err != nil {
		panic(err)
	}
	return p
}

// Matches compiles expr and reports whether it matches the whole input.
func Matches(expr, input string) (bool, error) {
	p, err := Compile(expr)
	if err != nil {
		return false, err
	}
	defer p.Close()
	return p.Matcher(input).Matches()
}

// Close frees the compiled PCRE2 codes. The pattern must not be used after
// Close; a finalizer releases the codes if Close is never called.
func (p *Pattern) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.findCode != nil {
		p.findCode.Close()
		p.findCode = nil
	}
	for _, c := range []*atomic.Pointer[pcre2.Code]{&p.matchesCode, &p.lookingAtCode, &p.anchorCode} {
		if code := c.Swap(nil); code != nil {
			code.Close()
		}
	}
	runtime.SetFinalizer(p, nil)
}

// compileVariant compiles source with the pattern's base options plus extra.
func (p *Pattern) compileVariant(extra uint32) (*pcre2.Code, error) {
	return p.compileSource(p.source, extra)
}

func (p *Pattern) compileSource(source string, extra uint32) (*pcre2.Code, error) {
	cctx := pcre2.NewCompileContext()
	defer cctx.Close()
	cctx.SetNewline(p.flags.newline())

	code, err := pcre2.Compile([]byte(source), p.flags.compileOptions()|extra, cctx)
	if err != nil {
		return nil, err
	}

	cfg := loadSettings()
	if cfg.jit && p.depthLimit < 0 && p.heapLimit < 0 && cfg.depthLimit < 0 && cfg.heapLimit < 0 {
		// Best effort; matching falls back to the interpreter on failure.
		_ = code.JITCompile(0)
	}
	return code, nil
}

// variant returns a lazily compiled code under double-checked publication:
// readers either observe a fully constructed code or take the lock and build
// it; all results are content-equivalent.
func (p *Pattern) variant(slot *atomic.Pointer[pcre2.Code], build func() (*pcre2.Code, error)) (*pcre2.Code, error) {
	if code := slot.Load(); code != nil {
		return code, nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if code := slot.Load(); code != nil {
		return code, nil
	}
	code, err := build()
	if err != nil {
		return nil, err
	}
	slot.Store(code)
	return code, nil
}

func (p *Pattern) find() *pcre2.Code { return p.findCode }

func (p *Pattern) matches() (*pcre2.Code, error) {
	return p.variant(&p.matchesCode, func() (*pcre2.Code, error) {
		return p.compileVariant(pcre2.ANCHORED | pcre2.ENDANCHORED)
	})
}

func (p *Pattern) lookingAt() (*pcre2.Code, error) {
	return p.variant(&p.lookingAtCode, func() (*pcre2.Code, error) {
		return p.compileVariant(pcre2.ANCHORED)
	})
}

// anchor returns the anchoring-bounds rewrite code, or nil when the pattern
// has no top-level anchors.
func (p *Pattern) anchor() (*pcre2.Code, error) {
	if p.rewritten == "" && !p.rewriteDollar {
		return nil, nil
	}
	return p.variant(&p.anchorCode, func() (*pcre2.Code, error) {
		return p.compileSource(p.rewritten, 0)
	})
}

// String returns the pattern's source text.
func (p *Pattern) String() string { return p.expr }

// Flags returns the flags the pattern was compiled with.
func (p *Pattern) Flags() Flags { return p.flags }

// GroupCount returns the number of capturing groups in the pattern.
func (p *Pattern) GroupCount() int { return p.groupCount }

// NamedGroups returns the mapping from capture group names to 1-based group
// numbers. The returned map is a copy.
func (p *Pattern) NamedGroups() map[string]int {
	out := make(map[string]int, len(p.groups))
	for name, n := range p.groups {
		out[name] = n
	}
	return out
}

// Matcher returns a fresh matcher over input.
func (p *Pattern) Matcher(input string) *Matcher {
	return newMatcher(p, input)
}

// AsPredicate returns a predicate that tests whether the pattern is found
// anywhere in its argument.
func (p *Pattern) AsPredicate() func(string) bool {
	return func(s string) bool {
		ok, err := p.Matcher(s).Find()
		return err == nil && ok
	}
}

// AsMatchPredicate returns a predicate that tests whether the pattern
// matches its whole argument.
func (p *Pattern) AsMatchPredicate() func(string) bool {
	return func(s string) bool {
		ok, err := p.Matcher(s).Matches()
		return err == nil && ok
	}
}

// Split splits input around matches of the pattern, removing trailing empty
// pieces.
func (p *Pattern) Split(input string) []string {
	return p.SplitN(input, 0)
}

// SplitN splits input around matches of the pattern. A positive limit caps
// the number of pieces (the last piece holds the unsplit remainder); zero
// means no cap with trailing empty pieces removed; a negative limit means no
// cap with trailing empty pieces kept.
func (p *Pattern) SplitN(input string, limit int) []string {
	return p.split(input, limit, false)
}

// SplitWithDelimiters is SplitN with the matched delimiters interleaved
// between the pieces.
func (p *Pattern) SplitWithDelimiters(input string, limit int) []string {
	return p.split(input, limit, true)
}

// SplitSeq returns the pieces of Split(input) as a single-use sequence.
func (p *Pattern) SplitSeq(input string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, piece := range p.Split(input) {
			if !yield(piece) {
				return
			}
		}
	}
}

func (p *Pattern) split(input string, limit int, withDelimiters bool) []string {
	units := stringToUnits(input)
	m := p.Matcher(input)
	limited := limit > 0

	var pieces []string
	matches := 0
	index := 0
	for {
		ok, err := m.Find()
		if err != nil || !ok {
			break
		}
		start, _ := m.Start()
		end, _ := m.End()
		if !limited || matches < limit-1 {
			if index == 0 && start == 0 && end == 0 {
				// A zero-width match at the beginning never produces an
				// empty leading piece.
				continue
			}
			pieces = append(pieces, unitsToString(units[index:start]))
			if withDelimiters {
				delim, _ := m.Group()
				pieces = append(pieces, delim)
			}
			matches++
			index = end
		} else {
			break
		}
	}

	if index == 0 {
		// No match: the result is the whole input.
		return []string{input}
	}
	if !limited || matches < limit {
		pieces = append(pieces, unitsToString(units[index:]))
	}
	if limit == 0 {
		for len(pieces) > 0 && pieces[len(pieces)-1] == "" {
			pieces = pieces[:len(pieces)-1]
		}
	}
	return pieces
}

// Quote returns a literal pattern that matches s exactly, wrapping it in
// \Q...\E and splitting around any embedded \E.
func Quote(s string) string {
	if !strings.Contains(s, `\E`) {
		return `\Q` + s + `\E`
	}
	var b strings.Builder
	b.Grow(len(s) + 16)
	b.WriteString(`\Q`)
	for {
		i := strings.Index(s, `\E`)
		if i < 0 {
			break
		}
		b.WriteString(s[:i])
		b.WriteString(`\E\\E\Q`)
		s = s[i+2:]
	}
	b.WriteString(s)
	b.WriteString(`\E`)
	return b.String()
}

// Builder configures a pattern before compilation. Zero or more settings are
// applied, then Compile validates and builds the pattern.
type Builder struct {
	expr       string
	flags      Flags
	matchLimit *int
	depthLimit *int
	heapLimit  *int
}

// NewBuilder starts a builder for expr.
func NewBuilder(expr string) *Builder {
	return &Builder{expr: expr}
}

// Flags sets the compile flags.
func (b *Builder) Flags(f Flags) *Builder {
	b.flags = f
	return b
}

// MatchLimit bounds the number of internal matching steps.
func (b *Builder) MatchLimit(n int) *Builder {
	b.matchLimit = &n
	return b
}

// DepthLimit bounds the backtracking depth. Setting it forces the
// interpreter, as the limit is not enforced under JIT.
func (b *Builder) DepthLimit(n int) *Builder {
	b.depthLimit = &n
	return b
}

// HeapLimit bounds match-time heap usage in KiB. Setting it forces the
// interpreter.
func (b *Builder) HeapLimit(n int) *Builder {
	b.heapLimit = &n
	return b
}

// Compile validates the builder settings and compiles the pattern.
func (b *Builder) Compile() (*Pattern, error) {
	for _, l := range []struct {
		name  string
		value *int
	}{
		{"match limit", b.matchLimit},
		{"depth limit", b.depthLimit},
		{"heap limit", b.heapLimit},
	} {
		if l.value != nil && *l.value < 0 {
			return nil, ErrInvalidArgument.New(fmt.Sprintf("negative %s: %d", l.name, *l.value))
		}
	}

	p, err := CompileFlags(b.expr, b.flags)
	if err != nil {
		return nil, err
	}
	if b.matchLimit != nil {
		p.matchLimit = int64(*b.matchLimit)
	}
	if b.depthLimit != nil {
		p.depthLimit = int64(*b.depthLimit)
	}
	if b.heapLimit != nil {
		p.heapLimit = int64(*b.heapLimit)
	}
	return p, nil
}
