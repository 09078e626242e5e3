package regex

// MatchResult is an immutable snapshot of a match, captured by
// [Matcher.ToMatchResult]. Its accessors mirror the matcher's but operate on
// the frozen ovector; further matcher mutation is not observed.
type MatchResult struct {
	subject    string
	units      []uint16
	ovec       []int // nil when captured without a current match
	groupCount int
	groups     map[string]int
}

// HasMatch reports whether the snapshot holds a match.
func (r *MatchResult) HasMatch() bool { return r.ovec != nil }

func (r *MatchResult) groupIndex(group []int) (int, error) {
	g := 0
	if len(group) > 0 {
		g = group[0]
	}
	if r.ovec == nil {
		return 0, ErrNoMatch.New()
	}
	if g < 0 || g > r.groupCount {
		return 0, ErrGroupIndex.New(g)
	}
	return g, nil
}

// Start returns the start index of the match, or of the given capture group.
func (r *MatchResult) Start(group ...int) (int, error) {
	g, err := r.groupIndex(group)
	if err != nil {
		return -1, err
	}
	return r.ovec[2*g], nil
}

// End returns the end index of the match, or of the given capture group.
func (r *MatchResult) End(group ...int) (int, error) {
	g, err := r.groupIndex(group)
	if err != nil {
		return -1, err
	}
	return r.ovec[2*g+1], nil
}

// Group returns the text of the match, or of the given capture group. An
// unset group reports "" with a nil error.
func (r *MatchResult) Group(group ...int) (string, error) {
	g, err := r.groupIndex(group)
	if err != nil {
		return "", err
	}
	s, e := r.ovec[2*g], r.ovec[2*g+1]
	if s < 0 {
		return "", nil
	}
	return unitsToString(r.units[s:e]), nil
}

// StartNamed returns the start index of the named capture group.
func (r *MatchResult) StartNamed(name string) (int, error) {
	n, ok := r.groups[name]
	if !ok {
		return -1, ErrNoSuchGroup.New(name)
	}
	return r.Start(n)
}

// EndNamed returns the end index of the named capture group.
func (r *MatchResult) EndNamed(name string) (int, error) {
	n, ok := r.groups[name]
	if !ok {
		return -1, ErrNoSuchGroup.New(name)
	}
	return r.End(n)
}

// GroupNamed returns the text of the named capture group.
func (r *MatchResult) GroupNamed(name string) (string, error) {
	n, ok := r.groups[name]
	if !ok {
		return "", ErrNoSuchGroup.New(name)
	}
	return r.Group(n)
}

// GroupCount returns the number of capturing groups in the pattern the
// snapshot was taken from.
func (r *MatchResult) GroupCount() int { return r.groupCount }
