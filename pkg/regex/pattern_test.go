package regex_test

import (
	"reflect"
	"testing"

	pcre2 "github.com/alexey-pelykh/go-pcre2"
	"github.com/alexey-pelykh/go-pcre2/pkg/regex"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		wantErr bool
	}{
		{"empty pattern", "", false},
		{"valid pattern", "a+b", false},
		{"invalid pattern", "a[", true},
		{"lookbehind", `(?<=foo)bar`, false},
		{"backreference", `(\w+)\s+\1`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := regex.Compile(tt.pattern)
			if (err != nil) != tt.wantErr {
				t.Errorf("Compile() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if err == nil {
				p.Close()
			} else if _, ok := err.(*pcre2.CompileError); !ok {
				t.Errorf("Compile() error = %T, want *pcre2.CompileError", err)
			}
		})
	}
}

func TestCompileFlags(t *testing.T) {
	t.Run("unknown flag bits", func(t *testing.T) {
		_, err := regex.CompileFlags("a", regex.Flags(0x4000))
		if !regex.ErrInvalidArgument.Is(err) {
			t.Errorf("CompileFlags() error = %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		p := regex.MustCompileFlags("abc", regex.CaseInsensitive)
		defer p.Close()
		if ok, _ := p.Matcher("ABC").Matches(); !ok {
			t.Error("Matches(ABC) = false with CaseInsensitive")
		}
	})

	t.Run("dotall", func(t *testing.T) {
		p := regex.MustCompileFlags("a.b", regex.DotAll)
		defer p.Close()
		if ok, _ := p.Matcher("a\nb").Matches(); !ok {
			t.Error("Matches(a\\nb) = false with DotAll")
		}
	})

	t.Run("multiline", func(t *testing.T) {
		p := regex.MustCompileFlags("^b", regex.Multiline)
		defer p.Close()
		if ok, _ := p.Matcher("a\nb").Find(); !ok {
			t.Error("Find() = false with Multiline")
		}
	})

	t.Run("literal", func(t *testing.T) {
		p := regex.MustCompileFlags("a.b", regex.Literal)
		defer p.Close()
		if ok, _ := p.Matcher("a.b").Matches(); !ok {
			t.Error("Matches(a.b) = false with Literal")
		}
		if ok, _ := p.Matcher("axb").Matches(); ok {
			t.Error("Matches(axb) = true with Literal")
		}
	})

	t.Run("comments", func(t *testing.T) {
		p := regex.MustCompileFlags("a b  # trailing comment", regex.Comments)
		defer p.Close()
		if ok, _ := p.Matcher("ab").Matches(); !ok {
			t.Error("Matches(ab) = false with Comments")
		}
	})
}

func TestStaticMatches(t *testing.T) {
	ok, err := regex.Matches(`\d+`, "123")
	if err != nil || !ok {
		t.Errorf("Matches() = %v, %v, want true", ok, err)
	}
	ok, err = regex.Matches(`\d+`, "12a")
	if err != nil || ok {
		t.Errorf("Matches() = %v, %v, want false", ok, err)
	}
}

func TestNamedGroups(t *testing.T) {
	p := regex.MustCompile(`(?<year>\d{4})-(?<month>\d{2})-(\d{2})`)
	defer p.Close()

	got := p.NamedGroups()
	want := map[string]int{"year": 1, "month": 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NamedGroups() = %v, want %v", got, want)
	}
	if p.GroupCount() != 3 {
		t.Errorf("GroupCount() = %d, want 3", p.GroupCount())
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		input   string
		limit   int
		want    []string
	}{
		{"basic", ",", "a,b,c", 0, []string{"a", "b", "c"}},
		{"trailing empties removed", ",", "a,b,,", 0, []string{"a", "b"}},
		{"trailing empties kept", ",", "a,b,,", -1, []string{"a", "b", "", ""}},
		{"limited", ",", "a,b,c", 2, []string{"a", "b,c"}},
		{"limit one", ",", "a,b,c", 1, []string{"a,b,c"}},
		{"no match", ",", "abc", 0, []string{"abc"}},
		{"empty input", ",", "", 0, []string{""}},
		{"zero-width pattern", "", "abc", 0, []string{"a", "b", "c"}},
		{"leading delimiter", ",", ",a", 0, []string{"", "a"}},
		{"whitespace", `\s+`, "foo bar  baz", 0, []string{"foo", "bar", "baz"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := regex.MustCompile(tt.pattern)
			defer p.Close()

			got := p.SplitN(tt.input, tt.limit)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitN(%q, %d) = %q, want %q", tt.input, tt.limit, got, tt.want)
			}
		})
	}
}

func TestSplitWithDelimiters(t *testing.T) {
	p := regex.MustCompile(",")
	defer p.Close()

	got := p.SplitWithDelimiters("a,b,c", -1)
	want := []string{"a", ",", "b", ",", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitWithDelimiters() = %q, want %q", got, want)
	}
}

func TestSplitSeq(t *testing.T) {
	p := regex.MustCompile(",")
	defer p.Close()

	var got []string
	for piece := range p.SplitSeq("a,b,c") {
		got = append(got, piece)
	}
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitSeq() yielded %q, want %q", got, want)
	}
}

func TestPredicates(t *testing.T) {
	p := regex.MustCompile(`\d+`)
	defer p.Close()

	find := p.AsPredicate()
	match := p.AsMatchPredicate()

	if !find("a1b") {
		t.Error("AsPredicate()(a1b) = false, want true")
	}
	if match("a1b") {
		t.Error("AsMatchPredicate()(a1b) = true, want false")
	}
	if !match("123") {
		t.Error("AsMatchPredicate()(123) = false, want true")
	}
}

func TestQuote(t *testing.T) {
	tests := []string{
		"plain",
		"a.b*c",
		`back\slash`,
		`embedded \E escape`,
		`\Q and \E both`,
		"",
	}

	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			p, err := regex.Compile(regex.Quote(s))
			if err != nil {
				t.Fatalf("Compile(Quote(%q)) error = %v", s, err)
			}
			defer p.Close()

			ok, err := p.Matcher(s).Matches()
			if err != nil {
				t.Fatalf("Matches() error = %v", err)
			}
			if !ok {
				t.Errorf("Compile(Quote(%q)).Matcher(%q).Matches() = false", s, s)
			}
		})
	}
}

func TestBuilder(t *testing.T) {
	t.Run("negative limits rejected", func(t *testing.T) {
		for _, build := range map[string]*regex.Builder{
			"match": regex.NewBuilder("a").MatchLimit(-1),
			"depth": regex.NewBuilder("a").DepthLimit(-2),
			"heap":  regex.NewBuilder("a").HeapLimit(-3),
		} {
			if _, err := build.Compile(); !regex.ErrInvalidArgument.Is(err) {
				t.Errorf("Compile() error = %v, want ErrInvalidArgument", err)
			}
		}
	})

	t.Run("flags applied", func(t *testing.T) {
		p, err := regex.NewBuilder("abc").Flags(regex.CaseInsensitive).Compile()
		if err != nil {
			t.Fatal(err)
		}
		defer p.Close()
		if p.Flags() != regex.CaseInsensitive {
			t.Errorf("Flags() = %v, want CaseInsensitive", p.Flags())
		}
		if ok, _ := p.Matcher("ABC").Matches(); !ok {
			t.Error("Matches(ABC) = false")
		}
	})
}

func TestPatternString(t *testing.T) {
	const expr = `p([a-z]+)ch`
	p := regex.MustCompile(expr)
	defer p.Close()

	if got := p.String(); got != expr {
		t.Errorf("String() = %q, want %q", got, expr)
	}
}

func TestUnicodeCaseIsNoOp(t *testing.T) {
	// UTF mode always folds case; the Kelvin sign matches "k" either way.
	for _, flags := range []regex.Flags{regex.CaseInsensitive, regex.CaseInsensitive | regex.UnicodeCase} {
		p := regex.MustCompileFlags("\u212a", flags)
		ok, err := p.Matcher("k").Matches()
		p.Close()
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Errorf("Matches(k) = false with flags %v", flags)
		}
	}
}
