package regex_test

import (
	"regexp"
	"testing"

	"github.com/alexey-pelykh/go-pcre2/pkg/regex"
)

func BenchmarkCompile(b *testing.B) {
	patterns := []string{
		`\b\w+@\w+\.\w+\b`,
		`p([a-z]+)ch`,
		`(?<=foo)bar`,
		`(\w+)\s+\1`,
	}

	for _, pattern := range patterns {
		b.Run(pattern, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				p, _ := regex.Compile(pattern)
				p.Close()
			}
		})
	}
}

func BenchmarkFind(b *testing.B) {
	tests := []struct {
		name    string
		pattern string
		text    string
	}{
		{"simple", `p([a-z]+)ch`, "peach punch pinch"},
		{"email", `\b\w+@\w+\.\w+\b`, "test@example.com"},
	}

	for _, tt := range tests {
		p := regex.MustCompile(tt.pattern)
		defer p.Close()
		re := regexp.MustCompile(tt.pattern)

		b.Run("pcre2/"+tt.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				m := p.Matcher(tt.text)
				for {
					ok, err := m.Find()
					if err != nil {
						b.Fatal(err)
					}
					if !ok {
						break
					}
				}
			}
		})

		b.Run("stdlib/"+tt.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				re.FindAllStringIndex(tt.text, -1)
			}
		})
	}
}

func BenchmarkReplaceAll(b *testing.B) {
	p := regex.MustCompile(`(\w+) (\w+)`)
	defer p.Close()

	b.Run("swap", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := p.Matcher("hello world").ReplaceAll("$2 $1"); err != nil {
				b.Fatal(err)
			}
		}
	})
}
