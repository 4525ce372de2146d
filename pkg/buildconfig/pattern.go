package buildconfig

import (
	"fmt"
	"sync"
	"time"

	"github.com/dlclark/regexp2"
)

// matchTimeout bounds a single pattern evaluation. ECMAScript patterns
// allow backtracking constructs that the RE2 engine rejects.
const matchTimeout = 100 * time.Millisecond

// compiled patterns are interned by source so that two resolutions of
// the same declaration yield structurally equal configurations.
var patternCache sync.Map // string -> *regexp2.Regexp

// URLPattern is a compiled ECMAScript regular expression matched against
// request URLs. The zero value matches nothing.
type URLPattern struct {
	source string
	re     *regexp2.Regexp
}

// CompileURLPattern compiles source with JavaScript regex semantics.
func CompileURLPattern(source string) (URLPattern, error) {
	if source == "" {
		return URLPattern{}, fmt.Errorf("pattern is empty")
	}
	if cached, ok := patternCache.Load(source); ok {
		return URLPattern{source: source, re: cached.(*regexp2.Regexp)}, nil
	}
	re, err := regexp2.Compile(source, regexp2.ECMAScript)
	if err != nil {
		return URLPattern{}, fmt.Errorf("invalid pattern %q: %w", source, err)
	}
	re.MatchTimeout = matchTimeout
	actual, _ := patternCache.LoadOrStore(source, re)
	return URLPattern{source: source, re: actual.(*regexp2.Regexp)}, nil
}

// MustCompileURLPattern is like CompileURLPattern but panics on error.
func MustCompileURLPattern(source string) URLPattern {
	p, err := CompileURLPattern(source)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the pattern source.
func (p URLPattern) String() string {
	return p.source
}

// MatchString reports whether url matches. Evaluation errors (timeouts)
// count as no match.
func (p URLPattern) MatchString(url string) bool {
	if p.re == nil {
		return false
	}
	ok, err := p.re.MatchString(url)
	return err == nil && ok
}

// MarshalText renders the pattern as its source.
func (p URLPattern) MarshalText() ([]byte, error) {
	return []byte(p.source), nil
}

// UnmarshalText compiles the pattern from its source.
func (p *URLPattern) UnmarshalText(text []byte) error {
	compiled, err := CompileURLPattern(string(text))
	if err != nil {
		return err
	}
	*p = compiled
	return nil
}
