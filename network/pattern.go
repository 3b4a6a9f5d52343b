package network

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Pattern is a parsed A:B:C query. Each term is an integer or the
// wildcard "?".
type Pattern struct {
	Subject  *Term `@@ ":"`
	Relation *Term `@@ ":"`
	Object   *Term `@@`
}

type Term struct {
	Wildcard bool    `  @"?"`
	Negative bool    `| ( @"-"?`
	Value    decimal `    @Int )`
}

// decimal reads digits in base 10 only, the way keys in a description
// file are read; "010" is ten.
type decimal int

func (d *decimal) Capture(values []string) error {
	v, err := strconv.Atoi(strings.Join(values, ""))
	if err != nil {
		return err
	}
	*d = decimal(v)
	return nil
}

var patternLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[-:?]`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

var patternParser = participle.MustBuild[Pattern](
	participle.Lexer(patternLexer),
	participle.Elide("Whitespace"),
)

// ParsePattern parses query text such as "1:?:3".
func ParsePattern(s string) (*Pattern, error) {
	p, err := patternParser.ParseString("", strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %s", ErrInvalidPattern, s, err)
	}
	return p, nil
}

// Concrete returns a term naming a single id.
func Concrete(v int) *Term {
	if v < 0 {
		return &Term{Negative: true, Value: decimal(-v)}
	}
	return &Term{Value: decimal(v)}
}

func Wildcard() *Term {
	return &Term{Wildcard: true}
}

func (t *Term) Int() int {
	if t.Negative {
		return -int(t.Value)
	}
	return int(t.Value)
}

func (t *Term) String() string {
	if t.Wildcard {
		return "?"
	}
	return strconv.Itoa(t.Int())
}

// Concrete reports whether no term of the pattern is a wildcard.
func (p *Pattern) Concrete() bool {
	return !p.Subject.Wildcard && !p.Relation.Wildcard && !p.Object.Wildcard
}

// String returns the canonical form of the pattern.
func (p *Pattern) String() string {
	return p.Subject.String() + ":" + p.Relation.String() + ":" + p.Object.String()
}
