package network

import (
	"fmt"
	"strconv"
	"strings"
)

const sectionCount = 3

const (
	objectSection = iota + 1
	relationSection
	factSection
)

type sectionLine struct {
	number int
	text   string
}

type section struct {
	lines []sectionLine
}

// ParseDomain parses the full text of a description into its objects,
// relation definitions and facts. It does not check that facts refer to
// declared objects and relations; New does.
func ParseDomain(text string) (*Domain, error) {
	sections, err := splitSections(text)
	if err != nil {
		return nil, err
	}

	var d Domain
	if d.Objects, err = parseObjects(sections[objectSection]); err != nil {
		return nil, err
	}
	if d.Relations, err = parseRelations(sections[relationSection]); err != nil {
		return nil, err
	}
	if d.Facts, err = parseFacts(sections[factSection]); err != nil {
		return nil, err
	}
	return &d, nil
}

// headerNumber returns the section number of a "#<n>" header line.
func headerNumber(line string) (int, bool) {
	if !strings.HasPrefix(line, "#") {
		return 0, false
	}
	rest := line[1:]
	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(rest[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func splitSections(text string) (map[int]*section, error) {
	sections := map[int]*section{}
	var current *section
	last := 0

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for idx, raw := range lines {
		line := strings.TrimSpace(raw)
		lineNo := idx + 1

		if n, ok := headerNumber(line); ok {
			switch {
			case n < 1 || n > sectionCount:
				return nil, &RecordError{Section: last, Line: lineNo, Text: line, Reason: "unknown section"}
			case sections[n] != nil:
				return nil, &RecordError{Section: n, Line: lineNo, Text: line, Reason: "section repeated"}
			case n < last:
				return nil, &RecordError{Section: n, Line: lineNo, Text: line, Reason: "section out of order"}
			}
			current = &section{}
			sections[n] = current
			last = n
			continue
		}

		// blank lines, comments and anything before the first header
		if current == nil || line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		current.lines = append(current.lines, sectionLine{number: lineNo, text: line})
	}

	for n := 1; n <= sectionCount; n++ {
		if sections[n] == nil {
			return nil, fmt.Errorf("%w: unable to find section #%d", ErrMissingSection, n)
		}
	}
	return sections, nil
}

func splitFields(sec int, l sectionLine, want int) ([]string, error) {
	fields := strings.Split(l.text, ":")
	if len(fields) != want {
		return nil, &RecordError{
			Section: sec,
			Line:    l.number,
			Text:    l.text,
			Reason:  fmt.Sprintf("expected %d fields, got %d", want, len(fields)),
		}
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields, nil
}

func atoi(sec int, l sectionLine, field, what string) (int, error) {
	v, err := strconv.Atoi(field)
	if err != nil {
		return 0, &RecordError{
			Section: sec,
			Line:    l.number,
			Text:    l.text,
			Reason:  fmt.Sprintf("%s %q is not an integer", what, field),
		}
	}
	return v, nil
}

func parseObjects(s *section) ([]Object, error) {
	seen := map[int]bool{}
	objects := make([]Object, 0, len(s.lines))
	for _, l := range s.lines {
		fields, err := splitFields(objectSection, l, 2)
		if err != nil {
			return nil, err
		}
		key, err := atoi(objectSection, l, fields[0], "object key")
		if err != nil {
			return nil, err
		}
		if fields[1] == "" {
			return nil, &RecordError{Section: objectSection, Line: l.number, Text: l.text, Reason: "empty object name"}
		}
		if seen[key] {
			return nil, &RecordError{Section: objectSection, Line: l.number, Text: l.text, Reason: fmt.Sprintf("object %d declared twice", key)}
		}
		seen[key] = true
		objects = append(objects, Object{Key: key, Name: fields[1]})
	}
	return objects, nil
}

func parseRelations(s *section) ([]Relation, error) {
	seen := map[int]bool{}
	relations := make([]Relation, 0, len(s.lines))
	for _, l := range s.lines {
		fields, err := splitFields(relationSection, l, 3)
		if err != nil {
			return nil, err
		}
		id, err := atoi(relationSection, l, fields[0], "relation id")
		if err != nil {
			return nil, err
		}
		typ, err := atoi(relationSection, l, fields[2], "relation type")
		if err != nil {
			return nil, err
		}
		switch {
		case id < 0:
			return nil, &RecordError{Section: relationSection, Line: l.number, Text: l.text, Reason: "relation id must not be negative"}
		case fields[1] == "":
			return nil, &RecordError{Section: relationSection, Line: l.number, Text: l.text, Reason: "empty relation name"}
		case seen[id]:
			return nil, &RecordError{Section: relationSection, Line: l.number, Text: l.text, Reason: fmt.Sprintf("relation %d declared twice", id)}
		}
		seen[id] = true
		relations = append(relations, Relation{ID: id, Name: fields[1], Type: typ})
	}
	return relations, nil
}

func parseFacts(s *section) ([]Fact, error) {
	facts := make([]Fact, 0, len(s.lines))
	for _, l := range s.lines {
		fields, err := splitFields(factSection, l, 3)
		if err != nil {
			return nil, err
		}
		var ints [3]int
		for i, what := range [3]string{"subject key", "relation id", "object key"} {
			if ints[i], err = atoi(factSection, l, fields[i], what); err != nil {
				return nil, err
			}
		}
		facts = append(facts, Fact{LHS: ints[0], Relation: ints[1], RHS: ints[2]})
	}
	return facts, nil
}
