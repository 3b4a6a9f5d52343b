package network

import (
	"errors"
	"fmt"
)

var (
	ErrMissingSection    = errors.New("missing section")
	ErrMalformedRecord   = errors.New("malformed record")
	ErrUnknownIdentifier = errors.New("unknown identifier")
	ErrInvalidPattern    = errors.New("invalid pattern")
	ErrDuplicateFact     = errors.New("duplicate fact")
)

// RecordError describes a line of the description that could not be parsed.
type RecordError struct {
	Section int
	Line    int
	Text    string
	Reason  string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s: section %d, line %d %q: %s", ErrMalformedRecord, e.Section, e.Line, e.Text, e.Reason)
}

func (e *RecordError) Unwrap() error {
	return ErrMalformedRecord
}

type IdentifierKind string

const (
	ObjectKind   IdentifierKind = "object"
	RelationKind IdentifierKind = "relation"
)

// IdentifierError reports an object key or relation id that was never
// declared.
type IdentifierError struct {
	Kind IdentifierKind
	ID   int
}

func (e *IdentifierError) Error() string {
	return fmt.Sprintf("%s: %s %d", ErrUnknownIdentifier, e.Kind, e.ID)
}

func (e *IdentifierError) Unwrap() error {
	return ErrUnknownIdentifier
}
