package model

import (
	"fmt"
	"strings"
)

// LoadErrors aggregates every parse and validation failure for one load
// attempt. The model is never partially exposed: any entry means the whole
// file was rejected.
type LoadErrors []error

func (e LoadErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d configuration errors:\n%s", len(e), strings.Join(msgs, "\n"))
}

// Unwrap exposes the individual errors to errors.Is/errors.As.
func (e LoadErrors) Unwrap() []error { return e }

// ConflictingMassSpecificationError reports a modification that supplies
// both MASS and DELTAMASS (or neither).
type ConflictingMassSpecificationError struct {
	Line   int
	Symbol string
	Detail string
}

func (e *ConflictingMassSpecificationError) Error() string {
	return fmt.Sprintf("line %d: modification %q: %s", e.Line, e.Symbol, e.Detail)
}

// InvalidResidueSymbolError reports a residue token that is not a single
// uppercase letter or one of the literals nterm/cterm/X.
type InvalidResidueSymbolError struct {
	Line  int
	Token string
}

func (e *InvalidResidueSymbolError) Error() string {
	return fmt.Sprintf("line %d: invalid residue symbol %q", e.Line, e.Token)
}

// InvalidPenaltyError reports a linkage penalty outside [0,1].
type InvalidPenaltyError struct {
	Line    int
	Residue string
	Penalty float64
}

func (e *InvalidPenaltyError) Error() string {
	return fmt.Sprintf("line %d: residue %q: penalty %v outside [0,1]", e.Line, e.Residue, e.Penalty)
}

// InvalidNumericValueError reports a numeric field that is unparsable,
// non-finite or outside its allowed range.
type InvalidNumericValueError struct {
	Line  int
	Field string
	Value string
}

func (e *InvalidNumericValueError) Error() string {
	return fmt.Sprintf("line %d: field %q: invalid numeric value %q", e.Line, e.Field, e.Value)
}

// DuplicateDefinitionError reports a second definition of a uniquely-keyed
// entity. Later directives never override earlier ones.
type DuplicateDefinitionError struct {
	Line   int
	Entity string
	Key    string
}

func (e *DuplicateDefinitionError) Error() string {
	return fmt.Sprintf("line %d: duplicate %s definition %q", e.Line, e.Entity, e.Key)
}

// ValidationError reports a cross-directive consistency failure that is not
// tied to a single line, such as an empty fragment ion set.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
