package directive

import "fmt"

// UnknownDirectiveError reports a line whose key is not a recognized
// directive.
type UnknownDirectiveError struct {
	Line int
	Key  string
}

func (e *UnknownDirectiveError) Error() string {
	return fmt.Sprintf("line %d: unknown directive %q", e.Line, e.Key)
}

// MalformedDirectiveError reports a line that matched a known directive key
// but whose payload does not follow the directive grammar.
type MalformedDirectiveError struct {
	Line   int
	Detail string
}

func (e *MalformedDirectiveError) Error() string {
	return fmt.Sprintf("line %d: malformed directive: %s", e.Line, e.Detail)
}
