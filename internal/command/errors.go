package command

import "fmt"

// Kind classifies a parse failure so callers can branch on the category
// without matching message text.
type Kind int

const (
	// InvalidSyntax marks a recognized verb with missing or malformed arguments.
	InvalidSyntax Kind = iota
	// NoActiveOrder marks a verb that needs an open order when none exists.
	NoActiveOrder
	// AmbiguousOrderName marks an omitted order name that cannot be inferred
	// because several orders are open.
	AmbiguousOrderName
	// OrderNotFound marks an explicit order name that matches no open order.
	OrderNotFound
	// UnknownCommand marks text that is not a recognized command at all.
	UnknownCommand
)

// ParseError is a user-facing parse failure. Message is ready to send back
// to the conversation verbatim.
type ParseError struct {
	Kind    Kind
	Message string
}

func (e *ParseError) Error() string { return e.Message }

func parseErr(kind Kind, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
