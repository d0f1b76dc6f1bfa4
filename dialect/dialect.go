package dialect

import "errors"

// ErrInvalidIdentifier is returned for names that cannot be rendered as a quoted identifier.
var ErrInvalidIdentifier = errors.New("invalid identifier")

type Dialect interface {
	QuoteIdentifier(name string) string
	QuoteLiteral(value string) string
	ValidateIdentifier(name string) error
	Placeholder(n int) string
	Placeholders(start, n int) string
}
