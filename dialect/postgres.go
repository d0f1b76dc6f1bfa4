package dialect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

// MaxIdentifierLength is NAMEDATALEN-1; longer names are silently truncated by the server.
const MaxIdentifierLength = 63

type Postgres struct{}

func NewPostgresDialect() Dialect {
	return &Postgres{}
}

// QuoteIdentifier renders name as a single quoted identifier. Dots are part of the
// name, not schema separators.
func (p Postgres) QuoteIdentifier(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// QuoteLiteral renders value as a standard conforming string literal.
func (p Postgres) QuoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

func (p Postgres) ValidateIdentifier(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidIdentifier)
	case strings.IndexByte(name, 0) >= 0:
		return fmt.Errorf("%w: %q contains a NUL byte", ErrInvalidIdentifier, name)
	case len(name) > MaxIdentifierLength:
		return fmt.Errorf("%w: %q exceeds %d bytes", ErrInvalidIdentifier, name, MaxIdentifierLength)
	}
	return nil
}

func (p Postgres) Placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

// Placeholders renders n markers starting at $start, joined by ", ".
func (p Postgres) Placeholders(start, n int) string {
	if n <= 0 {
		return ""
	}
	var sb strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Placeholder(start + i))
	}
	return sb.String()
}
