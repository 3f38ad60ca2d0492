package dialect

import (
	"encoding/hex"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

func NewPostgresDialect() Dialect {
	return newPostgresFamily(PostgreSQL)
}

func newPostgresFamily(name string) *Common {
	return New(name,
		WithQuote(QuotePostgres),
		WithPlaceholder(PlaceholderDollar),
		WithLiteral(PostgresLiteral),
		WithStrategy(LimitOffset),
	)
}

// QuotePostgres quotes a single identifier the way pgx does for CopyFrom
// and friends.
func QuotePostgres(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// PostgresLiteral renders v as a Postgres literal. Strings containing a
// backslash come out in E'' form.
func PostgresLiteral(v any) string {
	return renderLiteral(v,
		func(s string) string { return strings.TrimSpace(pq.QuoteLiteral(s)) },
		func(b []byte) string { return `'\x` + hex.EncodeToString(b) + `'::bytea` },
	)
}
