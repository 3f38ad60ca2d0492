package dialect

import (
	"encoding/hex"
	"strings"
)

var mysqlEscaper = strings.NewReplacer(`\`, `\\`, `'`, `''`)

func NewMySQLDialect() Dialect {
	return newMySQLFamily(MySQL)
}

func NewMariaDBDialect() Dialect {
	return newMySQLFamily(MariaDB)
}

func newMySQLFamily(name string) *Common {
	return New(name,
		WithQuote(QuoteBacktick),
		WithLiteral(MySQLLiteral),
		WithStrategy(LimitOffsetComma),
	)
}

// MySQLLiteral renders v for MySQL, where backslash escapes inside strings.
func MySQLLiteral(v any) string {
	return renderLiteral(v,
		func(s string) string { return "'" + mysqlEscaper.Replace(s) + "'" },
		func(b []byte) string { return "X'" + hex.EncodeToString(b) + "'" },
	)
}
