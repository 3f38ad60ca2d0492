package dialect

// Family names understood by the registry.
const (
	MySQL      = "mysql"
	MariaDB    = "mariadb"
	TiDB       = "tidb"
	H2         = "h2"
	ClickHouse = "clickhouse"
	PostgreSQL = "postgresql"
	SQLite     = "sqlite"
	HSQL       = "hsql"
	Kingbase   = "kingbase"
	OpenGauss  = "opengauss"
	Redshift   = "redshift"
	Vertica    = "vertica"
	SAPHana    = "sap_hana"
	Impala     = "impala"
	Derby      = "derby"
	DB2        = "db2"
	Oracle12c  = "oracle12c"
	SQLServer  = "sqlserver"
	Informix   = "informix"
	Firebird   = "firebird"
	Sybase     = "sybase"
	Oracle     = "oracle"
	DM         = "dm"
	Gauss      = "gauss"
)

// Dialect binds everything engine specific about rendering: identifier
// quoting, bind placeholders, literal syntax and row limiting.
// Implementations are immutable and shared process-wide.
type Dialect interface {
	Name() string
	QuoteIdentifier(name string) string
	Placeholder(n int) string
	RenderValue(v any) string
	Strategy() Strategy
	Paginate(stmt Statement, rows, offset *int) Statement
	SupportsStandaloneHaving() bool
}

type QuoteFunc func(name string) string

// Common is the table-driven Dialect used by every built-in family.
type Common struct {
	name             string
	quote            QuoteFunc
	placeholder      func(n int) string
	literal          func(v any) string
	strategy         Strategy
	standaloneHaving bool
}

type Option func(*Common)

func WithQuote(q QuoteFunc) Option {
	return func(c *Common) { c.quote = q }
}

func WithPlaceholder(p func(n int) string) Option {
	return func(c *Common) { c.placeholder = p }
}

func WithLiteral(l func(v any) string) Option {
	return func(c *Common) { c.literal = l }
}

func WithStrategy(s Strategy) Option {
	return func(c *Common) { c.strategy = s }
}

// WithStandaloneHaving allows HAVING without GROUP BY.
func WithStandaloneHaving() Option {
	return func(c *Common) { c.standaloneHaving = true }
}

// New builds a dialect. Unset parts default to ANSI double-quote
// identifiers, '?' placeholders, ANSI literals and LIMIT/OFFSET.
func New(name string, opts ...Option) *Common {
	c := &Common{
		name:        name,
		quote:       QuoteDouble,
		placeholder: PlaceholderQuestion,
		literal:     ANSILiteral,
		strategy:    LimitOffset,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Common) Name() string {
	return c.name
}

// QuoteIdentifier quotes each dot separated part of name. '*' is left bare.
func (c *Common) QuoteIdentifier(name string) string {
	return quoteParts(name, c.quote)
}

func (c *Common) Placeholder(n int) string {
	return c.placeholder(n)
}

func (c *Common) RenderValue(v any) string {
	return c.literal(v)
}

func (c *Common) Strategy() Strategy {
	return c.strategy
}

func (c *Common) Paginate(stmt Statement, rows, offset *int) Statement {
	return c.strategy.Apply(stmt, rows, offset)
}

func (c *Common) SupportsStandaloneHaving() bool {
	return c.standaloneHaving
}
