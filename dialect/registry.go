package dialect

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

var ErrUnknownDialect = errors.New("dialect: unknown dialect")

type registry struct {
	mu       sync.RWMutex
	dialects map[string]Dialect
	aliases  map[string]string
}

var defaultRegistry = &registry{
	dialects: make(map[string]Dialect),
	aliases:  make(map[string]string),
}

// fold normalises a lookup key. A Caser keeps state, so one is made per call.
func fold(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// Register makes d available under its name and any aliases. Registering a
// name twice replaces the earlier dialect.
func Register(d Dialect, aliases ...string) {
	defaultRegistry.register(d, aliases...)
}

func (r *registry) register(d Dialect, aliases ...string) {
	key := fold(d.Name())
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dialects[key] = d
	for _, a := range aliases {
		r.aliases[fold(a)] = key
	}
	slog.Debug("dialect registered", "name", d.Name(), "strategy", d.Strategy().String(), "aliases", aliases)
}

// Lookup resolves a family name or alias, ignoring case.
func Lookup(name string) (Dialect, error) {
	return defaultRegistry.lookup(name)
}

func (r *registry) lookup(name string) (Dialect, error) {
	key := fold(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if d, ok := r.dialects[key]; ok {
		return d, nil
	}
	if target, ok := r.aliases[key]; ok {
		if d, ok := r.dialects[target]; ok {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
}

// MustLookup is Lookup for package initialisation; it panics on unknown names.
func MustLookup(name string) Dialect {
	d, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return d
}

// Names returns the registered family names, sorted.
func Names() []string {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()
	names := make([]string, 0, len(defaultRegistry.dialects))
	for _, d := range defaultRegistry.dialects {
		names = append(names, d.Name())
	}
	sort.Strings(names)
	return names
}

func init() {
	Register(NewMySQLDialect())
	Register(NewMariaDBDialect(), "maria")
	Register(NewTiDBDialect())
	Register(New(H2, WithStrategy(LimitOffsetComma)))
	Register(New(ClickHouse, WithQuote(QuoteBacktick), WithStrategy(LimitOffsetComma)))

	Register(NewPostgresDialect(), "postgres", "pg", "pgsql", "pgx")
	Register(New(SQLite, WithStrategy(LimitOffset)), "sqlite3")
	Register(New(HSQL, WithStrategy(LimitOffset)), "hsqldb")
	Register(newPostgresFamily(Kingbase), "kingbasees")
	Register(newPostgresFamily(OpenGauss))
	Register(newPostgresFamily(Redshift))
	Register(New(Vertica, WithStrategy(LimitOffset)))
	Register(New(SAPHana, WithStrategy(LimitOffset)), "hana", "saphana")
	Register(New(Impala, WithQuote(QuoteBacktick), WithStrategy(LimitOffset)))

	Register(New(Derby, WithStrategy(FetchNext)))
	Register(New(DB2, WithStrategy(FetchNext)))
	Register(New(Oracle12c, WithStrategy(FetchNext)))
	Register(New(SQLServer, WithQuote(QuoteBracket), WithStrategy(FetchNext)), "mssql", "sql_server", "sqlserver2012")

	Register(New(Informix, WithStrategy(SkipFirst)))
	Register(New(Firebird, WithStrategy(RowsRange)))
	Register(New(Sybase, WithQuote(QuoteBracket), WithStrategy(TopStartAt)))

	Register(New(Oracle, WithStrategy(RownumWrap)), "ora")
	Register(New(DM, WithStrategy(RownumWrap)), "dameng")
	Register(New(Gauss, WithStrategy(RownumWrap)), "gaussdb")
}
