package dialect

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFamilyStrategies(t *testing.T) {
	families := map[Strategy][]string{
		LimitOffsetComma: {MySQL, MariaDB, TiDB, H2, ClickHouse},
		LimitOffset:      {PostgreSQL, SQLite, HSQL, Kingbase, OpenGauss, Redshift, Vertica, SAPHana, Impala},
		FetchNext:        {Derby, DB2, Oracle12c, SQLServer},
		SkipFirst:        {Informix},
		RowsRange:        {Firebird},
		TopStartAt:       {Sybase},
		RownumWrap:       {Oracle, DM, Gauss},
	}
	for strategy, names := range families {
		for _, name := range names {
			d, err := Lookup(name)
			require.NoError(t, err, name)
			assert.Equal(t, strategy, d.Strategy(), name)
			assert.Equal(t, name, d.Name())
		}
	}
	assert.Len(t, Names(), 24)
}

func TestLookupFoldsCaseAndAliases(t *testing.T) {
	for _, name := range []string{"PostgreSQL", " postgres ", "PG", "pgsql"} {
		d, err := Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, PostgreSQL, d.Name())
	}

	d, err := Lookup("MSSQL")
	require.NoError(t, err)
	assert.Equal(t, SQLServer, d.Name())

	_, err = Lookup("cobol-db")
	assert.ErrorIs(t, err, ErrUnknownDialect)
	assert.Panics(t, func() { MustLookup("cobol-db") })
}

func TestRegisterCustomDialect(t *testing.T) {
	r := &registry{dialects: map[string]Dialect{}, aliases: map[string]string{}}
	r.register(New("test_custom", WithQuote(NoQuote), WithStrategy(TopStartAt)), "TestAlias")

	d, err := r.lookup("testalias")
	require.NoError(t, err)
	assert.Equal(t, "test_custom", d.Name())
	assert.Equal(t, "a.b", d.QuoteIdentifier("a.b"))
}

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		dialect string
		in      string
		want    string
	}{
		{MySQL, "users", "`users`"},
		{MySQL, "u.id", "`u`.`id`"},
		{MySQL, "odd`name", "`odd``name`"},
		{MySQL, "*", "*"},
		{MySQL, "u.*", "`u`.*"},
		{PostgreSQL, "users", `"users"`},
		{PostgreSQL, `we"ird`, `"we""ird"`},
		{PostgreSQL, "public.users", `"public"."users"`},
		{SQLServer, "order", "[order]"},
		{Oracle, "account", `"account"`},
	}
	for _, tt := range tests {
		t.Run(tt.dialect+"/"+tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, MustLookup(tt.dialect).QuoteIdentifier(tt.in))
		})
	}
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "?", MustLookup(MySQL).Placeholder(3))
	assert.Equal(t, "$3", MustLookup(PostgreSQL).Placeholder(3))
	assert.Equal(t, "$1", MustLookup(Redshift).Placeholder(1))
	assert.Equal(t, "?", MustLookup(Oracle).Placeholder(1))
}

func TestRenderValue(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	mysql := MustLookup(MySQL)
	assert.Equal(t, "NULL", mysql.RenderValue(nil))
	assert.Equal(t, "'it''s'", mysql.RenderValue("it's"))
	assert.Equal(t, `'a\\b'`, mysql.RenderValue(`a\b`))
	assert.Equal(t, "TRUE", mysql.RenderValue(true))
	assert.Equal(t, "42", mysql.RenderValue(int64(42)))
	assert.Equal(t, "7", mysql.RenderValue(uint8(7)))
	assert.Equal(t, "1.5", mysql.RenderValue(1.5))
	assert.Equal(t, "'2024-03-01 12:30:00.000000'", mysql.RenderValue(ts))
	assert.Equal(t, "X'0aff'", mysql.RenderValue([]byte{0x0a, 0xff}))

	pg := MustLookup(PostgreSQL)
	assert.Equal(t, "'it''s'", pg.RenderValue("it's"))
	assert.Equal(t, `E'a\\b'`, pg.RenderValue(`a\b`))
	assert.Equal(t, `'\x0aff'::bytea`, pg.RenderValue([]byte{0x0a, 0xff}))
	assert.Equal(t, "FALSE", pg.RenderValue(false))

	ansi := MustLookup(Oracle)
	assert.Equal(t, "'michael%'", ansi.RenderValue("michael%"))
	assert.Equal(t, "100", ansi.RenderValue(100))
}

func TestRenderValueUnwrapsPointersAndValuers(t *testing.T) {
	mysql := MustLookup(MySQL)

	n := 42
	var nilName *string
	name := "bob"
	assert.Equal(t, "42", mysql.RenderValue(&n))
	assert.Equal(t, "NULL", mysql.RenderValue(nilName))
	assert.Equal(t, "'bob'", mysql.RenderValue(&name))

	assert.Equal(t, "'bob'", mysql.RenderValue(sql.NullString{String: "bob", Valid: true}))
	assert.Equal(t, "NULL", mysql.RenderValue(sql.NullString{}))
	assert.Equal(t, "7", mysql.RenderValue(&sql.NullInt64{Int64: 7, Valid: true}))
	assert.Equal(t, "NULL", mysql.RenderValue((*sql.NullInt64)(nil)))
}

func TestStandaloneHavingCapability(t *testing.T) {
	for _, name := range Names() {
		assert.False(t, MustLookup(name).SupportsStandaloneHaving(), name)
	}
	assert.True(t, New("x", WithStandaloneHaving()).SupportsStandaloneHaving())
}
