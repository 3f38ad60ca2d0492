package visitor

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Konsultn-Engineering/flexsql/ast"
	"github.com/Konsultn-Engineering/flexsql/cache"
	"github.com/Konsultn-Engineering/flexsql/dialect"
)

var plain = dialect.New("plain", dialect.WithQuote(dialect.NoQuote))

func render(t *testing.T, d dialect.Dialect, stmt *ast.SelectStmt, opts ...Option) (string, []any) {
	t.Helper()
	sql, args, err := Render(stmt, d, nil, opts...)
	require.NoError(t, err)
	return sql, args
}

func from(name string) []*ast.Table {
	return []*ast.Table{ast.NewTable("", name, "")}
}

func TestAccountScenarioLimitOffsetComma(t *testing.T) {
	d := dialect.New("account", dialect.WithQuote(dialect.NoQuote), dialect.WithStrategy(dialect.LimitOffsetComma))
	stmt := &ast.SelectStmt{
		Columns: ast.Columns("id", "name"),
		From:    from("account"),
		Where: ast.And(
			ast.NewBinaryExpr(ast.Col("id"), ast.OpGreaterThanOrEqual, ast.NewValue(100)),
			ast.Like("name", "michael%"),
		),
		Limit: ast.LimitOffset(10, 10),
	}

	sql, args := render(t, d, stmt, WithInlineValues())
	assert.Equal(t, "SELECT id, name FROM account WHERE id >= 100 AND name LIKE 'michael%' LIMIT 10, 10", sql)
	assert.Empty(t, args)

	sql, args = render(t, d, stmt)
	assert.Equal(t, "SELECT id, name FROM account WHERE id >= ? AND name LIKE ? LIMIT 10, 10", sql)
	assert.Equal(t, []any{100, "michael%"}, args)
}

func TestFetchNextScenario(t *testing.T) {
	stmt := &ast.SelectStmt{
		Columns: ast.Columns("id", "name"),
		From:    from("account"),
		OrderBy: []*ast.OrderByClause{ast.OrderBy("id", false)},
		Limit:   ast.LimitOffset(10, 10),
	}

	for _, name := range []string{dialect.Derby, dialect.DB2, dialect.Oracle12c, dialect.SQLServer} {
		sql, _ := render(t, dialect.MustLookup(name), stmt)
		assert.Contains(t, sql, "ORDER BY")
		assert.Regexp(t, `OFFSET 10 ROWS FETCH NEXT 10 ROWS ONLY$`, sql, name)
		assert.NotContains(t, sql, "LIMIT", name)
	}
}

func TestFunctionColumn(t *testing.T) {
	stmt := &ast.SelectStmt{
		Columns: []ast.Node{ast.NewFunction("max", ast.Col("age")).As("oldest")},
		From:    from("account"),
	}
	sql, _ := render(t, plain, stmt)
	assert.Equal(t, "SELECT max(age) AS oldest FROM account", sql)

	sql, _ = render(t, dialect.MustLookup(dialect.MySQL), stmt)
	assert.Equal(t, "SELECT max(`age`) AS `oldest` FROM `account`", sql)
}

func TestFunctionOverEmptyInnerRendersEmpty(t *testing.T) {
	stmt := &ast.SelectStmt{
		Columns: []ast.Node{
			ast.Col("id"),
			ast.NewFunction("max", ast.NewColumn("", "", "")).As("oldest"),
			ast.Col("name"),
		},
		From: from("account"),
	}
	sql, _ := render(t, plain, stmt)
	assert.Equal(t, "SELECT id, name FROM account", sql)

	stmt.Columns = []ast.Node{ast.NewFunction("max", &ast.NoOp{}).As("oldest")}
	sql, _ = render(t, plain, stmt)
	assert.Equal(t, "SELECT * FROM account", sql)
}

func TestNestedFunctionSuppressesInnerAlias(t *testing.T) {
	inner := ast.NewFunction("distinct", ast.Col("id").As("x"))
	stmt := &ast.SelectStmt{
		Columns: []ast.Node{ast.NewFunction("count", inner).As("n")},
		From:    from("account"),
	}
	sql, _ := render(t, plain, stmt)
	assert.Equal(t, "SELECT count(distinct(id)) AS n FROM account", sql)

	distinct := &ast.Function{Name: "count", Arg: ast.Col("email"), Distinct: true}
	stmt.Columns = []ast.Node{distinct}
	sql, _ = render(t, plain, stmt)
	assert.Equal(t, "SELECT count(DISTINCT email) FROM account", sql)
}

func TestEmptyClausesEmitNoKeywords(t *testing.T) {
	stmt := &ast.SelectStmt{
		From:    from("account"),
		Where:   ast.When(ast.Eq("id", 1), false),
		GroupBy: &ast.GroupByClause{Exprs: []ast.Node{&ast.NoOp{}}},
		Having:  &ast.NoOp{},
		OrderBy: []*ast.OrderByClause{ast.NewOrderByClause(ast.NewColumn("", "", ""), true)},
	}
	sql, args := render(t, plain, stmt)
	assert.Equal(t, "SELECT * FROM account", sql)
	assert.Empty(t, args)
}

func TestNoOpIsAbsorbed(t *testing.T) {
	p := ast.Eq("id", 7)
	build := func(where ast.Node) string {
		sql, _ := render(t, plain, &ast.SelectStmt{Columns: ast.Columns("id"), From: from("t"), Where: where})
		return sql
	}

	want := build(p)
	assert.Equal(t, "SELECT id FROM t WHERE id = ?", want)
	assert.Equal(t, want, build(ast.NewLogicalExpr(&ast.NoOp{}, ast.OpAnd, p)))
	assert.Equal(t, want, build(ast.NewLogicalExpr(&ast.NoOp{}, ast.OpOr, p)))
	assert.Equal(t, want, build(ast.NewLogicalExpr(p, ast.OpOr, ast.When(ast.Eq("x", 1), false))))
	assert.Equal(t, "SELECT id FROM t", build(ast.NewLogicalExpr(&ast.NoOp{}, ast.OpAnd, &ast.NoOp{})))
}

func TestLogicalGrouping(t *testing.T) {
	a, b, c := ast.Eq("a", 1), ast.Eq("b", 2), ast.Eq("c", 3)

	tests := []struct {
		name  string
		where ast.Node
		want  string
		args  int
	}{
		{"flat and", ast.And(a, b, c), "a = ? AND b = ? AND c = ?", 3},
		{"flat or", ast.Or(a, b, c), "a = ? OR b = ? OR c = ?", 3},
		{"and of or", ast.And(a, ast.Or(b, c)), "a = ? AND (b = ? OR c = ?)", 3},
		{"or of and", ast.Or(ast.And(a, b), c), "(a = ? AND b = ?) OR c = ?", 3},
		{"absorbed wrapper", ast.And(a, ast.And(&ast.NoOp{}, ast.Or(b, c))), "a = ? AND (b = ? OR c = ?)", 3},
		{"explicit group", ast.And(a, &ast.GroupedExpr{Expr: b}), "a = ? AND (b = ?)", 2},
		{"lower-case operator", ast.NewLogicalExpr(a, "and", ast.NewLogicalExpr(b, "AND", c)), "a = ? AND b = ? AND c = ?", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := render(t, plain, &ast.SelectStmt{From: from("t"), Where: tt.where})
			assert.Equal(t, "SELECT * FROM t WHERE "+tt.want, sql)
			assert.Len(t, args, tt.args)
		})
	}
}

func TestPostgresPlaceholdersFollowTextualOrder(t *testing.T) {
	sub := &ast.SelectStmt{
		Columns: ast.Columns("account_id"),
		From:    from("orders"),
		Where:   ast.NewBinaryExpr(ast.Col("total"), ast.OpGreaterThan, ast.NewValue(50)),
	}
	stmt := &ast.SelectStmt{
		Columns: ast.Columns("id"),
		From:    from("account"),
		Where: ast.And(
			ast.Eq("status", "active"),
			ast.NewInExpr(ast.Col("id"), ast.NewSubqueryExpr(sub), false),
			ast.Eq("region", "eu"),
		),
	}

	sql, args := render(t, dialect.MustLookup(dialect.PostgreSQL), stmt)
	assert.Equal(t,
		`SELECT "id" FROM "account" WHERE "status" = $1 AND "id" IN (SELECT "account_id" FROM "orders" WHERE "total" > $2) AND "region" = $3`,
		sql)
	assert.Equal(t, []any{"active", 50, "eu"}, args)
}

func TestInPredicate(t *testing.T) {
	tests := []struct {
		name  string
		where ast.Node
		want  string
		args  []any
	}{
		{"values", ast.In("id", 1, 2, 3), "id IN (?, ?, ?)", []any{1, 2, 3}},
		{"not in", ast.NewInExpr(ast.Col("id"), ast.NewArray([]any{4}), true), "id NOT IN (?)", []any{4}},
		{"empty in", ast.In("id"), "1 = 0", nil},
		{"empty not in", ast.NewInExpr(ast.Col("id"), ast.NewArray(nil), true), "1 = 1", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := render(t, plain, &ast.SelectStmt{From: from("t"), Where: tt.where})
			assert.Equal(t, "SELECT * FROM t WHERE "+tt.want, sql)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestExists(t *testing.T) {
	sub := &ast.SelectStmt{
		Columns: []ast.Node{ast.NewRaw("1")},
		From:    from("orders"),
		Where:   ast.JoinOn("orders", "user_id", "users", "id"),
	}
	stmt := &ast.SelectStmt{
		Columns: ast.Columns("id"),
		From:    from("users"),
		Where:   ast.NewExistsExpr(ast.NewSubqueryExpr(sub), true),
	}
	sql, _ := render(t, plain, stmt)
	assert.Equal(t, "SELECT id FROM users WHERE NOT EXISTS (SELECT 1 FROM orders WHERE orders.user_id = users.id)", sql)
}

func TestSubqueryKeepsItsOwnPagination(t *testing.T) {
	sub := &ast.SelectStmt{Columns: ast.Columns("id"), From: from("orders"), Limit: ast.Limit(5)}
	stmt := &ast.SelectStmt{
		From:  from("users"),
		Where: ast.NewInExpr(ast.Col("id"), ast.NewSubqueryExpr(sub), false),
		Limit: ast.Limit(1),
	}
	sql, _ := render(t, dialect.MustLookup(dialect.Sybase), stmt)
	assert.Equal(t, "SELECT TOP 1 * FROM [users] WHERE [id] IN (SELECT TOP 5 [id] FROM [orders])", sql)
}

func TestNullAndUnary(t *testing.T) {
	where := ast.And(
		ast.NewUnaryExpr(ast.Col("deleted_at"), ast.OpIsNull, false),
		ast.NewUnaryExpr(ast.Eq("banned", true), ast.OpNot, true),
		ast.NewUnaryExpr(&ast.GroupedExpr{Expr: ast.Eq("x", 1)}, ast.OpNot, true),
	)
	sql, _ := render(t, plain, &ast.SelectStmt{From: from("t"), Where: where})
	assert.Equal(t, "SELECT * FROM t WHERE deleted_at IS NULL AND NOT (banned = ?) AND NOT (x = ?)", sql)
}

func TestBetween(t *testing.T) {
	sql, args := render(t, plain, &ast.SelectStmt{
		From:  from("t"),
		Where: ast.NewBetweenExpr(ast.Col("age"), ast.NewValue(18), ast.NewValue(65), false),
	})
	assert.Equal(t, "SELECT * FROM t WHERE age BETWEEN ? AND ?", sql)
	assert.Equal(t, []any{18, 65}, args)

	sql, _ = render(t, plain, &ast.SelectStmt{
		From:  from("t"),
		Where: ast.NewBetweenExpr(ast.Col("name"), ast.NewValue("a"), ast.NewValue("m"), true),
	}, WithInlineValues())
	assert.Equal(t, "SELECT * FROM t WHERE name NOT BETWEEN 'a' AND 'm'", sql)
}

func TestInvalidPredicates(t *testing.T) {
	tests := []struct {
		name  string
		where ast.Node
	}{
		{"nil comparison", ast.Eq("id", nil)},
		{"nil like", ast.NewBinaryExpr(ast.Col("name"), ast.OpLike, ast.NewValue(nil))},
		{"missing right operand", ast.NewBinaryExpr(ast.Col("id"), ast.OpGreaterThan, nil)},
		{"between nil bound", ast.NewBetweenExpr(ast.Col("age"), ast.NewValue(nil), ast.NewValue(3), false)},
		{"between reversed", ast.NewBetweenExpr(ast.Col("age"), ast.NewValue(65), ast.NewValue(18), false)},
		{"between reversed strings", ast.NewBetweenExpr(ast.Col("n"), ast.NewValue("z"), ast.NewValue("a"), false)},
		{"in without list", ast.NewInExpr(ast.Col("id"), nil, false)},
		{"nested in logical", ast.And(ast.Eq("a", 1), ast.Or(ast.Eq("b", 2), ast.Eq("c", nil)))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := Render(&ast.SelectStmt{From: from("t"), Where: tt.where}, plain, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidPredicate)
			assert.True(t, IsInvalidPredicate(err))
			assert.Empty(t, sql)
			assert.Nil(t, args)

			var re *RenderError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, "where", re.Clause)
		})
	}
}

func TestBetweenMixedKindsIsNotRejected(t *testing.T) {
	_, _, err := Render(&ast.SelectStmt{
		From:  from("t"),
		Where: ast.NewBetweenExpr(ast.Col("v"), ast.NewValue(10), ast.NewValue("1"), false),
	}, plain, nil)
	assert.NoError(t, err)
}

func TestInvalidPagination(t *testing.T) {
	for _, limit := range []*ast.LimitClause{
		ast.NewLimitClause(ast.Ptr(-1), nil),
		ast.NewLimitClause(ast.Ptr(10), ast.Ptr(-5)),
		ast.NewLimitClause(ast.Ptr(10), ast.Ptr(math.MaxInt-5)),
	} {
		sql, args, err := Render(&ast.SelectStmt{From: from("t"), Limit: limit}, plain, nil)
		assert.ErrorIs(t, err, ErrInvalidPagination)
		assert.True(t, IsInvalidPagination(err))
		assert.Empty(t, sql)
		assert.Nil(t, args)
	}
}

func TestOffsetWithoutRowsIsIgnored(t *testing.T) {
	sql, _ := render(t, plain, &ast.SelectStmt{From: from("t"), Limit: ast.NewLimitClause(nil, ast.Ptr(20))})
	assert.Equal(t, "SELECT * FROM t", sql)
}

func TestRownumWrap(t *testing.T) {
	stmt := &ast.SelectStmt{
		Columns: ast.Columns("id"),
		From:    from("account"),
		Where:   ast.Eq("status", "x"),
		OrderBy: []*ast.OrderByClause{ast.OrderBy("id", false)},
		Limit:   ast.LimitOffset(10, 5),
	}
	sql, args := render(t, dialect.MustLookup(dialect.Oracle), stmt)
	assert.Equal(t,
		`SELECT * FROM (SELECT T.*, ROWNUM RN FROM (SELECT "id" FROM "account" WHERE "status" = ? ORDER BY "id" ASC) T WHERE ROWNUM <= 15) WHERE RN > 5`,
		sql)
	assert.Equal(t, []any{"x"}, args)
}

func TestGroupByHaving(t *testing.T) {
	count := func() *ast.Function { return ast.NewFunction("count", ast.Col("*")) }
	stmt := &ast.SelectStmt{
		Columns: []ast.Node{ast.Col("dept"), count().As("n")},
		From:    from("emp"),
		GroupBy: &ast.GroupByClause{Exprs: []ast.Node{ast.Col("dept")}},
		Having:  ast.NewBinaryExpr(count(), ast.OpGreaterThan, ast.NewValue(5)),
		OrderBy: []*ast.OrderByClause{ast.OrderBy("dept", true)},
	}
	sql, args := render(t, plain, stmt)
	assert.Equal(t, "SELECT dept, count(*) AS n FROM emp GROUP BY dept HAVING count(*) > ? ORDER BY dept DESC", sql)
	assert.Equal(t, []any{5}, args)
}

func TestHavingWithoutGroupBy(t *testing.T) {
	stmt := &ast.SelectStmt{
		Columns: []ast.Node{ast.NewFunction("count", ast.Col("*")).As("n")},
		From:    from("emp"),
		Having:  ast.NewBinaryExpr(ast.NewFunction("count", ast.Col("*")), ast.OpGreaterThan, ast.NewValue(5)),
	}

	_, _, err := Render(stmt, plain, nil)
	assert.ErrorIs(t, err, ErrUnsupportedDialectOperation)
	assert.True(t, IsUnsupported(err))

	lenient := dialect.New("lenient", dialect.WithQuote(dialect.NoQuote), dialect.WithStandaloneHaving())
	sql, _ := render(t, lenient, stmt)
	assert.Equal(t, "SELECT count(*) AS n FROM emp HAVING count(*) > ?", sql)
}

func TestJoins(t *testing.T) {
	stmt := &ast.SelectStmt{
		Columns: ast.Columns("u.id", "o.total AS amount"),
		From:    []*ast.Table{ast.NewTable("", "users", "u")},
		Joins: []*ast.JoinClause{
			ast.NewJoinClause(ast.JoinInner, ast.NewTable("", "orders", "o"), ast.JoinOn("u", "id", "o", "user_id")),
			ast.NewJoinClause(ast.JoinLeft, ast.NewTable("", "profiles", "p"), &ast.NoOp{}),
			ast.NewJoinClause(ast.JoinCross, ast.NewTable("", "regions", ""), ast.Eq("x", 1)),
		},
	}
	sql, args := render(t, dialect.MustLookup(dialect.MySQL), stmt)
	assert.Equal(t,
		"SELECT `u`.`id`, `o`.`total` AS `amount` FROM `users` AS `u` INNER JOIN `orders` AS `o` ON `u`.`id` = `o`.`user_id` LEFT JOIN `profiles` AS `p` CROSS JOIN `regions`",
		sql)
	assert.Empty(t, args)
}

func TestMultipleFromTablesAndSchema(t *testing.T) {
	stmt := &ast.SelectStmt{
		Columns: ast.Columns("a.id", "b.*"),
		From:    []*ast.Table{ast.NewTable("public", "a", ""), nil, ast.NewTable("", "b", "")},
	}
	sql, _ := render(t, dialect.MustLookup(dialect.PostgreSQL), stmt)
	assert.Equal(t, `SELECT "a"."id", "b".* FROM "public"."a", "b"`, sql)
}

func TestDistinctAndRaw(t *testing.T) {
	stmt := &ast.SelectStmt{
		Distinct: true,
		Columns:  []ast.Node{ast.NewRaw("coalesce(nick, ?)", "anon").As("display")},
		From:     from("account"),
	}
	sql, args := render(t, plain, stmt)
	assert.Equal(t, "SELECT DISTINCT coalesce(nick, ?) AS display FROM account", sql)
	assert.Equal(t, []any{"anon"}, args)

	sql, args = render(t, plain, stmt, WithInlineValues())
	assert.Equal(t, "SELECT DISTINCT coalesce(nick, 'anon') AS display FROM account", sql)
	assert.Empty(t, args)
}

func TestExcludedRawCondition(t *testing.T) {
	where := ast.And(ast.When(ast.NewRaw("score > ?", 10), false), ast.NewRaw("active"))
	sql, args := render(t, plain, &ast.SelectStmt{From: from("t"), Where: where})
	assert.Equal(t, "SELECT * FROM t WHERE active", sql)
	assert.Empty(t, args)
}

func TestRawSkipsQuotedPlaceholders(t *testing.T) {
	where := ast.NewRaw("note = '?' AND id = ? AND tag = 'it''s ?'", 5)
	sql, args := render(t, plain, &ast.SelectStmt{From: from("t"), Where: where})
	assert.Equal(t, "SELECT * FROM t WHERE note = '?' AND id = ? AND tag = 'it''s ?'", sql)
	assert.Equal(t, []any{5}, args)

	sql, _ = render(t, plain, &ast.SelectStmt{From: from("t"), Where: where}, WithInlineValues())
	assert.Equal(t, "SELECT * FROM t WHERE note = '?' AND id = 5 AND tag = 'it''s ?'", sql)
}

func TestDerivedTable(t *testing.T) {
	inner := &ast.SelectStmt{
		Columns: ast.Columns("dept"),
		From:    from("emp"),
		Where:   ast.Eq("active", true),
		GroupBy: &ast.GroupByClause{Exprs: ast.Columns("dept")},
	}
	stmt := &ast.SelectStmt{
		Columns: []ast.Node{ast.NewRaw("COUNT(*)")},
		From:    []*ast.Table{ast.NewDerivedTable(inner, "t")},
	}

	sql, args := render(t, dialect.MustLookup(dialect.PostgreSQL), stmt)
	assert.Equal(t, `SELECT COUNT(*) FROM (SELECT "dept" FROM "emp" WHERE "active" = $1 GROUP BY "dept") "t"`, sql)
	assert.Equal(t, []any{true}, args)

	_, _, err := Render(&ast.SelectStmt{From: []*ast.Table{ast.NewDerivedTable(inner, "")}}, plain, nil)
	assert.ErrorIs(t, err, ErrInvalidPredicate)
}

func TestStatementExposesModifiers(t *testing.T) {
	v := NewSQLVisitor(dialect.MustLookup(dialect.Sybase), nil)
	defer v.Release()

	stmt, args, err := v.Statement(&ast.SelectStmt{
		Columns: ast.Columns("id"),
		From:    from("account"),
		Where:   ast.Eq("id", 3),
		Limit:   ast.Limit(5),
	})
	require.NoError(t, err)
	assert.Equal(t, "SELECT", stmt.Keyword)
	assert.Equal(t, []string{"TOP 5"}, stmt.Modifiers)
	assert.Equal(t, "[id] FROM [account] WHERE [id] = ?", stmt.Body)
	assert.True(t, stmt.Paginated())
	assert.Equal(t, []any{3}, args)
}

func TestBuildUsesCache(t *testing.T) {
	q := cache.NewQueryCache(16)
	stmt := &ast.SelectStmt{Columns: ast.Columns("id"), From: from("t"), Where: ast.Eq("id", 1)}

	sql1, args1, err := Render(stmt, plain, q)
	require.NoError(t, err)
	sql2, args2, err := Render(stmt, plain, q)
	require.NoError(t, err)

	assert.Equal(t, sql1, sql2)
	assert.Equal(t, args1, args2)
	assert.Equal(t, cache.Stats{Hits: 1, Misses: 1}, q.Stats())

	inlined, _, err := Render(stmt, plain, q, WithInlineValues())
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM t WHERE id = 1", inlined)

	pg, _, err := Render(stmt, dialect.MustLookup(dialect.PostgreSQL), q)
	require.NoError(t, err)
	assert.Equal(t, `SELECT "id" FROM "t" WHERE "id" = $1`, pg)
	assert.Equal(t, 3, q.Len())

	_, _, err = Render(&ast.SelectStmt{From: from("t"), Where: ast.Eq("id", nil)}, plain, q)
	require.Error(t, err)
	assert.Equal(t, 3, q.Len())
}

func TestCacheSeparatesDialectsSharingAName(t *testing.T) {
	q := cache.NewQueryCache(16)
	stmt := &ast.SelectStmt{Columns: ast.Columns("id"), From: from("t"), Limit: ast.LimitOffset(10, 5)}

	comma := dialect.New("custom", dialect.WithQuote(dialect.NoQuote), dialect.WithStrategy(dialect.LimitOffsetComma))
	fetch := dialect.New("custom", dialect.WithQuote(dialect.NoQuote), dialect.WithStrategy(dialect.FetchNext))
	quoted := dialect.New("custom", dialect.WithStrategy(dialect.LimitOffsetComma))

	sql, _, err := Render(stmt, comma, q)
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM t LIMIT 5, 10", sql)

	sql, _, err = Render(stmt, fetch, q)
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM t OFFSET 5 ROWS FETCH NEXT 10 ROWS ONLY", sql)

	sql, _, err = Render(stmt, quoted, q)
	require.NoError(t, err)
	assert.Equal(t, `SELECT "id" FROM "t" LIMIT 5, 10`, sql)
	assert.Equal(t, 3, q.Len())
}

func TestPooledVisitorIsReset(t *testing.T) {
	v := NewSQLVisitor(plain, nil)
	_, _, err := v.Build(&ast.SelectStmt{From: from("t"), Where: ast.Eq("id", nil)})
	require.Error(t, err)
	v.Release()

	sql, args := render(t, plain, &ast.SelectStmt{From: from("t"), Where: ast.Eq("id", 2)})
	assert.Equal(t, "SELECT * FROM t WHERE id = ?", sql)
	assert.Equal(t, []any{2}, args)
}

func TestRenderErrorMessage(t *testing.T) {
	err := &RenderError{Kind: ErrInvalidPagination, Clause: "limit", Msg: "offset must not be negative"}
	assert.Equal(t, "render limit: invalid pagination: offset must not be negative", err.Error())
	assert.False(t, errors.Is(err, ErrInvalidPredicate))
}
