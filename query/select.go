package query

import (
	"fmt"
	"slices"

	"github.com/Konsultn-Engineering/flexsql/ast"
	"github.com/Konsultn-Engineering/flexsql/cache"
	"github.com/Konsultn-Engineering/flexsql/dialect"
	"github.com/Konsultn-Engineering/flexsql/visitor"
)

type SelectBuilder struct {
	*BaseBuilder
	stmt   *ast.SelectStmt
	qcache cache.QueryCache
}

// Select starts a query. Columns may be strings ("t.col AS alias"),
// *ColumnBuilder values or any ast.Node such as a function or raw fragment.
// With no columns the query selects *.
func Select(columns ...any) *SelectBuilder {
	sb := &SelectBuilder{
		BaseBuilder: NewBaseBuilder(),
		stmt:        ast.NewSelectStmt(),
	}
	return sb.Columns(columns...)
}

// NewSelectBuilder starts a query over a single table.
func NewSelectBuilder(schema, table string) *SelectBuilder {
	sb := Select()
	if table != "" {
		sb.stmt.From = append(sb.stmt.From, ast.NewTable(schema, table, ""))
	}
	return sb
}

func toNode(column any) (ast.Node, error) {
	switch c := column.(type) {
	case string:
		return Col(c).Build(), nil
	case *ColumnBuilder:
		return c.Build(), nil
	case ast.Node:
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidColumn, column)
	}
}

// Columns appends projections.
func (sb *SelectBuilder) Columns(columns ...any) *SelectBuilder {
	for _, c := range columns {
		n, err := toNode(c)
		if err != nil {
			sb.AddError(err)
			continue
		}
		sb.stmt.Columns = append(sb.stmt.Columns, n)
	}
	return sb
}

func (sb *SelectBuilder) Distinct() *SelectBuilder {
	sb.stmt.Distinct = true
	return sb
}

// From adds source tables: "table", "schema.table", "table alias".
func (sb *SelectBuilder) From(tables ...string) *SelectBuilder {
	for _, t := range tables {
		sb.stmt.From = append(sb.stmt.From, parseTableString(t))
	}
	return sb
}

func (sb *SelectBuilder) FromTable(t *ast.Table) *SelectBuilder {
	sb.stmt.From = append(sb.stmt.From, t)
	return sb
}

// Where ANDs cond into the WHERE predicate.
func (sb *SelectBuilder) Where(cond ast.Node) *SelectBuilder {
	sb.stmt.AddWhereCondition(cond, ast.OpAnd)
	return sb
}

func (sb *SelectBuilder) And(cond ast.Node) *SelectBuilder {
	return sb.Where(cond)
}

// Or ORs cond with everything added so far.
func (sb *SelectBuilder) Or(cond ast.Node) *SelectBuilder {
	sb.stmt.AddWhereCondition(cond, ast.OpOr)
	return sb
}

// whereWithOperator is the private helper behind the Where* shortcuts
func (sb *SelectBuilder) whereWithOperator(column string, sqlOp string, value any, logicalOp string) *SelectBuilder {
	c := Col(column)
	var condition ast.Node

	switch sqlOp {
	case ast.OpIsNull:
		condition = c.IsNull()
	case ast.OpIsNotNull:
		condition = c.IsNotNull()
	default:
		condition = c.compare(sqlOp, value)
	}

	sb.stmt.AddWhereCondition(condition, logicalOp)
	return sb
}

func (sb *SelectBuilder) WhereEq(column string, value any) *SelectBuilder {
	return sb.whereWithOperator(column, ast.OpEqual, value, ast.OpAnd)
}

func (sb *SelectBuilder) WhereNotEq(column string, value any) *SelectBuilder {
	return sb.whereWithOperator(column, ast.OpNotEqualAlt, value, ast.OpAnd)
}

func (sb *SelectBuilder) WhereGt(column string, value any) *SelectBuilder {
	return sb.whereWithOperator(column, ast.OpGreaterThan, value, ast.OpAnd)
}

func (sb *SelectBuilder) WhereGte(column string, value any) *SelectBuilder {
	return sb.whereWithOperator(column, ast.OpGreaterThanOrEqual, value, ast.OpAnd)
}

func (sb *SelectBuilder) WhereLt(column string, value any) *SelectBuilder {
	return sb.whereWithOperator(column, ast.OpLessThan, value, ast.OpAnd)
}

func (sb *SelectBuilder) WhereLte(column string, value any) *SelectBuilder {
	return sb.whereWithOperator(column, ast.OpLessThanOrEqual, value, ast.OpAnd)
}

func (sb *SelectBuilder) WhereLike(column string, pattern string) *SelectBuilder {
	return sb.whereWithOperator(column, ast.OpLike, pattern, ast.OpAnd)
}

func (sb *SelectBuilder) WhereIn(column string, values ...any) *SelectBuilder {
	return sb.Where(Col(column).In(values...))
}

func (sb *SelectBuilder) WhereNotIn(column string, values ...any) *SelectBuilder {
	return sb.Where(Col(column).NotIn(values...))
}

func (sb *SelectBuilder) WhereBetween(column string, start, end any) *SelectBuilder {
	return sb.Where(Col(column).Between(start, end))
}

func (sb *SelectBuilder) WhereIsNull(column string) *SelectBuilder {
	return sb.whereWithOperator(column, ast.OpIsNull, nil, ast.OpAnd)
}

func (sb *SelectBuilder) WhereIsNotNull(column string) *SelectBuilder {
	return sb.whereWithOperator(column, ast.OpIsNotNull, nil, ast.OpAnd)
}

func (sb *SelectBuilder) WhereExists(sub *SelectBuilder) *SelectBuilder {
	return sb.Where(Exists(sub))
}

func (sb *SelectBuilder) WhereNotExists(sub *SelectBuilder) *SelectBuilder {
	return sb.Where(NotExists(sub))
}

func (sb *SelectBuilder) OrWhereEq(column string, value any) *SelectBuilder {
	return sb.whereWithOperator(column, ast.OpEqual, value, ast.OpOr)
}

func (sb *SelectBuilder) OrWhereLike(column string, pattern string) *SelectBuilder {
	return sb.whereWithOperator(column, ast.OpLike, pattern, ast.OpOr)
}

func (sb *SelectBuilder) OrWhereIsNull(column string) *SelectBuilder {
	return sb.whereWithOperator(column, ast.OpIsNull, nil, ast.OpOr)
}

func (sb *SelectBuilder) join(kind ast.JoinType, table string) *SelectBuilder {
	sb.stmt.AddJoinClause(ast.NewJoinClause(kind, parseTableString(table), nil))
	return sb
}

func (sb *SelectBuilder) Join(table string) *SelectBuilder      { return sb.join(ast.JoinInner, table) }
func (sb *SelectBuilder) InnerJoin(table string) *SelectBuilder { return sb.join(ast.JoinInner, table) }
func (sb *SelectBuilder) LeftJoin(table string) *SelectBuilder  { return sb.join(ast.JoinLeft, table) }
func (sb *SelectBuilder) RightJoin(table string) *SelectBuilder { return sb.join(ast.JoinRight, table) }
func (sb *SelectBuilder) FullJoin(table string) *SelectBuilder  { return sb.join(ast.JoinFull, table) }
func (sb *SelectBuilder) CrossJoin(table string) *SelectBuilder { return sb.join(ast.JoinCross, table) }

func (sb *SelectBuilder) lastJoin() *ast.JoinClause {
	if len(sb.stmt.Joins) == 0 {
		sb.AddError(ErrNoJoin)
		return nil
	}
	j := sb.stmt.Joins[len(sb.stmt.Joins)-1]
	if j.JoinType == ast.JoinCross {
		sb.AddError(ErrCrossJoinOn)
		return nil
	}
	return j
}

// On adds leftCol = rightCol to the most recent join. Unqualified columns
// are qualified with the first FROM table and the joined table respectively.
func (sb *SelectBuilder) On(leftCol, rightCol string) *SelectBuilder {
	j := sb.lastJoin()
	if j == nil {
		return sb
	}
	left, right := Col(leftCol), Col(rightCol)
	if left.table == "" && len(sb.stmt.From) > 0 && sb.stmt.From[0] != nil {
		left.table = sb.stmt.From[0].Ref()
	}
	if right.table == "" {
		right.table = j.Table.Ref()
	}
	j.On = ast.And(j.On, ast.NewBinaryExpr(left.ref(), ast.OpEqual, right.ref()))
	return sb
}

// OnCond ANDs an arbitrary predicate into the most recent join.
func (sb *SelectBuilder) OnCond(cond ast.Node) *SelectBuilder {
	if j := sb.lastJoin(); j != nil {
		j.On = ast.And(j.On, cond)
	}
	return sb
}

func (sb *SelectBuilder) GroupBy(columns ...any) *SelectBuilder {
	for _, c := range columns {
		n, err := toNode(c)
		if err != nil {
			sb.AddError(err)
			continue
		}
		sb.stmt.AddGroupBy(n)
	}
	return sb
}

func (sb *SelectBuilder) Having(cond ast.Node) *SelectBuilder {
	sb.stmt.AddHavingCondition(cond, ast.OpAnd)
	return sb
}

func (sb *SelectBuilder) OrHaving(cond ast.Node) *SelectBuilder {
	sb.stmt.AddHavingCondition(cond, ast.OpOr)
	return sb
}

func (sb *SelectBuilder) OrderBy(clauses ...*ast.OrderByClause) *SelectBuilder {
	for _, o := range clauses {
		sb.stmt.AddOrderByClause(o)
	}
	return sb
}

func (sb *SelectBuilder) OrderByAsc(columns ...string) *SelectBuilder {
	for _, c := range columns {
		sb.stmt.AddOrderByClause(Col(c).Asc())
	}
	return sb
}

func (sb *SelectBuilder) OrderByDesc(columns ...string) *SelectBuilder {
	for _, c := range columns {
		sb.stmt.AddOrderByClause(Col(c).Desc())
	}
	return sb
}

func (sb *SelectBuilder) limitClause() *ast.LimitClause {
	if sb.stmt.Limit == nil {
		sb.stmt.Limit = &ast.LimitClause{}
	}
	return sb.stmt.Limit
}

func (sb *SelectBuilder) Limit(limit int) *SelectBuilder {
	sb.limitClause().Rows = ast.Ptr(limit)
	return sb
}

// Offset only takes effect together with Limit.
func (sb *SelectBuilder) Offset(offset int) *SelectBuilder {
	sb.limitClause().Offset = ast.Ptr(offset)
	return sb
}

func (sb *SelectBuilder) LimitOffset(limit, offset int) *SelectBuilder {
	sb.stmt.Limit = ast.LimitOffset(limit, offset)
	return sb
}

// Page selects the 1-based page of size rows.
func (sb *SelectBuilder) Page(page, size int) *SelectBuilder {
	if page < 1 {
		page = 1
	}
	return sb.LimitOffset(size, (page-1)*size)
}

// Cached routes Build through q.
func (sb *SelectBuilder) Cached(q cache.QueryCache) *SelectBuilder {
	sb.qcache = q
	return sb
}

func (sb *SelectBuilder) Stmt() *ast.SelectStmt {
	return sb.stmt
}

func (sb *SelectBuilder) Subquery() *ast.SubqueryExpr {
	return ast.NewSubqueryExpr(sb.stmt)
}

// Count derives the query that counts the rows sb would return. ORDER BY
// and pagination are dropped. Grouped, DISTINCT and HAVING queries are
// counted over a derived table:
//
//	SELECT COUNT(*) FROM (SELECT dept FROM emp GROUP BY dept) t
//
// The result shares sb's error list.
func (sb *SelectBuilder) Count() *SelectBuilder {
	core := *sb.stmt
	core.Columns = slices.Clone(core.Columns)
	core.From = slices.Clone(core.From)
	core.Joins = slices.Clone(core.Joins)
	if core.GroupBy != nil {
		core.GroupBy = &ast.GroupByClause{Exprs: slices.Clone(core.GroupBy.Exprs)}
	}
	core.OrderBy = nil
	core.Limit = nil

	count := []ast.Node{Raw("COUNT(*)")}
	if core.Distinct || !core.GroupBy.Empty() || !ast.IsEmpty(core.Having) {
		outer := ast.NewSelectStmt()
		outer.Columns = count
		outer.From = []*ast.Table{ast.NewDerivedTable(&core, "t")}
		return &SelectBuilder{BaseBuilder: sb.BaseBuilder, stmt: outer, qcache: sb.qcache}
	}
	core.Columns = count
	return &SelectBuilder{BaseBuilder: sb.BaseBuilder, stmt: &core, qcache: sb.qcache}
}

// Err reports the first builder misuse, if any.
func (sb *SelectBuilder) Err() error {
	return sb.GetFirstError()
}

// Build renders the query for d.
func (sb *SelectBuilder) Build(d dialect.Dialect, opts ...visitor.Option) (string, []any, error) {
	if err := sb.GetFirstError(); err != nil {
		return "", nil, err
	}
	return visitor.Render(sb.stmt, d, sb.qcache, opts...)
}

// BuildFor renders the query for the registered dialect called name.
func (sb *SelectBuilder) BuildFor(name string, opts ...visitor.Option) (string, []any, error) {
	d, err := dialect.Lookup(name)
	if err != nil {
		return "", nil, err
	}
	return sb.Build(d, opts...)
}
