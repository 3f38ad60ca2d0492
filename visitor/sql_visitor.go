package visitor

import (
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/Konsultn-Engineering/flexsql/ast"
	"github.com/Konsultn-Engineering/flexsql/cache"
	"github.com/Konsultn-Engineering/flexsql/dialect"
	"github.com/Konsultn-Engineering/flexsql/utils"
)

var visitorPool = sync.Pool{
	New: func() any {
		return &SQLVisitor{
			sb:   new(strings.Builder),
			args: make([]any, 0, 8),
		}
	},
}

// SQLVisitor renders an AST into SQL for one dialect. A visitor is not safe
// for concurrent use; take one per render and Release it afterwards.
type SQLVisitor struct {
	sb      *strings.Builder
	args    []any
	dialect dialect.Dialect
	qcache  cache.QueryCache

	inline       bool
	inProjection bool
	clause       string
}

type Option func(*SQLVisitor)

// WithInlineValues renders values as dialect literals instead of bind
// placeholders. Build then returns no args.
func WithInlineValues() Option {
	return func(v *SQLVisitor) { v.inline = true }
}

// NewSQLVisitor takes a pooled visitor bound to d. q may be nil.
func NewSQLVisitor(d dialect.Dialect, q cache.QueryCache, opts ...Option) *SQLVisitor {
	v := visitorPool.Get().(*SQLVisitor)
	v.dialect = d
	v.qcache = q
	v.inline = false
	for _, opt := range opts {
		opt(v)
	}
	v.Reset()
	return v
}

// Render is the one-shot form of NewSQLVisitor + Build + Release.
func Render(root ast.Node, d dialect.Dialect, q cache.QueryCache, opts ...Option) (string, []any, error) {
	v := NewSQLVisitor(d, q, opts...)
	defer v.Release()
	return v.Build(root)
}

func (v *SQLVisitor) Release() {
	v.dialect = nil
	v.qcache = nil
	v.inline = false
	v.Reset()
	visitorPool.Put(v)
}

func (v *SQLVisitor) Reset() {
	v.sb.Reset()
	v.args = v.args[:0]
	v.inProjection = false
	v.clause = ""
}

// cacheKey folds in the dialect's observable behaviour as well as its name,
// so two ad hoc dialects sharing a name do not share cached SQL.
func (v *SQLVisitor) cacheKey(root ast.Node) uint64 {
	d := v.dialect
	return utils.MixAll(root.Fingerprint(),
		utils.U64(d.Name()),
		utils.U64(d.Strategy().String()),
		utils.U64(d.QuoteIdentifier("t.c")),
		utils.U64(d.Placeholder(2)),
		utils.U64(d.RenderValue("'")),
		utils.Bool(d.SupportsStandaloneHaving()),
		utils.Bool(v.inline),
	)
}

// Build renders root. On failure it returns no SQL and no args.
func (v *SQLVisitor) Build(root ast.Node) (string, []any, error) {
	if root == nil {
		return "", nil, nil
	}

	var fp uint64
	if v.qcache != nil {
		fp = v.cacheKey(root)
		if cached, ok := v.qcache.Get(fp); ok {
			slog.Debug("render cache hit", "dialect", v.dialect.Name(), "fingerprint", fp)
			return cached.SQL, cached.Args, nil
		}
		slog.Debug("render cache miss", "dialect", v.dialect.Name(), "fingerprint", fp)
	}

	v.Reset()
	if err := root.Accept(v); err != nil {
		v.Reset()
		return "", nil, err
	}

	sql := v.sb.String()
	var args []any
	if len(v.args) > 0 {
		args = make([]any, len(v.args))
		copy(args, v.args)
	}

	if v.qcache != nil {
		v.qcache.Set(fp, &cache.CachedQuery{SQL: sql, Args: args})
	}
	return sql, args, nil
}

// Statement renders s without flattening it, so callers can inspect the
// keyword, pagination modifiers and body separately.
func (v *SQLVisitor) Statement(s *ast.SelectStmt) (dialect.Statement, []any, error) {
	v.Reset()
	stmt, err := v.selectStatement(s)
	if err != nil {
		v.Reset()
		return dialect.Statement{}, nil, err
	}
	var args []any
	if len(v.args) > 0 {
		args = make([]any, len(v.args))
		copy(args, v.args)
	}
	return stmt, args, nil
}

func (v *SQLVisitor) Arg(a any) {
	v.args = append(v.args, a)
}

func (v *SQLVisitor) fail(kind error, msg string) error {
	return &RenderError{Kind: kind, Clause: v.clause, Msg: msg}
}

func (v *SQLVisitor) VisitSelect(s *ast.SelectStmt) error {
	stmt, err := v.selectStatement(s)
	if err != nil {
		return err
	}
	v.sb.WriteString(stmt.String())
	return nil
}

// selectStatement renders the core SELECT into its own buffer and hands it
// to the dialect's pagination strategy. Args keep flowing into v.args, so
// placeholder numbering stays in textual order across subqueries.
func (v *SQLVisitor) selectStatement(s *ast.SelectStmt) (dialect.Statement, error) {
	outer, outerClause, outerProjection := v.sb, v.clause, v.inProjection
	v.sb = new(strings.Builder)
	defer func() {
		v.sb, v.clause, v.inProjection = outer, outerClause, outerProjection
	}()

	var rows, offset *int
	if s.Limit != nil {
		rows, offset = s.Limit.Rows, s.Limit.Offset
		v.clause = "limit"
		if rows != nil && *rows < 0 {
			return dialect.Statement{}, v.fail(ErrInvalidPagination, "row count must not be negative")
		}
		if offset != nil && *offset < 0 {
			return dialect.Statement{}, v.fail(ErrInvalidPagination, "offset must not be negative")
		}
		if rows != nil && offset != nil && *offset > math.MaxInt-*rows {
			return dialect.Statement{}, v.fail(ErrInvalidPagination, "offset plus row count overflows")
		}
	}

	if err := v.writeSelectBody(s); err != nil {
		return dialect.Statement{}, err
	}

	stmt := dialect.NewStatement("SELECT", v.sb.String())
	if rows == nil && offset != nil {
		slog.Debug("offset without row count ignored", "dialect", v.dialect.Name(), "offset", *offset)
	}
	return v.dialect.Paginate(stmt, rows, offset), nil
}

func (v *SQLVisitor) writeSelectBody(s *ast.SelectStmt) error {
	if s.Distinct {
		v.sb.WriteString("DISTINCT ")
	}

	v.clause = "projection"
	v.inProjection = true
	written := 0
	for _, col := range s.Columns {
		if ast.IsEmpty(col) {
			continue
		}
		if written > 0 {
			v.sb.WriteString(", ")
		}
		if err := col.Accept(v); err != nil {
			return err
		}
		written++
	}
	if written == 0 {
		v.sb.WriteByte('*')
	}
	v.inProjection = false

	v.clause = "from"
	first := true
	for _, t := range s.From {
		if t == nil {
			continue
		}
		if first {
			v.sb.WriteString(" FROM ")
			first = false
		} else {
			v.sb.WriteString(", ")
		}
		if err := t.Accept(v); err != nil {
			return err
		}
	}

	v.clause = "join"
	for _, j := range s.Joins {
		if err := j.Accept(v); err != nil {
			return err
		}
	}

	if !ast.IsEmpty(s.Where) {
		v.clause = "where"
		v.sb.WriteString(" WHERE ")
		if err := s.Where.Accept(v); err != nil {
			return err
		}
	}

	grouped := !s.GroupBy.Empty()
	if grouped {
		v.clause = "group by"
		if err := s.GroupBy.Accept(v); err != nil {
			return err
		}
	}

	if !ast.IsEmpty(s.Having) {
		v.clause = "having"
		if !grouped && !v.dialect.SupportsStandaloneHaving() {
			return v.fail(ErrUnsupportedDialectOperation, v.dialect.Name()+" requires GROUP BY for HAVING")
		}
		v.sb.WriteString(" HAVING ")
		if err := s.Having.Accept(v); err != nil {
			return err
		}
	}

	v.clause = "order by"
	first = true
	for _, o := range s.OrderBy {
		if o == nil || ast.IsEmpty(o.Expr) {
			continue
		}
		if first {
			v.sb.WriteString(" ORDER BY ")
			first = false
		} else {
			v.sb.WriteString(", ")
		}
		if err := o.Accept(v); err != nil {
			return err
		}
	}
	return nil
}

func (v *SQLVisitor) writeAlias(alias, name string) {
	if !v.inProjection || alias == "" || alias == name {
		return
	}
	v.sb.WriteString(" AS ")
	v.sb.WriteString(v.dialect.QuoteIdentifier(alias))
}

func (v *SQLVisitor) VisitColumn(c *ast.Column) error {
	if c.Table != "" {
		v.sb.WriteString(v.dialect.QuoteIdentifier(c.Table))
		v.sb.WriteByte('.')
	}
	v.sb.WriteString(v.dialect.QuoteIdentifier(c.Name))
	v.writeAlias(c.Alias, c.Name)
	return nil
}

// VisitRaw writes r.SQL verbatim, binding each '?' to the next arg. A '?'
// inside a single-quoted literal is text, and extra '?' characters beyond
// len(r.Args) are left alone.
func (v *SQLVisitor) VisitRaw(r *ast.Raw) error {
	if !r.Included() || ast.IsEmpty(r) {
		return nil
	}
	next := 0
	quoted := false
	for i := 0; i < len(r.SQL); i++ {
		ch := r.SQL[i]
		if ch == '\'' {
			quoted = !quoted
		}
		if ch == '?' && !quoted && next < len(r.Args) {
			v.writeValue(r.Args[next])
			next++
			continue
		}
		v.sb.WriteByte(ch)
	}
	v.writeAlias(r.Alias, "")
	return nil
}

// VisitFunction writes name(arg). The alias belongs to the call, so the
// argument is rendered outside projection context.
func (v *SQLVisitor) VisitFunction(f *ast.Function) error {
	if ast.IsEmpty(f.Arg) {
		return nil
	}
	projection := v.inProjection
	v.inProjection = false

	v.sb.WriteString(f.Name)
	v.sb.WriteByte('(')
	if f.Distinct {
		v.sb.WriteString("DISTINCT ")
	}
	if err := f.Arg.Accept(v); err != nil {
		return err
	}
	v.sb.WriteByte(')')

	v.inProjection = projection
	v.writeAlias(f.Alias, "")
	return nil
}

func (v *SQLVisitor) VisitTable(t *ast.Table) error {
	if t.Sub != nil {
		return v.derivedTable(t)
	}
	if t.Schema != "" {
		v.sb.WriteString(v.dialect.QuoteIdentifier(t.Schema))
		v.sb.WriteByte('.')
	}
	v.sb.WriteString(v.dialect.QuoteIdentifier(t.Name))

	if t.Alias != "" && t.Alias != t.Name {
		v.sb.WriteString(" AS ")
		v.sb.WriteString(v.dialect.QuoteIdentifier(t.Alias))
	}
	return nil
}

// derivedTable writes (SELECT ...) alias. The alias goes without AS, which
// Oracle rejects for tables.
func (v *SQLVisitor) derivedTable(t *ast.Table) error {
	if t.Alias == "" {
		return v.fail(ErrInvalidPredicate, "derived table needs an alias")
	}
	v.sb.WriteByte('(')
	if err := t.Sub.Accept(v); err != nil {
		return err
	}
	v.sb.WriteString(") ")
	v.sb.WriteString(v.dialect.QuoteIdentifier(t.Alias))
	return nil
}

func (v *SQLVisitor) writeValue(val any) {
	if v.inline {
		v.sb.WriteString(v.dialect.RenderValue(val))
		return
	}
	v.Arg(val)
	v.sb.WriteString(v.dialect.Placeholder(len(v.args)))
}

func (v *SQLVisitor) VisitValue(val *ast.Value) error {
	v.writeValue(val.Val)
	return nil
}

func (v *SQLVisitor) VisitArray(a *ast.Array) error {
	v.sb.WriteByte('(')
	for i := range a.Values {
		if i > 0 {
			v.sb.WriteString(", ")
		}
		v.writeValue(a.Values[i].Val)
	}
	v.sb.WriteByte(')')
	return nil
}

func (v *SQLVisitor) VisitSubqueryExpr(s *ast.SubqueryExpr) error {
	if s.Stmt == nil {
		return v.fail(ErrInvalidPredicate, "subquery has no statement")
	}
	v.sb.WriteByte('(')
	if err := s.Stmt.Accept(v); err != nil {
		return err
	}
	v.sb.WriteByte(')')
	return nil
}

func (v *SQLVisitor) VisitNoOp(*ast.NoOp) error {
	return nil
}

func (v *SQLVisitor) VisitGroupedExpr(g *ast.GroupedExpr) error {
	if ast.IsEmpty(g) {
		return nil
	}
	v.sb.WriteByte('(')
	if err := g.Expr.Accept(v); err != nil {
		return err
	}
	v.sb.WriteByte(')')
	return nil
}

func isNullOperand(n ast.Node) bool {
	if n == nil {
		return true
	}
	val, ok := n.(*ast.Value)
	return ok && val.Val == nil
}

func (v *SQLVisitor) VisitBinaryExpr(expr *ast.BinaryExpr) error {
	if ast.IsEmpty(expr) {
		return nil
	}
	op := strings.ToUpper(expr.Operator)
	if ast.IsComparison(op) && isNullOperand(expr.Right) {
		return v.fail(ErrInvalidPredicate, "predicate requires non-null comparison value for "+op)
	}
	if expr.Right == nil {
		return v.fail(ErrInvalidPredicate, "operator "+op+" has no right operand")
	}

	if err := expr.Left.Accept(v); err != nil {
		return err
	}
	v.sb.WriteByte(' ')
	v.sb.WriteString(op)
	v.sb.WriteByte(' ')
	return expr.Right.Accept(v)
}

func (v *SQLVisitor) VisitUnaryExpr(expr *ast.UnaryExpr) error {
	if ast.IsEmpty(expr) {
		return nil
	}
	if expr.IsPrefix {
		v.sb.WriteString(expr.Operator)
		v.sb.WriteByte(' ')
		if _, grouped := expr.Operand.(*ast.GroupedExpr); grouped {
			return expr.Operand.Accept(v)
		}
		v.sb.WriteByte('(')
		if err := expr.Operand.Accept(v); err != nil {
			return err
		}
		v.sb.WriteByte(')')
		return nil
	}

	if err := expr.Operand.Accept(v); err != nil {
		return err
	}
	v.sb.WriteByte(' ')
	v.sb.WriteString(expr.Operator)
	return nil
}

func (v *SQLVisitor) VisitBetweenExpr(b *ast.BetweenExpr) error {
	if ast.IsEmpty(b) {
		return nil
	}
	if isNullOperand(b.Low) || isNullOperand(b.High) {
		return v.fail(ErrInvalidPredicate, "BETWEEN requires non-null bounds")
	}
	lo, loOK := b.Low.(*ast.Value)
	hi, hiOK := b.High.(*ast.Value)
	if loOK && hiOK {
		if c, ok := compareValues(lo.Val, hi.Val); ok && c > 0 {
			return v.fail(ErrInvalidPredicate, "BETWEEN lower bound exceeds upper bound")
		}
	}

	if err := b.Expr.Accept(v); err != nil {
		return err
	}
	if b.Not {
		v.sb.WriteString(" NOT BETWEEN ")
	} else {
		v.sb.WriteString(" BETWEEN ")
	}
	if err := b.Low.Accept(v); err != nil {
		return err
	}
	v.sb.WriteString(" AND ")
	return b.High.Accept(v)
}

// VisitInExpr renders membership tests. An empty value list can never match,
// so it collapses to a constant predicate.
func (v *SQLVisitor) VisitInExpr(in *ast.InExpr) error {
	if ast.IsEmpty(in) {
		return nil
	}
	switch right := in.Right.(type) {
	case *ast.Array:
		if len(right.Values) == 0 {
			if in.Not {
				v.sb.WriteString("1 = 1")
			} else {
				v.sb.WriteString("1 = 0")
			}
			return nil
		}
	case *ast.SubqueryExpr:
	default:
		return v.fail(ErrInvalidPredicate, "IN requires a value list or a subquery")
	}

	if err := in.Expr.Accept(v); err != nil {
		return err
	}
	if in.Not {
		v.sb.WriteString(" NOT IN ")
	} else {
		v.sb.WriteString(" IN ")
	}
	return in.Right.Accept(v)
}

func (v *SQLVisitor) VisitExistsExpr(e *ast.ExistsExpr) error {
	if ast.IsEmpty(e) {
		return nil
	}
	if e.Not {
		v.sb.WriteString("NOT ")
	}
	v.sb.WriteString("EXISTS ")
	return e.Subquery.Accept(v)
}

// VisitLogicalExpr absorbs empty sides and groups a child only when it is a
// logical node of the other operator.
func (v *SQLVisitor) VisitLogicalExpr(l *ast.LogicalExpr) error {
	if ast.IsEmpty(l) {
		return nil
	}
	if eff := ast.Effective(l); eff != ast.Node(l) {
		return eff.Accept(v)
	}

	op := strings.ToUpper(l.Operator)
	if err := v.logicalOperand(l.Left, op); err != nil {
		return err
	}
	v.sb.WriteByte(' ')
	v.sb.WriteString(op)
	v.sb.WriteByte(' ')
	return v.logicalOperand(l.Right, op)
}

func (v *SQLVisitor) logicalOperand(n ast.Node, parentOp string) error {
	n = ast.Effective(n)
	child, ok := n.(*ast.LogicalExpr)
	if !ok || strings.EqualFold(child.Operator, parentOp) {
		return n.Accept(v)
	}
	v.sb.WriteByte('(')
	if err := n.Accept(v); err != nil {
		return err
	}
	v.sb.WriteByte(')')
	return nil
}

func (v *SQLVisitor) VisitJoinClause(clause *ast.JoinClause) error {
	if clause == nil || clause.Table == nil {
		return nil
	}

	v.sb.WriteByte(' ')
	v.sb.WriteString(joinKeyword(clause.JoinType))
	v.sb.WriteByte(' ')
	if err := clause.Table.Accept(v); err != nil {
		return err
	}

	if clause.JoinType == ast.JoinCross || ast.IsEmpty(clause.On) {
		return nil
	}
	v.sb.WriteString(" ON ")
	return clause.On.Accept(v)
}

func joinKeyword(t ast.JoinType) string {
	return t.String() + " JOIN"
}

func (v *SQLVisitor) VisitGroupBy(g *ast.GroupByClause) error {
	if g.Empty() {
		return nil
	}
	v.sb.WriteString(" GROUP BY ")
	first := true
	for _, expr := range g.Exprs {
		if ast.IsEmpty(expr) {
			continue
		}
		if !first {
			v.sb.WriteString(", ")
		}
		first = false
		if err := expr.Accept(v); err != nil {
			return err
		}
	}
	return nil
}

func (v *SQLVisitor) VisitOrderByClause(clause *ast.OrderByClause) error {
	if err := clause.Expr.Accept(v); err != nil {
		return err
	}
	if clause.Desc {
		v.sb.WriteString(" DESC")
	} else {
		v.sb.WriteString(" ASC")
	}
	return nil
}

// VisitLimitClause is a no-op: row limiting is applied to the finished
// statement by the dialect's pagination strategy.
func (v *SQLVisitor) VisitLimitClause(*ast.LimitClause) error {
	return nil
}

var _ ast.Visitor = (*SQLVisitor)(nil)
