package query

import (
	"strings"

	"github.com/Konsultn-Engineering/flexsql/ast"
)

// Col is the fluent API entry point. name accepts "col", "table.col" and
// "table.col AS alias".
func Col(name string) *ColumnBuilder {
	table, col, alias := parseColumnString(name)
	return &ColumnBuilder{table: table, name: col, alias: alias}
}

// ColumnBuilder provides fluent API for complex column specs
type ColumnBuilder struct {
	table string
	name  string
	alias string
}

func (cb *ColumnBuilder) From(table string) *ColumnBuilder {
	cb.table = table
	return cb
}

func (cb *ColumnBuilder) As(alias string) *ColumnBuilder {
	cb.alias = alias
	return cb
}

func (cb *ColumnBuilder) Build() *ast.Column {
	return ast.NewColumn(cb.table, cb.name, cb.alias)
}

// ref is the column without its alias, for use inside predicates.
func (cb *ColumnBuilder) ref() *ast.Column {
	return ast.NewColumn(cb.table, cb.name, "")
}

func (cb *ColumnBuilder) compare(op string, v any) *ast.BinaryExpr {
	return ast.NewBinaryExpr(cb.ref(), op, operand(v))
}

// operand turns the right side of a comparison into a node. Builders become
// subqueries, nodes are used as they are and anything else is a bound value.
func operand(v any) ast.Node {
	switch x := v.(type) {
	case *SelectBuilder:
		return x.Subquery()
	case *ast.SelectStmt:
		return ast.NewSubqueryExpr(x)
	case *ColumnBuilder:
		return x.ref()
	case ast.Node:
		return x
	default:
		return ast.NewValue(v)
	}
}

func (cb *ColumnBuilder) Eq(v any) *ast.BinaryExpr { return cb.compare(ast.OpEqual, v) }
func (cb *ColumnBuilder) Ne(v any) *ast.BinaryExpr { return cb.compare(ast.OpNotEqualAlt, v) }
func (cb *ColumnBuilder) Gt(v any) *ast.BinaryExpr { return cb.compare(ast.OpGreaterThan, v) }
func (cb *ColumnBuilder) Ge(v any) *ast.BinaryExpr { return cb.compare(ast.OpGreaterThanOrEqual, v) }
func (cb *ColumnBuilder) Lt(v any) *ast.BinaryExpr { return cb.compare(ast.OpLessThan, v) }
func (cb *ColumnBuilder) Le(v any) *ast.BinaryExpr { return cb.compare(ast.OpLessThanOrEqual, v) }

// EqCol compares against another column rather than a value.
func (cb *ColumnBuilder) EqCol(other string) *ast.BinaryExpr {
	return ast.NewBinaryExpr(cb.ref(), ast.OpEqual, Col(other).ref())
}

func (cb *ColumnBuilder) Like(pattern string) *ast.BinaryExpr {
	return cb.compare(ast.OpLike, pattern)
}

func (cb *ColumnBuilder) NotLike(pattern string) *ast.BinaryExpr {
	return cb.compare(ast.OpNotLike, pattern)
}

// Contains matches s anywhere in the column: LIKE '%s%'.
func (cb *ColumnBuilder) Contains(s string) *ast.BinaryExpr {
	return cb.Like("%" + s + "%")
}

// HasPrefix is LIKE 's%'.
func (cb *ColumnBuilder) HasPrefix(s string) *ast.BinaryExpr {
	return cb.Like(s + "%")
}

// HasSuffix is LIKE '%s'.
func (cb *ColumnBuilder) HasSuffix(s string) *ast.BinaryExpr {
	return cb.Like("%" + s)
}

func (cb *ColumnBuilder) In(values ...any) *ast.InExpr {
	return ast.NewInExpr(cb.ref(), ast.NewArray(values), false)
}

func (cb *ColumnBuilder) NotIn(values ...any) *ast.InExpr {
	return ast.NewInExpr(cb.ref(), ast.NewArray(values), true)
}

// InQuery tests membership in the rows produced by sub.
func (cb *ColumnBuilder) InQuery(sub *SelectBuilder) *ast.InExpr {
	return ast.NewInExpr(cb.ref(), sub.Subquery(), false)
}

func (cb *ColumnBuilder) NotInQuery(sub *SelectBuilder) *ast.InExpr {
	return ast.NewInExpr(cb.ref(), sub.Subquery(), true)
}

func (cb *ColumnBuilder) Between(low, high any) *ast.BetweenExpr {
	return ast.NewBetweenExpr(cb.ref(), operand(low), operand(high), false)
}

func (cb *ColumnBuilder) NotBetween(low, high any) *ast.BetweenExpr {
	return ast.NewBetweenExpr(cb.ref(), operand(low), operand(high), true)
}

func (cb *ColumnBuilder) IsNull() *ast.UnaryExpr {
	return ast.NewUnaryExpr(cb.ref(), ast.OpIsNull, false)
}

func (cb *ColumnBuilder) IsNotNull() *ast.UnaryExpr {
	return ast.NewUnaryExpr(cb.ref(), ast.OpIsNotNull, false)
}

func (cb *ColumnBuilder) Asc() *ast.OrderByClause {
	return ast.NewOrderByClause(cb.ref(), false)
}

func (cb *ColumnBuilder) Desc() *ast.OrderByClause {
	return ast.NewOrderByClause(cb.ref(), true)
}

// parseColumnString efficiently parses "table.column AS alias" formats
// Returns table, name, alias (any can be empty)
func parseColumnString(ref string) (table, name, alias string) {
	ref = strings.TrimSpace(ref)
	// Handle AS clause first
	if asIdx := strings.Index(strings.ToUpper(ref), " AS "); asIdx > 0 {
		alias = strings.TrimSpace(ref[asIdx+4:])
		ref = strings.TrimSpace(ref[:asIdx])
	}

	// Handle table.column; the last dot wins so schema.table.column works
	if dotIdx := strings.LastIndex(ref, "."); dotIdx > 0 {
		table = ref[:dotIdx]
		name = ref[dotIdx+1:]
	} else {
		name = ref
	}

	return
}

// parseTableString accepts "table", "schema.table", "table alias" and
// "table AS alias".
func parseTableString(s string) *ast.Table {
	fields := strings.Fields(s)
	var ref, alias string
	switch {
	case len(fields) == 0:
		return ast.NewTable("", "", "")
	case len(fields) >= 3 && strings.EqualFold(fields[1], "AS"):
		ref, alias = fields[0], fields[2]
	case len(fields) >= 2:
		ref, alias = fields[0], fields[1]
	default:
		ref = fields[0]
	}
	if i := strings.LastIndex(ref, "."); i > 0 {
		return ast.NewTable(ref[:i], ref[i+1:], alias)
	}
	return ast.NewTable("", ref, alias)
}
