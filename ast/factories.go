package ast

import "strings"

// Col parses "name", "table.name" and "table.name AS alias" into a Column.
func Col(ref string) *Column {
	ref = strings.TrimSpace(ref)
	var alias string
	if i := strings.Index(strings.ToUpper(ref), " AS "); i >= 0 {
		alias = strings.TrimSpace(ref[i+4:])
		ref = strings.TrimSpace(ref[:i])
	}
	if i := strings.LastIndex(ref, "."); i >= 0 {
		return NewColumn(ref[:i], ref[i+1:], alias)
	}
	return NewColumn("", ref, alias)
}

func Columns(names ...string) []Node {
	nodes := make([]Node, len(names))
	for i, name := range names {
		nodes[i] = Col(name)
	}
	return nodes
}

func AllColumns() []Node {
	return []Node{NewColumn("", "*", "")}
}

func Eq(column string, value any) *BinaryExpr {
	return NewBinaryExpr(Col(column), OpEqual, NewValue(value))
}

func In(column string, values ...any) *InExpr {
	return NewInExpr(Col(column), NewArray(values), false)
}

func Like(column string, pattern string) *BinaryExpr {
	return NewBinaryExpr(Col(column), OpLike, NewValue(pattern))
}

func OrderBy(column string, desc bool) *OrderByClause {
	return NewOrderByClause(Col(column), desc)
}

func Limit(rows int) *LimitClause {
	return NewLimitClause(Ptr(rows), nil)
}

func LimitOffset(rows, offset int) *LimitClause {
	return NewLimitClause(Ptr(rows), Ptr(offset))
}

// JoinOn builds the usual equality join predicate leftTable.leftColumn = rightTable.rightColumn.
func JoinOn(leftTable, leftColumn, rightTable, rightColumn string) Node {
	return NewBinaryExpr(
		NewColumn(leftTable, leftColumn, ""),
		OpEqual,
		NewColumn(rightTable, rightColumn, ""),
	)
}
