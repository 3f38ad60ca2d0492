package ast

// IsEmpty reports whether n renders to no text at all. The answer is
// structural, so a renderer can decide separators before emitting anything.
func IsEmpty(n Node) bool {
	if n == nil {
		return true
	}
	if c, ok := n.(Conditional); ok && !c.Included() {
		return true
	}
	switch x := n.(type) {
	case *NoOp:
		return true
	case *Column:
		return blank(x.Name)
	case *Raw:
		return blank(x.SQL)
	case *Function:
		return IsEmpty(x.Arg)
	case *LogicalExpr:
		return IsEmpty(x.Left) && IsEmpty(x.Right)
	case *GroupedExpr:
		return IsEmpty(x.Expr)
	case *BinaryExpr:
		return IsEmpty(x.Left)
	case *UnaryExpr:
		return IsEmpty(x.Operand)
	case *BetweenExpr:
		return IsEmpty(x.Expr)
	case *InExpr:
		return IsEmpty(x.Expr)
	case *ExistsExpr:
		return x.Subquery == nil || x.Subquery.Stmt == nil
	}
	return false
}

// Effective strips logical nodes that collapse to one side because the other
// side is empty. The result is what will actually be rendered in n's place.
func Effective(n Node) Node {
	for {
		l, ok := n.(*LogicalExpr)
		if !ok || !l.Included() {
			return n
		}
		switch {
		case IsEmpty(l.Left):
			n = l.Right
		case IsEmpty(l.Right):
			n = l.Left
		default:
			return n
		}
	}
}
