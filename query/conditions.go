package query

import (
	"github.com/Konsultn-Engineering/flexsql/ast"
)

// And joins conditions with AND. Nil and empty conditions drop out.
func And(conds ...ast.Node) ast.Node {
	return ast.And(conds...)
}

// Or joins conditions with OR. Nil and empty conditions drop out.
func Or(conds ...ast.Node) ast.Node {
	return ast.Or(conds...)
}

// NoCondition renders to nothing. Handy as the seed of a conditionally
// built predicate.
func NoCondition() ast.Node {
	return &ast.NoOp{}
}

func Exists(sub *SelectBuilder) *ast.ExistsExpr {
	return ast.NewExistsExpr(sub.Subquery(), false)
}

func NotExists(sub *SelectBuilder) *ast.ExistsExpr {
	return ast.NewExistsExpr(sub.Subquery(), true)
}

// Not negates cond.
func Not(cond ast.Node) *ast.UnaryExpr {
	return ast.NewUnaryExpr(cond, ast.OpNot, true)
}

// Raw embeds a hand-written fragment; each '?' binds the next arg.
func Raw(sql string, args ...any) *ast.Raw {
	return ast.NewRaw(sql, args...)
}

// When keeps cond only if ok holds, so optional filters chain without ifs:
//
//	Select().From("users").Where(query.When(Col("name").Eq(name), name != ""))
func When[C ast.Conditional](cond C, ok bool) C {
	return ast.When(cond, ok)
}

// WhenNode is When for compound conditions such as the result of And or Or,
// which carry no inclusion flag of their own.
//
//	sb.Where(query.WhenNode(query.Or(Col("a").Eq(1), Col("b").Eq(2)), filter))
func WhenNode(n ast.Node, ok bool) ast.Node {
	if !ok {
		return &ast.NoOp{}
	}
	return n
}
