package query

import (
	"github.com/Konsultn-Engineering/flexsql/ast"
)

// Fn wraps column in an arbitrary single-argument SQL function. column is
// anything Select accepts; an unsupported value yields an empty argument,
// which makes the whole call render empty.
func Fn(name string, column any) *ast.Function {
	arg, err := toNode(column)
	if err != nil {
		arg = &ast.NoOp{}
	}
	return ast.NewFunction(name, arg)
}

func Max(column any) *ast.Function { return Fn("max", column) }
func Min(column any) *ast.Function { return Fn("min", column) }
func Avg(column any) *ast.Function { return Fn("avg", column) }
func Sum(column any) *ast.Function { return Fn("sum", column) }

// Count with no column counts rows: count(*).
func Count(column ...any) *ast.Function {
	if len(column) == 0 {
		return Fn("count", "*")
	}
	return Fn("count", column[0])
}

func CountDistinct(column any) *ast.Function {
	f := Fn("count", column)
	f.Distinct = true
	return f
}
