package ast

import (
	"github.com/Konsultn-Engineering/flexsql/utils"
)

// Function wraps a single argument in an SQL function call such as
// max(age) or count(DISTINCT id). Alias applies to the call, never to Arg.
type Function struct {
	Name     string
	Arg      Node
	Distinct bool
	Alias    string
}

func NewFunction(name string, arg Node) *Function {
	return &Function{Name: name, Arg: arg}
}

// As aliases the whole call expression.
func (f *Function) As(alias string) *Function {
	f.Alias = alias
	return f
}

func (f *Function) Type() NodeType         { return NodeFunction }
func (f *Function) Accept(v Visitor) error { return v.VisitFunction(f) }
func (f *Function) Fingerprint() uint64 {
	return utils.MixAll(
		utils.U64("func:"+f.Name+":"+f.Alias),
		utils.Bool(f.Distinct),
		fingerprintOf(f.Arg),
	)
}
