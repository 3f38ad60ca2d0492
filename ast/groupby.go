package ast

import (
	"github.com/Konsultn-Engineering/flexsql/utils"
)

type GroupByClause struct {
	Exprs []Node
}

func (g *GroupByClause) Type() NodeType         { return NodeGroupBy }
func (g *GroupByClause) Accept(v Visitor) error { return v.VisitGroupBy(g) }
func (g *GroupByClause) Fingerprint() uint64 {
	fp := utils.U64("groupby:")
	for _, expr := range g.Exprs {
		fp = utils.Mix64(fp, fingerprintOf(expr))
	}
	return fp
}

// Empty reports whether no grouping expression would render.
func (g *GroupByClause) Empty() bool {
	if g == nil {
		return true
	}
	for _, e := range g.Exprs {
		if !IsEmpty(e) {
			return false
		}
	}
	return true
}
