package ast

import (
	"github.com/Konsultn-Engineering/flexsql/utils"
)

type OrderByClause struct {
	Expr Node
	Desc bool
}

func NewOrderByClause(expr Node, desc bool) *OrderByClause {
	return &OrderByClause{Expr: expr, Desc: desc}
}

func (o *OrderByClause) Type() NodeType         { return NodeOrderBy }
func (o *OrderByClause) Accept(v Visitor) error { return v.VisitOrderByClause(o) }
func (o *OrderByClause) Fingerprint() uint64 {
	return utils.MixAll(utils.U64("order:"), fingerprintOf(o.Expr), utils.Bool(o.Desc))
}
