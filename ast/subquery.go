package ast

import (
	"github.com/Konsultn-Engineering/flexsql/utils"
)

type SubqueryExpr struct {
	Stmt *SelectStmt
}

func NewSubqueryExpr(stmt *SelectStmt) *SubqueryExpr {
	return &SubqueryExpr{Stmt: stmt}
}

func (s *SubqueryExpr) Type() NodeType {
	return NodeSubqueryExpr
}

func (s *SubqueryExpr) Accept(v Visitor) error {
	return v.VisitSubqueryExpr(s)
}

func (s *SubqueryExpr) Fingerprint() uint64 {
	fp := utils.U64("SubqueryExpr")
	if s.Stmt != nil {
		fp = utils.Mix64(fp, s.Stmt.Fingerprint())
	}
	return fp
}
