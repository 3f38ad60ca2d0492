package ast

import (
	"github.com/Konsultn-Engineering/flexsql/utils"
)

// SelectStmt is the dialect-agnostic description of one SELECT. It is built
// by a single owner and must not be mutated while it is being rendered.
type SelectStmt struct {
	Distinct bool
	Columns  []Node
	From     []*Table
	Joins    []*JoinClause
	Where    Node
	GroupBy  *GroupByClause
	Having   Node
	OrderBy  []*OrderByClause
	Limit    *LimitClause
}

func NewSelectStmt() *SelectStmt {
	return &SelectStmt{}
}

func (s *SelectStmt) Type() NodeType         { return NodeSelect }
func (s *SelectStmt) Accept(v Visitor) error { return v.VisitSelect(s) }
func (s *SelectStmt) Fingerprint() uint64 {
	fp := utils.Mix64(utils.U64("select:"), utils.Bool(s.Distinct))
	for _, col := range s.Columns {
		fp = utils.Mix64(fp, fingerprintOf(col))
	}
	fp = utils.Mix64(fp, utils.U64("from:"))
	for _, t := range s.From {
		if t != nil {
			fp = utils.Mix64(fp, t.Fingerprint())
		}
	}
	for _, j := range s.Joins {
		fp = utils.Mix64(fp, j.Fingerprint())
	}
	fp = utils.Mix64(fp, utils.U64("where:"))
	fp = utils.Mix64(fp, fingerprintOf(s.Where))
	if s.GroupBy != nil {
		fp = utils.Mix64(fp, s.GroupBy.Fingerprint())
	}
	fp = utils.Mix64(fp, utils.U64("having:"))
	fp = utils.Mix64(fp, fingerprintOf(s.Having))
	for _, o := range s.OrderBy {
		fp = utils.Mix64(fp, o.Fingerprint())
	}
	if s.Limit != nil {
		fp = utils.Mix64(fp, s.Limit.Fingerprint())
	}
	return fp
}

// AddWhereCondition combines cond into Where with op (AND or OR).
func (s *SelectStmt) AddWhereCondition(cond Node, op string) {
	s.Where = appendCondition(s.Where, cond, op)
}

func (s *SelectStmt) AddHavingCondition(cond Node, op string) {
	s.Having = appendCondition(s.Having, cond, op)
}

func (s *SelectStmt) AddJoinClause(j *JoinClause) {
	s.Joins = append(s.Joins, j)
}

func (s *SelectStmt) AddOrderByClause(o *OrderByClause) {
	s.OrderBy = append(s.OrderBy, o)
}

// AddGroupBy appends grouping expressions, creating the clause on first use.
func (s *SelectStmt) AddGroupBy(exprs ...Node) {
	if s.GroupBy == nil {
		s.GroupBy = &GroupByClause{}
	}
	s.GroupBy.Exprs = append(s.GroupBy.Exprs, exprs...)
}

func appendCondition(existing, cond Node, op string) Node {
	if cond == nil {
		return existing
	}
	if existing == nil {
		return cond
	}
	if op != OpOr {
		op = OpAnd
	}
	return NewLogicalExpr(existing, op, cond)
}
