package ast

import (
	"github.com/Konsultn-Engineering/flexsql/utils"
)

var noOpFingerprint = utils.U64("noop")

// inclusion is embedded by every predicate node. A node whose inclusion has
// been switched off renders exactly like NoOp.
type inclusion struct {
	excluded bool
}

func (i *inclusion) Included() bool       { return !i.excluded }
func (i *inclusion) setIncluded(ok bool) { i.excluded = !ok }

// Conditional is a predicate node that carries an inclusion flag.
type Conditional interface {
	Node
	Included() bool
	setIncluded(ok bool)
}

// When switches c on or off and returns it.
//
//	ast.When(ast.Eq("status", 1), filterByStatus)
func When[C Conditional](c C, ok bool) C {
	c.setIncluded(ok)
	return c
}

// NoOp is the predicate that renders to nothing. AND/OR absorb it.
type NoOp struct{}

func (n *NoOp) Type() NodeType         { return NodeNoOp }
func (n *NoOp) Accept(v Visitor) error { return v.VisitNoOp(n) }
func (n *NoOp) Fingerprint() uint64    { return noOpFingerprint }

// BinaryExpr is an infix comparison: =, <>, <, >=, LIKE and friends.
type BinaryExpr struct {
	inclusion
	Left     Node
	Operator string
	Right    Node
}

func NewBinaryExpr(left Node, op string, right Node) *BinaryExpr {
	return &BinaryExpr{Left: left, Operator: op, Right: right}
}

func (b *BinaryExpr) Type() NodeType         { return NodeBinaryExpr }
func (b *BinaryExpr) Accept(v Visitor) error { return v.VisitBinaryExpr(b) }
func (b *BinaryExpr) Fingerprint() uint64 {
	if !b.Included() {
		return noOpFingerprint
	}
	return utils.MixAll(utils.U64("bin:"+b.Operator), fingerprintOf(b.Left), fingerprintOf(b.Right))
}

// UnaryExpr covers IS NULL / IS NOT NULL (postfix) and NOT (prefix).
type UnaryExpr struct {
	inclusion
	Operator string
	Operand  Node
	IsPrefix bool
}

func NewUnaryExpr(operand Node, op string, prefix bool) *UnaryExpr {
	return &UnaryExpr{Operand: operand, Operator: op, IsPrefix: prefix}
}

func (u *UnaryExpr) Type() NodeType         { return NodeUnaryExpr }
func (u *UnaryExpr) Accept(v Visitor) error { return v.VisitUnaryExpr(u) }
func (u *UnaryExpr) Fingerprint() uint64 {
	if !u.Included() {
		return noOpFingerprint
	}
	return utils.MixAll(utils.U64("unary:"+u.Operator), utils.Bool(u.IsPrefix), fingerprintOf(u.Operand))
}

type BetweenExpr struct {
	inclusion
	Expr Node
	Low  Node
	High Node
	Not  bool
}

func NewBetweenExpr(expr, low, high Node, not bool) *BetweenExpr {
	return &BetweenExpr{Expr: expr, Low: low, High: high, Not: not}
}

func (b *BetweenExpr) Type() NodeType         { return NodeBetweenExpr }
func (b *BetweenExpr) Accept(v Visitor) error { return v.VisitBetweenExpr(b) }
func (b *BetweenExpr) Fingerprint() uint64 {
	if !b.Included() {
		return noOpFingerprint
	}
	return utils.MixAll(utils.U64("between:"), utils.Bool(b.Not),
		fingerprintOf(b.Expr), fingerprintOf(b.Low), fingerprintOf(b.High))
}

// InExpr tests membership. Right is either an *Array or a *SubqueryExpr.
type InExpr struct {
	inclusion
	Expr  Node
	Right Node
	Not   bool
}

func NewInExpr(expr, right Node, not bool) *InExpr {
	return &InExpr{Expr: expr, Right: right, Not: not}
}

func (i *InExpr) Type() NodeType         { return NodeInExpr }
func (i *InExpr) Accept(v Visitor) error { return v.VisitInExpr(i) }
func (i *InExpr) Fingerprint() uint64 {
	if !i.Included() {
		return noOpFingerprint
	}
	return utils.MixAll(utils.U64("in:"), utils.Bool(i.Not), fingerprintOf(i.Expr), fingerprintOf(i.Right))
}

type ExistsExpr struct {
	inclusion
	Subquery *SubqueryExpr
	Not      bool
}

func NewExistsExpr(sub *SubqueryExpr, not bool) *ExistsExpr {
	return &ExistsExpr{Subquery: sub, Not: not}
}

func (e *ExistsExpr) Type() NodeType         { return NodeExistsExpr }
func (e *ExistsExpr) Accept(v Visitor) error { return v.VisitExistsExpr(e) }
func (e *ExistsExpr) Fingerprint() uint64 {
	if !e.Included() || e.Subquery == nil {
		return noOpFingerprint
	}
	return utils.MixAll(utils.U64("exists:"), utils.Bool(e.Not), e.Subquery.Fingerprint())
}

// LogicalExpr joins two predicates with AND or OR.
type LogicalExpr struct {
	inclusion
	Operator string
	Left     Node
	Right    Node
}

func NewLogicalExpr(left Node, op string, right Node) *LogicalExpr {
	return &LogicalExpr{Left: left, Operator: op, Right: right}
}

func (l *LogicalExpr) Type() NodeType         { return NodeLogicalExpr }
func (l *LogicalExpr) Accept(v Visitor) error { return v.VisitLogicalExpr(l) }
func (l *LogicalExpr) Fingerprint() uint64 {
	if !l.Included() {
		return noOpFingerprint
	}
	return utils.MixAll(utils.U64("logical:"+l.Operator), fingerprintOf(l.Left), fingerprintOf(l.Right))
}

// GroupedExpr forces parentheses around Expr.
type GroupedExpr struct {
	inclusion
	Expr Node
}

func (g *GroupedExpr) Type() NodeType {
	return NodeGroupedExpr
}

func (g *GroupedExpr) Accept(v Visitor) error {
	return v.VisitGroupedExpr(g)
}

func (g *GroupedExpr) Fingerprint() uint64 {
	if !g.Included() || g.Expr == nil {
		return noOpFingerprint
	}
	return utils.Mix64(utils.U64("group:"), g.Expr.Fingerprint())
}

// And combines predicates left-deep; nil entries are skipped.
func And(conds ...Node) Node {
	return combine(OpAnd, conds)
}

// Or combines predicates left-deep; nil entries are skipped.
func Or(conds ...Node) Node {
	return combine(OpOr, conds)
}

func combine(op string, conds []Node) Node {
	var acc Node
	for _, c := range conds {
		if c == nil {
			continue
		}
		if acc == nil {
			acc = c
			continue
		}
		acc = NewLogicalExpr(acc, op, c)
	}
	if acc == nil {
		return &NoOp{}
	}
	return acc
}
