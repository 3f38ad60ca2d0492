package ast

type NodeType int

const (
	NodeSelect NodeType = iota
	NodeColumn
	NodeRaw
	NodeTable
	NodeValue
	NodeArray
	NodeFunction
	NodeGroupedExpr
	NodeBinaryExpr
	NodeUnaryExpr
	NodeBetweenExpr
	NodeInExpr
	NodeExistsExpr
	NodeLogicalExpr
	NodeNoOp
	NodeSubqueryExpr
	NodeJoin
	NodeGroupBy
	NodeOrderBy
	NodeLimit
)

type Node interface {
	Type() NodeType
	Accept(v Visitor) error
	Fingerprint() uint64
}

func fingerprintOf(n Node) uint64 {
	if n == nil {
		return 0
	}
	return n.Fingerprint()
}
