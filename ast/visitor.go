package ast

type Visitor interface {
	VisitSelect(*SelectStmt) error

	VisitColumn(*Column) error
	VisitRaw(*Raw) error
	VisitFunction(*Function) error
	VisitTable(*Table) error
	VisitValue(*Value) error
	VisitArray(*Array) error
	VisitSubqueryExpr(*SubqueryExpr) error

	VisitBinaryExpr(*BinaryExpr) error
	VisitUnaryExpr(*UnaryExpr) error
	VisitBetweenExpr(*BetweenExpr) error
	VisitInExpr(*InExpr) error
	VisitExistsExpr(*ExistsExpr) error
	VisitLogicalExpr(*LogicalExpr) error
	VisitGroupedExpr(*GroupedExpr) error
	VisitNoOp(*NoOp) error

	VisitJoinClause(*JoinClause) error
	VisitGroupBy(*GroupByClause) error
	VisitOrderByClause(*OrderByClause) error
	VisitLimitClause(*LimitClause) error
	Build(root Node) (string, []any, error)
	Release()
}
