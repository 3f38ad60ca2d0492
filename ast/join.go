package ast

import (
	"strconv"

	"github.com/Konsultn-Engineering/flexsql/utils"
)

type JoinType int

const (
	JoinInner JoinType = iota
	JoinLeft
	JoinRight
	JoinFull
	JoinCross
)

func (t JoinType) String() string {
	switch t {
	case JoinLeft:
		return "LEFT"
	case JoinRight:
		return "RIGHT"
	case JoinFull:
		return "FULL"
	case JoinCross:
		return "CROSS"
	default:
		return "INNER"
	}
}

// JoinClause joins Table with predicate On. On may be nil, and is ignored
// for JoinCross.
type JoinClause struct {
	JoinType JoinType
	Table    *Table
	On       Node
}

func NewJoinClause(joinType JoinType, table *Table, on Node) *JoinClause {
	return &JoinClause{JoinType: joinType, Table: table, On: on}
}

func (j *JoinClause) Type() NodeType         { return NodeJoin }
func (j *JoinClause) Accept(v Visitor) error { return v.VisitJoinClause(j) }

func (j *JoinClause) Fingerprint() uint64 {
	fp := utils.U64("join:" + strconv.Itoa(int(j.JoinType)))
	if j.Table != nil {
		fp = utils.Mix64(fp, j.Table.Fingerprint())
	}
	return utils.Mix64(fp, fingerprintOf(j.On))
}
