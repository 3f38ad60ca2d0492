package ast

import (
	"strconv"

	"github.com/Konsultn-Engineering/flexsql/utils"
)

// LimitClause requests a window of Rows rows starting after Offset rows.
// Either may be nil.
type LimitClause struct {
	Rows   *int
	Offset *int
}

func NewLimitClause(rows, offset *int) *LimitClause {
	return &LimitClause{Rows: rows, Offset: offset}
}

func (l *LimitClause) Type() NodeType         { return NodeLimit }
func (l *LimitClause) Accept(v Visitor) error { return v.VisitLimitClause(l) }
func (l *LimitClause) Fingerprint() uint64 {
	s := "limit:"
	if l.Rows != nil {
		s += strconv.Itoa(*l.Rows)
	}
	s += ":"
	if l.Offset != nil {
		s += strconv.Itoa(*l.Offset)
	}
	return utils.U64(s)
}

// Ptr is a convenience for building limit bounds inline.
func Ptr(n int) *int {
	return &n
}
