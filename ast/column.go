package ast

import (
	"strings"

	"github.com/Konsultn-Engineering/flexsql/utils"
)

// Column references a table column. Table is the qualifier and may hold
// either a table name or a table alias.
type Column struct {
	Table string
	Name  string
	Alias string
}

func NewColumn(table, name, alias string) *Column {
	return &Column{Table: table, Name: name, Alias: alias}
}

// As sets the output alias and returns the column for chaining.
func (c *Column) As(alias string) *Column {
	c.Alias = alias
	return c
}

func (c *Column) Type() NodeType         { return NodeColumn }
func (c *Column) Accept(v Visitor) error { return v.VisitColumn(c) }
func (c *Column) Fingerprint() uint64 {
	return utils.FingerprintString("col:" + c.Table + "." + c.Name + ":" + c.Alias)
}

// Raw is a verbatim SQL fragment. Each '?' outside a single-quoted literal
// binds the next element of Args. Used for computed projections and
// hand-written conditions.
type Raw struct {
	inclusion
	SQL   string
	Args  []any
	Alias string
}

func NewRaw(sql string, args ...any) *Raw {
	return &Raw{SQL: sql, Args: args}
}

func (r *Raw) As(alias string) *Raw {
	r.Alias = alias
	return r
}

func (r *Raw) Type() NodeType         { return NodeRaw }
func (r *Raw) Accept(v Visitor) error { return v.VisitRaw(r) }
func (r *Raw) Fingerprint() uint64 {
	if !r.Included() {
		return noOpFingerprint
	}
	fp := utils.FingerprintString("raw:" + r.SQL + ":" + r.Alias)
	for _, a := range r.Args {
		fp = utils.Mix64(fp, utils.FingerprintValue(a))
	}
	return fp
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
