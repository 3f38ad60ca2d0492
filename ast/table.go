package ast

import "github.com/Konsultn-Engineering/flexsql/utils"

// Table is a FROM source. With Sub set it is a derived table and Alias is
// required; Schema and Name are ignored.
type Table struct {
	Schema string
	Name   string
	Alias  string
	Sub    *SelectStmt
}

func NewTable(schema, name, alias string) *Table {
	return &Table{Schema: schema, Name: name, Alias: alias}
}

// NewDerivedTable uses the rows of sub as a table called alias.
func NewDerivedTable(sub *SelectStmt, alias string) *Table {
	return &Table{Alias: alias, Sub: sub}
}

func (t *Table) As(alias string) *Table {
	t.Alias = alias
	return t
}

// SameTable reports whether both references name the same table.
// Alias and schema do not take part in identity.
func (t *Table) SameTable(other *Table) bool {
	return t != nil && other != nil && t.Name == other.Name
}

// Ref is the name columns should use to qualify themselves against t.
func (t *Table) Ref() string {
	if t.Alias != "" {
		return t.Alias
	}
	return t.Name
}

func (t *Table) Type() NodeType         { return NodeTable }
func (t *Table) Accept(v Visitor) error { return v.VisitTable(t) }
func (t *Table) Fingerprint() uint64 {
	s := t.Schema + "." + t.Name + "." + t.Alias
	if t.Sub != nil {
		return utils.Mix64(utils.FingerprintString("derived:"+s), t.Sub.Fingerprint())
	}
	return utils.FingerprintString(s)
}
