// Package flexsql compiles abstract SELECT queries into SQL text for many
// database dialects. A query is built once with the fluent builder (or
// loaded from a YAML document) and rendered for any registered dialect;
// pagination is rewritten with that dialect's own strategy.
//
//	sql, args, err := flexsql.Select("id", "name").
//		From("account").
//		Where(query.Col("id").Ge(100)).
//		LimitOffset(10, 10).
//		BuildFor("oracle")
package flexsql

import (
	"github.com/Konsultn-Engineering/flexsql/ast"
	"github.com/Konsultn-Engineering/flexsql/dialect"
	"github.com/Konsultn-Engineering/flexsql/query"
	"github.com/Konsultn-Engineering/flexsql/schema"
	"github.com/Konsultn-Engineering/flexsql/visitor"
)

// Select starts a query. See query.Select.
func Select(columns ...any) *query.SelectBuilder {
	return query.Select(columns...)
}

// Model starts a query over the table an entity maps to, projecting every
// mapped column. The entity's metadata is resolved through the package
// schema registry.
func Model(entity any) (*query.SelectBuilder, error) {
	ti, err := schema.Of(entity)
	if err != nil {
		return nil, err
	}
	sb := query.Select()
	for _, c := range ti.AllColumns() {
		sb.Columns(c)
	}
	return sb.FromTable(ti.Table()), nil
}

// Render renders a prepared statement tree for d without caching.
func Render(root ast.Node, d dialect.Dialect, opts ...visitor.Option) (string, []any, error) {
	return visitor.Render(root, d, nil, opts...)
}

// RenderFor is Render against the registered dialect called name.
func RenderFor(root ast.Node, name string, opts ...visitor.Option) (string, []any, error) {
	d, err := dialect.Lookup(name)
	if err != nil {
		return "", nil, err
	}
	return Render(root, d, opts...)
}
