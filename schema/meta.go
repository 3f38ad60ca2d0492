package schema

import (
	"reflect"

	"github.com/Konsultn-Engineering/flexsql/ast"
)

// Tabler lets an entity name its own table.
type Tabler interface {
	TableName() string
}

// TableInfo is the table and column naming derived from one struct type.
// It is immutable once returned from a Registry.
type TableInfo struct {
	Type    reflect.Type
	Name    string
	Columns []ColumnInfo

	byField  map[string]int
	byColumn map[string]int
}

type ColumnInfo struct {
	Field      string
	Name       string
	PrimaryKey bool
	Index      []int
}

// Table returns a fresh reference to the entity's table.
func (ti *TableInfo) Table() *ast.Table {
	return ast.NewTable("", ti.Name, "")
}

// Column returns a reference to the column mapped from the Go field name,
// qualified by the table name. A column name is accepted too. Nil means the
// entity has no such field.
func (ti *TableInfo) Column(field string) *ast.Column {
	i, ok := ti.byField[field]
	if !ok {
		if i, ok = ti.byColumn[field]; !ok {
			return nil
		}
	}
	return ast.NewColumn(ti.Name, ti.Columns[i].Name, "")
}

// AllColumns lists every mapped column in field order, ready for a
// projection.
func (ti *TableInfo) AllColumns() []ast.Node {
	nodes := make([]ast.Node, len(ti.Columns))
	for i, c := range ti.Columns {
		nodes[i] = ast.NewColumn(ti.Name, c.Name, "")
	}
	return nodes
}

// PrimaryKey returns the first column tagged pk, or a column named id.
func (ti *TableInfo) PrimaryKey() (ColumnInfo, bool) {
	for _, c := range ti.Columns {
		if c.PrimaryKey {
			return c, true
		}
	}
	if i, ok := ti.byColumn["id"]; ok {
		return ti.Columns[i], true
	}
	return ColumnInfo{}, false
}

func buildTableInfo(t reflect.Type, naming NamingStrategy) *TableInfo {
	ti := &TableInfo{
		Type:     t,
		Name:     naming.TableName(t.Name()),
		byField:  make(map[string]int),
		byColumn: make(map[string]int),
	}
	if tabler, ok := reflect.New(t).Interface().(Tabler); ok {
		if name := tabler.TableName(); name != "" {
			ti.Name = name
		}
	}
	collectColumns(ti, t, nil, naming)
	return ti
}

// collectColumns walks exported fields, flattening untagged embedded structs.
// The first field to claim a column name keeps it.
func collectColumns(ti *TableInfo, t reflect.Type, index []int, naming NamingStrategy) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := parseTag(f.Tag)
		if tag.Skip {
			continue
		}

		idx := append(append([]int(nil), index...), i)
		if f.Anonymous && tag.Name == "" {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				collectColumns(ti, ft, idx, naming)
				continue
			}
		}
		if !f.IsExported() {
			continue
		}

		name := tag.Name
		if name == "" {
			name = naming.ColumnName(f.Name)
		}
		if _, dup := ti.byColumn[name]; dup {
			continue
		}

		ti.byField[f.Name] = len(ti.Columns)
		ti.byColumn[name] = len(ti.Columns)
		ti.Columns = append(ti.Columns, ColumnInfo{
			Field:      f.Name,
			Name:       name,
			PrimaryKey: tag.Primary,
			Index:      idx,
		})
	}
}
