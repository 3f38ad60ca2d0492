package query

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Konsultn-Engineering/flexsql/ast"
)

var ErrInvalidDocument = errors.New("query: invalid document")

// Document is a query written as YAML:
//
//	columns: [id, name, "max(age) AS oldest"]
//	from: [account]
//	where:
//	  - {column: id, op: ge, value: 100}
//	  - {column: name, op: prefix, value: michael}
//	limit: 10
//	offset: 10
type Document struct {
	Distinct bool        `yaml:"distinct"`
	Columns  []string    `yaml:"columns"`
	From     []string    `yaml:"from"`
	Joins    []JoinDoc   `yaml:"joins"`
	Where    []Condition `yaml:"where"`
	GroupBy  []string    `yaml:"group_by"`
	Having   []Condition `yaml:"having"`
	OrderBy  []string    `yaml:"order_by"`
	Limit    *int        `yaml:"limit"`
	Offset   *int        `yaml:"offset"`
}

type JoinDoc struct {
	Type  string `yaml:"type"`
	Table string `yaml:"table"`
	On    string `yaml:"on"`
}

// Condition is one predicate. Exactly one of Column, Raw, Any or All is
// expected. Any groups its children with OR, All with AND. When: false
// drops the condition.
type Condition struct {
	Column string      `yaml:"column"`
	Op     string      `yaml:"op"`
	Value  any         `yaml:"value"`
	Values []any       `yaml:"values"`
	Raw    string      `yaml:"raw"`
	Args   []any       `yaml:"args"`
	Any    []Condition `yaml:"any"`
	All    []Condition `yaml:"all"`
	When   *bool       `yaml:"when"`
}

// ParseDocument decodes a YAML query document. Unknown keys are rejected.
func ParseDocument(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &doc, nil
}

func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read query document: %w", err)
	}
	return ParseDocument(data)
}

var functionColumn = regexp.MustCompile(`(?i)^(\w+)\(\s*(distinct\s+)?([^()]*?)\s*\)(?:\s+as\s+(\w+))?$`)

// projection turns "max(age) AS oldest" into a function column and anything
// else into a plain column reference.
func projection(expr string) ast.Node {
	expr = strings.TrimSpace(expr)
	m := functionColumn.FindStringSubmatch(expr)
	if m == nil {
		return Col(expr).Build()
	}
	f := ast.NewFunction(strings.ToLower(m[1]), Col(m[3]).ref())
	f.Distinct = m[2] != ""
	f.Alias = m[4]
	return f
}

// Builder turns the document into a SelectBuilder. Malformed conditions
// are reported through the builder's error list.
func (d *Document) Builder() *SelectBuilder {
	sb := Select()
	for _, c := range d.Columns {
		sb.Columns(projection(c))
	}
	if d.Distinct {
		sb.Distinct()
	}
	sb.From(d.From...)

	for _, j := range d.Joins {
		switch strings.ToLower(strings.TrimSpace(j.Type)) {
		case "", "inner":
			sb.InnerJoin(j.Table)
		case "left":
			sb.LeftJoin(j.Table)
		case "right":
			sb.RightJoin(j.Table)
		case "full":
			sb.FullJoin(j.Table)
		case "cross":
			sb.CrossJoin(j.Table)
			continue
		default:
			sb.AddError(fmt.Errorf("%w: join type %q", ErrInvalidDocument, j.Type))
			continue
		}
		if j.On == "" {
			continue
		}
		left, right, ok := strings.Cut(j.On, "=")
		if !ok {
			sb.AddError(fmt.Errorf("%w: join condition %q must be left = right", ErrInvalidDocument, j.On))
			continue
		}
		sb.On(strings.TrimSpace(left), strings.TrimSpace(right))
	}

	for _, c := range d.Where {
		sb.Where(sb.condition(c))
	}
	for _, g := range d.GroupBy {
		sb.GroupBy(projection(g))
	}
	for _, c := range d.Having {
		sb.Having(sb.condition(c))
	}
	for _, o := range d.OrderBy {
		fields := strings.Fields(o)
		if len(fields) == 0 {
			continue
		}
		desc := len(fields) > 1 && strings.EqualFold(fields[len(fields)-1], "desc")
		sb.OrderBy(ast.NewOrderByClause(projection(fields[0]), desc))
	}

	if d.Limit != nil {
		sb.Limit(*d.Limit)
	}
	if d.Offset != nil {
		sb.Offset(*d.Offset)
	}
	return sb
}

func (sb *SelectBuilder) condition(c Condition) ast.Node {
	node := sb.conditionNode(c)
	if c.When != nil && !*c.When {
		return &ast.NoOp{}
	}
	return node
}

func (sb *SelectBuilder) conditionNode(c Condition) ast.Node {
	switch {
	case len(c.Any) > 0:
		return sb.group(c.Any, ast.Or)
	case len(c.All) > 0:
		return sb.group(c.All, ast.And)
	case c.Raw != "":
		return Raw(c.Raw, c.Args...)
	case c.Column == "":
		sb.AddError(fmt.Errorf("%w: condition needs column, raw, any or all", ErrInvalidDocument))
		return &ast.NoOp{}
	}

	var lhs ast.Node = Col(c.Column).ref()
	if functionColumn.MatchString(c.Column) {
		f := projection(c.Column).(*ast.Function)
		f.Alias = ""
		lhs = f
	}
	op := strings.ToLower(strings.TrimSpace(c.Op))

	switch op {
	case "", "eq", "=":
		return ast.NewBinaryExpr(lhs, ast.OpEqual, ast.NewValue(c.Value))
	case "ne", "!=", "<>":
		return ast.NewBinaryExpr(lhs, ast.OpNotEqualAlt, ast.NewValue(c.Value))
	case "gt", ">":
		return ast.NewBinaryExpr(lhs, ast.OpGreaterThan, ast.NewValue(c.Value))
	case "ge", ">=":
		return ast.NewBinaryExpr(lhs, ast.OpGreaterThanOrEqual, ast.NewValue(c.Value))
	case "lt", "<":
		return ast.NewBinaryExpr(lhs, ast.OpLessThan, ast.NewValue(c.Value))
	case "le", "<=":
		return ast.NewBinaryExpr(lhs, ast.OpLessThanOrEqual, ast.NewValue(c.Value))
	case "like":
		return ast.NewBinaryExpr(lhs, ast.OpLike, ast.NewValue(c.Value))
	case "not_like":
		return ast.NewBinaryExpr(lhs, ast.OpNotLike, ast.NewValue(c.Value))
	case "contains", "prefix", "suffix":
		if c.Value == nil {
			sb.AddError(fmt.Errorf("%w: %s on %s needs a value", ErrInvalidDocument, op, c.Column))
			return &ast.NoOp{}
		}
		pattern := fmt.Sprint(c.Value)
		switch op {
		case "contains":
			pattern = "%" + pattern + "%"
		case "prefix":
			pattern += "%"
		default:
			pattern = "%" + pattern
		}
		return ast.NewBinaryExpr(lhs, ast.OpLike, ast.NewValue(pattern))
	case "in", "not_in":
		return ast.NewInExpr(lhs, ast.NewArray(c.Values), op == "not_in")
	case "between", "not_between":
		if len(c.Values) != 2 {
			sb.AddError(fmt.Errorf("%w: %s on %s needs exactly two values", ErrInvalidDocument, op, c.Column))
			return &ast.NoOp{}
		}
		return ast.NewBetweenExpr(lhs, ast.NewValue(c.Values[0]), ast.NewValue(c.Values[1]), op == "not_between")
	case "is_null":
		return ast.NewUnaryExpr(lhs, ast.OpIsNull, false)
	case "is_not_null":
		return ast.NewUnaryExpr(lhs, ast.OpIsNotNull, false)
	}
	sb.AddError(fmt.Errorf("%w: unknown operator %q", ErrInvalidDocument, c.Op))
	return &ast.NoOp{}
}

func (sb *SelectBuilder) group(conds []Condition, combine func(...ast.Node) ast.Node) ast.Node {
	nodes := make([]ast.Node, 0, len(conds))
	for _, c := range conds {
		nodes = append(nodes, sb.condition(c))
	}
	return combine(nodes...)
}
