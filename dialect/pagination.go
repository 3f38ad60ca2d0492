package dialect

import (
	"strconv"
	"strings"
)

// Statement is a rendered statement split at the points pagination needs.
// Prefix forms (TOP, FIRST, SKIP) land in Modifiers, right after Keyword;
// suffix forms are appended to Body.
type Statement struct {
	Keyword   string
	Modifiers []string
	Body      string

	paginated bool
}

func NewStatement(keyword, body string) Statement {
	return Statement{Keyword: keyword, Body: body}
}

// Paginated reports whether a strategy has already been applied.
func (s Statement) Paginated() bool {
	return s.paginated
}

func (s Statement) String() string {
	var b strings.Builder
	b.WriteString(s.Keyword)
	for _, m := range s.Modifiers {
		if m == "" {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(m)
	}
	if s.Body != "" {
		b.WriteByte(' ')
		b.WriteString(s.Body)
	}
	return b.String()
}

func (s Statement) withModifiers(mods ...string) Statement {
	out := make([]string, 0, len(s.Modifiers)+len(mods))
	out = append(out, mods...)
	out = append(out, s.Modifiers...)
	s.Modifiers = out
	s.paginated = true
	return s
}

func (s Statement) withSuffix(suffix string) Statement {
	s.Body += " " + suffix
	s.paginated = true
	return s
}

// Strategy names one of the closed set of row-limiting syntaxes.
type Strategy int

const (
	LimitOffsetComma Strategy = iota + 1
	LimitOffset
	FetchNext
	SkipFirst
	RowsRange
	TopStartAt
	RownumWrap
)

var strategyNames = map[Strategy]string{
	LimitOffsetComma: "limit_offset_comma",
	LimitOffset:      "limit_offset",
	FetchNext:        "fetch_next",
	SkipFirst:        "skip_first",
	RowsRange:        "rows_range",
	TopStartAt:       "top_start_at",
	RownumWrap:       "rownum_wrap",
}

func (s Strategy) String() string {
	if n, ok := strategyNames[s]; ok {
		return n
	}
	return "strategy(" + strconv.Itoa(int(s)) + ")"
}

// Strategies lists every strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{LimitOffsetComma, LimitOffset, FetchNext, SkipFirst, RowsRange, TopStartAt, RownumWrap}
}

type paginator func(stmt Statement, rows int, offset *int) Statement

var paginators = map[Strategy]paginator{
	LimitOffsetComma: limitOffsetComma,
	LimitOffset:      limitOffset,
	FetchNext:        fetchNext,
	SkipFirst:        skipFirst,
	RowsRange:        rowsRange,
	TopStartAt:       topStartAt,
	RownumWrap:       rownumWrap,
}

// Apply rewrites stmt so that it returns at most rows rows after skipping
// offset rows. Without rows, or when stmt is already paginated, stmt is
// returned as is. Bounds are not validated here.
func (s Strategy) Apply(stmt Statement, rows, offset *int) Statement {
	if rows == nil || stmt.paginated {
		return stmt
	}
	fn, ok := paginators[s]
	if !ok {
		return stmt
	}
	return fn(stmt, *rows, offset)
}

func itoa(n int) string { return strconv.Itoa(n) }

func limitOffsetComma(stmt Statement, rows int, offset *int) Statement {
	if offset == nil {
		return stmt.withSuffix("LIMIT " + itoa(rows))
	}
	return stmt.withSuffix("LIMIT " + itoa(*offset) + ", " + itoa(rows))
}

func limitOffset(stmt Statement, rows int, offset *int) Statement {
	if offset == nil {
		return stmt.withSuffix("LIMIT " + itoa(rows))
	}
	return stmt.withSuffix("LIMIT " + itoa(rows) + " OFFSET " + itoa(*offset))
}

func fetchNext(stmt Statement, rows int, offset *int) Statement {
	if offset == nil {
		return stmt.withSuffix("FETCH FIRST " + itoa(rows) + " ROWS ONLY")
	}
	return stmt.withSuffix("OFFSET " + itoa(*offset) + " ROWS FETCH NEXT " + itoa(rows) + " ROWS ONLY")
}

func skipFirst(stmt Statement, rows int, offset *int) Statement {
	if offset == nil {
		return stmt.withModifiers("FIRST " + itoa(rows))
	}
	return stmt.withModifiers("SKIP "+itoa(*offset), "FIRST "+itoa(rows))
}

func rowsRange(stmt Statement, rows int, offset *int) Statement {
	if offset == nil {
		return stmt.withModifiers("FIRST " + itoa(rows))
	}
	return stmt.withSuffix("ROWS " + itoa(*offset) + " TO " + itoa(*offset+rows))
}

func topStartAt(stmt Statement, rows int, offset *int) Statement {
	if offset == nil {
		return stmt.withModifiers("TOP " + itoa(rows))
	}
	return stmt.withModifiers("TOP "+itoa(rows), "START AT "+itoa(rows+*offset))
}

func rownumWrap(stmt Statement, rows int, offset *int) Statement {
	o := 0
	if offset != nil {
		o = *offset
	}
	body := "* FROM (SELECT T.*, ROWNUM RN FROM (" + stmt.String() + ") T WHERE ROWNUM <= " +
		itoa(o+rows) + ") WHERE RN > " + itoa(o)
	return Statement{Keyword: "SELECT", Body: body, paginated: true}
}
