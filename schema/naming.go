package schema

import (
	"strings"
	"unicode"

	pluralizer "github.com/gertd/go-pluralize"
)

var pluralizeClient = pluralizer.NewClient()

// NamingStrategy derives table and column names from Go identifiers when a
// struct does not name them explicitly.
type NamingStrategy interface {
	TableName(structName string) string
	ColumnName(fieldName string) string
}

// SnakeCase is the default strategy: UserAccount -> user_accounts,
// CreatedAt -> created_at. Singular keeps table names unpluralized.
type SnakeCase struct {
	Singular bool
}

func (s SnakeCase) TableName(structName string) string {
	name := toSnakeCase(structName)
	if s.Singular {
		return name
	}
	return pluralize(name)
}

func (SnakeCase) ColumnName(fieldName string) string {
	return toSnakeCase(fieldName)
}

// toSnakeCase splits on lower->upper transitions and at the end of an
// acronym run, so HTTPServer becomes http_server and UserID user_id.
func toSnakeCase(name string) string {
	if name == "" {
		return ""
	}
	if strings.Contains(name, "_") && !hasUpperCase(name) {
		return name
	}

	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(name) + 4)

	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && runes[i-1] != '_' {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// pluralize pluralizes the last underscore-separated word only.
func pluralize(name string) string {
	if name == "" {
		return ""
	}
	head, last := "", name
	if i := strings.LastIndexByte(name, '_'); i >= 0 {
		head, last = name[:i+1], name[i+1:]
	}
	if last == "" {
		return name
	}
	return head + pluralizeClient.Plural(last)
}

func hasUpperCase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
