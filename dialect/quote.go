package dialect

import (
	"strconv"
	"strings"
)

func quoteParts(name string, q QuoteFunc) string {
	if name == "" || name == "*" {
		return name
	}
	if !strings.Contains(name, ".") {
		return q(name)
	}
	parts := strings.Split(name, ".")
	for i, p := range parts {
		if p != "*" {
			parts[i] = q(p)
		}
	}
	return strings.Join(parts, ".")
}

// NoQuote leaves identifiers untouched.
func NoQuote(name string) string {
	return name
}

func QuoteDouble(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func QuoteBacktick(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func QuoteBracket(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

func PlaceholderQuestion(int) string {
	return "?"
}

func PlaceholderDollar(n int) string {
	return "$" + strconv.Itoa(n)
}
