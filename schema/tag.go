package schema

import (
	"reflect"
	"strings"
)

const tagKey = "db"

// fieldTag is the parsed form of a `db:"..."` tag.
//
//	`db:"id,pk"`   // explicit column, primary key
//	`db:",pk"`     // derived column, primary key
//	`db:"-"`       // not a column
type fieldTag struct {
	Name    string
	Primary bool
	Skip    bool
}

func parseTag(tag reflect.StructTag) fieldTag {
	value, ok := tag.Lookup(tagKey)
	if !ok {
		return fieldTag{}
	}
	if value == "-" {
		return fieldTag{Skip: true}
	}

	name, rest, _ := strings.Cut(value, ",")
	parsed := fieldTag{Name: strings.TrimSpace(name)}
	for _, opt := range strings.Split(rest, ",") {
		switch strings.ToLower(strings.TrimSpace(opt)) {
		case "pk", "primary", "primary_key":
			parsed.Primary = true
		}
	}
	return parsed
}
