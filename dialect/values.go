package dialect

import (
	"database/sql/driver"
	"encoding/hex"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05.000000"

// ANSILiteral renders v as a standard SQL literal.
func ANSILiteral(v any) string {
	return renderLiteral(v, ansiString, func(b []byte) string {
		return "X'" + hex.EncodeToString(b) + "'"
	})
}

func ansiString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// literalValue unwraps driver.Valuer implementations and pointers down to
// the value that would be sent as a bind argument.
func literalValue(v any) any {
	for range 8 {
		if valuer, ok := v.(driver.Valuer); ok {
			if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
				return nil
			}
			dv, err := valuer.Value()
			if err != nil {
				return v
			}
			v = dv
			continue
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer {
			return v
		}
		if rv.IsNil() {
			return nil
		}
		v = rv.Elem().Interface()
	}
	return v
}

func renderLiteral(v any, str func(string) string, bytes func([]byte) string) string {
	switch val := literalValue(v).(type) {
	case nil:
		return "NULL"
	case string:
		return str(val)
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case int:
		return strconv.FormatInt(int64(val), 10)
	case int8:
		return strconv.FormatInt(int64(val), 10)
	case int16:
		return strconv.FormatInt(int64(val), 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint8:
		return strconv.FormatUint(uint64(val), 10)
	case uint16:
		return strconv.FormatUint(uint64(val), 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return str(val.Format(timestampLayout))
	case []byte:
		return bytes(val)
	case fmt.Stringer:
		return str(val.String())
	default:
		return str(fmt.Sprint(val))
	}
}
