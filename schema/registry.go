package schema

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"golang.org/x/sync/singleflight"
)

var ErrInvalidEntity = errors.New("schema: entity must be a struct or pointer to struct")

// Registry resolves and caches TableInfo per struct type. Each type is
// inspected at most once, even under concurrent first use.
type Registry struct {
	naming NamingStrategy
	tables sync.Map // reflect.Type -> *TableInfo
	group  singleflight.Group
}

type RegistryOption func(*Registry)

func WithNaming(n NamingStrategy) RegistryOption {
	return func(r *Registry) {
		if n != nil {
			r.naming = n
		}
	}
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{naming: SnakeCase{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Of returns the metadata for entity, which may be a value, a pointer or a
// reflect.Type.
func (r *Registry) Of(entity any) (*TableInfo, error) {
	t, ok := entity.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(entity)
	}
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidEntity, t)
	}

	if ti, ok := r.tables.Load(t); ok {
		return ti.(*TableInfo), nil
	}

	v, _, _ := r.group.Do(typeKey(t), func() (any, error) {
		if ti, ok := r.tables.Load(t); ok {
			return ti, nil
		}
		ti := buildTableInfo(t, r.naming)
		r.tables.Store(t, ti)
		slog.Debug("schema registered", "type", t.String(), "table", ti.Name, "columns", len(ti.Columns))
		return ti, nil
	})
	return v.(*TableInfo), nil
}

// Len reports how many types have been resolved.
func (r *Registry) Len() int {
	n := 0
	r.tables.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func typeKey(t reflect.Type) string {
	return t.PkgPath() + "/" + t.String()
}

var defaultRegistry = NewRegistry()

// Of resolves entity against the package-level registry.
func Of(entity any) (*TableInfo, error) {
	return defaultRegistry.Of(entity)
}

// MustOf is Of for entities known to be valid structs.
func MustOf(entity any) *TableInfo {
	ti, err := defaultRegistry.Of(entity)
	if err != nil {
		panic(err)
	}
	return ti
}
