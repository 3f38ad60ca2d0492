package ast

import (
	"github.com/Konsultn-Engineering/flexsql/utils"
)

// Value is a literal operand. It renders as a bind placeholder, or as a
// dialect literal when the renderer inlines values.
type Value struct {
	Val any
}

func NewValue(val any) *Value {
	return &Value{Val: val}
}

func (v *Value) Type() NodeType           { return NodeValue }
func (v *Value) Accept(vis Visitor) error { return vis.VisitValue(v) }
func (v *Value) Fingerprint() uint64 {
	return utils.Mix64(utils.U64("val:"), utils.FingerprintValue(v.Val))
}

// Array is the value list of an IN predicate.
type Array struct {
	Values []Value
}

func NewArray(values []any) *Array {
	a := &Array{Values: make([]Value, 0, len(values))}
	for _, val := range values {
		a.Values = append(a.Values, Value{Val: val})
	}
	return a
}

func (a *Array) Type() NodeType         { return NodeArray }
func (a *Array) Accept(v Visitor) error { return v.VisitArray(a) }
func (a *Array) Fingerprint() uint64 {
	fp := utils.U64("array:")
	for i := range a.Values {
		fp = utils.Mix64(fp, utils.FingerprintValue(a.Values[i].Val))
	}
	return fp
}
