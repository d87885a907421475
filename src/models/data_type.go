package models

import (
	"fmt"

	"rbxreflect/src/variant"
)

// DataType is the declared type of a property: either a plain value type or
// a reference to a named enum, whose values are stored as EnumValue.
type DataType struct {
	Value variant.VariantType `yaml:"Value,omitempty" json:"Value,omitempty"`
	Enum  string              `yaml:"Enum,omitempty" json:"Enum,omitempty"`
}

// ValueType returns a DataType holding values of kind t.
func ValueType(t variant.VariantType) DataType {
	return DataType{Value: t}
}

// EnumType returns a DataType holding items of the named enum.
func EnumType(name string) DataType {
	return DataType{Enum: name}
}

// IsEnum reports whether d refers to an enum.
func (d DataType) IsEnum() bool {
	return d.Enum != ""
}

// VariantType returns the kind a value of this data type must have.
func (d DataType) VariantType() variant.VariantType {
	if d.IsEnum() {
		return variant.TypeEnumValue
	}
	return d.Value
}

// Resolved reports whether d names exactly one valid type.
func (d DataType) Resolved() bool {
	if d.IsEnum() {
		return d.Value == variant.TypeInvalid
	}
	return d.Value.Valid()
}

func (d DataType) String() string {
	if d.IsEnum() {
		return fmt.Sprintf("Enum(%s)", d.Enum)
	}
	return d.Value.String()
}
