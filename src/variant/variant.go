// Package variant holds the value model shared by the reflection database:
// a sealed Variant interface with one payload type per kind, the VariantType
// tag enumeration and the tagged {"Type", "Value"} encoding used by the
// probe protocol and the emitted database.
//
// The list of kinds lives in kinds.txt. The VariantType constants, the
// conversions and the Visitor interface are generated from it, so adding a
// kind breaks every Visitor implementation until it handles the new kind.
package variant

//go:generate go run ./internal/genvariant -in kinds.txt -out variant_gen.go -test variant_gen_test.go

import "fmt"

// Variant is any value a property can hold. Only the payload types of this
// package implement it.
type Variant interface {
	// Type returns the kind of the payload.
	Type() VariantType

	isVariant()
}

// VariantType is the tag naming the kind held by a Variant. The zero value
// is TypeInvalid and is never returned by Variant.Type.
type VariantType uint8

// TypeInvalid marks an unresolved type.
const TypeInvalid VariantType = 0

// Valid reports whether t names one of the known kinds.
func (t VariantType) Valid() bool {
	return t > TypeInvalid && int(t) <= variantTypeCount
}

func (t VariantType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("VariantType(%d)", uint8(t))
	}
	return variantTypeNames[t]
}

// MarshalText encodes t as its kind name.
func (t VariantType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("variant: cannot encode %s", t)
	}
	return []byte(variantTypeNames[t]), nil
}

// UnmarshalText decodes a kind name.
func (t *VariantType) UnmarshalText(text []byte) error {
	parsed, err := ParseVariantType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseVariantType returns the kind with the given name.
func ParseVariantType(name string) (VariantType, error) {
	if t, ok := variantTypesByName[name]; ok {
		return t, nil
	}
	return TypeInvalid, fmt.Errorf("variant: unknown type %q", name)
}

// AllTypes returns every kind in declaration order.
func AllTypes() []VariantType {
	types := make([]VariantType, 0, variantTypeCount)
	for t := VariantType(1); int(t) <= variantTypeCount; t++ {
		types = append(types, t)
	}
	return types
}

var variantTypesByName = func() map[string]VariantType {
	m := make(map[string]VariantType, variantTypeCount)
	for t := VariantType(1); int(t) <= variantTypeCount; t++ {
		m[variantTypeNames[t]] = t
	}
	return m
}()
