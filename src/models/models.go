package models

import (
	"fmt"

	"rbxreflect/src/variant"
)

type ReflectionDatabase struct {
	// Version is the version of the host that produced the live corrections.
	// It stays zero until the probe reports it.
	Version [4]uint32

	// Classes maps a class name to its descriptor.
	Classes map[string]*ClassDescriptor

	// Enums maps an enum name to its descriptor.
	Enums map[string]*EnumDescriptor
}

type ClassDescriptor struct {
	// Name is the class name, unique within the database.
	Name string

	// Superclass is the name of the parent class, empty for root classes.
	Superclass string

	// Tags carries the dump's class tags (e.g. "NotCreatable", "Service").
	Tags []string

	// Properties maps a property name to its descriptor.
	Properties map[string]*PropertyDescriptor

	// DefaultProperties maps a property name to the value a freshly created
	// instance of the class holds.
	DefaultProperties map[string]variant.Variant
}

type PropertyDescriptor struct {
	// Name is the property name, unique within its class.
	Name string

	// DataType is the declared value type of the property.
	DataType DataType

	// Scriptability describes who may read or write the property.
	Scriptability Scriptability

	// Tags carries the dump's member tags (e.g. "ReadOnly", "Deprecated").
	Tags []string
}

type EnumDescriptor struct {
	// Name is the enum name.
	Name string

	// Items maps an item name to its numeric value.
	Items map[string]uint32
}

// DescriptorPatch is one live correction for a property. Either field may be
// absent; DefaultValue is nil and Scriptability is nil when not reported.
type DescriptorPatch struct {
	DefaultValue  variant.Variant
	Scriptability *Scriptability
}

// NewReflectionDatabase creates an empty database.
func NewReflectionDatabase() *ReflectionDatabase {
	return &ReflectionDatabase{
		Classes: make(map[string]*ClassDescriptor),
		Enums:   make(map[string]*EnumDescriptor),
	}
}

// NewClassDescriptor creates a class with no properties or defaults.
func NewClassDescriptor(name, superclass string) *ClassDescriptor {
	return &ClassDescriptor{
		Name:              name,
		Superclass:        superclass,
		Properties:        make(map[string]*PropertyDescriptor),
		DefaultProperties: make(map[string]variant.Variant),
	}
}

// PropertyCount returns the number of properties across all classes.
func (db *ReflectionDatabase) PropertyCount() int {
	count := 0
	for _, class := range db.Classes {
		count += len(class.Properties)
	}
	return count
}

// VersionString formats the host version as a.b.c.d.
func (db *ReflectionDatabase) VersionString() string {
	v := db.Version
	return fmt.Sprintf("%d.%d.%d.%d", v[0], v[1], v[2], v[3])
}
