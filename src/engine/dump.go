package engine

// This file ingests the offline API dump: the JSON document listing every
// class, its members and the enums, as produced by the engine's
// --API dump switch.

import (
	"encoding/json"
	"fmt"
	"slices"

	"rbxreflect/src/helpers"
	"rbxreflect/src/models"
	"rbxreflect/src/variant"

	"go.uber.org/zap"
)

// rootSuperclass is what the dump writes as the superclass of Instance.
const rootSuperclass = "<<<ROOT>>>"

type Dump struct {
	Version int         `json:"Version"`
	Classes []DumpClass `json:"Classes"`
	Enums   []DumpEnum  `json:"Enums"`
}

type DumpClass struct {
	Name       string       `json:"Name"`
	Superclass string       `json:"Superclass"`
	Tags       []string     `json:"Tags"`
	Members    []DumpMember `json:"Members"`
}

type DumpMember struct {
	// MemberType is one of Property, Function, Event, Callback.
	MemberType string    `json:"MemberType"`
	Name       string    `json:"Name"`
	ValueType  *DumpType `json:"ValueType"`
	Tags       []string  `json:"Tags"`
}

type DumpType struct {
	// Category is one of Primitive, DataType, Class, Enum, Group.
	Category string `json:"Category"`
	Name     string `json:"Name"`
}

type DumpEnum struct {
	Name  string         `json:"Name"`
	Items []DumpEnumItem `json:"Items"`
}

type DumpEnumItem struct {
	Name  string `json:"Name"`
	Value uint32 `json:"Value"`
}

var primitiveTypes = map[string]variant.VariantType{
	"bool":   variant.TypeBool,
	"int":    variant.TypeInt32,
	"int64":  variant.TypeInt64,
	"float":  variant.TypeFloat32,
	"double": variant.TypeFloat64,
	"string": variant.TypeString,
}

// ReadDump memory maps the dump file and decodes it.
func ReadDump(path string, logger *zap.SugaredLogger) (*Dump, error) {
	var dump *Dump
	err := helpers.WithMappedFile(path, func(data []byte) error {
		var err error
		dump, err = DecodeDump(data)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("reading dump %s: %w", path, err)
	}

	logger.Debugf("Read dump %s: %d classes, %d enums", path, len(dump.Classes), len(dump.Enums))
	return dump, nil
}

// DecodeDump parses the dump JSON.
func DecodeDump(data []byte) (*Dump, error) {
	var dump Dump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceMalformed, err)
	}
	return &dump, nil
}

// PopulateFromDump fills an empty database with the dump's classes and enums.
// Properties whose type the value model cannot hold are skipped with a
// warning. Structural problems abort with ErrSourceMalformed.
func PopulateFromDump(db *models.ReflectionDatabase, dump *Dump, logger *zap.SugaredLogger) error {
	for i, dumpEnum := range dump.Enums {
		if dumpEnum.Name == "" {
			return fmt.Errorf("%w: enum #%d has no name", ErrSourceMalformed, i)
		}
		if _, exists := db.Enums[dumpEnum.Name]; exists {
			return fmt.Errorf("%w: duplicate enum %s", ErrSourceMalformed, dumpEnum.Name)
		}

		enum := &models.EnumDescriptor{
			Name:  dumpEnum.Name,
			Items: make(map[string]uint32, len(dumpEnum.Items)),
		}
		for _, item := range dumpEnum.Items {
			if item.Name == "" {
				return fmt.Errorf("%w: enum %s has an item with no name", ErrSourceMalformed, dumpEnum.Name)
			}
			enum.Items[item.Name] = item.Value
		}
		db.Enums[enum.Name] = enum
	}

	skipped := 0
	for i, dumpClass := range dump.Classes {
		if dumpClass.Name == "" {
			return fmt.Errorf("%w: class #%d has no name", ErrSourceMalformed, i)
		}
		if _, exists := db.Classes[dumpClass.Name]; exists {
			return fmt.Errorf("%w: duplicate class %s", ErrSourceMalformed, dumpClass.Name)
		}

		superclass := dumpClass.Superclass
		if superclass == rootSuperclass {
			superclass = ""
		}

		class := models.NewClassDescriptor(dumpClass.Name, superclass)
		class.Tags = dumpClass.Tags

		for _, member := range dumpClass.Members {
			if member.MemberType != "Property" {
				continue
			}
			if member.Name == "" {
				return fmt.Errorf("%w: class %s has a property with no name", ErrSourceMalformed, dumpClass.Name)
			}
			if member.ValueType == nil || member.ValueType.Name == "" {
				return fmt.Errorf("%w: property %s.%s has no value type", ErrSourceMalformed, dumpClass.Name, member.Name)
			}
			if _, exists := class.Properties[member.Name]; exists {
				return fmt.Errorf("%w: duplicate property %s.%s", ErrSourceMalformed, dumpClass.Name, member.Name)
			}

			dataType, ok := resolveDumpType(*member.ValueType)
			if !ok {
				logger.Warnf("Skipping property %s.%s because it was of unsupported type '%s/%s'",
					dumpClass.Name, member.Name, member.ValueType.Category, member.ValueType.Name)
				skipped++
				continue
			}

			class.Properties[member.Name] = &models.PropertyDescriptor{
				Name:          member.Name,
				DataType:      dataType,
				Scriptability: scriptabilityFromTags(member.Tags),
				Tags:          member.Tags,
			}
		}

		db.Classes[class.Name] = class
	}

	logger.Infow("Populated database from dump",
		zap.Int("classes", len(db.Classes)),
		zap.Int("properties", db.PropertyCount()),
		zap.Int("enums", len(db.Enums)),
		zap.Int("skipped", skipped))

	return nil
}

// resolveDumpType maps a dump value type onto a property data type.
func resolveDumpType(t DumpType) (models.DataType, bool) {
	switch t.Category {
	case "Primitive":
		ty, ok := primitiveTypes[t.Name]
		return models.ValueType(ty), ok
	case "DataType":
		ty, err := variant.ParseVariantType(t.Name)
		if err != nil || isPrimitiveKind(ty) {
			return models.DataType{}, false
		}
		return models.ValueType(ty), true
	case "Class":
		return models.ValueType(variant.TypeRef), true
	case "Enum":
		return models.EnumType(t.Name), true
	}
	return models.DataType{}, false
}

// isPrimitiveKind reports kinds the dump only ever spells as primitives or
// that never appear as a DataType name.
func isPrimitiveKind(t variant.VariantType) bool {
	switch t {
	case variant.TypeBool, variant.TypeInt32, variant.TypeInt64,
		variant.TypeFloat32, variant.TypeFloat64, variant.TypeString,
		variant.TypeEnumValue, variant.TypeRef:
		return true
	}
	return false
}

// scriptabilityFromTags picks the most restrictive access the dump states.
func scriptabilityFromTags(tags []string) models.Scriptability {
	switch {
	case slices.Contains(tags, "NotScriptable"):
		return models.ScriptabilityNone
	case slices.Contains(tags, "ReadOnly"):
		return models.ScriptabilityRead
	}
	return models.ScriptabilityReadWrite
}
