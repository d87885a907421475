package engine

// Property patches are hand-maintained YAML files that correct what the
// dump gets wrong or cannot express:
//
//	Change:
//	  Part:
//	    Anchored:
//	      Scriptability: ReadWrite
//	      DataType:
//	        Value: Bool
//	      DefaultValue:
//	        Type: Bool
//	        Value: false
//
// Patches may only change classes and properties the dump already defines.

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"rbxreflect/src/helpers"
	"rbxreflect/src/models"
	"rbxreflect/src/variant"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// PropertyPatches maps class name -> property name -> patch.
type PropertyPatches struct {
	Change map[string]map[string]PropertyPatch
}

// PropertyPatch overrides fields of one property. Nil fields are left alone.
type PropertyPatch struct {
	DataType      *models.DataType
	Scriptability *models.Scriptability
	DefaultValue  variant.Variant
}

type patchFile struct {
	Change map[string]map[string]patchEntry `yaml:"Change"`
}

type patchEntry struct {
	DataType      *models.DataType      `yaml:"DataType"`
	Scriptability *models.Scriptability `yaml:"Scriptability"`
	DefaultValue  interface{}           `yaml:"DefaultValue"`
}

// NewPropertyPatches returns an empty patch set.
func NewPropertyPatches() *PropertyPatches {
	return &PropertyPatches{Change: make(map[string]map[string]PropertyPatch)}
}

// LoadPropertyPatches reads every .yml/.yaml file in dir, in name order, and
// merges them. A property patched by two files is an error.
func LoadPropertyPatches(dir string, logger *zap.SugaredLogger) (*PropertyPatches, error) {
	patches := NewPropertyPatches()
	if dir == "" {
		return patches, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading patch directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || (ext != ".yml" && ext != ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading patch file %s: %w", path, err)
		}

		filePatches, err := DecodePropertyPatches(data)
		if err != nil {
			return nil, fmt.Errorf("patch file %s: %w", path, err)
		}
		if err := patches.merge(filePatches); err != nil {
			return nil, fmt.Errorf("patch file %s: %w", path, err)
		}

		logger.Debugf("Loaded patch file %s", path)
	}

	return patches, nil
}

// DecodePropertyPatches parses one patch document. Unknown keys, unknown
// scriptability or type names and malformed default values are rejected.
func DecodePropertyPatches(data []byte) (*PropertyPatches, error) {
	var file patchFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrSourceMalformed, err)
	}
	var extra interface{}
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: a patch file holds a single YAML document", ErrSourceMalformed)
	}

	patches := NewPropertyPatches()
	for className, properties := range file.Change {
		changes := make(map[string]PropertyPatch, len(properties))
		for propertyName, entry := range properties {
			patch := PropertyPatch{
				DataType:      entry.DataType,
				Scriptability: entry.Scriptability,
			}
			if entry.DataType != nil && !entry.DataType.Resolved() {
				return nil, fmt.Errorf("%w: %s.%s has an unresolved DataType", ErrSourceMalformed, className, propertyName)
			}
			if entry.DefaultValue != nil {
				value, err := decodeYAMLVariant(entry.DefaultValue)
				if err != nil {
					return nil, fmt.Errorf("%w: %s.%s DefaultValue: %v", ErrSourceMalformed, className, propertyName, err)
				}
				patch.DefaultValue = value
			}
			changes[propertyName] = patch
		}
		patches.Change[className] = changes
	}

	return patches, nil
}

// decodeYAMLVariant converts a decoded YAML {Type, Value} mapping into a
// Variant by way of the tagged JSON form.
func decodeYAMLVariant(generic interface{}) (variant.Variant, error) {
	data, err := json.Marshal(generic)
	if err != nil {
		return nil, err
	}
	return variant.UnmarshalTagged(data)
}

func (p *PropertyPatches) merge(other *PropertyPatches) error {
	for className, properties := range other.Change {
		existing, ok := p.Change[className]
		if !ok {
			existing = make(map[string]PropertyPatch, len(properties))
			p.Change[className] = existing
		}
		for propertyName, patch := range properties {
			if _, dup := existing[propertyName]; dup {
				return fmt.Errorf("%w: %s.%s is patched more than once", ErrSourceMalformed, className, propertyName)
			}
			existing[propertyName] = patch
		}
	}
	return nil
}

// PopulateFromPatches applies patches over the dump baseline. Every patched
// class and property must already exist; otherwise ErrPatchTargetMissing is
// returned before anything is changed.
func PopulateFromPatches(db *models.ReflectionDatabase, patches *PropertyPatches, logger *zap.SugaredLogger) error {
	for _, className := range helpers.SortedKeys(patches.Change) {
		class, ok := db.Classes[className]
		if !ok {
			return fmt.Errorf("%w: class %s does not exist in the dump", ErrPatchTargetMissing, className)
		}
		for _, propertyName := range helpers.SortedKeys(patches.Change[className]) {
			if _, ok := class.Properties[propertyName]; !ok {
				return fmt.Errorf("%w: property %s.%s does not exist in the dump", ErrPatchTargetMissing, className, propertyName)
			}
		}
	}

	for className, properties := range patches.Change {
		class := db.Classes[className]
		for propertyName, patch := range properties {
			descriptor := class.Properties[propertyName]
			if patch.DataType != nil {
				descriptor.DataType = *patch.DataType
			}
			if patch.Scriptability != nil {
				descriptor.Scriptability = *patch.Scriptability
			}
			if patch.DefaultValue != nil {
				class.DefaultProperties[propertyName] = patch.DefaultValue
			}
		}
	}

	logger.Infow("Applied property patches", zap.Int("properties", patches.Len()))
	return nil
}

// Len returns the number of patched properties.
func (p *PropertyPatches) Len() int {
	n := 0
	for _, properties := range p.Change {
		n += len(properties)
	}
	return n
}

