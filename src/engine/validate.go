package engine

import (
	"fmt"

	"rbxreflect/src/helpers"
	"rbxreflect/src/models"

	"go.uber.org/multierr"
)

// Validate checks the internal consistency of db and reports every problem
// found, wrapped in ErrValidationFailed. Classes and properties are visited
// in name order so the report is stable.
func Validate(db *models.ReflectionDatabase) error {
	var errs error

	for _, key := range helpers.SortedKeys(db.Enums) {
		if enum := db.Enums[key]; enum == nil || enum.Name != key {
			errs = multierr.Append(errs, fmt.Errorf("enum %s: map key does not match descriptor name", key))
		}
	}

	for _, key := range helpers.SortedKeys(db.Classes) {
		errs = multierr.Append(errs, validateClass(db, key, db.Classes[key]))
	}

	if errs != nil {
		return fmt.Errorf("%w: %w", ErrValidationFailed, errs)
	}
	return nil
}

func validateClass(db *models.ReflectionDatabase, key string, class *models.ClassDescriptor) error {
	if class == nil {
		return fmt.Errorf("class %s: descriptor is nil", key)
	}

	var errs error
	if class.Name != key {
		errs = multierr.Append(errs, fmt.Errorf("class %s: map key does not match descriptor name %q", key, class.Name))
	}
	if class.Superclass != "" {
		if _, ok := db.Classes[class.Superclass]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("class %s: unknown superclass %s", key, class.Superclass))
		}
	}

	for _, propertyName := range helpers.SortedKeys(class.Properties) {
		property := class.Properties[propertyName]
		if property == nil {
			errs = multierr.Append(errs, fmt.Errorf("property %s.%s: descriptor is nil", key, propertyName))
			continue
		}
		if property.Name != propertyName {
			errs = multierr.Append(errs, fmt.Errorf("property %s.%s: map key does not match descriptor name %q", key, propertyName, property.Name))
		}
		if !property.DataType.Resolved() {
			errs = multierr.Append(errs, fmt.Errorf("property %s.%s: unresolved data type", key, propertyName))
		} else if property.DataType.IsEnum() {
			if _, ok := db.Enums[property.DataType.Enum]; !ok {
				errs = multierr.Append(errs, fmt.Errorf("property %s.%s: unknown enum %s", key, propertyName, property.DataType.Enum))
			}
		}
		if !property.Scriptability.Valid() {
			errs = multierr.Append(errs, fmt.Errorf("property %s.%s: invalid scriptability %d", key, propertyName, property.Scriptability))
		}
	}

	for _, propertyName := range helpers.SortedKeys(class.DefaultProperties) {
		value := class.DefaultProperties[propertyName]
		if value == nil {
			errs = multierr.Append(errs, fmt.Errorf("default %s.%s: value is nil", key, propertyName))
			continue
		}

		// Defaults for properties missing from the dump are kept as reported.
		property, ok := class.Properties[propertyName]
		if !ok || property == nil || !property.DataType.Resolved() {
			continue
		}
		if want := property.DataType.VariantType(); value.Type() != want {
			errs = multierr.Append(errs, fmt.Errorf("default %s.%s: value is %s, property is %s",
				key, propertyName, value.Type(), property.DataType))
		}
	}

	return errs
}
