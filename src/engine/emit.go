package engine

import (
	"encoding/json"
	"fmt"

	"rbxreflect/src/helpers"
	"rbxreflect/src/models"
	"rbxreflect/src/variant"

	"github.com/dustin/go-humanize"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// databaseDocument is the emitted shape of a ReflectionDatabase. Defaults
// are held as already-encoded tagged values so the same document serves both
// the BSON and the JSON output.
type databaseDocument struct {
	Version [4]uint32                `bson:"Version" json:"Version"`
	Classes map[string]classDocument `bson:"Classes" json:"Classes"`
	Enums   map[string]enumDocument  `bson:"Enums" json:"Enums"`
}

type classDocument struct {
	Name              string                      `bson:"Name" json:"Name"`
	Superclass        string                      `bson:"Superclass,omitempty" json:"Superclass,omitempty"`
	Tags              []string                    `bson:"Tags,omitempty" json:"Tags,omitempty"`
	Properties        map[string]propertyDocument `bson:"Properties" json:"Properties"`
	DefaultProperties map[string]interface{}      `bson:"DefaultProperties" json:"DefaultProperties"`
}

type propertyDocument struct {
	Name          string           `bson:"Name" json:"Name"`
	DataType      dataTypeDocument `bson:"DataType" json:"DataType"`
	Scriptability string           `bson:"Scriptability" json:"Scriptability"`
	Tags          []string         `bson:"Tags,omitempty" json:"Tags,omitempty"`
}

type dataTypeDocument struct {
	Value string `bson:"Value,omitempty" json:"Value,omitempty"`
	Enum  string `bson:"Enum,omitempty" json:"Enum,omitempty"`
}

type enumDocument struct {
	Name  string            `bson:"Name" json:"Name"`
	Items map[string]uint32 `bson:"Items" json:"Items"`
}

type defaultEncoder func(variant.Variant) (interface{}, error)

func buildDocument(db *models.ReflectionDatabase, encodeDefault defaultEncoder) (*databaseDocument, error) {
	doc := &databaseDocument{
		Version: db.Version,
		Classes: make(map[string]classDocument, len(db.Classes)),
		Enums:   make(map[string]enumDocument, len(db.Enums)),
	}

	for name, enum := range db.Enums {
		doc.Enums[name] = enumDocument{Name: enum.Name, Items: enum.Items}
	}

	for name, class := range db.Classes {
		classDoc := classDocument{
			Name:              class.Name,
			Superclass:        class.Superclass,
			Tags:              class.Tags,
			Properties:        make(map[string]propertyDocument, len(class.Properties)),
			DefaultProperties: make(map[string]interface{}, len(class.DefaultProperties)),
		}

		for propertyName, property := range class.Properties {
			dataType := dataTypeDocument{Enum: property.DataType.Enum}
			if !property.DataType.IsEnum() {
				dataType.Value = property.DataType.Value.String()
			}
			classDoc.Properties[propertyName] = propertyDocument{
				Name:          property.Name,
				DataType:      dataType,
				Scriptability: property.Scriptability.String(),
				Tags:          property.Tags,
			}
		}

		for propertyName, value := range class.DefaultProperties {
			encoded, err := encodeDefault(value)
			if err != nil {
				return nil, fmt.Errorf("default %s.%s: %w", name, propertyName, err)
			}
			classDoc.DefaultProperties[propertyName] = encoded
		}

		doc.Classes[name] = classDoc
	}

	return doc, nil
}

// EmitBSON writes db to path as a single BSON document and reads it back.
func EmitBSON(db *models.ReflectionDatabase, path string, logger *zap.SugaredLogger) error {
	doc, err := buildDocument(db, taggedBSON)
	if err != nil {
		return fmt.Errorf("error building BSON document: %w", err)
	}
	data, err := helpers.EncodeBSON(doc)
	if err != nil {
		return err
	}
	if err := writeOutput(path, data, "bson", logger); err != nil {
		return err
	}
	return verifyBSON(path, len(doc.Classes))
}

// verifyBSON reads the written file back and checks it decodes to a
// database holding wantClasses classes.
func verifyBSON(path string, wantClasses int) error {
	return helpers.WithMappedFile(path, func(data []byte) error {
		decoded, err := helpers.DecodeBSON(data)
		if err != nil {
			return fmt.Errorf("read-back of %s failed: %w", path, err)
		}
		var got int
		switch classes := decoded["Classes"].(type) {
		case primitive.D:
			got = len(classes)
		case primitive.M:
			got = len(classes)
		case map[string]interface{}:
			got = len(classes)
		default:
			return fmt.Errorf("read-back of %s: Classes is %T, not a document", path, decoded["Classes"])
		}
		if got != wantClasses {
			return fmt.Errorf("read-back of %s: found %d classes, wrote %d", path, got, wantClasses)
		}
		return nil
	})
}

// EmitJSON writes db to path as indented JSON.
func EmitJSON(db *models.ReflectionDatabase, path string, logger *zap.SugaredLogger) error {
	doc, err := buildDocument(db, func(v variant.Variant) (interface{}, error) {
		return variant.Tagged{Value: v}, nil
	})
	if err != nil {
		return fmt.Errorf("error building JSON document: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	return writeOutput(path, append(data, '\n'), "json", logger)
}

func writeOutput(path string, data []byte, format string, logger *zap.SugaredLogger) error {
	if err := helpers.WriteFileAtomic(path, data); err != nil {
		return err
	}
	logger.Infow("Wrote reflection database",
		zap.String("path", path),
		zap.String("format", format),
		zap.String("size", humanize.Bytes(uint64(len(data)))))
	return nil
}

// taggedBSON encodes v as {Type, Value} with a BSON-native payload.
func taggedBSON(v variant.Variant) (interface{}, error) {
	if v == nil {
		return nil, fmt.Errorf("nil value")
	}
	var enc bsonEncoder
	if err := variant.Accept(v, &enc); err != nil {
		return nil, err
	}
	return bson.D{
		{Key: "Type", Value: v.Type().String()},
		{Key: "Value", Value: enc.value},
	}, nil
}

// bsonEncoder converts a payload into values the bson codec writes natively.
// Payload shapes mirror the tagged JSON form.
type bsonEncoder struct {
	value interface{}
}

func vector2BSON(v variant.Vector2) bson.A { return bson.A{v.X, v.Y} }
func vector3BSON(v variant.Vector3) bson.A { return bson.A{v.X, v.Y, v.Z} }

func (e *bsonEncoder) VisitAxes(v variant.Axes) error {
	return e.viaJSON(v)
}

func (e *bsonEncoder) VisitBinaryString(v variant.BinaryString) error {
	e.value = primitive.Binary{Data: []byte(v)}
	return nil
}

func (e *bsonEncoder) VisitBrickColor(v variant.BrickColor) error {
	e.value = int32(v)
	return nil
}

func (e *bsonEncoder) VisitBool(v variant.Bool) error {
	e.value = bool(v)
	return nil
}

func (e *bsonEncoder) VisitCFrame(v variant.CFrame) error {
	o := v.Orientation
	e.value = bson.D{
		{Key: "position", Value: vector3BSON(v.Position)},
		{Key: "orientation", Value: bson.A{vector3BSON(o.X), vector3BSON(o.Y), vector3BSON(o.Z)}},
	}
	return nil
}

func (e *bsonEncoder) VisitColor3(v variant.Color3) error {
	e.value = bson.A{v.R, v.G, v.B}
	return nil
}

func (e *bsonEncoder) VisitColor3uint8(v variant.Color3uint8) error {
	e.value = bson.A{int32(v.R), int32(v.G), int32(v.B)}
	return nil
}

func (e *bsonEncoder) VisitColorSequence(v variant.ColorSequence) error {
	keypoints := bson.A{}
	for _, k := range v.Keypoints {
		keypoints = append(keypoints, bson.D{
			{Key: "time", Value: k.Time},
			{Key: "color", Value: bson.A{k.Color.R, k.Color.G, k.Color.B}},
		})
	}
	e.value = bson.D{{Key: "keypoints", Value: keypoints}}
	return nil
}

func (e *bsonEncoder) VisitContent(v variant.Content) error {
	e.value = string(v)
	return nil
}

func (e *bsonEncoder) VisitEnumValue(v variant.EnumValue) error {
	e.value = int64(v)
	return nil
}

func (e *bsonEncoder) VisitFaces(v variant.Faces) error {
	return e.viaJSON(v)
}

func (e *bsonEncoder) VisitFloat32(v variant.Float32) error {
	e.value = float64(v)
	return nil
}

func (e *bsonEncoder) VisitFloat64(v variant.Float64) error {
	e.value = float64(v)
	return nil
}

func (e *bsonEncoder) VisitInt32(v variant.Int32) error {
	e.value = int32(v)
	return nil
}

func (e *bsonEncoder) VisitInt64(v variant.Int64) error {
	e.value = int64(v)
	return nil
}

func (e *bsonEncoder) VisitNumberRange(v variant.NumberRange) error {
	e.value = bson.A{v.Min, v.Max}
	return nil
}

func (e *bsonEncoder) VisitNumberSequence(v variant.NumberSequence) error {
	keypoints := bson.A{}
	for _, k := range v.Keypoints {
		keypoints = append(keypoints, bson.D{
			{Key: "time", Value: k.Time},
			{Key: "value", Value: k.Value},
			{Key: "envelope", Value: k.Envelope},
		})
	}
	e.value = bson.D{{Key: "keypoints", Value: keypoints}}
	return nil
}

func (e *bsonEncoder) VisitPhysicalProperties(v variant.PhysicalProperties) error {
	if v.Custom == nil {
		e.value = physicalPropertiesDefault
		return nil
	}
	c := v.Custom
	e.value = bson.D{
		{Key: "density", Value: c.Density},
		{Key: "friction", Value: c.Friction},
		{Key: "elasticity", Value: c.Elasticity},
		{Key: "frictionWeight", Value: c.FrictionWeight},
		{Key: "elasticityWeight", Value: c.ElasticityWeight},
	}
	return nil
}

func (e *bsonEncoder) VisitRay(v variant.Ray) error {
	e.value = bson.D{
		{Key: "origin", Value: vector3BSON(v.Origin)},
		{Key: "direction", Value: vector3BSON(v.Direction)},
	}
	return nil
}

func (e *bsonEncoder) VisitRect(v variant.Rect) error {
	e.value = bson.A{vector2BSON(v.Min), vector2BSON(v.Max)}
	return nil
}

func (e *bsonEncoder) VisitRef(v variant.Ref) error {
	e.value = v.String()
	return nil
}

func (e *bsonEncoder) VisitSharedString(v variant.SharedString) error {
	e.value = bson.D{
		{Key: "hash", Value: v.Hash().String()},
		{Key: "data", Value: primitive.Binary{Data: v.Data}},
	}
	return nil
}

func (e *bsonEncoder) VisitString(v variant.String) error {
	e.value = string(v)
	return nil
}

func (e *bsonEncoder) VisitUDim(v variant.UDim) error {
	e.value = bson.A{v.Scale, v.Offset}
	return nil
}

func (e *bsonEncoder) VisitUDim2(v variant.UDim2) error {
	e.value = bson.A{bson.A{v.X.Scale, v.X.Offset}, bson.A{v.Y.Scale, v.Y.Offset}}
	return nil
}

func (e *bsonEncoder) VisitVector2(v variant.Vector2) error {
	e.value = vector2BSON(v)
	return nil
}

func (e *bsonEncoder) VisitVector2int16(v variant.Vector2int16) error {
	e.value = bson.A{int32(v.X), int32(v.Y)}
	return nil
}

func (e *bsonEncoder) VisitVector3(v variant.Vector3) error {
	e.value = vector3BSON(v)
	return nil
}

func (e *bsonEncoder) VisitVector3int16(v variant.Vector3int16) error {
	e.value = bson.A{int32(v.X), int32(v.Y), int32(v.Z)}
	return nil
}

// viaJSON is used for the flag sets, whose JSON form is already a plain
// list of names.
func (e *bsonEncoder) viaJSON(v variant.Variant) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	e.value = names
	return nil
}

const physicalPropertiesDefault = "Default"
