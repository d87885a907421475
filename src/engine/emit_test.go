package engine

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"rbxreflect/src/helpers"
	"rbxreflect/src/variant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEmitJSON(t *testing.T) {
	db := loadTestDatabase(t)
	db.Version = [4]uint32{0, 600, 1, 6000}
	db.Classes["Part"].DefaultProperties["Anchored"] = variant.Bool(false)
	db.Classes["Part"].DefaultProperties["Size"] = variant.Vector3{X: 4, Y: 1.2, Z: 2}

	path := filepath.Join(t.TempDir(), "database.json")
	require.NoError(t, EmitJSON(db, path, testLogger()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Version [4]uint32
		Classes map[string]struct {
			Superclass        string
			Properties        map[string]json.RawMessage
			DefaultProperties map[string]variant.Tagged
		}
		Enums map[string]json.RawMessage
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, db.Version, doc.Version)
	part := doc.Classes["Part"]
	assert.Equal(t, "Instance", part.Superclass)
	assert.Equal(t, variant.Bool(false), part.DefaultProperties["Anchored"].Value)
	assert.Equal(t, variant.Vector3{X: 4, Y: 1.2, Z: 2}, part.DefaultProperties["Size"].Value)
	assert.JSONEq(t, `{"Name":"Shape","DataType":{"Enum":"PartType"},"Scriptability":"ReadWrite"}`,
		string(part.Properties["Shape"]))
	assert.JSONEq(t, `{"Name":"PartType","Items":{"Ball":0,"Block":1}}`, string(doc.Enums["PartType"]))
}

func TestEmitBSON(t *testing.T) {
	db := loadTestDatabase(t)
	defaultsIn := db.Classes["Part"].DefaultProperties
	defaultsIn["Anchored"] = variant.Bool(true)
	defaultsIn["Size"] = variant.Vector3{X: 4, Y: 1, Z: 2}
	defaultsIn["Shape"] = variant.EnumValue(1)

	path := filepath.Join(t.TempDir(), "database.bson")
	require.NoError(t, EmitBSON(db, path, testLogger()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	decoded, err := helpers.DecodeBSON(data)
	require.NoError(t, err)

	classes := asMap(t, decoded["Classes"])
	part := asMap(t, classes["Part"])
	defaults := asMap(t, part["DefaultProperties"])

	anchored := asMap(t, defaults["Anchored"])
	assert.Equal(t, "Bool", anchored["Type"])
	assert.Equal(t, true, anchored["Value"])

	size := asMap(t, defaults["Size"])
	assert.Equal(t, "Vector3", size["Type"])
	assert.Equal(t, primitive.A{4.0, 1.0, 2.0}, size["Value"])

	shape := asMap(t, defaults["Shape"])
	assert.Equal(t, int64(1), shape["Value"])

	secret := asMap(t, asMap(t, part["Properties"])["Secret"])
	assert.Equal(t, "None", secret["Scriptability"])
	assert.Equal(t, "Int32", asMap(t, secret["DataType"])["Value"])
}

func TestVerifyBSON(t *testing.T) {
	dir := t.TempDir()
	db := loadTestDatabase(t)
	path := filepath.Join(dir, "database.bson")
	require.NoError(t, EmitBSON(db, path, testLogger()))

	assert.NoError(t, verifyBSON(path, len(db.Classes)))
	assert.ErrorContains(t, verifyBSON(path, len(db.Classes)+1), "found")

	truncated := filepath.Join(dir, "truncated.bson")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(truncated, data[:len(data)/2], 0644))
	assert.ErrorContains(t, verifyBSON(truncated, len(db.Classes)), "read-back")

	noClasses := filepath.Join(dir, "no-classes.bson")
	other, err := bson.Marshal(bson.D{{Key: "Classes", Value: "none"}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(noClasses, other, 0644))
	assert.ErrorContains(t, verifyBSON(noClasses, 0), "not a document")
}

// asMap accepts any of the shapes the bson decoder uses for embedded documents.
func asMap(t *testing.T, v interface{}) map[string]interface{} {
	t.Helper()
	switch doc := v.(type) {
	case map[string]interface{}:
		return doc
	case primitive.M:
		return doc
	case primitive.D:
		return doc.Map()
	}
	require.Failf(t, "not a document", "%T", v)
	return nil
}

// Every kind must survive the BSON encoder.
func TestTaggedBSONCoversEveryKind(t *testing.T) {
	for _, ty := range variant.AllTypes() {
		value := sampleValue(t, ty)
		encoded, err := taggedBSON(value)
		require.NoError(t, err, ty.String())

		doc := encoded.(bson.D)
		assert.Equal(t, ty.String(), doc[0].Value)

		_, err = bson.Marshal(bson.D{{Key: "v", Value: encoded}})
		assert.NoError(t, err, ty.String())
	}

	_, err := taggedBSON(nil)
	assert.Error(t, err)
}

// sampleValue decodes a representative payload of kind ty.
func sampleValue(t *testing.T, ty variant.VariantType) variant.Variant {
	t.Helper()
	samples := map[variant.VariantType]string{
		variant.TypeAxes:               `["X","Z"]`,
		variant.TypeBinaryString:       `"aGVsbG8="`,
		variant.TypeBrickColor:         `194`,
		variant.TypeBool:               `true`,
		variant.TypeCFrame:             `{"position":[1,2,3],"orientation":[[1,0,0],[0,1,0],[0,0,1]]}`,
		variant.TypeColor3:             `[1,0.5,0]`,
		variant.TypeColor3uint8:        `[255,128,0]`,
		variant.TypeColorSequence:      `{"keypoints":[{"time":0,"color":[1,1,1]},{"time":1,"color":[0,0,0]}]}`,
		variant.TypeContent:            `"rbxasset://textures/face.png"`,
		variant.TypeEnumValue:          `3`,
		variant.TypeFaces:              `["Top","Bottom"]`,
		variant.TypeFloat32:            `0.5`,
		variant.TypeFloat64:            `0.25`,
		variant.TypeInt32:              `-7`,
		variant.TypeInt64:              `9000000000`,
		variant.TypeNumberRange:        `[0,10]`,
		variant.TypeNumberSequence:     `{"keypoints":[{"time":0,"value":1,"envelope":0}]}`,
		variant.TypePhysicalProperties: `{"density":0.7,"friction":0.3,"elasticity":0.5,"frictionWeight":1,"elasticityWeight":1}`,
		variant.TypeRay:                `{"origin":[0,0,0],"direction":[0,-1,0]}`,
		variant.TypeRect:               `[[0,0],[10,20]]`,
		variant.TypeRef:                `"null"`,
		variant.TypeSharedString:       `"aGVsbG8="`,
		variant.TypeString:             `"Part"`,
		variant.TypeUDim:               `[0.5,10]`,
		variant.TypeUDim2:              `[[0.5,10],[1,-4]]`,
		variant.TypeVector2:            `[1,2]`,
		variant.TypeVector2int16:       `[1,-2]`,
		variant.TypeVector3:            `[1,2,3]`,
		variant.TypeVector3int16:       `[1,2,-3]`,
	}
	payload, ok := samples[ty]
	require.True(t, ok, "no sample for %s", ty)

	value, err := variant.UnmarshalTagged([]byte(`{"Type":"` + ty.String() + `","Value":` + payload + `}`))
	require.NoError(t, err, ty.String())
	return value
}
