package engine

import (
	"errors"
	"testing"

	"rbxreflect/src/models"
	"rbxreflect/src/variant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payloads(messages ...string) [][]byte {
	out := make([][]byte, len(messages))
	for i, msg := range messages {
		out[i] = []byte(msg)
	}
	return out
}

func TestDecodeMessage(t *testing.T) {
	msg, err := DecodeMessage([]byte(`{"type": "Version", "version": [0, 612, 0, 6120532]}`))
	require.NoError(t, err)
	assert.Equal(t, &VersionMessage{Version: [4]uint32{0, 612, 0, 6120532}}, msg)

	msg, err = DecodeMessage([]byte(`{
		"type": "PatchDescriptors",
		"className": "Part",
		"descriptors": {
			"Anchored": {"scriptability": "None"},
			"Size": {"defaultValue": {"Type": "Vector3", "Value": [4, 1.2, 2]}},
			"Color": {"defaultValue": null, "scriptability": null}
		}
	}`))
	require.NoError(t, err)
	patch, ok := msg.(*PatchDescriptorsMessage)
	require.True(t, ok)
	assert.Equal(t, "Part", patch.ClassName)
	assert.Equal(t, MessageTypePatchDescriptors, patch.MessageType())

	require.NotNil(t, patch.Descriptors["Anchored"].Scriptability)
	assert.Equal(t, models.ScriptabilityNone, *patch.Descriptors["Anchored"].Scriptability)
	assert.Nil(t, patch.Descriptors["Anchored"].DefaultValue)
	assert.Equal(t, variant.Vector3{X: 4, Y: 1.2, Z: 2}, patch.Descriptors["Size"].DefaultValue)
	assert.Nil(t, patch.Descriptors["Size"].Scriptability)
	assert.Equal(t, models.DescriptorPatch{}, patch.Descriptors["Color"])
}

func TestDecodeMessageRejectsMalformed(t *testing.T) {
	tests := map[string]string{
		"not json":              `{"type": "Version"`,
		"missing type":          `{"version": [1, 2, 3, 4]}`,
		"unknown type":          `{"type": "Shutdown"}`,
		"short version":         `{"type": "Version", "version": [1, 2, 3]}`,
		"missing version":       `{"type": "Version"}`,
		"negative version":      `{"type": "Version", "version": [1, 2, 3, -4]}`,
		"missing class name":    `{"type": "PatchDescriptors", "descriptors": {}}`,
		"missing descriptors":   `{"type": "PatchDescriptors", "className": "Part"}`,
		"unknown scriptability": `{"type": "PatchDescriptors", "className": "Part", "descriptors": {"A": {"scriptability": "Maybe"}}}`,
		"untagged default":      `{"type": "PatchDescriptors", "className": "Part", "descriptors": {"A": {"defaultValue": true}}}`,
		"unknown kind":          `{"type": "PatchDescriptors", "className": "Part", "descriptors": {"A": {"defaultValue": {"Type": "Region3", "Value": 1}}}}`,
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeMessage([]byte(input))
			assert.Error(t, err)
		})
	}
}

func TestProcessMessagesVersion(t *testing.T) {
	db := loadTestDatabase(t)
	err := ProcessMessages(db, payloads(
		`{"type": "Version", "version": [0, 1, 2, 3]}`,
		`{"type": "Version", "version": [0, 600, 1, 6000]}`,
	), testLogger())
	require.NoError(t, err)
	assert.Equal(t, [4]uint32{0, 600, 1, 6000}, db.Version)
	assert.Equal(t, "0.600.1.6000", db.VersionString())
}

// Live corrections win over patches for the same property.
func TestLiveCorrectionsOverridePatches(t *testing.T) {
	db := loadTestDatabase(t)
	patches, err := DecodePropertyPatches([]byte(testPatch))
	require.NoError(t, err)
	require.NoError(t, PopulateFromPatches(db, patches, testLogger()))

	err = ProcessMessages(db, payloads(`{"type": "PatchDescriptors", "className": "Part", "descriptors": {
		"Anchored": {"scriptability": "Read", "defaultValue": {"Type": "Bool", "Value": true}}
	}}`), testLogger())
	require.NoError(t, err)

	part := db.Classes["Part"]
	assert.Equal(t, models.ScriptabilityRead, part.Properties["Anchored"].Scriptability)
	assert.Equal(t, variant.Bool(true), part.DefaultProperties["Anchored"])
	assert.Equal(t, variant.Vector3{X: 4, Y: 1.2, Z: 2}, part.DefaultProperties["Size"], "untouched patches survive")
}

func TestUnknownClassLeavesDatabaseUnchanged(t *testing.T) {
	db := loadTestDatabase(t)
	err := ProcessMessages(db, payloads(`{"type": "PatchDescriptors", "className": "Frobnicator", "descriptors": {
		"Speed": {"scriptability": "ReadWrite", "defaultValue": {"Type": "Float32", "Value": 2.5}}
	}}`), testLogger())
	require.NoError(t, err)
	assert.Equal(t, loadTestDatabase(t), db)
}

func TestPartialFieldApplication(t *testing.T) {
	db := loadTestDatabase(t)
	err := ProcessMessages(db, payloads(`{"type": "PatchDescriptors", "className": "Part", "descriptors": {
		"Anchored": {"scriptability": "None"},
		"Size": {"defaultValue": {"Type": "Vector3", "Value": [1, 1, 1]}},
		"Transparency": {"scriptability": "ReadWrite", "defaultValue": {"Type": "Float32", "Value": 0}}
	}}`), testLogger())
	require.NoError(t, err)

	part := db.Classes["Part"]
	assert.Equal(t, models.ScriptabilityNone, part.Properties["Anchored"].Scriptability)
	assert.NotContains(t, part.DefaultProperties, "Anchored")

	assert.Equal(t, models.ScriptabilityReadWrite, part.Properties["Size"].Scriptability)
	assert.Equal(t, variant.Vector3{X: 1, Y: 1, Z: 1}, part.DefaultProperties["Size"])

	// Unknown property: the default is kept, the scriptability is dropped.
	assert.Equal(t, variant.Float32(0), part.DefaultProperties["Transparency"])
	assert.NotContains(t, part.Properties, "Transparency")
}

func TestFatalDecodeStopsProcessing(t *testing.T) {
	db := loadTestDatabase(t)
	bad := `{"type": "PatchDescriptors", "className": "Part", "descriptors": {"Anchored": {"scriptability": 7}}}`
	err := ProcessMessages(db, payloads(
		`{"type": "Version", "version": [0, 600, 1, 6000]}`,
		bad,
		`{"type": "PatchDescriptors", "className": "Part", "descriptors": {"Size": {"scriptability": "None"}}}`,
	), testLogger())

	require.ErrorIs(t, err, ErrProtocolViolation)
	var violation *ProtocolViolationError
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, 1, violation.Index)
	assert.Equal(t, bad, string(violation.Payload))
	assert.Contains(t, err.Error(), bad)

	assert.Equal(t, models.ScriptabilityReadWrite, db.Classes["Part"].Properties["Size"].Scriptability,
		"messages after the malformed one are not applied")
}

func TestAnchoredScenario(t *testing.T) {
	db := loadTestDatabase(t)
	err := ProcessMessages(db, payloads(
		`{"type":"PatchDescriptors","className":"Part","descriptors":{"Anchored":{"scriptability":"None"}}}`,
	), testLogger())
	require.NoError(t, err)

	assert.Equal(t, models.ScriptabilityNone, db.Classes["Part"].Properties["Anchored"].Scriptability)
	assert.NotContains(t, db.Classes["Part"].DefaultProperties, "Anchored")
	assert.NoError(t, Validate(db))
}

func TestFrobnicatorScenario(t *testing.T) {
	db := loadTestDatabase(t)
	err := ProcessMessages(db, payloads(
		`{"type":"PatchDescriptors","className":"Frobnicator","descriptors":{"Speed":{"defaultValue":{"Type":"Float32","Value":1}}}}`,
	), testLogger())
	require.NoError(t, err)
	assert.NotContains(t, db.Classes, "Frobnicator")
	assert.Equal(t, loadTestDatabase(t), db)
}

func TestNewProbeRequest(t *testing.T) {
	request := NewProbeRequest(loadTestDatabase(t))
	assert.Equal(t, []string{"Anchored", "Secret", "Shape", "Size"}, request.Classes["Part"])
	assert.Equal(t, []string{"ClassName", "Name", "Parent"}, request.Classes["Instance"])
}
