package directors

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"rbxreflect/src/engine"
	"rbxreflect/src/models"
	"rbxreflect/src/settings"
	"rbxreflect/src/variant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const pipelineDump = `{
  "Classes": [
    {"Name": "Instance", "Superclass": "<<<ROOT>>>", "Members": [
      {"MemberType": "Property", "Name": "Name", "ValueType": {"Category": "Primitive", "Name": "string"}}
    ]},
    {"Name": "Part", "Superclass": "Instance", "Members": [
      {"MemberType": "Property", "Name": "Anchored", "ValueType": {"Category": "Primitive", "Name": "bool"}},
      {"MemberType": "Property", "Name": "Transparency", "ValueType": {"Category": "Primitive", "Name": "float"}}
    ]}
  ],
  "Enums": []
}`

const pipelinePatch = `
Change:
  Part:
    Transparency:
      DefaultValue:
        Type: Float32
        Value: 0.5
`

const pipelineMessages = `{"type":"Version","version":[0,600,1,6000]}
{"type":"PatchDescriptors","className":"Part","descriptors":{"Anchored":{"scriptability":"None"}}}
{"type":"PatchDescriptors","className":"Frobnicator","descriptors":{"Speed":{"defaultValue":{"Type":"Float32","Value":1}}}}
`

func writeFixtures(t *testing.T) *settings.Arguments {
	t.Helper()
	dir := t.TempDir()
	patchDir := filepath.Join(dir, "patches")
	require.NoError(t, os.MkdirAll(patchDir, 0755))

	args := &settings.Arguments{
		DumpPath:   filepath.Join(dir, "dump.json"),
		PatchDir:   patchDir,
		ReplayPath: filepath.Join(dir, "messages.jsonl"),
		OutputBSON: filepath.Join(dir, "out", "database.bson"),
		OutputJSON: filepath.Join(dir, "out", "database.json"),
	}
	require.NoError(t, os.WriteFile(args.DumpPath, []byte(pipelineDump), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(patchDir, "part.yml"), []byte(pipelinePatch), 0644))
	require.NoError(t, os.WriteFile(args.ReplayPath, []byte(pipelineMessages), 0644))
	return args
}

func TestGenerateWithReplay(t *testing.T) {
	args := writeFixtures(t)
	logger := zap.NewNop().Sugar()
	service := NewReflectionService(args, NewLiveHost(args, logger), logger)

	db, err := service.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, [4]uint32{0, 600, 1, 6000}, db.Version)
	part := db.Classes["Part"]
	assert.Equal(t, models.ScriptabilityNone, part.Properties["Anchored"].Scriptability)
	assert.NotContains(t, part.DefaultProperties, "Anchored")
	assert.Equal(t, variant.Float32(0.5), part.DefaultProperties["Transparency"])
	assert.NotContains(t, db.Classes, "Frobnicator")

	require.NoError(t, service.Emit(db))
	assert.FileExists(t, args.OutputBSON)
	assert.FileExists(t, args.OutputJSON)
}

func TestGenerateWithoutHost(t *testing.T) {
	args := writeFixtures(t)
	args.ReplayPath = ""
	logger := zap.NewNop().Sugar()

	db, err := NewReflectionService(args, NewLiveHost(args, logger), logger).Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.ScriptabilityReadWrite, db.Classes["Part"].Properties["Anchored"].Scriptability)
	assert.Equal(t, [4]uint32{}, db.Version)
}

func TestGenerateWithProcessHost(t *testing.T) {
	args := writeFixtures(t)
	args.HostCommand = "/bin/sh"
	args.HostArgs = []string{"-c", "cat " + args.ReplayPath}
	args.RecordPath = filepath.Join(t.TempDir(), "recorded.jsonl")
	args.ReplayPath = ""
	logger := zap.NewNop().Sugar()

	db, err := NewReflectionService(args, NewLiveHost(args, logger), logger).Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.ScriptabilityNone, db.Classes["Part"].Properties["Anchored"].Scriptability)

	recorded, err := os.ReadFile(args.RecordPath)
	require.NoError(t, err)
	assert.Equal(t, pipelineMessages, string(recorded))
}

func TestGenerateAbortsOnBadMessage(t *testing.T) {
	args := writeFixtures(t)
	require.NoError(t, os.WriteFile(args.ReplayPath, []byte(`{"type":"PatchDescriptors"}`+"\n"), 0644))
	logger := zap.NewNop().Sugar()
	service := NewReflectionService(args, NewLiveHost(args, logger), logger)

	_, err := service.Generate(context.Background())
	assert.ErrorIs(t, err, engine.ErrProtocolViolation)
}

func TestGenerateAbortsOnInvalidCorrection(t *testing.T) {
	args := writeFixtures(t)
	require.NoError(t, os.WriteFile(args.ReplayPath,
		[]byte(`{"type":"PatchDescriptors","className":"Part","descriptors":{"Anchored":{"defaultValue":{"Type":"String","Value":"yes"}}}}`+"\n"), 0644))
	logger := zap.NewNop().Sugar()

	_, err := NewReflectionService(args, NewLiveHost(args, logger), logger).Generate(context.Background())
	assert.ErrorIs(t, err, engine.ErrValidationFailed)
}

func TestCheck(t *testing.T) {
	args := writeFixtures(t)
	logger := zap.NewNop().Sugar()
	assert.NoError(t, NewReflectionService(args, nil, logger).Check())

	require.NoError(t, os.WriteFile(filepath.Join(args.PatchDir, "bad.yml"),
		[]byte("Change:\n  Frobnicator:\n    Speed:\n      Scriptability: None\n"), 0644))
	err := NewReflectionService(args, nil, logger).Check()
	assert.ErrorIs(t, err, engine.ErrPatchTargetMissing)
}

func TestServiceManager(t *testing.T) {
	ResetServiceManager()
	defer ResetServiceManager()

	assert.Nil(t, GetServiceManager().ReflectionService)

	args := &settings.Arguments{ReplayPath: "messages.jsonl"}
	offline := InitServiceManager(args, false, zap.NewNop().Sugar())
	assert.Same(t, offline, GetServiceManager())
	assert.Same(t, args, GetServiceManager().Settings)
	assert.Nil(t, offline.ReflectionService.host, "offline runs never get a live host")

	live := InitServiceManager(args, true, zap.NewNop().Sugar())
	assert.Same(t, live, GetServiceManager(), "a later run replaces the earlier one")
	assert.IsType(t, &engine.ReplayHost{}, live.ReflectionService.host)

	ResetServiceManager()
	assert.Nil(t, GetServiceManager().ReflectionService)
}
