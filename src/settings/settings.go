package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"rbxreflect/src/helpers"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Arguments struct {
	// Path to the API dump JSON
	DumpPath string

	// Directory of YAML property patches, optional
	PatchDir string

	// The live host command and its arguments. Empty skips live corrections.
	HostCommand string
	HostArgs    []string

	// How long the live host may run before it is killed
	HostTimeout time.Duration

	// Largest single probe message accepted, in bytes
	MaxMessageSize int

	// Replay probe messages from this file instead of running the host
	ReplayPath string

	// Save the probe messages of this run for later replay
	RecordPath string

	// Output files; at least one is required for generate
	OutputBSON string
	OutputJSON string

	ConfigFile string

	// Strongly verbose logging
	Verbose bool
	Debug   bool

	Version string
}

var (
	instance *Arguments
	once     sync.Once
)

// GetSettings returns the process-wide arguments.
func GetSettings() *Arguments {
	once.Do(func() {
		instance = &Arguments{}
	})
	return instance
}

// configFile is the YAML form of the arguments. Keys match the CLI flags.
type configFile struct {
	Dump           *string        `yaml:"dump"`
	Patches        *string        `yaml:"patches"`
	Host           *string        `yaml:"host"`
	HostArgs       []string       `yaml:"host-args"`
	HostTimeout    *time.Duration `yaml:"host-timeout"`
	MaxMessageSize *int           `yaml:"max-message-size"`
	Replay         *string        `yaml:"replay"`
	Record         *string        `yaml:"record"`
	OutputBSON     *string        `yaml:"output-bson"`
	OutputJSON     *string        `yaml:"output-json"`
	Verbose        *bool          `yaml:"verbose"`
	Debug          *bool          `yaml:"debug"`
}

// ApplyConfigFile overlays the YAML config at path onto args. Values given
// explicitly on the command line, as reported by isSet, are kept.
func ApplyConfigFile(args *Arguments, path string, isSet func(flag string) bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read config file: %w", err)
	}

	var cfg configFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("could not parse config file %s: %w", path, err)
	}

	overlay(isSet, "dump", cfg.Dump, &args.DumpPath)
	overlay(isSet, "patches", cfg.Patches, &args.PatchDir)
	overlay(isSet, "host", cfg.Host, &args.HostCommand)
	if cfg.HostArgs != nil && !isSet("host-args") {
		args.HostArgs = cfg.HostArgs
	}
	overlay(isSet, "host-timeout", cfg.HostTimeout, &args.HostTimeout)
	overlay(isSet, "max-message-size", cfg.MaxMessageSize, &args.MaxMessageSize)
	overlay(isSet, "replay", cfg.Replay, &args.ReplayPath)
	overlay(isSet, "record", cfg.Record, &args.RecordPath)
	overlay(isSet, "output-bson", cfg.OutputBSON, &args.OutputBSON)
	overlay(isSet, "output-json", cfg.OutputJSON, &args.OutputJSON)
	overlay(isSet, "verbose", cfg.Verbose, &args.Verbose)
	overlay(isSet, "debug", cfg.Debug, &args.Debug)

	return nil
}

func overlay[T any](isSet func(string) bool, flag string, value *T, target *T) {
	if value != nil && !isSet(flag) {
		*target = *value
	}
}

// ValidateArguments validates the arguments and returns an error if invalid.
// requireOutput is set for runs that emit a database.
func ValidateArguments(args *Arguments, requireOutput bool) error {
	if args.DumpPath == "" {
		return errors.New("a dump file is required")
	}
	if !helpers.FileExists(args.DumpPath, zap.S()) {
		return fmt.Errorf("dump file does not exist or is a directory: %s", args.DumpPath)
	}

	if args.PatchDir != "" && !helpers.DirExists(args.PatchDir) {
		return fmt.Errorf("patch directory does not exist or is not a directory: %s", args.PatchDir)
	}

	if args.ReplayPath != "" {
		if args.HostCommand != "" {
			return errors.New("--replay and --host cannot be used together")
		}
		if !helpers.FileExists(args.ReplayPath, zap.S()) {
			return fmt.Errorf("replay file does not exist or is a directory: %s", args.ReplayPath)
		}
	}
	if args.RecordPath != "" && args.HostCommand == "" {
		return errors.New("--record needs a live host (--host)")
	}

	if args.HostTimeout < 0 {
		return fmt.Errorf("invalid host timeout: %s", args.HostTimeout)
	}
	if args.MaxMessageSize < 0 {
		return fmt.Errorf("invalid max message size: %d", args.MaxMessageSize)
	}

	if requireOutput && args.OutputBSON == "" && args.OutputJSON == "" {
		return errors.New("at least one of --output-bson or --output-json is required")
	}

	return nil
}
