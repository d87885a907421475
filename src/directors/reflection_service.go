package directors

import (
	"context"
	"fmt"
	"time"

	"rbxreflect/src/engine"
	"rbxreflect/src/models"
	"rbxreflect/src/settings"

	"go.uber.org/zap"
)

// ReflectionService runs the database pipeline: dump, patches, live
// corrections, validation and emission.
type ReflectionService struct {
	settings *settings.Arguments
	host     engine.LiveHost
	logger   *zap.SugaredLogger
}

// NewReflectionService creates a ReflectionService. host may be nil, in which
// case live corrections are skipped.
func NewReflectionService(settings *settings.Arguments, host engine.LiveHost, logger *zap.SugaredLogger) *ReflectionService {
	return &ReflectionService{
		settings: settings,
		host:     host,
		logger:   logger,
	}
}

// NewLiveHost picks the live host the arguments ask for: a replay file, a
// host process (optionally recorded), or none.
func NewLiveHost(args *settings.Arguments, logger *zap.SugaredLogger) engine.LiveHost {
	switch {
	case args.ReplayPath != "":
		return engine.NewReplayHost(args.ReplayPath, args.MaxMessageSize, logger)
	case args.HostCommand != "":
		var host engine.LiveHost = engine.NewProcessHost(args.HostCommand, args.HostArgs,
			args.HostTimeout, args.MaxMessageSize, logger)
		if args.RecordPath != "" {
			host = engine.NewRecordingHost(host, args.RecordPath, logger)
		}
		return host
	}
	return nil
}

// Generate builds the database and checks it. Nothing is written.
func (s *ReflectionService) Generate(ctx context.Context) (*models.ReflectionDatabase, error) {
	start := time.Now()

	db, err := s.buildBaseline()
	if err != nil {
		return nil, err
	}

	if s.host == nil {
		s.logger.Warn("No live host configured, skipping live corrections")
	} else {
		messages, err := s.host.Run(ctx, engine.NewProbeRequest(db))
		if err != nil {
			return nil, fmt.Errorf("live host: %w", err)
		}
		if err := engine.ProcessMessages(db, messages, s.logger); err != nil {
			return nil, fmt.Errorf("live corrections: %w", err)
		}
	}

	if err := engine.Validate(db); err != nil {
		return nil, fmt.Errorf("final check: %w", err)
	}

	s.logger.Infow("Reflection database generated",
		zap.Int("classes", len(db.Classes)),
		zap.Int("properties", db.PropertyCount()),
		zap.String("version", db.VersionString()),
		zap.Duration("elapsed", time.Since(start)))
	return db, nil
}

// Check builds the database from the offline sources only and validates it.
func (s *ReflectionService) Check() error {
	db, err := s.buildBaseline()
	if err != nil {
		return err
	}
	s.logger.Infow("Offline sources are consistent",
		zap.Int("classes", len(db.Classes)),
		zap.Int("properties", db.PropertyCount()),
		zap.Int("enums", len(db.Enums)))
	return nil
}

// Emit writes db to every configured output.
func (s *ReflectionService) Emit(db *models.ReflectionDatabase) error {
	if s.settings.OutputBSON != "" {
		if err := engine.EmitBSON(db, s.settings.OutputBSON, s.logger); err != nil {
			return fmt.Errorf("emitting BSON: %w", err)
		}
	}
	if s.settings.OutputJSON != "" {
		if err := engine.EmitJSON(db, s.settings.OutputJSON, s.logger); err != nil {
			return fmt.Errorf("emitting JSON: %w", err)
		}
	}
	return nil
}

// buildBaseline loads the dump, applies the patches and runs the first
// consistency check.
func (s *ReflectionService) buildBaseline() (*models.ReflectionDatabase, error) {
	dump, err := engine.ReadDump(s.settings.DumpPath, s.logger)
	if err != nil {
		return nil, fmt.Errorf("dump: %w", err)
	}

	db := models.NewReflectionDatabase()
	if err := engine.PopulateFromDump(db, dump, s.logger); err != nil {
		return nil, fmt.Errorf("dump: %w", err)
	}

	patches, err := engine.LoadPropertyPatches(s.settings.PatchDir, s.logger)
	if err != nil {
		return nil, fmt.Errorf("patches: %w", err)
	}
	if err := engine.PopulateFromPatches(db, patches, s.logger); err != nil {
		return nil, fmt.Errorf("patches: %w", err)
	}

	if err := engine.Validate(db); err != nil {
		return nil, fmt.Errorf("pre-check: %w", err)
	}
	return db, nil
}
