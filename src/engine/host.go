package engine

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"rbxreflect/src/helpers"

	"go.uber.org/zap"
)

const (
	DefaultHostTimeout    = 10 * time.Minute
	DefaultMaxMessageSize = 16 * 1024 * 1024

	// RunIDEnv carries the run id into the host process.
	RunIDEnv = "RBXREFLECT_RUN_ID"

	hostWaitDelay   = 2 * time.Second
	stderrTailBytes = 4096
)

// LiveHost runs the probe against the live engine and returns every raw
// message it emitted, in order, once the probe has finished.
type LiveHost interface {
	Run(ctx context.Context, request *ProbeRequest) ([][]byte, error)
}

// ProcessHost launches the live host as a child process. The probe request is
// written to its stdin as JSON and every non-empty stdout line is a message.
type ProcessHost struct {
	Command        string
	Args           []string
	Timeout        time.Duration
	MaxMessageSize int
	logger         *zap.SugaredLogger
}

func NewProcessHost(command string, args []string, timeout time.Duration, maxMessageSize int, logger *zap.SugaredLogger) *ProcessHost {
	if timeout <= 0 {
		timeout = DefaultHostTimeout
	}
	if maxMessageSize <= 0 {
		maxMessageSize = DefaultMaxMessageSize
	}
	return &ProcessHost{
		Command:        command,
		Args:           args,
		Timeout:        timeout,
		MaxMessageSize: maxMessageSize,
		logger:         logger,
	}
}

func (h *ProcessHost) Run(ctx context.Context, request *ProbeRequest) ([][]byte, error) {
	input, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("error encoding probe request: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, h.Timeout)
	defer cancel()

	runID := helpers.GenerateUUID()
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, h.Command, h.Args...)
	cmd.Env = append(os.Environ(), RunIDEnv+"="+runID)
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = hostWaitDelay

	h.logger.Infow("Starting live host",
		zap.String("command", h.Command),
		zap.String("run_id", runID),
		zap.Duration("timeout", h.Timeout))
	start := time.Now()

	runErr := cmd.Run()
	switch {
	case ctx.Err() != nil:
		return nil, fmt.Errorf("live host run %s cancelled: %w", runID, ctx.Err())
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		return nil, fmt.Errorf("%w after %s (run %s)", ErrHostTimeout, h.Timeout, runID)
	case runErr != nil:
		return nil, fmt.Errorf("%w: %v%s", ErrHostFailed, runErr, stderrTail(stderr.Bytes()))
	}

	messages, err := SplitMessages(&stdout, h.MaxMessageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: reading output of run %s: %v", ErrHostFailed, runID, err)
	}

	h.logger.Infow("Live host finished",
		zap.String("run_id", runID),
		zap.Int("messages", len(messages)),
		zap.Duration("elapsed", time.Since(start)))
	return messages, nil
}

func stderrTail(stderr []byte) string {
	stderr = bytes.TrimSpace(stderr)
	if len(stderr) == 0 {
		return ""
	}
	if len(stderr) > stderrTailBytes {
		stderr = stderr[len(stderr)-stderrTailBytes:]
	}
	return "\n" + string(stderr)
}

// SplitMessages reads newline-delimited messages from r, skipping blank
// lines. A line longer than maxMessageSize is an error.
func SplitMessages(r io.Reader, maxMessageSize int) ([][]byte, error) {
	scanner := bufio.NewScanner(r)
	// the buffer also holds the line's terminating newline
	limit := maxMessageSize + 1
	scanner.Buffer(make([]byte, 0, min(64*1024, limit)), limit)

	var messages [][]byte
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		messages = append(messages, bytes.Clone(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}

// ReplayHost returns messages previously captured by a RecordingHost.
type ReplayHost struct {
	Path           string
	MaxMessageSize int
	logger         *zap.SugaredLogger
}

func NewReplayHost(path string, maxMessageSize int, logger *zap.SugaredLogger) *ReplayHost {
	if maxMessageSize <= 0 {
		maxMessageSize = DefaultMaxMessageSize
	}
	return &ReplayHost{Path: path, MaxMessageSize: maxMessageSize, logger: logger}
}

func (h *ReplayHost) Run(ctx context.Context, _ *ProbeRequest) ([][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var messages [][]byte
	err := helpers.WithMappedFile(h.Path, func(data []byte) error {
		var err error
		messages, err = SplitMessages(bytes.NewReader(data), h.MaxMessageSize)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error replaying messages from %s: %w", h.Path, err)
	}

	h.logger.Infof("Replaying %d messages from %s", len(messages), h.Path)
	return messages, nil
}

// RecordingHost runs another host and saves its messages for later replay.
type RecordingHost struct {
	Host   LiveHost
	Path   string
	logger *zap.SugaredLogger
}

func NewRecordingHost(host LiveHost, path string, logger *zap.SugaredLogger) *RecordingHost {
	return &RecordingHost{Host: host, Path: path, logger: logger}
}

func (h *RecordingHost) Run(ctx context.Context, request *ProbeRequest) ([][]byte, error) {
	messages, err := h.Host.Run(ctx, request)
	if err != nil {
		return nil, err
	}
	if err := RecordMessages(h.Path, messages); err != nil {
		return nil, err
	}
	h.logger.Infof("Recorded %d messages to %s", len(messages), h.Path)
	return messages, nil
}

// RecordMessages writes messages one per line, in a form ReplayHost reads back.
func RecordMessages(path string, messages [][]byte) error {
	var buf bytes.Buffer
	for _, msg := range messages {
		buf.Write(msg)
		buf.WriteByte('\n')
	}
	if err := helpers.WriteFileAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("error recording messages to %s: %w", path, err)
	}
	return nil
}
