// Package session owns per-run state: the session identifier, the results
// directory, scratch space, and the session logger. A Session is created
// once at run start and must be closed regardless of outcome.
package session

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const logFileName = "orchestrator.log"

type Session struct {
	ID      string
	Dir     string // session-scoped results directory
	Scratch string // temp workspace, removed on Close
	Log     *log.Logger

	logFile *os.File
}

// New creates the session directory under baseDir, points the `latest`
// symlink at it, allocates scratch space, and opens the session log. The id
// is timestamp-derived; scratch gets a uuid suffix since two sessions can
// start within the same second.
func New(baseDir string) (*Session, error) {
	id := time.Now().Format("20060102_150405")
	dir, err := filepath.Abs(filepath.Join(baseDir, id))
	if err != nil {
		return nil, fmt.Errorf("resolving session dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating session dir: %w", err)
	}

	latest := filepath.Join(baseDir, "latest")
	os.Remove(latest)
	if err := os.Symlink(dir, latest); err != nil {
		return nil, fmt.Errorf("creating latest symlink: %w", err)
	}

	scratch := filepath.Join(os.TempDir(), "gauntlet-"+uuid.NewString())
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		return nil, fmt.Errorf("creating scratch dir: %w", err)
	}

	logFile, err := os.Create(filepath.Join(dir, logFileName))
	if err != nil {
		os.RemoveAll(scratch)
		return nil, fmt.Errorf("opening session log: %w", err)
	}

	return &Session{
		ID:      id,
		Dir:     dir,
		Scratch: scratch,
		Log:     log.New(io.MultiWriter(os.Stdout, logFile), "", log.LstdFlags),
		logFile: logFile,
	}, nil
}

// Close releases the scratch directory and the log file. The session
// directory and its results are kept.
func (s *Session) Close() error {
	var first error
	if err := os.RemoveAll(s.Scratch); err != nil {
		first = fmt.Errorf("removing scratch dir: %w", err)
	}
	if err := s.logFile.Close(); err != nil && first == nil {
		first = fmt.Errorf("closing session log: %w", err)
	}
	return first
}
