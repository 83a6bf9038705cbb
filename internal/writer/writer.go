package writer

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/chriserin/jsxgen/internal/db"
	"github.com/chriserin/jsxgen/internal/errors"
	"github.com/chriserin/jsxgen/internal/generate"
	"github.com/chriserin/jsxgen/internal/logging"
	"github.com/chriserin/jsxgen/internal/parser"
	"github.com/rs/zerolog"
)

// Action is what happened to one artifact.
type Action string

const (
	ActionCreated     Action = db.ActionCreated
	ActionOverwritten Action = db.ActionOverwritten
	ActionSame        Action = db.ActionSame
	ActionSkipped     Action = db.ActionSkipped
)

// History is the part of the history store the writer needs.
type History interface {
	LastHash(path string) (string, bool, error)
	RecordArtifact(rec db.ArtifactRecord) error
}

type Options struct {
	OutputDir string
	Policy    Policy
	DryRun    bool
	Confirmer Confirmer // used by PolicyPrompt; Decline when nil
	History   History   // optional; PolicyUnchanged never overwrites without it
	RunID     int64
}

type Result struct {
	Artifact generate.Artifact
	Path     string // relative to the output directory
	Action   Action
}

// Writer materializes artifacts under an output directory.
type Writer struct {
	opts Options
	log  zerolog.Logger
}

func New(opts Options) *Writer {
	if opts.Confirmer == nil {
		opts.Confirmer = Decline{}
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	return &Writer{opts: opts, log: logging.GetLogger("writer")}
}

// Path maps an artifact to its file path relative to the output directory.
// Component names are used verbatim as directory and file names.
func Path(a generate.Artifact) (string, error) {
	if a.Name == "" || filepath.Base(a.Name) != a.Name || a.Name == "." || a.Name == ".." {
		return "", errors.Newf(errors.ErrInvalidArgument, "artifact name %q cannot be used as a file name", a.Name)
	}
	file := a.Name + "." + a.Ext

	kind := a.Kind
	if kind == generate.KindStyle {
		kind = ownerKind(a.Element)
	}
	switch kind {
	case generate.KindConfig:
		return filepath.Join("src", file), nil
	case generate.KindApp:
		return filepath.Join("src", "App", file), nil
	case generate.KindComponent:
		return filepath.Join("src", "components", a.Name, file), nil
	case generate.KindContext:
		return filepath.Join("src", "context", file), nil
	}
	return "", errors.Newf(errors.ErrInvalidArgument, "unknown artifact kind %q", a.Kind)
}

func ownerKind(el *parser.Element) generate.ArtifactKind {
	if el == nil {
		return generate.KindComponent
	}
	switch el.Kind() {
	case parser.KindConfig:
		return generate.KindConfig
	case parser.KindApp:
		return generate.KindApp
	}
	return generate.KindComponent
}

// Write applies the overwrite policy to every artifact in order and stops
// at the first failure. Results for the artifacts handled so far are
// returned with the error.
func (w *Writer) Write(artifacts []generate.Artifact) ([]Result, error) {
	root, err := filepath.Abs(w.opts.OutputDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrWrite, "resolving %s", w.opts.OutputDir)
	}
	var fsys synthfs.FileSystem = filesystem.NewOSFileSystem(root)
	if w.opts.DryRun {
		fsys = synthfs.NewDryRunFS()
	}

	results := make([]Result, 0, len(artifacts))
	for _, a := range artifacts {
		res, err := w.write(fsys, root, a)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (w *Writer) write(fsys synthfs.FileSystem, root string, a generate.Artifact) (Result, error) {
	rel, err := Path(a)
	if err != nil {
		return Result{}, err
	}
	full := filepath.Join(root, rel)
	res := Result{Artifact: a, Path: rel}
	content := []byte(a.Content)

	existing, err := os.ReadFile(full)
	switch {
	case os.IsNotExist(err):
		res.Action = ActionCreated
	case err != nil:
		return Result{}, errors.Wrapf(err, errors.ErrWrite, "reading %s", rel)
	case bytes.Equal(existing, content):
		res.Action = ActionSame
	default:
		overwrite, err := w.allowOverwrite(rel, full, existing)
		if err != nil {
			return Result{}, err
		}
		res.Action = ActionSkipped
		if overwrite {
			res.Action = ActionOverwritten
		}
	}

	w.log.Debug().Str("path", rel).Str("action", string(res.Action)).Bool("dryRun", w.opts.DryRun).Msg("Artifact resolved")
	if res.Action == ActionCreated || res.Action == ActionOverwritten {
		if err := w.materialize(fsys, rel, content); err != nil {
			return Result{}, err
		}
	}
	if w.opts.DryRun {
		return res, nil
	}

	if w.opts.History != nil {
		rec := db.ArtifactRecord{
			RunID:     w.opts.RunID,
			Path:      full,
			Kind:      string(a.Kind),
			Component: a.Name,
			Hash:      Hash(content),
			Action:    string(res.Action),
		}
		if err := w.opts.History.RecordArtifact(rec); err != nil {
			return Result{}, fmt.Errorf("recording %s: %w", rel, err)
		}
	}
	return res, nil
}

// materialize runs a single file creation through a synthfs pipeline. The
// operation creates missing parent directories and truncates an existing
// file, so the same path serves both created and overwritten artifacts.
func (w *Writer) materialize(fsys synthfs.FileSystem, rel string, content []byte) error {
	pipeline := synthfs.NewMemPipeline()
	if err := pipeline.Add(synthfs.New().CreateFile(filepath.ToSlash(rel), content, 0o644)); err != nil {
		return errors.Wrapf(err, errors.ErrWrite, "planning %s", rel)
	}

	result := synthfs.NewExecutor().Run(context.Background(), pipeline, fsys)
	if err := result.GetError(); err != nil {
		w.log.Error().Err(err).Str("path", rel).Msg("Pipeline execution failed")
		return errors.Wrapf(err, errors.ErrWrite, "writing %s", rel)
	}
	return nil
}

func (w *Writer) allowOverwrite(rel, full string, existing []byte) (bool, error) {
	switch w.opts.Policy {
	case PolicyAlways:
		return true, nil
	case PolicyPrompt:
		ok, err := w.opts.Confirmer.Confirm(rel)
		if err != nil {
			return false, errors.Wrapf(err, errors.ErrWrite, "confirming %s", rel)
		}
		return ok, nil
	case PolicyUnchanged:
		if w.opts.History == nil {
			return false, nil
		}
		last, found, err := w.opts.History.LastHash(full)
		if err != nil {
			return false, err
		}
		if !found {
			w.log.Info().Str("path", rel).Msg("File not written by jsxgen, keeping it")
			return false, nil
		}
		if last != Hash(existing) {
			w.log.Info().Str("path", rel).Msg("File edited since last generation, keeping it")
			return false, nil
		}
		return true, nil
	default:
		return false, nil
	}
}

// Hash is the content fingerprint stored in the history.
func Hash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
