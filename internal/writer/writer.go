package writer

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/larascaffold/larascaffold/internal/logging"
	"github.com/larascaffold/larascaffold/internal/routes"
)

// Permissions for generated files and directories.
const (
	DirPerm  os.FileMode = 0755
	FilePerm os.FileMode = 0644
)

// Status describes what happened to one target.
type Status string

const (
	StatusCreated     Status = "created"
	StatusOverwritten Status = "overwritten"
	StatusSkipped     Status = "skipped"
	StatusRegistered  Status = "registered"
	StatusUnchanged   Status = "unchanged"
)

// Writer writes files relative to Root.
type Writer struct {
	root   string
	dryRun bool
	log    *zap.SugaredLogger
}

// Option configures a Writer.
type Option func(*Writer)

// WithDryRun makes every operation report its outcome without writing.
func WithDryRun(dryRun bool) Option {
	return func(w *Writer) { w.dryRun = dryRun }
}

// WithLogger overrides the global logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(w *Writer) { w.log = l }
}

// New returns a Writer rooted at root.
func New(root string, opts ...Option) *Writer {
	w := &Writer{root: root, log: logging.Logger}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Root returns the project root the writer resolves paths against.
func (w *Writer) Root() string { return w.root }

// DryRun reports whether the writer is in dry-run mode.
func (w *Writer) DryRun() bool { return w.dryRun }

// Abs resolves a project-relative path.
func (w *Writer) Abs(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(w.root, rel)
}

// Overwrite writes content to rel, replacing any existing file.
func (w *Writer) Overwrite(rel string, content []byte) (Status, error) {
	path := w.Abs(rel)
	exists, err := fileExists(path)
	if err != nil {
		return "", err
	}

	status := StatusCreated
	if exists {
		status = StatusOverwritten
	}

	if err := w.write(path, content); err != nil {
		return "", err
	}
	w.logResult(rel, status)
	return status, nil
}

// CreateIfAbsent writes content to rel only when the file does not exist,
// unless force is set.
func (w *Writer) CreateIfAbsent(rel string, content []byte, force bool) (Status, error) {
	path := w.Abs(rel)
	exists, err := fileExists(path)
	if err != nil {
		return "", err
	}

	if exists && !force {
		w.logResult(rel, StatusSkipped)
		return StatusSkipped, nil
	}

	status := StatusCreated
	if exists {
		status = StatusOverwritten
	}
	if err := w.write(path, content); err != nil {
		return "", err
	}
	w.logResult(rel, status)
	return status, nil
}

// Register ensures every statement is present in rel.
func (w *Writer) Register(rel string, stmts []string) (Status, error) {
	path := w.Abs(rel)

	var (
		added []string
		err   error
	)
	if w.dryRun {
		added, err = routes.Plan(path, stmts)
	} else {
		if err := w.mkdir(filepath.Dir(path)); err != nil {
			return "", err
		}
		added, err = routes.Ensure(path, stmts)
	}
	if err != nil {
		return "", err
	}

	status := StatusUnchanged
	if len(added) > 0 {
		status = StatusRegistered
	}
	w.log.Infow("registered lines",
		logging.FieldPath, rel,
		logging.FieldStatus, status,
		logging.FieldCount, len(added),
		logging.FieldDryRun, w.dryRun)
	return status, nil
}

func (w *Writer) write(path string, content []byte) error {
	if w.dryRun {
		return nil
	}
	if err := w.mkdir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, content, FilePerm); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

func (w *Writer) mkdir(dir string) error {
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return errors.Wrapf(err, "creating directory %s", dir)
	}
	return nil
}

func (w *Writer) logResult(rel string, status Status) {
	w.log.Infow("wrote file",
		logging.FieldPath, rel,
		logging.FieldStatus, status,
		logging.FieldDryRun, w.dryRun)
}

func fileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return false, errors.Newf("%s is a directory", path)
		}
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Wrapf(err, "checking %s", path)
}
