package scaffold

import (
	"bytes"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/larascaffold/larascaffold/internal/column"
	"github.com/larascaffold/larascaffold/internal/logging"
	"github.com/larascaffold/larascaffold/internal/naming"
	"github.com/larascaffold/larascaffold/internal/routes"
	"github.com/larascaffold/larascaffold/internal/writer"
)

// Input is one controller:generate invocation.
type Input struct {
	Name    string
	Model   string
	Columns string

	Paths          Paths
	Namespaces     Namespaces
	MigrationStyle string
	ExcludedTypes  []string

	// Force rewrites create-mode artifacts that already exist.
	Force bool
}

// Artifact is a rendered file ready to persist.
type Artifact struct {
	Kind    string
	Path    string // project-relative, slash separated
	Mode    Mode
	Content []byte
}

// Statements splits a register-mode artifact into the statements to ensure.
func (a Artifact) Statements() []string {
	return routes.Statements(string(a.Content))
}

// FileResult is the outcome for one artifact.
type FileResult struct {
	Kind   string
	Path   string
	Status writer.Status
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	Root           string
	DryRun         bool
	Files          []FileResult
	Classification column.Classification
}

// Generator renders a TemplateSet and persists it through a Writer.
type Generator struct {
	set *TemplateSet
	w   *writer.Writer
	now func() time.Time
	log *zap.SugaredLogger
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides time.Now, used for migration timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithLogger overrides the global logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(g *Generator) { g.log = l }
}

// NewGenerator returns a Generator for set writing through w.
func NewGenerator(set *TemplateSet, w *writer.Writer, opts ...Option) *Generator {
	g := &Generator{set: set, w: w, now: time.Now, log: logging.Logger}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Plan validates the input and renders every artifact without writing.
func (g *Generator) Plan(in Input) ([]Artifact, *Data, error) {
	if err := naming.ValidateIdentifier("name", in.Name); err != nil {
		return nil, nil, err
	}
	if err := naming.ValidateIdentifier("model", in.Model); err != nil {
		return nil, nil, err
	}

	specs, err := column.Parse(in.Columns)
	if err != nil {
		return nil, nil, err
	}
	cls := column.NewClassifier(in.ExcludedTypes).Classify(specs)

	data := NewData(in.Name, in.Model, specs, cls, g.now())
	data.Paths = in.Paths
	data.Namespaces = in.Namespaces
	data.MigrationStyle = in.MigrationStyle

	artifacts := make([]Artifact, 0, len(g.set.Artifacts))
	for _, spec := range g.set.Artifacts {
		a, err := g.render(spec, data)
		if err != nil {
			return nil, nil, err
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, data, nil
}

// Run renders the scaffold and writes every artifact in template set order.
// All templates are rendered before the first write; the first write error
// aborts the remaining steps.
func (g *Generator) Run(in Input) (*Result, error) {
	artifacts, data, err := g.Plan(in)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Root:   g.w.Root(),
		DryRun: g.w.DryRun(),
		Classification: column.Classification{
			Fillable:  data.Fillable,
			Migration: data.MigrationColumns,
		},
	}

	for _, a := range artifacts {
		status, err := g.persist(a, in.Force)
		if err != nil {
			return result, errors.Wrapf(err, "%s %s", a.Kind, a.Path)
		}
		result.Files = append(result.Files, FileResult{Kind: a.Kind, Path: a.Path, Status: status})
	}

	g.log.Infow("scaffold complete",
		logging.FieldCount, len(result.Files),
		logging.FieldDryRun, result.DryRun)
	return result, nil
}

func (g *Generator) persist(a Artifact, force bool) (writer.Status, error) {
	rel := filepath.FromSlash(a.Path)
	switch a.Mode {
	case ModeOverwrite:
		return g.w.Overwrite(rel, a.Content)
	case ModeCreate:
		return g.w.CreateIfAbsent(rel, a.Content, force)
	case ModeRegister:
		return g.w.Register(rel, a.Statements())
	default:
		return "", errors.Newf("unknown write mode %q", a.Mode)
	}
}

func (g *Generator) render(spec ArtifactSpec, data *Data) (Artifact, error) {
	var pathBuf bytes.Buffer
	if err := g.set.paths[spec.Kind].Execute(&pathBuf, data); err != nil {
		return Artifact{}, errors.Wrapf(err, "rendering path for %s", spec.Kind)
	}
	target, err := cleanRelative(pathBuf.String())
	if err != nil {
		return Artifact{}, errors.Wrapf(err, "path for %s", spec.Kind)
	}

	var body bytes.Buffer
	if err := g.set.bodies[spec.Kind].Execute(&body, data); err != nil {
		return Artifact{}, errors.Wrapf(err, "executing template %s", spec.Template)
	}

	g.log.Debugw("rendered artifact",
		logging.FieldKind, spec.Kind,
		logging.FieldTemplate, spec.Template,
		logging.FieldPath, target,
		logging.FieldMode, spec.Mode)

	return Artifact{Kind: spec.Kind, Path: target, Mode: spec.Mode, Content: body.Bytes()}, nil
}

// cleanRelative normalizes a rendered target path and rejects paths that are
// absolute or leave the project root.
func cleanRelative(p string) (string, error) {
	p = strings.TrimSpace(strings.ReplaceAll(p, `\`, "/"))
	if p == "" {
		return "", errors.New("empty target path")
	}
	if path.IsAbs(p) || filepath.IsAbs(p) {
		return "", errors.Newf("target path %q must be relative to the project root", p)
	}
	cleaned := path.Clean(p)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", errors.Newf("target path %q escapes the project root", p)
	}
	return cleaned, nil
}
