package scaffold

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
	"text/template"

	"github.com/cockroachdb/errors"
	"github.com/larascaffold/larascaffold/internal/column"
	"go.yaml.in/yaml/v3"
)

//go:embed scaffolds
var scaffoldFS embed.FS

const (
	scaffoldsDir = "scaffolds"
	manifestFile = "scaffold.yaml"

	// DefaultSet is the embedded template set used when none is configured.
	DefaultSet = "laravel"

	leftDelim  = "[["
	rightDelim = "]]"
)

// Mode is the write policy of an artifact.
type Mode string

const (
	// ModeOverwrite replaces the target unconditionally.
	ModeOverwrite Mode = "overwrite"
	// ModeCreate writes the target only if the file is absent (or forced).
	ModeCreate Mode = "create"
	// ModeRegister ensures each rendered line is present in the target.
	ModeRegister Mode = "register"
)

// ArtifactSpec is one entry of scaffold.yaml.
type ArtifactSpec struct {
	Kind        string `yaml:"kind"`
	Template    string `yaml:"template"`
	Path        string `yaml:"path"`
	Mode        Mode   `yaml:"mode"`
	Description string `yaml:"description,omitempty"`
}

type manifest struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Artifacts   []ArtifactSpec `yaml:"artifacts"`
}

// TemplateSet is a parsed, validated template set.
type TemplateSet struct {
	Name        string
	Description string
	Source      string
	Artifacts   []ArtifactSpec

	bodies map[string]*template.Template
	paths  map[string]*template.Template
}

// EmbeddedSets lists the template sets compiled into the binary.
func EmbeddedSets() ([]string, error) {
	entries, err := fs.ReadDir(scaffoldFS, scaffoldsDir)
	if err != nil {
		return nil, errors.Wrap(err, "reading embedded template sets")
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// LoadEmbedded loads a template set compiled into the binary.
func LoadEmbedded(name string) (*TemplateSet, error) {
	sub, err := fs.Sub(scaffoldFS, path.Join(scaffoldsDir, name))
	if err != nil {
		return nil, errors.Wrapf(err, "template set %q", name)
	}
	if _, err := fs.Stat(sub, manifestFile); err != nil {
		available, _ := EmbeddedSets()
		return nil, errors.WithHintf(
			errors.Newf("template set %q not found", name),
			"built-in sets: %s", strings.Join(available, ", "))
	}
	return load(sub, "embedded:"+name)
}

// LoadDir loads a template set from a directory on disk.
func LoadDir(dir string) (*TemplateSet, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "template set directory %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.Newf("template set %s is not a directory", dir)
	}
	return load(os.DirFS(dir), dir)
}

// Load resolves ref: an empty ref selects DefaultSet, a name of an embedded
// set selects it, anything else is treated as a directory.
func Load(ref string) (*TemplateSet, error) {
	if ref == "" {
		return LoadEmbedded(DefaultSet)
	}
	if IsEmbedded(ref) {
		return LoadEmbedded(ref)
	}
	return LoadDir(ref)
}

// IsEmbedded reports whether ref names a built-in template set rather than a
// directory.
func IsEmbedded(ref string) bool {
	if ref == "" || strings.ContainsAny(ref, `/\.`) {
		return false
	}
	sets, err := EmbeddedSets()
	if err != nil {
		return false
	}
	return slices.Contains(sets, ref)
}

func load(fsys fs.FS, source string) (*TemplateSet, error) {
	data, err := fs.ReadFile(fsys, manifestFile)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s in %s", manifestFile, source)
	}

	result, err := ValidateManifest(data)
	if err != nil {
		return nil, errors.Wrapf(err, "validating %s in %s", manifestFile, source)
	}
	if !result.Valid {
		msgs := make([]string, 0, len(result.Issues))
		for _, issue := range result.Issues {
			msgs = append(msgs, issue.String())
		}
		return nil, errors.Newf("invalid %s in %s:\n  %s", manifestFile, source, strings.Join(msgs, "\n  "))
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "parsing %s in %s", manifestFile, source)
	}

	set := &TemplateSet{
		Name:        m.Name,
		Description: m.Description,
		Source:      source,
		Artifacts:   m.Artifacts,
		bodies:      make(map[string]*template.Template, len(m.Artifacts)),
		paths:       make(map[string]*template.Template, len(m.Artifacts)),
	}

	for _, a := range m.Artifacts {
		if _, dup := set.bodies[a.Kind]; dup {
			return nil, errors.Newf("%s in %s: duplicate artifact kind %q", manifestFile, source, a.Kind)
		}

		body, err := fs.ReadFile(fsys, a.Template)
		if err != nil {
			return nil, errors.Wrapf(err, "reading template %s for %s", a.Template, a.Kind)
		}
		bt, err := newTemplate(a.Template).Parse(string(body))
		if err != nil {
			return nil, errors.Wrapf(err, "parsing template %s", a.Template)
		}
		pt, err := newTemplate(a.Kind + ".path").Parse(a.Path)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing path template for %s", a.Kind)
		}
		set.bodies[a.Kind] = bt
		set.paths[a.Kind] = pt
	}
	return set, nil
}

func newTemplate(name string) *template.Template {
	return template.New(name).
		Delims(leftDelim, rightDelim).
		Funcs(funcMap).
		Option("missingkey=error")
}

var funcMap = template.FuncMap{
	"join":  strings.Join,
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
	"quote": column.Quote,
}
