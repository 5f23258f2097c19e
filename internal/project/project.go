// Package project inspects the Laravel project a scaffold is written into:
// whether the directory looks like a Laravel root at all and which framework
// major version it targets, read from composer.lock or composer.json.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
)

const (
	frameworkPackage = "laravel/framework"
	artisanFile      = "artisan"
	composerFile     = "composer.json"
	composerLockFile = "composer.lock"
)

// Namespaces and directories for models. Laravel 8 moved models into
// app/Models; earlier releases keep them directly under app/.
const (
	ModelNamespace       = `App\Models`
	ModelsDir            = "app/Models"
	LegacyModelNamespace = "App"
	LegacyModelsDir      = "app"
)

// ErrNotLaravelRoot is returned by Detect when neither artisan nor
// composer.json exists in the root.
var ErrNotLaravelRoot = errors.New("not a Laravel project root")

// modelsDirMajor is the first framework major that uses app/Models.
const modelsDirMajor = 8

var versionPrefix = regexp.MustCompile(`v?(\d+)(\.\d+)?(\.\d+)?`)

// Project describes the detected target project.
type Project struct {
	Root string
	// Version is the framework version, nil when it could not be determined.
	Version *semver.Version
	// VersionSource names the file Version was read from.
	VersionSource string
}

// Detect inspects root. When requireRoot is set and no Laravel marker file
// exists, ErrNotLaravelRoot is returned with a hint.
func Detect(root string, requireRoot bool) (*Project, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "project directory %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf("project directory %s is not a directory", root)
	}

	p := &Project{Root: root}

	if requireRoot && !exists(filepath.Join(root, artisanFile)) && !exists(filepath.Join(root, composerFile)) {
		return nil, errors.WithHint(
			errors.Wrapf(ErrNotLaravelRoot, "%s", root),
			"run the command from the project root, pass --project-dir, or use --force-root")
	}

	v, err := lockedVersion(filepath.Join(root, composerLockFile))
	if err != nil {
		return nil, err
	}
	if v != nil {
		p.Version, p.VersionSource = v, composerLockFile
		return p, nil
	}

	v, err = requiredVersion(filepath.Join(root, composerFile))
	if err != nil {
		return nil, err
	}
	if v != nil {
		p.Version, p.VersionSource = v, composerFile
	}
	return p, nil
}

// LegacyModels reports whether the project predates app/Models.
func (p *Project) LegacyModels() bool {
	return p.Version != nil && p.Version.Major() < modelsDirMajor
}

// ModelNamespace returns the namespace generated models live in.
func (p *Project) ModelNamespace() string {
	if p.LegacyModels() {
		return LegacyModelNamespace
	}
	return ModelNamespace
}

// ModelsDir returns the project-relative models directory.
func (p *Project) ModelsDir() string {
	if p.LegacyModels() {
		return LegacyModelsDir
	}
	return ModelsDir
}

type composerLock struct {
	Packages []struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"packages"`
}

type composerJSON struct {
	Require map[string]string `json:"require"`
}

func lockedVersion(path string) (*semver.Version, error) {
	data, ok, err := readOptional(path)
	if err != nil || !ok {
		return nil, err
	}

	var lock composerLock
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	for _, pkg := range lock.Packages {
		if pkg.Name != frameworkPackage {
			continue
		}
		v, err := semver.NewVersion(pkg.Version)
		if err != nil {
			// dev branches such as "11.x-dev" carry no usable version.
			return nil, nil
		}
		return v, nil
	}
	return nil, nil
}

func requiredVersion(path string) (*semver.Version, error) {
	data, ok, err := readOptional(path)
	if err != nil || !ok {
		return nil, err
	}

	var c composerJSON
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	constraint, ok := c.Require[frameworkPackage]
	if !ok {
		return nil, nil
	}
	return LowerBound(constraint), nil
}

// LowerBound returns the smallest version named in a composer constraint
// such as "^10.10" or "^9.0|^10.0". It returns nil for constraints semver
// cannot parse.
func LowerBound(constraint string) *semver.Version {
	normalized := strings.ReplaceAll(strings.ReplaceAll(constraint, "||", "|"), "|", "||")
	if _, err := semver.NewConstraint(normalized); err != nil {
		return nil
	}

	var lowest *semver.Version
	for _, m := range versionPrefix.FindAllString(normalized, -1) {
		v, err := semver.NewVersion(m)
		if err != nil {
			continue
		}
		if lowest == nil || v.LessThan(lowest) {
			lowest = v
		}
	}
	return lowest
}

func readOptional(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, "reading %s", path)
	}
	return data, true, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
