package scaffold

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// Export copies an embedded template set into dst so it can be customised and
// passed back with --templates. dst must be absent or empty. It returns the
// written files relative to dst.
func Export(name, dst string) ([]string, error) {
	src := path.Join(scaffoldsDir, name)
	if _, err := fs.Stat(scaffoldFS, path.Join(src, manifestFile)); err != nil {
		return nil, errors.Newf("template set %q not found", name)
	}

	if err := os.MkdirAll(dst, 0755); err != nil {
		return nil, errors.Wrap(err, "creating output directory")
	}

	// Check for existing files to prevent accidental overwrites.
	existing, err := os.ReadDir(dst)
	if err == nil && len(existing) > 0 {
		return nil, errors.WithHint(
			errors.Newf("output directory %s is not empty", dst),
			"remove existing files first or choose another directory")
	}

	var files []string
	err = fs.WalkDir(scaffoldFS, src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}

		data, err := fs.ReadFile(scaffoldFS, p)
		if err != nil {
			return errors.Wrapf(err, "reading %s", p)
		}
		if err := os.WriteFile(target, data, 0644); err != nil {
			return errors.Wrapf(err, "writing %s", target)
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
