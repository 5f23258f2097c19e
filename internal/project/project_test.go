package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFromLockFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "composer.json", `{"require":{"laravel/framework":"^9.0"}}`)
	writeFile(t, root, "composer.lock", `{"packages":[
		{"name":"guzzlehttp/guzzle","version":"7.8.1"},
		{"name":"laravel/framework","version":"v10.48.4"}
	]}`)

	p, err := Detect(root, true)
	require.NoError(t, err)
	require.NotNil(t, p.Version)
	assert.Equal(t, "10.48.4", p.Version.String())
	assert.Equal(t, "composer.lock", p.VersionSource)
	assert.Equal(t, `App\Models`, p.ModelNamespace())
	assert.Equal(t, "app/Models", p.ModelsDir())
}

func TestDetectFromComposerConstraint(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "composer.json", `{"require":{"php":"^7.1.3","laravel/framework":"5.8.*"}}`)

	p, err := Detect(root, true)
	require.NoError(t, err)
	require.NotNil(t, p.Version)
	assert.Equal(t, uint64(5), p.Version.Major())
	assert.Equal(t, "composer.json", p.VersionSource)
	assert.True(t, p.LegacyModels())
	assert.Equal(t, "App", p.ModelNamespace())
	assert.Equal(t, "app", p.ModelsDir())
}

func TestDetectUnknownVersion(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "artisan", "#!/usr/bin/env php\n")

	p, err := Detect(root, true)
	require.NoError(t, err)
	assert.Nil(t, p.Version)
	assert.False(t, p.LegacyModels())
	assert.Equal(t, "app/Models", p.ModelsDir())
}

func TestDetectDevBranchInLock(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "composer.json", `{"require":{"laravel/framework":"^11.0"}}`)
	writeFile(t, root, "composer.lock", `{"packages":[{"name":"laravel/framework","version":"dev-master"}]}`)

	p, err := Detect(root, true)
	require.NoError(t, err)
	require.NotNil(t, p.Version)
	assert.Equal(t, uint64(11), p.Version.Major())
	assert.Equal(t, "composer.json", p.VersionSource)
}

func TestDetectNotLaravelRoot(t *testing.T) {
	root := t.TempDir()

	_, err := Detect(root, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotLaravelRoot))
	assert.NotEmpty(t, errors.GetAllHints(err))

	p, err := Detect(root, false)
	require.NoError(t, err)
	assert.Equal(t, root, p.Root)
}

func TestDetectMissingDir(t *testing.T) {
	_, err := Detect(filepath.Join(t.TempDir(), "nope"), false)
	assert.Error(t, err)
}

func TestDetectBadComposerJSON(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "composer.json", `{not json`)
	_, err := Detect(root, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}

func TestLowerBound(t *testing.T) {
	tests := []struct {
		constraint string
		want       string
	}{
		{"^10.10", "10.10.0"},
		{"^9.0|^10.0", "9.0.0"},
		{"^8.75 || ^9.0", "8.75.0"},
		{">=5.5 <6", "5.5.0"},
		{"~7.0", "7.0.0"},
	}
	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			v := LowerBound(tt.constraint)
			require.NotNil(t, v)
			assert.Equal(t, tt.want, v.String())
		})
	}

	assert.Nil(t, LowerBound("not a constraint"))
	assert.Nil(t, LowerBound("*"))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}
