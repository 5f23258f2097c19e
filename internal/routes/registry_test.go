package routes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const laravelWeb = `<?php

use Illuminate\Support\Facades\Route;

Route::get('/', function () {
    return view('welcome');
});
`

var postLines = []string{
	`use App\Http\Controllers\PostController;`,
	`Route::resource('post', PostController::class);`,
}

func TestMergeIntoDefaultRoutesFile(t *testing.T) {
	merged, added := Merge(laravelWeb, postLines)
	assert.Equal(t, postLines, added)

	want := `<?php

use Illuminate\Support\Facades\Route;
use App\Http\Controllers\PostController;

Route::get('/', function () {
    return view('welcome');
});
Route::resource('post', PostController::class);
`
	assert.Equal(t, want, merged)
}

func TestMergeIsIdempotent(t *testing.T) {
	once, _ := Merge(laravelWeb, postLines)
	twice, added := Merge(once, postLines)
	assert.Empty(t, added)
	assert.Equal(t, once, twice)
	assert.Equal(t, 1, strings.Count(twice, "Route::resource('post'"))
}

func TestMergeIgnoresSurroundingWhitespace(t *testing.T) {
	content := "<?php\n\n  Route::resource('post', PostController::class);  \n"
	_, added := Merge(content, []string{"Route::resource('post', PostController::class);"})
	assert.Empty(t, added)
}

func TestMergeEmptyFile(t *testing.T) {
	merged, added := Merge("", postLines)
	assert.Len(t, added, 2)
	assert.Equal(t, "<?php\n\nuse App\\Http\\Controllers\\PostController;\nRoute::resource('post', PostController::class);\n", merged)
}

func TestMergeAppendsAfterMissingTrailingNewline(t *testing.T) {
	content := "<?php\n\nuse Foo;\n\nRoute::get('/', fn () => 1);"
	merged, _ := Merge(content, []string{"Route::resource('post', PostController::class);"})
	assert.True(t, strings.HasSuffix(merged, "Route::get('/', fn () => 1);\nRoute::resource('post', PostController::class);\n"))
}

func TestEnsure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "web.php")
	require.NoError(t, os.WriteFile(path, []byte(laravelWeb), 0644))

	added, err := Ensure(path, postLines)
	require.NoError(t, err)
	assert.Len(t, added, 2)

	info, err := os.Stat(path)
	require.NoError(t, err)
	before := info.ModTime()

	added, err = Ensure(path, postLines)
	require.NoError(t, err)
	assert.Empty(t, added)

	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, before, info.ModTime(), "unchanged file must not be rewritten")
}

func TestEnsureCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "web.php")
	added, err := Ensure(path, postLines[1:])
	require.NoError(t, err)
	assert.Len(t, added, 1)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<?php\n"))
}

func TestPlanDoesNotWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "web.php")
	added, err := Plan(path, postLines)
	require.NoError(t, err)
	assert.Len(t, added, 2)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

const authGroup = `Route::middleware('auth')->group(function () {
    Route::resource('post', PostController::class);
});`

func TestMergeKeepsMultiLineStatementWhole(t *testing.T) {
	// laravelWeb already contains a "});" line; the block must still be
	// appended with its own closing line.
	merged, added := Merge(laravelWeb, []string{authGroup})
	require.Len(t, added, 1)
	assert.True(t, strings.HasSuffix(merged, authGroup+"\n"))
	assert.Equal(t, 2, strings.Count(merged, "});"))

	again, added := Merge(merged, []string{authGroup})
	assert.Empty(t, added)
	assert.Equal(t, merged, again)
}

func TestMergeMultiLineStatementIgnoresIndentation(t *testing.T) {
	content := "<?php\n\n" + strings.ReplaceAll(authGroup, "    ", "\t\t") + "\n"
	_, added := Merge(content, []string{authGroup})
	assert.Empty(t, added)
}

func TestStatements(t *testing.T) {
	text := "use App\\Http\\Controllers\\PostController;\n\n" + authGroup + "\nRoute::get('/x', fn () => '(');\n"
	assert.Equal(t, []string{
		`use App\Http\Controllers\PostController;`,
		authGroup,
		`Route::get('/x', fn () => '(');`,
	}, Statements(text))
}
