package scaffold

import (
	"strings"
	"time"

	"github.com/larascaffold/larascaffold/internal/column"
	"github.com/larascaffold/larascaffold/internal/naming"
)

// Paths are the project-relative directories artifacts are written to.
type Paths struct {
	Controllers string
	Models      string
	Migrations  string
	Views       string
	Routes      string
}

// Namespaces are the PHP namespaces of generated classes.
type Namespaces struct {
	Controllers string
	Models      string
}

// Data holds all template variables available to template sets.
type Data struct {
	Name  string // resource name as given, e.g. "post"
	Model string // model name as given

	ControllerName string // e.g. "PostController"
	ModelName      string // e.g. "Post"
	TableName      string // e.g. "Posts"
	MigrationClass string // e.g. "CreatePostTable"
	MigrationFile  string // e.g. "2024_01_02_030405_create_post_table"
	ViewDir        string // e.g. "post"

	Columns          []column.Spec
	Fillable         []string
	MigrationColumns []string // "name:type" per column
	Definitions      []string // "$table->type('name');" per column
	FillableList     string   // "title, body"
	FillableArray    string   // "'title', 'body'"

	MigrationStyle string
	Timestamp      string
	Year           int

	Paths      Paths
	Namespaces Namespaces
}

// NewData derives every template variable from the parsed input.
func NewData(name, model string, specs []column.Spec, cls column.Classification, now time.Time) *Data {
	quoted := make([]string, len(cls.Fillable))
	for i, f := range cls.Fillable {
		quoted[i] = column.Quote(f)
	}

	return &Data{
		Name:             name,
		Model:            model,
		ControllerName:   naming.ControllerName(name),
		ModelName:        naming.ModelName(model),
		TableName:        naming.TableName(model),
		MigrationClass:   naming.MigrationClass(name),
		MigrationFile:    naming.MigrationFile(name, now),
		ViewDir:          naming.ViewDir(name),
		Columns:          specs,
		Fillable:         cls.Fillable,
		MigrationColumns: cls.Migration,
		Definitions:      column.Definitions(specs),
		FillableList:     strings.Join(cls.Fillable, ", "),
		FillableArray:    strings.Join(quoted, ", "),
		Timestamp:        naming.Timestamp(now),
		Year:             now.Year(),
	}
}
