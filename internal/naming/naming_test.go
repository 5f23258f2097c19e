package naming

import (
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
)

func TestUpperFirst(t *testing.T) {
	tests := []struct{ in, want string }{
		{"post", "Post"},
		{"Post", "Post"},
		{"blogPost", "BlogPost"},
		{"", ""},
		{"élan", "Élan"},
	}
	for _, tt := range tests {
		if got := UpperFirst(tt.in); got != tt.want {
			t.Errorf("UpperFirst(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStudly(t *testing.T) {
	tests := []struct{ in, want string }{
		{"post", "Post"},
		{"blog_post", "BlogPost"},
		{"blog__post", "BlogPost"},
		{"blogPost", "BlogPost"},
	}
	for _, tt := range tests {
		if got := Studly(tt.in); got != tt.want {
			t.Errorf("Studly(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDerivedNames(t *testing.T) {
	if got := ControllerName("post"); got != "PostController" {
		t.Errorf("ControllerName = %q", got)
	}
	if got := ModelName("post"); got != "Post" {
		t.Errorf("ModelName = %q", got)
	}
	if got := TableName("post"); got != "Posts" {
		t.Errorf("TableName = %q", got)
	}
	if got := MigrationClass("blog_post"); got != "CreateBlogPostTable" {
		t.Errorf("MigrationClass = %q", got)
	}
	if got := ViewDir("BlogPost"); got != "blogpost" {
		t.Errorf("ViewDir = %q", got)
	}
}

func TestMigrationFile(t *testing.T) {
	ts := time.Date(2024, 3, 9, 7, 5, 1, 0, time.UTC)
	if got := MigrationFile("Post", ts); got != "2024_03_09_070501_create_post_table" {
		t.Errorf("MigrationFile = %q", got)
	}
}

func TestValidateIdentifier(t *testing.T) {
	valid := []string{"post", "Post", "blog_post", "_x", "post2"}
	for _, v := range valid {
		if err := ValidateIdentifier("name", v); err != nil {
			t.Errorf("ValidateIdentifier(%q) unexpected error: %v", v, err)
		}
	}
	invalid := []string{"", "2post", "blog-post", "po st", "post/../x"}
	for _, v := range invalid {
		if err := ValidateIdentifier("name", v); err == nil {
			t.Errorf("ValidateIdentifier(%q) expected error", v)
		}
	}
}

func TestValidateIdentifierHint(t *testing.T) {
	for _, v := range []string{"", "blog-post"} {
		err := ValidateIdentifier("model", v)
		if err == nil {
			t.Fatalf("ValidateIdentifier(%q) expected error", v)
		}
		if !strings.Contains(err.Error(), "model") {
			t.Errorf("error %q does not name the argument", err)
		}
		if len(errors.GetAllHints(err)) == 0 {
			t.Errorf("ValidateIdentifier(%q) error carries no hint", v)
		}
	}
}
