package scaffold

import (
	"testing"
)

func TestValidateManifestEmbedded(t *testing.T) {
	data, err := scaffoldFS.ReadFile("scaffolds/laravel/scaffold.yaml")
	if err != nil {
		t.Fatalf("reading embedded manifest: %v", err)
	}
	result, err := ValidateManifest(data)
	if err != nil {
		t.Fatalf("ValidateManifest() error: %v", err)
	}
	if !result.Valid {
		for _, issue := range result.Issues {
			t.Errorf("  %s (keyword=%s)", issue, issue.Keyword)
		}
	}
}

func TestValidateManifestIssues(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		wantPath string
	}{
		{"missing artifacts", "name: x\n", ""},
		{"bad name", "name: Bad_Name\nartifacts:\n  - {kind: a, template: t, path: p, mode: create}\n", "/name"},
		{"empty artifacts", "name: x\nartifacts: []\n", "/artifacts"},
		{"bad kind", "name: x\nartifacts:\n  - {kind: A, template: t, path: p, mode: create}\n", "/artifacts/0/kind"},
		{"missing path", "name: x\nartifacts:\n  - {kind: a, template: t, mode: create}\n", "/artifacts/0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateManifest([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("ValidateManifest() error: %v", err)
			}
			if result.Valid {
				t.Fatal("expected invalid manifest")
			}
			if len(result.Issues) == 0 {
				t.Fatal("expected at least one issue")
			}
			found := false
			for _, issue := range result.Issues {
				if issue.Path == tt.wantPath {
					found = true
				}
				if issue.Message == "" {
					t.Errorf("issue at %q has empty message", issue.Path)
				}
			}
			if !found {
				t.Errorf("no issue at path %q: %v", tt.wantPath, result.Issues)
			}
		})
	}
}

func TestValidateManifestInvalidYAML(t *testing.T) {
	if _, err := ValidateManifest([]byte("name: [unclosed\n")); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}
