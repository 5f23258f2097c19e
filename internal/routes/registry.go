// Package routes keeps routes/web.php registrations idempotent. Instead of
// blindly appending, the registry reads the file, skips lines that are
// already present and places import lines next to the existing imports.
package routes

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

const phpOpenTag = "<?php"

// Merge returns content with every statement of want that is not yet present.
// A statement may span several lines; it counts as present only when all of
// its lines appear consecutively in content. Comparison ignores surrounding
// whitespace of each line. "use" imports go after the last existing import
// (or after the opening tag); everything else is appended. added lists the
// statements that were inserted, in the order given.
func Merge(content string, want []string) (merged string, added []string) {
	if strings.TrimSpace(content) == "" {
		content = phpOpenTag + "\n"
	}

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	present := make(map[string]bool, len(lines))
	for _, l := range lines {
		present[strings.TrimSpace(l)] = true
	}

	for _, w := range want {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}

		if strings.Contains(w, "\n") {
			if containsBlock(lines, w) {
				continue
			}
			added = append(added, w)
			lines = append(lines, strings.Split(w, "\n")...)
			for _, l := range strings.Split(w, "\n") {
				present[strings.TrimSpace(l)] = true
			}
			continue
		}

		if present[w] {
			continue
		}
		present[w] = true
		added = append(added, w)

		if isImport(w) {
			lines = insertImport(lines, w)
		} else {
			lines = append(lines, w)
		}
	}

	return strings.Join(lines, "\n") + "\n", added
}

// Statements groups rendered text into statements. Lines are joined until
// brackets balance and the line ends a statement, so a grouped route block is
// kept whole. Blank lines between statements are dropped.
func Statements(text string) []string {
	var (
		stmts   []string
		pending []string
		depth   int
	)
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimRight(l, " \t\r")
		if len(pending) == 0 && strings.TrimSpace(l) == "" {
			continue
		}
		pending = append(pending, l)
		depth += bracketDelta(l)

		trimmed := strings.TrimSpace(l)
		if depth <= 0 && (strings.HasSuffix(trimmed, ";") || strings.HasSuffix(trimmed, "}")) {
			stmts = append(stmts, strings.TrimSpace(strings.Join(pending, "\n")))
			pending, depth = nil, 0
		}
	}
	if len(pending) > 0 {
		stmts = append(stmts, strings.TrimSpace(strings.Join(pending, "\n")))
	}
	return stmts
}

// bracketDelta counts opening minus closing brackets outside string literals.
func bracketDelta(line string) int {
	var (
		delta int
		quote rune
	)
	escaped := false
	for _, r := range line {
		switch {
		case escaped:
			escaped = false
		case quote != 0:
			if r == '\\' {
				escaped = true
			} else if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '(' || r == '[' || r == '{':
			delta++
		case r == ')' || r == ']' || r == '}':
			delta--
		}
	}
	return delta
}

func containsBlock(lines []string, block string) bool {
	want := strings.Split(block, "\n")
	for i := range want {
		want[i] = strings.TrimSpace(want[i])
	}
	for start := 0; start+len(want) <= len(lines); start++ {
		match := true
		for j, w := range want {
			if strings.TrimSpace(lines[start+j]) != w {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func isImport(line string) bool {
	return strings.HasPrefix(line, "use ") && strings.HasSuffix(line, ";")
}

func insertImport(lines []string, imp string) []string {
	at := -1
	for i, l := range lines {
		if isImport(strings.TrimSpace(l)) {
			at = i + 1
		}
	}

	if at == -1 {
		for i, l := range lines {
			if strings.TrimSpace(l) != phpOpenTag {
				continue
			}
			if i+1 < len(lines) && strings.TrimSpace(lines[i+1]) == "" {
				at = i + 2
				break
			}
			// Keep a blank line between the opening tag and the imports.
			lines = insertAt(lines, i+1, "")
			at = i + 2
			break
		}
	}

	if at == -1 {
		at = 0
	}
	return insertAt(lines, at, imp)
}

func insertAt(lines []string, i int, s string) []string {
	lines = append(lines, "")
	copy(lines[i+1:], lines[i:])
	lines[i] = s
	return lines
}

// Plan reports which statements Ensure would add to path without writing.
func Plan(path string, want []string) ([]string, error) {
	content, err := read(path)
	if err != nil {
		return nil, err
	}
	_, added := Merge(content, want)
	return added, nil
}

// Ensure makes sure every statement of want is present in path, creating the file
// if needed. The file is rewritten only when something was added.
func Ensure(path string, want []string) ([]string, error) {
	content, err := read(path)
	if err != nil {
		return nil, err
	}

	merged, added := Merge(content, want)
	if len(added) == 0 {
		return nil, nil
	}

	if err := os.WriteFile(path, []byte(merged), 0644); err != nil {
		return nil, errors.Wrapf(err, "writing routes file %s", path)
	}
	return added, nil
}

func read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrapf(err, "reading routes file %s", path)
	}
	return string(data), nil
}
