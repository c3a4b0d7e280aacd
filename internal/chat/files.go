package chat

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

// maxFileBytes caps attached files so a stray binary or log dump cannot
// blow out the context window.
const maxFileBytes = 100_000

var (
	fileRefPattern = regexp.MustCompile(`@file\s+(\S+)`)
	fileRefStrip   = regexp.MustCompile(`@file\s+\S+\s*`)
)

// HasFileRefs reports whether the message uses the @file command.
func HasFileRefs(message string) bool {
	return strings.Contains(message, "@file ")
}

// ExtractFileRefs returns the paths named by @file tokens and the message
// with those tokens stripped out.
func ExtractFileRefs(message string) (paths []string, clean string) {
	for _, m := range fileRefPattern.FindAllStringSubmatch(message, -1) {
		paths = append(paths, m[1])
	}
	clean = strings.TrimSpace(fileRefStrip.ReplaceAllString(message, ""))
	return paths, clean
}

// FileError explains why a referenced file could not be attached.
type FileError struct {
	Title string
	Hint  string
}

func (e *FileError) Error() string { return e.Title }

// FileResult is the outcome of loading one referenced file. Block holds
// the labeled content when Err is nil.
type FileResult struct {
	Path  string
	Lines int
	Block string
	Err   *FileError
}

// ReadFiles loads each referenced path, confining it to root, capping size,
// and rejecting non-text content. Every path yields a result so the caller
// can report failures one by one and still send whatever loaded.
func ReadFiles(root string, paths []string) []FileResult {
	results := make([]FileResult, 0, len(paths))
	for _, path := range paths {
		results = append(results, readFile(root, path))
	}
	return results
}

func readFile(root, path string) FileResult {
	res := FileResult{Path: path}

	full, ok := resolveUnderRoot(root, path)
	if !ok {
		res.Err = &FileError{
			Title: fmt.Sprintf("Outside project root: %s", path),
			Hint:  "Only files under the current directory can be attached.",
		}
		return res
	}

	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		res.Err = &FileError{
			Title: fmt.Sprintf("File not found: %s", path),
			Hint:  "Paths are relative to the current directory. Example: @file main.go",
		}
		return res
	}
	if info.Size() > maxFileBytes {
		res.Err = &FileError{
			Title: fmt.Sprintf("File too large: %s (%s bytes)", path, humanize.Comma(info.Size())),
			Hint:  "Max file size is 100KB. Try a smaller file or split it up.",
		}
		return res
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			res.Err = &FileError{
				Title: fmt.Sprintf("Access denied: %s", path),
				Hint:  "You don't have permission to read this file.",
			}
		} else {
			res.Err = &FileError{
				Title: fmt.Sprintf("Could not read %s", path),
				Hint:  err.Error(),
			}
		}
		return res
	}
	if !utf8.Valid(data) {
		res.Err = &FileError{
			Title: fmt.Sprintf("Can't read %s", path),
			Hint:  "This looks like a binary file. Only text files are supported.",
		}
		return res
	}

	content := string(data)
	res.Lines = strings.Count(content, "\n") + 1
	res.Block = fmt.Sprintf("[File: %s (%d lines)]\n\n%s", path, res.Lines, content)
	return res
}

// resolveUnderRoot resolves path against root and reports whether the
// result stays inside it. The user's own path string is kept for display;
// only the resolved form touches the filesystem.
func resolveUnderRoot(root, path string) (string, bool) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", false
	}
	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(absRoot, full)
	}
	full, err = filepath.Abs(full)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(absRoot, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return full, true
}
