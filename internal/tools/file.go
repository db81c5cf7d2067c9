package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

const (
	// maxFileLines caps how much of a file is returned to the model.
	maxFileLines = 300

	// maxDirEntries caps directory listings.
	maxDirEntries = 50
)

var filePathPattern = regexp.MustCompile(`[\w./\\-]+\.(?:go|py|txt|json|csv|js|ts|md|yaml|yml|env|sh|html|css)`)

// ExtractFilePath pulls the first file-looking token out of a message.
func ExtractFilePath(text string) string {
	return filePathPattern.FindString(text)
}

// FileContent is the result of reading a file.
type FileContent struct {
	Path        string
	Content     string
	Lines       int
	Truncated   bool
	TruncatedAt int
}

// DirEntry is one entry of a directory listing.
type DirEntry struct {
	Name  string
	IsDir bool
}

// FileReader reads files and lists directories rooted at a base path.
// Relative paths resolve against the base; absolute paths pass through.
type FileReader struct {
	base string
}

// NewFileReader creates a reader rooted at base. An empty base means the
// current working directory.
func NewFileReader(base string) *FileReader {
	if base == "" {
		base, _ = os.Getwd()
	}
	return &FileReader{base: base}
}

func (r *FileReader) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.base, path)
}

// Read returns a file's content, truncated to the first 300 lines.
func (r *FileReader) Read(path string) (*FileContent, error) {
	full := r.resolve(path)
	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", full)
		}
		return nil, fmt.Errorf("read %s: %w", full, err)
	}

	content := string(data)
	lines := strings.Count(content, "\n") + 1
	fc := &FileContent{Path: full, Content: content, Lines: lines}
	if lines > maxFileLines {
		fc.Content = strings.Join(strings.SplitN(content, "\n", maxFileLines+1)[:maxFileLines], "\n")
		fc.Truncated = true
		fc.TruncatedAt = maxFileLines
	}
	return fc, nil
}

// List returns up to 50 entries of a directory, sorted by name.
func (r *FileReader) List(dir string) (string, []DirEntry, error) {
	if dir == "" {
		dir = "."
	}
	target := r.resolve(dir)

	entries, err := os.ReadDir(target)
	if err != nil {
		return target, nil, fmt.Errorf("list %s: %w", target, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var out []DirEntry
	for i, e := range entries {
		if i >= maxDirEntries {
			break
		}
		out = append(out, DirEntry{Name: e.Name(), IsDir: e.IsDir()})
	}
	return target, out, nil
}
