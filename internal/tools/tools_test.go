package tools

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectPriorityOrder(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"python code block", "run this:\n```python\nprint(1)\n```", ToolPythonSandbox},
		{"python beats git", "run python to parse git log output", ToolPythonSandbox},
		{"git status", "git status please", ToolGit},
		{"what changed", "what changed since yesterday?", ToolGit},
		{"task add", "add task finish the report", ToolTaskManager},
		{"task beats system", "add task check cpu usage", ToolTaskManager},
		{"system monitor", "why is my machine so slow? check performance", ToolSystemMonitor},
		{"file read", "read notes.txt for me", ToolFileReader},
		{"no tool", "how are you today?", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.input))
		})
	}
}

func TestRequiresApproval(t *testing.T) {
	assert.True(t, RequiresApproval(ToolGit))
	assert.True(t, RequiresApproval(ToolPythonSandbox))
	assert.False(t, RequiresApproval(ToolFileReader))
	assert.False(t, RequiresApproval(ToolSystemMonitor))
	assert.False(t, RequiresApproval(ToolTaskManager))
}

func TestExtractFilePath(t *testing.T) {
	assert.Equal(t, "notes.txt", ExtractFilePath("read notes.txt for me"))
	assert.Equal(t, "src/main.go", ExtractFilePath("open src/main.go"))
	assert.Equal(t, "", ExtractFilePath("read my mind"))
}

func TestFileReaderRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.txt")
	require.NoError(t, os.WriteFile(path, []byte("line one\nline two\n"), 0o644))

	reader := NewFileReader(dir)
	fc, err := reader.Read("hello.txt")
	require.NoError(t, err)
	assert.Equal(t, path, fc.Path)
	assert.Contains(t, fc.Content, "line one")
	assert.False(t, fc.Truncated)
}

func TestFileReaderTruncatesLongFiles(t *testing.T) {
	dir := t.TempDir()
	long := strings.Repeat("x\n", 400)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "big.txt"), []byte(long), 0o644))

	fc, err := NewFileReader(dir).Read("big.txt")
	require.NoError(t, err)
	assert.True(t, fc.Truncated)
	assert.Equal(t, maxFileLines, fc.TruncatedAt)
	assert.Equal(t, maxFileLines, len(strings.Split(fc.Content, "\n")))
}

func TestFileReaderMissingFile(t *testing.T) {
	_, err := NewFileReader(t.TempDir()).Read("nope.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestFileReaderList(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	target, entries, err := NewFileReader(dir).List(".")
	require.NoError(t, err)
	assert.Equal(t, dir, target)
	require.Len(t, entries, 3)
	assert.Equal(t, "a.txt", entries[0].Name)
	assert.True(t, entries[2].IsDir)
}

func TestExtractPythonCode(t *testing.T) {
	code := ExtractPythonCode("run this\n```python\nprint('hi')\n```\nthanks")
	assert.Equal(t, "print('hi')", code)

	code = ExtractPythonCode("```\nx = 1\n```")
	assert.Equal(t, "x = 1", code)

	code = ExtractPythonCode("import os\nprint(os.name)")
	assert.Equal(t, "import os\nprint(os.name)", code)

	// Input cleaning collapses newlines to spaces before extraction runs.
	code = ExtractPythonCode("run this code ```python print('hi') ```")
	assert.Equal(t, "print('hi')", code)

	// Fenced code needs no bare-code hint keyword.
	code = ExtractPythonCode("check this ```python open('f').read() ```")
	assert.Equal(t, "open('f').read()", code)

	assert.Equal(t, "", ExtractPythonCode("just a normal sentence"))
}

func TestSandboxProposeFlagsDangerousKeywords(t *testing.T) {
	p := NewSandbox().Propose("import subprocess\nsubprocess.run(['ls'])")
	assert.Equal(t, "approval_required", p.Type)
	assert.Equal(t, ToolPythonSandbox, p.Tool)
	assert.Equal(t, "execute", p.Action)

	warnings, ok := p.Preview["warnings"].([]string)
	require.True(t, ok)
	assert.Contains(t, warnings, "subprocess")
	assert.Equal(t, 2, p.Preview["lines"])
}

func TestSandboxProposeCleanCode(t *testing.T) {
	p := NewSandbox().Propose("print('hello')")
	_, hasWarnings := p.Preview["warnings"]
	assert.False(t, hasWarnings)
}

func TestSystemInfoSummaryAndAnalyze(t *testing.T) {
	info := &SystemInfo{
		CPUPercent: 91.5,
		MemPercent: 85.0,
		MemUsedGB:  12.0,
		MemTotalGB: 16.0,
		DiskFreeGB: 5.2,
		TopProcesses: []ProcessInfo{
			{Name: "chrome", CPU: 88.1, Memory: 30.0},
		},
	}

	summary := info.Summary()
	assert.Contains(t, summary, "CPU: 91.5%")
	assert.Contains(t, summary, "12.0/16.0GB")

	analysis := info.Analyze()
	assert.Contains(t, analysis, "CPU is high (91.5%)")
	assert.Contains(t, analysis, "chrome using 88.1% CPU")
	assert.Contains(t, analysis, "Memory high (85.0%)")
	assert.Contains(t, analysis, "5.2GB free disk space")
}

func TestSystemInfoAnalyzeIdle(t *testing.T) {
	info := &SystemInfo{CPUPercent: 4.0, MemPercent: 40.0, DiskFreeGB: 120.0}
	analysis := info.Analyze()
	assert.Contains(t, analysis, "CPU is idle (4.0%)")
	assert.Contains(t, analysis, "Memory at 40.0%")
	assert.NotContains(t, analysis, "disk")
}
