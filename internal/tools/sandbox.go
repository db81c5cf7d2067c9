package tools

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

const (
	// MaxExecutionTime bounds how long sandboxed code may run.
	MaxExecutionTime = 5 * time.Second

	// MaxOutputSize bounds how many characters of output are kept.
	MaxOutputSize = 10000
)

// Input cleaning collapses newlines to spaces, so the fence delimiter is any
// whitespace, not a required newline.
var codeBlockPattern = regexp.MustCompile("(?s)```(?:python)?\\s*(.*?)```")

// dangerousKeywords are surfaced as warnings in execution proposals so the
// user sees what they are approving. They do not block execution.
var dangerousKeywords = []string{"os.system", "subprocess", "eval(", "exec(", "__import__", "open("}

var codeHints = []string{"def ", "import ", "print(", "for ", "if __name__"}

// ExtractPythonCode pulls code out of a fenced block, or returns the whole
// message when it reads like bare code.
func ExtractPythonCode(text string) string {
	if m := codeBlockPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	for _, hint := range codeHints {
		if strings.Contains(text, hint) {
			return strings.TrimSpace(text)
		}
	}
	return ""
}

// SandboxResult is the outcome of a sandboxed run.
type SandboxResult struct {
	Success    bool   `json:"success"`
	Output     string `json:"output,omitempty"`
	Error      string `json:"error,omitempty"`
	ReturnCode int    `json:"return_code"`
}

// Sandbox runs Python snippets in a killable subprocess with a wall clock
// limit and capped output.
type Sandbox struct {
	interpreter string
	timeout     time.Duration
}

// NewSandbox creates a sandbox using the python3 interpreter on PATH.
func NewSandbox() *Sandbox {
	return &Sandbox{interpreter: "python3", timeout: MaxExecutionTime}
}

// Propose builds an approval request for running code, with line count and
// keyword warnings in the preview.
func (s *Sandbox) Propose(code string) *Proposal {
	var warnings []string
	for _, kw := range dangerousKeywords {
		if strings.Contains(code, kw) {
			warnings = append(warnings, kw)
		}
	}

	preview := map[string]any{
		"lines": len(strings.Split(code, "\n")),
	}
	if len(warnings) > 0 {
		preview["warnings"] = warnings
	}

	return &Proposal{
		Type:   "approval_required",
		Tool:   ToolPythonSandbox,
		Action: "execute",
		Params: map[string]any{
			"code":    code,
			"timeout": s.timeout.Seconds(),
		},
		Preview: preview,
	}
}

// Execute runs approved code and returns its output. The subprocess is
// killed when the deadline passes.
func (s *Sandbox) Execute(ctx context.Context, code string) *SandboxResult {
	tmp, err := os.CreateTemp("", "sandbox-*.py")
	if err != nil {
		return &SandboxResult{Success: false, Error: err.Error(), ReturnCode: -1}
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(code); err != nil {
		tmp.Close()
		return &SandboxResult{Success: false, Error: err.Error(), ReturnCode: -1}
	}
	tmp.Close()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.interpreter, tmp.Name())
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return &SandboxResult{
			Success:    false,
			Error:      fmt.Sprintf("Execution timed out after %.0f seconds", s.timeout.Seconds()),
			ReturnCode: -1,
		}
	}

	result := &SandboxResult{
		Success: err == nil,
		Output:  truncate(stdout.String(), MaxOutputSize),
	}
	if err != nil {
		result.Error = truncate(stderr.String(), MaxOutputSize)
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ReturnCode = exitErr.ExitCode()
		} else {
			result.ReturnCode = -1
			if result.Error == "" {
				result.Error = err.Error()
			}
		}
	}
	return result
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
