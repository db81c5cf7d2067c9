// Package tools implements the local tool layer: file reading, system
// monitoring, task phrases, git operations, and a sandboxed Python runner.
// Trigger detection maps free-form user text onto a tool name; dangerous
// tools go through an explicit approval round trip before execution.
package tools

import "strings"

// Tool names as they appear in capability flags and API payloads.
const (
	ToolFileReader    = "file_reader"
	ToolSystemMonitor = "system_monitor"
	ToolTaskManager   = "task_manager"
	ToolGit           = "git"
	ToolPythonSandbox = "python_sandbox"
)

// approvalRequired lists the tools that never run without an explicit go-ahead.
var approvalRequired = map[string]bool{
	ToolGit:           true,
	ToolPythonSandbox: true,
}

var (
	fileTriggers   = []string{"read ", "open ", "show file", "read file", "cat ", "view file"}
	systemTriggers = []string{"cpu", "memory", "ram", "disk", "system", "how slow", "why slow", "performance", "processes"}
	taskTriggers   = []string{"add task", "new task", "my tasks", "show tasks", "list tasks", "remind me", "todo", "complete task", "finish task"}
	gitTriggers    = []string{"git status", "git log", "git commit", "git branch", "git diff", "what changed", "commit ", "show commits"}
	pythonTriggers = []string{"```python", "run python", "execute python", "run this code", "run code"}
)

// Detect returns the tool a message is asking for, or "" when none matches.
// Checks run in priority order so that code blocks and git phrases win over
// looser matches like a bare "system".
func Detect(userInput string) string {
	text := strings.ToLower(userInput)

	matchAny := func(triggers []string) bool {
		for _, t := range triggers {
			if strings.Contains(text, t) {
				return true
			}
		}
		return false
	}

	switch {
	case matchAny(pythonTriggers):
		return ToolPythonSandbox
	case matchAny(gitTriggers):
		return ToolGit
	case matchAny(taskTriggers):
		return ToolTaskManager
	case matchAny(systemTriggers):
		return ToolSystemMonitor
	case matchAny(fileTriggers):
		return ToolFileReader
	}
	return ""
}

// RequiresApproval reports whether a tool needs user confirmation before it
// may execute.
func RequiresApproval(tool string) bool {
	return approvalRequired[tool]
}

// Proposal describes a pending tool action awaiting user approval. It is
// returned to the client instead of executing the action.
type Proposal struct {
	Type    string         `json:"type"`
	Tool    string         `json:"tool"`
	Action  string         `json:"action"`
	Params  map[string]any `json:"params"`
	Preview map[string]any `json:"preview,omitempty"`
}
