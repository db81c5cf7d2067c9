// Package capabilities gates what the assistant is allowed to do. Flags are
// toggled at runtime through the API and read by the brain and tool router.
package capabilities

import "sync"

// Known capability names.
const (
	WebSearch   = "web_search"
	FileRead    = "file_read"
	FileWrite   = "file_write"
	PythonExec  = "python_exec"
	MemoryRead  = "memory_read"
	MemoryWrite = "memory_write"
)

// Per-tool flags, gating the tool router.
const (
	FileReaderTool    = "file_reader"
	SystemMonitorTool = "system_monitor"
	TaskManagerTool   = "task_manager"
	GitTool           = "git"
	PythonSandboxTool = "python_sandbox"
)

// Manager holds the capability flags. Safe for concurrent use.
type Manager struct {
	mu    sync.RWMutex
	flags map[string]bool
}

// NewManager returns the default flag set: everything local on, web search
// and file writes off.
func NewManager() *Manager {
	return &Manager{
		flags: map[string]bool{
			WebSearch:         false,
			FileRead:          true,
			FileWrite:         false,
			PythonExec:        true,
			MemoryRead:        true,
			MemoryWrite:       true,
			FileReaderTool:    true,
			SystemMonitorTool: true,
			TaskManagerTool:   true,
			GitTool:           true,
			PythonSandboxTool: true,
		},
	}
}

// NewManagerFrom starts from the defaults and applies overrides. Names not
// in the default set are added, so configs can gate new tools.
func NewManagerFrom(overrides map[string]bool) *Manager {
	m := NewManager()
	for name, enabled := range overrides {
		m.flags[name] = enabled
	}
	return m
}

// IsEnabled reports whether the capability is on. Unknown names are off.
func (m *Manager) IsEnabled(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.flags[name]
}

// Set toggles a known capability. Returns false for unknown names.
func (m *Manager) Set(name string, enabled bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.flags[name]; !ok {
		return false
	}
	m.flags[name] = enabled
	return true
}

// Status returns a copy of all flags.
func (m *Manager) Status() map[string]bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]bool, len(m.flags))
	for k, v := range m.flags {
		out[k] = v
	}
	return out
}
