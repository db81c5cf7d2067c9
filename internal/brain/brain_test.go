package brain

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astralabs/astra/internal/autollm"
	"github.com/astralabs/astra/internal/capabilities"
	"github.com/astralabs/astra/internal/llm"
	"github.com/astralabs/astra/internal/memory"
)

type fakeProvider struct {
	reply    string
	err      error
	requests []*llm.ChatRequest
}

func (f *fakeProvider) Chat(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &llm.ChatResponse{Content: f.reply, Model: req.Model, Duration: time.Millisecond}, nil
}

func (f *fakeProvider) Name() string    { return "fake" }
func (f *fakeProvider) Available() bool { return true }

type fakeLister struct{ models []string }

func (f *fakeLister) ListModels(ctx context.Context) ([]string, error) {
	return f.models, nil
}

func newTestBrain(t *testing.T, provider llm.Provider, opts ...Option) *Brain {
	t.Helper()
	store := memory.NewStore(filepath.Join(t.TempDir(), "memory.json"), "Arnav", zerolog.Nop())
	lister := &fakeLister{models: []string{"phi3:mini", "llama3.2:3b", "mistral:latest"}}
	selector := autollm.NewSelector(context.Background(), lister, "phi3:mini", zerolog.Nop())

	opts = append([]Option{WithRand(rand.New(rand.NewSource(1)))}, opts...)
	return New("Arnav", store, provider, selector, zerolog.Nop(), opts...)
}

func TestProcessEmptyInput(t *testing.T) {
	b := newTestBrain(t, &fakeProvider{reply: "hi"})

	env := b.Process(context.Background(), "   ", false)
	assert.Equal(t, "I didn't catch that. Try again?", env.Reply)
	assert.Equal(t, "error", env.Intent)
	assert.Equal(t, 0.0, env.Confidence)
	assert.Equal(t, "UNKNOWN", env.ConfidenceLabel)
}

func TestProcessShortcut(t *testing.T) {
	provider := &fakeProvider{reply: "unused"}
	b := newTestBrain(t, provider)

	env := b.Process(context.Background(), "who created you?", false)
	assert.Equal(t, "Arnav built me. Pretty awesome, right?", env.Reply)
	assert.Equal(t, "shortcut", env.Intent)
	assert.Equal(t, "intent_handler", env.Agent)
	assert.Equal(t, 1.0, env.Confidence)
	assert.Empty(t, provider.requests, "shortcut must not hit the model")
}

func TestProcessShortcutSkippedInVisionMode(t *testing.T) {
	provider := &fakeProvider{reply: "I see a desk."}
	b := newTestBrain(t, provider)

	env := b.Process(context.Background(), "hello", true)
	assert.NotEqual(t, "shortcut", env.Intent)
	assert.NotEmpty(t, provider.requests)
}

func TestProcessFactStorage(t *testing.T) {
	provider := &fakeProvider{reply: "unused"}
	b := newTestBrain(t, provider)

	env := b.Process(context.Background(), "my name is Dev", false)
	assert.Contains(t, env.Reply, "Got it!")
	assert.Equal(t, "memory_storage", env.Intent)
	assert.True(t, env.MemoryUpdated)
	assert.Equal(t, 0.95, env.Confidence)

	doc := b.Store().Load()
	assert.Equal(t, "Dev", doc.Preferences.Name)
	require.NotEmpty(t, doc.UserFacts)
}

func TestProcessMemoryRecall(t *testing.T) {
	b := newTestBrain(t, &fakeProvider{reply: "unused"})

	b.Process(context.Background(), "my favorite color is blue", false)
	env := b.Process(context.Background(), "what is my favorite color?", false)

	assert.Equal(t, "memory_recall", env.Intent)
	assert.Contains(t, env.Reply, "blue")
}

func TestProcessTaskTool(t *testing.T) {
	b := newTestBrain(t, &fakeProvider{reply: "unused"})

	env := b.Process(context.Background(), "add task finish the report", false)
	assert.Equal(t, "task_management", env.Intent)
	assert.True(t, env.ToolUsed)
	assert.Contains(t, env.Reply, "finish the report")

	env = b.Process(context.Background(), "show tasks", false)
	assert.Contains(t, env.Reply, "Tasks (1):")
	assert.Contains(t, env.Reply, "finish the report")

	env = b.Process(context.Background(), "complete task", false)
	assert.Contains(t, env.Reply, "Completed: finish the report")
}

func TestProcessToolGatedByCapability(t *testing.T) {
	caps := capabilities.NewManagerFrom(map[string]bool{
		capabilities.TaskManagerTool: false,
	})
	provider := &fakeProvider{reply: "Sure, I'll remember to help."}
	b := newTestBrain(t, provider, WithCapabilities(caps))

	env := b.Process(context.Background(), "show tasks", false)
	assert.NotEqual(t, "task_management", env.Intent)
}

func TestProcessPythonProposal(t *testing.T) {
	b := newTestBrain(t, &fakeProvider{reply: "unused"})

	env := b.Process(context.Background(), "run this code\n```python\nprint('hi')\n```", false)
	assert.True(t, env.ApprovalRequired)
	require.NotNil(t, env.Proposal)
	assert.Equal(t, "python_sandbox", env.Proposal.Tool)
	assert.Equal(t, "print('hi')", env.Proposal.Params["code"])
	assert.Equal(t, 1.0, env.Confidence)

	// Fenced code with no bare-code hint keyword still yields a proposal
	// and runs nothing.
	env = b.Process(context.Background(), "run python on this\n```\nopen('x').read()\n```", false)
	assert.True(t, env.ApprovalRequired)
	require.NotNil(t, env.Proposal)
	assert.Equal(t, "open('x').read()", env.Proposal.Params["code"])
}

func TestProcessGeneration(t *testing.T) {
	provider := &fakeProvider{reply: "Quantum computing uses qubits to explore many states at once."}
	b := newTestBrain(t, provider)

	env := b.Process(context.Background(), "please describe quantum computing in detail", false)
	assert.Contains(t, env.Reply, "qubits")
	assert.Contains(t, env.Agent, "ollama/")

	require.NotEmpty(t, provider.requests)
	req := provider.requests[len(provider.requests)-1]
	assert.Contains(t, req.SystemPrompt, "You are ASTRA, Arnav's personal AI assistant.")
	assert.Contains(t, req.SystemPrompt, "KNOWN FACTS ABOUT ARNAV")
}

func TestProcessGenerationModelDown(t *testing.T) {
	provider := &fakeProvider{err: errors.New("connection refused")}
	b := newTestBrain(t, provider)

	env := b.Process(context.Background(), "please describe quantum computing in detail", false)
	assert.Contains(t, env.Reply, "can't reach my model")
}

func TestProcessTruthGuard(t *testing.T) {
	provider := &fakeProvider{reply: "I was built by OpenAI and trained on their data."}
	b := newTestBrain(t, provider)

	env := b.Process(context.Background(), "please describe how your training worked", false)
	assert.Contains(t, env.Reply, "Arnav")
	assert.NotContains(t, env.Reply, "OpenAI")
}

func TestProcessSelfReferenceRewritten(t *testing.T) {
	provider := &fakeProvider{reply: "ASTRA thinks that is a great plan."}
	b := newTestBrain(t, provider)

	env := b.Process(context.Background(), "please evaluate this plan for the architecture", false)
	assert.NotContains(t, env.Reply, "ASTRA")
}

func TestProcessHistoryWindow(t *testing.T) {
	provider := &fakeProvider{reply: "Understood, continuing the discussion."}
	b := newTestBrain(t, provider)

	for i := 0; i < 12; i++ {
		b.Process(context.Background(), "please explain the architecture of distributed systems", false)
	}
	assert.LessOrEqual(t, len(b.History()), historyLimit)
}

func TestClarify(t *testing.T) {
	assert.Equal(t, "Tell me about recursion.", clarify("recursion"))
	assert.Equal(t, "Explain goroutines briefly.", clarify("goroutines?"))
	assert.Equal(t, "how does a CPU cache work", clarify("how  does a CPU   cache work"))
}

func TestNeedsWebSearch(t *testing.T) {
	assert.True(t, needsWebSearch("search for the latest Go release"))
	assert.True(t, needsWebSearch("what's the weather in Delhi"))
	assert.False(t, needsWebSearch("please explain pointers"))
}
