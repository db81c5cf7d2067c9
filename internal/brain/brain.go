// Package brain orchestrates the assistant pipeline: emotion tracking,
// intent shortcuts, local tools, fact memory, semantic recall, web search,
// and finally model generation with a post-processing chain.
package brain

import (
	"context"
	"math/rand"
	"strings"

	"github.com/rs/zerolog"

	"github.com/astralabs/astra/internal/autollm"
	"github.com/astralabs/astra/internal/capabilities"
	"github.com/astralabs/astra/internal/confidence"
	"github.com/astralabs/astra/internal/emotion"
	"github.com/astralabs/astra/internal/intents"
	"github.com/astralabs/astra/internal/llm"
	"github.com/astralabs/astra/internal/memory"
	"github.com/astralabs/astra/internal/refine"
	"github.com/astralabs/astra/internal/search"
	"github.com/astralabs/astra/internal/semantic"
	"github.com/astralabs/astra/internal/tools"
	"github.com/astralabs/astra/internal/truth"
)

const (
	historyLimit = 10

	// replyWordCap bounds replies; vision replies get a tighter cap since
	// they narrate live frames.
	replyWordCap       = 60
	visionReplyWordCap = 40
)

var searchTriggers = []string{
	"search", "google", "look up", "find out", "latest",
	"current", "news", "today", "recent",
	"who is", "when did", "where is", "price of", "weather",
}

func needsWebSearch(text string) bool {
	lower := strings.ToLower(text)
	for _, trigger := range searchTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}

// Brain wires all subsystems into one pipeline. It is not safe for
// concurrent use; callers serialize access.
type Brain struct {
	ownerName string

	store      *memory.Store
	index      *semantic.Index
	provider   llm.Provider
	selector   *autollm.Selector
	caps       *capabilities.Manager
	guard      *truth.Guard
	shortcuts  *intents.Table
	refiner    *refine.Refiner
	responder  *emotion.Responder
	summarizer *memory.Summarizer
	agent      *search.Agent

	fileReader *tools.FileReader
	git        *tools.Git
	sandbox    *tools.Sandbox
	sysmon     *tools.SystemMonitor

	history []memory.Message
	log     zerolog.Logger
}

// Option configures optional brain subsystems.
type Option func(*Brain)

// WithSemanticIndex enables vector-backed recall and exchange indexing.
func WithSemanticIndex(index *semantic.Index) Option {
	return func(b *Brain) {
		b.index = index
	}
}

// WithSearchAgent enables the web search path.
func WithSearchAgent(agent *search.Agent) Option {
	return func(b *Brain) {
		b.agent = agent
	}
}

// WithCapabilities replaces the default capability flags.
func WithCapabilities(caps *capabilities.Manager) Option {
	return func(b *Brain) {
		b.caps = caps
	}
}

// WithWorkspace roots the file and git tools at dir.
func WithWorkspace(dir string) Option {
	return func(b *Brain) {
		b.fileReader = tools.NewFileReader(dir)
		b.git = tools.NewGit(dir)
	}
}

// WithRand injects the randomness source for sign-offs and emotional
// insights. Tests pass a seeded source.
func WithRand(rng *rand.Rand) Option {
	return func(b *Brain) {
		b.refiner = refine.NewRefiner(rng)
		b.responder = emotion.NewResponder(rng)
	}
}

// New assembles a brain around the given memory store, model provider, and
// model selector.
func New(ownerName string, store *memory.Store, provider llm.Provider, selector *autollm.Selector, logger zerolog.Logger, opts ...Option) *Brain {
	b := &Brain{
		ownerName:  ownerName,
		store:      store,
		provider:   provider,
		selector:   selector,
		caps:       capabilities.NewManager(),
		guard:      truth.NewGuard(ownerName),
		shortcuts:  intents.NewTable(ownerName),
		refiner:    refine.NewRefiner(nil),
		responder:  emotion.NewResponder(nil),
		fileReader: tools.NewFileReader(""),
		git:        tools.NewGit(""),
		sandbox:    tools.NewSandbox(),
		sysmon:     tools.NewSystemMonitor(),
		log:        logger.With().Str("component", "brain").Logger(),
	}
	for _, opt := range opts {
		opt(b)
	}

	b.summarizer = memory.NewSummarizer(b.chatOnce, selector.Current(), b.log)

	b.log.Info().Str("owner", ownerName).Msg("brain initialized")
	return b
}

// OwnerName returns the configured owner.
func (b *Brain) OwnerName() string {
	return b.ownerName
}

// Capabilities exposes the capability flags for the API layer.
func (b *Brain) Capabilities() *capabilities.Manager {
	return b.caps
}

// Selector exposes the model selector for the API layer.
func (b *Brain) Selector() *autollm.Selector {
	return b.selector
}

// Store exposes the memory store for the API layer.
func (b *Brain) Store() *memory.Store {
	return b.store
}

// Git exposes the git tool for approved commit execution.
func (b *Brain) Git() *tools.Git {
	return b.git
}

// Sandbox exposes the Python sandbox for approved execution.
func (b *Brain) Sandbox() *tools.Sandbox {
	return b.sandbox
}

// chatOnce adapts the provider to the summarizer's single-prompt shape.
func (b *Brain) chatOnce(ctx context.Context, model, prompt string) (string, error) {
	resp, err := b.provider.Chat(ctx, &llm.ChatRequest{
		Model:       model,
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		Temperature: 0.3,
		MaxTokens:   150,
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// Process runs one message through the full pipeline. A panic anywhere in
// the pipeline degrades to a generic error envelope instead of killing the
// server.
func (b *Brain) Process(ctx context.Context, userInput string, visionMode bool) (env *Envelope) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error().Interface("panic", r).Msg("pipeline panicked")
			env = errorReply("Something went wrong.")
		}
	}()

	userInput = refine.Clean(userInput)
	if userInput == "" {
		return errorReply("I didn't catch that. Try again?")
	}

	doc := b.store.Load()
	doc.Ensure(b.ownerName)
	userName := doc.Preferences.Name
	if userName == "" {
		userName = b.ownerName
	}

	// Emotion is tracked on every message, whichever path replies.
	state := emotion.Detect(userInput)
	doc.EmotionalPatterns.Record(state)
	b.log.Info().Str("label", state.Label).Float64("score", state.Score).Msg("emotion detected")

	// Shortcuts answer identity and greeting questions instantly. Skipped
	// in vision mode where the frame matters more than the phrasing.
	if !visionMode {
		if shortcut := b.shortcuts.Match(userInput); shortcut != "" {
			b.save(doc)
			return buildReply(shortcut, state.Label, "shortcut", "intent_handler",
				confidence.Score("shortcut"), replyOpts{})
		}
	}

	if tool := tools.Detect(userInput); tool != "" && b.caps.IsEnabled(tool) {
		if env := b.handleTool(ctx, userInput, tool, doc, userName, state.Label); env != nil {
			b.save(doc)
			return env
		}
	}

	memoryUpdated := false
	if fact := memory.ExtractFact(userInput); fact != nil {
		doc.AddFact(*fact)
		b.indexFact(ctx, fact, userName)
		b.save(doc)
		memoryUpdated = true

		if !intents.IsQuestion(userInput) {
			return buildReply("Got it! "+fact.Fact+".", state.Label, "memory_storage", "memory",
				confidence.Score("memory_storage"), replyOpts{memoryUpdated: true})
		}
	}

	if recalled := memory.Recall(userInput, doc, userName); recalled != "" {
		b.save(doc)
		return buildReply(recalled, state.Label, "memory_recall", "memory",
			confidence.Score("memory_recall"), replyOpts{memoryUpdated: memoryUpdated})
	}

	if b.agent != nil && b.caps.IsEnabled(capabilities.WebSearch) && needsWebSearch(userInput) {
		outcome := b.agent.Run(ctx, userInput, userName)
		b.remember("user", userInput)
		b.remember("assistant", outcome.Reply)
		b.save(doc)

		return buildReply(outcome.Reply, state.Label, "web_search", "web_search_agent",
			confidence.Score("web_search_agent"), replyOpts{
				toolUsed:      true,
				memoryUpdated: memoryUpdated,
				citations:     outcome.Citations,
				resultsCount:  outcome.ResultsCount,
			})
	}

	return b.generate(ctx, userInput, doc, userName, state, memoryUpdated, visionMode)
}

// generate is the full model path: classify, select, build context, call the
// model, then post-process.
func (b *Brain) generate(ctx context.Context, userInput string, doc *memory.Document, userName string, state emotion.State, memoryUpdated, visionMode bool) *Envelope {
	queryIntent := autollm.ClassifyIntent(userInput)
	model := b.selector.Select(queryIntent)
	b.log.Info().Str("model", model).Str("intent", queryIntent).Msg("model selected")

	semanticCtx, boost := b.semanticContext(ctx, userInput, userName)
	systemCtx := b.buildContext(doc, userName, userInput, semanticCtx)

	b.remember("user", clarify(userInput))

	messages := make([]llm.Message, 0, len(b.history))
	for _, m := range b.history {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}

	reply := "I can't reach my model right now."
	resp, err := b.provider.Chat(ctx, &llm.ChatRequest{
		Model:        model,
		SystemPrompt: systemCtx,
		Messages:     messages,
		Temperature:  0.7,
		MaxTokens:    400,
	})
	if err != nil {
		b.log.Error().Err(err).Str("model", model).Msg("generation failed")
	} else {
		reply = resp.Content
	}

	reply = refine.CriticReview(reply, userName)
	reply = b.refiner.Refine(reply, userName)

	if ok, violation := b.guard.Validate(reply); !ok {
		b.log.Warn().Str("violation", string(violation)).Msg("reply blocked")
		reply = b.guard.SafeReply(violation)
	}

	reply = refine.Polish(reply)

	wordCap := replyWordCap
	if visionMode {
		wordCap = visionReplyWordCap
	}
	reply = refine.LimitWords(reply, wordCap)

	if state.Score > 0.7 && isHeavyEmotion(state.Label) {
		emo := b.responder.ChooseReply(state.Label, userName, doc.EmotionalPatterns)
		reply = refine.LimitWords(emo+" "+reply, wordCap)
	}

	b.remember("assistant", reply)
	b.indexExchange(ctx, userInput, reply, userName)

	if memory.ShouldSummarize(len(b.history)) {
		summary := b.summarizer.Summarize(ctx, b.history, userName)
		memory.StoreSummary(doc, summary)
	}
	b.save(doc)

	baseConf := confidence.ForModel(model, queryIntent)
	finalConf := baseConf
	if boost > finalConf {
		finalConf = boost
	}
	b.log.Info().Float64("base", baseConf).Float64("boost", boost).Float64("final", finalConf).Msg("confidence")

	return buildReply(reply, state.Label, queryIntent, "ollama/"+model, finalConf,
		replyOpts{memoryUpdated: memoryUpdated})
}

func isHeavyEmotion(label string) bool {
	switch label {
	case "sad", "angry", "anxious", "tired":
		return true
	}
	return false
}

// clarify expands terse queries so small models get something to work with.
func clarify(text string) string {
	txt := strings.TrimSpace(text)
	words := strings.Fields(txt)

	if len(words) == 1 && isAlpha(txt) {
		return "Tell me about " + txt + "."
	}
	if len(words) <= 2 && strings.Contains(txt, "?") {
		topic := strings.TrimSpace(strings.ReplaceAll(txt, "?", ""))
		return "Explain " + topic + " briefly."
	}
	return strings.Join(words, " ")
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return len(s) > 0
}

func (b *Brain) remember(role, content string) {
	b.history = append(b.history, memory.Message{Role: role, Content: content})
	if len(b.history) > historyLimit {
		b.history = b.history[len(b.history)-historyLimit:]
	}
}

// History returns a copy of the rolling conversation window.
func (b *Brain) History() []memory.Message {
	out := make([]memory.Message, len(b.history))
	copy(out, b.history)
	return out
}

// ClearHistory drops the rolling window, e.g. after a memory wipe.
func (b *Brain) ClearHistory() {
	b.history = nil
}

func (b *Brain) save(doc *memory.Document) {
	if err := b.store.Save(doc); err != nil {
		b.log.Error().Err(err).Msg("memory save failed")
	}
}

func (b *Brain) indexFact(ctx context.Context, fact *memory.Fact, userName string) {
	if b.index == nil {
		return
	}
	if err := b.index.IndexFact(ctx, fact.Fact, fact.Type, userName); err != nil {
		b.log.Warn().Err(err).Msg("fact indexing failed")
	}
}

func (b *Brain) indexExchange(ctx context.Context, userMsg, reply, userName string) {
	if b.index == nil {
		return
	}
	if err := b.index.IndexExchange(ctx, userMsg, reply, userName); err != nil {
		b.log.Warn().Err(err).Msg("exchange indexing failed")
	}
}

func (b *Brain) semanticContext(ctx context.Context, query, userName string) (string, float64) {
	if b.index == nil {
		return "", 0
	}
	return b.index.BuildContext(ctx, query, userName)
}
