package brain

import (
	"github.com/astralabs/astra/internal/confidence"
	"github.com/astralabs/astra/internal/search"
	"github.com/astralabs/astra/internal/tools"
)

// Envelope is the structured result of one pipeline run. Every path through
// the brain, including failures, produces one.
type Envelope struct {
	Reply            string            `json:"reply"`
	Emotion          string            `json:"emotion"`
	Intent           string            `json:"intent"`
	Agent            string            `json:"agent"`
	ToolUsed         bool              `json:"tool_used"`
	MemoryUpdated    bool              `json:"memory_updated"`
	Confidence       float64           `json:"confidence"`
	ConfidenceLabel  string            `json:"confidence_label"`
	ConfidenceEmoji  string            `json:"confidence_emoji"`
	Citations        []search.Citation `json:"citations,omitempty"`
	ResultsCount     int               `json:"results_count,omitempty"`
	ApprovalRequired bool              `json:"approval_required,omitempty"`
	Proposal         *tools.Proposal   `json:"proposal,omitempty"`
}

// reply assembles an envelope, deriving the confidence label and emoji from
// the score.
type replyOpts struct {
	toolUsed      bool
	memoryUpdated bool
	citations     []search.Citation
	resultsCount  int
}

func buildReply(text, emotionLabel, intent, agent string, conf float64, opts replyOpts) *Envelope {
	return &Envelope{
		Reply:           text,
		Emotion:         emotionLabel,
		Intent:          intent,
		Agent:           agent,
		ToolUsed:        opts.toolUsed,
		MemoryUpdated:   opts.memoryUpdated,
		Confidence:      conf,
		ConfidenceLabel: confidence.Label(conf),
		ConfidenceEmoji: confidence.Emoji(conf),
		Citations:       opts.citations,
		ResultsCount:    opts.resultsCount,
	}
}

func errorReply(message string) *Envelope {
	return &Envelope{
		Reply:           message,
		Emotion:         "neutral",
		Intent:          "error",
		Agent:           "error_handler",
		Confidence:      0.0,
		ConfidenceLabel: confidence.Label(0),
		ConfidenceEmoji: confidence.Emoji(0),
	}
}
