package emotion

import "time"

const historyLimit = 30

// Stats is the per-label running aggregate across all detections, including
// entries that have since rotated out of the bounded history.
type Stats struct {
	Count    int     `json:"count"`
	AvgScore float64 `json:"avg_score"`
}

// Patterns is the emotional slice of the persistent memory document.
type Patterns struct {
	LastEmotion State            `json:"last_emotion"`
	History     []State          `json:"history"`
	Stats       map[string]Stats `json:"emotion_stats"`
}

// NewPatterns returns the default empty structure.
func NewPatterns() *Patterns {
	return &Patterns{
		LastEmotion: Neutral,
		History:     []State{},
		Stats:       map[string]Stats{},
	}
}

// Ensure fills in any missing fields after a load from disk.
func (p *Patterns) Ensure() {
	if p.LastEmotion.Label == "" {
		p.LastEmotion = Neutral
	}
	if p.History == nil {
		p.History = []State{}
	}
	if p.Stats == nil {
		p.Stats = map[string]Stats{}
	}
}

// Record folds a new detection into the patterns: last emotion, bounded
// history, and the per-label running average.
func (p *Patterns) Record(s State) {
	p.Ensure()

	s.Timestamp = time.Now().UTC().Format(time.RFC3339)
	p.LastEmotion = s

	p.History = append(p.History, s)
	if len(p.History) > historyLimit {
		p.History = p.History[len(p.History)-historyLimit:]
	}

	stats := p.Stats[s.Label]
	oldCount := stats.Count
	stats.AvgScore = (stats.AvgScore*float64(oldCount) + s.Score) / float64(oldCount+1)
	stats.Count = oldCount + 1
	p.Stats[s.Label] = stats
}

// Dominant returns the most frequently detected label, or neutral when
// nothing has been recorded.
func (p *Patterns) Dominant() string {
	p.Ensure()
	best := "neutral"
	bestCount := 0
	for label, s := range p.Stats {
		if s.Count > bestCount {
			bestCount = s.Count
			best = label
		}
	}
	return best
}
