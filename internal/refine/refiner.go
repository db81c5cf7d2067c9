package refine

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"
)

var (
	possessiveSelf = regexp.MustCompile(`\bASTRA's\b`)
	// The bare name becomes "I" except in product references like
	// "ASTRA ENGINE" or "ASTRA v2".
	bareSelf = regexp.MustCompile(`\bASTRA\b(\s*(?:ENGINE|v\S+))?`)
)

var technicalKeywords = []string{
	"algorithm", "neural", "network", "model", "architecture",
	"function", "process", "system", "mechanism", "transformer",
	"attention", "gradient", "optimize", "compute", "data",
}

const signOffChance = 0.3

// Refiner rewrites self-references, strips filler name suffixes, and
// occasionally personalizes short casual replies. Randomness is injected so
// the sign-off behavior is testable.
type Refiner struct {
	rng *rand.Rand
}

// NewRefiner builds a Refiner from a seeded source. A nil source falls back
// to a time-seeded one.
func NewRefiner(rng *rand.Rand) *Refiner {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Refiner{rng: rng}
}

// Refine applies the refinement pass for the given user name.
func (r *Refiner) Refine(text, userName string) string {
	if text == "" {
		return text
	}
	reply := strings.TrimSpace(text)

	reply = possessiveSelf.ReplaceAllString(reply, "my")
	reply = bareSelf.ReplaceAllStringFunc(reply, func(m string) string {
		if m == "ASTRA" {
			return "I"
		}
		return m
	})

	reply = genericAddress.ReplaceAllString(reply, userName)

	// Strip the name when it was tacked onto the end as filler.
	escaped := regexp.QuoteMeta(userName)
	reply = regexp.MustCompile(`,?\s+`+escaped+`\.$`).ReplaceAllString(reply, ".")
	reply = regexp.MustCompile(`\s+`+escaped+`!$`).ReplaceAllString(reply, "!")

	reply = strings.TrimSpace(multiSpace.ReplaceAllString(reply, " "))

	if r.shouldSignOff(reply, userName) {
		reply = strings.TrimRight(reply, ".!") + fmt.Sprintf(", %s!", userName)
	}

	reply = LimitWords(reply, criticWordCap)
	return Polish(reply)
}

// shouldSignOff gates the personalization: never for technical or long
// replies, never for questions or replies that already carry the name, and
// only ~30% of the time otherwise.
func (r *Refiner) shouldSignOff(reply, userName string) bool {
	lowered := strings.ToLower(reply)
	for _, kw := range technicalKeywords {
		if strings.Contains(lowered, kw) {
			return false
		}
	}
	if len(strings.Fields(reply)) > 25 {
		return false
	}
	if strings.Contains(lowered, strings.ToLower(userName)) {
		return false
	}
	if strings.HasSuffix(reply, "?") {
		return false
	}
	return r.rng.Float64() < signOffChance
}
