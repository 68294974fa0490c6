package adjudicator

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/realorrender/realorrender/src/types"
)

const (
	maxEvidence       = 5
	maxSourceLength   = 200
	maxURLLength      = 500
	maxNoteLength     = 500
	defaultConfidence = 0.3
)

type rawEvidence struct {
	Source string `json:"source"`
	URL    string `json:"url"`
	Stance string `json:"stance"`
	Note   string `json:"note"`
}

type rawAdjudication struct {
	Verdict    string        `json:"verdict"`
	Confidence *float64      `json:"confidence"`
	Evidence   []rawEvidence `json:"evidence"`
}

// parseAdjudication recovers a verdict from the provider reply. Everything
// the provider sends is untrusted: the verdict collapses to INSUFFICIENT
// outside the enum, confidence is clamped, stances collapse to neutral and
// evidence is capped in count and field length. A reply with no JSON object
// at all is unusable and reported as such.
func parseAdjudication(reply string) (types.Adjudication, bool) {
	text := strings.TrimSpace(reply)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return types.Adjudication{}, false
	}

	var raw rawAdjudication
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return types.Adjudication{}, false
	}

	confidence := defaultConfidence
	if raw.Confidence != nil {
		confidence = *raw.Confidence
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	evidence := make([]types.Evidence, 0, len(raw.Evidence))
	for _, re := range raw.Evidence {
		if len(evidence) == maxEvidence {
			break
		}
		evidence = append(evidence, types.Evidence{
			Source: clip(defaultString(re.Source, "Unknown"), maxSourceLength),
			URL:    clip(re.URL, maxURLLength),
			Stance: parseStance(re.Stance),
			Note:   clip(re.Note, maxNoteLength),
		})
	}

	return types.Adjudication{
		Verdict:    parseVerdict(raw.Verdict),
		Confidence: confidence,
		Evidence:   evidence,
	}, true
}

func parseVerdict(raw string) types.Verdict {
	switch types.Verdict(strings.ToUpper(strings.TrimSpace(raw))) {
	case types.VerdictSupported:
		return types.VerdictSupported
	case types.VerdictContradicted:
		return types.VerdictContradicted
	default:
		return types.VerdictInsufficient
	}
}

func parseStance(raw string) types.Stance {
	switch types.Stance(strings.ToLower(strings.TrimSpace(raw))) {
	case types.StanceSupports:
		return types.StanceSupports
	case types.StanceContradicts:
		return types.StanceContradicts
	default:
		return types.StanceNeutral
	}
}

// clip cuts s to at most max bytes without splitting a rune.
func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

func defaultString(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
