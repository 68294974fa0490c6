package analyzer

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/realorrender/realorrender/src/types"
)

var codeFence = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")

// extractJSON locates the outermost balanced brace-delimited object in a
// reply that may be wrapped in prose or a markdown code fence. Markup is a
// hint only; depth counting decides.
func extractJSON(reply string) (string, bool) {
	text := strings.TrimSpace(reply)
	if m := codeFence.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}

	start := strings.Index(text, "{")
	if start < 0 {
		return "", false
	}
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

type rawClaim struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Importance string `json:"importance"`
}

type rawOutput struct {
	Claims              []rawClaim `json:"claims"`
	ManipulationSignals []string   `json:"manipulation_signals"`
	AILikelihood        float64    `json:"ai_likelihood"`
	ShortSummary        string     `json:"short_summary"`
}

// parseOutput converts a provider reply into an Output. Malformed or
// missing fields get defaults; the reply is only rejected when no claim at
// all can be recovered from it.
func parseOutput(reply string) (Output, bool) {
	blob, ok := extractJSON(reply)
	if !ok {
		return Output{}, false
	}

	var raw rawOutput
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return Output{}, false
	}

	claims := buildClaims(raw.Claims)
	if len(claims) == 0 {
		return Output{}, false
	}

	likelihood := raw.AILikelihood
	if likelihood < 0 {
		likelihood = 0
	}
	if likelihood > 1 {
		likelihood = 1
	}

	signals := raw.ManipulationSignals
	if signals == nil {
		signals = []string{}
	}

	summary := strings.TrimSpace(raw.ShortSummary)
	if summary == "" {
		summary = "Summary unavailable."
	}
	summary = clip(summary, maxSummaryLength)

	return Output{
		Claims:              claims,
		ManipulationSignals: signals,
		AILikelihood:        likelihood,
		ShortSummary:        summary,
	}, true
}

// buildClaims keeps the first MaxClaims usable entries and, when fewer than
// MinClaims survive, admits entries beyond the cap until the minimum is met.
func buildClaims(raw []rawClaim) []types.Claim {
	var claims []types.Claim
	var overflow []rawClaim

	for i, rc := range raw {
		if strings.TrimSpace(rc.Text) == "" {
			continue
		}
		if i < MaxClaims {
			claims = append(claims, toClaim(rc, len(claims)))
		} else {
			overflow = append(overflow, rc)
		}
	}
	for _, rc := range overflow {
		if len(claims) >= MinClaims {
			break
		}
		claims = append(claims, toClaim(rc, len(claims)))
	}
	return claims
}

func toClaim(rc rawClaim, index int) types.Claim {
	id := strings.TrimSpace(rc.ID)
	if id == "" {
		id = fmt.Sprintf("c%d", index+1)
	}
	return types.Claim{
		ID:         id,
		Text:       strings.TrimSpace(rc.Text),
		Importance: parseImportance(rc.Importance),
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

func parseImportance(raw string) types.Importance {
	switch types.Importance(strings.ToLower(strings.TrimSpace(raw))) {
	case types.ImportanceHigh:
		return types.ImportanceHigh
	case types.ImportanceLow:
		return types.ImportanceLow
	default:
		return types.ImportanceMedium
	}
}
