package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/realorrender/realorrender/src/types"
)

const (
	minSentenceLength = 20
	maxClaimLength    = 300
	summaryPrefixLen  = 200

	placeholderClaim = "This article makes several factual assertions."
)

var sentenceEnd = regexp.MustCompile(`[.!?]+`)

// Fallback is the deterministic local analysis used when the provider is
// disabled or unusable: sentence-split claims, no manipulation signals, no
// AI-likelihood estimate. Pure function of the input text.
func Fallback(articleText string) Output {
	var sentences []string
	for _, s := range sentenceEnd.Split(articleText, -1) {
		s = strings.TrimSpace(s)
		if len(s) > minSentenceLength {
			sentences = append(sentences, s)
		}
		if len(sentences) == MaxClaims {
			break
		}
	}
	for len(sentences) < MinClaims {
		sentences = append(sentences, placeholderClaim)
	}

	claims := make([]types.Claim, 0, len(sentences))
	for i, s := range sentences {
		claims = append(claims, types.Claim{
			ID:         fmt.Sprintf("c%d", i+1),
			Text:       clip(s, maxClaimLength),
			Importance: types.ImportanceMedium,
		})
	}

	summary := articleText
	if len(summary) > summaryPrefixLen {
		summary = clip(summary, summaryPrefixLen) + "..."
	}

	return Output{
		Claims:              claims,
		ManipulationSignals: []string{},
		AILikelihood:        0,
		ShortSummary:        summary,
	}
}
