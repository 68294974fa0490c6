// Package analyzer decomposes an article into atomic factual claims plus
// manipulation signals and an AI-generation likelihood. When the external
// provider cannot be used it falls back to a deterministic local analysis,
// so Analyze never fails.
package analyzer

import (
	"context"
	"fmt"
	"log"

	"github.com/realorrender/realorrender/src/ai"
	"github.com/realorrender/realorrender/src/types"
)

const (
	// MaxClaims and MinClaims bound the claim list for every article.
	MaxClaims = 7
	MinClaims = 3

	// maxInputLength keeps the prompt inside the provider's token budget.
	maxInputLength   = 15000
	maxSummaryLength = 500
)

// Output is the analysis result for one article.
type Output struct {
	Claims              []types.Claim
	ManipulationSignals []string
	AILikelihood        float64
	ShortSummary        string
}

const analysisPrompt = `You are a fact-checking assistant. Analyze the following article text and extract atomic factual claims (not opinions).

Return ONLY valid JSON in this exact schema, no other text:
{
  "claims": [
    {"id": "c1", "text": "exact claim as stated", "importance": "high|medium|low"},
    ...
  ],
  "manipulation_signals": ["signal1", "signal2", ...],
  "ai_likelihood": 0.0,
  "short_summary": "1-2 sentence summary"
}

Rules:
- Extract 3-7 atomic factual claims (things that can be verified as true/false). Do NOT include opinions, predictions, or vague statements.
- Use id format: c1, c2, c3, etc.
- importance: "high" for central claims, "medium" for supporting, "low" for minor
- manipulation_signals: list any persuasion/manipulation techniques: "fear appeal", "false urgency", "fake authority", "emotional language", "cherry-picked stats", "us vs them", "conspiracy framing", etc. Empty array if none.
- ai_likelihood: 0.0-1.0 probability that this content was AI-generated. 0 = likely human, 1 = likely AI.
- short_summary: neutral 1-2 sentence summary

Article text:
---
%s
---

JSON output:`

type Analyzer struct {
	client ai.Client
}

// New returns an Analyzer. A nil client means the provider is disabled and
// every call takes the local fallback.
func New(client ai.Client) *Analyzer {
	return &Analyzer{client: client}
}

// Analyze runs the provider analysis and falls back to the deterministic
// local path when the provider is unreachable or its reply is unusable.
func (a *Analyzer) Analyze(ctx context.Context, articleText string) Output {
	if a.client != nil {
		if out, ok := a.runProvider(ctx, articleText); ok {
			return out
		}
	}
	return Fallback(articleText)
}

func (a *Analyzer) runProvider(ctx context.Context, articleText string) (Output, bool) {
	text := articleText
	if len(text) > maxInputLength {
		text = text[:maxInputLength] + "\n\n[Content truncated for analysis]"
	}

	reply, err := a.client.Complete(ctx, fmt.Sprintf(analysisPrompt, text))
	if err != nil {
		log.Printf("analyzer: provider call failed: %v", err)
		return Output{}, false
	}

	out, ok := parseOutput(reply)
	if !ok {
		log.Printf("analyzer: unusable provider reply, using fallback")
		return Output{}, false
	}
	return out, true
}
