// Package adjudicator checks a single claim against external evidence.
// Results are cached by claim fingerprint; a provider outage degrades to a
// low-confidence INSUFFICIENT verdict instead of failing the run.
package adjudicator

import (
	"context"
	"fmt"
	"log"

	"github.com/realorrender/realorrender/src/ai"
	"github.com/realorrender/realorrender/src/cache"
	"github.com/realorrender/realorrender/src/types"
)

// fallbackConfidence is the fixed confidence reported when the provider
// could not be consulted.
const fallbackConfidence = 0.2

// Cache is the adjudication store keyed by claim fingerprint.
type Cache interface {
	Lookup(ctx context.Context, fingerprint string) (types.Adjudication, bool, error)
	Put(ctx context.Context, fingerprint string, adj types.Adjudication) error
}

const adjudicationPrompt = `You are a fact-checker. Given the following claim and the web search results/context provided, determine the verdict.

Claim: "%s"

Based on the retrieved sources, return ONLY valid JSON:
{
  "verdict": "SUPPORTED" | "CONTRADICTED" | "INSUFFICIENT",
  "confidence": 0.0 to 1.0,
  "evidence": [
    {"source": "Source name", "url": "https://...", "stance": "supports|contradicts|neutral", "note": "1-2 sentence explanation"}
  ]
}

Rules:
- SUPPORTED: Reliable sources confirm the claim
- CONTRADICTED: Reliable sources refute the claim
- INSUFFICIENT: Not enough evidence either way
- confidence: 0-1 based on source quality and consistency
- evidence: list 1-3 most relevant sources with url and note

JSON:`

type Adjudicator struct {
	client ai.Client
	cache  Cache
}

// New returns an Adjudicator. A nil client disables the provider; every
// uncached claim then gets the fallback verdict.
func New(client ai.Client, c Cache) *Adjudicator {
	return &Adjudicator{client: client, cache: c}
}

// Adjudicate returns the verdict for one claim and whether it was served
// from the cache. Provider results are cached before returning; fallback
// results are not, so a transient outage cannot poison the cache.
func (a *Adjudicator) Adjudicate(ctx context.Context, claimText string) (types.Adjudication, bool) {
	fp := cache.Fingerprint(claimText)

	if adj, ok, err := a.cache.Lookup(ctx, fp); err != nil {
		log.Printf("adjudicator: cache lookup failed: %v", err)
	} else if ok {
		return adj, true
	}

	if a.client != nil {
		reply, err := a.client.Complete(ctx, fmt.Sprintf(adjudicationPrompt, claimText))
		if err != nil {
			log.Printf("adjudicator: provider call failed: %v", err)
		} else if adj, ok := parseAdjudication(reply); ok {
			if err := a.cache.Put(ctx, fp, adj); err != nil {
				log.Printf("adjudicator: cache store failed: %v", err)
			}
			return adj, false
		}
	}

	return fallbackAdjudication(), false
}

func fallbackAdjudication() types.Adjudication {
	return types.Adjudication{
		Verdict:    types.VerdictInsufficient,
		Confidence: fallbackConfidence,
		Evidence: []types.Evidence{{
			Source: "Verification unavailable",
			URL:    "",
			Stance: types.StanceNeutral,
			Note:   "External verification service was unavailable. Please verify manually.",
		}},
	}
}
