// Package verify runs the end-to-end article verification pipeline:
// extraction, claim analysis, per-claim adjudication, scoring and report
// persistence. After extraction succeeds, every later stage has a fallback,
// so a run with content always produces a decision.
package verify

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/realorrender/realorrender/src/adjudicator"
	"github.com/realorrender/realorrender/src/analyzer"
	"github.com/realorrender/realorrender/src/extract"
	"github.com/realorrender/realorrender/src/scoring"
	"github.com/realorrender/realorrender/src/types"
)

// ReportStore persists finished reports keyed by verification id.
type ReportStore interface {
	Put(ctx context.Context, id string, report *types.VerificationReport) error
	Get(ctx context.Context, id string) (*types.VerificationReport, error)
}

type Pipeline struct {
	Extractor   *extract.Extractor
	Analyzer    *analyzer.Analyzer
	Adjudicator *adjudicator.Adjudicator
	Reports     ReportStore
	Policy      scoring.Policy
}

// Run verifies one article given a URL and/or raw text. The only failure
// it surfaces is extract.ErrNoContent; no report id is allocated in that
// case. Otherwise the persisted report is returned.
func (p *Pipeline) Run(ctx context.Context, articleURL, rawText string) (*types.VerificationReport, error) {
	article, err := p.Extractor.Extract(ctx, articleURL, rawText)
	if err != nil {
		return nil, err
	}

	analysis := p.Analyzer.Analyze(ctx, article.Text)

	results := make([]types.ClaimResult, 0, len(analysis.Claims))
	verdicts := make([]types.Verdict, 0, len(analysis.Claims))
	for _, claim := range analysis.Claims {
		adj, cached := p.Adjudicator.Adjudicate(ctx, claim.Text)
		if cached {
			log.Printf("verify: claim %s served from fingerprint cache", claim.ID)
		}
		evidence := adj.Evidence
		if evidence == nil {
			evidence = []types.Evidence{}
		}
		results = append(results, types.ClaimResult{
			ID:         claim.ID,
			Text:       claim.Text,
			Verdict:    adj.Verdict,
			Confidence: adj.Confidence,
			Evidence:   evidence,
		})
		verdicts = append(verdicts, adj.Verdict)
	}

	// Scoring treats a zero likelihood as "no estimate"; the report still
	// records the exact value the analysis produced.
	var scoreLikelihood *float64
	if analysis.AILikelihood > 0 {
		v := analysis.AILikelihood
		scoreLikelihood = &v
	}
	score := p.Policy.Score(verdicts, analysis.ManipulationSignals, scoreLikelihood)
	decision := p.Policy.Decision(score)
	aiLikelihood := analysis.AILikelihood

	signals := analysis.ManipulationSignals
	if len(signals) == 0 {
		signals = nil
	}

	report := &types.VerificationReport{
		VerificationID:      uuid.NewString(),
		Decision:            decision,
		CredibilityScore:    score,
		AILikelihood:        &aiLikelihood,
		ManipulationSignals: signals,
		Summary:             analysis.ShortSummary,
		Article:             *article,
		Claims:              results,
	}

	if err := p.Reports.Put(ctx, report.VerificationID, report); err != nil {
		return nil, fmt.Errorf("persist report: %w", err)
	}

	log.Printf("verify: report %s decision=%s score=%.1f claims=%d",
		report.VerificationID, decision, score, len(results))
	return report, nil
}
