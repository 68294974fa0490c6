package analyzer_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/realorrender/realorrender/src/ai"
	"github.com/realorrender/realorrender/src/analyzer"
	"github.com/realorrender/realorrender/src/types"
	"github.com/stretchr/testify/require"
)

const providerReply = "Here is the analysis you asked for:\n" +
	"```json\n" +
	`{
  "claims": [
    {"id": "c1", "text": "The plant opened in 2019.", "importance": "high"},
    {"id": "c2", "text": "It employs 450 people.", "importance": "bogus"},
    {"id": "", "text": "Output doubled last year."}
  ],
  "manipulation_signals": ["false urgency"],
  "ai_likelihood": 0.35,
  "short_summary": "A factory update."
}` + "\n```\nLet me know if you need anything else."

func TestAnalyzeParsesWrappedReply(t *testing.T) {
	a := analyzer.New(ai.ClientFunc(func(ctx context.Context, prompt string) (string, error) {
		require.Contains(t, prompt, "fact-checking assistant")
		return providerReply, nil
	}))

	out := a.Analyze(context.Background(), "irrelevant body text")
	require.Len(t, out.Claims, 3)
	require.Equal(t, "c1", out.Claims[0].ID)
	require.Equal(t, types.ImportanceHigh, out.Claims[0].Importance)
	// Unknown importance defaults to medium, missing id is generated.
	require.Equal(t, types.ImportanceMedium, out.Claims[1].Importance)
	require.Equal(t, "c3", out.Claims[2].ID)
	require.Equal(t, []string{"false urgency"}, out.ManipulationSignals)
	require.InDelta(t, 0.35, out.AILikelihood, 1e-9)
	require.Equal(t, "A factory update.", out.ShortSummary)
}

func TestAnalyzeCapsClaimsAtSeven(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(`{"claims":[`)
	for i := 1; i <= 10; i++ {
		if i > 1 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `{"id":"c%d","text":"claim %d","importance":"low"}`, i, i)
	}
	sb.WriteString(`],"manipulation_signals":[],"ai_likelihood":0.0,"short_summary":"s"}`)

	a := analyzer.New(ai.ClientFunc(func(ctx context.Context, prompt string) (string, error) {
		return sb.String(), nil
	}))

	out := a.Analyze(context.Background(), "body")
	require.Len(t, out.Claims, 7)
	require.Equal(t, "claim 7", out.Claims[6].Text)
}

func TestAnalyzeBackfillsPastCapToMinimum(t *testing.T) {
	// Seven empty entries followed by three usable ones: the usable tail
	// is admitted until the minimum of three claims is met.
	reply := `{"claims":[
		{"text":""},{"text":""},{"text":""},{"text":""},{"text":""},{"text":""},{"text":""},
		{"id":"c8","text":"late claim one"},
		{"id":"c9","text":"late claim two"},
		{"id":"c10","text":"late claim three"},
		{"id":"c11","text":"late claim four"}
	],"short_summary":"s"}`

	a := analyzer.New(ai.ClientFunc(func(ctx context.Context, prompt string) (string, error) {
		return reply, nil
	}))

	out := a.Analyze(context.Background(), "body")
	require.Len(t, out.Claims, 3)
	require.Equal(t, "late claim one", out.Claims[0].Text)
	require.Equal(t, "late claim three", out.Claims[2].Text)
}

func TestAnalyzeDefaultsOnMissingFields(t *testing.T) {
	a := analyzer.New(ai.ClientFunc(func(ctx context.Context, prompt string) (string, error) {
		return `{"claims":[{"id":"c1","text":"only claim"}]}`, nil
	}))

	out := a.Analyze(context.Background(), "body")
	require.Len(t, out.Claims, 1)
	require.Equal(t, types.ImportanceMedium, out.Claims[0].Importance)
	require.Empty(t, out.ManipulationSignals)
	require.Equal(t, 0.0, out.AILikelihood)
	require.Equal(t, "Summary unavailable.", out.ShortSummary)
}

func TestAnalyzeFallsBackOnProviderError(t *testing.T) {
	body := "The council met on Monday to approve the budget. Spending rises by three percent next year. Two members voted against the plan. The mayor praised the outcome in a statement."

	a := analyzer.New(ai.ClientFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("connection refused")
	}))

	out := a.Analyze(context.Background(), body)
	require.GreaterOrEqual(t, len(out.Claims), 3)
	require.LessOrEqual(t, len(out.Claims), 7)
	require.Equal(t, 0.0, out.AILikelihood)
}

func TestAnalyzeFallsBackOnUnusableReply(t *testing.T) {
	a := analyzer.New(ai.ClientFunc(func(ctx context.Context, prompt string) (string, error) {
		return "I'm sorry, I cannot analyze this article.", nil
	}))

	out := a.Analyze(context.Background(), "A qualifying sentence about something verifiable here. Another long enough sentence follows right after it. And one more for good measure today.")
	require.Len(t, out.Claims, 3)
}

func TestFallbackBounds(t *testing.T) {
	// A long article never yields more than seven claims.
	var sb strings.Builder
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&sb, "Sentence number %d carries enough length to qualify as a claim. ", i)
	}
	out := analyzer.Fallback(sb.String())
	require.Len(t, out.Claims, 7)
	for _, c := range out.Claims {
		require.Equal(t, types.ImportanceMedium, c.Importance)
	}

	// A tiny input is padded with the generic placeholder up to three.
	out = analyzer.Fallback("Too short.")
	require.Len(t, out.Claims, 3)
	require.Equal(t, "This article makes several factual assertions.", out.Claims[1].Text)
	require.Equal(t, "This article makes several factual assertions.", out.Claims[2].Text)
	require.Empty(t, out.ManipulationSignals)
	require.Equal(t, 0.0, out.AILikelihood)
}

func TestFallbackClipsOnRuneBoundaries(t *testing.T) {
	// A single long sentence of 3-byte runes, offset by one byte so both
	// the claim cap and the summary prefix land inside a rune.
	body := "x" + strings.Repeat("€", 200) + "."
	out := analyzer.Fallback(body)

	require.GreaterOrEqual(t, len(out.Claims), 3)
	claim := out.Claims[0].Text
	require.LessOrEqual(t, len(claim), 300)
	require.True(t, utf8.ValidString(claim))

	require.True(t, strings.HasSuffix(out.ShortSummary, "..."))
	require.True(t, utf8.ValidString(out.ShortSummary))
}

func TestFallbackDeterministic(t *testing.T) {
	body := "The bridge closed for repairs in March after inspectors found cracks. Work is expected to finish before the end of the year."
	first := analyzer.Fallback(body)
	second := analyzer.Fallback(body)
	require.Equal(t, first, second)
}

func TestFallbackSummaryPrefix(t *testing.T) {
	long := strings.Repeat("a", 300)
	out := analyzer.Fallback(long)
	require.Equal(t, strings.Repeat("a", 200)+"...", out.ShortSummary)

	short := "Short body."
	require.Equal(t, short, analyzer.Fallback(short).ShortSummary)
}
