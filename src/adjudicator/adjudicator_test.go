package adjudicator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/realorrender/realorrender/src/adjudicator"
	"github.com/realorrender/realorrender/src/ai"
	"github.com/realorrender/realorrender/src/cache"
	"github.com/realorrender/realorrender/src/types"
	"github.com/stretchr/testify/require"
)

const supportedReply = `Based on my research:
{
  "verdict": "supported",
  "confidence": 1.4,
  "evidence": [
    {"source": "Reuters", "url": "https://reuters.com/a", "stance": "SUPPORTS", "note": "Confirmed by officials."},
    {"source": "", "url": "https://example.com/b", "stance": "sideways", "note": "Background."}
  ]
}`

func TestAdjudicateNormalizesProviderReply(t *testing.T) {
	store := cache.NewMemoryStore()
	adj := adjudicator.New(ai.ClientFunc(func(ctx context.Context, prompt string) (string, error) {
		require.Contains(t, prompt, "fact-checker")
		return supportedReply, nil
	}), store)

	got, cached := adj.Adjudicate(context.Background(), "The plant opened in 2019.")
	require.False(t, cached)
	require.Equal(t, types.VerdictSupported, got.Verdict)
	// Confidence clamped to [0,1].
	require.Equal(t, 1.0, got.Confidence)
	require.Len(t, got.Evidence, 2)
	require.Equal(t, types.StanceSupports, got.Evidence[0].Stance)
	// Unknown stance collapses to neutral, empty source gets a default.
	require.Equal(t, types.StanceNeutral, got.Evidence[1].Stance)
	require.Equal(t, "Unknown", got.Evidence[1].Source)
}

func TestAdjudicateCachesAndSkipsProviderOnHit(t *testing.T) {
	store := cache.NewMemoryStore()
	calls := 0
	adj := adjudicator.New(ai.ClientFunc(func(ctx context.Context, prompt string) (string, error) {
		calls++
		return `{"verdict":"CONTRADICTED","confidence":0.8,"evidence":[]}`, nil
	}), store)

	first, cached := adj.Adjudicate(context.Background(), "Water boils at 50C.")
	require.False(t, cached)
	require.Equal(t, types.VerdictContradicted, first.Verdict)
	require.Equal(t, 1, calls)

	// Whitespace/case variants hit the same fingerprint.
	second, cached := adj.Adjudicate(context.Background(), "  water  boils at 50c. ")
	require.True(t, cached)
	require.Equal(t, first, second)
	require.Equal(t, 1, calls)
}

func TestAdjudicateFallbackWhenProviderDisabled(t *testing.T) {
	store := cache.NewMemoryStore()
	adj := adjudicator.New(nil, store)

	got, cached := adj.Adjudicate(context.Background(), "Anything at all.")
	require.False(t, cached)
	require.Equal(t, types.VerdictInsufficient, got.Verdict)
	require.Equal(t, 0.2, got.Confidence)
	require.Len(t, got.Evidence, 1)
	require.Equal(t, "Verification unavailable", got.Evidence[0].Source)
	require.Equal(t, types.StanceNeutral, got.Evidence[0].Stance)
}

func TestAdjudicateFallbackIsNotCached(t *testing.T) {
	store := cache.NewMemoryStore()
	failing := adjudicator.New(ai.ClientFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("timeout")
	}), store)

	_, cached := failing.Adjudicate(context.Background(), "The dam was finished in 1932.")
	require.False(t, cached)
	require.Equal(t, 0, store.Len())

	// Once the provider recovers, the same claim still reaches it.
	calls := 0
	working := adjudicator.New(ai.ClientFunc(func(ctx context.Context, prompt string) (string, error) {
		calls++
		return `{"verdict":"SUPPORTED","confidence":0.9,"evidence":[]}`, nil
	}), store)

	got, cached := working.Adjudicate(context.Background(), "The dam was finished in 1932.")
	require.False(t, cached)
	require.Equal(t, 1, calls)
	require.Equal(t, types.VerdictSupported, got.Verdict)
	require.Equal(t, 1, store.Len())
}

func TestAdjudicateUnusableReplyFallsBack(t *testing.T) {
	store := cache.NewMemoryStore()
	adj := adjudicator.New(ai.ClientFunc(func(ctx context.Context, prompt string) (string, error) {
		return "no json here, sorry", nil
	}), store)

	got, _ := adj.Adjudicate(context.Background(), "Some claim.")
	require.Equal(t, types.VerdictInsufficient, got.Verdict)
	require.Equal(t, 0.2, got.Confidence)
	require.Equal(t, 0, store.Len())
}

func TestAdjudicateDefaultConfidenceAndVerdict(t *testing.T) {
	store := cache.NewMemoryStore()
	adj := adjudicator.New(ai.ClientFunc(func(ctx context.Context, prompt string) (string, error) {
		return `{"verdict":"MAYBE","evidence":[]}`, nil
	}), store)

	got, _ := adj.Adjudicate(context.Background(), "Some other claim.")
	// Out-of-enum verdict collapses; missing confidence takes the parse
	// default, not the outage fallback, and the result is cached.
	require.Equal(t, types.VerdictInsufficient, got.Verdict)
	require.Equal(t, 0.3, got.Confidence)
	require.Equal(t, 1, store.Len())
}

func TestAdjudicateCapsEvidence(t *testing.T) {
	var items []string
	for i := 0; i < 8; i++ {
		items = append(items, `{"source":"`+strings.Repeat("s", 300)+`","url":"https://e.com","stance":"neutral","note":"`+strings.Repeat("n", 600)+`"}`)
	}
	reply := `{"verdict":"SUPPORTED","confidence":0.7,"evidence":[` + strings.Join(items, ",") + `]}`

	store := cache.NewMemoryStore()
	adj := adjudicator.New(ai.ClientFunc(func(ctx context.Context, prompt string) (string, error) {
		return reply, nil
	}), store)

	got, _ := adj.Adjudicate(context.Background(), "Evidence-heavy claim.")
	require.Len(t, got.Evidence, 5)
	require.Len(t, got.Evidence[0].Source, 200)
	require.Len(t, got.Evidence[0].Note, 500)
}
