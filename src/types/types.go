// Package types holds the value objects shared across the verification
// pipeline and the public API. JSON tags follow the frontend contract.
package types

// Importance ranks how central a claim is to the article.
type Importance string

const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// Verdict is the adjudication outcome for a single claim.
type Verdict string

const (
	VerdictSupported    Verdict = "SUPPORTED"
	VerdictContradicted Verdict = "CONTRADICTED"
	VerdictInsufficient Verdict = "INSUFFICIENT"
)

// Stance describes how a piece of evidence relates to a claim.
type Stance string

const (
	StanceSupports    Stance = "supports"
	StanceContradicts Stance = "contradicts"
	StanceNeutral     Stance = "neutral"
)

// Decision is the publish-gating outcome derived from the credibility score.
type Decision string

const (
	DecisionAllow Decision = "ALLOW"
	DecisionWarn  Decision = "WARN"
	DecisionBlock Decision = "BLOCK"
)

// PostMode is how an article is presented once posted.
type PostMode string

const (
	PostModeNormal       PostMode = "normal"
	PostModeWarningLabel PostMode = "warning_label"
)

// Article is the normalized content produced by extraction. Text carries
// the full body for analysis and is not exposed through the API.
type Article struct {
	Title         string  `json:"title"`
	Text          string  `json:"-"`
	URL           string  `json:"url"`
	Publisher     *string `json:"publisher,omitempty"`
	PublishedDate *string `json:"published_date,omitempty"`
}

// Claim is one atomic, verifiable factual assertion from an article.
type Claim struct {
	ID         string
	Text       string
	Importance Importance
}

// Evidence is a single cited source backing (or undermining) a claim.
type Evidence struct {
	Source string `json:"source"`
	URL    string `json:"url"`
	Stance Stance `json:"stance"`
	Note   string `json:"note"`
}

// Adjudication is the result of checking one claim against external
// evidence. Cached by claim fingerprint.
type Adjudication struct {
	Verdict    Verdict    `json:"verdict"`
	Confidence float64    `json:"confidence"`
	Evidence   []Evidence `json:"evidence"`
}

// ClaimResult is a claim together with its adjudication, as reported.
type ClaimResult struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	Verdict    Verdict    `json:"verdict"`
	Confidence float64    `json:"confidence"`
	Evidence   []Evidence `json:"evidence"`
}

// VerificationReport is the immutable outcome of one verification run.
type VerificationReport struct {
	VerificationID      string        `json:"verification_id"`
	Decision            Decision      `json:"decision"`
	CredibilityScore    float64       `json:"credibility_score"`
	AILikelihood        *float64      `json:"ai_likelihood,omitempty"`
	ManipulationSignals []string      `json:"manipulation_signals,omitempty"`
	Summary             string        `json:"summary"`
	Article             Article       `json:"article"`
	Claims              []ClaimResult `json:"claims"`
}

// Post is a published article entry bound to a verification report.
type Post struct {
	ID               string   `json:"id"`
	VerificationID   string   `json:"verification_id"`
	CreatedAt        string   `json:"created_at"`
	PostMode         PostMode `json:"post_mode"`
	Decision         Decision `json:"decision"`
	CredibilityScore float64  `json:"credibility_score"`
	ArticleTitle     string   `json:"article_title"`
	ArticleURL       string   `json:"article_url"`
	Publisher        *string  `json:"publisher,omitempty"`
	Summary          string   `json:"summary"`
}
