package domain

import "time"

// SkipReason explains why a candidate URL did not produce an article.
type SkipReason string

const (
	SkipFetchFailed   SkipReason = "fetch_failed"
	SkipParseFailed   SkipReason = "parse_failed"
	SkipNoTitle       SkipReason = "no_title"
	SkipDuplicateURL  SkipReason = "duplicate_url"
	SkipPersistFailed SkipReason = "persist_failed"
	SkipRunCancelled  SkipReason = "run_cancelled"
)

// CandidateResult records the outcome for a single candidate URL. Exactly one
// of Article and Skip is meaningful: a nil Article means the candidate was
// skipped for the given reason.
type CandidateResult struct {
	URL     string     `json:"url"`
	Article *Article   `json:"article,omitempty"`
	Skip    SkipReason `json:"skip,omitempty"`
	Detail  string     `json:"detail,omitempty"`
}

// Skipped reports whether the candidate was skipped.
func (r CandidateResult) Skipped() bool {
	return r.Article == nil
}

// SourceResult aggregates one source's outcome within a run.
type SourceResult struct {
	Source string `json:"source"`
	// Added is the number of new articles persisted
	Added int `json:"added"`
	// Failed is true when the listing stage itself failed and the source
	// was abandoned
	Failed bool   `json:"failed"`
	Error  string `json:"error,omitempty"`
	// Candidates holds the per-candidate outcomes, in listing order
	Candidates []CandidateResult `json:"candidates,omitempty"`
}

// SkipCounts tallies candidates by skip reason.
func (s *SourceResult) SkipCounts() map[SkipReason]int {
	counts := make(map[SkipReason]int)
	for _, c := range s.Candidates {
		if c.Skipped() {
			counts[c.Skip]++
		}
	}
	return counts
}

// RunSummary is the aggregate outcome of one ingestion run.
type RunSummary struct {
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt time.Time      `json:"completed_at"`
	// TotalAdded is the number of new articles across all sources
	TotalAdded int `json:"total_added"`
	// Sources holds per-source outcomes in registry order
	Sources []SourceResult `json:"sources"`
}

// FailedSources returns the names of sources whose listing stage failed.
func (r *RunSummary) FailedSources() []string {
	var failed []string
	for _, s := range r.Sources {
		if s.Failed {
			failed = append(failed, s.Source)
		}
	}
	return failed
}
