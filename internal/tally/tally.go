// Package tally counts schedule availability votes against candidate
// date-times. Pure and deterministic, like the allocation engine.
package tally

import (
	"sort"
	"time"
)

// MatchTolerance is the window within which an available time counts as a vote
// for a candidate. Strictly less than: 59s off matches, 61s does not.
const MatchTolerance = 60 * time.Second

// Response is one respondent's set of available date-times.
type Response struct {
	Available []time.Time
}

// Count pairs a candidate date-time with its vote count.
type Count struct {
	Candidate time.Time `json:"candidate"`
	Votes     int       `json:"votes"`
}

// Options controls tally behavior.
//
// With Dedupe off (the default), a response listing duplicate or near-duplicate
// availabilities can increment the same candidate more than once. Existing
// clients were built against that accumulate-by-iteration behavior; Dedupe caps
// each response at one vote per candidate for callers that want a strict
// one-person-one-vote reading.
type Options struct {
	Dedupe bool
}

// Result holds the tallied counts plus the derived leading-candidate view.
type Result struct {
	// Counts holds every supplied candidate in chronological order, including
	// candidates with zero votes.
	Counts []Count
	// MaxCount is the highest vote count across candidates (zero when no votes).
	MaxCount int
	// Leading holds every candidate whose count equals MaxCount, when MaxCount
	// is positive. Ties are all present, in chronological order.
	Leading []time.Time
}

// Tally counts how many availability entries match each candidate.
//
// Each available time votes for the first candidate, in candidate-list order,
// within MatchTolerance of it; one available time never matches more than one
// candidate. Candidates are counted by their raw value and only sorted for the
// returned view. An empty candidate list is a valid steady state and yields an
// empty result.
func Tally(candidates []time.Time, responses []Response, opts Options) Result {
	counts := make([]int, len(candidates))

	for _, resp := range responses {
		var matched map[int]bool
		if opts.Dedupe {
			matched = make(map[int]bool, len(candidates))
		}
		for _, avail := range resp.Available {
			for i, candidate := range candidates {
				if !withinTolerance(candidate, avail) {
					continue
				}
				if opts.Dedupe && matched[i] {
					break
				}
				counts[i]++
				if opts.Dedupe {
					matched[i] = true
				}
				break
			}
		}
	}

	result := Result{Counts: make([]Count, len(candidates))}
	for i, candidate := range candidates {
		result.Counts[i] = Count{Candidate: candidate, Votes: counts[i]}
		if counts[i] > result.MaxCount {
			result.MaxCount = counts[i]
		}
	}

	sort.SliceStable(result.Counts, func(a, b int) bool {
		return result.Counts[a].Candidate.Before(result.Counts[b].Candidate)
	})

	if result.MaxCount > 0 {
		for _, c := range result.Counts {
			if c.Votes == result.MaxCount {
				result.Leading = append(result.Leading, c.Candidate)
			}
		}
	}

	return result
}

func withinTolerance(candidate, available time.Time) bool {
	diff := candidate.Sub(available)
	if diff < 0 {
		diff = -diff
	}
	return diff < MatchTolerance
}
