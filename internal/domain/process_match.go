package domain

import "fmt"

type ProcessMatchStrategy string

const (
	// MatchByRank pairs entries at the same position of both listings. When
	// the process set changed during the window, unrelated processes may be
	// averaged together.
	MatchByRank ProcessMatchStrategy = "rank"
	// MatchByPID pairs entries with the same pid. Processes missing from the
	// final listing keep their initial figures.
	MatchByPID ProcessMatchStrategy = "pid"
)

func ParseProcessMatchStrategy(raw string) (ProcessMatchStrategy, error) {
	switch ProcessMatchStrategy(raw) {
	case "", MatchByRank:
		return MatchByRank, nil
	case MatchByPID:
		return MatchByPID, nil
	default:
		return "", fmt.Errorf("unsupported process match strategy %q", raw)
	}
}

// MergeProcessSamples averages CPU% and MEM% of two top-N listings. The
// command and pid always come from the initial listing.
func MergeProcessSamples(initial, final []ProcessSample, strategy ProcessMatchStrategy, limit int) []ProcessUsage {
	if limit <= 0 || limit > len(initial) {
		limit = len(initial)
	}

	merged := make([]ProcessUsage, 0, limit)
	switch strategy {
	case MatchByPID:
		byPID := make(map[int]ProcessSample, len(final))
		for _, sample := range final {
			if _, ok := byPID[sample.PID]; !ok {
				byPID[sample.PID] = sample
			}
		}
		for _, first := range initial[:limit] {
			second, ok := byPID[first.PID]
			if !ok {
				second = first
			}
			merged = append(merged, average(first, second))
		}
	default:
		if limit > len(final) {
			limit = len(final)
		}
		for i := 0; i < limit; i++ {
			merged = append(merged, average(initial[i], final[i]))
		}
	}

	return merged
}

func average(first, second ProcessSample) ProcessUsage {
	return ProcessUsage{
		PID:        first.PID,
		CPUPercent: (first.CPUPercent + second.CPUPercent) / 2,
		MemPercent: (first.MemPercent + second.MemPercent) / 2,
		Command:    first.Command,
	}
}
