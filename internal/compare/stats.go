package compare

import "math"

// ComputeStats counts member classifications and derives the completion
// percentage: covered counts fully, partial counts half. An empty member set
// is 0 percent, never NaN.
func ComputeStats(members []MemberComparison) Stats {
	stats := Stats{Total: len(members)}

	for _, m := range members {
		switch m.Status {
		case StatusCovered:
			stats.Covered++
		case StatusPartial:
			stats.Partial++
		case StatusMissing:
			stats.Missing++
		}
	}

	if stats.Total == 0 {
		return stats
	}

	weighted := float64(stats.Covered) + 0.5*float64(stats.Partial)
	stats.PercentComplete = math.Round(weighted / float64(stats.Total) * 100)
	return stats
}

// AggregateStats computes overall stats across all interfaces' members,
// weighting every member equally regardless of which interface owns it.
func AggregateStats(interfaces []InterfaceComparison) Stats {
	var all []MemberComparison
	for _, iface := range interfaces {
		all = append(all, iface.Members...)
	}
	return ComputeStats(all)
}
