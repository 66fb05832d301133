package app

import "sort"

// BusFactor returns the minimal number of top contributors whose combined
// commits cover at least half of the set's total commit count.
//
// Contributors are ranked by commit count descending, ties broken by login,
// so the result is deterministic for any input order. A set with no commits
// has bus factor 0.
func BusFactor(set ContributionSet) int {
	total := set.Total()
	if total == 0 {
		return 0
	}

	ranked := make([]Contributor, len(set.Contributors))
	copy(ranked, set.Contributors)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Commits != ranked[j].Commits {
			return ranked[i].Commits > ranked[j].Commits
		}
		return ranked[i].Login < ranked[j].Login
	})

	var sum int
	for n, c := range ranked {
		sum += c.Commits
		if sum*2 >= total {
			return n + 1
		}
	}

	return len(ranked)
}
