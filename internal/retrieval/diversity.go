package retrieval

import "strconv"

// maxPerPage caps how many results a single page may contribute before
// the bootstrap clause stops admitting more from it.
const maxPerPage = 2

// Diversify prevents one page from dominating the top results. It walks
// the score-sorted list once, admitting a fragment when its page has
// fewer than two admissions so far, or when fewer than k/2 fragments
// have been admitted at all (so the top of the list is never starved
// even if every good match shares one page). Collection stops at 1.5*k
// admitted and the first k are returned.
//
// The pass is greedy and order-preserving: it is not an optimal
// diversity solution, and ties within a page resolve by score order.
func Diversify(ranked []Result, k int) []Result {
	if k <= 0 || len(ranked) == 0 {
		return nil
	}

	limit := k + k/2
	pageCounts := make(map[string]int)
	admitted := make([]Result, 0, limit)

	for _, r := range ranked {
		if len(admitted) >= limit {
			break
		}

		// Page numbers are only comparable within one document.
		key := r.Filename + "#" + strconv.Itoa(r.Page)
		if pageCounts[key] < maxPerPage || len(admitted) < k/2 {
			pageCounts[key]++
			admitted = append(admitted, r)
		}
	}

	if len(admitted) > k {
		admitted = admitted[:k]
	}
	return admitted
}
