package intellib

import (
	"sort"

	"github.com/xrash/smetrics"
)

// calculateConsensus derives a cross-provider verdict from successful
// results. Country wins by simple vote count; city votes are taken only
// from providers agreeing on the winning country, with phonetically
// equal spellings (Soundex) merged into one candidate. The shortest
// observed spelling represents a merged group.
func calculateConsensus(results []ProviderResult) Consensus {
	countryScores := map[string]int{}

	for _, v := range results {
		if v.OK && v.Data != nil && v.Data.Country != "" {
			countryScores[v.Data.Country]++
		}
	}

	country := consensusWinner(countryScores)

	cityScores := map[string]int{}
	soundexToName := map[string]string{}

	for _, v := range results {
		if !v.OK || v.Data == nil || v.Data.Country != country || v.Data.City == "" {
			continue
		}

		metric := smetrics.Soundex(v.Data.City)

		if currentValue, ok := soundexToName[metric]; !ok || len(v.Data.City) < len(currentValue) {
			soundexToName[metric] = v.Data.City
		}

		cityScores[metric]++
	}

	return Consensus{
		Country: country,
		City:    soundexToName[consensusWinner(cityScores)],
	}
}

// consensusWinner picks the highest-scored candidate. Candidates are
// walked in sorted order so ties resolve the same way on every run.
func consensusWinner(scores map[string]int) string {
	candidates := make([]string, 0, len(scores))

	for candidate := range scores {
		candidates = append(candidates, candidate)
	}

	sort.Strings(candidates)

	winner := ""
	currentMax := 0

	for _, candidate := range candidates {
		if scores[candidate] > currentMax {
			winner = candidate
			currentMax = scores[candidate]
		}
	}

	return winner
}
