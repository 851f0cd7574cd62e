package analyze

import (
	"sort"

	"fiji-news/internal/domain/entity"
	"fiji-news/internal/utils/text"
)

// maxSpecificStrategies caps the keyword-specific mitigation strategies.
const maxSpecificStrategies = 3

// threatKeywords are matched case-insensitively against article bodies and titles.
var threatKeywords = []string{
	"protest", "riot", "unrest", "violence", "conflict", "strike", "coup",
	"demonstration", "crisis", "tension", "opposition", "controversial",
	"disaster", "emergency", "threat", "attack", "warning", "security",
	"concern", "issue", "problem", "critical", "serious", "dispute",
	"political instability", "economic crisis", "corruption", "scandal",
}

// threatResponses maps a threat keyword to its canned response. Keywords missing
// here produce no specific strategy.
var threatResponses = map[string]string{
	"protest":       "Monitor social media and increase community engagement to address concerns.",
	"riot":          "Coordinate with security forces and implement emergency response protocols.",
	"unrest":        "Establish communication channels with community leaders to ease tensions.",
	"violence":      "Increase security presence in affected areas and facilitate dialogue.",
	"conflict":      "Identify key stakeholders and initiate mediation processes.",
	"strike":        "Engage with labor representatives to address grievances.",
	"coup":          "Monitor military movements and secure key government facilities.",
	"demonstration": "Ensure peaceful assembly rights while maintaining public order.",
	"crisis":        "Activate crisis management team and develop contingency plans.",
	"tension":       "Promote intercommunal dialogue and peace-building initiatives.",
	"disaster":      "Prepare emergency services and coordinate humanitarian assistance.",
	"emergency":     "Activate emergency response protocols and allocate resources.",
	"corruption":    "Strengthen transparency measures and anti-corruption initiatives.",
	"scandal":       "Implement communication strategy to address public concerns.",
}

const (
	strategyGeneral     = "general"
	noThreatsMessage    = "No significant threats detected. Continue monitoring the situation."
	keepMonitoringNotes = "Continue monitoring news sources and update analysis regularly."
)

// ThreatKeywords returns a copy of the monitored threat keywords.
func ThreatKeywords() []string {
	return append([]string(nil), threatKeywords...)
}

// IdentifyThreats flags every article whose body or title contains at least one
// threat keyword. Matched keywords keep the order of the keyword list.
func IdentifyThreats(articles []entity.Article) []entity.ThreatRecord {
	threats := []entity.ThreatRecord{}
	for _, a := range articles {
		var matches []string
		for _, kw := range threatKeywords {
			if text.ContainsFold(a.Text, kw) || text.ContainsFold(a.Title, kw) {
				matches = append(matches, kw)
			}
		}
		if len(matches) == 0 {
			continue
		}
		threats = append(threats, entity.ThreatRecord{
			Title:    a.Title,
			Source:   a.Source,
			Date:     a.PublishedDate,
			URL:      a.URL,
			Keywords: matches,
			Summary:  a.Summary,
		})
	}
	return threats
}

// MitigationStrategies turns threat records into response strategies.
// With no threats a single "no significant threats" strategy is returned.
// Otherwise the three most frequent keywords (ties in first-seen order) are mapped
// through the response table and a general monitoring strategy is appended.
func MitigationStrategies(threats []entity.ThreatRecord) []entity.MitigationStrategy {
	if len(threats) == 0 {
		return []entity.MitigationStrategy{{Type: strategyGeneral, Description: noThreatsMessage}}
	}

	type tally struct {
		keyword string
		count   int
	}
	index := map[string]int{}
	var counts []tally
	for _, th := range threats {
		for _, kw := range th.Keywords {
			if i, ok := index[kw]; ok {
				counts[i].count++
				continue
			}
			index[kw] = len(counts)
			counts = append(counts, tally{keyword: kw, count: 1})
		}
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].count > counts[j].count })
	if len(counts) > maxSpecificStrategies {
		counts = counts[:maxSpecificStrategies]
	}

	strategies := make([]entity.MitigationStrategy, 0, len(counts)+1)
	for _, c := range counts {
		desc, ok := threatResponses[c.keyword]
		if !ok {
			continue
		}
		strategies = append(strategies, entity.MitigationStrategy{
			Type:        c.keyword,
			Description: desc,
			Articles:    c.count,
		})
	}
	return append(strategies, entity.MitigationStrategy{Type: strategyGeneral, Description: keepMonitoringNotes})
}
