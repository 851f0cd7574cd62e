package classify

import "fiji-news/internal/domain/entity"

// defaultKeywords is the built-in trigger table. Terms are matched as substrings
// of normalized (lowercased) text, so "legislat" covers legislation and legislature,
// and the upper-case "MP" never matches.
var defaultKeywords = map[entity.Category][]string{
	entity.CategoryPolitics: {
		"government", "parliament", "election", "minister", "policy", "political",
		"prime minister", "opposition", "vote", "legislat", "party", "MP", "democracy",
		"constitutional", "cabinet", "president", "diplomatic", "international relations",
	},
	entity.CategoryCommunity: {
		"community", "festival", "celebration", "culture", "heritage", "tradition",
		"charity", "volunteer", "donation", "environment", "education", "school",
		"hospital", "health", "development", "village", "ceremony", "church",
	},
	entity.CategorySports: {
		"rugby", "soccer", "football", "cricket", "athletics", "medal", "tournament",
		"championship", "team", "player", "coach", "olympic", "win", "lose", "match",
		"competition", "league", "sport", "game", "swimming", "volleyball", "netball",
	},
	entity.CategoryCrime: {
		"police", "arrest", "crime", "criminal", "murder", "theft", "robbery", "court",
		"trial", "sentence", "prison", "victim", "suspect", "investigation", "corruption",
		"fraud", "drugs", "assault", "illegal", "violence", "rape", "abuse",
	},
	entity.CategoryOthers: {},
}
