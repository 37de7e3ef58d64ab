package categorize

// categoryKeywords maps each topic category to its signal words. Multi-word
// phrases from earlier keyword lists were dropped since matching is
// per-token.
var categoryKeywords = map[string][]string{
	"politics": {
		"government", "election", "president", "minister", "parliament",
		"democracy", "vote", "policy", "campaign", "politician", "political",
		"democrat", "republican", "congress", "senate",
	},
	"business": {
		"economy", "market", "stock", "investment", "company", "corporate",
		"finance", "trade", "industry", "economic", "bank", "inflation",
		"recession", "profit", "revenue",
	},
	"technology": {
		"software", "hardware", "app", "computer", "internet", "cyber",
		"digital", "robot", "innovation",
		"tech", "smartphone", "gadget", "data",
	},
	"health": {
		"disease", "medicine", "doctor", "hospital", "patient", "medical",
		"treatment", "healthcare", "virus", "pandemic", "vaccine", "drug",
		"cancer", "surgery", "diet",
	},
	"science": {
		"research", "discovery", "experiment", "scientist", "study",
		"physics", "chemistry", "biology", "space", "planet", "astronomy",
		"laboratory", "theory", "molecular", "scientific",
	},
	"sports": {
		"match", "game", "player", "team", "tournament", "championship",
		"coach", "athlete", "win", "score", "olympic", "ball", "league",
		"soccer", "football", "basketball",
	},
	"entertainment": {
		"movie", "film", "music", "celebrity", "actor", "actress", "star",
		"television", "show", "concert", "festival", "theater",
		"performance", "hollywood",
	},
	"world": {
		"international", "foreign", "global", "country", "nation", "world",
		"diplomatic", "embassy", "crisis", "conflict", "war", "peace",
		"treaty", "border", "immigration",
	},
	"environment": {
		"climate", "environment", "green", "sustainable", "renewable",
		"pollution", "carbon", "emission", "conservation", "wildlife",
		"ecosystem", "forest", "ocean", "biodiversity",
	},
}

// stopwordList holds common English function words excluded from
// categorization
var stopwordList = []string{
	"the", "and", "for", "are", "but", "not", "you", "all", "any", "can",
	"had", "her", "was", "one", "our", "out", "day", "get", "has", "him",
	"his", "how", "man", "new", "now", "old", "see", "two", "way", "who",
	"its", "did", "yes", "she", "may", "say", "each", "which", "their",
	"will", "about", "would", "there", "could", "other", "after", "first",
	"also", "than", "then", "them", "these", "some", "her", "into", "more",
	"has", "been", "were", "they", "this", "that", "with", "have", "from",
	"what", "when", "where", "your", "said", "does", "most", "over", "such",
	"only", "very", "just", "because", "should", "before", "through",
	"between", "during", "under", "while", "both",
}
