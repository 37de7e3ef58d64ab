package feed

// Source is one news provider with its RSS feed URLs
type Source struct {
	Name    string
	Trusted bool
	Feeds   []string
}

// DefaultSources returns the built-in feed list. BBC and Reuters are treated
// as trusted sources; their articles form the comparison corpus.
func DefaultSources() []Source {
	return []Source{
		{
			Name:    "BBC",
			Trusted: true,
			Feeds: []string{
				"http://feeds.bbci.co.uk/news/world/rss.xml",
				"http://feeds.bbci.co.uk/news/uk/rss.xml",
				"http://feeds.bbci.co.uk/news/business/rss.xml",
				"http://feeds.bbci.co.uk/news/politics/rss.xml",
				"http://feeds.bbci.co.uk/news/technology/rss.xml",
				"http://feeds.bbci.co.uk/news/science_and_environment/rss.xml",
				"http://feeds.bbci.co.uk/news/health/rss.xml",
			},
		},
		{
			Name:    "Reuters",
			Trusted: true,
			Feeds: []string{
				"https://www.reutersagency.com/feed/?best-topics=all&post_type=best",
				"https://www.reutersagency.com/feed/?best-regions=north-america&post_type=best",
				"https://www.reutersagency.com/feed/?best-regions=asia&post_type=best",
				"https://www.reutersagency.com/feed/?best-regions=europe&post_type=best",
				"https://www.reutersagency.com/feed/?best-sectors=economy&post_type=best",
			},
		},
	}
}
