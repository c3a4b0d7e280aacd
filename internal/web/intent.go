// Package web detects search intent in chat messages and fetches results
// from DuckDuckGo so they can ride along as context.
package web

import "strings"

// searchTriggers are the phrases that route a message through web search.
// They stay specific to avoid false positives. Query extraction walks this
// list in order and takes the first match.
var searchTriggers = []string{
	"search for", "search about", "look up", "google",
	"find online", "what's the latest",
	"latest news", "current price", "weather in",
	"search the web", "look online", "web search",
}

// HasSearchIntent reports whether the message asks for a web search.
func HasSearchIntent(message string) bool {
	lower := strings.ToLower(message)
	for _, trigger := range searchTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}

// ExtractQuery pulls the search query out of the message: everything after
// the first matching trigger, trimmed of whitespace and surrounding quotes.
// A trigger with an empty remainder falls through to the next one; with no
// usable remainder the whole message is the query.
func ExtractQuery(message string) string {
	lower := strings.ToLower(message)
	for _, trigger := range searchTriggers {
		idx := strings.Index(lower, trigger)
		if idx < 0 {
			continue
		}
		query := message[idx+len(trigger):]
		query = strings.TrimSpace(query)
		query = strings.Trim(query, `"`)
		query = strings.Trim(query, `'`)
		if query != "" {
			return query
		}
	}
	return message
}
