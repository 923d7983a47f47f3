package agent

import "strings"

// domainKeywords is the fixed in-scope vocabulary for the university
// assistant. The filter is a pure substring check, no side effects.
var domainKeywords = []string{
	"uaf",
	"university of agriculture",
	"faisalabad",
	"agriculture university",
	"uaf.edu.pk",
	"agriculture faisalabad",
}

// RejectionText is the fixed answer for out-of-scope queries.
const RejectionText = "I can only answer questions related to UAF (University of Agriculture, Faisalabad). Please ask something about UAF University."

// GreetingText is the canned reply for greeting-style messages.
const GreetingText = "Hi! I am UAF (University of Agriculture, Faisalabad) AI assistant. How can I help you with information about UAF University?"

var greetings = map[string]bool{
	"hello":            true,
	"hi":               true,
	"salam":            true,
	"assalamualaikum":  true,
	"assalamu alaikum": true,
}

// InScope reports whether the query mentions the assistant's domain.
func InScope(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range domainKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// IsGreeting matches greeting phrases exactly, case-insensitive. Checked
// before the filter so greetings bypass the whole pipeline.
func IsGreeting(msg string) bool {
	return greetings[strings.ToLower(strings.TrimSpace(msg))]
}
