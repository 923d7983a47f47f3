package agent

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"campus/pkg/ai"
	"campus/pkg/corpus"
	"campus/pkg/websearch"
)

// maxContextChars caps the assembled knowledge-base block. Retrieved entries
// past the cap are dropped whole; the cap keeps prompts bounded under a large
// corpus.
const maxContextChars = 8000

const noContextText = "No relevant information found in knowledge base."

const pipelineSystemPrompt = `You are a helpful assistant specializing in UAF (University of Agriculture, Faisalabad) information.
Use the provided context to answer questions about UAF University accurately and comprehensively.
If you don't have specific information, be honest about it.
Focus only on UAF University-related information.
Use markdown for formatting when appropriate.`

// buildContext joins corpus hits into one block, capped at maxContextChars
// runes. Entries are dropped whole once the cap is reached, the first one
// included.
func buildContext(entries []corpus.Entry) string {
	if len(entries) == 0 {
		return noContextText
	}
	var b strings.Builder
	used := 0
	for _, e := range entries {
		n := utf8.RuneCountInString(e.Content)
		sep := 0
		if used > 0 {
			sep = 1
		}
		if used+sep+n > maxContextChars {
			break
		}
		if sep == 1 {
			b.WriteString("\n")
		}
		b.WriteString(e.Content)
		used += sep + n
	}
	if b.Len() == 0 {
		return noContextText
	}
	return b.String()
}

// formatWebResults renders web hits as a titled bullet list. Sentinel-only
// results yield an empty block.
func formatWebResults(hits []websearch.Hit) string {
	if len(hits) == 0 || websearch.Failed(hits) {
		return ""
	}
	var b strings.Builder
	b.WriteString("Recent web search results:\n")
	for _, h := range hits {
		fmt.Fprintf(&b, "- %s: %s\n", h.Title, h.Snippet)
	}
	return b.String()
}

// assemblePrompt combines system instructions, the knowledge block, the web
// list and the original question into the generation conversation.
func assemblePrompt(query, context, webBlock string) []ai.Message {
	user := fmt.Sprintf(`Question: %s

Knowledge Base Context:
%s

%s

Please provide a comprehensive answer about UAF (University of Agriculture, Faisalabad) based on the available information.`,
		query, context, webBlock)
	return []ai.Message{
		ai.System(pipelineSystemPrompt),
		ai.User(user),
	}
}
