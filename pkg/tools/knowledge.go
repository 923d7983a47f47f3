package tools

import (
	"context"
	"fmt"
	"strings"

	"campus/pkg/websearch"
)

// Answerer runs the knowledge-and-web pipeline for a query. The agent package
// provides the implementation; keeping it an interface here avoids an import
// cycle and lets tests script the answer.
type Answerer interface {
	Answer(ctx context.Context, query string) (string, error)
}

// Searcher is the raw web search fallback.
type Searcher interface {
	Search(query string, maxResults int) []websearch.Hit
}

// KnowledgeTool delegates to the retrieval pipeline; if that fails it falls
// back to a raw web search digest, and if everything fails it answers with an
// apologetic text rather than erroring.
func KnowledgeTool(answerer Answerer, web Searcher) Tool {
	return &tool{
		name: "search_campus_knowledge_and_web",
		desc: "Search the university knowledge base and web for information not related to student database operations.",
		params: schema(map[string]any{
			"query": strProp("The question to research"),
		}, "query"),
		run: func(ctx context.Context, args map[string]any) (any, error) {
			query, err := argString(args, "query")
			if err != nil {
				return nil, err
			}

			if answerer != nil {
				if resp, err := answerer.Answer(ctx, query); err == nil && resp != "" {
					return map[string]any{
						"query":    query,
						"response": resp,
						"source":   "Knowledge Base + Web Search",
					}, nil
				}
			}

			// Primary path failed: degrade to a raw web digest.
			if web != nil {
				hits := web.Search(query, 3)
				if !websearch.Failed(hits) {
					var b strings.Builder
					b.WriteString("Here's what I found on the web:\n\n")
					for _, h := range hits {
						fmt.Fprintf(&b, "**%s**\n%s\n\n", h.Title, h.Snippet)
					}
					return map[string]any{
						"query":    query,
						"response": b.String(),
						"source":   "Web Search Only",
					}, nil
				}
			}

			return map[string]any{
				"query":    query,
				"response": fmt.Sprintf("I'm sorry, I couldn't find information about %q at the moment. This might be outside my knowledge area.", query),
				"source":   "No Results",
			}, nil
		},
	}
}
