package agent

import (
	"context"

	"campus/pkg/ai"
	"campus/pkg/corpus"
	"campus/pkg/websearch"
)

// State names one stage of the retrieval pipeline.
type State string

const (
	StateFilter    State = "FILTER"
	StateRetrieve  State = "RETRIEVE"
	StateWebSearch State = "WEB_SEARCH"
	StateGenerate  State = "GENERATE"
	StateDone      State = "DONE"
	StateRejected  State = "REJECTED"
)

// Searcher is the web search collaborator consumed by the pipeline.
type Searcher interface {
	Search(query string, maxResults int) []websearch.Hit
}

// pipelineState is the single shared record mutated in place by each stage.
// Stages communicate through it and nothing else.
type pipelineState struct {
	Query       string
	Context     string
	WebResults  []websearch.Hit
	RAGResults  []corpus.Entry
	FinalAnswer string
	State       State
}

// Pipeline is the orchestration state machine:
// FILTER -> RETRIEVE -> WEB_SEARCH -> GENERATE -> DONE, with REJECTED as a
// terminal reachable only from FILTER.
type Pipeline struct {
	index *corpus.Index
	web   Searcher
	llm   ai.Client
}

func NewPipeline(index *corpus.Index, web Searcher, llm ai.Client) *Pipeline {
	return &Pipeline{index: index, web: web, llm: llm}
}

// Answer runs the full pipeline for one query. Greetings short-circuit before
// the filter; rejected queries return the fixed rejection text. The only
// error source is the generation transport, and with a chained client that
// ends in a static transport this never fails.
func (p *Pipeline) Answer(ctx context.Context, query string) (string, error) {
	if IsGreeting(query) {
		return GreetingText, nil
	}

	st := &pipelineState{Query: query, State: StateFilter}

	p.filter(st)
	if st.State == StateRejected {
		return st.FinalAnswer, nil
	}
	p.retrieve(st)
	p.webSearch(st)
	if err := p.generate(ctx, st); err != nil {
		return "", err
	}
	return st.FinalAnswer, nil
}

func (p *Pipeline) filter(st *pipelineState) {
	if !InScope(st.Query) {
		st.FinalAnswer = RejectionText
		st.State = StateRejected
		return
	}
	st.State = StateRetrieve
}

func (p *Pipeline) retrieve(st *pipelineState) {
	st.RAGResults = p.index.Search(st.Query, corpus.DefaultTopK)
	st.Context = buildContext(st.RAGResults)
	st.State = StateWebSearch
}

// webSearch always runs, even on strong corpus matches: web results augment
// the corpus rather than replacing it.
func (p *Pipeline) webSearch(st *pipelineState) {
	st.WebResults = p.web.Search(st.Query, websearch.DefaultMaxResults)
	st.State = StateGenerate
}

func (p *Pipeline) generate(ctx context.Context, st *pipelineState) error {
	msgs := assemblePrompt(st.Query, st.Context, formatWebResults(st.WebResults))
	comp, err := p.llm.Complete(ctx, msgs, nil)
	if err != nil {
		return err
	}
	st.FinalAnswer = comp.Content
	st.State = StateDone
	return nil
}
