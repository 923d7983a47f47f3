package corpus

import (
	"encoding/json"
	"log"
	"os"
	"sort"
	"strings"
)

// Entry is one pre-loaded knowledge record. Entries are immutable after Load.
type Entry struct {
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata"`
}

// Index holds the knowledge corpus. Read-only after Load, safe for concurrent
// readers.
type Index struct {
	entries []Entry
}

const DefaultTopK = 5

// Load reads a JSON corpus file ([{"content":..., "metadata":{...}}, ...]).
// A missing or malformed file yields an empty index with a warning, not an
// error; the assistant then answers from web search alone.
func Load(path string) *Index {
	idx := &Index{}
	b, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[corpus] could not load %s: %v", path, err)
		return idx
	}
	if err := json.Unmarshal(b, &idx.entries); err != nil {
		log.Printf("[corpus] could not parse %s: %v", path, err)
		idx.entries = nil
		return idx
	}
	log.Printf("[corpus] loaded %d entries from %s", len(idx.entries), path)
	return idx
}

// NewIndex builds an index from in-memory entries.
func NewIndex(entries []Entry) *Index { return &Index{entries: entries} }

func (ix *Index) Len() int { return len(ix.entries) }

// Search returns up to k entries ranked by keyword relevance, best first.
// Score per entry is the total occurrence count of the query tokens in the
// content plus twice their count in the title metadata. Zero-score entries are
// dropped; ties keep corpus order. An empty result is a valid answer.
func (ix *Index) Search(query string, k int) []Entry {
	if k <= 0 {
		k = DefaultTopK
	}
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return nil
	}

	type scored struct {
		e  Entry
		sc int
	}
	list := make([]scored, 0, len(ix.entries))
	for _, e := range ix.entries {
		content := strings.ToLower(e.Content)
		title := strings.ToLower(e.Metadata["title"])
		sc := 0
		for _, tok := range tokens {
			sc += strings.Count(content, tok)
			sc += 2 * strings.Count(title, tok)
		}
		if sc > 0 {
			list = append(list, scored{e: e, sc: sc})
		}
	}
	// Stable sort: equal scores keep original corpus order, which decides
	// which facts surface.
	sort.SliceStable(list, func(i, j int) bool { return list[i].sc > list[j].sc })

	if k > len(list) {
		k = len(list)
	}
	out := make([]Entry, 0, k)
	for i := 0; i < k; i++ {
		out = append(out, list[i].e)
	}
	return out
}
