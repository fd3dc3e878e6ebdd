package completion

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/NikitaCOEUR/inlinecomplete/internal/suggestion"
	"github.com/NikitaCOEUR/inlinecomplete/internal/trigger"
)

// TrieSource indexes suggestions in a patricia trie keyed by their lowercase
// value. Results come back in lexical order.
type TrieSource struct {
	char rune
	trie *patricia.Trie
	size int
}

// NewTrieSource creates a source for the trigger character char
func NewTrieSource(char rune, items []suggestion.Suggestion) *TrieSource {
	s := &TrieSource{
		char: char,
		trie: patricia.NewTrie(),
	}
	for _, item := range items {
		s.Add(item)
	}
	return s
}

// Add indexes one suggestion. Values differing only in case share a node.
func (s *TrieSource) Add(item suggestion.Suggestion) {
	key := patricia.Prefix(strings.ToLower(item.Value))

	var bucket []suggestion.Suggestion
	if existing := s.trie.Get(key); existing != nil {
		bucket = existing.([]suggestion.Suggestion)
	}
	s.trie.Set(key, append(bucket, item))
	s.size++
}

// Len returns the number of indexed suggestions
func (s *TrieSource) Len() int {
	return s.size
}

// Name implements Source
func (s *TrieSource) Name() string {
	return "trie:" + string(s.char)
}

// Supports implements Source
func (s *TrieSource) Supports(t trigger.Trigger) bool {
	return t.Char == s.char
}

// Complete implements Source
func (s *TrieSource) Complete(query string) ([]suggestion.Suggestion, error) {
	type node struct {
		key   string
		items []suggestion.Suggestion
	}
	var nodes []node

	err := s.trie.VisitSubtree(patricia.Prefix(strings.ToLower(query)), func(p patricia.Prefix, item patricia.Item) error {
		items, ok := item.([]suggestion.Suggestion)
		if !ok {
			return fmt.Errorf("unexpected trie item %T for %q", item, string(p))
		}
		nodes = append(nodes, node{key: string(p), items: items})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("trie lookup for %q: %w", query, err)
	}

	sort.Slice(nodes, func(i, j int) bool { return nodes[i].key < nodes[j].key })

	var out []suggestion.Suggestion
	for _, n := range nodes {
		out = append(out, n.items...)
	}
	return out, nil
}
