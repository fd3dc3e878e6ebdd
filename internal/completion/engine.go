package completion

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/NikitaCOEUR/inlinecomplete/internal/logger"
	"github.com/NikitaCOEUR/inlinecomplete/internal/suggestion"
	"github.com/NikitaCOEUR/inlinecomplete/internal/trace"
	"github.com/NikitaCOEUR/inlinecomplete/internal/trigger"
)

// Engine fans a query out to every source supporting its trigger and merges
// the answers in registration order.
type Engine struct {
	sources []Source
	limit   int
	log     *logger.Logger
}

// NewEngine creates an engine returning at most limit suggestions.
// A limit of zero or less means no limit.
func NewEngine(limit int, log *logger.Logger, sources ...Source) *Engine {
	if log == nil {
		log = logger.Discard()
	}
	return &Engine{
		sources: sources,
		limit:   limit,
		log:     log.With("completion"),
	}
}

// Add registers a source after the existing ones
func (e *Engine) Add(s Source) {
	e.sources = append(e.sources, s)
}

// Sources returns the registered sources
func (e *Engine) Sources() []Source {
	return e.sources
}

// sourceResult holds the result of a parallel source lookup
type sourceResult struct {
	index       int
	suggestions []suggestion.Suggestion
	err         error
}

// Complete queries all supporting sources in parallel. Failing sources are
// logged and skipped. Duplicate keys keep their first occurrence.
func (e *Engine) Complete(ctx context.Context, ev trigger.Event) (*Result, error) {
	defer trace.Region(ctx, "completion.Complete")()
	trace.Log(ctx, "query", ev.Trigger.String()+ev.Query)
	start := time.Now()

	var supporting []Source
	for _, s := range e.sources {
		if s.Supports(ev.Trigger) {
			supporting = append(supporting, s)
		}
	}

	if len(supporting) == 0 {
		return &Result{
			Suggestions: []suggestion.Suggestion{},
			Source:      "none",
		}, nil
	}

	resultChan := make(chan sourceResult, len(supporting))
	var wg sync.WaitGroup

	for i, s := range supporting {
		wg.Add(1)
		go func(index int, src Source) {
			defer wg.Done()
			suggestions, err := src.Complete(ev.Query)
			resultChan <- sourceResult{index: index, suggestions: suggestions, err: err}
		}(i, s)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]sourceResult, len(supporting))
	for received := 0; received < len(supporting); {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case r, ok := <-resultChan:
			if !ok {
				received = len(supporting)
				continue
			}
			results[r.index] = r
			received++
		}
	}

	seen := make(map[string]bool)
	merged := []suggestion.Suggestion{}
	var names []string

	for i, r := range results {
		if r.err != nil {
			e.log.Warn().Str("source", supporting[i].Name()).Err(r.err).Msg("Source failed")
			continue
		}
		if len(r.suggestions) > 0 {
			names = append(names, supporting[i].Name())
		}
		for _, s := range r.suggestions {
			key := suggestion.KeyOf(s)
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, s)
		}
	}

	if e.limit > 0 && len(merged) > e.limit {
		merged = merged[:e.limit]
	}

	source := strings.Join(names, ",")
	if source == "" {
		source = "none"
	}

	e.log.Debug().
		Str("trigger", ev.Trigger.String()).
		Str("query", ev.Query).
		Int("count", len(merged)).
		Str("source", source).
		Dur("elapsed", time.Since(start)).
		Msg("Completion done")

	return &Result{
		Suggestions: merged,
		Source:      source,
	}, nil
}
