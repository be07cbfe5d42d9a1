package translate

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// completeFunc sends one prompt to a model and returns its raw text reply.
type completeFunc func(ctx context.Context, prompt string) (string, error)

// batcher splits lines into requests of Options.BatchSize and parses the
// replies. Provider translators embed it and supply complete.
type batcher struct {
	options  Options
	complete completeFunc
}

func (b *batcher) Translate(ctx context.Context, items []Item) ([]Result, error) {
	if len(items) == 0 {
		return []Result{}, nil
	}

	var allResults []Result
	for i, batch := range b.split(items) {
		results, err := b.translateBatch(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("batch %d failed: %w", i, err)
		}
		allResults = append(allResults, results...)
	}

	sortResults(allResults)
	return allResults, nil
}

// Each batch becomes one API request. Workers (up to concurrency) pull
// batches from a shared queue; the first failure cancels the rest.
func (b *batcher) TranslateWithConcurrency(
	ctx context.Context,
	items []Item,
	concurrency int,
) ([]Result, error) {
	if len(items) == 0 {
		return []Result{}, nil
	}
	if concurrency <= 0 {
		concurrency = 3
	}

	batches := b.split(items)
	if len(batches) == 1 {
		return b.translateBatch(ctx, batches[0])
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type batchResult struct {
		Index   int
		Results []Result
		Error   error
	}

	workChan := make(chan int)
	resultChan := make(chan batchResult, len(batches))

	var wg sync.WaitGroup
	for i := 0; i < concurrency && i < len(batches); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case batchIdx, ok := <-workChan:
					if !ok || ctx.Err() != nil {
						return
					}
					results, err := b.translateBatch(ctx, batches[batchIdx])
					resultChan <- batchResult{Index: batchIdx, Results: results, Error: err}
					// queued before cancel so the root cause is reported first
					if err != nil {
						cancel()
					}
				}
			}
		}()
	}

	go func() {
		defer close(workChan)
		for i := range batches {
			select {
			case <-ctx.Done():
				return
			case workChan <- i:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	var allResults []Result
	var firstErr error
	for result := range resultChan {
		if result.Error != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("batch %d failed: %w", result.Index, result.Error)
				cancel()
			}
			continue
		}
		allResults = append(allResults, result.Results...)
	}

	if firstErr != nil {
		return nil, firstErr
	}
	// workers stop pulling once the parent context is done
	if err := ctx.Err(); err != nil && len(allResults) < len(items) {
		return nil, err
	}

	sortResults(allResults)
	return allResults, nil
}

func (b *batcher) split(items []Item) [][]Item {
	size := b.options.batchSize()
	var batches [][]Item
	for i := 0; i < len(items); i += size {
		end := min(i+size, len(items))
		batches = append(batches, items[i:end])
	}
	return batches
}

func (b *batcher) translateBatch(ctx context.Context, items []Item) ([]Result, error) {
	text, err := b.complete(ctx, BuildPrompt(b.options, items))
	if err != nil {
		return nil, fmt.Errorf("translation failed: %w", err)
	}
	return parseResponse(text, len(items))
}

func sortResults(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})
}
