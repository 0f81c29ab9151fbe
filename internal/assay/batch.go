package assay

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// SpeciesResult is the cleaned output for one species.
type SpeciesResult struct {
	Records []CleanedSampleRecord
	Stats   CleanStats
}

// CleanSpecies cleans several species concurrently, at most workers at a time
// (workers <= 0 means one per species). Records are partitioned by species
// code up front so each worker only scans its own partition. The result is
// keyed by species and does not depend on scheduling. Duplicate species are
// cleaned once.
func CleanSpecies(ctx context.Context, records []RawSampleRecord, species []string, resolver MethodResolver, workers int) (map[string]SpeciesResult, error) {
	wanted := make(map[string]struct{}, len(species))
	var order []string
	for _, s := range species {
		if _, ok := wanted[s]; ok {
			continue
		}
		wanted[s] = struct{}{}
		order = append(order, s)
	}
	parts := make(map[string][]RawSampleRecord, len(order))
	for _, r := range records {
		if _, ok := wanted[r.ChemCode]; ok {
			parts[r.ChemCode] = append(parts[r.ChemCode], r)
		}
	}

	var (
		mu  sync.Mutex
		out = make(map[string]SpeciesResult, len(order))
	)
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for _, sp := range order {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			recs, stats := Clean(parts[sp], sp, resolver)
			mu.Lock()
			out[sp] = SpeciesResult{Records: recs, Stats: stats}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
