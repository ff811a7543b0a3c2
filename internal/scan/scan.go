// Package scan analyses a range of equal temperaments and ranks them.
package scan

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/edotune/internal/comma"
	"github.com/verte-zerg/edotune/internal/model"
	"github.com/verte-zerg/edotune/internal/temperament"
)

// Result summarizes one EDO of a scan.
type Result struct {
	Steps    int
	Val      temperament.Val
	Badness  float64
	Tempered int
	// Accurate lists the primes within a quarter step.
	Accurate []int
}

// Run analyses every EDO in [cfg.From, cfg.To]. Results are ordered by step
// count. A cancelled ctx stops the scan and returns its error.
func Run(ctx context.Context, cfg model.ScanConfig, cat *comma.Catalog) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	primes, err := model.SubgroupPrimes(cfg.Primes, cfg.Limit)
	if err != nil {
		return nil, err
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, cfg.To-cfg.From+1)
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range results {
		i := i
		steps := cfg.From + i
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			res, err := analyse(steps, primes, cat)
			if err != nil {
				return fmt.Errorf("failed to analyse %d-EDO: %w", steps, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func analyse(steps int, primes []int, cat *comma.Catalog) (Result, error) {
	t, err := temperament.New(steps, primes)
	if err != nil {
		return Result{}, err
	}
	errs := temperament.Analyze(t)
	res := Result{
		Steps:    steps,
		Val:      t.Val(),
		Badness:  errs.TESimpleBadness,
		Accurate: errs.AccurateSubgroup(),
	}
	if cat != nil {
		res.Tempered = len(comma.TemperedOut(t, cat))
	}
	return res, nil
}
