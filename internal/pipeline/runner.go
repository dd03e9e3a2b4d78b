package pipeline

import (
	"context"
	"log/slog"

	"github.com/verte-zerg/wordcsv/internal/csvfile"
	"github.com/verte-zerg/wordcsv/internal/model"
	"github.com/verte-zerg/wordcsv/internal/resolver"
	"github.com/verte-zerg/wordcsv/internal/selector"
)

// Corpus is the lexical data the runner draws from.
type Corpus interface {
	Words() []string
	Stopwords() []string
	Definition(word string) (string, bool)
	IsStopword(word string) bool
}

// Runner executes jobs sequentially against one corpus. A single random
// source is shared by all jobs of a run.
type Runner struct {
	corpus   Corpus
	logger   *slog.Logger
	sampler  *selector.Sampler
	resolver *resolver.Resolver
}

// NewRunner creates a Runner. A nil seed seeds from the clock.
func NewRunner(corpus Corpus, logger *slog.Logger, seed *int64) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		corpus:   corpus,
		logger:   logger,
		sampler:  selector.New(seed),
		resolver: resolver.New(corpus),
	}
}

// Seed returns the seed of the run's random source.
func (r *Runner) Seed() int64 {
	return r.sampler.Seed()
}

// Run executes jobs in order and stops at the first failure. Results for
// files already written are returned alongside the error.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]model.FileResult, error) {
	results := make([]model.FileResult, 0, len(jobs))
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := r.RunJob(job)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// RunJob builds the pool for one job, samples it and writes the CSV file.
func (r *Runner) RunJob(job Job) (model.FileResult, error) {
	opts := job.Options
	logger := r.logger.With(slog.String("file", job.Path))
	target := 0
	if opts.TargetLength != nil {
		target = *opts.TargetLength
		logger = logger.With(slog.Int("length", target))
	}
	logger.Info("creating file")

	pool := selector.BuildPool(r.corpus.Words(), r.corpus.Stopwords(), opts)
	stopsInPool := 0
	for _, w := range pool.Sorted() {
		if r.corpus.IsStopword(w) {
			stopsInPool++
		}
	}
	logger.Debug("pool built",
		slog.Int("corpus_words", len(r.corpus.Words())),
		slog.Int("pool", pool.Len()),
		slog.Int("stopwords", stopsInPool),
	)

	sel := r.sampler.Select(pool, r.resolver, opts, func(accepted int) {
		logger.Info("processed words", slog.Int("accepted", accepted))
	})

	if err := csvfile.WriteFile(job.Path, sel.Entries); err != nil {
		return model.FileResult{}, err
	}

	result := model.FileResult{
		Path:            job.Path,
		TargetLength:    target,
		PoolSize:        pool.Len(),
		StopwordsInPool: stopsInPool,
		Entries:         len(sel.Entries),
		NoDefinition:    sel.NoDefinition,
		Rejected:        sel.Rejected,
	}
	logger.Info("created file",
		slog.Int("entries", result.Entries),
		slog.Int("no_definition", result.NoDefinition),
		slog.Int("rejected", result.Rejected),
	)
	return result, nil
}
