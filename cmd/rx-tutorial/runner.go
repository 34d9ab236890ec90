package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/boookk/bithumb-practice/internal/config"
	"github.com/boookk/bithumb-practice/internal/render"
	"github.com/boookk/bithumb-practice/rx"
	"github.com/boookk/bithumb-practice/tutorial"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type runner struct {
	cfg     *config.Config
	out     io.Writer
	log     *zap.Logger
	encoder render.Encoder
	worker  *rx.Worker
}

func newRunner(cfg *config.Config, out io.Writer, log *zap.Logger) (*runner, error) {
	enc, err := render.New(cfg.Format)
	if err != nil {
		return nil, err
	}
	return &runner{
		cfg:     cfg,
		out:     out,
		log:     log,
		encoder: enc,
		worker:  rx.NewSingleScheduler(),
	}, nil
}

func (r *runner) Close() error {
	return r.worker.Close()
}

// run executes the named scenarios in order, all of them when names is empty.
// Every scenario is rendered, and the error lists the scenarios which failed.
func (r *runner) run(ctx context.Context, names []string) error {
	var scenarios []tutorial.Scenario
	if len(names) == 0 {
		scenarios = tutorial.Scenarios()
	} else {
		for _, name := range names {
			s, ok := tutorial.Lookup(name)
			if !ok {
				return errors.Errorf("unknown scenario %q", name)
			}
			scenarios = append(scenarios, s)
		}
	}

	opts := tutorial.Options{
		Delay:     r.cfg.Delay,
		Scheduler: r.worker,
	}
	var failed []string
	for _, s := range scenarios {
		start := time.Now()
		log := r.log.With(zap.String("run", uuid.NewString()), zap.String("scenario", s.Name))
		res := r.runOne(ctx, log, s, opts)
		log.Debug("scenario done",
			zap.Int("values", len(res.Values)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(res.Err))
		if err := r.encoder.Encode(r.out, res); err != nil {
			return errors.Wrapf(err, "write result of %s", s.Name)
		}
		if res.Err != nil {
			failed = append(failed, s.Name)
		}
	}
	if len(failed) > 0 {
		return errors.Errorf("%d scenario(s) failed: %v", len(failed), failed)
	}
	return nil
}

func (r *runner) runOne(ctx context.Context, log *zap.Logger, s tutorial.Scenario, opts tutorial.Options) render.Result {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()
	log.Debug("scenario start", zap.Duration("timeout", r.cfg.Timeout))
	values, err := s.Run(ctx, opts)
	if err != nil {
		log.Warn("scenario failed", zap.Error(err))
	}
	return render.Result{
		Scenario: s.Name,
		Values:   values,
		Err:      err,
	}
}

func listScenarios(w io.Writer) {
	for _, s := range tutorial.Scenarios() {
		_, _ = fmt.Fprintf(w, "%-8s %s\n", s.Name, s.Description)
	}
}
