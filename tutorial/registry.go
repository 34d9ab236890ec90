package tutorial

import (
	"context"
	"sort"
	"time"

	"github.com/boookk/bithumb-practice/rx"
)

// DefaultDelay is the per-element delay used by ConcatWithDelay when Options leaves it unset.
const DefaultDelay = 100 * time.Millisecond

// Options tunes how scenarios are built.
type Options struct {
	// Delay is the per-element delay of the concat scenario. Zero means DefaultDelay.
	Delay time.Duration
	// Scheduler receives the signals of the publish scenario. Nil means the shared single worker.
	Scheduler rx.Scheduler
}

// Scenario is a named pipeline which collects its elements.
type Scenario struct {
	Name        string
	Description string
	Run         func(ctx context.Context, opts Options) ([]interface{}, error)
}

var scenarios = map[string]Scenario{
	"concat": {
		Name:        "concat",
		Description: "concatenate two delayed name lists in order",
		Run: func(ctx context.Context, opts Options) ([]interface{}, error) {
			delay := opts.Delay
			if delay <= 0 {
				delay = DefaultDelay
			}
			return collect(ctx, ConcatWithDelay(delay))
		},
	},
	"even": {
		Name:        "even",
		Description: "even numbers between 1 and 100",
		Run: func(ctx context.Context, _ Options) ([]interface{}, error) {
			return collect(ctx, EvenNumbers())
		},
	},
	"publish": {
		Name:        "publish",
		Description: "publish two words on a worker",
		Run: func(ctx context.Context, opts Options) ([]interface{}, error) {
			return collect(ctx, PublishFlow(opts.Scheduler))
		},
	},
	"upper": {
		Name:        "upper",
		Description: "upper-case the names of person records",
		Run: func(ctx context.Context, _ Options) ([]interface{}, error) {
			return collect(ctx, UpperNames())
		},
	},
	"zip": {
		Name:        "zip",
		Description: "zip two name lists pairwise",
		Run: func(ctx context.Context, _ Options) ([]interface{}, error) {
			return collect(ctx, ZipList())
		},
	},
	"search": {
		Name:        "search",
		Description: "filter long words, upper-case them and repeat once",
		Run: func(ctx context.Context, _ Options) ([]interface{}, error) {
			return collect(ctx, SearchString())
		},
	},
}

// Scenarios returns all scenarios sorted by name.
func Scenarios() []Scenario {
	all := make([]Scenario, 0, len(scenarios))
	for _, it := range scenarios {
		all = append(all, it)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	})
	return all
}

// Lookup finds a scenario by name.
func Lookup(name string) (Scenario, bool) {
	s, ok := scenarios[name]
	return s, ok
}

func collect[T any](ctx context.Context, f rx.Flux[T]) ([]interface{}, error) {
	values, err := f.BlockSlice(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out, nil
}
