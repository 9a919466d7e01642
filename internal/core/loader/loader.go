// Package loader fills the store once at startup from a DatasetSource.
package loader

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/workboard/taskboard/internal/core/ports"
	"github.com/workboard/taskboard/internal/core/store"
)

// FailureMessage is stored in State.Error when the source fails.
const FailureMessage = "failed to load data"

// ReportFunc observes the end of a load. err is nil on success and
// context.Canceled when the load was abandoned.
type ReportFunc func(err error, elapsed time.Duration)

// Loader runs the single load lifecycle of a store.
type Loader struct {
	store  *store.Store
	source ports.DatasetSource
	delay  time.Duration
	report ReportFunc
	log    zerolog.Logger
	once   sync.Once
	done   chan struct{}
}

// Option configures a Loader.
type Option func(*Loader)

// WithReport registers a callback run when the load ends.
func WithReport(fn ReportFunc) Option {
	return func(l *Loader) { l.report = fn }
}

// New returns a loader that waits delay before reading source.
func New(st *store.Store, source ports.DatasetSource, delay time.Duration, log zerolog.Logger, opts ...Option) *Loader {
	l := &Loader{
		store:  st,
		source: source,
		delay:  delay,
		log:    log,
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start runs the load in the background. Only the first call has an effect.
// Cancelling ctx abandons the load without touching the store.
func (l *Loader) Start(ctx context.Context) {
	l.once.Do(func() {
		go func() {
			defer close(l.done)
			l.run(ctx)
		}()
	})
}

// Done is closed once a started load has finished or been abandoned.
func (l *Loader) Done() <-chan struct{} {
	return l.done
}

// Run performs the load synchronously. It shares the single lifecycle with
// Start, so it returns at once when a load was already started.
func (l *Loader) Run(ctx context.Context) error {
	var err error
	ran := false
	l.once.Do(func() {
		ran = true
		defer close(l.done)
		err = l.run(ctx)
	})
	if !ran {
		return nil
	}
	return err
}

func (l *Loader) run(ctx context.Context) error {
	start := time.Now()
	err := l.load(ctx)
	if l.report != nil {
		l.report(err, time.Since(start))
	}
	return err
}

func (l *Loader) load(ctx context.Context) error {
	l.store.Dispatch(store.SetLoading{Loading: true})

	if l.delay > 0 {
		timer := time.NewTimer(l.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			l.log.Debug().Msg("initial load abandoned")
			return ctx.Err()
		case <-timer.C:
		}
	}

	ds, err := l.source.Load(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		l.log.Error().Err(err).Msg("initial load failed")
		if batchErr := l.store.DispatchBatch(ctx,
			store.SetError{Message: FailureMessage},
			store.SetLoading{Loading: false},
		); batchErr != nil {
			return batchErr
		}
		return err
	}

	if err := l.store.DispatchBatch(ctx,
		store.SetEmployees{Employees: ds.Employees},
		store.SetProjects{Projects: ds.Projects},
		store.SetTasks{Tasks: ds.Tasks},
		store.SetLoading{Loading: false},
	); err != nil {
		l.log.Debug().Msg("initial load abandoned")
		return err
	}

	l.log.Info().
		Int("employees", len(ds.Employees)).
		Int("projects", len(ds.Projects)).
		Int("tasks", len(ds.Tasks)).
		Msg("initial data loaded")
	return nil
}
