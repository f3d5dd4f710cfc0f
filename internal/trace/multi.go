package trace

import "errors"

// MultiTracer forwards each event to several tracers.
type MultiTracer struct {
	tracers []Tracer
	level   Level
}

func NewMultiTracer(level Level, tracers ...Tracer) *MultiTracer {
	return &MultiTracer{tracers: tracers, level: level}
}

func (t *MultiTracer) Emit(ev *Event) {
	for _, inner := range t.tracers {
		inner.Emit(ev)
	}
}

func (t *MultiTracer) Flush() error {
	var errs []error
	for _, inner := range t.tracers {
		errs = append(errs, inner.Flush())
	}
	return errors.Join(errs...)
}

func (t *MultiTracer) Close() error {
	var errs []error
	for _, inner := range t.tracers {
		errs = append(errs, inner.Close())
	}
	return errors.Join(errs...)
}

func (t *MultiTracer) Level() Level { return t.level }
func (t *MultiTracer) Enabled() bool { return t.level > LevelOff }
