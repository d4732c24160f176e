// Package container heuristically detects whether the current process is
// running inside a container, such as Docker, LXC or Podman.
//
// Detection probes well-known marker files and the init process's mount and
// cgroup tables. The verdict is computed once per Detector and never
// re-evaluated, even if the filesystem changes afterwards.
package container

import (
	"log/slog"
	"sync"

	"github.com/spf13/afero"
)

var defaultDetector = New(afero.NewOsFs())

// IsContainer reports whether the current process is running inside a
// container. The probes run on the first call only; every later call, from
// any goroutine, returns the same cached result without touching the
// filesystem.
func IsContainer() bool {
	return defaultDetector.IsContainer()
}

// Detector evaluates an ordered set of probes and caches the verdict.
type Detector struct {
	fs     afero.Fs
	probes []Probe
	logger *slog.Logger

	result func() bool
}

// Option configures a Detector.
type Option func(*Detector)

// WithLogger sets the logger that probe outcomes are reported to at debug
// level.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Detector) {
		d.logger = logger
	}
}

// WithProbes replaces the default probes.
func WithProbes(probes ...Probe) Option {
	return func(d *Detector) {
		d.probes = probes
	}
}

// New creates a Detector reading from fsys. No probe runs until the first
// call to IsContainer.
func New(fsys afero.Fs, opts ...Option) *Detector {
	d := &Detector{
		fs:     fsys,
		probes: DefaultProbes(),
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(d)
	}

	d.result = sync.OnceValue(d.evaluate)

	return d
}

// IsContainer reports whether any probe detects a container. Concurrent first
// callers block until the single evaluation completes.
func (d *Detector) IsContainer() bool {
	return d.result()
}

// evaluate runs the probes in order and stops at the first positive one.
func (d *Detector) evaluate() bool {
	for _, p := range d.probes {
		if d.run(p) {
			d.logger.Debug("container detected", "probe", p.Name, "path", p.Path)
			return true
		}
	}

	d.logger.Debug("no container detected", "probes", len(d.probes))

	return false
}

// run executes a probe, absorbing any error into a negative result.
func (d *Detector) run(p Probe) bool {
	ok, err := p.Run(d.fs)
	if err != nil {
		d.logger.Debug("probe failed", "probe", p.Name, "path", p.Path, "err", err)
		return false
	}

	d.logger.Debug("probe evaluated", "probe", p.Name, "path", p.Path, "detected", ok)

	return ok
}
