package tablestorm

import (
	"github.com/dshills/tablestorm/internal/config"
	"github.com/dshills/tablestorm/internal/geometry"
	"github.com/dshills/tablestorm/internal/logging"
	"github.com/dshills/tablestorm/internal/sched"
	"github.com/dshills/tablestorm/internal/script"
)

// Option configures an Editor at construction time.
type Option func(*Editor)

// WithConfig replaces the default configuration. Values are normalized;
// non-positive fields fall back to their defaults.
func WithConfig(cfg config.Config) Option {
	return func(e *Editor) {
		e.cfg = cfg
	}
}

// WithLogger installs a logger. The default discards everything.
func WithLogger(log *logging.Logger) Option {
	return func(e *Editor) {
		if log != nil {
			e.log = log
		}
	}
}

// WithMeasurer installs the host's geometry measurer. The default is a
// GridMeasurer working purely from declared sizes.
func WithMeasurer(m geometry.Measurer) Option {
	return func(e *Editor) {
		e.measurer = m
	}
}

// WithScheduler installs the scheduler used for menu arming and hover hide
// debouncing. The default is timer-backed.
func WithScheduler(s sched.Scheduler) Option {
	return func(e *Editor) {
		e.clock = s
	}
}

// WithScript attaches a loaded script engine. The editor takes ownership and
// closes it on Close.
func WithScript(eng *script.Engine) Option {
	return func(e *Editor) {
		e.script = eng
	}
}
