// Package host defines the boundary to the surrounding editor: the editable
// root, toolbar command registration, markup insertion at the selection, and
// the mutation-observation channel the extension drains after direct DOM
// edits so the host's reconciliation pass does not treat them as foreign.
package host

import (
	"errors"

	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/logging"
)

// Host adapter errors.
var (
	// ErrNoAdapter indicates no adapter is attached.
	ErrNoAdapter = errors.New("no host adapter")

	// ErrNoSelection indicates the host has no usable cursor position.
	ErrNoSelection = errors.New("no selection available")

	// ErrCommandExists indicates a command name is already registered.
	ErrCommandExists = errors.New("command already registered")
)

// CommandFunc handles a named editor command invoked from the host's toolbar.
type CommandFunc func(args map[string]any)

// Adapter bridges the extension to a concrete host editor.
type Adapter interface {
	// Root returns the editable root element listeners conceptually attach
	// to. All tables the extension manages live under this element.
	Root() *html.Node

	// RegisterCommand registers a toolbar command handler with the host.
	RegisterCommand(name string, fn CommandFunc) error

	// InsertMarkup inserts raw markup at the host's current cursor position.
	InsertMarkup(markup string) error

	// DrainMutations acknowledges the host's pending mutation records for
	// the extension's own direct DOM edits, preventing the host's
	// asynchronous reconciliation from corrupting them.
	DrainMutations() error
}

// Resync performs the best-effort drain step after structural edits. Drain
// failures only risk a later reconciliation pass, never DOM corruption by
// this extension, so they are logged at debug and swallowed.
type Resync struct {
	adapter Adapter
	log     *logging.Logger
}

// NewResync creates a Resync over the given adapter. A nil adapter is
// permitted; every drain then becomes a no-op.
func NewResync(adapter Adapter, log *logging.Logger) *Resync {
	if log == nil {
		log = logging.Nop()
	}
	return &Resync{adapter: adapter, log: log}
}

// Drain acknowledges pending host mutation records. Never fails; never
// retried.
func (r *Resync) Drain() {
	if r.adapter == nil {
		return
	}
	if err := r.adapter.DrainMutations(); err != nil {
		r.log.Debugf("mutation drain skipped: %v", err)
	}
}
