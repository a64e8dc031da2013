package host

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/dom"
)

// Recorder is an in-memory Adapter for tests and the demo host. Inserted
// markup is parsed and appended to the root; drains are counted.
type Recorder struct {
	root     *html.Node
	commands map[string]CommandFunc

	// Markups holds every markup string passed to InsertMarkup.
	Markups []string

	// Drains counts DrainMutations calls.
	Drains int

	// FailDrains makes DrainMutations return an error.
	FailDrains bool
}

// NewRecorder creates a Recorder rooted at the given element. A nil root
// gets a fresh, empty <body>.
func NewRecorder(root *html.Node) *Recorder {
	if root == nil {
		root = dom.NewElement("body")
	}
	return &Recorder{
		root:     root,
		commands: make(map[string]CommandFunc),
	}
}

// Root implements Adapter.
func (r *Recorder) Root() *html.Node {
	return r.root
}

// RegisterCommand implements Adapter.
func (r *Recorder) RegisterCommand(name string, fn CommandFunc) error {
	if _, ok := r.commands[name]; ok {
		return fmt.Errorf("%w: %s", ErrCommandExists, name)
	}
	r.commands[name] = fn
	return nil
}

// Command returns a registered command handler.
func (r *Recorder) Command(name string) (CommandFunc, bool) {
	fn, ok := r.commands[name]
	return fn, ok
}

// InsertMarkup implements Adapter by parsing the markup and appending the
// resulting elements to the root.
func (r *Recorder) InsertMarkup(markup string) error {
	r.Markups = append(r.Markups, markup)
	body, err := dom.ParseBody(markup)
	if err != nil {
		return err
	}
	for _, el := range dom.ElementChildren(body) {
		dom.Detach(el)
		r.root.AppendChild(el)
	}
	return nil
}

// DrainMutations implements Adapter.
func (r *Recorder) DrainMutations() error {
	if r.FailDrains {
		return fmt.Errorf("host internals unavailable")
	}
	r.Drains++
	return nil
}
