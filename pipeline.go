package redipy

import (
	"context"

	"github.com/JosuaKrause/redipy/internal/rval"
)

// Result is one pipelined command's outcome (spec.md §4.6: "Callers
// read back Result | Error per slot").
type Result struct {
	Value rval.Value
	Err   error
}

// Pipeline buffers commands and executes them in enqueue order,
// recording a failure at its position without aborting the remaining
// queue (spec.md §4.6's "best-effort" failure semantics). Grounded on
// the teacher's own go-redis Pipeliner usage in tests/integration_test.go
// (client.Pipeline()/Pipelined(ctx, func(Pipeliner) error)), generalized
// here to run over either Dispatcher rather than only the wire backend.
type Pipeline struct {
	d     Dispatcher
	queue []Command
}

// Pipeline opens a new pipeline bound to c's backend and prefix.
func (c *Client) Pipeline() *Pipeline {
	return &Pipeline{d: c.d}
}

// Queue enqueues one command, returning the pipeline for chaining.
func (p *Pipeline) Queue(name string, keys, args []string) *Pipeline {
	p.queue = append(p.queue, Command{Name: name, Keys: keys, Args: args})
	return p
}

// Execute flushes the queue, issuing each command in order and
// collecting every result — the observable order of effects equals the
// enqueue order, and results align by index with enqueued commands
// (spec.md §4.6's ordering invariant).
func (p *Pipeline) Execute(ctx context.Context) []Result {
	out := make([]Result, len(p.queue))
	for i, cmd := range p.queue {
		v, err := p.d.Do(ctx, cmd)
		out[i] = Result{Value: v, Err: err}
	}
	p.queue = nil
	return out
}
