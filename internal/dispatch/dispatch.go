// Package dispatch holds the Command/Dispatcher shapes shared between
// the root redipy package and backend/rediswire. It exists only to
// break the import cycle those two would otherwise form (redipy builds
// a Dispatcher from backend/rediswire; backend/rediswire's
// Dispatcher needs the Command/Dispatcher types) — the root
// package re-exports both via type aliases so callers never see this
// package's name.
package dispatch

import (
	"context"
	"strings"

	"github.com/JosuaKrause/redipy/internal/rval"
)

// Command is C7's unit of work (spec.md §4.6's "Command(name, args)"),
// split into Keys and Args so a Dispatcher decorator can rewrite the key
// portion uniformly without knowing each command's full real-Redis
// grammar.
type Command struct {
	Name string
	Keys []string
	Args []string
}

// Dispatcher is the thin command-routing interface every backend
// implements.
type Dispatcher interface {
	Do(ctx context.Context, cmd Command) (rval.Value, error)
}

// interleavedKeyCommands names commands whose keys do not simply come
// first — MSET alternates key/value — so AssembleArgs must weave Keys
// back in rather than just prepending them.
var interleavedKeyCommands = map[string]bool{
	"mset": true,
}

// AssembleArgs reconstitutes the real Redis positional argument list a
// command-execution backend expects, from a Command's separately
// tracked Keys and Args.
func AssembleArgs(cmd Command) []string {
	if interleavedKeyCommands[strings.ToLower(cmd.Name)] {
		out := make([]string, 0, len(cmd.Keys)*2)
		for i, k := range cmd.Keys {
			out = append(out, k, cmd.Args[i])
		}
		return out
	}
	out := make([]string, 0, len(cmd.Keys)+len(cmd.Args))
	out = append(out, cmd.Keys...)
	out = append(out, cmd.Args...)
	return out
}
