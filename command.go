package redipy

import "github.com/JosuaKrause/redipy/internal/dispatch"

// Command is the dispatcher's unit of work (spec.md §4.6's "Command(name,
// args)"), split into Keys and Args so a Dispatcher decorator — notably
// prefixDispatcher — can rewrite the key portion uniformly without
// knowing each command's full real-Redis grammar, the same separation
// script.FnContext keeps between registered keys and registered args.
// Aliased from internal/dispatch, which also backend/rediswire depends
// on, to avoid an import cycle between this package and that one.
type Command = dispatch.Command

func assembleArgs(cmd Command) []string { return dispatch.AssembleArgs(cmd) }
