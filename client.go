package redipy

import (
	"context"
	"fmt"

	"github.com/JosuaKrause/redipy/backend/rediswire"
	"github.com/JosuaKrause/redipy/internal/dispatch"
	"github.com/JosuaKrause/redipy/internal/engine"
	"github.com/JosuaKrause/redipy/internal/interp"
	"github.com/JosuaKrause/redipy/internal/script"
	"github.com/redis/go-redis/v9"
)

// Client is the single public entry point (spec.md §6): one object,
// backend chosen at construction, every command in §4.3 exposed with
// one Go-idiomatic signature regardless of which Dispatcher answers it.
type Client struct {
	d        Dispatcher
	registry *script.Registry
	prefix   string

	// Exactly one of these is non-nil, selected by Config.Backend.
	local *interp.Interp       // memory backend: runs registered scripts directly against engine.Engine
	wire  *rediswire.Dispatcher // redis backend: runs registered scripts via EVALSHA/EVAL
}

// NewClient builds a Client for cfg.Backend, wrapping it in a
// prefixDispatcher when cfg.Prefix is set. Grounded on the teacher's
// cmd/server/main.go wiring a single backend.Backend once at startup;
// here the choice is runtime config instead of a single compiled-in
// storage.New call.
func NewClient(cfg Config) (*Client, error) {
	var base Dispatcher
	var local *interp.Interp
	var wire *rediswire.Dispatcher
	switch cfg.Backend {
	case "memory", "":
		e := engine.New()
		base = newLocalDispatcherFor(e)
		local = interp.New(e)
	case "redis":
		rc := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Passwd,
		})
		wire = rediswire.New(rc)
		base = wire
	default:
		return nil, fmt.Errorf("redipy: unknown backend %q", cfg.Backend)
	}
	return &Client{
		d:        newPrefixDispatcher(base, cfg.Prefix),
		registry: script.NewRegistry(),
		prefix:   cfg.Prefix,
		local:    local,
		wire:     wire,
	}, nil
}

// do builds and issues one Command, the single call site every typed
// command method below routes through.
func (c *Client) do(ctx context.Context, name string, keys, args []string) (resultValue, error) {
	v, err := c.d.Do(ctx, dispatch.Command{Name: name, Keys: keys, Args: args})
	return resultValue{v}, err
}
