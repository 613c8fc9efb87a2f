package redipy

// Config selects and configures one of Client's two backends (spec.md
// §6's "constructed with either a memory configuration or a network
// configuration"). Redis is only consulted when Backend == "redis".
// Prefix applies uniformly to both backends via prefixDispatcher, the
// same decorator regardless of which backend it wraps.
type Config struct {
	// Backend is "memory" or "redis" (the empty string also selects
	// memory); NewClient rejects anything else.
	Backend string

	Redis RedisConfig

	// Prefix is prepended to every key the client sends, giving a
	// virtual namespace (spec.md §6).
	Prefix string
}

// RedisConfig carries the network configuration spec.md §6 names
// literally: host, port, passwd.
type RedisConfig struct {
	Host   string
	Port   int
	Passwd string
}
