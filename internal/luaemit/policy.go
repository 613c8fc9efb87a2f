package luaemit

// renameOps maps the builder/interpreter's count-taking helper names
// (SPEC_FULL.md's "scalar vs count-variant" split, e.g. lpop vs
// lpop_count) onto the single real Redis command name both forms
// actually call — LPOP key [count] already accepts the count
// positionally, so the split that keeps interp's dispatch tables
// closed collapses back into one Lua call (§4.5).
var renameOps = map[string]string{
	"lpop_count":        "lpop",
	"rpop_count":        "rpop",
	"spop_count":        "spop",
	"srandmember_count": "srandmember",
	"zpopmin_count":      "zpopmin",
	"zpopmax_count":      "zpopmax",
}

// nilFalseOps names ops whose real Redis RESP-nil reply arrives in Lua
// as `false` rather than `nil` (the classic RESP-nil/Lua-false
// divergence) — every call listed here is wrapped in __nf() so the
// emitted script never observes `false` standing in for "missing"
// (§4.5 "Nil/false repair", matching the interpreter's own "never
// returns Lua's false for missing" rule).
var nilFalseOps = map[string]bool{
	"get":         true,
	"lpop":        true,
	"rpop":        true,
	"hget":        true,
	"spop":        true,
	"srandmember": true,
	"zscore":      true,
	"lindex":      true,
	"zpopmin":     true,
	"zpopmax":     true,
}

// helperFuncOps names ops whose real Redis calling convention diverges
// from the fixed positional contract the builder and interpreter share
// (optional tokens like NX/XX/REV/WITHSCORES, or a different argument
// order) — these are realized as emitted Lua helper functions rather
// than a direct redis.call pass-through (§4.5 "Helper library").
var helperFuncOps = map[string]bool{
	"set":           true,
	"zadd":          true,
	"zrange":        true,
	"zrangebyscore": true,
	"zrank":         true,
	"scan":          true,
}
