// Package script implements the symbolic builder (SPEC_FULL.md C3) and
// the script registry/execution surface (C8): FnContext, scopes, typed
// Redis object wrappers that desugar to ir.Call nodes, and Registry,
// which compiles, hashes, caches and runs a registered FnContext against
// either the interpreter or the Lua emitter's output.
//
// Grounded on the teacher's handler-table construction style
// (internal/handler.New building a fixed dispatch table once) for the
// builder scaffolding, and its ScriptCache (internal/handler/lua.go,
// SHA1-keyed Store/Get/Exists/Flush) for the registry's content-hash
// cache.
package script

import (
	"github.com/JosuaKrause/redipy/internal/ir"
	"github.com/JosuaKrause/redipy/internal/rval"
)

// Expr is an alias for ir.Expr, kept for builder-surface readability.
type Expr = ir.Expr

// PluginDef declares one registry-scoped plugin op's calling contract
// (§9's "Global plugin registry" design note): name, arity, and the
// interpreter/emitter implementations wired in separately when the
// FnContext is registered (package script's Registry).
type PluginDef struct {
	Name     string
	MinArgs  int
	Variadic bool
}

// FnContext is the builder surface for exactly one script: it tracks
// the declared keys/args/locals (stable ordered ids, per §3's
// invariant) and the statement tree under construction. Building is
// pure — FnContext never touches an engine.
type FnContext struct {
	keys    []string
	args    []string
	locals  []ir.LocalDecl
	root    *Scope
	ret     ir.Expr
	plugins map[string]PluginDef
}

// New creates an empty FnContext with its root scope ready to append
// statements to.
func New() *FnContext {
	c := &FnContext{}
	c.root = &Scope{ctx: c, block: &ir.Block{}}
	return c
}

// Root returns the script's top-level scope.
func (c *FnContext) Root() *Scope { return c.root }

// Key registers a script key by name and returns a reference to it. Key
// order is the order scripts are registered — callers bind by name at
// call time (package script's Registry), never positionally.
func (c *FnContext) Key(name string) Expr {
	id := len(c.keys)
	c.keys = append(c.keys, name)
	return ir.KeyRef{ID: id}
}

// Arg registers a script argument by name and returns a reference to it.
func (c *FnContext) Arg(name string) Expr {
	id := len(c.args)
	c.args = append(c.args, name)
	return ir.ArgRef{ID: id}
}

// Local registers a local variable with an optional initializer
// expression (nil means "starts as Null", §4.2) and returns a reference
// to it, usable as an Assign target.
func (c *FnContext) Local(name string, init Expr) Expr {
	id := len(c.locals)
	c.locals = append(c.locals, ir.LocalDecl{Name: name, Init: init})
	return ir.Local{ID: id}
}

// SetReturnValue registers the script's sole return expression. Calling
// it more than once replaces the previous value — absence implies
// Return(Null) per §4.2.
func (c *FnContext) SetReturnValue(e Expr) { c.ret = e }

// RegisterPlugin declares a plugin op's name and arity so the builder
// can validate Plugin() calls against it as the tree is built, rather
// than deferring the check to run time.
func (c *FnContext) RegisterPlugin(def PluginDef) {
	if c.plugins == nil {
		c.plugins = make(map[string]PluginDef)
	}
	c.plugins[def.Name] = def
}

// Plugin builds a Kind==KindPlugin call node against a previously
// registered plugin def, panicking at build time (never at run time,
// per §9) if the name is unknown or the arity doesn't match.
func (c *FnContext) Plugin(name string, args ...Expr) Expr {
	def, ok := c.plugins[name]
	if !ok {
		panic("script: unknown plugin op " + name)
	}
	checkArity("plugin:"+name, len(args), def.MinArgs, def.Variadic)
	return ir.CallExpr{Kind: ir.KindPlugin, Name: name, Args: args}
}

// Build freezes the context into an immutable ir.Script. Keys/args/
// locals are copied so later mutation of the builder (there is none
// after Build in normal use) can never retroactively change a script
// already handed to the registry.
func (c *FnContext) Build() *ir.Script {
	return &ir.Script{
		Keys:       append([]string(nil), c.keys...),
		Args:       append([]string(nil), c.args...),
		Locals:     append([]ir.LocalDecl(nil), c.locals...),
		Body:       c.root.block,
		ReturnExpr: c.ret,
	}
}

// Scope is a block under construction. If/While return child scopes
// sharing the same FnContext (§4.2: "if_ returns (then_block,
// else_block) and both share the context").
type Scope struct {
	ctx   *FnContext
	block *ir.Block
}

// Assign appends an assignment of value to a Local previously returned
// by FnContext.Local.
func (s *Scope) Assign(target Expr, value Expr) *Scope {
	loc, ok := target.(ir.Local)
	if !ok {
		panic("script: Assign target must be a Local")
	}
	s.block.Append(&ir.AssignStmt{Target: loc, Expr: value})
	return s
}

// Do appends e as a bare expression statement, discarding its result —
// the idiom for a Redis call invoked only for its side effect.
func (s *Scope) Do(e Expr) *Scope {
	s.block.Append(&ir.ExprStmt{Expr: e})
	return s
}

// Return appends an early return of e. Unlike FnContext.SetReturnValue
// (the script's implicit fall-through return), this exits immediately
// from wherever it appears in control flow.
func (s *Scope) Return(e Expr) *Scope {
	s.block.Append(&ir.ReturnStmt{Expr: e})
	return s
}

// Break appends a loop break. It is not checked against the enclosing
// scope: called outside a While body it is still appended, and the
// result is the behaviour described on ir.WhileStmt.
func (s *Scope) Break() *Scope {
	s.block.Append(&ir.BreakStmt{})
	return s
}

// Continue appends a loop continue.
func (s *Scope) Continue() *Scope {
	s.block.Append(&ir.ContinueStmt{})
	return s
}

// If appends an if/else and returns the then/else child scopes.
func (s *Scope) If(cond Expr) (then, els *Scope) {
	thenB, elseB := &ir.Block{}, &ir.Block{}
	s.block.Append(&ir.IfStmt{Cond: cond, Then: thenB, Else: elseB})
	return &Scope{ctx: s.ctx, block: thenB}, &Scope{ctx: s.ctx, block: elseB}
}

// While appends a while loop and returns its body scope.
func (s *Scope) While(cond Expr) *Scope {
	body := &ir.Block{}
	s.block.Append(&ir.WhileStmt{Cond: cond, Body: body})
	return &Scope{ctx: s.ctx, block: body}
}

// ---- literal & expression helpers ----

func Lit(v rval.Value) Expr  { return ir.Lit{Value: v} }
func Str(s string) Expr      { return ir.Lit{Value: rval.Str(s)} }
func Int(n int64) Expr       { return ir.Lit{Value: rval.Int(n)} }
func Float(f float64) Expr   { return ir.Lit{Value: rval.Float(f)} }
func Bool(b bool) Expr       { return ir.Lit{Value: rval.Bool(b)} }
func NullLit() Expr          { return ir.Lit{Value: rval.Null()} }

func Add(l, r Expr) Expr { return ir.BinOpExpr{Op: ir.Add, Left: l, Right: r} }
func Sub(l, r Expr) Expr { return ir.BinOpExpr{Op: ir.Sub, Left: l, Right: r} }
func Mul(l, r Expr) Expr { return ir.BinOpExpr{Op: ir.Mul, Left: l, Right: r} }
func Div(l, r Expr) Expr { return ir.BinOpExpr{Op: ir.Div, Left: l, Right: r} }
func Mod(l, r Expr) Expr { return ir.BinOpExpr{Op: ir.Mod, Left: l, Right: r} }

func Eq(l, r Expr) Expr { return ir.CompareExpr{Op: ir.Eq, Left: l, Right: r} }
func Ne(l, r Expr) Expr { return ir.CompareExpr{Op: ir.Ne, Left: l, Right: r} }
func Lt(l, r Expr) Expr { return ir.CompareExpr{Op: ir.Lt, Left: l, Right: r} }
func Le(l, r Expr) Expr { return ir.CompareExpr{Op: ir.Le, Left: l, Right: r} }
func Gt(l, r Expr) Expr { return ir.CompareExpr{Op: ir.Gt, Left: l, Right: r} }
func Ge(l, r Expr) Expr { return ir.CompareExpr{Op: ir.Ge, Left: l, Right: r} }

func And(ops ...Expr) Expr { return ir.LogicalExpr{Op: ir.And, Operands: ops} }
func Or(ops ...Expr) Expr  { return ir.LogicalExpr{Op: ir.Or, Operands: ops} }
func Not(e Expr) Expr      { return ir.UnOpExpr{Op: ir.Not, Expr: e} }
func Neg(e Expr) Expr      { return ir.UnOpExpr{Op: ir.Neg, Expr: e} }

func Index(target, at Expr) Expr   { return ir.IndexExpr{Target: target, At: at} }
func Concat(parts ...Expr) Expr    { return ir.ConcatExpr{Parts: parts} }
func ToNum(e Expr) Expr            { return ir.ToNum{Expr: e} }
func ToIntStr(e Expr) Expr         { return ir.ToIntStr{Expr: e} }
func ToStr(e Expr) Expr            { return ir.ToStr{Expr: e} }
func Cond(ifE, then, els Expr) Expr { return ir.CondExpr{If: ifE, Then: then, Else: els} }

// ToNumber/ToStringFn/TypeOf are the general (Kind==KindGeneral) ops
// mirroring Lua's own tonumber/tostring/type builtins (§4.1, §9).
func ToNumber(e Expr) Expr  { return call(ir.KindGeneral, "tonumber", []Expr{e}) }
func ToStringFn(e Expr) Expr { return call(ir.KindGeneral, "tostring", []Expr{e}) }
func TypeName(e Expr) Expr  { return call(ir.KindGeneral, "type", []Expr{e}) }

func checkArity(name string, got, min int, variadic bool) {
	if got < min || (!variadic && got != min) {
		panic("script: wrong arity for " + name)
	}
}
