// Package luaemit implements the IR-to-Lua lowering (SPEC_FULL.md C6):
// it walks a compiled ir.Script and produces Lua source text runnable
// either by a real Redis server's EVAL/EVALSHA or by the luarun
// package's gopher-lua differential harness. Grounded in reverse on the
// teacher's luaExecutor (internal/handler/lua.go), which sets up the
// matching KEYS/ARGV/redis surface on the execution side; this package
// generates the script text that surface runs.
package luaemit

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/JosuaKrause/redipy/internal/ir"
	"github.com/JosuaKrause/redipy/internal/rval"
)

// Patch rewrites a Call node just before emission, addressed by command
// name (§4.5 "Plugin patches") — typically used to lower a KindPlugin
// call into a concrete KindRedis/KindHelper one the emitter already
// knows how to realize.
type Patch func(ir.CallExpr) ir.CallExpr

// Emitted is one script's Lua realization.
type Emitted struct {
	Source string
	Hash   string
}

// Emitter lowers ir.Script values to Lua text. It holds no per-script
// state; one Emitter can lower many scripts, and patches registered on
// it apply to all of them.
type Emitter struct {
	patches map[string]Patch
}

// New creates an Emitter with no patches registered.
func New() *Emitter { return &Emitter{patches: make(map[string]Patch)} }

// RegisterPatch installs a named rewrite, applied to every Call node
// whose Name matches immediately before emission.
func (em *Emitter) RegisterPatch(name string, p Patch) { em.patches[name] = p }

// Emit lowers script to Lua source and hashes the result — the
// identifier an EVALSHA call addresses it by (§4.5 "Caching"), computed
// the same way the teacher's scriptSHA1 hashes raw Lua source
// (internal/handler/lua.go).
func (em *Emitter) Emit(script *ir.Script) (*Emitted, error) {
	c := &ctx{em: em, locals: make(map[int]string, len(script.Locals))}

	var b strings.Builder
	b.WriteString(helperLibrary)
	b.WriteString("local __argv = cjson.decode(ARGV[1])\n")
	b.WriteString("local function __script()\n")

	for i, decl := range script.Locals {
		name := fmt.Sprintf("L%d", i)
		c.locals[i] = name
		if decl.Init == nil {
			fmt.Fprintf(&b, "  local %s = cjson.null\n", name)
		} else {
			fmt.Fprintf(&b, "  local %s = %s\n", name, c.expr(decl.Init))
		}
	}

	c.block(&b, script.Body, 1)

	if script.ReturnExpr != nil {
		fmt.Fprintf(&b, "  return %s\n", c.expr(script.ReturnExpr))
	} else {
		b.WriteString("  return cjson.null\n")
	}
	b.WriteString("end\n")
	b.WriteString("return cjson.encode(__collapse(__script()))\n")

	src := b.String()
	h := sha1.New()
	h.Write([]byte(src))
	return &Emitted{Source: src, Hash: hex.EncodeToString(h.Sum(nil))}, nil
}

// ctx carries per-script emission state: the Emitter (for patch
// lookup) and the Local-id-to-Lua-variable-name mapping. loopStack
// tracks the break-flag variable of each enclosing WhileStmt so nested
// Break/Continue target the right loop despite Lua 5.1 having neither
// labeled breaks nor goto.
type ctx struct {
	em        *Emitter
	locals    map[int]string
	loopStack []string
}

func (c *ctx) block(b *strings.Builder, blk *ir.Block, level int) {
	for _, s := range blk.Stmts {
		c.stmt(b, s, level)
	}
}

func indent(level int) string { return strings.Repeat("  ", level) }

func (c *ctx) stmt(b *strings.Builder, s ir.Stmt, level int) {
	pad := indent(level)
	switch n := s.(type) {
	case *ir.AssignStmt:
		fmt.Fprintf(b, "%s%s = %s\n", pad, c.locals[n.Target.ID], c.expr(n.Expr))
	case *ir.ExprStmt:
		fmt.Fprintf(b, "%slocal _ = %s\n", pad, c.expr(n.Expr))
	case *ir.ReturnStmt:
		fmt.Fprintf(b, "%sreturn %s\n", pad, c.expr(n.Expr))
	case *ir.BreakStmt:
		flag := c.loopStack[len(c.loopStack)-1]
		fmt.Fprintf(b, "%s%s = true\n", pad, flag)
		fmt.Fprintf(b, "%sbreak\n", pad)
	case *ir.ContinueStmt:
		// Lua 5.1 (gopher-lua's dialect) has no continue/goto; breaking
		// out of the enclosing repeat-until-true wrapper re-enters the
		// while loop's condition check, which is exactly "continue".
		fmt.Fprintf(b, "%sdo break end\n", pad)
	case *ir.IfStmt:
		fmt.Fprintf(b, "%sif __truthy(%s) then\n", pad, c.expr(n.Cond))
		c.block(b, n.Then, level+1)
		if len(n.Else.Stmts) > 0 {
			fmt.Fprintf(b, "%selse\n", pad)
			c.block(b, n.Else, level+1)
		}
		fmt.Fprintf(b, "%send\n", pad)
	case *ir.WhileStmt:
		flag := fmt.Sprintf("__brk%d", len(c.loopStack))
		fmt.Fprintf(b, "%slocal %s = false\n", pad, flag)
		fmt.Fprintf(b, "%swhile __truthy(%s) do\n", pad, c.expr(n.Cond))
		fmt.Fprintf(b, "%s  repeat\n", pad)
		c.loopStack = append(c.loopStack, flag)
		c.block(b, n.Body, level+2)
		c.loopStack = c.loopStack[:len(c.loopStack)-1]
		fmt.Fprintf(b, "%s  until true\n", pad)
		fmt.Fprintf(b, "%s  if %s then break end\n", pad, flag)
		fmt.Fprintf(b, "%send\n", pad)
	default:
		panic(fmt.Sprintf("luaemit: unhandled statement %T", s))
	}
}

func (c *ctx) expr(e ir.Expr) string {
	switch n := e.(type) {
	case ir.Lit:
		return luaLit(n.Value)
	case ir.Local:
		return c.locals[n.ID]
	case ir.KeyRef:
		return fmt.Sprintf("KEYS[%d]", n.ID+1)
	case ir.ArgRef:
		return fmt.Sprintf("__argv[%d]", n.ID+1)
	case ir.BinOpExpr:
		return fmt.Sprintf("(%s %s %s)", c.expr(n.Left), binOpToken(n.Op), c.expr(n.Right))
	case ir.UnOpExpr:
		if n.Op == ir.Not {
			return fmt.Sprintf("(not __truthy(%s))", c.expr(n.Expr))
		}
		return fmt.Sprintf("(-(%s))", c.expr(n.Expr))
	case ir.CompareExpr:
		return fmt.Sprintf("__compare(%q, %s, %s)", compareOpToken(n.Op), c.expr(n.Left), c.expr(n.Right))
	case ir.LogicalExpr:
		return c.logical(n.Op, n.Operands)
	case ir.IndexExpr:
		return fmt.Sprintf("__index(%s, %s)", c.expr(n.Target), c.expr(n.At))
	case ir.ConcatExpr:
		parts := make([]string, len(n.Parts))
		for i, p := range n.Parts {
			parts[i] = fmt.Sprintf("__tostr(%s)", c.expr(p))
		}
		return "(" + strings.Join(parts, " .. ") + ")"
	case ir.ToNum:
		return fmt.Sprintf("__tonum(%s)", c.expr(n.Expr))
	case ir.ToIntStr:
		return fmt.Sprintf("__tointstr(%s)", c.expr(n.Expr))
	case ir.ToStr:
		return fmt.Sprintf("__tostr(%s)", c.expr(n.Expr))
	case ir.CallExpr:
		return c.call(n)
	case ir.CondExpr:
		return fmt.Sprintf(
			"(function() if __truthy(%s) then return %s else return %s end end)()",
			c.expr(n.If), c.expr(n.Then), c.expr(n.Else))
	default:
		panic(fmt.Sprintf("luaemit: unhandled expression %T", e))
	}
}

// logical builds a right-associated chain of immediately-invoked Lua
// functions so each operand is evaluated lazily, left to right, exactly
// once — preserving short-circuit side-effect ordering even though the
// deciding rule (§4.1's Truthy, not Lua's native nil/false-only rule)
// isn't expressible as a bare `and`/`or` chain.
func (c *ctx) logical(op ir.LogicalOp, operands []ir.Expr) string {
	var build func(i int) string
	build = func(i int) string {
		if i == len(operands)-1 {
			return c.expr(operands[i])
		}
		cur := c.expr(operands[i])
		rest := build(i + 1)
		if op == ir.And {
			return fmt.Sprintf("(function() local __v = %s if not __truthy(__v) then return __v end return %s end)()", cur, rest)
		}
		return fmt.Sprintf("(function() local __v = %s if __truthy(__v) then return __v end return %s end)()", cur, rest)
	}
	return build(0)
}

func (c *ctx) call(n ir.CallExpr) string {
	if p, ok := c.em.patches[n.Name]; ok {
		n = p(n)
	}
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = c.expr(a)
	}
	joined := strings.Join(args, ", ")

	switch n.Kind {
	case ir.KindGeneral:
		switch n.Name {
		case "tonumber":
			return fmt.Sprintf("__tonum(%s)", joined)
		case "tostring":
			return fmt.Sprintf("__tostr(%s)", joined)
		case "type":
			return fmt.Sprintf("__typename(%s)", joined)
		}
		panic("luaemit: unknown general op " + n.Name)
	case ir.KindPlugin:
		return fmt.Sprintf("error(%q)", "redipy: unregistered plugin op "+n.Name)
	case ir.KindRedis, ir.KindHelper:
		if helperFuncOps[n.Name] {
			return fmt.Sprintf("__%s(%s)", n.Name, joined)
		}
		name := n.Name
		if real, ok := renameOps[name]; ok {
			name = real
		}
		callText := fmt.Sprintf("redis.call(%s)", strings.Join(append([]string{luaQuote(name)}, args...), ", "))
		if nilFalseOps[name] {
			return fmt.Sprintf("__nf(%s)", callText)
		}
		return callText
	default:
		panic("luaemit: unhandled call kind")
	}
}

func binOpToken(op ir.BinOp) string {
	switch op {
	case ir.Add:
		return "+"
	case ir.Sub:
		return "-"
	case ir.Mul:
		return "*"
	case ir.Div:
		return "/"
	case ir.Mod:
		return "%"
	default:
		panic("luaemit: unknown binop")
	}
}

func compareOpToken(op ir.CompareOp) string {
	switch op {
	case ir.Eq:
		return "eq"
	case ir.Ne:
		return "ne"
	case ir.Lt:
		return "lt"
	case ir.Le:
		return "le"
	case ir.Gt:
		return "gt"
	case ir.Ge:
		return "ge"
	default:
		panic("luaemit: unknown compare op")
	}
}

func luaLit(v rval.Value) string {
	switch v.Kind {
	case rval.KNull:
		return "cjson.null"
	case rval.KStr:
		return luaQuote(v.Str)
	case rval.KInt:
		return strconv.FormatInt(v.Int, 10)
	case rval.KFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case rval.KBool:
		if v.Bool {
			return "true"
		}
		return "false"
	default:
		// Script builders never construct List/Map literals directly
		// (§4.1) — only Redis calls and HGETALL-shaped results produce
		// them, and those never round-trip through Lit.
		return "cjson.null"
	}
}

func luaQuote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
