package pyemit

import (
	"strconv"
	"strings"

	"github.com/trevadelman/fantom/internal/fir"
	"github.com/trevadelman/fantom/logger"
)

// ----------------------------------------------------------------------------
// Closure pre-pass
//
// Before a block is emitted, every multi-statement closure reachable from it
// (without crossing into another multi-statement closure's body) is assigned
// an id and the index of the first statement that mentions it. The emission
// driver writes each def immediately before that statement, so a reference
// never precedes its def.

// isMultiStmt reports whether a closure needs extraction into a def: Python
// lambdas cannot hold statements.
func isMultiStmt(c *fir.ClosureExpr) bool {
	real := 0
	for _, s := range c.Body.Stmts {
		switch s.Kind {
		case fir.Nop:
			continue
		case fir.Return:
			if s.Expr == nil {
				continue // synthetic empty return
			}
		case fir.LocalDef:
			return true
		case fir.If, fir.Switch, fir.For, fir.While, fir.Try:
			return true
		case fir.ExprStmt:
			if s.Expr != nil && s.Expr.Kind == fir.Assign {
				return true
			}
		}
		real++
	}
	return real > 1
}

// scanBlock registers the multi-statement closures of one scope.
func (p *printer) scanBlock(b *fir.Block) {
	if b == nil {
		return
	}
	for i, s := range b.Stmts {
		p.scanStmt(s, i)
	}
}

func (p *printer) scanStmt(s *fir.Stmt, topIndex int) {
	if s == nil {
		return
	}
	for _, e := range []*fir.Expr{s.Expr, s.Init, s.Cond, s.Update} {
		p.scanExpr(e, topIndex)
	}
	if s.ForInit != nil {
		p.scanStmt(s.ForInit, topIndex)
	}
	for _, b := range []*fir.Block{s.Then, s.Else, s.Body, s.Finally, s.Default} {
		p.scanNested(b, topIndex)
	}
	for _, c := range s.Catches {
		p.scanNested(c.Body, topIndex)
	}
	for _, c := range s.Cases {
		for _, m := range c.Matches {
			p.scanExpr(m, topIndex)
		}
		p.scanNested(c.Body, topIndex)
	}
}

// scanNested walks a block nested inside the statement at topIndex; closures
// found there still def-emit before that top-level statement.
func (p *printer) scanNested(b *fir.Block, topIndex int) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		p.scanStmt(s, topIndex)
	}
}

func (p *printer) scanExpr(e *fir.Expr, topIndex int) {
	if e == nil {
		return
	}
	if e.Kind == fir.ClosureKind {
		c := e.Closure
		if isMultiStmt(c) {
			if _, ok := p.st.registeredClosures[c]; !ok {
				id := p.st.nextClosureID()
				p.st.registeredClosures[c] = id
				p.st.firstUse[id] = topIndex
				p.st.pending = append(p.st.pending, c)
			}
			// Its body is a separate scope, scanned when the def is emitted.
			return
		}
		// Inline closure bodies stay in this scope.
		p.scanNested(c.Body, topIndex)
		return
	}
	for _, sub := range []*fir.Expr{
		e.Target, e.Lhs, e.Rhs, e.Cond, e.IfTrue, e.IfFalse, e.Start, e.End,
	} {
		p.scanExpr(sub, topIndex)
	}
	for _, list := range [][]*fir.Expr{e.Args, e.Elems, e.Keys, e.Vals} {
		for _, sub := range list {
			p.scanExpr(sub, topIndex)
		}
	}
}

// walkBlock applies fn to every expression under b, descending into closure
// bodies. fn returns false to stop the walk.
func walkBlock(b *fir.Block, fn func(*fir.Expr) bool) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		if !walkStmt(s, fn) {
			return
		}
	}
}

func walkStmt(s *fir.Stmt, fn func(*fir.Expr) bool) bool {
	if s == nil {
		return true
	}
	for _, e := range []*fir.Expr{s.Expr, s.Init, s.Cond, s.Update} {
		if !walkExpr(e, fn) {
			return false
		}
	}
	if s.ForInit != nil && !walkStmt(s.ForInit, fn) {
		return false
	}
	blocks := []*fir.Block{s.Then, s.Else, s.Body, s.Finally, s.Default}
	for _, c := range s.Catches {
		blocks = append(blocks, c.Body)
	}
	for _, c := range s.Cases {
		for _, m := range c.Matches {
			if !walkExpr(m, fn) {
				return false
			}
		}
		blocks = append(blocks, c.Body)
	}
	for _, b := range blocks {
		if b == nil {
			continue
		}
		for _, sub := range b.Stmts {
			if !walkStmt(sub, fn) {
				return false
			}
		}
	}
	return true
}

func walkExpr(e *fir.Expr, fn func(*fir.Expr) bool) bool {
	if e == nil {
		return true
	}
	if !fn(e) {
		return false
	}
	if e.Kind == fir.ClosureKind {
		ok := true
		walkBlock(e.Closure.Body, func(sub *fir.Expr) bool {
			ok = fn(sub)
			return ok
		})
		return ok
	}
	for _, sub := range []*fir.Expr{
		e.Target, e.Lhs, e.Rhs, e.Cond, e.IfTrue, e.IfFalse, e.Start, e.End,
	} {
		if !walkExpr(sub, fn) {
			return false
		}
	}
	for _, list := range [][]*fir.Expr{e.Args, e.Elems, e.Keys, e.Vals} {
		for _, sub := range list {
			if !walkExpr(sub, fn) {
				return false
			}
		}
	}
	return true
}

// ----------------------------------------------------------------------------
// Emission driver

// emitScopedBlock emits a method or extracted-closure body: it opens a fresh
// closure scope, runs the pre-pass, then interleaves pending closure defs
// with statements. An empty result collapses to pass.
func (p *printer) emitScopedBlock(b *fir.Block) {
	savedPending, savedFirst, savedIndex := p.st.pending, p.st.firstUse, p.st.stmtIndex
	p.st.pending, p.st.firstUse = nil, map[int]int{}

	p.scanBlock(b)

	start := p.e.lines
	if b != nil {
		for i, s := range b.Stmts {
			p.st.stmtIndex = i
			p.emitPending(i)
			p.stmt(s, "")
		}
	}
	// Closures mentioned only by trailing synthetic statements.
	p.emitPending(-1)
	if p.e.lines == start {
		p.e.line("pass")
	}

	p.st.pending, p.st.firstUse, p.st.stmtIndex = savedPending, savedFirst, savedIndex
}

// emitPending writes the defs of registered closures first used at statement
// index i. i < 0 flushes everything still pending.
func (p *printer) emitPending(i int) {
	var remaining []*fir.ClosureExpr
	for _, c := range p.st.pending {
		id := p.st.registeredClosures[c]
		if i < 0 || p.st.firstUse[id] == i {
			p.emitClosureDef(c, id)
		} else {
			remaining = append(remaining, c)
		}
	}
	p.st.pending = remaining
}

// emitBlock emits a nested (non-scope) block: if arms, loop bodies, catch
// bodies. suppress names a local whose localDef statements are dropped (the
// catch variable Python already bound via `as`).
func (p *printer) emitBlock(b *fir.Block, suppress string) {
	start := p.e.lines
	if b != nil {
		for _, s := range b.Stmts {
			p.stmt(s, suppress)
		}
	}
	if p.e.lines == start {
		p.e.line("pass")
	}
}

// stmt emits one statement.
func (p *printer) stmt(s *fir.Stmt, suppress string) {
	switch s.Kind {
	case fir.Nop:
		return

	case fir.ExprStmt:
		p.e.line("%s", p.exprStmt(s.Expr))

	case fir.LocalDef:
		p.localDef(s, suppress)

	case fir.If:
		p.e.line("if %s:", p.expr(s.Cond))
		p.e.indented(func() { p.emitBlock(s.Then, suppress) })
		if s.Else != nil {
			p.e.line("else:")
			p.e.indented(func() { p.emitBlock(s.Else, suppress) })
		}

	case fir.Return:
		p.returnStmt(s)

	case fir.Throw:
		p.e.line("raise %s", p.expr(s.Expr))

	case fir.For:
		p.forStmt(s, suppress)

	case fir.While:
		p.st.pushLoop(nil)
		p.e.line("while %s:", p.expr(s.Cond))
		p.e.indented(func() { p.emitBlock(s.Body, suppress) })
		p.st.popLoop()

	case fir.Break:
		p.e.line("break")

	case fir.Continue:
		// A lowered for-loop's update runs before the jump; otherwise the
		// update at the end of the body would be skipped.
		if update := p.st.loopUpdate(); update != nil {
			p.e.line("%s", p.exprStmt(update))
		}
		p.e.line("continue")

	case fir.Try:
		p.tryStmt(s, suppress)

	case fir.Switch:
		p.switchStmt(s, suppress)

	default:
		logger.Get().Debugw("unsupported statement kind",
			logger.FieldPod, p.pod.Name,
			logger.FieldType, p.t.Name,
			logger.FieldKind, string(s.Kind))
		p.e.line("# TODO unsupported statement %s", s.Kind)
	}
}

// localName is the defined name of a local: synthetic capture suffixes are
// stripped (Python captures the enclosing scope by name).
func localName(name string) string {
	if i := strings.IndexByte(name, '$'); i > 0 && allDigits(name[i+1:]) {
		name = name[:i]
	}
	return PyName(name)
}

func (p *printer) localDef(s *fir.Stmt, suppress string) {
	if suppress != "" && s.Name == suppress {
		return // catch variable, bound by `except ... as`
	}

	// Self-referential captured-variable assignment name$N = name$N carries
	// no meaning in Python and is dropped.
	if s.Init != nil && s.Init.Kind == fir.LocalVar && s.Init.Str == s.Name {
		return
	}

	name := localName(s.Name)

	// A local initialized from the cvar-wrapper construction shape maps the
	// original local to its wrapper for closure bodies emitted later.
	if arg := cvarArg(p.t, s.Init); arg != "" {
		p.st.paramWrappers[arg] = name
	}

	if s.Init == nil {
		p.e.line("%s = None", name)
		return
	}
	p.e.line("%s = %s", name, p.expr(s.Init))
}

// cvarArg returns the wrapped local's name when init has the captured-
// variable wrapper shape this.make(x), else "".
func cvarArg(t *fir.TypeDef, init *fir.Expr) string {
	if init == nil || init.Kind != fir.Construction || init.Method == nil {
		return ""
	}
	m := init.Method
	if m.Parent != t.Qname || m.Name != "make" || len(init.Args) != 1 {
		return ""
	}
	if init.Target != nil && init.Target.Kind != fir.ThisExpr {
		return ""
	}
	if arg := init.Args[0]; arg.Kind == fir.LocalVar {
		return arg.Str
	}
	return ""
}

func (p *printer) returnStmt(s *fir.Stmt) {
	if s.Expr == nil {
		p.e.line("return")
		return
	}
	// Assignment-valued returns emit the assignment first so the RHS is not
	// re-evaluated, then return the stored location.
	if s.Expr.Kind == fir.Assign {
		p.e.line("%s", p.exprStmt(s.Expr))
		p.e.line("return %s", p.readBack(s.Expr.Lhs))
		return
	}
	p.e.line("return %s", p.expr(s.Expr))
}

// readBack renders a read of an assignment's target.
func (p *printer) readBack(lhs *fir.Expr) string {
	switch lhs.Kind {
	case fir.LocalVar:
		return p.localVar(lhs.Str)
	case fir.FieldAccess:
		return p.fieldAccess(lhs, true)
	case fir.Shortcut:
		if lhs.Op == "[]" {
			return p.indexGet(lhs)
		}
	}
	return "None"
}

func (p *printer) forStmt(s *fir.Stmt, suppress string) {
	if s.ForInit != nil {
		p.stmt(s.ForInit, suppress)
	}
	cond := "True"
	if s.Cond != nil {
		cond = p.expr(s.Cond)
	}
	p.st.pushLoop(s.Update)
	p.e.line("while %s:", cond)
	p.e.indented(func() {
		start := p.e.lines
		if s.Body != nil {
			for _, sub := range s.Body.Stmts {
				p.stmt(sub, suppress)
			}
		}
		if s.Update != nil {
			p.e.line("%s", p.exprStmt(s.Update))
		}
		if p.e.lines == start {
			p.e.line("pass")
		}
	})
	p.st.popLoop()
}

func (p *printer) tryStmt(s *fir.Stmt, suppress string) {
	p.e.line("try:")
	p.e.indented(func() { p.emitBlock(s.Body, suppress) })
	for _, c := range s.Catches {
		if c.ErrType != nil {
			// Python needs the exception class bound in local scope.
			p.im.addDirect(c.ErrType.Pod, c.ErrType.Name)
		}
		switch {
		case c.ErrType == nil && c.Var == "":
			p.e.line("except:")
		case c.ErrType == nil:
			p.e.line("except Exception as %s:", PyName(c.Var))
		case c.Var == "":
			p.e.line("except %s:", p.im.classRef(c.ErrType.Pod, c.ErrType.Name))
		default:
			p.e.line("except %s as %s:", p.im.classRef(c.ErrType.Pod, c.ErrType.Name), PyName(c.Var))
		}
		p.e.indented(func() { p.emitBlock(c.Body, c.Var) })
	}
	if s.Finally != nil {
		p.e.line("finally:")
		p.e.indented(func() { p.emitBlock(s.Finally, suppress) })
	}
}

// switchStmt caches the condition into a fresh variable so it evaluates
// exactly once, then chains if/elif/else over the case literals.
func (p *printer) switchStmt(s *fir.Stmt, suppress string) {
	v := p.st.nextSwitchVar()
	name := switchVarName(v)
	p.e.line("%s = %s", name, p.expr(s.Cond))

	kw := "if"
	for _, c := range s.Cases {
		tests := make([]string, len(c.Matches))
		for i, m := range c.Matches {
			tests[i] = "(" + name + " == " + p.expr(m) + ")"
		}
		p.e.line("%s %s:", kw, strings.Join(tests, " or "))
		p.e.indented(func() { p.emitBlock(c.Body, suppress) })
		kw = "elif"
	}
	if s.Default != nil {
		if kw == "if" {
			// Degenerate switch with only a default arm.
			p.emitBlock(s.Default, suppress)
			return
		}
		p.e.line("else:")
		p.e.indented(func() { p.emitBlock(s.Default, suppress) })
	}
}

func switchVarName(id int) string {
	return "_switch_" + strconv.Itoa(id)
}
