package pyemit

import (
	"fmt"
	"strings"

	"github.com/trevadelman/fantom/internal/fir"
	"github.com/trevadelman/fantom/internal/pyrt"
	"github.com/trevadelman/fantom/internal/pysig"
)

// closureRef renders a closure expression in value position. Multi-statement
// closures were registered by the statement pre-pass and def-emitted before
// the first statement that mentions them, so here they reduce to a name.
// Everything else becomes an inline lambda wrapped by Func.make_closure.
func (p *printer) closureRef(c *fir.ClosureExpr) string {
	if id, ok := p.st.registeredClosures[c]; ok {
		return closureName(id)
	}
	return fmt.Sprintf("%s(%s, (lambda %s: %s))",
		p.im.helperRef(pyrt.FnMakeClosure),
		p.closureSpec(c),
		p.lambdaParams(c),
		p.inlineBody(c))
}

func closureName(id int) string {
	return fmt.Sprintf("_closure_%d", id)
}

// closureSpec renders the spec dict passed to Func.make_closure. Type
// references are signature strings, never evaluated objects.
func (p *printer) closureSpec(c *fir.ClosureExpr) string {
	returns := pysig.ObjNullableSig
	if c.Signature != nil && c.Signature.FuncReturn != nil {
		returns = p.sigOf(c.Signature.FuncReturn)
	}

	params := p.closureParamDefs(c)
	var sb strings.Builder
	fmt.Fprintf(&sb, `{"returns":%s,"immutable":%s,"params":[`, pyStr(returns), pyStr(c.Immutability()))
	for i, prm := range params {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, `{"name":%s,"type":%s}`, pyStr(prm.name), pyStr(prm.sig))
	}
	sb.WriteString("]}")
	return sb.String()
}

type closureParam struct {
	name string
	sig  string
}

// closureParamDefs returns the effective parameter list: the declared
// parameters truncated to the signature's count (parameters beyond what the
// signature expects are dropped).
func (p *printer) closureParamDefs(c *fir.ClosureExpr) []closureParam {
	n := len(c.Params)
	if c.Signature != nil && len(c.Signature.FuncParams) < n {
		n = len(c.Signature.FuncParams)
	}
	out := make([]closureParam, 0, n)
	for i := 0; i < n; i++ {
		prm := c.Params[i]
		sig := pysig.ObjNullableSig
		if prm.Type != nil {
			sig = p.sigOf(prm.Type)
		}
		out = append(out, closureParam{name: PyName(prm.Name), sig: sig})
	}
	return out
}

// lambdaParams renders the lambda parameter list. A zero-parameter closure
// still takes a throwaway `_=None` so the runtime can invoke uniformly; a
// closure that captures the outer this binds it as a defaulted parameter.
func (p *printer) lambdaParams(c *fir.ClosureExpr) string {
	defs := p.closureParamDefs(c)
	parts := make([]string, 0, len(defs)+1)
	for _, d := range defs {
		parts = append(parts, d.name+"=None")
	}
	if len(parts) == 0 {
		parts = append(parts, "_=None")
	}
	if p.capturesThis(c) {
		parts = append(parts, "_outer="+p.thisRef())
	}
	return strings.Join(parts, ", ")
}

// inlineBody renders a single-expression closure body. The pre-pass already
// diverted anything with real statements into an extracted def.
func (p *printer) inlineBody(c *fir.ClosureExpr) string {
	savedOuter := p.st.inClosureWithOuter
	savedWrapped := p.st.inWrappedClosure
	if p.capturesThis(c) {
		p.st.inClosureWithOuter = true
	}
	defer func() {
		p.st.inClosureWithOuter = savedOuter
		p.st.inWrappedClosure = savedWrapped
	}()

	for _, s := range c.Body.Stmts {
		switch s.Kind {
		case fir.Nop:
			continue
		case fir.Return:
			if s.Expr == nil {
				return "None"
			}
			return p.expr(s.Expr)
		case fir.ExprStmt:
			return p.expr(s.Expr)
		}
	}
	return "None"
}

// capturesThis reports whether the closure body references the enclosing
// instance. The front-end's captured-field list is authoritative; the body
// scan covers nodes the list misses.
func (p *printer) capturesThis(c *fir.ClosureExpr) bool {
	for _, f := range c.CapturedFields {
		if f == "this" || f == "$this" {
			return true
		}
	}
	return blockUsesThis(c.Body)
}

func blockUsesThis(b *fir.Block) bool {
	found := false
	walkBlock(b, func(e *fir.Expr) bool {
		switch {
		case e.Kind == fir.ThisExpr:
			found = true
		case e.Kind == fir.LocalVar && e.Str == "$this":
			found = true
		case e.Kind == fir.FieldAccess && e.Target == nil && !e.Field.IsStatic:
			found = true
		case e.Kind == fir.Call && e.Target == nil && !e.Method.IsStatic && !e.Method.IsDynamic:
			found = true
		}
		return !found
	})
	return found
}

// emitClosureDef writes the def and Func.make_closure wrapping for one
// extracted multi-statement closure at the current indent.
func (p *printer) emitClosureDef(c *fir.ClosureExpr, id int) {
	name := closureName(id)

	defs := p.closureParamDefs(c)
	parts := make([]string, 0, len(defs)+1)
	for _, d := range defs {
		parts = append(parts, d.name+"=None")
	}
	captures := p.capturesThis(c) && !p.st.inStaticContext
	if captures {
		parts = append(parts, "_self="+p.thisRef())
	}

	p.e.line("def %s(%s):", name, strings.Join(parts, ", "))

	savedWrapped := p.st.inWrappedClosure
	savedOuter := p.st.inClosureWithOuter
	p.st.inWrappedClosure = true
	p.st.inClosureWithOuter = false
	p.st.closureDepth++

	p.e.indented(func() {
		p.emitScopedBlock(c.Body)
	})

	p.st.closureDepth--
	p.st.inWrappedClosure = savedWrapped
	p.st.inClosureWithOuter = savedOuter

	p.e.line("%s = %s(%s, %s)", name, p.im.helperRef(pyrt.FnMakeClosure), p.closureSpec(c), name)
}
