package pyemit

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/trevadelman/fantom/errors"
	"github.com/trevadelman/fantom/internal/fir"
	"github.com/trevadelman/fantom/internal/pyrt"
)

// PrintType writes the complete Python file for one type definition. The
// class body is rendered first into a buffer so the import header can be
// computed from what the body actually referenced.
func PrintType(w io.Writer, pod *fir.Pod, t *fir.TypeDef) error {
	p := &printer{
		pod: pod,
		t:   t,
		im:  newImports(pod.Name, t.Name),
	}
	p.registerDirectImports()

	var body bytes.Buffer
	p.e = &emitter{w: &body}
	p.classBody()
	p.reflection()
	if p.e.err != nil {
		return errors.Wrapf(p.e.err, "emitting %s", t.Qname)
	}

	head := &emitter{w: w}
	p.im.write(head)
	if head.err != nil {
		return errors.Wrapf(head.err, "emitting %s", t.Qname)
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		return errors.Wrapf(err, "emitting %s", t.Qname)
	}
	return nil
}

// PrintReflection writes only the reflection-registration block, used when a
// hand-written native file is the authoritative class body.
func PrintReflection(w io.Writer, pod *fir.Pod, t *fir.TypeDef) error {
	p := &printer{
		pod: pod,
		t:   t,
		im:  newImports(pod.Name, t.Name),
	}
	var body bytes.Buffer
	p.e = &emitter{w: &body}
	p.reflection()
	if p.e.err != nil {
		return errors.Wrapf(p.e.err, "emitting reflection for %s", t.Qname)
	}

	head := &emitter{w: w}
	head.blank()
	p.im.writeMinimal(head)
	if head.err != nil {
		return errors.Wrapf(head.err, "emitting reflection for %s", t.Qname)
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		return errors.Wrapf(err, "emitting reflection for %s", t.Qname)
	}
	return nil
}

// registerDirectImports pre-registers the types Python needs bound in local
// scope: the root Obj and ObjUtil, the base class, mixins, and every
// exception type named by a catch clause anywhere in the type.
func (p *printer) registerDirectImports() {
	p.im.addDirect("sys", "Obj")
	p.im.addDirect("sys", "ObjUtil")
	if p.t.Base != nil {
		p.im.addDirect(p.t.Base.Pod, p.t.Base.Name)
	}
	for _, m := range p.t.Mixins {
		p.im.addDirect(m.Pod, m.Name)
	}
	for _, m := range p.t.Methods {
		collectCatchBlock(m.Body, p.im)
	}
}

func collectCatchTypes(s *fir.Stmt, im *imports) {
	if s == nil {
		return
	}
	for _, c := range s.Catches {
		if c.ErrType != nil {
			im.addDirect(c.ErrType.Pod, c.ErrType.Name)
		}
		collectCatchBlock(c.Body, im)
	}
	if s.ForInit != nil {
		collectCatchTypes(s.ForInit, im)
	}
	for _, b := range []*fir.Block{s.Then, s.Else, s.Body, s.Finally, s.Default} {
		collectCatchBlock(b, im)
	}
	for _, c := range s.Cases {
		collectCatchBlock(c.Body, im)
	}
}

func collectCatchBlock(b *fir.Block, im *imports) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		collectCatchTypes(s, im)
	}
}

// ----------------------------------------------------------------------------
// Class body

func (p *printer) classBody() {
	t := p.t

	bases := []string{"Obj"}
	if t.Base != nil {
		bases = []string{t.Base.Name}
	}
	for _, m := range t.Mixins {
		bases = append(bases, m.Name)
	}
	p.e.line("class %s(%s):", t.Name, strings.Join(bases, ", "))

	p.e.indented(func() {
		start := p.e.lines

		p.staticDecls()
		p.initMethod()
		for _, m := range t.Methods {
			if m.IsCtor {
				p.ctor(m)
			}
		}
		for _, f := range t.Fields {
			p.accessor(f)
		}
		for _, m := range t.Methods {
			if !m.IsCtor {
				p.method(m)
			}
		}
		if t.IsEnum {
			p.enumSupport()
		}
		p.staticInit()

		if p.e.lines == start {
			p.e.line("pass")
		}
	})
	p.e.blank()
}

// staticDecls declares class-level storage: every static field starts as None
// and is filled lazily by _static_init.
func (p *printer) staticDecls() {
	any := false
	for _, f := range p.t.Fields {
		if f.IsStatic {
			p.e.line("%s = None", storageName(f.Name))
			any = true
		}
	}
	if p.t.IsEnum {
		p.e.line("%s = None", pyrt.EnumValsField)
		any = true
	}
	if any {
		p.e.line("_static_inited = False")
		p.e.line("%s = False", pyrt.StaticInitGuard)
		p.e.blank()
	}
}

// initMethod emits __init__, setting every instance field to its declared
// initializer. Generated code never calls __init__ directly; the constructor
// factories do.
func (p *printer) initMethod() {
	var instance []*fir.FieldDef
	for _, f := range p.t.Fields {
		if !f.IsStatic {
			instance = append(instance, f)
		}
	}

	p.e.line("def __init__(self):")
	p.e.indented(func() {
		if p.t.Base != nil || len(p.t.Mixins) > 0 {
			p.e.line("super().__init__()")
		}
		if len(instance) == 0 && p.t.Base == nil && len(p.t.Mixins) == 0 {
			p.e.line("pass")
			return
		}
		for _, f := range instance {
			p.st = newState(nil)
			init := "None"
			if f.Init != nil {
				init = p.expr(f.Init)
			}
			p.e.line("self.%s = %s", storageName(f.Name), init)
		}
	})
	p.e.blank()
}

// ctor emits the class-level factory and the per-constructor body method.
// The factory owns allocation; the body method runs the constructor
// statements with self bound.
func (p *printer) ctor(m *fir.MethodDef) {
	factory := "make"
	if m.Name != "" && m.Name != "make" {
		factory = PyName(m.Name)
	}
	bodyName := "_" + factory
	params := p.paramList(m)

	p.e.line("@staticmethod")
	p.e.line("def %s(%s):", factory, params)
	p.e.indented(func() {
		p.e.line("_obj_ = %s()", p.t.Name)
		p.e.line("_obj_.%s(%s)", bodyName, paramNames(m))
		p.e.line("return _obj_")
	})
	p.e.blank()

	p.st = newState(m)
	p.st.inStaticContext = false
	p.e.line("def %s(self%s):", bodyName, prefixComma(params))
	p.e.indented(func() {
		p.paramDefaults(m)
		p.emitScopedBlock(m.Body)
	})
	p.e.blank()
}

// accessor emits the field accessor per visibility: get+set, get only, or
// nothing for fully private fields (those are reached as raw storage).
func (p *printer) accessor(f *fir.FieldDef) {
	if f.IsPrivate || f.IsSynthetic {
		return
	}
	name := PyName(f.Name)
	slot := storageName(f.Name)
	readOnly := f.IsConst && !f.HasExplicitSetter

	if f.IsStatic {
		p.e.line("@staticmethod")
		if readOnly {
			p.e.line("def %s():", name)
		} else {
			p.e.line("def %s(_val_=None):", name)
		}
		p.e.indented(func() {
			p.e.line("%s.%s()", p.t.Name, pyrt.StaticInitFunc)
			if readOnly {
				p.e.line("return %s.%s", p.t.Name, slot)
				return
			}
			p.e.line("if _val_ is None:")
			p.e.indented(func() { p.e.line("return %s.%s", p.t.Name, slot) })
			p.e.line("%s.%s = _val_", p.t.Name, slot)
		})
		p.e.blank()
		return
	}

	if readOnly {
		p.e.line("def %s(self):", name)
		p.e.indented(func() { p.e.line("return self.%s", slot) })
		p.e.blank()
		return
	}

	p.e.line("def %s(self, _val_=None):", name)
	p.e.indented(func() {
		p.e.line("if _val_ is None:")
		p.e.indented(func() { p.e.line("return self.%s", slot) })
		p.e.line("self.%s = _val_", slot)
	})
	p.e.blank()
}

// method emits one non-constructor method.
func (p *printer) method(m *fir.MethodDef) {
	p.st = newState(m)
	name := PyName(m.Name)
	params := p.paramList(m)

	if m.IsStatic {
		p.e.line("@staticmethod")
		p.e.line("def %s(%s):", name, params)
	} else {
		p.e.line("def %s(self%s):", name, prefixComma(params))
	}
	p.e.indented(func() {
		p.paramDefaults(m)
		p.emitScopedBlock(m.Body)
	})
	p.e.blank()
}

// paramList renders the def parameter list: every parameter defaults to None
// so callers can omit trailing arguments; declared defaults are applied by
// paramDefaults in the body.
func (p *printer) paramList(m *fir.MethodDef) string {
	parts := make([]string, len(m.Params))
	for i, prm := range m.Params {
		parts[i] = PyName(prm.Name) + "=None"
	}
	return strings.Join(parts, ", ")
}

func paramNames(m *fir.MethodDef) string {
	parts := make([]string, len(m.Params))
	for i, prm := range m.Params {
		parts[i] = PyName(prm.Name)
	}
	return strings.Join(parts, ", ")
}

func prefixComma(s string) string {
	if s == "" {
		return ""
	}
	return ", " + s
}

// paramDefaults materializes declared default expressions: a parameter left
// at None takes its default on entry.
func (p *printer) paramDefaults(m *fir.MethodDef) {
	for _, prm := range m.Params {
		if !prm.HasDefault || prm.Default == nil {
			continue
		}
		name := PyName(prm.Name)
		p.e.line("if %s is None:", name)
		p.e.indented(func() { p.e.line("%s = %s", name, p.expr(prm.Default)) })
	}
}

// ----------------------------------------------------------------------------
// Enums

// enumConstants returns the static fields holding the enum's instances, in
// declaration order (which is ordinal order).
func (p *printer) enumConstants() []*fir.FieldDef {
	var out []*fir.FieldDef
	for _, f := range p.t.Fields {
		if f.IsStatic && f.Type != nil && f.Type.Qname() == p.t.Qname {
			out = append(out, f)
		}
	}
	return out
}

func (p *printer) enumSupport() {
	t := p.t
	consts := p.enumConstants()

	p.e.line("@staticmethod")
	p.e.line("def _make_enum(ordinal, name):")
	p.e.indented(func() {
		p.e.line("_obj_ = object.__new__(%s)", t.Name)
		p.e.line("_obj_.%s = ordinal", pyrt.EnumOrdinal)
		p.e.line("_obj_.%s = name", pyrt.EnumName)
		p.e.line("return _obj_")
	})
	p.e.blank()

	p.e.line("@staticmethod")
	p.e.line("def vals():")
	p.e.indented(func() {
		p.e.line("if %s.%s is None:", t.Name, pyrt.EnumValsField)
		p.e.indented(func() {
			p.e.line("%s.%s()", t.Name, pyrt.StaticInitFunc)
			refs := make([]string, len(consts))
			for i, f := range consts {
				refs[i] = t.Name + "." + storageName(f.Name)
			}
			p.e.line("%s.%s = %s([%s], %s)",
				t.Name, pyrt.EnumValsField,
				p.im.helperRef(pyrt.FnListFromLiteral),
				strings.Join(refs, ", "),
				pyStr(t.Qname))
		})
		p.e.line("return %s.%s", t.Name, pyrt.EnumValsField)
	})
	p.e.blank()

	p.e.line("@staticmethod")
	p.e.line("def from_str(s, checked=True):")
	p.e.indented(func() {
		p.e.line("for _v in %s.vals():", t.Name)
		p.e.indented(func() {
			p.e.line("if _v.%s == s:", pyrt.EnumName)
			p.e.indented(func() { p.e.line("return _v") })
		})
		p.e.line("if checked:")
		p.e.indented(func() {
			p.e.line("raise %s.make(%s + s)", p.im.classRef("sys", "ParseErr"), pyStr(t.Qname+": "))
		})
		p.e.line("return None")
	})
	p.e.blank()

	p.e.line("def ordinal(self):")
	p.e.indented(func() { p.e.line("return self.%s", pyrt.EnumOrdinal) })
	p.e.blank()

	p.e.line("def name(self):")
	p.e.indented(func() { p.e.line("return self.%s", pyrt.EnumName) })
	p.e.blank()
}

// ----------------------------------------------------------------------------
// Static initialization

// staticInit emits the lazy, re-entrancy-safe one-shot initializer for
// static fields. Enum constants are created here with their ordinal and
// name; other statics run their declared initializers.
func (p *printer) staticInit() {
	var statics []*fir.FieldDef
	for _, f := range p.t.Fields {
		if f.IsStatic {
			statics = append(statics, f)
		}
	}
	if len(statics) == 0 && !p.t.IsEnum {
		return
	}

	t := p.t
	consts := map[string]int{}
	if t.IsEnum {
		for i, f := range p.enumConstants() {
			consts[f.Name] = i
		}
	}

	p.e.line("@staticmethod")
	p.e.line("def %s():", pyrt.StaticInitFunc)
	p.e.indented(func() {
		p.e.line("if %s._static_inited or %s.%s:", t.Name, t.Name, pyrt.StaticInitGuard)
		p.e.indented(func() { p.e.line("return") })
		p.e.line("%s.%s = True", t.Name, pyrt.StaticInitGuard)
		p.e.line("try:")
		p.e.indented(func() {
			for _, f := range statics {
				if ord, ok := consts[f.Name]; ok {
					p.e.line("%s.%s = %s._make_enum(%d, %s)",
						t.Name, storageName(f.Name), t.Name, ord, pyStr(f.Name))
					continue
				}
				p.st = newState(nil)
				p.st.inStaticContext = true
				init := "None"
				if f.Init != nil {
					init = p.expr(f.Init)
				}
				p.e.line("%s.%s = %s", t.Name, storageName(f.Name), init)
			}
			p.e.line("%s._static_inited = True", t.Name)
		})
		p.e.line("finally:")
		p.e.indented(func() { p.e.line("%s.%s = False", t.Name, pyrt.StaticInitGuard) })
	})
	p.e.blank()
}

// ----------------------------------------------------------------------------
// Reflection registration

// reflection emits the module-level registration block. Every type reference
// is a literal signature string, never an evaluated object: registration must
// not trigger imports.
func (p *printer) reflection() {
	t := p.t
	p.e.line("_t = %s(%s)", p.im.helperRef(pyrt.FnTypeFind), pyStr(t.Qname))

	for _, f := range t.Fields {
		if f.IsSynthetic {
			continue
		}
		sig := p.sigOf(f.Type)
		if f.HasExplicitSetter {
			p.e.line("_t.%s(%s, %d, %s, %s, %d)",
				pyrt.MethodAddField, pyStr(f.Name), f.Flags, pyStr(sig), facetText(f.Facets), f.SetterFlags)
			continue
		}
		p.e.line("_t.%s(%s, %d, %s, %s)",
			pyrt.MethodAddField, pyStr(f.Name), f.Flags, pyStr(sig), facetText(f.Facets))
	}

	for _, m := range t.Methods {
		if m.IsSynthetic {
			continue
		}
		retSig := "sys::Void"
		if m.Returns != nil {
			retSig = p.sigOf(m.Returns)
		}
		params := make([]string, len(m.Params))
		for i, prm := range m.Params {
			hasDef := "False"
			if prm.HasDefault {
				hasDef = "True"
			}
			params[i] = fmt.Sprintf("%s(%s, %s, %s)",
				p.im.classRef("sys", pyrt.ClassParam), pyStr(prm.Name), pyStr(p.sigOf(prm.Type)), hasDef)
		}
		p.e.line("_t.%s(%s, %d, %s, [%s], %s)",
			pyrt.MethodAddMethod, pyStr(m.Name), m.Flags, pyStr(retSig),
			strings.Join(params, ", "), facetText(m.Facets))
	}
}

// facetText renders a facet map as a dict of literal strings, or None.
func facetText(facets map[string]string) string {
	if len(facets) == 0 {
		return "None"
	}
	keys := make([]string, 0, len(facets))
	for k := range facets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(pyStr(k))
		sb.WriteString(": ")
		sb.WriteString(pyStr(facets[k]))
	}
	sb.WriteByte('}')
	return sb.String()
}
