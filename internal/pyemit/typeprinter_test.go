package pyemit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/trevadelman/fantom/internal/fir"
)

func printType(t *testing.T, pod *fir.Pod, td *fir.TypeDef) string {
	t.Helper()
	var buf bytes.Buffer
	if err := PrintType(&buf, pod, td); err != nil {
		t.Fatalf("PrintType: %v", err)
	}
	return buf.String()
}

func TestFileSkeleton(t *testing.T) {
	pod := &fir.Pod{Name: "acme"}
	td := &fir.TypeDef{Qname: "acme::Widget", Pod: "acme", Name: "Widget"}
	out := printType(t, pod, td)

	for _, want := range []string{
		"import sys as sys_module",
		"sys_module.path.insert(0, '.')",
		"from typing import Optional, Callable, List as TypingList, Dict as TypingDict",
		"from fan.sys.Obj import Obj",
		"from fan.sys.ObjUtil import ObjUtil",
		"class Widget(Obj):",
		"def __init__(self):",
		`_t = sys.Type.find("acme::Widget")`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestBaseAndMixinImports(t *testing.T) {
	pod := &fir.Pod{Name: "acme"}
	td := &fir.TypeDef{
		Qname: "acme::Gadget", Pod: "acme", Name: "Gadget",
		Base:   &fir.TypeRef{Pod: "acme", Name: "Widget"},
		Mixins: []*fir.TypeRef{{Pod: "util", Name: "Tunable"}},
	}
	out := printType(t, pod, td)

	for _, want := range []string{
		"from fan.acme.Widget import Widget",
		"from fan.util.Tunable import Tunable",
		"class Gadget(Widget, Tunable):",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFieldAccessors(t *testing.T) {
	pod := &fir.Pod{Name: "acme"}
	td := &fir.TypeDef{
		Qname: "acme::Widget", Pod: "acme", Name: "Widget",
		Fields: []*fir.FieldDef{
			{Name: "size", Type: tref("sys", "Int"), Init: intLit("0")},
			{Name: "label", Type: tref("sys", "Str"), IsConst: true},
			{Name: "secret", Type: tref("sys", "Int"), IsPrivate: true},
		},
	}
	out := printType(t, pod, td)

	// get+set accessor: one callable, arity 2 with _val_=None
	if !strings.Contains(out, "def size(self, _val_=None):") {
		t.Errorf("missing get+set accessor:\n%s", out)
	}
	// const: get only, arity 1
	if !strings.Contains(out, "def label(self):") {
		t.Errorf("missing read-only accessor:\n%s", out)
	}
	if strings.Contains(out, "def label(self, _val_") {
		t.Error("read-only field must not have a setter arm")
	}
	// private: no accessor at all
	if strings.Contains(out, "def secret") {
		t.Error("private field must not have an accessor")
	}
	// storage initialized in __init__
	for _, want := range []string{"self._size = 0", "self._label = None", "self._secret = None"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing storage init %q:\n%s", want, out)
		}
	}
}

func TestConstructorFactory(t *testing.T) {
	pod := &fir.Pod{Name: "acme"}
	td := &fir.TypeDef{
		Qname: "acme::Widget", Pod: "acme", Name: "Widget",
		Methods: []*fir.MethodDef{
			{Name: "make", IsCtor: true, Params: []*fir.ParamDef{{Name: "size", Type: tref("sys", "Int")}}},
			{Name: "makeEmpty", IsCtor: true},
		},
	}
	out := printType(t, pod, td)

	for _, want := range []string{
		"def make(size=None):",
		"_obj_ = Widget()",
		"_obj_._make(size)",
		"return _obj_",
		"def make_empty():",
		"_obj_._make_empty()",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStaticInitLazyAndGuarded(t *testing.T) {
	pod := &fir.Pod{Name: "acme"}
	td := &fir.TypeDef{
		Qname: "acme::Config", Pod: "acme", Name: "Config",
		Fields: []*fir.FieldDef{
			{Name: "defSize", Type: tref("sys", "Int"), IsStatic: true, Init: intLit("8")},
		},
	}
	out := printType(t, pod, td)

	for _, want := range []string{
		"_def_size = None",
		"_static_init_in_progress = False",
		"def _static_init():",
		"if Config._static_inited or Config._static_init_in_progress:",
		"Config._static_init_in_progress = True",
		"Config._def_size = 8",
		"Config._static_inited = True",
		"finally:",
		"Config._static_init_in_progress = False",
		"def def_size(_val_=None):",
		"Config._static_init()",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestEnumEmission(t *testing.T) {
	pod := &fir.Pod{Name: "acme"}
	self := &fir.TypeRef{Pod: "acme", Name: "Color", Signature: "acme::Color"}
	td := &fir.TypeDef{
		Qname: "acme::Color", Pod: "acme", Name: "Color", IsEnum: true,
		Fields: []*fir.FieldDef{
			{Name: "red", Type: self, IsStatic: true, IsConst: true},
			{Name: "green", Type: self, IsStatic: true, IsConst: true},
		},
	}
	out := printType(t, pod, td)

	for _, want := range []string{
		"def _make_enum(ordinal, name):",
		"_obj_ = object.__new__(Color)",
		"_obj_._ordinal = ordinal",
		"_obj_._name = name",
		`Color._red = Color._make_enum(0, "red")`,
		`Color._green = Color._make_enum(1, "green")`,
		"def vals():",
		`sys.List.from_literal([Color._red, Color._green], "acme::Color")`,
		"def from_str(s, checked=True):",
		"def ordinal(self):",
		"def name(self):",
		"def red():",
		"def green():",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestReflectionRegistration(t *testing.T) {
	pod := &fir.Pod{Name: "acme"}
	td := &fir.TypeDef{
		Qname: "acme::Widget", Pod: "acme", Name: "Widget",
		Fields: []*fir.FieldDef{
			{Name: "size", Type: tref("sys", "Int"), Flags: 73728},
		},
		Methods: []*fir.MethodDef{
			{
				Name: "resize", Flags: 8192,
				Params:  []*fir.ParamDef{{Name: "n", Type: tref("sys", "Int"), HasDefault: true}},
				Returns: tref("sys", "Void"),
			},
		},
	}
	out := printType(t, pod, td)

	for _, want := range []string{
		`_t = sys.Type.find("acme::Widget")`,
		`_t.af_("size", 73728, "sys::Int", None)`,
		`_t.am_("resize", 8192, "sys::Void", [sys.Param("n", "sys::Int", True)], None)`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestReflectionSetterFlags(t *testing.T) {
	pod := &fir.Pod{Name: "acme"}
	td := &fir.TypeDef{
		Qname: "acme::Widget", Pod: "acme", Name: "Widget",
		Fields: []*fir.FieldDef{
			{Name: "size", Type: tref("sys", "Int"), Flags: 73728, HasExplicitSetter: true, SetterFlags: 1024},
		},
	}
	out := printType(t, pod, td)
	if !strings.Contains(out, `_t.af_("size", 73728, "sys::Int", None, 1024)`) {
		t.Errorf("setter flags not registered:\n%s", out)
	}
}

func TestCatchClauseDirectImport(t *testing.T) {
	pod := &fir.Pod{Name: "acme"}
	td := &fir.TypeDef{
		Qname: "acme::Widget", Pod: "acme", Name: "Widget",
		Methods: []*fir.MethodDef{{
			Name: "run",
			Body: &fir.Block{Stmts: []*fir.Stmt{{
				Kind: fir.Try,
				Body: &fir.Block{},
				Catches: []*fir.Catch{{
					ErrType: &fir.TypeRef{Pod: "acme", Name: "WidgetErr"},
					Var:     "e",
					Body:    &fir.Block{},
				}},
			}}},
		}},
	}
	out := printType(t, pod, td)

	// Python requires the exception class bound in local scope.
	if !strings.Contains(out, "from fan.acme.WidgetErr import WidgetErr") {
		t.Errorf("catch type not directly imported:\n%s", out)
	}
	if !strings.Contains(out, "except WidgetErr as e:") {
		t.Errorf("except clause must use the bare class name:\n%s", out)
	}
}

func TestMethodDefaults(t *testing.T) {
	pod := &fir.Pod{Name: "acme"}
	td := &fir.TypeDef{
		Qname: "acme::Widget", Pod: "acme", Name: "Widget",
		Methods: []*fir.MethodDef{{
			Name: "grow",
			Params: []*fir.ParamDef{
				{Name: "n", Type: tref("sys", "Int")},
				{Name: "by", Type: tref("sys", "Int"), HasDefault: true, Default: intLit("1")},
			},
		}},
	}
	out := printType(t, pod, td)

	for _, want := range []string{
		"def grow(self, n=None, by=None):",
		"if by is None:",
		"by = 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStaticMethod(t *testing.T) {
	pod := &fir.Pod{Name: "acme"}
	td := &fir.TypeDef{
		Qname: "acme::Widget", Pod: "acme", Name: "Widget",
		Methods: []*fir.MethodDef{{
			Name: "count", IsStatic: true,
			Body: &fir.Block{Stmts: []*fir.Stmt{{Kind: fir.Return, Expr: intLit("0")}}},
		}},
	}
	out := printType(t, pod, td)

	if !strings.Contains(out, "@staticmethod\n    def count():") {
		t.Errorf("static method not emitted as @staticmethod:\n%s", out)
	}
}

func TestDeterministicOutput(t *testing.T) {
	pod := &fir.Pod{Name: "acme"}
	td := &fir.TypeDef{
		Qname: "acme::Widget", Pod: "acme", Name: "Widget",
		Fields: []*fir.FieldDef{
			{Name: "a", Type: tref("sys", "Int"), Facets: map[string]string{"acme::Beta": "true", "acme::Alpha": "x"}},
		},
	}
	first := printType(t, pod, td)
	for i := 0; i < 5; i++ {
		if got := printType(t, pod, td); got != first {
			t.Fatal("output differs between identical runs")
		}
	}
	// Facet maps render in sorted key order.
	if !strings.Contains(first, `{"acme::Alpha": "x", "acme::Beta": "true"}`) {
		t.Errorf("facets not sorted:\n%s", first)
	}
}
