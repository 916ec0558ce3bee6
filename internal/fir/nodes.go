// Package fir defines the typed AST node model handed to the transpiler by the
// front-end, plus its JSON decoder. Nodes are read-only to the rest of the
// program: printers walk them and never mutate.
package fir

// ----------------------------------------------------------------------------
// Pods and type definitions

// Pod is one compilation unit. One pod produces one output subtree.
type Pod struct {
	Name      string     `json:"name"`
	Version   string     `json:"version"`
	DependsOn []string   `json:"dependsOn,omitempty"`
	Types     []*TypeDef `json:"types"`
}

// TypeDef is one class, mixin, or enum declared in a pod.
type TypeDef struct {
	Qname       string     `json:"qname"`
	Pod         string     `json:"pod"`
	Name        string     `json:"name"`
	Base        *TypeRef   `json:"base,omitempty"`
	Mixins      []*TypeRef `json:"mixins,omitempty"`
	IsAbstract  bool       `json:"isAbstract,omitempty"`
	IsEnum      bool       `json:"isEnum,omitempty"`
	IsMixin     bool       `json:"isMixin,omitempty"`
	IsSynthetic bool       `json:"isSynthetic,omitempty"`
	Flags       int        `json:"flags,omitempty"`
	Fields      []*FieldDef  `json:"fields,omitempty"`
	Methods     []*MethodDef `json:"methods,omitempty"`

	// Synthetic closure classes generated by the front-end. The transpiler
	// never emits these as types; closures are lowered structurally.
	ClosureClasses []string `json:"closureClasses,omitempty"`
}

// FieldDef is one field slot.
type FieldDef struct {
	Name              string            `json:"name"`
	Type              *TypeRef          `json:"type"`
	Flags             int               `json:"flags,omitempty"`
	IsStatic          bool              `json:"isStatic,omitempty"`
	IsConst           bool              `json:"isConst,omitempty"`
	IsPrivate         bool              `json:"isPrivate,omitempty"`
	IsSynthetic       bool              `json:"isSynthetic,omitempty"`
	Init              *Expr             `json:"init,omitempty"`
	HasExplicitSetter bool              `json:"hasExplicitSetter,omitempty"`
	SetterFlags       int               `json:"setterFlags,omitempty"`
	Facets            map[string]string `json:"facets,omitempty"`
}

// MethodDef is one method slot, constructors included.
type MethodDef struct {
	Name        string            `json:"name"`
	Parent      string            `json:"parent,omitempty"` // owning type qname
	Params      []*ParamDef       `json:"params,omitempty"`
	Returns     *TypeRef          `json:"returns,omitempty"`
	Flags       int               `json:"flags,omitempty"`
	IsCtor      bool              `json:"isCtor,omitempty"`
	IsPrivate   bool              `json:"isPrivate,omitempty"`
	IsStatic    bool              `json:"isStatic,omitempty"`
	IsAbstract  bool              `json:"isAbstract,omitempty"`
	IsSynthetic bool              `json:"isSynthetic,omitempty"`
	Body        *Block            `json:"body,omitempty"`
	Facets      map[string]string `json:"facets,omitempty"`
}

// ParamDef is one declared parameter.
type ParamDef struct {
	Name       string   `json:"name"`
	Type       *TypeRef `json:"type"`
	HasDefault bool     `json:"hasDefault,omitempty"`
	Default    *Expr    `json:"default,omitempty"`
}

// TypeRef is a by-value reference to a type. It carries enough metadata for
// sys::List to expose its element type and sys::Func its signature without
// back-pointers into any type table.
type TypeRef struct {
	Pod             string     `json:"pod"`
	Name            string     `json:"name"`
	Signature       string     `json:"signature"`
	IsNullable      bool       `json:"isNullable,omitempty"`
	IsGeneric       bool       `json:"isGeneric,omitempty"`
	IsParameterized bool       `json:"isParameterized,omitempty"`
	K               *TypeRef   `json:"k,omitempty"`
	V               *TypeRef   `json:"v,omitempty"`
	FuncParams      []*TypeRef `json:"funcParams,omitempty"`
	FuncReturn      *TypeRef   `json:"funcReturn,omitempty"`
}

// Qname returns the "pod::Name" form of the reference.
func (t *TypeRef) Qname() string {
	if t == nil {
		return ""
	}
	return t.Pod + "::" + t.Name
}

// ----------------------------------------------------------------------------
// Expressions
//
// Expr is a tagged variant rather than an interface hierarchy: the decoder
// fills the fields relevant to Kind and leaves the rest zero. Printers switch
// on Kind.

// ExprKind discriminates Expr variants.
type ExprKind string

const (
	// Literals
	NullLit     ExprKind = "nullLit"
	BoolLit     ExprKind = "boolLit"
	IntLit      ExprKind = "intLit"
	FloatLit    ExprKind = "floatLit"
	StrLit      ExprKind = "strLit"
	ListLit     ExprKind = "listLit"
	MapLit      ExprKind = "mapLit"
	RangeLit    ExprKind = "rangeLit"
	DurationLit ExprKind = "durationLit"
	DecimalLit  ExprKind = "decimalLit"
	UriLit      ExprKind = "uriLit"

	// Identifiers
	LocalVar     ExprKind = "localVar"
	ThisExpr     ExprKind = "thisExpr"
	SuperExpr    ExprKind = "superExpr"
	ItExpr       ExprKind = "itExpr"
	StaticTarget ExprKind = "staticTarget"

	// Operations
	ThrowExpr    ExprKind = "throwExpr"
	Call         ExprKind = "call"
	Construction ExprKind = "construction"
	FieldAccess  ExprKind = "field"
	Assign       ExprKind = "assign"
	Same         ExprKind = "same"
	NotSame      ExprKind = "notSame"
	BoolNot      ExprKind = "boolNot"
	BoolOr       ExprKind = "boolOr"
	BoolAnd      ExprKind = "boolAnd"
	CmpNull      ExprKind = "cmpNull"
	CmpNotNull   ExprKind = "cmpNotNull"
	IsExpr       ExprKind = "isExpr"
	IsnotExpr    ExprKind = "isnotExpr"
	AsExpr       ExprKind = "asExpr"
	Coerce       ExprKind = "coerce"
	Ternary      ExprKind = "ternary"
	Elvis        ExprKind = "elvis"
	Shortcut     ExprKind = "shortcut"
	ClosureKind  ExprKind = "closure"
	TypeLiteral  ExprKind = "typeLiteral"
	SlotLiteral  ExprKind = "slotLiteral"
)

// Expr is one expression node.
type Expr struct {
	Kind  ExprKind `json:"kind"`
	Ctype *TypeRef `json:"ctype,omitempty"` // static type from the front-end

	// Literal payloads. Raw holds the literal's source text for int, float,
	// decimal, and duration (ticks) literals so precision survives decoding.
	Raw  string `json:"raw,omitempty"`
	Str  string `json:"str,omitempty"` // strLit/uriLit value, localVar name
	Bool bool   `json:"bool,omitempty"`

	// Collection literals
	Elems []*Expr `json:"elems,omitempty"`
	Keys  []*Expr `json:"keys,omitempty"`
	Vals  []*Expr `json:"vals,omitempty"`

	// rangeLit
	Start     *Expr `json:"start,omitempty"`
	End       *Expr `json:"end,omitempty"`
	Exclusive bool  `json:"exclusive,omitempty"`

	// Calls, construction, field access
	Target *Expr      `json:"target,omitempty"`
	Args   []*Expr    `json:"args,omitempty"`
	Method *MethodRef `json:"method,omitempty"`
	Field  *FieldRef  `json:"field,omitempty"`
	IsSafe bool       `json:"isSafe,omitempty"` // ?. navigation

	// Binary / assignment / conditional
	Lhs     *Expr  `json:"lhs,omitempty"`
	Rhs     *Expr  `json:"rhs,omitempty"`
	Cond    *Expr  `json:"cond,omitempty"`
	IfTrue  *Expr  `json:"ifTrue,omitempty"`
	IfFalse *Expr  `json:"ifFalse,omitempty"`

	// Shortcut sub-op token: + - * / % < <= > >= == != <=> ++ -- []get []set
	Op        string `json:"op,omitempty"`
	IsPostfix bool   `json:"isPostfix,omitempty"`

	// Type operations (is/isnot/as/coerce) and literals
	Check *TypeRef `json:"check,omitempty"`
	Slot  *SlotRef `json:"slot,omitempty"`

	Closure *ClosureExpr `json:"closure,omitempty"`
}

// MethodRef identifies the resolved method of a call or construction.
type MethodRef struct {
	Qname     string   `json:"qname"` // "sys::Int.plus"
	Parent    string   `json:"parent"`
	Name      string   `json:"name"`
	Returns   *TypeRef `json:"returns,omitempty"`
	IsStatic  bool     `json:"isStatic,omitempty"`
	IsCtor    bool     `json:"isCtor,omitempty"`
	IsPrivate bool     `json:"isPrivate,omitempty"`
	IsDynamic bool     `json:"isDynamic,omitempty"` // -> operator
}

// FieldRef identifies the resolved field of a field access.
type FieldRef struct {
	Qname     string   `json:"qname"`
	Parent    string   `json:"parent"`
	Name      string   `json:"name"`
	Type      *TypeRef `json:"type,omitempty"`
	IsStatic  bool     `json:"isStatic,omitempty"`
	IsPrivate bool     `json:"isPrivate,omitempty"`
	Raw       bool     `json:"raw,omitempty"` // &field raw-storage access
}

// SlotRef is the payload of a slot literal T#slot.
type SlotRef struct {
	Parent  string `json:"parent"` // type qname
	Name    string `json:"name"`
	IsField bool   `json:"isField,omitempty"`
}

// ClosureExpr is the payload of a closure expression. The front-end exposes
// the derived immutability case and captured field names directly on the node.
type ClosureExpr struct {
	Signature      *TypeRef    `json:"signature"` // func type: FuncParams/FuncReturn
	Params         []*ParamDef `json:"params,omitempty"`
	Body           *Block      `json:"body"`
	CapturedFields []string    `json:"capturedFields,omitempty"`

	// Immutable is "always", "maybe", or "never". When the front-end leaves
	// it empty the case is inferred from SyntheticMethods.
	Immutable        string             `json:"immutable,omitempty"`
	SyntheticMethods []*SyntheticMethod `json:"syntheticMethods,omitempty"`
}

// SyntheticMethod summarizes an isImmutable/toImmutable method the front-end
// attached to a closure class. Only the shape matters for inference.
type SyntheticMethod struct {
	Name         string `json:"name"` // "isImmutable" or "toImmutable"
	ReturnsTrue  bool   `json:"returnsTrue,omitempty"`
	ReturnsFalse bool   `json:"returnsFalse,omitempty"`
	ReturnsField bool   `json:"returnsField,omitempty"`
	Throws       bool   `json:"throws,omitempty"`
}

// ----------------------------------------------------------------------------
// Statements

// StmtKind discriminates Stmt variants.
type StmtKind string

const (
	Nop      StmtKind = "nop"
	ExprStmt StmtKind = "expr"
	LocalDef StmtKind = "localDef"
	If       StmtKind = "if"
	Return   StmtKind = "return"
	Throw    StmtKind = "throw"
	For      StmtKind = "for"
	While    StmtKind = "while"
	Break    StmtKind = "break"
	Continue StmtKind = "continue"
	Try      StmtKind = "try"
	Switch   StmtKind = "switch"
)

// Block is an ordered statement list.
type Block struct {
	Stmts []*Stmt `json:"stmts,omitempty"`
}

// Stmt is one statement node, tagged by Kind.
type Stmt struct {
	Kind StmtKind `json:"kind"`

	Expr *Expr `json:"expr,omitempty"` // expr / return / throw payload

	// localDef
	Name string   `json:"name,omitempty"`
	Type *TypeRef `json:"type,omitempty"`
	Init *Expr    `json:"init,omitempty"`

	// if / while / for / switch condition
	Cond *Expr `json:"cond,omitempty"`

	// if
	Then *Block `json:"then,omitempty"`
	Else *Block `json:"else,omitempty"`

	// for
	ForInit *Stmt `json:"forInit,omitempty"`
	Update  *Expr `json:"update,omitempty"`

	// for / while body; try body
	Body *Block `json:"body,omitempty"`

	// try
	Catches []*Catch `json:"catches,omitempty"`
	Finally *Block   `json:"finally,omitempty"`

	// switch
	Cases   []*Case `json:"cases,omitempty"`
	Default *Block  `json:"default,omitempty"`
}

// Catch is one catch clause of a try statement.
type Catch struct {
	ErrType *TypeRef `json:"errType,omitempty"` // nil catches everything
	Var     string   `json:"var,omitempty"`
	Body    *Block   `json:"body"`
}

// Case is one case group of a switch statement.
type Case struct {
	Matches []*Expr `json:"matches"`
	Body    *Block  `json:"body"`
}
