package fir

import (
	"encoding/json"
	"io"

	"github.com/trevadelman/fantom/errors"
)

// DecodePod reads one pod AST document and validates its structure. Unknown
// expression and statement kinds are kept as-is; the emitter turns them into
// textual markers rather than failing the whole pod.
func DecodePod(r io.Reader) (*Pod, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	pod := &Pod{}
	if err := dec.Decode(pod); err != nil {
		return nil, errors.Wrap(err, "decoding pod AST")
	}
	if err := pod.validate(); err != nil {
		return nil, err
	}
	return pod, nil
}

func (p *Pod) validate() error {
	if p.Name == "" {
		return errors.New("pod has no name")
	}
	for _, t := range p.Types {
		if t.Name == "" {
			return errors.Newf("pod %s: type with empty name", p.Name)
		}
		if t.Qname == "" {
			t.Qname = p.Name + "::" + t.Name
		}
		if t.Pod == "" {
			t.Pod = p.Name
		}
		if err := t.validate(); err != nil {
			return errors.Wrapf(err, "pod %s: type %s", p.Name, t.Name)
		}
	}
	return nil
}

func (t *TypeDef) validate() error {
	for _, f := range t.Fields {
		if f.Name == "" {
			return errors.New("field with empty name")
		}
		if f.Type == nil {
			return errors.Newf("field %s has no type", f.Name)
		}
		if err := validateExpr(f.Init); err != nil {
			return errors.Wrapf(err, "field %s initializer", f.Name)
		}
	}
	for _, m := range t.Methods {
		if m.Name == "" {
			return errors.New("method with empty name")
		}
		if m.Parent == "" {
			m.Parent = t.Qname
		}
		if err := validateBlock(m.Body); err != nil {
			return errors.Wrapf(err, "method %s", m.Name)
		}
	}
	return nil
}

func validateBlock(b *Block) error {
	if b == nil {
		return nil
	}
	for _, s := range b.Stmts {
		if err := validateStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func validateStmt(s *Stmt) error {
	if s == nil {
		return errors.New("nil statement")
	}
	switch s.Kind {
	case LocalDef:
		if s.Name == "" {
			return errors.New("localDef with empty name")
		}
	case Try:
		for _, c := range s.Catches {
			if c.Body == nil {
				return errors.New("catch clause with no body")
			}
			if err := validateBlock(c.Body); err != nil {
				return err
			}
		}
	case Switch:
		for _, c := range s.Cases {
			if len(c.Matches) == 0 {
				return errors.New("switch case with no match expressions")
			}
		}
	}
	for _, e := range []*Expr{s.Expr, s.Init, s.Cond, s.Update} {
		if err := validateExpr(e); err != nil {
			return err
		}
	}
	for _, b := range []*Block{s.Then, s.Else, s.Body, s.Finally, s.Default} {
		if err := validateBlock(b); err != nil {
			return err
		}
	}
	if s.ForInit != nil {
		if err := validateStmt(s.ForInit); err != nil {
			return err
		}
	}
	for _, c := range s.Cases {
		for _, m := range c.Matches {
			if err := validateExpr(m); err != nil {
				return err
			}
		}
		if err := validateBlock(c.Body); err != nil {
			return err
		}
	}
	return nil
}

func validateExpr(e *Expr) error {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case Call:
		if e.Method == nil {
			return errors.New("call with no resolved method")
		}
	case Construction:
		if e.Method == nil {
			return errors.New("construction with no resolved constructor")
		}
	case FieldAccess:
		if e.Field == nil {
			return errors.New("field access with no resolved field")
		}
	case ClosureKind:
		if e.Closure == nil || e.Closure.Body == nil {
			return errors.New("closure with no body")
		}
		if err := validateBlock(e.Closure.Body); err != nil {
			return err
		}
	case TypeLiteral:
		if e.Check == nil {
			return errors.New("type literal with no type")
		}
	case SlotLiteral:
		if e.Slot == nil {
			return errors.New("slot literal with no slot")
		}
	}
	for _, sub := range []*Expr{
		e.Target, e.Lhs, e.Rhs, e.Cond, e.IfTrue, e.IfFalse, e.Start, e.End,
	} {
		if err := validateExpr(sub); err != nil {
			return err
		}
	}
	for _, list := range [][]*Expr{e.Args, e.Elems, e.Keys, e.Vals} {
		for _, sub := range list {
			if err := validateExpr(sub); err != nil {
				return err
			}
		}
	}
	return nil
}

// Immutability returns the closure's immutability case. The front-end's
// explicit value wins; otherwise the case is inferred from the shapes of any
// synthetic isImmutable/toImmutable methods:
//
//   - no isImmutable and no throwing toImmutable  -> "always"
//   - isImmutable returning the true literal      -> "always"
//   - isImmutable returning a field               -> "maybe"
//   - toImmutable that throws                     -> "never"
//
// Anything else defaults to "maybe".
func (c *ClosureExpr) Immutability() string {
	if c.Immutable != "" {
		return c.Immutable
	}

	var isImm *SyntheticMethod
	throwsToImm := false
	for _, m := range c.SyntheticMethods {
		switch m.Name {
		case "isImmutable":
			isImm = m
		case "toImmutable":
			if m.Throws {
				throwsToImm = true
			}
		}
	}

	switch {
	case throwsToImm:
		return "never"
	case isImm == nil:
		return "always"
	case isImm.ReturnsTrue:
		return "always"
	case isImm.ReturnsField:
		return "maybe"
	default:
		return "maybe"
	}
}
