// Package pysig implements the string form of type references exchanged with
// the Python runtime. Every signature handed to the runtime (Type.find, af_,
// am_, coercions) is a plain string such as "sys::Int", "sys::Str?", or
// "sys::Int[]"; this package parses, prints, and classifies those strings.
package pysig

import (
	"strings"

	"github.com/trevadelman/fantom/errors"
)

// Well-known fallback signatures used when parameterized metadata cannot be
// recovered from a node.
const (
	ObjSig         = "sys::Obj"
	ObjNullableSig = "sys::Obj?"
)

// Ref is the parsed form of a type signature.
type Ref struct {
	Pod      string // "sys" in "sys::Int"
	Name     string // "Int" in "sys::Int"
	Nullable bool   // trailing "?"
	Elem     *Ref   // element type for list signatures "Elem[]"
	Key      *Ref   // key type for map signatures "[K:V]"
	Val      *Ref   // value type for map signatures
}

// Parse parses a signature string into a Ref.
func Parse(sig string) (*Ref, error) {
	s := strings.TrimSpace(sig)
	if s == "" {
		return nil, errors.New("empty type signature")
	}

	r := &Ref{}
	if strings.HasSuffix(s, "?") {
		r.Nullable = true
		s = s[:len(s)-1]
	}

	switch {
	case strings.HasSuffix(s, "[]"):
		elem, err := Parse(s[:len(s)-2])
		if err != nil {
			return nil, errors.Wrapf(err, "list signature %q", sig)
		}
		r.Pod, r.Name, r.Elem = "sys", "List", elem
		return r, nil

	case strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"):
		inner := s[1 : len(s)-1]
		colon := mapColon(inner)
		if colon < 0 {
			return nil, errors.Newf("map signature %q has no key separator", sig)
		}
		k, err := Parse(inner[:colon])
		if err != nil {
			return nil, errors.Wrapf(err, "map signature %q", sig)
		}
		v, err := Parse(inner[colon+1:])
		if err != nil {
			return nil, errors.Wrapf(err, "map signature %q", sig)
		}
		r.Pod, r.Name, r.Key, r.Val = "sys", "Map", k, v
		return r, nil
	}

	pod, name, ok := strings.Cut(s, "::")
	if !ok {
		return nil, errors.Newf("signature %q is not qualified", sig)
	}
	if pod == "" || name == "" {
		return nil, errors.Newf("signature %q has an empty pod or name", sig)
	}
	r.Pod, r.Name = pod, name
	return r, nil
}

// mapColon finds the top-level ':' separating key and value in a map
// signature body, skipping colons nested in '::' qualifiers and brackets.
func mapColon(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
		case ':':
			if depth > 0 {
				continue
			}
			if i+1 < len(s) && s[i+1] == ':' {
				i++ // skip "::" qualifier
				continue
			}
			if i > 0 && s[i-1] == ':' {
				continue
			}
			return i
		}
	}
	return -1
}

// String prints the canonical signature form.
func (r *Ref) String() string {
	var sb strings.Builder
	r.write(&sb)
	return sb.String()
}

func (r *Ref) write(sb *strings.Builder) {
	switch {
	case r.Elem != nil:
		r.Elem.write(sb)
		sb.WriteString("[]")
	case r.Key != nil && r.Val != nil:
		sb.WriteByte('[')
		r.Key.write(sb)
		sb.WriteByte(':')
		r.Val.write(sb)
		sb.WriteByte(']')
	default:
		sb.WriteString(r.Pod)
		sb.WriteString("::")
		sb.WriteString(r.Name)
	}
	if r.Nullable {
		sb.WriteByte('?')
	}
}

// Qname returns the unparameterized "pod::Name" form.
func (r *Ref) Qname() string {
	return r.Pod + "::" + r.Name
}
