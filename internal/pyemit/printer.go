package pyemit

import (
	"fmt"
	"strings"

	"github.com/trevadelman/fantom/internal/fir"
	"github.com/trevadelman/fantom/internal/pysig"
	"github.com/trevadelman/fantom/logger"
)

// printer lowers one type definition to Python text. The expression printer
// produces fragments; the statement printer writes lines through the emitter;
// the type printer drives both and owns the file layout. One state per method.
type printer struct {
	pod *fir.Pod
	t   *fir.TypeDef
	e   *emitter
	im  *imports
	st  *state
}

// sigOf returns the sanitized signature string of a type reference, falling
// back to sys::Obj when metadata is missing. The fallback is reported on the
// verbose channel and never aborts emission.
func (p *printer) sigOf(t *fir.TypeRef) string {
	if t == nil || t.Signature == "" && t.Name == "" {
		logger.Get().Debugw("type metadata missing, falling back to sys::Obj",
			logger.FieldPod, p.pod.Name,
			logger.FieldType, p.t.Name)
		return pysig.ObjSig
	}
	sig := t.Signature
	if sig == "" {
		sig = t.Qname()
		if t.IsNullable {
			sig += "?"
		}
	}
	return pysig.Sanitize(sig)
}

// elemSig returns the element signature of a parameterized list reference.
func (p *printer) elemSig(t *fir.TypeRef) string {
	if t != nil && t.V != nil {
		return p.sigOf(t.V)
	}
	logger.Get().Debugw("list element type missing, falling back to sys::Obj?",
		logger.FieldPod, p.pod.Name,
		logger.FieldType, p.t.Name)
	return pysig.ObjNullableSig
}

// pyStr renders a Python string literal. All non-ASCII code points are kept
// escaped (\x, \u, \U) so the emitted file stays ASCII regardless of the
// source encoding; astral code points come out as a single \U escape.
func pyStr(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			switch {
			case r >= 0x20 && r < 0x7f:
				sb.WriteRune(r)
			case r <= 0xff:
				fmt.Fprintf(&sb, `\x%02x`, r)
			case r <= 0xffff:
				fmt.Fprintf(&sb, `\u%04x`, r)
			default:
				fmt.Fprintf(&sb, `\U%08x`, r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// storageName returns the backing-slot name of a field: an underscore
// followed by the escaped field name.
func storageName(field string) string {
	return "_" + PyName(field)
}
