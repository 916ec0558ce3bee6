package pysig

import "strings"

// primitives are the value types whose instance methods are dispatched through
// the runtime's static class methods (Python has no instance methods on its
// native int/float/bool/str).
var primitives = map[string]bool{
	"sys::Bool":    true,
	"sys::Int":     true,
	"sys::Float":   true,
	"sys::Str":     true,
	"sys::Decimal": true,
}

// handWritten are the runtime types whose Python bodies are maintained by hand
// and expose fields as @property objects rather than method-style accessors.
var handWritten = map[string]bool{
	"sys::Map":    true,
	"sys::List":   true,
	"sys::Type":   true,
	"sys::StrBuf": true,
}

// IsPrimitive reports whether qname names a primitive value type.
func IsPrimitive(qname string) bool {
	return primitives[strip(qname)]
}

// IsHandWritten reports whether qname names a hand-written runtime type whose
// fields are Python properties.
func IsHandWritten(qname string) bool {
	return handWritten[strip(qname)]
}

// IsSys reports whether qname lives in the sys pod.
func IsSys(qname string) bool {
	return strings.HasPrefix(strip(qname), "sys::")
}

// PodOf returns the pod part of a "pod::Name" qname, or "" when unqualified.
func PodOf(qname string) string {
	pod, _, ok := strings.Cut(strip(qname), "::")
	if !ok {
		return ""
	}
	return pod
}

// NameOf returns the simple name part of a "pod::Name" qname. Unqualified
// names are returned as-is.
func NameOf(qname string) string {
	_, name, ok := strings.Cut(strip(qname), "::")
	if !ok {
		return qname
	}
	return name
}

// IsJavaFFI reports whether a signature refers into the Java FFI namespace.
// Such signatures cannot be expressed to the Python runtime.
func IsJavaFFI(sig string) bool {
	return strings.Contains(sig, "[java]")
}

// Sanitize rewrites a signature into a form the runtime signature parser is
// guaranteed to accept. Java FFI qnames are collapsed into a marker type under
// the sys pod; any use fails deterministically at runtime rather than at
// import time.
func Sanitize(sig string) string {
	if !IsJavaFFI(sig) {
		return sig
	}
	nullable := strings.HasSuffix(sig, "?")
	s := strings.NewReplacer("[java]", "java.", "::", ".", " ", "").Replace(strings.TrimSuffix(sig, "?"))
	out := "sys::UnsupportedJava_" + strings.Map(identChar, s)
	if nullable {
		out += "?"
	}
	return out
}

func identChar(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		return r
	}
	return '_'
}

// strip removes the nullable suffix so predicate lookups see the base qname.
func strip(qname string) string {
	return strings.TrimSuffix(qname, "?")
}
