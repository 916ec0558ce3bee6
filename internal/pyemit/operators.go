package pyemit

// unaryOps maps method qnames resolved by the front-end to native Python
// prefix operators.
var unaryOps = map[string]string{
	"sys::Bool.not":    "not ",
	"sys::Int.negate":  "-",
	"sys::Float.negate": "-",
}

// binaryOps maps method qnames to native Python infix operators. Integer
// division and modulo are deliberately absent: Python's / and % are
// floor-based while the source language truncates toward zero, so those
// calls route through ObjUtil.div / ObjUtil.mod instead.
var binaryOps = map[string]string{
	"sys::Int.plus":  "+",
	"sys::Int.minus": "-",
	"sys::Int.mult":  "*",

	"sys::Float.plus":  "+",
	"sys::Float.minus": "-",
	"sys::Float.mult":  "*",
	"sys::Float.div":   "/",

	// Str.plus appears here only for str+str; mixed-operand concatenation is
	// rewritten to the Str.plus helper by the expression printer.
	"sys::Str.plus": "+",
}

// UnaryOp returns the Python prefix operator for a method qname, if any.
func UnaryOp(qname string) (string, bool) {
	op, ok := unaryOps[qname]
	return op, ok
}

// BinaryOp returns the Python infix operator for a method qname, if any.
func BinaryOp(qname string) (string, bool) {
	op, ok := binaryOps[qname]
	return op, ok
}
