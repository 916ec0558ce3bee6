// Package pyrt defines the ABI constants shared between the transpiler and the
// Python runtime library (the `fan.sys` pod shipped with the interpreter harness).
package pyrt

// ObjUtil helper names (must match fan/sys/py ObjUtil declarations)
const (
	// Identity and equality
	FnSame    = "ObjUtil.same"
	FnEquals  = "ObjUtil.equals"
	FnCompare = "ObjUtil.compare"

	// Comparison with <=> tie-breakers
	FnCompareLT = "ObjUtil.compare_lt"
	FnCompareLE = "ObjUtil.compare_le"
	FnCompareGT = "ObjUtil.compare_gt"
	FnCompareGE = "ObjUtil.compare_ge"

	// Type tests and coercions
	FnIs     = "ObjUtil.is_"
	FnAs     = "ObjUtil.as_"
	FnCoerce = "ObjUtil.coerce"
	FnTypeof = "ObjUtil.typeof"

	// Immutability
	FnIsImmutable = "ObjUtil.is_immutable"
	FnToImmutable = "ObjUtil.to_immutable"

	// Truncated integer arithmetic (Python's / and % are floor-based)
	FnDiv = "ObjUtil.div"
	FnMod = "ObjUtil.mod"

	// Dynamic dispatch and captured-variable wrappers
	FnTrap = "ObjUtil.trap"
	FnCvar = "ObjUtil.cvar"

	// Assignment-as-value and throw-as-expression
	FnSetattrReturn = "ObjUtil.setattr_return"
	FnThrow         = "ObjUtil.throw_"

	// Increment / decrement on fields and indexed locations
	FnIncField     = "ObjUtil.inc_field"
	FnIncFieldPost = "ObjUtil.inc_field_post"
	FnDecField     = "ObjUtil.dec_field"
	FnDecFieldPost = "ObjUtil.dec_field_post"
	FnIncIndex     = "ObjUtil.inc_index"
	FnIncIndexPost = "ObjUtil.inc_index_post"
	FnDecIndex     = "ObjUtil.dec_index"
	FnDecIndexPost = "ObjUtil.dec_index_post"
)

// Collection and string factories
const (
	FnListFromLiteral = "List.from_literal"
	FnMapFromLiteral  = "Map.from_literal"
	FnListGetRange    = "List.get_range"
	FnStrPlus         = "Str.plus"
	FnStrGet          = "Str.get"
	FnStrGetRange     = "Str.get_range"
)

// Literal factories for value types without a Python literal form
const (
	FnRangeMake     = "Range.make"
	FnRangeMakeExcl = "Range.make_exclusive"
	FnDurationMake  = "Duration.from_ticks"
	FnDecimalFromStr = "Decimal.from_str"
	FnUriFromStr     = "Uri.from_str"
)

// Closure construction
const (
	FnMakeClosure = "Func.make_closure"
)

// Reflection lookup and registration
const (
	FnTypeFind   = "Type.find"
	FnMethodFind = "Method.find"
	FnFieldFind  = "Field.find"
	ClassParam   = "Param"

	// Registration methods invoked on the Type returned by Type.find
	MethodAddField  = "af_"
	MethodAddMethod = "am_"
)

// Names reserved by generated class bodies. Generated accessors and locals must
// never collide with these.
const (
	StaticInitFunc  = "_static_init"
	StaticInitGuard = "_static_init_in_progress"
	EnumValsField   = "_vals"
	EnumOrdinal     = "_ordinal"
	EnumName        = "_name"
	LoadingGuard    = "_loading"
)

// Immutability cases carried by every Func.make_closure spec.
const (
	ImmutableAlways = "always"
	ImmutableMaybe  = "maybe"
	ImmutableNever  = "never"
)
