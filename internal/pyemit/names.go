package pyemit

import "strings"

// PyName rewrites a source identifier into its Python form: synthetic-name
// separators become underscores, camelCase becomes snake_case, and collisions
// with Python keywords or shadow-prone builtins grow a trailing underscore.
func PyName(name string) string {
	if strings.ContainsRune(name, '$') {
		name = strings.ReplaceAll(name, "$", "_")
	}
	name = snakeCase(name)
	if pyReserved[name] {
		name += "_"
	}
	return name
}

// snakeCase converts camelCase to snake_case. An underscore is inserted before
// an upper-case letter when the previous character is lower-case or a digit,
// or at an acronym boundary (previous upper, next lower): XMLParser becomes
// xml_parser, utf16BE becomes utf16_be.
func snakeCase(name string) string {
	if isAllLower(name) {
		return name
	}

	rs := []rune(name)
	var sb strings.Builder
	sb.Grow(len(name) + 4)
	for i, r := range rs {
		if isUpper(r) && i > 0 {
			prev := rs[i-1]
			nextLower := i+1 < len(rs) && isLower(rs[i+1])
			if isLower(prev) || isDigit(prev) || (isUpper(prev) && nextLower) {
				sb.WriteByte('_')
			}
			sb.WriteRune(r - 'A' + 'a')
			continue
		}
		if isUpper(r) {
			sb.WriteRune(r - 'A' + 'a')
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func isAllLower(s string) bool {
	for _, r := range s {
		if isUpper(r) {
			return false
		}
	}
	return true
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// pyReserved holds the Python 3.12 keywords plus the builtins that generated
// code is known to shadow. A colliding name gets a trailing underscore.
var pyReserved = map[string]bool{
	// keywords
	"False": true, "None": true, "True": true,
	"and": true, "as": true, "assert": true, "async": true, "await": true,
	"break": true, "class": true, "continue": true, "def": true, "del": true,
	"elif": true, "else": true, "except": true, "finally": true, "for": true,
	"from": true, "global": true, "if": true, "import": true, "in": true,
	"is": true, "lambda": true, "nonlocal": true, "not": true, "or": true,
	"pass": true, "raise": true, "return": true, "try": true, "while": true,
	"with": true, "yield": true,

	// builtins
	"type": true, "hash": true, "id": true, "list": true, "map": true,
	"str": true, "int": true, "float": true, "bool": true, "self": true,
	"abs": true, "all": true, "any": true, "min": true, "max": true,
	"pow": true, "round": true, "set": true, "dir": true, "oct": true,
	"open": true, "vars": true, "print": true,
}
