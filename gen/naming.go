package gen

import "strings"

// toPascalCase converts snake_case, kebab-case, or camelCase to PascalCase
func toPascalCase(s string) string {
	var b strings.Builder
	upper := true
	for _, r := range s {
		switch {
		case r == '_' || r == '-' || r == ' ':
			upper = true
		case upper:
			b.WriteRune(asciiUpper(r))
			upper = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// toLowerCamel lowercases the first rune, leaving the rest untouched
func toLowerCamel(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	r[0] = asciiLower(r[0])
	return string(r)
}

func asciiUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

func asciiLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// unwrapAsync strips one level of Future<> or Stream<> from a rendered type,
// returning the inner type and which wrapper was found
func unwrapAsync(ty string) (inner string, wrapper string) {
	switch {
	case strings.HasPrefix(ty, "Future<") && strings.HasSuffix(ty, ">"):
		return ty[len("Future<") : len(ty)-1], "Future"
	case strings.HasPrefix(ty, "Stream<") && strings.HasSuffix(ty, ">"):
		return ty[len("Stream<") : len(ty)-1], "Stream"
	default:
		return ty, ""
	}
}
