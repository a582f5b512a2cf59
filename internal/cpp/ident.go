package cpp

// IsIdentifier reports whether s matches ^[A-Za-z_][A-Za-z0-9_]*$.
// Only ASCII is accepted: the generated header must compile on
// pre-C++23 toolchains without extended identifier support.
func IsIdentifier(s string) bool {
	if len(s) == 0 {
		return false
	}
	if !isIdentStartByte(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentContinueByte(s[i]) {
			return false
		}
	}
	return true
}

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || (b >= '0' && b <= '9')
}

// StartsLower reports whether the identifier begins with a lowercase
// ASCII letter. Used for the PascalCase naming convention check.
func StartsLower(s string) bool {
	return len(s) > 0 && s[0] >= 'a' && s[0] <= 'z'
}
