// Package cpp holds the static C/C++ language tables the validator and
// generator rely on: identifier legality, the reserved-keyword set, the
// bit-width table for bit-field-capable types, and the command-id codec.
package cpp

// Reserved C++ keywords, including alternative operator spellings and
// keywords reserved by newer standards.
var keywords = map[string]struct{}{
	"alignas": {}, "alignof": {}, "and": {}, "and_eq": {}, "asm": {},
	"atomic_cancel": {}, "atomic_commit": {}, "atomic_noexcept": {},
	"auto": {}, "bitand": {}, "bitor": {}, "bool": {}, "break": {},
	"case": {}, "catch": {}, "char": {}, "char8_t": {}, "char16_t": {},
	"char32_t": {}, "class": {}, "compl": {}, "concept": {}, "const": {},
	"consteval": {}, "constexpr": {}, "constinit": {}, "const_cast": {},
	"continue": {}, "contract_assert": {}, "co_await": {}, "co_return": {},
	"co_yield": {}, "decltype": {}, "default": {}, "delete": {}, "do": {},
	"double": {}, "dynamic_cast": {}, "else": {}, "enum": {}, "explicit": {},
	"export": {}, "extern": {}, "false": {}, "float": {}, "for": {},
	"friend": {}, "goto": {}, "if": {}, "inline": {}, "int": {}, "long": {},
	"mutable": {}, "namespace": {}, "new": {}, "noexcept": {}, "not": {},
	"not_eq": {}, "nullptr": {}, "operator": {}, "or": {}, "or_eq": {},
	"private": {}, "protected": {}, "public": {}, "reflexpr": {},
	"register": {}, "reinterpret_cast": {}, "requires": {}, "return": {},
	"short": {}, "signed": {}, "sizeof": {}, "static": {},
	"static_assert": {}, "static_cast": {}, "struct": {}, "switch": {},
	"synchronized": {}, "template": {}, "this": {}, "thread_local": {},
	"throw": {}, "true": {}, "try": {}, "typedef": {}, "typeid": {},
	"typename": {}, "union": {}, "unsigned": {}, "using": {}, "virtual": {},
	"void": {}, "volatile": {}, "wchar_t": {}, "while": {}, "xor": {},
	"xor_eq": {},
}

// IsKeyword reports whether name is a reserved C++ keyword.
func IsKeyword(name string) bool {
	_, ok := keywords[name]
	return ok
}
