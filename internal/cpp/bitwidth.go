package cpp

// bitWidths maps every type that may carry a bit-field to its storage
// width in bits. Floating-point, pointer and aggregate types are
// deliberately absent: a lookup miss means "no bit-field allowed".
// Widths follow the LP64 model the original packets were built for.
var bitWidths = map[string]uint8{
	"unsigned int": 32, "signed int": 32, "int": 32,
	"_Bool": 8, "bool": 8,

	"unsigned char": 8, "signed char": 8, "char": 8,
	"unsigned short": 16, "signed short": 16, "short": 16,
	"unsigned long": 64, "signed long": 64, "long": 64,
	"unsigned long long": 64, "signed long long": 64, "long long": 64,

	"uint8_t": 8, "int8_t": 8,
	"uint16_t": 16, "int16_t": 16,
	"uint32_t": 32, "int32_t": 32,
	"uint64_t": 64, "int64_t": 64,
}

// BitWidth returns the storage width in bits of a type that supports
// bit-fields, or false when the type cannot carry one.
func BitWidth(typeName string) (uint8, bool) {
	bits, ok := bitWidths[typeName]
	return bits, ok
}
