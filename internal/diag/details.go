package diag

import (
	"fmt"
)

// Detail is the closed set of validation rule violations. Each variant
// carries the data of the violation (offending names, widths) so that
// messages can be re-rendered, or consumed structurally, without
// re-deriving context. Message rendering lives here and nowhere else.
type Detail interface {
	Code() Code
	Severity() Severity
	Message() string
	Help() string

	isDetail()
}

// InvalidPacketName reports a packet name that is not a legal C++ identifier.
type InvalidPacketName struct{ Name string }

// NamingConventionPacket reports a legal packet name that starts lowercase.
type NamingConventionPacket struct{ Name string }

// InvalidCommandID reports a command id outside 0..65535 or unparseable.
type InvalidCommandID struct{ ID string }

// InvalidFieldName reports a field name that is not a legal C++ identifier.
type InvalidFieldName struct{ Name string }

// KeywordCollision reports a field named after a reserved C++ keyword.
type KeywordCollision struct{ Name string }

// DuplicateFieldName reports the second and later occurrences of a name.
type DuplicateFieldName struct{ Name string }

// InvalidFieldType reports a missing `type` key or a non-string value.
type InvalidFieldType struct{ Field string }

// InvalidBitField reports a bit_field value that is not a positive integer.
type InvalidBitField struct{ Field string }

// BitFieldOnInvalidType reports a bit-field on a type outside the
// bit-width table (floating point, pointers, aggregates).
type BitFieldOnInvalidType struct {
	Field string
	Type  string
}

// BitFieldLengthOverflow reports a requested width above the type's size.
type BitFieldLengthOverflow struct {
	Field    string
	Width    uint8
	TypeBits uint8
}

// BitFieldStraddleBoundaryWithoutPacked reports two adjacent bit-fields
// whose combined width overflows the current field's storage unit while
// the struct is not packed. Layout would be compiler-dependent.
type BitFieldStraddleBoundaryWithoutPacked struct {
	Prev      string
	Field     string
	PrevWidth uint8
	Width     uint8
	TypeBits  uint8
}

// BitFieldMissingPackedAttr reports a bit-field inside an unpacked struct.
type BitFieldMissingPackedAttr struct{ Field string }

// BitFieldStraddleBoundary reports a bit-field occupying the whole
// storage unit of its type; it gains nothing from being a bit-field.
type BitFieldStraddleBoundary struct{ Field string }

// MissingComment reports a field without a non-blank comment.
type MissingComment struct{ Field string }

func (InvalidPacketName) Code() Code                      { return ValInvalidPacketName }
func (NamingConventionPacket) Code() Code                 { return ValNamingConventionPacket }
func (InvalidCommandID) Code() Code                       { return ValInvalidCommandID }
func (InvalidFieldName) Code() Code                       { return ValInvalidFieldName }
func (KeywordCollision) Code() Code                       { return ValKeywordCollision }
func (DuplicateFieldName) Code() Code                     { return ValDuplicateFieldName }
func (InvalidFieldType) Code() Code                       { return ValInvalidFieldType }
func (InvalidBitField) Code() Code                        { return ValInvalidBitField }
func (BitFieldOnInvalidType) Code() Code                  { return ValBitFieldOnInvalidType }
func (BitFieldLengthOverflow) Code() Code                 { return ValBitFieldLengthOverflow }
func (BitFieldStraddleBoundaryWithoutPacked) Code() Code  { return ValBitFieldStraddleBoundaryWithoutPacked }
func (BitFieldMissingPackedAttr) Code() Code              { return ValBitFieldMissingPackedAttr }
func (BitFieldStraddleBoundary) Code() Code               { return ValBitFieldStraddleBoundary }
func (MissingComment) Code() Code                         { return ValMissingComment }

func (InvalidPacketName) Severity() Severity                     { return SevError }
func (NamingConventionPacket) Severity() Severity                { return SevWarning }
func (InvalidCommandID) Severity() Severity                      { return SevError }
func (InvalidFieldName) Severity() Severity                      { return SevError }
func (KeywordCollision) Severity() Severity                      { return SevError }
func (DuplicateFieldName) Severity() Severity                    { return SevError }
func (InvalidFieldType) Severity() Severity                      { return SevError }
func (InvalidBitField) Severity() Severity                       { return SevError }
func (BitFieldOnInvalidType) Severity() Severity                 { return SevError }
func (BitFieldLengthOverflow) Severity() Severity                { return SevError }
func (BitFieldStraddleBoundaryWithoutPacked) Severity() Severity { return SevError }
func (BitFieldMissingPackedAttr) Severity() Severity             { return SevWarning }
func (BitFieldStraddleBoundary) Severity() Severity              { return SevWarning }
func (MissingComment) Severity() Severity                        { return SevWarning }

func (d InvalidPacketName) Message() string {
	return fmt.Sprintf("packet name '%s' is not a valid C++ identifier", d.Name)
}

func (d NamingConventionPacket) Message() string {
	return fmt.Sprintf("packet name '%s' should use PascalCase", d.Name)
}

func (d InvalidCommandID) Message() string {
	return fmt.Sprintf("command id '%s' is not a 16-bit decimal or hexadecimal value", d.ID)
}

func (d InvalidFieldName) Message() string {
	return fmt.Sprintf("field name '%s' is not a valid C++ identifier", d.Name)
}

func (d KeywordCollision) Message() string {
	return fmt.Sprintf("field name '%s' is a reserved C++ keyword", d.Name)
}

func (d DuplicateFieldName) Message() string {
	return fmt.Sprintf("field '%s' is defined more than once", d.Name)
}

func (d InvalidFieldType) Message() string {
	return fmt.Sprintf("field '%s' has a missing or invalid type", d.Field)
}

func (d InvalidBitField) Message() string {
	return fmt.Sprintf("field '%s' has an invalid bit-field width", d.Field)
}

func (d BitFieldOnInvalidType) Message() string {
	return fmt.Sprintf("field '%s' declares a bit-field on type '%s', which cannot carry one", d.Field, d.Type)
}

func (d BitFieldLengthOverflow) Message() string {
	return fmt.Sprintf("bit-field width %d of field '%s' exceeds the %d bits of its type", d.Width, d.Field, d.TypeBits)
}

func (d BitFieldStraddleBoundaryWithoutPacked) Message() string {
	return fmt.Sprintf("bit-fields '%s' and '%s' straddle a storage unit (%d + %d > %d) in an unpacked struct",
		d.Prev, d.Field, d.PrevWidth, d.Width, d.TypeBits)
}

func (d BitFieldMissingPackedAttr) Message() string {
	return fmt.Sprintf("field '%s' uses a bit-field but the struct is not packed", d.Field)
}

func (d BitFieldStraddleBoundary) Message() string {
	return fmt.Sprintf("bit-field '%s' occupies the whole storage unit of its type", d.Field)
}

func (d MissingComment) Message() string {
	return fmt.Sprintf("field '%s' has no comment", d.Field)
}

func (InvalidPacketName) Help() string {
	return "packet names must start with a letter or underscore and contain only letters, digits and underscores"
}

func (NamingConventionPacket) Help() string {
	return "packet types conventionally use PascalCase"
}

func (InvalidCommandID) Help() string {
	return "use a decimal integer in 0..65535 or a 0x-prefixed hexadecimal"
}

func (InvalidFieldName) Help() string {
	return "field names must start with a letter or underscore and contain only letters, digits and underscores"
}

func (d KeywordCollision) Help() string {
	return fmt.Sprintf("add a suffix to the field name, e.g. '%s_value'", d.Name)
}

func (DuplicateFieldName) Help() string {
	return "field names must be unique within one packet"
}

func (InvalidFieldType) Help() string {
	return "give the field a primitive C/C++ type name as a string"
}

func (InvalidBitField) Help() string {
	return "bit-field widths must be positive integers"
}

func (BitFieldOnInvalidType) Help() string {
	return "bit-fields require an integral type; strings, floats and booleans-by-pointer are not allowed"
}

func (BitFieldLengthOverflow) Help() string {
	return "a bit-field cannot be wider than the type that stores it"
}

func (BitFieldStraddleBoundaryWithoutPacked) Help() string {
	return "straddling bit-fields have compiler-dependent layout when unpacked; drop the bit-field or set packed"
}

func (BitFieldMissingPackedAttr) Help() string {
	return "packed structs remove padding between bit-field members and keep the layout portable"
}

func (BitFieldStraddleBoundary) Help() string {
	return "a bit-field spanning its whole storage unit costs extra CPU work for no space gain"
}

func (MissingComment) Help() string {
	return "a comment documents the field in the generated header"
}

func (InvalidPacketName) isDetail()                     {}
func (NamingConventionPacket) isDetail()                {}
func (InvalidCommandID) isDetail()                      {}
func (InvalidFieldName) isDetail()                      {}
func (KeywordCollision) isDetail()                      {}
func (DuplicateFieldName) isDetail()                    {}
func (InvalidFieldType) isDetail()                      {}
func (InvalidBitField) isDetail()                       {}
func (BitFieldOnInvalidType) isDetail()                 {}
func (BitFieldLengthOverflow) isDetail()                {}
func (BitFieldStraddleBoundaryWithoutPacked) isDetail() {}
func (BitFieldMissingPackedAttr) isDetail()             {}
func (BitFieldStraddleBoundary) isDetail()              {}
func (MissingComment) isDetail()                        {}
