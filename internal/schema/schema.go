// Package schema holds the clean, typed model of one packet definition.
// The validator never looks at this model (it walks the span-tracked
// tree instead); the generator consumes nothing else.
package schema

// Packet describes one packet definition. Field order is significant:
// struct member order = declaration order = byte order.
type Packet struct {
	PacketName  string  `json:"packet_name"`
	CommandID   string  `json:"command_id"`
	Namespace   *string `json:"namespace"`
	Packed      bool    `json:"packed"`
	HeaderGuard *string `json:"header_guard"`
	Comment     *string `json:"comment"`
	Fields      []Field `json:"fields"`
}

// Field describes one struct member.
type Field struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	BitField *uint8  `json:"bit_field"`
	Comment  *string `json:"comment"`
}

// HasBitField reports whether the field carries a bit-field width.
func (f *Field) HasBitField() bool {
	return f.BitField != nil
}
