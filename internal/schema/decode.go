package schema

import (
	"encoding/json"
	"fmt"
)

// rawPacket mirrors Packet with every key optional, so decoding can
// tell a missing key from a zero value and report it precisely.
type rawPacket struct {
	PacketName  *string    `json:"packet_name"`
	CommandID   *string    `json:"command_id"`
	Namespace   *string    `json:"namespace"`
	Packed      *bool      `json:"packed"`
	HeaderGuard *string    `json:"header_guard"`
	Comment     *string    `json:"comment"`
	Fields      *[]rawField `json:"fields"`
}

type rawField struct {
	Name     *string `json:"name"`
	Type     *string `json:"type"`
	BitField *uint8  `json:"bit_field"`
	Comment  *string `json:"comment"`
}

func (r *rawPacket) toPacket() (*Packet, error) {
	if r.PacketName == nil {
		return nil, fmt.Errorf("missing required key %q", "packet_name")
	}
	if r.CommandID == nil {
		return nil, fmt.Errorf("missing required key %q", "command_id")
	}
	if r.Fields == nil {
		return nil, fmt.Errorf("missing required key %q", "fields")
	}

	p := &Packet{
		PacketName:  *r.PacketName,
		CommandID:   *r.CommandID,
		Namespace:   r.Namespace,
		Packed:      true, // compact layout unless explicitly disabled
		HeaderGuard: r.HeaderGuard,
		Comment:     r.Comment,
		Fields:      make([]Field, 0, len(*r.Fields)),
	}
	if r.Packed != nil {
		p.Packed = *r.Packed
	}

	for i := range *r.Fields {
		rf := &(*r.Fields)[i]
		if rf.Name == nil {
			return nil, fmt.Errorf("field %d: missing required key %q", i, "name")
		}
		if rf.Type == nil {
			return nil, fmt.Errorf("field %d: missing required key %q", i, "type")
		}
		p.Fields = append(p.Fields, Field{
			Name:     *rf.Name,
			Type:     *rf.Type,
			BitField: rf.BitField,
			Comment:  rf.Comment,
		})
	}
	return p, nil
}

// DecodePacket decodes a single packet object.
func DecodePacket(data []byte) (*Packet, error) {
	var raw rawPacket
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw.toPacket()
}

// DecodePackets decodes an array of packet objects.
func DecodePackets(data []byte) ([]*Packet, error) {
	var raws []rawPacket
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}
	packets := make([]*Packet, 0, len(raws))
	for i := range raws {
		p, err := raws[i].toPacket()
		if err != nil {
			return nil, fmt.Errorf("packet %d: %w", i, err)
		}
		packets = append(packets, p)
	}
	return packets, nil
}

// Decode accepts the single-object form or the array form. The single
// form is attempted first for backward compatibility; the two shapes
// are structurally distinct, so an array never decodes as one packet.
func Decode(data []byte) (packets []*Packet, multi bool, err error) {
	if p, err := DecodePacket(data); err == nil {
		return []*Packet{p}, false, nil
	}
	ps, err := DecodePackets(data)
	if err != nil {
		return nil, false, err
	}
	return ps, true, nil
}

// Marshal renders a packet back to canonical JSON. Packets split out
// of a multi-packet array are re-validated against this serialized
// text, so diagnostic spans stay relative to it.
func Marshal(p *Packet) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}
