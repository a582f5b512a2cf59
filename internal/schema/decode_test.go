package schema

import (
	"strings"
	"testing"
)

const singlePacket = `{
  "packet_name": "BasicPacket",
  "command_id": "0x0104",
  "namespace": null,
  "packed": true,
  "header_guard": "RPL_BASICPACKET_HPP",
  "fields": [
    {"name": "field1", "type": "uint8_t", "comment": "First field"},
    {"name": "field2", "type": "float", "comment": null}
  ]
}`

func TestDecodePacket(t *testing.T) {
	p, err := DecodePacket([]byte(singlePacket))
	if err != nil {
		t.Fatalf("DecodePacket failed: %v", err)
	}

	if p.PacketName != "BasicPacket" {
		t.Errorf("PacketName = %q", p.PacketName)
	}
	if p.CommandID != "0x0104" {
		t.Errorf("CommandID = %q", p.CommandID)
	}
	if p.Namespace != nil {
		t.Errorf("Namespace = %v, want nil", *p.Namespace)
	}
	if !p.Packed {
		t.Error("Packed = false, want true")
	}
	if p.HeaderGuard == nil || *p.HeaderGuard != "RPL_BASICPACKET_HPP" {
		t.Errorf("HeaderGuard = %v", p.HeaderGuard)
	}
	if len(p.Fields) != 2 {
		t.Fatalf("Fields = %d, want 2", len(p.Fields))
	}
	if p.Fields[0].Comment == nil || *p.Fields[0].Comment != "First field" {
		t.Errorf("Fields[0].Comment = %v", p.Fields[0].Comment)
	}
	if p.Fields[1].Comment != nil {
		t.Errorf("Fields[1].Comment = %v, want nil", *p.Fields[1].Comment)
	}
	if p.Fields[0].HasBitField() {
		t.Error("Fields[0] must not report a bit-field")
	}
}

func TestDecodePacket_PackedDefaultsTrue(t *testing.T) {
	data := `{"packet_name": "P", "command_id": "1", "fields": []}`
	p, err := DecodePacket([]byte(data))
	if err != nil {
		t.Fatalf("DecodePacket failed: %v", err)
	}
	if !p.Packed {
		t.Error("Packed must default to true when absent")
	}
}

func TestDecodePacket_MissingRequiredKeys(t *testing.T) {
	tests := []struct {
		name string
		data string
		key  string
	}{
		{"no packet_name", `{"command_id": "1", "fields": []}`, "packet_name"},
		{"no command_id", `{"packet_name": "P", "fields": []}`, "command_id"},
		{"no fields", `{"packet_name": "P", "command_id": "1"}`, "fields"},
		{"field without name", `{"packet_name": "P", "command_id": "1", "fields": [{"type": "int"}]}`, "name"},
		{"field without type", `{"packet_name": "P", "command_id": "1", "fields": [{"name": "f"}]}`, "type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePacket([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.key) {
				t.Errorf("error %q does not name missing key %q", err, tt.key)
			}
		})
	}
}

func TestDecodePackets(t *testing.T) {
	data := `[
	  {"packet_name": "A", "command_id": "1", "fields": []},
	  {"packet_name": "B", "command_id": "2", "packed": false, "fields": []}
	]`
	packets, err := DecodePackets([]byte(data))
	if err != nil {
		t.Fatalf("DecodePackets failed: %v", err)
	}
	if len(packets) != 2 {
		t.Fatalf("len = %d, want 2", len(packets))
	}
	if packets[0].PacketName != "A" || packets[1].PacketName != "B" {
		t.Errorf("order not preserved: %s, %s", packets[0].PacketName, packets[1].PacketName)
	}
	if packets[1].Packed {
		t.Error("packets[1].Packed = true, want false")
	}
}

func TestDecode_ShapeDetection(t *testing.T) {
	single := `{"packet_name": "A", "command_id": "1", "fields": []}`
	packets, multi, err := Decode([]byte(single))
	if err != nil || multi || len(packets) != 1 {
		t.Errorf("single form: %v packets, multi=%v, err=%v", len(packets), multi, err)
	}

	array := `[{"packet_name": "A", "command_id": "1", "fields": []}]`
	packets, multi, err = Decode([]byte(array))
	if err != nil || !multi || len(packets) != 1 {
		t.Errorf("array form: %v packets, multi=%v, err=%v", len(packets), multi, err)
	}

	if _, _, err = Decode([]byte(`"neither"`)); err == nil {
		t.Error("non-schema value must fail")
	}
}

func TestMarshal_RoundTrips(t *testing.T) {
	p, err := DecodePacket([]byte(singlePacket))
	if err != nil {
		t.Fatalf("DecodePacket failed: %v", err)
	}
	data, err := Marshal(p)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	back, err := DecodePacket(data)
	if err != nil {
		t.Fatalf("re-decode failed: %v", err)
	}
	if back.PacketName != p.PacketName || len(back.Fields) != len(p.Fields) {
		t.Errorf("round trip changed the packet: %+v", back)
	}
}
