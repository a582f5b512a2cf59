package cppgen

import (
	"errors"
	"strings"
	"testing"

	"rplc/internal/schema"
	"rplc/internal/source"
)

func strptr(s string) *string { return &s }

func u8ptr(v uint8) *uint8 { return &v }

func TestRender_BasicPacket(t *testing.T) {
	p := &schema.Packet{
		PacketName:  "BasicPacket",
		CommandID:   "0x0104",
		Packed:      true,
		HeaderGuard: strptr("RPL_BASICPACKET_HPP"),
		Fields: []schema.Field{
			{Name: "field1", Type: "uint8_t", Comment: strptr("First field")},
			{Name: "field2", Type: "float", Comment: strptr("Second field")},
		},
	}

	out := Render(p)

	want := []string{
		"#ifndef RPL_BASICPACKET_HPP\n#define RPL_BASICPACKET_HPP\n",
		"#include <cstdint>\n#include <RPL/Meta/PacketTraits.hpp>\n",
		"struct __attribute__((packed)) BasicPacket\n{\n",
		"    uint8_t field1; // First field\n",
		"    float field2; // Second field\n",
		"template <>\nstruct RPL::Meta::PacketTraits<BasicPacket> : PacketTraitsBase<PacketTraits<BasicPacket>>\n",
		"    static constexpr uint16_t cmd = 0x0104;\n",
		"    static constexpr size_t size = sizeof(BasicPacket);\n",
		"#endif // RPL_BASICPACKET_HPP\n",
	}
	for _, frag := range want {
		if !strings.Contains(out, frag) {
			t.Errorf("output missing %q\n---\n%s", frag, out)
		}
	}
}

func TestRender_Namespace(t *testing.T) {
	p := &schema.Packet{
		PacketName: "NamespacePacket",
		CommandID:  "0xABCD",
		Namespace:  strptr("Robot::Sensors"),
		Packed:     true,
		Fields: []schema.Field{
			{Name: "sensor_id", Type: "uint16_t", Comment: strptr("Sensor identifier")},
		},
	}

	out := Render(p)

	if !strings.Contains(out, "namespace Robot::Sensors {\n") {
		t.Error("namespace not opened")
	}
	if !strings.Contains(out, "} // namespace Robot::Sensors\n") {
		t.Error("namespace not closed")
	}
	if !strings.Contains(out, "cmd = 0xABCD;") {
		t.Errorf("command id rendering wrong:\n%s", out)
	}
}

func TestRender_UnpackedOmitsAttribute(t *testing.T) {
	p := &schema.Packet{
		PacketName: "UnpackedPacket",
		CommandID:  "0x0201",
		Packed:     false,
		Fields: []schema.Field{
			{Name: "data", Type: "int32_t", Comment: strptr("Some data")},
		},
	}

	out := Render(p)

	if strings.Contains(out, "__attribute__((packed))") {
		t.Error("unpacked struct must not carry the packed attribute")
	}
	if !strings.Contains(out, "struct UnpackedPacket\n{\n") {
		t.Errorf("struct declaration wrong:\n%s", out)
	}
}

func TestRender_DefaultHeaderGuard(t *testing.T) {
	p := &schema.Packet{
		PacketName: "DefaultGuardPacket",
		CommandID:  "0x1234",
		Packed:     true,
		Fields:     []schema.Field{{Name: "value", Type: "double", Comment: strptr("A double value")}},
	}

	out := Render(p)
	if !strings.Contains(out, "#ifndef RPL_DEFAULTGUARDPACKET_HPP") {
		t.Errorf("derived guard missing:\n%s", out)
	}
}

func TestRender_BitFieldMembers(t *testing.T) {
	p := &schema.Packet{
		PacketName: "FlagsPacket",
		CommandID:  "7",
		Packed:     true,
		Fields: []schema.Field{
			{Name: "mode", Type: "uint8_t", BitField: u8ptr(3), Comment: strptr("Mode bits")},
			{Name: "spare", Type: "uint8_t", BitField: u8ptr(5)},
		},
	}

	out := Render(p)
	if !strings.Contains(out, "    uint8_t mode : 3; // Mode bits\n") {
		t.Errorf("bit-field member wrong:\n%s", out)
	}
	if !strings.Contains(out, "    uint8_t spare : 5;\n") {
		t.Errorf("comment-less bit-field member wrong:\n%s", out)
	}
	if !strings.Contains(out, "cmd = 0x0007;") {
		t.Errorf("decimal command id must render as padded hex:\n%s", out)
	}
}

func TestRender_EmptyCommentOmitted(t *testing.T) {
	p := &schema.Packet{
		PacketName: "NoCommentPacket",
		CommandID:  "0x0101",
		Packed:     true,
		Fields:     []schema.Field{{Name: "no_comment_field", Type: "uint32_t", Comment: strptr("   ")}},
	}

	out := Render(p)
	if strings.Contains(out, "no_comment_field; //") {
		t.Errorf("blank comment must be dropped:\n%s", out)
	}
}

func TestRender_Idempotent(t *testing.T) {
	p := &schema.Packet{
		PacketName: "StablePacket",
		CommandID:  "42",
		Packed:     true,
		Fields:     []schema.Field{{Name: "x", Type: "uint8_t", Comment: strptr("byte")}},
	}
	if Render(p) != Render(p) {
		t.Error("rendering must be byte-identical across calls")
	}
}

func TestGenerate_ValidInput(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("basic.json", []byte(`{
	  "packet_name": "BasicPacket",
	  "command_id": "0x0104",
	  "fields": [{"name": "field1", "type": "uint8_t", "comment": "First field"}]
	}`))

	g, bag, err := Generate(fs, id)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if g.PacketName != "BasicPacket" {
		t.Errorf("PacketName = %q", g.PacketName)
	}
	if bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %+v", bag.Items())
	}
	if !strings.Contains(g.Header, "struct __attribute__((packed)) BasicPacket") {
		t.Errorf("header wrong:\n%s", g.Header)
	}
}

func TestGenerate_InvalidInputFailsWithValidationError(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.json", []byte(`{
	  "packet_name": "ValidPacket",
	  "command_id": "invalid-command-id",
	  "fields": [{"name": "valid_field", "type": "uint8_t", "comment": "A field"}]
	}`))

	g, bag, err := Generate(fs, id)
	if g != nil {
		t.Error("no header must be produced")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if verr.Packet != "ValidPacket" {
		t.Errorf("ValidationError.Packet = %q", verr.Packet)
	}
	if bag == nil || !bag.HasErrors() {
		t.Error("diagnostics must accompany the failure")
	}
}

func TestGenerate_WarningsDoNotBlock(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("warn.json", []byte(`{
	  "packet_name": "WarnPacket",
	  "command_id": "1",
	  "fields": [{"name": "f", "type": "int"}]
	}`))

	g, bag, err := Generate(fs, id)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !bag.HasWarnings() {
		t.Error("expected a missing-comment warning")
	}
	if g == nil || g.Header == "" {
		t.Error("warnings must not block generation")
	}
}

func TestGenerateAll_FailFastKeepsEarlierHeaders(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("multi.json", []byte(`[
	  {"packet_name": "FirstPacket", "command_id": "1",
	   "fields": [{"name": "a", "type": "int", "comment": "c"}]},
	  {"packet_name": "1Broken", "command_id": "2",
	   "fields": [{"name": "b", "type": "int", "comment": "c"}]},
	  {"packet_name": "ThirdPacket", "command_id": "3",
	   "fields": [{"name": "c", "type": "int", "comment": "c"}]}
	]`))

	out, bag, err := GenerateAll(fs, id)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if verr.Packet != "1Broken" {
		t.Errorf("failing packet = %q, want 1Broken", verr.Packet)
	}
	if len(out) != 1 || out[0].PacketName != "FirstPacket" {
		t.Errorf("headers before the failure must survive, got %+v", out)
	}
	if !bag.HasErrors() {
		t.Error("bag must carry the failing packet's diagnostics")
	}
}

func TestGenerateAll_SingleForm(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("one.json", []byte(`{
	  "packet_name": "OnlyPacket",
	  "command_id": "9",
	  "fields": [{"name": "v", "type": "uint16_t", "comment": "value"}]
	}`))

	out, _, err := GenerateAll(fs, id)
	if err != nil {
		t.Fatalf("GenerateAll failed: %v", err)
	}
	if len(out) != 1 || out[0].PacketName != "OnlyPacket" {
		t.Errorf("out = %+v", out)
	}
}
