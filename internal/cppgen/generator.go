// Package cppgen renders a validated packet schema into C++ header
// text. Rendering is a pure function of the schema: no hidden state
// between packets, byte-identical output for identical input.
package cppgen

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"rplc/internal/cpp"
	"rplc/internal/diag"
	"rplc/internal/schema"
	"rplc/internal/source"
	"rplc/internal/validator"
)

// Generated is one rendered header, keyed by the packet it came from.
type Generated struct {
	PacketName string
	Header     string
}

// ValidationError marks a generate call on a schema that still carries
// error diagnostics. The diagnostics themselves travel separately.
type ValidationError struct {
	Packet string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("packet %q failed validation", e.Packet)
}

// Render emits the header for a schema with zero error diagnostics.
// Calling it on an unvalidated schema is a contract violation; use
// Generate for the checked path.
func Render(p *schema.Packet) string {
	guard := guardName(p)
	cmd, _ := cpp.ParseCommandID(p.CommandID)

	var b strings.Builder
	fmt.Fprintf(&b, "#ifndef %s\n", guard)
	fmt.Fprintf(&b, "#define %s\n\n", guard)

	b.WriteString("#include <cstdint>\n")
	b.WriteString("#include <RPL/Meta/PacketTraits.hpp>\n\n")

	if p.Namespace != nil {
		fmt.Fprintf(&b, "namespace %s {\n\n", *p.Namespace)
	}

	packed := ""
	if p.Packed {
		packed = "__attribute__((packed)) "
	}
	fmt.Fprintf(&b, "struct %s%s\n{\n", packed, p.PacketName)

	for i := range p.Fields {
		f := &p.Fields[i]
		fmt.Fprintf(&b, "    %s %s", f.Type, f.Name)
		if f.BitField != nil {
			fmt.Fprintf(&b, " : %d", *f.BitField)
		}
		b.WriteByte(';')
		if c := memberComment(f.Comment); c != "" {
			fmt.Fprintf(&b, " // %s", c)
		}
		b.WriteByte('\n')
	}
	b.WriteString("};\n\n")

	b.WriteString("template <>\n")
	fmt.Fprintf(&b, "struct RPL::Meta::PacketTraits<%s> : PacketTraitsBase<PacketTraits<%s>>\n",
		p.PacketName, p.PacketName)
	b.WriteString("{\n")
	fmt.Fprintf(&b, "    static constexpr uint16_t cmd = %s;\n", cpp.FormatCommandID(cmd))
	fmt.Fprintf(&b, "    static constexpr size_t size = sizeof(%s);\n", p.PacketName)
	b.WriteString("};\n")

	if p.Namespace != nil {
		fmt.Fprintf(&b, "} // namespace %s\n\n", *p.Namespace)
	}

	fmt.Fprintf(&b, "#endif // %s\n", guard)
	return b.String()
}

func guardName(p *schema.Packet) string {
	if p.HeaderGuard != nil && *p.HeaderGuard != "" {
		return *p.HeaderGuard
	}
	return fmt.Sprintf("RPL_%s_HPP", strings.ToUpper(p.PacketName))
}

// memberComment normalizes a field comment for emission. Comments come
// from hand-authored JSON and sometimes mix composed and decomposed
// accents; NFC keeps the emitted header stable across authors.
func memberComment(c *string) string {
	if c == nil {
		return ""
	}
	s := strings.TrimSpace(*c)
	if s == "" {
		return ""
	}
	return norm.NFC.String(s)
}

// Generate validates one packet definition and renders its header.
// The returned bag carries all diagnostics, warnings included; a bag
// with errors yields a *ValidationError and no header.
func Generate(fs *source.FileSet, id source.FileID) (*Generated, *diag.Bag, error) {
	file := fs.Get(id)
	p, err := schema.DecodePacket(file.Content)
	if err != nil {
		return nil, nil, err
	}
	bag, err := validator.Validate(file)
	if err != nil {
		return nil, nil, err
	}
	if bag.HasErrors() {
		return nil, bag, &ValidationError{Packet: p.PacketName}
	}
	return &Generated{PacketName: p.PacketName, Header: Render(p)}, bag, nil
}

// GenerateAll handles both input shapes. For the array form each
// packet is validated against its own re-serialized text, and
// generation is fail-fast: headers rendered before the first failing
// packet are returned alongside the *ValidationError, diagnostics for
// every packet up to and including the failing one stay in the bag.
func GenerateAll(fs *source.FileSet, id source.FileID) ([]Generated, *diag.Bag, error) {
	file := fs.Get(id)

	if _, err := schema.DecodePacket(file.Content); err == nil {
		g, bag, err := Generate(fs, id)
		if err != nil {
			return nil, bag, err
		}
		return []Generated{*g}, bag, nil
	}

	packets, err := schema.DecodePackets(file.Content)
	if err != nil {
		return nil, nil, err
	}

	bag := diag.NewBag()
	out := make([]Generated, 0, len(packets))
	for i, p := range packets {
		data, err := schema.Marshal(p)
		if err != nil {
			return out, bag, fmt.Errorf("re-serialize packet %d: %w", i, err)
		}
		sub := fs.AddVirtual(fmt.Sprintf("%s#%d", file.Path, i), data)
		pb, err := validator.Validate(fs.Get(sub))
		if err != nil {
			return out, bag, err
		}
		bag.Merge(pb)
		if pb.HasErrors() {
			return out, bag, &ValidationError{Packet: p.PacketName}
		}
		out = append(out, Generated{PacketName: p.PacketName, Header: Render(p)})
	}
	return out, bag, nil
}
