package diag

import (
	"strings"
	"testing"

	"rplc/internal/source"
)

func TestBag_ReportAndCounts(t *testing.T) {
	bag := NewBag()
	if bag.HasErrors() || bag.HasWarnings() || bag.Len() != 0 {
		t.Fatal("new bag must be empty")
	}

	bag.Report(InvalidPacketName{Name: "1bad"}, source.Span{Start: 2, End: 8})
	bag.Report(MissingComment{Field: "crc"}, source.Span{Start: 20, End: 25})

	if !bag.HasErrors() {
		t.Error("expected errors")
	}
	if !bag.HasWarnings() {
		t.Error("expected warnings")
	}
	if bag.ErrorCount() != 1 {
		t.Errorf("ErrorCount() = %d, want 1", bag.ErrorCount())
	}
	if bag.Len() != 2 {
		t.Errorf("Len() = %d, want 2", bag.Len())
	}
}

func TestBag_PreservesInsertionOrder(t *testing.T) {
	bag := NewBag()
	bag.Report(InvalidFieldName{Name: "a b"}, source.Span{})
	bag.Report(KeywordCollision{Name: "class"}, source.Span{})
	bag.Report(DuplicateFieldName{Name: "x"}, source.Span{})

	want := []Code{ValInvalidFieldName, ValKeywordCollision, ValDuplicateFieldName}
	items := bag.Items()
	for i, code := range want {
		if items[i].Code != code {
			t.Errorf("items[%d].Code = %v, want %v", i, items[i].Code, code)
		}
	}
}

func TestBag_Merge(t *testing.T) {
	a := NewBag()
	a.Report(InvalidCommandID{ID: "0xFFFFF"}, source.Span{})

	b := NewBag()
	b.Report(MissingComment{Field: "flags"}, source.Span{})

	a.Merge(b)
	if a.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", a.Len())
	}
	if a.Items()[1].Code != ValMissingComment {
		t.Errorf("merged order wrong: %v", a.Items()[1].Code)
	}

	a.Merge(nil)
	if a.Len() != 2 {
		t.Error("Merge(nil) must be a no-op")
	}
}

func TestNew_AttachesHelpAsNote(t *testing.T) {
	span := source.Span{Start: 4, End: 9}
	d := New(KeywordCollision{Name: "class"}, span)

	if d.Severity != SevError {
		t.Errorf("Severity = %v, want SevError", d.Severity)
	}
	if d.Code != ValKeywordCollision {
		t.Errorf("Code = %v, want ValKeywordCollision", d.Code)
	}
	if d.Primary != span {
		t.Errorf("Primary = %+v, want %+v", d.Primary, span)
	}
	if len(d.Notes) != 1 {
		t.Fatalf("Notes = %d, want 1", len(d.Notes))
	}
	if !strings.Contains(d.Notes[0].Msg, "class_value") {
		t.Errorf("help note %q should suggest a renamed field", d.Notes[0].Msg)
	}
}

func TestDetailMessages(t *testing.T) {
	tests := []struct {
		name   string
		detail Detail
		want   []string
	}{
		{
			"overflow carries widths",
			BitFieldLengthOverflow{Field: "field", Width: 10, TypeBits: 8},
			[]string{"10", "field", "8 bits"},
		},
		{
			"straddle names both fields",
			BitFieldStraddleBoundaryWithoutPacked{Prev: "field1", Field: "field2", PrevWidth: 5, Width: 4, TypeBits: 8},
			[]string{"field1", "field2", "5 + 4 > 8"},
		},
		{
			"bad type names the type",
			BitFieldOnInvalidType{Field: "ratio", Type: "float"},
			[]string{"ratio", "float"},
		},
		{
			"duplicate names the field",
			DuplicateFieldName{Name: "crc"},
			[]string{"crc", "more than once"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.detail.Message()
			for _, frag := range tt.want {
				if !strings.Contains(msg, frag) {
					t.Errorf("message %q missing %q", msg, frag)
				}
			}
		})
	}
}

func TestCode_ID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{ValInvalidPacketName, "VAL3001"},
		{ValBitFieldStraddleBoundaryWithoutPacked, "VAL3010"},
		{ValNamingConventionPacket, "VAL3101"},
		{ValBitFieldStraddleBoundary, "VAL3104"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("ID(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestSeverity_String(t *testing.T) {
	if SevError.String() != "ERROR" {
		t.Errorf("SevError.String() = %q", SevError.String())
	}
	if SevWarning.String() != "WARNING" {
		t.Errorf("SevWarning.String() = %q", SevWarning.String())
	}
}
