package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"rplc/internal/diag"
	"rplc/internal/source"
)

func testBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	text := `{"packet_name": "1Bad",
  "command_id": "99999999"}`
	fs := source.NewFileSet()
	id := fs.AddVirtual("packet.json", []byte(text))

	bag := diag.NewBag()
	nameStart := uint32(strings.Index(text, `"1Bad"`))
	bag.Report(diag.InvalidPacketName{Name: "1Bad"}, source.Span{
		File: id, Start: nameStart, End: nameStart + 6,
	})
	idStart := uint32(strings.Index(text, `"99999999"`))
	bag.Report(diag.InvalidCommandID{ID: "99999999"}, source.Span{
		File: id, Start: idStart, End: idStart + 10,
	})
	return bag, fs
}

func TestPretty_HeaderAndCaret(t *testing.T) {
	bag, fs := testBag(t)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true})
	out := buf.String()

	if !strings.Contains(out, "packet.json:1:17: ERROR VAL3001:") {
		t.Errorf("header line wrong:\n%s", out)
	}
	if !strings.Contains(out, "packet name '1Bad' is not a valid C++ identifier") {
		t.Errorf("message missing:\n%s", out)
	}
	if !strings.Contains(out, "^~~~~") {
		t.Errorf("caret underline missing:\n%s", out)
	}
	if !strings.Contains(out, "note:") {
		t.Errorf("help note missing with ShowNotes:\n%s", out)
	}
	// Second diagnostic lands on line 2.
	if !strings.Contains(out, "packet.json:2:17: ERROR VAL3005:") {
		t.Errorf("second header wrong:\n%s", out)
	}
}

func TestPretty_MaxTruncates(t *testing.T) {
	bag, fs := testBag(t)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Max: 1})
	out := buf.String()

	if strings.Contains(out, "VAL3005") {
		t.Errorf("second diagnostic must be cut:\n%s", out)
	}
	if !strings.Contains(out, "and 1 more") {
		t.Errorf("truncation notice missing:\n%s", out)
	}
}

func TestJSON_Output(t *testing.T) {
	bag, fs := testBag(t)

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true})
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("count = %d, diagnostics = %d", out.Count, len(out.Diagnostics))
	}

	first := out.Diagnostics[0]
	if first.Severity != "ERROR" || first.Code != "VAL3001" {
		t.Errorf("first = %+v", first)
	}
	if first.Location.File != "packet.json" {
		t.Errorf("file = %q", first.Location.File)
	}
	if first.Location.StartLine != 1 || first.Location.StartCol != 17 {
		t.Errorf("position = %d:%d, want 1:17", first.Location.StartLine, first.Location.StartCol)
	}
	if len(first.Notes) == 0 {
		t.Error("notes missing with IncludeNotes")
	}
}

func TestJSON_MaxLimitsOutputNotBag(t *testing.T) {
	bag, fs := testBag(t)

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{Max: 1}); err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 1 {
		t.Errorf("count = %d, want 1", out.Count)
	}
	if bag.Len() != 2 {
		t.Errorf("bag mutated: len = %d", bag.Len())
	}
}
