package convert

import "testing"

func TestRunCSV_EmptyArrayProducesNoOutput(t *testing.T) {
	got := collectChunks(t, RunCSV, produceEvents(t, `[]`))
	if got != `` {
		t.Errorf("got %q, want empty string", got)
	}
}

func TestRunCSV_SingleObjectNullFieldIsEmptyCell(t *testing.T) {
	got := collectChunks(t, RunCSV, produceEvents(t, `{"a":1,"b":null}`))
	want := "a;b\r\n1;\r\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRunCSV_ArrayHeaderLockedToFirstRecord(t *testing.T) {
	got := collectChunks(t, RunCSV, produceEvents(t, `[{"n":"a"},{"n":"b"}]`))
	want := "n\r\n\"a\"\r\n\"b\"\r\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRunCSV_FlattensNestedComplexValue(t *testing.T) {
	got := collectChunks(t, RunCSV, produceEvents(t, `[{"p":{"q":1,"r":[2,3]}}]`))
	want := "p\r\n(q: 1 / r: 2 / 3)\r\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// Nested scalars use different literal rules than a top-level record
// field: null renders as the text "null" instead of an empty cell, and a
// string renders bare instead of quoted.
func TestRunCSV_NestedNullAndStringUseNestedRules(t *testing.T) {
	got := collectChunks(t, RunCSV, produceEvents(t, `[{"p":{"q":null,"r":"s"}}]`))
	want := "p\r\n(q: null / r: s)\r\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// A top-level field's own null/string value, for contrast, follows the
// top-level rules: an empty cell and a quoted string, unlike inside a
// flattened complex value.
func TestRunCSV_TopLevelNullAndStringUseTopLevelRules(t *testing.T) {
	got := collectChunks(t, RunCSV, produceEvents(t, `[{"a":null,"b":"s"}]`))
	want := "a;b\r\n;\"s\"\r\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
