package convert

import (
	"testing"

	"github.com/recera/rodata/internal/entitystream"
)

func TestRunXML_EmptyArrayIsUnwrapped(t *testing.T) {
	got := collectChunks(t, RunXML, produceEvents(t, `[]`))
	if got != `` {
		t.Errorf("got %q, want empty string", got)
	}
}

func TestRunXML_FlatObject(t *testing.T) {
	got := collectChunks(t, RunXML, produceEvents(t, `{"a":1,"b":null}`))
	want := `<a>1</a><b/>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRunXML_ArrayElementsNamedValue(t *testing.T) {
	got := collectChunks(t, RunXML, produceEvents(t, `[1,2]`))
	want := `<value>1</value><value>2</value>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRunXML_FiltersODataControlKeys(t *testing.T) {
	got := collectChunks(t, RunXML, produceEvents(t, `{"@odata.context":"ctx","id":1}`))
	want := `<id>1</id>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// A root-level scalar is reachable via RunProperty, which streams with
// entitystream.RootValue and no enclosing object or array. It must render
// bare, with no wrapping element.
func TestRunXML_RootScalarRendersBare(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"string", `"hello"`, `hello`},
		{"number", `42`, `42`},
		{"bool", `true`, `true`},
		{"null", `null`, ``},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := collectChunks(t, RunXML, produceEventsRoot(t, c.body, entitystream.RootValue))
			if got != c.want {
				t.Errorf("got %q, want %q", got, c.want)
			}
		})
	}
}
