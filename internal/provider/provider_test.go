package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/recera/rodata/internal/entitystream"
	"github.com/recera/rodata/internal/fetch"
)

func TestBuildEntitySetURL(t *testing.T) {
	tests := []struct {
		name string
		q    EntitySetQuery
		want string
	}{
		{
			name: "no options",
			q:    EntitySetQuery{URL: "http://host/Entities"},
			want: "http://host/Entities",
		},
		{
			name: "all three options in fixed order",
			q: EntitySetQuery{
				URL:     "http://host/Entities",
				OrderBy: "Name",
				Select:  "Id,Name",
				Filter:  "Id gt 5",
			},
			want: "http://host/Entities?$filter=Id gt 5&$select=Id,Name&$orderby=Name",
		},
		{
			name: "select only",
			q:    EntitySetQuery{URL: "http://host/Entities", Select: "Id"},
			want: "http://host/Entities?$select=Id",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildEntitySetURL(tt.q); got != tt.want {
				t.Errorf("buildEntitySetURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

// collectKinds drains events into a slice of ValueKinds, for assertions
// that don't care about exact path/text values.
func collectKinds(events <-chan entitystream.Event) []entitystream.ValueKind {
	var out []entitystream.ValueKind
	for e := range events {
		out = append(out, e.Value.Kind)
	}
	return out
}

func TestRunEntitySet_FollowsPagination(t *testing.T) {
	pageTwoCalled := false
	mux := http.NewServeMux()
	mux.HandleFunc("/Entities", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"value":[{"id":1}],"@odata.nextLink":"` + "http://" + r.Host + `/Entities2"}`))
	})
	mux.HandleFunc("/Entities2", func(w http.ResponseWriter, r *http.Request) {
		pageTwoCalled = true
		w.Write([]byte(`{"value":[{"id":2}]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	events := make(chan entitystream.Event, 1024)
	done := make(chan error, 1)
	go func() {
		q := EntitySetQuery{URL: srv.URL + "/Entities"}
		err := RunEntitySet(context.Background(), fetch.New(), q, events)
		close(events)
		done <- err
	}()

	kinds := collectKinds(events)
	if err := <-done; err != nil {
		t.Fatalf("RunEntitySet() error = %v", err)
	}

	var numbers int
	for _, k := range kinds {
		if k == entitystream.Number {
			numbers++
		}
	}
	if numbers != 2 {
		t.Errorf("expected 2 Number events across both pages, got %d (kinds=%v)", numbers, kinds)
	}
	if !pageTwoCalled {
		t.Error("expected the driver to follow @odata.nextLink to page two")
	}
}

func TestRunEntityIndividual_StreamsEntityKeys(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"name":"widget","@odata.context":"ctx"}`))
	}))
	defer srv.Close()

	events := make(chan entitystream.Event, 1024)
	done := make(chan error, 1)
	go func() {
		q := EntityIndividualQuery{URL: srv.URL}
		err := RunEntityIndividual(context.Background(), fetch.New(), q, events)
		close(events)
		done <- err
	}()

	var saw struct{ id, name, context bool }
	for e := range events {
		if len(e.Path) == 1 && e.Path[0].Key == "id" {
			saw.id = true
		}
		if len(e.Path) == 1 && e.Path[0].Key == "name" {
			saw.name = true
		}
		if e.Path.HasODataControlKey() {
			saw.context = true
		}
	}
	if err := <-done; err != nil {
		t.Fatalf("RunEntityIndividual() error = %v", err)
	}
	if !saw.id || !saw.name {
		t.Errorf("expected id and name events, got id=%v name=%v", saw.id, saw.name)
	}
	if saw.context {
		t.Errorf("@odata.context leaked into the event stream")
	}
}

func TestRunProperty_EmitsBareScalar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`"a raw value"`))
	}))
	defer srv.Close()

	events := make(chan entitystream.Event, 4)
	done := make(chan error, 1)
	go func() {
		q := PropertyQuery{URL: srv.URL}
		err := RunProperty(context.Background(), fetch.New(), q, events)
		close(events)
		done <- err
	}()

	var got []entitystream.Event
	for e := range events {
		got = append(got, e)
	}
	if err := <-done; err != nil {
		t.Fatalf("RunProperty() error = %v", err)
	}
	if len(got) != 1 || got[0].Value.Kind != entitystream.String || got[0].Value.Text != "a raw value" {
		t.Fatalf("got %+v, want a single String event", got)
	}
}
