// Package provider implements the three (plus one supplemented) thin
// query drivers that configure and run an entitystream.Streamer over the
// appropriate framing shape, per the fetched OData response.
package provider

// EntitySetQuery configures a paginated entity-set read: the initial URL
// is built from the collection URL plus any of the three supported query
// options, in the fixed order $filter, $select, $orderby. No URL-encoding
// is performed here — callers supply already-encoded option values.
type EntitySetQuery struct {
	URL     string
	Select  string
	Filter  string
	OrderBy string
	User    *string
	Pass    *string
}

// EntityIndividualQuery configures a single-entity read, e.g.
// "Entities(1)".
type EntityIndividualQuery struct {
	URL  string
	User *string
	Pass *string
}

// FunctionQuery configures an OData function-import read whose result is
// wrapped the same way a collection response is (`{"value":[...]}`) but
// is never paginated.
type FunctionQuery struct {
	URL  string
	User *string
	Pass *string
}

// PropertyQuery configures a raw single-property read, e.g.
// "Entities(1)/PropertyName/$value" or "Entities(1)/PropertyName". The
// response is a bare JSON scalar with no enclosing object or array.
type PropertyQuery struct {
	URL  string
	User *string
	Pass *string
}
