package rodata

import "github.com/recera/rodata/internal/provider"

// EntitySetQuery describes a paginated read of an OData entity-set
// collection: GET url, with $filter/$select/$orderby applied in that
// fixed order, following @odata.nextLink until the server stops
// returning one.
type EntitySetQuery = provider.EntitySetQuery

// EntityIndividualQuery describes a single-entity-by-key read: GET url,
// expecting exactly one JSON object in the response.
type EntityIndividualQuery = provider.EntityIndividualQuery

// FunctionQuery describes an OData function-import call: GET url,
// behaving like EntitySetQuery but never following a next-page link.
type FunctionQuery = provider.FunctionQuery

// PropertyQuery describes a raw single-property read (an OData
// `.../PropertyName` or `.../PropertyName/$value` request), where the
// entire response body is one JSON scalar.
type PropertyQuery = provider.PropertyQuery
