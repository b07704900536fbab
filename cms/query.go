package cms

import (
	"net/url"
	"strconv"
)

// Query builds Strapi's bracketed query parameters.
type Query struct {
	values url.Values
}

func NewQuery() Query {
	return Query{values: url.Values{}}
}

func (q Query) set(key, value string) Query {
	if q.values == nil {
		q.values = url.Values{}
	}
	q.values.Set(key, value)
	return q
}

func (q Query) Page(n int) Query {
	return q.set("pagination[page]", strconv.Itoa(n))
}

func (q Query) PageSize(n int) Query {
	return q.set("pagination[pageSize]", strconv.Itoa(n))
}

// FilterEq matches field exactly.
func (q Query) FilterEq(field, value string) Query {
	return q.set("filters["+field+"][$eq]", value)
}

// FilterOrContains adds the i-th case-insensitive branch of an $or group.
func (q Query) FilterOrContains(i int, field, value string) Query {
	return q.set("filters[$or]["+strconv.Itoa(i)+"]["+field+"][$containsi]", value)
}

// Sort orders by field; dir is "asc" or "desc".
func (q Query) Sort(field, dir string) Query {
	return q.set("sort["+field+"]", dir)
}

// Populate includes a relation or media field.
func (q Query) Populate(field string) Query {
	return q.set("populate["+field+"]", "true")
}

// Get returns the value for key, mostly useful in tests.
func (q Query) Get(key string) string {
	return q.values.Get(key)
}

// Encode returns the query string with keys sorted.
func (q Query) Encode() string {
	return q.values.Encode()
}

func cacheKey(endpoint, encodedQuery string) string {
	return "cms:" + endpoint + "?" + encodedQuery
}
