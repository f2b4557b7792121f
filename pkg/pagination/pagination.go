// Package pagination implements page-number pagination with a
// {count, next, previous, results} envelope.
package pagination

import (
	"math"
	"net/http"
	"net/url"
	"strconv"

	"taskhub-backend/pkg/apperror"
)

const QueryParam = "page"

var errInvalidPage = apperror.NotFound("Invalid page.")

type Page struct {
	Number int
	Size   int
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

func (p Page) Limit() int {
	return p.Size
}

// Parse reads the page number from query. An absent value means page 1.
// Numbers whose offset does not fit in an int are invalid.
func Parse(query url.Values, size int) (Page, error) {
	raw := query.Get(QueryParam)
	if raw == "" {
		return Page{Number: 1, Size: size}, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return Page{}, errInvalidPage
	}
	if size > 0 && n-1 > math.MaxInt/size {
		return Page{}, errInvalidPage
	}
	return Page{Number: n, Size: size}, nil
}

// PageCount is the number of pages for total items; never less than one.
func (p Page) PageCount(total int64) int {
	if total <= 0 || p.Size <= 0 {
		return 1
	}
	return int((total + int64(p.Size) - 1) / int64(p.Size))
}

// Check rejects pages past the last one. The first page is always valid.
func (p Page) Check(total int64) error {
	if p.Number > p.PageCount(total) {
		return errInvalidPage
	}
	return nil
}

type Envelope[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewEnvelope builds the response body. base is the request URL; next and
// previous links keep its other query parameters.
func NewEnvelope[T any](base *url.URL, page Page, total int64, results []T) Envelope[T] {
	if results == nil {
		results = []T{}
	}
	env := Envelope[T]{Count: total, Results: results}
	if page.Number < page.PageCount(total) {
		env.Next = link(base, page.Number+1)
	}
	if page.Number > 1 {
		env.Previous = link(base, page.Number-1)
	}
	return env
}

func link(base *url.URL, number int) *string {
	if base == nil {
		return nil
	}
	u := *base
	q := u.Query()
	if number == 1 {
		q.Del(QueryParam)
	} else {
		q.Set(QueryParam, strconv.Itoa(number))
	}
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}

// RequestURL is the absolute URL of r, used as the base for page links.
func RequestURL(r *http.Request) *url.URL {
	u := *r.URL
	u.Host = r.Host
	u.Scheme = "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		u.Scheme = "https"
	}
	return &u
}
