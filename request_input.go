package realip

import (
	"context"
	"net/http"
)

// HeaderValues provides access to request header values by name.
//
// Header names are requested in canonical MIME format (for example
// "X-Forwarded-For"). Only the first value of a name is consulted.
//
// net/http's http.Header satisfies this interface directly.
type HeaderValues interface {
	Values(name string) []string
}

// HeaderValuesFunc adapts a function to the HeaderValues interface.
type HeaderValuesFunc func(name string) []string

// Values implements HeaderValues.
func (f HeaderValuesFunc) Values(name string) []string {
	if f == nil {
		return nil
	}

	return f(name)
}

// RequestInput provides framework-agnostic request data for resolution.
//
// Context defaults to context.Background() when nil. An address cached in
// Context by NewContext takes precedence over headers during extraction.
// An empty RemoteAddr means no peer address is available.
type RequestInput struct {
	Context    context.Context
	RemoteAddr string
	Path       string
	Headers    HeaderValues
}

func requestInputContext(input RequestInput) context.Context {
	if input.Context == nil {
		return context.Background()
	}

	return input.Context
}

// headerLookup returns the first value of a canonical header key.
type headerLookup func(key string) string

func httpHeaderLookup(h http.Header) headerLookup {
	return func(key string) string {
		if h == nil {
			return ""
		}
		return h.Get(key)
	}
}

func inputHeaderLookup(h HeaderValues) headerLookup {
	if isNilInterface(h) {
		return func(string) string { return "" }
	}

	if header, ok := h.(http.Header); ok {
		return httpHeaderLookup(header)
	}

	return func(key string) string {
		values := h.Values(key)
		if len(values) == 0 {
			return ""
		}
		return values[0]
	}
}

func requestPath(r *http.Request) string {
	if r == nil || r.URL == nil {
		return ""
	}
	return r.URL.Path
}
