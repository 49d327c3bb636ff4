package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Request is the full identity of one fetch. Two requests with equal Key
// hit the backend the same way.
type Request struct {
	Path    string
	Method  string
	Headers map[string]string
	// Body is JSON-encoded when non-nil.
	Body any
}

// Get builds a GET request for path.
func Get(path string) Request {
	return Request{Path: path, Method: http.MethodGet}
}

// WithHeader returns a copy of r carrying the extra header.
func (r Request) WithHeader(name, value string) Request {
	headers := make(map[string]string, len(r.Headers)+1)
	for k, v := range r.Headers {
		headers[k] = v
	}
	headers[name] = value
	r.Headers = headers
	return r
}

func (r Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return r.Method
}

// Key renders the request identity. Header order does not matter.
func (r Request) Key() string {
	var b strings.Builder
	b.WriteString(r.method())
	b.WriteByte(' ')
	b.WriteString(r.Path)

	names := make([]string, 0, len(r.Headers))
	for k := range r.Headers {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Fprintf(&b, "\n%s: %s", http.CanonicalHeaderKey(k), r.Headers[k])
	}

	if r.Body != nil {
		body, err := json.Marshal(r.Body)
		if err != nil {
			fmt.Fprintf(&b, "\n\n%v", r.Body)
		} else {
			b.WriteString("\n\n")
			b.Write(body)
		}
	}
	return b.String()
}
