package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/km-arc/go-validator/framework/validation"
)

const maxMemory = 32 << 20 // 32 MB

var (
	// ErrEmptyBody is returned when a JSON request carries no body.
	ErrEmptyBody = errors.New("empty request body")

	// ErrMalformedBody is returned when the body cannot be decoded.
	ErrMalformedBody = errors.New("malformed request body")
)

// Request wraps *http.Request with input helpers.
type Request struct {
	raw *http.Request
}

// NewRequest wraps a standard *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r}
}

// ── Binding ──────────────────────────────────────────────────────────────────

// Bind decodes the request body into v.
// JSON bodies keep numbers as json.Number so integers survive untouched.
// Form bodies are flattened first and then mapped via `json:"name"` tags.
func (req *Request) Bind(v any) error {
	if req.IsJSON() {
		return req.bindJSON(v)
	}
	values, err := req.formValues()
	if err != nil {
		return err
	}
	b, err := json.Marshal(flatten(values))
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// Data returns the request body as a validation payload.
//
//	POST {"age": 21}            → Data{"age": json.Number("21")}
//	POST tags=a&tags=b&name=x   → Data{"tags": []string{"a","b"}, "name": "x"}
func (req *Request) Data() (validation.Data, error) {
	if req.IsJSON() {
		data := validation.Data{}
		if err := req.bindJSON(&data); err != nil {
			return nil, err
		}
		return data, nil
	}
	values, err := req.formValues()
	if err != nil {
		return nil, err
	}
	return flatten(values), nil
}

func (req *Request) bindJSON(v any) error {
	defer req.raw.Body.Close()
	body, err := io.ReadAll(req.raw.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return ErrEmptyBody
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	return nil
}

func (req *Request) formValues() (map[string][]string, error) {
	if strings.Contains(req.ContentType(), "multipart/form-data") {
		if err := req.raw.ParseMultipartForm(maxMemory); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
		}
		return req.raw.MultipartForm.Value, nil
	}
	if err := req.raw.ParseForm(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	return req.raw.PostForm, nil
}

// flatten collapses single-valued form fields to a plain string.
func flatten(values map[string][]string) validation.Data {
	m := make(validation.Data, len(values))
	for k, vals := range values {
		if len(vals) == 1 {
			m[k] = vals[0]
		} else {
			m[k] = vals
		}
	}
	return m
}

// ── Input helpers ────────────────────────────────────────────────────────────

// RouteParam returns a URL route parameter (chi).
func (req *Request) RouteParam(key string) string {
	return chi.URLParam(req.raw, key)
}

// ContentType returns the Content-Type header value.
func (req *Request) ContentType() string {
	return req.raw.Header.Get("Content-Type")
}

// IsJSON reports whether the body is decoded as JSON. A request without a
// Content-Type counts as JSON.
func (req *Request) IsJSON() bool {
	ct := req.ContentType()
	return ct == "" || strings.Contains(ct, "application/json")
}
