package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"wildtrack-backend/internal/failure"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100

	// MaxPage keeps (page-1)*limit inside int64 for any limit up to MaxLimit.
	MaxPage = math.MaxInt64 / MaxLimit
)

var ErrMultipleObjects = errors.New("body must contain a single JSON object")

// DecodeJSON decodes a single JSON object into v. A value of the wrong JSON
// type still lets the rest of the object decode; the first such mismatch is
// returned as a *json.UnmarshalTypeError.
func DecodeJSON(body io.Reader, v interface{}) error {
	dec := json.NewDecoder(body)
	err := dec.Decode(v)
	var typeErr *json.UnmarshalTypeError
	if err != nil && !errors.As(err, &typeErr) {
		return err
	}
	if dec.Decode(&struct{}{}) != io.EOF {
		return ErrMultipleObjects
	}
	return err
}

// DecodeFields decodes like DecodeJSON but reports a type mismatch on a named
// field as a field error, so it can be listed with the validation errors.
// err is only set for bodies that are not usable at all.
func DecodeFields(body io.Reader, v interface{}) ([]failure.FieldError, error) {
	err := DecodeJSON(body, v)
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return []failure.FieldError{{Field: typeErr.Field, Message: typeMessage(typeErr)}}, nil
	}
	return nil, err
}

func typeMessage(e *json.UnmarshalTypeError) string {
	if e.Type == nil {
		return e.Field + " has an invalid type"
	}
	switch e.Type.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return e.Field + " must be a number"
	case reflect.String:
		return e.Field + " must be a string"
	case reflect.Bool:
		return e.Field + " must be true or false"
	case reflect.Slice, reflect.Array:
		return e.Field + " must be a list"
	}
	return e.Field + " has an invalid type"
}

// MergeFields appends extra to fields, skipping any field already reported.
func MergeFields(fields, extra []failure.FieldError) []failure.FieldError {
	if len(fields) == 0 {
		return extra
	}
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		seen[f.Field] = struct{}{}
	}
	for _, f := range extra {
		if _, ok := seen[f.Field]; !ok {
			fields = append(fields, f)
		}
	}
	return fields
}

// Page is a 1-based page request.
type Page struct {
	Page  int64
	Limit int64
}

func (p Page) Skip() int64 {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt64/p.Limit {
		return math.MaxInt64
	}
	return (p.Page - 1) * p.Limit
}

// TotalPages returns the number of pages needed to hold total items.
func (p Page) TotalPages(total int64) int64 {
	if p.Limit <= 0 || total <= 0 {
		return 0
	}
	return (total + p.Limit - 1) / p.Limit
}

// ParsePage reads page and limit, falling back to the defaults for anything
// that is not a positive integer. limit is capped at MaxLimit and page at
// MaxPage.
func ParsePage(values url.Values) Page {
	page := Page{Page: DefaultPage, Limit: DefaultLimit}

	if parsed, err := strconv.ParseInt(strings.TrimSpace(values.Get("page")), 10, 64); err == nil && parsed > 0 {
		page.Page = parsed
	}
	if parsed, err := strconv.ParseInt(strings.TrimSpace(values.Get("limit")), 10, 64); err == nil && parsed > 0 {
		page.Limit = parsed
	}
	if page.Limit > MaxLimit {
		page.Limit = MaxLimit
	}
	if page.Page > MaxPage {
		page.Page = MaxPage
	}
	return page
}

// ParseOptionalBool returns nil when key is absent or empty.
func ParseOptionalBool(values url.Values, key string) (*bool, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
