package query

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Location parameter names.
const (
	ParamText       = "q"
	ParamStatus     = "status"
	ParamDepartment = "departmentId"
	ParamPage       = "page"
	ParamPageSize   = "pageSize"
	ParamSort       = "sort"
	ParamOrder      = "order"
)

// ListPath is the location path of the employee list.
const ListPath = "/employees"

// ValidationError describes one location parameter that could not be used and was
// replaced by its default.
type ValidationError struct {
	Param  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s=%q: %s", e.Param, e.Value, e.Reason)
}

// Decode builds a Query from location parameters. Missing or malformed values fall back
// to their defaults; it never fails.
func Decode(v url.Values) Query {
	q, _ := DecodeStrict(v)
	return q
}

// DecodeStrict is Decode plus a report of every parameter that was defaulted because it
// was malformed. The returned Query is always usable.
func DecodeStrict(v url.Values) (Query, error) {
	q := Default()
	var errs []error
	bad := func(param, value, reason string) {
		errs = append(errs, &ValidationError{Param: param, Value: value, Reason: reason})
	}

	q.Text = strings.TrimSpace(v.Get(ParamText))

	if raw := strings.TrimSpace(v.Get(ParamStatus)); raw != "" {
		if s := Status(raw); s.Valid() {
			q.Status = s
		} else {
			bad(ParamStatus, raw, "unknown status")
		}
	}

	if raw := strings.TrimSpace(v.Get(ParamDepartment)); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			q = q.WithDepartment(id)
		} else {
			bad(ParamDepartment, raw, "not an integer")
		}
	}

	if raw := strings.TrimSpace(v.Get(ParamPage)); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
			q.Page = n
		} else {
			bad(ParamPage, raw, "must be an integer >= 1")
		}
	}

	if raw := strings.TrimSpace(v.Get(ParamPageSize)); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
			q.PageSize = n
		} else {
			bad(ParamPageSize, raw, "must be an integer >= 1")
		}
	}

	if raw := strings.TrimSpace(v.Get(ParamSort)); raw != "" {
		if k := SortKey(raw); k.Valid() {
			q.Sort = k
		} else {
			bad(ParamSort, raw, "unknown sort key")
		}
	}

	if raw := strings.TrimSpace(v.Get(ParamOrder)); raw != "" {
		if d := SortDir(raw); d.Valid() {
			q.Order = d
		} else {
			bad(ParamOrder, raw, "must be asc or desc")
		}
	}

	return q, errors.Join(errs...)
}

// Encode writes every field of q. The no-filter sentinels (empty text, empty status,
// absent department) are omitted.
func Encode(q Query) url.Values {
	q = q.Normalize()
	v := url.Values{}
	if q.Text != "" {
		v.Set(ParamText, q.Text)
	}
	if q.Status != StatusAny {
		v.Set(ParamStatus, string(q.Status))
	}
	if q.HasDepartment {
		v.Set(ParamDepartment, strconv.Itoa(q.DepartmentID))
	}
	v.Set(ParamPage, strconv.Itoa(q.Page))
	v.Set(ParamPageSize, strconv.Itoa(q.PageSize))
	v.Set(ParamSort, string(q.Sort))
	v.Set(ParamOrder, string(q.Order))
	return v
}

// Location renders q as a list location, e.g. /employees?order=asc&page=1&...
// Parameters are sorted by name so the same query always yields the same string.
func Location(q Query) string {
	return ListPath + "?" + Encode(q).Encode()
}

// ParseLocation splits a location (absolute URL, path with query, or bare query string)
// into its path and query parameters. An empty path is reported as ListPath.
func ParseLocation(loc string) (string, url.Values, error) {
	loc = strings.TrimSpace(loc)
	if loc == "" {
		return ListPath, url.Values{}, nil
	}
	if strings.HasPrefix(loc, "?") {
		loc = ListPath + loc
	}
	u, err := url.Parse(loc)
	if err != nil {
		return "", nil, fmt.Errorf("parse location %q: %w", loc, err)
	}
	path := strings.TrimRight(u.Path, "/")
	if path == "" {
		path = ListPath
	}
	return path, u.Query(), nil
}

// FromLocation decodes the query part of a location. Malformed locations decode to
// the default query.
func FromLocation(loc string) Query {
	_, v, err := ParseLocation(loc)
	if err != nil {
		return Default()
	}
	return Decode(v)
}

// Canonical re-encodes a list location so equivalent spellings compare equal.
// Non-list paths are returned with their query re-encoded but otherwise untouched.
func Canonical(loc string) (string, error) {
	path, v, err := ParseLocation(loc)
	if err != nil {
		return "", err
	}
	if path == ListPath {
		return Location(Decode(v)), nil
	}
	if len(v) == 0 {
		return path, nil
	}
	return path + "?" + v.Encode(), nil
}
