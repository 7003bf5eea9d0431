package resource

import (
	"fmt"
	"math"
	"strings"
)

// FieldCheck validates one field value and returns its normalized form, or an
// error describing the violation. Checks are pure; the field name is passed
// in only so messages can reference it.
type FieldCheck func(name string, value interface{}) (interface{}, error)

// Field declares one resource field: whether a create must supply it, and the
// predicate every supplied value must pass.
type Field struct {
	Name     string
	Required bool
	Check    FieldCheck
}

// Schema declares a resource: display names for envelope messages, the
// backing collection, and its fields. One generic handler serves any Schema.
type Schema struct {
	Singular   string
	Plural     string
	Collection string
	Fields     []Field
}

var (
	CountrySchema = Schema{
		Singular:   "Country",
		Plural:     "Countries",
		Collection: "countries",
		Fields: []Field{
			{Name: "name", Required: true, Check: nonEmptyString(0)},
			{Name: "code", Required: true, Check: nonEmptyString(0)},
		},
	}

	InterestSchema = Schema{
		Singular:   "Interest",
		Plural:     "Interests",
		Collection: "interests",
		Fields: []Field{
			{Name: "name", Required: true, Check: nonEmptyString(0)},
		},
	}

	ProductSchema = Schema{
		Singular:   "Product",
		Plural:     "Products",
		Collection: "products",
		Fields: []Field{
			{Name: "name", Required: true, Check: nonEmptyString(200)},
			{Name: "description", Required: false, Check: anyString(0)},
			{Name: "price", Required: true, Check: nonNegativeNumber},
			{Name: "quantity", Required: true, Check: nonNegativeInteger},
			{Name: "category", Required: false, Check: anyString(100)},
		},
	}
)

// Schemas lists every built-in resource in registration order.
func Schemas() []Schema {
	return []Schema{CountrySchema, InterestSchema, ProductSchema}
}

// nonEmptyString trims and rejects blank values. max 0 means unlimited length.
func nonEmptyString(max int) FieldCheck {
	return func(name string, value interface{}) (interface{}, error) {
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("'%s' must be a string", name)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, fmt.Errorf("'%s' must not be empty", name)
		}
		if max > 0 && len(s) > max {
			return nil, fmt.Errorf("'%s' must be at most %d characters", name, max)
		}
		return s, nil
	}
}

// anyString trims but allows blank values. max 0 means unlimited length.
func anyString(max int) FieldCheck {
	return func(name string, value interface{}) (interface{}, error) {
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("'%s' must be a string", name)
		}
		s = strings.TrimSpace(s)
		if max > 0 && len(s) > max {
			return nil, fmt.Errorf("'%s' must be at most %d characters", name, max)
		}
		return s, nil
	}
}

func nonNegativeNumber(name string, value interface{}) (interface{}, error) {
	f, ok := asFloat(value)
	if !ok || f < 0 {
		return nil, fmt.Errorf("'%s' must be a non-negative number", name)
	}
	return f, nil
}

func nonNegativeInteger(name string, value interface{}) (interface{}, error) {
	f, ok := asFloat(value)
	if !ok || f < 0 || f != math.Trunc(f) {
		return nil, fmt.Errorf("'%s' must be a non-negative integer", name)
	}
	return int64(f), nil
}

// asFloat widens the numeric types a decoded JSON body (or a test fixture)
// can carry.
func asFloat(value interface{}) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
