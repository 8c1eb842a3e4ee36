package action

import (
	"github.com/hugr-lab/tabprobe/filter"
	"github.com/hugr-lab/tabprobe/table"
)

// Params carries the arguments of one action, as decoded from the wire.
type Params map[string]any

// Int returns an integer parameter, or def when it is absent or null.
// Integral floats are accepted, since JSON clients cannot tell them apart.
func (p Params) Int(name string, def int) (int, error) {
	raw, ok := p[name]
	if !ok || raw == nil {
		return def, nil
	}
	v, err := table.Normalize(raw)
	if err != nil {
		return 0, table.InvalidParameter(name, "expected an integer, got %T", raw)
	}
	switch x := v.(type) {
	case int64:
		return int(x), nil
	case float64:
		if x == float64(int64(x)) {
			return int(x), nil
		}
	}
	return 0, table.InvalidParameter(name, "expected an integer, got %v", raw)
}

// Seed returns the optional seed parameter.
func (p Params) Seed() (*int64, error) {
	if raw, ok := p["seed"]; !ok || raw == nil {
		return nil, nil
	}
	n, err := p.Int("seed", 0)
	if err != nil {
		return nil, err
	}
	seed := int64(n)
	return &seed, nil
}

// String returns a required text parameter.
func (p Params) String(name string) (string, error) {
	raw, ok := p[name]
	if !ok || raw == nil {
		return "", table.InvalidParameter(name, "required")
	}
	s, ok := raw.(string)
	if !ok {
		return "", table.InvalidParameter(name, "expected a string, got %T", raw)
	}
	return s, nil
}

// Strings returns a list-of-text parameter. Absent or null is an empty list.
func (p Params) Strings(name string) ([]string, error) {
	raw, ok := p[name]
	if !ok || raw == nil {
		return []string{}, nil
	}
	switch x := raw.(type) {
	case []string:
		return x, nil
	case []any:
		out := make([]string, len(x))
		for i, v := range x {
			s, ok := v.(string)
			if !ok {
				return nil, table.InvalidParameter(name, "element %d is %T, not a string", i, v)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, table.InvalidParameter(name, "expected a list of strings, got %T", raw)
	}
}

// Condition returns a column-to-value map parameter. Absent or null is an
// empty condition, which matches every row.
func (p Params) Condition(name string) (filter.Condition, error) {
	raw, ok := p[name]
	if !ok || raw == nil {
		return filter.Condition{}, nil
	}
	switch x := raw.(type) {
	case filter.Condition:
		return x, nil
	case map[string]any:
		return filter.Condition(x), nil
	case map[any]any:
		cond := make(filter.Condition, len(x))
		for k, v := range x {
			key, ok := k.(string)
			if !ok {
				return nil, table.InvalidParameter(name, "key %v is not a string", k)
			}
			cond[key] = v
		}
		return cond, nil
	default:
		return nil, table.InvalidParameter(name, "expected a map, got %T", raw)
	}
}

// Value returns a required scalar parameter. It may be null.
func (p Params) Value(name string) (any, error) {
	raw, ok := p[name]
	if !ok {
		return nil, table.InvalidParameter(name, "required")
	}
	return raw, nil
}
