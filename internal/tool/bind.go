package tool

import (
	"fmt"
	"math"
)

// Bind validates a raw argument bag against a descriptor's parameter schema
// and returns normalized Args. Binding is strict: undeclared keys are
// rejected so a mistyped argument name fails loudly instead of being
// silently dropped.
func Bind(d *Descriptor, raw map[string]any) (Args, error) {
	declared := make(map[string]Param, len(d.Params))
	for _, p := range d.Params {
		declared[p.Name] = p
	}

	for key := range raw {
		if _, ok := declared[key]; !ok {
			return nil, &UnknownArgumentError{Key: key}
		}
	}

	bound := make(Args, len(d.Params))
	for _, p := range d.Params {
		v, supplied := raw[p.Name]
		if !supplied || v == nil {
			if p.Required {
				return nil, &MissingArgumentError{Param: p.Name}
			}
			if p.Default != nil {
				bound[p.Name] = p.Default
			}
			continue
		}
		coerced, err := coerce(p, v)
		if err != nil {
			return nil, err
		}
		bound[p.Name] = coerced
	}
	return bound, nil
}

// coerce converts a JSON-decoded value to the parameter's declared Go type.
// JSON numbers arrive as float64 and bind to integer params only when whole.
func coerce(p Param, v any) (any, error) {
	switch p.Type {
	case TypeString:
		s, ok := v.(string)
		if !ok {
			return nil, typeErr(p, v)
		}
		return s, nil

	case TypeInt:
		switch n := v.(type) {
		case int:
			return n, nil
		case float64:
			if n != math.Trunc(n) {
				return nil, typeErr(p, v)
			}
			return int(n), nil
		default:
			return nil, typeErr(p, v)
		}

	case TypeBool:
		b, ok := v.(bool)
		if !ok {
			return nil, typeErr(p, v)
		}
		return b, nil

	case TypeStringList:
		switch list := v.(type) {
		case []string:
			return list, nil
		case []any:
			out := make([]string, 0, len(list))
			for _, item := range list {
				s, ok := item.(string)
				if !ok {
					return nil, typeErr(p, v)
				}
				out = append(out, s)
			}
			return out, nil
		default:
			return nil, typeErr(p, v)
		}
	}
	return nil, fmt.Errorf("parameter %s: unsupported type %s", p.Name, p.Type)
}

func typeErr(p Param, v any) error {
	return &ArgumentTypeError{Param: p.Name, Expected: p.Type, Received: typeName(v)}
}

func typeName(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case float64, int:
		return "number"
	case bool:
		return "boolean"
	case []any, []string:
		return "list"
	case map[string]any:
		return "object"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}
