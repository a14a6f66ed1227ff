package runconfig

// rawvalue.go holds small helpers for navigating the generic
// map[string]any / []any trees produced by decoding a config file with
// any of our three format libraries, before that tree is resolved into
// typed RunConfig/Descriptor values. Go has no serde-style untagged-enum
// derive, so the union shapes the original's serde(untagged) input
// types expressed declaratively are resolved here with ordinary type
// switches instead.

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func asStringSlice(v any) ([]string, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func asStringMap(v any) (map[string]string, bool) {
	switch m := v.(type) {
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, val := range m {
			s, ok := val.(string)
			if !ok {
				return nil, false
			}
			out[k] = s
		}
		return out, true
	case map[any]any:
		out := make(map[string]string, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			vs, ok := val.(string)
			if !ok {
				return nil, false
			}
			out[ks] = vs
		}
		return out, true
	default:
		return nil, false
	}
}

// asEnvPairs decodes an "envs" field that may appear either as a
// mapping (NAME: value) or as a list of [name, value] pairs (the
// original's Vec<(String, String)> shape, which some YAML/TOML authors
// write as a list of two-element arrays).
func asEnvPairs(v any) ([]envPair, bool) {
	if m, ok := asStringMap(v); ok {
		out := make([]envPair, 0, len(m))
		for name, value := range m {
			out = append(out, envPair{Name: name, Value: value})
		}
		return out, true
	}

	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]envPair, 0, len(list))
	for _, item := range list {
		pair, ok := item.([]any)
		if !ok || len(pair) != 2 {
			return nil, false
		}
		name, ok1 := pair[0].(string)
		value, ok2 := pair[1].(string)
		if !ok1 || !ok2 {
			return nil, false
		}
		out = append(out, envPair{Name: name, Value: value})
	}
	return out, true
}

type envPair struct {
	Name  string
	Value string
}
