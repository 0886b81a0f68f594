package dataset

import "math"

// Clean recursively rewrites NaN and +/-Inf values to nil so they
// serialize as JSON null. It walks maps and slices and leaves every
// other value untouched. NaN and Infinity are illegal on the wire;
// every payload leaving the engine passes through here.
func Clean(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, ev := range x {
			x[k] = Clean(ev)
		}
		return x
	case []any:
		for i := range x {
			x[i] = Clean(x[i])
		}
		return x
	case []map[string]any:
		for i := range x {
			Clean(x[i])
		}
		return x
	case float64:
		if !finite(x) {
			return nil
		}
		return x
	case float32:
		if !finite(float64(x)) {
			return nil
		}
		return x
	case *float64:
		if x != nil && !finite(*x) {
			return nil
		}
		return x
	}
	return v
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
