package config

// Merge deep-merges override into base and returns a new tree; neither
// input is modified. At every level, keys present in both sides with
// plain-object values merge recursively; any other value, arrays
// included, replaces the base value wholesale.
func Merge(base, override map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, ov := range override {
		if bm, ok := out[k].(map[string]any); ok {
			if om, ok := ov.(map[string]any); ok {
				out[k] = Merge(bm, om)
				continue
			}
		}
		out[k] = ov
	}
	return out
}

// cloneTree returns a deep copy of a JSON-shaped tree. Scalar leaves are
// shared, which is safe because merged trees are never mutated in place.
func cloneTree(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if child, ok := v.(map[string]any); ok {
			out[k] = cloneTree(child)
			continue
		}
		out[k] = v
	}
	return out
}
