package config

// Merge deep-merges src into dst and returns dst. Nested maps are merged
// key by key; any other value in src replaces the one in dst. Maps taken
// from src are copied so later merges never write into src.
func Merge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		vMap, ok := v.(map[string]any)
		if !ok {
			dst[k] = v
			continue
		}
		dstMap, ok := dst[k].(map[string]any)
		if !ok {
			dstMap = nil
		}
		dst[k] = Merge(dstMap, vMap)
	}
	return dst
}
