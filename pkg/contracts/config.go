package contracts

type Config interface {
	Has(path string) bool

	// Get returns the value at a dotted path, or the first fallback when the
	// path is missing. An empty path returns every value.
	Get(path string, fallback ...any) any

	GetString(path string, defaultVal ...string) string

	GetInt(path string, defaultVal ...int) int

	GetInt64(path string, defaultVal ...int64) int64

	GetFloat64(path string, defaultVal ...float64) float64

	GetBool(path string, defaultVal ...bool) bool

	GetStringSlice(path string, separator ...string) []string

	GetSub(path string) (Config, bool)

	All() map[string]any
}
