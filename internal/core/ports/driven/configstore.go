package driven

// ConfigStore provides access to persisted settings under flat dotted keys
// such as "fetch.retries".
type ConfigStore interface {
	// Get retrieves a value by key and whether the key exists.
	Get(key string) (any, bool)

	// GetString returns "" when the key is absent or not a string.
	GetString(key string) string

	// GetInt returns 0 when the key is absent or not a number.
	GetInt(key string) int

	// GetFloat returns 0 when the key is absent or not a number.
	GetFloat(key string) float64

	// GetBool returns false when the key is absent or not a boolean.
	GetBool(key string) bool

	// Set stores a value. File backed stores persist it immediately.
	Set(key string, value any) error

	// Save persists the current values.
	Save() error

	// Load reads values from storage.
	Load() error

	// Path returns where the values are stored.
	Path() string
}
