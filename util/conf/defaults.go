package conf

// DefaultConfig maps flat, delimited config keys to default values.
type DefaultConfig map[string]any
