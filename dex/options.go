package dex

// Option configures the metadata of a container.
type Option func(*meta)

type meta struct {
	name      string
	names     []string
	valueName string
}

// WithName sets the name of a one-dimensional set, or the key name of a
// one-dimensional dictionary.
func WithName(name string) Option {
	return func(m *meta) { m.name = name }
}

// WithNames sets the per-dimension names of an N-dimensional set or dictionary.
func WithNames(names ...string) Option {
	return func(m *meta) { m.names = append([]string(nil), names...) }
}

// WithValueName sets the value name of a dictionary.
func WithValueName(name string) Option {
	return func(m *meta) { m.valueName = name }
}

func applyOptions(opts []Option) meta {
	var m meta
	for _, opt := range opts {
		opt(&m)
	}
	return m
}
