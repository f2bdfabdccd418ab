package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithInitialCapacity pre-sizes the history slice. It is not a limit.
func WithInitialCapacity(n int) Option {
	return func(s *MemoryStore) {
		if n > 0 {
			s.initialCapacity = n
		}
	}
}
