package skills

// Option applies a configuration option to the ordered set.
type Option func(*orderedSet)

// WithCapacity pre-sizes the set's storage. It never limits how many tags
// the set accepts.
func WithCapacity(n int) Option {
	return func(s *orderedSet) {
		if n > 0 {
			s.capacity = n
		}
	}
}
