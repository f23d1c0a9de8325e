package ptr

// To returns a pointer to a copy of value, for optional config fields.
func To[T any](value T) *T {
	return &value
}
