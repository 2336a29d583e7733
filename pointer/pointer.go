package pointer

func FromAny[T any](v T) *T {
	return &v
}

func ToString(p *string) string {
	if p == nil {
		return ""
	}

	return *p
}

// ToStringOr returns the pointed-to string, or fallback when p is nil or empty.
func ToStringOr(p *string, fallback string) string {
	if p == nil || *p == "" {
		return fallback
	}

	return *p
}
