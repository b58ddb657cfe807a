package common

// Visible is implemented by entities carrying soft-delete flags.
type Visible interface {
	IsVisible() bool
}

// OnlyVisible drops soft-deleted entities. Every list read from the
// database passes through here before reaching the feed.
func OnlyVisible[T Visible](list []T) []T {
	out := make([]T, 0, len(list))
	for _, item := range list {
		if item.IsVisible() {
			out = append(out, item)
		}
	}
	return out
}
