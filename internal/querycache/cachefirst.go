package querycache

import "context"

// Reader is the read-only view of a cache used by FindFirst.
type Reader interface {
	GetQueryData(key string) (any, bool)
}

// FindFirst looks for id in the collection cached under listKey and only
// calls fetch when the collection is missing, empty, or lacks the id.
// A nil entity from fetch yields ErrNotFound. FindFirst never writes to r.
func FindFirst[T any](ctx context.Context, r Reader, listKey string, id int, idOf func(T) int, fetch func(ctx context.Context, id int) (*T, error)) (T, error) {
	if v, ok := r.GetQueryData(listKey); ok {
		if items, ok := v.([]T); ok {
			for _, item := range items {
				if idOf(item) == id {
					return item, nil
				}
			}
		}
	}

	item, err := fetch(ctx, id)
	if err != nil {
		var zero T
		return zero, err
	}
	if item == nil {
		var zero T
		return zero, ErrNotFound
	}
	return *item, nil
}
