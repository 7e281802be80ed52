// Package dto provides Data Transfer Objects for API requests/responses.
package dto

// --- List Response ---

// ListResponse wraps list results.
type ListResponse[T any] struct {
	Items []T `json:"items"`
}

// NewListResponse converts every element with fn.
func NewListResponse[E any, T any](items []E, fn func(*E) T) ListResponse[T] {
	out := make([]T, 0, len(items))
	for i := range items {
		out = append(out, fn(&items[i]))
	}
	return ListResponse[T]{Items: out}
}

// --- Success Response ---

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// --- Error Response ---

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}
