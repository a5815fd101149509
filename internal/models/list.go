package models

// ListResponse is the paginated envelope every collection endpoint returns.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}
