package domain

// City is read-only reference data backing the autocomplete endpoint.
type City struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
