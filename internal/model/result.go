package model

// ActionResult is the non-throwing outcome of a mutation. Controllers read
// Success and Message; ID carries the created resource id when there is one.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}
