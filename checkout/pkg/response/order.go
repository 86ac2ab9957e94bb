package response

// Order is the slice of the order record this client cares about: the id is
// surfaced to the user, everything else stays server-side.
type Order struct {
	ID     int64  `json:"id"`
	Status string `json:"status,omitempty"`
}
