package backend

// Connection is one source connection row on the connections page.
type Connection struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	System   string `json:"system"`
	Status   string `json:"status"`
	LastSync string `json:"last_sync"`
}

// ReviewItem is one pending entry in the human-in-the-loop queue.
type ReviewItem struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Subject   string `json:"subject"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}
