package stream

// Event is the change notification a mutation gateway broadcasts after
// a successful write. Watchers treat any event on their topic as "the
// snapshot is stale, reload it", so the payload stays minimal.
type Event struct {
	Collection string `json:"collection"`
	Op         string `json:"op"` // "create", "update", "delete"
	ID         string `json:"id"`
}
