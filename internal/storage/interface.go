package storage

// BatchStore is the read side of the batch inbox that fetchers drop
// JSON batches into
type BatchStore interface {
	Retrieve(name string) ([]byte, error)
	List(prefix string) ([]string, error)
}
