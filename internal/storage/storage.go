// Package storage abstracts the blob store used for club assets and event
// documents. The service only needs upload-by-path and list-by-prefix; the
// hosted object store behind it is a black box.
package storage

// Entry describes one stored object returned from a prefix listing.
type Entry struct {
	Name      string `json:"name"`
	PublicURL string `json:"url"`
	Size      int64  `json:"size"`
}

// Store is the blob store contract.
type Store interface {
	// Upload writes data at path with the given content type, overwriting any
	// existing object, and returns the public URL the object is served from.
	Upload(path string, data []byte, contentType string) (string, error)
	// List returns the objects directly under prefix.
	List(prefix string) ([]Entry, error)
}
