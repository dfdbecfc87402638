package domain

// Reader returns the cached metadata
type Reader interface {
	Get() Metadata
}
