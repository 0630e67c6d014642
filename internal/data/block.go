package data

// LastBlock is the per-chain indexing checkpoint: the highest block whose
// logs have been fully persisted.
type LastBlock interface {
	Set(uint64) error
	Get() (*uint64, error)
}
