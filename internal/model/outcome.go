package model

// Outcome is the result of processing one dispatched record. Err == nil means
// the asset was written to Path with Bytes bytes.
type Outcome struct {
	Record MemoryRecord
	Path   string
	Bytes  int64
	Err    error
}

// Succeeded reports whether the record was downloaded.
func (o Outcome) Succeeded() bool {
	return o.Err == nil
}
