package tdk

// Source is the interface for getting raw data one record at a time.
// A Source returns io.EOF after the last record. Sources are not
// restartable: once exhausted, a new Source must be opened to read
// the same data again.
type Source interface {
	Record() (map[string]interface{}, error)
}
