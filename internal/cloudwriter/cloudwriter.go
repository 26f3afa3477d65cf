// Package cloudwriter buffers an export in memory and uploads it as one
// object when the writer is closed.
package cloudwriter

type CloudWriter interface {
	Write(data []byte) (int, error)
	Close() error
}

type CloudWriterFactory interface {
	NewWriter(bucket, objectPath string) (CloudWriter, error)
}
