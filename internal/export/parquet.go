package export

import (
	"fmt"
	"io"

	"github.com/chrisdamba/weaning/internal/cloudwriter"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

// CloudParquetFile lets the parquet writer stream into a CloudWriter. It is
// write-only.
type CloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

var _ source.ParquetFile = (*CloudParquetFile)(nil)

func NewCloudParquetFile(cloudWriter cloudwriter.CloudWriter) *CloudParquetFile {
	return &CloudParquetFile{cloudWriter: cloudWriter}
}

// Open and Create return the same instance; the object only exists once
// Close uploads it.
func (c *CloudParquetFile) Open(string) (source.ParquetFile, error)   { return c, nil }
func (c *CloudParquetFile) Create(string) (source.ParquetFile, error) { return c, nil }

func (c *CloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	default:
		return 0, fmt.Errorf("seek whence %d not supported for cloud storage", whence)
	}
	return c.offset, nil
}

func (c *CloudParquetFile) Read([]byte) (int, error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *CloudParquetFile) Write(p []byte) (int, error) {
	n, err := c.cloudWriter.Write(p)
	c.offset += int64(n)
	return n, err
}

func (c *CloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}

func writeParquet(fw source.ParquetFile, rows []MealRow, tick func()) error {
	pw, err := writer.NewParquetWriter(fw, new(MealRow), 4)
	if err != nil {
		return fmt.Errorf("failed to create ParquetWriter: %w", err)
	}
	for _, row := range rows {
		if err := pw.Write(row); err != nil {
			return fmt.Errorf("failed to write meal %s: %w", row.ID, err)
		}
		tick()
	}
	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return nil
}
