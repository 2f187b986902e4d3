// Package arrowio reads and writes the pipeline's Arrow IPC files. Files
// are written uncompressed, one record batch per file; transport-level
// compression is the CDN's job.
package arrowio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/huuquangchungkhoan/QuangvaQuang/internal/model"
)

// statementsSchema is the stable 4-column layout of every financial
// statement partition. Files written across separate runs stay
// schema-compatible because this never varies.
var statementsSchema = arrow.NewSchema([]arrow.Field{
	{Name: "ticker", Type: arrow.BinaryTypes.String},
	{Name: "period", Type: arrow.BinaryTypes.String},
	{Name: "field", Type: arrow.BinaryTypes.String},
	{Name: "value", Type: arrow.PrimitiveTypes.Float64},
}, nil)

// WriteStatements writes one partition of statement records to an Arrow
// IPC file at path, creating parent directories as needed.
func WriteStatements(path string, recs []model.StatementRecord) error {
	bldr := array.NewRecordBuilder(memory.DefaultAllocator, statementsSchema)
	defer bldr.Release()

	tickerB := bldr.Field(0).(*array.StringBuilder)
	periodB := bldr.Field(1).(*array.StringBuilder)
	fieldB := bldr.Field(2).(*array.StringBuilder)
	valueB := bldr.Field(3).(*array.Float64Builder)
	for _, rec := range recs {
		tickerB.Append(rec.Ticker)
		periodB.Append(rec.Period)
		fieldB.Append(rec.Field)
		valueB.Append(rec.Value)
	}

	record := bldr.NewRecord()
	defer record.Release()
	return writeFile(path, statementsSchema, record)
}

// ReadStatements loads a statement partition back from disk.
func ReadStatements(path string) ([]model.StatementRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader, err := ipc.NewFileReader(f, ipc.WithAllocator(memory.DefaultAllocator))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer reader.Close()

	var recs []model.StatementRecord
	for i := 0; i < reader.NumRecords(); i++ {
		record, err := reader.RecordAt(i)
		if err != nil {
			return nil, fmt.Errorf("record %d of %s: %w", i, path, err)
		}
		tickers := record.Column(0).(*array.String)
		periods := record.Column(1).(*array.String)
		fields := record.Column(2).(*array.String)
		values := record.Column(3).(*array.Float64)
		for j := 0; j < int(record.NumRows()); j++ {
			recs = append(recs, model.StatementRecord{
				Ticker: tickers.Value(j),
				Period: periods.Value(j),
				Field:  fields.Value(j),
				Value:  values.Value(j),
			})
		}
	}
	return recs, nil
}

// writeFile materializes a single-batch Arrow IPC file.
func writeFile(path string, schema *arrow.Schema, record arrow.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	writer, err := ipc.NewFileWriter(f, ipc.WithSchema(schema), ipc.WithAllocator(memory.DefaultAllocator))
	if err != nil {
		return fmt.Errorf("open writer for %s: %w", path, err)
	}
	if err := writer.Write(record); err != nil {
		writer.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalize %s: %w", path, err)
	}
	return nil
}
