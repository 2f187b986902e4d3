package arrowio

import (
	"fmt"
	"os"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/huuquangchungkhoan/QuangvaQuang/internal/indicator"
)

const technicalFixedColumns = 7

// technicalSchema builds the schema for a technical-analysis table: the
// OHLCV identity columns plus one nullable float64 column per indicator.
func technicalSchema(indicatorNames []string) *arrow.Schema {
	fields := []arrow.Field{
		{Name: "ticker", Type: arrow.BinaryTypes.String},
		{Name: "date", Type: &arrow.TimestampType{Unit: arrow.Second}},
		{Name: "open", Type: arrow.PrimitiveTypes.Float64},
		{Name: "high", Type: arrow.PrimitiveTypes.Float64},
		{Name: "low", Type: arrow.PrimitiveTypes.Float64},
		{Name: "close", Type: arrow.PrimitiveTypes.Float64},
		{Name: "volume", Type: arrow.PrimitiveTypes.Int64},
	}
	for _, name := range indicatorNames {
		fields = append(fields, arrow.Field{Name: name, Type: arrow.PrimitiveTypes.Float64, Nullable: true})
	}
	return arrow.NewSchema(fields, nil)
}

// WriteTechnical writes the merged technical-analysis table. Indicator
// cells without a value are written as nulls so consumers can tell "not
// yet computable" from a computed zero.
func WriteTechnical(path string, table *indicator.Table) error {
	schema := technicalSchema(table.ColumnNames())
	bldr := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer bldr.Release()

	tickerB := bldr.Field(0).(*array.StringBuilder)
	dateB := bldr.Field(1).(*array.TimestampBuilder)
	openB := bldr.Field(2).(*array.Float64Builder)
	highB := bldr.Field(3).(*array.Float64Builder)
	lowB := bldr.Field(4).(*array.Float64Builder)
	closeB := bldr.Field(5).(*array.Float64Builder)
	volumeB := bldr.Field(6).(*array.Int64Builder)

	for i := 0; i < table.NumRows(); i++ {
		tickerB.Append(table.Ticker[i])
		dateB.Append(arrow.Timestamp(table.Date[i].Unix()))
		openB.Append(table.Open[i])
		highB.Append(table.High[i])
		lowB.Append(table.Low[i])
		closeB.Append(table.Close[i])
		volumeB.Append(table.Volume[i])
	}
	for c, col := range table.Indicators {
		fb := bldr.Field(technicalFixedColumns + c).(*array.Float64Builder)
		for i := 0; i < table.NumRows(); i++ {
			if col.Valid[i] {
				fb.Append(col.Values[i])
			} else {
				fb.AppendNull()
			}
		}
	}

	record := bldr.NewRecord()
	defer record.Release()
	return writeFile(path, schema, record)
}

// ReadTechnical loads a technical-analysis table back from disk.
func ReadTechnical(path string) (*indicator.Table, error) {
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

	schema := reader.Schema()
	table := &indicator.Table{}
	for _, field := range schema.Fields()[technicalFixedColumns:] {
		table.Indicators = append(table.Indicators, indicator.Column{Name: field.Name})
	}

	for i := 0; i < reader.NumRecords(); i++ {
		record, err := reader.RecordAt(i)
		if err != nil {
			return nil, fmt.Errorf("record %d of %s: %w", i, path, err)
		}
		tickers := record.Column(0).(*array.String)
		dates := record.Column(1).(*array.Timestamp)
		opens := record.Column(2).(*array.Float64)
		highs := record.Column(3).(*array.Float64)
		lows := record.Column(4).(*array.Float64)
		closes := record.Column(5).(*array.Float64)
		volumes := record.Column(6).(*array.Int64)
		for j := 0; j < int(record.NumRows()); j++ {
			table.Ticker = append(table.Ticker, tickers.Value(j))
			table.Date = append(table.Date, time.Unix(int64(dates.Value(j)), 0).UTC())
			table.Open = append(table.Open, opens.Value(j))
			table.High = append(table.High, highs.Value(j))
			table.Low = append(table.Low, lows.Value(j))
			table.Close = append(table.Close, closes.Value(j))
			table.Volume = append(table.Volume, volumes.Value(j))
		}
		for c := range table.Indicators {
			col := record.Column(technicalFixedColumns + c).(*array.Float64)
			for j := 0; j < int(record.NumRows()); j++ {
				table.Indicators[c].Values = append(table.Indicators[c].Values, col.Value(j))
				table.Indicators[c].Valid = append(table.Indicators[c].Valid, col.IsValid(j))
			}
		}
	}
	return table, nil
}
