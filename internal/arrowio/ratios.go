package arrowio

import (
	"fmt"
	"os"
	"sort"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/huuquangchungkhoan/QuangvaQuang/internal/model"
)

// ratioFixedColumns is the identity prefix of every ratios table.
var ratioFixedColumns = []arrow.Field{
	{Name: "ticker", Type: arrow.BinaryTypes.String},
	{Name: "year", Type: arrow.BinaryTypes.String},
	{Name: "quarter", Type: arrow.PrimitiveTypes.Int64},
	{Name: "ratio_type", Type: arrow.BinaryTypes.String},
}

// RatioColumns returns the value column names for a row set: the sorted
// union of every row's value keys. Sorting keeps the schema deterministic
// across runs regardless of map iteration and row order.
func RatioColumns(rows []model.RatioRow) []string {
	seen := make(map[string]bool)
	for _, row := range rows {
		for key := range row.Values {
			seen[key] = true
		}
	}
	cols := make([]string, 0, len(seen))
	for key := range seen {
		cols = append(cols, key)
	}
	sort.Strings(cols)
	return cols
}

// WriteRatios writes one year's ratio rows as a wide table: the fixed
// identity columns plus one float64 column per value key, zero-filled when
// a row lacks the key.
func WriteRatios(path string, rows []model.RatioRow, valueColumns []string) error {
	fields := make([]arrow.Field, 0, len(ratioFixedColumns)+len(valueColumns))
	fields = append(fields, ratioFixedColumns...)
	for _, name := range valueColumns {
		fields = append(fields, arrow.Field{Name: name, Type: arrow.PrimitiveTypes.Float64})
	}
	schema := arrow.NewSchema(fields, nil)

	bldr := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer bldr.Release()

	tickerB := bldr.Field(0).(*array.StringBuilder)
	yearB := bldr.Field(1).(*array.StringBuilder)
	quarterB := bldr.Field(2).(*array.Int64Builder)
	typeB := bldr.Field(3).(*array.StringBuilder)
	for _, row := range rows {
		tickerB.Append(row.Ticker)
		yearB.Append(row.Year)
		quarterB.Append(row.Quarter)
		typeB.Append(row.RatioType)
		for i, name := range valueColumns {
			bldr.Field(4 + i).(*array.Float64Builder).Append(row.Values[name])
		}
	}

	record := bldr.NewRecord()
	defer record.Release()
	return writeFile(path, schema, record)
}

// ReadRatios loads a ratios table back, returning the rows and the value
// column names in schema order.
func ReadRatios(path string) ([]model.RatioRow, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader, err := ipc.NewFileReader(f, ipc.WithAllocator(memory.DefaultAllocator))
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer reader.Close()

	schema := reader.Schema()
	var valueColumns []string
	for _, field := range schema.Fields()[len(ratioFixedColumns):] {
		valueColumns = append(valueColumns, field.Name)
	}

	var rows []model.RatioRow
	for i := 0; i < reader.NumRecords(); i++ {
		record, err := reader.RecordAt(i)
		if err != nil {
			return nil, nil, fmt.Errorf("record %d of %s: %w", i, path, err)
		}
		tickers := record.Column(0).(*array.String)
		years := record.Column(1).(*array.String)
		quarters := record.Column(2).(*array.Int64)
		types := record.Column(3).(*array.String)
		for j := 0; j < int(record.NumRows()); j++ {
			row := model.RatioRow{
				Ticker:    tickers.Value(j),
				Year:      years.Value(j),
				Quarter:   quarters.Value(j),
				RatioType: types.Value(j),
				Values:    make(map[string]float64, len(valueColumns)),
			}
			for k, name := range valueColumns {
				col := record.Column(len(ratioFixedColumns) + k).(*array.Float64)
				row.Values[name] = col.Value(j)
			}
			rows = append(rows, row)
		}
	}
	return rows, valueColumns, nil
}
