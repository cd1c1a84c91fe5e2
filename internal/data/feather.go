package data

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/ipc"
	"github.com/apache/arrow/go/v14/arrow/memory"

	"github.com/sweetHomeGo/spread-analyze/internal/series"
)

// ReadFeather loads an Arrow IPC file (the feather v2 container) into a
// Table. Timestamp-typed columns come back as native instants, numeric
// columns as float64 with nulls mapped to NaN, string columns as text.
func ReadFeather(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := ipc.NewFileReader(f, ipc.WithAllocator(memory.DefaultAllocator))
	if err != nil {
		return nil, fmt.Errorf("opening arrow file %s: %w", path, err)
	}
	defer r.Close()

	schema := r.Schema()
	tbl := &Table{Cols: make([]Column, len(schema.Fields()))}
	for j, field := range schema.Fields() {
		tbl.Cols[j].Name = field.Name
	}

	for i := 0; i < r.NumRecords(); i++ {
		rec, err := r.Record(i)
		if err != nil {
			return nil, fmt.Errorf("reading arrow record %d of %s: %w", i, path, err)
		}
		for j := 0; j < int(rec.NumCols()); j++ {
			if err := appendArrowColumn(&tbl.Cols[j], rec.Column(j)); err != nil {
				return nil, fmt.Errorf("column %q of %s: %w", schema.Field(j).Name, path, err)
			}
		}
	}
	return tbl, nil
}

func appendArrowColumn(col *Column, arr arrow.Array) error {
	switch a := arr.(type) {
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		for i := 0; i < a.Len(); i++ {
			if a.IsNull(i) {
				col.Times = append(col.Times, time.Time{})
			} else {
				col.Times = append(col.Times, a.Value(i).ToTime(unit).UTC())
			}
		}
	case *array.Date32:
		for i := 0; i < a.Len(); i++ {
			if a.IsNull(i) {
				col.Times = append(col.Times, time.Time{})
			} else {
				col.Times = append(col.Times, a.Value(i).ToTime().UTC())
			}
		}
	case *array.Float64:
		col.Numeric = true
		for i := 0; i < a.Len(); i++ {
			if a.IsNull(i) {
				col.Floats = append(col.Floats, math.NaN())
			} else {
				col.Floats = append(col.Floats, a.Value(i))
			}
		}
	case *array.Float32:
		col.Numeric = true
		for i := 0; i < a.Len(); i++ {
			if a.IsNull(i) {
				col.Floats = append(col.Floats, math.NaN())
			} else {
				col.Floats = append(col.Floats, float64(a.Value(i)))
			}
		}
	case *array.Int64:
		col.Numeric = true
		for i := 0; i < a.Len(); i++ {
			if a.IsNull(i) {
				col.Floats = append(col.Floats, math.NaN())
			} else {
				col.Floats = append(col.Floats, float64(a.Value(i)))
			}
		}
	case *array.String:
		for i := 0; i < a.Len(); i++ {
			col.Text = append(col.Text, a.Value(i))
		}
	default:
		return fmt.Errorf("%w: arrow type %s", ErrUnsupportedFormat, arr.DataType())
	}
	return nil
}

// timestampNs is the column type used for the timestamp axis on write.
var timestampNs = &arrow.TimestampType{Unit: arrow.Nanosecond, TimeZone: "UTC"}

// WriteFeatherWide saves a wide price table as a single-record Arrow IPC
// file: a "timestamp" column plus one float64 column per contract or spread,
// NaN cells written as nulls. This is the same columnar convention the
// loaders read back.
func WriteFeatherWide(path string, w *series.WideTable) error {
	fields := make([]arrow.Field, 0, len(w.Columns)+1)
	fields = append(fields, arrow.Field{Name: "timestamp", Type: timestampNs})
	for _, name := range w.Columns {
		fields = append(fields, arrow.Field{Name: name, Type: arrow.PrimitiveTypes.Float64, Nullable: true})
	}
	schema := arrow.NewSchema(fields, nil)

	b := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer b.Release()

	tsb := b.Field(0).(*array.TimestampBuilder)
	for _, t := range w.Timestamps {
		tsb.Append(arrow.Timestamp(t.UTC().UnixNano()))
	}
	for j, name := range w.Columns {
		fb := b.Field(j + 1).(*array.Float64Builder)
		for _, v := range w.Data[name] {
			if math.IsNaN(v) {
				fb.AppendNull()
			} else {
				fb.Append(v)
			}
		}
	}

	rec := b.NewRecord()
	defer rec.Release()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fw, err := ipc.NewFileWriter(f, ipc.WithSchema(schema), ipc.WithAllocator(memory.DefaultAllocator))
	if err != nil {
		return fmt.Errorf("creating arrow writer for %s: %w", path, err)
	}
	if err := fw.Write(rec); err != nil {
		fw.Close()
		return fmt.Errorf("writing arrow record to %s: %w", path, err)
	}
	return fw.Close()
}
