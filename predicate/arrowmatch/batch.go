package arrowmatch

import (
	"context"
	"fmt"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/compute"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Mask evaluates m for every row of rec and returns a boolean selection vector.
// The caller must release the returned array.
func Mask(rec arrow.Record, m Matcher, mem memory.Allocator) (*array.Boolean, error) {
	b := array.NewBooleanBuilder(mem)
	defer b.Release()

	rows := int(rec.NumRows())
	b.Reserve(rows)
	for row := 0; row < rows; row++ {
		ok, err := m(rec, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		b.UnsafeAppend(ok)
	}
	return b.NewBooleanArray(), nil
}

// Filter returns a new record holding the rows of rec that satisfy m.
// The caller must release the returned record.
func Filter(ctx context.Context, rec arrow.Record, m Matcher, mem memory.Allocator) (arrow.Record, error) {
	mask, err := Mask(rec, m, mem)
	if err != nil {
		return nil, err
	}
	defer mask.Release()

	ctx = compute.WithAllocator(ctx, mem)
	out, err := compute.FilterRecordBatch(ctx, rec, mask, compute.DefaultFilterOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to filter record batch: %w", err)
	}
	return out, nil
}

// valueAt extracts the cell at row as a Go value comparable with filter
// operands. The second result is false for null cells.
func valueAt(col arrow.Array, row int) (any, bool, error) {
	if col.IsNull(row) {
		return nil, false, nil
	}
	switch a := col.(type) {
	case *array.Boolean:
		return a.Value(row), true, nil
	case *array.Int8:
		return int64(a.Value(row)), true, nil
	case *array.Int16:
		return int64(a.Value(row)), true, nil
	case *array.Int32:
		return int64(a.Value(row)), true, nil
	case *array.Int64:
		return a.Value(row), true, nil
	case *array.Uint8:
		return int64(a.Value(row)), true, nil
	case *array.Uint16:
		return int64(a.Value(row)), true, nil
	case *array.Uint32:
		return int64(a.Value(row)), true, nil
	case *array.Uint64:
		return a.Value(row), true, nil
	case *array.Float32:
		return float64(a.Value(row)), true, nil
	case *array.Float64:
		return a.Value(row), true, nil
	case *array.String:
		return a.Value(row), true, nil
	case *array.LargeString:
		return a.Value(row), true, nil
	case *array.Date32:
		return a.Value(row).ToTime().UTC(), true, nil
	case *array.Date64:
		return a.Value(row).ToTime().UTC(), true, nil
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return a.Value(row).ToTime(unit).In(time.UTC), true, nil
	default:
		return nil, false, fmt.Errorf("%w: unsupported column type %s", ErrIncomparable, col.DataType())
	}
}
