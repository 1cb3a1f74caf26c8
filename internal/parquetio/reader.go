// Package parquetio decodes Parquet files into dynamic records keyed by
// top-level column name. It understands flat scalar columns plus the two
// nested shapes the processed tables use for ratings and stats: a struct
// group and a MAP group.
package parquetio

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
)

// Record is one decoded row. Scalars decode to string, int64, float64,
// bool or time.Time; struct and map columns decode to map[string]any;
// list columns decode to []any; nulls decode to nil.
type Record map[string]any

// Table is a fully materialized Parquet file.
type Table struct {
	Columns []string
	Rows    []Record
}

// HasColumn reports whether name is a top-level column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

const readBatch = 256

// ReadFile opens and decodes the file at path.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet %s: %w", path, err)
	}
	return Read(pf)
}

// Read decodes every row group of an open file.
func Read(pf *parquet.File) (*Table, error) {
	sch := pf.Schema()
	dec := newDecoder(sch)

	t := &Table{
		Columns: dec.columns,
		Rows:    make([]Record, 0, pf.NumRows()),
	}

	buf := make([]parquet.Row, readBatch)
	for i, rg := range pf.RowGroups() {
		if err := readRowGroup(rg, buf, dec, t); err != nil {
			return nil, fmt.Errorf("row group %d: %w", i, err)
		}
	}
	return t, nil
}

func readRowGroup(rg parquet.RowGroup, buf []parquet.Row, dec *decoder, t *Table) error {
	rows := rg.Rows()
	defer rows.Close()

	for {
		n, err := rows.ReadRows(buf)
		// Row buffers are reused by the next call, so decode before reading on.
		for _, row := range buf[:n] {
			t.Rows = append(t.Rows, dec.decode(row))
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// --------------------------------------------------------------------------
// Leaf decoding
// --------------------------------------------------------------------------

type leafRole int

const (
	roleScalar leafRole = iota
	roleStructField
	roleMapKey
	roleMapValue
	roleListElement
	roleIgnored
)

type leaf struct {
	top    string
	field  string
	role   leafRole
	topDef int // definition level at which the top-level column is non-null
	value  func(parquet.Value) any
}

type decoder struct {
	columns []string
	leaves  []leaf
}

func newDecoder(sch *parquet.Schema) *decoder {
	d := &decoder{}
	topDef := make(map[string]int)
	for _, f := range sch.Fields() {
		d.columns = append(d.columns, f.Name())
		if f.Optional() || f.Repeated() {
			topDef[f.Name()] = 1
		}
	}

	paths := sch.Columns()
	d.leaves = make([]leaf, len(paths))
	for i, path := range paths {
		l := leaf{top: path[0], topDef: topDef[path[0]], role: roleIgnored}
		switch {
		case len(path) == 1:
			l.role = roleScalar
		case len(path) == 2:
			l.role = roleStructField
			l.field = path[1]
		case len(path) == 3 && path[2] == "key":
			l.role = roleMapKey
		case len(path) == 3 && path[2] == "value":
			l.role = roleMapValue
		case len(path) == 3 && path[2] == "element":
			l.role = roleListElement
		}
		if col, ok := sch.Lookup(path...); ok {
			l.value = valueDecoder(col.Node)
		} else {
			l.role = roleIgnored
		}
		d.leaves[i] = l
	}
	return d
}

func (d *decoder) decode(row parquet.Row) Record {
	rec := make(Record, len(d.columns))
	for _, c := range d.columns {
		rec[c] = nil
	}

	var keys, vals map[string][]any
	for _, v := range row {
		idx := v.Column()
		if idx < 0 || idx >= len(d.leaves) {
			continue
		}
		l := d.leaves[idx]
		present := v.DefinitionLevel() >= l.topDef

		switch l.role {
		case roleScalar:
			rec[l.top] = l.decode(v)
		case roleStructField:
			if !present {
				continue
			}
			m, _ := rec[l.top].(map[string]any)
			if m == nil {
				m = make(map[string]any)
				rec[l.top] = m
			}
			m[l.field] = l.decode(v)
		case roleMapKey:
			if !present {
				continue
			}
			if _, ok := rec[l.top].(map[string]any); !ok {
				rec[l.top] = make(map[string]any)
			}
			if v.IsNull() {
				continue
			}
			if keys == nil {
				keys = make(map[string][]any)
			}
			keys[l.top] = append(keys[l.top], l.decode(v))
		case roleMapValue:
			if !present {
				continue
			}
			if vals == nil {
				vals = make(map[string][]any)
			}
			vals[l.top] = append(vals[l.top], l.decode(v))
		case roleListElement:
			if !present {
				continue
			}
			list, _ := rec[l.top].([]any)
			if list == nil {
				list = make([]any, 0, 4)
			}
			if !v.IsNull() {
				list = append(list, l.decode(v))
			}
			rec[l.top] = list
		}
	}

	for top, ks := range keys {
		m, _ := rec[top].(map[string]any)
		vs := vals[top]
		for i, k := range ks {
			var val any
			if i < len(vs) {
				val = vs[i]
			}
			m[fmt.Sprint(k)] = val
		}
	}
	return rec
}

func (l leaf) decode(v parquet.Value) any {
	if v.IsNull() || l.value == nil {
		return nil
	}
	return l.value(v)
}

// valueDecoder picks the conversion for a leaf from its logical type,
// falling back to the physical kind.
func valueDecoder(n parquet.Node) func(parquet.Value) any {
	lt := n.Type().LogicalType()
	if lt != nil {
		switch {
		case lt.Date != nil:
			return func(v parquet.Value) any {
				return time.Unix(int64(v.Int32())*secondsPerDay, 0).UTC()
			}
		case lt.Timestamp != nil:
			unit := lt.Timestamp.Unit
			switch {
			case unit.Nanos != nil:
				return func(v parquet.Value) any { return time.Unix(0, v.Int64()).UTC() }
			case unit.Micros != nil:
				return func(v parquet.Value) any { return time.UnixMicro(v.Int64()).UTC() }
			default:
				return func(v parquet.Value) any { return time.UnixMilli(v.Int64()).UTC() }
			}
		}
	}
	return physicalValue
}

const (
	secondsPerDay = 86400
	// julianUnixEpoch is the Julian day number of 1970-01-01.
	julianUnixEpoch = 2440588
)

func physicalValue(v parquet.Value) any {
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return int64(v.Int32())
	case parquet.Int64:
		return v.Int64()
	case parquet.Int96:
		// Legacy timestamps: nanoseconds of day followed by the Julian day.
		i96 := v.Int96()
		nanos := int64(uint64(i96[1])<<32 | uint64(i96[0]))
		days := int64(i96[2]) - julianUnixEpoch
		return time.Unix(days*secondsPerDay, nanos).UTC()
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	}
	return nil
}
