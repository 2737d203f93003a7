// Package export writes top k-mer lists to HDF5.
package export

import (
	"github.com/pkg/errors"
	"gonum.org/v1/hdf5"

	"github.com/muratgenctav/topkmers/counting"
	"github.com/muratgenctav/topkmers/kmer"
)

// TableName is the HDF5 table holding the results.
const TableName = "topkmers"

// Row is one table record. Key is the packed k-mer, see package kmer.
type Row struct {
	Key   uint64
	Count uint32
	K     uint32
}

// Rows packs a top-k list for storage.
func Rows(k int, top []counting.KmerCount) ([]Row, error) {
	enc, err := kmer.NewEncoder(k)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(top))
	for _, kc := range top {
		if len(kc.Kmer) != k {
			return nil, errors.Errorf("k-mer %q is not %d long", kc.Kmer, k)
		}
		rows = append(rows, Row{Key: uint64(enc.Encode(kc.Kmer, 0)), Count: kc.Count, K: uint32(k)})
	}
	return rows, nil
}

// WriteHDF5 creates path, truncating it, and writes top as a table.
func WriteHDF5(path string, k int, top []counting.KmerCount) error {
	rows, err := Rows(k, top)
	if err != nil {
		return err
	}
	h5, err := hdf5.CreateFile(path, hdf5.F_ACC_TRUNC)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer h5.Close()

	table, err := h5.CreateTableFrom(TableName, Row{}, 64, -1)
	if err != nil {
		return errors.Wrapf(err, "create table in %s", path)
	}
	if len(rows) > 0 {
		if err := table.Append(&rows); err != nil {
			table.Close()
			return errors.Wrapf(err, "append to %s", path)
		}
	}
	if err := table.Close(); err != nil {
		return errors.Wrapf(err, "close table in %s", path)
	}
	return errors.Wrapf(h5.Flush(hdf5.F_SCOPE_GLOBAL), "flush %s", path)
}

// ReadHDF5 reads back a table written by WriteHDF5.
func ReadHDF5(path string) ([]counting.KmerCount, error) {
	h5, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer h5.Close()

	table, err := h5.OpenTable(TableName)
	if err != nil {
		return nil, errors.Wrapf(err, "open table in %s", path)
	}
	defer table.Close()

	n, err := table.NumPackets()
	if err != nil {
		return nil, errors.Wrapf(err, "size of table in %s", path)
	}
	if n == 0 {
		return nil, nil
	}
	rows := make([]Row, n)
	if err := table.Next(&rows); err != nil {
		return nil, errors.Wrapf(err, "read table in %s", path)
	}
	top := make([]counting.KmerCount, len(rows))
	for i, r := range rows {
		enc, err := kmer.NewEncoder(int(r.K))
		if err != nil {
			return nil, err
		}
		top[i] = counting.KmerCount{Kmer: enc.Decode(kmer.Key(r.Key)), Count: r.Count}
	}
	return top, nil
}
