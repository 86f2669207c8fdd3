package io

import (
	"encoding/csv"
	"fmt"
	goio "io"
	"os"
	"strconv"
	"strings"

	"github.com/phil-mansfield/orbvis/geom"
	"github.com/phil-mansfield/orbvis/trajectory"
)

// History table column names. The id column carries the particle kind as a
// prefix (bh_id, ns_id), matching the extraction pipeline's output.
var historyCols = []string{
	"time_myr", "mass_msun", "x", "y", "z", "vx", "vy", "vz",
}

// ReadHistory reads one particle kind's trajectory table from a CSV file
// with a header row and returns its records. Rows must contain the columns
// time_myr, mass_msun, x, y, z, vx, vy, vz, and exactly one column ending
// in "_id"; column order is free.
func ReadHistory(
	path string, kind trajectory.Kind,
) ([]trajectory.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: cannot read header: %v", path, err)
	}

	cols, idCol, err := historyColumns(header)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}

	var recs []trajectory.Record
	line := 1
	for {
		row, err := r.Read()
		if err == goio.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("%s: %v", path, err)
		}
		line++

		vals := make([]float64, len(historyCols))
		for i, c := range cols {
			vals[i], err = strconv.ParseFloat(strings.TrimSpace(row[c]), 64)
			if err != nil {
				return nil, fmt.Errorf(
					"%s: line %d: bad %s value %q",
					path, line, historyCols[i], row[c],
				)
			}
		}
		id, err := strconv.ParseFloat(strings.TrimSpace(row[idCol]), 64)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: line %d: bad id value %q", path, line, row[idCol],
			)
		}

		if vals[1] <= 0 {
			return nil, fmt.Errorf(
				"%s: line %d: non-positive mass %g", path, line, vals[1],
			)
		}

		recs = append(recs, trajectory.Record{
			ID:   int64(id),
			Time: vals[0],
			Mass: vals[1],
			X:    geom.Vec{vals[2], vals[3], vals[4]},
			V:    geom.Vec{vals[5], vals[6], vals[7]},
			Kind: kind,
		})
	}
	return recs, nil
}

// ReadTrajectory reads both history tables of a run and merges them into
// one store. nsPath may be empty for runs without neutron stars.
func ReadTrajectory(bhPath, nsPath string) (*trajectory.Trajectory, error) {
	recs, err := ReadHistory(bhPath, trajectory.BlackHole)
	if err != nil {
		return nil, err
	}

	if nsPath != "" {
		nsRecs, err := ReadHistory(nsPath, trajectory.NeutronStar)
		if err != nil {
			return nil, err
		}
		recs = append(recs, nsRecs...)
	}

	return trajectory.New(recs), nil
}

func historyColumns(header []string) (cols []int, idCol int, err error) {
	byName := make(map[string]int)
	idCol = -1
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		byName[name] = i
		if strings.HasSuffix(name, "_id") {
			if idCol != -1 {
				return nil, 0, fmt.Errorf("multiple id columns in header")
			}
			idCol = i
		}
	}
	if idCol == -1 {
		return nil, 0, fmt.Errorf("no id column in header")
	}

	cols = make([]int, len(historyCols))
	for i, name := range historyCols {
		c, ok := byName[name]
		if !ok {
			return nil, 0, fmt.Errorf("missing column %q in header", name)
		}
		cols[i] = c
	}
	return cols, idCol, nil
}
