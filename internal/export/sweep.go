package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/san-kum/fieldboost/internal/lorentz"
	"github.com/san-kum/fieldboost/internal/sweep"
)

// SweepColumns returns the CSV header: the swept value, then x, y and z of
// every vector quantity and every scalar quantity, both in name order.
func SweepColumns(res *sweep.Result) []string {
	cols := []string{res.Spec.Over}
	for _, name := range sortedKeys(sweep.VectorQuantities) {
		cols = append(cols, name+"_x", name+"_y", name+"_z")
	}
	return append(cols, sortedKeys(sweep.ScalarQuantities)...)
}

func sweepRow(s sweep.Sample) []string {
	f := func(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }
	row := []string{f(s.Value)}
	for _, name := range sortedKeys(sweep.VectorQuantities) {
		v := sweep.VectorQuantities[name](s.Quantities)
		row = append(row, f(v.X), f(v.Y), f(v.Z))
	}
	for _, name := range sortedKeys(sweep.ScalarQuantities) {
		row = append(row, f(sweep.ScalarQuantities[name](s.Quantities)))
	}
	return row
}

// SweepCSV writes one row per sample under SweepColumns.
func SweepCSV(w io.Writer, res *sweep.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SweepColumns(res)); err != nil {
		return fmt.Errorf("export: csv header: %w", err)
	}
	for _, s := range res.Samples {
		if err := cw.Write(sweepRow(s)); err != nil {
			return fmt.Errorf("export: csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

type SweepSample struct {
	Value   Float   `json:"value"`
	Outputs Outputs `json:"outputs"`
}

type SweepDocument struct {
	Over            string        `json:"over"`
	From            Float         `json:"from"`
	To              Float         `json:"to"`
	Steps           int           `json:"steps"`
	DotDrift        Float         `json:"dot_drift"`
	DifferenceDrift Float         `json:"difference_drift"`
	NonFinite       int           `json:"non_finite"`
	Samples         []SweepSample `json:"samples"`
}

// NewSweepDocument converts a sweep result. base supplies the unprimed
// fields of samples that do not sweep them.
func NewSweepDocument(base lorentz.Input, res *sweep.Result) SweepDocument {
	doc := SweepDocument{
		Over:            res.Spec.Over,
		From:            Float(res.Spec.From),
		To:              Float(res.Spec.To),
		Steps:           res.Spec.Steps,
		DotDrift:        Float(res.DotDrift),
		DifferenceDrift: Float(res.DifferenceDrift),
		NonFinite:       res.NonFinite,
		Samples:         make([]SweepSample, len(res.Samples)),
	}
	for i, s := range res.Samples {
		in := base
		sweep.Set(&in, res.Spec.Over, s.Value)
		doc.Samples[i] = SweepSample{Value: Float(s.Value), Outputs: NewOutputs(in.EField, in.BField, s.Quantities)}
	}
	return doc
}

// SweepJSON writes the sweep as an indented JSON document.
func SweepJSON(w io.Writer, base lorentz.Input, res *sweep.Result) error {
	return WriteJSON(w, NewSweepDocument(base, res))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
