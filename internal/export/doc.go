// Package export writes scenarios and sweeps to files: JSON reports, CSV
// tables and SVG drawings.
package export
