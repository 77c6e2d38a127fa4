// Package st4 scans the line-oriented ST4 structural export format into raw,
// not yet cross-referenced records.
//
// The format has no grammar beyond section headers such as "/Story/" or
// "/Beams Data/" and the number of comma-separated fields on each line.
// ClassifyLine recognizes headers; a Scanner feeds every other line to the
// handler of the active section. A handler either appends a raw record or
// reports why the line was rejected, and rejected lines become Diagnostics
// instead of aborting the scan.
//
// Axis references embedded in element records are decoded by
// ResolveAxisLabel and looked up through an AxisResolver once the axes of a
// file are known.
package st4
