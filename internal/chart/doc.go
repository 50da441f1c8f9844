// Package chart turns the launch dataset and the current control values into
// chart-ready tables.
//
// Two transforms are provided:
//   - OutcomeProportions: successes per site, or outcome counts for one site
//   - ScatterSeries: one point per launch within a payload range
//
// Both are pure functions of their inputs. They never mutate the dataset,
// hold no state between calls, and return identical output for identical
// input. The tables they return are independent of any charting library;
// rendering is the caller's concern.
package chart
