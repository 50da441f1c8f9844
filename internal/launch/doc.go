// Package launch loads launch records from a flat file into an immutable
// in-memory dataset.
//
// The dataset is built once at startup. Three summaries are derived at
// construction time and never change afterwards:
//   - MinPayload: smallest payload mass in the file
//   - MaxPayload: largest payload mass in the file
//   - Sites: distinct launch sites in first-seen order
//
// # File Format
//
// The input is comma-delimited with a header row. Columns are matched by
// name, so their order does not matter and unknown columns are ignored:
//
//	,Flight Number,Launch Site,class,Payload Mass (kg),Booster Version,Booster Version Category
//	0,1,CCAFS LC-40,0,0.0,F9 v1.0  B0003,v1.0
//
// Loading is all-or-nothing. A missing file or column yields a *LoadError,
// a malformed cell yields a *ParseError, and no dataset is returned.
package launch
