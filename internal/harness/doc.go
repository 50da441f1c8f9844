// Package harness replays dashboard scenarios and checks the charts they
// produce.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: site_then_range
//	description: "Select a site, then narrow the payload range"
//	data_file: ../data/three_launches.csv   # or inline records:
//	records:
//	  - { launch_site: SiteA, class: 1, payload_mass_kg: 500, booster_version_category: v1 }
//	events:
//	  - control: site-dropdown
//	    value: SiteA
//	  - control: payload-slider
//	    value: [1000, 7000]
//	assertions:
//	  - type: title
//	    output: success-pie-chart
//	    title: "Total Success Launches for site SiteA"
//	  - type: rows
//	    output: success-payload-scatter-chart
//	    rows:
//	      - { x: 2000, y: 0, color: v1 }
//	  - type: rejected
//	    step: 2
//	    code: E201
//
// Exactly one of data_file and records must be given. A relative data_file
// is resolved against the scenario file's directory.
//
// # Assertion Types
//
//   - title: the chart title of an output
//   - row_count: the number of rows or points of an output
//   - rows: the rows or points of an output, in order, each a subset match
//   - rejected: the event at step was rejected, optionally with a code
//
// title, row_count and rows check the final figure unless step is set, in
// which case they check the figure produced by that event. Steps are
// 0-based indexes into events.
//
// # Deterministic Testing
//
// Every run uses a fixed session id (scenario.session_id or
// "test-session-default") and the session's logical clock, so the same
// scenario always yields a byte-identical trace. RunWithGolden compares that
// trace against testdata/golden/{name}.golden.
package harness
