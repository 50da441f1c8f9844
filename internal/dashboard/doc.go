// Package dashboard holds the UI-side state of the launch dashboard and the
// table that wires controls to charts.
//
// # Controls and Outputs
//
// Two controls drive two outputs:
//
//	site-dropdown  -> success-pie-chart, success-payload-scatter-chart
//	payload-slider -> success-payload-scatter-chart
//
// The wiring is an explicit table keyed by control id. When a control
// changes, only the outputs bound to it are re-rendered, each by calling the
// pure transform in package chart with the session's new ControlState.
//
// # Sessions
//
// A Session owns one ControlState and the figures last rendered for it.
// Apply validates an event before committing it. A rejected event leaves
// the state and the previous figures untouched, so the page keeps showing
// the last good chart.
package dashboard
