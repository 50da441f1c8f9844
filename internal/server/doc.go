// Package server exposes the launch dashboard over HTTP.
//
// The page at / is an embedded HTML document that draws both charts with
// plotly.js. Everything it needs comes from the JSON API:
//
//	GET  /api/layout                  control layout
//	GET  /api/bounds                  payload bounds and sites
//	GET  /api/charts/outcome?site=    proportion chart
//	GET  /api/charts/scatter?site=&low=&high=
//	POST /api/sessions                new session with default figures
//	GET  /api/sessions/{id}           current session state and figures
//	POST /api/sessions/{id}/events    apply a control change
//
// Every JSON response uses the same envelope as the CLI:
//
//	{"status":"ok","data":...}
//	{"status":"error","error":{"code":"E201","message":"..."}}
package server
