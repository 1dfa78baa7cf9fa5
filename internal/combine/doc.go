// Package combine concatenates a project's rendered scene videos into one
// final artifact and optionally muxes an uploaded audio track onto it.
package combine
