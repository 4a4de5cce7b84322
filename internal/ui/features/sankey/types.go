// Package sankey renders the four-lane DCL flow visualization and its
// interaction endpoints.
package sankey

// ViewSignals are the browser-reported canvas dimensions. Zero values
// mean the container has not been measured yet.
type ViewSignals struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
