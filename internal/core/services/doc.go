// Package services implements the driving port interfaces.
// Services contain the core business logic: query normalization, source
// selection, the concurrent backend fan-out and result synthesis.
//
// Services are pure Go; all network access happens behind driven ports.
package services
