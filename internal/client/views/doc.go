// Package views assembles the resources behind each console screen.
//
// Every view embeds an aggregate.Group, so loading, error, Refetch, Wait
// and Close behave the same way on all of them; Data returns the typed
// payload.
package views
