// Package common contains shared constants and sentinel errors used across
// StorePulse console components.
package common

const (
	// AuthorizationHeaderName carries "{tokenType} {accessToken}" on
	// authenticated backend requests.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName correlates a single fetch with backend logs.
	RequestIDHeaderName = "X-Request-ID"

	// SessionKey is the metadata key holding the serialized session record.
	SessionKey = "tenantData"

	// LoginPath is where unauthenticated navigation lands.
	LoginPath = "/login"

	// LayoutRoot is the bare root of the authenticated area.
	LayoutRoot = "/mainLayout"
)
