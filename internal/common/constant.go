// Package common contains shared constants and sentinel errors used across
// sensorhub components.
package common

// AuthorizationHeaderName carries the bearer token on HTTP requests.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the authorization scheme expected in AuthorizationHeaderName.
const BearerScheme = "Bearer"

// DefaultRole is assigned to every newly registered account.
const DefaultRole = "ROLE_USER"
