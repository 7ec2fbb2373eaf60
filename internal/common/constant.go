// Package common contains shared constants and sentinel errors used across
// gophaccounts components.
package common

// AuthorizationHeaderName is the gRPC metadata key used to carry the bearer
// access token on inbound and outbound requests.
const AuthorizationHeaderName = "authorization"

// BearerScheme is the authorization scheme expected in AuthorizationHeaderName.
const BearerScheme = "Bearer"
