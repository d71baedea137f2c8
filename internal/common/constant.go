package common

// AuthorizationHeaderName is the HTTP header used to carry the bearer
// credential on outbound requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName is the HTTP header used to carry the per-request
// correlation id.
const RequestIDHeaderName = "X-Request-Id"
