// Package constants defines shared domain-level constant values.
package constants

// Pub/Sub provider types for event publishing.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Identity verifier provider types.
const (
	AuthProviderFirebase = "firebase"
	AuthProviderInsecure = "insecure"
)

// Secret source provider types.
const (
	SecretsProviderGCP = "gcp"
	SecretsProviderEnv = "env"
)
