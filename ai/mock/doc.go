// Package mock provides test doubles for the ai interfaces. The doubles
// default to deterministic behavior and accept injected functions for
// failure-path testing.
package mock
