// Package common contains shared constants and sentinel errors used across
// Corkboard components.
package common

// DefaultDisplayName is substituted when a verified identity carries no
// usable display name claim.
const DefaultDisplayName = "User"
