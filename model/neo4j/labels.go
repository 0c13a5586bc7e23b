// model/neo4j/labels.go
package ow_neo4j

// Node Labels
const (
	// LabelUser represents a dashboard actor
	LabelUser = "User"

	// LabelPlacement represents an integration point registered by a user
	LabelPlacement = "Placement"
)

// Relationship Types
const (
	// RelOwnsPlacement links a user to the placements they registered
	RelOwnsPlacement = "OWNS_PLACEMENT"
)
