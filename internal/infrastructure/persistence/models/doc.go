// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Only the identity context uses mapped models; the property and subscription
// aggregates carry their column mappings directly and are persisted as-is by
// their repositories.
//
// Structure:
// - base.go: Base persistence models (BaseModel, AggregateModel)
// - identity.go: Identity context models (Account, StaffMember)
package models
