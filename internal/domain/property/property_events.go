package property

import (
	"github.com/google/uuid"
	"github.com/kosthub/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeProperty = "Property"

// Event type constants
const (
	EventTypePropertyCreated            = "PropertyCreated"
	EventTypePropertyUpdated            = "PropertyUpdated"
	EventTypePropertyPublished          = "PropertyPublished"
	EventTypePropertyUnpublished        = "PropertyUnpublished"
	EventTypePropertyMarketplaceToggled = "PropertyMarketplaceToggled"
	EventTypePropertyDeleted            = "PropertyDeleted"
)

// PropertyCreatedEvent is published when a property is created
type PropertyCreatedEvent struct {
	shared.BaseDomainEvent
	PropertyID uuid.UUID `json:"property_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
}

// NewPropertyCreatedEvent creates a new PropertyCreatedEvent
func NewPropertyCreatedEvent(property *Property) *PropertyCreatedEvent {
	return &PropertyCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePropertyCreated, AggregateTypeProperty, property.ID),
		PropertyID:      property.ID,
		OwnerID:         property.OwnerID,
		Name:            property.Name,
		Slug:            property.Slug,
	}
}

// PropertyUpdatedEvent is published when a property's details change
type PropertyUpdatedEvent struct {
	shared.BaseDomainEvent
	PropertyID uuid.UUID `json:"property_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
}

// NewPropertyUpdatedEvent creates a new PropertyUpdatedEvent
func NewPropertyUpdatedEvent(property *Property) *PropertyUpdatedEvent {
	return &PropertyUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePropertyUpdated, AggregateTypeProperty, property.ID),
		PropertyID:      property.ID,
		OwnerID:         property.OwnerID,
	}
}

// PropertyPublishedEvent is published when a property goes live on the
// marketplace
type PropertyPublishedEvent struct {
	shared.BaseDomainEvent
	PropertyID uuid.UUID `json:"property_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Slug       string    `json:"slug"`
}

// NewPropertyPublishedEvent creates a new PropertyPublishedEvent
func NewPropertyPublishedEvent(property *Property) *PropertyPublishedEvent {
	return &PropertyPublishedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePropertyPublished, AggregateTypeProperty, property.ID),
		PropertyID:      property.ID,
		OwnerID:         property.OwnerID,
		Slug:            property.Slug,
	}
}

// PropertyUnpublishedEvent is published when a property returns to draft
type PropertyUnpublishedEvent struct {
	shared.BaseDomainEvent
	PropertyID uuid.UUID `json:"property_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
}

// NewPropertyUnpublishedEvent creates a new PropertyUnpublishedEvent
func NewPropertyUnpublishedEvent(property *Property) *PropertyUnpublishedEvent {
	return &PropertyUnpublishedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePropertyUnpublished, AggregateTypeProperty, property.ID),
		PropertyID:      property.ID,
		OwnerID:         property.OwnerID,
	}
}

// PropertyMarketplaceToggledEvent is published when the owner's
// marketplace toggle flips
type PropertyMarketplaceToggledEvent struct {
	shared.BaseDomainEvent
	PropertyID uuid.UUID `json:"property_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Enabled    bool      `json:"enabled"`
}

// NewPropertyMarketplaceToggledEvent creates a new PropertyMarketplaceToggledEvent
func NewPropertyMarketplaceToggledEvent(property *Property) *PropertyMarketplaceToggledEvent {
	return &PropertyMarketplaceToggledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePropertyMarketplaceToggled, AggregateTypeProperty, property.ID),
		PropertyID:      property.ID,
		OwnerID:         property.OwnerID,
		Enabled:         property.MarketplaceEnabled,
	}
}

// PropertyDeletedEvent is published when a property is deleted
type PropertyDeletedEvent struct {
	shared.BaseDomainEvent
	PropertyID uuid.UUID `json:"property_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Name       string    `json:"name"`
}

// NewPropertyDeletedEvent creates a new PropertyDeletedEvent
func NewPropertyDeletedEvent(property *Property) *PropertyDeletedEvent {
	return &PropertyDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePropertyDeleted, AggregateTypeProperty, property.ID),
		PropertyID:      property.ID,
		OwnerID:         property.OwnerID,
		Name:            property.Name,
	}
}
