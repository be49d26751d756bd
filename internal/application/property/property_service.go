package property

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kosthub/backend/internal/domain/property"
	"github.com/kosthub/backend/internal/domain/shared"
	"github.com/kosthub/backend/internal/domain/shared/valueobject"
	"github.com/kosthub/backend/internal/domain/subscription"
)

// EntitlementChecker answers plan entitlement questions for an owner.
// Implemented by the entitlement service; checks fail closed, so an
// error here means the answer is unknown, not denied.
type EntitlementChecker interface {
	HasFeature(ctx context.Context, ownerID uuid.UUID, key subscription.FeatureKey) (bool, error)
	WithinLimit(ctx context.Context, ownerID uuid.UUID, key subscription.FeatureKey, current int) (bool, error)
}

// PropertyService manages an owner's properties. Every operation is
// scoped to the calling owner; a property belonging to someone else
// reads as not found.
type PropertyService struct {
	propertyRepo property.PropertyRepository
	entitlements EntitlementChecker
	events       shared.EventPublisher
	logger       *zap.Logger
}

// NewPropertyService creates a new property service
func NewPropertyService(
	propertyRepo property.PropertyRepository,
	entitlements EntitlementChecker,
	events shared.EventPublisher,
	logger *zap.Logger,
) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		entitlements: entitlements,
		events:       events,
		logger:       logger,
	}
}

// Create registers a new property for the owner. The plan's property
// limit is checked against the owner's current count before anything
// is written.
func (s *PropertyService) Create(ctx context.Context, ownerID uuid.UUID, req CreatePropertyRequest) (*PropertyResponse, error) {
	count, err := s.propertyRepo.CountByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("Failed to count properties", zap.Error(err), zap.String("owner_id", ownerID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count properties")
	}

	ok, err := s.entitlements.WithinLimit(ctx, ownerID, subscription.FeatureMaxProperties, int(count))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.NewDomainError("PROPERTY_LIMIT_REACHED", "Plan property limit reached, upgrade to add more")
	}

	address, err := buildAddress(req.Address)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
	}

	prop, err := property.NewProperty(ownerID, req.Name, address)
	if err != nil {
		return nil, err
	}

	if req.Description != "" || req.Phone != "" || req.Rules != "" {
		if err := prop.Update(req.Name, req.Description, req.Phone, req.Rules); err != nil {
			return nil, err
		}
	}

	if err := s.ensureUniqueSlug(ctx, prop); err != nil {
		return nil, err
	}

	if err := s.propertyRepo.Save(ctx, prop); err != nil {
		s.logger.Error("Failed to save property", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save property")
	}

	s.publishEvents(ctx, prop)

	s.logger.Info("Property created",
		zap.String("property_id", prop.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.String("slug", prop.Slug))

	return toPropertyResponse(prop), nil
}

// GetByID returns one of the owner's properties
func (s *PropertyService) GetByID(ctx context.Context, ownerID, propertyID uuid.UUID) (*PropertyResponse, error) {
	prop, err := s.findOwned(ctx, ownerID, propertyID)
	if err != nil {
		return nil, err
	}
	return toPropertyResponse(prop), nil
}

// List returns all of the owner's properties
func (s *PropertyService) List(ctx context.Context, ownerID uuid.UUID) ([]PropertyListResponse, error) {
	props, err := s.propertyRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("Failed to list properties", zap.Error(err), zap.String("owner_id", ownerID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list properties")
	}

	responses := make([]PropertyListResponse, 0, len(props))
	for _, prop := range props {
		responses = append(responses, toPropertyListResponse(prop))
	}
	return responses, nil
}

// Update modifies a property's details. Absent fields keep their
// current values.
func (s *PropertyService) Update(ctx context.Context, ownerID, propertyID uuid.UUID, req UpdatePropertyRequest) (*PropertyResponse, error) {
	prop, err := s.findOwned(ctx, ownerID, propertyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil || req.Phone != nil || req.Rules != nil {
		name := prop.Name
		if req.Name != nil {
			name = *req.Name
		}
		description := prop.Description
		if req.Description != nil {
			description = *req.Description
		}
		phone := prop.Phone
		if req.Phone != nil {
			phone = *req.Phone
		}
		rules := prop.Rules
		if req.Rules != nil {
			rules = *req.Rules
		}
		if err := prop.Update(name, description, phone, rules); err != nil {
			return nil, err
		}
	}

	if req.Address != nil {
		address, err := buildAddress(*req.Address)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
		}
		if err := prop.SetAddress(address); err != nil {
			return nil, err
		}
	}

	if req.MarketplaceEnabled != nil && *req.MarketplaceEnabled != prop.MarketplaceEnabled {
		if *req.MarketplaceEnabled {
			err = prop.EnableMarketplace()
		} else {
			err = prop.DisableMarketplace()
		}
		if err != nil {
			return nil, err
		}
	}

	if err := s.propertyRepo.Save(ctx, prop); err != nil {
		s.logger.Error("Failed to update property", zap.Error(err), zap.String("property_id", propertyID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update property")
	}

	s.publishEvents(ctx, prop)

	return toPropertyResponse(prop), nil
}

// Publish puts the property live on the marketplace. Listing is a paid
// feature, so the owner's plan is checked first.
func (s *PropertyService) Publish(ctx context.Context, ownerID, propertyID uuid.UUID) (*PropertyResponse, error) {
	prop, err := s.findOwned(ctx, ownerID, propertyID)
	if err != nil {
		return nil, err
	}

	ok, err := s.entitlements.HasFeature(ctx, ownerID, subscription.FeatureMarketplaceListing)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.ErrFeatureNotEntitled
	}

	if err := prop.Publish(); err != nil {
		return nil, err
	}

	if err := s.propertyRepo.Save(ctx, prop); err != nil {
		s.logger.Error("Failed to publish property", zap.Error(err), zap.String("property_id", propertyID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to publish property")
	}

	s.publishEvents(ctx, prop)

	s.logger.Info("Property published",
		zap.String("property_id", prop.ID.String()),
		zap.String("slug", prop.Slug))

	return toPropertyResponse(prop), nil
}

// Unpublish takes the property off the marketplace. No entitlement
// check: an owner whose plan lapsed can still withdraw a listing.
func (s *PropertyService) Unpublish(ctx context.Context, ownerID, propertyID uuid.UUID) (*PropertyResponse, error) {
	prop, err := s.findOwned(ctx, ownerID, propertyID)
	if err != nil {
		return nil, err
	}

	if err := prop.Unpublish(); err != nil {
		return nil, err
	}

	if err := s.propertyRepo.Save(ctx, prop); err != nil {
		s.logger.Error("Failed to unpublish property", zap.Error(err), zap.String("property_id", propertyID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to unpublish property")
	}

	s.publishEvents(ctx, prop)

	return toPropertyResponse(prop), nil
}

// Delete removes a property and everything under it
func (s *PropertyService) Delete(ctx context.Context, ownerID, propertyID uuid.UUID) error {
	prop, err := s.findOwned(ctx, ownerID, propertyID)
	if err != nil {
		return err
	}

	if err := s.propertyRepo.Delete(ctx, propertyID); err != nil {
		s.logger.Error("Failed to delete property", zap.Error(err), zap.String("property_id", propertyID.String()))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete property")
	}

	s.publishEvent(ctx, property.NewPropertyDeletedEvent(prop))

	s.logger.Info("Property deleted",
		zap.String("property_id", propertyID.String()),
		zap.String("owner_id", ownerID.String()))

	return nil
}

func (s *PropertyService) findOwned(ctx context.Context, ownerID, propertyID uuid.UUID) (*property.Property, error) {
	prop, err := s.propertyRepo.FindByIDForOwner(ctx, propertyID, ownerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PROPERTY_NOT_FOUND", "Property not found")
		}
		s.logger.Error("Failed to find property", zap.Error(err), zap.String("property_id", propertyID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find property")
	}
	return prop, nil
}

// ensureUniqueSlug appends a numeric suffix until the slug is free.
// Two owners naming their kos the same is common, not an error.
func (s *PropertyService) ensureUniqueSlug(ctx context.Context, prop *property.Property) error {
	base := prop.Slug
	slug := base
	for i := 2; ; i++ {
		exists, err := s.propertyRepo.ExistsBySlug(ctx, slug)
		if err != nil {
			s.logger.Error("Failed to check slug", zap.Error(err), zap.String("slug", slug))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to check slug availability")
		}
		if !exists {
			break
		}
		if i > 100 {
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to derive a unique slug")
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
	if slug != base {
		return prop.ChangeSlug(slug)
	}
	return nil
}

func buildAddress(req AddressRequest) (valueobject.Address, error) {
	opts := make([]valueobject.AddressOption, 0, 2)
	if req.Province != "" {
		opts = append(opts, valueobject.WithProvince(req.Province))
	}
	if req.PostalCode != "" {
		opts = append(opts, valueobject.WithPostalCode(req.PostalCode))
	}
	return valueobject.NewAddress(req.City, req.District, req.Street, opts...)
}

// publishEvents publishes the aggregate's accumulated domain events
func (s *PropertyService) publishEvents(ctx context.Context, prop *property.Property) {
	if s.events == nil {
		return
	}
	events := prop.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.events.Publish(ctx, events...)
	prop.ClearDomainEvents()
}

func (s *PropertyService) publishEvent(ctx context.Context, event shared.DomainEvent) {
	if s.events == nil {
		return
	}
	_ = s.events.Publish(ctx, event)
}
