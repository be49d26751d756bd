package property

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kosthub/backend/internal/domain/shared"
	"github.com/kosthub/backend/internal/domain/shared/valueobject"
)

// MarketplaceStatus represents a property's publication state
type MarketplaceStatus string

const (
	MarketplaceStatusDraft     MarketplaceStatus = "draft"
	MarketplaceStatusPublished MarketplaceStatus = "published"
)

// Property represents one kos building managed by an owner account.
// A property appears in public marketplace derivation only while
// marketplace is enabled AND the status is published; both gates must
// hold, so unpublishing or disabling each takes the property off the
// marketplace on its own.
type Property struct {
	shared.OwnerAggregateRoot
	Name               string              `gorm:"type:varchar(200);not null"`
	Slug               string              `gorm:"type:varchar(100);not null;uniqueIndex"`
	Address            valueobject.Address `gorm:"type:jsonb"`
	Description        string              `gorm:"type:text"`
	Phone              string              `gorm:"type:varchar(50)"`
	Rules              string              `gorm:"type:text"`
	MarketplaceEnabled bool                `gorm:"not null;default:false"`
	MarketplaceStatus  MarketplaceStatus   `gorm:"type:varchar(20);not null;default:'draft'"`
}

// TableName returns the table name for GORM
func (Property) TableName() string {
	return "properties"
}

// NewProperty creates a new property in draft state
func NewProperty(ownerID uuid.UUID, name string, address valueobject.Address) (*Property, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER_ID", "Owner ID cannot be empty")
	}
	if err := validatePropertyName(name); err != nil {
		return nil, err
	}
	if address.IsEmpty() {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Property address cannot be empty")
	}

	property := &Property{
		OwnerAggregateRoot: shared.NewOwnerAggregateRoot(ownerID),
		Name:               name,
		Slug:               MakeSlug(name),
		Address:            address,
		MarketplaceStatus:  MarketplaceStatusDraft,
	}

	property.AddDomainEvent(NewPropertyCreatedEvent(property))

	return property, nil
}

// Update updates the property's descriptive fields
func (p *Property) Update(name, description, phone, rules string) error {
	if err := validatePropertyName(name); err != nil {
		return err
	}
	if phone != "" && len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}

	p.Name = name
	p.Description = description
	p.Phone = strings.TrimSpace(phone)
	p.Rules = rules
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPropertyUpdatedEvent(p))

	return nil
}

// SetAddress updates the property's address
func (p *Property) SetAddress(address valueobject.Address) error {
	if address.IsEmpty() {
		return shared.NewDomainError("INVALID_ADDRESS", "Property address cannot be empty")
	}

	p.Address = address
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPropertyUpdatedEvent(p))

	return nil
}

// ChangeSlug replaces the property's public slug. The slug identifies
// the property in marketplace URLs, so changes break existing links.
func (p *Property) ChangeSlug(slug string) error {
	slug = MakeSlug(slug)
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot be empty")
	}

	p.Slug = slug
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// EnableMarketplace turns the owner's marketplace toggle on
func (p *Property) EnableMarketplace() error {
	if p.MarketplaceEnabled {
		return shared.NewDomainError("ALREADY_ENABLED", "Marketplace is already enabled")
	}

	p.MarketplaceEnabled = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPropertyMarketplaceToggledEvent(p))

	return nil
}

// DisableMarketplace turns the owner's marketplace toggle off without
// touching the publication status
func (p *Property) DisableMarketplace() error {
	if !p.MarketplaceEnabled {
		return shared.NewDomainError("ALREADY_DISABLED", "Marketplace is already disabled")
	}

	p.MarketplaceEnabled = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPropertyMarketplaceToggledEvent(p))

	return nil
}

// Publish moves the property to the published state. Entitlement to
// list on the marketplace is checked by the application layer before
// this is called.
func (p *Property) Publish() error {
	if p.MarketplaceStatus == MarketplaceStatusPublished {
		return shared.NewDomainError("ALREADY_PUBLISHED", "Property is already published")
	}

	p.MarketplaceStatus = MarketplaceStatusPublished
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPropertyPublishedEvent(p))

	return nil
}

// Unpublish returns the property to draft
func (p *Property) Unpublish() error {
	if p.MarketplaceStatus == MarketplaceStatusDraft {
		return shared.NewDomainError("NOT_PUBLISHED", "Property is not published")
	}

	p.MarketplaceStatus = MarketplaceStatusDraft
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPropertyUnpublishedEvent(p))

	return nil
}

// IsListable reports whether the property qualifies for public
// marketplace derivation
func (p *Property) IsListable() bool {
	return p.MarketplaceEnabled && p.MarketplaceStatus == MarketplaceStatusPublished
}

// City returns the property's city from its address
func (p *Property) City() string {
	return p.Address.City()
}

var slugStripPattern = regexp.MustCompile(`[^a-z0-9]+`)

// MakeSlug derives a URL slug from a name. Collisions are resolved by
// the application layer with a numeric suffix.
func MakeSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugStripPattern.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 80 {
		slug = strings.Trim(slug[:80], "-")
	}
	if slug == "" {
		slug = "kos"
	}
	return slug
}

func validatePropertyName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_PROPERTY_NAME", "Property name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_PROPERTY_NAME", "Property name cannot exceed 200 characters")
	}
	return nil
}
