package subscription

import (
	"strings"
	"time"

	"github.com/kosthub/backend/internal/domain/shared"
	"github.com/kosthub/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// BillingPeriod represents how often a plan is billed
type BillingPeriod string

const (
	BillingPeriodMonthly BillingPeriod = "monthly"
	BillingPeriodYearly  BillingPeriod = "yearly"
)

// IsValid checks if the billing period is valid
func (p BillingPeriod) IsValid() bool {
	return p == BillingPeriodMonthly || p == BillingPeriodYearly
}

// Well-known plan codes seeded at install time
const (
	PlanCodeFree   = "free"
	PlanCodePro    = "pro"
	PlanCodeBisnis = "bisnis"
)

// Plan represents a subscription plan and its feature assignment.
// Prices are IDR.
type Plan struct {
	shared.BaseAggregateRoot
	Code          string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name          string          `gorm:"type:varchar(200);not null"`
	Description   string          `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	BillingPeriod BillingPeriod   `gorm:"type:varchar(20);not null;default:'monthly'"`
	Features      FeatureMap      `gorm:"type:jsonb"`
	Active        bool            `gorm:"not null;default:true"`
	SortOrder     int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Plan) TableName() string {
	return "plans"
}

// NewPlan creates a new plan
func NewPlan(code, name string, price decimal.Decimal, period BillingPeriod, features FeatureMap) (*Plan, error) {
	if err := validatePlanCode(code); err != nil {
		return nil, err
	}
	if err := validatePlanName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Plan price cannot be negative")
	}
	if !period.IsValid() {
		return nil, shared.NewDomainError("INVALID_BILLING_PERIOD", "Billing period must be monthly or yearly")
	}
	if features == nil {
		features = FeatureMap{}
	}
	if err := features.Validate(); err != nil {
		return nil, err
	}

	plan := &Plan{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToLower(strings.TrimSpace(code)),
		Name:              name,
		Price:             price,
		BillingPeriod:     period,
		Features:          features,
		Active:            true,
	}

	plan.AddDomainEvent(NewPlanCreatedEvent(plan))

	return plan, nil
}

// Update updates the plan's display fields
func (p *Plan) Update(name, description string) error {
	if err := validatePlanName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPlanUpdatedEvent(p))

	return nil
}

// SetPrice changes the plan's price. Existing subscriptions keep their
// entitlements; billing of the new price is out of scope here.
func (p *Plan) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Plan price cannot be negative")
	}

	p.Price = price
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPlanUpdatedEvent(p))

	return nil
}

// SetFeature assigns one feature value on the plan
func (p *Plan) SetFeature(key FeatureKey, value FeatureValue) error {
	if !IsValidFeatureKey(key) {
		return shared.NewDomainError("INVALID_FEATURE_KEY", "Unknown feature key: "+string(key))
	}

	candidate := FeatureMap{key: value}
	if err := candidate.Validate(); err != nil {
		return err
	}

	if p.Features == nil {
		p.Features = FeatureMap{}
	}
	p.Features[key] = value
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPlanUpdatedEvent(p))

	return nil
}

// ReplaceFeatures swaps the plan's whole feature map
func (p *Plan) ReplaceFeatures(features FeatureMap) error {
	if features == nil {
		features = FeatureMap{}
	}
	if err := features.Validate(); err != nil {
		return err
	}

	p.Features = features
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPlanUpdatedEvent(p))

	return nil
}

// Retire takes the plan off sale. Existing subscriptions are untouched.
func (p *Plan) Retire() error {
	if !p.Active {
		return shared.NewDomainError("ALREADY_RETIRED", "Plan is already retired")
	}

	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPlanRetiredEvent(p))

	return nil
}

// Reinstate puts a retired plan back on sale
func (p *Plan) Reinstate() error {
	if p.Active {
		return shared.NewDomainError("ALREADY_ACTIVE", "Plan is already active")
	}

	p.Active = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// HasFeature reports whether the plan grants the boolean feature
func (p *Plan) HasFeature(key FeatureKey) bool {
	return p.Features.Has(key)
}

// FeatureTier returns the plan's tier for a graded feature
func (p *Plan) FeatureTier(key FeatureKey) Tier {
	return p.Features.TierOf(key)
}

// FeatureLimit returns the plan's limit for a numeric feature
func (p *Plan) FeatureLimit(key FeatureKey) (*int, bool) {
	return p.Features.LimitOf(key)
}

// IsFree returns true for a zero-price plan
func (p *Plan) IsFree() bool {
	return p.Price.IsZero()
}

// GetPriceMoney returns the plan price as a Money value object
func (p *Plan) GetPriceMoney() valueobject.Money {
	return valueobject.NewMoneyIDR(p.Price)
}

func validatePlanCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewDomainError("INVALID_PLAN_CODE", "Plan code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_PLAN_CODE", "Plan code cannot exceed 50 characters")
	}
	return nil
}

func validatePlanName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_PLAN_NAME", "Plan name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_PLAN_NAME", "Plan name cannot exceed 200 characters")
	}
	return nil
}

// DefaultPlans returns the seed plan set: a free tier without the
// marketplace, a pro tier for small kos owners, and a bisnis tier for
// multi-property operators.
func DefaultPlans() []*Plan {
	free, _ := NewPlan(PlanCodeFree, "Gratis", decimal.Zero, BillingPeriodMonthly, FeatureMap{
		FeatureMarketplaceListing:  BoolFeature(false),
		FeatureFinancialReports:    BoolFeature(false),
		FeatureTenantInvoicing:     BoolFeature(false),
		FeatureDataExport:          BoolFeature(false),
		FeatureSupportTier:         TierFeature(SupportTierBasic),
		FeatureReportTier:          TierFeature(ReportTierNone),
		FeatureMaxProperties:       LimitFeature(1),
		FeatureMaxRoomsPerProperty: LimitFeature(10),
		FeatureMaxStaffAccounts:    LimitFeature(1),
	})
	free.Description = "Kelola satu kos tanpa biaya"

	pro, _ := NewPlan(PlanCodePro, "Pro", decimal.NewFromInt(99000), BillingPeriodMonthly, FeatureMap{
		FeatureMarketplaceListing:  BoolFeature(true),
		FeatureFinancialReports:    BoolFeature(true),
		FeatureTenantInvoicing:     BoolFeature(true),
		FeatureDataExport:          BoolFeature(false),
		FeatureSupportTier:         TierFeature(SupportTierPriority),
		FeatureReportTier:          TierFeature(ReportTierBasic),
		FeatureMaxProperties:       LimitFeature(5),
		FeatureMaxRoomsPerProperty: LimitFeature(50),
		FeatureMaxStaffAccounts:    LimitFeature(5),
	})
	pro.Description = "Tampil di marketplace dengan laporan keuangan"

	bisnis, _ := NewPlan(PlanCodeBisnis, "Bisnis", decimal.NewFromInt(249000), BillingPeriodMonthly, FeatureMap{
		FeatureMarketplaceListing:  BoolFeature(true),
		FeatureFinancialReports:    BoolFeature(true),
		FeatureTenantInvoicing:     BoolFeature(true),
		FeatureDataExport:          BoolFeature(true),
		FeatureSupportTier:         TierFeature(SupportTierAlwaysOn),
		FeatureReportTier:          TierFeature(ReportTierFull),
		FeatureMaxProperties:       UnlimitedFeature(),
		FeatureMaxRoomsPerProperty: UnlimitedFeature(),
		FeatureMaxStaffAccounts:    UnlimitedFeature(),
	})
	bisnis.Description = "Operasi multi-properti tanpa batas"

	free.SortOrder = 0
	pro.SortOrder = 1
	bisnis.SortOrder = 2

	return []*Plan{free, pro, bisnis}
}
