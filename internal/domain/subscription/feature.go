package subscription

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/kosthub/backend/internal/domain/shared"
)

// FeatureKey represents a unique identifier for a plan feature
type FeatureKey string

// Predefined feature keys for the platform
const (
	// Boolean features
	FeatureMarketplaceListing FeatureKey = "marketplace_listing"
	FeatureFinancialReports   FeatureKey = "financial_reports"
	FeatureTenantInvoicing    FeatureKey = "tenant_invoicing"
	FeatureDataExport         FeatureKey = "data_export"

	// Graded features
	FeatureSupportTier FeatureKey = "support_tier"
	FeatureReportTier  FeatureKey = "report_tier"

	// Limit features
	FeatureMaxProperties       FeatureKey = "max_properties"
	FeatureMaxRoomsPerProperty FeatureKey = "max_rooms_per_property"
	FeatureMaxStaffAccounts    FeatureKey = "max_staff_accounts"
)

// Tier is one step of a graded feature. Tiers are ordered per feature
// key, not globally: "basic" means different things for support and
// reporting.
type Tier string

const (
	SupportTierBasic    Tier = "basic"
	SupportTierPriority Tier = "priority"
	SupportTierAlwaysOn Tier = "always_on"

	ReportTierNone  Tier = "none"
	ReportTierBasic Tier = "basic"
	ReportTierFull  Tier = "full"
)

// tierOrder lists each graded feature's tiers in ascending order
var tierOrder = map[FeatureKey][]Tier{
	FeatureSupportTier: {SupportTierBasic, SupportTierPriority, SupportTierAlwaysOn},
	FeatureReportTier:  {ReportTierNone, ReportTierBasic, ReportTierFull},
}

// IsGradedFeature returns true if the key carries a tier value
func IsGradedFeature(key FeatureKey) bool {
	_, ok := tierOrder[key]
	return ok
}

// LowestTier returns the bottom tier for a graded feature key. Callers
// fall back to this when an owner has no active subscription.
func LowestTier(key FeatureKey) Tier {
	order, ok := tierOrder[key]
	if !ok || len(order) == 0 {
		return ""
	}
	return order[0]
}

// IsValidTier checks whether tier belongs to the key's tier set
func IsValidTier(key FeatureKey, tier Tier) bool {
	return tierRank(key, tier) >= 0
}

// TierAtLeast reports whether have meets or exceeds want in the key's
// ordering. Unknown tiers never satisfy anything.
func TierAtLeast(key FeatureKey, have, want Tier) bool {
	haveRank := tierRank(key, have)
	wantRank := tierRank(key, want)
	if haveRank < 0 || wantRank < 0 {
		return false
	}
	return haveRank >= wantRank
}

func tierRank(key FeatureKey, tier Tier) int {
	for i, t := range tierOrder[key] {
		if t == tier {
			return i
		}
	}
	return -1
}

// FeatureValueKind discriminates the three feature value shapes
type FeatureValueKind string

const (
	FeatureValueBool  FeatureValueKind = "bool"
	FeatureValueTier  FeatureValueKind = "tier"
	FeatureValueLimit FeatureValueKind = "limit"
)

// FeatureValue is one entry of a plan's feature map: a switch, a graded
// tier, or a numeric limit (nil limit = unlimited).
type FeatureValue struct {
	Kind    FeatureValueKind `json:"kind"`
	Enabled bool             `json:"enabled,omitempty"`
	Tier    Tier             `json:"tier,omitempty"`
	Limit   *int             `json:"limit,omitempty"`
}

// BoolFeature creates a boolean feature value
func BoolFeature(enabled bool) FeatureValue {
	return FeatureValue{Kind: FeatureValueBool, Enabled: enabled}
}

// TierFeature creates a graded feature value
func TierFeature(tier Tier) FeatureValue {
	return FeatureValue{Kind: FeatureValueTier, Tier: tier}
}

// LimitFeature creates a limited numeric feature value
func LimitFeature(limit int) FeatureValue {
	return FeatureValue{Kind: FeatureValueLimit, Enabled: true, Limit: &limit}
}

// UnlimitedFeature creates a numeric feature value without a cap
func UnlimitedFeature() FeatureValue {
	return FeatureValue{Kind: FeatureValueLimit, Enabled: true}
}

// IsEnabled reports whether the value grants anything at all
func (v FeatureValue) IsEnabled() bool {
	switch v.Kind {
	case FeatureValueBool, FeatureValueLimit:
		return v.Enabled
	case FeatureValueTier:
		return v.Tier != "" && v.Tier != ReportTierNone
	default:
		return false
	}
}

// IsUnlimited returns true for a limit value without a cap
func (v FeatureValue) IsUnlimited() bool {
	return v.Kind == FeatureValueLimit && v.Enabled && v.Limit == nil
}

// GetLimit returns the limit value, or -1 if unlimited or not a limit
func (v FeatureValue) GetLimit() int {
	if v.Kind != FeatureValueLimit || v.Limit == nil {
		return -1
	}
	return *v.Limit
}

// FeatureMap is a plan's full feature assignment, stored as jsonb
type FeatureMap map[FeatureKey]FeatureValue

// Has reports whether the map grants the boolean feature
func (m FeatureMap) Has(key FeatureKey) bool {
	value, ok := m[key]
	if !ok {
		return false
	}
	return value.IsEnabled()
}

// TierOf returns the granted tier for a graded key, falling back to
// the key's lowest tier when absent
func (m FeatureMap) TierOf(key FeatureKey) Tier {
	value, ok := m[key]
	if !ok || value.Kind != FeatureValueTier {
		return LowestTier(key)
	}
	if !IsValidTier(key, value.Tier) {
		return LowestTier(key)
	}
	return value.Tier
}

// LimitOf returns the limit for a numeric key; the bool is false when
// the key is absent or disabled, and limit is nil when unlimited
func (m FeatureMap) LimitOf(key FeatureKey) (*int, bool) {
	value, ok := m[key]
	if !ok || value.Kind != FeatureValueLimit || !value.Enabled {
		return nil, false
	}
	return value.Limit, true
}

// Validate checks every entry against its key's expected shape
func (m FeatureMap) Validate() error {
	for key, value := range m {
		switch value.Kind {
		case FeatureValueBool, FeatureValueLimit:
			if IsGradedFeature(key) {
				return shared.NewDomainError("INVALID_FEATURE_VALUE",
					fmt.Sprintf("Feature %s requires a tier value", key))
			}
		case FeatureValueTier:
			if !IsGradedFeature(key) {
				return shared.NewDomainError("INVALID_FEATURE_VALUE",
					fmt.Sprintf("Feature %s does not take a tier value", key))
			}
			if !IsValidTier(key, value.Tier) {
				return shared.NewDomainError("INVALID_FEATURE_VALUE",
					fmt.Sprintf("Feature %s has unknown tier %q", key, value.Tier))
			}
		default:
			return shared.NewDomainError("INVALID_FEATURE_VALUE",
				fmt.Sprintf("Feature %s has unknown kind %q", key, value.Kind))
		}
	}
	return nil
}

// Value implements driver.Valuer for database storage
func (m FeatureMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database retrieval
func (m *FeatureMap) Scan(value interface{}) error {
	if value == nil {
		*m = FeatureMap{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into FeatureMap", value)
	}

	if len(data) == 0 {
		*m = FeatureMap{}
		return nil
	}
	return json.Unmarshal(data, m)
}

// AllFeatureKeys returns all defined feature keys
func AllFeatureKeys() []FeatureKey {
	return []FeatureKey{
		FeatureMarketplaceListing,
		FeatureFinancialReports,
		FeatureTenantInvoicing,
		FeatureDataExport,
		FeatureSupportTier,
		FeatureReportTier,
		FeatureMaxProperties,
		FeatureMaxRoomsPerProperty,
		FeatureMaxStaffAccounts,
	}
}

// IsValidFeatureKey checks if a feature key is known
func IsValidFeatureKey(key FeatureKey) bool {
	for _, k := range AllFeatureKeys() {
		if k == key {
			return true
		}
	}
	return false
}
