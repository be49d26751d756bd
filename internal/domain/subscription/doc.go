// Package subscription provides domain models for plans and owner subscriptions.
//
// This package implements the entitlement source of truth:
//   - Plan: a priced tier with a feature map of boolean switches,
//     graded tiers and numeric limits
//   - Subscription: ties an owner account to a plan for a period;
//     only an active subscription grants entitlements, and an owner
//     holds at most one active subscription at a time
//
// Feature values come in three shapes. Boolean features gate whole
// capabilities (marketplace_listing, financial_reports). Graded
// features carry an ordered tier per key (support_tier, report_tier).
// Limit features cap counts (max_properties), with nil meaning
// unlimited.
//
// The entitlement gate in the application layer reads this package
// through PlanRepository and SubscriptionRepository and fails closed
// when either lookup fails.
package subscription
