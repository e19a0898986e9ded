// Package validate partitions cleaned records into accepted and rejected
// sets. Rules run in a fixed declared order and the first failing rule
// determines the single rejection reason a row carries, which keeps the
// rejection histograms reproducible run over run.
package validate

import (
	"github.com/shopspring/decimal"

	"revenueflow/models"
)

type orderRule struct {
	reason models.Reason
	fails  func(models.Order) bool
}

type itemRule struct {
	reason models.Reason
	fails  func(models.OrderItem) bool
}

var orderRules = []orderRule{
	{models.ReasonNullOrderID, func(o models.Order) bool { return o.OrderID == "" }},
	{models.ReasonNullCustomerID, func(o models.Order) bool { return o.CustomerID == "" }},
	{models.ReasonNullOrderDate, func(o models.Order) bool { return o.OrderDate == nil }},
	{models.ReasonNullStatus, func(o models.Order) bool { return o.Status == "" }},
}

var itemRules = []itemRule{
	{models.ReasonNullQuantity, func(i models.OrderItem) bool { return i.Quantity == nil }},
	{models.ReasonInvalidUnitPrice, func(i models.OrderItem) bool {
		return i.UnitPrice == nil || !i.UnitPrice.GreaterThan(decimal.Zero)
	}},
}

// Orders splits orders into accepted and rejected, preserving input order.
func Orders(orders []models.Order) ([]models.Order, []models.RejectedOrder) {
	accepted := make([]models.Order, 0, len(orders))
	var rejected []models.RejectedOrder
	for _, o := range orders {
		if reason, ok := firstOrderFailure(o); ok {
			rejected = append(rejected, models.RejectedOrder{Order: o, Reason: reason})
			continue
		}
		accepted = append(accepted, o)
	}
	return accepted, rejected
}

// Items splits items into accepted and rejected, preserving input order.
// Referential (orphan) checking happens in a later stage and only sees
// items accepted here.
func Items(items []models.OrderItem) ([]models.OrderItem, []models.RejectedItem) {
	accepted := make([]models.OrderItem, 0, len(items))
	var rejected []models.RejectedItem
	for _, it := range items {
		if reason, ok := firstItemFailure(it); ok {
			rejected = append(rejected, models.RejectedItem{Item: it, Reason: reason})
			continue
		}
		accepted = append(accepted, it)
	}
	return accepted, rejected
}

func firstOrderFailure(o models.Order) (models.Reason, bool) {
	for _, r := range orderRules {
		if r.fails(o) {
			return r.reason, true
		}
	}
	return "", false
}

func firstItemFailure(i models.OrderItem) (models.Reason, bool) {
	for _, r := range itemRules {
		if r.fails(i) {
			return r.reason, true
		}
	}
	return "", false
}

// OrderReasonHistogram counts rejections by reason for the quality report.
func OrderReasonHistogram(rejected []models.RejectedOrder) map[string]int {
	h := make(map[string]int)
	for _, r := range rejected {
		h[string(r.Reason)]++
	}
	return h
}

// ItemReasonHistogram counts rejections by reason for the quality report.
func ItemReasonHistogram(rejected []models.RejectedItem) map[string]int {
	h := make(map[string]int)
	for _, r := range rejected {
		h[string(r.Reason)]++
	}
	return h
}
