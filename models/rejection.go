package models

// Reason identifies why a row was rejected. Each row carries exactly one
// reason: the first rule that failed in the declared rule order.
type Reason string

const (
	ReasonNullOrderID      Reason = "null_order_id"
	ReasonNullCustomerID   Reason = "null_customer_id"
	ReasonNullOrderDate    Reason = "null_order_date"
	ReasonNullStatus       Reason = "null_status"
	ReasonNullQuantity     Reason = "null_quantity"
	ReasonInvalidUnitPrice Reason = "invalid_unit_price"
	ReasonOrphanItem       Reason = "orphan_item"
)

// RejectedOrder pairs a cleaned order with its rejection reason.
type RejectedOrder struct {
	Order  Order
	Reason Reason
}

// RejectedItem pairs a cleaned order item with its rejection reason.
type RejectedItem struct {
	Item   OrderItem
	Reason Reason
}
