package domain

// OrderStatus represents the status of a storefront order
type OrderStatus string

const (
	OrderStatusPendingConfirmation OrderStatus = "PENDING_CONFIRMATION"
	OrderStatusConfirmed           OrderStatus = "CONFIRMED"
	OrderStatusRejected            OrderStatus = "REJECTED"
	OrderStatusShipped             OrderStatus = "SHIPPED"
	OrderStatusDelivered           OrderStatus = "DELIVERED"
	OrderStatusCancelled           OrderStatus = "CANCELLED"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPendingConfirmation,
		OrderStatusConfirmed,
		OrderStatusRejected,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a status transition is valid
func (s OrderStatus) CanTransitionTo(newStatus OrderStatus) bool {
	switch s {
	case OrderStatusPendingConfirmation:
		return newStatus == OrderStatusConfirmed ||
			newStatus == OrderStatusRejected ||
			newStatus == OrderStatusCancelled
	case OrderStatusConfirmed:
		return newStatus == OrderStatusShipped ||
			newStatus == OrderStatusCancelled
	case OrderStatusShipped:
		return newStatus == OrderStatusDelivered
	default:
		// Rejected, delivered and cancelled are terminal
		return false
	}
}

// PaymentType is the payment option picked on the shipping form
type PaymentType string

const (
	PaymentTypeCOD    PaymentType = "cod"
	PaymentTypeOnline PaymentType = "online"
)

// IsValid checks if the payment type is one the storefront offers
func (p PaymentType) IsValid() bool {
	return p == PaymentTypeCOD || p == PaymentTypeOnline
}

// PaymentGateway is the online gateway sub-selection. It is recorded on the
// order but never validated or called.
type PaymentGateway string

const (
	PaymentGatewayEsewa  PaymentGateway = "esewa"
	PaymentGatewayKhalti PaymentGateway = "khalti"
	PaymentGatewayBank   PaymentGateway = "bank"
)

// PaymentStatus tracks whether an order has been paid
type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// IsValid checks if the payment status is valid
func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentStatusUnpaid, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if an admin may move the payment status to newStatus
func (p PaymentStatus) CanTransitionTo(newStatus PaymentStatus) bool {
	switch p {
	case PaymentStatusUnpaid:
		return newStatus == PaymentStatusPaid || newStatus == PaymentStatusFailed
	case PaymentStatusFailed:
		return newStatus == PaymentStatusPaid
	case PaymentStatusPaid:
		return newStatus == PaymentStatusRefunded
	default:
		return false
	}
}
