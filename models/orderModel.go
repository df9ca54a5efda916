package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PaymentPending   = "pending"
	PaymentPaid      = "paid"
	PaymentCancelled = "cancelled"
	PaymentRefunded  = "refunded"

	FulfillmentPending   = "pending"
	FulfillmentConfirmed = "confirmed"
	FulfillmentPreparing = "preparing"
	FulfillmentShipped   = "shipped"
	FulfillmentDelivered = "delivered"
	FulfillmentCancelled = "cancelled"
)

// fulfillmentNext is the forward-only transition table. Cancellation is
// reachable from any pre-shipped state; a shipped order can no longer be
// cancelled.
var fulfillmentNext = map[string][]string{
	FulfillmentPending:   {FulfillmentConfirmed, FulfillmentCancelled},
	FulfillmentConfirmed: {FulfillmentPreparing, FulfillmentCancelled},
	FulfillmentPreparing: {FulfillmentShipped, FulfillmentCancelled},
	FulfillmentShipped:   {FulfillmentDelivered},
	FulfillmentDelivered: {},
	FulfillmentCancelled: {},
}

// ValidFulfillmentTransition reports whether an order may move from one
// fulfillment status to another.
func ValidFulfillmentTransition(from, to string) bool {
	for _, next := range fulfillmentNext[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is an immutable snapshot of a checkout. Only status, tracking and
// gateway fields change after creation.
type Order struct {
	gorm.Model
	OrderNumber       string         `json:"orderNumber" gorm:"size:20;uniqueIndex"`
	UserID            uint           `json:"userId"`
	ShippingAddressID uint           `json:"shippingAddressId"`
	BillingAddressID  uint           `json:"billingAddressId"`
	Subtotal          float64        `json:"subtotal" gorm:"type:decimal(10,2)"`
	TaxTotal          float64        `json:"taxTotal" gorm:"type:decimal(10,2)"`
	ShippingFee       float64        `json:"shippingFee" gorm:"type:decimal(10,2);default:0"`
	Discount          float64        `json:"discount" gorm:"type:decimal(10,2);default:0"`
	GrandTotal        float64        `json:"grandTotal" gorm:"type:decimal(10,2)"`
	PaymentStatus     string         `json:"paymentStatus" gorm:"size:20;default:pending"`
	FulfillmentStatus string         `json:"fulfillmentStatus" gorm:"size:20;default:pending"`
	PaymentID         string         `json:"paymentId" gorm:"size:255"`
	BasketID          string         `json:"basketId" gorm:"size:255"`
	TrackingNumber    string         `json:"trackingNumber" gorm:"size:100"`
	Carrier           string         `json:"carrier" gorm:"size:100"`
	Notes             string         `json:"notes" gorm:"type:text"`
	IPAddress         string         `json:"ipAddress" gorm:"size:50"`
	GatewayPayload    datatypes.JSON `json:"-"`

	User            *User       `json:"user,omitempty"`
	ShippingAddress *Address    `json:"shippingAddress,omitempty" gorm:"foreignKey:ShippingAddressID"`
	BillingAddress  *Address    `json:"billingAddress,omitempty" gorm:"foreignKey:BillingAddressID"`
	Items           []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is a denormalized copy of the product at purchase time, so
// historical orders stay stable under product edits.
type OrderItem struct {
	gorm.Model
	OrderID     uint    `json:"orderId"`
	ProductID   uint    `json:"productId"`
	ProductName string  `json:"productName" gorm:"size:500"`
	PartNumber  string  `json:"partNumber" gorm:"size:100"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice" gorm:"type:decimal(10,2)"`
	TaxRate     int     `json:"taxRate" gorm:"default:20"`
	TotalPrice  float64 `json:"totalPrice" gorm:"type:decimal(10,2)"`
}

type Favorite struct {
	gorm.Model
	UserID    uint `json:"userId" gorm:"uniqueIndex:idx_fav_user_product"`
	ProductID uint `json:"productId" gorm:"uniqueIndex:idx_fav_user_product"`

	Product *Product `json:"product,omitempty"`
}
