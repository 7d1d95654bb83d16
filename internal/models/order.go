package models

import "time"

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every status an admin may set. Any status can be
// changed to any other; there is no transition table.
var OrderStatuses = []OrderStatus{
	OrderPending,
	OrderProcessing,
	OrderShipped,
	OrderDelivered,
	OrderCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type CartItem struct {
	ProductID string  `bson:"productId" json:"id"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Weight    string  `bson:"weight,omitempty" json:"weight,omitempty"`
}

type Order struct {
	OrderID     string      `bson:"_id" json:"orderId"`
	Name        string      `bson:"name" json:"name"`
	Phone       string      `bson:"phone" json:"phone"`
	Email       string      `bson:"email" json:"email"`
	Address     string      `bson:"address" json:"address"`
	City        string      `bson:"city" json:"city"`
	Pincode     string      `bson:"pincode,omitempty" json:"pincode,omitempty"`
	Cart        []CartItem  `bson:"cart" json:"cart"`
	TotalAmount float64     `bson:"totalAmount" json:"totalAmount"`
	Status      OrderStatus `bson:"status" json:"status"`
	CreatedAt   time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// CartTotal sums price*quantity over the cart. The stored TotalAmount is
// trusted from the client when present; this is used when it is absent.
func (o *Order) CartTotal() float64 {
	total := 0.0
	for _, item := range o.Cart {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
