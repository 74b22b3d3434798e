package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// CanTransitionTo 訂單狀態只能沿pending → processing → shipped → delivered前進,
// pending與processing可直接轉cancelled
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusProcessing || next == OrderStatusCancelled
	case OrderStatusProcessing:
		return next == OrderStatusShipped || next == OrderStatusCancelled
	case OrderStatusShipped:
		return next == OrderStatusDelivered
	default:
		return false
	}
}

func IsValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

type DeliveryType string

const (
	DeliveryTypeStandard  DeliveryType = "standard"
	DeliveryTypeExpress   DeliveryType = "express"
	DeliveryTypeOvernight DeliveryType = "overnight"
)

func IsValidDeliveryType(t string) bool {
	switch DeliveryType(t) {
	case DeliveryTypeStandard, DeliveryTypeExpress, DeliveryTypeOvernight:
		return true
	default:
		return false
	}
}

// Order 建立後不可變(除了Status), Items為下單當下的快照,
// TotalAmount於建立時計算, 之後不會隨商品價格變動重算
type Order struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Items            []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount      decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	DeliveryType     DeliveryType    `gorm:"not null;type:varchar(20);default:'standard'"`
	AddressID        uuid.UUID       `gorm:"type:uuid;not null"`
	Address          Address         `gorm:"foreignKey:AddressID"`
	Status           OrderStatus     `gorm:"not null;type:varchar(20);default:'pending'"`
	VerificationCode string          `gorm:"type:text"`
	BaseModel
}

// OrderItem UnitPrice為下單當下的商品價格
type OrderItem struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	Product   Product         `gorm:"foreignKey:ProductID"`
	BaseModel
}

// Subtotal 單項小計
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
