package service

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/verification"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrCartEmpty            = errors.New("cart is empty")
	ErrOrderNotFound        = errors.New("order not found")
	ErrAddressNotBelongUser = errors.New("address does not belong to user")
)

type IOrderService interface {
	// PlaceOrder 下訂單
	// 以下步驟包在同一筆資料庫交易內, 任一步失敗整筆rollback:
	//  1. 鎖定並讀取購物車(FOR UPDATE), serialize同一user的下單與購物車操作
	//  2. 讀取收件地址並驗證擁有權
	//  3. 以當下商品價格snapshot購物車項目, 計算總額
	//  4. 產生訂單驗證碼(失敗則整筆失敗, 不產生無驗證碼的訂單)
	//  5. 寫入訂單後清空購物車
	//
	// 錯誤:
	//   - er.BadRequestCode 400: 購物車不存在或為空
	//   - er.InvalidArgumentCode 460: deliveryType不合法
	//   - er.NotFoundCode 404: 地址不存在, 或購物車內商品已下架
	//   - er.UnauthorizedCode 403: 地址不屬於該用戶
	//   - er.InternalErrorCode 500: 驗證碼產生失敗或資料庫操作錯誤
	PlaceOrder(ctx context.Context, userID, addressID uuid.UUID, deliveryType model.DeliveryType) (*model.Order, error)
	// GetOrdersByUserID 查詢用戶所有訂單, 依建立時間新到舊
	GetOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	// GetOrder 查詢單筆訂單, 只能查自己的訂單
	//
	// 錯誤:
	//   - er.NotFoundCode 404: 訂單不存在
	//   - er.UnauthorizedCode 403: 訂單不屬於該用戶
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*model.Order, error)
	// UpdateOrderStatus 更新訂單狀態(管理員操作)
	// 狀態只能沿pending → processing → shipped → delivered前進,
	// pending/processing可轉cancelled, 其餘轉換拒絕
	//
	// 錯誤:
	//   - er.NotFoundCode 404: 訂單不存在
	//   - er.InvalidArgumentCode 460: 狀態值不合法
	//   - er.InvalidOperationCode 405: 狀態轉換不允許
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) (*model.Order, error)
	// CalculateOrderAmount 計算訂單項目總額
	CalculateOrderAmount(items []model.OrderItem) decimal.Decimal
}

type OrderService struct {
	dbDao       db.UnifiedDB
	artifactGen verification.IArtifactGenerator
}

func NewOrderService(dbDao db.UnifiedDB, artifactGen verification.IArtifactGenerator) *OrderService {
	return &OrderService{
		dbDao:       dbDao,
		artifactGen: artifactGen,
	}
}

func (o *OrderService) PlaceOrder(ctx context.Context, userID, addressID uuid.UUID, deliveryType model.DeliveryType) (*model.Order, error) {
	if deliveryType == "" {
		deliveryType = model.DeliveryTypeStandard
	}
	if !model.IsValidDeliveryType(string(deliveryType)) {
		return nil, er.New(er.InvalidArgumentCode, "invalid delivery type")
	}

	var orderID uuid.UUID
	err := o.dbDao.ExecTx(ctx, func(tx *gorm.DB) error {
		cart, err := o.dbDao.GetCartByUserIDForUpdateTx(tx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return er.New(er.BadRequestCode, ErrCartEmpty.Error())
			}
			return er.New(er.InternalErrorCode, err.Error())
		}
		if len(cart.Items) == 0 {
			return er.New(er.BadRequestCode, ErrCartEmpty.Error())
		}

		address, err := o.dbDao.GetAddressByIDTx(tx, addressID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return er.New(er.NotFoundCode, ErrAddressNotFound.Error())
			}
			return er.New(er.InternalErrorCode, err.Error())
		}
		if address.UserID != userID {
			return er.New(er.UnauthorizedCode, ErrAddressNotBelongUser.Error())
		}

		now := time.Now().UTC()
		orderID = uuid.New()

		// 以當下商品價格snapshot, 訂單建立後不隨商品價格異動
		// 商品被下架(軟刪除)時Preload帶不出資料, 拒絕下單而非以零價成單
		items := make([]model.OrderItem, 0, len(cart.Items))
		for _, ci := range cart.Items {
			if ci.Product.ID == uuid.Nil {
				return er.New(er.NotFoundCode, "product no longer available")
			}
			items = append(items, model.OrderItem{
				OrderID:   orderID,
				ProductID: ci.ProductID,
				Quantity:  ci.Quantity,
				UnitPrice: ci.Product.Price,
				BaseModel: model.BaseModel{
					CreatedAt: now,
				},
			})
		}

		code, err := o.artifactGen.Generate(ctx, userID, now)
		if err != nil {
			// 驗證碼產生失敗整筆交易失敗, 不允許無驗證碼的訂單
			return er.New(er.InternalErrorCode, err.Error())
		}

		order := &model.Order{
			ID:               orderID,
			UserID:           userID,
			Items:            items,
			TotalAmount:      o.CalculateOrderAmount(items),
			DeliveryType:     deliveryType,
			AddressID:        addressID,
			Status:           model.OrderStatusPending,
			VerificationCode: code,
			BaseModel: model.BaseModel{
				CreatedAt: now,
			},
		}
		if err := o.dbDao.CreateOrderTx(tx, order); err != nil {
			return er.New(er.InternalErrorCode, err.Error())
		}

		// 訂單寫入後才清空購物車, 與訂單寫入在同一交易commit
		if err := o.dbDao.ClearCartItemsTx(tx, cart.ID); err != nil {
			return er.New(er.InternalErrorCode, err.Error())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := o.dbDao.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return order, nil
}

func (o *OrderService) GetOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	orders, err := o.dbDao.GetOrdersByUserID(ctx, userID)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

func (o *OrderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*model.Order, error) {
	order, err := o.dbDao.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, er.New(er.NotFoundCode, ErrOrderNotFound.Error())
		}
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	if order.UserID != userID {
		return nil, er.New(er.UnauthorizedCode, "order does not belong to user")
	}
	return order, nil
}

func (o *OrderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	if !model.IsValidOrderStatus(string(status)) {
		return nil, er.New(er.InvalidArgumentCode, "invalid order status")
	}

	// 讀取與轉換檢查鎖在同一交易內, 並發轉換只會有一筆通過檢查
	err := o.dbDao.ExecTx(ctx, func(tx *gorm.DB) error {
		order, err := o.dbDao.GetOrderByIDForUpdateTx(tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return er.New(er.NotFoundCode, ErrOrderNotFound.Error())
			}
			return er.New(er.InternalErrorCode, err.Error())
		}

		if !order.Status.CanTransitionTo(status) {
			return er.New(er.InvalidOperationCode, "invalid status transition")
		}

		if err := o.dbDao.UpdateOrderStatusTx(tx, orderID, status); err != nil {
			return er.New(er.InternalErrorCode, err.Error())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := o.dbDao.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return order, nil
}

func (o *OrderService) CalculateOrderAmount(items []model.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

var _ IOrderService = (*OrderService)(nil)
