package service

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCartNotExist     = errors.New("cart is not exist")
	ErrCartItemNotExist = errors.New("cart item is not exist")
)

type ICartService interface {
	// AddItem 加入商品到購物車
	// 購物車不存在時自動建立; 商品已在購物車內時只增加數量, 不新增項目
	//
	// 錯誤:
	//   - er.NotFoundCode 404: 商品不存在
	//   - er.InvalidArgumentCode 460: 數量不合法
	//   - er.InternalErrorCode 500: 資料庫操作錯誤
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*model.Cart, error)
	// RemoveItem 移除購物車項目
	// 項目不存在為no-op(冪等), 購物車不存在回傳404
	//
	// 錯誤:
	//   - er.NotFoundCode 404: 購物車不存在
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*model.Cart, error)
	// IncreaseItem 購物車項目數量+1
	//
	// 錯誤:
	//   - er.NotFoundCode 404: 購物車或項目不存在
	IncreaseItem(ctx context.Context, userID, itemID uuid.UUID) (*model.Cart, error)
	// GetCart 取得購物車(含商品資訊)
	// 購物車不存在時回傳空items, 不會建立購物車
	GetCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error)
}

type CartService struct {
	dbDao db.UnifiedDB
}

func NewCartService(dbDao db.UnifiedDB) *CartService {
	return &CartService{dbDao: dbDao}
}

func (c *CartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*model.Cart, error) {
	if quantity <= 0 {
		return nil, er.New(er.InvalidArgumentCode, "quantity must be positive")
	}

	// 商品必須存在才能加入購物車
	_, err := c.dbDao.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, er.New(er.NotFoundCode, ErrProductNotFound.Error())
		}
		return nil, er.New(er.InternalErrorCode, err.Error())
	}

	err = c.dbDao.ExecTx(ctx, func(tx *gorm.DB) error {
		cart, err := c.dbDao.GetCartByUserIDForUpdateTx(tx, userID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			// lazy建立購物車
			cart = &model.Cart{
				ID:     uuid.New(),
				UserID: userID,
				BaseModel: model.BaseModel{
					CreatedAt: time.Now().UTC(),
				},
			}
			if err := c.dbDao.CreateCartTx(tx, cart); err != nil {
				return err
			}
		}

		// 同商品只增加數量
		for _, item := range cart.Items {
			if item.ProductID == productID {
				return c.dbDao.UpdateItemQuantityTx(tx, item.ID, item.Quantity+quantity)
			}
		}

		return c.dbDao.CreateItemTx(tx, &model.CartItem{
			ID:        uuid.New(),
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
			BaseModel: model.BaseModel{
				CreatedAt: time.Now().UTC(),
			},
		})
	})
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}

	return c.GetCart(ctx, userID)
}

func (c *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*model.Cart, error) {
	err := c.dbDao.ExecTx(ctx, func(tx *gorm.DB) error {
		cart, err := c.dbDao.GetCartByUserIDForUpdateTx(tx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return er.New(er.NotFoundCode, ErrCartNotExist.Error())
			}
			return er.New(er.InternalErrorCode, err.Error())
		}

		// 項目不存在時DeleteItemTx不影響任何row, 移除操作冪等
		if err := c.dbDao.DeleteItemTx(tx, cart.ID, itemID); err != nil {
			return er.New(er.InternalErrorCode, err.Error())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.GetCart(ctx, userID)
}

func (c *CartService) IncreaseItem(ctx context.Context, userID, itemID uuid.UUID) (*model.Cart, error) {
	err := c.dbDao.ExecTx(ctx, func(tx *gorm.DB) error {
		cart, err := c.dbDao.GetCartByUserIDForUpdateTx(tx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return er.New(er.NotFoundCode, ErrCartNotExist.Error())
			}
			return er.New(er.InternalErrorCode, err.Error())
		}

		for _, item := range cart.Items {
			if item.ID == itemID {
				if err := c.dbDao.UpdateItemQuantityTx(tx, item.ID, item.Quantity+1); err != nil {
					return er.New(er.InternalErrorCode, err.Error())
				}
				return nil
			}
		}
		return er.New(er.NotFoundCode, ErrCartItemNotExist.Error())
	})
	if err != nil {
		return nil, err
	}

	return c.GetCart(ctx, userID)
}

func (c *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	cart, err := c.dbDao.GetCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 讀取不建立購物車, 回傳空items
			return &model.Cart{UserID: userID, Items: []model.CartItem{}}, nil
		}
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}
	return cart, nil
}

var _ ICartService = (*CartService)(nil)
