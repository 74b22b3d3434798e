package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/shopcenter/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/RoyceAzure/lab/shopcenter/internal/util"
	"github.com/RoyceAzure/rj/api"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CartHandler struct {
	cartService service.ICartService
}

func NewCartHandler(cartService service.ICartService) *CartHandler {
	if cartService == nil {
		panic("cartService cannot be nil")
	}
	return &CartHandler{
		cartService: cartService,
	}
}

// @Summary add cart item
// @add product to cart, quantity is merged when product already in cart
// @Tags cart
// @Accept json
// @Produce json
// @Param item body dto.AddCartItemDTO true "product id and quantity"
// @Success 200 {object} api.Response{data=dto.CartDTO} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 460 {object} api.ResponseError{data=string} "InvalidArgumentCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Router /cart [post]
func (c *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var addDTO dto.AddCartItemDTO
	if err := json.NewDecoder(r.Body).Decode(&addDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), nil, er.ErrStrMap[er.BadRequestCode])
		return
	}

	productID, err := uuid.Parse(addDTO.ProductID)
	if err != nil {
		api.ErrorJSON(w, int(er.InvalidArgumentCode), er.New(er.InvalidArgumentCode, "invalid product id"), er.ErrStrMap[er.InvalidArgumentCode])
		return
	}

	// 未帶數量視為1
	if addDTO.Quantity == 0 {
		addDTO.Quantity = 1
	}

	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext[uuid.UUID](ctx)

	cart, err := c.cartService.AddItem(ctx, payload.UserId, productID, addDTO.Quantity)
	if err != nil {
		if anaErr, ok := err.(*er.AnaError); ok {
			api.ErrorJSON(w, int(anaErr.Code), anaErr, er.ErrStrMap[anaErr.Code])
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertCartModelToDTO(cart), nil)
}

// @Summary get cart
// @get current user's cart with product info
// @Tags cart
// @Accept json
// @Produce json
// @Success 200 {object} api.Response{data=dto.CartDTO} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Router /cart [get]
func (c *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext[uuid.UUID](ctx)

	cart, err := c.cartService.GetCart(ctx, payload.UserId)
	if err != nil {
		if anaErr, ok := err.(*er.AnaError); ok {
			api.ErrorJSON(w, int(anaErr.Code), anaErr, er.ErrStrMap[anaErr.Code])
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertCartModelToDTO(cart), nil)
}

// @Summary remove cart item
// @remove item from cart, no-op when item is not in cart
// @Tags cart
// @Accept json
// @Produce json
// @Param itemID path string true "cart item id"
// @Success 200 {object} api.Response{data=dto.CartDTO} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Router /cart/{itemID} [delete]
func (c *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		api.ErrorJSON(w, int(er.InvalidArgumentCode), er.New(er.InvalidArgumentCode, "invalid item id"), er.ErrStrMap[er.InvalidArgumentCode])
		return
	}

	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext[uuid.UUID](ctx)

	cart, err := c.cartService.RemoveItem(ctx, payload.UserId, itemID)
	if err != nil {
		if anaErr, ok := err.(*er.AnaError); ok {
			api.ErrorJSON(w, int(anaErr.Code), anaErr, er.ErrStrMap[anaErr.Code])
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertCartModelToDTO(cart), nil)
}

// @Summary increase cart item quantity
// @increase cart item quantity by one
// @Tags cart
// @Accept json
// @Produce json
// @Param itemID path string true "cart item id"
// @Success 200 {object} api.Response{data=dto.CartDTO} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Router /cart/{itemID}/increase [put]
func (c *CartHandler) IncreaseItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		api.ErrorJSON(w, int(er.InvalidArgumentCode), er.New(er.InvalidArgumentCode, "invalid item id"), er.ErrStrMap[er.InvalidArgumentCode])
		return
	}

	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext[uuid.UUID](ctx)

	cart, err := c.cartService.IncreaseItem(ctx, payload.UserId, itemID)
	if err != nil {
		if anaErr, ok := err.(*er.AnaError); ok {
			api.ErrorJSON(w, int(anaErr.Code), anaErr, er.ErrStrMap[anaErr.Code])
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertCartModelToDTO(cart), nil)
}

func convertCartModelToDTO(cart *model.Cart) dto.CartDTO {
	items := make([]dto.CartItemDTO, 0, len(cart.Items))
	for i := range cart.Items {
		item := &cart.Items[i]
		items = append(items, dto.CartItemDTO{
			ID:       item.ID.String(),
			Product:  convertProductModelToDTO(&item.Product),
			Quantity: item.Quantity,
		})
	}
	return dto.CartDTO{
		ID:     cart.ID.String(),
		UserID: cart.UserID.String(),
		Items:  items,
	}
}
