package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/RoyceAzure/lab/shopcenter/internal/util"
	"github.com/RoyceAzure/rj/api"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	return &OrderHandler{
		orderService: orderService,
	}
}

// @Summary place order
// @place order from current cart, cart is cleared after order is created
// @Tags order
// @Accept json
// @Produce json
// @Param order body dto.PlaceOrderDTO true "address id and delivery type"
// @Success 200 {object} api.Response{data=dto.OrderDTO} "success"
// @Failure 400 {object} api.ResponseError{data=string} "BadRequestCode"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 403 {object} api.ResponseError{data=string} "UnauthorizedCode"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 460 {object} api.ResponseError{data=string} "InvalidArgumentCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Router /order [post]
func (o *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var placeDTO dto.PlaceOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&placeDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), nil, er.ErrStrMap[er.BadRequestCode])
		return
	}

	addressID, err := uuid.Parse(placeDTO.AddressID)
	if err != nil {
		api.ErrorJSON(w, int(er.InvalidArgumentCode), er.New(er.InvalidArgumentCode, "invalid address id"), er.ErrStrMap[er.InvalidArgumentCode])
		return
	}

	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext[uuid.UUID](ctx)

	order, err := o.orderService.PlaceOrder(ctx, payload.UserId, addressID, model.DeliveryType(placeDTO.DeliveryType))
	if err != nil {
		if anaErr, ok := err.(*er.AnaError); ok {
			api.ErrorJSON(w, int(anaErr.Code), anaErr, er.ErrStrMap[anaErr.Code])
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertOrderModelToDTO(order), nil)
}

// @Summary list orders
// @list current user's orders, newest first
// @Tags order
// @Accept json
// @Produce json
// @Success 200 {object} api.Response{data=[]dto.OrderDTO} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Router /orders [get]
func (o *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext[uuid.UUID](ctx)

	orders, err := o.orderService.GetOrdersByUserID(ctx, payload.UserId)
	if err != nil {
		if anaErr, ok := err.(*er.AnaError); ok {
			api.ErrorJSON(w, int(anaErr.Code), anaErr, er.ErrStrMap[anaErr.Code])
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	orderDTOs := make([]dto.OrderDTO, 0, len(orders))
	for i := range orders {
		orderDTOs = append(orderDTOs, convertOrderModelToDTO(&orders[i]))
	}

	api.SuccessJSON(w, orderDTOs, nil)
}

// @Summary get order
// @get order by id, only owner can read
// @Tags order
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Success 200 {object} api.Response{data=dto.OrderDTO} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 403 {object} api.ResponseError{data=string} "UnauthorizedCode"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Router /order/{id} [get]
func (o *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorJSON(w, int(er.InvalidArgumentCode), er.New(er.InvalidArgumentCode, "invalid order id"), er.ErrStrMap[er.InvalidArgumentCode])
		return
	}

	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext[uuid.UUID](ctx)

	order, err := o.orderService.GetOrder(ctx, payload.UserId, id)
	if err != nil {
		if anaErr, ok := err.(*er.AnaError); ok {
			api.ErrorJSON(w, int(anaErr.Code), anaErr, er.ErrStrMap[anaErr.Code])
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertOrderModelToDTO(order), nil)
}

// @Summary update order status
// @update order status, admin only
// @Tags order
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Param status body dto.UpdateOrderStatusDTO true "new status"
// @Success 200 {object} api.Response{data=dto.OrderDTO} "success"
// @Failure 403 {object} api.ResponseError{data=string} "UnauthorizedCode"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 405 {object} api.ResponseError{data=string} "InvalidOperationCode"
// @Failure 460 {object} api.ResponseError{data=string} "InvalidArgumentCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Router /order/{id}/status [put]
func (o *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorJSON(w, int(er.InvalidArgumentCode), er.New(er.InvalidArgumentCode, "invalid order id"), er.ErrStrMap[er.InvalidArgumentCode])
		return
	}

	var statusDTO dto.UpdateOrderStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&statusDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), nil, er.ErrStrMap[er.BadRequestCode])
		return
	}

	ctx := r.Context()

	order, err := o.orderService.UpdateOrderStatus(ctx, id, model.OrderStatus(statusDTO.Status))
	if err != nil {
		if anaErr, ok := err.(*er.AnaError); ok {
			api.ErrorJSON(w, int(anaErr.Code), anaErr, er.ErrStrMap[anaErr.Code])
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertOrderModelToDTO(order), nil)
}

func convertOrderModelToDTO(order *model.Order) dto.OrderDTO {
	items := make([]dto.OrderItemDTO, 0, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		items = append(items, dto.OrderItemDTO{
			ProductID: item.ProductID.String(),
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Subtotal:  item.Subtotal().StringFixed(2),
		})
	}
	return dto.OrderDTO{
		ID:               order.ID.String(),
		Items:            items,
		TotalAmount:      order.TotalAmount.StringFixed(2),
		DeliveryType:     string(order.DeliveryType),
		Address:          convertAddressModelToDTO(&order.Address),
		Status:           string(order.Status),
		VerificationCode: order.VerificationCode,
		CreatedAt:        order.CreatedAt.Format(time.RFC3339),
	}
}
