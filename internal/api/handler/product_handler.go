package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/shopcenter/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/RoyceAzure/rj/api"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	productService service.IProductService
}

func NewProductHandler(productService service.IProductService) *ProductHandler {
	if productService == nil {
		panic("productService cannot be nil")
	}
	return &ProductHandler{
		productService: productService,
	}
}

// @Summary create product
// @create a new product, admin only
// @Tags product
// @Accept json
// @Produce json
// @Param product body dto.CreateProductDTO true "product info"
// @Success 200 {object} api.Response{data=dto.ProductDTO} "success"
// @Failure 403 {object} api.ResponseError{data=string} "UnauthorizedCode"
// @Failure 460 {object} api.ResponseError{data=string} "InvalidArgumentCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Router /products [post]
func (p *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var createDTO dto.CreateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&createDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), nil, er.ErrStrMap[er.BadRequestCode])
		return
	}

	price, err := decimal.NewFromString(createDTO.Price)
	if err != nil {
		api.ErrorJSON(w, int(er.InvalidArgumentCode), er.New(er.InvalidArgumentCode, "invalid price"), er.ErrStrMap[er.InvalidArgumentCode])
		return
	}

	ctx := r.Context()

	product, err := p.productService.CreateProduct(ctx, &model.Product{
		Name:        createDTO.Name,
		Description: createDTO.Description,
		Price:       price,
		Image:       createDTO.Image,
		Category:    createDTO.Category,
		Stock:       createDTO.Stock,
	})
	if err != nil {
		if anaErr, ok := err.(*er.AnaError); ok {
			api.ErrorJSON(w, int(anaErr.Code), anaErr, er.ErrStrMap[anaErr.Code])
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertProductModelToDTO(product), nil)
}

// @Summary get product
// @get product by id
// @Tags product
// @Accept json
// @Produce json
// @Param id path string true "product id"
// @Success 200 {object} api.Response{data=dto.ProductDTO} "success"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Router /products/{id} [get]
func (p *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorJSON(w, int(er.InvalidArgumentCode), er.New(er.InvalidArgumentCode, "invalid product id"), er.ErrStrMap[er.InvalidArgumentCode])
		return
	}

	ctx := r.Context()

	product, err := p.productService.GetProduct(ctx, id)
	if err != nil {
		if anaErr, ok := err.(*er.AnaError); ok {
			api.ErrorJSON(w, int(anaErr.Code), anaErr, er.ErrStrMap[anaErr.Code])
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertProductModelToDTO(product), nil)
}

// @Summary list products
// @list all products
// @Tags product
// @Accept json
// @Produce json
// @Success 200 {object} api.Response{data=[]dto.ProductDTO} "success"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Router /products [get]
func (p *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := p.productService.ListProducts(ctx)
	if err != nil {
		if anaErr, ok := err.(*er.AnaError); ok {
			api.ErrorJSON(w, int(anaErr.Code), anaErr, er.ErrStrMap[anaErr.Code])
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	productDTOs := make([]dto.ProductDTO, 0, len(products))
	for i := range products {
		productDTOs = append(productDTOs, convertProductModelToDTO(&products[i]))
	}

	api.SuccessJSON(w, productDTOs, nil)
}

// @Summary delete product
// @delete product by id, admin only
// @Tags product
// @Accept json
// @Produce json
// @Param id path string true "product id"
// @Success 200 {object} api.Response "success"
// @Failure 403 {object} api.ResponseError{data=string} "UnauthorizedCode"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Router /products/{id} [delete]
func (p *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorJSON(w, int(er.InvalidArgumentCode), er.New(er.InvalidArgumentCode, "invalid product id"), er.ErrStrMap[er.InvalidArgumentCode])
		return
	}

	ctx := r.Context()

	if err := p.productService.DeleteProduct(ctx, id); err != nil {
		if anaErr, ok := err.(*er.AnaError); ok {
			api.ErrorJSON(w, int(anaErr.Code), anaErr, er.ErrStrMap[anaErr.Code])
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, nil, nil)
}

func convertProductModelToDTO(product *model.Product) dto.ProductDTO {
	return dto.ProductDTO{
		ID:          product.ID.String(),
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price.StringFixed(2),
		Image:       product.Image,
		Category:    product.Category,
		Stock:       product.Stock,
	}
}
