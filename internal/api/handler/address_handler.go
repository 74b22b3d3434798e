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
	"github.com/google/uuid"
)

type AddressHandler struct {
	addressService service.IAddressService
}

func NewAddressHandler(addressService service.IAddressService) *AddressHandler {
	if addressService == nil {
		panic("addressService cannot be nil")
	}
	return &AddressHandler{
		addressService: addressService,
	}
}

// @Summary add address
// @add address to current user's address book
// @Tags address
// @Accept json
// @Produce json
// @Param address body dto.CreateAddressDTO true "address info"
// @Success 200 {object} api.Response{data=dto.AddressDTO} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 460 {object} api.ResponseError{data=string} "InvalidArgumentCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Router /address [post]
func (a *AddressHandler) AddAddress(w http.ResponseWriter, r *http.Request) {
	var createDTO dto.CreateAddressDTO
	if err := json.NewDecoder(r.Body).Decode(&createDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), nil, er.ErrStrMap[er.BadRequestCode])
		return
	}

	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext[uuid.UUID](ctx)

	address, err := a.addressService.AddAddress(ctx, &model.Address{
		UserID:    payload.UserId,
		Street:    createDTO.Street,
		City:      createDTO.City,
		ZipCode:   createDTO.ZipCode,
		Country:   createDTO.Country,
		IsDefault: createDTO.IsDefault,
	})
	if err != nil {
		if anaErr, ok := err.(*er.AnaError); ok {
			api.ErrorJSON(w, int(anaErr.Code), anaErr, er.ErrStrMap[anaErr.Code])
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertAddressModelToDTO(address), nil)
}

// @Summary list addresses
// @list current user's addresses
// @Tags address
// @Accept json
// @Produce json
// @Success 200 {object} api.Response{data=[]dto.AddressDTO} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Router /address [get]
func (a *AddressHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext[uuid.UUID](ctx)

	addresses, err := a.addressService.ListAddresses(ctx, payload.UserId)
	if err != nil {
		if anaErr, ok := err.(*er.AnaError); ok {
			api.ErrorJSON(w, int(anaErr.Code), anaErr, er.ErrStrMap[anaErr.Code])
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	addressDTOs := make([]dto.AddressDTO, 0, len(addresses))
	for i := range addresses {
		addressDTOs = append(addressDTOs, convertAddressModelToDTO(&addresses[i]))
	}

	api.SuccessJSON(w, addressDTOs, nil)
}

func convertAddressModelToDTO(address *model.Address) dto.AddressDTO {
	return dto.AddressDTO{
		ID:        address.ID.String(),
		Street:    address.Street,
		City:      address.City,
		ZipCode:   address.ZipCode,
		Country:   address.Country,
		IsDefault: address.IsDefault,
	}
}
