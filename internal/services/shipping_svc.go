package services

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/chanjin5212/myfarm-storefront/internal/models"
	"github.com/chanjin5212/myfarm-storefront/internal/pkg/apiclient"
	apperrors "github.com/chanjin5212/myfarm-storefront/internal/pkg/errors"
)

const shippingBasePath = "/shipping-addresses/v1"

type ShippingService interface {
	Create(ctx context.Context, sess *models.Session, req models.ShippingAddressReq) (*models.ShippingAddress, error)
	List(ctx context.Context, sess *models.Session, req models.ShippingAddressListReq) (*models.ShippingAddressList, error)
	Get(ctx context.Context, sess *models.Session, id string) (*models.ShippingAddress, error)
	Update(ctx context.Context, sess *models.Session, id string, req models.ShippingAddressReq) (*models.ShippingAddress, error)
	Delete(ctx context.Context, sess *models.Session, id string) (*models.MutationRes, error)
}

type shippingServiceImpl struct {
	api       apiclient.Doer
	validator *validator.Validate
	log       *logrus.Logger
}

func NewShippingService(api apiclient.Doer, validator *validator.Validate, log *logrus.Logger) ShippingService {
	return &shippingServiceImpl{
		api:       api,
		validator: validator,
		log:       log,
	}
}

func (s *shippingServiceImpl) Create(ctx context.Context, sess *models.Session, req models.ShippingAddressReq) (*models.ShippingAddress, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	var addr models.ShippingAddress
	err := callUpstream(ctx, s.api, sess, apiclient.Request{
		Method: http.MethodPost,
		Path:   shippingBasePath,
		Body:   req,
	}, &addr)
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

func (s *shippingServiceImpl) List(ctx context.Context, sess *models.Session, req models.ShippingAddressListReq) (*models.ShippingAddressList, error) {
	if req.Size == 0 {
		req.Size = 10
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	var list models.ShippingAddressList
	err := callUpstream(ctx, s.api, sess, apiclient.Request{
		Method: http.MethodGet,
		Path:   shippingBasePath,
		Query:  url.Values{"page": {strconv.Itoa(req.Page)}, "size": {strconv.Itoa(req.Size)}},
	}, &list)
	if err != nil {
		return nil, err
	}
	if list.Address == nil {
		list.Address = []models.ShippingAddress{}
	}
	return &list, nil
}

func (s *shippingServiceImpl) Get(ctx context.Context, sess *models.Session, id string) (*models.ShippingAddress, error) {
	if id == "" {
		return nil, apperrors.ErrInvalidRequestPayload
	}

	var addr models.ShippingAddress
	err := callUpstream(ctx, s.api, sess, apiclient.Request{
		Method: http.MethodGet,
		Path:   shippingBasePath + "/" + url.PathEscape(id),
	}, &addr)
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

func (s *shippingServiceImpl) Update(ctx context.Context, sess *models.Session, id string, req models.ShippingAddressReq) (*models.ShippingAddress, error) {
	if id == "" {
		return nil, apperrors.ErrInvalidRequestPayload
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	var addr models.ShippingAddress
	err := callUpstream(ctx, s.api, sess, apiclient.Request{
		Method: http.MethodPut,
		Path:   shippingBasePath + "/" + url.PathEscape(id),
		Body:   req,
	}, &addr)
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

func (s *shippingServiceImpl) Delete(ctx context.Context, sess *models.Session, id string) (*models.MutationRes, error) {
	if id == "" {
		return nil, apperrors.ErrInvalidRequestPayload
	}

	res := models.MutationRes{Success: true}
	err := callUpstream(ctx, s.api, sess, apiclient.Request{
		Method: http.MethodDelete,
		Path:   shippingBasePath + "/" + url.PathEscape(id),
	}, &res)
	if err != nil {
		s.log.WithFields(logrus.Fields{"address_id": id, "error": err}).Warn("Failed to delete shipping address")
		return nil, err
	}
	return &res, nil
}
