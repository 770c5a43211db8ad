package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/chanjin5212/myfarm-storefront/internal/models"
	"github.com/chanjin5212/myfarm-storefront/internal/pkg/apiclient"
)

type CartService interface {
	Get(ctx context.Context, sess *models.Session) (*models.CartRes, error)
	Count(ctx context.Context, sess *models.Session) (int, error)
	AddItem(ctx context.Context, sess *models.Session, req models.AddToCartReq) error
	UpdateItem(ctx context.Context, sess *models.Session, itemID string, req models.UpdateCartItemReq) error
	RemoveItem(ctx context.Context, sess *models.Session, itemID string) error
	RemoveItems(ctx context.Context, sess *models.Session, req models.RemoveCartItemsReq) error
	Clear(ctx context.Context, sess *models.Session) error
}

type cartServiceImpl struct {
	api       apiclient.Doer
	validator *validator.Validate
	log       *logrus.Logger
}

func NewCartService(api apiclient.Doer, validator *validator.Validate, log *logrus.Logger) CartService {
	return &cartServiceImpl{api: api, validator: validator, log: log}
}

func (s *cartServiceImpl) Get(ctx context.Context, sess *models.Session) (*models.CartRes, error) {
	var cart models.Cart
	if err := callUpstream(ctx, s.api, sess, apiclient.Request{Method: http.MethodGet, Path: "/cart"}, &cart); err != nil {
		return nil, err
	}
	return toCartRes(cart), nil
}

func (s *cartServiceImpl) Count(ctx context.Context, sess *models.Session) (int, error) {
	var res models.CartCount
	if err := callUpstream(ctx, s.api, sess, apiclient.Request{Method: http.MethodGet, Path: "/cart/count"}, &res); err != nil {
		return 0, err
	}
	return res.Count, nil
}

func (s *cartServiceImpl) AddItem(ctx context.Context, sess *models.Session, req models.AddToCartReq) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}

	return callUpstream(ctx, s.api, sess, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/cart/items",
		Body: models.UpstreamAddToCartReq{
			ProductID: req.ProductID,
			OptionID:  req.OptionID,
			Quantity:  req.Quantity,
		},
	}, nil)
}

func (s *cartServiceImpl) UpdateItem(ctx context.Context, sess *models.Session, itemID string, req models.UpdateCartItemReq) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}

	return callUpstream(ctx, s.api, sess, apiclient.Request{
		Method: http.MethodPut,
		Path:   "/cart/items/" + url.PathEscape(itemID),
		Body:   req,
	}, nil)
}

func (s *cartServiceImpl) RemoveItem(ctx context.Context, sess *models.Session, itemID string) error {
	return callUpstream(ctx, s.api, sess, apiclient.Request{
		Method: http.MethodDelete,
		Path:   "/cart/items/" + url.PathEscape(itemID),
	}, nil)
}

func (s *cartServiceImpl) RemoveItems(ctx context.Context, sess *models.Session, req models.RemoveCartItemsReq) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}

	return callUpstream(ctx, s.api, sess, apiclient.Request{
		Method: http.MethodDelete,
		Path:   "/cart/items",
		Body:   models.UpstreamRemoveCartItemsReq{ItemIDs: req.ItemIDs},
	}, nil)
}

func (s *cartServiceImpl) Clear(ctx context.Context, sess *models.Session) error {
	return callUpstream(ctx, s.api, sess, apiclient.Request{Method: http.MethodDelete, Path: "/cart"}, nil)
}
