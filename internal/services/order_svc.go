package services

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/chanjin5212/myfarm-storefront/internal/models"
	"github.com/chanjin5212/myfarm-storefront/internal/pkg/apiclient"
	apperrors "github.com/chanjin5212/myfarm-storefront/internal/pkg/errors"
)

// orderTabStatuses maps the mypage tabs to the backend status filter.
var orderTabStatuses = map[string][]models.OrderStatus{
	"all":        nil,
	"processing": {models.OrderPending, models.OrderConfirmed, models.OrderPreparing},
	"shipped":    {models.OrderShipped},
	"delivered":  {models.OrderDelivered},
	"cancelled":  {models.OrderCancelled},
}

type OrderService interface {
	List(ctx context.Context, sess *models.Session, req models.OrderListReq) (*models.OrderListRes, error)
	Get(ctx context.Context, sess *models.Session, orderID string) (*models.OrderRes, error)
	GetByNumber(ctx context.Context, sess *models.Session, orderNumber string) (*models.OrderRes, error)
	Cancel(ctx context.Context, sess *models.Session, orderID string, req models.CancelOrderReq) (*models.OrderRes, error)
}

type orderServiceImpl struct {
	api       apiclient.Doer
	validator *validator.Validate
	log       *logrus.Logger
}

func NewOrderService(api apiclient.Doer, validator *validator.Validate, log *logrus.Logger) OrderService {
	return &orderServiceImpl{
		api:       api,
		validator: validator,
		log:       log,
	}
}

func (s *orderServiceImpl) List(ctx context.Context, sess *models.Session, req models.OrderListReq) (*models.OrderListRes, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.Limit == 0 {
		req.Limit = 10
	}
	if req.Tab == "" {
		req.Tab = "all"
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	query := url.Values{
		"page":  {strconv.Itoa(req.Page)},
		"limit": {strconv.Itoa(req.Limit)},
	}
	if statuses := orderTabStatuses[req.Tab]; len(statuses) > 0 {
		parts := make([]string, len(statuses))
		for i, st := range statuses {
			parts[i] = string(st)
		}
		query.Set("status", strings.Join(parts, ","))
	}

	resp, err := doUpstream(ctx, s.api, sess, apiclient.Request{Method: http.MethodGet, Path: "/orders", Query: query})
	if err != nil {
		return nil, err
	}
	orders, page, err := decodePaginated[models.Order](resp.Body, req.Page, req.Limit)
	if err != nil {
		s.log.WithError(err).Error("Failed to decode order list")
		return nil, apperrors.ErrUpstream
	}

	res := &models.OrderListRes{Orders: make([]models.OrderRes, 0, len(orders)), PageRes: page}
	for _, o := range orders {
		res.Orders = append(res.Orders, toOrderRes(o))
	}
	return res, nil
}

func (s *orderServiceImpl) Get(ctx context.Context, sess *models.Session, orderID string) (*models.OrderRes, error) {
	return s.getOne(ctx, sess, "/orders/"+url.PathEscape(orderID))
}

func (s *orderServiceImpl) GetByNumber(ctx context.Context, sess *models.Session, orderNumber string) (*models.OrderRes, error) {
	return s.getOne(ctx, sess, "/orders/number/"+url.PathEscape(orderNumber))
}

func (s *orderServiceImpl) getOne(ctx context.Context, sess *models.Session, path string) (*models.OrderRes, error) {
	var order models.Order
	if err := callUpstream(ctx, s.api, sess, apiclient.Request{Method: http.MethodGet, Path: path}, &order); err != nil {
		return nil, err
	}

	res := toOrderRes(order)
	return &res, nil
}

func (s *orderServiceImpl) Cancel(ctx context.Context, sess *models.Session, orderID string, req models.CancelOrderReq) (*models.OrderRes, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	logger := s.log.WithField("order_id", orderID)

	var order models.Order
	err := callUpstream(ctx, s.api, sess, apiclient.Request{
		Method: http.MethodPatch,
		Path:   "/orders/" + url.PathEscape(orderID) + "/cancel",
		Body:   models.UpstreamCancelOrderReq{Reason: strings.TrimSpace(req.Reason)},
	}, &order)
	if err != nil {
		logger.WithError(err).Warn("Order cancellation failed")
		return nil, err
	}

	logger.Info("Order cancelled")
	res := toOrderRes(order)
	return &res, nil
}
