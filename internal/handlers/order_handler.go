package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/chanjin5212/myfarm-storefront/internal/models"
	"github.com/chanjin5212/myfarm-storefront/internal/services"
)

type OrderHandler struct {
	OrderSvc services.OrderService
	log      *logrus.Logger
}

func NewOrderHandler(
	orderSvc services.OrderService,
	log *logrus.Logger,
) *OrderHandler {
	return &OrderHandler{
		OrderSvc: orderSvc,
		log:      log,
	}
}

func (h *OrderHandler) GetUserOrders() echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		var req models.OrderListReq
		if err := bindRequest(c, &req); err != nil {
			return handleError(c, h.log, err)
		}

		orders, err := h.OrderSvc.List(ctx, sess, req)
		if err != nil {
			h.log.WithField("error", err).Warn("Error from the service when retrieving orders")
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgRetrieved, orders)
	}
}

func (h *OrderHandler) GetOrderDetails() echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		orderID, err := getFromPathParam(c, "id")
		if err != nil {
			return handleError(c, h.log, err)
		}

		h.log.WithField("order_id", orderID).Debug("Receiving GetOrderDetails request")

		order, err := h.OrderSvc.Get(ctx, sess, orderID)
		if err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgRetrieved, order)
	}
}

func (h *OrderHandler) GetOrderByNumber() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		number, err := getFromPathParam(c, "number")
		if err != nil {
			return handleError(c, h.log, err)
		}

		order, err := h.OrderSvc.GetByNumber(c.Request().Context(), sess, number)
		if err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgRetrieved, order)
	}
}

func (h *OrderHandler) CancelOrder() echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		orderID, err := getFromPathParam(c, "id")
		if err != nil {
			return handleError(c, h.log, err)
		}

		var req models.CancelOrderReq
		if err := bindRequest(c, &req); err != nil {
			return handleError(c, h.log, err)
		}

		h.log.WithField("order_id", orderID).Info("Receiving CancelOrder request")

		order, err := h.OrderSvc.Cancel(ctx, sess, orderID, req)
		if err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgOrderCanceled, order)
	}
}
