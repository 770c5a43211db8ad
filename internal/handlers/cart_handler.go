package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/chanjin5212/myfarm-storefront/internal/models"
	"github.com/chanjin5212/myfarm-storefront/internal/services"
)

type CartHandler struct {
	CartSvc services.CartService
	log     *logrus.Logger
}

func NewCartHandler(cartSvc services.CartService, log *logrus.Logger) *CartHandler {
	return &CartHandler{
		CartSvc: cartSvc,
		log:     log,
	}
}

func (h *CartHandler) GetCart() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		cart, err := h.CartSvc.Get(c.Request().Context(), sess)
		if err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgRetrieved, cart)
	}
}

// Count answers zero for anonymous visitors instead of asking the backend.
func (h *CartHandler) Count() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		if !sess.LoggedIn {
			return respondSuccess(c, http.StatusOK, MsgRetrieved, models.CartCount{})
		}

		count, err := h.CartSvc.Count(c.Request().Context(), sess)
		if err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgRetrieved, models.CartCount{Count: count})
	}
}

func (h *CartHandler) AddItem() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		var req models.AddToCartReq
		if err := bindRequest(c, &req); err != nil {
			return handleError(c, h.log, err)
		}

		if err := h.CartSvc.AddItem(c.Request().Context(), sess, req); err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusCreated, MsgCartUpdated, nil)
	}
}

func (h *CartHandler) UpdateItem() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		itemID, err := getFromPathParam(c, "id")
		if err != nil {
			return handleError(c, h.log, err)
		}

		var req models.UpdateCartItemReq
		if err := bindRequest(c, &req); err != nil {
			return handleError(c, h.log, err)
		}

		if err := h.CartSvc.UpdateItem(c.Request().Context(), sess, itemID, req); err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgCartUpdated, nil)
	}
}

func (h *CartHandler) RemoveItem() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		itemID, err := getFromPathParam(c, "id")
		if err != nil {
			return handleError(c, h.log, err)
		}

		if err := h.CartSvc.RemoveItem(c.Request().Context(), sess, itemID); err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgCartUpdated, nil)
	}
}

func (h *CartHandler) RemoveItems() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		var req models.RemoveCartItemsReq
		if err := bindRequest(c, &req); err != nil {
			return handleError(c, h.log, err)
		}

		if err := h.CartSvc.RemoveItems(c.Request().Context(), sess, req); err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgCartUpdated, nil)
	}
}

func (h *CartHandler) Clear() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		if err := h.CartSvc.Clear(c.Request().Context(), sess); err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgCartUpdated, nil)
	}
}
