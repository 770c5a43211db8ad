package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/chanjin5212/myfarm-storefront/internal/models"
	"github.com/chanjin5212/myfarm-storefront/internal/services"
)

// MyPageHandler serves the shipping-address and review tabs of the my page.
type MyPageHandler struct {
	ShippingSvc services.ShippingService
	ReviewSvc   services.ReviewService
	log         *logrus.Logger
}

func NewMyPageHandler(shippingSvc services.ShippingService, reviewSvc services.ReviewService, log *logrus.Logger) *MyPageHandler {
	return &MyPageHandler{
		ShippingSvc: shippingSvc,
		ReviewSvc:   reviewSvc,
		log:         log,
	}
}

func (h *MyPageHandler) ListAddresses() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		req := models.ShippingAddressListReq{Size: 10}
		if err := bindRequest(c, &req); err != nil {
			return handleError(c, h.log, err)
		}

		list, err := h.ShippingSvc.List(c.Request().Context(), sess, req)
		if err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgRetrieved, list)
	}
}

func (h *MyPageHandler) GetAddress() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		id, err := getFromPathParam(c, "id")
		if err != nil {
			return handleError(c, h.log, err)
		}

		addr, err := h.ShippingSvc.Get(c.Request().Context(), sess, id)
		if err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgRetrieved, addr)
	}
}

func (h *MyPageHandler) CreateAddress() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		var req models.ShippingAddressReq
		if err := bindRequest(c, &req); err != nil {
			return handleError(c, h.log, err)
		}

		addr, err := h.ShippingSvc.Create(c.Request().Context(), sess, req)
		if err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusCreated, MsgAddressSaved, addr)
	}
}

func (h *MyPageHandler) UpdateAddress() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		id, err := getFromPathParam(c, "id")
		if err != nil {
			return handleError(c, h.log, err)
		}

		var req models.ShippingAddressReq
		if err := bindRequest(c, &req); err != nil {
			return handleError(c, h.log, err)
		}

		addr, err := h.ShippingSvc.Update(c.Request().Context(), sess, id, req)
		if err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgAddressSaved, addr)
	}
}

func (h *MyPageHandler) DeleteAddress() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		id, err := getFromPathParam(c, "id")
		if err != nil {
			return handleError(c, h.log, err)
		}

		res, err := h.ShippingSvc.Delete(c.Request().Context(), sess, id)
		if err != nil {
			return handleError(c, h.log, err)
		}

		msg := res.Message
		if msg == "" {
			msg = MsgAddressDeleted
		}
		return respondSuccess(c, http.StatusOK, msg, nil)
	}
}

func (h *MyPageHandler) ListMyReviews() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		var req models.ReviewListReq
		if err := bindRequest(c, &req); err != nil {
			return handleError(c, h.log, err)
		}

		reviews, err := h.ReviewSvc.ListMine(c.Request().Context(), sess, req)
		if err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgRetrieved, reviews)
	}
}
