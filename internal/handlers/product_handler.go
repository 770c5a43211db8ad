package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/chanjin5212/myfarm-storefront/internal/helpers"
	"github.com/chanjin5212/myfarm-storefront/internal/models"
	"github.com/chanjin5212/myfarm-storefront/internal/services"
)

type ProductHandler struct {
	ProductSvc services.ProductService
	log        *logrus.Logger
}

func NewProductHandler(productSvc services.ProductService, log *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		ProductSvc: productSvc,
		log:        log,
	}
}

func parseListQuery(c echo.Context) (models.ProductListQuery, error) {
	q := models.ProductListQuery{
		SortBy:  c.QueryParam("sort_by"),
		Keyword: c.QueryParam("keyword"),
	}

	var err error
	if q.Page, err = helpers.QueryInt(c, "page", 0); err != nil {
		return q, err
	}
	if q.Size, err = helpers.QueryInt(c, "size", services.DefaultPageSize); err != nil {
		return q, err
	}
	if q.MinPrice, err = helpers.QueryOptionalInt(c, "min_price"); err != nil {
		return q, err
	}
	if q.MaxPrice, err = helpers.QueryOptionalInt(c, "max_price"); err != nil {
		return q, err
	}
	return q, nil
}

func (h *ProductHandler) List() echo.HandlerFunc {
	return func(c echo.Context) error {
		q, err := parseListQuery(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		res, err := h.ProductSvc.List(c.Request().Context(), q)
		if err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgRetrieved, res)
	}
}

func (h *ProductHandler) Get() echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := getFromPathParam(c, "id")
		if err != nil {
			return handleError(c, h.log, err)
		}

		product, err := h.ProductSvc.Get(c.Request().Context(), id)
		if err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgRetrieved, product)
	}
}

func (h *ProductHandler) Suggest() echo.HandlerFunc {
	return func(c echo.Context) error {
		suggestions, err := h.ProductSvc.Suggest(c.Request().Context(), c.QueryParam("keyword"))
		if err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgRetrieved, suggestions)
	}
}

func (h *ProductHandler) ListReviews() echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := getFromPathParam(c, "id")
		if err != nil {
			return handleError(c, h.log, err)
		}

		page, err := helpers.QueryInt(c, "page", 1)
		if err != nil {
			return handleError(c, h.log, err)
		}
		limit, err := helpers.QueryInt(c, "limit", 10)
		if err != nil {
			return handleError(c, h.log, err)
		}

		reviews, err := h.ProductSvc.ListReviews(c.Request().Context(), id, page, limit)
		if err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusOK, MsgRetrieved, reviews)
	}
}

func (h *ProductHandler) CreateReview() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := getSession(c)
		if err != nil {
			return handleError(c, h.log, err)
		}

		id, err := getFromPathParam(c, "id")
		if err != nil {
			return handleError(c, h.log, err)
		}

		var req models.CreateReviewReq
		if err := bindRequest(c, &req); err != nil {
			return handleError(c, h.log, err)
		}

		review, err := h.ProductSvc.CreateReview(c.Request().Context(), sess, id, req)
		if err != nil {
			return handleError(c, h.log, err)
		}

		return respondSuccess(c, http.StatusCreated, MsgReviewCreated, review)
	}
}

func (h *ProductHandler) ResetCaches() echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := h.ProductSvc.ResetCaches(c.Request().Context()); err != nil {
			return handleError(c, h.log, err)
		}

		h.log.Info("Product caches reset")
		return respondSuccess(c, http.StatusOK, MsgCachesReset, nil)
	}
}
