package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/chanjin5212/myfarm-storefront/internal/models"
	"github.com/chanjin5212/myfarm-storefront/internal/services"
)

const homeProductCount = 12

type homePage struct {
	Products []models.ProductSummaryRes
}

// PageHandler renders the informational pages.
type PageHandler struct {
	ProductSvc services.ProductService
	log        *logrus.Logger
}

func NewPageHandler(productSvc services.ProductService, log *logrus.Logger) *PageHandler {
	return &PageHandler{
		ProductSvc: productSvc,
		log:        log,
	}
}

// Home shows the latest products. The page still renders when they cannot be loaded.
func (h *PageHandler) Home() echo.HandlerFunc {
	return func(c echo.Context) error {
		var page homePage

		list, err := h.ProductSvc.List(c.Request().Context(), models.ProductListQuery{Size: homeProductCount})
		if err != nil {
			h.log.WithError(err).Warn("Failed to load products for the home page")
		} else {
			page.Products = list.Products
		}

		return c.Render(http.StatusOK, "home", page)
	}
}

func (h *PageHandler) Static(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, name, nil)
	}
}

func (h *PageHandler) Health() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}
