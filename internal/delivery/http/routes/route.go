package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/chanjin5212/myfarm-storefront/internal/delivery/http/middlewares"
	"github.com/chanjin5212/myfarm-storefront/internal/handlers"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Registration *handlers.RegistrationHandler
	Recovery     *handlers.RecoveryHandler
	Product      *handlers.ProductHandler
	Order        *handlers.OrderHandler
	MyPage       *handlers.MyPageHandler
	Cart         *handlers.CartHandler
	Page         *handlers.PageHandler
}

type Options struct {
	Session     echo.MiddlewareFunc
	RateLimiter *middlewares.RateLimiter
	AdminToken  string
	Log         *logrus.Logger
}

// authAPIPaths are the JSON endpoints behind the auth pages. A 401 from them
// is a failed attempt, never an expired login.
var authAPIPaths = []string{"/api/auth/login", "/api/register", "/api/forgot-id", "/api/forgot-password"}

// InitRoutes mounts the pages without a session; only /api routes load one.
func InitRoutes(e *echo.Echo, h Handlers, opts Options) {
	e.GET("/health", h.Page.Health())
	e.GET("/", h.Page.Home())
	e.GET("/company", h.Page.Static("company"))
	e.GET("/privacy", h.Page.Static("privacy"))
	e.GET("/terms", h.Page.Static("terms"))

	authPages := append(append([]string{}, middlewares.AuthPages...), authAPIPaths...)
	limited := middlewares.RateLimit(opts.RateLimiter)

	api := e.Group("/api")
	api.Use(opts.Session, middlewares.UnauthorizedRedirect(authPages, opts.Log))

	auth := api.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login(), limited)
		auth.POST("/logout", h.Auth.Logout())
		auth.GET("/session", h.Auth.Session())
	}

	register := api.Group("/register")
	{
		register.GET("/state", h.Registration.State())
		register.DELETE("/state", h.Registration.ResetState())
		register.POST("/check-login-id", h.Registration.CheckLoginID())
		register.POST("/check-duplicate", h.Registration.CheckDuplicate())
		register.POST("/password-check", h.Registration.CheckPassword())
		register.POST("/send-code", h.Registration.SendCode(), limited)
		register.POST("/verify-code", h.Registration.VerifyCode())
		register.POST("", h.Registration.Submit())
	}

	findID := api.Group("/forgot-id")
	{
		findID.GET("/state", h.Recovery.FindIDState())
		findID.DELETE("/state", h.Recovery.ResetFindID())
		findID.POST("/send-code", h.Recovery.SendFindIDCode(), limited)
		findID.POST("/verify-code", h.Recovery.VerifyFindID())
	}

	findPassword := api.Group("/forgot-password")
	{
		findPassword.GET("/state", h.Recovery.FindPasswordState())
		findPassword.DELETE("/state", h.Recovery.ResetFindPassword())
		findPassword.POST("/check", h.Recovery.CheckCredentials(), limited)
		findPassword.POST("/verify-code", h.Recovery.VerifyFindPassword())
		findPassword.POST("/reset", h.Recovery.ResetPassword())
		findPassword.POST("/request-link", h.Recovery.ForgotPassword(), limited)
		findPassword.POST("/reset-with-token", h.Recovery.ResetPasswordWithToken())
	}

	products := api.Group("/products")
	{
		products.GET("", h.Product.List())
		products.GET("/:id", h.Product.Get())
		products.GET("/:id/reviews", h.Product.ListReviews())
		products.POST("/:id/reviews", h.Product.CreateReview(), middlewares.RequireLogin())
	}
	api.GET("/search/suggestions", h.Product.Suggest())

	mypage := api.Group("/mypage")
	mypage.Use(middlewares.RequireLogin())
	{
		mypage.GET("/me", h.Auth.Me())
		mypage.PUT("/profile", h.Auth.UpdateProfile())
		mypage.PUT("/password", h.Auth.ChangePassword())

		mypage.GET("/orders", h.Order.GetUserOrders())
		mypage.GET("/orders/:id", h.Order.GetOrderDetails())
		mypage.GET("/orders/number/:number", h.Order.GetOrderByNumber())
		mypage.PATCH("/orders/:id/cancel", h.Order.CancelOrder())

		mypage.GET("/reviews", h.MyPage.ListMyReviews())

		mypage.GET("/shipping", h.MyPage.ListAddresses())
		mypage.POST("/shipping", h.MyPage.CreateAddress())
		mypage.GET("/shipping/:id", h.MyPage.GetAddress())
		mypage.PUT("/shipping/:id", h.MyPage.UpdateAddress())
		mypage.DELETE("/shipping/:id", h.MyPage.DeleteAddress())
	}

	api.GET("/cart/count", h.Cart.Count())
	cart := api.Group("/cart")
	cart.Use(middlewares.RequireLogin())
	{
		cart.GET("", h.Cart.GetCart())
		cart.DELETE("", h.Cart.Clear())
		cart.POST("/items", h.Cart.AddItem())
		cart.PUT("/items/:id", h.Cart.UpdateItem())
		cart.DELETE("/items/:id", h.Cart.RemoveItem())
		cart.DELETE("/items", h.Cart.RemoveItems())
	}

	admin := api.Group("/admin")
	admin.Use(middlewares.RequireAdminToken(opts.AdminToken))
	{
		admin.POST("/reset-caches", h.Product.ResetCaches())
	}
}
