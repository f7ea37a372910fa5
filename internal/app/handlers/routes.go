package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/linemk/shop-online-api/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/shop-online-api/internal/lib/logger/handlers/urllog"
	"github.com/linemk/shop-online-api/internal/lib/metrics"
	"github.com/linemk/shop-online-api/internal/service"
)

// Services - набор сервисов, которые обслуживает роутер
type Services struct {
	Auth       service.AuthService
	Users      service.UserService
	Shops      service.ShopService
	Catalog    service.CatalogService
	Cart       service.CartService
	WishList   service.WishListService
	Reviews    service.ReviewService
	Orders     service.OrderService
	ShopOrders service.ShopOrderService
	Analytics  service.AnalyticsService
	NewsLetter service.NewsLetterService
}

// Guards - источники принципала для middleware авторизации
type Guards struct {
	Secret string
	Users  jwtmiddleware.UserProvider
	Shops  jwtmiddleware.ShopProvider
}

// NewRouter собирает все маршруты API. m может быть nil, тогда метрики не собираются.
func NewRouter(log *slog.Logger, guards Guards, svc Services, m *metrics.Metrics) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)
	if m != nil {
		router.Use(m.Middleware)
		router.Method(http.MethodGet, "/metrics", m.Handler())
	}

	authenticate := jwtmiddleware.Authenticate(log, guards.Secret, guards.Users)

	// публичные маршруты
	router.Post("/register", RegisterHandler(log, svc.Auth))
	router.Post("/shops/register", RegisterShopHandler(log, svc.Auth))
	router.Get("/verification", VerifyHandler(log, svc.Auth))
	router.Post("/login", LoginHandler(log, svc.Auth))
	router.Post("/reset-password", RequestPasswordResetHandler(log, svc.Auth))
	router.Post("/reset-password/verify", ResetPasswordHandler(log, svc.Auth))

	router.Get("/shops", ListShopsHandler(log, svc.Shops))
	router.Get("/shops/{shop_slug}", GetShopHandler(log, svc.Shops))
	router.Get("/shops/{shop_slug}/categories", ListShopCategoriesHandler(log, svc.Catalog))
	router.Get("/shops/{shop_slug}/items", ListShopItemsHandler(log, svc.Catalog))
	router.Get("/categories/{category_slug}/items", ListCategoryItemsHandler(log, svc.Catalog))
	router.Get("/items/{item_slug}", GetItemHandler(log, svc.Catalog))
	router.Get("/items/{item_slug}/reviews", ListReviewsHandler(log, svc.Reviews))

	router.Post("/newsletter", SubscribeHandler(log, svc.NewsLetter))
	router.Get("/newsletter/verify", VerifyNewsletterHandler(log, svc.NewsLetter))
	router.Get("/newsletter/unsubscribe", UnsubscribeHandler(log, svc.NewsLetter))

	// покупатель
	router.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/users/me", MeHandler())
		r.Patch("/users/me", UpdateMeHandler(log, svc.Users))
		r.Delete("/users/me", DeleteMeHandler(log, svc.Users))

		r.Get("/cart", ListCartHandler(log, svc.Cart))
		r.Post("/cart/{item_slug}", AddToCartHandler(log, svc.Cart))
		r.Delete("/cart/{item_slug}", RemoveFromCartHandler(log, svc.Cart))

		r.Post("/orders/checkout", CheckoutHandler(log, svc.Orders))
		r.Get("/orders", ListOrdersHandler(log, svc.Orders))
		r.Get("/orders/{order_id}", GetOrderHandler(log, svc.Orders))

		r.Get("/wish-list", ListWishListHandler(log, svc.WishList))
		r.Post("/wish-list/{item_slug}", ToggleWishListHandler(log, svc.WishList))

		r.Post("/items/{item_slug}/reviews", CreateReviewHandler(log, svc.Reviews))
		r.Delete("/reviews/{id}", DeleteReviewHandler(log, svc.Reviews))
	})

	// владелец одобренного магазина
	router.Route("/my-shop", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(jwtmiddleware.RequireShop(log, guards.Shops))

		r.Post("/categories", CreateCategoryHandler(log, svc.Catalog))
		r.Delete("/categories/{category_slug}", DeleteCategoryHandler(log, svc.Catalog))

		r.Post("/items", CreateItemHandler(log, svc.Catalog))
		r.Patch("/items/{item_slug}", UpdateItemHandler(log, svc.Catalog))
		r.Delete("/items/{item_slug}", DeleteItemHandler(log, svc.Catalog))

		r.Get("/orders", ListShopOrdersHandler(log, svc.ShopOrders))
		r.Get("/orders/{id}", GetShopOrderHandler(log, svc.ShopOrders))
		r.Patch("/orders/{id}/status", UpdateShopOrderStatusHandler(log, svc.ShopOrders))

		r.Get("/customers", ListCustomersHandler(log, svc.ShopOrders))
		r.Get("/customers/{user_id}/orders", CustomerOrdersHandler(log, svc.ShopOrders))

		r.Get("/stats/items", ItemStatsHandler(log, svc.Analytics))
		r.Get("/stats/revenue", RevenueHandler(log, svc.Analytics))
	})

	// администратор сайта
	router.Route("/admin", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(jwtmiddleware.RequireSuperuser())

		r.Get("/users", ListUsersHandler(log, svc.Users))
		r.Delete("/users/{id}", DeleteUserHandler(log, svc.Users))

		r.Get("/shops", ListAllShopsHandler(log, svc.Shops))
		r.Patch("/shops/{shop_slug}/approve", ApproveShopHandler(log, svc.Shops))

		r.Post("/orders/{order_key}/paid", MarkPaidHandler(log, svc.Orders))
		r.Get("/shop-orders/{id}", AdminGetShopOrderHandler(log, svc.ShopOrders))

		r.Get("/newsletter", ListNewsletterHandler(log, svc.NewsLetter))
		r.Get("/newsletter/{id}", GetNewsletterHandler(log, svc.NewsLetter))
		r.Delete("/newsletter/{id}", DeleteNewsletterHandler(log, svc.NewsLetter))

		r.Delete("/reviews/{id}", AdminDeleteReviewHandler(log, svc.Reviews))
		r.Delete("/cart-items/{id}", DeleteCartItemHandler(log, svc.Cart))
	})

	return router
}
