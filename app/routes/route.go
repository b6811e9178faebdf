package routes

import (
	"net/http"

	"github.com/Rakhulsr/go-marketplace/app/configs"
	"github.com/Rakhulsr/go-marketplace/app/handlers"
	"github.com/Rakhulsr/go-marketplace/app/middlewares"
	"github.com/Rakhulsr/go-marketplace/app/repositories"
	"github.com/Rakhulsr/go-marketplace/app/services"
	"github.com/Rakhulsr/go-marketplace/app/utils/cache"
	"github.com/Rakhulsr/go-marketplace/app/utils/metrics"
	"github.com/Rakhulsr/go-marketplace/app/utils/renderer"
	"github.com/Rakhulsr/go-marketplace/app/utils/sessions"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB, rdb *redis.Client, sessionKeys *configs.SessionKeys) *mux.Router {
	rnd := renderer.New()

	userRepo := repositories.NewUserRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	productRepo := repositories.NewProductRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	ratingRepo := repositories.NewRatingRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	cartItemRepo := repositories.NewCartItemRepository(db)

	productCache := cache.NewProductCache(rdb, services.SubtreeCacheTTL)

	authSvc := services.NewAuthService(userRepo, configs.LoadENV.JWTSecret)
	catalogSvc := services.NewCatalogService(categoryRepo, productRepo, productCache)
	reviewSvc := services.NewReviewService(db, productRepo, commentRepo, ratingRepo)
	cartSvc := services.NewCartService(cartRepo, cartItemRepo, productRepo)
	userSvc := services.NewUserService(db, userRepo)

	sessionStore := sessions.NewCookieSessionStore(sessionKeys.AuthKey, sessionKeys.EncKey)

	authHandler := handlers.NewAuthHandler(authSvc, sessionStore, rnd)
	categoryHandler := handlers.NewCategoryHandler(catalogSvc, rnd)
	productHandler := handlers.NewProductHandler(catalogSvc, rnd)
	commentHandler := handlers.NewCommentHandler(reviewSvc, rnd)
	cartHandler := handlers.NewCartHandler(cartSvc, rnd)
	profileHandler := handlers.NewProfileHandler(userSvc, rnd)
	permissionHandler := handlers.NewPermissionHandler(userSvc, rnd)

	router := mux.NewRouter()
	router.Use(metrics.Middleware)

	// Public surface.
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/auth", authHandler.Register).Methods(http.MethodPost)
	router.HandleFunc("/auth/token", authHandler.Token).Methods(http.MethodPost)
	router.HandleFunc("/category", categoryHandler.List).Methods(http.MethodGet)
	router.HandleFunc("/products/detail/{product_slug}", productHandler.Detail).Methods(http.MethodGet)
	router.HandleFunc("/products/{product_id}/comments", commentHandler.List).Methods(http.MethodGet)
	router.HandleFunc("/products/{category_slug}", productHandler.ByCategory).Methods(http.MethodGet)

	authMW := middlewares.AuthMiddleware(authSvc, userRepo, sessionStore)

	// Authenticated surface.
	authed := router.NewRoute().Subrouter()
	authed.Use(authMW)
	authed.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)
	authed.HandleFunc("/products/create", productHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/products/delete", productHandler.Delete).Methods(http.MethodDelete)
	authed.HandleFunc("/products/{product_id}/comments", commentHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/comments/{id}", commentHandler.Edit).Methods(http.MethodPut)
	authed.HandleFunc("/comments/{id}", commentHandler.Delete).Methods(http.MethodDelete)
	authed.HandleFunc("/cart", cartHandler.GetCart).Methods(http.MethodGet)
	authed.HandleFunc("/cart/add", cartHandler.AddItem).Methods(http.MethodPost)
	authed.HandleFunc("/cart/remove", cartHandler.RemoveItem).Methods(http.MethodPatch)
	authed.HandleFunc("/cart/delete", cartHandler.DeleteItem).Methods(http.MethodDelete)
	authed.HandleFunc("/profile", profileHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/profile/change-password", profileHandler.ChangePassword).Methods(http.MethodPut)

	// Admin surface.
	admin := router.NewRoute().Subrouter()
	admin.Use(authMW, middlewares.AdminAuthMiddleware)
	admin.HandleFunc("/category/create", categoryHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/category/{id}/parent", categoryHandler.AssignParent).Methods(http.MethodPatch)
	admin.HandleFunc("/permission", permissionHandler.ToggleSupplier).Methods(http.MethodPatch)
	admin.HandleFunc("/permission/delete", permissionHandler.ToggleActive).Methods(http.MethodDelete)

	return router
}
