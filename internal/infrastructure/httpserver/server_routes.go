package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	api := s.echo.Group("/api/v1")

	auth := api.Group("/auth", s.middleware.RateLimit.Auth())
	auth.POST("/register", s.register)
	auth.POST("/login", s.login)
	auth.POST("/refresh", s.refreshToken)

	// Public catalog reads.
	products := api.Group("/products")
	products.GET("", s.listProducts)
	products.GET("/top-rated", s.listTopRatedProducts)
	products.GET("/:id", s.getProduct)
	products.GET("/:id/reviews", s.listProductReviews)

	protected := api.Group("")
	protected.Use(s.middleware.JWT.RequireJWT())

	protected.POST("/auth/logout", s.logout)

	users := protected.Group("/users")
	users.GET("/me", s.getOwnProfile)
	users.PUT("/me", s.updateOwnProfile)
	users.DELETE("/me", s.deactivateOwnAccount)

	orders := protected.Group("/orders", s.middleware.RateLimit.Strict())
	orders.POST("", s.placeOrder)
	orders.GET("", s.listOwnOrders)
	orders.GET("/:id", s.getOrder)

	reviews := protected.Group("", s.middleware.RateLimit.Strict())
	reviews.POST("/products/:id/reviews", s.createReview)
	reviews.DELETE("/reviews/:id", s.deleteReview)

	admin := protected.Group("/admin", s.middleware.JWT.RequireAdmin(), s.middleware.RateLimit.Admin())
	admin.POST("/products", s.createProduct)
	admin.PUT("/products/:id", s.updateProduct)
	admin.DELETE("/products/:id", s.deleteProduct)
	admin.PUT("/orders/:id/status", s.updateOrderStatus)
	admin.GET("/cache/stats", s.cacheStatsHandler)
}
