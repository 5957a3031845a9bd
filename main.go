package main

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"delivery-service/cache"
	"delivery-service/controllers"
	"delivery-service/database"
	"delivery-service/kafka"
	"delivery-service/logger"
	"delivery-service/metrics"
	repositories "delivery-service/repository"
	"delivery-service/routes"
	"delivery-service/services"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	if err := database.Connect(cfg.DSN()); err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Migrate(database.DB); err != nil {
		logger.Log.Fatal("Migration failed", zap.Error(err))
	}

	var producer kafka.ProducerAPI
	if len(cfg.KafkaBrokers) > 0 {
		p := kafka.NewProducer(cfg.KafkaBrokers, cfg.OrderEventsTopic)
		defer p.Close()
		producer = p
	} else {
		logger.Log.Warn("KAFKA_BROKERS not set, order events disabled")
	}

	var productCache *cache.ProductCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer redisClient.Close()
		productCache = cache.NewProductCache(redisClient)
		logger.Log.Info("Redis product cache enabled", zap.String("addr", cfg.RedisAddr))
	} else {
		logger.Log.Warn("REDIS_ADDR not set, product cache disabled")
	}

	customerRepo := repositories.NewGormCustomerRepository(database.DB)
	restaurantRepo := repositories.NewGormRestaurantRepository(database.DB)
	productRepo := repositories.NewGormProductRepository(database.DB)
	orderRepo := repositories.NewGormOrderRepository(database.DB)

	customerService := services.NewCustomerService(customerRepo)
	restaurantService := services.NewRestaurantService(restaurantRepo)
	productService := services.NewProductService(productRepo, restaurantRepo)
	orderService := services.NewOrderService(orderRepo, customerRepo, restaurantRepo, productRepo, producer)

	customerController := controllers.NewCustomerController(customerService)
	restaurantController := controllers.NewRestaurantController(restaurantService)
	productController := controllers.NewProductController(productService, productCache)
	orderController := controllers.NewOrderController(orderService)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger())
	router.Use(metrics.NewServerMetrics("order_service").Middleware())

	routes.Register(router, customerController, restaurantController, productController, orderController)

	logger.Log.Info("Starting server", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatal("Error starting server", zap.Error(err))
	}
}
