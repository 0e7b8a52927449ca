package main

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"pos-backend/config"
	"pos-backend/controllers"
	"pos-backend/middleware"
	"pos-backend/routes"
	"pos-backend/services"
	"pos-backend/store"
	"pos-backend/store/memstore"
	"pos-backend/store/mongostore"
	"pos-backend/utils"

	"time"
)

func main() {
	log := logrus.New()

	if err := godotenv.Load(); err != nil {
		log.Info("no .env file, using environment")
	}
	cfg := config.Load()

	var st store.Store
	if cfg.MongoURI == "" {
		log.Warn("MONGO_URI not set, running on the in-memory store")
		st = memstore.New()
	} else {
		ms, err := mongostore.Connect(context.Background(), cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			log.WithError(err).Fatal("connecting to MongoDB failed")
		}
		defer ms.Disconnect(context.Background())
		log.Info("Connected to MongoDB")
		st = ms
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	middleware.InitMetrics()
	r.Use(middleware.PrometheusMiddleware())
	r.Use(middleware.RequestLogger(log))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	sellService := services.NewSellService(st, log)

	var mailer *utils.Mailer
	if cfg.SMTPHost != "" {
		mailer = utils.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.AlertFrom)
	}
	notifier := services.NewLowStockNotifier(st, mailer, cfg.LowStockThreshold, cfg.AlertEmail, log)

	s := gocron.NewScheduler(time.UTC)
	s.Every(1).Day().At("01:00").Do(notifier.Run)
	s.StartAsync()

	routes.InitializeRoutes(r, routes.Controllers{
		Auth:     controllers.NewAuthController(st, cfg.JWTSecret, log),
		Products: controllers.NewProductController(st, cfg.UploadsDir, log),
		Sell:     controllers.NewSellController(sellService, log),
		Sales:    controllers.NewSalesController(st, log),
		Reports:  controllers.NewReportController(st, log),
	}, cfg)

	log.Infof("Server running on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
