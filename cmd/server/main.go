package main

import (
	"log"
	"strings"
	"time"

	"anoa.com/hrpayroll/internal/bootstrap"
	"anoa.com/hrpayroll/internal/config"
	"anoa.com/hrpayroll/internal/handler"
	"anoa.com/hrpayroll/internal/jobs"
	"anoa.com/hrpayroll/internal/middleware"
	"anoa.com/hrpayroll/internal/repository"
	"anoa.com/hrpayroll/internal/service"
	"anoa.com/hrpayroll/internal/session"
	"anoa.com/hrpayroll/pkg/database"
	"anoa.com/hrpayroll/pkg/logger"
	"anoa.com/hrpayroll/pkg/mailer"
	"anoa.com/hrpayroll/pkg/storage"
	"anoa.com/hrpayroll/pkg/validator"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.Init(cfg.AppEnv)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	if err := validator.RegisterCustom(); err != nil {
		zlog.Fatal("failed to register validators", zap.Error(err))
	}

	db := database.Connect()
	if err := bootstrap.Migrate(db); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}
	if err := bootstrap.SeedRoles(db); err != nil {
		zlog.Fatal("failed to seed roles", zap.Error(err))
	}
	if err := bootstrap.SeedEmploymentStatuses(db); err != nil {
		zlog.Fatal("failed to seed employment statuses", zap.Error(err))
	}
	if err := bootstrap.SeedBenefits(db); err != nil {
		zlog.Fatal("failed to seed benefits", zap.Error(err))
	}
	if err := bootstrap.SeedTaxRates(db); err != nil {
		zlog.Fatal("failed to seed tax rates", zap.Error(err))
	}
	if cfg.AppEnv == "development" || cfg.AdminEmail != "" {
		if err := bootstrap.SeedAdminUser(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			zlog.Fatal("failed to seed admin user", zap.Error(err))
		}
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		zlog.Fatal("invalid REDIS_URL", zap.Error(err))
	}
	rdb := redis.NewClient(redisOpts)

	files, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		zlog.Fatal("failed to initialize file storage", zap.Error(err))
	}

	mail, err := mailer.New(mailer.Opts{
		Host:        cfg.SMTPHost,
		User:        cfg.SMTPUser,
		Pass:        cfg.SMTPPass,
		FromName:    cfg.MailFromName,
		FromAddress: cfg.MailFromAddress,
		SkipVerify:  cfg.SMTPSkipVerify,
	})
	if err != nil {
		zlog.Fatal("failed to initialize mailer", zap.Error(err))
	}
	if !mail.IsEnabled() {
		zlog.Warn("SMTP not configured, outgoing mail disabled")
	}

	userRepo := repository.NewUserRepository(db)
	contractRepo := repository.NewContractRepository(db)
	benefitRepo := repository.NewBenefitRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	taxRateRepo := repository.NewTaxRateRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	otpRepo := repository.NewOTPRepository(db)
	contactRepo := repository.NewContactRepository(db)

	wizardStore := session.NewRedisWizardStore(rdb, cfg.WizardTTL)

	employeeOpts := service.EmployeeOpts{
		DefaultRole:      "employee",
		DefaultImageName: cfg.DefaultImageName,
	}

	authService := service.NewAuthService(userRepo, otpRepo, mail, service.AuthOpts{
		Secret:   cfg.JWTSecret,
		TokenTTL: cfg.JWTTTL,
		OTPTTL:   cfg.OTPTTL,
	})
	contractService := service.NewContractService(contractRepo, benefitRepo, paymentRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, contractRepo, userRepo, taxRateRepo, files)
	catalogService := service.NewCatalogService(catalogRepo, taxRateRepo, files)
	employeeService := service.NewEmployeeService(userRepo, contractRepo, benefitRepo, contractService, files, employeeOpts)
	profileService := service.NewProfileService(userRepo, files, cfg.DefaultImageName)
	paymentService := service.NewPaymentService(paymentRepo)
	taxRateService := service.NewTaxRateService(taxRateRepo)
	onboardingService := service.NewOnboardingService(wizardStore, userRepo, contractRepo, benefitRepo, paymentRepo, contractService, files, mail, employeeOpts)
	contactService := service.NewContactService(contactRepo, mail, rdb, cfg.ContactAddress, cfg.ContactRateWait)

	authHandler := handler.NewAuthHandler(authService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	profileHandler := handler.NewProfileHandler(profileService)
	contractHandler := handler.NewContractHandler(contractService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, contractService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	taxRateHandler := handler.NewTaxRateHandler(taxRateService)
	onboardingHandler := handler.NewOnboardingHandler(onboardingService)
	contactHandler := handler.NewContactHandler(contactService)

	router := gin.Default()
	setupCORS(router, cfg.AllowedOrigins)
	router.Static("/uploads", cfg.UploadDir)

	authMiddleware := middleware.NewAuthMiddleware(userRepo, cfg.JWTSecret)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.GET("/activate", authHandler.Activate)
			auth.POST("/login", authHandler.Login)
			auth.POST("/password-reset", authHandler.RequestPasswordReset)
			auth.POST("/password-reset/confirm", authHandler.ConfirmPasswordReset)
		}

		api.POST("/contact", contactHandler.Submit)
		api.GET("/services", catalogHandler.List)
		api.GET("/services/:id", catalogHandler.Get)

		onboarding := api.Group("/onboarding")
		{
			onboarding.POST("/start", onboardingHandler.Start)
			onboarding.POST("/:id/email", onboardingHandler.SaveEmail)
			onboarding.POST("/:id/basic", onboardingHandler.SaveBasic)
			onboarding.POST("/:id/contact", onboardingHandler.SaveContact)
			onboarding.POST("/:id/contract", onboardingHandler.SaveContract)
			onboarding.POST("/:id/benefits", onboardingHandler.SaveBenefits)
			onboarding.POST("/:id/payment", onboardingHandler.SavePayment)
			onboarding.POST("/:id/complete", onboardingHandler.Complete)
		}
	}

	api.Use(authMiddleware.RequireAuth())
	{
		api.GET("/profile/me", profileHandler.Me)
		api.PUT("/profile", profileHandler.Update)

		api.GET("/contracts/me", contractHandler.Mine)
		api.GET("/invoices/me", invoiceHandler.Mine)
		api.GET("/benefits", contractHandler.ListBenefits)
		api.GET("/tax-rates", taxRateHandler.List)

		api.POST("/payment-methods", paymentHandler.Create)
		api.GET("/payment-methods", paymentHandler.List)
		api.DELETE("/payment-methods/:id", paymentHandler.Delete)

		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequireAdmin())
		{
			admin.POST("/employees", employeeHandler.Create)
			admin.GET("/employees", employeeHandler.List)
			admin.GET("/employees/:id", employeeHandler.Get)
			admin.PUT("/employees/:id", employeeHandler.Update)
			admin.DELETE("/employees/:id", employeeHandler.Delete)

			admin.GET("/contracts/:id", contractHandler.Get)
			admin.PUT("/contracts/:id", contractHandler.Update)
			admin.PUT("/contracts/:id/benefits", contractHandler.SetBenefits)
			admin.GET("/contracts/:id/invoices", invoiceHandler.ListByContract)

			admin.POST("/invoices", invoiceHandler.Issue)
			admin.GET("/invoices/:id", invoiceHandler.Get)

			admin.POST("/services", catalogHandler.Create)
			admin.PUT("/services/:id", catalogHandler.Update)
			admin.DELETE("/services/:id", catalogHandler.Delete)

			admin.POST("/tax-rates", taxRateHandler.Create)
			admin.PUT("/tax-rates/:id", taxRateHandler.Update)
			admin.DELETE("/tax-rates/:id", taxRateHandler.Delete)
		}
	}

	scheduler := jobs.NewScheduler(contractService, cfg.ContractRefreshSchedule)
	scheduler.Start()
	defer scheduler.Stop()

	zlog.Info("server starting", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("server exited", zap.Error(err))
	}
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	origins := []string{"http://localhost:3000"}
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
