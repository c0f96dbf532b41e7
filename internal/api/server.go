package api

import (
	"github.com/Procesia/docs_service/config"
	"github.com/Procesia/docs_service/infra/queue"
	"github.com/Procesia/docs_service/internal/api/rest/handlers"
	"github.com/Procesia/docs_service/internal/api/rest/middleware"
	"github.com/Procesia/docs_service/internal/domain"
	"github.com/Procesia/docs_service/internal/helper"
	"github.com/Procesia/docs_service/internal/repository"
	"github.com/Procesia/docs_service/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("database connection error")
	}
	log.Info().Msg("database connected")

	// ---------- MIGRATION (guarded by advisory lock) ----------
	const migrateLockID int64 = 20260815

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		log.Fatal().Err(err).Msg("migration lock error")
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	if err := db.AutoMigrate(
		&domain.Company{},
		&domain.UserProfile{},
		&domain.Process{},
		&domain.Task{},
		&domain.Document{},
		&domain.DocumentVersion{},
		&domain.DocumentRead{},
		&domain.Diagram{},
		&domain.Flow{},
		&domain.FlowNode{},
		&domain.FlowEdge{},
		&domain.ArtifactLink{},
		&domain.AuditLog{},
	); err != nil {
		log.Fatal().Err(err).Msg("migration error")
	}
	log.Info().Msg("migration successful")

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)

	authHelper := helper.SetupAuth(cfg.AccessSecret)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	versionRepo := repository.NewVersionRepository(db)
	readRepo := repository.NewReadRepository(db)
	processRepo := repository.NewProcessRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	diagramRepo := repository.NewDiagramRepository(db)
	flowRepo := repository.NewFlowRepository(db)
	linkRepo := repository.NewLinkRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// ---------- Services ----------
	policy := services.NewAccessPolicy()
	auditTrail := services.NewAuditTrail(auditRepo)

	linkSvc := services.NewLinkService(
		linkRepo,
		auditTrail,
		policy,
		documentRepo,
		processRepo,
		taskRepo,
		diagramRepo,
	)
	documentSvc := services.NewDocumentService(
		documentRepo,
		versionRepo,
		readRepo,
		userRepo,
		policy,
		auditTrail,
		kafkaProducer,
	)
	processSvc := services.NewProcessService(processRepo, taskRepo, linkSvc, policy, auditTrail)
	diagramSvc := services.NewDiagramService(diagramRepo, linkSvc, policy, auditTrail)
	flowSvc := services.NewFlowService(flowRepo, policy, auditTrail)
	companySvc := services.NewCompanyService(companyRepo, policy, auditTrail)
	userSvc := services.NewUserService(userRepo, policy, auditTrail)

	// ---------- Routes ----------
	api := app.Group("/api", middleware.AuthMiddleware(authHelper, userSvc))

	handlers.NewDocumentHandler(documentSvc).SetupRoutes(api)
	handlers.NewProcessHandler(processSvc).SetupRoutes(api)
	handlers.NewDiagramHandler(diagramSvc).SetupRoutes(api)
	handlers.NewFlowHandler(flowSvc).SetupRoutes(api)
	handlers.NewLinkHandler(linkSvc).SetupRoutes(api)
	handlers.NewCompanyHandler(companySvc).SetupRoutes(api)
	handlers.NewUserHandler(userSvc).SetupRoutes(api)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Info().Str("addr", addr).Msg("listening")
	log.Fatal().Err(app.Listen(addr)).Msg("server stopped")
}
