package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	catalogadp "assetfin-backend/internal/adapter/catalog"
	httpadp "assetfin-backend/internal/adapter/http"
	mw "assetfin-backend/internal/adapter/middleware"
	"assetfin-backend/internal/adapter/repository/mysql"
	"assetfin-backend/internal/config"
	"assetfin-backend/internal/infrastructure/cache"
	"assetfin-backend/internal/infrastructure/db"
	approvaluc "assetfin-backend/internal/usecase/approval"
	financinguc "assetfin-backend/internal/usecase/financing"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	// repositories
	financingRepo := mysql.NewFinancingRepository(gdb)
	approvalRepo := mysql.NewApprovalRepository(gdb)
	catalogRepo := mysql.NewCatalogRepository(gdb)
	staffRepo := mysql.NewStaffRepository(gdb)
	guow := mysql.NewGormUoW(gdb)

	cachedCatalog := catalogadp.NewCachedReader(catalogRepo, rdb, time.Duration(cfg.CatalogTTLSecs)*time.Second)

	// usecases
	approvalUC := approvaluc.NewUsecase(approvalRepo, staffRepo, guow)
	financingUC := financinguc.NewUsecase(financingRepo, cachedCatalog, guow)

	// handlers
	h := httpadp.NewHandler()
	fh := httpadp.NewFinancingHandler(financingUC)
	ah := httpadp.NewApprovalHandler(approvalUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	idemp := mw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	// routes
	e.GET("/health", h.Health)

	fin := e.Group("/financings", idemp)
	fin.POST("", fh.CreateFinancing)
	fin.POST("/quote", fh.Quote)
	fin.GET("/:financing_id", fh.GetFinancing)
	fin.POST("/:financing_id/submit", fh.SubmitFinancing)

	apr := e.Group("/approvals", idemp)
	apr.POST("", ah.CreateApproval)
	apr.GET("", ah.ListApprovals)
	apr.GET("/:request_id", ah.GetApproval)
	apr.GET("/:request_id/history", ah.GetApprovalHistory)
	apr.POST("/:request_id/process", ah.ProcessApproval)
	apr.POST("/:request_id/reopen", ah.ReopenApproval)
	apr.GET("/staff/:staff_id/history", ah.GetStaffHistory)

	e.GET("/entities/:entity_id/approval-completion", ah.CheckCompletion)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
