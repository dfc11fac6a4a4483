package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"go-readiness/internal/absence"
	"go-readiness/internal/auth"
	"go-readiness/internal/checkin"
	"go-readiness/internal/company"
	"go-readiness/internal/grading"
	"go-readiness/internal/holiday"
	"go-readiness/internal/leave"
	"go-readiness/internal/messaging/kafka"
	"go-readiness/internal/rbac"
	"go-readiness/internal/summary"
	"go-readiness/internal/team"
	"go-readiness/internal/user"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	companyRepo := company.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	teamRepo := team.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	checkinRepo := checkin.NewRepository(gormDB)
	absenceRepo := absence.NewRepository(gormDB)
	summaryRepo := summary.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}

	// --- Services ---
	companyService := company.NewService(companyRepo)
	summaryService := summary.NewService(
		summaryRepo,
		teamRepo,
		userRepo,
		companyService,
		holidayRepo,
		leaveRepo,
		checkinRepo,
		absenceRepo,
		rdb,
	)
	checkinService := checkin.NewService(db, checkinRepo, userRepo, companyService, outboxRepo, summaryService)
	absenceService := absence.NewService(
		db,
		absenceRepo,
		userRepo,
		teamRepo,
		companyService,
		holidayRepo,
		leaveRepo,
		checkinRepo,
		outboxRepo,
		summaryService,
	)
	leaveService := leave.NewService(db, leaveRepo, userRepo, outboxRepo)
	leaveResolver := leave.NewResolver(leaveRepo, userRepo, companyService, checkinRepo)
	holidayService := holiday.NewService(db, holidayRepo, outboxRepo)
	gradingService := grading.NewService(teamRepo, userRepo, checkinRepo, absenceRepo, summaryRepo)
	authService := auth.NewService(userRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	holidayHandler := holiday.NewHandler(holidayService)
	leaveHandler := leave.NewHandler(leaveService, leaveResolver)
	checkinHandler := checkin.NewHandlerWithRedis(checkinService, rdb)
	absenceHandler := absence.NewHandler(absenceService)
	summaryHandler := summary.NewHandler(summaryService)
	gradingHandler := grading.NewHandler(gradingService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		holiday.RegisterRoutes(api, holidayHandler, enforcer)
		leave.RegisterRoutes(api, leaveHandler, enforcer)
		checkin.RegisterRoutes(api, checkinHandler, enforcer, rdb)
		absence.RegisterRoutes(api, absenceHandler, enforcer)
		summary.RegisterRoutes(api, summaryHandler, enforcer)
		grading.RegisterRoutes(api, gradingHandler, enforcer)
	}

	return nil
}
