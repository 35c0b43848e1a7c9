package handlers

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"academyhub/api/internal/config"
	"academyhub/api/internal/mail"
	"academyhub/api/internal/middleware"
	"academyhub/api/internal/models"
	"academyhub/api/internal/repository"
	"academyhub/api/internal/service"
)

// UserDirectory is the read surface the dashboard needs from the user store.
type UserDirectory interface {
	ListByAcademy(ctx context.Context, academyID string, role models.Role, limit, offset int) ([]models.User, error)
	CountByAcademyRole(ctx context.Context, academyID string) (map[models.Role]int, error)
}

// AcademyDirectory is the read/update surface the dashboard and logo upload
// need from the academy store.
type AcademyDirectory interface {
	GetByID(ctx context.Context, id string) (models.Academy, error)
	CountByStatus(ctx context.Context) (map[models.AcademyStatus]int, error)
	UpdateLogoURL(ctx context.Context, id string, logoURL string) error
}

// LogoStore stores academy logos in object storage.
type LogoStore interface {
	PutLogo(ctx context.Context, academyID string, r io.Reader) (string, error)
}

type HandlerSet struct {
	log          zerolog.Logger
	cfg          *config.AppConfig
	registration *service.RegistrationService
	approvals    *service.ApprovalService
	auth         *service.AuthService
	users        UserDirectory
	academies    AcademyDirectory
	logos        LogoStore
	db           *pgxpool.Pool
	cache        *redis.Client
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, logos LogoStore, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	academyRepo := repository.NewAcademyRepository(db)
	mailer := mail.New(cfg.Mail, log)

	registration := service.NewRegistrationService(userRepo, academyRepo, mailer, cache, log)
	approvals := service.NewApprovalService(academyRepo, mailer, cache, log)
	auth := service.NewAuthService(userRepo, academyRepo, cfg, log)

	return HandlerSet{
		log:          log,
		cfg:          cfg,
		registration: registration,
		approvals:    approvals,
		auth:         auth,
		users:        userRepo,
		academies:    academyRepo,
		logos:        logos,
		db:           db,
		cache:        cache,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")
	{
		academies := v1.Group("/academies")
		academies.POST("/register", h.RegisterAcademy)

		scoped := academies.Group("/:id")
		scoped.Use(middleware.Auth(h.auth))
		scoped.GET("/members",
			middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin, models.RoleCoach),
			middleware.RequireAcademyScope("id"),
			h.ListMembers,
		)
		scoped.POST("/logo",
			middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin),
			middleware.RequireAcademyScope("id"),
			h.UploadLogo,
		)

		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(h.cfg.Security.LoginRateRPS, h.cfg.Security.LoginRateBurst))
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/verify", h.VerifyToken)

		dashboard := v1.Group("/dashboard")
		dashboard.Use(middleware.Auth(h.auth))
		dashboard.GET("", h.Dashboard)

		admin := v1.Group("/admin")
		admin.Use(
			middleware.Auth(h.auth),
			middleware.RequireRoles(models.RoleSuperAdmin),
		)
		admin.GET("/approvals", h.ListApprovals)
		admin.POST("/approvals/:id", h.DecideApproval)
	}
}
