package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/handlers/dto"
	"github.com/rafabene/carteira-backend/internal/handlers/middleware"

	// Registra a documentação gerada pelo swag
	_ "github.com/rafabene/carteira-backend/internal/docs"
)

// RouterConfig reúne tudo que o roteador precisa
type RouterConfig struct {
	Env            string
	BaseURL        string
	AllowedOrigins string
	Logger         ports.Logger

	I18n          *middleware.I18nMiddleware
	Authenticator *middleware.Authenticator

	Auth           *AuthHandler
	Users          *UserHandler
	Wallet         *WalletHandler
	Categories     *CategoryHandler
	PaymentMethods *PaymentMethodHandler
	Transactions   *TransactionHandler
	Reminders      *ReminderHandler
	Tokens         *TokenHandler
	Reports        *ReportHandler
	Admin          *AdminHandler
	Themes         *ThemeHandler
	Webhook        *WebhookHandler
	WS             *WSHandler
}

// NewRouter monta o engine com middlewares globais e todas as rotas da API
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// Base URL no contexto para montar os "type" dos problemas
	router.Use(func(c *gin.Context) {
		c.Set(dto.BaseURLContextKey, cfg.BaseURL)
		c.Next()
	})
	router.Use(middleware.RequestLogger(cfg.Logger))
	if cfg.I18n != nil {
		router.Use(cfg.I18n.DetectLanguage())
	}
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	// Precisa vir antes da autenticação para renderizar os erros dela
	router.Use(ErrorRenderer(cfg.Logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    cfg.Env,
		})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	requireAuth := cfg.Authenticator.RequireAuth()
	perm := middleware.RequirePermission

	api := router.Group("/api")

	// Rotas públicas
	auth := api.Group("/auth")
	{
		auth.POST("/register", cfg.Auth.Register)
		auth.POST("/login", cfg.Auth.Login)
		auth.POST("/logout", cfg.Auth.Logout)
		auth.GET("/session", requireAuth, cfg.Auth.Session)
	}
	api.GET("/themes/active", cfg.Themes.Active)
	api.POST("/webhook/waha/:hash", cfg.Webhook.Waha)

	private := api.Group("", requireAuth)
	{
		private.GET("/ws", cfg.WS.Connect)

		users := private.Group("/users/me")
		{
			users.GET("", cfg.Users.GetMe)
			users.PUT("", cfg.Users.UpdateMe)
			users.PUT("/password", cfg.Users.ChangePassword)
			users.POST("/subscription/cancel", cfg.Users.CancelSubscription)
			users.GET("/cancellations", cfg.Users.ListCancellations)
		}

		wallet := private.Group("/wallet")
		{
			wallet.GET("", cfg.Wallet.Get)
			wallet.PUT("", cfg.Wallet.Update)
			wallet.GET("/balance", cfg.Wallet.Balance)
		}

		categories := private.Group("/categories")
		{
			categories.GET("", cfg.Categories.List)
			categories.GET("/:id", cfg.Categories.Get)
			categories.POST("", cfg.Categories.Create)
			categories.PUT("/:id", cfg.Categories.Update)
			categories.DELETE("/:id", cfg.Categories.Delete)
		}

		methods := private.Group("/payment-methods")
		{
			methods.GET("", cfg.PaymentMethods.List)
			methods.GET("/:id", cfg.PaymentMethods.Get)
			methods.POST("", cfg.PaymentMethods.Create)
			methods.PUT("/:id", cfg.PaymentMethods.Update)
			methods.DELETE("/:id", cfg.PaymentMethods.Delete)
		}

		transactions := private.Group("/transactions")
		{
			transactions.GET("", cfg.Transactions.List)
			transactions.GET("/:id", cfg.Transactions.Get)
			transactions.POST("", cfg.Transactions.Create)
			transactions.PUT("/:id", cfg.Transactions.Update)
			transactions.DELETE("/:id", cfg.Transactions.Delete)
		}

		reminders := private.Group("/reminders")
		{
			reminders.GET("", cfg.Reminders.List)
			reminders.GET("/:id", cfg.Reminders.Get)
			reminders.POST("", cfg.Reminders.Create)
			reminders.PUT("/:id", cfg.Reminders.Update)
			reminders.DELETE("/:id", cfg.Reminders.Delete)
		}

		tokens := private.Group("/tokens")
		{
			tokens.GET("", cfg.Tokens.List)
			tokens.POST("", cfg.Tokens.Create)
			tokens.POST("/master/rotate", cfg.Tokens.RotateMaster)
			tokens.DELETE("/:id", cfg.Tokens.Delete)
		}

		reports := private.Group("/reports")
		{
			reports.GET("/dashboard", cfg.Reports.Dashboard)
			reports.POST("/statement", cfg.Reports.Statement)
			reports.GET("/download/:filename", cfg.Reports.Download)
		}
	}

	admin := api.Group("/admin", requireAuth)
	{
		users := admin.Group("/users")
		{
			users.GET("", perm(entities.PermissionUsersRead), cfg.Admin.ListUsers)
			users.POST("", perm(entities.PermissionUsersManage), cfg.Admin.CreateUser)
			users.PUT("/:id/active", perm(entities.PermissionUsersManage), cfg.Admin.SetActive)
			users.PUT("/:id/expiration", perm(entities.PermissionUsersManage), cfg.Admin.SetExpiration)
			users.DELETE("/:id", perm(entities.PermissionUsersManage), cfg.Admin.DeleteUser)
			users.POST("/:id/impersonate", perm(entities.PermissionImpersonate), cfg.Admin.StartImpersonation)
		}

		// Encerrar vale para qualquer sessão personificada; o ator já é super admin
		admin.POST("/impersonation/stop", cfg.Admin.StopImpersonation)
		admin.GET("/impersonation/history", perm(entities.PermissionImpersonate), cfg.Admin.ImpersonationHistory)
		admin.GET("/audit", perm(entities.PermissionAuditRead), cfg.Admin.Audit)
		admin.POST("/notifications", perm(entities.PermissionNotificationsSend), cfg.Admin.SendNotification)

		globals := admin.Group("", perm(entities.PermissionGlobalsManage))
		{
			globals.POST("/seed", cfg.Admin.Seed)

			globals.GET("/categories", cfg.Categories.ListGlobal)
			globals.POST("/categories", cfg.Categories.CreateGlobal)
			globals.PUT("/categories/:id", cfg.Categories.UpdateGlobal)
			globals.DELETE("/categories/:id", cfg.Categories.DeleteGlobal)

			globals.GET("/payment-methods", cfg.PaymentMethods.ListGlobal)
			globals.POST("/payment-methods", cfg.PaymentMethods.CreateGlobal)
			globals.PUT("/payment-methods/:id", cfg.PaymentMethods.UpdateGlobal)
			globals.DELETE("/payment-methods/:id", cfg.PaymentMethods.DeleteGlobal)
		}

		themes := admin.Group("/themes", perm(entities.PermissionThemesManage))
		{
			themes.GET("", cfg.Themes.List)
			themes.GET("/:id", cfg.Themes.Get)
			themes.POST("", cfg.Themes.Create)
			themes.PUT("/:id", cfg.Themes.Update)
			themes.POST("/:id/activate", cfg.Themes.Activate)
			themes.DELETE("/:id", cfg.Themes.Delete)
		}
	}

	return router
}
