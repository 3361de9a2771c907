package service

import (
	"github.com/gin-gonic/gin"

	"github.com/neodocs/neodocs/app/core"
	v1 "github.com/neodocs/neodocs/app/logic/v1"
	"github.com/neodocs/neodocs/app/response"
	"github.com/neodocs/neodocs/cmd/service/handler"
	"github.com/neodocs/neodocs/cmd/service/middleware"
	"github.com/neodocs/neodocs/pkg/metrics"
)

func serve(core *core.Core) {
	httpSrv := &handler.HttpSrv{
		Core:   core,
		Engine: core.HttpEngine(),
	}
	setupHttpRouter(httpSrv)

	core.HttpEngine().Run(core.Cfg().Addr)
}

func GetIPLimitBuilder(appCore *core.Core) middleware.LimiterFunc {
	return func(key string, opts ...core.LimitOption) gin.HandlerFunc {
		return middleware.UseLimit(appCore, key, func(c *gin.Context) string {
			return key + ":" + c.ClientIP()
		}, opts...)
	}
}

func GetUserLimitBuilder(appCore *core.Core) middleware.LimiterFunc {
	return func(key string, opts ...core.LimitOption) gin.HandlerFunc {
		return middleware.UseLimit(appCore, key, func(c *gin.Context) string {
			token, _ := v1.InjectTokenClaim(c)
			return key + ":" + token.User
		}, opts...)
	}
}

func setupHttpRouter(s *handler.HttpSrv) {
	ipLimit := GetIPLimitBuilder(s.Core)
	userLimit := GetUserLimitBuilder(s.Core)

	s.Engine.Use(middleware.I18n(), response.NewResponse())
	s.Engine.Use(middleware.Cors)
	s.Engine.Use(middleware.AcceptLanguage())
	s.Engine.Use(middleware.SetAppid(s.Core))

	s.Engine.GET("/metrics", metrics.DefaultExportHandler())

	apiV1 := s.Engine.Group("/api/v1")
	{
		user := apiV1.Group("/user")
		{
			user.POST("/register", ipLimit("register", core.WithLimit(5)), s.Register)
			user.POST("/login", ipLimit("login", core.WithLimit(10)), s.Login)

			authed := user.Group("")
			authed.Use(middleware.Authorization(s.Core))
			{
				authed.GET("/info", s.GetUser)
				authed.PUT("/profile", userLimit("profile"), s.UpdateUserProfile)
				authed.PUT("/password", userLimit("profile"), s.UpdateUserPassword)
				authed.POST("/secret/token", s.CreateAccessToken)
				authed.GET("/secret/tokens", s.GetUserAccessTokens)
				authed.DELETE("/secret/token", s.DeleteAccessToken)
			}
		}

		sharing := apiV1.Group("/sharing")
		{
			// 扫码访问入口，公开，按IP限流
			sharing.POST("/access", ipLimit("share_access"), s.ShareAccess)
		}

		authed := apiV1.Group("")
		authed.Use(middleware.Authorization(s.Core))

		document := authed.Group("/document")
		{
			document.POST("", userLimit("document_modify"), s.CreateDocument)
			document.GET("/list", s.ListDocuments)
			document.GET("/:id", s.GetDocument)
			document.GET("/:id/download", s.GetDocumentDownloadURL)
			document.PUT("/:id", userLimit("document_modify"), s.UpdateDocument)
			document.DELETE("/:id", s.DeleteDocument)

			document.POST("/:id/access", s.GrantDocumentAccess)
			document.GET("/:id/access/list", s.ListDocumentAccess)
			document.DELETE("/:id/access/:userid", s.RevokeDocumentAccess)

			document.POST("/:id/share", userLimit("document_share"), s.ShareDocument)
		}

		authedSharing := authed.Group("/sharing")
		{
			authedSharing.POST("/qr", userLimit("qr_create"), s.CreateQRShare)
			authedSharing.GET("/qr/list", s.ListQRShares)
			authedSharing.GET("/qr/:id", s.GetQRShare)
			authedSharing.POST("/qr/:id/revoke", s.RevokeQRShare)
			authedSharing.GET("/qr/:id/sessions", s.ListShareSessions)

			authedSharing.POST("/share/:id/respond", s.RespondShare)
			authedSharing.GET("/shared/list", s.ListShares)

			authedSharing.POST("/request", userLimit("document_request"), s.CreateDocumentRequest)
			authedSharing.POST("/request/:id/respond", s.RespondDocumentRequest)
			authedSharing.GET("/request/list", s.ListDocumentRequests)

			authedSharing.GET("/stats", s.GetSharingStats)
		}

		notification := authed.Group("/notification")
		{
			notification.GET("/list", s.ListNotifications)
			notification.POST("/read", s.MarkNotificationRead)
			notification.POST("/read/all", s.MarkAllNotificationsRead)
		}

		authed.GET("/activity/list", s.ListActivities)
	}
}
