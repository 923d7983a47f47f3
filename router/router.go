package router

import (
	"github.com/labstack/echo/v4"

	"campus/pkg/auth/service"
	"campus/pkg/middleware"
)

func New(
	e *echo.Echo,
	auth service.AuthService,
	authCtrl interface {
		Signup(echo.Context) error
		Login(echo.Context) error
		Me(echo.Context) error
	},
	chatCtrl interface {
		Chat(echo.Context) error
		ChatAuthenticated(echo.Context) error
		StreamPost(echo.Context) error
		StreamGet(echo.Context) error
		MyHistory(echo.Context) error
		UserHistory(echo.Context) error
		SessionHistory(echo.Context) error
		DeleteUserHistory(echo.Context) error
		Stats(echo.Context) error
		RecentUsers(echo.Context) error
	},
	studentCtrl interface {
		Create(echo.Context) error
		Get(echo.Context) error
		Update(echo.Context) error
		Delete(echo.Context) error
		List(echo.Context) error
		Analytics(echo.Context) error
	},
	voiceCtrl interface {
		VoiceToText(echo.Context) error
		TextToSpeech(echo.Context) error
		Voices(echo.Context) error
	},
	healthCtrl interface {
		Health(echo.Context) error
		Root(echo.Context) error
	},
) *echo.Echo {
	e.GET("/", healthCtrl.Root)
	e.GET("/health", healthCtrl.Health)

	e.POST("/auth/signup", authCtrl.Signup)
	e.POST("/auth/login", authCtrl.Login)

	e.POST("/chat", chatCtrl.Chat)
	e.POST("/stream", chatCtrl.StreamPost)
	// EventSource clients authenticate via the token query param inside the
	// handler, not the bearer middleware
	e.GET("/stream", chatCtrl.StreamGet)

	e.GET("/history/:user_id", chatCtrl.UserHistory)
	e.GET("/history/:user_id/sessions/:session_id", chatCtrl.SessionHistory)
	e.DELETE("/history/:user_id", chatCtrl.DeleteUserHistory)
	e.GET("/chats/stats", chatCtrl.Stats)
	e.GET("/chats/recent-users", chatCtrl.RecentUsers)

	e.POST("/students", studentCtrl.Create)
	e.GET("/students", studentCtrl.List)
	e.GET("/students/:student_id", studentCtrl.Get)
	e.PUT("/students/:student_id", studentCtrl.Update)
	e.DELETE("/students/:student_id", studentCtrl.Delete)
	e.GET("/analytics", studentCtrl.Analytics)

	e.POST("/voice-to-text", voiceCtrl.VoiceToText)
	e.POST("/text-to-speech", voiceCtrl.TextToSpeech)
	e.GET("/voices", voiceCtrl.Voices)

	authed := e.Group("", middleware.RequireAuth(auth))
	authed.GET("/auth/me", authCtrl.Me)
	authed.POST("/chat/authenticated", chatCtrl.ChatAuthenticated)
	authed.GET("/history/me", chatCtrl.MyHistory)

	return e
}
