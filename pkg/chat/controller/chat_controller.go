package controller

import "github.com/labstack/echo/v4"

type ChatController interface {
	Chat(c echo.Context) error
	ChatAuthenticated(c echo.Context) error
	StreamPost(c echo.Context) error
	StreamGet(c echo.Context) error
	MyHistory(c echo.Context) error
	UserHistory(c echo.Context) error
	SessionHistory(c echo.Context) error
	DeleteUserHistory(c echo.Context) error
	Stats(c echo.Context) error
	RecentUsers(c echo.Context) error
}
