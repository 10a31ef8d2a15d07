package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/carnival-corner/internal/api"
)

// NewTestEcho はテスト用のEchoインスタンスを作成する
// バリデーターとエラーハンドラーは本番と同じものを使う
func NewTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	return e
}

// NewTestRouter は全ルートを登録したテスト用のEchoインスタンスを作成する
func NewTestRouter(h Handlers) *echo.Echo {
	e := NewTestEcho()
	RegisterRoutes(e, h)
	return e
}
