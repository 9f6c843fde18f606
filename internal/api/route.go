package api

import (
	v1 "github.com/dayvsonmarques/sub-acquirer-payments/internal/api/v1"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const prefixV1 = "api/v1/"

func SetupRoutes(app *fiber.App, handler *v1.Handler, webhooks *v1.WebhookHandler) {
	app.Get("/ping", handler.Pong)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Post(prefixV1+"pix", handler.CreatePix)
	app.Get(prefixV1+"pix/:transactionId", handler.GetPixStatus)
	app.Post(prefixV1+"withdraw", handler.CreateWithdraw)
	app.Get(prefixV1+"withdraw/:transactionId", handler.GetWithdrawStatus)

	app.Post("/webhooks/pix/:subacquirer", webhooks.ConfirmPix)
	app.Post("/webhooks/withdraw/:subacquirer", webhooks.ConfirmWithdraw)
}
