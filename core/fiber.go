package core

import (
	"github.com/gofiber/fiber/v2"
)

func SetupFiberApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "klob",
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "data": nil})
	})

	app.Get("/status", func(c *fiber.Ctx) error {
		statuses := fiber.Map{}
		for exchgId, ex := range Exchanges {
			status, err := ex.CheckNetworkStatus(c.Context())
			if err != nil {
				return err
			}
			statuses[exchgId] = status
		}
		return c.JSON(fiber.Map{"success": true, "data": statuses})
	})

	app.Get("/balances/:exchange", func(c *fiber.Ctx) error {
		ex, exists := Exchanges[c.Params("exchange")]
		if !exists {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "data": nil})
		}
		balances, err := ex.GetAccountBalances(c.Context())
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": balances})
	})

	return app
}

func ShutdownFiberApp(app *fiber.App) {
	_ = app.Shutdown()
}
