// Package main runs a local stand-in for the checkout's external
// collaborators: the skysunny HTTP API and the native-host bridge replies.
// It serves fixture data so the client flow can be exercised end to end
// without a device or the real backend.
package main

import (
	"fmt"
	"log"
	"time"

	"skysunny/internal/config"
	"skysunny/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadEnv()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("HOSTSIM_ALLOW_ORIGIN", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/user/order/completed", completedOrder)
	app.Post("/user/order/update", updateOrder)
	app.Get("/user/usable/coupons", usableCoupons)
	app.Get("/user/qr-code/:aggregateId", qrCode)
	app.Post("/bridge/:action", bridgeReply)

	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "3000")))
}

func completedOrder(c *fiber.Ctx) error {
	orderNumber := c.Query("orderNumber")
	if orderNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    400,
			"message": "orderNumber is required",
		})
	}
	return c.JSON(fiber.Map{
		"code": 100,
		"result": models.Receipt{
			OrderNumber:   orderNumber,
			StoreName:     "시작 스터디카페 인천 송도점",
			PassType:      models.PassCash,
			ProductInfo:   "50,000 캐시권",
			PaymentAmount: 45000,
			ValidDays:     "1개월",
			UsageInfo:     "24.07.01 14:00~16:30",
			PaidAt:        time.Now().Format("2006-01-02 15:04:05"),
			CouponAmount:  5000,
		},
	})
}

func updateOrder(c *fiber.Ctx) error {
	var update models.OrderUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    400,
			"message": "invalid update payload",
		})
	}
	log.Printf("hostsim: order update for %s (coupon=%s final=%d)",
		update.OrderNumber, update.CouponID, update.FinalAmount)
	return c.JSON(fiber.Map{"code": 100, "message": "ok"})
}

func usableCoupons(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"code": 100,
		"result": []models.Coupon{
			{
				ID:        "1",
				Code:      "DFRM-J8NN-6YLY-FKSD",
				Title:     "수험생 특별 할인 쿠폰",
				Store:     "시작 스터디카페 인천 송도점",
				Amount:    5000,
				MinUse:    10000,
				ValidDays: 10,
				Type:      models.CouponUsable,
			},
			{
				ID:        "2",
				Code:      "EXPD-1234-5678-ABCD",
				Title:     "만료된 쿠폰",
				Store:     "시작 스터디카페 인천 송도점",
				Amount:    3000,
				MinUse:    5000,
				ValidDays: -1,
				Type:      models.CouponExpired,
			},
		},
	})
}

// qrCode answers with the snake_case field variant on purpose so the
// client's alias normalization gets exercised.
func qrCode(c *fiber.Ctx) error {
	aggregateID, err := c.ParamsInt("aggregateId")
	if err != nil || aggregateID <= 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"code":    404,
			"message": "unknown aggregate id",
		})
	}
	return c.JSON(fiber.Map{
		"code": 100,
		"result": fiber.Map{
			"seat_number":    "A-12",
			"wifi_ssid":      "SKYSUNNY_5G",
			"wifi_pw":        "sunny1234",
			"doorPassword":   "2580#",
			"qr_image_url":   fmt.Sprintf("https://skysunny-api.mayoube.co.kr/file/%d", aggregateID),
			"store_name":     "시작 스터디카페 인천 송도점",
			"pass_type":      models.PassFree,
			"product_name":   "기간정기권 4주",
			"usage_info":     "24.07.01 ~ 24.07.28",
			"expire_text":    "D-21",
			"remaining_info": "21일 남음",
			"order_id":       fmt.Sprintf("SS-%d", aggregateID),
			"pass_id":        aggregateID,
			"aggregate_id":   aggregateID,
			"expires_in":     180,
		},
	})
}

// bridgeReply simulates the native host's answer to a bridge request. A
// browser test page can POST the request payload here and dispatch the JSON
// reply on its local feed.
func bridgeReply(c *fiber.Ctx) error {
	action := c.Params("action")
	switch action {
	case "REQUEST_DRAFT":
		return c.JSON(models.BridgeReply{
			Source: "skysunny",
			Action: action,
			OK:     true,
			Data: map[string]interface{}{
				"orderNumber":   fmt.Sprintf("SS-%d", time.Now().Unix()),
				"amount":        45000,
				"tossClientKey": "test_ck_D5GePWvyJnrK0W0k6q8gLzN97Eoq",
			},
		})
	case "REQUEST_QR_CODE_ID":
		return c.JSON(models.BridgeReply{
			Source: "skysunny",
			Action: action,
			OK:     true,
			Data:   map[string]interface{}{"aggregateId": 1001},
		})
	default:
		return c.JSON(models.BridgeReply{
			Source: "skysunny",
			Action: action,
			OK:     false,
			Error:  "unsupported action",
		})
	}
}
