package http

import (
	"foodtruck/internal/generated/servers"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// SwaggerInfo describes the API document served under /swagger.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Title:            "Food truck orders",
	Description:      "Order intake, kitchen workflow and ratings for a food truck.",
	InfoInstanceName: swag.Name,
	SwaggerTemplate:  string(servers.RawSpec()),
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// RegisterSwagger mounts the documentation UI and doc.json.
func RegisterSwagger(e *echo.Echo) {
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
