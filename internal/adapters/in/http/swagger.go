package http

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

var registerOnce sync.Once

type swaggerDoc struct {
	doc string
}

func (d swaggerDoc) ReadDoc() string { return d.doc }

// RegisterSwagger publishes the contract to swag and serves the UI under
// /swagger/. swag keeps a process-wide registry, so only the first document
// is published.
func RegisterSwagger(e *echo.Echo, swagger *openapi3.T) error {
	doc, err := json.Marshal(swagger)
	if err != nil {
		return fmt.Errorf("failed to encode openapi document: %w", err)
	}
	registerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{doc: string(doc)})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return nil
}
