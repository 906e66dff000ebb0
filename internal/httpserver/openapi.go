package httpserver

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"
)

//go:embed openapi.yaml
var openapiYAML []byte

var (
	openapiOnce sync.Once
	openapiDoc  *openapi3.T
	openapiErr  error
)

// OpenAPIDocument loads and validates the embedded API description.
func OpenAPIDocument(ctx context.Context) (*openapi3.T, error) {
	openapiOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(openapiYAML)
		if err != nil {
			openapiErr = fmt.Errorf("httpserver: load openapi: %w", err)
			return
		}
		if err := doc.Validate(ctx); err != nil {
			openapiErr = fmt.Errorf("httpserver: validate openapi: %w", err)
			return
		}
		openapiDoc = doc
	})
	return openapiDoc, openapiErr
}

func (s *Server) handleOpenAPI(c *gin.Context) {
	doc, err := OpenAPIDocument(c.Request.Context())
	if err != nil {
		s.writeError(c, "openapi", err)
		return
	}
	c.JSON(http.StatusOK, doc)
}
