package handlers

import (
	"net/http"

	"listing-pricer/internal/models"

	"github.com/gin-gonic/gin"
)

type SchemaHandler struct {
	schema *models.FeatureSchema
}

func NewSchemaHandler(schema *models.FeatureSchema) *SchemaHandler {
	return &SchemaHandler{schema: schema}
}

// GetSchema godoc
// @Summary Show the feature schema the model expects
// @Tags Schema
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.SchemaResponse
// @Router /schema [get]
func (h *SchemaHandler) GetSchema(c *gin.Context) {
	c.JSON(http.StatusOK, models.SchemaResponse{
		Version: h.schema.Version(),
		Columns: h.schema.Columns(),
		Total:   h.schema.Len(),
	})
}
