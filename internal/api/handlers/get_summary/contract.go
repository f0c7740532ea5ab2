package get_summary

import (
	"context"

	"github.com/m04kA/TMS-InventoryService/internal/service/inventory/models"
)

type InventoryService interface {
	GetSummary(ctx context.Context, req *models.GetSummaryRequest) (*models.SummaryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
