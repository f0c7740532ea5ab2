package get_summary

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TMS-InventoryService/internal/api/handlers"
	"github.com/m04kA/TMS-InventoryService/internal/domain"
	inventoryService "github.com/m04kA/TMS-InventoryService/internal/service/inventory"
	"github.com/m04kA/TMS-InventoryService/internal/service/inventory/models"
)

const (
	msgInvalidPackageRef = "invalid package reference"
	msgInvalidRange      = "invalid date range, expected from and to as YYYY-MM-DD"
)

type Handler struct {
	inventory InventoryService
	logger    Logger
}

func NewHandler(inventory InventoryService, logger Logger) *Handler {
	return &Handler{
		inventory: inventory,
		logger:    logger,
	}
}

// Handle GET /api/v1/packages/{packageType}/{packageId}/slots/summary
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	query := r.URL.Query()

	packageType, err := domain.ParsePackageType(vars["packageType"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPackageRef)
		return
	}

	packageID, err := strconv.ParseInt(vars["packageId"], 10, 64)
	if err != nil || packageID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidPackageRef)
		return
	}

	result, err := h.inventory.GetSummary(r.Context(), &models.GetSummaryRequest{
		PackageType: packageType,
		PackageID:   packageID,
		FromDate:    query.Get("from"),
		ToDate:      query.Get("to"),
	})
	if err != nil {
		switch {
		case errors.Is(err, inventoryService.ErrInvalidRange):
			h.logger.Warn("GET /slots/summary - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /slots/summary - Failed to get summary: package=%s/%d, error=%v",
				packageType, packageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
