package resize_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TMS-InventoryService/internal/api/handlers"
	"github.com/m04kA/TMS-InventoryService/internal/domain"
	catalogClient "github.com/m04kA/TMS-InventoryService/internal/integrations/catalogservice"
	inventoryService "github.com/m04kA/TMS-InventoryService/internal/service/inventory"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidPackageRef  = "invalid package reference"
	msgInvalidSchedule    = "invalid departure schedule"
	msgPackageNotFound    = "package not found"
	msgPartialResize      = "resize partially completed, retry to finish"
)

type Handler struct {
	inventory InventoryService
	catalog   CatalogClient
	logger    Logger
}

func NewHandler(inventory InventoryService, catalog CatalogClient, logger Logger) *Handler {
	return &Handler{
		inventory: inventory,
		catalog:   catalog,
		logger:    logger,
	}
}

// Handle PUT /api/v1/packages/{packageType}/{packageId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

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

	var req ResizeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	newTimes, err := req.ParseTimes()
	if err != nil {
		h.logger.Warn("PUT /slots - Invalid schedule: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSchedule)
		return
	}

	pkg, err := h.catalog.GetPackage(r.Context(), packageType, packageID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrPackageNotFound) {
			h.logger.Warn("PUT /slots - Package not found: %s/%d", packageType, packageID)
			handlers.RespondNotFound(w, msgPackageNotFound)
			return
		}
		h.logger.Error("PUT /slots - Failed to get package %s/%d: %v", packageType, packageID, err)
		handlers.RespondInternalError(w)
		return
	}

	updated, err := h.inventory.Resize(r.Context(), pkg, newTimes, req.CapacityPerSlot)
	if err != nil {
		switch {
		case errors.Is(err, inventoryService.ErrInvalidInput):
			h.logger.Warn("PUT /slots - Invalid capacity: package=%s/%d, capacity=%d",
				packageType, packageID, req.CapacityPerSlot)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		case errors.Is(err, inventoryService.ErrPartialResize):
			h.logger.Error("PUT /slots - Partial resize: package=%s/%d, updated=%d, error=%v",
				packageType, packageID, updated, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgPartialResize)

		default:
			h.logger.Error("PUT /slots - Failed to resize: package=%s/%d, error=%v",
				packageType, packageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /slots - Resized: package=%s/%d, updated=%d sheets", packageType, packageID, updated)
	handlers.RespondJSON(w, http.StatusOK, &ResizeResponse{UpdatedSheets: updated})
}
