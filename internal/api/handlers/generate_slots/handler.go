package generate_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TMS-InventoryService/internal/api/handlers"
	"github.com/m04kA/TMS-InventoryService/internal/domain"
	catalogClient "github.com/m04kA/TMS-InventoryService/internal/integrations/catalogservice"
)

const (
	msgInvalidPackageRef = "invalid package reference"
	msgPackageNotFound   = "package not found"
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

// Handle POST /api/v1/packages/{packageType}/{packageId}/slots/generate
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

	pkg, err := h.catalog.GetPackage(r.Context(), packageType, packageID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrPackageNotFound) {
			h.logger.Warn("POST /slots/generate - Package not found: %s/%d", packageType, packageID)
			handlers.RespondNotFound(w, msgPackageNotFound)
			return
		}
		h.logger.Error("POST /slots/generate - Failed to get package %s/%d: %v", packageType, packageID, err)
		handlers.RespondInternalError(w)
		return
	}

	created, err := h.inventory.EnsureHorizon(r.Context(), pkg)
	if err != nil {
		h.logger.Error("POST /slots/generate - Failed to ensure horizon: package=%s/%d, error=%v",
			packageType, packageID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /slots/generate - Horizon ensured: package=%s/%d, created=%d",
		packageType, packageID, created)
	handlers.RespondJSON(w, http.StatusOK, &GenerateResponse{CreatedSheets: created})
}
