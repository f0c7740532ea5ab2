package toggle_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TMS-InventoryService/internal/api/handlers"
	"github.com/m04kA/TMS-InventoryService/internal/domain"
	inventoryService "github.com/m04kA/TMS-InventoryService/internal/service/inventory"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidPackageRef  = "invalid package reference"
	msgInvalidTime        = "invalid time, expected HH:MM"
	msgSlotNotFound       = "slot not found"
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

// Handle PATCH /api/v1/packages/{packageType}/{packageId}/slots/availability
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

	var req ToggleSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /slots/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slotTime, err := req.ParseTime()
	if err != nil {
		h.logger.Warn("PATCH /slots/availability - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	key := domain.SlotKey{PackageType: packageType, PackageID: packageID, Date: req.Date}

	slot, err := h.inventory.ToggleManualAvailability(r.Context(), key, slotTime, req.Available)
	if err != nil {
		switch {
		case errors.Is(err, inventoryService.ErrSheetNotFound), errors.Is(err, inventoryService.ErrSlotNotFound):
			h.logger.Warn("PATCH /slots/availability - Slot not found: package=%s/%d, date=%s, time=%s",
				packageType, packageID, req.Date, req.Time)
			handlers.RespondNotFound(w, msgSlotNotFound)

		default:
			h.logger.Error("PATCH /slots/availability - Failed to toggle slot: package=%s/%d, error=%v",
				packageType, packageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /slots/availability - Slot toggled: package=%s/%d, date=%s, time=%s, available=%t",
		packageType, packageID, req.Date, req.Time, req.Available)
	handlers.RespondJSON(w, http.StatusOK, FromDomainSlot(slot))
}
