package delete_slots

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TMS-InventoryService/internal/api/handlers"
	"github.com/m04kA/TMS-InventoryService/internal/domain"
)

const msgInvalidPackageRef = "invalid package reference"

// DeleteResponse результат удаления инвентаря пакета
type DeleteResponse struct {
	DeletedSheets int64 `json:"deletedSheets"`
}

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

// Handle DELETE /api/v1/packages/{packageType}/{packageId}/slots
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

	// Удаление несуществующего инвентаря - не ошибка: пакет могли удалить
	// из каталога до первой генерации слотов
	deleted, err := h.inventory.DeleteAll(r.Context(), domain.PackageRef{Type: packageType, ID: packageID})
	if err != nil {
		h.logger.Error("DELETE /slots - Failed to delete inventory: package=%s/%d, error=%v",
			packageType, packageID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /slots - Inventory deleted: package=%s/%d, sheets=%d", packageType, packageID, deleted)
	handlers.RespondJSON(w, http.StatusOK, &DeleteResponse{DeletedSheets: deleted})
}
