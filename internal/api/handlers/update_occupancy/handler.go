package update_occupancy

import (
	"errors"
	"net/http"

	"github.com/m04kA/TMS-InventoryService/internal/api/handlers"
	updateOccupancy "github.com/m04kA/TMS-InventoryService/internal/usecase/update_occupancy"
)

const (
	msgInvalidRequestBody  = "invalid request body"
	msgInvalidRequest      = "invalid request parameters"
	msgPackageNotFound     = "package not found"
	msgSlotNotFound        = "slot not found"
	msgCapacityExceeded    = "not enough available spots in the slot"
	msgConcurrencyConflict = "slot is busy, retry the request"
)

type Handler struct {
	useCase UpdateOccupancyUseCase
	logger  Logger
}

func NewHandler(useCase UpdateOccupancyUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/occupancy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateOccupancyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /occupancy - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /occupancy - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateOccupancy.ErrInvalidInput):
			h.logger.Warn("POST /occupancy - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, updateOccupancy.ErrPackageNotFound):
			h.logger.Warn("POST /occupancy - Package not found: %s/%d", req.PackageType, req.PackageID)
			handlers.RespondNotFound(w, msgPackageNotFound)

		case errors.Is(err, updateOccupancy.ErrSlotNotFound):
			h.logger.Warn("POST /occupancy - Slot not found: package=%s/%d, date=%s, time=%s",
				req.PackageType, req.PackageID, req.Date, req.Time)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, updateOccupancy.ErrCapacityExceeded):
			h.logger.Warn("POST /occupancy - Capacity exceeded: package=%s/%d, date=%s, time=%s, persons=%d",
				req.PackageType, req.PackageID, req.Date, req.Time, req.Persons)
			handlers.RespondError(w, http.StatusConflict, msgCapacityExceeded)

		case errors.Is(err, updateOccupancy.ErrConcurrencyConflict):
			h.logger.Warn("POST /occupancy - Concurrency conflict: package=%s/%d, date=%s, time=%s",
				req.PackageType, req.PackageID, req.Date, req.Time)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgConcurrencyConflict)

		default:
			h.logger.Error("POST /occupancy - Failed to update occupancy: package=%s/%d, error=%v",
				req.PackageType, req.PackageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /occupancy - Occupancy updated: package=%s/%d, date=%s, time=%s, booked=%d",
		req.PackageType, req.PackageID, req.Date, req.Time, result.BookedCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
