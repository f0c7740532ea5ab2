package check_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/TMS-InventoryService/internal/api/handlers"
	checkAvailability "github.com/m04kA/TMS-InventoryService/internal/usecase/check_availability"
)

const (
	msgInvalidRequest  = "invalid request parameters"
	msgPackageNotFound = "package not found"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/packages/{packageType}/{packageId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	query := r.URL.Query()

	useCaseReq, err := toUseCaseRequest(
		vars["packageType"],
		vars["packageId"],
		query.Get("date"),
		query.Get("time"),
		query.Get("persons"),
	)
	if err != nil {
		h.logger.Warn("GET /availability - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, checkAvailability.ErrPackageNotFound):
			h.logger.Warn("GET /availability - Package not found: %s/%d",
				useCaseReq.PackageType, useCaseReq.PackageID)
			handlers.RespondNotFound(w, msgPackageNotFound)

		default:
			h.logger.Error("GET /availability - Failed to check availability: package=%s/%d, error=%v",
				useCaseReq.PackageType, useCaseReq.PackageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Бизнес-отказы (cutoff, минимум группы, нехватка мест) - это 200 с
	// available=false: для клиента это штатный ответ, а не ошибка
	handlers.RespondJSON(w, http.StatusOK, fromUseCaseResponse(result))
}
