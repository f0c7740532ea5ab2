package check_availability

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/TMS-InventoryService/internal/domain"
	checkAvailability "github.com/m04kA/TMS-InventoryService/internal/usecase/check_availability"
	"github.com/m04kA/TMS-InventoryService/pkg/timeofday"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Available        bool   `json:"available"`
	AvailableSlots   int    `json:"availableSlots"`
	Reason           string `json:"reason,omitempty"`
	MinimumGroupSize int    `json:"minimumGroupSize,omitempty"`
}

// toUseCaseRequest собирает модель use case из параметров пути и query.
// Время принимается и в 24-часовом ("14:00"), и в 12-часовом ("2:00 PM")
// формате - Booking и витрина присылают разные.
func toUseCaseRequest(rawType, rawID, rawDate, rawTime, rawPersons string) (*checkAvailability.Request, error) {
	packageType, err := domain.ParsePackageType(rawType)
	if err != nil {
		return nil, err
	}

	packageID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid package id %q", rawID)
	}

	departureTime, err := timeofday.Parse(rawTime)
	if err != nil {
		return nil, fmt.Errorf("invalid time %q", rawTime)
	}

	persons, err := strconv.Atoi(rawPersons)
	if err != nil {
		return nil, fmt.Errorf("invalid persons %q", rawPersons)
	}

	return &checkAvailability.Request{
		PackageType: packageType,
		PackageID:   packageID,
		Date:        rawDate,
		Time:        departureTime,
		Persons:     persons,
		Now:         time.Now(),
	}, nil
}

// fromUseCaseResponse конвертирует ответ use case в HTTP response
func fromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		Available:        resp.Available,
		AvailableSlots:   resp.AvailableSlots,
		Reason:           resp.Reason,
		MinimumGroupSize: resp.MinimumGroupSize,
	}
}
