package check_availability

import (
	"fmt"

	"github.com/m04kA/TMS-InventoryService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if _, err := domain.ParsePackageType(string(req.PackageType)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.PackageID <= 0 {
		return fmt.Errorf("%w: packageID must be positive", ErrInvalidInput)
	}

	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Persons <= 0 {
		return fmt.Errorf("%w: persons must be positive", ErrInvalidInput)
	}

	if req.Persons > domain.MaxPersonsPerOrder {
		return fmt.Errorf("%w: persons exceeds maximum of %d", ErrInvalidInput, domain.MaxPersonsPerOrder)
	}

	if req.Now.IsZero() {
		return fmt.Errorf("%w: now is required", ErrInvalidInput)
	}

	return nil
}
