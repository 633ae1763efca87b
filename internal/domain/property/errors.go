package property

import (
	"fmt"

	"github.com/estateflow/backend/internal/domain/shared"
)

func invalidStatusError(raw string) *shared.DomainError {
	return shared.NewDomainError(shared.ErrInvalidStatus.Code, fmt.Sprintf("Invalid unit status: %q", raw))
}

// ErrUnitNotFound is returned when a unit does not resolve within the caller's tenant
var ErrUnitNotFound = shared.NewDomainError(shared.ErrNotFound.Code, "Unit not found")

// ErrPropertyNotFound is returned when a property does not resolve within the caller's tenant
var ErrPropertyNotFound = shared.NewDomainError(shared.ErrNotFound.Code, "Property not found")
