package domain

import (
	"fmt"

	"github.com/m04kA/TMS-InventoryService/pkg/timeofday"
)

// PackageType тип продаваемого пакета
type PackageType string

const (
	PackageTypeTour     PackageType = "tour"
	PackageTypeTransfer PackageType = "transfer"
)

// ParsePackageType валидирует строковое представление типа пакета
func ParsePackageType(s string) (PackageType, error) {
	switch PackageType(s) {
	case PackageTypeTour, PackageTypeTransfer:
		return PackageType(s), nil
	default:
		return "", fmt.Errorf("invalid package type %q", s)
	}
}

// PackageRef ссылка на пакет в каталоге
type PackageRef struct {
	Type PackageType
	ID   int64
}

// Package снимок пакета из каталога. Движок инвентаря читает каталог,
// но никогда не изменяет его.
type Package struct {
	Type                 PackageType
	ID                   int64
	Name                 string
	DepartureTimes       []timeofday.TimeOfDay
	CapacityPerSlot      int
	MinimumPersonDefault int
	IsPrivate            bool // приватные пакеты никогда не снижают минимальный размер группы
	IsActive             bool
}

// Ref возвращает ссылку на пакет
func (p *Package) Ref() PackageRef {
	return PackageRef{Type: p.Type, ID: p.ID}
}
