package update_occupancy

import (
	"fmt"

	"github.com/m04kA/TMS-InventoryService/internal/domain"
)

// applyTransition применяет изменение занятости к слоту и сопровождающий
// переход минимального размера группы:
//
//   - добавление в пустой слот не-private пакета опускает минимум до 1:
//     отправление уже состоится, дальнейшие места продаются поштучно;
//   - освобождение последнего места возвращает минимум к актуальному
//     дефолту пакета независимо от его типа: слот снова "свежий", и если
//     админ успел поменять дефолт, пустой слот подхватывает новое значение;
//   - у private пакетов минимум не снижается из-за занятости.
//
// Превышение вместимости отклоняется целиком, без частичного зачисления.
// Освобождение большего числа мест, чем занято, упирается в ноль: повторная
// отмена одного и того же бронирования не должна уводить счётчик в минус.
func applyTransition(slot *domain.SlotRecord, pkg *domain.Package, direction domain.OccupancyDirection, persons int) error {
	switch direction {
	case domain.DirectionAdd:
		if slot.BookedCount+persons > slot.Capacity {
			return fmt.Errorf("%w: requested %d, available %d", ErrCapacityExceeded, persons, slot.AvailableSpots())
		}

		wasEmpty := slot.IsEmpty()
		slot.BookedCount += persons

		if wasEmpty && !pkg.IsPrivate {
			slot.MinimumGroupSize = domain.MinimumGroupSizeFloor
		}

	case domain.DirectionSubtract:
		wasOccupied := !slot.IsEmpty()

		slot.BookedCount -= persons
		if slot.BookedCount < 0 {
			slot.BookedCount = 0
		}

		if wasOccupied && slot.IsEmpty() {
			slot.MinimumGroupSize = pkg.MinimumPersonDefault
		}

	default:
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidInput, direction)
	}

	return nil
}
