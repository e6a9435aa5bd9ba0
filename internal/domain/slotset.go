package domain

import (
	"regexp"
	"strings"
)

// Slot identifiers are textual start-end pairs ("06:00-07:00") and a booking
// stores its whole reserved set as one delimiter-joined string. Matching a
// single slot against that string must be anchored to field boundaries:
// "06:00-07:00" is not contained in "16:00-07:00" and not in
// "06:00-07:00-extra". The same escaped pattern is used by the Go matcher and
// by the PostgreSQL `~` operator in the conflict detector, so both sides of
// the contract agree on what "contains" means.

// slotIDRe форма идентификатора слота: HH:MM-HH:MM
var slotIDRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]-([01][0-9]|2[0-3]):[0-5][0-9]$`)

// SplitSlotSet разбирает составную строку слотов: режет по разделителю,
// обрезает пробелы, отбрасывает пустые элементы. Повреждённые строки не
// считаются ошибкой - из них извлекается всё, что удалось разобрать.
func SplitSlotSet(set string) []string {
	parts := strings.Split(set, SlotDelimiter)
	slots := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		slots = append(slots, p)
	}
	return slots
}

// JoinSlotSet собирает составную строку из списка идентификаторов слотов
func JoinSlotSet(slots []string) string {
	return strings.Join(slots, SlotDelimiter)
}

// SlotPattern строит POSIX-шаблон для поиска слота внутри составной строки.
// Якоря: начало строки или предшествующий разделитель слева, конец строки или
// следующий разделитель справа. Метасимволы идентификатора экранируются.
// Шаблон совместим и с пакетом regexp, и с оператором `~` PostgreSQL.
func SlotPattern(slot string) string {
	return "(^|" + SlotDelimiter + ")[[:space:]]*" +
		regexp.QuoteMeta(slot) +
		"[[:space:]]*(" + SlotDelimiter + "|$)"
}

// SlotSetContains проверяет, содержит ли составная строка указанный слот.
// Повреждённая строка даёт ноль совпадений, а не ошибку: битая legacy-запись
// не должна блокировать проверку остальных бронирований.
func SlotSetContains(set, slot string) bool {
	re, err := regexp.Compile(SlotPattern(slot))
	if err != nil {
		return false
	}
	return re.MatchString(set)
}

// ValidateSlotID проверяет форму идентификатора слота (HH:MM-HH:MM)
func ValidateSlotID(slot string) bool {
	return slotIDRe.MatchString(slot)
}

// HasDuplicateSlots проверяет инвариант составного набора:
// внутри одного бронирования идентификатор слота не повторяется
func HasDuplicateSlots(slots []string) bool {
	seen := make(map[string]struct{}, len(slots))
	for _, s := range slots {
		if _, ok := seen[s]; ok {
			return true
		}
		seen[s] = struct{}{}
	}
	return false
}
