package reporting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mamadbah2/henhouse/internal/domain/models"
)

// FormatStatus renders a compact text view of the farm for chat and terminal clients.
func FormatStatus(s models.GameState) string {
	var b strings.Builder

	switch {
	case s.GameOver:
		b.WriteString("Game over: every chicken died.\n")
	case s.GameEnded:
		b.WriteString("Game finished.\n")
	case !s.GameStarted:
		b.WriteString("Game not started. Send /start when ready.\n")
	}

	fmt.Fprintf(&b, "Money: %d | Time left: %s\n", s.Money, FormatClock(s.TimeRemaining))
	fmt.Fprintf(&b, "Eggs in basket: %d (worth %d)\n", len(s.Eggs), s.UnsoldEggValue())

	if len(s.Chickens) == 0 {
		b.WriteString("No chickens yet.")
	} else {
		b.WriteString("Chickens:\n")
		for i, c := range s.Chickens {
			b.WriteString(formatChicken(i+1, c))
			b.WriteString("\n")
		}
	}

	if inv := formatInventory(s.Inventory); inv != "" {
		b.WriteString("\nFood: ")
		b.WriteString(inv)
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatClock renders seconds as m:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func formatChicken(pos int, c models.Chicken) string {
	info, _ := models.LookupBreed(c.Breed)
	name := info.DisplayName
	if name == "" {
		name = string(c.Breed)
	}

	if c.IsDead {
		return fmt.Sprintf("%d. %s (dead)", pos, name)
	}

	line := fmt.Sprintf("%d. %s, %s, hunger %.0f%%, quality %.1f (egg worth %d)",
		pos, name, models.LevelName(c.Level), c.Hunger, c.EggQuality, models.EggPriceFor(c.EggQuality))

	switch {
	case c.HasEgg:
		line += ", egg ready"
	case c.Level < models.MaxLevel:
		line += fmt.Sprintf(", growing %.0f%%", c.GrowthProgress)
	default:
		line += fmt.Sprintf(", laying %.0f%%", c.EggProgress)
	}
	return line
}

func formatInventory(inv models.Inventory) string {
	ids := make([]string, 0, len(inv))
	for id, n := range inv {
		if n > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%s x%d", id, inv[id]))
	}
	return strings.Join(parts, ", ")
}
