package update

import (
	"fmt"
	"strings"
)

func formatDuration(totalSec int) string {
	if totalSec < 0 {
		totalSec = 0
	}
	min := totalSec / 60
	sec := totalSec % 60
	return fmt.Sprintf("%02d:%02d", min, sec)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (m Model) notifyUser(title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	if err := m.notifier.Notify(title, body); err != nil {
		m.logger.Warn("notify failed", "title", title, "err", err)
	}
}
