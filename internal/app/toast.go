package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const toastDuration = 3 * time.Second

type toastLevel int

const (
	toastLevelInfo toastLevel = iota
	toastLevelWarning
	toastLevelError
)

type toast struct {
	text  string
	level toastLevel
	until time.Time
}

func (t *toast) show(level toastLevel, message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	t.text = message
	t.level = level
	t.until = time.Now().Add(toastDuration)
}

func (t *toast) info(message string)    { t.show(toastLevelInfo, message) }
func (t *toast) warning(message string) { t.show(toastLevelWarning, message) }
func (t *toast) error(message string)   { t.show(toastLevelError, message) }

func (t *toast) clear() {
	t.text = ""
	t.level = toastLevelInfo
	t.until = time.Time{}
}

func (t *toast) active(at time.Time) bool {
	if strings.TrimSpace(t.text) == "" {
		return false
	}
	if t.until.IsZero() {
		return true
	}
	if at.IsZero() {
		at = time.Now()
	}
	return at.Before(t.until)
}

func (t *toast) line(width int) string {
	if !t.active(time.Now()) || width <= 0 {
		return ""
	}
	maxTextWidth := width - 4
	if maxTextWidth < 1 {
		maxTextWidth = 1
	}
	text := truncateToWidth(t.text, maxTextWidth)
	pill := t.style().Render(" " + text + " ")
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, pill)
}

func (t *toast) style() lipgloss.Style {
	switch t.level {
	case toastLevelWarning:
		return toastWarningStyle
	case toastLevelError:
		return toastErrorStyle
	default:
		return toastInfoStyle
	}
}
