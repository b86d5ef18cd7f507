// Package ui formats workouts for terminal output.
package ui

import (
	"fmt"
	"strings"

	"github.com/claude/aceest/internal/models"
	"github.com/fatih/color"
)

// FormatWorkout formats one workout as a single line.
func FormatWorkout(w models.WorkoutRecord) string {
	return fmt.Sprintf("%s %s %s",
		color.New(color.Faint).Sprintf("#%-3d", w.ID),
		color.CyanString(w.Workout),
		color.New(color.Faint).Sprint(FormatMinutes(w.Duration)))
}

// FormatWorkouts formats the full list followed by the total.
func FormatWorkouts(resp models.WorkoutsResponse) string {
	if len(resp.Workouts) == 0 {
		return color.New(color.Faint).Sprint("No workouts logged yet. Use 'aceestctl add' to log one.")
	}
	var b strings.Builder
	for _, w := range resp.Workouts {
		b.WriteString(FormatWorkout(w))
		b.WriteByte('\n')
	}
	b.WriteString(FormatTotal(resp.TotalDuration))
	return b.String()
}

// FormatTotal formats the total training time.
func FormatTotal(minutes int) string {
	return fmt.Sprintf("%s %s", color.New(color.Bold).Sprint("Total:"), FormatMinutes(minutes))
}

// FormatMinutes renders a duration in minutes, adding hours past 60.
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%d min (%dh)", minutes, h)
	}
	return fmt.Sprintf("%d min (%dh %dm)", minutes, h, m)
}

// Success formats a confirmation message.
func Success(msg string) string {
	return color.GreenString("✓ ") + msg
}

// Failure formats an error message.
func Failure(msg string) string {
	return color.RedString("✗ ") + msg
}
