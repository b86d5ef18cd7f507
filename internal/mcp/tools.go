package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolListWorkouts = mcp.NewTool("list_workouts",
	mcp.WithDescription("List every logged workout in the order it was added, with its id, name and duration in minutes, plus the total duration."),
)

var toolGetTotalDuration = mcp.NewTool("get_total_duration",
	mcp.WithDescription("Total minutes across all logged workouts. Zero when nothing is logged."),
)

var toolAddWorkout = mcp.NewTool("add_workout",
	mcp.WithDescription("Log a workout. Duration is a whole number of minutes greater than zero."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Workout name (e.g. 'Push-ups', 'Running')")),
	mcp.WithString("duration", mcp.Required(), mcp.Description("Duration in whole minutes, e.g. '30'")),
)

var toolResetWorkouts = mcp.NewTool("reset_workouts",
	mcp.WithDescription("Delete every logged workout. Ids start again at 1 afterwards."),
)

// --- Tool handlers ---

func (h *handlers) listWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := h.ds.ListWorkouts(ctx)
	if err != nil {
		h.log.Error("mcp list_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(resp)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTotalDuration(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := h.ds.ListWorkouts(ctx)
	if err != nil {
		h.log.Error("mcp get_total_duration", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]int{
		"total_duration": resp.TotalDuration,
		"workouts":       len(resp.Workouts),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) addWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// Missing arguments fall through as "" so the store reports its own message.
	name := strings.TrimSpace(req.GetString("name", ""))
	duration := argText(req, "duration")

	msg, err := h.ds.AddWorkout(ctx, name, duration)
	if err != nil {
		h.log.Warn("mcp add_workout", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(msg), nil
}

func (h *handlers) resetWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	msg, err := h.ds.ResetWorkouts(ctx)
	if err != nil {
		h.log.Error("mcp reset_workouts", "error", err)
		return mcp.NewToolResultError("reset failed: " + err.Error()), nil
	}
	return mcp.NewToolResultText(msg), nil
}

// argText returns an argument as text. Clients sometimes send numbers where
// the schema asks for a string, so non-string values use their printed form.
func argText(req mcp.CallToolRequest, key string) string {
	switch v := req.GetArguments()[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
