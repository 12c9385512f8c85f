package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/liftlog/internal/models"
)

// --- Tool definitions ---

var toolListWorkoutRecords = mcp.NewTool("list_workout_records",
	mcp.WithDescription("List all workout records, newest date first. Each record has record_date, exercise_type, weight, reps, sets (the set's ordinal within its session block) and estimated_1rm."),
	mcp.WithString("exercise", mcp.Description("Filter by exercise type"), mcp.Enum("bench_press", "deadlift", "squat")),
)

var toolGetWorkoutRecord = mcp.NewTool("get_workout_record",
	mcp.WithDescription("Fetch a single workout record by its ID."),
	mcp.WithNumber("id", mcp.Required(), mcp.Description("Record ID")),
)

var toolEstimate1RM = mcp.NewTool("estimate_1rm",
	mcp.WithDescription("Estimate a one-rep max from a weight/reps pair using the Epley formula round(weight * (1 + reps/30))."),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Load used for the set (must be positive)")),
	mcp.WithNumber("reps", mcp.Required(), mcp.Description("Repetitions completed (must be non-negative)")),
)

// --- Tool handlers ---

func (h *handlers) listWorkoutRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records, err := h.ds.ListRecords(ctx)
	if err != nil {
		h.log.Error("mcp list_workout_records", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	if exercise := req.GetString("exercise", ""); exercise != "" {
		filtered := records[:0:0]
		for _, r := range records {
			if r.ExerciseType == exercise {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}

	result, err := mcp.NewToolResultJSON(records)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkoutRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireFloat("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	record, err := h.ds.GetRecord(ctx, int64(id))
	if err != nil {
		h.log.Error("mcp get_workout_record", "id", int64(id), "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("record %d not found", int64(id))), nil
	}

	result, err := mcp.NewToolResultJSON(record)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) estimate1RM(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weight, err := req.RequireFloat("weight")
	if err != nil {
		return mcp.NewToolResultError("weight parameter is required"), nil
	}
	reps, err := req.RequireFloat("reps")
	if err != nil {
		return mcp.NewToolResultError("reps parameter is required"), nil
	}

	est, ok := models.Estimate1RM(int(weight), int(reps))
	if !ok {
		return mcp.NewToolResultError("estimate undefined: weight must be positive and reps non-negative"), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]int{"estimated_1rm": est})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
