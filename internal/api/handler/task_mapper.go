package handler

import (
	"github.com/freelanceflow/marketplace-api/internal/core/domain"
	"github.com/freelanceflow/marketplace-api/internal/core/ports"
)

func toCreateTaskInput(req createTaskRequest) ports.CreateTaskInput {
	input := ports.CreateTaskInput{
		ProjectID:                req.ProjectID,
		Title:                    req.Title,
		Description:              req.Description,
		Weight:                   1,
		Payout:                   req.Payout,
		Deadline:                 req.Deadline,
		PricingType:              domain.PricingFixed,
		HourlyRate:               req.HourlyRate,
		EstimatedHours:           req.EstimatedHours,
		RequiredSkills:           req.RequiredSkills,
		ApplicationWindowMinutes: 60,
	}
	if req.Weight != nil {
		input.Weight = *req.Weight
	}
	if req.PricingType != nil {
		input.PricingType = *req.PricingType
	}
	if req.AutoAssign != nil {
		input.AutoAssign = *req.AutoAssign
	}
	if req.ApplicationWindowMinutes != nil {
		input.ApplicationWindowMinutes = *req.ApplicationWindowMinutes
	}
	return input
}

func toTaskPatch(req updateTaskRequest) ports.TaskPatch {
	return ports.TaskPatch{
		Title:          req.Title,
		Description:    req.Description,
		Weight:         req.Weight,
		Payout:         req.Payout,
		Deadline:       req.Deadline,
		Status:         req.Status,
		AssigneeID:     req.AssigneeID,
		PricingType:    req.PricingType,
		HourlyRate:     req.HourlyRate,
		EstimatedHours: req.EstimatedHours,
		RequiredSkills: req.RequiredSkills,
		AutoAssign:     req.AutoAssign,
	}
}

func toTaskResponse(t *domain.Task) taskResponse {
	resp := taskResponse{
		ID:                       t.ID,
		ProjectID:                t.ProjectID,
		AssigneeID:               t.AssigneeID,
		Title:                    t.Title,
		Description:              t.Description,
		Weight:                   t.Weight,
		Payout:                   t.Payout,
		PricingType:              t.PricingType,
		HourlyRate:               t.HourlyRate,
		EstimatedHours:           t.EstimatedHours,
		RequiredSkills:           t.RequiredSkills,
		AutoAssign:               t.AutoAssign,
		ApplicationWindowMinutes: t.ApplicationWindowMinutes,
		Status:                   string(t.Status),
		CreatedAt:                t.CreatedAt.UTC(),
		UpdatedAt:                t.UpdatedAt.UTC(),
	}
	if t.Deadline != nil {
		deadline := t.Deadline.UTC()
		resp.Deadline = &deadline
	}
	return resp
}

func toTaskResponses(tasks []*domain.Task) []taskResponse {
	out := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = toTaskResponse(t)
	}
	return out
}
