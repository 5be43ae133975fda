package handler

import (
	"github.com/freelanceflow/marketplace-api/internal/core/domain"
	"github.com/freelanceflow/marketplace-api/internal/core/ports"
)

func toCreateProjectInput(req createProjectRequest) ports.CreateProjectInput {
	return ports.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Tags:        req.Tags,
	}
}

func toProjectPatch(req updateProjectRequest) ports.ProjectPatch {
	return ports.ProjectPatch{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Budget:      req.Budget,
		Status:      req.Status,
	}
}

func toProjectResponse(p *domain.Project) projectResponse {
	return projectResponse{
		ID:          p.ID,
		ClientID:    p.ClientID,
		Title:       p.Title,
		Description: p.Description,
		Tags:        p.Tags,
		Budget:      p.Budget,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt.UTC(),
		UpdatedAt:   p.UpdatedAt.UTC(),
	}
}

func toProjectResponses(projects []*domain.Project) []projectResponse {
	out := make([]projectResponse, len(projects))
	for i, p := range projects {
		out[i] = toProjectResponse(p)
	}
	return out
}

func toProjectDetailResponse(d *ports.ProjectDetail) projectDetailResponse {
	return projectDetailResponse{
		projectResponse: toProjectResponse(d.Project),
		Tasks:           toTaskResponses(d.Tasks),
	}
}
