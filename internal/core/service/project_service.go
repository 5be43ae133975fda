package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/freelanceflow/marketplace-api/internal/core/domain"
	"github.com/freelanceflow/marketplace-api/internal/core/ports"
)

// ProjectService implements project CRUD with ownership enforcement.
type ProjectService struct {
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
	logger   zerolog.Logger
}

func NewProjectService(projects ports.ProjectRepository, tasks ports.TaskRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{projects: projects, tasks: tasks, logger: logger}
}

func (s *ProjectService) Create(ctx context.Context, actor *domain.User, input ports.CreateProjectInput) (*domain.Project, error) {
	if !actor.IsClient() {
		return nil, domain.ErrForbidden
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now().UTC()
	project := &domain.Project{
		ID:          uuid.New().String(),
		ClientID:    actor.ID,
		Title:       input.Title,
		Description: input.Description,
		Tags:        tags,
		Budget:      input.Budget,
		Status:      domain.ProjectOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.projects.Create(ctx, project); err != nil {
		s.logger.Error().Err(err).Msg("failed to create project")
		return nil, err
	}

	s.logger.Info().Str("project_id", project.ID).Str("client_id", actor.ID).Msg("project created")
	return project, nil
}

// List returns the actor's own projects for clients and open projects for
// workers.
func (s *ProjectService) List(ctx context.Context, actor *domain.User, skip, limit int) ([]*domain.Project, error) {
	filter := ports.ListProjectsFilter{Skip: skip, Limit: limit}
	if actor.IsClient() {
		filter.ClientID = actor.ID
	} else {
		filter.Status = string(domain.ProjectOpen)
	}
	return s.projects.List(ctx, filter)
}

// Get fetches a project and its tasks by id. Clients may only read their own
// projects; workers may read any project they can address by id.
func (s *ProjectService) Get(ctx context.Context, actor *domain.User, id string) (*ports.ProjectDetail, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.IsClient() && !project.OwnedBy(actor.ID) {
		return nil, domain.ErrForbidden
	}

	tasks, err := s.tasks.List(ctx, ports.ListTasksFilter{ProjectID: id})
	if err != nil {
		return nil, err
	}
	return &ports.ProjectDetail{Project: project, Tasks: tasks}, nil
}

func (s *ProjectService) Update(ctx context.Context, actor *domain.User, id string, patch ports.ProjectPatch) (*domain.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !project.OwnedBy(actor.ID) {
		return nil, domain.ErrForbidden
	}

	mergeProjectPatch(project, patch)
	project.UpdatedAt = time.Now().UTC()

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes the project and every task under it.
func (s *ProjectService) Delete(ctx context.Context, actor *domain.User, id string) error {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !project.OwnedBy(actor.ID) {
		return domain.ErrForbidden
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("project_id", id).Str("client_id", actor.ID).Msg("project deleted")
	return nil
}

// mergeProjectPatch copies the provided fields onto project, keeping the
// updatable set an explicit whitelist.
func mergeProjectPatch(project *domain.Project, patch ports.ProjectPatch) {
	if patch.Title != nil {
		project.Title = *patch.Title
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.Tags != nil {
		project.Tags = *patch.Tags
	}
	if patch.Budget != nil {
		project.Budget = *patch.Budget
	}
	if patch.Status != nil {
		project.Status = domain.ProjectStatus(*patch.Status)
	}
}
