package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/freelanceflow/marketplace-api/internal/core/domain"
	"github.com/freelanceflow/marketplace-api/internal/core/ports"
)

// TaskService implements task CRUD and the claim workflow.
type TaskService struct {
	tasks      ports.TaskRepository
	projects   ports.ProjectRepository
	dispatcher ports.NotificationDispatcher
	logger     zerolog.Logger
}

// NewTaskService builds a TaskService. dispatcher may be nil, in which case
// claims do not emit notifications.
func NewTaskService(tasks ports.TaskRepository, projects ports.ProjectRepository, dispatcher ports.NotificationDispatcher, logger zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, projects: projects, dispatcher: dispatcher, logger: logger}
}

// Create adds a task to one of the actor's projects.
func (s *TaskService) Create(ctx context.Context, actor *domain.User, input ports.CreateTaskInput) (*domain.Task, error) {
	project, err := s.projects.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if !project.OwnedBy(actor.ID) {
		return nil, domain.ErrForbidden
	}

	skills := input.RequiredSkills
	if skills == nil {
		skills = []string{}
	}

	now := time.Now().UTC()
	task := &domain.Task{
		ID:                       uuid.New().String(),
		ProjectID:                input.ProjectID,
		Title:                    input.Title,
		Description:              input.Description,
		Weight:                   input.Weight,
		Payout:                   input.Payout,
		Deadline:                 input.Deadline,
		PricingType:              input.PricingType,
		HourlyRate:               input.HourlyRate,
		EstimatedHours:           input.EstimatedHours,
		RequiredSkills:           skills,
		AutoAssign:               input.AutoAssign,
		ApplicationWindowMinutes: input.ApplicationWindowMinutes,
		Status:                   domain.TaskOpen,
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		s.logger.Error().Err(err).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Str("task_id", task.ID).Str("project_id", task.ProjectID).Msg("task created")
	return task, nil
}

// List returns tasks visible to the actor. Clients are scoped to tasks from
// their own projects, workers to the open unassigned pool.
func (s *TaskService) List(ctx context.Context, actor *domain.User, input ports.ListTasksInput) ([]*domain.Task, error) {
	filter := ports.ListTasksFilter{
		ProjectID: input.ProjectID,
		Status:    input.Status,
		Skip:      input.Skip,
		Limit:     input.Limit,
	}
	if actor.IsClient() {
		filter.ClientID = actor.ID
	} else if actor.IsWorker() {
		filter.OpenUnassigned = true
	}
	return s.tasks.List(ctx, filter)
}

// ListAssigned returns every task currently assigned to the acting worker.
func (s *TaskService) ListAssigned(ctx context.Context, actor *domain.User) ([]*domain.Task, error) {
	if !actor.IsWorker() {
		return nil, domain.ErrForbidden
	}
	return s.tasks.List(ctx, ports.ListTasksFilter{AssigneeID: actor.ID})
}

// Get fetches a task by id. Clients must own the parent project; workers must
// be the assignee unless the task is still open.
func (s *TaskService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.IsClient() {
		if owned, err := s.ownsProject(ctx, actor, task.ProjectID); err != nil {
			return nil, err
		} else if !owned {
			return nil, domain.ErrForbidden
		}
	} else if actor.IsWorker() && !task.AssignedTo(actor.ID) && task.Status != domain.TaskOpen {
		return nil, domain.ErrForbidden
	}

	return task, nil
}

// Update applies patch to a task. The owning client may always update; a
// worker may only update tasks assigned to them.
func (s *TaskService) Update(ctx context.Context, actor *domain.User, id string, patch ports.TaskPatch) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.IsClient() {
		if owned, err := s.ownsProject(ctx, actor, task.ProjectID); err != nil {
			return nil, err
		} else if !owned {
			return nil, domain.ErrForbidden
		}
	} else if actor.IsWorker() && !task.AssignedTo(actor.ID) {
		return nil, domain.ErrForbidden
	}

	mergeTaskPatch(task, patch)
	task.UpdatedAt = time.Now().UTC()

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes a task. Only the owner of the parent project may delete it.
func (s *TaskService) Delete(ctx context.Context, actor *domain.User, id string) error {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return err
	}

	owned, err := s.ownsProject(ctx, actor, task.ProjectID)
	if err != nil {
		return err
	}
	if !owned {
		return domain.ErrForbidden
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("task_id", id).Msg("task deleted")
	return nil
}

// Claim assigns an open task to the acting worker. The assignment is a
// conditional update in the repository, so two concurrent claims cannot both
// succeed. The project owner is notified asynchronously; delivery problems
// never fail the claim.
func (s *TaskService) Claim(ctx context.Context, actor *domain.User, id string) (*domain.Task, error) {
	if !actor.IsWorker() {
		return nil, domain.ErrForbidden
	}

	task, err := s.tasks.Claim(ctx, id, actor.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("task_id", task.ID).Str("assignee_id", actor.ID).Msg("task claimed")
	s.notifyClaim(ctx, actor, task)

	return task, nil
}

func (s *TaskService) notifyClaim(ctx context.Context, actor *domain.User, task *domain.Task) {
	if s.dispatcher == nil {
		return
	}

	project, err := s.projects.FindByID(ctx, task.ProjectID)
	if err != nil {
		s.logger.Warn().Err(err).Str("task_id", task.ID).Msg("skipping claim notification")
		return
	}

	s.dispatcher.Enqueue(ports.NotificationInput{
		UserID:  project.ClientID,
		Title:   "Task claimed",
		Message: fmt.Sprintf("%s claimed your task %q", actor.Name, task.Title),
		Type:    string(domain.NotificationInfo),
	})
}

func (s *TaskService) ownsProject(ctx context.Context, actor *domain.User, projectID string) (bool, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return false, err
	}
	return project.OwnedBy(actor.ID), nil
}

// mergeTaskPatch copies the provided fields onto task, keeping the updatable
// set an explicit whitelist. ProjectID and ApplicationWindowMinutes are fixed
// at creation and deliberately absent.
func mergeTaskPatch(task *domain.Task, patch ports.TaskPatch) {
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Weight != nil {
		task.Weight = *patch.Weight
	}
	if patch.Payout != nil {
		task.Payout = *patch.Payout
	}
	if patch.Deadline != nil {
		task.Deadline = patch.Deadline
	}
	if patch.Status != nil {
		task.Status = domain.TaskStatus(*patch.Status)
	}
	if patch.AssigneeID != nil {
		task.AssigneeID = patch.AssigneeID
	}
	if patch.PricingType != nil {
		task.PricingType = *patch.PricingType
	}
	if patch.HourlyRate != nil {
		task.HourlyRate = patch.HourlyRate
	}
	if patch.EstimatedHours != nil {
		task.EstimatedHours = patch.EstimatedHours
	}
	if patch.RequiredSkills != nil {
		task.RequiredSkills = *patch.RequiredSkills
	}
	if patch.AutoAssign != nil {
		task.AutoAssign = *patch.AutoAssign
	}
}
