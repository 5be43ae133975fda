package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freelanceflow/marketplace-api/internal/api/metrics"
	"github.com/freelanceflow/marketplace-api/internal/core/domain"
	"github.com/freelanceflow/marketplace-api/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations, including the
// guarded claim transition.
type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// Create adds a task to one of the acting client's projects.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      200   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	task, err := h.taskService.Create(c.Request().Context(), actor, toCreateTaskInput(req))
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "Project not found"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.JSON(http.StatusForbidden, errorResponse{Error: "Not authorized to create tasks for this project"})
		}
		return err
	}

	metrics.TasksCreatedTotal.WithLabelValues(task.PricingType).Inc()
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// List returns the tasks visible to the actor: clients see tasks from their
// own projects, workers see the open unassigned pool.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  query     string  false  "Restrict to one project"
// @Param        status      query     string  false  "Restrict to one status"
// @Param        skip        query     int     false  "Offset into the result set"  default(0)
// @Param        limit       query     int     false  "Maximum number of results"   default(100)
// @Success      200         {array}   taskResponse
// @Failure      401         {object}  errorResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	skip, limit := pagination(c)

	tasks, err := h.taskService.List(c.Request().Context(), actor, ports.ListTasksInput{
		ProjectID: c.QueryParam("project_id"),
		Status:    c.QueryParam("status"),
		Skip:      skip,
		Limit:     limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponses(tasks))
}

// MyTasks returns every task assigned to the acting worker.
//
// @Summary      List own assigned tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   taskResponse
// @Failure      403  {object}  errorResponse
// @Router       /tasks/my-tasks [get]
func (h *TaskHandler) MyTasks(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.ListAssigned(c.Request().Context(), actor)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return c.JSON(http.StatusForbidden, errorResponse{Error: "Only workers can view assigned tasks"})
		}
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponses(tasks))
}

// Get returns one task by id.
//
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        task_id  path      string  true  "Task id"
// @Success      200      {object}  taskResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /tasks/{task_id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.Get(c.Request().Context(), actor, c.Param("task_id"))
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "Task not found"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.JSON(http.StatusForbidden, errorResponse{Error: "Not authorized to view this task"})
		}
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Update applies a partial patch to a task. The owning client may change any
// field, the assigned worker may push status and content changes.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        task_id  path      string             true  "Task id"
// @Param        body     body      updateTaskRequest  true  "Fields to change"
// @Success      200      {object}  taskResponse
// @Failure      400      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /tasks/{task_id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	task, err := h.taskService.Update(c.Request().Context(), actor, c.Param("task_id"), toTaskPatch(req))
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "Task not found"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.JSON(http.StatusForbidden, errorResponse{Error: "Not authorized to update this task"})
		}
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Claim assigns an open, unassigned task to the acting worker. Exactly one of
// any set of concurrent claims succeeds.
//
// @Summary      Claim a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        task_id  path      string  true  "Task id"
// @Success      200      {object}  taskResponse
// @Failure      400      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /tasks/{task_id}/claim [post]
func (h *TaskHandler) Claim(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.Claim(c.Request().Context(), actor, c.Param("task_id"))
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return c.JSON(http.StatusForbidden, errorResponse{Error: "Only workers can claim tasks"})
		}
		if errors.Is(err, domain.ErrTaskNotFound) {
			metrics.TaskClaimsTotal.WithLabelValues("missing").Inc()
			return c.JSON(http.StatusNotFound, errorResponse{Error: "Task not found"})
		}
		if errors.Is(err, domain.ErrTaskNotAvailable) {
			metrics.TaskClaimsTotal.WithLabelValues("conflict").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "Task is not available for claiming"})
		}
		return err
	}

	metrics.TaskClaimsTotal.WithLabelValues("won").Inc()
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Delete removes a task. Only the owner of the parent project may do this.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        task_id  path      string  true  "Task id"
// @Success      200      {object}  messageResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /tasks/{task_id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.taskService.Delete(c.Request().Context(), actor, c.Param("task_id")); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "Task not found"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.JSON(http.StatusForbidden, errorResponse{Error: "Not authorized to delete this task"})
		}
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Task deleted successfully"})
}
