package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/freelanceflow/marketplace-api/internal/core/domain"
	"github.com/freelanceflow/marketplace-api/internal/core/ports"
)

type stubProjectService struct {
	createFn func(ctx context.Context, actor *domain.User, input ports.CreateProjectInput) (*domain.Project, error)
	listFn   func(ctx context.Context, actor *domain.User, skip, limit int) ([]*domain.Project, error)
	getFn    func(ctx context.Context, actor *domain.User, id string) (*ports.ProjectDetail, error)
	updateFn func(ctx context.Context, actor *domain.User, id string, patch ports.ProjectPatch) (*domain.Project, error)
	deleteFn func(ctx context.Context, actor *domain.User, id string) error
}

func (s *stubProjectService) Create(ctx context.Context, actor *domain.User, input ports.CreateProjectInput) (*domain.Project, error) {
	return s.createFn(ctx, actor, input)
}

func (s *stubProjectService) List(ctx context.Context, actor *domain.User, skip, limit int) ([]*domain.Project, error) {
	return s.listFn(ctx, actor, skip, limit)
}

func (s *stubProjectService) Get(ctx context.Context, actor *domain.User, id string) (*ports.ProjectDetail, error) {
	return s.getFn(ctx, actor, id)
}

func (s *stubProjectService) Update(ctx context.Context, actor *domain.User, id string, patch ports.ProjectPatch) (*domain.Project, error) {
	return s.updateFn(ctx, actor, id, patch)
}

func (s *stubProjectService) Delete(ctx context.Context, actor *domain.User, id string) error {
	return s.deleteFn(ctx, actor, id)
}

func TestProjectHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{
		createFn: func(ctx context.Context, actor *domain.User, input ports.CreateProjectInput) (*domain.Project, error) {
			if input.Title != "Website redesign" || input.Budget != 1500 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Project{
				ID:       "p1",
				ClientID: actor.ID,
				Title:    input.Title,
				Budget:   input.Budget,
				Tags:     input.Tags,
				Status:   domain.ProjectOpen,
			}, nil
		},
	}
	handler := NewProjectHandler(stub)

	body := strings.NewReader(`{"title":"Website redesign","description":"Full refresh","budget":1500,"tags":["web"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	asActor(c, &domain.User{ID: "client1", Role: domain.RoleClient})

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["client_id"] != "client1" || resp["status"] != "open" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestProjectHandler_Create_RejectsNonPositiveBudget(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{
		createFn: func(ctx context.Context, actor *domain.User, input ports.CreateProjectInput) (*domain.Project, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewProjectHandler(stub)

	body := strings.NewReader(`{"title":"Freebie","description":"No pay","budget":0}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	asActor(c, &domain.User{ID: "client1", Role: domain.RoleClient})

	err := handler.Create(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 HTTPError, got %v", err)
	}
}

func TestProjectHandler_Create_WorkerForbidden(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{
		createFn: func(ctx context.Context, actor *domain.User, input ports.CreateProjectInput) (*domain.Project, error) {
			return nil, domain.ErrForbidden
		},
	}
	handler := NewProjectHandler(stub)

	body := strings.NewReader(`{"title":"Side gig","description":"Trying anyway","budget":100}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	asActor(c, &domain.User{ID: "worker1", Role: domain.RoleWorker})

	_ = handler.Create(c)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "Only clients can create projects" {
		t.Fatalf("unexpected error message: %v", resp["error"])
	}
}

func TestProjectHandler_Get_IncludesTasks(t *testing.T) {
	e := newTestEcho()
	assignee := "worker1"
	stub := &stubProjectService{
		getFn: func(ctx context.Context, actor *domain.User, id string) (*ports.ProjectDetail, error) {
			if id != "p1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return &ports.ProjectDetail{
				Project: &domain.Project{ID: "p1", ClientID: "client1", Title: "Website redesign", Status: domain.ProjectOpen},
				Tasks: []*domain.Task{
					{ID: "t1", ProjectID: "p1", Title: "Design mockups", Status: domain.TaskOpen, RequiredSkills: []string{}},
					{ID: "t2", ProjectID: "p1", Title: "Build frontend", Status: domain.TaskAssigned, AssigneeID: &assignee, RequiredSkills: []string{}},
				},
			}, nil
		},
	}
	handler := NewProjectHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/p1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("project_id")
	c.SetParamValues("p1")
	asActor(c, &domain.User{ID: "client1", Role: domain.RoleClient})

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "p1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	tasks, ok := resp["tasks"].([]any)
	if !ok || len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %v", resp["tasks"])
	}
	second, ok := tasks[1].(map[string]any)
	if !ok || second["assignee_id"] != "worker1" {
		t.Fatalf("unexpected task payload: %+v", tasks[1])
	}
}

func TestProjectHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{
		getFn: func(ctx context.Context, actor *domain.User, id string) (*ports.ProjectDetail, error) {
			return nil, domain.ErrProjectNotFound
		},
	}
	handler := NewProjectHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/ghost", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("project_id")
	c.SetParamValues("ghost")
	asActor(c, &domain.User{ID: "client1", Role: domain.RoleClient})

	_ = handler.Get(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "Project not found" {
		t.Fatalf("unexpected error message: %v", resp["error"])
	}
}

func TestProjectHandler_Update_ForbiddenForOtherClient(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{
		updateFn: func(ctx context.Context, actor *domain.User, id string, patch ports.ProjectPatch) (*domain.Project, error) {
			return nil, domain.ErrForbidden
		},
	}
	handler := NewProjectHandler(stub)

	body := strings.NewReader(`{"title":"Takeover"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/projects/p1", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("project_id")
	c.SetParamValues("p1")
	asActor(c, &domain.User{ID: "client2", Role: domain.RoleClient})

	_ = handler.Update(c)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "Not authorized to update this project" {
		t.Fatalf("unexpected error message: %v", resp["error"])
	}
}

func TestProjectHandler_Update_SendsOnlyProvidedFields(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{
		updateFn: func(ctx context.Context, actor *domain.User, id string, patch ports.ProjectPatch) (*domain.Project, error) {
			if patch.Status == nil || *patch.Status != "completed" {
				t.Fatalf("expected status patch, got %+v", patch)
			}
			if patch.Title != nil || patch.Budget != nil {
				t.Fatalf("unexpected extra patch fields: %+v", patch)
			}
			return &domain.Project{ID: id, ClientID: actor.ID, Status: domain.ProjectCompleted}, nil
		},
	}
	handler := NewProjectHandler(stub)

	body := strings.NewReader(`{"status":"completed"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/projects/p1", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("project_id")
	c.SetParamValues("p1")
	asActor(c, &domain.User{ID: "client1", Role: domain.RoleClient})

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProjectHandler_Delete_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{
		deleteFn: func(ctx context.Context, actor *domain.User, id string) error {
			if id != "p1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return nil
		},
	}
	handler := NewProjectHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/projects/p1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("project_id")
	c.SetParamValues("p1")
	asActor(c, &domain.User{ID: "client1", Role: domain.RoleClient})

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Project deleted successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}
