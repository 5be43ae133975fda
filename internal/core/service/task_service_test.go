package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/freelanceflow/marketplace-api/internal/core/domain"
	"github.com/freelanceflow/marketplace-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

// stubTaskRepo guards its map with a mutex so the concurrent claim test
// exercises the same single-winner guarantee the conditional UPDATE gives.
type stubTaskRepo struct {
	mu         sync.Mutex
	tasks      map[string]*domain.Task
	lastFilter ports.ListTasksFilter
	deleted    []string
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func cloneTask(t *domain.Task) *domain.Task {
	clone := *t
	return &clone
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[t.ID] = cloneTask(t)
	return nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

func (r *stubTaskRepo) List(_ context.Context, filter ports.ListTasksFilter) ([]*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = filter
	var matched []*domain.Task
	for _, t := range r.tasks {
		if filter.OpenUnassigned && !t.Claimable() {
			continue
		}
		if filter.AssigneeID != "" && !t.AssignedTo(filter.AssigneeID) {
			continue
		}
		if filter.ProjectID != "" && t.ProjectID != filter.ProjectID {
			continue
		}
		if filter.Status != "" && string(t.Status) != filter.Status {
			continue
		}
		matched = append(matched, cloneTask(t))
	}
	return matched, nil
}

func (r *stubTaskRepo) Update(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[t.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	r.tasks[t.ID] = cloneTask(t)
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubTaskRepo) Claim(_ context.Context, taskID, workerID string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[taskID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if !t.Claimable() {
		return nil, domain.ErrTaskNotAvailable
	}
	assignee := workerID
	t.AssigneeID = &assignee
	t.Status = domain.TaskAssigned
	t.UpdatedAt = time.Now().UTC()
	return cloneTask(t), nil
}

type stubDispatcher struct {
	mu     sync.Mutex
	inputs []ports.NotificationInput
}

func (d *stubDispatcher) Enqueue(input ports.NotificationInput) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inputs = append(d.inputs, input)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTaskFixture(t *testing.T) (*stubTaskRepo, *stubProjectRepo, *stubDispatcher, *TaskService) {
	t.Helper()
	tasks := newStubTaskRepo()
	projects := newStubProjectRepo()
	dispatcher := &stubDispatcher{}
	svc := NewTaskService(tasks, projects, dispatcher, discardLogger)
	return tasks, projects, dispatcher, svc
}

func seedTask(t *testing.T, repo *stubTaskRepo, id, projectID string, status domain.TaskStatus, assigneeID *string) *domain.Task {
	t.Helper()
	task := &domain.Task{
		ID:                       id,
		ProjectID:                projectID,
		Title:                    "Fix the build",
		Description:              "It is broken",
		Weight:                   1,
		Payout:                   50,
		PricingType:              domain.PricingFixed,
		RequiredSkills:           []string{},
		ApplicationWindowMinutes: 60,
		Status:                   status,
		AssigneeID:               assigneeID,
		CreatedAt:                time.Now().UTC(),
		UpdatedAt:                time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), task); err != nil {
		t.Fatalf("seed task failed: %v", err)
	}
	return task
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestTaskService_Create_Success(t *testing.T) {
	tasks, projects, _, svc := newTaskFixture(t)
	seedProject(t, projects, "p1", "c1", domain.ProjectOpen)

	task, err := svc.Create(context.Background(), clientUser("c1"), ports.CreateTaskInput{
		ProjectID:                "p1",
		Title:                    "Fix the build",
		Description:              "It is broken",
		Weight:                   1,
		Payout:                   50,
		PricingType:              domain.PricingFixed,
		ApplicationWindowMinutes: 60,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if task.Status != domain.TaskOpen {
		t.Errorf("new tasks must be open, got %q", task.Status)
	}
	if task.AssigneeID != nil {
		t.Error("new tasks must be unassigned")
	}
	if task.RequiredSkills == nil {
		t.Error("expected empty skills slice, got nil")
	}
	if _, err := tasks.FindByID(context.Background(), task.ID); err != nil {
		t.Errorf("task not persisted: %v", err)
	}
}

func TestTaskService_Create_ProjectNotFound(t *testing.T) {
	_, _, _, svc := newTaskFixture(t)

	_, err := svc.Create(context.Background(), clientUser("c1"), ports.CreateTaskInput{ProjectID: "missing", Title: "X"})
	if !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestTaskService_Create_NonOwnerForbidden(t *testing.T) {
	_, projects, _, svc := newTaskFixture(t)
	seedProject(t, projects, "p1", "c1", domain.ProjectOpen)

	_, err := svc.Create(context.Background(), clientUser("c2"), ports.CreateTaskInput{ProjectID: "p1", Title: "X"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestTaskService_List_ClientScope(t *testing.T) {
	tasks, _, _, svc := newTaskFixture(t)

	_, err := svc.List(context.Background(), clientUser("c1"), ports.ListTasksInput{Limit: 100})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if tasks.lastFilter.ClientID != "c1" {
		t.Errorf("client scope must be pushed into the query, got %+v", tasks.lastFilter)
	}
	if tasks.lastFilter.OpenUnassigned {
		t.Error("client scope must not restrict to open tasks")
	}
}

func TestTaskService_List_WorkerScope(t *testing.T) {
	tasks, _, _, svc := newTaskFixture(t)
	w := "w9"
	seedTask(t, tasks, "t1", "p1", domain.TaskOpen, nil)
	seedTask(t, tasks, "t2", "p1", domain.TaskAssigned, &w)

	got, err := svc.List(context.Background(), workerUser("w1"), ports.ListTasksInput{Limit: 100})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if !tasks.lastFilter.OpenUnassigned {
		t.Errorf("worker scope must restrict to open unassigned tasks, got %+v", tasks.lastFilter)
	}
	if len(got) != 1 || got[0].ID != "t1" {
		t.Errorf("worker must only see the open pool, got %d tasks", len(got))
	}
}

func TestTaskService_List_PassesRequestFilters(t *testing.T) {
	tasks, _, _, svc := newTaskFixture(t)

	_, err := svc.List(context.Background(), clientUser("c1"), ports.ListTasksInput{
		ProjectID: "p7",
		Status:    string(domain.TaskSubmitted),
		Skip:      5,
		Limit:     10,
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	f := tasks.lastFilter
	if f.ProjectID != "p7" || f.Status != string(domain.TaskSubmitted) || f.Skip != 5 || f.Limit != 10 {
		t.Errorf("request filters must pass through, got %+v", f)
	}
}

func TestTaskService_ListAssigned_WorkerOnly(t *testing.T) {
	_, _, _, svc := newTaskFixture(t)

	_, err := svc.ListAssigned(context.Background(), clientUser("c1"))
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTaskService_ListAssigned_ReturnsOwnAssignments(t *testing.T) {
	tasks, _, _, svc := newTaskFixture(t)
	w1, w2 := "w1", "w2"
	seedTask(t, tasks, "t1", "p1", domain.TaskAssigned, &w1)
	seedTask(t, tasks, "t2", "p1", domain.TaskAssigned, &w2)
	seedTask(t, tasks, "t3", "p1", domain.TaskOpen, nil)

	got, err := svc.ListAssigned(context.Background(), workerUser("w1"))
	if err != nil {
		t.Fatalf("ListAssigned returned error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "t1" {
		t.Errorf("expected only w1's assignment, got %d tasks", len(got))
	}
}

// ---------------------------------------------------------------------------
// Get
// ---------------------------------------------------------------------------

func TestTaskService_Get_OwnerClient(t *testing.T) {
	tasks, projects, _, svc := newTaskFixture(t)
	seedProject(t, projects, "p1", "c1", domain.ProjectOpen)
	seedTask(t, tasks, "t1", "p1", domain.TaskOpen, nil)

	if _, err := svc.Get(context.Background(), clientUser("c1"), "t1"); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
}

func TestTaskService_Get_ForeignClientForbidden(t *testing.T) {
	tasks, projects, _, svc := newTaskFixture(t)
	seedProject(t, projects, "p1", "c1", domain.ProjectOpen)
	seedTask(t, tasks, "t1", "p1", domain.TaskOpen, nil)

	if _, err := svc.Get(context.Background(), clientUser("c2"), "t1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTaskService_Get_WorkerSeesOpenTask(t *testing.T) {
	tasks, projects, _, svc := newTaskFixture(t)
	seedProject(t, projects, "p1", "c1", domain.ProjectOpen)
	seedTask(t, tasks, "t1", "p1", domain.TaskOpen, nil)

	if _, err := svc.Get(context.Background(), workerUser("w1"), "t1"); err != nil {
		t.Fatalf("open tasks must be visible to workers: %v", err)
	}
}

func TestTaskService_Get_AssigneeSeesOwnTask(t *testing.T) {
	tasks, projects, _, svc := newTaskFixture(t)
	seedProject(t, projects, "p1", "c1", domain.ProjectOpen)
	w := "w1"
	seedTask(t, tasks, "t1", "p1", domain.TaskAssigned, &w)

	if _, err := svc.Get(context.Background(), workerUser("w1"), "t1"); err != nil {
		t.Fatalf("assignee must see their task: %v", err)
	}
}

func TestTaskService_Get_WorkerForeignAssignmentForbidden(t *testing.T) {
	tasks, projects, _, svc := newTaskFixture(t)
	seedProject(t, projects, "p1", "c1", domain.ProjectOpen)
	w := "w9"
	seedTask(t, tasks, "t1", "p1", domain.TaskAssigned, &w)

	if _, err := svc.Get(context.Background(), workerUser("w1"), "t1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTaskService_Get_NotFound(t *testing.T) {
	_, _, _, svc := newTaskFixture(t)

	if _, err := svc.Get(context.Background(), clientUser("c1"), "missing"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestTaskService_Update_OwnerMergesOnlyProvidedFields(t *testing.T) {
	tasks, projects, _, svc := newTaskFixture(t)
	seedProject(t, projects, "p1", "c1", domain.ProjectOpen)
	seedTask(t, tasks, "t1", "p1", domain.TaskOpen, nil)

	updated, err := svc.Update(context.Background(), clientUser("c1"), "t1", ports.TaskPatch{
		Payout: floatPtr(80),
		Status: strPtr(string(domain.TaskSubmitted)),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if updated.Payout != 80 {
		t.Errorf("payout not updated: %v", updated.Payout)
	}
	if updated.Status != domain.TaskSubmitted {
		t.Errorf("status not updated: %q", updated.Status)
	}
	if updated.Title != "Fix the build" {
		t.Errorf("title must stay untouched, got %q", updated.Title)
	}
	if updated.Weight != 1 {
		t.Errorf("weight must stay untouched, got %d", updated.Weight)
	}
}

func TestTaskService_Update_SetsNullableFields(t *testing.T) {
	tasks, projects, _, svc := newTaskFixture(t)
	seedProject(t, projects, "p1", "c1", domain.ProjectOpen)
	seedTask(t, tasks, "t1", "p1", domain.TaskOpen, nil)

	deadline := time.Now().UTC().Add(48 * time.Hour)
	updated, err := svc.Update(context.Background(), clientUser("c1"), "t1", ports.TaskPatch{
		Deadline:       &deadline,
		PricingType:    strPtr(domain.PricingHourly),
		HourlyRate:     floatPtr(25),
		EstimatedHours: intPtr(8),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if updated.Deadline == nil || !updated.Deadline.Equal(deadline) {
		t.Errorf("deadline not set: %v", updated.Deadline)
	}
	if updated.PricingType != domain.PricingHourly {
		t.Errorf("pricing type not updated: %q", updated.PricingType)
	}
	if updated.HourlyRate == nil || *updated.HourlyRate != 25 {
		t.Errorf("hourly rate not set: %v", updated.HourlyRate)
	}
	if updated.EstimatedHours == nil || *updated.EstimatedHours != 8 {
		t.Errorf("estimated hours not set: %v", updated.EstimatedHours)
	}
}

func TestTaskService_Update_AssignedWorkerAllowed(t *testing.T) {
	tasks, projects, _, svc := newTaskFixture(t)
	seedProject(t, projects, "p1", "c1", domain.ProjectOpen)
	w := "w1"
	seedTask(t, tasks, "t1", "p1", domain.TaskAssigned, &w)

	updated, err := svc.Update(context.Background(), workerUser("w1"), "t1", ports.TaskPatch{
		Status: strPtr(string(domain.TaskSubmitted)),
	})
	if err != nil {
		t.Fatalf("assignee update failed: %v", err)
	}
	if updated.Status != domain.TaskSubmitted {
		t.Errorf("status not updated: %q", updated.Status)
	}
}

func TestTaskService_Update_UnassignedWorkerForbidden(t *testing.T) {
	tasks, projects, _, svc := newTaskFixture(t)
	seedProject(t, projects, "p1", "c1", domain.ProjectOpen)
	seedTask(t, tasks, "t1", "p1", domain.TaskOpen, nil)

	_, err := svc.Update(context.Background(), workerUser("w1"), "t1", ports.TaskPatch{Status: strPtr("submitted")})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTaskService_Update_ForeignClientForbidden(t *testing.T) {
	tasks, projects, _, svc := newTaskFixture(t)
	seedProject(t, projects, "p1", "c1", domain.ProjectOpen)
	seedTask(t, tasks, "t1", "p1", domain.TaskOpen, nil)

	_, err := svc.Update(context.Background(), clientUser("c2"), "t1", ports.TaskPatch{Title: strPtr("X")})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestTaskService_Delete_OwnerOnly(t *testing.T) {
	tasks, projects, _, svc := newTaskFixture(t)
	seedProject(t, projects, "p1", "c1", domain.ProjectOpen)
	w := "w1"
	seedTask(t, tasks, "t1", "p1", domain.TaskAssigned, &w)

	if err := svc.Delete(context.Background(), workerUser("w1"), "t1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("assignee must not delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), clientUser("c1"), "t1"); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if len(tasks.deleted) != 1 || tasks.deleted[0] != "t1" {
		t.Errorf("task not deleted, got %v", tasks.deleted)
	}
}

// ---------------------------------------------------------------------------
// Claim
// ---------------------------------------------------------------------------

func TestTaskService_Claim_Success(t *testing.T) {
	tasks, projects, dispatcher, svc := newTaskFixture(t)
	seedProject(t, projects, "p1", "c1", domain.ProjectOpen)
	seedTask(t, tasks, "t1", "p1", domain.TaskOpen, nil)

	task, err := svc.Claim(context.Background(), workerUser("w1"), "t1")
	if err != nil {
		t.Fatalf("Claim returned error: %v", err)
	}

	if task.Status != domain.TaskAssigned {
		t.Errorf("claimed task must be assigned, got %q", task.Status)
	}
	if !task.AssignedTo("w1") {
		t.Errorf("assignee not recorded: %v", task.AssigneeID)
	}

	if len(dispatcher.inputs) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(dispatcher.inputs))
	}
	if dispatcher.inputs[0].UserID != "c1" {
		t.Errorf("notification must target the project owner, got %q", dispatcher.inputs[0].UserID)
	}
}

func TestTaskService_Claim_ClientForbidden(t *testing.T) {
	tasks, projects, _, svc := newTaskFixture(t)
	seedProject(t, projects, "p1", "c1", domain.ProjectOpen)
	seedTask(t, tasks, "t1", "p1", domain.TaskOpen, nil)

	if _, err := svc.Claim(context.Background(), clientUser("c1"), "t1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTaskService_Claim_AlreadyAssigned(t *testing.T) {
	tasks, projects, _, svc := newTaskFixture(t)
	seedProject(t, projects, "p1", "c1", domain.ProjectOpen)
	w := "w9"
	seedTask(t, tasks, "t1", "p1", domain.TaskAssigned, &w)

	if _, err := svc.Claim(context.Background(), workerUser("w1"), "t1"); !errors.Is(err, domain.ErrTaskNotAvailable) {
		t.Fatalf("expected ErrTaskNotAvailable, got %v", err)
	}
}

func TestTaskService_Claim_NotOpen(t *testing.T) {
	tasks, projects, _, svc := newTaskFixture(t)
	seedProject(t, projects, "p1", "c1", domain.ProjectOpen)
	seedTask(t, tasks, "t1", "p1", domain.TaskSubmitted, nil)

	if _, err := svc.Claim(context.Background(), workerUser("w1"), "t1"); !errors.Is(err, domain.ErrTaskNotAvailable) {
		t.Fatalf("expected ErrTaskNotAvailable, got %v", err)
	}
}

func TestTaskService_Claim_NotFound(t *testing.T) {
	_, _, _, svc := newTaskFixture(t)

	if _, err := svc.Claim(context.Background(), workerUser("w1"), "missing"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskService_Claim_ConcurrentSingleWinner(t *testing.T) {
	tasks, projects, dispatcher, svc := newTaskFixture(t)
	seedProject(t, projects, "p1", "c1", domain.ProjectOpen)
	seedTask(t, tasks, "t1", "p1", domain.TaskOpen, nil)

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Claim(context.Background(), workerUser(string(rune('a'+i))), "t1")
		}(i)
	}
	wg.Wait()

	var wins, losses int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, domain.ErrTaskNotAvailable):
			losses++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if wins != 1 {
		t.Fatalf("exactly one claim must win, got %d", wins)
	}
	if losses != workers-1 {
		t.Errorf("every other claim must fail as unavailable, got %d", losses)
	}
	if len(dispatcher.inputs) != 1 {
		t.Errorf("only the winner may notify, got %d notifications", len(dispatcher.inputs))
	}
}

func TestTaskService_Claim_SurvivesNotificationLookupFailure(t *testing.T) {
	tasks, _, dispatcher, svc := newTaskFixture(t)
	// No project seeded: the post-claim owner lookup fails.
	seedTask(t, tasks, "t1", "p1", domain.TaskOpen, nil)

	task, err := svc.Claim(context.Background(), workerUser("w1"), "t1")
	if err != nil {
		t.Fatalf("claim must succeed even when the notification cannot be built: %v", err)
	}
	if task.Status != domain.TaskAssigned {
		t.Errorf("claimed task must be assigned, got %q", task.Status)
	}
	if len(dispatcher.inputs) != 0 {
		t.Errorf("no notification expected, got %d", len(dispatcher.inputs))
	}
}
