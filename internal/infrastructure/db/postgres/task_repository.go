package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freelanceflow/marketplace-api/internal/core/domain"
	"github.com/freelanceflow/marketplace-api/internal/core/ports"
)

const taskColumns = "id, project_id, assignee_id, title, description, weight, payout, deadline, pricing_type, hourly_rate, estimated_hours, required_skills, auto_assign, application_window_minutes, status, created_at, updated_at"

// TaskRepository implements ports.TaskRepository on PostgreSQL.
type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.pool.Exec(ctx, query,
		task.ID,
		task.ProjectID,
		task.AssigneeID,
		task.Title,
		task.Description,
		task.Weight,
		task.Payout,
		task.Deadline,
		task.PricingType,
		task.HourlyRate,
		task.EstimatedHours,
		task.RequiredSkills,
		task.AutoAssign,
		task.ApplicationWindowMinutes,
		string(task.Status),
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return task, nil
}

func (r *TaskRepository) List(ctx context.Context, filter ports.ListTasksFilter) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE 1=1`
	args := make([]interface{}, 0, 6)
	argNum := 1

	if filter.ClientID != "" {
		query += fmt.Sprintf(" AND project_id IN (SELECT id FROM projects WHERE client_id = $%d)", argNum)
		args = append(args, filter.ClientID)
		argNum++
	}
	if filter.OpenUnassigned {
		query += fmt.Sprintf(" AND status = $%d AND assignee_id IS NULL", argNum)
		args = append(args, string(domain.TaskOpen))
		argNum++
	}
	if filter.AssigneeID != "" {
		query += fmt.Sprintf(" AND assignee_id = $%d", argNum)
		args = append(args, filter.AssigneeID)
		argNum++
	}
	if filter.ProjectID != "" {
		query += fmt.Sprintf(" AND project_id = $%d", argNum)
		args = append(args, filter.ProjectID)
		argNum++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, filter.Status)
		argNum++
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, filter.Limit)
		argNum++
	}
	if filter.Skip > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argNum)
		args = append(args, filter.Skip)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	query := `
		UPDATE tasks
		SET assignee_id = $2, title = $3, description = $4, weight = $5, payout = $6,
		    deadline = $7, pricing_type = $8, hourly_rate = $9, estimated_hours = $10,
		    required_skills = $11, auto_assign = $12, status = $13, updated_at = $14
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		task.ID,
		task.AssigneeID,
		task.Title,
		task.Description,
		task.Weight,
		task.Payout,
		task.Deadline,
		task.PricingType,
		task.HourlyRate,
		task.EstimatedHours,
		task.RequiredSkills,
		task.AutoAssign,
		string(task.Status),
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// Claim is a conditional update: only a task that is still open and
// unassigned is handed to the worker, so concurrent claims resolve to exactly
// one winner inside the database.
func (r *TaskRepository) Claim(ctx context.Context, taskID, workerID string) (*domain.Task, error) {
	query := `
		UPDATE tasks
		SET assignee_id = $2, status = $3, updated_at = now()
		WHERE id = $1 AND status = $4 AND assignee_id IS NULL
		RETURNING ` + taskColumns + `
	`

	task, err := scanTask(r.pool.QueryRow(ctx, query, taskID, workerID, string(domain.TaskAssigned), string(domain.TaskOpen)))
	if err == nil {
		return task, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("claim task: %w", err)
	}

	// No row matched: either the task is gone or someone else won the race.
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1)`, taskID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("claim task: %w", err)
	}
	if !exists {
		return nil, domain.ErrTaskNotFound
	}
	return nil, domain.ErrTaskNotAvailable
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	var assigneeID sql.NullString
	var deadline sql.NullTime
	var hourlyRate sql.NullFloat64
	var estimatedHours sql.NullInt32
	var status string

	err := row.Scan(
		&t.ID,
		&t.ProjectID,
		&assigneeID,
		&t.Title,
		&t.Description,
		&t.Weight,
		&t.Payout,
		&deadline,
		&t.PricingType,
		&hourlyRate,
		&estimatedHours,
		&t.RequiredSkills,
		&t.AutoAssign,
		&t.ApplicationWindowMinutes,
		&status,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Status = domain.TaskStatus(status)
	if assigneeID.Valid {
		t.AssigneeID = &assigneeID.String
	}
	if deadline.Valid {
		t.Deadline = &deadline.Time
	}
	if hourlyRate.Valid {
		t.HourlyRate = &hourlyRate.Float64
	}
	if estimatedHours.Valid {
		hours := int(estimatedHours.Int32)
		t.EstimatedHours = &hours
	}
	if t.RequiredSkills == nil {
		t.RequiredSkills = []string{}
	}
	return &t, nil
}
