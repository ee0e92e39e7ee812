package postgres

import (
	"context"
	"database/sql"
	"time"

	"registrar-portal-backend/internal/domain"
	"registrar-portal-backend/internal/repository"

	"github.com/lib/pq"
)

type actorRepository struct {
	db *sql.DB
}

func NewActorRepository(db *sql.DB) repository.ActorRepository {
	return &actorRepository{db: db}
}

func (r *actorRepository) Create(ctx context.Context, actor *domain.Actor) error {
	query := `INSERT INTO actors (role, name, email, password_hash, department_id, department_scope, can_schedule, can_release, active, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		actor.Role, actor.Name, actor.Email, actor.PasswordHash,
		actor.DepartmentID, pq.Array(actor.DepartmentScope),
		actor.CanSchedule, actor.CanRelease, actor.Active, time.Now(),
	).Scan(&actor.ID)
	return storeErr(err)
}

const actorColumns = `id, role, name, email, password_hash, department_id, department_scope, can_schedule, can_release, active, created_on`

func (r *actorRepository) scanActor(row interface{ Scan(...interface{}) error }) (*domain.Actor, error) {
	a := &domain.Actor{}
	var scope pq.Int32Array
	err := row.Scan(&a.ID, &a.Role, &a.Name, &a.Email, &a.PasswordHash,
		&a.DepartmentID, &scope, &a.CanSchedule, &a.CanRelease, &a.Active, &a.CreatedOn)
	if err != nil {
		return nil, err
	}
	a.DepartmentScope = []int32(scope)
	return a, nil
}

func (r *actorRepository) GetByID(ctx context.Context, id int32) (*domain.Actor, error) {
	query := `SELECT ` + actorColumns + ` FROM actors WHERE id = $1`
	a, err := r.scanActor(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, storeErr(err)
	}
	return a, nil
}

func (r *actorRepository) GetByEmail(ctx context.Context, email string) (*domain.Actor, error) {
	query := `SELECT ` + actorColumns + ` FROM actors WHERE email = $1`
	a, err := r.scanActor(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, storeErr(err)
	}
	return a, nil
}

func (r *actorRepository) Update(ctx context.Context, actor *domain.Actor) error {
	query := `UPDATE actors SET name=$1, email=$2, password_hash=$3, department_id=$4, department_scope=$5,
	          can_schedule=$6, can_release=$7, active=$8 WHERE id=$9`
	_, err := r.db.ExecContext(ctx, query,
		actor.Name, actor.Email, actor.PasswordHash, actor.DepartmentID,
		pq.Array(actor.DepartmentScope), actor.CanSchedule, actor.CanRelease,
		actor.Active, actor.ID,
	)
	return storeErr(err)
}

func (r *actorRepository) ListByRole(ctx context.Context, role domain.ActorRole, page, pageSize int32) ([]domain.Actor, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM actors WHERE role = $1`, role).Scan(&count); err != nil {
		return nil, 0, storeErr(err)
	}

	query := `SELECT ` + actorColumns + ` FROM actors WHERE role = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, role, pageSize, offset)
	if err != nil {
		return nil, 0, storeErr(err)
	}
	defer rows.Close()

	var actors []domain.Actor
	for rows.Next() {
		a, err := r.scanActor(rows)
		if err != nil {
			return nil, 0, storeErr(err)
		}
		actors = append(actors, *a)
	}
	return actors, count, nil
}
