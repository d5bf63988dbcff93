package core

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrEmployeeNotFound is returned when no employee exists for the given id.
var ErrEmployeeNotFound = errors.New("employee not found")

type Employee struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Salary     int    `json:"salary"`
	Department string `json:"department"`
}

// EmployeeRepository defines persistence operations for employees.
type EmployeeRepository interface {
	List(ctx context.Context) ([]Employee, error)
	Get(ctx context.Context, id int64) (*Employee, error)
	Create(ctx context.Context, e Employee) (int64, error)
	Update(ctx context.Context, e Employee) error
	Delete(ctx context.Context, id int64) error
}

// PgEmployeeRepository implements EmployeeRepository using pgxpool.
type PgEmployeeRepository struct {
	db *pgxpool.Pool
}

func NewPgEmployeeRepository(db *pgxpool.Pool) *PgEmployeeRepository {
	return &PgEmployeeRepository{db: db}
}

func (r *PgEmployeeRepository) List(ctx context.Context) ([]Employee, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, salary, department FROM employees ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]Employee, 0)
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Salary, &e.Department); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *PgEmployeeRepository) Get(ctx context.Context, id int64) (*Employee, error) {
	const q = `SELECT id, name, salary, department FROM employees WHERE id=$1`
	var e Employee
	if err := r.db.QueryRow(ctx, q, id).Scan(&e.ID, &e.Name, &e.Salary, &e.Department); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *PgEmployeeRepository) Create(ctx context.Context, e Employee) (int64, error) {
	const q = `INSERT INTO employees (name, salary, department) VALUES ($1,$2,$3) RETURNING id`
	var id int64
	if err := r.db.QueryRow(ctx, q, e.Name, e.Salary, e.Department).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PgEmployeeRepository) Update(ctx context.Context, e Employee) error {
	const q = `UPDATE employees SET name=$1, salary=$2, department=$3 WHERE id=$4`
	tag, err := r.db.Exec(ctx, q, e.Name, e.Salary, e.Department, e.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (r *PgEmployeeRepository) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM employees WHERE id=$1`
	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}
