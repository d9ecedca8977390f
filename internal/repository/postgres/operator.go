package postgres

import (
	"context"
	"database/sql"
	"time"

	"cyclerent-backend/internal/domain"
	"cyclerent-backend/internal/repository"
)

type operatorRepository struct {
	db *sql.DB
}

func NewOperatorRepository(db *sql.DB) repository.OperatorRepository {
	return &operatorRepository{db: db}
}

func (r *operatorRepository) Create(ctx context.Context, op *domain.Operator) error {
	query := `INSERT INTO operators (email, name, password_hash, role, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, op.Email, op.Name, op.PasswordHash, op.Role, time.Now()).Scan(&op.ID)
}

func (r *operatorRepository) GetByID(ctx context.Context, id int32) (*domain.Operator, error) {
	op := &domain.Operator{}
	query := `SELECT id, email, name, password_hash, role, created_on FROM operators WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&op.ID, &op.Email, &op.Name, &op.PasswordHash, &op.Role, &op.CreatedOn)
	if err != nil {
		return nil, err
	}
	return op, nil
}

func (r *operatorRepository) GetByEmail(ctx context.Context, email string) (*domain.Operator, error) {
	op := &domain.Operator{}
	query := `SELECT id, email, name, password_hash, role, created_on FROM operators WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&op.ID, &op.Email, &op.Name, &op.PasswordHash, &op.Role, &op.CreatedOn)
	if err != nil {
		return nil, err
	}
	return op, nil
}
