package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cyclerent-backend/internal/domain"
	"cyclerent-backend/internal/repository"
)

type catalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) repository.CatalogRepository {
	return &catalogRepository{db: db}
}

const catalogColumns = `id, kind, name, barcode, price_hourly, price_daily, status, notes, created_on, updated_on`

func (r *catalogRepository) Create(ctx context.Context, item *domain.CatalogItem) error {
	now := time.Now()
	query := `INSERT INTO catalog_items (kind, name, barcode, price_hourly, price_daily, status, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		item.Kind, item.Name, item.Barcode, item.PriceHourly, item.PriceDaily,
		item.Status, item.Notes, now, now,
	).Scan(&item.ID)
	if err != nil {
		return err
	}
	item.CreatedOn = now
	item.UpdatedOn = now
	return nil
}

func (r *catalogRepository) GetByID(ctx context.Context, id int32) (*domain.CatalogItem, error) {
	item := &domain.CatalogItem{}
	query := `SELECT ` + catalogColumns + ` FROM catalog_items WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Kind, &item.Name, &item.Barcode, &item.PriceHourly, &item.PriceDaily,
		&item.Status, &item.Notes, &item.CreatedOn, &item.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *catalogRepository) GetByBarcode(ctx context.Context, barcode string) (*domain.CatalogItem, error) {
	item := &domain.CatalogItem{}
	query := `SELECT ` + catalogColumns + ` FROM catalog_items WHERE barcode = $1`
	err := r.db.QueryRowContext(ctx, query, barcode).Scan(
		&item.ID, &item.Kind, &item.Name, &item.Barcode, &item.PriceHourly, &item.PriceDaily,
		&item.Status, &item.Notes, &item.CreatedOn, &item.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *catalogRepository) Update(ctx context.Context, item *domain.CatalogItem) error {
	query := `UPDATE catalog_items SET kind=$1, name=$2, barcode=$3, price_hourly=$4, price_daily=$5, status=$6, notes=$7, updated_on=$8 WHERE id=$9`
	_, err := r.db.ExecContext(ctx, query,
		item.Kind, item.Name, item.Barcode, item.PriceHourly, item.PriceDaily,
		item.Status, item.Notes, time.Now(), item.ID,
	)
	return err
}

func (r *catalogRepository) SetStatus(ctx context.Context, id int32, status domain.CatalogStatus) error {
	query := `UPDATE catalog_items SET status=$1, updated_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	return err
}

func (r *catalogRepository) List(ctx context.Context, kind, status string, page, pageSize int32) ([]domain.CatalogItem, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + catalogColumns + ` FROM catalog_items WHERE 1=1`

	args := []interface{}{}
	argIdx := 1
	if kind != "" {
		query += fmt.Sprintf(" AND kind = $%d", argIdx)
		args = append(args, kind)
		argIdx++
	}
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.CatalogItem
	for rows.Next() {
		var item domain.CatalogItem
		if err := rows.Scan(
			&item.ID, &item.Kind, &item.Name, &item.Barcode, &item.PriceHourly, &item.PriceDaily,
			&item.Status, &item.Notes, &item.CreatedOn, &item.UpdatedOn,
		); err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, count, rows.Err()
}
