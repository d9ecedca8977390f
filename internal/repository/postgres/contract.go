package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cyclerent-backend/internal/domain"
	"cyclerent-backend/internal/repository"

	"github.com/lib/pq"
)

type contractRepository struct {
	db *sql.DB
}

func NewContractRepository(db *sql.DB) repository.ContractRepository {
	return &contractRepository{db: db}
}

const contractColumns = `id, number, customer_name, customer_phone, document_keys, status, is_reservation, start_at, end_at, insurance_flat, final_amount, notes, created_on, updated_on`

const itemColumns = `id, contract_id, catalog_item_id, kind, name, barcode, price_hourly, price_daily, original_price_hourly, original_price_daily, insurance, insurance_flat, returned_at`

func (r *contractRepository) Create(ctx context.Context, c *domain.Contract) error {
	now := time.Now()
	query := `INSERT INTO contracts (number, customer_name, customer_phone, document_keys, status, is_reservation, start_at, end_at, insurance_flat, final_amount, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		c.Number, c.Customer.Name, c.Customer.Phone, pq.Array(c.Customer.DocumentKeys),
		c.Status, c.IsReservation, c.StartAt, c.EndAt, c.InsuranceFlat, c.FinalAmount, c.Notes,
		now, now,
	).Scan(&c.ID)
	if err != nil {
		return err
	}
	c.CreatedOn = now
	c.UpdatedOn = now

	for i := range c.Items {
		c.Items[i].ContractID = c.ID
		if err := r.AddItem(ctx, c.ID, &c.Items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *contractRepository) GetByID(ctx context.Context, id int32) (*domain.Contract, error) {
	c := &domain.Contract{}
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Number, &c.Customer.Name, &c.Customer.Phone, pq.Array(&c.Customer.DocumentKeys),
		&c.Status, &c.IsReservation, &c.StartAt, &c.EndAt, &c.InsuranceFlat, &c.FinalAmount, &c.Notes,
		&c.CreatedOn, &c.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}

	items, err := r.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Items = items
	return c, nil
}

func (r *contractRepository) Update(ctx context.Context, c *domain.Contract) error {
	query := `UPDATE contracts SET customer_name=$1, customer_phone=$2, document_keys=$3, status=$4, is_reservation=$5, start_at=$6, end_at=$7, insurance_flat=$8, final_amount=$9, notes=$10, updated_on=$11 WHERE id=$12`
	_, err := r.db.ExecContext(ctx, query,
		c.Customer.Name, c.Customer.Phone, pq.Array(c.Customer.DocumentKeys),
		c.Status, c.IsReservation, c.StartAt, c.EndAt, c.InsuranceFlat, c.FinalAmount, c.Notes,
		time.Now(), c.ID,
	)
	return err
}

func (r *contractRepository) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Contract, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + contractColumns + ` FROM contracts`

	args := []interface{}{}
	argIdx := 1
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	contracts, err := r.scanContracts(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return contracts, count, nil
}

func (r *contractRepository) AddItem(ctx context.Context, contractID int32, item *domain.RentalItem) error {
	query := `INSERT INTO contract_items (contract_id, catalog_item_id, kind, name, barcode, price_hourly, price_daily, original_price_hourly, original_price_daily, insurance, insurance_flat, returned_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	item.ContractID = contractID
	return r.db.QueryRowContext(ctx, query,
		contractID, item.CatalogItemID, item.Kind, item.Name, item.Barcode,
		item.PriceHourly, item.PriceDaily, item.OriginalPriceHourly, item.OriginalPriceDaily,
		item.Insurance, item.InsuranceFlat, item.ReturnedAt,
	).Scan(&item.ID)
}

func (r *contractRepository) UpdateItem(ctx context.Context, item *domain.RentalItem) error {
	query := `UPDATE contract_items SET catalog_item_id=$1, kind=$2, name=$3, barcode=$4, price_hourly=$5, price_daily=$6, original_price_hourly=$7, original_price_daily=$8, insurance=$9, insurance_flat=$10, returned_at=$11 WHERE id=$12`
	_, err := r.db.ExecContext(ctx, query,
		item.CatalogItemID, item.Kind, item.Name, item.Barcode,
		item.PriceHourly, item.PriceDaily, item.OriginalPriceHourly, item.OriginalPriceDaily,
		item.Insurance, item.InsuranceFlat, item.ReturnedAt, item.ID,
	)
	return err
}

func (r *contractRepository) AttachDocumentKey(ctx context.Context, contractID int32, key string) error {
	query := `UPDATE contracts SET document_keys = array_append(document_keys, $1), updated_on = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, key, time.Now(), contractID)
	return err
}

func (r *contractRepository) ListStaleReservations(ctx context.Context, cutoff time.Time) ([]domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE status = $1 AND start_at < $2`
	rows, err := r.db.QueryContext(ctx, query, domain.ContractStatusReserved, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanContracts(ctx, rows)
}

func (r *contractRepository) ListOpenSince(ctx context.Context, cutoff time.Time) ([]domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE status = $1 AND end_at IS NULL AND start_at < $2`
	rows, err := r.db.QueryContext(ctx, query, domain.ContractStatusInUse, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanContracts(ctx, rows)
}

func (r *contractRepository) listItems(ctx context.Context, contractID int32) ([]domain.RentalItem, error) {
	query := `SELECT ` + itemColumns + ` FROM contract_items WHERE contract_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.RentalItem
	for rows.Next() {
		var it domain.RentalItem
		if err := rows.Scan(
			&it.ID, &it.ContractID, &it.CatalogItemID, &it.Kind, &it.Name, &it.Barcode,
			&it.PriceHourly, &it.PriceDaily, &it.OriginalPriceHourly, &it.OriginalPriceDaily,
			&it.Insurance, &it.InsuranceFlat, &it.ReturnedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *contractRepository) scanContracts(ctx context.Context, rows *sql.Rows) ([]domain.Contract, error) {
	var contracts []domain.Contract
	for rows.Next() {
		var c domain.Contract
		if err := rows.Scan(
			&c.ID, &c.Number, &c.Customer.Name, &c.Customer.Phone, pq.Array(&c.Customer.DocumentKeys),
			&c.Status, &c.IsReservation, &c.StartAt, &c.EndAt, &c.InsuranceFlat, &c.FinalAmount, &c.Notes,
			&c.CreatedOn, &c.UpdatedOn,
		); err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range contracts {
		items, err := r.listItems(ctx, contracts[i].ID)
		if err != nil {
			return nil, err
		}
		contracts[i].Items = items
	}
	return contracts, nil
}
