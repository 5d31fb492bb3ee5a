package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"glanz-rental-backend/internal/domain"
	"glanz-rental-backend/internal/repository"
)

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `id, name, phone, address, photo_url, id_proof, created_by, created_on, updated_on`

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (name, phone, address, photo_url, id_proof, created_by, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		c.Name, c.Phone, c.Address, c.PhotoURL, c.IDProof, c.CreatedBy, now, now).Scan(&c.ID)
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Phone, &c.Address, &c.PhotoURL, &c.IDProof, &c.CreatedBy, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	query := `UPDATE customers SET name=$1, phone=$2, address=$3, photo_url=$4, id_proof=$5, updated_on=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query, c.Name, c.Phone, c.Address, c.PhotoURL, c.IDProof, time.Now(), c.ID)
	return err
}

func (r *customerRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	return err
}

func (r *customerRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Customer, int32, error) {
	query := `SELECT ` + customerColumns + ` FROM customers`
	return r.listCustomers(ctx, query, nil, 1, page, pageSize)
}

func (r *customerRepository) Search(ctx context.Context, q string, page, pageSize int32) ([]domain.Customer, int32, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE name ILIKE $1 OR phone ILIKE $1`
	return r.listCustomers(ctx, query, []interface{}{"%" + q + "%"}, 2, page, pageSize)
}

func (r *customerRepository) listCustomers(ctx context.Context, query string, args []interface{}, argIdx int, page, pageSize int32) ([]domain.Customer, int32, error) {
	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.PhotoURL, &c.IDProof, &c.CreatedBy, &c.CreatedOn, &c.UpdatedOn); err != nil {
			return nil, 0, err
		}
		customers = append(customers, c)
	}
	return customers, count, rows.Err()
}
