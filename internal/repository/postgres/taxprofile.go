package postgres

import (
	"context"
	"database/sql"
	"time"

	"glanz-rental-backend/internal/domain"
	"glanz-rental-backend/internal/repository"
)

type taxProfileRepository struct {
	db *sql.DB
}

func NewTaxProfileRepository(db *sql.DB) repository.TaxProfileRepository {
	return &taxProfileRepository{db: db}
}

const taxProfileColumns = `user_id, business_name, tax_enabled, tax_rate_percent, tax_inclusive, tax_registration_id, created_on, updated_on`

func (r *taxProfileRepository) GetByUserID(ctx context.Context, userID int64) (*domain.TaxProfile, error) {
	p := &domain.TaxProfile{}
	query := `SELECT ` + taxProfileColumns + ` FROM tax_profiles WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID, &p.BusinessName, &p.TaxEnabled, &p.TaxRatePercent, &p.TaxInclusive, &p.TaxRegistrationID, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetOwnerProfile resolves the top-level profile by role marker: the profile
// belonging to the account-owner user. There is one owner per deployment.
func (r *taxProfileRepository) GetOwnerProfile(ctx context.Context) (*domain.TaxProfile, error) {
	p := &domain.TaxProfile{}
	query := `SELECT p.user_id, p.business_name, p.tax_enabled, p.tax_rate_percent, p.tax_inclusive, p.tax_registration_id, p.created_on, p.updated_on
	          FROM tax_profiles p JOIN users u ON u.id = p.user_id WHERE u.role = $1 LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, domain.UserRoleOwner).Scan(
		&p.UserID, &p.BusinessName, &p.TaxEnabled, &p.TaxRatePercent, &p.TaxInclusive, &p.TaxRegistrationID, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *taxProfileRepository) Upsert(ctx context.Context, p *domain.TaxProfile) error {
	query := `INSERT INTO tax_profiles (user_id, business_name, tax_enabled, tax_rate_percent, tax_inclusive, tax_registration_id, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	          ON CONFLICT (user_id) DO UPDATE SET business_name=$2, tax_enabled=$3, tax_rate_percent=$4, tax_inclusive=$5,
	          tax_registration_id=$6, updated_on=$7`
	_, err := r.db.ExecContext(ctx, query,
		p.UserID, p.BusinessName, p.TaxEnabled, p.TaxRatePercent, p.TaxInclusive, p.TaxRegistrationID, time.Now())
	return err
}
