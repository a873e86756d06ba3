package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/purchase_converter_app/internal/apperrors"
	"github.com/SscSPs/purchase_converter_app/internal/core/domain"
	portsrepo "github.com/SscSPs/purchase_converter_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPurchaseRepository implements the purchase repository facade using pgxpool.
type PgxPurchaseRepository struct {
	pool *pgxpool.Pool
}

// NewPurchaseRepository creates a new repository for purchase data.
func NewPurchaseRepository(pool *pgxpool.Pool) portsrepo.PurchaseRepositoryFacade {
	return &PgxPurchaseRepository{pool: pool}
}

// SavePurchase inserts a new purchase. Purchases are immutable after
// creation, so there is no upsert path.
func (r *PgxPurchaseRepository) SavePurchase(ctx context.Context, purchase domain.Purchase) error {
	query := `
		INSERT INTO purchases (
			purchase_id, description, transaction_date, purchase_amount,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	_, err := r.pool.Exec(ctx, query,
		purchase.PurchaseID,
		purchase.Description,
		purchase.TransactionDate,
		purchase.PurchaseAmount,
		purchase.CreatedAt,
		purchase.CreatedBy,
		purchase.LastUpdatedAt,
		purchase.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save purchase %s: %w", purchase.PurchaseID, err)
	}
	return nil
}

// FindPurchaseByID retrieves a purchase by its identifier.
func (r *PgxPurchaseRepository) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	query := `
		SELECT purchase_id, description, transaction_date, purchase_amount,
			created_at, created_by, last_updated_at, last_updated_by
		FROM purchases
		WHERE purchase_id = $1;
	`

	var purchase domain.Purchase
	err := r.pool.QueryRow(ctx, query, purchaseID).Scan(
		&purchase.PurchaseID,
		&purchase.Description,
		&purchase.TransactionDate,
		&purchase.PurchaseAmount,
		&purchase.CreatedAt,
		&purchase.CreatedBy,
		&purchase.LastUpdatedAt,
		&purchase.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Map db not found error to application specific error
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find purchase by id %s: %w", purchaseID, err)
	}

	return &purchase, nil
}
