package item

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/pardha-bandaru/cafeteria-api/internal/database"
)

// Repository handles item persistence. Items are always addressed through
// their cafeteria; ownership of the cafeteria is checked at the handler.
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new item under a cafeteria
func (r *Repository) Create(ctx context.Context, i *Item) (*Item, error) {
	dbItem := &database.Item{
		CafeteriaID:    i.CafeteriaID,
		Name:           i.Name,
		AvailableHours: i.AvailableHours,
	}

	_, err := r.db.NewInsert().
		Model(dbItem).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return mapDBItemToModel(dbItem), nil
}

// ListByCafeteria returns all items served by a cafeteria
func (r *Repository) ListByCafeteria(ctx context.Context, cafeteriaID int64) ([]*Item, error) {
	var dbItems []database.Item
	err := r.db.NewSelect().
		Model(&dbItems).
		Where("cafeteria_id = ?", cafeteriaID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items := make([]*Item, 0, len(dbItems))
	for i := range dbItems {
		items = append(items, mapDBItemToModel(&dbItems[i]))
	}
	return items, nil
}

// GetByID returns an item only if it belongs to the cafeteria
func (r *Repository) GetByID(ctx context.Context, id, cafeteriaID int64) (*Item, error) {
	dbItem := new(database.Item)
	err := r.db.NewSelect().
		Model(dbItem).
		Where("id = ?", id).
		Where("cafeteria_id = ?", cafeteriaID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return mapDBItemToModel(dbItem), nil
}

// Update replaces the item's name and availability
func (r *Repository) Update(ctx context.Context, i *Item) (*Item, error) {
	result, err := r.db.NewUpdate().
		Model((*database.Item)(nil)).
		Set("name = ?", i.Name).
		Set("available_hours = ?", i.AvailableHours).
		Where("id = ?", i.ID).
		Where("cafeteria_id = ?", i.CafeteriaID).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, i.ID, i.CafeteriaID)
}

// Delete removes an item from a cafeteria
func (r *Repository) Delete(ctx context.Context, id, cafeteriaID int64) error {
	result, err := r.db.NewDelete().
		Model((*database.Item)(nil)).
		Where("id = ?", id).
		Where("cafeteria_id = ?", cafeteriaID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// mapDBItemToModel converts database model to domain model
func mapDBItemToModel(dbi *database.Item) *Item {
	return &Item{
		ID:             dbi.ID,
		CafeteriaID:    dbi.CafeteriaID,
		Name:           dbi.Name,
		AvailableHours: dbi.AvailableHours,
	}
}
