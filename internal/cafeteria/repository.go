package cafeteria

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/pardha-bandaru/cafeteria-api/internal/database"
)

// Repository handles cafeteria persistence. All queries are scoped to the
// owning user; a cafeteria belonging to someone else is indistinguishable
// from one that does not exist.
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new cafeteria owned by the given user
func (r *Repository) Create(ctx context.Context, c *Cafeteria) (*Cafeteria, error) {
	dbCafe := &database.Cafeteria{
		OwnerID:   c.OwnerID,
		Name:      c.Name,
		City:      c.City,
		Address:   c.Address,
		Pincode:   c.Pincode,
		StartTime: c.StartTime,
		CloseTime: c.CloseTime,
	}

	_, err := r.db.NewInsert().
		Model(dbCafe).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cafeteria: %w", err)
	}

	return mapDBCafeteriaToModel(dbCafe), nil
}

// ListByOwner returns all cafeterias owned by the user
func (r *Repository) ListByOwner(ctx context.Context, ownerID int64) ([]*Cafeteria, error) {
	var dbCafes []database.Cafeteria
	err := r.db.NewSelect().
		Model(&dbCafes).
		Where("owner_id = ?", ownerID).
		Order("registered_on DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cafeterias: %w", err)
	}

	cafes := make([]*Cafeteria, 0, len(dbCafes))
	for i := range dbCafes {
		cafes = append(cafes, mapDBCafeteriaToModel(&dbCafes[i]))
	}
	return cafes, nil
}

// GetByIDForOwner returns the cafeteria only if the user owns it
func (r *Repository) GetByIDForOwner(ctx context.Context, id, ownerID int64) (*Cafeteria, error) {
	dbCafe := new(database.Cafeteria)
	err := r.db.NewSelect().
		Model(dbCafe).
		Where("id = ?", id).
		Where("owner_id = ?", ownerID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cafeteria: %w", err)
	}

	return mapDBCafeteriaToModel(dbCafe), nil
}

// UpdateAddress changes the address of an owned cafeteria
func (r *Repository) UpdateAddress(ctx context.Context, id, ownerID int64, address string) (*Cafeteria, error) {
	result, err := r.db.NewUpdate().
		Model((*database.Cafeteria)(nil)).
		Set("address = ?", address).
		Where("id = ?", id).
		Where("owner_id = ?", ownerID).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update cafeteria: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.GetByIDForOwner(ctx, id, ownerID)
}

// Delete removes an owned cafeteria
func (r *Repository) Delete(ctx context.Context, id, ownerID int64) error {
	result, err := r.db.NewDelete().
		Model((*database.Cafeteria)(nil)).
		Where("id = ?", id).
		Where("owner_id = ?", ownerID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete cafeteria: %w", err)
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

// mapDBCafeteriaToModel converts database model to domain model
func mapDBCafeteriaToModel(dbc *database.Cafeteria) *Cafeteria {
	return &Cafeteria{
		ID:           dbc.ID,
		OwnerID:      dbc.OwnerID,
		Name:         dbc.Name,
		City:         dbc.City,
		Address:      dbc.Address,
		Pincode:      dbc.Pincode,
		StartTime:    dbc.StartTime,
		CloseTime:    dbc.CloseTime,
		RegisteredOn: dbc.RegisteredOn,
	}
}
