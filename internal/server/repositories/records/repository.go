// Package records provides persistence for catalog records.
package records

import (
	"context"

	"github.com/dmitrijs2005/pokedex/internal/server/models"
)

type Repository interface {
	// List returns the records whose IDs fall in [fromID, toID), ordered
	// by ID. Paging by ID window rather than row offset keeps server
	// pages congruent with the ID ranges clients cache locally.
	List(ctx context.Context, fromID, toID int64) ([]models.Record, error)
	GetByID(ctx context.Context, id int64) (*models.Record, error)
	CreateOrUpdate(ctx context.Context, rec *models.Record) error
	Count(ctx context.Context) (int64, error)
}
