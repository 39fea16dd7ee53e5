package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pokedex/internal/common"
	"github.com/dmitrijs2005/pokedex/internal/dbx"
	"github.com/dmitrijs2005/pokedex/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// scanRecord decodes one row. The jsonb columns are unmarshalled into the
// structured fields.
func scanRecord(scan func(dest ...any) error) (*models.Record, error) {
	var (
		rec         models.Record
		nameJSON    []byte
		typeJSON    []byte
		profileJSON []byte
	)

	if err := scan(&rec.ID, &nameJSON, &typeJSON, &rec.Description, &profileJSON, &rec.ImageRemote); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(nameJSON, &rec.Name); err != nil {
		return nil, fmt.Errorf("decoding name: %w", err)
	}
	if err := json.Unmarshal(typeJSON, &rec.Type); err != nil {
		return nil, fmt.Errorf("decoding type: %w", err)
	}
	if err := json.Unmarshal(profileJSON, &rec.Profile); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}

	return &rec, nil
}

func encodeColumns(rec *models.Record) (nameJSON, typeJSON, profileJSON []byte, err error) {
	if nameJSON, err = json.Marshal(rec.Name); err != nil {
		return nil, nil, nil, err
	}
	tags := rec.Type
	if tags == nil {
		tags = []string{}
	}
	if typeJSON, err = json.Marshal(tags); err != nil {
		return nil, nil, nil, err
	}
	if profileJSON, err = json.Marshal(rec.Profile); err != nil {
		return nil, nil, nil, err
	}
	return nameJSON, typeJSON, profileJSON, nil
}

func (r *PostgresRepository) List(ctx context.Context, fromID, toID int64) ([]models.Record, error) {
	query :=
		`SELECT id, name, type, description, profile, image_remote FROM records
		 WHERE id >= $1 AND id < $2
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, fromID, toID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Record
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Record, error) {
	query :=
		`SELECT id, name, type, description, profile, image_remote FROM records
		 WHERE id = $1
		 `

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rec, nil
}

func (r *PostgresRepository) CreateOrUpdate(ctx context.Context, rec *models.Record) error {
	nameJSON, typeJSON, profileJSON, err := encodeColumns(rec)
	if err != nil {
		return fmt.Errorf("encoding record %d: %w", rec.ID, err)
	}

	query :=
		`INSERT INTO records (id, name, type, description, profile, image_remote)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET
		     name = EXCLUDED.name,
		     type = EXCLUDED.type,
		     description = EXCLUDED.description,
		     profile = EXCLUDED.profile,
		     image_remote = EXCLUDED.image_remote
		 `

	if _, err := r.db.ExecContext(ctx, query,
		rec.ID, nameJSON, typeJSON, rec.Description, profileJSON, rec.ImageRemote); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT count(*) FROM records`

	var count int64
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return count, nil
}
