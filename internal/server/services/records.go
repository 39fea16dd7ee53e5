// Package services contains server-side business logic: catalog page
// listing and mutation, seed import, admin authentication, and presigned
// image URL issuing.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/pokedex/internal/common"
	"github.com/dmitrijs2005/pokedex/internal/dbx"
	sc "github.com/dmitrijs2005/pokedex/internal/server/config"
	"github.com/dmitrijs2005/pokedex/internal/server/models"
	"github.com/dmitrijs2005/pokedex/internal/server/repositories/repomanager"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// CatalogService serves the paginated record listing and the admin-side
// mutations behind it.
type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewCatalogService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config) *CatalogService {
	return &CatalogService{
		db:          db,
		repomanager: repomanager,
		config:      config,
	}
}

// imageObjectKey is the canonical S3 object name for a record's image.
func imageObjectKey(id int64) string {
	return fmt.Sprintf("%d.png", id)
}

// ListPage returns one ordered page of records with their image URLs
// rewritten per configuration. A short or empty result means the catalog
// is exhausted; that is the client's signal, not an error.
//
// Page N covers the ID window [(N-1)*limit, N*limit). Clients probe
// their local cache for exactly that window before fetching, so paging
// must stay congruent with record IDs, not row positions. The catalog
// is expected to carry dense zero-based IDs; a gap reads as a short
// page and ends pagination early.
func (s *CatalogService) ListPage(ctx context.Context, page, limit int) ([]models.Record, error) {
	if page < 1 || limit < 1 {
		return nil, fmt.Errorf("invalid page %d limit %d: %w", page, limit, common.ErrorInternal)
	}

	fromID := int64(page-1) * int64(limit)
	repo := s.repomanager.Records(s.db)
	batch, err := repo.List(ctx, fromID, fromID+int64(limit))
	if err != nil {
		return nil, fmt.Errorf("listing page %d: %v", page, err)
	}

	for i := range batch {
		url, err := s.imageURL(ctx, &batch[i])
		if err != nil {
			return nil, err
		}
		batch[i].ImageRemote = url
	}

	return batch, nil
}

// imageURL picks the image URL a client should see: a presigned S3 GET
// link, a static base URL, or the stored URL as-is.
func (s *CatalogService) imageURL(ctx context.Context, rec *models.Record) (string, error) {
	if s.config.UseS3Images {
		return s.GetPresignedGetUrl(ctx, imageObjectKey(rec.ID))
	}
	if s.config.ImageBaseURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.config.ImageBaseURL, "/"), imageObjectKey(rec.ID)), nil
	}
	return rec.ImageRemote, nil
}

// Upsert validates and stores one record.
func (s *CatalogService) Upsert(ctx context.Context, rec *models.Record) error {
	if rec.ID <= 0 {
		return fmt.Errorf("record id %d: %w", rec.ID, common.ErrorInternal)
	}
	if rec.Name.English == "" {
		return fmt.Errorf("record %d has no english name: %w", rec.ID, common.ErrorInternal)
	}

	repo := s.repomanager.Records(s.db)
	if err := repo.CreateOrUpdate(ctx, rec); err != nil {
		return fmt.Errorf("error storing record %d: %v", rec.ID, err)
	}
	return nil
}

// seedRecord mirrors the catalog dump format.
type seedRecord struct {
	ID          int64          `json:"id"`
	Name        models.Name    `json:"name"`
	Type        []string       `json:"type"`
	Description string         `json:"description"`
	Profile     models.Profile `json:"profile"`
	Image       struct {
		Remote string `json:"remote"`
	} `json:"image"`
}

// ImportSeed loads a JSON catalog dump into an empty records table. A
// non-empty table makes it a no-op so restarts never clobber edits.
func (s *CatalogService) ImportSeed(ctx context.Context, path string) (int, error) {
	repo := s.repomanager.Records(s.db)

	count, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("error counting records: %v", err)
	}
	if count > 0 {
		return 0, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("error reading seed file: %v", err)
	}

	var seeds []seedRecord
	if err := json.Unmarshal(data, &seeds); err != nil {
		return 0, fmt.Errorf("error parsing seed file: %v", err)
	}

	imported := 0
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.Records(tx)
		for _, seed := range seeds {
			rec := &models.Record{
				ID:          seed.ID,
				Name:        seed.Name,
				Type:        seed.Type,
				Description: seed.Description,
				Profile:     seed.Profile,
				ImageRemote: seed.Image.Remote,
			}
			if err := repoTx.CreateOrUpdate(ctx, rec); err != nil {
				return err
			}
			imported++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("error importing seed: %v", err)
	}

	return imported, nil
}

func (s *CatalogService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// GetPresignedPutUrl issues a presigned upload URL for a record's image
// object.
func (s *CatalogService) GetPresignedPutUrl(ctx context.Context, id int64) (string, string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := imageObjectKey(id)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// GetPresignedGetUrl issues a presigned download URL for the given object
// key.
func (s *CatalogService) GetPresignedGetUrl(ctx context.Context, key string) (string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
