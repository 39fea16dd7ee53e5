// Package catalog implements the cache/sync engine: it reconciles pages
// fetched from the remote catalog with records persisted in the durable
// store, owns the deduplicated in-memory working set, and drives image
// acquisition for incoming records.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/pokedex/internal/client/models"
	"github.com/dmitrijs2005/pokedex/internal/client/storage"
	"github.com/dmitrijs2005/pokedex/internal/common"
	"github.com/dmitrijs2005/pokedex/internal/logging"
	"golang.org/x/sync/errgroup"
)

// DefaultPageSize is the fixed page window used against both the durable
// store probe and the remote source.
const DefaultPageSize = 10

// createdIndexKey is the durable-store entry listing IDs of locally
// created records. Their timestamp IDs never fall inside a page's probe
// range, so without the index they would vanish from the working set
// after a restart.
const createdIndexKey = "created_ids"

// timeNow is a test seam for ID assignment.
var timeNow = time.Now

// Source is the remote paginated catalog consumed by the engine.
type Source interface {
	FetchPage(ctx context.Context, page, limit int) ([]models.Record, error)
}

// ImageResolver is the slice of the image resolution policy the engine
// needs. *images.Resolver satisfies it.
type ImageResolver interface {
	EnsureLocalCopy(ctx context.Context, srcURI, destName string) (string, error)
	ResolveImage(ctx context.Context, rec *models.Record) string
	RemoveArtifact(ctx context.Context, rec *models.Record) error
}

// Draft is the input of CreateRecord. The ID and the local image path are
// assigned by the engine.
type Draft struct {
	Name        models.Name
	Type        []string
	Description string
	Profile     models.Profile
	ImageURI    string
}

// Engine owns the in-memory working set exclusively. It performs
// read-modify-write sequences on it without locks: the driving UI is
// single-threaded and user-paced, and that assumption is a documented
// constraint, not a concurrency guarantee.
type Engine struct {
	kv       storage.KV
	source   Source
	images   ImageResolver
	logger   logging.Logger
	pageSize int

	working []models.Record
	known   map[int64]struct{}
	hasMore bool
}

// NewEngine wires the engine to its collaborators.
func NewEngine(kv storage.KV, source Source, images ImageResolver, logger logging.Logger) *Engine {
	return &Engine{
		kv:       kv,
		source:   source,
		images:   images,
		logger:   logger.With("component", "catalog"),
		pageSize: DefaultPageSize,
		known:    make(map[int64]struct{}),
		hasMore:  true,
	}
}

// HasMore reports whether further pages may exist. Once a remote page
// comes back short it latches false and is never re-enabled.
func (e *Engine) HasMore() bool {
	return e.hasMore
}

// WorkingSet returns a copy of the current working set.
func (e *Engine) WorkingSet() []models.Record {
	out := make([]models.Record, len(e.working))
	copy(out, e.working)
	return out
}

// FilterByType returns the working-set records carrying the given tag.
// Records without tags match the implicit Null tag; an empty tag selects
// everything.
func (e *Engine) FilterByType(tag string) []models.Record {
	if tag == "" {
		return e.WorkingSet()
	}
	var out []models.Record
	for _, r := range e.working {
		if r.HasType(tag) {
			out = append(out, r)
		}
	}
	return out
}

// LoadPage loads one page into the working set and returns the merged set.
//
// The durable store is probed first for every ID the page window expects;
// any hit makes the local data authoritative for this call and skips the
// remote fetch entirely. Only a fully cold page window reaches out to the
// remote source. Failed store reads and malformed entries count as misses.
func (e *Engine) LoadPage(ctx context.Context, page int) ([]models.Record, error) {
	if page < 1 {
		return nil, fmt.Errorf("page %d: %w", page, common.ErrorInternal)
	}

	if page == 1 && len(e.working) == 0 {
		e.restoreCreated(ctx)
	}

	local := e.probeLocal(ctx, page)
	if len(local) > 0 {
		e.merge(local)
		return e.WorkingSet(), nil
	}

	batch, err := e.source.FetchPage(ctx, page, e.pageSize)
	if err != nil {
		return nil, fmt.Errorf("loading page %d: %w", page, err)
	}

	if len(batch) < e.pageSize {
		e.hasMore = false
	}

	e.normalize(ctx, batch)
	e.merge(batch)
	return e.WorkingSet(), nil
}

// probeLocal reads the page window's expected keys concurrently and
// returns the hits in probe order.
func (e *Engine) probeLocal(ctx context.Context, page int) []models.Record {
	found := make([]*models.Record, e.pageSize)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < e.pageSize; i++ {
		id := int64((page-1)*e.pageSize + i)
		g.Go(func() error {
			rec, err := e.loadStored(gctx, id)
			if err != nil {
				if !errors.Is(err, common.ErrorNotFound) {
					e.logger.Warn(gctx, "store probe failed", "record_id", id, "error", err)
				}
				return nil
			}
			found[i] = rec
			return nil
		})
	}
	_ = g.Wait()

	var hits []models.Record
	for _, rec := range found {
		if rec != nil {
			hits = append(hits, *rec)
		}
	}
	return hits
}

// normalize acquires each record's image artifact and persists the record.
// Acquisition failures leave the local path empty; store write failures
// are logged and the record still enters the working set.
func (e *Engine) normalize(ctx context.Context, batch []models.Record) {
	g, gctx := errgroup.WithContext(ctx)
	for i := range batch {
		rec := &batch[i]
		g.Go(func() error {
			local, err := e.images.EnsureLocalCopy(gctx, rec.Image.Remote, rec.ImageFileName())
			if err != nil {
				e.logger.Warn(gctx, "image acquisition failed", "record_id", rec.ID, "error", err)
			} else {
				rec.Image.Local = local
			}

			if err := e.persist(gctx, rec); err != nil {
				e.logger.Error(gctx, "failed to persist record", "record_id", rec.ID, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// merge appends incoming records to the working set, dropping any whose
// ID is already present. Existing entries are never overwritten here;
// only explicit edits replace them.
func (e *Engine) merge(batch []models.Record) {
	for _, rec := range batch {
		if _, ok := e.known[rec.ID]; ok {
			continue
		}
		e.known[rec.ID] = struct{}{}
		e.working = append(e.working, rec)
	}
}

// GetRecord returns a single stored record, revalidating its image
// artifact on the way (self-healing: a repaired local path is persisted
// and reflected in the working set). An absent or malformed entry is
// reported as ErrorNotFound.
func (e *Engine) GetRecord(ctx context.Context, id int64) (models.Record, error) {
	rec, err := e.loadStored(ctx, id)
	if err != nil {
		return models.Record{}, err
	}

	before := rec.Image.Local
	e.images.ResolveImage(ctx, rec)
	if rec.Image.Local != before {
		if err := e.persist(ctx, rec); err != nil {
			e.logger.Error(ctx, "failed to persist repaired image path", "record_id", id, "error", err)
		}
		e.replaceInWorkingSet(*rec)
	}

	return *rec, nil
}

// UpdateRecord merges patch into the stored record and replaces the
// matching working-set entry in place. On a store failure the error is
// returned and the working set is left unchanged.
func (e *Engine) UpdateRecord(ctx context.Context, id int64, patch models.Patch) error {
	rec, err := e.loadStored(ctx, id)
	if err != nil {
		return err
	}

	rec.Apply(patch)

	if err := e.persist(ctx, rec); err != nil {
		return fmt.Errorf("updating record %d: %w", id, err)
	}

	e.replaceInWorkingSet(*rec)
	return nil
}

// DeleteRecord removes the record from the durable store and the working
// set, then cleans up its blob artifact. Blob cleanup is best-effort.
func (e *Engine) DeleteRecord(ctx context.Context, id int64) error {
	if err := e.kv.Remove(ctx, models.RecordKey(id)); err != nil {
		return fmt.Errorf("deleting record %d: %w", id, err)
	}

	for i := range e.working {
		if e.working[i].ID == id {
			e.working = append(e.working[:i], e.working[i+1:]...)
			delete(e.known, id)
			break
		}
	}

	rec := models.Record{ID: id}
	if err := e.images.RemoveArtifact(ctx, &rec); err != nil {
		e.logger.Warn(ctx, "failed to remove image artifact", "record_id", id, "error", err)
	}
	e.dropCreated(ctx, id)
	return nil
}

// CreateRecord assigns a timestamp ID to the draft, acquires its image,
// persists it, and prepends it to the working set, which is then ordered
// newest-first.
func (e *Engine) CreateRecord(ctx context.Context, draft Draft) (models.Record, error) {
	rec := models.Record{
		ID:          timeNow().UnixMilli(),
		Name:        draft.Name,
		Type:        draft.Type,
		Description: draft.Description,
		Profile:     draft.Profile,
		Image:       models.Image{Remote: draft.ImageURI},
	}

	if err := rec.Validate(); err != nil {
		return models.Record{}, err
	}

	if draft.ImageURI != "" {
		local, err := e.images.EnsureLocalCopy(ctx, draft.ImageURI, rec.ImageFileName())
		if err != nil {
			e.logger.Warn(ctx, "image acquisition failed", "record_id", rec.ID, "error", err)
		} else {
			rec.Image.Local = local
		}
	}

	if err := e.persist(ctx, &rec); err != nil {
		return models.Record{}, fmt.Errorf("creating record: %w", err)
	}

	e.addCreated(ctx, rec.ID)

	e.known[rec.ID] = struct{}{}
	e.working = append([]models.Record{rec}, e.working...)
	sort.SliceStable(e.working, func(i, j int) bool { return e.working[i].ID > e.working[j].ID })

	return rec, nil
}

// loadStored reads and decodes one record from the durable store.
func (e *Engine) loadStored(ctx context.Context, id int64) (*models.Record, error) {
	value, ok, err := e.kv.Get(ctx, models.RecordKey(id))
	if err != nil {
		return nil, fmt.Errorf("reading record %d: %w", id, err)
	}
	if !ok {
		return nil, fmt.Errorf("record %d: %w", id, common.ErrorNotFound)
	}
	return models.Decode(value)
}

func (e *Engine) persist(ctx context.Context, rec *models.Record) error {
	value, err := rec.Encode()
	if err != nil {
		return err
	}
	return e.kv.Set(ctx, rec.StorageKey(), value)
}

func (e *Engine) replaceInWorkingSet(rec models.Record) {
	for i := range e.working {
		if e.working[i].ID == rec.ID {
			e.working[i] = rec
			return
		}
	}
}

// restoreCreated merges locally created records back into the working set
// after a cold start. Their IDs live in a persisted index because the
// page probe's computed range can never reach them.
func (e *Engine) restoreCreated(ctx context.Context) {
	ids, err := e.createdIDs(ctx)
	if err != nil {
		e.logger.Warn(ctx, "failed to load created-records index", "error", err)
		return
	}

	var created []models.Record
	for _, id := range ids {
		rec, err := e.loadStored(ctx, id)
		if err != nil {
			e.logger.Warn(ctx, "created record missing from store", "record_id", id, "error", err)
			continue
		}
		created = append(created, *rec)
	}

	sort.SliceStable(created, func(i, j int) bool { return created[i].ID > created[j].ID })
	e.merge(created)
}

func (e *Engine) createdIDs(ctx context.Context) ([]int64, error) {
	value, ok, err := e.kv.Get(ctx, createdIndexKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var ids []int64
	if err := json.Unmarshal([]byte(value), &ids); err != nil {
		return nil, fmt.Errorf("malformed created-records index: %v: %w", err, common.ErrorStore)
	}
	return ids, nil
}

func (e *Engine) addCreated(ctx context.Context, id int64) {
	ids, err := e.createdIDs(ctx)
	if err != nil {
		e.logger.Warn(ctx, "failed to load created-records index", "error", err)
		ids = nil
	}
	ids = append(ids, id)
	e.saveCreated(ctx, ids)
}

func (e *Engine) dropCreated(ctx context.Context, id int64) {
	ids, err := e.createdIDs(ctx)
	if err != nil || len(ids) == 0 {
		return
	}
	out := ids[:0]
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	e.saveCreated(ctx, out)
}

func (e *Engine) saveCreated(ctx context.Context, ids []int64) {
	b, err := json.Marshal(ids)
	if err != nil {
		return
	}
	if err := e.kv.Set(ctx, createdIndexKey, string(b)); err != nil {
		e.logger.Error(ctx, "failed to persist created-records index", "error", err)
	}
}
