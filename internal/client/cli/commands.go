package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/pokedex/internal/client/catalog"
	"github.com/dmitrijs2005/pokedex/internal/client/models"
)

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid record id %q", arg)
	}
	return id, nil
}

func (a *App) recordLine(rec *models.Record) string {
	star := " "
	if a.favorites.IsFavorite(rec.ID) {
		star = "*"
	}
	return fmt.Sprintf("%s %8d  %-16s %s", star, rec.ID, rec.Name.English, strings.Join(rec.TypeTags(), "/"))
}

func (a *App) printRecords(recs []models.Record) {
	if len(recs) == 0 {
		printlnFn("no records")
		return
	}
	for i := range recs {
		printlnFn(a.recordLine(&recs[i]))
	}
}

// Next loads the next catalog page into the working set.
func (a *App) Next(ctx context.Context) error {
	if !a.engine.HasMore() {
		printlnFn("no more pages")
		return nil
	}
	recs, err := a.engine.LoadPage(ctx, a.page+1)
	if err != nil {
		return err
	}
	a.page++
	a.printRecords(recs)
	if !a.engine.HasMore() {
		printlnFn("end of catalog")
	}
	return nil
}

// List prints the current working set without touching the store or the
// remote source.
func (a *App) List(ctx context.Context) error {
	a.printRecords(a.engine.WorkingSet())
	return nil
}

// Filter prints the working-set records carrying the given type tag.
func (a *App) Filter(ctx context.Context, arg string) error {
	a.printRecords(a.engine.FilterByType(arg))
	return nil
}

// Show prints one record's full profile, revalidating its image artifact.
func (a *App) Show(ctx context.Context, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	rec, err := a.engine.GetRecord(ctx, id)
	if err != nil {
		return err
	}

	printlnFn(a.recordLine(&rec))
	if rec.Name.Japanese != "" {
		printlnFn("  japanese:    " + rec.Name.Japanese)
	}
	if rec.Description != "" {
		printlnFn("  description: " + rec.Description)
	}
	if rec.Profile.Species != "" {
		printlnFn("  species:     " + rec.Profile.Species)
	}
	if rec.Profile.Height != "" {
		printlnFn("  height:      " + rec.Profile.Height)
	}
	if rec.Profile.Weight != "" {
		printlnFn("  weight:      " + rec.Profile.Weight)
	}
	if rec.Profile.Ability != "" {
		printlnFn("  ability:     " + rec.Profile.Ability)
	}
	printlnFn("  image:       " + a.resolver.ResolveImage(ctx, &rec))
	return nil
}

// Create reads a draft interactively and hands it to the engine.
func (a *App) Create(ctx context.Context) error {
	name, err := getSimpleText(a.scanner, "Name (english)")
	if err != nil {
		return err
	}
	types, err := getTypeList(a.scanner, "Types (comma-separated)")
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.scanner, "Description")
	if err != nil {
		return err
	}
	imageURI, err := getSimpleText(a.scanner, "Image URI (optional)")
	if err != nil {
		return err
	}

	rec, err := a.engine.CreateRecord(ctx, catalog.Draft{
		Name:        models.Name{English: name},
		Type:        types,
		Description: description,
		ImageURI:    imageURI,
	})
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("created record %d", rec.ID))
	return nil
}

// Edit reads patch values interactively; empty answers keep the stored
// value.
func (a *App) Edit(ctx context.Context, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	rec, err := a.engine.GetRecord(ctx, id)
	if err != nil {
		return err
	}

	var patch models.Patch

	name, err := getSimpleText(a.scanner, fmt.Sprintf("Name [%s]", rec.Name.English))
	if err != nil {
		return err
	}
	if name != "" {
		n := rec.Name
		n.English = name
		patch.Name = &n
	}

	description, err := getSimpleText(a.scanner, "Description")
	if err != nil {
		return err
	}
	if description != "" {
		patch.Description = &description
	}

	if err := a.engine.UpdateRecord(ctx, id, patch); err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("updated record %d", id))
	return nil
}

// Delete removes a record and its cached image.
func (a *App) Delete(ctx context.Context, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	if err := a.engine.DeleteRecord(ctx, id); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("deleted record %d", id))
	return nil
}

// Fav toggles the favorite flag of a record.
func (a *App) Fav(ctx context.Context, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	a.favorites.Toggle(ctx, id)
	if a.favorites.IsFavorite(id) {
		printlnFn(fmt.Sprintf("record %d is now a favorite", id))
	} else {
		printlnFn(fmt.Sprintf("record %d is no longer a favorite", id))
	}
	return nil
}

// Favs prints the favorited records that are present in the working set,
// plus the IDs of favorites not currently loaded.
func (a *App) Favs(ctx context.Context) error {
	ids := a.favorites.List()
	if len(ids) == 0 {
		printlnFn("no favorites")
		return nil
	}

	loaded := make(map[int64]models.Record)
	for _, rec := range a.engine.WorkingSet() {
		loaded[rec.ID] = rec
	}

	for _, id := range ids {
		if rec, ok := loaded[id]; ok {
			printlnFn(a.recordLine(&rec))
		} else {
			printlnFn(fmt.Sprintf("* %8d  (not loaded)", id))
		}
	}
	return nil
}
