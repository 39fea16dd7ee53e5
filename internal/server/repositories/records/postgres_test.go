package records

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/pokedex/internal/common"
	"github.com/dmitrijs2005/pokedex/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var listQ = `(?s)^SELECT\s+id,\s*name,\s*type,\s*description,\s*profile,\s*image_remote\s+FROM\s+records\s+WHERE\s+id\s*>=\s*\$1\s+AND\s+id\s*<\s*\$2\s+ORDER\s+BY\s+id\s*$`
var getQ = `(?s)^SELECT\s+id,\s*name,\s*type,\s*description,\s*profile,\s*image_remote\s+FROM\s+records\s+WHERE\s+id\s*=\s*\$1\s*$`
var countQ = `(?s)^SELECT\s+count\(\*\)\s+FROM\s+records\s*$`

func recordRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "type", "description", "profile", "image_remote"})
}

func TestList_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := recordRows().
		AddRow(int64(1), []byte(`{"english":"Bulbasaur"}`), []byte(`["Grass","Poison"]`), "Seed pokemon", []byte(`{"height":"0.7 m"}`), "https://img/1.png").
		AddRow(int64(2), []byte(`{"english":"Ivysaur"}`), []byte(`[]`), "", []byte(`{}`), "https://img/2.png")

	mock.ExpectQuery(listQ).WithArgs(int64(0), int64(10)).WillReturnRows(rows)

	got, err := repo.List(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected row count: %d", len(got))
	}
	if got[0].ID != 1 || got[0].Name.English != "Bulbasaur" || len(got[0].Type) != 2 {
		t.Fatalf("unexpected record: %+v", got[0])
	}
	if got[0].Profile.Height != "0.7 m" {
		t.Fatalf("unexpected profile: %+v", got[0].Profile)
	}
}

func TestList_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQ).WithArgs(int64(0), int64(10)).WillReturnError(errors.New("db down"))

	_, err := repo.List(context.Background(), 0, 10)
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := recordRows().
		AddRow(int64(25), []byte(`{"english":"Pikachu","japanese":"ピカチュウ"}`), []byte(`["Electric"]`), "Mouse pokemon", []byte(`{"ability":"Static"}`), "https://img/25.png")

	mock.ExpectQuery(getQ).WithArgs(int64(25)).WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), 25)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.ID != 25 || got.Name.English != "Pikachu" || got.Profile.Ability != "Static" {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getQ).WithArgs(int64(999)).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 999)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestCreateOrUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+records\s*\(id,\s*name,\s*type,\s*description,\s*profile,\s*image_remote\)\s*VALUES.*ON\s+CONFLICT\s*\(id\)\s*DO\s+UPDATE`

	mock.ExpectExec(q).
		WithArgs(int64(25), []byte(`{"english":"Pikachu"}`), []byte(`["Electric"]`), "Mouse pokemon", []byte(`{}`), "https://img/25.png").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := &models.Record{
		ID:          25,
		Name:        models.Name{English: "Pikachu"},
		Type:        []string{"Electric"},
		Description: "Mouse pokemon",
		ImageRemote: "https://img/25.png",
	}
	if err := repo.CreateOrUpdate(context.Background(), rec); err != nil {
		t.Fatalf("CreateOrUpdate error: %v", err)
	}
}

func TestCreateOrUpdate_NilTypeEncodedAsEmptyArray(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+records`

	mock.ExpectExec(q).
		WithArgs(int64(7), []byte(`{"english":"Squirtle"}`), []byte(`[]`), "", []byte(`{}`), "").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := &models.Record{ID: 7, Name: models.Name{English: "Squirtle"}}
	if err := repo.CreateOrUpdate(context.Background(), rec); err != nil {
		t.Fatalf("CreateOrUpdate error: %v", err)
	}
}

func TestCount_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"count"}).AddRow(int64(151))
	mock.ExpectQuery(countQ).WillReturnRows(rows)

	got, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if got != 151 {
		t.Fatalf("unexpected count: %d", got)
	}
}
