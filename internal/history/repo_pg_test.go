package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"saenggibu-backend/internal/analyses"
)

func newPGRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreateMarshalsJSONColumns(t *testing.T) {
	repo, mock := newPGRepo(t)

	record := SharedRecord{
		ID:              "rec-1",
		OwnerID:         "google:u1",
		StudentProfile:  "탐구형",
		CareerDirection: "컴퓨터공학",
		OverallScore:    88,
		Strengths:       []string{"세특 연계성"},
		Improvements:    []string{"독서 활동 보강"},
		Result:          &analyses.AnalysisResult{OverallScore: 88},
		IsPrivate:       true,
		CreatedAt:       time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO shared_records").
		WithArgs(
			record.ID,
			record.OwnerID,
			record.StudentProfile,
			record.CareerDirection,
			record.OverallScore,
			`["세특 연계성"]`,
			`["독서 활동 보강"]`,
			sqlmock.AnyArg(), // result
			record.IsPrivate,
			0,
			0,
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), record); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDScansJSONColumns(t *testing.T) {
	repo, mock := newPGRepo(t)

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "owner_id", "student_profile", "career_direction", "overall_score",
		"strengths", "improvements", "result", "is_private", "likes", "saves", "created_at",
	}).AddRow(
		"rec-1", "google:u1", "탐구형", "컴퓨터공학", 88,
		`["세특 연계성"]`, `["독서 활동 보강"]`, `{"overallScore":88}`, false, 4, 2, created,
	)
	mock.ExpectQuery("SELECT (.+) FROM shared_records").
		WithArgs("rec-1").
		WillReturnRows(rows)

	record, err := repo.GetByID(context.Background(), "rec-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if record.Likes != 4 || record.Saves != 2 {
		t.Fatalf("counters = %d/%d", record.Likes, record.Saves)
	}
	if len(record.Strengths) != 1 || record.Strengths[0] != "세특 연계성" {
		t.Fatalf("strengths = %v", record.Strengths)
	}
	if record.Result == nil || record.Result.OverallScore != 88 {
		t.Fatalf("result = %+v", record.Result)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newPGRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM shared_records").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestPGRepoIncrementLikesReturnsNewValue(t *testing.T) {
	repo, mock := newPGRepo(t)

	mock.ExpectQuery("UPDATE shared_records SET likes = likes \\+ 1").
		WithArgs("rec-1").
		WillReturnRows(sqlmock.NewRows([]string{"likes"}).AddRow(5))

	count, err := repo.IncrementLikes(context.Background(), "rec-1")
	if err != nil {
		t.Fatalf("IncrementLikes: %v", err)
	}
	if count != 5 {
		t.Fatalf("count = %d", count)
	}
}

func TestPGRepoIncrementMissingRecord(t *testing.T) {
	repo, mock := newPGRepo(t)

	mock.ExpectQuery("UPDATE shared_records SET saves = saves \\+ 1").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"saves"}))

	_, err := repo.IncrementSaves(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestPGRepoDeleteNotFound(t *testing.T) {
	repo, mock := newPGRepo(t)

	mock.ExpectExec("DELETE FROM shared_records").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestPGRepoListByOwnerAppliesLimit(t *testing.T) {
	repo, mock := newPGRepo(t)

	rows := sqlmock.NewRows([]string{
		"id", "owner_id", "student_profile", "career_direction", "overall_score",
		"strengths", "improvements", "result", "is_private", "likes", "saves", "created_at",
	}).AddRow(
		"rec-1", "google:u1", "", "", 0, nil, nil, nil, false, 0, 0, time.Now().UTC(),
	)
	mock.ExpectQuery("SELECT (.+) FROM shared_records").
		WithArgs("google:u1", 20).
		WillReturnRows(rows)

	records, err := repo.ListByOwner(context.Background(), "google:u1", 20)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(records) != 1 || records[0].ID != "rec-1" {
		t.Fatalf("records = %v", records)
	}
	if records[0].Result != nil {
		t.Fatalf("result should stay nil, got %+v", records[0].Result)
	}
}
