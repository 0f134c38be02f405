package vocabulary

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var itemColumns = []string{
	"id", "word", "level", "definition", "translation", "example_sentence", "part_of_speech",
	"related_forms", "synonyms", "antonyms", "collocations",
	"is_known", "repetitions", "next_review_date", "last_reviewed_date", "review_count", "version",
	"created_at", "updated_at",
}

func addItemRow(rows *sqlmock.Rows, id int64, word, level string, isKnown bool, repetitions int, nextReview *time.Time, now time.Time) *sqlmock.Rows {
	var next any
	if nextReview != nil {
		next = *nextReview
	}
	return rows.AddRow(
		id, word, level, "definition of "+word, "", "", "noun",
		"", "", "", "",
		isKnown, repetitions, next, nil, repetitions, 1,
		now, now,
	)
}

func newMockRepository(t *testing.T) (*DBRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewDBRepository(sqlx.NewDb(db, "mysql")), mock
}

func TestDBRepository_FetchAll(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	due := now.AddDate(0, 0, 1)

	tests := []struct {
		name      string
		filter    Filter
		setupMock func(mock sqlmock.Sqlmock)
		want      []Item
		wantErr   bool
	}{
		{
			name:   "no filter",
			filter: Filter{},
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(itemColumns)
				addItemRow(rows, 1, "abandon", "B2", false, 0, nil, now)
				addItemRow(rows, 2, "ability", "A2", false, 1, &due, now)
				mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM vocabulary_items ORDER BY id")).
					WithoutArgs().
					WillReturnRows(rows)
			},
			want: []Item{
				{
					ID: 1, Word: "abandon", Level: LevelB2, Definition: "definition of abandon", PartOfSpeech: "noun",
					Version: 1, CreatedAt: now, UpdatedAt: now,
				},
				{
					ID: 2, Word: "ability", Level: LevelA2, Definition: "definition of ability", PartOfSpeech: "noun",
					Repetitions: 1, NextReviewDate: &due, ReviewCount: 1, Version: 1, CreatedAt: now, UpdatedAt: now,
				},
			},
		},
		{
			name: "new items in unlocked levels excluding recent ids",
			filter: Filter{
				States:     []State{StateNew},
				Levels:     []Level{LevelA1, LevelA2},
				ExcludeIDs: []int64{3, 4},
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(itemColumns)
				addItemRow(rows, 5, "able", "A1", false, 0, nil, now)
				mock.ExpectQuery(regexp.QuoteMeta(
					"SELECT * FROM vocabulary_items WHERE ((is_known = ? AND repetitions = 0 AND next_review_date IS NULL)) " +
						"AND level IN (?, ?) AND id NOT IN (?, ?) ORDER BY id")).
					WithArgs(false, "A1", "A2", int64(3), int64(4)).
					WillReturnRows(rows)
			},
			want: []Item{
				{
					ID: 5, Word: "able", Level: LevelA1, Definition: "definition of able", PartOfSpeech: "noun",
					Version: 1, CreatedAt: now, UpdatedAt: now,
				},
			},
		},
		{
			name:   "in review or known",
			filter: Filter{States: []State{StateInReview, StateKnown}},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(
					"SELECT * FROM vocabulary_items WHERE ((is_known = ? AND (repetitions > 0 OR next_review_date IS NOT NULL)) " +
						"OR (is_known = ?)) ORDER BY id")).
					WithArgs(false, true).
					WillReturnRows(sqlmock.NewRows(itemColumns))
			},
		},
		{
			name:   "db error",
			filter: Filter{},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM vocabulary_items ORDER BY id")).
					WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setupMock(mock)

			got, err := repo.FetchAll(context.Background(), tt.filter)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrStoreRead)
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_FetchAll_UnsupportedState(t *testing.T) {
	repo, mock := newMockRepository(t)

	_, err := repo.FetchAll(context.Background(), Filter{States: []State{State(99)}})
	assert.ErrorIs(t, err, ErrStoreRead)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBRepository_FindByWord(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta("SELECT * FROM vocabulary_items WHERE word = ?")

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      *Item
		wantErr   bool
	}{
		{
			name: "found",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(itemColumns)
				addItemRow(rows, 7, "abroad", "A2", true, 2, nil, now)
				mock.ExpectQuery(query).WithArgs("abroad").WillReturnRows(rows)
			},
			want: &Item{
				ID: 7, Word: "abroad", Level: LevelA2, Definition: "definition of abroad", PartOfSpeech: "noun",
				IsKnown: true, Repetitions: 2, ReviewCount: 2, Version: 1, CreatedAt: now, UpdatedAt: now,
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs("abroad").WillReturnError(sql.ErrNoRows)
			},
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs("abroad").WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setupMock(mock)

			got, err := repo.FindByWord(context.Background(), "abroad")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrStoreRead)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_Save(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	next := now.AddDate(0, 0, 3)
	query := regexp.QuoteMeta(`UPDATE vocabulary_items
		SET is_known = ?, repetitions = ?, next_review_date = ?, last_reviewed_date = ?, review_count = ?,
			version = version + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND version = ?`)

	tests := []struct {
		name        string
		setupMock   func(mock sqlmock.Sqlmock)
		wantVersion int64
		wantErrs    []error
	}{
		{
			name: "saves and advances the version",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(query).
					WithArgs(false, 2, &next, &now, 5, int64(9), int64(3)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantVersion: 4,
		},
		{
			name: "stale version is a conflict",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(query).
					WithArgs(false, 2, &next, &now, 5, int64(9), int64(3)).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantVersion: 3,
			wantErrs:    []error{ErrStoreWrite, ErrConflict},
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(query).WillReturnError(fmt.Errorf("connection refused"))
			},
			wantVersion: 3,
			wantErrs:    []error{ErrStoreWrite},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setupMock(mock)

			item := &Item{ID: 9, Word: "absent", Repetitions: 2, NextReviewDate: &next, LastReviewedDate: &now, ReviewCount: 5, Version: 3}
			err := repo.Save(context.Background(), item)
			if len(tt.wantErrs) > 0 {
				for _, wantErr := range tt.wantErrs {
					assert.ErrorIs(t, err, wantErr)
				}
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantVersion, item.Version)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_BatchCreate(t *testing.T) {
	insertPrefix := regexp.QuoteMeta("INSERT INTO vocabulary_items (word, level, definition, translation, example_sentence, " +
		"part_of_speech, related_forms, synonyms, antonyms, collocations) VALUES")

	manyItems := make([]*Item, batchSize+1)
	for i := range manyItems {
		manyItems[i] = &Item{Word: fmt.Sprintf("word%d", i), Level: LevelB2}
	}

	tests := []struct {
		name      string
		items     []*Item
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name:      "empty input does nothing",
			setupMock: func(mock sqlmock.Sqlmock) {},
		},
		{
			name: "inserts all rows in one statement",
			items: []*Item{
				{Word: "abandon", Level: LevelB2, Definition: "to leave"},
				{Word: "ability", Level: LevelA2, Synonyms: "capability"},
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(insertPrefix).
					WithArgs(
						"abandon", "B2", "to leave", "", "", "", "", "", "", "",
						"ability", "A2", "", "", "", "", "", "capability", "", "",
					).
					WillReturnResult(sqlmock.NewResult(1, 2))
				mock.ExpectCommit()
			},
		},
		{
			name:  "splits large inputs into batches",
			items: manyItems,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(insertPrefix).WillReturnResult(sqlmock.NewResult(1, batchSize))
				mock.ExpectExec(insertPrefix).WillReturnResult(sqlmock.NewResult(batchSize+1, 1))
				mock.ExpectCommit()
			},
		},
		{
			name:  "duplicate word rolls back",
			items: []*Item{{Word: "abandon", Level: LevelB2}},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(insertPrefix).WillReturnError(fmt.Errorf("Duplicate entry 'abandon'"))
				mock.ExpectRollback()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setupMock(mock)

			err := repo.BatchCreate(context.Background(), tt.items)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrStoreWrite)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_UpdateContent(t *testing.T) {
	query := regexp.QuoteMeta(`UPDATE vocabulary_items
		SET definition = ?, translation = ?, example_sentence = ?, part_of_speech = ?,
			related_forms = ?, synonyms = ?, antonyms = ?, collocations = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`)
	items := []*Item{
		{ID: 1, Word: "abandon", Definition: "to leave behind"},
		{ID: 2, Word: "ability", Translation: "yetenek"},
	}

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name: "updates every item in one transaction",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(query).
					WithArgs("to leave behind", "", "", "", "", "", "", "", int64(1)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(query).
					WithArgs("", "yetenek", "", "", "", "", "", "", int64(2)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "failure rolls back",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(query).WillReturnError(fmt.Errorf("lock wait timeout"))
				mock.ExpectRollback()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setupMock(mock)

			err := repo.UpdateContent(context.Background(), items)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrStoreWrite)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
