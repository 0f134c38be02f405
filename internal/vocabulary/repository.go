package vocabulary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/wordcycle/internal/database"
)

// batchSize bounds the rows of one multi-row INSERT to stay under the
// placeholder limits of sqlite3 and mysql.
const batchSize = 500

// Filter restricts FetchAll. Empty slices do not restrict.
type Filter struct {
	States     []State
	Levels     []Level
	ExcludeIDs []int64
}

//go:generate mockgen -source=repository.go -destination=../mocks/vocabulary/mock_repository.go -package=mock_vocabulary

// Repository defines operations for reading and persisting vocabulary items.
type Repository interface {
	FetchAll(ctx context.Context, filter Filter) ([]Item, error)
	FindByWord(ctx context.Context, word string) (*Item, error)
	Save(ctx context.Context, item *Item) error
	BatchCreate(ctx context.Context, items []*Item) error
	UpdateContent(ctx context.Context, items []*Item) error
}

// DBRepository implements Repository on a SQL database.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// stateConditions mirror Item.State. A reset item has no repetitions but a due
// date, and it counts as in review rather than new.
var stateConditions = map[State]string{
	StateNew:      "(is_known = ? AND repetitions = 0 AND next_review_date IS NULL)",
	StateInReview: "(is_known = ? AND (repetitions > 0 OR next_review_date IS NOT NULL))",
	StateKnown:    "(is_known = ?)",
}

func buildFetchQuery(filter Filter) (string, []any, error) {
	var conditions []string
	var args []any

	if len(filter.States) > 0 {
		stateClauses := make([]string, 0, len(filter.States))
		for _, state := range filter.States {
			clause, ok := stateConditions[state]
			if !ok {
				return "", nil, fmt.Errorf("unsupported state filter: %s", state)
			}
			stateClauses = append(stateClauses, clause)
			args = append(args, state == StateKnown)
		}
		conditions = append(conditions, "("+strings.Join(stateClauses, " OR ")+")")
	}
	if len(filter.Levels) > 0 {
		levels := make([]string, 0, len(filter.Levels))
		for _, level := range filter.Levels {
			levels = append(levels, level.String())
		}
		conditions = append(conditions, "level IN (?)")
		args = append(args, levels)
	}
	if len(filter.ExcludeIDs) > 0 {
		conditions = append(conditions, "id NOT IN (?)")
		args = append(args, filter.ExcludeIDs)
	}

	query := "SELECT * FROM vocabulary_items"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"
	return sqlx.In(query, args...)
}

// FetchAll returns the items matching filter ordered by id.
func (r *DBRepository) FetchAll(ctx context.Context, filter Filter) ([]Item, error) {
	query, args, err := buildFetchQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: build query > %w", ErrStoreRead, err)
	}

	var items []Item
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("%w: db.SelectContext(vocabulary_items) > %w", ErrStoreRead, err)
	}
	return items, nil
}

// FindByWord returns the item for word, or nil if not found.
func (r *DBRepository) FindByWord(ctx context.Context, word string) (*Item, error) {
	var item Item
	err := r.db.GetContext(ctx, &item, r.db.Rebind("SELECT * FROM vocabulary_items WHERE word = ?"), word)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: db.GetContext(vocabulary_item) > %w", ErrStoreRead, err)
	}
	return &item, nil
}

// Save writes every retention field of item in one statement. The write only
// applies when the stored version still matches item.Version; on success the
// version is advanced.
func (r *DBRepository) Save(ctx context.Context, item *Item) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(
		`UPDATE vocabulary_items
		SET is_known = ?, repetitions = ?, next_review_date = ?, last_reviewed_date = ?, review_count = ?,
			version = version + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND version = ?`),
		item.IsKnown, item.Repetitions, item.NextReviewDate, item.LastReviewedDate, item.ReviewCount,
		item.ID, item.Version)
	if err != nil {
		return fmt.Errorf("%w: db.ExecContext(update vocabulary_item) > %w", ErrStoreWrite, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: result.RowsAffected() > %w", ErrStoreWrite, err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %w: id=%d version=%d", ErrStoreWrite, ErrConflict, item.ID, item.Version)
	}
	item.Version++
	return nil
}

var insertColumns = []string{
	"word", "level", "definition", "translation", "example_sentence", "part_of_speech",
	"related_forms", "synonyms", "antonyms", "collocations",
}

// BatchCreate inserts new items in a single transaction. Items start with
// default retention fields. IDs are not populated.
func (r *DBRepository) BatchCreate(ctx context.Context, items []*Item) error {
	if len(items) == 0 {
		return nil
	}

	err := database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		for start := 0; start < len(items); start += batchSize {
			end := min(start+batchSize, len(items))
			chunk := items[start:end]

			query := database.BuildMultiRowInsert("vocabulary_items", insertColumns, len(chunk))
			args := make([]any, 0, len(chunk)*len(insertColumns))
			for _, item := range chunk {
				args = append(args,
					item.Word, item.Level, item.Definition, item.Translation, item.ExampleSentence, item.PartOfSpeech,
					item.RelatedForms, item.Synonyms, item.Antonyms, item.Collocations)
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
				return fmt.Errorf("insert vocabulary items: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}
	return nil
}

// UpdateContent rewrites the descriptive columns of existing items in a single
// transaction. Retention fields are left as they are.
func (r *DBRepository) UpdateContent(ctx context.Context, items []*Item) error {
	if len(items) == 0 {
		return nil
	}

	err := database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		query := tx.Rebind(`UPDATE vocabulary_items
		SET definition = ?, translation = ?, example_sentence = ?, part_of_speech = ?,
			related_forms = ?, synonyms = ?, antonyms = ?, collocations = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`)
		for _, item := range items {
			if _, err := tx.ExecContext(ctx, query,
				item.Definition, item.Translation, item.ExampleSentence, item.PartOfSpeech,
				item.RelatedForms, item.Synonyms, item.Antonyms, item.Collocations, item.ID); err != nil {
				return fmt.Errorf("update vocabulary item %q: %w", item.Word, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}
	return nil
}
