package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_cli "github.com/at-ishikawa/wordcycle/internal/mocks/cli"
	"github.com/at-ishikawa/wordcycle/internal/review"
	"github.com/at-ishikawa/wordcycle/internal/vocabulary"
)

func TestStudyCLI_Session(t *testing.T) {
	nextReview := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)
	item := vocabulary.Item{
		ID:           1,
		Word:         "abandon",
		Level:        vocabulary.LevelB2,
		PartOfSpeech: "verb",
		Definition:   "to leave behind",
		Translation:  "terk etmek",
	}
	advanced := item
	advanced.Repetitions = 1
	advanced.NextReviewDate = &nextReview
	known := item
	known.IsKnown = true

	tests := []struct {
		name        string
		input       string
		setupMock   func(*mock_cli.MockStudyEngine)
		wantReturn  error
		wantErr     string
		wantHistory []int64
		wantOutputs []string
	}{
		{
			name:  "nothing to study ends the loop",
			input: "",
			setupMock: func(m *mock_cli.MockStudyEngine) {
				m.EXPECT().SelectNext(gomock.Any(), []int64{}).Return(vocabulary.Item{}, review.ErrNoCandidateAvailable)
			},
			wantReturn:  errEnd,
			wantHistory: []int64{},
			wantOutputs: []string{"All caught up!"},
		},
		{
			name:  "select failure",
			input: "",
			setupMock: func(m *mock_cli.MockStudyEngine) {
				m.EXPECT().SelectNext(gomock.Any(), gomock.Any()).Return(vocabulary.Item{}, vocabulary.ErrStoreRead)
			},
			wantErr:     "engine.SelectNext() > vocabulary store read failed",
			wantHistory: []int64{},
		},
		{
			name:  "k marks the item known",
			input: "k\n",
			setupMock: func(m *mock_cli.MockStudyEngine) {
				m.EXPECT().SelectNext(gomock.Any(), gomock.Any()).Return(item, nil)
				m.EXPECT().ReportKnown(gomock.Any(), item).Return(known, nil)
			},
			wantHistory: []int64{1},
			wantOutputs: []string{"[B2] abandon (verb)", "abandon is marked as known"},
		},
		{
			name:  "enter advances the item",
			input: "\n",
			setupMock: func(m *mock_cli.MockStudyEngine) {
				m.EXPECT().SelectNext(gomock.Any(), gomock.Any()).Return(item, nil)
				m.EXPECT().ReportAdvance(gomock.Any(), item).Return(advanced, nil)
			},
			wantHistory: []int64{1},
			wantOutputs: []string{"Next review on 2025-03-02"},
		},
		{
			name:  "details are shown before advancing",
			input: "d\nN\n",
			setupMock: func(m *mock_cli.MockStudyEngine) {
				m.EXPECT().SelectNext(gomock.Any(), gomock.Any()).Return(item, nil)
				m.EXPECT().ReportAdvance(gomock.Any(), item).Return(advanced, nil)
			},
			wantHistory: []int64{1},
			wantOutputs: []string{"  Definition: to leave behind", "  Translation: terk etmek"},
		},
		{
			name:  "unknown keys are asked again and q quits",
			input: "x\nq\n",
			setupMock: func(m *mock_cli.MockStudyEngine) {
				m.EXPECT().SelectNext(gomock.Any(), gomock.Any()).Return(item, nil)
			},
			wantReturn:  errEnd,
			wantHistory: []int64{},
			wantOutputs: []string{`Unknown key "x"`},
		},
		{
			name:  "end of input quits",
			input: "",
			setupMock: func(m *mock_cli.MockStudyEngine) {
				m.EXPECT().SelectNext(gomock.Any(), gomock.Any()).Return(item, nil)
			},
			wantReturn:  errEnd,
			wantHistory: []int64{},
		},
		{
			name:  "last line without newline is still read",
			input: "k",
			setupMock: func(m *mock_cli.MockStudyEngine) {
				m.EXPECT().SelectNext(gomock.Any(), gomock.Any()).Return(item, nil)
				m.EXPECT().ReportKnown(gomock.Any(), item).Return(known, nil)
			},
			wantHistory: []int64{1},
		},
		{
			name:  "failed known save warns and the item is not remembered",
			input: "k\n",
			setupMock: func(m *mock_cli.MockStudyEngine) {
				m.EXPECT().SelectNext(gomock.Any(), gomock.Any()).Return(item, nil)
				m.EXPECT().ReportKnown(gomock.Any(), item).Return(item, vocabulary.ErrStoreWrite)
			},
			wantHistory: []int64{},
			wantOutputs: []string{"Could not save the answer for abandon, it will come up again"},
		},
		{
			name:  "version conflict on advance warns and the item is not remembered",
			input: "n\n",
			setupMock: func(m *mock_cli.MockStudyEngine) {
				m.EXPECT().SelectNext(gomock.Any(), gomock.Any()).Return(item, nil)
				m.EXPECT().ReportAdvance(gomock.Any(), item).
					Return(item, fmt.Errorf("store.Save() > %w: %w", vocabulary.ErrStoreWrite, vocabulary.ErrConflict))
			},
			wantHistory: []int64{},
			wantOutputs: []string{"Could not save the answer for abandon, it will come up again"},
		},
		{
			name:  "other failures end the session",
			input: "n\n",
			setupMock: func(m *mock_cli.MockStudyEngine) {
				m.EXPECT().SelectNext(gomock.Any(), gomock.Any()).Return(item, nil)
				m.EXPECT().ReportAdvance(gomock.Any(), item).Return(item, review.ErrItemKnown)
			},
			wantErr:     "engine.ReportAdvance(abandon) > vocabulary item is marked known",
			wantHistory: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			engine := mock_cli.NewMockStudyEngine(ctrl)
			tt.setupMock(engine)

			var output bytes.Buffer
			cli := NewStudyCLI(engine, review.DefaultHistorySize, strings.NewReader(tt.input), &output)
			err := cli.Session(context.Background())
			switch {
			case tt.wantErr != "":
				assert.EqualError(t, err, tt.wantErr)
			case tt.wantReturn != nil:
				assert.ErrorIs(t, err, tt.wantReturn)
			default:
				require.NoError(t, err)
			}

			assert.Equal(t, tt.wantHistory, cli.history.IDs())
			for _, want := range tt.wantOutputs {
				assert.Contains(t, output.String(), want)
			}
		})
	}
}

func TestStudyCLI_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mock_cli.NewMockStudyEngine(ctrl)

	first := vocabulary.Item{ID: 1, Word: "abandon", Level: vocabulary.LevelB2}
	second := vocabulary.Item{ID: 2, Word: "ability", Level: vocabulary.LevelA2}
	gomock.InOrder(
		engine.EXPECT().SelectNext(gomock.Any(), []int64{}).Return(first, nil),
		engine.EXPECT().ReportKnown(gomock.Any(), first).Return(first, nil),
		engine.EXPECT().SelectNext(gomock.Any(), []int64{1}).Return(second, nil),
		engine.EXPECT().ReportAdvance(gomock.Any(), second).Return(second, nil),
		engine.EXPECT().SelectNext(gomock.Any(), []int64{1, 2}).Return(vocabulary.Item{}, review.ErrNoCandidateAvailable),
	)

	var output bytes.Buffer
	cli := NewStudyCLI(engine, 2, strings.NewReader("k\nn\n"), &output)
	require.NoError(t, cli.Run(context.Background(), cli))
	assert.Equal(t, "Studied 2 item(s): 1 known, 1 scheduled for review", cli.Summary())
	assert.Contains(t, output.String(), "All caught up!")
}

func TestStudyCLI_Run_ContinuesAfterFailedSave(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mock_cli.NewMockStudyEngine(ctrl)

	item := vocabulary.Item{ID: 1, Word: "a", Level: vocabulary.LevelA1}
	gomock.InOrder(
		engine.EXPECT().SelectNext(gomock.Any(), []int64{}).Return(item, nil),
		engine.EXPECT().ReportAdvance(gomock.Any(), item).Return(item, vocabulary.ErrStoreWrite),
		engine.EXPECT().SelectNext(gomock.Any(), []int64{}).Return(item, nil),
	)

	var output bytes.Buffer
	cli := NewStudyCLI(engine, 2, strings.NewReader("n\nq\n"), &output)
	require.NoError(t, cli.Run(context.Background(), cli))
	assert.Equal(t, "Studied 0 item(s): 0 known, 0 scheduled for review", cli.Summary())
	assert.Contains(t, output.String(), "Could not save the answer for a, it will come up again")
}
