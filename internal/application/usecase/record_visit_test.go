package usecase_test

import (
	"errors"
	"testing"

	"github.com/bnema/instapreview/internal/application/usecase"
	"github.com/bnema/instapreview/internal/domain/entity"
	repomocks "github.com/bnema/instapreview/internal/domain/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecordVisit_SavesEachVisit(t *testing.T) {
	ctx := testContext()
	historyRepo := repomocks.NewMockHistoryRepository(t)
	historyRepo.EXPECT().
		Save(mock.Anything, mock.MatchedBy(func(e *entity.HistoryEntry) bool {
			return e.URL == "https://github.com" && e.Title == "GitHub"
		})).
		Return(nil).
		Times(3)

	uc := usecase.NewRecordVisitUseCase(historyRepo)

	require.NoError(t, uc.Execute(ctx, "  https://github.com ", "GitHub", 3))
}

func TestRecordVisit_ZeroTimesRecordsOnce(t *testing.T) {
	ctx := testContext()
	historyRepo := repomocks.NewMockHistoryRepository(t)
	historyRepo.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Once()

	uc := usecase.NewRecordVisitUseCase(historyRepo)

	require.NoError(t, uc.Execute(ctx, "https://example.com", "", 0))
}

func TestRecordVisit_SkipsPlaceholder(t *testing.T) {
	ctx := testContext()
	historyRepo := repomocks.NewMockHistoryRepository(t)

	uc := usecase.NewRecordVisitUseCase(historyRepo)

	require.NoError(t, uc.Execute(ctx, entity.PlaceholderURI, "", 1))
}

func TestRecordVisit_RejectsInvalidURL(t *testing.T) {
	ctx := testContext()
	historyRepo := repomocks.NewMockHistoryRepository(t)
	uc := usecase.NewRecordVisitUseCase(historyRepo)

	assert.Error(t, uc.Execute(ctx, "", "", 1))
	assert.Error(t, uc.Execute(ctx, "example.com", "", 1))
}

func TestRecordVisit_PropagatesSaveError(t *testing.T) {
	ctx := testContext()
	historyRepo := repomocks.NewMockHistoryRepository(t)
	historyRepo.EXPECT().Save(mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	uc := usecase.NewRecordVisitUseCase(historyRepo)

	err := uc.Execute(ctx, "https://example.com", "", 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
