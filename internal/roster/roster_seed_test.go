package roster_test

import (
	"context"
	"errors"
	"testing"

	"go-geoattend/internal/roster"
	rosterMock "go-geoattend/internal/roster/mock"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestSeed_WithMockRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("non-empty roster is left alone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := rosterMock.NewMockRepository(ctrl)

		repo.EXPECT().Count(ctx).Return(int64(3), nil)
		repo.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).Times(0)

		seeded, err := roster.Seed(ctx, repo, roster.DefaultIdentities)
		assert.NoError(t, err)
		assert.False(t, seeded)
	})

	t.Run("count error is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := rosterMock.NewMockRepository(ctrl)

		repo.EXPECT().Count(ctx).Return(int64(0), errors.New("db down"))

		_, err := roster.Seed(ctx, repo, roster.DefaultIdentities)
		assert.Error(t, err)
	})

	t.Run("insert error is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := rosterMock.NewMockRepository(ctrl)

		repo.EXPECT().Count(ctx).Return(int64(0), nil)
		repo.EXPECT().CreateBatch(ctx, roster.DefaultIdentities).Return(errors.New("constraint"))

		seeded, err := roster.Seed(ctx, repo, roster.DefaultIdentities)
		assert.Error(t, err)
		assert.False(t, seeded)
	})
}
