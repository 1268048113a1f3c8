package animals

import (
	"context"
	"errors"
	"testing"

	"livestock-records/internal/domain/animals/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var errDiskFull = errors.New("disk full")

func TestService_SaveFailure_LeavesStoreUnchanged(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockRepository(ctrl)
	repo.EXPECT().Load(gomock.Any(), DefaultStoreKey).Return(nil, ErrNoDocument)
	gomock.InOrder(
		repo.EXPECT().Save(gomock.Any(), DefaultStoreKey, gomock.Any()).Return(nil),
		repo.EXPECT().Save(gomock.Any(), DefaultStoreKey, gomock.Any()).Return(errDiskFull).Times(3),
	)

	s := newTestService(repo)
	req.NoError(s.Load(ctx))
	mustCreate(t, s, angus("A1"))

	_, err := s.Create(ctx, angus("A2"))
	req.ErrorIs(err, ErrPersistence)
	req.ErrorContains(err, "disk full")

	_, err = s.AddWeight(ctx, "A1", WeightInput{Date: "2023-02-01", Kg: 210})
	req.ErrorIs(err, ErrPersistence)

	req.ErrorIs(s.Delete(ctx, "A1"), ErrPersistence)

	// memoria == último estado durable
	req.Equal(1, s.Count(ctx))
	a, ok := s.Find(ctx, "A1")
	req.True(ok)
	req.Empty(a.Weights)
}

func TestService_ValidationFailsBeforeSave(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockRepository(ctrl)
	repo.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	s := newTestService(repo)
	_, err := s.Create(ctx, CreateInput{ID: "A1"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.AddWeight(ctx, "A1", WeightInput{Date: "2023-02-01", Kg: 1})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestService_Load_ProviderErrorStartsEmpty(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockRepository(ctrl)
	repo.EXPECT().Load(gomock.Any(), DefaultStoreKey).Return(nil, errors.New("connection refused"))

	s := newTestService(repo)
	require.NoError(t, s.Load(ctx))
	require.Equal(t, 0, s.Count(ctx))
}
