package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/division-gg/division-api/internal/domain/model"
	apperrors "github.com/division-gg/division-api/internal/errors"
	"github.com/division-gg/division-api/internal/mocks"
)

func TestEmailService_Capture(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockEmailRepo(ctrl)
	repo.EXPECT().
		Capture(gomock.Any(), gomock.Any()).
		Return(&model.CapturedEmail{ID: "id-1", Email: "user@example.com"}, true, nil)

	service := NewEmailService(EmailServiceOptions{Repo: repo})
	err := service.Capture(context.Background(), model.CaptureEmailRequest{Email: "user@example.com"})
	require.NoError(t, err)
}

func TestEmailService_CaptureInvalidEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Validation fails before the repository is touched.
	repo := mocks.NewMockEmailRepo(ctrl)
	service := NewEmailService(EmailServiceOptions{Repo: repo})

	err := service.Capture(context.Background(), model.CaptureEmailRequest{Email: "not-an-email"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestEmailService_CaptureRepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockEmailRepo(ctrl)
	repo.EXPECT().
		Capture(gomock.Any(), gomock.Any()).
		Return(nil, false, errors.New("db down"))

	service := NewEmailService(EmailServiceOptions{Repo: repo})
	err := service.Capture(context.Background(), model.CaptureEmailRequest{Email: "user@example.com"})
	require.Error(t, err)
	assert.False(t, apperrors.IsValidation(err))
}

func TestEmailService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	emails := []*model.CapturedEmail{
		{ID: "1", Email: "a@example.com", CreatedAt: time.Now()},
		{ID: "2", Email: "b@example.com", CreatedAt: time.Now()},
	}
	repo := mocks.NewMockEmailRepo(ctrl)
	repo.EXPECT().List(gomock.Any(), 10, 0).Return(emails, nil)
	repo.EXPECT().Count(gomock.Any()).Return(int64(2), nil)

	service := NewEmailService(EmailServiceOptions{Repo: repo})
	got, total, err := service.List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, int64(2), total)
}
