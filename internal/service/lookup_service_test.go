package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wm-backend/internal/apperror"
	"wm-backend/internal/locale"
	"wm-backend/internal/model"
)

func TestLookupLifecycle(t *testing.T) {
	repo := newFakeLookups[model.Category]()
	svc := NewLookupService[model.Category](repo, locale.New("tr"))
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateLookupRequest{Name: " Afiş ", Order: 2})
	require.NoError(t, err)
	assert.Equal(t, "Afiş", created.Name)
	assert.True(t, created.IsActive)

	_, err = svc.Create(ctx, CreateLookupRequest{Name: "Afiş"})
	require.ErrorIs(t, err, apperror.ErrValidation)

	off := false
	updated, err := svc.Update(ctx, created.ID.String(), UpdateLookupRequest{IsActive: &off})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	require.NoError(t, svc.Delete(ctx, created.ID.String()))
	require.ErrorIs(t, svc.Delete(ctx, created.ID.String()), apperror.ErrNotFound)
	_, err = svc.Update(ctx, uuid.NewString(), UpdateLookupRequest{})
	require.ErrorIs(t, err, apperror.ErrNotFound)
}
