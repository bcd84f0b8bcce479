package repository

import (
	"context"
	"testing"
	"time"

	"dinedash/internal/testutil"
	"dinedash/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackRepository_AddAndList(t *testing.T) {
	repo := NewFeedbackRepository(testutil.OpenInMemoryDB(t))
	ctx := context.Background()

	first := &models.Feedback{FullName: "Priya Sharma", FeedbackText: "The kebabs were wonderful."}
	first.SubmittedAt = time.Now().UTC().Add(-time.Hour)
	_, err := repo.Add(ctx, first)
	require.NoError(t, err)

	phone := "555-0100"
	second := &models.Feedback{FullName: "Rohan Mehra", PhoneNumber: &phone, FeedbackText: "Roti arrived a little cold."}
	second.SetMenuItems([]string{"Rumali Roti", "Butter Chicken"})
	saved, err := repo.Add(ctx, second)
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.False(t, saved.SubmittedAt.IsZero())

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "Rohan Mehra", list[0].FullName)
	require.NotNil(t, list[0].MenuItems)
	assert.Equal(t, "Rumali Roti, Butter Chicken", *list[0].MenuItems)
	assert.Equal(t, []string{"Rumali Roti", "Butter Chicken"}, list[0].MenuItemNames())
	assert.Nil(t, list[1].Address)
	assert.Nil(t, list[1].MenuItems)
}
