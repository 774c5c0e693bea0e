package services

import (
	"testing"

	"residence-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecklistService_Items(t *testing.T) {
	db := newTestDB(t)
	createTestHouse(t, db, "maison-1", "Maison 1")
	svc := NewChecklistService(db)

	t.Run("create resolves the category by name", func(t *testing.T) {
		item, err := svc.CreateItem(ChecklistItemInput{
			HouseID:         "maison-1",
			StepNumber:      1,
			CategoryName:    "Cuisine",
			Description:     "Nettoyer le plan de travail",
			ProductRequired: "Dégraissant",
			Type:            "nettoyage",
		})
		require.NoError(t, err)
		assert.Equal(t, "Cuisine", item.Category.Name)

		// Same name resolves to the same category, no duplicate.
		second, err := svc.CreateItem(ChecklistItemInput{
			HouseID:      "maison-1",
			StepNumber:   2,
			CategoryName: "Cuisine",
			Description:  "Vider le réfrigérateur",
			Type:         "verification",
		})
		require.NoError(t, err)
		assert.Equal(t, item.CategoryID, second.CategoryID)

		categories, err := svc.Categories()
		require.NoError(t, err)
		assert.Len(t, categories, 1)
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		_, err := svc.CreateItem(ChecklistItemInput{HouseID: "maison-1", Description: "X"})
		assert.ErrorIs(t, err, ErrValidation)
		_, err = svc.CreateItem(ChecklistItemInput{HouseID: "maison-1", CategoryName: "Cuisine"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("list filters by category name", func(t *testing.T) {
		_, err := svc.CreateItem(ChecklistItemInput{
			HouseID:      "maison-1",
			StepNumber:   1,
			CategoryName: "Chambres",
			Description:  "Changer les draps",
			Type:         "nettoyage",
		})
		require.NoError(t, err)

		all, err := svc.Items("maison-1", "")
		require.NoError(t, err)
		assert.Len(t, all, 3)

		cuisine, err := svc.Items("maison-1", "Cuisine")
		require.NoError(t, err)
		assert.Len(t, cuisine, 2)
	})

	t.Run("update moves an item across categories", func(t *testing.T) {
		item, err := svc.CreateItem(ChecklistItemInput{
			HouseID:      "maison-1",
			StepNumber:   9,
			CategoryName: "Cuisine",
			Description:  "Tester les détecteurs",
			Type:         "verification",
		})
		require.NoError(t, err)

		updated, err := svc.UpdateItem(item.ID, ChecklistItemUpdate{CategoryName: strPtr("Sécurité")})
		require.NoError(t, err)
		assert.Equal(t, "Sécurité", updated.Category.Name)
		assert.NotEqual(t, item.CategoryID, updated.CategoryID)
	})

	t.Run("delete removes the item and its statuses", func(t *testing.T) {
		item, err := svc.CreateItem(ChecklistItemInput{
			HouseID:      "maison-1",
			StepNumber:   5,
			CategoryName: "Cuisine",
			Description:  "Détartrer la bouilloire",
			Type:         "entretien",
		})
		require.NoError(t, err)
		_, err = svc.CompleteTask("maison-1", item.ID, true, "sam")
		require.NoError(t, err)

		require.NoError(t, svc.DeleteItem(item.ID))

		_, err = svc.GetItem(item.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		var statuses int64
		require.NoError(t, db.Model(&models.HouseChecklistStatus{}).
			Where("item_id = ?", item.ID).Count(&statuses).Error)
		assert.Zero(t, statuses)
	})
}

func TestChecklistService_CompleteTask(t *testing.T) {
	db := newTestDB(t)
	createTestHouse(t, db, "maison-1", "Maison 1")
	svc := NewChecklistService(db)

	item, err := svc.CreateItem(ChecklistItemInput{
		HouseID:      "maison-1",
		StepNumber:   1,
		CategoryName: "Cuisine",
		Description:  "Nettoyer le plan de travail",
		Type:         "nettoyage",
	})
	require.NoError(t, err)

	t.Run("completing stamps time and actor", func(t *testing.T) {
		status, err := svc.CompleteTask("maison-1", item.ID, true, "sam")
		require.NoError(t, err)
		assert.True(t, status.IsCompleted)
		assert.NotNil(t, status.CompletedAt)
		assert.Equal(t, "sam", status.UpdatedBy)
	})

	t.Run("repeat completion reuses the row", func(t *testing.T) {
		_, err := svc.CompleteTask("maison-1", item.ID, true, "sam")
		require.NoError(t, err)
		var count int64
		require.NoError(t, db.Model(&models.HouseChecklistStatus{}).
			Where("house_id = ? AND item_id = ?", "maison-1", item.ID).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("un-completing clears the stamp", func(t *testing.T) {
		status, err := svc.CompleteTask("maison-1", item.ID, false, "lea")
		require.NoError(t, err)
		assert.False(t, status.IsCompleted)
		assert.Nil(t, status.CompletedAt)
		assert.Equal(t, "lea", status.UpdatedBy)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := svc.CompleteTask("maison-1", "missing", true, "sam")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestChecklistService_Readiness(t *testing.T) {
	db := newTestDB(t)
	createTestHouse(t, db, "maison-1", "Maison 1")
	svc := NewChecklistService(db)

	t.Run("no categories means trivially ready", func(t *testing.T) {
		readiness, err := svc.Readiness("maison-1")
		require.NoError(t, err)
		assert.True(t, readiness.IsReady)
		assert.Zero(t, readiness.TotalCategories)
		assert.Nil(t, readiness.LastUpdated)
	})

	item, err := svc.CreateItem(ChecklistItemInput{
		HouseID:      "maison-1",
		StepNumber:   1,
		CategoryName: "Cuisine",
		Description:  "Nettoyer le plan de travail",
		Type:         "nettoyage",
	})
	require.NoError(t, err)
	_, err = svc.CreateItem(ChecklistItemInput{
		HouseID:      "maison-1",
		StepNumber:   2,
		CategoryName: "Cuisine",
		Description:  "Vider le réfrigérateur",
		Type:         "nettoyage",
	})
	require.NoError(t, err)

	t.Run("category flag gates readiness", func(t *testing.T) {
		readiness, err := svc.Readiness("maison-1")
		require.NoError(t, err)
		assert.False(t, readiness.IsReady)
		assert.EqualValues(t, 1, readiness.TotalCategories)
		assert.EqualValues(t, 2, readiness.TotalTasks)
		assert.Zero(t, readiness.CompletedTasks)

		_, err = svc.CompleteTask("maison-1", item.ID, true, "sam")
		require.NoError(t, err)
		_, err = svc.CompleteCategory("maison-1", item.CategoryID, true)
		require.NoError(t, err)

		readiness, err = svc.Readiness("maison-1")
		require.NoError(t, err)
		assert.True(t, readiness.IsReady)
		assert.EqualValues(t, 1, readiness.CompletedCategories)
		assert.EqualValues(t, 1, readiness.CompletedTasks)
		require.NotNil(t, readiness.LastUpdated)
	})

	t.Run("unsetting the flag clears readiness", func(t *testing.T) {
		status, err := svc.CompleteCategory("maison-1", item.CategoryID, false)
		require.NoError(t, err)
		assert.Nil(t, status.ReadyAt)

		readiness, err := svc.Readiness("maison-1")
		require.NoError(t, err)
		assert.False(t, readiness.IsReady)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := svc.CompleteCategory("maison-1", 9999, true)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestChecklistService_Progress(t *testing.T) {
	db := newTestDB(t)
	createTestHouse(t, db, "maison-1", "Maison 1")
	svc := NewChecklistService(db)

	var items []*models.ChecklistItem
	for step, desc := range []string{"Nettoyer le plan de travail", "Vider le réfrigérateur"} {
		item, err := svc.CreateItem(ChecklistItemInput{
			HouseID:      "maison-1",
			StepNumber:   step + 1,
			CategoryName: "Cuisine",
			Description:  desc,
			Type:         "nettoyage",
		})
		require.NoError(t, err)
		items = append(items, item)
	}
	_, err := svc.CreateItem(ChecklistItemInput{
		HouseID:      "maison-1",
		StepNumber:   1,
		CategoryName: "Chambres",
		Description:  "Changer les draps",
		Type:         "nettoyage",
	})
	require.NoError(t, err)

	_, err = svc.CompleteTask("maison-1", items[0].ID, true, "sam")
	require.NoError(t, err)
	_, err = svc.CompleteCategory("maison-1", items[0].CategoryID, true)
	require.NoError(t, err)

	progress, err := svc.Progress("maison-1")
	require.NoError(t, err)
	require.Len(t, progress, 2)

	cuisine := progress[0]
	assert.Equal(t, "Cuisine", cuisine.Categorie)
	assert.Equal(t, "maison-1", cuisine.Maison)
	assert.EqualValues(t, 2, cuisine.TotalTasks)
	assert.EqualValues(t, 1, cuisine.CompletedTasks)
	assert.InDelta(t, 50.0, cuisine.ProgressPercentage, 0.01)
	assert.True(t, cuisine.IsReady)

	chambres := progress[1]
	assert.Equal(t, "Chambres", chambres.Categorie)
	assert.Zero(t, chambres.CompletedTasks)
	assert.Zero(t, chambres.ProgressPercentage)
	assert.False(t, chambres.IsReady)
}
