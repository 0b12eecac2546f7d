package service

import (
	"testing"

	"github.com/mkenani/storefront/internal/app/model"
	"github.com/mkenani/storefront/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCatalogTest(t *testing.T) (CatalogService, *gorm.DB) {
	testDB := setupTestDB(t)
	return NewCatalogService(repository.NewCategoryRepository(testDB)), testDB
}

func TestCatalogService_CreateCategory(t *testing.T) {
	svc, _ := setupCatalogTest(t)

	root := &model.Category{Name: "  Electronics  "}
	require.NoError(t, svc.CreateCategory(root))
	assert.Equal(t, "Electronics", root.Name)

	child := &model.Category{Name: "Phones", ParentID: &root.ID}
	require.NoError(t, svc.CreateCategory(child))

	err := svc.CreateCategory(&model.Category{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidCategory)

	missing := root.ID + 999
	err = svc.CreateCategory(&model.Category{Name: "Orphan", ParentID: &missing})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCatalogService_UpdateCategoryRejectsCycles(t *testing.T) {
	svc, _ := setupCatalogTest(t)

	root := &model.Category{Name: "Electronics"}
	require.NoError(t, svc.CreateCategory(root))
	mid := &model.Category{Name: "Phones", ParentID: &root.ID}
	require.NoError(t, svc.CreateCategory(mid))
	leaf := &model.Category{Name: "Smartphones", ParentID: &mid.ID}
	require.NoError(t, svc.CreateCategory(leaf))

	// Self-parenting.
	root.ParentID = &root.ID
	assert.ErrorIs(t, svc.UpdateCategory(root), ErrCategoryCycle)

	// Reparenting the root under its grandchild.
	root.ParentID = &leaf.ID
	assert.ErrorIs(t, svc.UpdateCategory(root), ErrCategoryCycle)

	// A legal move still works.
	leaf.ParentID = &root.ID
	root.ParentID = nil
	require.NoError(t, svc.UpdateCategory(leaf))
}

func TestCatalogService_DeleteCategory(t *testing.T) {
	svc, testDB := setupCatalogTest(t)

	product := seedProduct(t, testDB, "ELEC-0001", 699.99, 50)

	err := svc.DeleteCategory(product.CategoryID)
	assert.ErrorIs(t, err, ErrCategoryInUse)

	empty := &model.Category{Name: "Empty"}
	require.NoError(t, svc.CreateCategory(empty))
	child := &model.Category{Name: "Child", ParentID: &empty.ID}
	require.NoError(t, svc.CreateCategory(child))

	require.NoError(t, svc.DeleteCategory(empty.ID))

	// The child survives, detached from its deleted parent.
	reloaded, err := svc.GetCategory(child.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.ParentID)
}

func TestCatalogService_GetCategoryTree(t *testing.T) {
	svc, _ := setupCatalogTest(t)

	root := &model.Category{Name: "Electronics"}
	require.NoError(t, svc.CreateCategory(root))
	require.NoError(t, svc.CreateCategory(&model.Category{Name: "Phones", ParentID: &root.ID}))
	require.NoError(t, svc.CreateCategory(&model.Category{Name: "Books"}))

	roots, err := svc.GetCategoryTree()
	require.NoError(t, err)
	require.Len(t, roots, 2)
	for _, cat := range roots {
		assert.Nil(t, cat.ParentID)
		if cat.ID == root.ID {
			assert.Len(t, cat.Children, 1)
		}
	}
}
