package service

import (
	"errors"
	"testing"

	"github.com/linkmart/internal/models"
	"github.com/linkmart/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCategoryServiceTest(t *testing.T) (*CategoryService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Brand{}, &models.Product{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewCategoryService(repository.NewCategoryRepository(db)), db
}

func createCategory(t *testing.T, svc *CategoryService, name, slug string, parentID *uint) *models.Category {
	t.Helper()
	category, err := svc.Create(CategoryInput{Name: name, Slug: slug, ParentID: parentID})
	if err != nil {
		t.Fatalf("create category %s failed: %v", slug, err)
	}
	return category
}

func TestCategoryCreateSlugConflict(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)
	createCategory(t, svc, "Electronics", "cat-slug-conflict", nil)

	_, err := svc.Create(CategoryInput{Name: "Electronics Again", Slug: "cat-slug-conflict"})
	if !errors.Is(err, ErrSlugExists) {
		t.Fatalf("duplicate slug want ErrSlugExists got %v", err)
	}

	// 大小写与空白归一化后仍视为冲突
	_, err = svc.Create(CategoryInput{Name: "Electronics Again", Slug: "  Cat-Slug-Conflict "})
	if !errors.Is(err, ErrSlugExists) {
		t.Fatalf("normalized duplicate slug want ErrSlugExists got %v", err)
	}
}

func TestCategoryTwoLevelLimit(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)
	root := createCategory(t, svc, "Outdoors", "cat-depth-root", nil)
	child := createCategory(t, svc, "Camping", "cat-depth-child", &root.ID)

	_, err := svc.Create(CategoryInput{Name: "Tents", Slug: "cat-depth-grandchild", ParentID: &child.ID})
	if !errors.Is(err, ErrParentInvalid) {
		t.Fatalf("third level want ErrParentInvalid got %v", err)
	}
}

func TestCategoryUpdateDemoteWithChildrenRejected(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)
	root := createCategory(t, svc, "Home", "cat-demote-root", nil)
	createCategory(t, svc, "Kitchen", "cat-demote-child", &root.ID)
	other := createCategory(t, svc, "Garden", "cat-demote-other", nil)

	_, err := svc.Update(root.ID, CategoryInput{Name: "Home", Slug: "cat-demote-root", ParentID: &other.ID})
	if !errors.Is(err, ErrParentInvalid) {
		t.Fatalf("demoting root with children want ErrParentInvalid got %v", err)
	}
}

func TestCategoryDeleteGuards(t *testing.T) {
	svc, db := setupCategoryServiceTest(t)
	root := createCategory(t, svc, "Audio", "cat-delete-root", nil)
	child := createCategory(t, svc, "Headphones", "cat-delete-child", &root.ID)

	if err := svc.Delete(root.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("delete parent with child want ErrCategoryInUse got %v", err)
	}

	product := models.Product{
		CategoryID: root.ID,
		Name:       "Test Speaker",
		Slug:       "cat-delete-product",
		Price:      models.NewMoneyFromFloat(19.99),
		IsActive:   true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if err := svc.Delete(child.ID); err != nil {
		t.Fatalf("delete empty child failed: %v", err)
	}
	if err := svc.Delete(root.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("delete category with products want ErrCategoryInUse got %v", err)
	}

	if err := db.Delete(&product).Error; err != nil {
		t.Fatalf("remove product failed: %v", err)
	}
	if err := svc.Delete(root.ID); err != nil {
		t.Fatalf("delete empty root failed: %v", err)
	}
	if err := svc.Delete(root.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete twice want ErrNotFound got %v", err)
	}
}

func TestCategoryListSubcategoriesOfChildRejected(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)
	root := createCategory(t, svc, "Sports", "cat-subs-root", nil)
	child := createCategory(t, svc, "Cycling", "cat-subs-child", &root.ID)

	subs, err := svc.ListSubcategories(root.ID, false)
	if err != nil {
		t.Fatalf("list subcategories failed: %v", err)
	}
	if len(subs) != 1 || subs[0].ID != child.ID {
		t.Fatalf("unexpected subcategories: %+v", subs)
	}

	if _, err := svc.ListSubcategories(child.ID, false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("subcategories of a child want ErrNotFound got %v", err)
	}
}

func TestCategorySlugGeneratedFromName(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)
	category, err := svc.Create(CategoryInput{Name: "Smart  Home & IoT Gen"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if category.Slug != "smart-home-iot-gen" {
		t.Fatalf("slug want smart-home-iot-gen got %s", category.Slug)
	}
}

func TestCategoryCreateInactiveStaysInactive(t *testing.T) {
	svc, db := setupCategoryServiceTest(t)

	inactive := false
	category, err := svc.Create(CategoryInput{
		Name:     "Hidden Aisle",
		Slug:     "hidden-aisle-draft",
		IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	var reloaded models.Category
	if err := db.First(&reloaded, category.ID).Error; err != nil {
		t.Fatalf("reload category failed: %v", err)
	}
	if reloaded.IsActive {
		t.Fatalf("category created inactive must stay inactive")
	}
}

func TestCategoryListSubcategoriesReportsProductCount(t *testing.T) {
	svc, db := setupCategoryServiceTest(t)
	root := createCategory(t, svc, "Garden", "cat-subcount-root", nil)
	child := createCategory(t, svc, "Planters", "cat-subcount-child", &root.ID)

	product := models.Product{
		CategoryID: child.ID,
		Name:       "Ceramic Planter",
		Slug:       "cat-subcount-product",
		Price:      models.NewMoneyFromFloat(12.50),
		IsActive:   true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	subs, err := svc.ListSubcategories(root.ID, false)
	if err != nil {
		t.Fatalf("list subcategories failed: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("want 1 subcategory got %d", len(subs))
	}
	if subs[0].ProductCount != 1 {
		t.Fatalf("subcategory product_count want 1 got %d", subs[0].ProductCount)
	}
}
