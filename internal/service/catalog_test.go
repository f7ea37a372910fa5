package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linemk/shop-online-api/internal/domain/models"
	"github.com/linemk/shop-online-api/internal/lib/apperr"
	"github.com/linemk/shop-online-api/internal/service"
)

type catalogFixture struct {
	svc        service.CatalogService
	shops      *fakeShopRepo
	categories *fakeCategoryRepo
	items      *fakeItemRepo
	shop       *models.Shop
	other      *models.Shop
}

func newCatalogFixture() *catalogFixture {
	f := &catalogFixture{
		shops:      newFakeShopRepo(),
		categories: newFakeCategoryRepo(),
		items:      newFakeItemRepo(),
	}
	f.shop = &models.Shop{ID: 1, UserID: 10, ShopName: "Hat Store", Slug: "hat-store", IsApproved: true}
	f.other = &models.Shop{ID: 2, UserID: 11, ShopName: "Other", Slug: "other", IsApproved: true}
	f.shops.shops[1] = f.shop
	f.shops.shops[2] = f.other
	f.shops.nextID = 2
	f.svc = service.NewCatalogService(discardLogger(), f.shops, f.categories, f.items)
	return f
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	category, err := f.svc.CreateCategory(ctx, f.shop, "Caps")
	require.NoError(t, err)
	assert.Equal(t, "hat-store-caps", category.Slug)

	_, err = f.svc.CreateCategory(ctx, f.shop, "Caps")
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, "You already have category with the name 'Caps'.", apperr.Message(err))
}

func TestCreateItem_SlugCollisionGetsSuffix(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	_, err := f.svc.CreateCategory(ctx, f.shop, "Caps")
	require.NoError(t, err)

	first, err := f.svc.CreateItem(ctx, f.shop, service.ItemInput{Name: "Red Hat", Price: decimal.NewFromInt(10), CategorySlug: "hat-store-caps"})
	require.NoError(t, err)
	second, err := f.svc.CreateItem(ctx, f.shop, service.ItemInput{Name: "red hat", Price: decimal.NewFromInt(12), CategorySlug: "hat-store-caps"})
	require.NoError(t, err)

	assert.Equal(t, "hat-store-red-hat", first.Slug)
	assert.Equal(t, "hat-store-red-hat-1", second.Slug)

	_, err = f.svc.CreateItem(ctx, f.shop, service.ItemInput{Name: "Red Hat", Price: decimal.NewFromInt(1), CategorySlug: "hat-store-caps"})
	assert.Equal(t, "You already have item with the name 'Red Hat'.", apperr.Message(err))
}

func TestCreateItem_UnknownCategoryAndNegativePrice(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	_, err := f.svc.CreateItem(ctx, f.shop, service.ItemInput{Name: "Hat", Price: decimal.NewFromInt(1), CategorySlug: "missing"})
	assert.Equal(t, service.MsgCategoryNotFound, apperr.Message(err))

	_, err = f.svc.CreateItem(ctx, f.shop, service.ItemInput{Name: "Hat", Price: decimal.NewFromInt(-1), CategorySlug: "missing"})
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestUpdateItem_NotOwnerForbidden(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	f.items.add(&models.Item{ShopID: f.shop.ID, Name: "Hat", Slug: "hat-store-hat", Price: decimal.NewFromInt(5)})

	name := "Stolen"
	_, err := f.svc.UpdateItem(ctx, f.other, "hat-store-hat", service.ItemUpdateInput{Name: &name})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	err = f.svc.DeleteItem(ctx, f.other, "hat-store-hat")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestUpdateItem_RenameRegeneratesSlug(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	f.items.add(&models.Item{ShopID: f.shop.ID, Name: "Hat", Slug: "hat-store-hat", Price: decimal.NewFromInt(5)})

	name := "Big Hat"
	price := decimal.NewFromInt(7)
	item, err := f.svc.UpdateItem(ctx, f.shop, "hat-store-hat", service.ItemUpdateInput{Name: &name, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "hat-store-big-hat", item.Slug)
	assert.True(t, price.Equal(item.Price))
}

func TestUpdateItem_RenameKeepsOwnSlug(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	f.items.add(&models.Item{ShopID: f.shop.ID, Name: "Cap", Slug: "hat-store-cap", Price: decimal.NewFromInt(5)})
	f.items.add(&models.Item{ShopID: f.shop.ID, Name: "Hat", Slug: "hat-store-hat", Price: decimal.NewFromInt(5)})
	f.items.add(&models.Item{ShopID: f.shop.ID, Name: "Hat!", Slug: "hat-store-hat-1", Price: decimal.NewFromInt(5)})

	name := "cap"
	item, err := f.svc.UpdateItem(ctx, f.shop, "hat-store-cap", service.ItemUpdateInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "hat-store-cap", item.Slug)
	assert.Equal(t, "cap", item.Name)

	// суффиксный slug тоже сохраняется, если база не изменилась
	name = "HAT!"
	item, err = f.svc.UpdateItem(ctx, f.shop, "hat-store-hat-1", service.ItemUpdateInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "hat-store-hat-1", item.Slug)
}

func TestPublicCatalog_UnapprovedShopHidden(t *testing.T) {
	f := newCatalogFixture()
	f.other.IsApproved = false

	_, err := f.svc.ListShopItems(context.Background(), "other")
	assert.Equal(t, service.MsgShopNotFound, apperr.Message(err))

	_, err = f.svc.GetItem(context.Background(), "nope")
	assert.Equal(t, service.MsgItemNotFound, apperr.Message(err))
}
