package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/abhayvishwakarma1111/bitezyqr/internal/menu/domain"
	menurepo "github.com/abhayvishwakarma1111/bitezyqr/internal/menu/repository"
)

func newService(t *testing.T, name string) (domain.Service, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.MenuItem{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  menurepo.Provide(),
	})
	return svc, node
}

func TestCreateAndListMenuItems(t *testing.T) {
	svc, node := newService(t, "menu_create_list")
	ctx := context.Background()
	restaurantID := node.Generate().String()

	for _, req := range []domain.CreateItemRequest{
		{RestaurantID: restaurantID, Name: "Paneer Tikka", Price: decimal.NewFromInt(240), Available: true},
		{RestaurantID: restaurantID, Name: "Butter Naan", Price: decimal.NewFromInt(60), Available: false},
		{RestaurantID: restaurantID, Name: "Extra Cheese", Price: decimal.NewFromInt(40), Available: true, Addon: true},
	} {
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, domain.ListItemsRequest{RestaurantID: restaurantID})
	require.NoError(t, err)
	require.Len(t, all, 3)

	// Regular dishes sort before addons, each group by name.
	assert.Equal(t, "Butter Naan", all[0].Name)
	assert.Equal(t, "Paneer Tikka", all[1].Name)
	assert.Equal(t, "Extra Cheese", all[2].Name)
	assert.True(t, all[2].Addon)

	available, err := svc.List(ctx, domain.ListItemsRequest{RestaurantID: restaurantID, AvailableOnly: true})
	require.NoError(t, err)
	assert.Len(t, available, 2)
	for _, item := range available {
		assert.True(t, item.Available)
	}
}

func TestCreateMenuItemValidation(t *testing.T) {
	svc, node := newService(t, "menu_create_validation")
	ctx := context.Background()
	restaurantID := node.Generate().String()

	_, err := svc.Create(ctx, domain.CreateItemRequest{RestaurantID: "not-a-snowflake", Name: "Dal", Price: decimal.NewFromInt(120)})
	assert.ErrorIs(t, err, domain.ErrInvalidRestaurant)

	_, err = svc.Create(ctx, domain.CreateItemRequest{RestaurantID: restaurantID, Name: "   ", Price: decimal.NewFromInt(120)})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreateItemRequest{RestaurantID: restaurantID, Name: "Dal", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestPatchMenuItem(t *testing.T) {
	svc, node := newService(t, "menu_patch")
	ctx := context.Background()
	restaurantID := node.Generate().String()

	item, err := svc.Create(ctx, domain.CreateItemRequest{
		RestaurantID: restaurantID,
		Name:         "Masala Dosa",
		Price:        decimal.NewFromInt(150),
		Available:    true,
	})
	require.NoError(t, err)

	newPrice := decimal.NewFromInt(170)
	unavailable := false
	updated, err := svc.Patch(ctx, domain.PatchItemRequest{
		RestaurantID: restaurantID,
		ID:           item.ID.String(),
		Price:        &newPrice,
		Available:    &unavailable,
	})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(newPrice))
	assert.False(t, updated.Available)
	assert.Equal(t, "Masala Dosa", updated.Name)

	_, err = svc.Patch(ctx, domain.PatchItemRequest{
		RestaurantID: restaurantID,
		ID:           node.Generate().String(),
		Price:        &newPrice,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Items belong to exactly one restaurant.
	_, err = svc.Patch(ctx, domain.PatchItemRequest{
		RestaurantID: node.Generate().String(),
		ID:           item.ID.String(),
		Price:        &newPrice,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteMenuItem(t *testing.T) {
	svc, node := newService(t, "menu_delete")
	ctx := context.Background()
	restaurantID := node.Generate().String()

	item, err := svc.Create(ctx, domain.CreateItemRequest{
		RestaurantID: restaurantID,
		Name:         "Lassi",
		Price:        decimal.NewFromInt(80),
		Available:    true,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, restaurantID, item.ID.String()))

	items, err := svc.List(ctx, domain.ListItemsRequest{RestaurantID: restaurantID})
	require.NoError(t, err)
	assert.Empty(t, items)

	err = svc.Delete(ctx, restaurantID, item.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPricesForSkipsUnknownItems(t *testing.T) {
	svc, node := newService(t, "menu_prices_for")
	ctx := context.Background()
	restaurantID := node.Generate()

	item, err := svc.Create(ctx, domain.CreateItemRequest{
		RestaurantID: restaurantID.String(),
		Name:         "Thali",
		Price:        decimal.NewFromInt(220),
		Available:    true,
	})
	require.NoError(t, err)

	unknown := node.Generate()
	prices, err := svc.PricesFor(ctx, restaurantID, []snowflake.ID{item.ID, unknown})
	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.True(t, prices[item.ID].Equal(decimal.NewFromInt(220)))
}
