package catalog

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobimart/storefront/internal/backend"
	"github.com/mobimart/storefront/internal/models"
)

// countingClient counts GetAllProducts calls to verify read-through caching.
type countingClient struct {
	backend.Client
	listCalls atomic.Int64
}

func (c *countingClient) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	c.listCalls.Add(1)
	return c.Client.GetAllProducts(ctx)
}

func adminClient(t *testing.T, mem *backend.Memory) backend.Client {
	t.Helper()
	admin := mem.ForIdentity("admin")
	_, err := admin.ClaimAdminRole(context.Background())
	require.NoError(t, err)
	return admin
}

func TestProducts_ReadThroughCache(t *testing.T) {
	ctx := context.Background()
	client := &countingClient{Client: backend.NewMemoryWithSeed().ForIdentity("user-1")}
	svc := NewService(client)

	first, err := svc.Products(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	_, err = svc.Products(ctx)
	require.NoError(t, err)
	_, err = svc.Product(ctx, first[0].ID)
	require.NoError(t, err)

	// One remote fetch serves all three reads.
	assert.Equal(t, int64(1), client.listCalls.Load())
}

func TestProduct_MissingResolvesNil(t *testing.T) {
	ctx := context.Background()
	svc := NewService(backend.NewMemoryWithSeed().ForIdentity("user-1"))

	p, err := svc.Product(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestInvalidate_ForcesRefetch(t *testing.T) {
	ctx := context.Background()
	mem := backend.NewMemoryWithSeed()
	admin := adminClient(t, mem)

	client := &countingClient{Client: mem.ForIdentity("user-1")}
	svc := NewService(client)

	before, err := svc.Products(ctx)
	require.NoError(t, err)

	_, err = admin.AddProduct(ctx, models.Product{Name: "Infinix Zero 30", BrandID: 3, PricePKR: 64_999})
	require.NoError(t, err)

	// Until invalidation the stale cache is served.
	stale, err := svc.Products(ctx)
	require.NoError(t, err)
	assert.Len(t, stale, len(before))

	svc.Invalidate()
	fresh, err := svc.Products(ctx)
	require.NoError(t, err)
	assert.Len(t, fresh, len(before)+1)
	assert.Equal(t, int64(2), client.listCalls.Load())
}

func TestAdminMutationsInvalidateOwnCache(t *testing.T) {
	ctx := context.Background()
	mem := backend.NewMemoryWithSeed()
	admin := &countingClient{Client: adminClient(t, mem)}
	svc := NewService(admin)

	initial, err := svc.Products(ctx)
	require.NoError(t, err)

	id, err := svc.AddProduct(ctx, models.Product{Name: "Vivo Y36", BrandID: 2, PricePKR: 49_999})
	require.NoError(t, err)

	afterAdd, err := svc.Products(ctx)
	require.NoError(t, err)
	assert.Len(t, afterAdd, len(initial)+1)

	require.NoError(t, svc.UpdateProduct(ctx, id, models.Product{Name: "Vivo Y36 8GB", BrandID: 2, PricePKR: 52_999}))
	p, err := svc.Product(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Vivo Y36 8GB", p.Name)

	require.NoError(t, svc.DeleteProduct(ctx, id))
	p, err = svc.Product(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, p)
}
