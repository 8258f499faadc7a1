package backend

import (
	"context"
	"sync"
	"time"

	"github.com/mobimart/storefront/internal/models"
)

// Anonymous is the identity of an unauthenticated caller.
const Anonymous = ""

// Memory is an in-process implementation of the remote service, used for
// local development and tests. One Memory instance is the whole remote store;
// ForIdentity binds it to a caller the way the HTTP client binds a token.
type Memory struct {
	mu sync.Mutex

	products    map[models.ProductID]models.Product
	productSeq  models.ProductID
	productBoot []models.ProductID // insertion order for stable listings

	carts    map[string][]models.CartItem
	orders   map[models.OrderID]models.Order
	orderSeq models.OrderID

	profiles map[string]models.UserProfile
	admin    string // identity holding the admin role, "" when unclaimed
}

// NewMemory creates an empty in-memory remote service.
func NewMemory() *Memory {
	return &Memory{
		products: make(map[models.ProductID]models.Product),
		carts:    make(map[string][]models.CartItem),
		orders:   make(map[models.OrderID]models.Order),
		profiles: make(map[string]models.UserProfile),
	}
}

// NewMemoryWithSeed creates an in-memory remote service preloaded with a
// small phone catalog for local development.
func NewMemoryWithSeed() *Memory {
	m := NewMemory()
	seed := []models.Product{
		{Name: "Oppo Reno 11", Stock: 12, ImageURL: "/img/oppo-reno-11.jpg", Category: "mobiles", BrandID: 1, PricePKR: 94_999},
		{Name: "Oppo A78", Stock: 20, ImageURL: "/img/oppo-a78.jpg", Category: "mobiles", BrandID: 1, PricePKR: 52_999},
		{Name: "Vivo V30", Stock: 8, ImageURL: "/img/vivo-v30.jpg", Category: "mobiles", BrandID: 2, PricePKR: 119_999},
		{Name: "Vivo Y27", Stock: 25, ImageURL: "/img/vivo-y27.jpg", Category: "mobiles", BrandID: 2, PricePKR: 46_999},
		{Name: "Infinix Note 40", Stock: 18, ImageURL: "/img/infinix-note-40.jpg", Category: "mobiles", BrandID: 3, PricePKR: 54_999},
		{Name: "Infinix Hot 40i", Stock: 30, ImageURL: "/img/infinix-hot-40i.jpg", Category: "mobiles", BrandID: 3, PricePKR: 33_999},
		{Name: "Oppo Enco Buds 2", Stock: 40, ImageURL: "/img/oppo-enco-buds-2.jpg", Category: "accessories", BrandID: 1, PricePKR: 7_499},
		{Name: "Vivo 44W Charger", Stock: 35, ImageURL: "/img/vivo-44w-charger.jpg", Category: "accessories", BrandID: 2, PricePKR: 3_999},
	}
	now := time.Now()
	for _, p := range seed {
		m.productSeq++
		p.ID = m.productSeq
		p.AddedOn = now
		m.products[p.ID] = p
		m.productBoot = append(m.productBoot, p.ID)
	}
	return m
}

// ForIdentity returns a Client view of the store bound to the given caller
// identity. An empty identity is the anonymous caller.
func (m *Memory) ForIdentity(identity string) Client {
	return &memoryClient{store: m, identity: identity}
}

type memoryClient struct {
	store    *Memory
	identity string
}

func (c *memoryClient) anonymous() bool { return c.identity == Anonymous }

func (c *memoryClient) GetCart(ctx context.Context) (models.Cart, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	items := c.store.carts[c.identity]
	out := make([]models.CartItem, len(items))
	copy(out, items)
	return models.Cart{Items: out}, nil
}

// AddToCart merges: a second add for the same productId increments the
// existing line. Replay correctness in the cart engine relies on this.
func (c *memoryClient) AddToCart(ctx context.Context, productID models.ProductID, quantity int64) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	items := c.store.carts[c.identity]
	for i, it := range items {
		if it.ProductID == productID {
			items[i].Quantity += quantity
			c.store.carts[c.identity] = items
			return nil
		}
	}
	c.store.carts[c.identity] = append(items, models.CartItem{ProductID: productID, Quantity: quantity})
	return nil
}

func (c *memoryClient) ClearCart(ctx context.Context) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	delete(c.store.carts, c.identity)
	return nil
}

func (c *memoryClient) Checkout(ctx context.Context, address models.DeliveryAddress, method models.PaymentMethod) (models.OrderID, error) {
	if c.anonymous() {
		return 0, ErrUnauthenticated
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	if _, ok := c.store.profiles[c.identity]; !ok {
		return 0, ErrNoProfile
	}
	items := c.store.carts[c.identity]
	if len(items) == 0 {
		return 0, ErrEmptyCart
	}

	var total int64
	lines := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		p, ok := c.store.products[it.ProductID]
		if !ok {
			return 0, ErrProductNotFound
		}
		lineTotal := p.PricePKR * it.Quantity
		lines = append(lines, models.OrderItem{
			Product:  p,
			Quantity: it.Quantity,
			PricePKR: p.PricePKR,
			TotalPKR: lineTotal,
		})
		total += lineTotal
	}

	c.store.orderSeq++
	order := models.Order{
		ID:              c.store.orderSeq,
		Status:          models.OrderPending,
		DeliveryAddress: address,
		PaymentMethod:   method,
		User:            c.identity,
		TotalAmountPKR:  total,
		Timestamp:       time.Now(),
		Items:           lines,
	}
	c.store.orders[order.ID] = order

	// Checkout consumes the cart.
	delete(c.store.carts, c.identity)
	return order.ID, nil
}

func (c *memoryClient) GetUserOrders(ctx context.Context) ([]models.Order, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	var out []models.Order
	for id := models.OrderID(1); id <= c.store.orderSeq; id++ {
		if o, ok := c.store.orders[id]; ok && o.User == c.identity {
			out = append(out, o)
		}
	}
	return out, nil
}

func (c *memoryClient) GetOrder(ctx context.Context, id models.OrderID) (models.Order, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	o, ok := c.store.orders[id]
	if !ok || o.User != c.identity {
		return models.Order{}, ErrOrderNotFound
	}
	return o, nil
}

func (c *memoryClient) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	out := make([]models.Product, 0, len(c.store.products))
	for _, id := range c.store.productBoot {
		if p, ok := c.store.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *memoryClient) GetProduct(ctx context.Context, id models.ProductID) (*models.Product, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	p, ok := c.store.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (c *memoryClient) AddProduct(ctx context.Context, p models.Product) (models.ProductID, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	if c.store.admin != c.identity || c.anonymous() {
		return 0, ErrForbidden
	}
	c.store.productSeq++
	p.ID = c.store.productSeq
	if p.AddedOn.IsZero() {
		p.AddedOn = time.Now()
	}
	c.store.products[p.ID] = p
	c.store.productBoot = append(c.store.productBoot, p.ID)
	return p.ID, nil
}

func (c *memoryClient) UpdateProduct(ctx context.Context, id models.ProductID, p models.Product) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	if c.store.admin != c.identity || c.anonymous() {
		return ErrForbidden
	}
	if _, ok := c.store.products[id]; !ok {
		return ErrProductNotFound
	}
	p.ID = id
	c.store.products[id] = p
	return nil
}

func (c *memoryClient) DeleteProduct(ctx context.Context, id models.ProductID) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	if c.store.admin != c.identity || c.anonymous() {
		return ErrForbidden
	}
	if _, ok := c.store.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(c.store.products, id)
	return nil
}

func (c *memoryClient) GetCallerUserRole(ctx context.Context) (models.UserRole, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	switch {
	case c.anonymous():
		return models.RoleGuest, nil
	case c.store.admin == c.identity:
		return models.RoleAdmin, nil
	default:
		return models.RoleUser, nil
	}
}

func (c *memoryClient) GetCallerUserProfile(ctx context.Context) (*models.UserProfile, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	p, ok := c.store.profiles[c.identity]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (c *memoryClient) SaveCallerUserProfile(ctx context.Context, profile models.UserProfile) error {
	if c.anonymous() {
		return ErrUnauthenticated
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	c.store.profiles[c.identity] = profile
	return nil
}

func (c *memoryClient) IsCallerAdmin(ctx context.Context) (bool, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	return !c.anonymous() && c.store.admin == c.identity, nil
}

// ClaimAdminRole grants admin to the first authenticated caller to ask.
func (c *memoryClient) ClaimAdminRole(ctx context.Context) (models.ClaimAdminResult, error) {
	if c.anonymous() {
		return models.ClaimAnonymousCaller, nil
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	if c.store.admin != "" {
		return models.ClaimAlreadyExists, nil
	}
	c.store.admin = c.identity
	return models.ClaimSuccess, nil
}

// TransferAdminRole moves the admin role to the calling identity. It fails
// with authenticationError when no admin has been claimed yet.
func (c *memoryClient) TransferAdminRole(ctx context.Context) (models.TransferAdminResult, error) {
	if c.anonymous() {
		return models.TransferAnonymousCaller, nil
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	if c.store.admin == "" {
		return models.TransferAuthenticationError, nil
	}
	c.store.admin = c.identity
	return models.TransferSuccess, nil
}
