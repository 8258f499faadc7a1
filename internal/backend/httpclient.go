package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mobimart/storefront/internal/models"
)

// HTTPClient talks the remote service's RPC contract over HTTP/JSON. Every
// operation is a POST to {baseURL}/rpc/{method} carrying a JSON argument
// object; the caller's identity token rides in the Authorization header, an
// empty token meaning the anonymous caller.
type HTTPClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewHTTPClient creates a client bound to one identity token.
func NewHTTPClient(baseURL, token string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// rpcError is the wire shape of a remote failure.
type rpcError struct {
	Error string `json:"error"`
}

// call performs one RPC. args is marshalled as the request body; when out is
// non-nil the response body is decoded into it.
func (c *HTTPClient) call(ctx context.Context, method string, args, out any) error {
	body, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode %s args: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rpc/"+method, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.decodeError(method, resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	return nil
}

// decodeError maps a non-200 response onto the contract's sentinel errors so
// callers can branch with errors.Is regardless of transport.
func (c *HTTPClient) decodeError(method string, resp *http.Response) error {
	var re rpcError
	_ = json.NewDecoder(resp.Body).Decode(&re)

	var base error
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		base = ErrUnauthenticated
	case http.StatusForbidden:
		base = ErrForbidden
	case http.StatusNotFound:
		// A 404 names whatever entity the method looked up.
		if method == "getOrder" {
			base = ErrOrderNotFound
		} else {
			base = ErrProductNotFound
		}
	case http.StatusConflict:
		base = ErrEmptyCart
	case http.StatusPreconditionFailed:
		base = ErrNoProfile
	default:
		if re.Error != "" {
			return fmt.Errorf("%s: remote error: %s", method, re.Error)
		}
		return fmt.Errorf("%s: remote status %d", method, resp.StatusCode)
	}
	if re.Error != "" {
		return fmt.Errorf("%s: %s: %w", method, re.Error, base)
	}
	return fmt.Errorf("%s: %w", method, base)
}

func (c *HTTPClient) GetCart(ctx context.Context) (models.Cart, error) {
	var cart models.Cart
	err := c.call(ctx, "getCart", struct{}{}, &cart)
	return cart, err
}

func (c *HTTPClient) AddToCart(ctx context.Context, productID models.ProductID, quantity int64) error {
	args := struct {
		ProductID models.ProductID `json:"productId"`
		Quantity  int64            `json:"quantity"`
	}{productID, quantity}
	return c.call(ctx, "addToCart", args, nil)
}

func (c *HTTPClient) ClearCart(ctx context.Context) error {
	return c.call(ctx, "clearCart", struct{}{}, nil)
}

func (c *HTTPClient) Checkout(ctx context.Context, address models.DeliveryAddress, method models.PaymentMethod) (models.OrderID, error) {
	args := struct {
		DeliveryAddress models.DeliveryAddress `json:"deliveryAddress"`
		PaymentMethod   models.PaymentMethod   `json:"paymentMethod"`
	}{address, method}
	var out struct {
		OrderID models.OrderID `json:"orderId"`
	}
	if err := c.call(ctx, "checkout", args, &out); err != nil {
		return 0, err
	}
	return out.OrderID, nil
}

func (c *HTTPClient) GetUserOrders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	err := c.call(ctx, "getUserOrders", struct{}{}, &out)
	return out, err
}

func (c *HTTPClient) GetOrder(ctx context.Context, id models.OrderID) (models.Order, error) {
	args := struct {
		OrderID models.OrderID `json:"orderId"`
	}{id}
	var out models.Order
	err := c.call(ctx, "getOrder", args, &out)
	return out, err
}

func (c *HTTPClient) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	err := c.call(ctx, "getAllProducts", struct{}{}, &out)
	return out, err
}

func (c *HTTPClient) GetProduct(ctx context.Context, id models.ProductID) (*models.Product, error) {
	args := struct {
		ID models.ProductID `json:"id"`
	}{id}
	var out *models.Product
	err := c.call(ctx, "getProduct", args, &out)
	return out, err
}

func (c *HTTPClient) AddProduct(ctx context.Context, p models.Product) (models.ProductID, error) {
	args := struct {
		Product models.Product `json:"product"`
	}{p}
	var out struct {
		ProductID models.ProductID `json:"productId"`
	}
	if err := c.call(ctx, "addProduct", args, &out); err != nil {
		return 0, err
	}
	return out.ProductID, nil
}

func (c *HTTPClient) UpdateProduct(ctx context.Context, id models.ProductID, p models.Product) error {
	args := struct {
		ID      models.ProductID `json:"id"`
		Product models.Product   `json:"product"`
	}{id, p}
	return c.call(ctx, "updateProduct", args, nil)
}

func (c *HTTPClient) DeleteProduct(ctx context.Context, id models.ProductID) error {
	args := struct {
		ID models.ProductID `json:"id"`
	}{id}
	return c.call(ctx, "deleteProduct", args, nil)
}

func (c *HTTPClient) GetCallerUserRole(ctx context.Context) (models.UserRole, error) {
	var out struct {
		Role models.UserRole `json:"role"`
	}
	if err := c.call(ctx, "getCallerUserRole", struct{}{}, &out); err != nil {
		return models.RoleGuest, err
	}
	return out.Role, nil
}

func (c *HTTPClient) GetCallerUserProfile(ctx context.Context) (*models.UserProfile, error) {
	var out *models.UserProfile
	err := c.call(ctx, "getCallerUserProfile", struct{}{}, &out)
	return out, err
}

func (c *HTTPClient) SaveCallerUserProfile(ctx context.Context, profile models.UserProfile) error {
	args := struct {
		Profile models.UserProfile `json:"profile"`
	}{profile}
	return c.call(ctx, "saveCallerUserProfile", args, nil)
}

func (c *HTTPClient) IsCallerAdmin(ctx context.Context) (bool, error) {
	var out struct {
		Admin bool `json:"admin"`
	}
	if err := c.call(ctx, "isCallerAdmin", struct{}{}, &out); err != nil {
		return false, err
	}
	return out.Admin, nil
}

func (c *HTTPClient) ClaimAdminRole(ctx context.Context) (models.ClaimAdminResult, error) {
	var out struct {
		Result models.ClaimAdminResult `json:"result"`
	}
	if err := c.call(ctx, "claimAdminRole", struct{}{}, &out); err != nil {
		return "", err
	}
	return out.Result, nil
}

func (c *HTTPClient) TransferAdminRole(ctx context.Context) (models.TransferAdminResult, error) {
	var out struct {
		Result models.TransferAdminResult `json:"result"`
	}
	if err := c.call(ctx, "transferAdminRole", struct{}{}, &out); err != nil {
		return "", err
	}
	return out.Result, nil
}

var _ Client = (*HTTPClient)(nil)
var _ Client = (*memoryClient)(nil)
