// Package client talks to the food store HTTP API. It is the submitter behind the
// rating form and resolves categories for the new-food form.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"food-store-api/converter"
	"food-store-api/models"
	"food-store-api/ratingform"
)

var _ ratingform.Submitter = (*Client)(nil)

// APIError is a non-2xx answer from the server
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client is safe for concurrent use once configured. Login and Register replace the token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type Option func(*Client)

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the bearer token sent with each request
func (c *Client) Token() string {
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var errBody struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &errBody) == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
		}
		return nil, apiErr
	}
	return data, nil
}

type authResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a token and keeps it for later calls
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	var resp authResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	c.token = resp.Token
	return resp.Token, nil
}

// Register creates an account and keeps its token
func (c *Client) Register(ctx context.Context, name, email, password string, role models.UserRole) (string, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]any{
		"name":     name,
		"email":    email,
		"password": password,
		"role":     role,
	})
	if err != nil {
		return "", err
	}
	var resp authResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("decode register response: %w", err)
	}
	c.token = resp.Token
	return resp.Token, nil
}

// SendFeedback posts a rating for an order
func (c *Client) SendFeedback(ctx context.Context, orderID int, fb models.Feedback) error {
	_, err := c.do(ctx, http.MethodPost, "/api/customer/orders/"+strconv.Itoa(orderID)+"/feedback", fb)
	return err
}

func (c *Client) GetCategory(ctx context.Context, id int) (models.FoodCategory, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/categories/"+strconv.Itoa(id), nil)
	if err != nil {
		return models.FoodCategory{}, err
	}
	var category models.FoodCategory
	if err := json.Unmarshal(data, &category); err != nil {
		return models.FoodCategory{}, fmt.Errorf("decode category: %w", err)
	}
	return category, nil
}

func (c *Client) CreateCategory(ctx context.Context, name, image string) (models.FoodCategory, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/admin/categories", map[string]string{
		"name":  name,
		"image": image,
	})
	if err != nil {
		return models.FoodCategory{}, err
	}
	var category models.FoodCategory
	if err := json.Unmarshal(data, &category); err != nil {
		return models.FoodCategory{}, fmt.Errorf("decode category: %w", err)
	}
	return category, nil
}

func (c *Client) GetFood(ctx context.Context, id int) (models.Food, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/foods/"+strconv.Itoa(id), nil)
	if err != nil {
		return models.Food{}, err
	}
	return converter.FoodToReceive(data)
}

// FoodQuery narrows ListFoods. Zero fields do not filter.
type FoodQuery struct {
	CategoryID int
	Status     models.FoodStatus
	Tag        string
	Search     string
}

func (q FoodQuery) encode() string {
	v := url.Values{}
	if q.CategoryID > 0 {
		v.Set("category", strconv.Itoa(q.CategoryID))
	}
	if q.Status != "" {
		v.Set("status", string(q.Status))
	}
	if q.Tag != "" {
		v.Set("tag", q.Tag)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

func (c *Client) ListFoods(ctx context.Context, q FoodQuery) ([]models.Food, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/foods"+q.encode(), nil)
	if err != nil {
		return nil, err
	}
	return converter.FoodsToReceive(data)
}

// CreateFood posts the send shape of food and returns the stored food
func (c *Client) CreateFood(ctx context.Context, food models.Food) (models.Food, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/admin/foods", converter.FoodToSend(food))
	if err != nil {
		return models.Food{}, err
	}
	var resp struct {
		Food json.RawMessage `json:"food"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return models.Food{}, fmt.Errorf("decode create response: %w", err)
	}
	return converter.FoodToReceive(resp.Food)
}

// CreateFoodFromForm resolves the form's category and creates the food it describes
func (c *Client) CreateFoodFromForm(ctx context.Context, form converter.FoodFormData) (models.Food, error) {
	category, err := c.GetCategory(ctx, form.CategoryID)
	if err != nil {
		return models.Food{}, fmt.Errorf("resolve category %d: %w", form.CategoryID, err)
	}
	return c.CreateFood(ctx, converter.FoodFormDataToFood(form, category))
}

// OrderLine asks for quantity of one food size
type OrderLine struct {
	FoodSizeID int `json:"foodSizeId"`
	Quantity   int `json:"quantity"`
}

func (c *Client) PlaceOrder(ctx context.Context, deliveryAddress string, lines []OrderLine) (models.Order, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/customer/orders", map[string]any{
		"deliveryAddress": deliveryAddress,
		"items":           lines,
	})
	if err != nil {
		return models.Order{}, err
	}
	var resp struct {
		Order models.Order `json:"order"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return models.Order{}, fmt.Errorf("decode order: %w", err)
	}
	return resp.Order, nil
}

func (c *Client) GetOrder(ctx context.Context, id int) (models.Order, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/customer/orders/"+strconv.Itoa(id), nil)
	if err != nil {
		return models.Order{}, err
	}
	var resp struct {
		Order models.Order `json:"order"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return models.Order{}, fmt.Errorf("decode order: %w", err)
	}
	return resp.Order, nil
}
