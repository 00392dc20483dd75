package firefly

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// Client обращается к REST API одной инсталляции Firefly III
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

func (c *Client) ListAccounts(ctx context.Context, accountType AccountType) ([]Resource, error) {
	return c.listResources(ctx, "/api/v1/accounts", url.Values{"type": {string(accountType)}})
}

func (c *Client) ListCategories(ctx context.Context) ([]Resource, error) {
	return c.listResources(ctx, "/api/v1/categories", nil)
}

func (c *Client) ListBudgets(ctx context.Context) ([]Resource, error) {
	return c.listResources(ctx, "/api/v1/budgets", nil)
}

// StoreTransaction создаёт транзакцию из одной части и возвращает её сохранённую версию
func (c *Client) StoreTransaction(ctx context.Context, split TransactionSplit) (*StoredSplit, error) {
	var resp storeResponse
	req := storeRequest{Transactions: []TransactionSplit{split}}
	if err := c.do(ctx, http.MethodPost, "/api/v1/transactions", nil, req, &resp); err != nil {
		return nil, err
	}

	if len(resp.Data.Attributes.Transactions) == 0 {
		return nil, errors.New("firefly: stored transaction has no splits")
	}
	return &resp.Data.Attributes.Transactions[0], nil
}

// ExpensesByCategory возвращает расходы по категориям за период [start, end]
func (c *Client) ExpensesByCategory(ctx context.Context, start, end time.Time) ([]InsightEntry, error) {
	query := url.Values{
		"start": {start.Format(dateLayout)},
		"end":   {end.Format(dateLayout)},
	}

	var entries []InsightEntry
	if err := c.do(ctx, http.MethodGet, "/api/v1/insight/expense/category", query, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// listResources проходит по всем страницам списка
func (c *Client) listResources(ctx context.Context, path string, query url.Values) ([]Resource, error) {
	if query == nil {
		query = url.Values{}
	}

	var resources []Resource
	for page := 1; ; page++ {
		query.Set("page", strconv.Itoa(page))

		var resp listResponse
		if err := c.do(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
			return nil, err
		}

		for _, item := range resp.Data {
			resources = append(resources, Resource{ID: item.ID, Name: item.Attributes.Name})
		}

		if page >= resp.Meta.Pagination.TotalPages {
			return resources, nil
		}
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Trace-Id", traceID(ctx))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Reason:     reasonPhrase(resp),
			Body:       data,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}

type traceKey struct{}

// WithTraceID привязывает ID трассировки к контексту, чтобы он попал в заголовок X-Trace-Id
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceKey{}, id)
}

// TraceID возвращает ID трассировки из контекста, если он там есть
func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceKey{}).(string)
	return id
}

func traceID(ctx context.Context) string {
	if id := TraceID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
