// Package rest implements the HTTP client for the learning backend. Every
// authenticated call reads the current token first and short-circuits with
// domain.ErrNoSession when none is stored; nothing here mutates the session.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/brg8607/lsm-frontend/internal/domain"
)

// TokenSource yields the current bearer token. Empty means no session.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenSourceFunc adapts a function to a TokenSource.
type TokenSourceFunc func(ctx context.Context) (string, error)

func (f TokenSourceFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.StatusCode, e.Message)
}

// Client is the stateless API façade. One method per backend endpoint.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

func NewClient(baseURL string, tokens TokenSource, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// --- auth (unauthenticated) ---

func (c *Client) Login(ctx context.Context, email, password string) (domain.AuthResponse, error) {
	var out domain.AuthResponse
	body := map[string]string{"correo": email, "password": password}
	err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, &out, false)
	return out, err
}

func (c *Client) Register(ctx context.Context, name, email, password string) (domain.AuthResponse, error) {
	var out domain.AuthResponse
	body := map[string]string{"nombre": name, "correo": email, "password": password}
	err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, body, &out, false)
	return out, err
}

func (c *Client) GuestLogin(ctx context.Context) (domain.AuthResponse, error) {
	var out domain.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/guest", nil, nil, &out, false)
	return out, err
}

func (c *Client) GoogleLogin(ctx context.Context, idToken, name, email, googleUID string) (domain.AuthResponse, error) {
	var out domain.AuthResponse
	body := map[string]string{
		"token_google": idToken,
		"nombre":       name,
		"correo":       email,
		"google_uid":   googleUID,
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/google", nil, body, &out, false)
	return out, err
}

// --- content (unauthenticated) ---

func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	err := c.do(ctx, http.MethodGet, "/api/categorias", nil, nil, &out, false)
	return out, err
}

// Signs lists or searches vocabulary. categoryID 0 means all categories,
// an empty query means no text filter.
func (c *Client) Signs(ctx context.Context, categoryID int, query string) ([]domain.Sign, error) {
	params := url.Values{}
	if categoryID > 0 {
		params.Set("categoria_id", strconv.Itoa(categoryID))
	}
	if query != "" {
		params.Set("busqueda", query)
	}
	var out []domain.Sign
	err := c.do(ctx, http.MethodGet, "/api/senas", params, nil, &out, false)
	return out, err
}

// --- quiz ---

// GenerateQuiz requests a dynamically generated quiz. The daily-quiz sentinel
// (categoryID -1) omits the category parameter.
func (c *Client) GenerateQuiz(ctx context.Context, categoryID, level int) (domain.Quiz, error) {
	params := url.Values{}
	if categoryID != domain.DailyQuizCategory {
		params.Set("categoria_id", strconv.Itoa(categoryID))
	}
	params.Set("nivel", strconv.Itoa(level))
	var out domain.Quiz
	err := c.do(ctx, http.MethodGet, "/api/quiz/generarDinamico", params, nil, &out, true)
	return out, err
}

func (c *Client) DailyQuizState(ctx context.Context) (domain.DailyQuizState, error) {
	var out domain.DailyQuizState
	err := c.do(ctx, http.MethodGet, "/api/quiz/diario/estado", nil, nil, &out, true)
	return out, err
}

func (c *Client) CompleteDailyQuiz(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/quiz/diario/completar", nil, nil, nil, true)
}

// --- progress, streak, points ---

func (c *Client) ProgressMap(ctx context.Context) ([]domain.CategoryProgress, error) {
	var out []domain.CategoryProgress
	err := c.do(ctx, http.MethodGet, "/api/progreso/mapa", nil, nil, &out, true)
	return out, err
}

func (c *Client) SaveProgress(ctx context.Context, categoryID, level, index int) error {
	body := map[string]int{"categoria_id": categoryID, "nivel": level, "indice": index}
	return c.do(ctx, http.MethodPost, "/api/progreso/guardar", nil, body, nil, true)
}

func (c *Client) LatestProgress(ctx context.Context) (domain.LatestProgress, error) {
	var out domain.LatestProgress
	err := c.do(ctx, http.MethodGet, "/api/progreso/actual", nil, nil, &out, true)
	return out, err
}

func (c *Client) Streak(ctx context.Context) (domain.Streak, error) {
	var out domain.Streak
	err := c.do(ctx, http.MethodGet, "/api/racha/actual", nil, nil, &out, true)
	return out, err
}

func (c *Client) RegisterSession(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/sesion/registrar", nil, nil, nil, true)
}

func (c *Client) Points(ctx context.Context) (domain.Points, error) {
	var out domain.Points
	err := c.do(ctx, http.MethodGet, "/api/puntos/actual", nil, nil, &out, true)
	return out, err
}

func (c *Client) AddPoints(ctx context.Context, points int) error {
	body := map[string]int{"puntos": points}
	return c.do(ctx, http.MethodPost, "/api/puntos/sumar", nil, body, nil, true)
}

// --- admin ---
// Mutating admin calls are not idempotent and are never retried.

func (c *Client) CreateCategory(ctx context.Context, input domain.CategoryInput) error {
	return c.do(ctx, http.MethodPost, "/api/admin/categorias", nil, input, nil, true)
}

func (c *Client) UpdateCategory(ctx context.Context, id int, input domain.CategoryInput) error {
	return c.do(ctx, http.MethodPut, "/api/admin/categorias/"+strconv.Itoa(id), nil, input, nil, true)
}

func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/categorias/"+strconv.Itoa(id), nil, nil, nil, true)
}

func (c *Client) CreateSign(ctx context.Context, input domain.SignInput) error {
	return c.do(ctx, http.MethodPost, "/api/admin/senas", nil, input, nil, true)
}

func (c *Client) UpdateSign(ctx context.Context, id int, input domain.SignInput) error {
	return c.do(ctx, http.MethodPut, "/api/admin/senas/"+strconv.Itoa(id), nil, input, nil, true)
}

func (c *Client) DeleteSign(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/senas/"+strconv.Itoa(id), nil, nil, nil, true)
}

func (c *Client) CreateQuiz(ctx context.Context, input domain.QuizInput) error {
	return c.do(ctx, http.MethodPost, "/api/admin/quiz", nil, input, nil, true)
}

func (c *Client) UpdateQuiz(ctx context.Context, id int, input domain.QuizInput) error {
	return c.do(ctx, http.MethodPut, "/api/admin/quiz/"+strconv.Itoa(id), nil, input, nil, true)
}

func (c *Client) DeleteQuiz(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/quiz/"+strconv.Itoa(id), nil, nil, nil, true)
}

func (c *Client) AdminUserStats(ctx context.Context) ([]domain.AdminUserStat, error) {
	var out []domain.AdminUserStat
	err := c.do(ctx, http.MethodGet, "/api/admin/stats/users", nil, nil, &out, true)
	return out, err
}

func (c *Client) AdminUserProgress(ctx context.Context, userID int) (domain.AdminUserDetail, error) {
	var out domain.AdminUserDetail
	err := c.do(ctx, http.MethodGet, "/api/admin/stats/progress/"+strconv.Itoa(userID), nil, nil, &out, true)
	return out, err
}

func (c *Client) AdminMetrics(ctx context.Context) (domain.AdminMetrics, error) {
	var out domain.AdminMetrics
	err := c.do(ctx, http.MethodGet, "/api/admin/metrics", nil, nil, &out, true)
	return out, err
}

// do issues one request. Authenticated calls attach the bearer header or fail
// locally with domain.ErrNoSession before any network traffic.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any, authed bool) error {
	var token string
	if authed {
		var err error
		token, err = c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("read token: %w", err)
		}
		if token == "" {
			return domain.ErrNoSession
		}
	}

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &APIError{StatusCode: res.StatusCode, Message: serverMessage(data, res.StatusCode)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// serverMessage pulls the backend's mensaje field out of an error body,
// falling back to the HTTP status text.
func serverMessage(data []byte, status int) string {
	var body struct {
		Message string `json:"mensaje"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return http.StatusText(status)
}
