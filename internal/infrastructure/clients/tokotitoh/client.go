package tokotitoh

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tokotitoh/marketplace-client/internal/domain/entities"
	apperrors "github.com/tokotitoh/marketplace-client/pkg/errors"
)

// Client is the typed interface to the tokotitoh backend
type Client interface {
	Categories(ctx context.Context) ([]entities.Category, error)
	Subcategories(ctx context.Context, categoryID int64) ([]entities.Subcategory, error)
	Brands(ctx context.Context, categoryID int64) ([]entities.Brand, error)
	Types(ctx context.Context, brandID int64) ([]entities.VehicleType, error)

	Provinces(ctx context.Context) ([]entities.Province, error)
	Cities(ctx context.Context, provinceID string) ([]entities.City, error)
	Districts(ctx context.Context, cityID string) ([]entities.District, error)

	Ads(ctx context.Context, req AdsRequest) ([]entities.Ad, error)
	Ad(ctx context.Context, id int64) (*entities.Ad, error)
	CreateAd(ctx context.Context, payload AdPayload) error
	UpdateAd(ctx context.Context, payload AdPayload) error

	Register(ctx context.Context, req RegisterRequest) error
	Login(ctx context.Context, identity, password string) (*entities.User, error)
	User(ctx context.Context, id int64) (*entities.User, error)
	UpdateUser(ctx context.Context, update UserUpdate) error
	DeleteUser(ctx context.Context, id int64) error

	Notifications(ctx context.Context, req NotificationsRequest) ([]entities.Notification, error)
	Report(ctx context.Context, report entities.Report) error

	UploadFile(ctx context.Context, filename string, content io.Reader) (string, error)
}

// Config holds the fixed connection constants for the backend
type Config struct {
	BaseURL     string
	BearerToken string
	PartnerCode string
	Timeout     time.Duration
}

// HTTPClient talks to the backend over HTTPS with the two constant
// identification headers on every request
type HTTPClient struct {
	baseURL     string
	bearerToken string
	partnerCode string
	httpClient  *http.Client
}

// NewClient creates a client for the given backend
func NewClient(cfg Config) *HTTPClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		bearerToken: cfg.BearerToken,
		partnerCode: cfg.PartnerCode,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// AdsRequest describes one page fetch against the listing endpoint
type AdsRequest struct {
	Page          int
	Size          int
	SubcategoryID int64
	UserID        int64
	Search        string
	Filters       FilterSet
}

// NotificationsRequest scopes the notification list
type NotificationsRequest struct {
	UserID int64
	Status string
}

// RegisterRequest is the POST /user payload
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// UserUpdate is the PATCH /user payload. Only ID is mandatory; the backend
// applies whichever fields are present.
type UserUpdate struct {
	ID       int64  `json:"id"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Image    string `json:"image,omitempty"`
	Password string `json:"password,omitempty"`
}

func (c *HTTPClient) Categories(ctx context.Context) ([]entities.Category, error) {
	var out []entities.Category
	if err := c.getRows(ctx, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Subcategories(ctx context.Context, categoryID int64) ([]entities.Subcategory, error) {
	q := url.Values{"category_id": {strconv.FormatInt(categoryID, 10)}}
	var out []entities.Subcategory
	if err := c.getRows(ctx, "/subcategories", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Brands(ctx context.Context, categoryID int64) ([]entities.Brand, error) {
	q := url.Values{"category_id": {strconv.FormatInt(categoryID, 10)}}
	var out []entities.Brand
	if err := c.getRows(ctx, "/brands", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Types(ctx context.Context, brandID int64) ([]entities.VehicleType, error) {
	q := url.Values{"brand_id": {strconv.FormatInt(brandID, 10)}}
	var out []entities.VehicleType
	if err := c.getRows(ctx, "/types", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Provinces(ctx context.Context) ([]entities.Province, error) {
	var out []entities.Province
	if err := c.getRows(ctx, "/provinces", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Cities(ctx context.Context, provinceID string) ([]entities.City, error) {
	q := url.Values{"province_id": {provinceID}}
	var out []entities.City
	if err := c.getRows(ctx, "/cities", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Districts(ctx context.Context, cityID string) ([]entities.District, error) {
	q := url.Values{"city_id": {cityID}}
	var out []entities.District
	if err := c.getRows(ctx, "/districts", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Ads fetches one page of the listing endpoint. The backend returns a
// flat row array with no total count; end-of-data is inferred by the
// caller from a short page.
func (c *HTTPClient) Ads(ctx context.Context, req AdsRequest) ([]entities.Ad, error) {
	q := url.Values{}
	q.Set("pagination", "true")
	q.Set("page", strconv.Itoa(req.Page))
	q.Set("size", strconv.Itoa(req.Size))
	if req.SubcategoryID != 0 {
		q.Set("subcategory_id", strconv.FormatInt(req.SubcategoryID, 10))
	}
	if req.UserID != 0 {
		q.Set("user_id", strconv.FormatInt(req.UserID, 10))
	}
	if req.Search != "" {
		q.Set("search", req.Search)
	}
	req.Filters.apply(q)

	var out []entities.Ad
	if err := c.getRows(ctx, "/ads", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Ad fetches a single ad by id; the backend answers with a one-row list.
func (c *HTTPClient) Ad(ctx context.Context, id int64) (*entities.Ad, error) {
	q := url.Values{"id": {strconv.FormatInt(id, 10)}}
	var rows []entities.Ad
	if err := c.getRows(ctx, "/ads", q, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.NewAPIError(http.StatusNotFound, "iklan tidak ditemukan")
	}
	return &rows[0], nil
}

func (c *HTTPClient) CreateAd(ctx context.Context, payload AdPayload) error {
	return c.doJSON(ctx, http.MethodPost, c.baseURL+"/ads", payload, nil)
}

func (c *HTTPClient) UpdateAd(ctx context.Context, payload AdPayload) error {
	return c.doJSON(ctx, http.MethodPatch, c.baseURL+"/ads", payload, nil)
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) error {
	return c.doJSON(ctx, http.MethodPost, c.baseURL+"/user", req, nil)
}

// Login authenticates and returns the partial profile the login endpoint
// responds with; callers fetch the full profile via User afterwards.
func (c *HTTPClient) Login(ctx context.Context, identity, password string) (*entities.User, error) {
	body := map[string]string{"identity": identity, "password": password}
	var resp struct {
		User    *entities.User `json:"user"`
		Message string         `json:"message"`
	}
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/user/login", body, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		msg := resp.Message
		if msg == "" {
			msg = "login gagal"
		}
		return nil, apperrors.NewAPIError(http.StatusUnauthorized, msg)
	}
	return resp.User, nil
}

func (c *HTTPClient) User(ctx context.Context, id int64) (*entities.User, error) {
	q := url.Values{"id": {strconv.FormatInt(id, 10)}}
	var rows []entities.User
	if err := c.getRows(ctx, "/users", q, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.NewAPIError(http.StatusNotFound, "pengguna tidak ditemukan")
	}
	return &rows[0], nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, update UserUpdate) error {
	return c.doJSON(ctx, http.MethodPatch, c.baseURL+"/user", update, nil)
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id int64) error {
	endpoint := fmt.Sprintf("%s/user?id=%d", c.baseURL, id)
	return c.doJSON(ctx, http.MethodDelete, endpoint, nil, nil)
}

func (c *HTTPClient) Notifications(ctx context.Context, req NotificationsRequest) ([]entities.Notification, error) {
	q := url.Values{}
	if req.UserID != 0 {
		q.Set("user_id", strconv.FormatInt(req.UserID, 10))
	}
	if req.Status != "" {
		q.Set("status", req.Status)
	}
	var out []entities.Notification
	if err := c.getRows(ctx, "/notifications", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Report(ctx context.Context, report entities.Report) error {
	return c.doJSON(ctx, http.MethodPost, c.baseURL+"/report", report, nil)
}

// UploadFile posts one file as multipart form data under the field name
// "file" and returns the hosted URL.
func (c *HTTPClient) UploadFile(ctx context.Context, filename string, content io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return "", apperrors.NewTransportError("gagal menyiapkan unggahan", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", apperrors.NewTransportError("gagal membaca berkas", err)
	}
	if err := writer.Close(); err != nil {
		return "", apperrors.NewTransportError("gagal menyiapkan unggahan", err)
	}

	endpoint := c.baseURL + "/file-upload"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return "", apperrors.NewTransportError("permintaan tidak valid", err)
	}
	c.setHeaders(httpReq, writer.FormDataContentType())

	requestID := uuid.NewString()
	log.Debug().
		Str("request_id", requestID).
		Str("method", http.MethodPost).
		Str("url", endpoint).
		Str("filename", filepath.Base(filename)).
		Msg("api request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", apperrors.NewTransportError("unggahan gagal", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.NewTransportError("unggahan gagal", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Debug().
			Str("request_id", requestID).
			Int("status", resp.StatusCode).
			Msg("api request failed")
		return "", apperrors.NewAPIError(resp.StatusCode, extractMessage(raw, "unggahan gagal"))
	}

	var result struct {
		Status string `json:"status"`
		URL    string `json:"url"`
		Code   int    `json:"code"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", apperrors.NewMalformedError("jawaban unggahan tidak dikenal")
	}
	if result.Status != "success" || result.URL == "" {
		return "", apperrors.NewAPIError(resp.StatusCode, "unggahan gagal")
	}
	return result.URL, nil
}

// getRows issues a GET and decodes the list envelope. List endpoints wrap
// rows as {items:{rows:[...]}}; the location endpoints sometimes answer
// with {items:[...]} directly, so both shapes are accepted.
func (c *HTTPClient) getRows(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &raw); err != nil {
		return err
	}
	return decodeRows(raw, out)
}

func decodeRows(body []byte, out any) error {
	var envelope struct {
		Items json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return apperrors.NewMalformedError("jawaban server tidak dikenal")
	}
	if len(envelope.Items) == 0 || string(envelope.Items) == "null" {
		return apperrors.NewMalformedError("jawaban server tanpa items")
	}

	var wrapper struct {
		Rows json.RawMessage `json:"rows"`
	}
	if err := json.Unmarshal(envelope.Items, &wrapper); err == nil &&
		len(wrapper.Rows) > 0 && string(wrapper.Rows) != "null" {
		if err := json.Unmarshal(wrapper.Rows, out); err != nil {
			return apperrors.NewMalformedError("baris data tidak dikenal")
		}
		return nil
	}

	if err := json.Unmarshal(envelope.Items, out); err != nil {
		return apperrors.NewMalformedError("jawaban server tanpa items.rows")
	}
	return nil
}

// doJSON performs one request with the constant identification headers.
// Each request is attempted exactly once; there are no retries.
func (c *HTTPClient) doJSON(ctx context.Context, method, endpoint string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewTransportError("permintaan tidak valid", err)
		}
		reader = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return apperrors.NewTransportError("permintaan tidak valid", err)
	}
	c.setHeaders(httpReq, "application/json")

	requestID := uuid.NewString()
	log.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("url", endpoint).
		Msg("api request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return apperrors.NewTransportError("koneksi ke server gagal", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.NewTransportError("koneksi ke server gagal", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Debug().
			Str("request_id", requestID).
			Int("status", resp.StatusCode).
			Msg("api request failed")
		return apperrors.NewAPIError(resp.StatusCode, extractMessage(raw, fmt.Sprintf("server menjawab status %d", resp.StatusCode)))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperrors.NewMalformedError("jawaban server tidak dikenal")
	}
	return nil
}

// setHeaders applies the content type and the two constant identification
// headers; every request goes through here
func (c *HTTPClient) setHeaders(req *http.Request, contentType string) {
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("bearer-token", c.bearerToken)
	req.Header.Set("x-partner-code", c.partnerCode)
}

// extractMessage pulls the best-effort error message out of a response body
func extractMessage(body []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return fallback
}
