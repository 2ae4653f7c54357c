// Package apiclient is a typed Go client for the content API, used by the
// admin tooling. It attaches the bearer token and session id to every request
// and drops credentials when the server answers 401.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/diamondgarment/backend/apperror"
	"github.com/diamondgarment/backend/models"
)

const (
	DefaultDevelopmentBaseURL = "http://localhost:5173"
	DefaultProductionBaseURL  = "https://diamond-garment.onrender.com"
	DefaultTimeout            = 30 * time.Second

	sessionHeader = "X-Session-ID"
	loginPath     = "/auth/login"
)

// ResolveBaseURL picks the API origin. Development goes through the front end
// dev server proxy; production talks to the separately deployed backend.
func ResolveBaseURL(env, configured string) string {
	configured = strings.TrimRight(strings.TrimSpace(configured), "/")
	if env == "production" {
		if configured != "" {
			return configured
		}
		return DefaultProductionBaseURL
	}
	if configured != "" {
		return configured
	}
	return DefaultDevelopmentBaseURL
}

// Error is a non-success reply from the API.
type Error struct {
	StatusCode int
	Message    string
	Fields     []apperror.FieldError
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

type envelope struct {
	Success bool                  `json:"success"`
	Data    json.RawMessage       `json:"data"`
	Message string                `json:"message"`
	Errors  []apperror.FieldError `json:"errors"`
	Count   *int                  `json:"count"`
	Token   string                `json:"token"`
}

type rawResponse struct {
	status int
	body   []byte
}

// Client talks to one API deployment. It is safe for concurrent use.
type Client struct {
	baseURL        string
	http           *http.Client
	session        Session
	onUnauthorized func()
	breaker        *gobreaker.CircuitBreaker[*rawResponse]

	Products     Resource[models.Product, models.ProductInput]
	Gallery      Resource[models.GalleryItem, models.GalleryInput]
	Testimonials TestimonialResource
	Contacts     ContactResource
}

type Option func(*Client)

// WithHTTPClient replaces the default client with its 30 second timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithUnauthorizedHandler runs fn after credentials were cleared by a 401,
// e.g. to send the user back to the login screen.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithCircuitBreaker fails fast while the API keeps answering 5xx or is unreachable.
func WithCircuitBreaker(name string) Option {
	return func(c *Client) {
		var st gobreaker.Settings
		st.Name = name
		st.ReadyToTrip = func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		}
		c.breaker = gobreaker.NewCircuitBreaker[*rawResponse](st)
	}
}

func New(baseURL string, session Session, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		session: session,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Products = Resource[models.Product, models.ProductInput]{client: c, path: "/products"}
	c.Gallery = Resource[models.GalleryItem, models.GalleryInput]{client: c, path: "/gallery"}
	c.Testimonials = TestimonialResource{Resource[models.Testimonial, models.TestimonialInput]{client: c, path: "/testimonials"}}
	c.Contacts = ContactResource{Resource[models.Contact, models.ContactInput]{client: c, path: "/contact"}}
	return c
}

// Login stores the returned token in the session.
func (c *Client) Login(ctx context.Context, email, password string, info models.ClientInfo) (*models.User, error) {
	var user models.User
	env, err := c.doJSON(ctx, http.MethodPost, loginPath, models.LoginRequest{
		Email:      email,
		Password:   password,
		ClientInfo: info,
	}, &user)
	if err != nil {
		return nil, err
	}
	c.session.SetToken(env.Token)
	return &user, nil
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if _, err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout clears local credentials even when the request fails.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil)
	c.session.ClearToken()
	return err
}

// UploadImage sends r as the "image" form field.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (*models.UploadResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	var result models.UploadResult
	if _, err := c.do(ctx, http.MethodPost, "/upload", &buf, w.FormDataContentType(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) (*envelope, error) {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, body, contentType, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api"+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set(sessionHeader, c.session.SessionID())

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}

	if resp.status == http.StatusUnauthorized && path != loginPath {
		c.session.ClearToken()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	}

	var env envelope
	if err := json.Unmarshal(resp.body, &env); err != nil {
		if resp.status >= 400 {
			return nil, &Error{StatusCode: resp.status, Message: http.StatusText(resp.status)}
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.status >= 400 || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.status)
		}
		return nil, &Error{StatusCode: resp.status, Message: msg, Fields: env.Errors}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode data: %w", err)
		}
	}
	return &env, nil
}

func (c *Client) send(req *http.Request) (*rawResponse, error) {
	roundTrip := func() (*rawResponse, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}
		raw := &rawResponse{status: resp.StatusCode, body: body}
		if resp.StatusCode >= 500 {
			return raw, errServerFailure
		}
		return raw, nil
	}

	if c.breaker == nil {
		raw, err := roundTrip()
		if errors.Is(err, errServerFailure) {
			return raw, nil
		}
		return raw, err
	}

	raw, err := c.breaker.Execute(roundTrip)
	if errors.Is(err, errServerFailure) {
		return raw, nil
	}
	return raw, err
}

// errServerFailure marks 5xx replies as failures for the breaker. Callers still get the reply.
var errServerFailure = errors.New("server error response")
