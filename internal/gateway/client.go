package gateway

import (
	"encoding/json"
	"fmt"
	"log"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
)

// TokenFunc hands the client the current bearer credential. It is re-read on
// every authenticated call so the gateway always uses the latest committed
// session, never a stale snapshot.
type TokenFunc func() string

// Client is the thin transport wrapper around the remote marketplace API.
// It attaches the base address, content type and bearer credential, decodes
// responses into typed models, and validates them before handing them out.
type Client struct {
	http     *resty.Client
	validate *validator.Validate

	token TokenFunc

	// called once per 401 so the session store can invalidate itself
	onUnauthorized func()
}

// New creates a gateway client against the given base URL
func New(baseURL string, token TokenFunc) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:     httpClient,
		validate: validator.New(),
		token:    token,
	}
}

// OnUnauthorized registers a hook that runs whenever the marketplace rejects
// the credential with a 401
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// errorBody is the shape of marketplace error responses
type errorBody struct {
	Message string `json:"message"`
}

// checkResponse turns a transport error or non-2xx response into an error.
// Transport failures come back wrapped, HTTP failures come back as *APIError.
func (c *Client) checkResponse(resp *resty.Response, err error, op string) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if resp.IsSuccess() {
		return nil
	}

	// a 401 only invalidates the session when the request actually presented
	// a credential - login/signup answer 401 for bad credentials too, and a
	// failed login attempt must not tear down whoever is already signed in
	if resp.StatusCode() == 401 && c.onUnauthorized != nil &&
		resp.Request.Header.Get("Authorization") != "" {
		c.onUnauthorized()
	}

	// try to pull the server's message out of the body - it's optional
	var body errorBody
	if unmarshalErr := json.Unmarshal(resp.Body(), &body); unmarshalErr != nil {
		log.Printf("Warning: could not parse error body for %s: %v", op, unmarshalErr)
	}

	return &APIError{Status: resp.StatusCode(), Message: body.Message}
}

// decode unmarshals a successful response body into dest and validates it.
// Anything that fails validation is rejected with ErrBadPayload so untyped
// garbage never reaches the callers.
func (c *Client) decode(resp *resty.Response, dest interface{}, op string) error {
	if err := json.Unmarshal(resp.Body(), dest); err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrBadPayload, err)
	}

	if err := c.validateDest(dest); err != nil {
		log.Printf("Warning: rejecting malformed payload from %s: %v", op, err)
		return fmt.Errorf("%s: %w: %v", op, ErrBadPayload, err)
	}

	return nil
}

func (c *Client) validateDest(dest interface{}) error {
	rv := reflect.ValueOf(dest)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice:
		// list endpoints - validate each element
		for i := 0; i < rv.Len(); i++ {
			item := rv.Index(i)
			if item.Kind() == reflect.Struct {
				if err := c.validate.Struct(item.Interface()); err != nil {
					return err
				}
			}
		}
		return nil
	case reflect.Struct:
		return c.validate.Struct(rv.Interface())
	default:
		return nil
	}
}

// authed returns a request with the current bearer credential attached
func (c *Client) authed() *resty.Request {
	return c.http.R().SetAuthToken(c.token())
}
