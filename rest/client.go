// Package rest wraps the subset of the chat server's HTTP API the client
// library needs: entity fetches and message sending.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"

	"revoltkit/models"
)

// Error is a non-2xx response from the API.
type Error struct {
	Status int
	Body   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api returned status %d: %s", e.Status, e.Body)
}

// Client is the HTTP implementation of API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{},
	}
}

func (c *Client) FetchUser(ctx context.Context, id models.UserID) (models.User, error) {
	var u models.User
	if err := c.getJSON(ctx, fmt.Sprintf("/users/%s", id), &u); err != nil {
		return models.User{}, fmt.Errorf("fetching user: %w", err)
	}

	return u, nil
}

func (c *Client) FetchChannel(ctx context.Context, id models.ChannelID) (models.Channel, error) {
	var ch models.Channel
	if err := c.getJSON(ctx, fmt.Sprintf("/channels/%s", id), &ch); err != nil {
		return models.Channel{}, fmt.Errorf("fetching channel: %w", err)
	}

	return ch, nil
}

func (c *Client) FetchServer(ctx context.Context, id models.ServerID) (models.Server, error) {
	var s models.Server
	if err := c.getJSON(ctx, fmt.Sprintf("/servers/%s", id), &s); err != nil {
		return models.Server{}, fmt.Errorf("fetching server: %w", err)
	}

	return s, nil
}

func (c *Client) FetchMember(ctx context.Context, server models.ServerID, user models.UserID) (models.Member, error) {
	var m models.Member
	if err := c.getJSON(ctx, fmt.Sprintf("/servers/%s/members/%s", server, user), &m); err != nil {
		return models.Member{}, fmt.Errorf("fetching member: %w", err)
	}

	return m, nil
}

// SendMessage posts a message. An idempotency nonce is generated when the
// caller did not set one.
func (c *Client) SendMessage(ctx context.Context, channel models.ChannelID,
	params SendMessageParams) (models.Message, error) {
	if params.Nonce == "" {
		nonce, err := uuid.NewV4()
		if err != nil {
			return models.Message{}, fmt.Errorf("error generating message nonce: %w", err)
		}
		params.Nonce = nonce.String()
	}

	payloadBuf := new(bytes.Buffer)
	if err := json.NewEncoder(payloadBuf).Encode(params); err != nil {
		return models.Message{}, fmt.Errorf("error encoding message payload: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/channels/%s/messages", channel), payloadBuf)
	if err != nil {
		return models.Message{}, fmt.Errorf("sending message: %w", err)
	}

	var m models.Message
	if err := json.Unmarshal(body, &m); err != nil {
		return models.Message{}, fmt.Errorf("error unmarshalling message response: %w", err)
	}

	return m, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("error unmarshalling response: %w", err)
	}

	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("X-Bot-Token", c.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug().Str("method", method).Str("path", path).Msg("api request")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, &Error{Status: res.StatusCode, Body: string(body)}
	}

	return body, nil
}
