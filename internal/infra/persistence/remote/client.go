// Package remote implements the autosave API client. It translates the
// project tree to the service's wire format: projects are numbered by the
// server, the tree travels inside a data envelope, and dates are ISO-8601.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"electroplan/pkg/domain"
)

var _ domain.RemoteStore = (*Client)(nil)

// DefaultTimeout bounds every request. The upstream service defines no
// timeout of its own, so the client enforces one.
const DefaultTimeout = 15 * time.Second

// Options configures a Client.
type Options struct {
	BaseURL string
	Token   string

	// Timeout applies per request; zero means DefaultTimeout. Ignored when
	// HTTPClient is set.
	Timeout time.Duration

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client

	Logger zerolog.Logger
}

// Client talks to the projects API with a bearer token.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	log     zerolog.Logger
}

// NewClient builds a client. BaseURL is required.
func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("remote base URL is required")
	}
	httpc := opts.HTTPClient
	if httpc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpc = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: opts.BaseURL,
		token:   opts.Token,
		httpc:   httpc,
		log:     opts.Logger,
	}, nil
}

// wireData is the project tree envelope shared by reads and writes. Metadata
// travels as a pointer so residential projects, which carry none, omit the
// field instead of sending an empty object.
type wireData struct {
	Description string                  `json:"description,omitempty"`
	Rooms       []domain.Room           `json:"rooms"`
	Metadata    *domain.ProjectMetadata `json:"metadata,omitempty"`
	Status      domain.ProjectStatus    `json:"status"`
}

type wireProject struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	Type      domain.ProjectType `json:"type"`
	Data      wireData           `json:"data"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type listResponse struct {
	Projects []wireProject `json:"projects"`
}

type autosaveRequest struct {
	ProjectID *int64             `json:"projectId"`
	Name      string             `json:"name"`
	Type      domain.ProjectType `json:"type"`
	Data      wireData           `json:"data"`
}

type autosaveResponse struct {
	Project wireProject `json:"project"`
}

// List fetches every project owned by the session. The records carry no local
// identifiers; the persistence adapter assigns those.
func (c *Client) List(ctx context.Context) ([]domain.RemoteRecord, error) {
	var out listResponse
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &out); err != nil {
		return nil, err
	}
	records := make([]domain.RemoteRecord, 0, len(out.Projects))
	for _, wp := range out.Projects {
		records = append(records, domain.RemoteRecord{
			RemoteID: wp.ID,
			Project:  wp.toDomain(),
		})
	}
	return records, nil
}

// Upsert creates the project when remoteID is nil, otherwise updates it in
// place, and returns the server-assigned identifier.
func (c *Client) Upsert(ctx context.Context, remoteID *int64, project domain.Project) (int64, error) {
	req := autosaveRequest{
		ProjectID: remoteID,
		Name:      project.Name,
		Type:      project.Type,
		Data: wireData{
			Description: project.Description,
			Rooms:       project.Rooms,
			Status:      project.Status,
		},
	}
	if !project.Metadata.IsZero() {
		md := project.Metadata.Clone()
		req.Data.Metadata = &md
	}
	if req.Data.Rooms == nil {
		req.Data.Rooms = []domain.Room{}
	}
	var out autosaveResponse
	if err := c.do(ctx, http.MethodPost, "/projects/autosave", req, &out); err != nil {
		return 0, err
	}
	if out.Project.ID == 0 {
		return 0, fmt.Errorf("autosave response carries no project id")
	}
	return out.Project.ID, nil
}

// Delete removes the remote record. A record already gone is treated as
// deleted.
func (c *Client) Delete(ctx context.Context, remoteID int64) error {
	err := c.do(ctx, http.MethodDelete, "/projects/"+strconv.FormatInt(remoteID, 10), nil, nil)
	var se *statusError
	if errors.As(err, &se) && se.code == http.StatusNotFound {
		c.log.Debug().Int64("remote_id", remoteID).Msg("remote record already gone")
		return nil
	}
	return err
}

func (wp wireProject) toDomain() domain.Project {
	p := domain.Project{
		Base: domain.Base{
			CreatedAt: wp.CreatedAt,
			UpdatedAt: wp.UpdatedAt,
		},
		Name:        wp.Name,
		Type:        wp.Type,
		Description: wp.Data.Description,
		Status:      wp.Data.Status,
		Rooms:       wp.Data.Rooms,
	}
	if wp.Data.Metadata != nil {
		p.Metadata = *wp.Data.Metadata
	}
	if p.Rooms == nil {
		p.Rooms = []domain.Room{}
	}
	return p
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("remote returned %d", e.code)
	}
	return fmt.Sprintf("remote returned %d: %s", e.code, e.body)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: %w", method, path, &statusError{code: resp.StatusCode, body: string(bytes.TrimSpace(snippet))})
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
