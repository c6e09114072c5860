package who

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Entity is an ICD-11 entity from either the TM2 or biomedicine (MMS)
// linearization.
type Entity struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Definition    string   `json:"definition"`
	Linearization string   `json:"linearization"`
	Parent        string   `json:"parent"`
	Synonyms      []string `json:"synonyms"`
}

// Client talks to the WHO ICD-11 API using the OAuth2 client-credentials
// flow. Tokens are cached until shortly before expiry. Live calls are only
// made by SearchEntities; the TM2 and biomedicine sets served to the sandbox
// endpoints come from the embedded reference data, so the service works
// without WHO credentials.
type Client struct {
	clientID     string
	clientSecret string
	baseURL      string
	tokenURL     string
	httpClient   *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
	now         func() time.Time
}

const (
	defaultBaseURL  = "https://id.who.int"
	defaultTokenURL = "https://icdaccessmanagement.who.int/connect/token"
	tokenScope      = "icdapi_access"
)

// NewClient creates a WHO API client. Empty credentials fall back to the
// sandbox demo pair.
func NewClient(clientID, clientSecret string) *Client {
	if clientID == "" {
		clientID = "demo_client"
	}
	if clientSecret == "" {
		clientSecret = "demo_secret"
	}
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      defaultBaseURL,
		tokenURL:     defaultTokenURL,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		now:          time.Now,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// Token returns a cached access token, fetching a fresh one when the cache
// is empty or within a minute of expiry.
func (c *Client) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && c.now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"scope":         {tokenScope},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if tok.ExpiresIn <= 0 {
		tok.ExpiresIn = 3600
	}

	c.accessToken = tok.AccessToken
	c.tokenExpiry = c.now().Add(time.Duration(tok.ExpiresIn-60) * time.Second)
	return c.accessToken, nil
}

// SearchEntities queries the live ICD-11 API for entities in the given
// linearization.
func (c *Client) SearchEntities(ctx context.Context, query, linearization string) ([]Entity, error) {
	if linearization == "" {
		linearization = "mms"
	}

	token, err := c.Token(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/icd/release/11/%s/mms/search", c.baseURL, linearization)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	q := req.URL.Query()
	q.Set("q", query)
	q.Set("linearization", linearization)
	q.Set("useFlexisearch", "false")
	q.Set("flatResults", "true")
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search entities: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search endpoint returned %d", resp.StatusCode)
	}

	var entities []Entity
	if err := json.NewDecoder(resp.Body).Decode(&entities); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return entities, nil
}

// TM2Entities returns the embedded Traditional Medicine Module 2 reference
// set.
func (c *Client) TM2Entities() []Entity {
	return tm2Reference
}

// BiomedicineEntities returns the embedded biomedicine (MMS) reference set.
func (c *Client) BiomedicineEntities() []Entity {
	return biomedicineReference
}

// SearchTM2 filters the TM2 reference set by title or synonym substring,
// case-insensitively.
func (c *Client) SearchTM2(query string) []Entity {
	return filterEntities(tm2Reference, query)
}

// SearchBiomedicine filters the biomedicine reference set the same way.
func (c *Client) SearchBiomedicine(query string) []Entity {
	return filterEntities(biomedicineReference, query)
}

func filterEntities(entities []Entity, query string) []Entity {
	q := strings.ToLower(query)
	out := []Entity{}
	for _, e := range entities {
		if strings.Contains(strings.ToLower(e.Title), q) ||
			strings.Contains(strings.ToLower(strings.Join(e.Synonyms, " ")), q) {
			out = append(out, e)
		}
	}
	return out
}

// Title implements the title lookup used to enrich translate responses. It
// resolves an ICD-11 code against the embedded reference sets.
func (c *Client) Title(code string) (string, bool) {
	for _, set := range [][]Entity{tm2Reference, biomedicineReference} {
		for _, e := range set {
			if e.ID == code {
				return e.Title, true
			}
		}
	}
	return "", false
}
