package restapi

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/realestate/portal/internal/core/domain"
	"github.com/realestate/portal/internal/core/ports"
	"github.com/realestate/portal/internal/infrastructure/httpclient"
	"github.com/realestate/portal/internal/metrics"
)

const propertiesPath = "/properties"

var _ ports.PropertyAPI = (*PropertyClient)(nil)

// PropertyClient reads listings and manages favorites and agent contact.
type PropertyClient struct {
	api Requester
	log zerolog.Logger
}

func NewPropertyClient(api Requester, log zerolog.Logger) *PropertyClient {
	return &PropertyClient{api: api, log: log}
}

// ListProperties never fails. Without an active filter it reads the full
// catalog; otherwise it queries the filter endpoint with only the options
// that are set. On error it returns the placeholder catalog, degraded.
func (c *PropertyClient) ListProperties(ctx context.Context, filter domain.PropertyFilter) domain.Listing[domain.Property] {
	req := httpclient.Request{Method: http.MethodGet, Path: propertiesPath}
	if filter.Active() {
		req.Path = propertiesPath + "/filter"
		req.Query = filterQuery(filter)
	}

	var out []domain.Property
	if err := c.api.Do(ctx, req, &out); err != nil {
		metrics.DegradedResultsTotal.WithLabelValues("list_properties").Inc()
		c.log.Warn().Err(err).Str("path", req.Path).Msg("property listing unavailable, serving placeholder catalog")
		return domain.Listing[domain.Property]{Items: domain.PlaceholderProperties(), Degraded: true, Cause: err}
	}
	if out == nil {
		out = []domain.Property{}
	}
	return domain.Listing[domain.Property]{Items: out}
}

func filterQuery(f domain.PropertyFilter) url.Values {
	q := url.Values{}
	if f.Type != "" {
		q.Set("type", string(f.Type))
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.MinPrice > 0 {
		q.Set("minPrice", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice > 0 {
		q.Set("maxPrice", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	return q
}

// Property returns one listing, or *domain.NotFoundError.
func (c *PropertyClient) Property(ctx context.Context, id int64) (*domain.Property, error) {
	var out domain.Property
	req := httpclient.Request{
		Method:   http.MethodGet,
		Path:     idPath(propertiesPath, id, ""),
		Endpoint: propertiesPath + "/{id}",
	}
	if err := c.api.Do(ctx, req, &out); err != nil {
		return nil, missingAsNotFound(err, req.Path)
	}
	return &out, nil
}

var notFoundHints = []string{"not found", "non trouvé", "introuvable"}

// missingAsNotFound turns a 5xx whose message says the entity does not exist
// into *domain.NotFoundError. The API reports unknown ids that way.
func missingAsNotFound(err error, path string) error {
	var se *domain.ServerError
	if !errors.As(err, &se) || se.Status < http.StatusInternalServerError {
		return err
	}
	msg := strings.ToLower(se.Message)
	for _, hint := range notFoundHints {
		if strings.Contains(msg, hint) {
			return &domain.NotFoundError{Path: path, Message: se.Message}
		}
	}
	return err
}

// Favorites never fails; errors yield an empty degraded listing.
func (c *PropertyClient) Favorites(ctx context.Context) domain.Listing[domain.Favorite] {
	var out []domain.Favorite
	if err := c.api.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: propertiesPath + "/favorites"}, &out); err != nil {
		metrics.DegradedResultsTotal.WithLabelValues("list_favorites").Inc()
		c.log.Warn().Err(err).Msg("favorites unavailable, serving empty list")
		return domain.Listing[domain.Favorite]{Items: []domain.Favorite{}, Degraded: true, Cause: err}
	}
	if out == nil {
		out = []domain.Favorite{}
	}
	return domain.Listing[domain.Favorite]{Items: out}
}

func (c *PropertyClient) AddFavorite(ctx context.Context, id int64) error {
	return c.api.Do(ctx, httpclient.Request{
		Method:   http.MethodPost,
		Path:     idPath(propertiesPath, id, "/favorite"),
		Endpoint: propertiesPath + "/{id}/favorite",
	}, nil)
}

func (c *PropertyClient) RemoveFavorite(ctx context.Context, id int64) error {
	return c.api.Do(ctx, httpclient.Request{
		Method:   http.MethodDelete,
		Path:     idPath(propertiesPath, id, "/favorite"),
		Endpoint: propertiesPath + "/{id}/favorite",
	}, nil)
}

type contactBody struct {
	Message string `json:"message"`
}

func (c *PropertyClient) ContactAgent(ctx context.Context, id int64, message string) error {
	return c.api.Do(ctx, httpclient.Request{
		Method:   http.MethodPost,
		Path:     idPath(propertiesPath, id, "/contact"),
		Endpoint: propertiesPath + "/{id}/contact",
		Body:     contactBody{Message: message},
	}, nil)
}

func (c *PropertyClient) Purchase(ctx context.Context, id int64, pr domain.PurchaseRequest) error {
	return c.api.Do(ctx, httpclient.Request{
		Method:   http.MethodPost,
		Path:     idPath(propertiesPath, id, "/purchase"),
		Endpoint: propertiesPath + "/{id}/purchase",
		Body:     pr,
	}, nil)
}
