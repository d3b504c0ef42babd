package handler

import (
	"context"
	"html"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"

	"github.com/realestate/portal/internal/core/domain"
	"github.com/realestate/portal/internal/core/ports"
)

// FavoritesFlow toggles and looks up bookmarks for the logged-in user.
type FavoritesFlow interface {
	Toggle(ctx context.Context, id int64, isFavorite bool) (bool, error)
	IsFavorite(ctx context.Context, id int64) bool
}

// InquiryFlow sends a visitor's message to the listing agent.
type InquiryFlow interface {
	ContactAgent(ctx context.Context, id int64, message string) error
}

type PropertyHandler struct {
	api       ports.PropertyAPI
	favorites FavoritesFlow
	inquiries InquiryFlow
	policy    *bluemonday.Policy
}

func NewPropertyHandler(api ports.PropertyAPI, favorites FavoritesFlow, inquiries InquiryFlow) *PropertyHandler {
	return &PropertyHandler{api: api, favorites: favorites, inquiries: inquiries, policy: bluemonday.StrictPolicy()}
}

type listingResponse[T any] struct {
	Items    []T  `json:"items"`
	Degraded bool `json:"degraded"`
	Filtered bool `json:"filtered,omitempty"`
}

type propertyResponse struct {
	Property   *domain.Property `json:"property"`
	MainImage  string           `json:"mainImage,omitempty"`
	TypeLabel  string           `json:"typeLabel"`
	Status     string           `json:"statusLabel"`
	IsFavorite bool             `json:"isFavorite"`
}

type favoriteResponse struct {
	IsFavorite bool `json:"isFavorite"`
}

type contactRequest struct {
	Message string `json:"message"`
}

// List handles GET /. Filters come from the query string.
func (h *PropertyHandler) List(c echo.Context) error {
	var filter domain.PropertyFilter
	if err := c.Bind(&filter); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid filter")
	}

	res := h.api.ListProperties(c.Request().Context(), filter)
	return respond(c, http.StatusOK, listingResponse[domain.Property]{
		Items:    res.Items,
		Degraded: res.Degraded,
		Filtered: filter.Active(),
	})
}

// Get handles GET /property/:id.
func (h *PropertyHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	p, err := h.api.Property(ctx, id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, propertyResponse{
		Property:   p,
		MainImage:  p.MainImageURL(),
		TypeLabel:  p.Type.Label(),
		Status:     p.Status.Label(),
		IsFavorite: h.favorites.IsFavorite(ctx, id),
	})
}

// Favorites handles GET /favorites.
func (h *PropertyHandler) Favorites(c echo.Context) error {
	res := h.api.Favorites(c.Request().Context())
	return respond(c, http.StatusOK, listingResponse[domain.Favorite]{Items: res.Items, Degraded: res.Degraded})
}

// AddFavorite handles POST /property/:id/favorite.
func (h *PropertyHandler) AddFavorite(c echo.Context) error {
	return h.toggle(c, false)
}

// RemoveFavorite handles DELETE /property/:id/favorite.
func (h *PropertyHandler) RemoveFavorite(c echo.Context) error {
	return h.toggle(c, true)
}

func (h *PropertyHandler) toggle(c echo.Context, isFavorite bool) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	state, err := h.favorites.Toggle(c.Request().Context(), id, isFavorite)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, favoriteResponse{IsFavorite: state})
}

// Contact handles POST /property/:id/contact. Markup is stripped from the
// message before it is forwarded; anonymous visitors are sent to login.
func (h *PropertyHandler) Contact(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	msg := h.plainText(req.Message)
	if msg == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message is required")
	}

	if err := h.inquiries.ContactAgent(c.Request().Context(), id, msg); err != nil {
		return err
	}
	return respond(c, http.StatusAccepted, map[string]string{"status": "sent"})
}

// Purchase handles POST /property/:id/purchase.
func (h *PropertyHandler) Purchase(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req domain.PurchaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Offer < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "offer must not be negative")
	}
	req.Message = h.plainText(req.Message)

	if err := h.api.Purchase(c.Request().Context(), id, req); err != nil {
		return err
	}
	return respond(c, http.StatusAccepted, map[string]string{"status": "submitted"})
}

// plainText drops all markup. StrictPolicy escapes what it keeps, so the
// result is unescaped again before it is sent as JSON.
func (h *PropertyHandler) plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(h.policy.Sanitize(s)))
}
