package api

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/zkeq/Self-Cinema/modules/auth"
	"github.com/zkeq/Self-Cinema/modules/catalog"
	"github.com/zkeq/Self-Cinema/modules/roomsync"
	"github.com/zkeq/Self-Cinema/modules/search"
	"github.com/zkeq/Self-Cinema/modules/share"
)

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	auth     auth.AuthPort
	catalog  catalog.CatalogPort
	share    share.SharePort
	roomsync roomsync.RoomSyncPort
	search   search.SearchPort
	validate *validator.Validate
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authPort auth.AuthPort, catalogPort catalog.CatalogPort, sharePort share.SharePort, roomsyncPort roomsync.RoomSyncPort, searchPort search.SearchPort) *Handlers {
	return &Handlers{
		auth:     authPort,
		catalog:  catalogPort,
		share:    sharePort,
		roomsync: roomsyncPort,
		search:   searchPort,
		validate: validator.New(),
	}
}

// parseBody parses and validates a JSON request body. When rejected is
// true the 400 response has already been written and the handler must
// return resp.
func (h *Handlers) parseBody(c *fiber.Ctx, dest any) (rejected bool, resp error) {
	if err := c.BodyParser(dest); err != nil {
		return true, c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request body",
		})
	}
	if err := h.validate.Struct(dest); err != nil {
		return true, c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: fmt.Sprintf("Validation failed: %v", err),
		})
	}
	return false, nil
}

// Login handles admin login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if rejected, resp := h.parseBody(c, &req); rejected {
		return resp
	}

	tokens, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if strings.Contains(err.Error(), "invalid username or password") {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid username or password",
			})
		}
		return h.internalError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(TokenResponse{
		AccessToken: tokens.AccessToken,
		ExpiresIn:   tokens.ExpiresIn,
		TokenType:   tokens.TokenType,
	})
}

// Watch resolves a public share hash to its watch page.
func (h *Handlers) Watch(c *fiber.Ctx) error {
	page, err := h.share.ResolveWatch(c.UserContext(), c.Params("hash"))
	if err != nil {
		if errors.Is(err, share.ErrShareNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Error:   "not_found",
				Message: "Share link not found",
			})
		}
		if errors.Is(err, share.ErrShareExpired) {
			return c.Status(fiber.StatusGone).JSON(ErrorResponse{
				Error:   "gone",
				Message: "Share link has expired",
			})
		}
		return h.internalError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(page)
}

// PostChat appends a chat message to a watch room.
func (h *Handlers) PostChat(c *fiber.Ctx) error {
	var req ChatMessageRequest
	if rejected, resp := h.parseBody(c, &req); rejected {
		return resp
	}

	result, err := h.roomsync.PostMessage(c.UserContext(), roomsync.PostMessageRequest{
		RoomID:    c.Params("hash"),
		ID:        req.ID,
		Sender:    req.Sender,
		Content:   req.Content,
		Timestamp: req.Timestamp,
		Type:      req.Type,
	})
	if err != nil {
		if strings.Contains(err.Error(), "content") {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:   "bad_request",
				Message: "Message content is required",
			})
		}
		return h.internalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result.Message)
}

// ListChat reads a watch room's chat log. An unknown room yields an
// empty list, and the since cursor is exclusive.
func (h *Handlers) ListChat(c *fiber.Ctx) error {
	var since *time.Time
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:   "bad_request",
				Message: "Invalid since timestamp, want RFC3339",
			})
		}
		since = &parsed
	}

	result, err := h.roomsync.PollMessages(c.UserContext(), roomsync.PollMessagesRequest{
		RoomID: c.Params("hash"),
		Since:  since,
	})
	if err != nil {
		return h.internalError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// UpdatePlayback sets a watch room's playback pointer.
func (h *Handlers) UpdatePlayback(c *fiber.Ctx) error {
	var req PlaybackUpdateRequest
	if rejected, resp := h.parseBody(c, &req); rejected {
		return resp
	}

	result, err := h.roomsync.UpdatePlayback(c.UserContext(), roomsync.UpdatePlaybackRequest{
		RoomID: c.Params("hash"),
		URL:    req.URL,
	})
	if err != nil {
		return h.internalError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result.State)
}

// GetPlayback reads a watch room's playback pointer. The version query
// parameter is advisory: it must be an integer when present, but polling
// never blocks on it.
func (h *Handlers) GetPlayback(c *fiber.Ctx) error {
	if raw := c.Query("version"); raw != "" {
		if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:   "bad_request",
				Message: "Invalid version, want an integer",
			})
		}
	}

	result, err := h.roomsync.PollPlayback(c.UserContext(), roomsync.PollPlaybackRequest{
		RoomID:     c.Params("hash"),
		CurrentURL: c.Query("current_url"),
	})
	if err != nil {
		return h.internalError(c, err)
	}
	if !result.Found {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "No playback state for this room yet",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"state":           result.State,
		"is_same_source":  result.IsSameSource,
		"is_same_episode": result.IsSameEpisode,
	})
}

// ListSeries returns all series.
func (h *Handlers) ListSeries(c *fiber.Ctx) error {
	series, err := h.catalog.ListSeries(c.UserContext())
	if err != nil {
		return h.internalError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(series)
}

// CreateSeries creates a series.
func (h *Handlers) CreateSeries(c *fiber.Ctx) error {
	var input catalog.SeriesInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request body",
		})
	}

	view, err := h.catalog.CreateSeries(c.UserContext(), input)
	if err != nil {
		return h.handleCatalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// GetSeries returns one series.
func (h *Handlers) GetSeries(c *fiber.Ctx) error {
	view, err := h.catalog.GetSeries(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.handleCatalogError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(view)
}

// UpdateSeries overwrites a series' writable fields.
func (h *Handlers) UpdateSeries(c *fiber.Ctx) error {
	var input catalog.SeriesInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request body",
		})
	}

	view, err := h.catalog.UpdateSeries(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return h.handleCatalogError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(view)
}

// DeleteSeries removes a series, its episodes and its share links.
func (h *Handlers) DeleteSeries(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.catalog.DeleteSeries(c.UserContext(), id); err != nil {
		return h.handleCatalogError(c, err)
	}

	// Share links pointing at the deleted series would 404 anyway; purge
	// keeps the table and cache clean.
	if err := h.share.PurgeSeries(c.UserContext(), id); err != nil {
		log.Printf("[api] failed to purge share links for series %s: %v", id, err)
	}

	return c.Status(fiber.StatusOK).JSON(DeletedResponse{Deleted: true})
}

// ListEpisodes returns a series' episodes ordered by episode number.
func (h *Handlers) ListEpisodes(c *fiber.Ctx) error {
	episodes, err := h.catalog.ListEpisodes(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.handleCatalogError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(episodes)
}

// CreateEpisode creates an episode under an existing series.
func (h *Handlers) CreateEpisode(c *fiber.Ctx) error {
	var input catalog.EpisodeInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request body",
		})
	}

	view, err := h.catalog.CreateEpisode(c.UserContext(), input)
	if err != nil {
		return h.handleCatalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// GetEpisode returns one episode.
func (h *Handlers) GetEpisode(c *fiber.Ctx) error {
	view, err := h.catalog.GetEpisode(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.handleCatalogError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(view)
}

// UpdateEpisode overwrites an episode's writable fields.
func (h *Handlers) UpdateEpisode(c *fiber.Ctx) error {
	var input catalog.EpisodeInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request body",
		})
	}

	view, err := h.catalog.UpdateEpisode(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return h.handleCatalogError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(view)
}

// DeleteEpisode removes an episode.
func (h *Handlers) DeleteEpisode(c *fiber.Ctx) error {
	if err := h.catalog.DeleteEpisode(c.UserContext(), c.Params("id")); err != nil {
		return h.handleCatalogError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(DeletedResponse{Deleted: true})
}

// CreateShare creates a share link for a series. The public base url is
// derived from the caller's Referer, falling back to Origin and the
// request host.
func (h *Handlers) CreateShare(c *fiber.Ctx) error {
	var req ShareCreateRequest
	if len(c.Body()) > 0 {
		if rejected, resp := h.parseBody(c, &req); rejected {
			return resp
		}
	}

	result, err := h.share.CreateShare(c.UserContext(), c.Params("id"), baseURL(c), req.ExpireHours)
	if err != nil {
		if strings.Contains(err.Error(), "series not found") {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Error:   "not_found",
				Message: "Series not found",
			})
		}
		return h.internalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// Search fans a keyword out to the configured resource providers.
func (h *Handlers) Search(c *fiber.Ctx) error {
	keyword := c.Query("keyword")
	if keyword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Keyword is required",
		})
	}

	results, err := h.search.Search(c.UserContext(), keyword)
	if err != nil {
		return h.internalError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(search.SearchResponse{Results: results})
}

// handleCatalogError maps catalog service errors to HTTP responses.
func (h *Handlers) handleCatalogError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "series not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Series not found",
		})
	case strings.Contains(errStr, "episode not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Episode not found",
		})
	case strings.Contains(errStr, "title is required"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Title is required",
		})
	case strings.Contains(errStr, "video url is required"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Video url is required",
		})
	default:
		return h.internalError(c, err)
	}
}

// internalError logs the error and hides it from the client.
func (h *Handlers) internalError(c *fiber.Ctx, err error) error {
	log.Printf("[api] Internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}

// baseURL derives the public origin for share urls: Referer first, then
// Origin, then the request host.
func baseURL(c *fiber.Ctx) string {
	if referer := c.Get("Referer"); referer != "" {
		if u, err := url.Parse(referer); err == nil && u.Scheme != "" && u.Host != "" {
			return u.Scheme + "://" + u.Host
		}
	}
	if origin := c.Get("Origin"); origin != "" {
		return origin
	}
	return c.Protocol() + "://" + c.Hostname()
}
