package server

import (
	"errors"
	"mime/multipart"
	"strings"

	"tastebook/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 404 JSON response and returns errResponseWritten;
// a non-numeric id can never name an existing row, so it reads as missing.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		notFound := models.NewNotFoundError(humanizeParam(param), c.Params(param))
		_ = models.RespondWithError(c, fiber.StatusNotFound, notFound)
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a resource label.
// Examples: "id" -> "Resource", "post_id" -> "Post", "recipe_id" -> "Recipe".
func humanizeParam(param string) string {
	if param == "id" {
		return "Resource"
	}
	name := strings.TrimSuffix(param, "_id")
	if name == "" {
		return "Resource"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// currentUserID returns the authenticated user's id set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

// bearerToken extracts the token from an "Authorization: Bearer <t>" header.
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// formImage returns the optional multipart "image" file, or nil when the
// request carries none (including plain JSON requests).
func formImage(c *fiber.Ctx) *multipart.FileHeader {
	file, err := c.FormFile("image")
	if err != nil {
		return nil
	}
	return file
}

// saveOptionalImage stores the "image" form file when present and returns
// its public URL. It returns ("", nil) when no file was uploaded.
func (s *Server) saveOptionalImage(c *fiber.Ctx) (string, error) {
	file := formImage(c)
	if file == nil {
		return "", nil
	}
	url, err := s.uploadService.SaveImage(file)
	if err != nil {
		_ = models.RespondWithError(c, models.StatusForError(err), err)
		return "", errResponseWritten
	}
	return url, nil
}
