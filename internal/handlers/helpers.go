package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/ledger"
	"expensetracker/internal/middleware"
	"expensetracker/internal/models"
	"expensetracker/internal/uuid"
)

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse represents a simple message response
type MessageResponse struct {
	Message string `json:"message"`
}

// parsePathID reads a UUID path parameter.
// Returns ErrInvalidInput if the parameter is not a well-formed UUID.
//
//nolint:unparam // param is intentionally generic for reuse across handlers with different path params
func parsePathID(c *gin.Context, param string) (string, error) {
	id := c.Param(param)
	if !uuid.IsValid(id) {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// respondWithError writes a consistent JSON error response.
func respondWithError(c *gin.Context, err error) {
	middleware.RenderError(c, err)
}

func invalidInput(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// parseFilter builds a FilterSpec from the query string:
//
//	q           case-insensitive search text
//	from, to    RFC 3339 timestamps or YYYY-MM-DD dates in loc
//	min, max    decimal amounts
//	categories  comma separated labels; present but empty selects none
func parseFilter(c *gin.Context, loc *time.Location) (ledger.FilterSpec, error) {
	spec := ledger.NewFilterSpec()
	spec.Search = strings.TrimSpace(c.Query("q"))

	from, err := parseTimeParam(c, "from", loc, false)
	if err != nil {
		return spec, err
	}
	to, err := parseTimeParam(c, "to", loc, true)
	if err != nil {
		return spec, err
	}
	if !from.IsZero() || !to.IsZero() {
		spec.Date = ledger.DateRange{Active: true, Start: from, End: to}
	}

	minAmount, err := parseDecimalParam(c, "min")
	if err != nil {
		return spec, err
	}
	maxAmount, err := parseDecimalParam(c, "max")
	if err != nil {
		return spec, err
	}
	if minAmount != nil || maxAmount != nil {
		spec.Amount = ledger.AmountRange{Active: true, Min: minAmount, Max: maxAmount}
	}

	if raw, ok := c.GetQuery("categories"); ok {
		var selected []models.Category
		for _, label := range strings.Split(raw, ",") {
			if strings.TrimSpace(label) == "" {
				continue
			}
			category, ok := models.LookupCategory(label)
			if !ok {
				return spec, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown category "+label)
			}
			selected = append(selected, category)
		}
		spec.Categories = ledger.NewCategorySet(selected...)
	}

	return spec, nil
}

// parseTimeParam accepts RFC 3339 or a bare date. A bare date used as an
// upper bound covers the whole day.
func parseTimeParam(c *gin.Context, name string, loc *time.Location, endOfDay bool) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, raw, loc)
	if err != nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput,
			name+" must be an RFC 3339 timestamp or a YYYY-MM-DD date")
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t, nil
}

func parseDecimalParam(c *gin.Context, name string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, name+" must be a decimal number")
	}
	return &d, nil
}

// parseSortKey leaves an absent key empty so the service applies its default.
func parseSortKey(c *gin.Context) (ledger.SortKey, error) {
	raw := strings.TrimSpace(c.Query("sort"))
	if raw == "" {
		return "", nil
	}
	key, ok := ledger.ParseSortKey(raw)
	if !ok {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput,
			"sort must be one of date_asc, date_desc, amount_asc, amount_desc")
	}
	return key, nil
}

// parseBoolQuery reads an optional true/false query parameter.
func parseBoolQuery(c *gin.Context, name string) (*bool, error) {
	switch c.Query(name) {
	case "":
		return nil, nil
	case "true":
		b := true
		return &b, nil
	case "false":
		b := false
		return &b, nil
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, name+" must be 'true' or 'false'")
	}
}
