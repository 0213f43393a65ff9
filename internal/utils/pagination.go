package utils

import "strconv"

// Pagination defaults for list endpoints
const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// PaginationParams holds pagination parameters
type PaginationParams struct {
	Limit  int
	Offset int
}

// PaginationMetadata holds pagination metadata for responses
type PaginationMetadata struct {
	Total      int  `json:"total"`
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
	HasMore    bool `json:"hasMore"`
	TotalPages int  `json:"totalPages"`
}

// ListResponse wraps one page of a listing
type ListResponse struct {
	Data     interface{}         `json:"data"`
	Metadata *PaginationMetadata `json:"metadata"`
}

// NewPaginationParams creates a new pagination params with defaults
func NewPaginationParams(limit, offset int) *PaginationParams {
	return &PaginationParams{
		Limit:  ValidateLimit(limit),
		Offset: ValidateOffset(offset),
	}
}

// ParsePaginationParams reads limit and offset query values. Unparseable
// values fall back to the defaults.
func ParsePaginationParams(limit, offset string) *PaginationParams {
	l, _ := strconv.Atoi(limit)
	o, _ := strconv.Atoi(offset)
	return NewPaginationParams(l, o)
}

// ValidateLimit clamps a page size to (0, MaxLimit]
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// ValidateOffset clamps an offset to be non-negative
func ValidateOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

// CalculatePaginationMetadata calculates pagination metadata
func CalculatePaginationMetadata(total, limit, offset int) *PaginationMetadata {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	hasMore := (offset + limit) < total

	return &PaginationMetadata{
		Total:      total,
		Limit:      limit,
		Offset:     offset,
		HasMore:    hasMore,
		TotalPages: totalPages,
	}
}

// Bounds returns the slice bounds of the page within a listing of total items
func (p *PaginationParams) Bounds(total int) (start, end int) {
	start = p.Offset
	if start > total {
		start = total
	}
	end = start + p.Limit
	if end > total {
		end = total
	}
	return start, end
}
