package httpapi

import (
	"BankAccounts/internal/core/domain"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// pageResponse is the JSON shape of a domain.Page.
type pageResponse[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

func toPageResponse[T, U any](p domain.Page[T], fn func(T) U) pageResponse[U] {
	mapped := domain.MapPage(p, fn)
	return pageResponse[U]{
		Content:       mapped.Content,
		Page:          mapped.Page,
		Size:          mapped.Size,
		TotalElements: mapped.TotalElements,
		TotalPages:    mapped.TotalPages,
	}
}

// parsePageRequest reads page, size and repeated sort=field[,asc|desc].
// Sort fields outside allowed are rejected.
func parsePageRequest(r *http.Request, allowed map[string]bool) (domain.PageRequest, error) {
	q := r.URL.Query()
	req := domain.PageRequest{Size: domain.DefaultPageSize}

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, invalidRequest(fmt.Sprintf("page must be an integer, got %q", v))
		}
		req.Page = n
	}
	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, invalidRequest(fmt.Sprintf("size must be an integer, got %q", v))
		}
		req.Size = n
	}

	for _, raw := range q["sort"] {
		field, dir, _ := strings.Cut(raw, ",")
		field = strings.TrimSpace(field)
		if !allowed[field] {
			return req, invalidRequest(fmt.Sprintf("cannot sort by %q", field))
		}
		order := domain.SortOrder{Field: field}
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "", "asc":
		case "desc":
			order.Desc = true
		default:
			return req, invalidRequest(fmt.Sprintf("sort direction must be asc or desc, got %q", dir))
		}
		req.Sort = append(req.Sort, order)
	}

	req = req.Normalize()
	if req.Page > math.MaxInt/req.Size {
		return req, invalidRequest(fmt.Sprintf("page %d is out of range", req.Page))
	}
	return req, nil
}

// uuidParam parses a required UUID from a path or query value.
func uuidParam(name, raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, invalidRequest(name + " is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, invalidRequest(fmt.Sprintf("%s must be a UUID, got %q", name, raw))
	}
	return id, nil
}
