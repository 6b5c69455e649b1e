package server

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/catalitium/internal/types"
)

// parseQueryInt reads an integer query parameter. Missing, malformed and
// negative values fall back to defaultValue; values above a positive
// maxValue are capped.
func parseQueryInt(r *http.Request, key string, defaultValue, maxValue int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		return defaultValue
	}
	if maxValue > 0 && val > maxValue {
		return maxValue
	}
	return val
}

// handleJobs searches the listing dataset
func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := types.SearchRequest{
		Title:    strings.TrimSpace(q.Get("title")),
		Country:  strings.TrimSpace(q.Get("country")),
		Page:     parseQueryInt(r, "page", 1, 0),
		PageSize: parseQueryInt(r, "per_page", s.perPage, types.MaxPageSize),
	}
	if err := req.Validate(); err != nil {
		s.failure(w, r, validationError(err))
		return
	}

	result, err := s.searcher.Search(r.Context(), req)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	if req.HasTerms() && s.store != nil {
		if err := s.store.LogSearch(r.Context(), req.Title, req.Country); err != nil {
			s.logger.Warn("failed to log search",
				zap.String("request_id", requestID(r.Context())),
				zap.Error(err))
		}
	}

	setPageLinks(r.URL.Path, result)
	s.jsonResponse(w, http.StatusOK, result)
}

// setPageLinks fills prev/next URLs from the normalized query values so a
// followed link reproduces the same result set.
func setPageLinks(path string, result *types.SearchResult) {
	p := &result.Pagination
	if p.HasPrev {
		p.PrevURL = pageURL(path, result.TitleQuery, result.Country, p.Page-1, p.PageSize)
	}
	if p.HasNext {
		p.NextURL = pageURL(path, result.TitleQuery, result.Country, p.Page+1, p.PageSize)
	}
}

func pageURL(path, title, country string, page, perPage int) string {
	v := url.Values{}
	if title != "" {
		v.Set("title", title)
	}
	if country != "" {
		v.Set("country", country)
	}
	v.Set("page", strconv.Itoa(page))
	v.Set("per_page", strconv.Itoa(perPage))
	return path + "?" + v.Encode()
}
