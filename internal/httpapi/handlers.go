package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"horse.fit/atlas/internal/record"
)

type countryLanguagesResponse struct {
	Country   string            `json:"country"`
	Languages []record.Language `json:"languages"`
}

type resolveResponse struct {
	Kind     string `json:"kind"`
	Name     string `json:"name"`
	Code     string `json:"code,omitempty"`
	Resolved bool   `json:"resolved"`
}

func (s *Server) handleHealth(c echo.Context) error {
	if pinger, ok := s.source.(interface {
		Ping(ctx context.Context) error
	}); ok {
		if err := pinger.Ping(c.Request().Context()); err != nil {
			s.logger.Error().Err(err).Msg("record source ping failed")
			return fail(c, http.StatusServiceUnavailable, "Record source unavailable", nil)
		}
	}
	return success(c, map[string]string{"status": "ok"})
}

func (s *Server) handleCountries(c echo.Context) error {
	countries, err := s.source.Countries(c.Request().Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list countries failed")
		return internalError(c, "Failed to list countries")
	}
	return success(c, map[string]any{"countries": countries})
}

func (s *Server) handleCountryLanguages(c echo.Context) error {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
	if code == "" {
		return failValidation(c, map[string]string{"code": "country code is required"})
	}

	languages, found, err := s.source.Languages(c.Request().Context(), code)
	if err != nil {
		s.logger.Error().Err(err).Str("country", code).Msg("load languages failed")
		return internalError(c, "Failed to load languages")
	}
	if !found {
		return failNotFound(c, "Unknown country code")
	}

	return success(c, countryLanguagesResponse{Country: code, Languages: languages})
}

func (s *Server) handleResolve(c echo.Context) error {
	kind := strings.ToLower(strings.TrimSpace(c.QueryParam("kind")))
	name := strings.TrimSpace(c.QueryParam("name"))

	fieldErrors := map[string]string{}
	if name == "" {
		fieldErrors["name"] = "name is required"
	}
	if kind != "country" && kind != "language" {
		fieldErrors["kind"] = "kind must be country or language"
	}
	if len(fieldErrors) > 0 {
		return failValidation(c, fieldErrors)
	}

	resolver := s.resolvers.Language
	if kind == "country" {
		resolver = s.resolvers.Country
	}
	if resolver == nil {
		return fail(c, http.StatusServiceUnavailable, "Resolver is not available", nil)
	}

	code, ok := resolver.Resolve(name)
	return success(c, resolveResponse{
		Kind:     kind,
		Name:     name,
		Code:     code,
		Resolved: ok,
	})
}
