package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	analyticsdomain "github.com/smallbiznis/mercato/internal/analytics/domain"
)

// filterAll is the sentinel the UI sends when a dropdown is left on "all".
const filterAll = "all"

func (s *Server) parseDashboardRequest(c *gin.Context) (analyticsdomain.QueryRequest, error) {
	var req analyticsdomain.QueryRequest

	rawStore := strings.TrimSpace(c.Query("store_id"))
	if rawStore != "" && !strings.EqualFold(rawStore, filterAll) {
		id, err := parseOptionalSnowflakeID(rawStore)
		if err != nil {
			return req, newValidationError("store_id", "invalid_store_id", "store_id must be a valid store id")
		}
		req.StoreID = id
	}

	rawCategory := strings.TrimSpace(c.Query("category"))
	if rawCategory != "" && !strings.EqualFold(rawCategory, filterAll) {
		req.Category = rawCategory
	}

	req.WindowDays = s.dashboardCfg.Current().DefaultWindowDays
	if raw := strings.TrimSpace(c.Query("days")); raw != "" {
		days, err := parseOptionalInt64(raw)
		if err != nil {
			return req, newValidationError("days", "invalid_window_days", "days must be a positive integer")
		}
		req.WindowDays = int(*days)
	}

	return req, nil
}

func (s *Server) GetDashboardOverview(c *gin.Context) {
	if s.analyticsSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	req, err := s.parseDashboardRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.analyticsSvc.Overview(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetDashboardKPIs(c *gin.Context) {
	if s.analyticsSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	req, err := s.parseDashboardRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.analyticsSvc.KPIs(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetDashboardDailySales(c *gin.Context) {
	if s.analyticsSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	req, err := s.parseDashboardRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.analyticsSvc.DailySales(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetDashboardTopProducts(c *gin.Context) {
	if s.analyticsSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	req, err := s.parseDashboardRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.analyticsSvc.TopProducts(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetDashboardCategoryShares(c *gin.Context) {
	if s.analyticsSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	req, err := s.parseDashboardRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.analyticsSvc.CategoryShares(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetDashboardStoreComparison(c *gin.Context) {
	if s.analyticsSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	req, err := s.parseDashboardRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.analyticsSvc.StoreComparison(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetDashboardHourlyProfile(c *gin.Context) {
	if s.analyticsSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	req, err := s.parseDashboardRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.analyticsSvc.HourlyProfile(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetDashboardLowStock(c *gin.Context) {
	if s.analyticsSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	resp, err := s.analyticsSvc.LowStock(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetDashboardFilters(c *gin.Context) {
	if s.analyticsSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	resp, err := s.analyticsSvc.FilterOptions(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
