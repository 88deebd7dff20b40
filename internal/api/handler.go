// Package api exposes the portal operations as a JSON HTTP API.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/alpental/mountaineers-go/internal/errors"
	"github.com/alpental/mountaineers-go/internal/logger"
	"github.com/alpental/mountaineers-go/internal/scraper"
	"github.com/alpental/mountaineers-go/internal/sentry"
	"github.com/alpental/mountaineers-go/internal/tools"
)

// Handler serves the API routes over a portal fetcher.
type Handler struct {
	fetcher tools.Fetcher
	log     *logger.Logger
}

// NewHandler creates an API handler.
func NewHandler(fetcher tools.Fetcher, log *logger.Logger) *Handler {
	return &Handler{
		fetcher: fetcher,
		log:     log.WithModule("api"),
	}
}

// Register mounts all API routes under /api/v1.
func (h *Handler) Register(router gin.IRouter) {
	v1 := router.Group("/api/v1")

	v1.GET("/activities", h.searchActivities)
	v1.GET("/activities/:slug", h.getActivity)
	v1.GET("/activities/:slug/roster", h.getActivityRoster)
	v1.GET("/courses", h.searchCourses)
	v1.GET("/courses/:slug", h.getCourse)
	v1.GET("/routes", h.searchRoutes)
	v1.GET("/routes/:slug", h.getRoute)
	v1.GET("/trip-reports", h.searchTripReports)
	v1.GET("/trip-reports/:slug", h.getTripReport)
	v1.GET("/members/:slug", h.getMemberProfile)

	v1.GET("/me", h.whoami)
	v1.GET("/me/activities", h.myActivities)
	v1.GET("/me/courses", h.myCourses)
	v1.GET("/me/badges", h.myBadges)
	v1.GET("/me/history", h.activityHistory)
}

func (h *Handler) searchActivities(c *gin.Context) {
	var in tools.SearchActivitiesInput
	if !h.bindQuery(c, &in) {
		return
	}
	result, err := tools.SearchActivities(c.Request.Context(), h.fetcher, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) searchCourses(c *gin.Context) {
	var in tools.SearchCoursesInput
	if !h.bindQuery(c, &in) {
		return
	}
	result, err := tools.SearchCourses(c.Request.Context(), h.fetcher, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) searchRoutes(c *gin.Context) {
	var in tools.SearchRoutesInput
	if !h.bindQuery(c, &in) {
		return
	}
	result, err := tools.SearchRoutes(c.Request.Context(), h.fetcher, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) searchTripReports(c *gin.Context) {
	var in tools.SearchTripReportsInput
	if !h.bindQuery(c, &in) {
		return
	}
	result, err := tools.SearchTripReports(c.Request.Context(), h.fetcher, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) getActivity(c *gin.Context) {
	detail, err := tools.GetActivity(c.Request.Context(), h.fetcher, c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) getCourse(c *gin.Context) {
	detail, err := tools.GetCourse(c.Request.Context(), h.fetcher, c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) getRoute(c *gin.Context) {
	detail, err := tools.GetRoute(c.Request.Context(), h.fetcher, c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) getTripReport(c *gin.Context) {
	detail, err := tools.GetTripReport(c.Request.Context(), h.fetcher, c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) getMemberProfile(c *gin.Context) {
	profile, err := tools.GetMemberProfile(c.Request.Context(), h.fetcher, c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) getActivityRoster(c *gin.Context) {
	roster, err := tools.GetActivityRoster(c.Request.Context(), h.fetcher, c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, roster)
}

func (h *Handler) whoami(c *gin.Context) {
	me, err := tools.Whoami(c.Request.Context(), h.fetcher)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, me)
}

func (h *Handler) myActivities(c *gin.Context) {
	var in tools.GetMyActivitiesInput
	if !h.bindQuery(c, &in) {
		return
	}
	activities, err := tools.GetMyActivities(c.Request.Context(), h.fetcher, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, activities)
}

func (h *Handler) myCourses(c *gin.Context) {
	var in tools.GetMyCoursesInput
	if !h.bindQuery(c, &in) {
		return
	}
	courses, err := tools.GetMyCourses(c.Request.Context(), h.fetcher, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *Handler) myBadges(c *gin.Context) {
	var in tools.GetMyBadgesInput
	if !h.bindQuery(c, &in) {
		return
	}
	badges, err := tools.GetMyBadges(c.Request.Context(), h.fetcher, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, badges)
}

func (h *Handler) activityHistory(c *gin.Context) {
	var in tools.GetActivityHistoryInput
	if !h.bindQuery(c, &in) {
		return
	}
	history, err := tools.GetActivityHistory(c.Request.Context(), h.fetcher, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *Handler) bindQuery(c *gin.Context, in any) bool {
	if err := c.ShouldBindQuery(in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// fail translates operation errors into HTTP responses. Auth-shaped
// failures are the caller's problem; everything else is an upstream fault
// worth capturing.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, scraper.ErrNoCredentials),
		errors.Is(err, tools.ErrProfileLinkNotFound),
		errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	default:
		h.log.WithError(err).WithField("path", c.Request.URL.Path).Error("operation failed")
		sentry.CaptureExceptionWithContext(c.Request.Context(), err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}
