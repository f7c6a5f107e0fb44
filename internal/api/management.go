package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domain "github.com/photosphere/connect-admin-console/internal/domain/management"
)

func (r *Router) ListAccounts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"accounts": r.management.Accounts()})
}

func (r *Router) ListRoutingProfiles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"routing_profiles": r.management.RoutingProfiles()})
}

func (r *Router) ListQuickConnects(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"quick_connects": r.management.QuickConnects()})
}

func (r *Router) CreateAccount(c *gin.Context) {
	var form domain.AccountForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "detail": err.Error()})
		return
	}
	receipt, err := r.management.SubmitAccount(c.Request.Context(), form)
	if err != nil {
		respondFormError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

func (r *Router) CreateRoutingProfile(c *gin.Context) {
	var form domain.RoutingProfileForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "detail": err.Error()})
		return
	}
	receipt, err := r.management.SubmitRoutingProfile(c.Request.Context(), form)
	if err != nil {
		respondFormError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

func (r *Router) CreateQuickConnect(c *gin.Context) {
	var form domain.QuickConnectForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "detail": err.Error()})
		return
	}
	receipt, err := r.management.SubmitQuickConnect(c.Request.Context(), form)
	if err != nil {
		respondFormError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

func respondFormError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrPasswordMismatch):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "password_mismatch", "detail": err.Error()})
	case errors.Is(err, domain.ErrInvalidForm):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid_form", "detail": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
