package handlers

import (
	"errors"
	"net/http"
	"strings"

	"dentra/middleware"
	"dentra/models"
	"dentra/services/staff"

	"github.com/gin-gonic/gin"
)

func staffErrStatus(err error) int {
	switch {
	case errors.Is(err, staff.ErrStaffNotFound):
		return http.StatusNotFound
	case errors.Is(err, staff.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, staff.ErrEmailTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RegisterStaffHandler creates a staff account. Admin-only by route gate.
func RegisterStaffHandler(svc staff.StaffService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			models.Staff
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		created, err := svc.RegisterStaff(input.Staff, input.Password)
		if err != nil {
			status := staffErrStatus(err)
			if status == http.StatusInternalServerError {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": created})
	}
}

// LoginHandler authenticates a staff member and returns a JWT.
func LoginHandler(svc staff.StaffService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		result, err := svc.Authenticate(input.Email, input.Password)
		if err != nil {
			c.JSON(staffErrStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result})
	}
}

// LogoutHandler revokes the caller's token.
func LogoutHandler(svc staff.StaffService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
			return
		}
		if err := svc.RevokeToken(token); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "signed out"})
	}
}

// MeHandler returns the authenticated staff member's account.
func MeHandler(svc staff.StaffService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := middleware.GetPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "insufficient authorization"})
			return
		}
		account, err := svc.GetStaffByID(principal.StaffID)
		if err != nil {
			c.JSON(staffErrStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": account})
	}
}

// ChangePasswordHandler updates the caller's password.
func ChangePasswordHandler(svc staff.StaffService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			CurrentPassword string `json:"currentPassword"`
			NewPassword     string `json:"newPassword"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		principal, ok := middleware.GetPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "insufficient authorization"})
			return
		}
		if err := svc.ChangePassword(principal.StaffID, input.CurrentPassword, input.NewPassword); err != nil {
			status := staffErrStatus(err)
			if status == http.StatusInternalServerError {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "password updated"})
	}
}

// ListStaffHandler returns a page of staff accounts. Admin-only by route gate.
func ListStaffHandler(svc staff.StaffService) gin.HandlerFunc {
	return func(c *gin.Context) {
		accounts, pagination, err := svc.ListStaff(listParams(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": accounts, "pagination": pagination})
	}
}

// UpdateStaffHandler updates a staff account. Admin-only by route gate.
func UpdateStaffHandler(svc staff.StaffService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var st models.Staff
		if err := c.ShouldBindJSON(&st); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		st.ID = c.Param("id")
		updated, err := svc.UpdateStaff(st)
		if err != nil {
			status := staffErrStatus(err)
			if status == http.StatusInternalServerError {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": updated})
	}
}
