package handlers

import (
	"net/http"
	"strings"
	"time"

	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
	"busfleet/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthUser is the login response payload (no password hash).
type AuthUser struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Role         string `json:"role"`
	Status       string `json:"status"`
	EmployeeCode string `json:"employeeCode,omitempty"`
}

func authUserFrom(u models.User) AuthUser {
	return AuthUser{
		ID:           u.ID,
		Name:         u.Name,
		Username:     u.Username,
		Email:        u.Email,
		Phone:        u.Phone,
		Role:         u.Role,
		Status:       u.Status,
		EmployeeCode: u.EmployeeCode,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	repo := repositories.UserRepo{}
	user, err := repo.GetByLogin(strings.TrimSpace(req.Email))
	if err != nil {
		if domain.IsNotFound(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong email/username or password"})
			return
		}
		RespondDomainError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong email/username or password"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to sign token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": tokenString,
		"user":  authUserFrom(user),
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// POST /api/auth/register
// Self-registration always lands on the staff role; admins promote later.
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if len(req.Password) < 8 {
		RespondError(c, http.StatusBadRequest, "password must be at least 8 characters", nil)
		return
	}

	repo := repositories.UserRepo{}
	exists, err := repo.CountByLogin(req.Email, req.Username)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if exists > 0 {
		RespondError(c, http.StatusBadRequest, "email or username already registered", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to hash password", err)
		return
	}

	id, err := repo.Create(models.User{
		Name:         strings.TrimSpace(req.Name),
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         models.RoleStaff,
		Status:       "active",
		PasswordHash: string(hash),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "registered",
		"user": AuthUser{
			ID:       id,
			Name:     req.Name,
			Username: req.Username,
			Email:    req.Email,
			Phone:    req.Phone,
			Role:     models.RoleStaff,
			Status:   "active",
		},
	})
}
