package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"busfleet/internal/domain/models"
	"busfleet/internal/repositories"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

var validRoles = map[string]bool{
	models.RoleAdmin:   true,
	models.RoleStaff:   true,
	models.RoleDriver:  true,
	models.RoleStation: true,
}

// GET /api/users?role=driver
func GetUsers(c *gin.Context) {
	role := c.Query("role")
	if role != "" && !validRoles[role] {
		RespondError(c, http.StatusBadRequest, "unknown role", nil)
		return
	}
	list, err := (repositories.UserRepo{}).List(role)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]AuthUser, 0, len(list))
	for _, u := range list {
		out = append(out, authUserFrom(u))
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/users/:id
func GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	u, err := (repositories.UserRepo{}).GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, authUserFrom(u))
}

type userInput struct {
	Name         string `json:"name"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Role         string `json:"role"`
	Status       string `json:"status"`
	EmployeeCode string `json:"employeeCode"`
	StationID    *int64 `json:"stationId"`
	Password     string `json:"password"`
}

// POST /api/users (admin only; drivers, stations and staff are created here)
func CreateUser(c *gin.Context) {
	var input userInput
	if !BindJSONOrError(c, &input) {
		return
	}
	if !validRoles[input.Role] {
		RespondError(c, http.StatusBadRequest, "role must be admin, staff, driver or station", nil)
		return
	}
	if len(input.Password) < 8 {
		RespondError(c, http.StatusBadRequest, "password must be at least 8 characters", nil)
		return
	}

	repo := repositories.UserRepo{}
	exists, err := repo.CountByLogin(input.Email, input.Username)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if exists > 0 {
		RespondError(c, http.StatusBadRequest, "email or username already registered", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to hash password", err)
		return
	}

	status := input.Status
	if status == "" {
		status = "active"
	}
	u := models.User{
		Name:         strings.TrimSpace(input.Name),
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.TrimSpace(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		Role:         input.Role,
		Status:       status,
		EmployeeCode: strings.TrimSpace(input.EmployeeCode),
		StationID:    input.StationID,
		PasswordHash: string(hash),
	}
	id, err := repo.Create(u)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	u.ID = id
	c.JSON(http.StatusCreated, authUserFrom(u))
}

// PUT /api/users/:id
func UpdateUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	var input userInput
	if !BindJSONOrError(c, &input) {
		return
	}

	repo := repositories.UserRepo{}
	u, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if input.Name != "" {
		u.Name = strings.TrimSpace(input.Name)
	}
	if input.Phone != "" {
		u.Phone = strings.TrimSpace(input.Phone)
	}
	if input.Role != "" {
		if !validRoles[input.Role] {
			RespondError(c, http.StatusBadRequest, "unknown role", nil)
			return
		}
		u.Role = input.Role
	}
	if input.Status != "" {
		u.Status = input.Status
	}
	if input.EmployeeCode != "" {
		u.EmployeeCode = strings.TrimSpace(input.EmployeeCode)
	}
	if input.StationID != nil {
		u.StationID = input.StationID
	}
	if input.Password != "" {
		if len(input.Password) < 8 {
			RespondError(c, http.StatusBadRequest, "password must be at least 8 characters", nil)
			return
		}
		hash, herr := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if herr != nil {
			RespondError(c, http.StatusInternalServerError, "failed to hash password", herr)
			return
		}
		u.PasswordHash = string(hash)
	}

	if err := repo.Update(u); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, authUserFrom(u))
}

// DELETE /api/users/:id
func DeleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	if err := (repositories.UserRepo{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user removed"})
}
