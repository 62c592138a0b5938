package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	intconfig "busfleet/internal/config"
	"busfleet/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GET /api/vehicles
func GetVehicles(c *gin.Context) {
	db := intconfig.DB
	rows, err := db.Query(`SELECT id, registration, COALESCE(vehicle_type,''), COALESCE(capacity,0), driver_id FROM vehicles ORDER BY id`)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load vehicles", err)
		return
	}
	defer rows.Close()

	list := []models.Vehicle{}
	for rows.Next() {
		var v models.Vehicle
		var driverID sql.NullInt64
		if err := rows.Scan(&v.ID, &v.Registration, &v.VehicleType, &v.Capacity, &driverID); err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to scan vehicle", err)
			return
		}
		if driverID.Valid {
			v.DriverID = &driverID.Int64
		}
		list = append(list, v)
	}
	if err := rows.Err(); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to read vehicles", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type vehicleInput struct {
	Registration string `json:"registration"`
	VehicleType  string `json:"vehicleType"`
	Capacity     int    `json:"capacity"`
	DriverID     *int64 `json:"driverId"`
}

// POST /api/vehicles
func CreateVehicle(c *gin.Context) {
	var input vehicleInput
	if !BindJSONOrError(c, &input) {
		return
	}
	if input.Registration == "" {
		RespondError(c, http.StatusBadRequest, "registration is required", nil)
		return
	}
	if input.Capacity <= 0 {
		RespondError(c, http.StatusBadRequest, "capacity must be positive", nil)
		return
	}

	db := intconfig.DB
	res, err := db.Exec(
		`INSERT INTO vehicles (registration, vehicle_type, capacity, driver_id) VALUES (?, ?, ?, ?)`,
		input.Registration, input.VehicleType, input.Capacity, input.DriverID,
	)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to create vehicle", err)
		return
	}
	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, models.Vehicle{
		ID:           id,
		Registration: input.Registration,
		VehicleType:  input.VehicleType,
		Capacity:     input.Capacity,
		DriverID:     input.DriverID,
	})
}

// PUT /api/vehicles/:id
func UpdateVehicle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	var input vehicleInput
	if !BindJSONOrError(c, &input) {
		return
	}
	if input.Capacity <= 0 {
		RespondError(c, http.StatusBadRequest, "capacity must be positive", nil)
		return
	}

	db := intconfig.DB
	res, err := db.Exec(
		`UPDATE vehicles SET registration = ?, vehicle_type = ?, capacity = ?, driver_id = ? WHERE id = ?`,
		input.Registration, input.VehicleType, input.Capacity, input.DriverID, id,
	)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to update vehicle", err)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		RespondError(c, http.StatusNotFound, "vehicle not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehicle updated"})
}

// DELETE /api/vehicles/:id
func DeleteVehicle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	db := intconfig.DB
	res, err := db.Exec(`DELETE FROM vehicles WHERE id = ?`, id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to delete vehicle", err)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		RespondError(c, http.StatusNotFound, "vehicle not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehicle removed"})
}
