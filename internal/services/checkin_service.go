package services

import (
	"database/sql"
	"time"

	intconfig "busfleet/internal/config"
	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
	"busfleet/internal/repositories"
	"busfleet/internal/utils"
)

type CheckinService struct {
	DriverRepo repositories.DriverRepo
	DB         *sql.DB
	Now        func() time.Time
}

func (s CheckinService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s CheckinService) drivers() repositories.DriverRepo {
	if s.DriverRepo.DB != nil {
		return s.DriverRepo
	}
	return repositories.DriverRepo{DB: s.db()}
}

func (s CheckinService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CheckIn marks a driver on duty. Drivers may only check themselves in;
// staff and admin can act on any driver.
func (s CheckinService) CheckIn(rc domain.RequestContext, driverID int64) (models.Driver, error) {
	return s.setStatus(rc, driverID, models.CheckedIn)
}

func (s CheckinService) CheckOut(rc domain.RequestContext, driverID int64) (models.Driver, error) {
	return s.setStatus(rc, driverID, models.CheckedOut)
}

func (s CheckinService) setStatus(rc domain.RequestContext, driverID int64, status string) (models.Driver, error) {
	if rc.Role == models.RoleDriver && int64(rc.UserID) != driverID {
		return models.Driver{}, domain.UnauthorizedError{Msg: "drivers can only change their own status"}
	}
	if !rc.CanApprove() && rc.Role != models.RoleDriver {
		return models.Driver{}, domain.UnauthorizedError{Msg: "insufficient role"}
	}
	if err := s.drivers().SetCheckinStatus(driverID, status, s.now()); err != nil {
		return models.Driver{}, err
	}
	return s.drivers().GetByID(driverID)
}

// AutoCheckout batch-checks-out everyone still on duty; run on a schedule
// from main.
func (s CheckinService) AutoCheckout() (int64, error) {
	n, err := s.drivers().AutoCheckoutAll(s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		utils.LogEvent("", "checkin", "auto_checkout", "drivers checked out")
	}
	return n, nil
}
