package scheduling

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ehospitality-server/internal/models"
)

// Service implements the appointment booking core: slot availability,
// conflict-checked writes, and the lazy status-expiry sweep. Every
// check-then-write runs inside one transaction with the conflicting rows
// locked, so two concurrent bookings for the same slot cannot both pass the
// conflict check.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

// NewService creates a booking service on top of the shared gorm handle.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Today returns the current calendar day in the service's clock.
func (s *Service) Today() string {
	return s.now().Format(DateLayout)
}

// AvailableSlots returns the bookable slot strings for a doctor on a date.
// excludeID, when non-empty, leaves one appointment out of the booked set
// (the reschedule flow must not collide with itself). Read-only.
func (s *Service) AvailableSlots(doctorID, date, excludeID string) ([]string, error) {
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}

	slots := DaySlots()

	now := s.now()
	if date == now.Format(DateLayout) {
		slots = FilterPast(slots, now)
	}

	query := s.db.Model(&models.Appointment{}).
		Where("doctor_id = ? AND date = ? AND status <> ?", doctorID, date, models.StatusCancelled)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var booked []string
	if err := query.Pluck("time", &booked).Error; err != nil {
		return nil, err
	}

	return FilterBooked(slots, booked), nil
}

// Book validates the requested slot and persists a Pending appointment for
// the patient. Returns ErrSlotTaken when another non-cancelled appointment
// already holds the (doctor, date, time) slot.
func (s *Service) Book(patientID, doctorID, date, clock, reason string) (*models.Appointment, error) {
	hm, err := ParseClock(clock)
	if err != nil {
		return nil, err
	}
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}

	appt := &models.Appointment{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      date,
		Time:      hm,
		Reason:    reason,
		Status:    models.StatusPending,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockConflicts(tx, doctorID, date, hm, ""); err != nil {
			return err
		}
		return tx.Create(appt).Error
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}

// Reschedule moves the patient's appointment to a new date/time after a
// fresh conflict check (the appointment itself excluded) and resets its
// status to Pending. Only Pending or Confirmed appointments can move.
func (s *Service) Reschedule(apptID, patientID, newDate, newClock string) (*models.Appointment, error) {
	hm, err := ParseClock(newClock)
	if err != nil {
		return nil, err
	}
	if _, err := ParseDate(newDate); err != nil {
		return nil, err
	}

	var appt models.Appointment
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND patient_id = ?", apptID, patientID).
			First(&appt).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if appt.Status != models.StatusPending && appt.Status != models.StatusConfirmed {
			return ErrNotAllowed
		}
		if err := lockConflicts(tx, appt.DoctorID, newDate, hm, appt.ID); err != nil {
			return err
		}
		appt.Date = newDate
		appt.Time = hm
		appt.Status = models.StatusPending
		return tx.Model(&appt).Updates(map[string]interface{}{
			"date":   newDate,
			"time":   hm,
			"status": models.StatusPending,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// Cancel sets the patient's appointment to Cancelled. Cancelling an
// already-cancelled appointment is a no-op, not an error.
func (s *Service) Cancel(apptID, patientID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var appt models.Appointment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND patient_id = ?", apptID, patientID).
			First(&appt).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if appt.Status == models.StatusCancelled {
			return nil
		}
		return tx.Model(&appt).Update("status", models.StatusCancelled).Error
	})
}

// Actions a doctor can apply to an appointment.
const (
	ActionConfirm = "confirm"
	ActionCancel  = "cancel"
)

// Transition applies a doctor action to one of their appointments: confirm
// moves Pending to Confirmed, cancel moves Pending or Confirmed to
// Cancelled. Completed and Cancelled appointments stay put (cancelling a
// cancelled appointment is a no-op).
func (s *Service) Transition(apptID, doctorID, action string) (*models.Appointment, error) {
	var appt models.Appointment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND doctor_id = ?", apptID, doctorID).
			First(&appt).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var next models.AppointmentStatus
		switch action {
		case ActionConfirm:
			if appt.Status != models.StatusPending {
				return ErrNotAllowed
			}
			next = models.StatusConfirmed
		case ActionCancel:
			if appt.Status == models.StatusCancelled {
				return nil
			}
			if appt.Status == models.StatusCompleted {
				return ErrNotAllowed
			}
			next = models.StatusCancelled
		default:
			return ErrNotAllowed
		}

		appt.Status = next
		return tx.Model(&appt).Update("status", next).Error
	})
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// CompleteTx marks an appointment Completed inside a caller-owned
// transaction; the prescription flow finalises the visit and generates the
// bill atomically. Only Pending or Confirmed appointments can complete.
func (s *Service) CompleteTx(tx *gorm.DB, appt *models.Appointment) error {
	if appt.Status != models.StatusPending && appt.Status != models.StatusConfirmed {
		return ErrNotAllowed
	}
	appt.Status = models.StatusCompleted
	return tx.Model(appt).Update("status", models.StatusCompleted).Error
}

// ExpireStaleForDoctor cancels every Pending or Confirmed appointment of the
// doctor whose scheduled datetime has passed. Both doctor read sites (the
// dashboard and the appointment list) call this before building their view;
// there is no background timer.
func (s *Service) ExpireStaleForDoctor(doctorID string) error {
	return s.expireStale("doctor_id = ?", doctorID)
}

// ExpireStaleForPatient is the same sweep scoped to a patient's bookings.
func (s *Service) ExpireStaleForPatient(patientID string) error {
	return s.expireStale("patient_id = ?", patientID)
}

func (s *Service) expireStale(cond, id string) error {
	now := s.now()
	today := now.Format(DateLayout)
	clock := now.Format(layout24)
	return s.db.Model(&models.Appointment{}).
		Where(cond, id).
		Where("status IN ?", []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
		Where("date < ? OR (date = ? AND time < ?)", today, today, clock).
		Update("status", models.StatusCancelled).Error
}

// lockConflicts takes row locks on every non-cancelled appointment holding
// the slot and fails with ErrSlotTaken when any exist. Running inside the
// caller's transaction makes the following insert/update atomic with the
// check.
func lockConflicts(tx *gorm.DB, doctorID, date, hm, excludeID string) error {
	query := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("doctor_id = ? AND date = ? AND time = ? AND status <> ?",
			doctorID, date, hm, models.StatusCancelled)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var clashes []models.Appointment
	if err := query.Find(&clashes).Error; err != nil {
		return err
	}
	if len(clashes) > 0 {
		return ErrSlotTaken
	}
	return nil
}
