package scheduling

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"ehospitality-server/internal/models"
)

// The mock clock pins every test to Tuesday 2026-03-10 11:00.
var testNow = time.Date(2026, time.March, 10, 11, 0, 0, 0, time.UTC)

func newMockService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	require.NoError(t, err)

	svc := NewService(db).WithClock(func() time.Time { return testNow })
	return svc, mock
}

func appointmentRows(id, patientID, doctorID, date, hm string, status models.AppointmentStatus) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "patient_id", "doctor_id", "date", "time", "status"}).
		AddRow(id, patientID, doctorID, date, hm, status)
}

func TestBook_Success(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `appointments` WHERE doctor_id = \\? AND date = \\? AND time = \\? AND status <> \\?(.*)FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO `appointments`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	appt, err := svc.Book("pat-1", "doc-1", "2026-03-11", "09:15 AM", "Checkup")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, appt.Status)
	assert.Equal(t, "09:15", appt.Time)
	assert.Equal(t, "2026-03-11", appt.Date)
	assert.NotEmpty(t, appt.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBook_SlotTaken(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `appointments` WHERE doctor_id = \\? AND date = \\? AND time = \\? AND status <> \\?(.*)FOR UPDATE").
		WillReturnRows(appointmentRows("appt-9", "pat-2", "doc-1", "2026-03-11", "09:15", models.StatusConfirmed))
	mock.ExpectRollback()

	_, err := svc.Book("pat-1", "doc-1", "2026-03-11", "09:15 AM", "Checkup")
	assert.ErrorIs(t, err, ErrSlotTaken)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBook_MalformedInput(t *testing.T) {
	svc, _ := newMockService(t)

	_, err := svc.Book("pat-1", "doc-1", "2026-03-11", "9:15", "Checkup")
	assert.ErrorIs(t, err, ErrMalformedTime)

	_, err = svc.Book("pat-1", "doc-1", "11-03-2026", "09:15 AM", "Checkup")
	assert.ErrorIs(t, err, ErrMalformedDate)
}

func TestReschedule_ResetsStatusToPending(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `appointments` WHERE id = \\? AND patient_id = \\?(.+)FOR UPDATE").
		WillReturnRows(appointmentRows("appt-1", "pat-1", "doc-1", "2026-03-11", "09:15", models.StatusConfirmed))
	// Chaining the exclusion makes gorm parenthesize the first condition group.
	mock.ExpectQuery("SELECT (.+) FROM `appointments` WHERE \\(?doctor_id = \\? AND date = \\? AND time = \\? AND status <> \\?\\)? AND id <> \\?(.*)FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("UPDATE `appointments` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	appt, err := svc.Reschedule("appt-1", "pat-1", "2026-03-12", "10:30 AM")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, appt.Status)
	assert.Equal(t, "2026-03-12", appt.Date)
	assert.Equal(t, "10:30", appt.Time)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReschedule_CompletedNotAllowed(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `appointments` WHERE id = \\? AND patient_id = \\?(.+)FOR UPDATE").
		WillReturnRows(appointmentRows("appt-1", "pat-1", "doc-1", "2026-03-09", "09:15", models.StatusCompleted))
	mock.ExpectRollback()

	_, err := svc.Reschedule("appt-1", "pat-1", "2026-03-12", "10:30 AM")
	assert.ErrorIs(t, err, ErrNotAllowed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReschedule_NotOwnAppointment(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `appointments` WHERE id = \\? AND patient_id = \\?(.+)FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.Reschedule("appt-1", "someone-else", "2026-03-12", "10:30 AM")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel_SetsCancelled(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `appointments` WHERE id = \\? AND patient_id = \\?(.+)FOR UPDATE").
		WillReturnRows(appointmentRows("appt-1", "pat-1", "doc-1", "2026-03-11", "09:15", models.StatusPending))
	mock.ExpectExec("UPDATE `appointments` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.Cancel("appt-1", "pat-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel_AlreadyCancelledIsNoOp(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `appointments` WHERE id = \\? AND patient_id = \\?(.+)FOR UPDATE").
		WillReturnRows(appointmentRows("appt-1", "pat-1", "doc-1", "2026-03-11", "09:15", models.StatusCancelled))
	mock.ExpectCommit()

	require.NoError(t, svc.Cancel("appt-1", "pat-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransition_ConfirmFromPending(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `appointments` WHERE id = \\? AND doctor_id = \\?(.+)FOR UPDATE").
		WillReturnRows(appointmentRows("appt-1", "pat-1", "doc-1", "2026-03-11", "09:15", models.StatusPending))
	mock.ExpectExec("UPDATE `appointments` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	appt, err := svc.Transition("appt-1", "doc-1", ActionConfirm)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, appt.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransition_ConfirmFromConfirmedNotAllowed(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `appointments` WHERE id = \\? AND doctor_id = \\?(.+)FOR UPDATE").
		WillReturnRows(appointmentRows("appt-1", "pat-1", "doc-1", "2026-03-11", "09:15", models.StatusConfirmed))
	mock.ExpectRollback()

	_, err := svc.Transition("appt-1", "doc-1", ActionConfirm)
	assert.ErrorIs(t, err, ErrNotAllowed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransition_CancelCompletedNotAllowed(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `appointments` WHERE id = \\? AND doctor_id = \\?(.+)FOR UPDATE").
		WillReturnRows(appointmentRows("appt-1", "pat-1", "doc-1", "2026-03-09", "09:15", models.StatusCompleted))
	mock.ExpectRollback()

	_, err := svc.Transition("appt-1", "doc-1", ActionCancel)
	assert.ErrorIs(t, err, ErrNotAllowed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpireStaleForPatient(t *testing.T) {
	svc, mock := newMockService(t)

	// One sweep statement, no row-by-row loop. The cutoff comes from the
	// injected clock: day 2026-03-10, time 11:00.
	mock.ExpectExec("UPDATE `appointments` SET").
		WithArgs(string(models.StatusCancelled), sqlmock.AnyArg(),
			"pat-1",
			string(models.StatusPending), string(models.StatusConfirmed),
			"2026-03-10", "2026-03-10", "11:00").
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, svc.ExpireStaleForPatient("pat-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailableSlots_FutureDate(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery("SELECT `time` FROM `appointments` WHERE doctor_id = \\? AND date = \\? AND status <> \\?").
		WillReturnRows(sqlmock.NewRows([]string{"time"}).AddRow("09:00").AddRow("14:30"))

	slots, err := svc.AvailableSlots("doc-1", "2026-03-11", "")
	require.NoError(t, err)
	assert.Len(t, slots, 27)
	assert.NotContains(t, slots, "09:00 AM")
	assert.NotContains(t, slots, "02:30 PM")
	assert.Contains(t, slots, "09:15 AM")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailableSlots_TodayDropsPastSlots(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery("SELECT `time` FROM `appointments` WHERE doctor_id = \\? AND date = \\? AND status <> \\?").
		WillReturnRows(sqlmock.NewRows([]string{"time"}))

	slots, err := svc.AvailableSlots("doc-1", "2026-03-10", "")
	require.NoError(t, err)

	// At 11:00 the morning up to and including 11:00 is gone: 7 slots
	// remain before lunch, 13 after.
	assert.Len(t, slots, 20)
	assert.Equal(t, "11:15 AM", slots[0])
	assert.Equal(t, "05:00 PM", slots[len(slots)-1])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailableSlots_ExcludeAppointment(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery("SELECT `time` FROM `appointments` WHERE \\(?doctor_id = \\? AND date = \\? AND status <> \\?\\)? AND id <> \\?").
		WillReturnRows(sqlmock.NewRows([]string{"time"}))

	slots, err := svc.AvailableSlots("doc-1", "2026-03-11", "appt-1")
	require.NoError(t, err)
	assert.Len(t, slots, 29)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailableSlots_MalformedDate(t *testing.T) {
	svc, _ := newMockService(t)

	_, err := svc.AvailableSlots("doc-1", "03/10/2026", "")
	assert.ErrorIs(t, err, ErrMalformedDate)
}
