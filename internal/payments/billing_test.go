package payments

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
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
	return db, mock
}

func billRows(id, patientID, prescriptionID string, isPaid bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "patient_id", "prescription_id", "amount", "description", "is_paid"}).
		AddRow(id, patientID, prescriptionID, 500.00, "Consultation Fee", isPaid)
}

func TestMarkBillPaid_SettlesBillAndPrescription(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `bills` WHERE id = \\? AND patient_id = \\?(.+)FOR UPDATE").
		WillReturnRows(billRows("bill-1", "pat-1", "presc-1", false))
	mock.ExpectExec("UPDATE `bills` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `prescriptions` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	alreadyPaid, err := MarkBillPaid(db, "bill-1", "pat-1")
	require.NoError(t, err)
	assert.False(t, alreadyPaid)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkBillPaid_SecondCallIsNoOp(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `bills` WHERE id = \\? AND patient_id = \\?(.+)FOR UPDATE").
		WillReturnRows(billRows("bill-1", "pat-1", "presc-1", true))
	mock.ExpectCommit()

	alreadyPaid, err := MarkBillPaid(db, "bill-1", "pat-1")
	require.NoError(t, err)
	assert.True(t, alreadyPaid)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkBillPaid_WrongPatient(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `bills` WHERE id = \\? AND patient_id = \\?(.+)FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := MarkBillPaid(db, "bill-1", "someone-else")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
