package payments

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ehospitality-server/internal/models"
)

// MarkBillPaid settles a bill exactly once. The return callback can arrive
// more than once for the same bill; the row lock plus the is_paid guard make
// the second and later calls no-ops, so a linked prescription never gets
// double-marked. Reports whether the bill had already been settled.
func MarkBillPaid(db *gorm.DB, billID, patientID string) (alreadyPaid bool, err error) {
	err = db.Transaction(func(tx *gorm.DB) error {
		var bill models.Bill
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND patient_id = ?", billID, patientID).
			First(&bill).Error; err != nil {
			return err
		}

		if bill.IsPaid {
			alreadyPaid = true
			return nil
		}

		if err := tx.Model(&bill).Update("is_paid", true).Error; err != nil {
			return err
		}
		if bill.PrescriptionID != nil {
			if err := tx.Model(&models.Prescription{}).
				Where("id = ?", *bill.PrescriptionID).
				Update("is_paid", true).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return alreadyPaid, err
}
