package handlers

import (
	"ehospitality-server/internal/middleware"
	"ehospitality-server/internal/models"
	"ehospitality-server/internal/payments"
	"ehospitality-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BillHandler handles bill listing and payment through the checkout gateway.
type BillHandler struct {
	DB      *gorm.DB
	Gateway *payments.Client
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(db *gorm.DB, gateway *payments.Client) *BillHandler {
	return &BillHandler{DB: db, Gateway: gateway}
}

// GetMyBills handles a patient listing their own bills.
func (h *BillHandler) GetMyBills(c *gin.Context) {
	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var bills []models.Bill
	if err := h.DB.Where("patient_id = ?", patientID).
		Order("date_issued desc").
		Find(&bills).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch bills: "+err.Error())
		return
	}

	utils.Success(c, "Bills fetched successfully", bills)
}

// PayBill handles starting a checkout session for an unpaid bill. The
// response carries the gateway redirect URL; the session id is stored on the
// bill for reconciliation.
func (h *BillHandler) PayBill(c *gin.Context) {
	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var bill models.Bill
	if err := h.DB.Where("id = ? AND patient_id = ?", c.Param("id"), patientID).
		First(&bill).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Bill not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if bill.IsPaid {
		utils.Success(c, "Bill already paid.", nil)
		return
	}

	session, err := h.Gateway.CreateSession(c.Request.Context(), bill.ID, bill.Amount, bill.Description)
	if err != nil {
		utils.InternalServerError(c, "Failed to create checkout session: "+err.Error())
		return
	}

	bill.SessionID = session.ID
	if err := h.DB.Model(&bill).Update("session_id", session.ID).Error; err != nil {
		utils.InternalServerError(c, "Failed to store checkout session: "+err.Error())
		return
	}

	utils.Success(c, "Checkout session created successfully", gin.H{
		"billId":      bill.ID,
		"redirectUrl": session.URL,
	})
}

// PaymentSuccess handles the gateway return callback. The bill id rides on
// the query string; settling is idempotent, so the gateway retrying the
// callback cannot double-process the bill or its linked prescription.
func (h *BillHandler) PaymentSuccess(c *gin.Context) {
	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	billID := c.Query("bill_id")
	if billID == "" {
		utils.BadRequest(c, "bill_id query parameter is required")
		return
	}

	alreadyPaid, err := payments.MarkBillPaid(h.DB, billID, patientID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Bill not found")
		} else {
			utils.InternalServerError(c, "Failed to settle bill: "+err.Error())
		}
		return
	}

	if alreadyPaid {
		utils.Success(c, "Bill already paid.", nil)
		return
	}
	utils.Success(c, "Payment recorded successfully", nil)
}
