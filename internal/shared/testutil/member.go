package testutil

// MemberPayload returns a complete, valid member request body. Tests mutate the copy
// to build invalid variants.
func MemberPayload(mID string) map[string]any {
	return map[string]any{
		"mId":            mID,
		"name":           "Asha Verma",
		"mobile":         "9876543210",
		"trainingType":   "Strength",
		"address":        "12 Park Street",
		"idProof":        "Aadhaar",
		"batch":          "Morning",
		"planType":       "Monthly",
		"purchaseDate":   "2023-01-01",
		"expiryDate":     "2023-02-01",
		"totalAmount":    "1000",
		"amountPaid":     600,
		"dueAmount":      "400",
		"paymentDetails": "UPI",
	}
}
