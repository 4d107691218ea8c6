package member

import "github.com/changhyeonkim/gym-member-api/internal/model"

// Pagination defaults for GET /api/members
const (
	DefaultPage    = 1
	DefaultPerPage = 50
)

// MemberResponse is the client view of a stored record. The id is echoed as both
// "id" and "_id" for clients written against the document store.
type MemberResponse struct {
	ID             string             `json:"id"`
	LegacyID       string             `json:"_id"`
	MID            string             `json:"mId"`
	Name           string             `json:"name"`
	Mobile         string             `json:"mobile"`
	TrainingType   string             `json:"trainingType"`
	Address        string             `json:"address"`
	IDProof        string             `json:"idProof"`
	Batch          string             `json:"batch"`
	PlanType       string             `json:"planType"`
	PurchaseDate   string             `json:"purchaseDate"`
	ExpiryDate     string             `json:"expiryDate"`
	TotalAmount    float64            `json:"totalAmount"`
	AmountPaid     float64            `json:"amountPaid"`
	DueAmount      float64            `json:"dueAmount"`
	PaymentDetails string             `json:"paymentDetails"`
	Status         model.MemberStatus `json:"status"`
}

type DeleteMemberResponse struct {
	Message string `json:"message"`
}

// StatsResponse summarizes every stored record.
type StatsResponse struct {
	TotalMembers    int     `json:"totalMembers"`
	ActiveMembers   int     `json:"activeMembers"`
	ExpiringMembers int     `json:"expiringMembers"`
	ExpiredMembers  int     `json:"expiredMembers"`
	TotalIncome     float64 `json:"totalIncome"`
}
