package model

import (
	"math"
	"time"
)

// DateLayout is the only accepted form for purchaseDate and expiryDate (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ExpiringWindowDays is how close to expiry a membership counts as "expiring".
const ExpiringWindowDays = 10

type MemberStatus string

const (
	StatusActive   MemberStatus = "active"
	StatusExpiring MemberStatus = "expiring"
	StatusExpired  MemberStatus = "expired"
)

// Member represents one gym member's identity, plan and billing state.
// The same struct is persisted by the document store (bson) and the relational store (gorm).
// ID is assigned by the store and is never written by clients.
type Member struct {
	// Primary key - ObjectID hex (document/in-memory store) or UUID (relational store)
	ID string `json:"id" bson:"-" gorm:"column:id;size:36;primaryKey"`

	MID            string  `json:"mId" bson:"mId" gorm:"column:m_id;size:64;not null;uniqueIndex:idx_member_m_id"` // 회원 번호 (unique)
	Name           string  `json:"name" bson:"name" gorm:"column:name;size:255;not null;index:idx_member_name"`
	Mobile         string  `json:"mobile" bson:"mobile" gorm:"column:mobile;size:64;not null;index:idx_member_mobile"`
	TrainingType   string  `json:"trainingType" bson:"trainingType" gorm:"column:training_type;size:100;not null"`
	Address        string  `json:"address" bson:"address" gorm:"column:address;size:500;not null"`
	IDProof        string  `json:"idProof" bson:"idProof" gorm:"column:id_proof;size:255;not null"`
	Batch          string  `json:"batch" bson:"batch" gorm:"column:batch;size:100;not null"`
	PlanType       string  `json:"planType" bson:"planType" gorm:"column:plan_type;size:100;not null"`
	PurchaseDate   string  `json:"purchaseDate" bson:"purchaseDate" gorm:"column:purchase_date;size:10;not null"`
	ExpiryDate     string  `json:"expiryDate" bson:"expiryDate" gorm:"column:expiry_date;size:10;not null;index:idx_member_expiry_date"`
	TotalAmount    float64 `json:"totalAmount" bson:"totalAmount" gorm:"column:total_amount;not null"`
	AmountPaid     float64 `json:"amountPaid" bson:"amountPaid" gorm:"column:amount_paid;not null"`
	DueAmount      float64 `json:"dueAmount" bson:"dueAmount" gorm:"column:due_amount;not null"`
	PaymentDetails string  `json:"paymentDetails" bson:"paymentDetails" gorm:"column:payment_details;size:500;not null"`
}

// TableName specifies the table name for Member
func (*Member) TableName() string {
	return "member"
}

// StatusAt classifies the membership by whole days left until ExpiryDate.
// An unparseable expiry date is reported as expired.
func (m *Member) StatusAt(now time.Time) MemberStatus {
	expiry, err := time.Parse(DateLayout, m.ExpiryDate)
	if err != nil {
		return StatusExpired
	}

	daysLeft := math.Ceil(expiry.Sub(now).Hours() / 24)
	switch {
	case daysLeft < 0:
		return StatusExpired
	case daysLeft <= ExpiringWindowDays:
		return StatusExpiring
	default:
		return StatusActive
	}
}
