package member

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/changhyeonkim/gym-member-api/internal/model"
	"github.com/changhyeonkim/gym-member-api/internal/shared/logger"
)

// Member event actions and outcomes
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"

	OutcomeSuccess   = "success"
	OutcomeRejected  = "rejected"
	OutcomeDuplicate = "duplicate"
	OutcomeNotFound  = "not_found"
	OutcomeError     = "error"
)

// EventRecorder receives one event per create, update or delete attempt.
type EventRecorder interface {
	RecordMemberEvent(ctx context.Context, action, outcome string)
}

type MemberService struct {
	store     Store
	validator *Validator
	events    EventRecorder
	now       func() time.Time
}

// NewMemberService builds the service. events may be nil.
func NewMemberService(store Store, events EventRecorder) *MemberService {
	return &MemberService{
		store:     store,
		validator: NewValidator(),
		events:    events,
		now:       time.Now,
	}
}

func (s *MemberService) Backend() string {
	return s.store.Backend()
}

func (s *MemberService) HealthCheck(ctx context.Context) error {
	return s.store.HealthCheck(ctx)
}

func (s *MemberService) List(ctx context.Context, page, perPage int) ([]MemberResponse, error) {
	members, err := s.store.List(ctx, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("회원 목록 조회 실패: %w", err)
	}

	now := s.now()
	responses := make([]MemberResponse, 0, len(members))
	for i := range members {
		responses = append(responses, toResponse(&members[i], now))
	}
	return responses, nil
}

func (s *MemberService) Get(ctx context.Context, id string) (*MemberResponse, error) {
	member, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("회원 조회 실패: %w", err)
	}

	resp := toResponse(member, s.now())
	return &resp, nil
}

func (s *MemberService) Create(ctx context.Context, payload Payload) (*MemberResponse, error) {
	log := logger.FromContext(ctx)

	member, err := s.validator.Validate(payload)
	if err != nil {
		s.record(ctx, ActionCreate, err)
		return nil, err
	}

	created, err := s.store.Insert(ctx, member)
	if err != nil {
		s.record(ctx, ActionCreate, err)
		return nil, fmt.Errorf("회원 생성 실패: %w", err)
	}

	log.Info("회원 생성",
		"id", created.ID,
		"m_id", created.MID,
		"mobile", logger.MaskMobile(created.Mobile),
		"backend", s.store.Backend(),
	)
	s.record(ctx, ActionCreate, nil)

	resp := toResponse(created, s.now())
	return &resp, nil
}

// Update replaces the whole record. A malformed id is rejected before the body is validated.
func (s *MemberService) Update(ctx context.Context, id string, payload Payload) (*MemberResponse, error) {
	log := logger.FromContext(ctx)

	if err := s.store.ValidateID(id); err != nil {
		s.record(ctx, ActionUpdate, err)
		return nil, err
	}

	member, err := s.validator.Validate(payload)
	if err != nil {
		s.record(ctx, ActionUpdate, err)
		return nil, err
	}

	updated, err := s.store.Replace(ctx, id, member)
	if err != nil {
		s.record(ctx, ActionUpdate, err)
		return nil, fmt.Errorf("회원 수정 실패: %w", err)
	}

	log.Info("회원 수정", "id", updated.ID, "m_id", updated.MID)
	s.record(ctx, ActionUpdate, nil)

	resp := toResponse(updated, s.now())
	return &resp, nil
}

func (s *MemberService) Delete(ctx context.Context, id string) error {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		s.record(ctx, ActionDelete, err)
		return fmt.Errorf("회원 삭제 실패: %w", err)
	}

	if !deleted {
		err := fmt.Errorf("회원을 찾을 수 없습니다 id=%s: %w", id, ErrMemberNotFound)
		s.record(ctx, ActionDelete, err)
		return err
	}

	logger.FromContext(ctx).Info("회원 삭제", "id", id)
	s.record(ctx, ActionDelete, nil)
	return nil
}

func (s *MemberService) record(ctx context.Context, action string, err error) {
	if s.events == nil {
		return
	}
	s.events.RecordMemberEvent(ctx, action, outcomeOf(err))
}

func outcomeOf(err error) string {
	var validationErr *ValidationError
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrDuplicateKey):
		return OutcomeDuplicate
	case errors.Is(err, ErrMemberNotFound):
		return OutcomeNotFound
	case errors.As(err, &validationErr), errors.Is(err, ErrInvalidMemberID):
		return OutcomeRejected
	default:
		return OutcomeError
	}
}

func toResponse(m *model.Member, now time.Time) MemberResponse {
	return MemberResponse{
		ID:             m.ID,
		LegacyID:       m.ID,
		MID:            m.MID,
		Name:           m.Name,
		Mobile:         m.Mobile,
		TrainingType:   m.TrainingType,
		Address:        m.Address,
		IDProof:        m.IDProof,
		Batch:          m.Batch,
		PlanType:       m.PlanType,
		PurchaseDate:   m.PurchaseDate,
		ExpiryDate:     m.ExpiryDate,
		TotalAmount:    m.TotalAmount,
		AmountPaid:     m.AmountPaid,
		DueAmount:      m.DueAmount,
		PaymentDetails: m.PaymentDetails,
		Status:         m.StatusAt(now),
	}
}
