package approval

import (
	"time"

	"assetfin-backend/internal/domain/approval"
)

type CreateInput struct {
	EntityTypeCode int
	EntityID       string
	RequestedBy    string
	Notes          string
	Metadata       approval.Metadata
}

type ProcessInput struct {
	RequestID string
	StaffID   string
	// 1 = approve, 2 = reject
	Decision int
	Comments string
}

type ReopenInput struct {
	RequestID string
	StaffID   string
}

type ListFilter struct {
	Status         string
	EntityTypeCode *int
	RequestedBy    string
	From           *time.Time
	To             *time.Time
}

type ActionDTO struct {
	Level      int       `json:"level"`
	ActionedBy string    `json:"actioned_by"`
	ActionDate time.Time `json:"action_date"`
	Status     string    `json:"status"`
	Comments   string    `json:"comments"`
}

type StaffActionDTO struct {
	RequestID string `json:"request_id"`
	ActionDTO
}

type RequestDTO struct {
	RequestID      string            `json:"request_id"`
	EntityType     string            `json:"entity_type"`
	EntityTypeCode int               `json:"entity_type_code"`
	EntityID       string            `json:"entity_id"`
	RequestedBy    string            `json:"requested_by"`
	RequestDate    time.Time         `json:"request_date"`
	Status         string            `json:"status"`
	Notes          string            `json:"notes,omitempty"`
	Metadata       approval.Metadata `json:"metadata,omitempty"`
	History        []ActionDTO       `json:"history"`
}

type CompletionDTO struct {
	Complete    bool     `json:"complete"`
	Outstanding []string `json:"outstanding"`
}

func toActionDTOs(actions []approval.Action) []ActionDTO {
	out := make([]ActionDTO, 0, len(actions))
	for _, a := range actions {
		out = append(out, ActionDTO{
			Level:      a.Level,
			ActionedBy: a.ActionedBy,
			ActionDate: a.ActionDate,
			Status:     string(a.Status),
			Comments:   a.Comments,
		})
	}
	return out
}

func toRequestDTO(r *approval.Request, actions []approval.Action) *RequestDTO {
	return &RequestDTO{
		RequestID:      r.RequestID,
		EntityType:     r.EntityType.Slug(),
		EntityTypeCode: int(r.EntityType),
		EntityID:       r.EntityID,
		RequestedBy:    r.RequestedBy,
		RequestDate:    r.RequestDate,
		Status:         string(r.Status),
		Notes:          r.Notes,
		Metadata:       r.Metadata,
		History:        toActionDTOs(actions),
	}
}
