package dto

import (
	"time"

	"usergate/internal/entity"
)

type DeactivateRequest struct {
	DeactivatedReason string `json:"deactivated_reason" validate:"required,min=2"`
}

type ReactivateRequest struct {
	ReactivatedReason string `json:"reactivated_reason" validate:"required,min=2"`
}

type TransitionResponse struct {
	ID      string `json:"id"`
	UserID  string `json:"userId"`
	AdminID string `json:"adminId"`
}

type DeactivationResponse struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	DeactivatedReason string     `json:"deactivated_reason"`
	DeactivatedAt     time.Time  `json:"deactivated_at"`
	DeactivatedBy     string     `json:"deactivated_by"`
	ReactivatedReason *string    `json:"reactivated_reason"`
	ReactivatedAt     *time.Time `json:"reactivated_at"`
	ReactivatedBy     *string    `json:"reactivated_by"`
}

// DeactivatedUserResponse composes the live state row with the target user
// and the admin who deactivated them, each fetched as its own typed lookup.
type DeactivatedUserResponse struct {
	DeactivatedUserID    string    `json:"deactivatedUserId"`
	DeactivatedUserName  string    `json:"deactivatedUserName"`
	DeactivatedUserEmail string    `json:"deactivatedUserEmail"`
	DeactivatedReason    string    `json:"deactivated_reason"`
	DeactivatedAt        time.Time `json:"deactivatedAt"`
	DeactivatedByID      string    `json:"deactivatedById"`
	DeactivatedByName    string    `json:"deactivatedByName"`
	DeactivatedByEmail   string    `json:"deactivatedByEmail"`
}

type HistoryResponse struct {
	ID                   string      `json:"id"`
	UserID               string      `json:"user_id"`
	DeactivationReasons  []string    `json:"deactivation_reasons"`
	DeactivationDates    []time.Time `json:"deactivation_dates"`
	ReactivationReasons  []string    `json:"reactivation_reasons"`
	ReactivationDates    []time.Time `json:"reactivation_dates"`
	DeactivationsByAdmin []string    `json:"deactivations_by_admin"`
	ReactivationsByAdmin []string    `json:"reactivations_by_admin"`
}

func DeactivationResponseFromEntity(record *entity.Deactivation) DeactivationResponse {
	response := DeactivationResponse{
		ID:                record.ID.String(),
		UserID:            record.UserID.String(),
		DeactivatedReason: record.DeactivatedReason,
		DeactivatedAt:     record.DeactivatedAt,
		DeactivatedBy:     record.DeactivatedBy.String(),
		ReactivatedReason: record.ReactivatedReason,
		ReactivatedAt:     record.ReactivatedAt,
	}
	if record.ReactivatedBy != nil {
		by := record.ReactivatedBy.String()
		response.ReactivatedBy = &by
	}
	return response
}

func DeactivationResponsesFromEntities(records []entity.Deactivation) []DeactivationResponse {
	responses := make([]DeactivationResponse, 0, len(records))
	for i := range records {
		responses = append(responses, DeactivationResponseFromEntity(&records[i]))
	}
	return responses
}

// HistoryResponseFromEntity projects the transition log back into the
// index-aligned arrays the API exposes: entry i of the deactivation arrays
// is the i-th deactivation, entry i of the reactivation arrays the i-th
// reactivation.
func HistoryResponseFromEntity(history *entity.DeactivationHistory) HistoryResponse {
	response := HistoryResponse{
		ID:                   history.ID.String(),
		UserID:               history.UserID.String(),
		DeactivationReasons:  []string{},
		DeactivationDates:    []time.Time{},
		ReactivationReasons:  []string{},
		ReactivationDates:    []time.Time{},
		DeactivationsByAdmin: []string{},
		ReactivationsByAdmin: []string{},
	}
	for _, event := range history.Events {
		switch event.Kind {
		case entity.TransitionDeactivated:
			response.DeactivationReasons = append(response.DeactivationReasons, event.Reason)
			response.DeactivationDates = append(response.DeactivationDates, event.At)
			response.DeactivationsByAdmin = append(response.DeactivationsByAdmin, event.ActorID.String())
		case entity.TransitionReactivated:
			response.ReactivationReasons = append(response.ReactivationReasons, event.Reason)
			response.ReactivationDates = append(response.ReactivationDates, event.At)
			response.ReactivationsByAdmin = append(response.ReactivationsByAdmin, event.ActorID.String())
		}
	}
	return response
}

func HistoryResponsesFromEntities(histories []entity.DeactivationHistory) []HistoryResponse {
	responses := make([]HistoryResponse, 0, len(histories))
	for i := range histories {
		responses = append(responses, HistoryResponseFromEntity(&histories[i]))
	}
	return responses
}

// Fields exposes the record by attribute name for the ?field= projection.
func (r HistoryResponse) Fields() map[string]any {
	return map[string]any{
		"id":                     r.ID,
		"user_id":                r.UserID,
		"deactivation_reasons":   r.DeactivationReasons,
		"deactivation_dates":     r.DeactivationDates,
		"reactivation_reasons":   r.ReactivationReasons,
		"reactivation_dates":     r.ReactivationDates,
		"deactivations_by_admin": r.DeactivationsByAdmin,
		"reactivations_by_admin": r.ReactivationsByAdmin,
	}
}

// Project returns only the requested attributes, along with the names that
// do not exist on the record.
func (r HistoryResponse) Project(fields []string) (map[string]any, []string) {
	known := r.Fields()
	projected := make(map[string]any, len(fields))
	var invalid []string
	for _, field := range fields {
		value, ok := known[field]
		if !ok {
			invalid = append(invalid, field)
			continue
		}
		projected[field] = value
	}
	return projected, invalid
}
