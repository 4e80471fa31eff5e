// file: internals/features/academics/sessions/dto/session_dto.go
package dto

import (
	"sort"
	"strings"
	"time"

	"gorm.io/datatypes"

	"msns_backend/internals/features/academics/sessions/model"
	helper "msns_backend/internals/helpers"
	"msns_backend/internals/rpc"
)

// =======================
// Request DTO
// =======================

type CreateSessionInput struct {
	SessionName string `json:"sessionName" validate:"required,min=1,max=100"`
	SessionFrom string `json:"sessionFrom" validate:"required,ymd"`
	SessionTo   string `json:"sessionTo"   validate:"required,ymd"`
}

func (in *CreateSessionInput) Check() error {
	from, _ := helper.ParseYMD(in.SessionFrom)
	to, _ := helper.ParseYMD(in.SessionTo)
	if to.Before(from) {
		return rpc.FieldError("sessionTo", "sessionTo must not be before sessionFrom")
	}
	return nil
}

// New sessions always start inactive.
func (in *CreateSessionInput) ToModel() model.SessionModel {
	from, _ := helper.ParseYMD(in.SessionFrom)
	to, _ := helper.ParseYMD(in.SessionTo)
	return model.SessionModel{
		SessionName: strings.TrimSpace(in.SessionName),
		SessionFrom: datatypes.Date(from),
		SessionTo:   datatypes.Date(to),
		IsActive:    false,
	}
}

type UpdateSessionInput struct {
	SessionID   string  `json:"sessionId"             validate:"required,uuid"`
	SessionName *string `json:"sessionName,omitempty" validate:"omitempty,min=1,max=100"`
	SessionFrom *string `json:"sessionFrom,omitempty" validate:"omitempty,ymd"`
	SessionTo   *string `json:"sessionTo,omitempty"   validate:"omitempty,ymd"`
}

// ApplyUpdates mutates ent and reports whether the resulting range is valid.
func (u *UpdateSessionInput) ApplyUpdates(ent *model.SessionModel) error {
	if u.SessionName != nil {
		ent.SessionName = strings.TrimSpace(*u.SessionName)
	}
	if u.SessionFrom != nil {
		t, _ := helper.ParseYMD(*u.SessionFrom)
		ent.SessionFrom = datatypes.Date(t)
	}
	if u.SessionTo != nil {
		t, _ := helper.ParseYMD(*u.SessionTo)
		ent.SessionTo = datatypes.Date(t)
	}
	if time.Time(ent.SessionTo).Before(time.Time(ent.SessionFrom)) {
		return rpc.FieldError("sessionTo", "sessionTo must not be before sessionFrom")
	}
	return nil
}

type SessionIDInput struct {
	SessionID string `json:"sessionId" validate:"required,uuid"`
}

type DeleteSessionsInput struct {
	SessionIDs []string `json:"sessionIds" validate:"max=200,dive,uuid"`
}

// =======================
// Response DTO
// =======================

type SessionYearGroup struct {
	Year     int                  `json:"year"`
	Sessions []model.SessionModel `json:"sessions"`
}

// GroupByYear buckets sessions by the year of SessionFrom, keeping the
// incoming order inside each bucket; years come out newest first.
func GroupByYear(sessions []model.SessionModel) []SessionYearGroup {
	idx := map[int]int{}
	out := []SessionYearGroup{}
	for _, s := range sessions {
		y := time.Time(s.SessionFrom).Year()
		i, ok := idx[y]
		if !ok {
			idx[y] = len(out)
			out = append(out, SessionYearGroup{Year: y})
			i = len(out) - 1
		}
		out[i].Sessions = append(out[i].Sessions, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out
}
