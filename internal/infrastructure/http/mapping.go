package httpserver

import (
	"shiftserve/internal/application"
	"shiftserve/internal/domain"
	"shiftserve/internal/infrastructure/http/openapi"

	"github.com/oapi-codegen/runtime/types"
)

func toLocation(l *domain.Location) *openapi.Location {
	if l == nil {
		return nil
	}
	return &openapi.Location{Lat: l.Lat, Lng: l.Lng, Address: l.Address}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func toShift(sh domain.Shift) openapi.Shift {
	out := openapi.Shift{
		Id:              sh.ID,
		RestaurantId:    sh.RestaurantID,
		RestaurantName:  sh.RestaurantName,
		Role:            sh.Role,
		Date:            types.Date{Time: sh.Date},
		StartTime:       sh.StartTime,
		EndTime:         sh.EndTime,
		Duration:        sh.Duration(),
		HourlyRate:      sh.HourlyRate,
		UrgencyLevel:    string(sh.UrgencyLevel),
		Urgent:          sh.Urgent(),
		BonusPercentage: sh.BonusPercentage,
		Description:     sh.Description,
		Requirements:    nonNil(sh.Requirements),
		Status:          string(sh.Status),
		Published:       sh.Published(),
		Applicants:      sh.Applicants(),
		Location:        toLocation(sh.Location),
		Address:         sh.Address,
		Applications:    make([]openapi.Application, 0, len(sh.Applications)),
		Generated:       sh.Generated,
		CreatedAt:       sh.CreatedAt,
		UpdatedAt:       sh.UpdatedAt,
	}
	for _, a := range sh.Applications {
		out.Applications = append(out.Applications, openapi.Application{
			WorkerId:         a.WorkerID,
			WorkerName:       a.WorkerName,
			AppliedAt:        a.AppliedAt,
			Status:           string(a.Status),
			WorkerRating:     a.WorkerRating,
			WorkerExperience: a.WorkerExperience,
		})
	}
	if a := sh.Assignment; a != nil {
		out.Assignment = &openapi.Assignment{
			WorkerId:          a.WorkerID,
			WorkerName:        a.WorkerName,
			AssignedAt:        a.AssignedAt,
			Completed:         a.Completed,
			CompletedAt:       a.CompletedAt,
			RestaurantRating:  a.RestaurantRating,
			RestaurantComment: a.RestaurantComment,
			WorkerRating:      a.WorkerRating,
			WorkerComment:     a.WorkerComment,
		}
	}
	for _, m := range sh.ChatMessages {
		out.ChatMessages = append(out.ChatMessages, toMessage(m))
	}
	return out
}

func toShifts(in []domain.Shift) []openapi.Shift {
	out := make([]openapi.Shift, 0, len(in))
	for _, sh := range in {
		out = append(out, toShift(sh))
	}
	return out
}

func toMessage(m domain.ChatMessage) openapi.ChatMessage {
	return openapi.ChatMessage{
		Id:         m.ID,
		ShiftId:    m.ShiftID,
		SenderId:   m.SenderID,
		SenderType: string(m.SenderType),
		Message:    m.Message,
		Timestamp:  m.Timestamp,
	}
}

func toAccount(a domain.Account) openapi.Account {
	return openapi.Account{Id: a.ID, UserType: string(a.UserType), CreatedAt: a.CreatedAt}
}

func toWorkerProfile(p domain.WorkerProfile) openapi.WorkerProfile {
	return openapi.WorkerProfile{
		UserId:         p.UserID,
		Name:           p.Name,
		Email:          p.Email,
		Phone:          p.Phone,
		Certifications: nonNil(p.Certifications),
		Skills:         nonNil(p.Skills),
		Roles:          nonNil(p.Roles),
		ServiceRadius:  p.ServiceRadius,
		Experience:     string(p.Experience),
		Availability:   p.Availability,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func fromWorkerProfile(p openapi.WorkerProfile) domain.WorkerProfile {
	return domain.WorkerProfile{
		Name:           p.Name,
		Email:          p.Email,
		Phone:          p.Phone,
		Certifications: p.Certifications,
		Skills:         p.Skills,
		Roles:          p.Roles,
		ServiceRadius:  p.ServiceRadius,
		Experience:     domain.Experience(p.Experience),
		Availability:   p.Availability,
	}
}

func toRestaurantProfile(p domain.RestaurantProfile) openapi.RestaurantProfile {
	hours := make(map[string]openapi.DayHours, len(p.OperatingHours))
	for d, h := range p.OperatingHours {
		hours[d] = openapi.DayHours{Open: h.Open, Close: h.Close, Closed: h.Closed}
	}
	return openapi.RestaurantProfile{
		UserId:               p.UserID,
		RestaurantName:       p.RestaurantName,
		Email:                p.Email,
		Phone:                p.Phone,
		Website:              p.Website,
		Description:          p.Description,
		CuisineType:          p.CuisineType,
		RestaurantType:       p.RestaurantType,
		Address:              p.Address,
		Location:             toLocation(p.Location),
		Manager:              openapi.Manager(p.Manager),
		OperatingHours:       hours,
		TeamSize:             p.TeamSize,
		AverageShiftsPerWeek: p.AverageShiftsPerWeek,
		PayRange:             openapi.PayRange(p.PayRange),
		PreferredExperience:  nonNil(p.PreferredExperience),
		CommonRoles:          nonNil(p.CommonRoles),
		Benefits:             nonNil(p.Benefits),
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func fromRestaurantProfile(p openapi.RestaurantProfile) domain.RestaurantProfile {
	hours := make(map[string]domain.DayHours, len(p.OperatingHours))
	for d, h := range p.OperatingHours {
		hours[d] = domain.DayHours{Open: h.Open, Close: h.Close, Closed: h.Closed}
	}
	out := domain.RestaurantProfile{
		RestaurantName:       p.RestaurantName,
		Email:                p.Email,
		Phone:                p.Phone,
		Website:              p.Website,
		Description:          p.Description,
		CuisineType:          p.CuisineType,
		RestaurantType:       p.RestaurantType,
		Address:              p.Address,
		Manager:              domain.Manager(p.Manager),
		OperatingHours:       hours,
		TeamSize:             p.TeamSize,
		AverageShiftsPerWeek: p.AverageShiftsPerWeek,
		PayRange:             domain.PayRange(p.PayRange),
		PreferredExperience:  p.PreferredExperience,
		CommonRoles:          p.CommonRoles,
		Benefits:             p.Benefits,
	}
	if p.Location != nil {
		out.Location = &domain.Location{Lat: p.Location.Lat, Lng: p.Location.Lng, Address: p.Location.Address}
	}
	return out
}

func toRatingSummary(s domain.RatingSummary) openapi.RatingSummary {
	out := openapi.RatingSummary{
		ProfileId:     s.ProfileID,
		UserType:      string(s.UserType),
		AverageRating: s.AverageRating,
		TotalRatings:  s.TotalRatings,
		Ratings:       make([]openapi.ReceivedRating, 0, len(s.Ratings)),
	}
	for _, r := range s.Ratings {
		out.Ratings = append(out.Ratings, openapi.ReceivedRating{
			Rating:   r.Rating,
			Comment:  r.Comment,
			FromId:   r.FromID,
			FromName: r.FromName,
			ShiftId:  r.ShiftID,
			Date:     r.Date,
		})
	}
	return out
}

func toGeocodeJob(j domain.GeocodeJob) openapi.GeocodeJob {
	return openapi.GeocodeJob{
		Id:         j.ID,
		TargetKind: string(j.TargetKind),
		TargetId:   j.TargetID,
		Address:    j.Address,
		Status:     string(j.Status),
		Error:      j.Error,
		Attempts:   j.Attempts,
		CreatedAt:  j.CreatedAt,
		UpdatedAt:  j.UpdatedAt,
	}
}

func fromShiftCreate(b openapi.ShiftCreate) application.ShiftInput {
	in := application.ShiftInput{
		Role:            b.Role,
		Date:            b.Date.Time,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		HourlyRate:      b.HourlyRate,
		BonusPercentage: b.BonusPercentage,
		Requirements:    b.Requirements,
		Lat:             b.Lat,
		Lng:             b.Lng,
	}
	if b.UrgencyLevel != nil {
		in.UrgencyLevel = domain.UrgencyLevel(*b.UrgencyLevel)
	}
	if b.Description != nil {
		in.Description = *b.Description
	}
	if b.Address != nil {
		in.Address = *b.Address
	}
	if b.Publish != nil {
		in.Publish = *b.Publish
	}
	return in
}

func fromShiftPatch(b openapi.ShiftPatch) application.ShiftPatch {
	p := application.ShiftPatch{
		Role:            b.Role,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		HourlyRate:      b.HourlyRate,
		BonusPercentage: b.BonusPercentage,
		Description:     b.Description,
		Requirements:    b.Requirements,
		Lat:             b.Lat,
		Lng:             b.Lng,
		Address:         b.Address,
	}
	if b.Date != nil {
		d := b.Date.Time
		p.Date = &d
	}
	if b.UrgencyLevel != nil {
		u := domain.UrgencyLevel(*b.UrgencyLevel)
		p.UrgencyLevel = &u
	}
	return p
}
