package memstore

import "shiftserve/internal/domain"

func cloneShift(s domain.Shift) domain.Shift {
	out := s
	out.Requirements = append([]string(nil), s.Requirements...)
	out.Applications = append([]domain.Application(nil), s.Applications...)
	out.ChatMessages = nil
	if s.Location != nil {
		loc := *s.Location
		out.Location = &loc
	}
	if s.Assignment != nil {
		a := *s.Assignment
		out.Assignment = &a
	}
	return out
}

func cloneRestaurant(p domain.RestaurantProfile) domain.RestaurantProfile {
	out := p
	if p.Location != nil {
		loc := *p.Location
		out.Location = &loc
	}
	out.OperatingHours = make(map[string]domain.DayHours, len(p.OperatingHours))
	for k, v := range p.OperatingHours {
		out.OperatingHours[k] = v
	}
	out.PreferredExperience = append([]string(nil), p.PreferredExperience...)
	out.CommonRoles = append([]string(nil), p.CommonRoles...)
	out.Benefits = append([]string(nil), p.Benefits...)
	return out
}

func cloneWorker(p domain.WorkerProfile) domain.WorkerProfile {
	out := p
	out.Availability = make(map[string]bool, len(p.Availability))
	for k, v := range p.Availability {
		out.Availability[k] = v
	}
	out.Certifications = append([]string(nil), p.Certifications...)
	out.Skills = append([]string(nil), p.Skills...)
	out.Roles = append([]string(nil), p.Roles...)
	return out
}
