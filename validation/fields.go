package validation

import "timecard/models"

// EditableHoursFields computes the set of hours-entry form fields the actor
// may set for an entry owned by owner. The record shape is fixed; roles only
// widen or narrow this set.
func EditableHoursFields(actor, owner *models.ActiveUser) map[string]bool {
	fields := map[string]bool{
		"date_worked":        true,
		"starting_time":      true,
		"ending_time":        true,
		"vacation_hours":     true,
		"adjustment_mins":    true,
		"employee_submitted": true,
	}
	if actor.IsPrivileged() {
		fields["user"] = true
		fields["period"] = true
		fields["adjustment_approved"] = true
		return fields
	}
	if owner.VacationHours == 0 {
		delete(fields, "vacation_hours")
	}
	return fields
}

// EditablePeriodFields computes the period form fields the actor may set.
// Only privileged actors touch periods at all.
func EditablePeriodFields(actor *models.ActiveUser) map[string]bool {
	if !actor.CanManagePeriods() {
		return nil
	}
	return map[string]bool{
		"period_no":       true,
		"calendar_year":   true,
		"fiscal_year":     true,
		"starting_date":   true,
		"reporting_date":  true,
		"submission_date": true,
		"submission_time": true,
		"pay_date":        true,
		"pay_time":        true,
	}
}
