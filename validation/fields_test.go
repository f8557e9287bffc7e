package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"timecard/models"
)

func TestEditableHoursFields(t *testing.T) {
	employee := &models.ActiveUser{VacationHours: 40}
	noVacation := &models.ActiveUser{}
	staff := &models.ActiveUser{IsStaff: true}

	fields := EditableHoursFields(employee, employee)
	assert.True(t, fields["date_worked"])
	assert.True(t, fields["vacation_hours"])
	assert.False(t, fields["user"])
	assert.False(t, fields["period"])
	assert.False(t, fields["adjustment_approved"])

	// No vacation allotment means no vacation checkbox.
	fields = EditableHoursFields(noVacation, noVacation)
	assert.False(t, fields["vacation_hours"])

	// Staff see every field, even for owners without an allotment.
	fields = EditableHoursFields(staff, noVacation)
	assert.True(t, fields["user"])
	assert.True(t, fields["period"])
	assert.True(t, fields["adjustment_approved"])
	assert.True(t, fields["vacation_hours"])
}

func TestEditablePeriodFields(t *testing.T) {
	employee := &models.ActiveUser{}
	staff := &models.ActiveUser{IsStaff: true}

	assert.Nil(t, EditablePeriodFields(employee))

	fields := EditablePeriodFields(staff)
	assert.True(t, fields["period_no"])
	assert.True(t, fields["pay_time"])
}
