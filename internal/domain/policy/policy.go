// Package policy decides which principal may see or change which rows.
//
// Reads are identity-scoped: a patient always sees their own data and
// nothing else, while admins and doctors see everything. Writes are
// role-gated: only non-patients may create surgeries or medical records.
package policy

import (
	"errors"

	"hospital-management/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrPermissionDenied is the sentinel every denial unwraps to
var ErrPermissionDenied = errors.New("permission denied")

// Principal is the identity making the current request. A nil *Principal
// is an anonymous caller.
type Principal struct {
	ID       uuid.UUID
	Username string
	Role     entity.Role
}

// NewPrincipal builds the principal for an authenticated user
func NewPrincipal(user *entity.User) *Principal {
	if user == nil {
		return nil
	}
	return &Principal{ID: user.ID, Username: user.Username, Role: user.Role}
}

// Action is an operation subject to authorization
type Action string

const (
	ActionViewDashboard          Action = "dashboard.view"
	ActionScheduleSurgery        Action = "surgery.schedule"
	ActionViewAllSurgeries       Action = "surgery.view_all"
	ActionViewOwnSurgeries       Action = "surgery.view_own"
	ActionAddMedicalRecord       Action = "medical_record.add"
	ActionViewAllMedicalRecords  Action = "medical_record.view_all"
	ActionViewPatientDirectory   Action = "directory.patients"
	ActionViewDoctorDirectory    Action = "directory.doctors"
	ActionViewPatientMedicalData Action = "patient.medical_data"
)

// DeniedError is returned for role-gate and identity-scope violations.
// Notice is safe to show to the user.
type DeniedError struct {
	Action Action
	Notice string
}

func (e *DeniedError) Error() string {
	return "permission denied: " + string(e.Action)
}

func (e *DeniedError) Unwrap() error {
	return ErrPermissionDenied
}

var notices = map[Action]string{
	ActionScheduleSurgery:        "Patients do not have permission to schedule surgeries",
	ActionAddMedicalRecord:       "Patients do not have permission to add medical records",
	ActionViewAllSurgeries:       "You do not have permission to view all surgeries",
	ActionViewAllMedicalRecords:  "You do not have permission to view all medical records",
	ActionViewPatientMedicalData: "You do not have permission to view this patient's data",
}

func deny(action Action) *DeniedError {
	notice, ok := notices[action]
	if !ok {
		notice = "You do not have permission to perform this action"
	}
	return &DeniedError{Action: action, Notice: notice}
}

// CanWrite is the role gate for create operations
func CanWrite(p *Principal) bool {
	return isStaff(p)
}

func isStaff(p *Principal) bool {
	if p == nil {
		return false
	}
	switch p.Role {
	case entity.RoleAdmin, entity.RoleDoctor:
		return true
	case entity.RolePatient:
		return false
	}
	return false
}

// CanView is the identity scope for data owned by a patient
func CanView(p *Principal, patientID uuid.UUID) bool {
	if p == nil {
		return false
	}
	switch p.Role {
	case entity.RoleAdmin, entity.RoleDoctor:
		return true
	case entity.RolePatient:
		return p.ID == patientID
	}
	return false
}

// Allowed evaluates action for p. owner is the patient that owns the
// target resource and is only consulted by identity-scoped actions.
func Allowed(p *Principal, action Action, owner uuid.UUID) bool {
	if p == nil {
		return false
	}
	switch action {
	case ActionViewDashboard, ActionViewOwnSurgeries,
		ActionViewPatientDirectory, ActionViewDoctorDirectory:
		return p.Role.IsValid()
	case ActionScheduleSurgery, ActionAddMedicalRecord:
		return CanWrite(p)
	case ActionViewAllSurgeries, ActionViewAllMedicalRecords:
		return isStaff(p)
	case ActionViewPatientMedicalData:
		return CanView(p, owner)
	}
	return false
}

// Authorize is Allowed returning a *DeniedError on refusal
func Authorize(p *Principal, action Action, owner uuid.UUID) error {
	if !Allowed(p, action, owner) {
		return deny(action)
	}
	return nil
}

// PatientScope returns the patient filter list views must apply for p:
// nil means every row, otherwise only rows of the returned patient.
func PatientScope(p *Principal) *uuid.UUID {
	if isStaff(p) {
		return nil
	}
	if p == nil {
		// anonymous callers match nothing
		none := uuid.Nil
		return &none
	}
	id := p.ID
	return &id
}

// Notice extracts the user-visible message of a denial
func Notice(err error) (string, bool) {
	var denied *DeniedError
	if errors.As(err, &denied) {
		return denied.Notice, true
	}
	return "", false
}
