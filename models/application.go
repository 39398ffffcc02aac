package models

import "strconv"

// Config keys of the candidate application record. They double as form
// field names.
const (
	FieldName         = "candidate_name"
	FieldMail         = "candidate_mail"
	FieldNumber       = "candidate_number"
	FieldDOB          = "candidate_dob"
	FieldGender       = "candidate_gender"
	FieldMessage      = "candidate_message"
	FieldConfirmation = "candidate_confirmation"
	FieldCopy         = "candidate_copy"
)

// FieldOrder is the declared order of the form fields.
var FieldOrder = []string{
	FieldName,
	FieldMail,
	FieldNumber,
	FieldDOB,
	FieldGender,
	FieldMessage,
	FieldConfirmation,
	FieldCopy,
}

// CandidateApplication is one submission of the form. Copy is nil when the
// submission did not carry the field at all.
type CandidateApplication struct {
	Name         string `json:"candidate_name" form:"candidate_name" validate:"required"`
	Mail         string `json:"candidate_mail" form:"candidate_mail" validate:"required,email"`
	Number       string `json:"candidate_number" form:"candidate_number"`
	DOB          string `json:"candidate_dob" form:"candidate_dob" validate:"required,datetime=2006-01-02"`
	Gender       string `json:"candidate_gender" form:"candidate_gender" validate:"omitempty,oneof=Female Male"`
	Message      string `json:"candidate_message" form:"candidate_message"`
	Confirmation string `json:"candidate_confirmation" form:"candidate_confirmation" validate:"omitempty,oneof=Yes No"`
	Copy         *bool  `json:"candidate_copy" form:"-"`
}

// CopyRequested reports whether the applicant asked for a copy.
func (a CandidateApplication) CopyRequested() bool {
	return a.Copy != nil && *a.Copy
}

// Values flattens the record into its stored string form.
func (a CandidateApplication) Values() map[string]string {
	return map[string]string{
		FieldName:         a.Name,
		FieldMail:         a.Mail,
		FieldNumber:       a.Number,
		FieldDOB:          a.DOB,
		FieldGender:       a.Gender,
		FieldMessage:      a.Message,
		FieldConfirmation: a.Confirmation,
		FieldCopy:         strconv.FormatBool(a.CopyRequested()),
	}
}

// ApplicationFromValues is the inverse of Values. Missing keys decode to
// zero values; an unparsable copy flag decodes to false.
func ApplicationFromValues(values map[string]string) CandidateApplication {
	copyFlag, _ := strconv.ParseBool(values[FieldCopy])
	return CandidateApplication{
		Name:         values[FieldName],
		Mail:         values[FieldMail],
		Number:       values[FieldNumber],
		DOB:          values[FieldDOB],
		Gender:       values[FieldGender],
		Message:      values[FieldMessage],
		Confirmation: values[FieldConfirmation],
		Copy:         &copyFlag,
	}
}

// SubmissionEvent is published after a record has been stored.
type SubmissionEvent struct {
	SubmissionID string               `json:"submissionId"`
	Namespace    string               `json:"namespace"`
	Application  CandidateApplication `json:"application"`
	SubmittedAt  int64                `json:"submittedAt"`
}
