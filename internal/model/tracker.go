package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tracker is one application a student is working on: a university, an
// optional program, and the state of the application.
type Tracker struct {
	ID                  string              `json:"id"`
	UserID              string              `json:"userId"`
	UniversityID        string              `json:"universityId"`
	ProgramID           *string             `json:"programId"`
	University          *University         `json:"university,omitempty"`
	Program             *Program            `json:"program,omitempty"`
	ApplicationTitle    string              `json:"applicationTitle"`
	Status              ApplicationStatus   `json:"status"`
	Priority            Priority            `json:"priority"`
	ApplicationDeadline Date                `json:"applicationDeadline"`
	SubmissionDate      Date                `json:"submissionDate"`
	DecisionDate        Date                `json:"decisionDate"`
	SupervisorName      string              `json:"supervisorName"`
	SupervisorEmail     string              `json:"supervisorEmail"`
	AdmissionContact    string              `json:"admissionContact"`
	AdmissionEmail      string              `json:"admissionEmail"`
	ResearchArea        string              `json:"researchArea"`
	FundingStatus       string              `json:"fundingStatus"`
	ApplicationFee      decimal.NullDecimal `json:"applicationFee"`
	Notes               string              `json:"notes"`
	ProgressNotes       string              `json:"progressNotes"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

// Document is a file or deliverable attached to a tracker. Version is a
// user-managed number; nothing increments it automatically.
type Document struct {
	ID           string         `json:"id"`
	TrackerID    string         `json:"trackerId"`
	DocumentType DocumentType   `json:"documentType"`
	Title        string         `json:"title"`
	File         string         `json:"file"`
	Status       DocumentStatus `json:"status"`
	Version      int            `json:"version"`
	Description  string         `json:"description"`
	Deadline     Date           `json:"deadline"`
	IsRequired   bool           `json:"isRequired"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// EmailLog records an email the student sent. Only the response fields
// change after insert.
type EmailLog struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	TrackerID        *string   `json:"trackerId"`
	EmailType        EmailType `json:"emailType"`
	TemplateID       *string   `json:"templateId"`
	RecipientEmail   string    `json:"recipientEmail"`
	RecipientName    string    `json:"recipientName"`
	Subject          string    `json:"subject"`
	Body             string    `json:"body"`
	SentDate         time.Time `json:"sentDate"`
	ResponseReceived bool      `json:"responseReceived"`
	ResponseDate     Date      `json:"responseDate"`
	Notes            string    `json:"notes"`
}

// TrackerDetail is a tracker with its documents and email history
// (newest first).
type TrackerDetail struct {
	Tracker   *Tracker   `json:"tracker"`
	Documents []Document `json:"documents"`
	Emails    []EmailLog `json:"emails"`
}

// === STATUS TRANSITIONS ===

// TransitionPolicy decides whether a tracker may move from one status to
// another.
type TransitionPolicy interface {
	Allowed(from, to ApplicationStatus) bool
}

// PermissiveTransitions allows any status to follow any status. This is the
// default: students often record outcomes out of order.
type PermissiveTransitions struct{}

func (PermissiveTransitions) Allowed(_, to ApplicationStatus) bool { return to.Valid() }

// StrictTransitions only allows moves listed in the table. Staying in the
// same status is always allowed.
type StrictTransitions map[ApplicationStatus][]ApplicationStatus

func (t StrictTransitions) Allowed(from, to ApplicationStatus) bool {
	if !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range t[from] {
		if next == to {
			return true
		}
	}
	return false
}

// DefaultStrictTransitions follows the usual path of an application.
// Withdrawn is reachable from every non-final state.
var DefaultStrictTransitions = StrictTransitions{
	StatusPlanning:    {StatusPreparing, StatusWithdrawn},
	StatusPreparing:   {StatusPlanning, StatusSubmitted, StatusWithdrawn},
	StatusSubmitted:   {StatusUnderReview, StatusInterview, StatusAccepted, StatusRejected, StatusWaitlisted, StatusWithdrawn},
	StatusUnderReview: {StatusInterview, StatusAccepted, StatusRejected, StatusWaitlisted, StatusWithdrawn},
	StatusInterview:   {StatusUnderReview, StatusAccepted, StatusRejected, StatusWaitlisted, StatusWithdrawn},
	StatusWaitlisted:  {StatusAccepted, StatusRejected, StatusWithdrawn},
	StatusAccepted:    {StatusDeferred, StatusWithdrawn},
	StatusDeferred:    {StatusAccepted, StatusWithdrawn},
}
