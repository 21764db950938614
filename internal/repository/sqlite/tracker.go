package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sakif/applyhelp/internal/apperror"
	"github.com/sakif/applyhelp/internal/model"
	"github.com/sakif/applyhelp/internal/repository"
)

var _ repository.TrackerRepository = (*TrackerStore)(nil)

// TrackerStore persists application trackers, their documents and the
// user's email log.
type TrackerStore struct {
	conn *sql.DB
}

var trackerFields = []string{
	"id", "user_id", "university_id", "program_id", "application_title", "status", "priority",
	"application_deadline", "submission_date", "decision_date", "supervisor_name",
	"supervisor_email", "admission_contact", "admission_email", "research_area",
	"funding_status", "application_fee", "notes", "progress_notes", "created_at", "updated_at",
}

func trackerDest(t *model.Tracker) []any {
	return []any{
		&t.ID, &t.UserID, &t.UniversityID, &t.ProgramID, &t.ApplicationTitle, &t.Status, &t.Priority,
		&t.ApplicationDeadline, &t.SubmissionDate, &t.DecisionDate, &t.SupervisorName,
		&t.SupervisorEmail, &t.AdmissionContact, &t.AdmissionEmail, &t.ResearchArea,
		&t.FundingStatus, &t.ApplicationFee, &t.Notes, &t.ProgressNotes, &t.CreatedAt, &t.UpdatedAt,
	}
}

// The university is always present; the program is optional, so only the
// columns needed for display are read through the LEFT JOIN.
const trackerFrom = ` FROM trackers t
	JOIN universities u ON u.id = t.university_id
	LEFT JOIN programs p ON p.id = t.program_id`

func trackerSelect() string {
	return `SELECT ` + columns("t", trackerFields) + `, ` + columns("u", universityFields) +
		`, p.name, p.level` + trackerFrom
}

// priorityRank is a CASE expression mapping priority keys to their rank, so
// ORDER BY sorts by importance rather than alphabetically.
var priorityRank = func() string {
	var b strings.Builder
	b.WriteString("CASE t.priority")
	for _, p := range model.AllPriorities {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", p, p.Rank())
	}
	b.WriteString(" ELSE -1 END")
	return b.String()
}()

func trackerOrder(s repository.TrackerSort) string {
	if s == repository.SortByRecent {
		return ` ORDER BY t.updated_at DESC, t.id DESC`
	}
	// Undated trackers sort after every dated one.
	return ` ORDER BY ` + priorityRank + ` DESC, t.application_deadline IS NULL, t.application_deadline, t.created_at`
}

func (s *TrackerStore) query(ctx context.Context, query string, args ...any) ([]model.Tracker, error) {
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Tracker
	for rows.Next() {
		t := model.Tracker{University: &model.University{}}
		var programName, programLevel sql.NullString
		dest := append(trackerDest(&t), universityDest(t.University)...)
		dest = append(dest, &programName, &programLevel)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		if t.ProgramID != nil && programName.Valid {
			t.Program = &model.Program{
				ID:           *t.ProgramID,
				UniversityID: t.UniversityID,
				Name:         programName.String,
				Level:        model.ProgramLevel(programLevel.String),
			}
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Create inserts t. A missing university or program is reported as a
// validation error on that field.
func (s *TrackerStore) Create(ctx context.Context, t *model.Tracker) error {
	t.ID = newID()
	t.CreatedAt = now()
	t.UpdatedAt = t.CreatedAt

	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO trackers (`+columns("", trackerFields)+`) VALUES (`+
			placeholders(len(trackerFields))+`)`,
		values(trackerDest(t))...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return s.referenceError(ctx, t)
		}
		return fmt.Errorf("sqlite: creating tracker for user %s: %w", t.UserID, err)
	}
	return nil
}

// referenceError works out which reference of t broke a foreign key.
func (s *TrackerStore) referenceError(ctx context.Context, t *model.Tracker) error {
	var n int
	if err := s.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE id = ?`, t.UserID).Scan(&n); err == nil && n == 0 {
		return apperror.NotFound("user", t.UserID)
	}
	if err := s.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM universities WHERE id = ?`, t.UniversityID).Scan(&n); err == nil && n == 0 {
		return apperror.ValidationFailed("university", "unknown university")
	}
	return apperror.ValidationFailed("program", "unknown program")
}

// Get returns the tracker only if userID owns it.
func (s *TrackerStore) Get(ctx context.Context, userID, id string) (*model.Tracker, error) {
	items, err := s.query(ctx, trackerSelect()+` WHERE t.id = ? AND t.user_id = ?`, id, userID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting tracker %s: %w", id, err)
	}
	if len(items) == 0 {
		return nil, apperror.NotFound("application", id)
	}
	return &items[0], nil
}

func (s *TrackerStore) List(ctx context.Context, f repository.TrackerFilter) ([]model.Tracker, int, error) {
	var w where
	w.add("t.user_id = ?", f.UserID)
	w.eq("t.status", string(f.Status))

	total, err := count(ctx, s.conn, `SELECT COUNT(*) FROM trackers t`+w.String(), w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: counting trackers: %w", err)
	}
	items, err := s.query(ctx, trackerSelect()+w.String()+trackerOrder(f.Sort)+limit(f.ListOptions), w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: listing trackers: %w", err)
	}
	return items, total, nil
}

// Update saves the editable fields of t. The owner, university and program
// of a tracker never change after creation.
func (s *TrackerStore) Update(ctx context.Context, t *model.Tracker) error {
	t.UpdatedAt = now()
	res, err := s.conn.ExecContext(ctx,
		`UPDATE trackers SET application_title = ?, status = ?, priority = ?,
			application_deadline = ?, submission_date = ?, decision_date = ?,
			supervisor_name = ?, supervisor_email = ?, admission_contact = ?, admission_email = ?,
			research_area = ?, funding_status = ?, application_fee = ?, notes = ?,
			progress_notes = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		t.ApplicationTitle, t.Status, t.Priority,
		t.ApplicationDeadline, t.SubmissionDate, t.DecisionDate,
		t.SupervisorName, t.SupervisorEmail, t.AdmissionContact, t.AdmissionEmail,
		t.ResearchArea, t.FundingStatus, t.ApplicationFee, t.Notes,
		t.ProgressNotes, t.UpdatedAt,
		t.ID, t.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating tracker %s: %w", t.ID, err)
	}
	return expectOne(res, apperror.NotFound("application", t.ID))
}

// Delete removes the tracker with its documents and linked emails.
func (s *TrackerStore) Delete(ctx context.Context, userID, id string) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM trackers WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("sqlite: deleting tracker %s: %w", id, err)
	}
	return expectOne(res, apperror.NotFound("application", id))
}

func (s *TrackerStore) CountByStatus(ctx context.Context, userID string, statuses []model.ApplicationStatus) (int, error) {
	keys := make([]string, len(statuses))
	for i, st := range statuses {
		keys[i] = string(st)
	}
	var w where
	w.add("user_id = ?", userID)
	w.in("status", keys)
	n, err := count(ctx, s.conn, `SELECT COUNT(*) FROM trackers`+w.String(), w.args...)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting trackers by status: %w", err)
	}
	return n, nil
}

// ===== DOCUMENTS =====

var documentFields = []string{
	"id", "tracker_id", "document_type", "title", "file", "status", "version",
	"description", "deadline", "is_required", "created_at", "updated_at",
}

func documentDest(d *model.Document) []any {
	return []any{
		&d.ID, &d.TrackerID, &d.DocumentType, &d.Title, &d.File, &d.Status, &d.Version,
		&d.Description, &d.Deadline, &d.IsRequired, &d.CreatedAt, &d.UpdatedAt,
	}
}

func (s *TrackerStore) CreateDocument(ctx context.Context, d *model.Document) error {
	d.ID = newID()
	d.CreatedAt = now()
	d.UpdatedAt = d.CreatedAt
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO documents (`+columns("", documentFields)+`) VALUES (`+
			placeholders(len(documentFields))+`)`,
		values(documentDest(d))...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperror.NotFound("application", d.TrackerID)
		}
		return fmt.Errorf("sqlite: creating document for tracker %s: %w", d.TrackerID, err)
	}
	return nil
}

func (s *TrackerStore) GetDocument(ctx context.Context, trackerID, id string) (*model.Document, error) {
	var d model.Document
	err := s.conn.QueryRowContext(ctx,
		`SELECT `+columns("", documentFields)+` FROM documents WHERE id = ? AND tracker_id = ?`,
		id, trackerID,
	).Scan(documentDest(&d)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("document", id)
		}
		return nil, fmt.Errorf("sqlite: getting document %s: %w", id, err)
	}
	return &d, nil
}

func (s *TrackerStore) ListDocuments(ctx context.Context, trackerID string) ([]model.Document, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+columns("", documentFields)+` FROM documents WHERE tracker_id = ?
		 ORDER BY deadline IS NULL, deadline, created_at`, trackerID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing documents of tracker %s: %w", trackerID, err)
	}
	defer rows.Close()
	var out []model.Document
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(documentDest(&d)...); err != nil {
			return nil, fmt.Errorf("sqlite: scanning document: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *TrackerStore) UpdateDocument(ctx context.Context, d *model.Document) error {
	d.UpdatedAt = now()
	res, err := s.conn.ExecContext(ctx,
		`UPDATE documents SET document_type = ?, title = ?, file = ?, status = ?, version = ?,
			description = ?, deadline = ?, is_required = ?, updated_at = ?
		 WHERE id = ? AND tracker_id = ?`,
		d.DocumentType, d.Title, d.File, d.Status, d.Version,
		d.Description, d.Deadline, d.IsRequired, d.UpdatedAt,
		d.ID, d.TrackerID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating document %s: %w", d.ID, err)
	}
	return expectOne(res, apperror.NotFound("document", d.ID))
}

func (s *TrackerStore) DeleteDocument(ctx context.Context, trackerID, id string) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM documents WHERE id = ? AND tracker_id = ?`, id, trackerID)
	if err != nil {
		return fmt.Errorf("sqlite: deleting document %s: %w", id, err)
	}
	return expectOne(res, apperror.NotFound("document", id))
}

// ===== EMAIL LOG =====

var emailFields = []string{
	"id", "user_id", "tracker_id", "email_type", "template_id", "recipient_email",
	"recipient_name", "subject", "body", "sent_date", "response_received", "response_date", "notes",
}

func emailDest(e *model.EmailLog) []any {
	return []any{
		&e.ID, &e.UserID, &e.TrackerID, &e.EmailType, &e.TemplateID, &e.RecipientEmail,
		&e.RecipientName, &e.Subject, &e.Body, &e.SentDate, &e.ResponseReceived, &e.ResponseDate, &e.Notes,
	}
}

// CreateEmail inserts e with SentDate set to now. A linked tracker must
// belong to the same user.
func (s *TrackerStore) CreateEmail(ctx context.Context, e *model.EmailLog) error {
	if e.TrackerID != nil {
		if _, err := s.Get(ctx, e.UserID, *e.TrackerID); err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				return apperror.ValidationFailed("application", "unknown application")
			}
			return err
		}
	}
	e.ID = newID()
	e.SentDate = now()
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO email_logs (`+columns("", emailFields)+`) VALUES (`+
			placeholders(len(emailFields))+`)`,
		values(emailDest(e))...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperror.ValidationFailed("template", "unknown template")
		}
		return fmt.Errorf("sqlite: logging email for user %s: %w", e.UserID, err)
	}
	return nil
}

func (s *TrackerStore) GetEmail(ctx context.Context, userID, id string) (*model.EmailLog, error) {
	var e model.EmailLog
	err := s.conn.QueryRowContext(ctx,
		`SELECT `+columns("", emailFields)+` FROM email_logs WHERE id = ? AND user_id = ?`,
		id, userID,
	).Scan(emailDest(&e)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("email", id)
		}
		return nil, fmt.Errorf("sqlite: getting email %s: %w", id, err)
	}
	return &e, nil
}

func (s *TrackerStore) ListEmails(ctx context.Context, f repository.EmailFilter) ([]model.EmailLog, int, error) {
	var w where
	w.add("user_id = ?", f.UserID)
	w.eq("tracker_id", f.TrackerID)

	total, err := count(ctx, s.conn, `SELECT COUNT(*) FROM email_logs`+w.String(), w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: counting emails: %w", err)
	}
	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+columns("", emailFields)+` FROM email_logs`+w.String()+
			` ORDER BY sent_date DESC, id DESC`+limit(f.ListOptions), w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: listing emails: %w", err)
	}
	defer rows.Close()
	var out []model.EmailLog
	for rows.Next() {
		var e model.EmailLog
		if err := rows.Scan(emailDest(&e)...); err != nil {
			return nil, 0, fmt.Errorf("sqlite: scanning email: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("sqlite: listing emails: %w", err)
	}
	return out, total, nil
}

// UpdateEmailResponse writes the response fields; the rest of the log entry
// is immutable.
func (s *TrackerStore) UpdateEmailResponse(ctx context.Context, e *model.EmailLog) error {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE email_logs SET response_received = ?, response_date = ?, notes = ?
		 WHERE id = ? AND user_id = ?`,
		e.ResponseReceived, e.ResponseDate, e.Notes, e.ID, e.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating email %s: %w", e.ID, err)
	}
	return expectOne(res, apperror.NotFound("email", e.ID))
}
