package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/rs/xid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/sakif/applyhelp/internal/repository"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func newID() string { return xid.New().String() }

func now() time.Time { return time.Now().UTC() }

// stamp fills a missing id and creation time and sets the update time.
func stamp(id *string, createdAt, updatedAt *time.Time) {
	if *id == "" {
		*id = newID()
	}
	ts := now()
	if createdAt.IsZero() {
		*createdAt = ts
	}
	*updatedAt = ts
}

// derefArg returns the value a scan destination points to.
func derefArg(dest any) any {
	return reflect.ValueOf(dest).Elem().Interface()
}

// where accumulates AND-ed conditions and their arguments.
//
// Only clause text written in this package goes into the SQL string; user
// input always travels as an argument.
type where struct {
	clauses []string
	args    []any
}

func (w *where) add(clause string, args ...any) {
	w.clauses = append(w.clauses, clause)
	w.args = append(w.args, args...)
}

// eq adds "column = ?" unless value is empty.
func (w *where) eq(column, value string) {
	if value != "" {
		w.add(column+" = ?", value)
	}
}

// search adds a case-insensitive substring match of term against any of the
// columns. An empty term adds nothing.
func (w *where) search(term string, columns ...string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	pattern := likePattern(term)
	ors := make([]string, len(columns))
	for i, c := range columns {
		ors[i] = c + ` LIKE ? ESCAPE '\'`
		w.args = append(w.args, pattern)
	}
	w.clauses = append(w.clauses, "("+strings.Join(ors, " OR ")+")")
}

// in adds "column IN (?, ?, ...)". An empty list matches nothing.
func (w *where) in(column string, values []string) {
	if len(values) == 0 {
		w.add("0")
		return
	}
	ph := placeholders(len(values))
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	w.add(column+" IN ("+ph+")", args...)
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// placeholders returns n comma-separated "?".
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// likePattern wraps term in % wildcards, escaping the LIKE metacharacters in
// the term itself so "100%" matches literally.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

// limit renders LIMIT/OFFSET for opts. A zero Limit renders nothing. The
// offset is kept below math.MaxInt-Limit so SQLite never sums past int64.
func limit(opts repository.ListOptions) string {
	if opts.Limit <= 0 {
		return ""
	}
	offset := min(max(opts.Offset, 0), math.MaxInt-opts.Limit)
	return fmt.Sprintf(" LIMIT %d OFFSET %d", opts.Limit, offset)
}

func count(ctx context.Context, q querier, query string, args ...any) (int, error) {
	var n int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// isUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY
// constraint failure.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	code := se.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

// isForeignKeyViolation reports whether err is a FOREIGN KEY constraint failure.
func isForeignKeyViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
}

// expectOne turns a zero-row UPDATE/DELETE into notFound.
func expectOne(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// withTx runs fn inside a transaction, rolling back on error.
func withTx(ctx context.Context, conn *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// columns joins field names, each prefixed with alias when one is given.
func columns(alias string, fields []string) string {
	if alias == "" {
		return strings.Join(fields, ", ")
	}
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = alias + "." + f
	}
	return strings.Join(out, ", ")
}

// upsert inserts a row or, when the conflict columns already match a row,
// updates every field except id and created_at. It returns the id of the
// stored row, which is the existing one on update.
func upsert(ctx context.Context, q querier, table string, conflict, fields []string, args []any) (string, error) {
	sets := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "id" || f == "created_at" {
			continue
		}
		sets = append(sets, f+" = excluded."+f)
	}
	query := fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES (%s) ON CONFLICT(%s) DO UPDATE SET %s RETURNING id`,
		table,
		strings.Join(fields, ", "),
		placeholders(len(fields)),
		strings.Join(conflict, ", "),
		strings.Join(sets, ", "),
	)
	var id string
	if err := q.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}
