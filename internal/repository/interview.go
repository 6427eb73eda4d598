package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/WST-T/pweaseHiredMe/internal/validate"
	"github.com/WST-T/pweaseHiredMe/pkg/model"
	"github.com/jackc/pgx/v5"
)

const interviewColumns = `
	id, user_id, user_name, interview_date, COALESCE(interview_time, ''),
	interview_type, description, created_at`

func (r *Repository) today() string {
	return r.now().In(r.loc).Format(model.DateLayout)
}

func (r *Repository) CreateInterview(ctx context.Context, iv *model.Interview) (int64, error) {
	const q = `
INSERT INTO interviews (
	user_id, user_name, interview_date, interview_time, interview_type, description
) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id
`
	row := r.db.QueryRow(ctx, q,
		iv.OwnerID, iv.OwnerName, iv.Date, iv.Time, iv.Category, iv.Description,
	)
	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("insert interview: %w", err)
	}
	return id, nil
}

// GetInterview looks a record up by id without owner scoping. It exists so
// UpdateInterview can inspect the stored category before applying the
// time-in-type repair rule. Returns (nil, nil) when no row matches.
func (r *Repository) GetInterview(ctx context.Context, id int64) (*model.Interview, error) {
	q := `SELECT` + interviewColumns + ` FROM interviews WHERE id = $1`

	var iv model.Interview
	row := r.db.QueryRow(ctx, q, id)
	err := row.Scan(
		&iv.ID, &iv.OwnerID, &iv.OwnerName, &iv.Date, &iv.Time,
		&iv.Category, &iv.Description, &iv.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get interview: %w", err)
	}
	return &iv, nil
}

// ListForOwner returns one owner's interviews ordered by (date, time), with
// null/blank times before populated ones. When includePast is false, only
// records dated today or later (in the configured zone) are returned.
func (r *Repository) ListForOwner(ctx context.Context, ownerID int64, includePast bool) ([]model.Interview, error) {
	q := `SELECT` + interviewColumns + ` FROM interviews WHERE user_id = $1`
	args := []interface{}{ownerID}

	if !includePast {
		q += ` AND interview_date >= $2`
		args = append(args, r.today())
	}

	q += ` ORDER BY interview_date, interview_time NULLS FIRST`

	return r.queryInterviews(ctx, q, args...)
}

// ListForDate returns every interview on one date, ordered by time.
func (r *Repository) ListForDate(ctx context.Context, date string) ([]model.Interview, error) {
	q := `SELECT` + interviewColumns + `
	FROM interviews WHERE interview_date = $1
	ORDER BY interview_time NULLS FIRST`
	return r.queryInterviews(ctx, q, date)
}

// ListAllFuture returns every interview dated today or later, across owners.
func (r *Repository) ListAllFuture(ctx context.Context) ([]model.Interview, error) {
	q := `SELECT` + interviewColumns + `
	FROM interviews WHERE interview_date >= $1
	ORDER BY interview_date, interview_time NULLS FIRST`
	return r.queryInterviews(ctx, q, r.today())
}

// CountByOwner aggregates all-time totals per owner, most interviews first.
// Ties keep owner insertion order via the MIN(id) tiebreak. Grouping is by
// owner id alone: the stored name is a creation-time snapshot, so one owner
// may carry several names across rows. The earliest snapshot labels the row.
func (r *Repository) CountByOwner(ctx context.Context) ([]model.OwnerCount, error) {
	const q = `
SELECT (array_agg(user_name ORDER BY id))[1] AS user_name, COUNT(*) AS count
FROM interviews
GROUP BY user_id
ORDER BY count DESC, MIN(id)
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("count by owner: %w", err)
	}
	defer rows.Close()

	var out []model.OwnerCount
	for rows.Next() {
		var oc model.OwnerCount
		if err := rows.Scan(&oc.OwnerName, &oc.Count); err != nil {
			return nil, fmt.Errorf("scan owner count: %w", err)
		}
		out = append(out, oc)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

func (r *Repository) CountForOwner(ctx context.Context, ownerID int64) (int, error) {
	const q = `SELECT COUNT(*) FROM interviews WHERE user_id = $1`
	var count int
	if err := r.db.QueryRow(ctx, q, ownerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count for owner: %w", err)
	}
	return count, nil
}

// UpdateInterview applies a partial update to the record matching both id and
// owner. Returns whether a row changed; not-found and not-owned are
// indistinguishable on purpose.
//
// Repair rule: when the update sets a time without also setting a category,
// and the stored category still looks like an HH:MM value (misfiled data from
// the old schema), the category is forced to the default label in the same
// statement so the record cannot carry two times at once.
func (r *Repository) UpdateInterview(ctx context.Context, id, ownerID int64, u model.FieldUpdates) (bool, error) {
	if u.Time != nil && u.Category == nil {
		current, err := r.GetInterview(ctx, id)
		if err != nil {
			return false, err
		}
		if current != nil && validate.TimeShaped(current.Category) {
			cat := model.DefaultCategory
			u.Category = &cat
		}
	}

	query := "UPDATE interviews SET "
	args := []interface{}{}

	set := func(col string, val string) {
		if len(args) > 0 {
			query += ", "
		}
		args = append(args, val)
		query += fmt.Sprintf("%s = $%d", col, len(args))
	}

	if u.Date != nil {
		set("interview_date", *u.Date)
	}
	if u.Time != nil {
		set("interview_time", *u.Time)
	}
	if u.Category != nil {
		set("interview_type", *u.Category)
	}
	if u.Description != nil {
		set("description", *u.Description)
	}

	if len(args) == 0 {
		return false, nil
	}

	query += fmt.Sprintf(" WHERE id = $%d AND user_id = $%d", len(args)+1, len(args)+2)
	args = append(args, id, ownerID)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update interview: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteInterview removes the record matching both id and owner. Returns
// whether a row was removed.
func (r *Repository) DeleteInterview(ctx context.Context, id, ownerID int64) (bool, error) {
	const q = `DELETE FROM interviews WHERE id = $1 AND user_id = $2`
	tag, err := r.db.Exec(ctx, q, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete interview: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteBefore removes every record dated strictly before cutoffDate and
// returns the number removed. Used by the daily retention sweep.
func (r *Repository) DeleteBefore(ctx context.Context, cutoffDate string) (int64, error) {
	const q = `DELETE FROM interviews WHERE interview_date < $1`
	tag, err := r.db.Exec(ctx, q, cutoffDate)
	if err != nil {
		return 0, fmt.Errorf("delete old interviews: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *Repository) queryInterviews(ctx context.Context, q string, args ...interface{}) ([]model.Interview, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query interviews: %w", err)
	}
	defer rows.Close()

	var out []model.Interview
	for rows.Next() {
		var iv model.Interview
		if err := rows.Scan(
			&iv.ID, &iv.OwnerID, &iv.OwnerName, &iv.Date, &iv.Time,
			&iv.Category, &iv.Description, &iv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan interview row: %w", err)
		}
		out = append(out, iv)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}
