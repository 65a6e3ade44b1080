package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/annerobin/therapy-booking/internal/auth"
	"github.com/annerobin/therapy-booking/internal/store"
)

// PgRepository keeps one appointments row per slot:
//
//	CREATE TABLE appointments (
//	    id            text PRIMARY KEY,
//	    date          text NOT NULL,
//	    time          text NOT NULL,
//	    status        text NOT NULL,
//	    session_type  text NOT NULL,
//	    client_name   text,
//	    client_email  text,
//	    client_phone  text,
//	    client_note   text,
//	    ai_summary    text,
//	    private_notes text
//	);
//
// The primary key is the derived "{date}-{time}" id, so date+time uniqueness
// is enforced by the database itself.
type PgRepository struct {
	pool *pgxpool.Pool
	kv   store.Store
}

func NewPgRepository(pool *pgxpool.Pool, kv store.Store) *PgRepository {
	return &PgRepository{pool: pool, kv: kv}
}

const slotColumns = `id, date, time, status, session_type,
	client_name, client_email, client_phone, client_note, ai_summary, private_notes`

func scanSlot(row pgx.Row) (*TimeSlot, error) {
	var s TimeSlot
	var name, email, phone, note, summary, private *string

	err := row.Scan(
		&s.ID,
		&s.Date,
		&s.Time,
		&s.Status,
		&s.SessionType,
		&name,
		&email,
		&phone,
		&note,
		&summary,
		&private,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}

	s.ClientName = deref(name)
	s.ClientEmail = deref(email)
	s.ClientPhone = deref(phone)
	s.ClientNote = deref(note)
	s.AISummary = deref(summary)
	s.PrivateNotes = deref(private)
	return &s, nil
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func nullable(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func (r *PgRepository) GetSlots(ctx context.Context) ([]TimeSlot, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+slotColumns+`
		FROM appointments
	`)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var result []TimeSlot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) CreateSlot(ctx context.Context, date, tm string) error {
	// ON CONFLICT DO NOTHING makes creation idempotent at the database.
	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointments (id, date, time, status, session_type)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`, SlotID(date, tm), date, tm, StatusAvailable, SessionInPerson)
	if err != nil {
		return fmt.Errorf("create slot: %w", err)
	}
	return nil
}

func (r *PgRepository) BookSlot(ctx context.Context, slotID string, client ClientInfo, autoApprove bool) (bool, error) {
	status := StatusPendingApproval
	if autoApprove {
		status = StatusBooked
	}

	// Conditional update: the status predicate is the compare-then-set, so
	// concurrent booking attempts resolve at the database without a
	// read-then-write race.
	tag, err := r.pool.Exec(ctx, `
		UPDATE appointments
		SET status = $2,
		    client_name = $3,
		    client_email = $4,
		    client_phone = $5,
		    client_note = $6,
		    session_type = $7
		WHERE id = $1
		  AND status = $8
	`, slotID, status, client.Name, client.Email, nullable(client.Phone), nullable(client.Note),
		client.SessionType, StatusAvailable)
	if err != nil {
		return false, fmt.Errorf("book slot: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *PgRepository) UpdateStatus(ctx context.Context, slotID string, status SlotStatus) error {
	var err error
	if status == StatusAvailable {
		_, err = r.pool.Exec(ctx, `
			UPDATE appointments
			SET status = $2,
			    client_name = NULL,
			    client_email = NULL,
			    client_phone = NULL,
			    client_note = NULL,
			    ai_summary = NULL,
			    private_notes = NULL
			WHERE id = $1
		`, slotID, status)
	} else {
		_, err = r.pool.Exec(ctx, `
			UPDATE appointments
			SET status = $2
			WHERE id = $1
		`, slotID, status)
	}
	if err != nil {
		return fmt.Errorf("update slot status: %w", err)
	}
	return nil
}

func (r *PgRepository) RescheduleSlot(ctx context.Context, oldSlotID, newDate, newTime string) (bool, error) {
	newID := SlotID(newDate, newTime)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin reschedule: %w", err)
	}
	defer tx.Rollback(ctx)

	src, err := scanSlot(tx.QueryRow(ctx, `
		SELECT `+slotColumns+`
		FROM appointments
		WHERE id = $1
		FOR UPDATE
	`, oldSlotID))
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load source slot: %w", err)
	}

	var targetStatus SlotStatus
	err = tx.QueryRow(ctx, `
		SELECT status
		FROM appointments
		WHERE id = $1
		FOR UPDATE
	`, newID).Scan(&targetStatus)
	switch {
	case err == nil:
		if targetStatus != StatusAvailable {
			return false, nil
		}
	case errors.Is(err, pgx.ErrNoRows):
		// Target id is free.
	default:
		return false, fmt.Errorf("load target slot: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM appointments
		WHERE id = $1 OR id = $2
	`, oldSlotID, newID); err != nil {
		return false, fmt.Errorf("retire slots: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO appointments (`+slotColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, newID, newDate, newTime, src.Status, src.SessionType,
		nullable(src.ClientName), nullable(src.ClientEmail), nullable(src.ClientPhone),
		nullable(src.ClientNote), nullable(src.AISummary), nullable(src.PrivateNotes)); err != nil {
		return false, fmt.Errorf("insert rescheduled slot: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit reschedule: %w", err)
	}
	return true, nil
}

func (r *PgRepository) UpdateSummary(ctx context.Context, slotID, summary string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE appointments
		SET ai_summary = $2
		WHERE id = $1
	`, slotID, nullable(summary))
	if err != nil {
		return fmt.Errorf("update summary: %w", err)
	}
	return nil
}

func (r *PgRepository) UpdatePrivateNote(ctx context.Context, slotID, note string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE appointments
		SET private_notes = $2
		WHERE id = $1
	`, slotID, nullable(note))
	if err != nil {
		return fmt.Errorf("update private note: %w", err)
	}
	return nil
}

func (r *PgRepository) DeleteSlot(ctx context.Context, slotID string) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM appointments
		WHERE id = $1
	`, slotID)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	return nil
}

func (r *PgRepository) VerifyPassword(ctx context.Context, candidate string) (bool, error) {
	return auth.VerifyStored(ctx, r.kv, candidate)
}

func (r *PgRepository) SeedData(ctx context.Context, slots []TimeSlot) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM appointments`); err != nil {
		return fmt.Errorf("clear appointments: %w", err)
	}

	for _, s := range slots {
		if _, err := tx.Exec(ctx, `
			INSERT INTO appointments (`+slotColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, s.ID, s.Date, s.Time, s.Status, s.SessionType,
			nullable(s.ClientName), nullable(s.ClientEmail), nullable(s.ClientPhone),
			nullable(s.ClientNote), nullable(s.AISummary), nullable(s.PrivateNotes)); err != nil {
			return fmt.Errorf("insert seed slot %s: %w", s.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}
