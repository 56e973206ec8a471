package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/usecase"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ResumesRepo stores resume records in the resumes table. The document and
// section order are kept as JSONB.
type ResumesRepo struct {
	pool *pgxpool.Pool
}

func NewResumesRepo(pool *pgxpool.Pool) *ResumesRepo {
	return &ResumesRepo{pool: pool}
}

const resumeColumns = `id::text, title, template, section_order, document, created_at, updated_at`

func (r *ResumesRepo) Create(ctx context.Context, userID string, rec domain.ResumeRecord) (domain.ResumeRecord, error) {
	docB, orderB, err := encodeRecord(rec)
	if err != nil {
		return domain.ResumeRecord{}, err
	}
	now := time.Now().UTC()
	id := uuid.New()

	row := r.pool.QueryRow(ctx, `INSERT INTO resumes (id, user_id, title, template, section_order, document, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$7)
		RETURNING `+resumeColumns,
		id, userID, rec.Title, rec.Template, orderB, docB, now)
	out, err := scanRecord(row)
	if err != nil {
		return domain.ResumeRecord{}, fmt.Errorf("insert resume: %w", err)
	}
	return out, nil
}

func (r *ResumesRepo) Update(ctx context.Context, userID, id string, rec domain.ResumeRecord) (domain.ResumeRecord, error) {
	rid, err := uuid.Parse(id)
	if err != nil {
		return domain.ResumeRecord{}, usecase.ErrResumeNotFound
	}
	docB, orderB, err := encodeRecord(rec)
	if err != nil {
		return domain.ResumeRecord{}, err
	}

	row := r.pool.QueryRow(ctx, `UPDATE resumes SET title = $3, template = $4, section_order = $5, document = $6, updated_at = $7
		WHERE id = $1 AND user_id = $2
		RETURNING `+resumeColumns,
		rid, userID, rec.Title, rec.Template, orderB, docB, time.Now().UTC())
	out, err := scanRecord(row)
	if err != nil {
		return domain.ResumeRecord{}, notFound(err, "update resume")
	}
	return out, nil
}

func (r *ResumesRepo) Get(ctx context.Context, userID, id string) (domain.ResumeRecord, error) {
	rid, err := uuid.Parse(id)
	if err != nil {
		return domain.ResumeRecord{}, usecase.ErrResumeNotFound
	}
	row := r.pool.QueryRow(ctx, `SELECT `+resumeColumns+` FROM resumes WHERE id = $1 AND user_id = $2`, rid, userID)
	out, err := scanRecord(row)
	if err != nil {
		return domain.ResumeRecord{}, notFound(err, "get resume")
	}
	return out, nil
}

func (r *ResumesRepo) List(ctx context.Context, userID string) ([]domain.ResumeRecord, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+resumeColumns+` FROM resumes WHERE user_id = $1 ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	defer rows.Close()

	out := []domain.ResumeRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("list resumes: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *ResumesRepo) Delete(ctx context.Context, userID, id string) error {
	rid, err := uuid.Parse(id)
	if err != nil {
		return usecase.ErrResumeNotFound
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1 AND user_id = $2`, rid, userID)
	if err != nil {
		return fmt.Errorf("delete resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrResumeNotFound
	}
	return nil
}

func encodeRecord(rec domain.ResumeRecord) ([]byte, []byte, error) {
	docB, err := json.Marshal(rec.ResumeDocument)
	if err != nil {
		return nil, nil, fmt.Errorf("encode document: %w", err)
	}
	order := rec.SectionOrder
	if order == nil {
		order = domain.DefaultSectionOrder()
	}
	orderB, err := json.Marshal(order)
	if err != nil {
		return nil, nil, fmt.Errorf("encode section order: %w", err)
	}
	return docB, orderB, nil
}

func scanRecord(row pgx.Row) (domain.ResumeRecord, error) {
	var (
		id               string
		rec              domain.ResumeRecord
		orderB, docB     []byte
		created, updated time.Time
	)
	if err := row.Scan(&id, &rec.Title, &rec.Template, &orderB, &docB, &created, &updated); err != nil {
		return domain.ResumeRecord{}, err
	}
	rec.ResumeDocument = domain.NewResumeDocument()
	if err := json.Unmarshal(docB, &rec.ResumeDocument); err != nil {
		return domain.ResumeRecord{}, fmt.Errorf("decode document: %w", err)
	}
	if err := json.Unmarshal(orderB, &rec.SectionOrder); err != nil {
		return domain.ResumeRecord{}, fmt.Errorf("decode section order: %w", err)
	}
	rec.ID = id
	rec.CreatedAt, rec.UpdatedAt = &created, &updated
	return rec, nil
}

func notFound(err error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return usecase.ErrResumeNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
