package data

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"complaint-service/internal/domain"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/samber/lo"
)

// Compile-time interface check
var _ domain.ComplaintRepository = (*ComplaintRepo)(nil)

const selectComplaint = `SELECT id, product_id, complainant_id, content, country, counter, creation_date, update_date FROM complaints`

// ComplaintRepo implements domain.ComplaintRepository over a SQL store.
type ComplaintRepo struct {
	db  *sqlx.DB
	log *log.Helper
}

// NewComplaintRepo creates a new complaint repository.
func NewComplaintRepo(data *Data, logger log.Logger) *ComplaintRepo {
	return &ComplaintRepo{
		db:  data.db,
		log: log.NewHelper(logger),
	}
}

// complaintRow is the persistence representation of a complaint.
type complaintRow struct {
	ID            string       `db:"id"`
	ProductID     string       `db:"product_id"`
	ComplainantID string       `db:"complainant_id"`
	Content       string       `db:"content"`
	Country       string       `db:"country"`
	Counter       int          `db:"counter"`
	CreationDate  sql.NullTime `db:"creation_date"`
	UpdateDate    sql.NullTime `db:"update_date"`
}

func (r complaintRow) toDomain() *domain.Complaint {
	var updateDate *time.Time
	if r.UpdateDate.Valid {
		t := r.UpdateDate.Time
		updateDate = &t
	}
	return domain.ReconstructComplaint(
		r.ID,
		r.ProductID,
		r.ComplainantID,
		r.Content,
		r.Country,
		r.Counter,
		r.CreationDate.Time,
		updateDate,
	)
}

// Save persists a complaint. A complaint without an ID is inserted and
// assigned one; existing complaints are updated in place.
func (r *ComplaintRepo) Save(ctx context.Context, c *domain.Complaint) (*domain.Complaint, error) {
	if c.ID == "" {
		return r.insert(ctx, c)
	}
	return r.update(ctx, c)
}

func (r *ComplaintRepo) insert(ctx context.Context, c *domain.Complaint) (*domain.Complaint, error) {
	id := uuid.Must(uuid.NewV7()).String()

	query := r.db.Rebind(`INSERT INTO complaints
		(id, product_id, complainant_id, content, country, counter, creation_date, update_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		id, c.ProductID, c.ComplainantID, c.Content, c.Country, c.Counter, c.CreationDate, nullTime(c.UpdateDate))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateComplaint
		}
		return nil, err
	}

	c.ID = id
	r.log.WithContext(ctx).Infof("new complaint saved with ID: %s", id)
	return c, nil
}

func (r *ComplaintRepo) update(ctx context.Context, c *domain.Complaint) (*domain.Complaint, error) {
	query := r.db.Rebind(`UPDATE complaints
		SET content = ?, country = ?, counter = ?, update_date = ?
		WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query,
		c.Content, c.Country, c.Counter, nullTime(c.UpdateDate), c.ID)
	if err != nil {
		return nil, err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, domain.ErrComplaintNotFound
	}
	return c, nil
}

// FindByID retrieves a complaint by its identifier.
func (r *ComplaintRepo) FindByID(ctx context.Context, id string) (*domain.Complaint, error) {
	var row complaintRow
	query := r.db.Rebind(selectComplaint + ` WHERE id = ?`)
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrComplaintNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

// FindByProductAndComplainant retrieves the complaint for a dedup key.
func (r *ComplaintRepo) FindByProductAndComplainant(ctx context.Context, productID, complainantID string) (*domain.Complaint, error) {
	var row complaintRow
	query := r.db.Rebind(selectComplaint + ` WHERE product_id = ? AND complainant_id = ?`)
	if err := r.db.GetContext(ctx, &row, query, productID, complainantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrComplaintNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

// FindByFilters retrieves complaints matching the conjunction of every
// supplied filter, paginated with skip = page * size.
func (r *ComplaintRepo) FindByFilters(ctx context.Context, f domain.ComplaintFilter) ([]*domain.Complaint, error) {
	conditions := make([]string, 0, 4)
	args := make([]interface{}, 0, 6)

	if f.ProductID != "" {
		conditions = append(conditions, "product_id = ?")
		args = append(args, f.ProductID)
	}
	if f.ComplainantID != "" {
		conditions = append(conditions, "complainant_id = ?")
		args = append(args, f.ComplainantID)
	}
	if f.FromDate != nil {
		conditions = append(conditions, "creation_date >= ?")
		args = append(args, *f.FromDate)
	}
	if f.ToDate != nil {
		conditions = append(conditions, "creation_date <= ?")
		args = append(args, *f.ToDate)
	}

	query := selectComplaint
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, f.Size, f.Page*f.Size)

	var rows []complaintRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	return lo.Map(rows, func(row complaintRow, _ int) *domain.Complaint {
		return row.toDomain()
	}), nil
}

// IncrementCounter bumps the submission counter in the store. The increment
// itself is a single atomic statement so concurrent resubmissions never lose
// a count.
func (r *ComplaintRepo) IncrementCounter(ctx context.Context, id string) (*domain.Complaint, error) {
	query := r.db.Rebind(`UPDATE complaints SET counter = counter + 1 WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrComplaintNotFound
	}
	return r.FindByID(ctx, id)
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// isUniqueViolation recognizes a uniqueness-constraint failure from either
// supported driver: Postgres reports SQLSTATE 23505, SQLite reports a
// "UNIQUE constraint failed" message.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
