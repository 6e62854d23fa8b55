// FilePath: internal/repository/sqldb/sqldb.sample.go
package sqldb

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/cpbotha/dbwriter/internal/database"
	"github.com/cpbotha/dbwriter/internal/errors"
	"github.com/cpbotha/dbwriter/internal/models"
	"github.com/cpbotha/dbwriter/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

const sampleColumns = `id, name, timestamp, utc_offset, v0, v1`

type SampleRepo struct {
	BaseRepo
}

var _ repository.SampleRepository = (*SampleRepo)(nil)

func NewSampleRepository(db *database.DB) *SampleRepo {
	return &SampleRepo{BaseRepo: BaseRepo{db: db}}
}

// sampleRow is the persisted layout. utc_offset keeps the offset the
// client sent, since TIMESTAMPTZ normalizes everything to UTC.
type sampleRow struct {
	ID        int64           `db:"id"`
	Name      string          `db:"name"`
	Timestamp dbTime          `db:"timestamp"`
	UTCOffset int             `db:"utc_offset"`
	V0        sql.NullFloat64 `db:"v0"`
	V1        sql.NullFloat64 `db:"v1"`
}

func (row sampleRow) toModel() *models.Sample {
	return &models.Sample{
		ID: row.ID,
		SampleBase: models.SampleBase{
			Name:      row.Name,
			Timestamp: restoreOffset(row.Timestamp.Time, row.UTCOffset),
			V0:        nullableFloat(row.V0),
			V1:        nullableFloat(row.V1),
		},
	}
}

// Create inserts the sample and copies back what the database stored,
// so callers see the same id and timestamp precision a later Get returns.
func (r *SampleRepo) Create(ctx context.Context, sample *models.Sample) error {
	query := r.db.Rebind(`
		INSERT INTO samples (name, timestamp, utc_offset, v0, v1)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, timestamp, utc_offset`)

	_, offset := sample.Timestamp.Zone()

	tx, err := r.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback() // no-op after commit

	var (
		id           int64
		stored       dbTime
		storedOffset int
	)
	err = tx.QueryRowxContext(ctx, query,
		sample.Name, sample.Timestamp.UTC(), offset, toNullFloat(sample.V0), toNullFloat(sample.V1),
	).Scan(&id, &stored, &storedOffset)
	if err != nil {
		return errors.NewDatabaseError("failed to create sample", err)
	}

	if err := r.Commit(tx); err != nil {
		return err
	}

	sample.ID = id
	sample.Timestamp = restoreOffset(stored.Time, storedOffset)
	nuts.L.Debugf("[SampleRepo] Created sample %d (%s)", id, sample.Name)
	return nil
}

func (r *SampleRepo) Get(ctx context.Context, id int64) (*models.Sample, error) {
	var row sampleRow
	query := r.db.Rebind(`SELECT ` + sampleColumns + ` FROM samples WHERE id = ?`)

	err := r.db.GetDB().GetContext(ctx, &row, query, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, repository.SampleNotFound(id)
		}
		return nil, errors.NewDatabaseError("failed to get sample", err)
	}
	return row.toModel(), nil
}

func (r *SampleRepo) List(ctx context.Context) ([]*models.Sample, error) {
	rows := []sampleRow{}
	query := `SELECT ` + sampleColumns + ` FROM samples ORDER BY id ASC`

	if err := r.db.GetDB().SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.NewDatabaseError("failed to list samples", err)
	}

	samples := make([]*models.Sample, 0, len(rows))
	for _, row := range rows {
		samples = append(samples, row.toModel())
	}
	return samples, nil
}

// dbTime scans timestamps from either driver: lib/pq hands back time.Time,
// sqlite hands back time.Time or text depending on the declared column type.
type dbTime struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

func (t *dbTime) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		t.Time = v
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case nil:
		return fmt.Errorf("timestamp is NULL")
	default:
		return fmt.Errorf("cannot scan %T into timestamp", value)
	}
}

func (t *dbTime) parse(s string) error {
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

func restoreOffset(t time.Time, offset int) time.Time {
	if offset == 0 {
		return t.UTC()
	}
	return t.In(time.FixedZone("", offset))
}

func toNullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
