package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"clientsapi/internal/models"
)

const clientsSchema = `
        CREATE TABLE IF NOT EXISTS clients (
                seq     BIGSERIAL,
                id      INTEGER PRIMARY KEY,
                name    TEXT NOT NULL,
                email   TEXT NOT NULL,
                gender  TEXT NOT NULL,
                phone   TEXT NOT NULL,
                enabled BOOLEAN NOT NULL DEFAULT FALSE
        )
`

// uniqueViolation is the postgres SQLSTATE for a primary key collision.
const uniqueViolation = "23505"

type clientPostgresRepository struct {
	db *sql.DB
}

// NewClientPostgresRepository creates the clients table if needed.
func NewClientPostgresRepository(ctx context.Context, db *sql.DB) (ClientRepository, error) {
	if _, err := db.ExecContext(ctx, clientsSchema); err != nil {
		return nil, fmt.Errorf("create clients table: %w", err)
	}
	return &clientPostgresRepository{db: db}, nil
}

func (r *clientPostgresRepository) GetByID(ctx context.Context, id int) (*models.Client, error) {
	const q = `
                SELECT id, name, email, gender, phone, enabled
                FROM clients
                WHERE id=$1
        `
	var c models.Client
	err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name, &c.Email, &c.Gender, &c.Phone, &c.Enabled)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// Create serializes id assignment with a table lock held until commit, so
// concurrent inserts never compute the same max(id)+1.
func (r *clientPostgresRepository) Create(ctx context.Context, client *models.Client) (int, error) {
	const q = `
                INSERT INTO clients (id, name, email, gender, phone, enabled)
                SELECT COALESCE(MAX(id), 0) + 1, $1::text, $2::text, $3::text, $4::text, $5::boolean FROM clients
                RETURNING id
        `
	var id int
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `LOCK TABLE clients IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return fmt.Errorf("lock clients: %w", err)
		}
		return tx.QueryRowContext(ctx, q, client.Name, client.Email, client.Gender, client.Phone, client.Enabled).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("create client: %w", err)
	}
	client.ID = id
	return id, nil
}

func (r *clientPostgresRepository) Add(ctx context.Context, client *models.Client) error {
	const q = `
                INSERT INTO clients (id, name, email, gender, phone, enabled)
                VALUES ($1, $2, $3, $4, $5, $6)
        `
	_, err := r.db.ExecContext(ctx, q, client.ID, client.Name, client.Email, client.Gender, client.Phone, client.Enabled)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("add client %d: %w", client.ID, ErrDuplicateID)
		}
		return fmt.Errorf("add client: %w", err)
	}
	return nil
}

func (r *clientPostgresRepository) Update(ctx context.Context, client *models.Client) error {
	const q = `
                UPDATE clients
                SET name=$1, email=$2, gender=$3, phone=$4, enabled=$5
                WHERE id=$6
        `
	res, err := r.db.ExecContext(ctx, q, client.Name, client.Email, client.Gender, client.Phone, client.Enabled, client.ID)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return expectOneRow(res)
}

// Modify locks the row with SELECT ... FOR UPDATE so concurrent
// modifications of the same client apply one after another.
func (r *clientPostgresRepository) Modify(ctx context.Context, id int, fn func(*models.Client)) (*models.Client, error) {
	const sel = `
                SELECT id, name, email, gender, phone, enabled
                FROM clients
                WHERE id=$1
                FOR UPDATE
        `
	const upd = `
                UPDATE clients
                SET name=$1, email=$2, gender=$3, phone=$4, enabled=$5
                WHERE id=$6
        `
	var c models.Client
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, sel, id).Scan(&c.ID, &c.Name, &c.Email, &c.Gender, &c.Phone, &c.Enabled)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("select client: %w", err)
		}
		fn(&c)
		c.ID = id
		if _, err := tx.ExecContext(ctx, upd, c.Name, c.Email, c.Gender, c.Phone, c.Enabled, c.ID); err != nil {
			return fmt.Errorf("update client: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clientPostgresRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return expectOneRow(res)
}

func (r *clientPostgresRepository) List(ctx context.Context) ([]models.Client, error) {
	const q = `
                SELECT id, name, email, gender, phone, enabled
                FROM clients
                ORDER BY seq
        `
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	res := []models.Client{}
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Gender, &c.Phone, &c.Enabled); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

func (r *clientPostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return n, nil
}

func (r *clientPostgresRepository) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
