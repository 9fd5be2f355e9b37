package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/chiuwenyu/singlephase/internal/calc/singlephase"
	"github.com/chiuwenyu/singlephase/internal/format"
)

var ErrNotFound = errors.New("not found")

type Users interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetBylogin(ctx context.Context, login string) (int, string, error)
}

type Calculations interface {
	SaveCalculation(ctx context.Context, userID int, in singlephase.Input, res singlephase.Result) (string, error)
	ListCalculations(ctx context.Context, userID, limit int) ([]Calculation, error)
	GetCalculation(ctx context.Context, userID int, id uuid.UUID) (Calculation, error)
}

type Calculation struct {
	ID        uuid.UUID          `json:"id"`
	UserID    int                `json:"user_id"`
	CreatedAt time.Time          `json:"created_at"`
	Input     singlephase.Input  `json:"input"`
	Result    singlephase.Result `json:"result"`
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id       SERIAL PRIMARY KEY,
	login    TEXT UNIQUE NOT NULL,
	email    TEXT NOT NULL,
	password TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS calculations (
	id           UUID PRIMARY KEY,
	user_id      INTEGER NOT NULL REFERENCES users(id),
	created_at   TIMESTAMPTZ NOT NULL,
	name         TEXT NOT NULL DEFAULT '',
	w_kg_h       DOUBLE PRECISION NOT NULL,
	rho_kg_m3    DOUBLE PRECISION NOT NULL,
	mu_pa_s      DOUBLE PRECISION NOT NULL,
	id_m         DOUBLE PRECISION NOT NULL,
	roughness_m  DOUBLE PRECISION NOT NULL,
	sf           DOUBLE PRECISION NOT NULL,
	velocity_m_s DOUBLE PRECISION NOT NULL,
	reynolds     DOUBLE PRECISION NOT NULL,
	fdarcy       DOUBLE PRECISION NOT NULL,
	dp100        DOUBLE PRECISION NOT NULL,
	vh           DOUBLE PRECISION NOT NULL,
	regime       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS calculations_user_created ON calculations (user_id, created_at DESC);
`

type PostgresRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db, now: time.Now}
}

// Open connects to PostgreSQL and checks the connection.
func Open(ctx context.Context, connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", normalizeDSN(connStr))
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

// normalizeDSN fills in a local default and requires TLS unless the DSN
// sets sslmode itself.
func normalizeDSN(connStr string) string {
	if connStr == "" {
		return "user=postgres dbname=postgres password=password sslmode=disable"
	}
	if strings.Contains(connStr, "sslmode=") {
		return connStr
	}
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		if strings.Contains(connStr, "?") {
			return connStr + "&sslmode=require"
		}
		return connStr + "?sslmode=require"
	}
	return connStr + " sslmode=require"
}

func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

// GetBylogin returns id 0 and no error when the login does not exist.
func (r *PostgresRepository) GetBylogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresRepository) SaveCalculation(ctx context.Context, userID int, in singlephase.Input, res singlephase.Result) (string, error) {
	id := uuid.New()
	query := `INSERT INTO calculations
		(id, user_id, created_at, name, w_kg_h, rho_kg_m3, mu_pa_s, id_m, roughness_m, sf,
		 velocity_m_s, reynolds, fdarcy, dp100, vh, regime)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.db.ExecContext(ctx, query,
		id, userID, r.now().UTC(), in.Name, in.FlowKgH, in.DensityKgM3, res.ViscosityPaS, res.IDM, res.RoughnessM, res.SafetyFactor,
		res.VelocityMS, res.Reynolds, res.FrictionFactor, res.PressureDrop100, res.VelocityHead, string(res.Regime))
	if err != nil {
		return "", fmt.Errorf("save calculation: %w", err)
	}
	return id.String(), nil
}

const selectCalculation = `SELECT id, user_id, created_at, name, w_kg_h, rho_kg_m3, mu_pa_s, id_m, roughness_m, sf,
	velocity_m_s, reynolds, fdarcy, dp100, vh, regime FROM calculations`

type scanner interface {
	Scan(dest ...any) error
}

func scanCalculation(s scanner) (Calculation, error) {
	var c Calculation
	var regime string
	err := s.Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.Input.Name,
		&c.Input.FlowKgH, &c.Input.DensityKgM3, &c.Input.ViscosityPaS, &c.Input.IDM, &c.Input.RoughnessM, &c.Input.SafetyFactor,
		&c.Result.VelocityMS, &c.Result.Reynolds, &c.Result.FrictionFactor, &c.Result.PressureDrop100, &c.Result.VelocityHead, &regime)
	if err != nil {
		return Calculation{}, err
	}
	c.Result.Name = c.Input.Name
	c.Result.IDM = c.Input.IDM
	c.Result.RoughnessM = c.Input.RoughnessM
	c.Result.ViscosityPaS = c.Input.ViscosityPaS
	c.Result.SafetyFactor = c.Input.SafetyFactor
	c.Result.Regime = singlephase.Regime(regime)
	c.Result.ReynoldsSci = format.Sci(c.Result.Reynolds, 10, 4, 3)
	return c, nil
}

func (r *PostgresRepository) ListCalculations(ctx context.Context, userID, limit int) ([]Calculation, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, selectCalculation+" WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2", userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list calculations: %w", err)
	}
	defer rows.Close()

	out := []Calculation{}
	for rows.Next() {
		c, err := scanCalculation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan calculation: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetCalculation(ctx context.Context, userID int, id uuid.UUID) (Calculation, error) {
	row := r.db.QueryRowContext(ctx, selectCalculation+" WHERE user_id=$1 AND id=$2", userID, id)
	c, err := scanCalculation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Calculation{}, ErrNotFound
	}
	if err != nil {
		return Calculation{}, fmt.Errorf("get calculation: %w", err)
	}
	return c, nil
}
