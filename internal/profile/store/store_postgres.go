package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"benefitscout/internal/eligibility"
	"benefitscout/internal/profile/models"
	id "benefitscout/pkg/domain"
	"benefitscout/pkg/platform/sentinel"
	txcontext "benefitscout/pkg/platform/tx"
)

// PostgresStore persists profiles in the household_profiles table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const profileColumns = `user_id, current_income, household_size, age, has_disability, is_veteran,
	is_pregnant, number_of_children, marital_status, monthly_rent, monthly_utilities, assets,
	total_work_years, veteran_service_years, employment_status, state, onboarding_completed,
	created_at, updated_at`

func (s *PostgresStore) FindByUserID(ctx context.Context, userID id.UserID) (*models.Profile, error) {
	return s.find(ctx, `SELECT `+profileColumns+` FROM household_profiles WHERE user_id = $1`, userID)
}

// Execute runs mutate and saves its result in one transaction. A transaction
// scoped advisory lock on the user id serialises writers, including the first
// write when no row exists yet for FOR UPDATE to lock.
func (s *PostgresStore) Execute(ctx context.Context, userID id.UserID, mutate func(current *models.Profile) (*models.Profile, error)) (*models.Profile, error) {
	var saved *models.Profile
	err := txcontext.RunInTx(ctx, s.db, func(ctx context.Context) error {
		if _, err := s.execer(ctx).ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, userID.String()); err != nil {
			return fmt.Errorf("lock profile: %w", err)
		}

		current, err := s.find(ctx, `SELECT `+profileColumns+` FROM household_profiles WHERE user_id = $1 FOR UPDATE`, userID)
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			current = nil
		case err != nil:
			return err
		}

		next, err := mutate(current)
		if err != nil {
			return err
		}
		if err := s.Save(ctx, next); err != nil {
			return err
		}
		saved = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *PostgresStore) find(ctx context.Context, query string, userID id.UserID) (*models.Profile, error) {
	row := s.execer(ctx).QueryRowContext(ctx, query, userID.String())

	var (
		p       models.Profile
		rawID   string
		marital string
		employ  string
	)
	err := row.Scan(&rawID, &p.CurrentIncome, &p.HouseholdSize, &p.Age, &p.HasDisability, &p.IsVeteran,
		&p.IsPregnant, &p.NumberOfChildren, &marital, &p.MonthlyRent, &p.MonthlyUtilities, &p.Assets,
		&p.TotalWorkYears, &p.VeteranServiceYears, &employ, &p.State, &p.OnboardingCompleted,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find profile by user id: %w", err)
	}
	parsed, err := id.ParseUserID(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse stored user id: %w", err)
	}
	p.UserID = parsed
	p.MaritalStatus = eligibility.MaritalStatus(marital)
	p.EmploymentStatus = models.EmploymentStatus(employ)
	return &p, nil
}

// Save upserts the profile. created_at is only written on insert.
func (s *PostgresStore) Save(ctx context.Context, p *models.Profile) error {
	query := `INSERT INTO household_profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (user_id) DO UPDATE SET
			current_income = EXCLUDED.current_income,
			household_size = EXCLUDED.household_size,
			age = EXCLUDED.age,
			has_disability = EXCLUDED.has_disability,
			is_veteran = EXCLUDED.is_veteran,
			is_pregnant = EXCLUDED.is_pregnant,
			number_of_children = EXCLUDED.number_of_children,
			marital_status = EXCLUDED.marital_status,
			monthly_rent = EXCLUDED.monthly_rent,
			monthly_utilities = EXCLUDED.monthly_utilities,
			assets = EXCLUDED.assets,
			total_work_years = EXCLUDED.total_work_years,
			veteran_service_years = EXCLUDED.veteran_service_years,
			employment_status = EXCLUDED.employment_status,
			state = EXCLUDED.state,
			onboarding_completed = EXCLUDED.onboarding_completed,
			updated_at = EXCLUDED.updated_at
		RETURNING created_at`
	err := s.execer(ctx).QueryRowContext(ctx, query,
		p.UserID.String(), p.CurrentIncome, p.HouseholdSize, p.Age, p.HasDisability, p.IsVeteran,
		p.IsPregnant, p.NumberOfChildren, string(p.MaritalStatus), p.MonthlyRent, p.MonthlyUtilities, p.Assets,
		p.TotalWorkYears, p.VeteranServiceYears, string(p.EmploymentStatus), p.State, p.OnboardingCompleted,
		p.CreatedAt, p.UpdatedAt,
	).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, userID id.UserID) error {
	res, err := s.execer(ctx).ExecContext(ctx, `DELETE FROM household_profiles WHERE user_id = $1`, userID.String())
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete profile rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
