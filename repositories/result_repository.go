package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/tilerack/scrabble-system/models"
)

var (
	ErrResultNotFound       = errors.New("result not found")
	ErrResultPairingInvalid = errors.New("result references an unknown pairing")
)

type ResultRepository interface {
	Upsert(ctx context.Context, result *models.Result) error
	GetByPairing(ctx context.Context, pairingID int) (*models.Result, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Result, error)
	Delete(ctx context.Context, id int) error
}

type postgresResultRepository struct {
	db *sql.DB
}

func NewPostgresResultRepository(db *sql.DB) ResultRepository {
	return &postgresResultRepository{db: db}
}

// Upsert writes the score for a pairing, replacing any previously entered
// score. Corrections by the director are routine during a live round.
func (r *postgresResultRepository) Upsert(ctx context.Context, result *models.Result) error {
	query := `
		INSERT INTO results (tournament_id, pairing_id, score1, score2, winner_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (pairing_id) DO UPDATE
		SET score1 = EXCLUDED.score1, score2 = EXCLUDED.score2, winner_id = EXCLUDED.winner_id
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		result.TournamentID,
		result.PairingID,
		result.Score1,
		result.Score2,
		result.WinnerID,
	).Scan(&result.ID, &result.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Constraint == "results_pairing_id_fkey" {
			return ErrResultPairingInvalid
		}
		return fmt.Errorf("failed to upsert result for pairing %d: %w", result.PairingID, err)
	}
	return nil
}

func (r *postgresResultRepository) GetByPairing(ctx context.Context, pairingID int) (*models.Result, error) {
	query := `
		SELECT id, tournament_id, pairing_id, score1, score2, winner_id, created_at
		FROM results
		WHERE pairing_id = $1`

	result := &models.Result{}
	err := r.db.QueryRowContext(ctx, query, pairingID).Scan(
		&result.ID,
		&result.TournamentID,
		&result.PairingID,
		&result.Score1,
		&result.Score2,
		&result.WinnerID,
		&result.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to scan result for pairing %d: %w", pairingID, err)
	}
	return result, nil
}

func (r *postgresResultRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Result, error) {
	query := `
		SELECT id, tournament_id, pairing_id, score1, score2, winner_id, created_at
		FROM results
		WHERE tournament_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	results := make([]*models.Result, 0)
	for rows.Next() {
		var result models.Result
		if scanErr := rows.Scan(
			&result.ID,
			&result.TournamentID,
			&result.PairingID,
			&result.Score1,
			&result.Score2,
			&result.WinnerID,
			&result.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", scanErr)
		}
		results = append(results, &result)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during result rows iteration: %w", err)
	}
	return results, nil
}

func (r *postgresResultRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM results WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrResultNotFound)
}
