package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/tilerack/scrabble-system/models"
)

var (
	ErrPairingNotFound          = errors.New("pairing not found")
	ErrPairingTournamentInvalid = errors.New("pairing references an unknown tournament")
	ErrPairingTableConflict     = errors.New("table number already assigned in this round")
)

type PairingRepository interface {
	Create(ctx context.Context, exec SQLExecutor, pairing *models.Pairing) error
	GetByID(ctx context.Context, id int) (*models.Pairing, error)
	ListByTournament(ctx context.Context, tournamentID int, round *int) ([]*models.Pairing, error)
	DeleteBatch(ctx context.Context, exec SQLExecutor, tournamentID int, batchID string) (int, error)
}

type postgresPairingRepository struct {
	db *sql.DB
}

func NewPostgresPairingRepository(db *sql.DB) PairingRepository {
	return &postgresPairingRepository{db: db}
}

func (r *postgresPairingRepository) Create(ctx context.Context, exec SQLExecutor, p *models.Pairing) error {
	query := `
		INSERT INTO pairings
			(tournament_id, round, batch_id, table_number, player1_id, player2_id,
			 first_move_player_id, player1_clinched, player2_clinched)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := exec.QueryRowContext(ctx, query,
		p.TournamentID,
		p.Round,
		p.BatchID,
		p.TableNumber,
		p.Player1ID,
		p.Player2ID,
		p.FirstMovePlayerID,
		p.Player1Clinched,
		p.Player2Clinched,
	).Scan(&p.ID, &p.CreatedAt)

	return r.handlePairingError(err)
}

func (r *postgresPairingRepository) GetByID(ctx context.Context, id int) (*models.Pairing, error) {
	query := `
		SELECT id, tournament_id, round, batch_id, table_number, player1_id, player2_id,
		       first_move_player_id, player1_clinched, player2_clinched, created_at
		FROM pairings
		WHERE id = $1`

	p := &models.Pairing{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.TournamentID,
		&p.Round,
		&p.BatchID,
		&p.TableNumber,
		&p.Player1ID,
		&p.Player2ID,
		&p.FirstMovePlayerID,
		&p.Player1Clinched,
		&p.Player2Clinched,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPairingNotFound
		}
		return nil, fmt.Errorf("failed to scan pairing by id %d: %w", id, err)
	}
	return p, nil
}

func (r *postgresPairingRepository) ListByTournament(ctx context.Context, tournamentID int, round *int) ([]*models.Pairing, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, tournament_id, round, batch_id, table_number, player1_id, player2_id,
		       first_move_player_id, player1_clinched, player2_clinched, created_at
		FROM pairings
		WHERE tournament_id = $1`)

	args := []interface{}{tournamentID}
	if round != nil {
		queryBuilder.WriteString(" AND round = $")
		queryBuilder.WriteString(strconv.Itoa(len(args) + 1))
		args = append(args, *round)
	}
	queryBuilder.WriteString(" ORDER BY round ASC, table_number ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pairings for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	pairings := make([]*models.Pairing, 0)
	for rows.Next() {
		var p models.Pairing
		if scanErr := rows.Scan(
			&p.ID,
			&p.TournamentID,
			&p.Round,
			&p.BatchID,
			&p.TableNumber,
			&p.Player1ID,
			&p.Player2ID,
			&p.FirstMovePlayerID,
			&p.Player1Clinched,
			&p.Player2Clinched,
			&p.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan pairing row: %w", scanErr)
		}
		pairings = append(pairings, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during pairing rows iteration: %w", err)
	}
	return pairings, nil
}

func (r *postgresPairingRepository) DeleteBatch(ctx context.Context, exec SQLExecutor, tournamentID int, batchID string) (int, error) {
	query := `DELETE FROM pairings WHERE tournament_id = $1 AND batch_id = $2`
	result, err := exec.ExecContext(ctx, query, tournamentID, batchID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete pairing batch %s: %w", batchID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return int(affected), nil
}

func (r *postgresPairingRepository) handlePairingError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Constraint {
		case "pairings_tournament_id_fkey":
			return ErrPairingTournamentInvalid
		case "pairings_tournament_round_table_key":
			return ErrPairingTableConflict
		}
	}
	return err
}
