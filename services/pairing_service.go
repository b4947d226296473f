package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tilerack/scrabble-system/live"
	"github.com/tilerack/scrabble-system/models"
	"github.com/tilerack/scrabble-system/pairing"
	"github.com/tilerack/scrabble-system/repositories"
	"golang.org/x/sync/errgroup"
)

// RoundView is the payload returned after generating a round and pushed to
// websocket subscribers of the tournament room.
type RoundView struct {
	Round    int                         `json:"round"`
	BatchID  string                      `json:"batch_id"`
	Pairings []models.Pairing            `json:"pairings"`
	Matchups []models.TeamMatchupSummary `json:"team_matchups,omitempty"`
}

type SubmitResultInput struct {
	Score1 int `json:"score1"`
	Score2 int `json:"score2"`
}

type PairingService interface {
	GenerateRound(ctx context.Context, tournamentID, currentUserID int) (*RoundView, error)
	VoidCurrentRound(ctx context.Context, tournamentID, currentUserID int) error
	ListPairings(ctx context.Context, tournamentID int, round *int) ([]*models.Pairing, error)
	SubmitResult(ctx context.Context, tournamentID, pairingID, currentUserID int, input SubmitResultInput) (*models.Result, error)
}

type pairingService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	pairingRepo    repositories.PairingRepository
	resultRepo     repositories.ResultRepository
	standings      StandingsService
	hub            *live.Hub
	clinch         pairing.ClinchConfig
	logger         *slog.Logger
}

func NewPairingService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	pairingRepo repositories.PairingRepository,
	resultRepo repositories.ResultRepository,
	standings StandingsService,
	hub *live.Hub,
	clinch pairing.ClinchConfig,
	logger *slog.Logger,
) PairingService {
	return &pairingService{
		db:             db,
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		pairingRepo:    pairingRepo,
		resultRepo:     resultRepo,
		standings:      standings,
		hub:            hub,
		clinch:         clinch,
		logger:         logger,
	}
}

// GenerateRound pairs the next round of the tournament. Every pairing row
// plus the current-round bump is written in one transaction keyed by a fresh
// batch id, so a failed generation leaves no partial round behind and a
// voided round can be removed by batch.
func (s *pairingService) GenerateRound(ctx context.Context, tournamentID, currentUserID int) (*RoundView, error) {
	tournament, err := s.authorizeDirector(ctx, tournamentID, currentUserID)
	if err != nil {
		return nil, err
	}
	if tournament.Status != models.StatusActive {
		return nil, ErrTournamentNotActive
	}
	if tournament.Format == models.FormatManual {
		return nil, ErrManualFormatNoGenerate
	}

	nextRound := tournament.CurrentRound + 1
	if nextRound > tournament.TotalRounds {
		return nil, ErrAllRoundsCompleted
	}

	players, previous, results, err := s.loadRoundInput(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return nil, ErrNoPlayersRegistered
	}
	for _, p := range previous {
		if p.Round == nextRound {
			return nil, ErrRoundAlreadyPaired
		}
	}

	view := &RoundView{Round: nextRound, BatchID: uuid.NewString()}

	if tournament.Format == models.FormatTeamRoundRobin {
		teamRound, err := pairing.GenerateTeamRoundRobin(players, nextRound, previous)
		if err != nil {
			return nil, mapTeamScheduleError(err)
		}
		view.Pairings = teamRound.Pairings
		view.Matchups = teamRound.Matchups
	} else {
		pairings, err := pairing.GeneratePairings(pairing.GenerateInput{
			Players:        players,
			Results:        results,
			Previous:       previous,
			Format:         tournament.Format,
			AvoidRematches: tournament.AvoidRematches,
			CurrentRound:   nextRound,
			TotalRounds:    tournament.TotalRounds,
			Clinch:         s.clinch,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
		}
		view.Pairings = pairings
	}

	for i := range view.Pairings {
		view.Pairings[i].TournamentID = tournamentID
		view.Pairings[i].BatchID = view.BatchID
	}

	if err := s.persistRound(ctx, tournamentID, nextRound, view.Pairings); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "round paired",
		slog.Int("tournament_id", tournamentID),
		slog.Int("round", nextRound),
		slog.String("format", string(tournament.Format)),
		slog.Int("tables", len(view.Pairings)),
	)
	s.hub.BroadcastToRoom(live.RoomID(tournamentID), live.EventPairingsPosted, view)
	return view, nil
}

func (s *pairingService) persistRound(ctx context.Context, tournamentID, round int, pairings []models.Pairing) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for i := range pairings {
		if err = s.pairingRepo.Create(ctx, tx, &pairings[i]); err != nil {
			return mapPairingRepoError(err)
		}
	}
	if err = s.tournamentRepo.UpdateCurrentRound(ctx, tx, tournamentID, round); err != nil {
		return mapTournamentRepoError(err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit round: %w", err)
	}
	return nil
}

// VoidCurrentRound discards the most recent round in its entirety. Results
// already recorded against the voided pairings are removed by the database
// cascade; regenerating the round produces a fresh batch.
func (s *pairingService) VoidCurrentRound(ctx context.Context, tournamentID, currentUserID int) error {
	tournament, err := s.authorizeDirector(ctx, tournamentID, currentUserID)
	if err != nil {
		return err
	}
	if tournament.CurrentRound == 0 {
		return ErrPairingNotFound
	}

	round := tournament.CurrentRound
	current, err := s.pairingRepo.ListByTournament(ctx, tournamentID, &round)
	if err != nil {
		return err
	}
	if len(current) == 0 {
		return ErrPairingNotFound
	}
	batchID := current[0].BatchID

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	deleted, err := s.pairingRepo.DeleteBatch(ctx, tx, tournamentID, batchID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		err = ErrPairingNotFound
		return err
	}
	if err = s.tournamentRepo.UpdateCurrentRound(ctx, tx, tournamentID, round-1); err != nil {
		return mapTournamentRepoError(err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit round void: %w", err)
	}

	s.logger.InfoContext(ctx, "round voided",
		slog.Int("tournament_id", tournamentID),
		slog.Int("round", round),
		slog.String("batch_id", batchID),
		slog.Int("pairings_deleted", deleted),
	)
	s.hub.BroadcastToRoom(live.RoomID(tournamentID), live.EventPairingsVoided, map[string]interface{}{
		"round":    round,
		"batch_id": batchID,
	})
	return nil
}

func (s *pairingService) ListPairings(ctx context.Context, tournamentID int, round *int) ([]*models.Pairing, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, mapTournamentRepoError(err)
	}
	pairings, err := s.pairingRepo.ListByTournament(ctx, tournamentID, round)
	if err != nil {
		return nil, err
	}
	s.populatePlayers(ctx, tournamentID, pairings)
	return pairings, nil
}

// SubmitResult records or corrects the score for one table. The winner is
// derived from the scores, never taken from the caller.
func (s *pairingService) SubmitResult(ctx context.Context, tournamentID, pairingID, currentUserID int, input SubmitResultInput) (*models.Result, error) {
	if _, err := s.authorizeDirector(ctx, tournamentID, currentUserID); err != nil {
		return nil, err
	}

	p, err := s.pairingRepo.GetByID(ctx, pairingID)
	if err != nil {
		return nil, mapPairingRepoError(err)
	}
	if p.TournamentID != tournamentID {
		return nil, ErrPairingNotFound
	}
	if p.HasBye() {
		return nil, ErrScoreEntryForBye
	}
	if input.Score1 < 0 || input.Score2 < 0 {
		return nil, fmt.Errorf("%w: scores must be non-negative", ErrValidationFailed)
	}

	result := &models.Result{
		TournamentID: tournamentID,
		PairingID:    pairingID,
		Score1:       input.Score1,
		Score2:       input.Score2,
		WinnerID:     models.DeriveWinner(p, input.Score1, input.Score2),
	}
	if err := s.resultRepo.Upsert(ctx, result); err != nil {
		if errors.Is(err, repositories.ErrResultPairingInvalid) {
			return nil, ErrPairingNotFound
		}
		return nil, err
	}
	result.Pairing = p

	s.hub.BroadcastToRoom(live.RoomID(tournamentID), live.EventResultRecorded, result)
	s.broadcastStandings(ctx, tournamentID)
	return result, nil
}

// broadcastStandings pushes recomputed standings to the tournament room.
// Failures here never fail the result submission itself.
func (s *pairingService) broadcastStandings(ctx context.Context, tournamentID int) {
	standings, err := s.standings.PlayerStandings(ctx, tournamentID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to recompute standings for broadcast",
			slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return
	}
	s.hub.BroadcastToRoom(live.RoomID(tournamentID), live.EventStandingsUpdate, standings)
}

func (s *pairingService) loadRoundInput(ctx context.Context, tournamentID int) ([]models.Player, []models.Pairing, []models.Result, error) {
	var (
		players  []models.Player
		previous []models.Pairing
		results  []models.Result
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.playerRepo.ListByTournament(gCtx, tournamentID)
		if err != nil {
			return err
		}
		players = dereferencePlayers(list)
		return nil
	})
	g.Go(func() error {
		list, err := s.pairingRepo.ListByTournament(gCtx, tournamentID, nil)
		if err != nil {
			return err
		}
		previous = dereferencePairings(list)
		return nil
	})
	g.Go(func() error {
		list, err := s.resultRepo.ListByTournament(gCtx, tournamentID)
		if err != nil {
			return err
		}
		results = dereferenceResults(list)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return players, previous, results, nil
}

// populatePlayers attaches player records to pairings for display. Best
// effort: a lookup failure leaves the links empty rather than failing the
// listing.
func (s *pairingService) populatePlayers(ctx context.Context, tournamentID int, pairings []*models.Pairing) {
	if len(pairings) == 0 {
		return
	}
	players, err := s.playerRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to populate pairing players",
			slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return
	}
	byID := make(map[int]*models.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	for _, p := range pairings {
		p.Player1 = byID[p.Player1ID]
		p.Player2 = byID[p.Player2ID]
	}
}

func (s *pairingService) authorizeDirector(ctx context.Context, tournamentID, currentUserID int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, mapTournamentRepoError(err)
	}
	if tournament.DirectorID != currentUserID {
		return nil, ErrDirectorOnly
	}
	return tournament, nil
}

func mapPairingRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrPairingNotFound):
		return ErrPairingNotFound
	case errors.Is(err, repositories.ErrPairingTournamentInvalid):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrPairingTableConflict):
		return ErrRoundAlreadyPaired
	}
	return err
}

func mapTeamScheduleError(err error) error {
	switch {
	case errors.Is(err, pairing.ErrInsufficientTeams):
		return ErrInsufficientTeams
	case errors.Is(err, pairing.ErrScheduleExhausted):
		return ErrTeamScheduleExhausted
	}
	return err
}
