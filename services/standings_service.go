package services

import (
	"context"

	"github.com/tilerack/scrabble-system/models"
	"github.com/tilerack/scrabble-system/pairing"
	"github.com/tilerack/scrabble-system/repositories"
	"golang.org/x/sync/errgroup"
)

// StandingsService projects raw results into ranked individual and team
// standings. Standings are never stored: they are recomputed from the result
// history on every request, so late score corrections are always reflected.
type StandingsService interface {
	PlayerStandings(ctx context.Context, tournamentID int) ([]models.PlayerStanding, error)
	TeamStandings(ctx context.Context, tournamentID int) ([]models.TeamStanding, error)
}

type standingsService struct {
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	pairingRepo    repositories.PairingRepository
	resultRepo     repositories.ResultRepository
	clinch         pairing.ClinchConfig
}

func NewStandingsService(
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	pairingRepo repositories.PairingRepository,
	resultRepo repositories.ResultRepository,
	clinch pairing.ClinchConfig,
) StandingsService {
	return &standingsService{
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		pairingRepo:    pairingRepo,
		resultRepo:     resultRepo,
		clinch:         clinch,
	}
}

func (s *standingsService) PlayerStandings(ctx context.Context, tournamentID int) ([]models.PlayerStanding, error) {
	tournament, players, pairings, results, err := s.loadTournamentData(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	standings := pairing.ComputeStandings(players, results, pairings)
	pairing.DetectClinches(standings, tournament.CurrentRound+1, tournament.TotalRounds, s.clinch)
	return standings, nil
}

func (s *standingsService) TeamStandings(ctx context.Context, tournamentID int) ([]models.TeamStanding, error) {
	_, players, pairings, results, err := s.loadTournamentData(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return pairing.ComputeTeamStandings(players, pairings, results), nil
}

// loadTournamentData fetches the tournament and then its players, pairings
// and results in parallel.
func (s *standingsService) loadTournamentData(ctx context.Context, tournamentID int) (*models.Tournament, []models.Player, []models.Pairing, []models.Result, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, nil, nil, nil, mapTournamentRepoError(err)
	}

	var (
		players  []models.Player
		pairings []models.Pairing
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
		pairings = dereferencePairings(list)
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
		return nil, nil, nil, nil, err
	}
	return tournament, players, pairings, results, nil
}

func dereferencePlayers(slice []*models.Player) []models.Player {
	result := make([]models.Player, 0, len(slice))
	for _, ptr := range slice {
		if ptr != nil {
			result = append(result, *ptr)
		}
	}
	return result
}

func dereferencePairings(slice []*models.Pairing) []models.Pairing {
	result := make([]models.Pairing, 0, len(slice))
	for _, ptr := range slice {
		if ptr != nil {
			result = append(result, *ptr)
		}
	}
	return result
}

func dereferenceResults(slice []*models.Result) []models.Result {
	result := make([]models.Result, 0, len(slice))
	for _, ptr := range slice {
		if ptr != nil {
			result = append(result, *ptr)
		}
	}
	return result
}
