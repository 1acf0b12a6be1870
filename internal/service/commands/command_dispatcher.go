package commands

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/henhouse/internal/domain/models"
	"github.com/mamadbah2/henhouse/internal/service/reporting"
)

const leaderboardSize = 5

// GameService is the game surface driven by text commands.
type GameService interface {
	Dispatch(ctx context.Context, action models.Action) (models.GameState, error)
	Resolve(ctx context.Context, build func(models.GameState) (models.Action, error)) (prev, next models.GameState, err error)
	Snapshot() models.GameState
}

// LeaderboardService ranks stored sessions.
type LeaderboardService interface {
	Leaderboard(ctx context.Context, limit int) ([]models.SessionResult, error)
}

// Dispatcher executes parsed commands and renders the reply text.
type Dispatcher interface {
	HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error)
}

// Service implements the Dispatcher interface.
type Service struct {
	game        GameService
	leaderboard LeaderboardService
	logger      *zap.Logger
}

// NewService constructs a command dispatcher. leaderboard is optional.
func NewService(game GameService, leaderboard LeaderboardService, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		game:        game,
		leaderboard: leaderboard,
		logger:      logger,
	}
}

var usage = map[models.CommandType]string{
	models.CommandName:     "Usage: /name <your name>",
	models.CommandBuy:      "Usage: /buy chicken <egg|meat|fighting|bantam> or /buy food <food id>",
	models.CommandSellFood: "Usage: /sellfood <food id>",
	models.CommandFeed:     "Usage: /feed <chicken number> <food id>",
	models.CommandCollect:  "Usage: /collect <chicken number>",
}

// HelpText lists every supported command.
const HelpText = `Henhouse commands:
/name <name> - set your player name
/start - start the 10 minute game
/buy chicken <egg|meat|fighting|bantam> - 100 coins
/buy food <grass|food-good|food-great|food-premium|growth-potion|egg-potion>
/sellfood <food id> - refund one item
/feed <chicken number> <food id>
/collect <chicken number>
/sell - sell all collected eggs
/status - show your farm
/leaderboard - best results
/sound - toggle sound cues
/end - finish now
/reset - start over`

// HandleCommand runs cmd and returns the reply. sender, when set, names a player who
// starts a game without having chosen a name. Only dispatch failures are errors.
func (s *Service) HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error) {
	s.logger.Debug("dispatching command", zap.String("command", string(cmd.Type)), zap.Strings("args", cmd.Args))

	switch cmd.Type {
	case models.CommandHelp, models.CommandUnknown:
		return HelpText, nil
	case models.CommandStatus:
		return reporting.FormatStatus(s.game.Snapshot()), nil
	case models.CommandLeaderboard:
		return s.leaderboardText(ctx), nil
	}

	if cmd.Type == models.CommandStart && sender != "" && s.game.Snapshot().PlayerName == "" {
		if _, err := s.game.Dispatch(ctx, models.SetPlayerName{Name: sender}); err != nil {
			return "", fmt.Errorf("set player name: %w", err)
		}
	}

	// Chicken numbers resolve against the same state the action is applied to.
	before, after, err := s.game.Resolve(ctx, cmd.Action)
	switch {
	case isCommandError(err):
		if text, ok := usage[cmd.Type]; ok {
			return text, nil
		}
		return HelpText, nil
	case err != nil:
		return "", fmt.Errorf("dispatch %s: %w", cmd.Type, err)
	}

	if !before.GameEnded && after.GameEnded {
		return reporting.FormatSummary(models.Summarize(after, time.Now().UTC())), nil
	}

	status := reporting.FormatStatus(after)
	if reflect.DeepEqual(before, after) {
		return "That had no effect. Check your money, food stock and chicken number.\n\n" + status, nil
	}
	return status, nil
}

func isCommandError(err error) bool {
	return errors.Is(err, models.ErrInvalidArguments) ||
		errors.Is(err, models.ErrUnknownCommand) ||
		errors.Is(err, models.ErrNotAnAction)
}

func (s *Service) leaderboardText(ctx context.Context) string {
	if s.leaderboard == nil {
		return "The leaderboard is not available."
	}

	results, err := s.leaderboard.Leaderboard(ctx, leaderboardSize)
	if err != nil {
		s.logger.Error("failed loading leaderboard", zap.Error(err))
		return "The leaderboard is not available."
	}
	if len(results) == 0 {
		return "No finished games yet."
	}
	return "Leaderboard\n" + reporting.FormatLeaderboard(results)
}
