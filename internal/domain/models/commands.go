package models

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrInvalidArguments indicates the command payload could not be parsed.
	ErrInvalidArguments = errors.New("invalid command arguments")
	// ErrUnknownCommand indicates the text is not a supported command.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrNotAnAction is returned for query commands that do not change state.
	ErrNotAnAction = errors.New("command is a query, not an action")
)

// CommandType enumerates supported text command categories.
type CommandType string

const (
	CommandName        CommandType = "name"
	CommandStart       CommandType = "start"
	CommandEnd         CommandType = "end"
	CommandSound       CommandType = "sound"
	CommandBuy         CommandType = "buy"
	CommandSellFood    CommandType = "sellfood"
	CommandFeed        CommandType = "feed"
	CommandCollect     CommandType = "collect"
	CommandSell        CommandType = "sell"
	CommandReset       CommandType = "reset"
	CommandStatus      CommandType = "status"
	CommandHelp        CommandType = "help"
	CommandLeaderboard CommandType = "leaderboard"
	CommandUnknown     CommandType = "unknown"
)

var knownCommands = map[string]CommandType{
	string(CommandName):        CommandName,
	string(CommandStart):       CommandStart,
	string(CommandEnd):         CommandEnd,
	string(CommandSound):       CommandSound,
	string(CommandBuy):         CommandBuy,
	string(CommandSellFood):    CommandSellFood,
	string(CommandFeed):        CommandFeed,
	string(CommandCollect):     CommandCollect,
	string(CommandSell):        CommandSell,
	string(CommandReset):       CommandReset,
	string(CommandStatus):      CommandStatus,
	string(CommandHelp):        CommandHelp,
	string(CommandLeaderboard): CommandLeaderboard,
}

// Command represents a parsed player instruction extracted from free text.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// ParseCommand derives a Command from a text message such as "/buy chicken meat".
// Arguments keep their original case so player names survive.
func ParseCommand(message string) Command {
	cmd := Command{Raw: message}

	tokens := strings.Fields(strings.TrimSpace(message))
	if len(tokens) == 0 {
		cmd.Type = CommandUnknown
		return cmd
	}

	head := strings.TrimPrefix(strings.ToLower(tokens[0]), "/")
	if t, ok := knownCommands[head]; ok {
		cmd.Type = t
	} else {
		cmd.Type = CommandUnknown
	}

	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}

	return cmd
}

// IsQuery reports whether the command only reads state.
func (c Command) IsQuery() bool {
	switch c.Type {
	case CommandStatus, CommandHelp, CommandLeaderboard:
		return true
	}
	return false
}

// Action resolves the command against the current state. Chickens may be referenced
// by id or by their 1-based position in the flock.
func (c Command) Action(state GameState) (Action, error) {
	switch c.Type {
	case CommandName:
		if len(c.Args) == 0 {
			return nil, ErrInvalidArguments
		}
		return SetPlayerName{Name: strings.Join(c.Args, " ")}, nil
	case CommandStart:
		return StartGame{}, nil
	case CommandEnd:
		return EndGame{}, nil
	case CommandSound:
		return ToggleSound{}, nil
	case CommandBuy:
		return c.buyAction()
	case CommandSellFood:
		if len(c.Args) != 1 {
			return nil, ErrInvalidArguments
		}
		return SellFood{FoodID: strings.ToLower(c.Args[0])}, nil
	case CommandFeed:
		if len(c.Args) != 2 {
			return nil, ErrInvalidArguments
		}
		return FeedChicken{ChickenID: resolveChicken(state, c.Args[0]), FoodID: strings.ToLower(c.Args[1])}, nil
	case CommandCollect:
		if len(c.Args) != 1 {
			return nil, ErrInvalidArguments
		}
		return CollectEgg{ChickenID: resolveChicken(state, c.Args[0])}, nil
	case CommandSell:
		return SellEggs{}, nil
	case CommandReset:
		return ResetGame{}, nil
	case CommandStatus, CommandHelp, CommandLeaderboard:
		return nil, ErrNotAnAction
	default:
		return nil, ErrUnknownCommand
	}
}

func (c Command) buyAction() (Action, error) {
	if len(c.Args) == 0 {
		return nil, ErrInvalidArguments
	}

	what := strings.ToLower(c.Args[0])
	switch what {
	case "chicken":
		if len(c.Args) != 2 {
			return nil, ErrInvalidArguments
		}
		return BuyChicken{Breed: Breed(strings.ToLower(c.Args[1]))}, nil
	case "food":
		if len(c.Args) != 2 {
			return nil, ErrInvalidArguments
		}
		return BuyFood{FoodID: strings.ToLower(c.Args[1])}, nil
	default:
		// "/buy grass" is accepted as a shorthand for "/buy food grass".
		if _, ok := LookupFood(what); ok && len(c.Args) == 1 {
			return BuyFood{FoodID: what}, nil
		}
		return nil, ErrInvalidArguments
	}
}

func resolveChicken(state GameState, ref string) string {
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(state.Chickens) {
		return state.Chickens[n-1].ID
	}
	return ref
}

// CommandRequest is the wire form of a text command sent over HTTP.
type CommandRequest struct {
	Text   string `json:"text" binding:"required"`
	Sender string `json:"sender,omitempty"`
}

// CommandReply carries the rendered answer to a text command.
type CommandReply struct {
	Command CommandType `json:"command"`
	Reply   string      `json:"reply"`
}
