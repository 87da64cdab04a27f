package processor

import (
	"errors"
	"regexp"

	"checkers/internal/board"
	"checkers/internal/core"
	"checkers/internal/game"
	"checkers/internal/server/service"

	"github.com/rs/zerolog/log"
)

// Layout strings only ever contain piece letters, run digits and row separators
var layoutPattern = regexp.MustCompile(`^[rbRB1-8/]+$`)

// Processor turns commands into service calls and service results into API
// responses
type Processor struct {
	svc *service.Service
}

func New(svc *service.Service) *Processor {
	return &Processor{svc: svc}
}

func (p *Processor) Execute(cmd Command) ProcessorResponse {
	switch cmd.Type {
	case CmdCreateGame:
		return p.handleCreateGame(cmd)
	case CmdGetGame:
		return p.handleGetGame(cmd)
	case CmdSelectCell:
		return p.handleSelectCell(cmd)
	case CmdEndTurn:
		return p.handleAction(cmd.GameID, p.svc.EndTurn)
	case CmdResetGame:
		return p.handleAction(cmd.GameID, p.svc.ResetGame)
	case CmdDeleteGame:
		return p.handleDeleteGame(cmd)
	case CmdGetBoard:
		return p.handleGetBoard(cmd)
	default:
		return p.errorResponse("unknown command", core.ErrInvalidRequest)
	}
}

func (p *Processor) handleCreateGame(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.CreateGameRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	if args.Layout != "" && !layoutPattern.MatchString(args.Layout) {
		return p.errorResponse("invalid layout", core.ErrInvalidLayout)
	}

	toMove := core.PlayerNone
	if args.Turn != "" {
		var ok bool
		if toMove, ok = core.ParsePlayer(args.Turn); !ok {
			return p.errorResponse("invalid turn", core.ErrInvalidRequest)
		}
	}

	gameID, token, view, err := p.svc.CreateGame(args.Layout, toMove)
	if err != nil {
		if errors.Is(err, service.ErrTooManyGames) {
			return p.errorResponse("game limit reached, try again later", core.ErrResourceLimit)
		}
		if errors.Is(err, board.ErrInvalidLayout) {
			return p.errorResponseWithDetails("invalid layout", core.ErrInvalidLayout, err.Error())
		}
		log.Error().Err(err).Msg("create game failed")
		return p.errorResponse("failed to create game", core.ErrInternalError)
	}

	log.Info().Str("game", gameID).Msg("game created")

	resp := view.Response(gameID)
	resp.Token = token
	return ProcessorResponse{Success: true, Data: resp}
}

func (p *Processor) handleGetGame(cmd Command) ProcessorResponse {
	view, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.serviceError(err)
	}
	return ProcessorResponse{Success: true, Data: view.Response(cmd.GameID)}
}

func (p *Processor) handleSelectCell(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.SelectRequest)
	if !ok || args.Row == nil || args.Col == nil {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	pos := board.Pos(*args.Row, *args.Col)
	if !pos.Valid() {
		return p.errorResponse("square is off the board", core.ErrInvalidSquare)
	}

	return p.handleAction(cmd.GameID, func(gameID string) (service.Result, error) {
		return p.svc.SelectCell(gameID, pos)
	})
}

// handleAction runs one engine action. Rejected interactions are not errors:
// they succeed with changed=false and no events.
func (p *Processor) handleAction(gameID string, action func(string) (service.Result, error)) ProcessorResponse {
	res, err := action(gameID)
	if err != nil {
		return p.serviceError(err)
	}

	events := make([]core.EventInfo, 0, len(res.Events))
	for _, ev := range res.Events {
		events = append(events, ev.Info())
		if ev.Kind == game.EventPlayerWon {
			log.Info().Str("game", gameID).Str("winner", ev.Player.String()).Msg("game won")
		}
	}

	return ProcessorResponse{
		Success: true,
		Data: core.ActionResponse{
			Changed: res.Changed(),
			Events:  events,
			Game:    res.View.Response(gameID),
		},
	}
}

func (p *Processor) handleDeleteGame(cmd Command) ProcessorResponse {
	if err := p.svc.DeleteGame(cmd.GameID); err != nil {
		return p.serviceError(err)
	}
	log.Info().Str("game", cmd.GameID).Msg("game deleted")
	return ProcessorResponse{Success: true}
}

func (p *Processor) handleGetBoard(cmd Command) ProcessorResponse {
	layout, ascii, err := p.svc.GetBoard(cmd.GameID)
	if err != nil {
		return p.serviceError(err)
	}
	return ProcessorResponse{
		Success: true,
		Data: core.BoardResponse{
			Layout: layout,
			Board:  ascii,
		},
	}
}

// serviceError maps service failures to API error codes
func (p *Processor) serviceError(err error) ProcessorResponse {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return p.errorResponse("game not found", core.ErrGameNotFound)
	case errors.Is(err, service.ErrGameOver):
		return p.errorResponse("game is over, reset to play again", core.ErrGameOver)
	default:
		log.Error().Err(err).Msg("service call failed")
		return p.errorResponse("internal error", core.ErrInternalError)
	}
}

// errorResponse creates error response
func (p *Processor) errorResponse(message, code string) ProcessorResponse {
	return ProcessorResponse{
		Success: false,
		Error: &core.ErrorResponse{
			Error: message,
			Code:  code,
		},
	}
}

func (p *Processor) errorResponseWithDetails(message, code, details string) ProcessorResponse {
	resp := p.errorResponse(message, code)
	resp.Error.Details = details
	return resp
}
