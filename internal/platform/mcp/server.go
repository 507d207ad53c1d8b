// Package mcp exposes 2048 games as Model Context Protocol tools, so an
// agent can start games, inspect boards and play moves.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/session"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// ScoreSource lists recorded games. *storage.Store implements it.
type ScoreSource interface {
	TopScores(limit int) ([]storage.GameResult, error)
}

// Server registers the 2048 tools on an MCP server.
type Server struct {
	games  *session.Manager
	scores ScoreSource
	mcp    *server.MCPServer
}

// NewServer creates the tool server. scores may be nil, in which case the
// high_scores tool is not offered.
func NewServer(games *session.Manager, scores ScoreSource) *Server {
	s := &Server{games: games, scores: scores}
	s.mcp = server.NewMCPServer(
		"2048",
		Version,
		server.WithToolCapabilities(true),
		server.WithInstructions(`2048 - MCP Interface

Slide numbered tiles on a square board. Equal tiles that collide merge into
their sum, and the sum is added to the score. Every move that changes the
board spawns a 2 or a 4 on an empty cell. The game ends when no move changes
the board.

Start with new_game, then call move or bulk_move with the returned game_id.
A move that changes nothing is not counted and spawns nothing.`),
	)
	s.registerTools()
	return s
}

// MCPServer returns the underlying server for transports.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// ServeStdio serves the tools over stdin/stdout until the input closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

var directionNames = []string{"up", "down", "left", "right"}

func gameIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Game ID returned by new_game",
	}
}

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Start a new game and return its ID and board",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleNewGame)

	s.mcp.AddTool(mcp.Tool{
		Name:        "list_games",
		Description: "List games held by the server, most recently played first",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListGames)

	s.mcp.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the board, score and status of a game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": gameIDProperty(),
			},
			Required: []string{"game_id"},
		},
	}, s.handleGameState)

	s.mcp.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Slide all tiles in one direction",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": gameIDProperty(),
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        directionNames,
					"description": "Direction to slide",
				},
			},
			Required: []string{"game_id", "direction"},
		},
	}, s.handleMove)

	s.mcp.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: "Play several moves in order, stopping early if the game ends",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": gameIDProperty(),
				"moves": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
						"enum": directionNames,
					},
					"description": "Directions to play",
				},
			},
			Required: []string{"game_id", "moves"},
		},
	}, s.handleBulkMove)

	if s.scores != nil {
		s.mcp.AddTool(mcp.Tool{
			Name:        "high_scores",
			Description: "List the best finished games",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"limit": map[string]interface{}{
						"type":        "number",
						"description": "Number of games to list (default 10, max 100)",
					},
				},
			},
		}, s.handleHighScores)
	}
}

// arguments returns the tool call arguments as a map.
func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	return args
}

func (s *Server) handleNewGame(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := s.games.Create()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("New game started.\n\n" + FormatState(st)), nil
}

func (s *Server) handleListGames(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	games := s.games.List()
	if len(games) == 0 {
		return mcp.NewToolResultText("No games. Call new_game to start one."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d game(s):\n", len(games))
	for _, g := range games {
		status := "playing"
		if g.GameOver {
			status = "over"
		}
		fmt.Fprintf(&b, "- %s  score=%d moves=%d max=%d %s\n", g.ID, g.Score, g.Moves, g.MaxTile, status)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleGameState(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, _ := arguments(request)["game_id"].(string)
	st, err := s.games.Get(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(FormatState(st)), nil
}

func (s *Server) handleMove(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	id, _ := args["game_id"].(string)
	name, _ := args["direction"].(string)

	dir, err := t2048.ParseDirection(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := s.games.Move(id, dir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatMove(out) + "\n\n" + FormatState(out.State)), nil
}

func (s *Server) handleBulkMove(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	id, _ := args["game_id"].(string)
	raw, _ := args["moves"].([]interface{})

	dirs := make([]t2048.Direction, 0, len(raw))
	for _, m := range raw {
		name, _ := m.(string)
		dir, err := t2048.ParseDirection(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dirs = append(dirs, dir)
	}
	if len(dirs) == 0 {
		return mcp.NewToolResultError("moves must not be empty"), nil
	}

	var b strings.Builder
	var last session.MoveOutcome
	for i, dir := range dirs {
		out, err := s.games.Move(id, dir)
		if errors.Is(err, session.ErrGameOver) {
			fmt.Fprintf(&b, "%d. %s: game is over, stopping\n", i+1, dir)
			break
		}
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, formatMove(out))
		last = out
	}

	if last.ID == "" {
		st, err := s.games.Get(id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		last.State = st
	}
	b.WriteString("\n")
	b.WriteString(FormatState(last.State))
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleHighScores(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := 10
	if n, ok := arguments(request)["limit"].(float64); ok && n > 0 {
		limit = int(min(n, storage.MaxTopScores))
	}

	results, err := s.scores.TopScores(limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("No finished games recorded yet."), nil
	}

	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "#%d  score=%d max=%d moves=%d board=%dx%d\n",
			i+1, r.Score, r.MaxTile, r.Moves, r.BoardSize, r.BoardSize)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// formatMove summarises one move result on a single line.
func formatMove(out session.MoveOutcome) string {
	if !out.Moved {
		return out.Direction + ": nothing moved"
	}
	line := fmt.Sprintf("%s: +%d", out.Direction, out.Gained)
	if out.Spawned != nil {
		line += fmt.Sprintf(", spawned %d at row %d col %d", out.Spawned.Value, out.Spawned.Pos.Row, out.Spawned.Pos.Col)
	}
	if out.GameOver {
		line += ", GAME OVER"
	}
	return line
}

// FormatState renders a game as a text grid with a status line.
// Empty cells are shown as dots.
func FormatState(st session.State) string {
	width := len(strconv.Itoa(st.MaxTile))

	var b strings.Builder
	fmt.Fprintf(&b, "Game %s\n", st.ID)
	fmt.Fprintf(&b, "Score: %d  Moves: %d  Max: %d\n\n", st.Score, st.Moves, st.MaxTile)
	for _, row := range st.Board {
		cells := make([]string, len(row))
		for i, v := range row {
			cell := "."
			if v != 0 {
				cell = strconv.Itoa(v)
			}
			cells[i] = fmt.Sprintf("%*s", width, cell)
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteByte('\n')
	}
	if st.GameOver {
		b.WriteString("\nGAME OVER: no move changes the board.\n")
	}
	return b.String()
}
