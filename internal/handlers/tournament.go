// Package handlers contains HTTP route handler functions for the Lychee Cup API.
// This file handles the /api/tournament routes.
//
// Every mutating handler follows the same path: load the stored document, apply one pure
// operation from the tournament package, save the result, push it to live subscribers and
// return it. Validation failures from the tournament package become 400 responses and leave the
// stored document untouched; storage failures become 500 responses.
//
// Each exported function follows the "handler factory" pattern: it takes the shared *Deps and
// returns a fiber.Handler, so nothing depends on package-level globals.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/trentd187/lychee-cup/internal/live"
	"github.com/trentd187/lychee-cup/internal/metrics"
	"github.com/trentd187/lychee-cup/internal/store"
	"github.com/trentd187/lychee-cup/internal/tournament"
	"github.com/trentd187/lychee-cup/internal/workers"
)

// Deps are the collaborators the tournament handlers share.
type Deps struct {
	Tournaments *store.Tournaments
	Reducer     *tournament.Reducer
	Hub         *live.Hub
	Metrics     *metrics.Metrics
	Log         *slog.Logger

	// Sync, when set, is told about every state this process publishes so the background
	// sync does not send it a second time.
	Sync *workers.StateSync
}

// RegisterPlayerRequest is the JSON body of POST /api/tournament/players.
type RegisterPlayerRequest struct {
	Name string `json:"name"`
}

// RecordMatchRequest is the JSON body of POST /api/tournament/matches.
type RecordMatchRequest struct {
	Results []tournament.ResultInput `json:"results"`
}

// replaceRequest mirrors tournament.State with pointer slices so a missing "players" or
// "matches" key can be told apart from an empty array.
type replaceRequest struct {
	Players       *[]tournament.Player `json:"players"`
	Matches       *[]tournament.Match  `json:"matches"`
	IsFinished    bool                 `json:"isFinished"`
	ChampionCount int                  `json:"championCount"`
}

// GetTournament handles GET /api/tournament.
// A tournament that has never been saved is returned as the empty state.
func GetTournament(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := d.Tournaments.Load(c.UserContext())
		if err != nil {
			d.Log.Error("load tournament", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to get tournament data",
			})
		}
		return c.JSON(s)
	}
}

// GetLeaderboard handles GET /api/tournament/leaderboard.
func GetLeaderboard(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := d.Tournaments.Load(c.UserContext())
		if err != nil {
			d.Log.Error("load tournament", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to get tournament data",
			})
		}
		return c.JSON(fiber.Map{
			"standings":     tournament.Standings(s.Players),
			"isFinished":    s.IsFinished,
			"championCount": s.ChampionCount,
		})
	}
}

// GetScoringTable handles GET /api/tournament/scoring: points per rank and the thresholds the
// front end shows next to the rank picker.
func GetScoringTable(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"points":               tournament.ScoringTable(),
		"eliminationThreshold": tournament.EliminationThreshold,
		"maxChampions":         tournament.MaxChampions,
		"maxPlayersPerMatch":   tournament.MaxRank,
	})
}

// RegisterPlayer handles POST /api/tournament/players.
func RegisterPlayer(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req RegisterPlayerRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}

		s, err := d.Tournaments.Update(c.UserContext(), func(s tournament.State) (tournament.State, error) {
			return d.Reducer.Register(s, req.Name)
		})
		if err != nil {
			return d.fail(c, "register", err)
		}
		d.succeed("register", s)

		added := s.Players[len(s.Players)-1]
		d.Log.Info("player registered", "player_id", added.ID, "name", added.Name, "players", len(s.Players))
		return c.Status(fiber.StatusCreated).JSON(s)
	}
}

// RecordMatch handles POST /api/tournament/matches.
func RecordMatch(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req RecordMatchRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}

		var before tournament.State
		s, err := d.Tournaments.Update(c.UserContext(), func(s tournament.State) (tournament.State, error) {
			before = s
			return d.Reducer.RecordMatch(s, req.Results)
		})
		if err != nil {
			return d.fail(c, "record_match", err)
		}
		d.succeed("record_match", s)

		match := s.Matches[len(s.Matches)-1]
		d.Log.Info("match recorded", "match_id", match.ID, "players", len(match.Results), "matches", len(s.Matches))
		if s.ChampionCount > before.ChampionCount {
			d.Log.Info("new champion crowned", "champions", s.ChampionCount)
		}
		if s.IsFinished && !before.IsFinished {
			d.Log.Info("tournament finished", "champions", s.ChampionCount)
		}
		return c.Status(fiber.StatusCreated).JSON(s)
	}
}

// DeleteMatch handles DELETE /api/tournament/matches/:id.
// Deleting an id that is not in the ledger succeeds and returns the unchanged standings.
func DeleteMatch(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		matchID := c.Params("id")

		s, err := d.Tournaments.Update(c.UserContext(), func(s tournament.State) (tournament.State, error) {
			return tournament.DeleteMatch(s, matchID), nil
		})
		if err != nil {
			return d.fail(c, "delete_match", err)
		}
		d.succeed("delete_match", s)

		d.Log.Info("match deleted", "match_id", matchID, "matches", len(s.Matches))
		return c.JSON(s)
	}
}

// ReplaceTournament handles POST /api/tournament: the whole document is overwritten.
// The body must carry "players" and "matches" arrays; derived fields are recomputed.
func ReplaceTournament(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req replaceRequest
		if err := json.Unmarshal(c.Body(), &req); err != nil || req.Players == nil || req.Matches == nil {
			d.Metrics.Count("replace", metrics.OutcomeRejected)
			return badRequest(c, "Invalid data format")
		}

		doc := tournament.State{
			Players:       *req.Players,
			Matches:       *req.Matches,
			IsFinished:    req.IsFinished,
			ChampionCount: req.ChampionCount,
		}
		s, err := d.Tournaments.Replace(c.UserContext(), doc)
		if err != nil {
			return d.fail(c, "replace", err)
		}

		d.succeed("replace", s)
		d.Log.Info("tournament replaced", "players", len(s.Players), "matches", len(s.Matches))
		return c.JSON(s)
	}
}

// ResetTournament handles DELETE /api/tournament: the stored document is removed and every
// subscriber receives the empty state.
func ResetTournament(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := d.Tournaments.Reset(c.UserContext()); err != nil {
			return d.fail(c, "reset", err)
		}

		d.succeed("reset", tournament.Empty())
		d.Log.Warn("tournament reset", "key", d.Tournaments.Key())
		return c.JSON(fiber.Map{"success": true})
	}
}

// succeed records the outcome of op and pushes s to live subscribers.
func (d *Deps) succeed(op string, s tournament.State) {
	d.Metrics.Count(op, metrics.OutcomeOK)
	d.Metrics.Observe(s)
	d.Publish(s)
}

// fail writes the error response for err: 400 for validation failures, 500 otherwise.
func (d *Deps) fail(c *fiber.Ctx, op string, err error) error {
	if isValidation(err) {
		d.Metrics.Count(op, metrics.OutcomeRejected)
		d.Log.Debug("operation rejected", "operation", op, "reason", err)
		return badRequest(c, err.Error())
	}
	d.Metrics.Count(op, metrics.OutcomeError)
	d.Log.Error("operation failed", "operation", op, "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Failed to save tournament data",
	})
}

// Publish sends s to every live subscriber of the tournament.
func (d *Deps) Publish(s tournament.State) {
	payload, err := encodeState(s)
	if err != nil {
		d.Log.Error("encode tournament for broadcast", "error", err)
		return
	}
	d.Hub.Broadcast(d.Tournaments.Key(), payload)
	if d.Sync != nil {
		d.Sync.Mark(payload)
	}
}

func encodeState(s tournament.State) ([]byte, error) {
	return json.Marshal(s)
}

func isValidation(err error) bool {
	for _, target := range []error{
		tournament.ErrDuplicatePlayer,
		tournament.ErrInvalidName,
		tournament.ErrTournamentFinished,
		tournament.ErrInvalidRankSet,
		tournament.ErrUnknownPlayer,
		tournament.ErrDuplicateResult,
		tournament.ErrInvalidState,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
