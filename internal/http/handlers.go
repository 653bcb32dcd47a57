package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"

	"github.com/gaara-aza/saimon/internal/draft"
	"github.com/gaara-aza/saimon/internal/pubsub"
	"github.com/gaara-aza/saimon/internal/roster"
)

// respondJSON writes v as a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response to JSON", "error", err)
	}
}

// respondMessage writes a simple {"message": ...} JSON body.
func respondMessage(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"message": msg})
}

// respondError maps domain errors to HTTP status codes and writes a JSON
// {"error": ...} body. Unknown errors become a 500 without leaking details.
func respondError(w http.ResponseWriter, err error) {
	var (
		validationErr *roster.ValidationError
		notFoundErr   *roster.NotFoundError
		conflictErr   *roster.ConflictError
	)
	status := http.StatusInternalServerError
	msg := "internal server error"

	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
		msg = validationErr.Error()
	case errors.As(err, &notFoundErr):
		status = http.StatusNotFound
		msg = notFoundErr.Error()
	case errors.As(err, &conflictErr):
		status = http.StatusConflict
		msg = conflictErr.Error()
	default:
		log.Error("Unhandled error in request", "error", err)
	}

	respondJSON(w, status, map[string]string{"error": msg})
}

// pathID parses a path parameter as an id, returning a ValidationError for
// non-numeric values so the error mapping stays uniform.
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &roster.ValidationError{Reason: fmt.Sprintf("invalid %s: %q", name, raw)}
	}
	return id, nil
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Store.ListPlayers()
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, players)
	}
}

func (s *Server) CreatePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, &roster.ValidationError{Reason: "invalid JSON body"})
			return
		}

		player, err := s.Store.CreatePlayer(req.Name)
		if err != nil {
			respondError(w, err)
			return
		}

		s.Metrics.IncPlayersCreated()
		log.Info("Registered player", "id", player.ID, "name", player.Name)
		respondJSON(w, http.StatusCreated, player)
	}
}

func (s *Server) GetPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			respondError(w, err)
			return
		}

		player, err := s.Store.GetPlayer(id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, player)
	}
}

func (s *Server) DeletePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			respondError(w, err)
			return
		}

		if err := s.Store.DeletePlayer(id); err != nil {
			respondError(w, err)
			return
		}

		log.Info("Deleted player", "id", id)
		respondMessage(w, http.StatusOK, "Player deleted")
	}
}

func (s *Server) ListTeamsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := s.Store.ListTeams()
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, teams)
	}
}

func (s *Server) RandomizeTeamsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isDryRun := isDryRunFromContext(r)

		teams, err := s.Engine.Randomize()
		if err != nil {
			respondError(w, err)
			return
		}
		s.Metrics.IncRandomizeRuns()

		// Fan out the announcement; a publish failure never fails the draw.
		if !isDryRun {
			event := draft.AssignmentEvent{Teams: teams}
			if err := s.pubsub.SendMessage(pubsub.EventNotifyAssignment, event); err != nil {
				log.Error("Failed to publish assignment event", "error", err)
			}
		} else {
			log.Info("[Dry Run] Would publish assignment event", "teams", len(teams))
		}

		respondJSON(w, http.StatusOK, teams)
	}
}

func (s *Server) MatchResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isDryRun := isDryRunFromContext(r)

		var req struct {
			WinningTeamID int64 `json:"winningTeamId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, &roster.ValidationError{Reason: "invalid JSON body"})
			return
		}

		if err := s.Engine.RecordResult(req.WinningTeamID); err != nil {
			respondError(w, err)
			return
		}
		s.Metrics.IncMatchResultsRecorded()
		log.Info("Recorded match result", "winningTeamID", req.WinningTeamID)

		if !isDryRun {
			if winner, err := s.findTeam(req.WinningTeamID); err != nil {
				log.Error("Failed to load winning team for event", "error", err)
			} else {
				event := draft.ResultEvent{WinningTeam: *winner, WinPoints: draft.WinPoints}
				if err := s.pubsub.SendMessage(pubsub.EventNotifyResult, event); err != nil {
					log.Error("Failed to publish result event", "error", err)
				}
			}
		} else {
			log.Info("[Dry Run] Would publish result event", "winningTeamID", req.WinningTeamID)
		}

		respondMessage(w, http.StatusOK, "Result recorded")
	}
}

func (s *Server) findTeam(teamID int64) (*roster.Team, error) {
	teams, err := s.Store.ListTeams()
	if err != nil {
		return nil, err
	}
	for i := range teams {
		if teams[i].ID == teamID {
			return &teams[i], nil
		}
	}
	return nil, &roster.NotFoundError{Entity: "team", ID: teamID}
}

func (s *Server) SetCaptainHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID, err := pathID(r, "teamId")
		if err != nil {
			respondError(w, err)
			return
		}

		var req struct {
			CaptainID *int64 `json:"captainId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, &roster.ValidationError{Reason: "invalid JSON body"})
			return
		}

		if err := s.Store.SetCaptain(teamID, req.CaptainID); err != nil {
			respondError(w, err)
			return
		}

		log.Info("Updated captain", "teamID", teamID, "captainID", req.CaptainID)
		respondMessage(w, http.StatusOK, "Captain updated")
	}
}

func (s *Server) AddTeamPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID, err := pathID(r, "teamId")
		if err != nil {
			respondError(w, err)
			return
		}

		var req struct {
			PlayerID int64 `json:"playerId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, &roster.ValidationError{Reason: "invalid JSON body"})
			return
		}

		if err := s.Engine.AddToTeam(req.PlayerID, teamID); err != nil {
			respondError(w, err)
			return
		}

		log.Info("Added player to team", "teamID", teamID, "playerID", req.PlayerID)
		respondMessage(w, http.StatusOK, "Player added to team")
	}
}

func (s *Server) RemoveTeamPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID, err := pathID(r, "teamId")
		if err != nil {
			respondError(w, err)
			return
		}
		playerID, err := pathID(r, "playerId")
		if err != nil {
			respondError(w, err)
			return
		}

		if err := s.Engine.RemoveFromTeam(playerID, teamID); err != nil {
			respondError(w, err)
			return
		}

		log.Info("Removed player from team", "teamID", teamID, "playerID", playerID)
		respondMessage(w, http.StatusOK, "Player removed from team")
	}
}

func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Store.Standings()
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, players)
	}
}

// decodePushEnvelope unwraps a Pub/Sub push delivery: the outer JSON wrapper
// carries a base64-encoded MessagePack payload in message.data.
func decodePushEnvelope(r *http.Request) ([]byte, error) {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	log.Debug("Received push message", "body", string(bodyBytes))

	var pubsubMsg struct {
		Subscription string `json:"subscription"`
		Message      struct {
			Data string `json:"data"` // base64-encoded message payload
		} `json:"message"`
	}
	if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wrapper JSON: %w", err)
	}

	rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 data: %w", err)
	}
	return rawData, nil
}

func (s *Server) NotifyAssignmentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawData, err := decodePushEnvelope(r)
		if err != nil {
			log.Error("Failed to decode push envelope", "error", err)
			http.Error(w, "Invalid push message", http.StatusBadRequest)
			return
		}

		isDryRun := isDryRunFromContext(r)
		event := draft.AssignmentEvent{}
		if err := s.pubsub.ProcessMessage(rawData, &event); err != nil {
			log.Error("Failed to decode assignment event", "error", err)
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}

		if err := s.Notifier.SendAssignmentNotification(event.Teams, isDryRun); err != nil {
			log.Error("Failed to notify assignment", "error", err)
			http.Error(w, "Failed to notify assignment", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) NotifyResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawData, err := decodePushEnvelope(r)
		if err != nil {
			log.Error("Failed to decode push envelope", "error", err)
			http.Error(w, "Invalid push message", http.StatusBadRequest)
			return
		}

		isDryRun := isDryRunFromContext(r)
		event := draft.ResultEvent{}
		if err := s.pubsub.ProcessMessage(rawData, &event); err != nil {
			log.Error("Failed to decode result event", "error", err)
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}

		if err := s.Notifier.SendResultNotification(event.WinningTeam, event.WinPoints, isDryRun); err != nil {
			log.Error("Failed to notify result", "error", err)
			http.Error(w, "Failed to notify result", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// StandingsCommandHandler returns a handler for the /standings Slack command.
func (s *Server) StandingsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Store.Standings()
		if err != nil {
			http.Error(w, "Failed to get standings", http.StatusInternalServerError)
			log.Error("Failed to get standings from store", "error", err)
			return
		}

		msg, err := s.Notifier.FormatStandingsResponse(players)
		if err != nil {
			http.Error(w, "Failed to format standings", http.StatusInternalServerError)
			log.Error("Failed to format standings", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}

		respondWithSlackMsg(w, slackMsg)
	}
}
