package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/tennis-players/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	query := r.URL.Query()
	result, err := h.playerService.ListPlayers(ctx, usecase.ListPlayersInput{
		Page:     queryInt(query.Get("page")),
		PerPage:  queryInt(query.Get("per_page")),
		LastName: query.Get("search_name_last"),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerListItemDTO, 0, len(result.Players))
	for _, row := range result.Players {
		items = append(items, playerSummaryToDTO(row))
	}

	writeSuccess(ctx, w, http.StatusOK, "players retrieved", map[string]any{
		"players":       items,
		"total_players": result.Total,
		"page":          result.Page,
		"per_page":      result.PerPage,
		"pages":         result.Pages,
	})
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := r.PathValue("playerID")
	item, err := h.playerService.GetPlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "player retrieved", map[string]any{
		"player": playerToDTO(item),
	})
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	var req playerRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	fields, err := req.fields()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.CreatePlayer(ctx, usecase.CreatePlayerInput{
		ID:     req.PlayerID.Value,
		Fields: fields,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "player_id", req.PlayerID.Value, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, "player created", map[string]any{
		"player": playerToDTO(item),
	})
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	var req playerRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if req.PlayerID.Set && strings.TrimSpace(req.PlayerID.Value) != playerID {
		writeError(ctx, w, fmt.Errorf("%w: player id mismatch between path and payload", usecase.ErrInvalidInput))
		return
	}
	fields, err := req.fields()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.UpdatePlayer(ctx, usecase.UpdatePlayerInput{
		ID:     playerID,
		Fields: fields,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "player updated", map[string]any{
		"player": playerToDTO(item),
	})
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	playerID := r.PathValue("playerID")
	if err := h.playerService.DeletePlayer(ctx, playerID); err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "player deleted", nil)
}

func (h *Handler) ListPlayerRankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerRankings")
	defer span.End()

	playerID := r.PathValue("playerID")
	items, err := h.playerService.ListRankings(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "list player rankings failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]rankingDTO, 0, len(items))
	for _, item := range items {
		out = append(out, rankingToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, "rankings retrieved", map[string]any{
		"rankings": out,
	})
}

// queryInt is lenient: a missing or malformed value is 0 and the service
// falls back to its defaults.
func queryInt(raw string) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return v
}
