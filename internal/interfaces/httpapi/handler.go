package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/fight-ledger/internal/domain/prop"
	"github.com/riskibarqy/fight-ledger/internal/platform/logging"
	"github.com/riskibarqy/fight-ledger/internal/usecase"
)

// OddsBoard serves normalized odds boards.
type OddsBoard interface {
	EventBoard(ctx context.Context, sport, eventID string) (usecase.EventBoard, error)
	SportBoard(ctx context.Context, sport string) ([]usecase.EventBoard, error)
}

// PropBoard serves filtered, categorized props.
type PropBoard interface {
	Board(ctx context.Context, query usecase.PropBoardQuery) (usecase.PropBoard, error)
}

type Handler struct {
	oddsBoard        OddsBoard
	propBoard        PropBoard
	defaultThreshold float64
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(oddsBoard OddsBoard, propBoard PropBoard, defaultThreshold float64, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if defaultThreshold <= 0 {
		defaultThreshold = prop.DefaultThreshold
	}

	return &Handler{
		oddsBoard:        oddsBoard,
		propBoard:        propBoard,
		defaultThreshold: defaultThreshold,
		logger:           logger.Named("httpapi"),
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	_, span := startHandlerSpan(r.Context(), "Healthz")
	defer span.End()

	writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetEventOdds(w http.ResponseWriter, r *http.Request) {
	sport := r.PathValue("sport")
	eventID := r.PathValue("eventID")
	ctx, span := startHandlerSpan(r.Context(), "GetEventOdds",
		attribute.String("odds.sport", sport),
		attribute.String("odds.event_id", eventID),
	)
	defer span.End()

	board, err := h.oddsBoard.EventBoard(ctx, sport, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "get event odds failed", "sport", sport, "event_id", eventID, "error", err)
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, board)
}

func (h *Handler) ListSportOdds(w http.ResponseWriter, r *http.Request) {
	sport := r.PathValue("sport")
	ctx, span := startHandlerSpan(r.Context(), "ListSportOdds", attribute.String("odds.sport", sport))
	defer span.End()

	boards, err := h.oddsBoard.SportBoard(ctx, sport)
	if err != nil {
		h.logger.WarnContext(ctx, "list sport odds failed", "sport", sport, "error", err)
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, listResponse[usecase.EventBoard]{Items: boards, Total: len(boards)})
}

func (h *Handler) ListProps(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r.Context(), "ListProps")
	defer span.End()

	query, err := h.parsePropQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	board, err := h.propBoard.Board(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "list props failed", "sports", query.Sports, "error", err)
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, board)
}

func (h *Handler) parsePropQuery(r *http.Request) (usecase.PropBoardQuery, error) {
	values := r.URL.Query()
	query := usecase.PropBoardQuery{
		Sports:    splitCSV(values.Get("sports")),
		Threshold: h.defaultThreshold,
	}

	if raw := strings.TrimSpace(values.Get("threshold")); raw != "" {
		threshold, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return usecase.PropBoardQuery{}, fmt.Errorf("%w: threshold must be a number", usecase.ErrInvalidInput)
		}
		query.Threshold = threshold
	}

	if err := h.validator.Struct(query); err != nil {
		return usecase.PropBoardQuery{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return query, nil
}

type listResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}
