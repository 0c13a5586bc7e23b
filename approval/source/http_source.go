package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	ow_errors "github.com/dev-mohitbeniwal/offerwall/errors"
	logger "github.com/dev-mohitbeniwal/offerwall/logging"
	"github.com/dev-mohitbeniwal/offerwall/model"
	"github.com/dev-mohitbeniwal/offerwall/util"
)

const maxResponseBytes = 4 << 20

// HTTPSource fetches the actor's placements from the platform REST backend.
type HTTPSource struct {
	baseURL   string
	client    *http.Client
	validator *util.ValidationUtil
}

func NewHTTPSource(baseURL string, timeout time.Duration, validator *util.ValidationUtil) *HTTPSource {
	return &HTTPSource{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{Timeout: timeout},
		validator: validator,
	}
}

type placementsResponse struct {
	User *struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Role     string `json:"role"`
	} `json:"user,omitempty"`
	Placements []model.PlacementRecord `json:"placements"`
}

// FetchPlacements performs GET {baseURL}/placements with the session's bearer
// token. When the backend echoes the user, its role supersedes the session's.
func (s *HTTPSource) FetchPlacements(ctx context.Context, actor model.ActorContext, token string) (model.ActorContext, []model.PlacementRecord, error) {
	url := s.baseURL + "/placements"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return actor, nil, fmt.Errorf("%w: building request: %v", ow_errors.ErrNetworkFailure, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Warn("Placement request failed", zap.String("url", url), zap.Error(err))
		return actor, nil, fmt.Errorf("%w: %v", ow_errors.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		logger.Warn("Backend rejected session credentials", zap.Int("statusCode", resp.StatusCode))
		return actor, nil, fmt.Errorf("%w: backend returned %d", ow_errors.ErrAuthorizationFailure, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		logger.Warn("Received non-OK HTTP status from placements endpoint", zap.Int("statusCode", resp.StatusCode))
		return actor, nil, fmt.Errorf("%w: backend returned %d", ow_errors.ErrNetworkFailure, resp.StatusCode)
	}

	var body placementsResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		return actor, nil, fmt.Errorf("%w: decoding placements: %v", ow_errors.ErrNetworkFailure, err)
	}

	if body.User != nil {
		if body.User.ID != "" {
			actor.UserID = body.User.ID
		}
		if body.User.Username != "" {
			actor.Username = body.User.Username
		}
		if body.User.Role != "" {
			actor.Role = model.ParseRole(body.User.Role)
		}
	}

	records := make([]model.PlacementRecord, 0, len(body.Placements))
	for _, record := range body.Placements {
		if err := s.validator.ValidatePlacement(record); err != nil {
			logger.Warn("Skipping invalid placement record", zap.Error(err))
			continue
		}
		records = append(records, record)
	}
	return actor, records, nil
}
