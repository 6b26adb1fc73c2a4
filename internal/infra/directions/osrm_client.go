// Package directions resolves planned delivery routes through an external
// OSRM-compatible HTTP service.
package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"rutero/config"
	"rutero/internal/domain/service"

	"github.com/pkg/errors"
)

const defaultRequestTimeout = 10 * time.Second

type osrmClient struct {
	baseURL    string
	profile    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewOSRMClient creates a DirectionsService backed by an OSRM-compatible
// routing server.
func NewOSRMClient(cfg *config.DirectionsConfig, logger *slog.Logger) (service.DirectionsService, error) {
	if cfg == nil || cfg.BaseURL == "" {
		return nil, errors.New("directions base URL is required")
	}

	profile := cfg.Profile
	if profile == "" {
		profile = "driving"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &osrmClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		profile: profile,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}, nil
}

// osrmRouteResponse mirrors the subset of the OSRM route response we consume.
type osrmRouteResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// Route asks the routing server for one route visiting the waypoints in
// order, starting from the origin.
func (c *osrmClient) Route(ctx context.Context, origin service.Coordinate, waypoints []service.Coordinate) (*service.PlannedRoute, error) {
	if len(waypoints) == 0 {
		return nil, errors.New("at least one waypoint is required")
	}

	coords := make([]string, 0, len(waypoints)+1)
	coords = append(coords, formatCoordinate(origin))
	for _, wp := range waypoints {
		coords = append(coords, formatCoordinate(wp))
	}

	requestURL := fmt.Sprintf("%s/route/v1/%s/%s?overview=full&geometries=geojson",
		c.baseURL, c.profile, strings.Join(coords, ";"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build directions request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to call directions service")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("directions service returned status %d", resp.StatusCode)
	}

	var routeResp osrmRouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&routeResp); err != nil {
		return nil, errors.Wrap(err, "failed to decode directions response")
	}

	if routeResp.Code != "Ok" || len(routeResp.Routes) == 0 {
		return nil, errors.Errorf("directions service returned no route: %s", routeResp.Code)
	}

	best := routeResp.Routes[0]
	points := make([]service.Coordinate, 0, len(best.Geometry.Coordinates))
	for _, pair := range best.Geometry.Coordinates {
		if len(pair) < 2 {
			continue
		}
		points = append(points, service.Coordinate{Lon: pair[0], Lat: pair[1]})
	}

	c.logger.Debug("Planned route resolved",
		slog.Int("waypoints", len(waypoints)),
		slog.Int("points", len(points)),
		slog.Float64("distance_m", best.Distance),
	)

	return &service.PlannedRoute{
		Points:   points,
		Distance: best.Distance,
		Duration: time.Duration(best.Duration * float64(time.Second)),
	}, nil
}

func formatCoordinate(c service.Coordinate) string {
	return fmt.Sprintf("%f,%f", c.Lon, c.Lat)
}
