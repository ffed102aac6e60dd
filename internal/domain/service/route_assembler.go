package service

import (
	"VoiceNav-App/internal/domain/helper"
	"VoiceNav-App/internal/domain/model"
	"time"

	"github.com/google/uuid"
)

// StopPlan は組み立て前の停車地1件分の情報
type StopPlan struct {
	Place       *model.PlaceCandidate
	DetourCostM float64
	Status      model.DetourStatus
	Order       int
}

// RouteAssembler は確定した訪問順と経路情報から案内用の Route を組み立てる
type RouteAssembler interface {
	Build(origin, destination model.LatLng, stops []StopPlan, directions *model.DirectionsResult, budget model.DetourBudget) *model.Route
}

type routeAssembler struct{}

func NewRouteAssembler() RouteAssembler {
	return &routeAssembler{}
}

// Build はレグの累積距離からマイル標を計算し、経由地リストと合わせて Route を生成する。
// レグ情報が欠けている区間のマイル標は直前の値を引き継ぐ
func (a *routeAssembler) Build(origin, destination model.LatLng, stops []StopPlan, directions *model.DirectionsResult, budget model.DetourBudget) *model.Route {
	routeStops := make([]model.RouteStop, 0, len(stops))
	cumulativeM := 0.0
	for i, plan := range stops {
		if directions != nil && i < len(directions.Legs) {
			cumulativeM += directions.Legs[i].DistanceM
		}
		routeStops = append(routeStops, model.RouteStop{
			ID:          plan.Place.PlaceID,
			Name:        plan.Place.Name,
			Address:     plan.Place.Address,
			Location:    plan.Place.Location,
			MileMarker:  helper.MetersToMiles(cumulativeM),
			DetourCostM: plan.DetourCostM,
			Status:      plan.Status,
			Order:       plan.Order,
		})
	}

	waypoints := make([]model.Waypoint, 0, len(stops)+2)
	waypoints = append(waypoints, model.Waypoint{
		Type:     model.WaypointTypeOrigin,
		Location: origin,
	})
	for _, stop := range routeStops {
		waypoints = append(waypoints, model.Waypoint{
			Type:     model.WaypointTypeStop,
			Name:     stop.Name,
			Location: stop.Location,
		})
	}
	waypoints = append(waypoints, model.Waypoint{
		Type:     model.WaypointTypeDestination,
		Location: destination,
	})

	route := &model.Route{
		ID:           "temp_route_" + uuid.New().String(),
		Origin:       origin,
		Destination:  destination,
		Stops:        routeStops,
		Waypoints:    waypoints,
		DetourBudget: budget,
		CreatedAt:    time.Now(),
	}
	if directions != nil {
		route.Legs = directions.Legs
		route.TotalDistanceMi = helper.MetersToMiles(directions.TotalDistanceM)
		route.TotalTimeMin = directions.TotalDurationMin
		route.Polyline = directions.Polyline
	}
	return route
}
