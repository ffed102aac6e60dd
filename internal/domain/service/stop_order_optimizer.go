package service

import (
	"VoiceNav-App/internal/domain/helper"
	"VoiceNav-App/internal/domain/model"
)

// 順序シーケンスの端点ラベル
const (
	sequenceOrigin      = "origin"
	sequenceDestination = "destination"
)

// OptimizeStopOrder は貪欲な最近傍法で停車地の訪問順を決める。
// 現在地から最も近い未訪問の停車地を選び続け、最後に目的地へ向かう。
// 大域最適なTSP解ではないが、停車地は高々数件なので O(n²) で十分
func OptimizeStopOrder(start, end model.LatLng, stops []*model.PlaceCandidate) *model.OptimizedOrder {
	sequence := []string{sequenceOrigin}
	ordered := make([]*model.PlaceCandidate, 0, len(stops))
	var legs []model.OrderLeg
	totalDistance := 0.0

	remaining := make([]*model.PlaceCandidate, len(stops))
	copy(remaining, stops)

	current := start
	currentID := sequenceOrigin
	for len(remaining) > 0 {
		bestIdx := 0
		bestDist := helper.HaversineDistanceM(current, remaining[0].Location)
		for i := 1; i < len(remaining); i++ {
			if d := helper.HaversineDistanceM(current, remaining[i].Location); d < bestDist {
				bestDist = d
				bestIdx = i
			}
		}

		next := remaining[bestIdx]
		legs = append(legs, model.OrderLeg{
			FromID:    currentID,
			ToID:      next.PlaceID,
			DistanceM: bestDist,
		})
		totalDistance += bestDist
		sequence = append(sequence, next.PlaceID)
		ordered = append(ordered, next)

		current = next.Location
		currentID = next.PlaceID
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	finalLeg := helper.HaversineDistanceM(current, end)
	legs = append(legs, model.OrderLeg{
		FromID:    currentID,
		ToID:      sequenceDestination,
		DistanceM: finalLeg,
	})
	totalDistance += finalLeg
	sequence = append(sequence, sequenceDestination)

	return &model.OptimizedOrder{
		Sequence:       sequence,
		OrderedStops:   ordered,
		Legs:           legs,
		TotalDistanceM: totalDistance,
	}
}
