package application

import "sojasapi/internal/domain/entities"

// AssembleViews groups joined event/participant rows into one view per event.
// The first row seen for an event provides its fields; user IDs are collected once each.
// Views come out in the order their event was first seen.
func AssembleViews(rows []entities.EventParticipantRow) []entities.EventView {
	views := make([]entities.EventView, 0, len(rows))
	index := make(map[int64]int, len(rows))
	seen := make(map[int64]map[int64]struct{}, len(rows))

	for _, row := range rows {
		id := row.Event.ID
		i, ok := index[id]
		if !ok {
			i = len(views)
			index[id] = i
			seen[id] = make(map[int64]struct{})
			views = append(views, entities.EventView{Event: row.Event, ParticipantIDs: []int64{}})
		}
		if row.UserID == nil {
			continue
		}
		userID := *row.UserID
		if _, dup := seen[id][userID]; dup {
			continue
		}
		seen[id][userID] = struct{}{}
		views[i].ParticipantIDs = append(views[i].ParticipantIDs, userID)
	}
	return views
}
