// internal/game/utils.go
package game

// eventPayload flattens an Event into the free-form payload stored with a journal record.
// Empty optional fields are left out.
func eventPayload(ev Event) map[string]interface{} {
	payload := map[string]interface{}{"message": ev.Message}
	if ev.Player != "" {
		payload["player"] = ev.Player
	}
	if ev.Points != 0 {
		payload["points"] = ev.Points
	}
	if ev.Card != "" {
		payload["card"] = ev.Card
	}
	return payload
}
