package websocket

// Event actions.
const (
	ActionPlantingOrdered    = "planting_ordered"
	ActionPlantingsConfirmed = "plantings_confirmed"
)

// Message defines the structure for websocket messages.
type Message struct {
	Action  string `json:"action"`
	Payload any    `json:"payload"`
}

// PlantingsConfirmed is the payload of ActionPlantingsConfirmed.
type PlantingsConfirmed struct {
	Confirmed int `json:"confirmed"`
}
