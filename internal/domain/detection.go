package domain

// RackDetection is the per-rack output of the external inference model.
// ClassCoverage percentages are relative to the rack's visible area.
type RackDetection struct {
	RackID               string  `json:"rack_id"`
	Item                 string  `json:"item"`
	EmptyPercentage      float64 `json:"empty_percentage"`
	DisorderedPercentage float64 `json:"disordered_percentage"`
}

// DetectionReport is what the inference collaborator returns for a single
// shelf image. The model is opaque to this service; the report is consumed
// as-is by the alert pipeline.
type DetectionReport struct {
	ShelfNumber     string          `json:"shelf_number"`
	EmptyPercentage float64         `json:"empty_percentage"`
	ItemsDetected   []string        `json:"items_detected"`
	Racks           []RackDetection `json:"racks"`
}
