package model

// SubjectIdentity is the identity assigned to the subject property.
const SubjectIdentity = "subject"

// UnknownStructureType is the category used when a record has no structure type.
const UnknownStructureType = "Unknown"

// FeatureRecord is the cleaned numeric view of one property.
// All fields are always populated; absent raw data becomes a default.
type FeatureRecord struct {
	Identity      string  `json:"identity"`
	GLA           float64 `json:"gla"`
	Rooms         int     `json:"rooms"`
	Age           int     `json:"age"`
	StructureType string  `json:"structure_type"`
}

// ResultRow is one ranked recommendation.
type ResultRow struct {
	Rank     int          `json:"rank"`
	Identity string       `json:"id"`
	Distance float64      `json:"distance"`
	Address  string       `json:"address"`
	IsComp   bool         `json:"is_comp"`
	Details  *RawProperty `json:"property_details,omitempty"`
}

// Found reports whether the row was matched back to its source record.
func (r ResultRow) Found() bool {
	return r.Details != nil
}
