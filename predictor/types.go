package predictor

// FeatureCount is the width of a FeatureVector
const FeatureCount = 13

// FeatureNames lists the FeatureVector columns in the order the classifier was trained on
var FeatureNames = [FeatureCount]string{
	"age",
	"sex",
	"cp",
	"trestbps",
	"chol",
	"fbs",
	"restecg",
	"thalach",
	"exang",
	"oldpeak",
	"slope",
	"ca",
	"thal",
}

// RawInput holds the thirteen values submitted by the form
// Scalar fields accept Go numbers, json.Number, or numeric-looking strings.
// Categorical fields must exactly match a label of their CategoryMap.
type RawInput struct {
	Age               any    `json:"age"`
	Sex               string `json:"sex"`
	ChestPainType     string `json:"chestPainType"`
	RestingBP         any    `json:"restingBP"`
	Cholesterol       any    `json:"cholesterol"`
	FastingBloodSugar string `json:"fastingBloodSugar"`
	RestingECG        string `json:"restingECG"`
	MaxHeartRate      any    `json:"maxHeartRate"`
	ExerciseAngina    string `json:"exerciseAngina"`
	STDepression      any    `json:"stDepression"`
	STSlope           string `json:"stSlope"`
	VesselCount       any    `json:"vesselCount"`
	Thalassemia       string `json:"thalassemia"`
}

// FeatureVector is one assembled row, ordered as FeatureNames
type FeatureVector [FeatureCount]float64

// Row returns the vector as a slice suitable for the transform stage
func (f FeatureVector) Row() []float64 {
	row := make([]float64, FeatureCount)
	copy(row, f[:])
	return row
}

// Kind classifies which branch produced an Outcome
type Kind string

const (
	KindInvalid     Kind = "invalid"
	KindDetected    Kind = "detected"
	KindNotDetected Kind = "not_detected"
	KindError       Kind = "error"
)

// Result messages shown to the user
const (
	MessageVesselCount = "Number of major vessels must be between 0 and 3."
	MessageNonPositive = "Age, BP, Cholesterol, and Heart Rate must be positive numbers."
	MessageDetected    = "Hypertension Detected. Please consult a doctor."
	MessageNotDetected = "No Hypertension Detected."
	errorPrefix        = "Error: "
)

// Outcome is the structured form of a prediction result
// Features is set once the input has been fully mapped.
type Outcome struct {
	Kind     Kind
	Message  string
	Features *FeatureVector
}
