package coach

// PlanKind es el tipo de plan que genera el asistente.
type PlanKind string

const (
	PlanWorkout   PlanKind = "workout"
	PlanNutrition PlanKind = "nutrition"
	PlanRecovery  PlanKind = "recovery"
)

// Profile es el formulario de la persona; no se persiste, viaja en cada request.
type Profile struct {
	Name     string
	Age      int
	Gender   string
	HeightCm float64
	WeightKg float64
	Goal     string // ej: "lose weight", "build muscle"
	Level    string // ej: "beginner", "intermediate", "advanced"
}

// BMICategory según los cortes OMS clásicos.
type BMICategory string

const (
	BMIUnderweight BMICategory = "underweight"
	BMINormal      BMICategory = "normal"
	BMIOverweight  BMICategory = "overweight"
	BMIObese       BMICategory = "obese"
)

type BMI struct {
	Value    float64
	Category BMICategory
}

// Plan es el texto generado; el ID solo sirve como referencia en la UI y el PDF.
type Plan struct {
	ID      string
	Kind    PlanKind
	Content string
}
